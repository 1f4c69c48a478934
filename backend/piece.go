package main

// Player identifies one of the two sides. South owns rows 6-11 and moves up
// the board, North owns rows 0-5.
type Player int

const (
	PlayerSouth Player = iota
	PlayerNorth
)

func (p Player) String() string {
	if p == PlayerNorth {
		return "north"
	}
	return "south"
}

func otherPlayer(p Player) Player {
	if p == PlayerSouth {
		return PlayerNorth
	}
	return PlayerSouth
}

type PieceType int

const (
	PieceCommander PieceType = iota
	PieceGeneral
	PieceDivision
	PieceBrigade
	PieceRegiment
	PieceBattalion
	PieceCompany
	PiecePlatoon
	PieceEngineer
	PieceBomb
	PieceMine
	PieceFlag
	pieceTypeCount
)

// Combat power of the ranked movers. Bombs, mines and the flag resolve by
// special rules instead of power comparison.
const (
	powerCommander = 10
	powerGeneral   = 9
	powerDivision  = 8
	powerBrigade   = 7
	powerRegiment  = 6
	powerBattalion = 5
	powerCompany   = 4
	powerPlatoon   = 3
	powerEngineer  = 2
)

var pieceNames = [pieceTypeCount]string{
	"commander", "general", "division", "brigade", "regiment",
	"battalion", "company", "platoon", "engineer", "bomb", "mine", "flag",
}

func (t PieceType) String() string {
	if t < 0 || t >= pieceTypeCount {
		return "unknown"
	}
	return pieceNames[t]
}

func (t PieceType) Power() int {
	switch t {
	case PieceCommander:
		return powerCommander
	case PieceGeneral:
		return powerGeneral
	case PieceDivision:
		return powerDivision
	case PieceBrigade:
		return powerBrigade
	case PieceRegiment:
		return powerRegiment
	case PieceBattalion:
		return powerBattalion
	case PieceCompany:
		return powerCompany
	case PiecePlatoon:
		return powerPlatoon
	case PieceEngineer:
		return powerEngineer
	default:
		return 0
	}
}

// initialPieceCounts is the per-side army composition, 25 pieces total.
var initialPieceCounts = map[PieceType]int{
	PieceCommander: 1,
	PieceGeneral:   1,
	PieceDivision:  2,
	PieceBrigade:   2,
	PieceRegiment:  2,
	PieceBattalion: 2,
	PieceCompany:   3,
	PiecePlatoon:   3,
	PieceEngineer:  3,
	PieceBomb:      2,
	PieceMine:      3,
	PieceFlag:      1,
}

const piecesPerSide = 25

// Piece is one unit on the board. Visible flips to true once the piece
// survives combat; ID is an opaque handle stable across the whole game.
type Piece struct {
	Type      PieceType
	Player    Player
	Visible   bool
	KillCount int
	ID        string
}

func (p *Piece) Power() int { return p.Type.Power() }

func (p *Piece) CanMove() bool {
	return p.Type != PieceMine && p.Type != PieceFlag
}

func (p *Piece) IsEngineer() bool { return p.Type == PieceEngineer }
func (p *Piece) IsBomb() bool     { return p.Type == PieceBomb }
func (p *Piece) IsMine() bool     { return p.Type == PieceMine }
func (p *Piece) IsFlag() bool     { return p.Type == PieceFlag }
