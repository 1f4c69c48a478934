package main

import (
	"errors"
	"sort"
)

const (
	boardRows  = 12
	boardCols  = 5
	boardCells = boardRows * boardCols
)

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrNoLegalMoves = errors.New("no legal moves")
	ErrEmptyPool    = errors.New("empty candidate pool")
)

type CellType int

const (
	CellNormal CellType = iota
	CellRailway
	CellCamp
	CellHeadquarters
)

// topology is the static board graph: cell kinds, one-step adjacency and the
// railway network. North holds rows 0-5, South rows 6-11; the front line
// between rows 5 and 6 is crossable only at columns 0, 2 and 4.
type topology struct {
	cellType  [boardCells]CellType
	adjacent  [boardCells][]int
	railAdj   [boardCells][]int
	homeRowHQ map[Player][2]int
}

var boardTopology = buildTopology()

func cellIndex(pos Position) int {
	return pos.Row*boardCols + pos.Col
}

func positionOf(idx int) Position {
	return Position{Row: idx / boardCols, Col: idx % boardCols}
}

func inBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < boardRows && pos.Col >= 0 && pos.Col < boardCols
}

func isFrontLinePass(col int) bool {
	return col == 0 || col == 2 || col == 4
}

func buildTopology() *topology {
	t := &topology{homeRowHQ: map[Player][2]int{
		PlayerNorth: {cellIndex(Position{0, 1}), cellIndex(Position{0, 3})},
		PlayerSouth: {cellIndex(Position{11, 1}), cellIndex(Position{11, 3})},
	}}

	for idx := 0; idx < boardCells; idx++ {
		pos := positionOf(idx)
		t.cellType[idx] = classifyCell(pos)
	}

	for idx := 0; idx < boardCells; idx++ {
		pos := positionOf(idx)
		for _, next := range orthNeighbors(pos) {
			t.adjacent[idx] = append(t.adjacent[idx], cellIndex(next))
		}
		// Camps connect diagonally in both directions.
		for _, d := range [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
			next := Position{Row: pos.Row + d[0], Col: pos.Col + d[1]}
			if !inBounds(next) {
				continue
			}
			if t.cellType[idx] == CellCamp || t.cellType[cellIndex(next)] == CellCamp {
				t.adjacent[idx] = append(t.adjacent[idx], cellIndex(next))
			}
		}
		sort.Ints(t.adjacent[idx])
	}

	for idx := 0; idx < boardCells; idx++ {
		if t.cellType[idx] != CellRailway {
			continue
		}
		for _, adj := range t.adjacent[idx] {
			if t.cellType[adj] != CellRailway {
				continue
			}
			if positionOf(adj).Row != positionOf(idx).Row && positionOf(adj).Col != positionOf(idx).Col {
				// Railway rides never take camp diagonals.
				continue
			}
			t.railAdj[idx] = append(t.railAdj[idx], adj)
		}
	}
	return t
}

func classifyCell(pos Position) CellType {
	switch pos {
	case Position{0, 1}, Position{0, 3}, Position{11, 1}, Position{11, 3}:
		return CellHeadquarters
	case Position{2, 1}, Position{2, 3}, Position{3, 2}, Position{4, 1}, Position{4, 3},
		Position{7, 1}, Position{7, 3}, Position{8, 2}, Position{9, 1}, Position{9, 3}:
		return CellCamp
	}
	if pos.Row == 1 || pos.Row == 5 || pos.Row == 6 || pos.Row == 10 {
		return CellRailway
	}
	if (pos.Col == 0 || pos.Col == boardCols-1) && pos.Row >= 1 && pos.Row <= 10 {
		return CellRailway
	}
	return CellNormal
}

func orthNeighbors(pos Position) []Position {
	out := make([]Position, 0, 4)
	for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		next := Position{Row: pos.Row + d[0], Col: pos.Col + d[1]}
		if !inBounds(next) {
			continue
		}
		crossesFront := (pos.Row == 5 && next.Row == 6) || (pos.Row == 6 && next.Row == 5)
		if crossesFront && !isFrontLinePass(pos.Col) {
			continue
		}
		out = append(out, next)
	}
	return out
}

// Board holds piece occupancy over the shared topology.
type Board struct {
	pieces [boardCells]*Piece
}

func NewBoard() *Board {
	return &Board{}
}

func (b *Board) Clone() *Board {
	clone := &Board{}
	for i, p := range b.pieces {
		if p == nil {
			continue
		}
		copied := *p
		clone.pieces[i] = &copied
	}
	return clone
}

func (b *Board) PieceAt(pos Position) *Piece {
	if !inBounds(pos) {
		return nil
	}
	return b.pieces[cellIndex(pos)]
}

func (b *Board) Place(pos Position, piece Piece) bool {
	if !inBounds(pos) || b.pieces[cellIndex(pos)] != nil {
		return false
	}
	p := piece
	b.pieces[cellIndex(pos)] = &p
	return true
}

func (b *Board) Remove(pos Position) *Piece {
	if !inBounds(pos) {
		return nil
	}
	p := b.pieces[cellIndex(pos)]
	b.pieces[cellIndex(pos)] = nil
	return p
}

func CellTypeAt(pos Position) CellType {
	if !inBounds(pos) {
		return CellNormal
	}
	return boardTopology.cellType[cellIndex(pos)]
}

func AdjacentPositions(pos Position) []Position {
	if !inBounds(pos) {
		return nil
	}
	adj := boardTopology.adjacent[cellIndex(pos)]
	out := make([]Position, len(adj))
	for i, idx := range adj {
		out[i] = positionOf(idx)
	}
	return out
}

// PlayerArea reports which half of the board a position belongs to.
func PlayerArea(pos Position) Player {
	if pos.Row <= 5 {
		return PlayerNorth
	}
	return PlayerSouth
}

// InBackTwoRows reports whether pos lies in player's rearmost two rows.
func InBackTwoRows(player Player, pos Position) bool {
	if player == PlayerNorth {
		return pos.Row <= 1
	}
	return pos.Row >= boardRows-2
}

// InEngineerZone reports whether pos lies in player's rear three rows, the
// region enemy engineers probe for mines.
func InEngineerZone(player Player, pos Position) bool {
	if player == PlayerNorth {
		return pos.Row <= 2
	}
	return pos.Row >= boardRows-3
}

// CanMove mirrors the legality rules: headquarters lock their occupant, mines
// and flags never move, camps shield their occupant from attack, railway
// rides are straight lines for regulars and free network travel for
// engineers.
func (b *Board) CanMove(from, to Position) bool {
	if !inBounds(from) || !inBounds(to) || from == to {
		return false
	}
	piece := b.PieceAt(from)
	if piece == nil || !piece.CanMove() {
		return false
	}
	if CellTypeAt(from) == CellHeadquarters {
		return false
	}
	target := b.PieceAt(to)
	if target != nil {
		if target.Player == piece.Player {
			return false
		}
		if CellTypeAt(to) == CellCamp {
			return false
		}
	}
	if CellTypeAt(from) == CellRailway && CellTypeAt(to) == CellRailway {
		if piece.IsEngineer() {
			return b.railwayNetworkReachable(from)[cellIndex(to)]
		}
		return b.railwayStraightReachable(from)[cellIndex(to)]
	}
	for _, adj := range AdjacentPositions(from) {
		if adj == to {
			return true
		}
	}
	return false
}

// railwayNetworkReachable runs a blocked flood fill over the railway graph:
// occupied cells are reachable (first stop) but never expanded through.
func (b *Board) railwayNetworkReachable(from Position) map[int]bool {
	reached := make(map[int]bool)
	seen := map[int]bool{cellIndex(from): true}
	queue := []int{cellIndex(from)}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range boardTopology.railAdj[cur] {
			if seen[next] {
				continue
			}
			seen[next] = true
			reached[next] = true
			if b.pieces[next] == nil {
				queue = append(queue, next)
			}
		}
	}
	return reached
}

// railwayStraightReachable rides each of the four axes until the rail ends or
// a piece blocks; the blocking cell itself is reachable.
func (b *Board) railwayStraightReachable(from Position) map[int]bool {
	reached := make(map[int]bool)
	for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		cur := from
		for {
			next := Position{Row: cur.Row + d[0], Col: cur.Col + d[1]}
			if !inBounds(next) || CellTypeAt(next) != CellRailway {
				break
			}
			if !railEdgeExists(cur, next) {
				break
			}
			reached[cellIndex(next)] = true
			if b.PieceAt(next) != nil {
				break
			}
			cur = next
		}
	}
	return reached
}

func railEdgeExists(a, b Position) bool {
	for _, idx := range boardTopology.railAdj[cellIndex(a)] {
		if idx == cellIndex(b) {
			return true
		}
	}
	return false
}

// destinationsFrom enumerates every square the given piece could move to from
// pos, in deterministic order (railway rides sorted by cell index, then
// one-step neighbors in adjacency order).
func (b *Board) destinationsFrom(pos Position, piece *Piece) []Position {
	if piece == nil || !piece.CanMove() || CellTypeAt(pos) == CellHeadquarters {
		return nil
	}
	dests := make([]Position, 0, 8)
	seen := make(map[int]bool)
	if CellTypeAt(pos) == CellRailway {
		var reach map[int]bool
		if piece.IsEngineer() {
			reach = b.railwayNetworkReachable(pos)
		} else {
			reach = b.railwayStraightReachable(pos)
		}
		idxs := make([]int, 0, len(reach))
		for idx := range reach {
			idxs = append(idxs, idx)
		}
		sort.Ints(idxs)
		for _, idx := range idxs {
			to := positionOf(idx)
			if b.destinationAllowed(piece, to) && !seen[idx] {
				seen[idx] = true
				dests = append(dests, to)
			}
		}
	}
	for _, to := range AdjacentPositions(pos) {
		if CellTypeAt(pos) == CellRailway && CellTypeAt(to) == CellRailway {
			continue // already covered by the railway ride
		}
		if b.destinationAllowed(piece, to) && !seen[cellIndex(to)] {
			seen[cellIndex(to)] = true
			dests = append(dests, to)
		}
	}
	return dests
}

func (b *Board) destinationAllowed(piece *Piece, to Position) bool {
	target := b.PieceAt(to)
	if target == nil {
		return true
	}
	if target.Player == piece.Player {
		return false
	}
	return CellTypeAt(to) != CellCamp
}

// LegalMovesFor enumerates player's moves in row-major origin order; this
// generation order is the documented tie-break for equal-scored moves.
func (b *Board) LegalMovesFor(player Player) []Move {
	moves := make([]Move, 0, 64)
	for idx := 0; idx < boardCells; idx++ {
		piece := b.pieces[idx]
		if piece == nil || piece.Player != player {
			continue
		}
		from := positionOf(idx)
		for _, to := range b.destinationsFrom(from, piece) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func (b *Board) HasLegalMove(player Player) bool {
	for idx := 0; idx < boardCells; idx++ {
		piece := b.pieces[idx]
		if piece == nil || piece.Player != player {
			continue
		}
		if len(b.destinationsFrom(positionOf(idx), piece)) > 0 {
			return true
		}
	}
	return false
}

type MoveOutcome int

const (
	OutcomeQuietMove MoveOutcome = iota
	OutcomeAttackerWins
	OutcomeDefenderWins
	OutcomeBothDie
)

func (o MoveOutcome) String() string {
	switch o {
	case OutcomeAttackerWins:
		return "attack_attacker_wins"
	case OutcomeDefenderWins:
		return "attack_defender_wins"
	case OutcomeBothDie:
		return "attack_both_die"
	default:
		return "move"
	}
}

type ApplyResult struct {
	Outcome      MoveOutcome
	AttackerID   string
	DefenderID   string
	DeadIDs      []string
	RevealedIDs  []string
	FlagCaptured bool
}

// Apply validates and executes a move, resolving combat and visibility.
// Survivors of combat are revealed; a dead commander reveals its side's flag.
func (b *Board) Apply(move Move) (ApplyResult, error) {
	if !b.CanMove(move.From, move.To) {
		return ApplyResult{}, ErrInvalidMove
	}
	attacker := b.PieceAt(move.From)
	defender := b.PieceAt(move.To)
	res := ApplyResult{AttackerID: attacker.ID}

	if defender == nil {
		b.pieces[cellIndex(move.To)] = attacker
		b.pieces[cellIndex(move.From)] = nil
		return res, nil
	}

	res.DefenderID = defender.ID
	if defender.IsFlag() {
		res.Outcome = OutcomeAttackerWins
		res.FlagCaptured = true
		res.DeadIDs = []string{defender.ID}
		attacker.KillCount += defender.KillCount + 1
		attacker.Visible = true
		res.RevealedIDs = append(res.RevealedIDs, attacker.ID)
		b.pieces[cellIndex(move.To)] = attacker
		b.pieces[cellIndex(move.From)] = nil
		return res, nil
	}

	winner := battleWinner(attacker, defender)
	switch winner {
	case battleAttacker:
		res.Outcome = OutcomeAttackerWins
		res.DeadIDs = []string{defender.ID}
		attacker.KillCount += defender.KillCount + 1
		attacker.Visible = true
		res.RevealedIDs = append(res.RevealedIDs, attacker.ID)
		b.pieces[cellIndex(move.To)] = attacker
		b.pieces[cellIndex(move.From)] = nil
		res.RevealedIDs = append(res.RevealedIDs, b.revealFlagOnCommanderDeath(defender)...)
	case battleDefender:
		res.Outcome = OutcomeDefenderWins
		res.DeadIDs = []string{attacker.ID}
		defender.KillCount += attacker.KillCount + 1
		defender.Visible = true
		res.RevealedIDs = append(res.RevealedIDs, defender.ID)
		b.pieces[cellIndex(move.From)] = nil
		res.RevealedIDs = append(res.RevealedIDs, b.revealFlagOnCommanderDeath(attacker)...)
	default:
		res.Outcome = OutcomeBothDie
		res.DeadIDs = []string{attacker.ID, defender.ID}
		b.pieces[cellIndex(move.From)] = nil
		b.pieces[cellIndex(move.To)] = nil
		res.RevealedIDs = append(res.RevealedIDs, b.revealFlagOnCommanderDeath(attacker)...)
		res.RevealedIDs = append(res.RevealedIDs, b.revealFlagOnCommanderDeath(defender)...)
	}
	return res, nil
}

type battleResult int

const (
	battleBothDie battleResult = iota
	battleAttacker
	battleDefender
)

func battleWinner(attacker, defender *Piece) battleResult {
	if attacker.IsBomb() || defender.IsBomb() {
		return battleBothDie
	}
	if defender.IsMine() {
		if attacker.IsEngineer() {
			return battleAttacker
		}
		// The mine stays; only the attacker dies.
		return battleDefender
	}
	ap, dp := attacker.Power(), defender.Power()
	switch {
	case ap > dp:
		return battleAttacker
	case ap < dp:
		return battleDefender
	default:
		return battleBothDie
	}
}

// revealFlagOnCommanderDeath flips the fallen commander's flag face up and
// returns the revealed piece IDs.
func (b *Board) revealFlagOnCommanderDeath(dead *Piece) []string {
	if dead.Type != PieceCommander {
		return nil
	}
	var revealed []string
	for idx := 0; idx < boardCells; idx++ {
		p := b.pieces[idx]
		if p != nil && p.Player == dead.Player && p.IsFlag() && !p.Visible {
			p.Visible = true
			revealed = append(revealed, p.ID)
		}
	}
	return revealed
}

// FindPieceByID locates an alive piece by its opaque ID.
func (b *Board) FindPieceByID(id string) (Position, bool) {
	if id == "" {
		return Position{}, false
	}
	for idx := 0; idx < boardCells; idx++ {
		p := b.pieces[idx]
		if p != nil && p.ID == id {
			return positionOf(idx), true
		}
	}
	return Position{}, false
}

// FindPiece locates the first alive piece of the given type for a side.
func (b *Board) FindPiece(player Player, pieceType PieceType) (Position, bool) {
	for idx := 0; idx < boardCells; idx++ {
		p := b.pieces[idx]
		if p != nil && p.Player == player && p.Type == pieceType {
			return positionOf(idx), true
		}
	}
	return Position{}, false
}

// CountAliveAtLeast counts a side's pieces with power >= minPower.
func (b *Board) CountAliveAtLeast(player Player, minPower int) int {
	count := 0
	for idx := 0; idx < boardCells; idx++ {
		p := b.pieces[idx]
		if p != nil && p.Player == player && p.Power() >= minPower {
			count++
		}
	}
	return count
}

// EngineerCanReachWithin reports whether any of side's engineers could stand
// on target within the given number of plies. Intermediate hops assume the
// rest of the board stays put; this is a threat estimate, not a proof.
func (b *Board) EngineerCanReachWithin(side Player, target Position, plies int) bool {
	engineer := Piece{Type: PieceEngineer, Player: side}
	frontier := make(map[int]bool)
	for idx := 0; idx < boardCells; idx++ {
		p := b.pieces[idx]
		if p != nil && p.Player == side && p.IsEngineer() {
			frontier[idx] = true
		}
	}
	for step := 0; step < plies && len(frontier) > 0; step++ {
		next := make(map[int]bool)
		for idx := range frontier {
			for _, to := range b.destinationsFrom(positionOf(idx), &engineer) {
				if to == target {
					return true
				}
				if b.PieceAt(to) == nil {
					next[cellIndex(to)] = true
				}
			}
		}
		frontier = next
	}
	return false
}
