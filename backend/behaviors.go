package main

// MoveCategory is the closed label set of the style classifier. Priority on
// conflicting signals: attack > probe > defend.
type MoveCategory string

const (
	CategoryNone   MoveCategory = ""
	CategoryAttack MoveCategory = "attack"
	CategoryProbe  MoveCategory = "probe"
	CategoryDefend MoveCategory = "defend"
)

type moveSignals struct {
	EatPiece             bool
	EnterEnemyAreaNoCamp bool
	EnterFrontLine       bool
	NewExposedHidden     bool
}

func ClassifyMove(board *Board, player Player, from, to Position) MoveCategory {
	category, _ := ClassifyMoveEx(board, player, from, to)
	return category
}

// ClassifyMoveEx returns the category plus the raw signals that produced it.
func ClassifyMoveEx(board *Board, player Player, from, to Position) (MoveCategory, moveSignals) {
	signals := moveSignals{}
	piece := board.PieceAt(from)
	if piece == nil {
		return CategoryDefend, signals
	}

	if target := board.PieceAt(to); target != nil && target.Player != piece.Player {
		signals.EatPiece = true
	}
	if PlayerArea(to) != player && CellTypeAt(to) != CellCamp {
		signals.EnterEnemyAreaNoCamp = true
	}
	if to.Row == 5 || to.Row == 6 {
		signals.EnterFrontLine = true
	}
	signals.NewExposedHidden = exposesHiddenPiece(board, player, Move{From: from, To: to})

	switch {
	case signals.EatPiece || signals.EnterEnemyAreaNoCamp:
		return CategoryAttack, signals
	case signals.EnterFrontLine || signals.NewExposedHidden:
		return CategoryProbe, signals
	default:
		return CategoryDefend, signals
	}
}

// exposesHiddenPiece reports whether the move makes a previously safe hidden
// friendly piece directly attackable in one enemy move.
func exposesHiddenPiece(board *Board, player Player, move Move) bool {
	before := attackableHiddenPositions(board, player)
	sim := board.Clone()
	if _, err := sim.Apply(move); err != nil {
		return false
	}
	after := attackableHiddenPositions(sim, player)
	for idx := range after {
		if !before[idx] {
			return true
		}
	}
	return false
}

func attackableHiddenPositions(board *Board, player Player) map[int]bool {
	out := make(map[int]bool)
	enemy := otherPlayer(player)
	for idx := 0; idx < boardCells; idx++ {
		p := board.pieces[idx]
		if p == nil || p.Player != player || p.Visible {
			continue
		}
		pos := positionOf(idx)
		if CellTypeAt(pos) == CellCamp {
			continue
		}
		for eidx := 0; eidx < boardCells; eidx++ {
			ep := board.pieces[eidx]
			if ep == nil || ep.Player != enemy {
				continue
			}
			if board.CanMove(positionOf(eidx), pos) {
				out[idx] = true
				break
			}
		}
	}
	return out
}
