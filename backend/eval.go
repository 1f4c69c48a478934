package main

import "sort"

type scoredMove struct {
	Move      Move
	Breakdown ScoreBreakdown
}

// scoreMovesForSide evaluates every candidate once and sorts by score,
// descending when maximizing. The sort is stable: equal scores keep the
// legal-move generation order, which makes beam truncation deterministic.
func scoreMovesForSide(board *Board, player Player, moves []Move, maximizing bool, history *HistoryRecorder, w HeuristicConfig) []scoredMove {
	scored := make([]scoredMove, 0, len(moves))
	for _, m := range moves {
		attacker := board.PieceAt(m.From)
		if attacker == nil || attacker.Player != player {
			continue
		}
		scored = append(scored, scoredMove{
			Move:      m,
			Breakdown: EvaluateMove(board, player, attacker, m.From, m.To, history, w),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if maximizing {
			return scored[i].Breakdown.Score > scored[j].Breakdown.Score
		}
		return scored[i].Breakdown.Score < scored[j].Breakdown.Score
	})
	return scored
}

// SortMovesForSide ranks candidates by their immediate EvaluateMove score.
func SortMovesForSide(board *Board, player Player, moves []Move, maximizing bool, history *HistoryRecorder, w HeuristicConfig) []Move {
	scored := scoreMovesForSide(board, player, moves, maximizing, history, w)
	out := make([]Move, len(scored))
	for i, s := range scored {
		out[i] = s.Move
	}
	return out
}

// EvaluateState is the leaf evaluator: the best immediate move score for
// maxPlayer minus the best for the opponent, a one-ply lookahead proxy for
// position value. A side without moves contributes zero.
func EvaluateState(board *Board, maxPlayer Player, history *HistoryRecorder, w HeuristicConfig) float64 {
	own := bestImmediateScore(board, maxPlayer, history, w)
	opp := bestImmediateScore(board, otherPlayer(maxPlayer), history, w)
	return own - opp
}

func bestImmediateScore(board *Board, player Player, history *HistoryRecorder, w HeuristicConfig) float64 {
	best := 0.0
	found := false
	for _, m := range board.LegalMovesFor(player) {
		attacker := board.PieceAt(m.From)
		if attacker == nil {
			continue
		}
		s := EvaluateMove(board, player, attacker, m.From, m.To, history, w).Score
		if !found || s > best {
			best = s
			found = true
		}
	}
	if !found {
		return 0
	}
	return best
}
