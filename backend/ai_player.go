package main

// AIPlayer is the top-level move selector. It first looks for invaders to
// answer: if history names enemy pieces that recently captured ours and we
// have moves striking them, a pool search restricted to those counter-attacks
// runs at full depth. Otherwise the regular style-filtered search runs.
type AIPlayer struct {
	player Player
}

func NewAIPlayer(player Player) *AIPlayer {
	return &AIPlayer{player: player}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

func (a *AIPlayer) ChooseMove(board *Board, history *HistoryRecorder) (Move, error) {
	config := GetConfig()
	cfg := SearchConfigFrom(config)

	if pool := CounterAttackPool(board, a.player, history, config.AiInvaderWindow); len(pool) > 0 {
		result, err := SearchBestMoveInPool(board, a.player, pool, cfg, history)
		if err == nil {
			return result.BestMove, nil
		}
		searchLogger.Warn().Err(err).Msg("pool search failed, falling back to full search")
	}

	result, err := AlphaBetaSearch(board, a.player, cfg, history, nil, MoveCategory(config.AiPreferredStyle))
	if err != nil {
		return Move{}, err
	}
	return result.BestMove, nil
}

// CounterAttackPool collects player's legal moves that land on an invader,
// an enemy piece history shows capturing ours within the window.
func CounterAttackPool(board *Board, player Player, history *HistoryRecorder, window int) []Move {
	invaders := history.InvadersAgainst(player, window)
	if len(invaders) == 0 {
		return nil
	}
	targets := make(map[int]bool)
	for _, id := range invaders {
		if pos, ok := board.FindPieceByID(id); ok {
			targets[cellIndex(pos)] = true
		}
	}
	if len(targets) == 0 {
		return nil
	}
	var pool []Move
	for _, m := range board.LegalMovesFor(player) {
		if targets[cellIndex(m.To)] {
			pool = append(pool, m)
		}
	}
	return pool
}
