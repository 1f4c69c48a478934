package main

import "math"

// ScoreBreakdown is the composite immediate value of one candidate move.
// Score is always AttackEV - Risk + PosGain + Defense; the four components
// are diagnostic and reconstruct the scalar exactly.
type ScoreBreakdown struct {
	Score    float64 `json:"score"`
	AttackEV float64 `json:"attack_ev"`
	Risk     float64 `json:"risk"`
	PosGain  float64 `json:"pos_gain"`
	Defense  float64 `json:"defense"`
}

// EvaluateMove scores a single candidate move for player. It is pure with
// respect to board and history and deterministic for identical inputs; a nil
// history disables every history-derived signal.
func EvaluateMove(board *Board, player Player, attacker *Piece, from, to Position, history *HistoryRecorder, w HeuristicConfig) ScoreBreakdown {
	if attacker == nil {
		return ScoreBreakdown{}
	}

	attackEV := w.WAttack * attackExpectedValue(board, player, attacker, to, history, w)
	risk := w.WRisk * exposureRisk(board, player, to)

	posGain := w.WPositional*positionalGain(board, attacker, to) +
		w.WMobility*mobilityPotential(board, attacker, to) +
		w.WInfo*infoGain(board, player, to)
	posGain += rearWithdrawPenalty(board, player, attacker, from, to, w)

	defenseRaw := defenseValue(board, player, to)
	defenseWeight := w.WDefense
	if defenseRaw > 0 {
		// Flag under direct pressure: defense dominates.
		defenseWeight = w.WDefenseFlagThreat
	}
	defense := defenseWeight * defenseRaw

	score := attackEV - risk + posGain + defense
	if math.IsNaN(score) || math.IsInf(score, 0) {
		score = 0
	}
	return ScoreBreakdown{
		Score:    score,
		AttackEV: attackEV,
		Risk:     risk,
		PosGain:  posGain,
		Defense:  defense,
	}
}

// attackExpectedValue estimates the combat outcome of moving onto to,
// including the priors for unknown targets and every history-derived
// adjustment (zone probes, activity escalation, invader counter-attack,
// flag phase valuation).
func attackExpectedValue(board *Board, player Player, attacker *Piece, to Position, history *HistoryRecorder, w HeuristicConfig) float64 {
	defender := board.PieceAt(to)
	if defender == nil || defender.Player == player {
		return 0
	}
	if CellTypeAt(to) == CellCamp {
		// Camps shield the occupant; legality filtering keeps these rare.
		return 0
	}

	var ev float64
	if defender.Visible {
		ev = knownTargetValue(board, player, attacker, defender, history, w)
	} else {
		ev = unknownTargetPrior(board, player, attacker, defender, to, history, w)
	}
	ev += invaderCounterBonus(board, player, attacker, defender, history, w)
	return ev
}

func knownTargetValue(board *Board, player Player, attacker, defender *Piece, history *HistoryRecorder, w HeuristicConfig) float64 {
	if defender.IsFlag() {
		return w.FlagCaptureValue * flagPhaseScale(board, player, history, w)
	}
	if defender.IsMine() {
		if attacker.IsEngineer() {
			return w.MineDefuseGain
		}
		return w.MineHitPenalty
	}
	if defender.IsBomb() || attacker.IsBomb() {
		return float64(defender.Power()-attacker.Power()) * w.BombTradeScale
	}
	ap, dp := attacker.Power(), defender.Power()
	switch {
	case ap > dp:
		return float64(ap-dp) * w.CaptureScale
	case ap == dp:
		return w.TradePenalty
	default:
		return w.LosePenalty
	}
}

// unknownTargetPrior is the hidden-identity model: a conservative base,
// raised for strong attackers, for targets in information-rich zones and for
// hidden pieces whose recent activity suggests real value.
func unknownTargetPrior(board *Board, player Player, attacker, defender *Piece, to Position, history *HistoryRecorder, w HeuristicConfig) float64 {
	ev := w.UnknownBase
	ap := attacker.Power()
	if ap >= powerBrigade {
		ev += w.UnknownStrongAttacker
	}

	clearing := ap >= powerRegiment && ap <= powerDivision
	if clearing && InEngineerZone(player, to) {
		// An intruder near our mine rows is worth identifying.
		ev += w.EngineerZoneProbe
	}
	if InBackTwoRows(otherPlayer(player), to) {
		if clearing {
			ev += w.BackZoneProbe
		}
		if ap >= powerGeneral {
			// Top command probing low-information back rows is waste.
			ev -= w.BackZoneCommandCost
		}
	}

	if history.ActivityCount(defender.ID) >= activityEscalationThreshold {
		ev += w.ActiveUnknownPrior
		if ap >= powerBattalion && ap <= powerBrigade {
			ev += w.ActiveProbeBonus
		}
	}
	return ev
}

// invaderCounterBonus rewards striking back at a piece that recently captured
// one of ours. The commander joins the counter-attack only once the enemy
// commander is visible or dead; a bomb is committed only when no high
// responder remains and the invader keeps scoring.
func invaderCounterBonus(board *Board, player Player, attacker, defender *Piece, history *HistoryRecorder, w HeuristicConfig) float64 {
	if !history.IsInvader(defender.ID, invaderWindow) {
		return 0
	}
	ap := attacker.Power()
	switch {
	case ap >= powerRegiment && ap <= powerGeneral:
		return w.InvaderCounterBonus
	case ap == powerCommander:
		if history.TopCommandVisibleOrDead(otherPlayer(player)) {
			return w.InvaderCounterBonus
		}
		return 0
	case attacker.IsBomb():
		threatHigh := history.CaptureCount(defender.ID, invaderWindow) >= 2
		if threatHigh && lacksHighResponders(board, player, history) {
			return w.BombInvaderBonus
		}
		return 0
	default:
		return 0
	}
}

// lacksHighResponders reports whether the side has no piece it can reasonably
// answer a rampaging invader with: the general is gone and the commander is
// either gone too or would have to bluff into a still-hidden enemy commander.
func lacksHighResponders(board *Board, player Player, history *HistoryRecorder) bool {
	high := board.CountAliveAtLeast(player, powerGeneral)
	if high == 0 {
		return true
	}
	if high == 1 {
		if _, hasCommander := board.FindPiece(player, PieceCommander); hasCommander {
			return !history.TopCommandVisibleOrDead(otherPlayer(player))
		}
	}
	return false
}

// flagPhaseScale grades the value of taking the enemy flag by game phase:
// discounted while the enemy still fields a strong force with a hidden
// commander, raised once the commander is accounted for, and sharply raised
// in the endgame.
func flagPhaseScale(board *Board, player Player, history *HistoryRecorder, w HeuristicConfig) float64 {
	opp := otherPlayer(player)
	oppHigh := board.CountAliveAtLeast(opp, powerDivision)
	switch {
	case oppHigh <= 1:
		return w.FlagEndgameScale
	case history.TopCommandVisibleOrDead(opp) || !commanderAlive(board, opp):
		return w.FlagExposedScale
	default:
		return w.FlagEarlyScale
	}
}

func commanderAlive(board *Board, player Player) bool {
	_, ok := board.FindPiece(player, PieceCommander)
	return ok
}

func positionalGain(board *Board, attacker *Piece, to Position) float64 {
	gain := 0.0
	if to.Row == 5 || to.Row == 6 {
		gain += 0.25
	}
	if CellTypeAt(to) == CellRailway {
		hub := len(boardTopology.railAdj[cellIndex(to)])
		if hub > 4 {
			hub = 4
		}
		gain += float64(hub) * 0.15
	}
	if PlayerArea(to) != attacker.Player && CellTypeAt(to) != CellCamp {
		gain += 0.3
	}
	if CellTypeAt(to) == CellCamp {
		gain += 0.25
	}
	return gain
}

func exposureRisk(board *Board, player Player, to Position) float64 {
	if CellTypeAt(to) == CellCamp {
		return 0.05
	}
	risk := 0.0
	for _, adj := range AdjacentPositions(to) {
		p := board.PieceAt(adj)
		if p != nil && p.Player != player {
			risk += 0.4
		}
	}
	if CellTypeAt(to) == CellRailway {
		risk += float64(len(boardTopology.railAdj[cellIndex(to)])) * 0.1
	}
	if risk > 1.0 {
		risk = 1.0
	}
	return risk
}

func mobilityPotential(board *Board, attacker *Piece, to Position) float64 {
	if attacker.IsMine() || attacker.IsFlag() {
		return 0
	}
	if CellTypeAt(to) == CellRailway {
		factor := 0.6
		if attacker.IsEngineer() {
			factor = 1.0
		}
		reach := float64(len(boardTopology.railAdj[cellIndex(to)])) * factor
		if reach > 3 {
			reach = 3
		}
		return reach / 3
	}
	adj := len(AdjacentPositions(to))
	if adj > 4 {
		adj = 4
	}
	return float64(adj) / 4
}

func infoGain(board *Board, player Player, to Position) float64 {
	gain := 0.0
	for _, adj := range AdjacentPositions(to) {
		p := board.PieceAt(adj)
		if p != nil && p.Player != player && !p.Visible {
			gain += 0.2
		}
	}
	if gain > 0.6 {
		gain = 0.6
	}
	return gain
}

func defenseValue(board *Board, player Player, to Position) float64 {
	flagPos, ok := board.FindPiece(player, PieceFlag)
	if !ok {
		return 0
	}
	enemyNearFlag := 0
	for _, adj := range AdjacentPositions(flagPos) {
		p := board.PieceAt(adj)
		if p != nil && p.Player != player {
			enemyNearFlag++
		}
	}
	if enemyNearFlag == 0 {
		return 0
	}
	dist := abs(flagPos.Row-to.Row) + abs(flagPos.Col-to.Col)
	if dist >= 3 {
		return 0
	}
	return float64(3-dist) * 0.25
}

// rearWithdrawPenalty taxes pulling a piece out of its own back rows for no
// attack, scaled by piece value. The tax is waived when an enemy engineer
// could reach the vacated square within two plies, a real infiltration
// threat that justifies repositioning.
func rearWithdrawPenalty(board *Board, player Player, attacker *Piece, from, to Position, w HeuristicConfig) float64 {
	if board.PieceAt(to) != nil {
		return 0
	}
	if !InBackTwoRows(player, from) || InBackTwoRows(player, to) {
		return 0
	}
	if board.EngineerCanReachWithin(otherPlayer(player), from, 2) {
		return 0
	}
	return -w.RearWithdrawScale * float64(attacker.Power())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
