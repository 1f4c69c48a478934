package main

import (
	"math"
	"testing"
)

func TestBreakdownReconstructsScore(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, Position{7, 2}, Piece{Type: PieceGeneral, Player: PlayerSouth, ID: "s1"})
	mustPlace(t, b, Position{6, 2}, Piece{Type: PiecePlatoon, Player: PlayerNorth, Visible: true, ID: "n1"})
	w := DefaultConfig().Heuristics
	bd := EvaluateMove(b, PlayerSouth, b.PieceAt(Position{7, 2}), Position{7, 2}, Position{6, 2}, nil, w)
	sum := bd.AttackEV - bd.Risk + bd.PosGain + bd.Defense
	if math.Abs(bd.Score-sum) > 1e-9 {
		t.Fatalf("score %f does not reconstruct from components %f", bd.Score, sum)
	}
}

func TestEvaluateMoveDeterministic(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, Position{7, 2}, Piece{Type: PieceRegiment, Player: PlayerSouth, ID: "s1"})
	mustPlace(t, b, Position{6, 2}, Piece{Type: PieceCompany, Player: PlayerNorth, ID: "n1"})
	w := DefaultConfig().Heuristics
	attacker := b.PieceAt(Position{7, 2})
	first := EvaluateMove(b, PlayerSouth, attacker, Position{7, 2}, Position{6, 2}, nil, w)
	second := EvaluateMove(b, PlayerSouth, attacker, Position{7, 2}, Position{6, 2}, nil, w)
	if first != second {
		t.Fatalf("identical inputs must score identically: %+v vs %+v", first, second)
	}
}

func TestInvaderRaisesAttackScore(t *testing.T) {
	build := func() *Board {
		b := NewBoard()
		mustPlace(t, b, Position{7, 2}, Piece{Type: PieceRegiment, Player: PlayerSouth, ID: "s1"})
		mustPlace(t, b, Position{6, 2}, Piece{Type: PieceBrigade, Player: PlayerNorth, ID: "n1"})
		return b
	}
	w := DefaultConfig().Heuristics

	quiet := NewHistoryRecorder()
	quiet.RegisterPiece("n1", PlayerNorth, PieceBrigade)

	hot := NewHistoryRecorder()
	hot.RegisterPiece("n1", PlayerNorth, PieceBrigade)
	hot.Push(captureRecord(1, "n1", "s9"))

	bq := build()
	base := EvaluateMove(bq, PlayerSouth, bq.PieceAt(Position{7, 2}), Position{7, 2}, Position{6, 2}, quiet, w).Score
	bh := build()
	raised := EvaluateMove(bh, PlayerSouth, bh.PieceAt(Position{7, 2}), Position{7, 2}, Position{6, 2}, hot, w).Score
	if raised <= base {
		t.Fatalf("attacking a recent invader must score strictly higher: %f vs %f", raised, base)
	}
}

func TestCommanderHoldsBackAgainstHiddenCommander(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, Position{7, 2}, Piece{Type: PieceCommander, Player: PlayerSouth, ID: "sc"})
	mustPlace(t, b, Position{6, 2}, Piece{Type: PieceBrigade, Player: PlayerNorth, ID: "n1"})
	w := DefaultConfig().Heuristics

	h := NewHistoryRecorder()
	h.RegisterPiece("nc", PlayerNorth, PieceCommander)
	h.Push(captureRecord(1, "n1", "s9"))
	attacker := b.PieceAt(Position{7, 2})
	defender := b.PieceAt(Position{6, 2})
	if got := invaderCounterBonus(b, PlayerSouth, attacker, defender, h, w); got != 0 {
		t.Fatalf("commander must not join while the enemy commander is hidden, got %f", got)
	}
	h.Push(MoveRecord{Turn: 2, PieceID: "nc", Outcome: OutcomeQuietMove, RevealedIDs: []string{"nc"}})
	if got := invaderCounterBonus(b, PlayerSouth, attacker, defender, h, w); got != w.InvaderCounterBonus {
		t.Fatalf("commander should join once the enemy commander is revealed, got %f", got)
	}
}

func TestEngineerMineValues(t *testing.T) {
	w := DefaultConfig().Heuristics

	engBoard := NewBoard()
	mustPlace(t, engBoard, Position{6, 2}, Piece{Type: PieceEngineer, Player: PlayerSouth, ID: "s1"})
	mustPlace(t, engBoard, Position{7, 2}, Piece{Type: PieceMine, Player: PlayerNorth, Visible: true, ID: "n1"})
	eng := EvaluateMove(engBoard, PlayerSouth, engBoard.PieceAt(Position{6, 2}), Position{6, 2}, Position{7, 2}, nil, w)

	batBoard := NewBoard()
	mustPlace(t, batBoard, Position{6, 2}, Piece{Type: PieceBattalion, Player: PlayerSouth, ID: "s1"})
	mustPlace(t, batBoard, Position{7, 2}, Piece{Type: PieceMine, Player: PlayerNorth, Visible: true, ID: "n1"})
	bat := EvaluateMove(batBoard, PlayerSouth, batBoard.PieceAt(Position{6, 2}), Position{6, 2}, Position{7, 2}, nil, w)

	if eng.AttackEV <= 0 {
		t.Fatalf("engineer onto a known mine should have positive attack value, got %f", eng.AttackEV)
	}
	if bat.AttackEV >= 0 {
		t.Fatalf("regular onto a known mine should have negative attack value, got %f", bat.AttackEV)
	}
	if eng.Score <= bat.Score {
		t.Fatalf("engineer must outscore a regular against a known mine")
	}
}

func TestUnknownBackZonePriors(t *testing.T) {
	w := DefaultConfig().Heuristics
	to := Position{0, 2} // north back two rows

	division := &Piece{Type: PieceDivision, Player: PlayerSouth, ID: "s1"}
	commander := &Piece{Type: PieceCommander, Player: PlayerSouth, ID: "s2"}
	hidden := &Piece{Type: PieceMine, Player: PlayerNorth, ID: "n1"}

	b := NewBoard()
	div := unknownTargetPrior(b, PlayerSouth, division, hidden, to, nil, w)
	cmd := unknownTargetPrior(b, PlayerSouth, commander, hidden, to, nil, w)
	if div <= 0 {
		t.Fatalf("a division probing the enemy back rows should be encouraged, got %f", div)
	}
	if cmd >= 0 {
		t.Fatalf("top command probing the back rows should be discouraged, got %f", cmd)
	}
}

func TestBackZoneProbeBeatsKnownLowValueTarget(t *testing.T) {
	w := DefaultConfig().Heuristics

	probe := NewBoard()
	mustPlace(t, probe, Position{1, 2}, Piece{Type: PieceDivision, Player: PlayerSouth, ID: "s1"})
	mustPlace(t, probe, Position{0, 2}, Piece{Type: PieceBattalion, Player: PlayerNorth, ID: "n1"})
	unknownEV := attackExpectedValue(probe, PlayerSouth, probe.PieceAt(Position{1, 2}), Position{0, 2}, nil, w)

	grab := NewBoard()
	mustPlace(t, grab, Position{7, 2}, Piece{Type: PieceDivision, Player: PlayerSouth, ID: "s1"})
	mustPlace(t, grab, Position{6, 2}, Piece{Type: PiecePlatoon, Player: PlayerNorth, Visible: true, ID: "n1"})
	knownEV := attackExpectedValue(grab, PlayerSouth, grab.PieceAt(Position{7, 2}), Position{6, 2}, nil, w)

	if unknownEV <= knownEV {
		t.Fatalf("clearing an unknown back-row piece should outrank grabbing a known weak one: %f vs %f", unknownEV, knownEV)
	}
}

func TestActivityEscalatesUnknownPrior(t *testing.T) {
	w := DefaultConfig().Heuristics
	attacker := &Piece{Type: PieceRegiment, Player: PlayerSouth, ID: "s1"}
	hidden := &Piece{Type: PieceCompany, Player: PlayerNorth, ID: "n1"}
	to := Position{6, 2}

	h := NewHistoryRecorder()
	base := unknownTargetPrior(NewBoard(), PlayerSouth, attacker, hidden, to, h, w)
	for turn := 1; turn <= activityEscalationThreshold; turn++ {
		h.Push(MoveRecord{Turn: turn, PieceID: "n1", Outcome: OutcomeQuietMove})
	}
	active := unknownTargetPrior(NewBoard(), PlayerSouth, attacker, hidden, to, h, w)
	if active <= base {
		t.Fatalf("an active hidden piece should be a better target: %f vs %f", active, base)
	}
}

func TestRearWithdrawPenalty(t *testing.T) {
	w := DefaultConfig().Heuristics
	b := NewBoard()
	mustPlace(t, b, Position{10, 2}, Piece{Type: PieceBattalion, Player: PlayerSouth, ID: "s1"})
	attacker := b.PieceAt(Position{10, 2})

	penalty := rearWithdrawPenalty(b, PlayerSouth, attacker, Position{10, 2}, Position{9, 2}, w)
	if penalty >= 0 {
		t.Fatalf("leaving the back rows without threat should be penalized, got %f", penalty)
	}

	// An enemy engineer two plies away waives the penalty.
	mustPlace(t, b, Position{8, 1}, Piece{Type: PieceEngineer, Player: PlayerNorth, ID: "n1"})
	if got := rearWithdrawPenalty(b, PlayerSouth, attacker, Position{10, 2}, Position{9, 2}, w); got != 0 {
		t.Fatalf("infiltration threat should waive the penalty, got %f", got)
	}

	// Staying inside the back rows is free.
	if got := rearWithdrawPenalty(b, PlayerSouth, attacker, Position{10, 2}, Position{10, 1}, w); got != 0 {
		t.Fatalf("moving within the back rows should not be penalized, got %f", got)
	}
}

func TestFlagPhaseScale(t *testing.T) {
	w := DefaultConfig().Heuristics

	early := NewBoard()
	mustPlace(t, early, Position{1, 1}, Piece{Type: PieceCommander, Player: PlayerNorth, ID: "nc"})
	mustPlace(t, early, Position{1, 2}, Piece{Type: PieceGeneral, Player: PlayerNorth, ID: "ng"})
	mustPlace(t, early, Position{1, 3}, Piece{Type: PieceDivision, Player: PlayerNorth, ID: "nd"})
	if got := flagPhaseScale(early, PlayerSouth, nil, w); got != w.FlagEarlyScale {
		t.Fatalf("expected early scale %f, got %f", w.FlagEarlyScale, got)
	}

	h := NewHistoryRecorder()
	h.RegisterPiece("nc", PlayerNorth, PieceCommander)
	h.Push(MoveRecord{Turn: 1, PieceID: "nc", Outcome: OutcomeQuietMove, RevealedIDs: []string{"nc"}})
	if got := flagPhaseScale(early, PlayerSouth, h, w); got != w.FlagExposedScale {
		t.Fatalf("expected exposed scale %f, got %f", w.FlagExposedScale, got)
	}

	endgame := NewBoard()
	mustPlace(t, endgame, Position{0, 1}, Piece{Type: PieceFlag, Player: PlayerNorth, ID: "nf"})
	if got := flagPhaseScale(endgame, PlayerSouth, nil, w); got != w.FlagEndgameScale {
		t.Fatalf("expected endgame scale %f, got %f", w.FlagEndgameScale, got)
	}
}

func TestFlagCaptureDominates(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, Position{1, 2}, Piece{Type: PieceGeneral, Player: PlayerSouth, ID: "s1"})
	mustPlace(t, b, Position{0, 2}, Piece{Type: PieceFlag, Player: PlayerNorth, Visible: true, ID: "nf"})
	w := DefaultConfig().Heuristics
	attacker := b.PieceAt(Position{1, 2})
	capture := EvaluateMove(b, PlayerSouth, attacker, Position{1, 2}, Position{0, 2}, nil, w)
	for _, m := range b.LegalMovesFor(PlayerSouth) {
		if m.To == (Position{0, 2}) {
			continue
		}
		other := EvaluateMove(b, PlayerSouth, attacker, m.From, m.To, nil, w)
		if other.Score >= capture.Score {
			t.Fatalf("flag capture should dominate %s: %f vs %f", m, other.Score, capture.Score)
		}
	}
}
