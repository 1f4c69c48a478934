package main

import "testing"

func TestSortMovesDescendingForMaximizer(t *testing.T) {
	b := NewBoard()
	if err := PlaceFormation(b, PlayerSouth, DefaultFormation(PlayerSouth), nil); err != nil {
		t.Fatalf("place formation: %v", err)
	}
	w := DefaultConfig().Heuristics
	moves := b.LegalMovesFor(PlayerSouth)
	scored := scoreMovesForSide(b, PlayerSouth, moves, true, nil, w)
	if len(scored) != len(moves) {
		t.Fatalf("expected %d scored moves, got %d", len(moves), len(scored))
	}
	for i := 1; i < len(scored); i++ {
		if scored[i-1].Breakdown.Score < scored[i].Breakdown.Score {
			t.Fatalf("moves not sorted descending at %d", i)
		}
	}
}

func TestSortMovesAscendingForMinimizer(t *testing.T) {
	b := NewBoard()
	if err := PlaceFormation(b, PlayerNorth, DefaultFormation(PlayerNorth), nil); err != nil {
		t.Fatalf("place formation: %v", err)
	}
	w := DefaultConfig().Heuristics
	moves := b.LegalMovesFor(PlayerNorth)
	scored := scoreMovesForSide(b, PlayerNorth, moves, false, nil, w)
	for i := 1; i < len(scored); i++ {
		if scored[i-1].Breakdown.Score > scored[i].Breakdown.Score {
			t.Fatalf("moves not sorted ascending at %d", i)
		}
	}
}

func TestSortIsDeterministic(t *testing.T) {
	b := NewBoard()
	if err := PlaceFormation(b, PlayerSouth, DefaultFormation(PlayerSouth), nil); err != nil {
		t.Fatalf("place formation: %v", err)
	}
	w := DefaultConfig().Heuristics
	first := SortMovesForSide(b, PlayerSouth, b.LegalMovesFor(PlayerSouth), true, nil, w)
	second := SortMovesForSide(b, PlayerSouth, b.LegalMovesFor(PlayerSouth), true, nil, w)
	if len(first) != len(second) {
		t.Fatalf("lengths differ between runs")
	}
	for i := range first {
		if !first[i].Equals(second[i]) {
			t.Fatalf("order differs at %d: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestEvaluateStateEmptyBoardIsZero(t *testing.T) {
	w := DefaultConfig().Heuristics
	if got := EvaluateState(NewBoard(), PlayerSouth, nil, w); got != 0 {
		t.Fatalf("empty board should evaluate to zero, got %f", got)
	}
}

func TestEvaluateStateFavorsCaptureOpportunity(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, Position{1, 2}, Piece{Type: PieceGeneral, Player: PlayerSouth, ID: "s1"})
	mustPlace(t, b, Position{0, 2}, Piece{Type: PieceFlag, Player: PlayerNorth, Visible: true, ID: "nf"})
	w := DefaultConfig().Heuristics
	if got := EvaluateState(b, PlayerSouth, nil, w); got <= 0 {
		t.Fatalf("a flag en prise should favor the attacker, got %f", got)
	}
}

func TestEvaluateStateAntisymmetricWhenOneSided(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, Position{1, 2}, Piece{Type: PieceGeneral, Player: PlayerSouth, ID: "s1"})
	mustPlace(t, b, Position{0, 2}, Piece{Type: PieceFlag, Player: PlayerNorth, Visible: true, ID: "nf"})
	w := DefaultConfig().Heuristics
	south := EvaluateState(b, PlayerSouth, nil, w)
	north := EvaluateState(b, PlayerNorth, nil, w)
	if south != -north {
		t.Fatalf("evaluation should negate with perspective: %f vs %f", south, north)
	}
}
