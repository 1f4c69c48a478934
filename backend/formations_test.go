package main

import "testing"

func TestDefaultFormationsValid(t *testing.T) {
	for _, player := range []Player{PlayerSouth, PlayerNorth} {
		if err := ValidateFormation(player, DefaultFormation(player)); err != nil {
			t.Fatalf("default %s formation invalid: %v", player, err)
		}
	}
}

func TestMirrorPosition(t *testing.T) {
	if got := mirrorPosition(Position{11, 1}); got != (Position{0, 3}) {
		t.Fatalf("mirror of (11,1): got %s", got)
	}
	if got := mirrorPosition(mirrorPosition(Position{7, 2})); got != (Position{7, 2}) {
		t.Fatalf("mirror must be an involution, got %s", got)
	}
}

func TestValidateFormationRejectsFlagOutsideHQ(t *testing.T) {
	formation := DefaultFormation(PlayerSouth)
	var flagPos Position
	for pos, pt := range formation {
		if pt == PieceFlag {
			flagPos = pos
		}
	}
	swap := Position{9, 2} // commander square, not a headquarters
	formation[flagPos], formation[swap] = formation[swap], formation[flagPos]
	if err := ValidateFormation(PlayerSouth, formation); err == nil {
		t.Fatalf("flag outside headquarters must be rejected")
	}
}

func TestValidateFormationRejectsForwardMine(t *testing.T) {
	formation := DefaultFormation(PlayerSouth)
	// Swap a rear mine with a front-row platoon.
	formation[Position{11, 0}], formation[Position{6, 0}] = formation[Position{6, 0}], formation[Position{11, 0}]
	if err := ValidateFormation(PlayerSouth, formation); err == nil {
		t.Fatalf("a mine outside the back two rows must be rejected")
	}
}

func TestValidateFormationRejectsWrongCounts(t *testing.T) {
	formation := DefaultFormation(PlayerSouth)
	formation[Position{6, 0}] = PieceGeneral // now two generals, two platoons
	if err := ValidateFormation(PlayerSouth, formation); err == nil {
		t.Fatalf("wrong piece counts must be rejected")
	}
}

func TestPlaceFormationRegistersPieces(t *testing.T) {
	board := NewBoard()
	history := NewHistoryRecorder()
	if err := PlaceFormation(board, PlayerSouth, DefaultFormation(PlayerSouth), history); err != nil {
		t.Fatalf("place formation: %v", err)
	}
	count := 0
	for idx := 0; idx < boardCells; idx++ {
		if p := board.pieces[idx]; p != nil {
			count++
			if p.ID == "" {
				t.Fatalf("piece at %s has no ID", positionOf(idx))
			}
			if p.Visible {
				t.Fatalf("pieces start hidden")
			}
		}
	}
	if count != piecesPerSide {
		t.Fatalf("expected %d pieces, got %d", piecesPerSide, count)
	}
}

func TestBothFormationsCoexist(t *testing.T) {
	board := NewBoard()
	history := NewHistoryRecorder()
	for _, player := range []Player{PlayerSouth, PlayerNorth} {
		if err := PlaceFormation(board, player, DefaultFormation(player), history); err != nil {
			t.Fatalf("place %s formation: %v", player, err)
		}
	}
	if !board.HasLegalMove(PlayerSouth) || !board.HasLegalMove(PlayerNorth) {
		t.Fatalf("both sides should have opening moves")
	}
}
