package main

import "testing"

func TestHashSideToMove(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, Position{7, 2}, Piece{Type: PieceCompany, Player: PlayerSouth, ID: "s1"})
	if ComputeHash(b, PlayerSouth) == ComputeHash(b, PlayerNorth) {
		t.Fatalf("hash must depend on the side to move")
	}
}

func TestHashIdenticalForClone(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, Position{7, 2}, Piece{Type: PieceCompany, Player: PlayerSouth, ID: "s1"})
	mustPlace(t, b, Position{6, 2}, Piece{Type: PieceMine, Player: PlayerNorth, ID: "n1"})
	if ComputeHash(b, PlayerSouth) != ComputeHash(b.Clone(), PlayerSouth) {
		t.Fatalf("clone must hash identically")
	}
}

func TestHashSensitiveToVisibility(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, Position{7, 2}, Piece{Type: PieceCompany, Player: PlayerSouth, ID: "s1"})
	before := ComputeHash(b, PlayerSouth)
	b.PieceAt(Position{7, 2}).Visible = true
	if ComputeHash(b, PlayerSouth) == before {
		t.Fatalf("hash must change when a piece is revealed")
	}
}

func TestHashSensitiveToMoves(t *testing.T) {
	b := NewBoard()
	mustPlace(t, b, Position{7, 2}, Piece{Type: PieceCompany, Player: PlayerSouth, ID: "s1"})
	before := ComputeHash(b, PlayerNorth)
	if _, err := b.Apply(Move{From: Position{7, 2}, To: Position{6, 2}}); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if ComputeHash(b, PlayerNorth) == before {
		t.Fatalf("hash must change after a move")
	}
}

func TestHashSensitiveToPieceType(t *testing.T) {
	a := NewBoard()
	mustPlace(t, a, Position{7, 2}, Piece{Type: PieceCompany, Player: PlayerSouth, ID: "s1"})
	b := NewBoard()
	mustPlace(t, b, Position{7, 2}, Piece{Type: PieceBattalion, Player: PlayerSouth, ID: "s1"})
	if ComputeHash(a, PlayerSouth) == ComputeHash(b, PlayerSouth) {
		t.Fatalf("hash must distinguish hidden identities")
	}
}
