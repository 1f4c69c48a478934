package main

import (
	"fmt"
	"sort"
)

// Formation maps a side's placement squares to piece types. South squares
// are authoritative; North uses the point-mirrored layout.
type Formation map[Position]PieceType

// defaultSouthFormation is a balanced opening deal: mines and the flag in
// the rear, bombs behind the second line, heavy pieces on the flanks and a
// screening line on the front railway row.
var defaultSouthFormation = Formation{
	{6, 0}: PiecePlatoon, {6, 1}: PieceCompany, {6, 2}: PieceBattalion, {6, 3}: PieceCompany, {6, 4}: PiecePlatoon,
	{7, 0}: PieceRegiment, {7, 2}: PieceEngineer, {7, 4}: PieceRegiment,
	{8, 0}: PieceBrigade, {8, 1}: PieceDivision, {8, 3}: PieceDivision, {8, 4}: PieceBrigade,
	{9, 0}: PieceBattalion, {9, 2}: PieceCommander, {9, 4}: PieceGeneral,
	{10, 0}: PieceBomb, {10, 1}: PieceEngineer, {10, 2}: PieceCompany, {10, 3}: PieceEngineer, {10, 4}: PieceBomb,
	{11, 0}: PieceMine, {11, 1}: PieceFlag, {11, 2}: PieceMine, {11, 3}: PiecePlatoon, {11, 4}: PieceMine,
}

// mirrorPosition reflects a square through the board center, mapping one
// side's layout onto the other's.
func mirrorPosition(pos Position) Position {
	return Position{Row: boardRows - 1 - pos.Row, Col: boardCols - 1 - pos.Col}
}

func DefaultFormation(player Player) Formation {
	if player == PlayerSouth {
		out := make(Formation, len(defaultSouthFormation))
		for pos, t := range defaultSouthFormation {
			out[pos] = t
		}
		return out
	}
	out := make(Formation, len(defaultSouthFormation))
	for pos, t := range defaultSouthFormation {
		out[mirrorPosition(pos)] = t
	}
	return out
}

func ownFrontRow(player Player) int {
	if player == PlayerSouth {
		return 6
	}
	return 5
}

// ValidateFormation enforces the placement rules: full deal, everything in
// the owner's half, nothing in camps, flag in a headquarters, mines confined
// to the back two rows, bombs off the front row.
func ValidateFormation(player Player, formation Formation) error {
	counts := make(map[PieceType]int)
	for pos, pieceType := range formation {
		if !inBounds(pos) {
			return fmt.Errorf("formation: %s out of bounds", pos)
		}
		if PlayerArea(pos) != player {
			return fmt.Errorf("formation: %s outside %s territory", pos, player)
		}
		if CellTypeAt(pos) == CellCamp {
			return fmt.Errorf("formation: camp %s must start empty", pos)
		}
		switch pieceType {
		case PieceFlag:
			if CellTypeAt(pos) != CellHeadquarters {
				return fmt.Errorf("formation: flag must start in a headquarters, got %s", pos)
			}
		case PieceMine:
			if !InBackTwoRows(player, pos) {
				return fmt.Errorf("formation: mine at %s must be in the back two rows", pos)
			}
		case PieceBomb:
			if pos.Row == ownFrontRow(player) {
				return fmt.Errorf("formation: bomb at %s may not start on the front row", pos)
			}
		}
		counts[pieceType]++
	}
	for pieceType, want := range initialPieceCounts {
		if counts[pieceType] != want {
			return fmt.Errorf("formation: want %d %s, got %d", want, pieceType, counts[pieceType])
		}
	}
	if len(formation) != piecesPerSide {
		return fmt.Errorf("formation: want %d pieces, got %d", piecesPerSide, len(formation))
	}
	return nil
}

// PlaceFormation deals a side's pieces onto the board and registers their
// IDs with the history recorder. IDs are assigned in row-major order.
func PlaceFormation(board *Board, player Player, formation Formation, history *HistoryRecorder) error {
	if err := ValidateFormation(player, formation); err != nil {
		return err
	}
	positions := make([]Position, 0, len(formation))
	for pos := range formation {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		return cellIndex(positions[i]) < cellIndex(positions[j])
	})
	for i, pos := range positions {
		pieceType := formation[pos]
		id := fmt.Sprintf("%s_%03d", player, i+1)
		if !board.Place(pos, Piece{Type: pieceType, Player: player, ID: id}) {
			return fmt.Errorf("formation: square %s already occupied", pos)
		}
		history.RegisterPiece(id, player, pieceType)
	}
	return nil
}
