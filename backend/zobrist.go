package main

type ZobristTable struct {
	cells [boardCells * int(pieceTypeCount) * 2 * 2]uint64
	side  uint64
}

var zobristTable = newZobristTable()

func newZobristTable() *ZobristTable {
	rng := splitmix64{state: 0x9e3779b97f4a7c15 ^ uint64(boardCells)}
	table := &ZobristTable{}
	for i := range table.cells {
		table.cells[i] = rng.next()
	}
	table.side = rng.next()
	return table
}

func (z *ZobristTable) piece(idx int, p *Piece) uint64 {
	slot := ((idx*int(pieceTypeCount)+int(p.Type))*2 + int(p.Player)) * 2
	if p.Visible {
		slot++
	}
	return z.cells[slot]
}

// ComputeHash fingerprints the full position including hidden identities and
// per-piece visibility, plus the side to move. Used as the transposition
// cache key for one search invocation.
func ComputeHash(board *Board, toMove Player) uint64 {
	var hash uint64
	for idx := 0; idx < boardCells; idx++ {
		p := board.pieces[idx]
		if p == nil {
			continue
		}
		hash ^= zobristTable.piece(idx, p)
	}
	if toMove == PlayerNorth {
		hash ^= zobristTable.side
	}
	return hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
