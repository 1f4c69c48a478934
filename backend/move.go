package main

import "fmt"

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m Move) Equals(other Move) bool {
	return m.From == other.From && m.To == other.To
}

func (m Move) String() string {
	return m.From.String() + "->" + m.To.String()
}
