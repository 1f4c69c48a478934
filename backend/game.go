package main

import (
	"fmt"
	"time"
)

type GameStatus int

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusSouthWon
	StatusNorthWon
)

func (s GameStatus) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusSouthWon:
		return "south_won"
	case StatusNorthWon:
		return "north_won"
	default:
		return "not_started"
	}
}

type PlayerKind int

const (
	KindHuman PlayerKind = iota
	KindAI
)

type GameSettings struct {
	SouthKind   PlayerKind `json:"-"`
	NorthKind   PlayerKind `json:"-"`
	SouthStarts bool       `json:"south_starts"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		SouthKind:   KindHuman,
		NorthKind:   KindAI,
		SouthStarts: true,
	}
}

// Game owns the board, the turn order and the history recorder; it is the
// only writer of history.
type Game struct {
	settings  GameSettings
	board     *Board
	history   *HistoryRecorder
	toMove    Player
	status    GameStatus
	turn      int
	winReason string
	southAI   *AIPlayer
	northAI   *AIPlayer
	turnStart time.Time
}

func NewGame(settings GameSettings) (*Game, error) {
	g := &Game{}
	if err := g.Reset(settings); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Reset(settings GameSettings) error {
	g.settings = settings
	g.board = NewBoard()
	g.history = NewHistoryRecorder()
	g.status = StatusNotStarted
	g.turn = 0
	g.winReason = ""
	g.southAI = NewAIPlayer(PlayerSouth)
	g.northAI = NewAIPlayer(PlayerNorth)
	if settings.SouthStarts {
		g.toMove = PlayerSouth
	} else {
		g.toMove = PlayerNorth
	}
	for _, player := range []Player{PlayerSouth, PlayerNorth} {
		if err := PlaceFormation(g.board, player, DefaultFormation(player), g.history); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	g.turnStart = time.Now()
	return nil
}

func (g *Game) Start() {
	if g.status == StatusNotStarted {
		g.status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) Board() *Board {
	return g.board
}

func (g *Game) History() *HistoryRecorder {
	return g.history
}

func (g *Game) ToMove() Player {
	return g.toMove
}

func (g *Game) Status() GameStatus {
	return g.status
}

func (g *Game) WinReason() string {
	return g.winReason
}

func (g *Game) Turn() int {
	return g.turn
}

func (g *Game) CurrentPlayerIsHuman() bool {
	if g.toMove == PlayerSouth {
		return g.settings.SouthKind == KindHuman
	}
	return g.settings.NorthKind == KindHuman
}

// TryApplyMove validates and plays one move for the side to move, records it
// in history and resolves the win conditions: flag capture or leaving the
// opponent without a legal move.
func (g *Game) TryApplyMove(move Move) error {
	if g.status != StatusRunning {
		return fmt.Errorf("game not running")
	}
	piece := g.board.PieceAt(move.From)
	if piece == nil || piece.Player != g.toMove {
		return fmt.Errorf("%w: no %s piece at %s", ErrInvalidMove, g.toMove, move.From)
	}
	result, err := g.board.Apply(move)
	if err != nil {
		return err
	}

	g.turn++
	g.history.Push(MoveRecord{
		Turn:        g.turn,
		Player:      g.toMove,
		PieceID:     result.AttackerID,
		From:        move.From,
		To:          move.To,
		Outcome:     result.Outcome,
		DefenderID:  result.DefenderID,
		DeadIDs:     result.DeadIDs,
		RevealedIDs: result.RevealedIDs,
	})

	mover := g.toMove
	opponent := otherPlayer(mover)
	switch {
	case result.FlagCaptured:
		g.finish(mover, "flag_captured")
	case !g.board.HasLegalMove(opponent):
		g.finish(mover, "opponent_immobilized")
	default:
		g.toMove = opponent
		g.turnStart = time.Now()
	}
	return nil
}

// PlayAITurn asks the AI for the side to move and applies its choice.
func (g *Game) PlayAITurn() (Move, error) {
	if g.status != StatusRunning {
		return Move{}, fmt.Errorf("game not running")
	}
	if g.CurrentPlayerIsHuman() {
		return Move{}, fmt.Errorf("current player is human")
	}
	ai := g.southAI
	if g.toMove == PlayerNorth {
		ai = g.northAI
	}
	move, err := ai.ChooseMove(g.board, g.history)
	if err != nil {
		return Move{}, err
	}
	if err := g.TryApplyMove(move); err != nil {
		return Move{}, err
	}
	return move, nil
}

func (g *Game) finish(winner Player, reason string) {
	g.winReason = reason
	if winner == PlayerSouth {
		g.status = StatusSouthWon
	} else {
		g.status = StatusNorthWon
	}
}

// TurnStartedAtMs reports when the current turn began, for the UI clock.
func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}
