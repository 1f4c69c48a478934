package main

import (
	"errors"
	"sync"
)

var ErrNotHumanTurn = errors.New("not a human turn")

// GameController serializes access to the game for the HTTP/WS layer.
type GameController struct {
	mu   sync.Mutex
	game *Game
}

func NewGameController(settings GameSettings) (*GameController, error) {
	game, err := NewGame(settings)
	if err != nil {
		return nil, err
	}
	return &GameController{game: game}, nil
}

func (gc *GameController) ApplyHumanMove(move Move) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.CurrentPlayerIsHuman() {
		return ErrNotHumanTurn
	}
	return gc.game.TryApplyMove(move)
}

func (gc *GameController) PlayAITurnIfDue() (Move, bool, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.game.Status() != StatusRunning || gc.game.CurrentPlayerIsHuman() {
		return Move{}, false, nil
	}
	move, err := gc.game.PlayAITurn()
	if err != nil {
		return Move{}, false, err
	}
	return move, true, nil
}

func (gc *GameController) Snapshot(viewer Player, revealAll bool) boardPayload {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return boardSnapshot(gc.game, viewer, revealAll)
}

func (gc *GameController) Status() StatusResponse {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return statusResponse(gc.game)
}

func (gc *GameController) HistoryRecords() []MoveRecord {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History().Records()
}

func (gc *GameController) Reset(settings GameSettings) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if err := gc.game.Reset(settings); err != nil {
		return err
	}
	gc.game.Start()
	return nil
}

// boardSnapshot projects the board for one viewer: hidden enemy pieces keep
// their square but drop type and ID. revealAll bypasses the masking for
// observer views.
func boardSnapshot(game *Game, viewer Player, revealAll bool) boardPayload {
	payload := boardPayload{
		NextPlayer: game.ToMove().String(),
		Status:     game.Status().String(),
		Turn:       game.Turn(),
	}
	board := game.Board()
	for idx := 0; idx < boardCells; idx++ {
		pos := positionOf(idx)
		p := board.PieceAt(pos)
		if p == nil {
			continue
		}
		dto := pieceDTO{
			Row:     pos.Row,
			Col:     pos.Col,
			Player:  p.Player.String(),
			Visible: p.Visible,
		}
		if revealAll || p.Player == viewer || p.Visible {
			dto.Type = p.Type.String()
			dto.ID = p.ID
		}
		payload.Pieces = append(payload.Pieces, dto)
	}
	return payload
}

func statusResponse(game *Game) StatusResponse {
	return StatusResponse{
		Status:          game.Status().String(),
		NextPlayer:      game.ToMove().String(),
		Turn:            game.Turn(),
		WinReason:       game.WinReason(),
		History:         game.History().Records(),
		TurnStartedAtMs: game.TurnStartedAtMs(),
		Config:          GetConfig(),
	}
}
