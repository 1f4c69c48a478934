package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type StatusResponse struct {
	Status          string       `json:"status"`
	NextPlayer      string       `json:"next_player"`
	Turn            int          `json:"turn"`
	WinReason       string       `json:"win_reason"`
	History         []MoveRecord `json:"history"`
	TurnStartedAtMs int64        `json:"turn_started_at_ms"`
	Config          Config       `json:"config"`
}

type apiMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type resetRequest struct {
	Mode        string `json:"mode,omitempty"`
	SouthStarts *bool  `json:"south_starts"`
}

// settingsForMode maps the wire mode names onto player kinds. "hva" (human
// South versus AI North) is the default.
func settingsForMode(mode string, base GameSettings) GameSettings {
	settings := base
	switch mode {
	case "hvh":
		settings.SouthKind, settings.NorthKind = KindHuman, KindHuman
	case "avh":
		settings.SouthKind, settings.NorthKind = KindAI, KindHuman
	case "ava":
		settings.SouthKind, settings.NorthKind = KindAI, KindAI
	case "", "hva":
		settings.SouthKind, settings.NorthKind = KindHuman, KindAI
	}
	return settings
}

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()
	log.Logger = logger
	SetSearchLogger(logger.With().Str("component", "search").Logger())

	if *configPath != "" {
		config, err := LoadConfigFile(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *configPath).Msg("load config")
		}
		configStore.Update(config)
	}

	controller, err := NewGameController(DefaultGameSettings())
	if err != nil {
		logger.Fatal().Err(err).Msg("new game")
	}
	if err := controller.Reset(DefaultGameSettings()); err != nil {
		logger.Fatal().Err(err).Msg("start game")
	}

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx.Done())

	// The human plays South by default; broadcast snapshots use that view so
	// hidden North pieces stay masked.
	viewer := PlayerSouth
	broadcast := func() {
		hub.broadcastBoard <- controller.Snapshot(viewer, false)
		hub.broadcastHistory <- historyPayload{History: controller.HistoryRecords()}
		hub.broadcastStatus <- controller.Status()
	}

	// Drive AI turns off a ticker so the HTTP handlers never block on search.
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				move, played, err := controller.PlayAITurnIfDue()
				if err != nil {
					logger.Error().Err(err).Msg("ai turn failed")
					continue
				}
				if played {
					logger.Info().
						Str("from", move.From.String()).
						Str("to", move.To.String()).
						Msg("ai moved")
					broadcast()
				}
			}
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controller.Status())
	})

	r.Get("/api/board", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("viewer") {
		case "all":
			writeJSON(w, http.StatusOK, controller.Snapshot(viewer, true))
		case "north":
			writeJSON(w, http.StatusOK, controller.Snapshot(PlayerNorth, false))
		default:
			writeJSON(w, http.StatusOK, controller.Snapshot(viewer, false))
		}
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if err := controller.ApplyHumanMove(Move{From: payload.From, To: payload.To}); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		broadcast()
		writeJSON(w, http.StatusOK, controller.Status())
	})

	r.Post("/api/reset", func(w http.ResponseWriter, r *http.Request) {
		var payload resetRequest
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
				return
			}
		}
		settings := settingsForMode(payload.Mode, DefaultGameSettings())
		if payload.SouthStarts != nil {
			settings.SouthStarts = *payload.SouthStarts
		}
		if err := controller.Reset(settings); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		broadcast()
		writeJSON(w, http.StatusOK, controller.Status())
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, GetConfig())
	})

	r.Post("/api/config", func(w http.ResponseWriter, r *http.Request) {
		config := GetConfig()
		if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if err := SearchConfigFrom(config).Validate(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		configStore.Update(config)
		hub.broadcastStatus <- controller.Status()
		writeJSON(w, http.StatusOK, GetConfig())
	})

	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, viewer, w, r)
	})

	server := &http.Server{
		Addr:    GetConfig().ServerAddr,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	logger.Info().Str("addr", server.Addr).Msg("backend listening")
	select {
	case <-sigCtx.Done():
		logger.Info().Msg("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			logger.Error().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			logger.Error().Err(closeErr).Msg("forced close failed")
		}
	}
	cancel()
}

func serveWS(hub *Hub, controller *GameController, viewer Player, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controller.Status())})
	client.sendJSON(wsMessage{Type: "board", Payload: mustMarshal(controller.Snapshot(viewer, false))})

	idle := time.Duration(GetConfig().WsPingIntervalSec) * time.Second
	if idle <= 0 {
		idle = 30 * time.Second
	}
	go func() {
		defer conn.Close()
		if err := client.writePump(conn, idle); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controller.Status())})
		case "request_board":
			client.sendJSON(wsMessage{Type: "board", Payload: mustMarshal(controller.Snapshot(viewer, false))})
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("write json response")
	}
}
