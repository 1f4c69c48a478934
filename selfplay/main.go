package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/muesli/termenv"
)

// selfplay starts an AI-versus-AI game on a running backend and renders the
// fully revealed board in the terminal until one side wins.

type pieceDTO struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Player  string `json:"player"`
	Type    string `json:"type"`
	Visible bool   `json:"visible"`
	ID      string `json:"id"`
}

type boardResponse struct {
	Pieces     []pieceDTO `json:"pieces"`
	NextPlayer string     `json:"next_player"`
	Status     string     `json:"status"`
	Turn       int        `json:"turn"`
}

type statusResponse struct {
	Status     string `json:"status"`
	NextPlayer string `json:"next_player"`
	Turn       int    `json:"turn"`
	WinReason  string `json:"win_reason"`
}

type watcher struct {
	client  *http.Client
	baseURL string
	output  *termenv.Output
}

const (
	boardRows = 12
	boardCols = 5
)

var pieceGlyphs = map[string]string{
	"commander": "C!",
	"general":   "G ",
	"division":  "D ",
	"brigade":   "Br",
	"regiment":  "R ",
	"battalion": "Ba",
	"company":   "Co",
	"platoon":   "P ",
	"engineer":  "E ",
	"bomb":      "B*",
	"mine":      "M^",
	"flag":      "F#",
}

func main() {
	addr := flag.String("addr", "http://127.0.0.1:8765", "backend base URL")
	interval := flag.Duration("interval", 300*time.Millisecond, "poll interval")
	maxTurns := flag.Int("max-turns", 600, "stop watching after this many turns")
	flag.Parse()

	w := &watcher{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(*addr, "/"),
		output:  termenv.NewOutput(os.Stdout),
	}

	if err := w.startSelfplay(); err != nil {
		fmt.Fprintf(os.Stderr, "selfplay: %v\n", err)
		os.Exit(1)
	}

	lastTurn := -1
	for {
		status, err := w.fetchStatus()
		if err != nil {
			fmt.Fprintf(os.Stderr, "selfplay: %v\n", err)
			os.Exit(1)
		}
		if status.Turn != lastTurn {
			lastTurn = status.Turn
			board, err := w.fetchBoard()
			if err != nil {
				fmt.Fprintf(os.Stderr, "selfplay: %v\n", err)
				os.Exit(1)
			}
			w.render(board, status)
		}
		if status.Status != "running" {
			w.printResult(status)
			return
		}
		if *maxTurns > 0 && status.Turn >= *maxTurns {
			fmt.Printf("\nstopping after %d turns, game still running\n", status.Turn)
			return
		}
		time.Sleep(*interval)
	}
}

func (w *watcher) startSelfplay() error {
	body := bytes.NewBufferString(`{"mode":"ava"}`)
	resp, err := w.client.Post(w.baseURL+"/api/reset", "application/json", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("reset failed: %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}
	return nil
}

func (w *watcher) fetchStatus() (statusResponse, error) {
	var status statusResponse
	err := w.getJSON("/api/status", &status)
	return status, err
}

func (w *watcher) fetchBoard() (boardResponse, error) {
	var board boardResponse
	err := w.getJSON("/api/board?viewer=all", &board)
	return board, err
}

func (w *watcher) getJSON(path string, out any) error {
	resp, err := w.client.Get(w.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (w *watcher) render(board boardResponse, status statusResponse) {
	p := w.output.ColorProfile()
	south := p.Color("1")
	north := p.Color("4")
	dim := p.Color("8")

	grid := make(map[[2]int]pieceDTO, len(board.Pieces))
	for _, piece := range board.Pieces {
		grid[[2]int{piece.Row, piece.Col}] = piece
	}

	w.output.ClearScreen()
	fmt.Printf("turn %d  next %s  status %s\n\n", status.Turn, status.NextPlayer, status.Status)
	for row := 0; row < boardRows; row++ {
		var cells []string
		for col := 0; col < boardCols; col++ {
			piece, ok := grid[[2]int{row, col}]
			if !ok {
				cells = append(cells, w.output.String(" .").Foreground(dim).String())
				continue
			}
			glyph, ok := pieceGlyphs[piece.Type]
			if !ok {
				glyph = "??"
			}
			style := w.output.String(glyph)
			if piece.Player == "south" {
				style = style.Foreground(south)
			} else {
				style = style.Foreground(north)
			}
			if piece.Visible {
				style = style.Bold()
			}
			cells = append(cells, style.String())
		}
		fmt.Println(strings.Join(cells, " "))
		if row == 5 {
			fmt.Println(w.output.String("-- -- -- -- --").Foreground(dim).String())
		}
	}
	fmt.Println()
	w.printCounts(board)
}

func (w *watcher) printCounts(board boardResponse) {
	counts := map[string]map[string]int{"south": {}, "north": {}}
	for _, piece := range board.Pieces {
		counts[piece.Player][piece.Type]++
	}
	for _, side := range []string{"south", "north"} {
		types := make([]string, 0, len(counts[side]))
		for t := range counts[side] {
			types = append(types, t)
		}
		sort.Strings(types)
		var parts []string
		for _, t := range types {
			parts = append(parts, fmt.Sprintf("%s:%d", t, counts[side][t]))
		}
		fmt.Printf("%s  %s\n", side, strings.Join(parts, " "))
	}
}

func (w *watcher) printResult(status statusResponse) {
	p := w.output.ColorProfile()
	winner := w.output.String(status.Status).Foreground(p.Color("2")).Bold()
	fmt.Printf("\nresult: %s (%s) after %d turns\n", winner, status.WinReason, status.Turn)
}
