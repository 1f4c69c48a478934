package main

const (
	historyMaxRecords = 512

	// invaderWindow is the default recency window for invader detection.
	invaderWindow = 12
	// activityWindow bounds how far back activity counting looks.
	activityWindow = 16
	// activityEscalationThreshold is the move/attack count above which an
	// unknown piece is assumed to be valuable.
	activityEscalationThreshold = 3
)

type MoveRecord struct {
	Turn        int          `json:"turn"`
	Player      Player       `json:"player"`
	PieceID     string       `json:"piece_id"`
	From        Position     `json:"from"`
	To          Position     `json:"to"`
	Outcome     MoveOutcome  `json:"outcome"`
	DefenderID  string       `json:"defender_piece_id,omitempty"`
	DeadIDs     []string     `json:"dead_piece_ids,omitempty"`
	RevealedIDs []string     `json:"revealed_piece_ids,omitempty"`
}

type pieceInfo struct {
	Player Player
	Type   PieceType
}

// HistoryRecorder is the read-only history collaborator of the search core:
// an append-only, bounded move/capture log plus the derived queries the
// scoring heuristics consume. All query methods tolerate a nil receiver so
// the search degrades gracefully without history.
type HistoryRecorder struct {
	records  []MoveRecord
	pieces   map[string]pieceInfo
	dead     map[string]bool
	revealed map[string]bool
}

func NewHistoryRecorder() *HistoryRecorder {
	return &HistoryRecorder{
		pieces:   make(map[string]pieceInfo),
		dead:     make(map[string]bool),
		revealed: make(map[string]bool),
	}
}

// RegisterPiece associates an opaque piece ID with its side and type so that
// death/visibility queries can resolve the commander.
func (h *HistoryRecorder) RegisterPiece(id string, player Player, pieceType PieceType) {
	if h == nil || id == "" {
		return
	}
	h.pieces[id] = pieceInfo{Player: player, Type: pieceType}
}

func (h *HistoryRecorder) Push(record MoveRecord) {
	if h == nil {
		return
	}
	h.records = append(h.records, record)
	if len(h.records) > historyMaxRecords {
		h.records = h.records[len(h.records)-historyMaxRecords:]
	}
	for _, id := range record.DeadIDs {
		h.dead[id] = true
	}
	for _, id := range record.RevealedIDs {
		h.revealed[id] = true
	}
}

func (h *HistoryRecorder) Clear() {
	if h == nil {
		return
	}
	h.records = nil
	h.dead = make(map[string]bool)
	h.revealed = make(map[string]bool)
}

func (h *HistoryRecorder) Size() int {
	if h == nil {
		return 0
	}
	return len(h.records)
}

func (h *HistoryRecorder) Records() []MoveRecord {
	if h == nil {
		return nil
	}
	return append([]MoveRecord(nil), h.records...)
}

// IsInvader reports whether the piece captured an enemy piece within the last
// window records, either as the attacker or by defeating its attacker.
func (h *HistoryRecorder) IsInvader(pieceID string, window int) bool {
	if h == nil || pieceID == "" {
		return false
	}
	for _, r := range h.tail(window) {
		switch r.Outcome {
		case OutcomeAttackerWins:
			if r.PieceID == pieceID {
				return true
			}
		case OutcomeDefenderWins:
			if r.DefenderID == pieceID {
				return true
			}
		}
	}
	return false
}

// CaptureCount counts the piece's combat wins within the window; used to
// grade how hot an invader is.
func (h *HistoryRecorder) CaptureCount(pieceID string, window int) int {
	if h == nil || pieceID == "" {
		return 0
	}
	count := 0
	for _, r := range h.tail(window) {
		if (r.Outcome == OutcomeAttackerWins && r.PieceID == pieceID) ||
			(r.Outcome == OutcomeDefenderWins && r.DefenderID == pieceID) {
			count++
		}
	}
	return count
}

// InvadersAgainst lists enemy piece IDs that captured one of victim's pieces
// within the window and are still alive, most recent first.
func (h *HistoryRecorder) InvadersAgainst(victim Player, window int) []string {
	if h == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	records := h.tail(window)
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		var winnerID string
		switch r.Outcome {
		case OutcomeAttackerWins:
			winnerID = r.PieceID
		case OutcomeDefenderWins:
			winnerID = r.DefenderID
		default:
			continue
		}
		info, ok := h.pieces[winnerID]
		if !ok || info.Player == victim {
			continue
		}
		if h.dead[winnerID] || seen[winnerID] {
			continue
		}
		seen[winnerID] = true
		out = append(out, winnerID)
	}
	return out
}

// ActivityCount counts the piece's recent moves and attacks. Frequent
// activity by a hidden piece raises its assumed value.
func (h *HistoryRecorder) ActivityCount(pieceID string) int {
	if h == nil || pieceID == "" {
		return 0
	}
	count := 0
	for _, r := range h.tail(activityWindow) {
		if r.PieceID == pieceID {
			count++
		}
	}
	return count
}

// TopCommandVisibleOrDead reports whether side's commander has been revealed
// or eliminated.
func (h *HistoryRecorder) TopCommandVisibleOrDead(side Player) bool {
	if h == nil {
		return false
	}
	for id, info := range h.pieces {
		if info.Player != side || info.Type != PieceCommander {
			continue
		}
		return h.dead[id] || h.revealed[id]
	}
	return false
}

func (h *HistoryRecorder) IsDead(pieceID string) bool {
	if h == nil {
		return false
	}
	return h.dead[pieceID]
}

func (h *HistoryRecorder) tail(window int) []MoveRecord {
	if window <= 0 || window >= len(h.records) {
		return h.records
	}
	return h.records[len(h.records)-window:]
}
