package main

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
)

// SearchConfig bounds one search invocation. Validation happens at call
// time; a zero TimeLimitMs is allowed and degrades the root to a one-ply
// search over static child evaluations.
type SearchConfig struct {
	Depth                    int     `json:"depth"`
	BeamWidth                int     `json:"beam_width"`
	Discount                 float64 `json:"discount"`
	TimeLimitMs              int     `json:"time_limit_ms"`
	UseAlphaBeta             bool    `json:"use_alpha_beta"`
	ApplyStyleFilterFirstPly bool    `json:"apply_style_filter_first_ply"`
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Depth:                    3,
		BeamWidth:                8,
		Discount:                 0.95,
		TimeLimitMs:              5000,
		UseAlphaBeta:             true,
		ApplyStyleFilterFirstPly: true,
	}
}

func SearchConfigFrom(config Config) SearchConfig {
	return SearchConfig{
		Depth:                    config.AiDepth,
		BeamWidth:                config.AiBeamWidth,
		Discount:                 config.AiDiscount,
		TimeLimitMs:              config.AiTimeLimitMs,
		UseAlphaBeta:             config.AiUseAlphaBeta,
		ApplyStyleFilterFirstPly: config.AiStyleFilterFirstPly,
	}
}

func (c SearchConfig) Validate() error {
	if c.Depth < 0 {
		return fmt.Errorf("search config: depth %d must be >= 0", c.Depth)
	}
	if c.BeamWidth < 1 {
		return fmt.Errorf("search config: beam width %d must be >= 1", c.BeamWidth)
	}
	if c.Discount <= 0 || c.Discount >= 1 {
		return fmt.Errorf("search config: discount %g must be in (0,1)", c.Discount)
	}
	if c.TimeLimitMs < 0 {
		return fmt.Errorf("search config: time limit %dms must be >= 0", c.TimeLimitMs)
	}
	return nil
}

type SearchStats struct {
	Explored    int
	CacheProbes int
	CacheHits   int
	CacheSize   int
	Elapsed     time.Duration
}

type SearchResult struct {
	BestMove Move
	Score    float64
	Stats    SearchStats
}

var searchLogger = zerolog.Nop()

// SetSearchLogger routes search diagnostics through the given logger. The
// default is a no-op logger so library callers and tests pay nothing.
func SetSearchLogger(logger zerolog.Logger) {
	searchLogger = logger
}

// searchContext carries the per-invocation state: the deadline, the scoped
// transposition cache and the immutable inputs. A single goroutine owns it;
// the only suspension point is the deadline check at each node.
type searchContext struct {
	cfg         SearchConfig
	weights     HeuristicConfig
	history     *HistoryRecorder
	startPlayer Player
	deadline    time.Time
	cache       *TranspositionCache
	firstPly    []Move
	preferred   MoveCategory
	explored    int
}

func (ctx *searchContext) timeExceeded() bool {
	return !time.Now().Before(ctx.deadline)
}

// AlphaBetaSearch runs the depth-limited alpha-beta/beam search from
// startPlayer's point of view and returns the best root move with its
// backed-up value. firstPlyMoves, when non-nil, replaces root move
// generation; preferred, when set together with the style-filter flag,
// restricts root candidates to one category (falling back to the full set if
// nothing matches). Budget exhaustion is not an error: open frames degrade
// to static evaluation and the best move found so far is returned.
func AlphaBetaSearch(board *Board, startPlayer Player, cfg SearchConfig, history *HistoryRecorder, firstPlyMoves []Move, preferred MoveCategory) (SearchResult, error) {
	if err := cfg.Validate(); err != nil {
		return SearchResult{}, err
	}
	start := time.Now()
	ctx := &searchContext{
		cfg:         cfg,
		weights:     GetConfig().Heuristics,
		history:     history,
		startPlayer: startPlayer,
		deadline:    start.Add(time.Duration(cfg.TimeLimitMs) * time.Millisecond),
		cache:       newTranspositionCache(),
		firstPly:    firstPlyMoves,
		preferred:   preferred,
	}
	searchLogger.Debug().
		Str("player", startPlayer.String()).
		Int("depth", cfg.Depth).
		Int("beam_width", cfg.BeamWidth).
		Int("time_limit_ms", cfg.TimeLimitMs).
		Str("preferred", string(preferred)).
		Msg("alpha-beta search start")

	rootDepth := cfg.Depth
	if rootDepth < 1 {
		rootDepth = 1
	}
	value, best, found := ctx.recurse(board, startPlayer, rootDepth, math.Inf(-1), math.Inf(1), true)
	if !found {
		return SearchResult{}, ErrNoLegalMoves
	}
	result := SearchResult{
		BestMove: best,
		Score:    value,
		Stats: SearchStats{
			Explored:    ctx.explored,
			CacheProbes: ctx.cache.probes,
			CacheHits:   ctx.cache.hits,
			CacheSize:   ctx.cache.Size(),
			Elapsed:     time.Since(start),
		},
	}
	searchLogger.Debug().
		Int("explored", result.Stats.Explored).
		Int("cache_probes", result.Stats.CacheProbes).
		Int("cache_hits", result.Stats.CacheHits).
		Int("cache_size", result.Stats.CacheSize).
		Dur("elapsed", result.Stats.Elapsed).
		Float64("score", result.Score).
		Str("best", result.BestMove.String()).
		Msg("alpha-beta search finished")
	return result, nil
}

// SearchBestMoveInPool runs the same machinery with the root candidate set
// confined to the caller-supplied pool. Descendant plies use full move
// generation. Pool moves are validated up front so an illegal reference
// surfaces as ErrInvalidMove rather than being silently dropped.
func SearchBestMoveInPool(board *Board, player Player, pool []Move, cfg SearchConfig, history *HistoryRecorder) (SearchResult, error) {
	if len(pool) == 0 {
		return SearchResult{}, ErrEmptyPool
	}
	for _, m := range pool {
		if !board.CanMove(m.From, m.To) {
			return SearchResult{}, fmt.Errorf("pool move %s: %w", m, ErrInvalidMove)
		}
	}
	searchLogger.Debug().
		Str("player", player.String()).
		Int("pool_size", len(pool)).
		Msg("pool search start")
	poolCfg := cfg
	poolCfg.ApplyStyleFilterFirstPly = false
	return AlphaBetaSearch(board, player, poolCfg, history, pool, CategoryNone)
}

// recurse evaluates one node. Maximizing at startPlayer's plies, minimizing
// at the opponent's. Returns the backed-up value plus, at the root, the move
// achieving it.
func (ctx *searchContext) recurse(board *Board, player Player, depth int, alpha, beta float64, root bool) (float64, Move, bool) {
	if !root && (depth == 0 || ctx.timeExceeded()) {
		return EvaluateState(board, ctx.startPlayer, ctx.history, ctx.weights), Move{}, false
	}

	var legal []Move
	if root && ctx.firstPly != nil {
		legal = ctx.firstPly
	} else {
		legal = board.LegalMovesFor(player)
	}
	if root && ctx.firstPly == nil && ctx.cfg.ApplyStyleFilterFirstPly && ctx.preferred != CategoryNone {
		filtered := make([]Move, 0, len(legal))
		for _, m := range legal {
			if ClassifyMove(board, player, m.From, m.To) == ctx.preferred {
				filtered = append(filtered, m)
			}
		}
		// An empty filter means no filter, not no moves.
		if len(filtered) > 0 {
			legal = filtered
		}
	}
	if len(legal) == 0 {
		value := EvaluateState(board, ctx.startPlayer, ctx.history, ctx.weights)
		ctx.cache.Store(ComputeHash(board, player), value)
		return value, Move{}, false
	}

	maximizing := player == ctx.startPlayer
	scored := scoreMovesForSide(board, player, legal, maximizing, ctx.history, ctx.weights)
	if len(scored) > ctx.cfg.BeamWidth {
		// Beam truncation: a heuristic incompleteness, not a sound pruning.
		scored = scored[:ctx.cfg.BeamWidth]
	}

	value := math.Inf(1)
	if maximizing {
		value = math.Inf(-1)
	}
	var bestMove Move
	found := false
	cut := false
	opponent := otherPlayer(player)

	for _, sm := range scored {
		child := board.Clone()
		if _, err := child.Apply(sm.Move); err != nil {
			continue
		}
		ctx.explored++
		sNow := sm.Breakdown.Score

		var childScore float64
		childKey := ComputeHash(child, opponent)
		if cached, ok := ctx.cache.Probe(childKey); ok {
			childScore = cached
		} else {
			// The child's value enters this node as ±sNow + discount*child,
			// so the window must pass through the inverse of that combine
			// before it can bound the child.
			childAlpha, childBeta := alpha, beta
			if maximizing {
				childAlpha = (alpha - sNow) / ctx.cfg.Discount
				childBeta = (beta - sNow) / ctx.cfg.Discount
			} else {
				childAlpha = (alpha + sNow) / ctx.cfg.Discount
				childBeta = (beta + sNow) / ctx.cfg.Discount
			}
			childScore, _, _ = ctx.recurse(child, opponent, depth-1, childAlpha, childBeta, false)
		}

		var total float64
		if maximizing {
			total = sNow + ctx.cfg.Discount*childScore
			if !found || total > value {
				value = total
				bestMove = sm.Move
				found = true
			}
			if value > alpha {
				alpha = value
			}
		} else {
			total = -sNow + ctx.cfg.Discount*childScore
			if !found || total < value {
				value = total
				bestMove = sm.Move
				found = true
			}
			if value < beta {
				beta = value
			}
		}
		if ctx.cfg.UseAlphaBeta && beta <= alpha {
			cut = true
			break
		}
	}

	if !found {
		value = EvaluateState(board, ctx.startPlayer, ctx.history, ctx.weights)
	}
	// A cut node's value is only a bound on the true total, so it must not
	// be reused as exact.
	if !cut {
		ctx.cache.Store(ComputeHash(board, player), value)
	}
	return value, bestMove, found
}
