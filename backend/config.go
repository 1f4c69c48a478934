package main

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	ServerAddr            string          `json:"server_addr"`
	WsPingIntervalSec     int             `json:"ws_ping_interval_sec"`
	AiDepth               int             `json:"ai_depth"`
	AiBeamWidth           int             `json:"ai_beam_width"`
	AiDiscount            float64         `json:"ai_discount"`
	AiTimeLimitMs         int             `json:"ai_time_limit_ms"`
	AiUseAlphaBeta        bool            `json:"ai_use_alpha_beta"`
	AiStyleFilterFirstPly bool            `json:"ai_style_filter_first_ply"`
	AiPreferredStyle      string          `json:"ai_preferred_style"`
	AiInvaderWindow       int             `json:"ai_invader_window"`
	AiLogSearchStats      bool            `json:"ai_log_search_stats"`
	Heuristics            HeuristicConfig `json:"heuristics"`
}

// HeuristicConfig carries every tuning constant of the move scorer. The
// weights are applied identically by move ordering and the static evaluator,
// which both go through EvaluateMove.
type HeuristicConfig struct {
	WAttack            float64 `json:"w_attack"`
	WPositional        float64 `json:"w_positional"`
	WRisk              float64 `json:"w_risk"`
	WMobility          float64 `json:"w_mobility"`
	WInfo              float64 `json:"w_info"`
	WDefense           float64 `json:"w_defense"`
	WDefenseFlagThreat float64 `json:"w_defense_flag_threat"`

	CaptureScale   float64 `json:"capture_scale"`
	TradePenalty   float64 `json:"trade_penalty"`
	LosePenalty    float64 `json:"lose_penalty"`
	BombTradeScale float64 `json:"bomb_trade_scale"`
	MineDefuseGain float64 `json:"mine_defuse_gain"`
	MineHitPenalty float64 `json:"mine_hit_penalty"`

	UnknownBase           float64 `json:"unknown_base"`
	UnknownStrongAttacker float64 `json:"unknown_strong_attacker"`
	EngineerZoneProbe     float64 `json:"engineer_zone_probe"`
	BackZoneProbe         float64 `json:"back_zone_probe"`
	BackZoneCommandCost   float64 `json:"back_zone_command_cost"`
	ActiveUnknownPrior    float64 `json:"active_unknown_prior"`
	ActiveProbeBonus      float64 `json:"active_probe_bonus"`

	InvaderCounterBonus float64 `json:"invader_counter_bonus"`
	BombInvaderBonus    float64 `json:"bomb_invader_bonus"`

	FlagCaptureValue float64 `json:"flag_capture_value"`
	FlagEarlyScale   float64 `json:"flag_early_scale"`
	FlagExposedScale float64 `json:"flag_exposed_scale"`
	FlagEndgameScale float64 `json:"flag_endgame_scale"`

	RearWithdrawScale float64 `json:"rear_withdraw_scale"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		ServerAddr:        ":8765",
		WsPingIntervalSec: 30,

		AiDepth:               3,
		AiBeamWidth:           8,
		AiDiscount:            0.95,
		AiTimeLimitMs:         5000,
		AiUseAlphaBeta:        true,
		AiStyleFilterFirstPly: true,
		AiPreferredStyle:      "",
		AiInvaderWindow:       invaderWindow,
		AiLogSearchStats:      false,

		Heuristics: HeuristicConfig{
			WAttack:            1.0,
			WPositional:        0.35,
			WRisk:              0.45,
			WMobility:          0.25,
			WInfo:              0.1,
			WDefense:           0.5,
			WDefenseFlagThreat: 0.8,

			CaptureScale:   0.12,
			TradePenalty:   -0.05,
			LosePenalty:    -0.15,
			BombTradeScale: 0.1,
			MineDefuseGain: 1.2,
			MineHitPenalty: -1.5,

			UnknownBase:           -0.08,
			UnknownStrongAttacker: 0.05,
			EngineerZoneProbe:     0.35,
			BackZoneProbe:         0.7,
			BackZoneCommandCost:   0.5,
			ActiveUnknownPrior:    0.15,
			ActiveProbeBonus:      0.2,

			InvaderCounterBonus: 0.5,
			BombInvaderBonus:    0.45,

			FlagCaptureValue: 2.0,
			FlagEarlyScale:   0.6,
			FlagExposedScale: 1.3,
			FlagEndgameScale: 1.8,

			RearWithdrawScale: 0.04,
		},
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}

// LoadConfigFile overlays JSON settings from path onto the defaults.
func LoadConfigFile(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return config, err
	}
	return config, nil
}
