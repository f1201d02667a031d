// Package config loads and validates the engine configuration. The
// configuration is an immutable value loaded once per process and passed
// explicitly to each component; tuning constants are defaults here, never
// hardwired in the decision packages.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/viper"

	"github.com/skillvet/skillvet/internal/adapt"
	"github.com/skillvet/skillvet/internal/completion"
	"github.com/skillvet/skillvet/internal/scoring"
	"github.com/skillvet/skillvet/internal/selector"
	"github.com/skillvet/skillvet/internal/topic"
)

// weightEpsilon is the tolerance for weight sums.
const weightEpsilon = 1e-6

// Config is the full engine configuration.
type Config struct {
	// DBPath is the SQLite database file. Empty selects the default
	// XDG path.
	DBPath string `mapstructure:"db"`

	// Questions bounds the interview length.
	Questions completion.Limits `mapstructure:"questions"`

	// RecentWindow is the number of recent scores feeding difficulty
	// adaptation.
	RecentWindow int `mapstructure:"recent-window"`

	// Blend weighs the primary and fallback evaluation signals.
	Blend scoring.BlendWeights `mapstructure:"blend"`

	// Weights maps each topic to its relative importance. Must sum to 1.
	Weights map[topic.Topic]float64 `mapstructure:"weights"`

	// Coverage maps candidate level to the per-topic minimum exchange
	// counts.
	Coverage map[topic.Level]map[topic.Topic]int `mapstructure:"coverage"`

	// Adapt holds the tier transition thresholds.
	Adapt adapt.Thresholds `mapstructure:"adapt"`

	// Selection holds the topic selection thresholds.
	Selection selector.Thresholds `mapstructure:"selection"`

	// Exceptional is the overall mean at or above which the interview
	// stops early with a top verdict.
	Exceptional float64 `mapstructure:"exceptional"`

	// Insufficient is the overall mean at or below which the interview
	// stops early with a failing verdict.
	Insufficient float64 `mapstructure:"insufficient"`
}

// CompletionThresholds assembles the thresholds the completion evaluator
// needs. The weakness threshold is shared with topic selection.
func (c Config) CompletionThresholds() completion.Thresholds {
	return completion.Thresholds{
		Exceptional:  c.Exceptional,
		Insufficient: c.Insufficient,
		Weakness:     c.Selection.Weakness,
	}
}

// CoverageFor returns the per-topic minimums for a candidate level.
func (c Config) CoverageFor(level topic.Level) map[topic.Topic]int {
	return c.Coverage[level]
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Questions:    completion.Limits{Min: 6, Max: 10, Target: 8},
		RecentWindow: 3,
		Blend:        scoring.BlendWeights{Primary: 0.7, Fallback: 0.3},
		Weights: map[topic.Topic]float64{
			topic.BasicFormulas:     0.15,
			topic.BasicFunctions:    0.15,
			topic.LookupFunctions:   0.20,
			topic.DataAnalysis:      0.20,
			topic.AdvancedFunctions: 0.18,
			topic.Automation:        0.12,
		},
		Coverage: map[topic.Level]map[topic.Topic]int{
			topic.LevelBeginner: {
				topic.BasicFormulas:   2,
				topic.BasicFunctions:  2,
				topic.LookupFunctions: 1,
				topic.DataAnalysis:    1,
			},
			topic.LevelIntermediate: {
				topic.BasicFormulas:     1,
				topic.BasicFunctions:    1,
				topic.LookupFunctions:   2,
				topic.DataAnalysis:      2,
				topic.AdvancedFunctions: 1,
			},
			topic.LevelAdvanced: {
				topic.BasicFormulas:     1,
				topic.BasicFunctions:    1,
				topic.LookupFunctions:   1,
				topic.DataAnalysis:      2,
				topic.AdvancedFunctions: 2,
				topic.Automation:        1,
			},
		},
		Adapt: adapt.Thresholds{
			RaiseRecent:  8.5,
			RaiseOverall: 7.5,
			LowerRecent:  4.0,
			LowerOverall: 5.0,
		},
		Selection: selector.Thresholds{
			Weakness:       6.0,
			Strength:       8.0,
			HighImportance: 0.15,
		},
		Exceptional:  9.5,
		Insufficient: 2.0,
	}
}

// Load reads configuration from the given file (or skillvet.yaml in the
// current directory when empty), layered over the defaults, with
// SKILLVET_* environment overrides. A missing config file is not an
// error; an invalid one is.
func Load(cfgFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("skillvet")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SKILLVET")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("questions.min", def.Questions.Min)
	v.SetDefault("questions.max", def.Questions.Max)
	v.SetDefault("questions.target", def.Questions.Target)
	v.SetDefault("recent-window", def.RecentWindow)
	v.SetDefault("blend.primary", def.Blend.Primary)
	v.SetDefault("blend.fallback", def.Blend.Fallback)
	v.SetDefault("adapt.raise-recent", def.Adapt.RaiseRecent)
	v.SetDefault("adapt.raise-overall", def.Adapt.RaiseOverall)
	v.SetDefault("adapt.lower-recent", def.Adapt.LowerRecent)
	v.SetDefault("adapt.lower-overall", def.Adapt.LowerOverall)
	v.SetDefault("selection.weakness", def.Selection.Weakness)
	v.SetDefault("selection.strength", def.Selection.Strength)
	v.SetDefault("selection.high-importance", def.Selection.HighImportance)
	v.SetDefault("exceptional", def.Exceptional)
	v.SetDefault("insufficient", def.Insufficient)

	weights := make(map[string]float64, len(def.Weights))
	for tp, w := range def.Weights {
		weights[string(tp)] = w
	}
	v.SetDefault("weights", weights)

	cov := make(map[string]map[string]int, len(def.Coverage))
	for level, topics := range def.Coverage {
		m := make(map[string]int, len(topics))
		for tp, n := range topics {
			m[string(tp)] = n
		}
		cov[string(level)] = m
	}
	v.SetDefault("coverage", cov)
}

// Validate enforces the configuration invariants. Violations are fatal at
// startup, not recoverable per session.
func (c Config) Validate() error {
	if c.Questions.Min < 1 {
		return fmt.Errorf("questions.min must be at least 1, got %d", c.Questions.Min)
	}
	if c.Questions.Min > c.Questions.Max {
		return fmt.Errorf("questions.min %d exceeds questions.max %d", c.Questions.Min, c.Questions.Max)
	}
	if c.Questions.Target < c.Questions.Min || c.Questions.Target > c.Questions.Max {
		return fmt.Errorf("questions.target %d outside [%d, %d]", c.Questions.Target, c.Questions.Min, c.Questions.Max)
	}
	if c.RecentWindow < 1 {
		return fmt.Errorf("recent-window must be at least 1, got %d", c.RecentWindow)
	}

	if err := validateUnitSum("blend", map[string]float64{
		"primary":  c.Blend.Primary,
		"fallback": c.Blend.Fallback,
	}); err != nil {
		return err
	}

	var sum float64
	for _, tp := range topic.All() {
		w, ok := c.Weights[tp]
		if !ok {
			return fmt.Errorf("weights: missing topic %q", tp)
		}
		if w < 0 {
			return fmt.Errorf("weights: %q is negative", tp)
		}
		sum += w
	}
	if math.Abs(sum-1) > weightEpsilon {
		return fmt.Errorf("weights must sum to 1.0, got %.6f", sum)
	}
	for tp := range c.Weights {
		if !topic.Valid(tp) {
			return fmt.Errorf("weights: unknown topic %q", tp)
		}
	}

	for level, topics := range c.Coverage {
		if _, err := topic.ParseLevel(string(level)); err != nil {
			return fmt.Errorf("coverage: %w", err)
		}
		total := 0
		for tp, n := range topics {
			if !topic.Valid(tp) {
				return fmt.Errorf("coverage[%s]: unknown topic %q", level, tp)
			}
			if n < 0 {
				return fmt.Errorf("coverage[%s][%s] is negative", level, tp)
			}
			total += n
		}
		if total > c.Questions.Max {
			return fmt.Errorf("coverage[%s] minimums sum to %d, exceeding questions.max %d", level, total, c.Questions.Max)
		}
	}

	if c.Adapt.RaiseRecent <= c.Adapt.LowerRecent {
		return fmt.Errorf("adapt.raise-recent %.1f must exceed adapt.lower-recent %.1f", c.Adapt.RaiseRecent, c.Adapt.LowerRecent)
	}
	if c.Exceptional <= c.Insufficient {
		return fmt.Errorf("exceptional %.1f must exceed insufficient %.1f", c.Exceptional, c.Insufficient)
	}

	return nil
}

func validateUnitSum(name string, parts map[string]float64) error {
	var sum float64
	for k, v := range parts {
		if v < 0 {
			return fmt.Errorf("%s.%s is negative", name, k)
		}
		sum += v
	}
	if math.Abs(sum-1) > weightEpsilon {
		return fmt.Errorf("%s weights must sum to 1.0, got %.6f", name, sum)
	}
	return nil
}
