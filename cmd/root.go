package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skillvet/skillvet/internal/config"
	"github.com/skillvet/skillvet/internal/evaluate"
	"github.com/skillvet/skillvet/internal/interview"
	"github.com/skillvet/skillvet/internal/llm"
	"github.com/skillvet/skillvet/internal/logger"
	"github.com/skillvet/skillvet/internal/question"
	"github.com/skillvet/skillvet/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "skillvet",
	Short: "Adaptive Excel skills interviewer",
	Long: "Skillvet runs adaptive multi-round Excel skill interviews in the terminal,\n" +
		"scoring answers with an LLM judge and producing a weighted hiring report.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ./skillvet.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SKILLVET_DB env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Log in JSON format")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(resultCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

// env bundles everything a command needs: config, logger, store, and
// the interview engine wired with its question and evaluation services.
type env struct {
	cfg    config.Config
	log    *zap.Logger
	store  *store.Store
	engine *interview.Engine
}

func (e *env) close() {
	e.store.Close()
	_ = e.log.Sync()
}

// setup loads config and builds the full dependency graph.
func setup(cmd *cobra.Command) (*env, error) {
	jsonLogs, _ := cmd.Flags().GetBool("json")
	debug, _ := cmd.Flags().GetBool("debug")
	log, err := logger.New(jsonLogs, debug)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	provider, err := buildProvider(cmd, st, log)
	if err != nil {
		st.Close()
		return nil, err
	}

	bank := question.NewBank()
	var questions question.Service = bank
	var judge evaluate.Evaluator
	if provider != nil {
		questions = question.WithFallback(
			question.NewGenerator(provider, question.DefaultGeneratorConfig()),
			bank,
			log,
		)
		judge = evaluate.NewLLMEvaluator(provider, evaluate.DefaultLLMConfig())
	} else {
		log.Warn("no LLM provider configured, running on bank questions and heuristic scoring")
	}

	engine := interview.New(cfg, interview.NewSessionStore(st.Sessions()), questions, judge, log)

	return &env{cfg: cfg, log: log, store: st, engine: engine}, nil
}

// buildProvider constructs the LLM provider from SKILLVET_* settings,
// falling back to probing the standard API key variables. A missing
// provider is not fatal; the engine degrades to bank questions.
func buildProvider(cmd *cobra.Command, st *store.Store, log *zap.Logger) (llm.Provider, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, nil
		}
		cfg = discovered
	}
	return llm.NewProvider(cmd.Context(), cfg, st.Events(), log)
}

// resolveDBPath returns the database path using --db (highest priority),
// then the config file, then SKILLVET_DB / the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return store.DefaultDBPath()
}
