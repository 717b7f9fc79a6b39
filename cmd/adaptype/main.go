// Package main provides the CLI entrypoint for adaptype.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/adaptype/internal/bootstrap"
	"github.com/verte-zerg/adaptype/internal/config"
	"github.com/verte-zerg/adaptype/internal/engine"
	"github.com/verte-zerg/adaptype/internal/generator"
	"github.com/verte-zerg/adaptype/internal/letters"
	"github.com/verte-zerg/adaptype/internal/logging"
	"github.com/verte-zerg/adaptype/internal/metrics"
	"github.com/verte-zerg/adaptype/internal/model"
	"github.com/verte-zerg/adaptype/internal/stats"
	"github.com/verte-zerg/adaptype/internal/statsui"
	"github.com/verte-zerg/adaptype/internal/store"
	"github.com/verte-zerg/adaptype/internal/tui"
	"github.com/verte-zerg/adaptype/internal/wordlist"
)

const (
	defaultMinWords    = 50
	defaultMaxWords    = 100
	defaultMinWordLen  = 1
	defaultCurveWindow = 5
	defaultSamples     = bootstrap.DefaultSamples
)

const defaultPunctSet = ".,!?;:"

var (
	practiceVocab      string
	practiceMinWordLen int
	practiceMinWords   int
	practiceMaxWords   int
	practiceCaps       float64
	practicePunct      float64
	practicePunctSet   string
	practiceResume     bool
	practiceSeed       int64

	bootstrapSamples int
	bootstrapWorkers int
	bootstrapTimeout time.Duration

	dbPath      string
	metricsAddr string
	logLevel    string
	logFile     string
	verbose     bool

	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsRun         string
	statsText        bool

	historyFormat string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "adaptype",
		Short:         "Adaptive typing practice",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "SQLite database path (empty disables persistence)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().IntVar(&bootstrapSamples, "samples", defaultSamples, "bootstrap resamples")
	rootCmd.PersistentFlags().IntVar(&bootstrapWorkers, "workers", 0, "bootstrap workers (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().DurationVar(&bootstrapTimeout, "timeout", 0, "bootstrap deadline (0 = none)")

	rootCmd.Flags().StringVar(&practiceVocab, "vocab", "", "vocabulary file, one word per line (default: built-in)")
	rootCmd.Flags().IntVar(&practiceMinWordLen, "min-word-length", defaultMinWordLen, "shortest vocabulary word kept")
	rootCmd.Flags().IntVar(&practiceMinWords, "min-words", defaultMinWords, "minimum words per practice text")
	rootCmd.Flags().IntVar(&practiceMaxWords, "max-words", defaultMaxWords, "maximum words per practice text")
	rootCmd.Flags().Float64Var(&practiceCaps, "caps", 0, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().Float64Var(&practicePunct, "punct", 0, "punctuation probability per word (0-1)")
	rootCmd.Flags().StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set")
	rootCmd.Flags().BoolVar(&practiceResume, "resume", false, "rebuild the letter model from stored sessions")
	rootCmd.Flags().Int64Var(&practiceSeed, "seed", -1, "random seed (negative = time based)")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newEstimateCmd())
	rootCmd.AddCommand(newVocabCmd())

	return rootCmd
}

func loadFileConfig(cmd *cobra.Command) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "vocab", &practiceVocab, fileCfg.Practice.Vocabulary)
	applyIntConfig(cmd, "min-word-length", &practiceMinWordLen, fileCfg.Practice.MinWordLength)
	applyIntConfig(cmd, "min-words", &practiceMinWords, fileCfg.Practice.MinWords)
	applyIntConfig(cmd, "max-words", &practiceMaxWords, fileCfg.Practice.MaxWords)
	applyFloatConfig(cmd, "caps", &practiceCaps, fileCfg.Practice.CapsPct)
	applyFloatConfig(cmd, "punct", &practicePunct, fileCfg.Practice.PunctPct)
	applyStringConfig(cmd, "punct-set", &practicePunctSet, fileCfg.Practice.PunctSet)
	applyBoolConfig(cmd, "resume", &practiceResume, fileCfg.Practice.Resume)
	applyIntConfig(cmd, "samples", &bootstrapSamples, fileCfg.Bootstrap.Samples)
	applyIntConfig(cmd, "workers", &bootstrapWorkers, fileCfg.Bootstrap.Workers)
	if fileCfg.Bootstrap.Timeout != nil {
		timeout := fileCfg.Bootstrap.Timeout.Duration
		applyDurationConfig(cmd, "timeout", &bootstrapTimeout, &timeout)
	}
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	if fileCfg.Log.File != nil {
		logFile = *fileCfg.Log.File
	}
	return nil
}

func currentConfig() model.Config {
	return model.Config{
		VocabularyPath:   practiceVocab,
		MinWordLength:    practiceMinWordLen,
		MinWords:         practiceMinWords,
		MaxWords:         practiceMaxWords,
		CapsPct:          practiceCaps,
		PunctPct:         practicePunct,
		PunctSet:         practicePunctSet,
		Resume:           practiceResume,
		BootstrapSamples: bootstrapSamples,
		BootstrapWorkers: bootstrapWorkers,
		BootstrapTimeout: bootstrapTimeout,
	}
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	if err := loadFileConfig(cmd); err != nil {
		return err
	}
	cfg := currentConfig()
	if err := validateConfig(cfg); err != nil {
		return err
	}

	path := logFile
	if path == "" {
		path = config.DefaultLogPath()
	}
	logger, err := logging.New(logging.Options{Level: logLevel, File: path, Verbose: verbose})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	vocab, err := loadVocabulary(cfg)
	if err != nil {
		return err
	}

	opts := engineOptions(cfg, vocab, logger)
	opts.Seed = practiceSeed

	var st *store.Store
	if dbPath != "" {
		st, err = store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logger.Warn("failed to close db", zap.Error(cerr))
			}
		}()
		opts.Recorder = st
	} else if cfg.Resume {
		return fmt.Errorf("--resume needs a database (--db)")
	}

	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts.Metrics = metrics.New(reg)
		stop := serveMetrics(metricsAddr, opts.Metrics.Handler(), logger)
		defer stop()
	}

	e, err := engine.New(opts)
	if err != nil {
		return err
	}
	if cfg.Resume {
		if err := e.Resume(ctx, st); err != nil {
			return fmt.Errorf("failed to resume: %w", err)
		}
	}
	logger.Info("practice started",
		zap.String("vocabulary", vocabName(cfg)),
		zap.Int("words", vocab.Len()),
		zap.Bool("resume", cfg.Resume),
	)

	program := tea.NewProgram(tui.NewModel(ctx, e, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func engineOptions(cfg model.Config, vocab wordlist.Vocabulary, logger *zap.Logger) engine.Options {
	opts := engine.DefaultOptions()
	opts.Vocabulary = vocab
	opts.Generator = generator.Options{
		MinWords: cfg.MinWords,
		MaxWords: cfg.MaxWords,
		CapsPct:  cfg.CapsPct,
		PunctPct: cfg.PunctPct,
		PunctSet: []rune(cfg.PunctSet),
	}
	opts.Bootstrap.Samples = cfg.BootstrapSamples
	opts.Bootstrap.Workers = cfg.BootstrapWorkers
	opts.Timeout = cfg.BootstrapTimeout
	opts.Logger = logger
	return opts
}

func serveMetrics(addr string, handler http.Handler, logger *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", addr))
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("failed to stop metrics server", zap.Error(err))
		}
	}
}

func loadVocabulary(cfg model.Config) (wordlist.Vocabulary, error) {
	if cfg.VocabularyPath == "" {
		if cfg.MinWordLength <= 1 {
			return wordlist.Default(), nil
		}
		return wordlist.New(wordlist.Default().Words(), wordlist.MinLength(cfg.MinWordLength))
	}
	vocab, err := wordlist.LoadVocabulary(cfg.VocabularyPath, wordlist.MinLength(cfg.MinWordLength))
	if err != nil {
		return wordlist.Vocabulary{}, fmt.Errorf("failed to load vocabulary %s: %w", cfg.VocabularyPath, err)
	}
	return vocab, nil
}

func vocabName(cfg model.Config) string {
	if cfg.VocabularyPath == "" {
		return "built-in"
	}
	return cfg.VocabularyPath
}

func newCLILogger() (*zap.Logger, error) {
	return logging.New(logging.Options{Level: logLevel, Verbose: verbose})
}

func openStore() (*store.Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("no database configured (--db)")
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store, logger *zap.Logger) {
	if err := st.Close(); err != nil {
		logger.Warn("failed to close db", zap.Error(err))
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	addFilterFlags(cmd)
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsText, "text", false, "print a text report instead of the interactive viewer")
	return cmd
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().StringVar(&statsRun, "run", "", "limit to one run ID")
}

func statsConfig() (model.StatsConfig, error) {
	since, err := parseSince(statsSince)
	if err != nil {
		return model.StatsConfig{}, err
	}
	if statsLast < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow < 1 {
		statsCurveWindow = 1
	}
	return model.StatsConfig{
		Since:       since,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		RunID:       statsRun,
	}, nil
}

func parseSince(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --since value: %w", err)
	}
	return &parsed, nil
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := statsConfig()
	if err != nil {
		return err
	}
	logger, err := newCLILogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	if statsText {
		report, err := stats.BuildReport(cmd.Context(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return report.Render(cmd.OutOrStdout(), cfg.CurveWindow, 0, false)
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print stored sessions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	addFilterFlags(cmd)
	cmd.Flags().StringVar(&historyFormat, "format", "table", "output format: table, json or yaml")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := statsConfig()
	if err != nil {
		return err
	}
	logger, err := newCLILogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	records, err := st.ListSessions(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	return writeHistory(cmd.OutOrStdout(), records, historyFormat)
}

func writeHistory(w io.Writer, records []model.SessionRecord, format string) error {
	if records == nil {
		records = []model.SessionRecord{}
	}
	switch strings.ToLower(format) {
	case "table", "":
		return stats.RenderHistory(w, records)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (use table, json or yaml)", format)
	}
}

func newEstimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Bootstrap letter uncertainty and improvement over stored sessions",
		Args:  cobra.NoArgs,
		RunE:  runEstimateCmd,
	}
	cmd.Flags().Int64Var(&practiceSeed, "seed", -1, "random seed (negative = time based)")
	return cmd
}

func runEstimateCmd(cmd *cobra.Command, _ []string) error {
	if err := loadFileConfig(cmd); err != nil {
		return err
	}
	logger, err := newCLILogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	opts := engine.DefaultOptions()
	opts.Bootstrap.Samples = bootstrapSamples
	opts.Bootstrap.Workers = bootstrapWorkers
	opts.Timeout = bootstrapTimeout
	opts.Seed = practiceSeed
	opts.Logger = logger
	e, err := engine.New(opts)
	if err != nil {
		return err
	}
	return runEstimate(cmd.Context(), cmd.OutOrStdout(), e, st)
}

func runEstimate(ctx context.Context, w io.Writer, e *engine.Engine, src engine.Source) error {
	if err := e.Resume(ctx, src); err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	us, err := e.EstimateAllLetters(ctx, 0)
	switch {
	case errors.Is(err, bootstrap.ErrUnavailable):
		if _, werr := fmt.Fprintf(w, "Letter uncertainty unavailable: %s.\n\n", unavailableReason(err, "no letter attempts recorded")); werr != nil {
			return werr
		}
	case err != nil:
		return fmt.Errorf("letter estimate failed: %w", err)
	default:
		if err := stats.RenderUncertainty(w, us); err != nil {
			return err
		}
	}

	imp, err := e.EstimatePhaseImprovement(ctx, 0)
	if errors.Is(err, bootstrap.ErrUnavailable) {
		_, werr := fmt.Fprintf(w, "Improvement unavailable: %s.\n", unavailableReason(err, "no test sessions recorded"))
		return werr
	}
	if err != nil {
		return fmt.Errorf("improvement estimate failed: %w", err)
	}
	return stats.RenderImprovement(w, imp)
}

// unavailableReason explains an ErrUnavailable. Anything other than an
// aborted context means a bucket had no trials.
func unavailableReason(err error, noTrials string) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline exceeded (raise --timeout)"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return noTrials
	}
}

func newVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Show vocabulary letter coverage",
		Args:  cobra.NoArgs,
		RunE:  runVocabCmd,
	}
	cmd.Flags().StringVar(&practiceVocab, "vocab", "", "vocabulary file, one word per line (default: built-in)")
	cmd.Flags().IntVar(&practiceMinWordLen, "min-word-length", defaultMinWordLen, "shortest vocabulary word kept")
	return cmd
}

func runVocabCmd(cmd *cobra.Command, _ []string) error {
	if err := loadFileConfig(cmd); err != nil {
		return err
	}
	cfg := currentConfig()
	vocab, err := loadVocabulary(cfg)
	if err != nil {
		return err
	}
	return writeCoverage(cmd.OutOrStdout(), vocabName(cfg), vocab)
}

func writeCoverage(w io.Writer, name string, vocab wordlist.Vocabulary) error {
	cov := generator.Coverage(vocab)
	boosts := generator.BoostFactors(cov)
	if _, err := fmt.Fprintf(w, "Vocabulary: %s (%d words)\n", name, vocab.Len()); err != nil {
		return err
	}
	var boosted []string
	for i := 0; i < letters.Count; i++ {
		mark := ""
		if boosts[i] > 1 {
			mark = fmt.Sprintf("  x%.1f", boosts[i])
			boosted = append(boosted, string(letters.Letter(i)))
		}
		if _, err := fmt.Fprintf(w, "%c %6d%s\n", letters.Letter(i), cov[i], mark); err != nil {
			return err
		}
	}
	if len(boosted) == 0 {
		_, err := fmt.Fprintln(w, "Boosted: none")
		return err
	}
	_, err := fmt.Fprintf(w, "Boosted: %s\n", strings.Join(boosted, " "))
	return err
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target, value *time.Duration) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# adaptype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# vocabulary = "/path/to/words.txt"  # One word per line (default: built-in)
# min-word-length = %d               # Shortest vocabulary word kept
# min-words = %d                     # Minimum words per practice text
# max-words = %d                    # Maximum words per practice text
# caps = 0.0                         # Probability of capitalized first letter (0-1)
# punct = 0.0                        # Punctuation probability per word (0-1)
# punct-set = %q                 # Punctuation set
# resume = false                     # Rebuild the letter model from stored sessions

[bootstrap]
# samples = %d                     # Resamples per estimate
# workers = 0                        # Parallel batches (0 = GOMAXPROCS)
# timeout = "10s"                    # Deadline per estimate

[log]
# level = "info"                     # debug, info, warn, error
# file = ""                          # Log file for the practice UI
`,
		defaultMinWordLen,
		defaultMinWords,
		defaultMaxWords,
		defaultPunctSet,
		defaultSamples,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.MinWords <= 0 {
		return fmt.Errorf("--min-words must be > 0")
	}
	if cfg.MaxWords < cfg.MinWords {
		return fmt.Errorf("--max-words must be >= --min-words")
	}
	if cfg.MinWordLength < 1 {
		return fmt.Errorf("--min-word-length must be >= 1")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctPct > 0 && cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	if cfg.BootstrapSamples <= 0 {
		return fmt.Errorf("--samples must be > 0")
	}
	if cfg.BootstrapWorkers < 0 {
		return fmt.Errorf("--workers must be >= 0")
	}
	if cfg.BootstrapTimeout < 0 {
		return fmt.Errorf("--timeout must be >= 0")
	}
	return nil
}
