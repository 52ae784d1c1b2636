package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"speaker-linker/pkg/api"
	"speaker-linker/pkg/config"
	"speaker-linker/pkg/dataset"
	"speaker-linker/pkg/linker"
	"speaker-linker/pkg/logger"
	"speaker-linker/pkg/ner"
	"speaker-linker/pkg/resolver"
)

var version = "0.1.0"

// app is the state shared by all subcommands, built once flags are parsed.
type app struct {
	cfg      *config.Config
	resolver *resolver.Resolver

	logMode  string
	backend  string
	patterns string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "speakerlink",
		Short: "Resolve anonymous speaker labels to real names",
		Long: `speakerlink finds speaker labels such as "Speaker1" in a transcript and
replaces them with the names speakers give when introducing themselves
("my name is ...", "... that's me").

Names come from a named-entity recognizer (prose, gemini or a gazetteer file).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.S().Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.logMode, "log-mode", "", "log mode: dev, prod or quiet (default $LOG_MODE or dev)")
	rootCmd.PersistentFlags().StringVar(&a.backend, "ner", "", "NER backend: prose, gemini or gazetteer (default $NER_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&a.patterns, "patterns", "", "YAML file with introduction cues (default $CUE_PATTERNS_FILE or built-in)")

	rootCmd.AddCommand(predictCmd(a))
	rootCmd.AddCommand(batchCmd(a))
	rootCmd.AddCommand(serveCmd(a))
	return rootCmd
}

func (a *app) setup() error {
	// .env first so LOG_MODE from it reaches the logger.
	envErr := config.LoadDotEnv()
	mode := a.logMode
	if mode == "" {
		mode = config.LogMode()
	}
	if _, err := logger.New(mode); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if envErr != nil {
		zap.S().Warnf("Failed to read .env file: %v", envErr)
	}

	a.cfg = config.Load()
	a.cfg.LogMode = mode
	if a.backend != "" {
		a.cfg.NERBackend = a.backend
	}
	if a.patterns != "" {
		a.cfg.CuePatternsFile = a.patterns
	}

	rec, err := newRecognizer(a.cfg)
	if err != nil {
		return err
	}
	l, err := newLinker(a.cfg)
	if err != nil {
		return err
	}
	a.resolver = resolver.New(rec, l)
	return nil
}

func (a *app) loader() dataset.Loader {
	return dataset.Loader{RawDir: a.cfg.RawDataDir, ProcessedDir: a.cfg.ProcessedDataDir}
}

func newRecognizer(cfg *config.Config) (ner.Recognizer, error) {
	var rec ner.Recognizer
	switch cfg.NERBackend {
	case "prose":
		rec = ner.NewProseRecognizer()
	case "gemini":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("NER backend gemini needs GEMINI_API_KEY")
		}
		rec = ner.NewGeminiRecognizer(api.NewEntityClient(cfg.GeminiKey, cfg.GeminiModel, cfg.RequestTimeout))
	case "gazetteer":
		if cfg.GazetteerFile == "" {
			return nil, fmt.Errorf("NER backend gazetteer needs GAZETTEER_FILE")
		}
		g, err := ner.LoadGazetteer(cfg.GazetteerFile)
		if err != nil {
			return nil, err
		}
		rec = g
	default:
		return nil, fmt.Errorf("unknown NER backend %q", cfg.NERBackend)
	}

	if cfg.ChunkSize > 0 {
		rec = ner.NewChunkedRecognizer(rec, ner.ChunkOptions{
			Mode:        cfg.ChunkMode,
			Size:        cfg.ChunkSize,
			Overlap:     cfg.ChunkOverlap,
			Concurrency: cfg.MaxConcurrent,
		})
	}
	zap.S().Infof("Using %s NER backend", cfg.NERBackend)
	return rec, nil
}

func newLinker(cfg *config.Config) (*linker.Linker, error) {
	if cfg.CuePatternsFile == "" {
		return linker.New(linker.DefaultCues()), nil
	}
	cues, err := linker.LoadCues(cfg.CuePatternsFile)
	if err != nil {
		return nil, err
	}
	zap.S().Infof("Loaded %d introduction cues from %s", len(cues.Cues), cfg.CuePatternsFile)
	return linker.New(cues), nil
}
