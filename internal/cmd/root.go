// Package cmd holds the cobra command tree of the kennzeichen binary.
package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TVLuke/kennzeichen-buch/internal/config"
	"github.com/TVLuke/kennzeichen-buch/internal/lexicon"
	"github.com/TVLuke/kennzeichen-buch/internal/logging"
	"github.com/TVLuke/kennzeichen-buch/internal/words"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	closer  io.Closer
}

// Execute runs the command tree until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds a fresh command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "kennzeichen",
		Short: "Word puzzles from German licence plate codes",
		Long: `kennzeichen splits words into distinct German vehicle registration
codes (F-A-HR-RA-D) and writes the puzzles the book prints: the reader sees
the region names and has to find the word.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default ./kennzeichen.yaml)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("words", "", "word list file, one word per line (default: embedded list)")
	pf.String("codes", "", "code lexicon, .csv or .yaml (default: embedded lexicon)")

	root.AddCommand(
		newGenerateCmd(a),
		newDecomposeCmd(a),
		newServeCmd(a),
	)
	return root
}

// flagKeys maps command-line flags to config keys. Subcommands reuse flag
// names (--db), so binding happens for the command that actually runs.
var flagKeys = map[string]string{
	"log-level": "log_level",
	"words":     "words_file",
	"codes":     "codes_file",
	"output":    "output_file",
	"db":        "db_path",
	"min-codes": "min_codes",
	"exclude":   "excluded_digraphs",
	"port":      "port",
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.closer, err = logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	}, cmd.ErrOrStderr())
	return err
}

// lexicon loads the configured lexicon and reports skipped codes.
func (a *app) lexicon() (*lexicon.Lexicon, error) {
	var (
		lex     *lexicon.Lexicon
		skipped []string
		err     error
	)
	if a.cfg.CodesFile == "" {
		lex, skipped, err = lexicon.Default()
	} else {
		lex, skipped, err = lexicon.LoadFile(a.cfg.CodesFile)
	}
	if err != nil {
		return nil, err
	}
	if len(skipped) > 0 {
		log.Debug().Strs("codes", skipped).Msg("skipped codes outside A-Z")
	}
	log.Info().Int("codes", lex.Len()).Str("source", sourceName(a.cfg.CodesFile)).Msg("lexicon loaded")
	return lex, nil
}

// words loads the configured candidate words.
func (a *app) words() ([]string, error) {
	list, err := words.Resolve(a.cfg.WordsFile)
	if err != nil {
		return nil, err
	}
	log.Info().Int("words", len(list)).Str("source", sourceName(a.cfg.WordsFile)).Msg("word list loaded")
	return list, nil
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
