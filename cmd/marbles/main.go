// marbles is a terminal puzzle: line up marbles of one color to clear them
// before the board fills.
//
// Usage:
//
//	marbles list              - List game variants
//	marbles play [variant]    - Play a game (default: marbles)
//	marbles menu              - Start menu to pick a variant or continue a saved game
//	marbles serve             - Start SSH server for remote play
//	marbles scores <variant>  - Show high scores for a variant
//	marbles config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.marbles/scores.db, or $MARBLES_DB)
//	--log-file <path>  - Write logs to a file (or $MARBLES_LOG_FILE)
//	--verbose          - Log debug messages
//
// A .env file in the working directory is loaded before flags are parsed.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/marbles/internal/games/marbles"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagVerbose bool

	// logger is set up before any command runs.
	logger = log.New(io.Discard)
	// logSink is the open log file, if any.
	logSink *os.File
)

func main() {
	// A missing .env is fine
	_ = godotenv.Load()
	registerFlags()

	err := rootCmd.Execute()
	if logSink != nil {
		logSink.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "marbles",
	Short: "Marbles - line up colors in your terminal",
	Long: `Marbles is a terminal puzzle game. Each turn new marbles drop onto the
board; move one marble along a free path so that rows or columns of the
same color vanish. The game ends when the board is full.

Available commands:
  list     - Show the game variants
  play     - Play a variant directly
  menu     - Interactive picker, continues saved games
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the default configuration

Examples:
  marbles play
  marbles play marbles_mini --difficulty hard
  marbles play --resume
  marbles menu
  marbles serve --ssh :2222
  marbles scores marbles`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// envOr returns the value of an environment variable, or def if it is unset.
func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// registerFlags defines flags after .env is loaded so it can supply defaults.
func registerFlags() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envOr("MARBLES_DB", "~/.marbles/scores.db"), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", envOr("MARBLES_LOG_FILE", ""), "Write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	registerPlayFlags()
	registerServeFlags()
	registerConfigFlags()

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging builds the logger from the global flags.
// The TUI owns the terminal, so logs only go to a file unless serving.
func setupLogging(cmd *cobra.Command, _ []string) error {
	var w io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logSink = f
		w = f
	} else if cmd.Name() == serveCmd.Name() {
		w = os.Stderr
	}

	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	marbles.SetLogger(logger)
	return nil
}
