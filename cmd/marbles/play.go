package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/marbles/internal/core"
	"github.com/vovakirdan/marbles/internal/games/marbles"
	"github.com/vovakirdan/marbles/internal/platform/tui"
	"github.com/vovakirdan/marbles/internal/registry"
	"github.com/vovakirdan/marbles/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagResume     bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game",
	Long: `Start playing the given variant (default: marbles).

Controls:
  Arrows/WASD/hjkl  - Move the cursor
  Enter/Space       - Pick up the marble under the cursor, or drop it
  Mouse click       - Pick up or drop at the clicked cell
  Esc               - Put the marble back
  P                 - Pause
  R                 - Restart
  Q/Ctrl+C          - Quit (an unfinished game is saved)

Difficulty options:
  easy   - 4 colors
  normal - 5 colors
  hard   - 7 colors
  fixed  - keep rules.colors from the config

Examples:
  marbles play
  marbles play marbles_mini
  marbles play --difficulty hard
  marbles play --resume
  marbles play --config ./my-marbles.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func registerPlayFlags() {
	playCmd.Flags().StringVar(&flagConfig, "config", envOr("MARBLES_CONFIG", ""), "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the saved game, if there is one")
}

// applyGameFlags hands the config flags to games before they are created.
func applyGameFlags() {
	marbles.SetConfigPath(flagConfig)
	marbles.SetDifficultyPreset(flagDifficulty)
}

// terminalConfig returns a runtime config sized to the terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := marbles.ClassicID
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'marbles list' to see available variants.")
		os.Exit(1)
	}

	applyGameFlags()

	// Refuse unplayable settings before taking over the terminal
	settings, err := marbles.ResolveSettings(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("starting game", "game", gameID, "settings", fmt.Sprintf("%+v", settings))

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, terminalConfig(), tui.Options{
		Resume: flagResume,
		Logger: logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
