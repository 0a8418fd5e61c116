package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/marbles/internal/config"
	"github.com/vovakirdan/marbles/internal/games/marbles"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config [variant]",
	Short: "Print the default configuration",
	Long: `Print the default configuration YAML. Save it as
~/.marbles/configs/marbles.yaml or ./configs/marbles.yaml and edit it to
change the board and rules of the classic variant.

With --effective, print the configuration a new game would use after
config files, --config and --difficulty are applied.

Examples:
  marbles config > ~/.marbles/configs/marbles.yaml
  marbles config --effective --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func registerConfigFlags() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the resolved configuration")
	configCmd.Flags().StringVar(&flagConfig, "config", envOr("MARBLES_CONFIG", ""), "Path to custom config YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runConfig(_ *cobra.Command, args []string) {
	gameID := marbles.ClassicID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !flagEffective {
		data := config.GetDefaultYAML(gameID)
		if data == nil {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	applyGameFlags()
	cfg, err := marbles.ResolveConfig(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
