package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/DevJPM/sh-support/engine"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Stateless deck probability queries",
}

var deckGenerateCmd = &cobra.Command{
	Use:   "generate <liberal> <fascist>",
	Short: "Enumerate all decks with the given composition",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, fasc, err := parseComposition(args[0], args[1])
		if err != nil {
			return err
		}
		pop := engine.GenerateDeckPopulation(lib, fasc)
		fmt.Printf("Successfully generated %d decks with %d blue and %d red cards in them.\n",
			len(pop.Decks), lib, fasc)
		return nil
	},
}

var deckNextCmd = &cobra.Command{
	Use:   "next <liberal> <fascist> <pattern>",
	Short: "Chance of a claim pattern matching the next cards",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, fasc, err := parseComposition(args[0], args[1])
		if err != nil {
			return err
		}
		pattern, err := engine.ParseClaimPattern(args[2], lib+fasc, 1)
		if err != nil {
			return err
		}
		result := engine.NextBluesCount(lib, fasc, pattern.Length, pattern.Blues, 0, 0)
		fmt.Println(nextCardsMessage(result, pattern))
		return nil
	},
}

var deckDistCmd = &cobra.Command{
	Use:   "dist <liberal> <fascist> <window>",
	Short: "Distribution of blue counts over the next cards",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, fasc, err := parseComposition(args[0], args[1])
		if err != nil {
			return err
		}
		window, err := strconv.Atoi(args[2])
		if err != nil || window < 1 {
			return fmt.Errorf("invalid window size %q", args[2])
		}
		lines, err := distributionLines(lib, fasc, window)
		if err != nil {
			return err
		}
		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	},
}

func parseComposition(libArg, fascArg string) (lib, fasc int, err error) {
	lib, err = strconv.Atoi(libArg)
	if err != nil || lib < 0 {
		return 0, 0, fmt.Errorf("invalid liberal card count %q", libArg)
	}
	fasc, err = strconv.Atoi(fascArg)
	if err != nil || fasc < 0 {
		return 0, 0, fmt.Errorf("invalid fascist card count %q", fascArg)
	}
	if lib+fasc == 0 {
		return 0, 0, fmt.Errorf("the deck cannot be empty")
	}
	return lib, fasc, nil
}

func nextCardsMessage(result engine.FilterResult, pattern engine.ClaimPattern) string {
	return fmt.Sprintf(
		"There is a %.1f%% (%d/%d) chance for the claim pattern %s to match the next %d cards.",
		result.Probability()*100.0, result.NumMatching, result.NumChecked,
		engine.ClaimPatternFromBlues(pattern.Blues, pattern.Length), pattern.Length)
}

func distributionLines(lib, fasc, window int) ([]string, error) {
	pop := engine.GenerateDeckPopulation(lib, fasc)
	hist, err := engine.WindowHistogram(pop, window)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, window+1)
	for blues := 0; blues <= window; blues++ {
		result := engine.FilterResult{NumMatching: hist[blues], NumChecked: len(pop.Decks)}
		lines = append(lines, fmt.Sprintf("%s: %s",
			engine.ClaimPatternFromBlues(blues, window), result))
	}
	return lines, nil
}

func init() {
	deckCmd.AddCommand(deckGenerateCmd)
	deckCmd.AddCommand(deckNextCmd)
	deckCmd.AddCommand(deckDistCmd)
	rootCmd.AddCommand(deckCmd)
}
