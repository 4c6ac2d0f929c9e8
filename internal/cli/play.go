package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DevJPM/sh-support/engine"
	"github.com/DevJPM/sh-support/internal/names"
	"github.com/DevJPM/sh-support/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run an interactive analysis session",
	Long: `Starts a read-eval loop tracking one game. Governments, top-decks and
manually asserted facts accumulate in the session; every query is answered
against the full set of role assignments still consistent with them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		players, _ := cmd.Flags().GetInt("players")
		rebalanced, _ := cmd.Flags().GetBool("rebalanced")
		session, _ := cmd.Flags().GetString("session")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		s := &shell{
			in:      bufio.NewScanner(os.Stdin),
			out:     os.Stdout,
			store:   st,
			session: session,
		}

		if session != "" {
			err := s.loadSession(session)
			switch {
			case err == nil:
				log.WithField("session", session).Info("resumed saved session")
			case errors.Is(err, store.ErrSessionNotFound):
				log.WithField("session", session).Info("starting new session")
			default:
				return err
			}
		}
		if s.game == nil {
			gameCfg, err := engine.NewStandardConfiguration(players, rebalanced)
			if err != nil {
				return err
			}
			game, err := engine.NewGameState(gameCfg)
			if err != nil {
				return err
			}
			s.game = game
			s.reg = names.NewRegistry(gameCfg.TableSize)
		}
		s.game.Subscribe(func(event string) {
			log.Debug(event)
		})

		return s.run()
	},
}

func init() {
	playCmd.Flags().Int("players", 7, "Table size for a new session")
	playCmd.Flags().Bool("rebalanced", false, "Use the rebalanced deck and board")
	playCmd.Flags().String("session", "", "Named session to resume (and save to)")
	rootCmd.AddCommand(playCmd)
}

// shell is one interactive session: the game state under analysis, the
// player-name registry and an optional free-standing deck population for
// raw deck math.
type shell struct {
	in      *bufio.Scanner
	out     io.Writer
	store   *store.Store
	session string

	game *engine.GameState
	reg  *names.Registry

	// deck lab state, set by the generate command
	deckLib  int
	deckFasc int
	deckSet  bool
}

// shellCommand is one entry of the dispatch table. Handlers return the text
// to print; an error is reported without leaving the loop.
type shellCommand struct {
	name  string
	usage string
	help  string
	run   func(args []string) (string, error)
}

func (s *shell) commands() []shellCommand {
	return []shellCommand{
		{"status", "status", "Show the board, deck and rotation state.", s.cmdStatus},
		{"name", "name <seat> [display name]", "Register (or clear) a player's display name.", s.cmdName},
		{"government", "government <president> <chancellor> <president claim> <chancellor claim> [action args]", "Record an elected government with both claims.", s.cmdGovernment},
		{"topdeck", "topdeck <policy>", "Record a forced top-card enactment.", s.cmdTopDeck},
		{"pop", "pop", "Remove the most recent election entry.", s.cmdPop},
		{"hard_fact", "hard_fact <player> <role>", "Assert a player's role as ground truth.", s.cmdHardFact},
		{"conflict", "conflict <player> <player>", "Record a policy conflict between two players.", s.cmdConflict},
		{"confirm_not_hitler", "confirm_not_hitler <player>", "Assert that a player cannot be Hitler.", s.cmdConfirmNotHitler},
		{"liberal_investigation", "liberal_investigation <investigator> <investigatee>", "Record an investigation claiming a liberal.", s.cmdLiberalInvestigation},
		{"fascist_investigation", "fascist_investigation <investigator> <investigatee>", "Record an investigation claiming a fascist.", s.cmdFascistInvestigation},
		{"show_facts", "show_facts", "List all facts, manual first.", s.cmdShowFacts},
		{"remove_fact", "remove_fact <number>", "Remove a manually asserted fact.", s.cmdRemoveFact},
		{"roles", "roles", "Per-player role distribution over the surviving assignments.", s.cmdRoles},
		{"hitler_snipe", "hitler_snipe", "Rank players by the chance of being Hitler.", s.cmdHitlerSnipe},
		{"liberal_percent", "liberal_percent", "Per-player chance of being liberal.", s.cmdLiberalPercent},
		{"impossible_teams", "impossible_teams", "Minimal player sets that cannot all be fascist.", s.cmdImpossibleTeams},
		{"draw", "draw <pattern>", "Chance of the pattern matching the next cards of the current shuffle.", s.cmdDraw},
		{"generate", "generate <liberal> <fascist>", "Enumerate a free-standing deck population.", s.cmdGenerate},
		{"next", "next <pattern>", "Chance of the pattern matching the next cards of the generated deck.", s.cmdNext},
		{"dist", "dist <window>", "Blue-count distribution over the generated deck.", s.cmdDist},
		{"graph", "graph", "Write the relationship graph as a Graphviz file.", s.cmdGraph},
		{"tree", "tree", "Write the probability forest as a Graphviz file.", s.cmdTree},
		{"passive_hitler", "passive_hitler [on|off]", "Toggle the passive-Hitler assumption.", s.cmdPassiveHitler},
		{"fascist_conflict", "fascist_conflict [on|off]", "Toggle the no-fascist-conflict assumption.", s.cmdFascistConflict},
		{"save", "save [name]", "Save the session.", s.cmdSave},
		{"load", "load <name>", "Load a saved session, replacing the current one.", s.cmdLoad},
		{"debug_decks", "debug_decks", "Dump the generated deck population.", s.cmdDebugDecks},
		{"debug_roles", "debug_roles", "Dump the unfiltered role assignments.", s.cmdDebugRoles},
		{"debug_filtered_roles", "debug_filtered_roles", "Dump the surviving role assignments.", s.cmdDebugFilteredRoles},
	}
}

func (s *shell) run() error {
	fmt.Fprintln(s.out, "Type help for the available commands, exit to leave.")
	table := make(map[string]shellCommand)
	for _, cmd := range s.commands() {
		table[cmd.name] = cmd
	}

	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		fields := strings.Fields(s.in.Text())
		if len(fields) == 0 {
			continue
		}
		name := strings.ToLower(fields[0])

		switch name {
		case "exit", "quit":
			return nil
		case "help":
			s.printHelp()
			continue
		}

		cmd, ok := table[name]
		if !ok {
			fmt.Fprintf(s.out, "Unknown command %q. Type help for the available commands.\n", name)
			continue
		}
		msg, err := cmd.run(fields[1:])
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		if msg != "" {
			fmt.Fprintln(s.out, msg)
		}
	}
}

func (s *shell) printHelp() {
	for _, cmd := range s.commands() {
		fmt.Fprintf(s.out, "%-40s %s\n", cmd.usage, cmd.help)
	}
	fmt.Fprintf(s.out, "%-40s %s\n", "help", "Show this list.")
	fmt.Fprintf(s.out, "%-40s %s\n", "exit", "Leave the shell.")
}

func (s *shell) loadSession(name string) error {
	sess, err := s.store.Load(context.Background(), name)
	if err != nil {
		return err
	}
	game, err := engine.RestoreGameState(sess.Snapshot)
	if err != nil {
		return fmt.Errorf("session %q no longer passes validation: %w", name, err)
	}
	reg := names.NewRegistry(game.Config.TableSize)
	reg.Restore(sess.PlayerNames)

	s.game = game
	s.reg = reg
	s.session = name
	return nil
}
