// Package graph renders game state as Graphviz documents: a relationship
// graph of governments, conflicts and investigations, and the probability
// forest of claimed versus possible draws.
package graph

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/DevJPM/sh-support/engine"
)

// FormatFunc renders a seat for node labels.
type FormatFunc func(engine.PlayerID) string

// Relationship builds the player-relationship digraph. Elected governments
// become numbered president-to-chancellor edges carrying both claims, blue
// or red by the enacted policy and double-headed on a conflict. Facts that
// did not come from a drawn government (peek conflicts, manual entries,
// investigations) are added as their own edges, and hard knowledge colors
// the player nodes.
func Relationship(gs *engine.GameState, format FormatFunc) string {
	var statements []string

	type pair [2]engine.PlayerID
	conflictDrawn := make(map[pair]bool)

	govIndex := 0
	for _, er := range gs.History() {
		if er.Kind != engine.ResultElection {
			continue
		}
		govIndex++
		g := er.Gov

		color, dir := "red", "none"
		if g.PolicyPassed == engine.PolicyLiberal {
			color = "blue"
		}
		if g.Conflict {
			dir = "both"
			conflictDrawn[pair{g.President, g.Chancellor}] = true
		}
		statements = append(statements, fmt.Sprintf(
			"%d->%d [label=%d,color=%s,dir=%s,taillabel=%s,headlabel=%s]",
			g.President, g.Chancellor, govIndex, color, dir,
			engine.ClaimPatternFromBlues(g.PresidentClaimedBlues, 3),
			engine.ClaimPatternFromBlues(g.ChancellorClaimedBlues, 2)))

		if g.Action.Kind == engine.ActionKill {
			statements = append(statements, fmt.Sprintf(
				"%d->%d [label=killed, arrowhead=open]", g.President, g.Action.Target))
		}
	}

	notHitler := make(map[engine.PlayerID]bool)
	hardRoles := make(map[engine.PlayerID]engine.SecretRole)
	for _, fact := range gs.AllFacts() {
		switch fact.Kind {
		case engine.InfoConfirmedNotHitler:
			notHitler[fact.First] = true
		case engine.InfoPolicyConflict:
			if !conflictDrawn[pair{fact.First, fact.Second}] &&
				!conflictDrawn[pair{fact.Second, fact.First}] {
				statements = append(statements, fmt.Sprintf(
					"%d -> %d [dir=both,color=red]", fact.First, fact.Second))
			}
		case engine.InfoLiberalInvestigation:
			statements = append(statements, fmt.Sprintf(
				"%d -> %d [color=blue]", fact.First, fact.Second))
		case engine.InfoFascistInvestigation:
			statements = append(statements, fmt.Sprintf(
				"%d -> %d [color=red]", fact.First, fact.Second))
		case engine.InfoHardFact:
			hardRoles[fact.First] = fact.Role
		}
	}

	for seat := engine.PlayerID(1); int(seat) <= gs.Config.TableSize; seat++ {
		label := format(seat)
		if notHitler[seat] {
			label += "\\nConfirmed not Hitler."
		}
		attrs := fmt.Sprintf("label=\"%s\"", label)
		if role, ok := hardRoles[seat]; ok {
			if role.IsFascist() {
				attrs += ",color=red"
			} else {
				attrs += ",color=blue"
			}
		}
		statements = append(statements, fmt.Sprintf("%d [%s]", seat, attrs))
	}

	return "digraph {" + strings.Join(statements, ";") + "}"
}

// Forest renders the annotated probability forest, one subtree per shuffle.
// Edge labels carry the relative probability of each assumed draw, node
// labels the cumulative one; nodes forcing the president to have lied are
// drawn red and those forcing the chancellor get red text.
func Forest(forest []engine.ShuffleTree, format FormatFunc) string {
	var parts []string
	for _, tree := range forest {
		rootName := fmt.Sprint(tree.Shuffle.ShuffleIndex)
		var statements []string
		for cid, root := range tree.Roots {
			statements = append(statements,
				forestNode(rootName, fmt.Sprintf("%s%d", rootName, cid), root, format)...)
		}
		statements = append(statements, fmt.Sprintf(
			"%s [label=\"Shuffle #%d\"]", rootName, tree.Shuffle.ShuffleIndex+1))
		parts = append(parts, strings.Join(statements, ";"))
	}
	return "digraph{" + strings.Join(parts, " ; ") + "}"
}

func forestNode(parentName, myName string, node *engine.TreeNode, format FormatFunc) []string {
	var label string
	if node.Result.Kind == engine.ResultTopDeck {
		label = fmt.Sprintf("Top-Deck: %s", node.Result.TopDeckPolicy)
	} else {
		g := node.Result.Gov
		label = fmt.Sprintf("Assumed Draw: %s\\nPresident %s: %s\\nChancellor %s: %s",
			engine.ClaimPatternFromBlues(g.PresidentClaimedBlues, 3),
			format(g.President),
			engine.ClaimPatternFromBlues(node.OriginalClaimedBlues, 3),
			format(g.Chancellor),
			engine.ClaimPatternFromBlues(g.ChancellorClaimedBlues, 2))
	}

	nodeColor, fontColor := "blue", "black"
	if node.PresidentGuaranteedLying() {
		nodeColor = "red"
	}
	if node.ChancellorGuaranteedLying() {
		fontColor = "red"
	}

	out := []string{
		fmt.Sprintf("%s -> %s [label=\"%.1f%%\"]",
			parentName, myName, node.Relative.Probability()*100.0),
		fmt.Sprintf("%s [label=\"%s\\n%.1f%%\",color=%s,fontcolor=%s]",
			myName, label, node.Absolute*100.0, nodeColor, fontColor),
	}
	for cid, child := range node.Children {
		out = append(out, forestNode(myName, fmt.Sprintf("%s%d", myName, cid), child, format)...)
	}
	return out
}

// WriteFile writes the document to basename.dot and returns the path.
func WriteFile(basename, content string) (string, error) {
	path := basename + ".dot"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// RenderPNG runs Graphviz over basename.dot to produce basename.png. The
// executable selects the invocation: "dot" runs it directly, "bash" goes
// through a shell, and the empty string skips rendering.
func RenderPNG(executable, basename string) error {
	dotFile := basename + ".dot"
	pngFile := basename + ".png"

	var cmd *exec.Cmd
	switch strings.ToLower(executable) {
	case "":
		return nil
	case "dot":
		cmd = exec.Command("dot", "-Tpng", "-o", pngFile, dotFile)
	case "bash":
		cmd = exec.Command("bash", "-c",
			fmt.Sprintf("dot -Tpng -o %s %s", pngFile, dotFile))
	default:
		return fmt.Errorf("unsupported graphviz invocation %q", executable)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("rendering %s: %w: %s", pngFile, err, out)
	}
	return nil
}
