package graph

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevJPM/sh-support/engine"
)

func seatFormat(p engine.PlayerID) string {
	return strconv.Itoa(int(p))
}

func newTestGame(t *testing.T) *engine.GameState {
	t.Helper()
	cfg, err := engine.NewStandardConfiguration(7, false)
	require.NoError(t, err)
	gs, err := engine.NewGameState(cfg)
	require.NoError(t, err)
	return gs
}

func TestRelationshipLiberalGovernment(t *testing.T) {
	gs := newTestGame(t)
	require.NoError(t, gs.AddGovernment(engine.GovernmentInput{
		President:              1,
		Chancellor:             2,
		PresidentClaimedBlues:  2,
		ChancellorClaimedBlues: 1,
	}))

	doc := Relationship(gs, seatFormat)
	assert.True(t, strings.HasPrefix(doc, "digraph {"))
	assert.Contains(t, doc, "1->2 [label=1,color=blue,dir=none,taillabel=RBB,headlabel=RB]")
}

func TestRelationshipConflictGovernment(t *testing.T) {
	gs := newTestGame(t)
	require.NoError(t, gs.AddGovernment(engine.GovernmentInput{
		President:              1,
		Chancellor:             2,
		PresidentClaimedBlues:  1,
		ChancellorClaimedBlues: 0,
	}))

	doc := Relationship(gs, seatFormat)
	assert.Contains(t, doc, "1->2 [label=1,color=red,dir=both,taillabel=RRB,headlabel=RR]")
	// The conflict fact is already drawn on the government edge; no
	// separate conflict edge appears.
	assert.NotContains(t, doc, "1 -> 2 [dir=both,color=red]")
}

func TestRelationshipManualFactsBecomeEdges(t *testing.T) {
	gs := newTestGame(t)
	require.NoError(t, gs.AddFact(engine.PolicyConflict(3, 4)))
	require.NoError(t, gs.AddFact(engine.LiberalInvestigation(5, 6)))
	require.NoError(t, gs.AddFact(engine.HardFact(7, engine.RoleLiberal)))
	require.NoError(t, gs.AddFact(engine.ConfirmedNotHitler(2)))

	doc := Relationship(gs, seatFormat)
	assert.Contains(t, doc, "3 -> 4 [dir=both,color=red]")
	assert.Contains(t, doc, "5 -> 6 [color=blue]")
	assert.Contains(t, doc, `7 [label="7",color=blue]`)
	assert.Contains(t, doc, `2 [label="2\nConfirmed not Hitler."]`)
}

func TestRelationshipNodePerSeat(t *testing.T) {
	gs := newTestGame(t)
	doc := Relationship(gs, seatFormat)
	for seat := 1; seat <= 7; seat++ {
		assert.Contains(t, doc, strconv.Itoa(seat)+" [label=")
	}
}

func TestForestStructure(t *testing.T) {
	gs := newTestGame(t)
	require.NoError(t, gs.AddGovernment(engine.GovernmentInput{
		President:              1,
		Chancellor:             2,
		PresidentClaimedBlues:  2,
		ChancellorClaimedBlues: 1,
	}))

	forest := engine.BuildProbabilityForest(gs)
	require.NotEmpty(t, forest)

	doc := Forest(forest, seatFormat)
	assert.True(t, strings.HasPrefix(doc, "digraph{"))
	assert.Contains(t, doc, `0 [label="Shuffle #1"]`)
	// One root per assumable draw of the single government.
	assert.Contains(t, doc, "0 -> 00 ")
	assert.Contains(t, doc, "0 -> 01 ")
	assert.Contains(t, doc, "0 -> 02 ")
	assert.Contains(t, doc, "Assumed Draw: RBB")
	assert.Contains(t, doc, "President 1: RBB")
}

func TestForestLiarColoring(t *testing.T) {
	gs := newTestGame(t)
	require.NoError(t, gs.AddGovernment(engine.GovernmentInput{
		President:              1,
		Chancellor:             2,
		PresidentClaimedBlues:  3,
		ChancellorClaimedBlues: 2,
	}))

	forest := engine.BuildProbabilityForest(gs)
	doc := Forest(forest, seatFormat)

	// Branches assuming fewer blues than claimed force the president to
	// have lied and are drawn red.
	assert.Contains(t, doc, "color=red")
	assert.Contains(t, doc, "color=blue")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFile(dir+"/report", "digraph {}")
	require.NoError(t, err)
	assert.Equal(t, dir+"/report.dot", path)
}

func TestRenderPNGUnknownInvocation(t *testing.T) {
	assert.Error(t, RenderPNG("python", "report"))
	assert.NoError(t, RenderPNG("", "report"))
}
