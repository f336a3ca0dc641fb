package view

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optcgx/engine/internal/catalog"
	"github.com/optcgx/engine/internal/engine"
)

func startedMatch(t *testing.T) *engine.GameState {
	t.Helper()
	reg := catalog.Default()
	deck := func() engine.DeckList {
		dl := engine.DeckList{LeaderID: "LDR-002"}
		for i := 0; i < 20; i++ {
			dl.CardIDs = append(dl.CardIDs, "CHR-010")
		}
		return dl
	}
	g := engine.NewGameState(reg, engine.NewSeededRNG(7), nil)
	require.NoError(t, g.StartMatch("m-view", deck(), deck()))
	require.NoError(t, g.KeepHand(0))
	require.NoError(t, g.KeepHand(1))
	return g
}

func TestBuildRedactsOpponentHand(t *testing.T) {
	g := startedMatch(t)
	sv := Build(g, 0)

	oppHand := g.Player(1).Hand
	require.Len(t, sv.Opponent.Hand, len(oppHand))
	for i, cv := range sv.Opponent.Hand {
		assert.Equal(t, Hidden, cv.CardID)
		assert.Equal(t, fmt.Sprintf("hidden-hand-%d", i), cv.InstanceID)
	}
}

func TestBuildRedactsOpponentDeckToCountOnly(t *testing.T) {
	g := startedMatch(t)
	sv := Build(g, 0)

	require.Len(t, sv.Opponent.Deck, len(g.Player(1).Deck))
	for _, cv := range sv.Opponent.Deck {
		assert.Equal(t, Hidden, cv.CardID)
		assert.Equal(t, engine.ZoneDeck.String(), cv.Zone)
		assert.Equal(t, engine.StateActive.String(), cv.State)
		assert.Equal(t, 1, cv.Owner)
	}
	assert.Equal(t, "hidden-deck-0", sv.Opponent.Deck[0].InstanceID)
}

func TestBuildHidesFaceDownLifeOnly(t *testing.T) {
	g := startedMatch(t)

	// reveal one opposing life card mid-resolution
	opp := g.Player(1)
	require.NotEmpty(t, opp.Life)
	opp.Life[len(opp.Life)-1].FaceUp = true

	sv := Build(g, 0)
	require.Len(t, sv.Opponent.LifeCards, len(opp.Life))
	for i, cv := range sv.Opponent.LifeCards {
		if i == len(opp.Life)-1 {
			assert.NotEqual(t, Hidden, cv.CardID)
			continue
		}
		assert.Equal(t, Hidden, cv.CardID)
	}
}

func TestBuildNeverRedactsOwnSide(t *testing.T) {
	g := startedMatch(t)
	sv := Build(g, 1)

	require.Len(t, sv.You.Hand, len(g.Player(1).Hand))
	for _, cv := range sv.You.Hand {
		assert.NotEqual(t, Hidden, cv.CardID)
	}
	for _, cv := range sv.You.Deck {
		assert.NotEqual(t, Hidden, cv.CardID)
	}
	require.NotNil(t, sv.You.Leader)
	assert.Equal(t, "LDR-002", sv.You.Leader.CardID)
}

func TestBuildLeadersAndTrashArePublic(t *testing.T) {
	g := startedMatch(t)
	sv := Build(g, 0)

	require.NotNil(t, sv.Opponent.Leader)
	assert.Equal(t, "LDR-002", sv.Opponent.Leader.CardID)
	assert.NotZero(t, sv.Opponent.Leader.Power)
	assert.Equal(t, len(g.Player(1).Trash), len(sv.Opponent.Trash))
}

func TestBuildHidesDecisionDetailFromNonDecider(t *testing.T) {
	g := startedMatch(t)
	d := &engine.PendingDecision{
		Kind:        engine.DecisionDeckRevealStep,
		PlayerID:    0,
		RevealedIDs: []int{11, 12, 13},
		Selectable:  []int{11},
		MaxSel:      1,
	}
	g.PendingDecision = d

	mine := Build(g, 0)
	require.NotNil(t, mine.Decision)
	assert.Equal(t, []int{11, 12, 13}, mine.Decision.RevealedIDs)

	theirs := Build(g, 1)
	require.NotNil(t, theirs.Decision)
	assert.Empty(t, theirs.Decision.RevealedIDs)
	assert.Equal(t, 0, theirs.Decision.PlayerID)
}

func TestBuildIsADeepCopy(t *testing.T) {
	g := startedMatch(t)
	sv := Build(g, 0)

	sv.You.Hand[0].CardID = "mutated"
	assert.NotEqual(t, "mutated", g.Player(0).Hand[0].CardID)
}
