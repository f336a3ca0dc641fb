package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifeSetupMatchesLeaderLife(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < 2; i++ {
		assert.Len(t, g.Player(i).Life, 5)
		for _, c := range g.Player(i).Life {
			assert.False(t, c.FaceUp)
			assert.Equal(t, ZoneLife, c.Zone)
		}
	}
	checkInvariants(t, g)
}

func TestFirstPlayerSkipsTurnOneDraw(t *testing.T) {
	g := newTestGame(t)
	// opening hand only, no turn-1 draw for the first player
	assert.Len(t, g.Player(0).Hand, StartingHandSize)
	assert.Len(t, g.Player(0).DonArea, FirstTurnDonCount)

	require.NoError(t, g.EndTurn(0))
	// second player draws on their first turn and gets two DON!
	assert.Len(t, g.Player(1).Hand, StartingHandSize+1)
	assert.Len(t, g.Player(1).DonArea, DonPerTurn)
	checkInvariants(t, g)
}

func TestDonAccumulatesPerTurn(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.EndTurn(0))
	require.NoError(t, g.EndTurn(1))
	// player 0's second turn: 1 (first turn) + 2
	assert.Len(t, g.Player(0).DonArea, 3)
	assert.Equal(t, 10-3, g.Player(0).DonDeckCount)
}

func TestKeepHandIsIdempotent(t *testing.T) {
	g := newTestGameNoMulligan(t)
	require.NoError(t, g.KeepHand(0))
	require.NoError(t, g.KeepHand(0)) // repeat: no-op, no double-advance
	assert.Equal(t, PhaseStartMulligan, g.Phase)
	assert.Equal(t, 0, g.Turn)

	require.NoError(t, g.KeepHand(1))
	assert.Equal(t, PhaseMain, g.Phase)
	assert.Equal(t, 1, g.Turn)
	assert.Equal(t, 1, g.Player(0).PersonalTurnCount)
}

func TestMulliganOncePerPlayer(t *testing.T) {
	g := newTestGameNoMulligan(t)
	before := len(g.Player(0).Deck) + len(g.Player(0).Hand)

	require.NoError(t, g.Mulligan(0))
	assert.Len(t, g.Player(0).Hand, StartingHandSize)
	assert.Equal(t, before, len(g.Player(0).Deck)+len(g.Player(0).Hand))

	assert.Error(t, g.Mulligan(0)) // only once
	require.NoError(t, g.KeepHand(1))
	assert.Equal(t, PhaseMain, g.Phase)
}

func TestDeckOutLosesOnFailedDraw(t *testing.T) {
	g := newTestGame(t)
	g.Player(1).Deck = nil
	require.NoError(t, g.EndTurn(0))

	assert.Equal(t, PhaseGameOver, g.Phase)
	require.NotNil(t, g.Winner)
	assert.Equal(t, 0, *g.Winner)
}

func TestDrawingLastCardIsNotALoss(t *testing.T) {
	g := newTestGame(t)
	g.Player(1).Deck = g.Player(1).Deck[:1]
	require.NoError(t, g.EndTurn(0))

	assert.Nil(t, g.Winner)
	assert.Equal(t, PhaseMain, g.Phase)
	assert.Empty(t, g.Player(1).Deck)
}

func TestExtraTurnKeepsPriority(t *testing.T) {
	g := newTestGame(t)
	g.Player(0).ExtraTurns = 1

	require.NoError(t, g.EndTurn(0))
	assert.Equal(t, 0, g.ActivePlayer)
	assert.Equal(t, 2, g.Turn)
	assert.Equal(t, 0, g.Player(0).ExtraTurns)
	assert.Equal(t, 2, g.Player(0).PersonalTurnCount)

	require.NoError(t, g.EndTurn(0))
	assert.Equal(t, 1, g.ActivePlayer)
}

func TestRefreshDetachesDonAndReadiesCards(t *testing.T) {
	g := newTestGame(t)
	c := deployDirect(t, g, 1, "filler")
	c.State = StateRested
	c.HasAttacked = true
	c.ActivatedThisTurn = true
	giveDon(g, 1, 2)
	p := g.Player(1)
	p.DonArea[0].AttachedTo = c
	p.DonArea[0].State = StateAttached
	p.DonArea[1].State = StateRested

	require.NoError(t, g.EndTurn(0)) // refresh runs for player 1

	for _, d := range p.DonArea {
		assert.Equal(t, StateActive, d.State)
		assert.Nil(t, d.AttachedTo)
	}
	assert.Equal(t, StateActive, c.State)
	assert.False(t, c.HasAttacked)
	assert.False(t, c.ActivatedThisTurn)
	checkInvariants(t, g)
}

func TestEndTurnClearsThisTurnBuffsKeepsPermanent(t *testing.T) {
	g := newTestGame(t)
	c := deployDirect(t, g, 0, "filler")
	c.Buffs = append(c.Buffs,
		PowerBuff{Source: c.InstanceID, Value: 1000, Duration: BuffDuration{Kind: DurationThisTurn, Turn: g.Turn}},
		PowerBuff{Source: c.InstanceID, Value: 500, Duration: BuffDuration{Kind: DurationPermanent}},
	)

	require.NoError(t, g.EndTurn(0))
	require.NoError(t, g.EndTurn(1))

	require.Len(t, c.Buffs, 1)
	assert.Equal(t, DurationPermanent, c.Buffs[0].Duration.Kind)
	assert.Equal(t, 2000+500, g.EffectivePower(c))
}

func TestPreGameSetupRunsBeforeOpeningHands(t *testing.T) {
	searcher := testLeader("leader-search", 5000, 5)
	searcher.Effects = []*EffectDefinition{{
		ID:          "leader-search-E1",
		Trigger:     TriggerImmediate,
		Description: "start-of-game",
		Optional:    true,
		Actions: []EffectAction{{
			Type:          ActionSearchAndSelect,
			LookCount:     5,
			MaxSelections: 1,
			TraitFilter:   "Crew",
			SelectAction:  ActionNone,
		}},
	}}
	cat := newTestCatalog(append(baseDefs(), searcher)...)
	g := NewGameState(cat, NewSeededRNG(3), nil)
	require.NoError(t, g.StartMatch("m-pregame",
		DeckList{LeaderID: "leader-search", CardIDs: fillerDeck(20)},
		DeckList{LeaderID: "leader-b", CardIDs: fillerDeck(20)}))

	require.Equal(t, PhasePreGameSetup, g.Phase)
	d := g.PendingDecision
	require.NotNil(t, d)
	assert.Equal(t, DecisionPreGameSelect, d.Kind)
	assert.Equal(t, 0, d.PlayerID)
	assert.Equal(t, []string{"filler"}, d.Candidates)
	assert.Empty(t, g.Player(0).Hand, "candidates computed before opening hands")

	require.NoError(t, g.ResolvePreGameSelect(0, []string{"filler"}))
	assert.Equal(t, PhaseStartMulligan, g.Phase)
	// the selected card plus the opening hand
	assert.Len(t, g.Player(0).Hand, StartingHandSize+1)
}

func TestPreGameSelectRejectsNonCandidate(t *testing.T) {
	searcher := testLeader("leader-search", 5000, 5)
	searcher.Effects = []*EffectDefinition{{
		ID:          "leader-search-E1",
		Trigger:     TriggerImmediate,
		Description: "start-of-game",
		Optional:    true,
		Actions: []EffectAction{{
			Type:          ActionSearchAndSelect,
			LookCount:     5,
			MaxSelections: 1,
			TraitFilter:   "Nonexistent",
			SelectAction:  ActionNone,
		}},
	}}
	cat := newTestCatalog(append(baseDefs(), searcher)...)
	g := NewGameState(cat, NewSeededRNG(3), nil)
	require.NoError(t, g.StartMatch("m-pregame2",
		DeckList{LeaderID: "leader-search", CardIDs: fillerDeck(20)},
		DeckList{LeaderID: "leader-b", CardIDs: fillerDeck(20)}))

	assert.Error(t, g.ResolvePreGameSelect(0, []string{"filler"}))
	require.NoError(t, g.SkipPreGame(0))
	assert.Equal(t, PhaseStartMulligan, g.Phase)
}
