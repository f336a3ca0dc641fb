package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonDetachReattachRoundTrip(t *testing.T) {
	g := newTestGame(t)
	c := deployDirect(t, g, 0, "filler")
	giveDon(g, 0, 1)
	don := g.Player(0).DonArea[len(g.Player(0).DonArea)-1]

	stateBefore := c.State
	require.NoError(t, g.AttachDon(0, don.InstanceID, c.InstanceID))
	assert.Equal(t, StateAttached, don.State)
	assert.Same(t, c, don.AttachedTo)

	g.detachDonFrom(c)
	assert.Equal(t, StateActive, don.State)
	assert.Nil(t, don.AttachedTo)

	require.NoError(t, g.AttachDon(0, don.InstanceID, c.InstanceID))
	assert.Equal(t, stateBefore, c.State, "the carried card is untouched by the cycle")
	assert.Equal(t, StateAttached, don.State)
	checkInvariants(t, g)
}

func TestStageReplacementRemovesExactlyItsBuffs(t *testing.T) {
	buffStage := &CardDefinition{
		ID:       "stage-buff",
		Name:     "stage-buff",
		Category: CategoryStage,
		Colors:   []Color{ColorRed},
		Cost:     1,
		Effects: []*EffectDefinition{{
			ID:      "stage-buff-E1",
			Trigger: TriggerPassive,
			Actions: []EffectAction{{
				Type:     ActionBuffPower,
				Value:    ip(1000),
				Duration: &BuffDuration{Kind: DurationStageContinuous},
				Target:   &TargetDescriptor{Kind: TargetYourCharacter},
			}},
		}},
	}
	plainStage := &CardDefinition{
		ID:       "stage-plain",
		Name:     "stage-plain",
		Category: CategoryStage,
		Colors:   []Color{ColorRed},
		Cost:     1,
	}
	g := newTestGame(t, buffStage, plainStage)
	c := deployDirect(t, g, 0, "filler")
	c.Buffs = append(c.Buffs, PowerBuff{Source: c.InstanceID, Value: 500, Duration: BuffDuration{Kind: DurationPermanent}})
	giveDon(g, 0, 2)

	x := putInHand(t, g, 0, "stage-buff")
	require.NoError(t, g.PlayCard(0, x.InstanceID, -1))
	assert.Equal(t, 2000+500+1000, g.EffectivePower(c))

	y := putInHand(t, g, 0, "stage-plain")
	require.NoError(t, g.PlayCard(0, y.InstanceID, -1))

	assert.Equal(t, ZoneTrash, x.Zone)
	assert.Equal(t, 2000+500, g.EffectivePower(c),
		"the stage's buff is gone, the unrelated permanent buff survives")
	checkInvariants(t, g)
}

func TestTurnCycleKeepsPermanentDropsThisTurn(t *testing.T) {
	g := newTestGame(t)
	c := deployDirect(t, g, 0, "filler")
	c.Buffs = append(c.Buffs,
		PowerBuff{Source: c.InstanceID, Value: 1000, Duration: BuffDuration{Kind: DurationThisTurn, Turn: g.Turn}},
		PowerBuff{Source: c.InstanceID, Value: 700, Duration: BuffDuration{Kind: DurationPermanent}},
	)

	require.NoError(t, g.EndTurn(0))
	require.NoError(t, g.EndTurn(1))

	var kinds []DurationKind
	for _, b := range c.Buffs {
		kinds = append(kinds, b.Duration.Kind)
	}
	assert.Equal(t, []DurationKind{DurationPermanent}, kinds)
	assert.Equal(t, 2700, g.EffectivePower(c))
}

func TestSourceLeavingFieldExpiresItsBuffs(t *testing.T) {
	g := newTestGame(t)
	source := deployDirect(t, g, 0, "filler")
	carrier := deployDirect(t, g, 0, "filler")
	carrier.Buffs = append(carrier.Buffs,
		PowerBuff{Source: source.InstanceID, Value: 1000, Duration: BuffDuration{Kind: DurationUntilSourceLeaves}},
		PowerBuff{Source: source.InstanceID, Value: 500, Duration: BuffDuration{Kind: DurationPermanent}},
	)

	g.sendToTrash(source)

	var kinds []DurationKind
	for _, b := range carrier.Buffs {
		kinds = append(kinds, b.Duration.Kind)
	}
	assert.Equal(t, []DurationKind{DurationPermanent}, kinds,
		"UntilSourceLeaves expires with its source; Permanent survives even from a departed source")
}

func TestDeterministicReplayProducesIdenticalStates(t *testing.T) {
	run := func() *GameState {
		cat := newTestCatalog(baseDefs()...)
		g := NewGameState(cat, NewSeededRNG(99), nil)
		require.NoError(t, g.StartMatch("m-replay",
			DeckList{LeaderID: "leader-a", CardIDs: fillerDeck(20)},
			DeckList{LeaderID: "leader-b", CardIDs: fillerDeck(20)}))
		require.NoError(t, g.KeepHand(0))
		require.NoError(t, g.Mulligan(1))
		require.NoError(t, g.EndTurn(0))
		require.NoError(t, g.EndTurn(1))
		return g
	}
	a, b := run(), run()

	require.Equal(t, len(a.Player(0).Deck), len(b.Player(0).Deck))
	for i := range a.Player(0).Deck {
		assert.Equal(t, a.Player(0).Deck[i].CardID, b.Player(0).Deck[i].CardID)
		assert.Equal(t, a.Player(0).Deck[i].InstanceID, b.Player(0).Deck[i].InstanceID)
	}
	assert.Equal(t, a.Turn, b.Turn)
	assert.Equal(t, a.Phase, b.Phase)
	assert.Equal(t, len(a.History), len(b.History))
}
