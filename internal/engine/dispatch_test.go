package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchRejectsDuplicateActionID(t *testing.T) {
	g := newTestGame(t)

	a := Action{ID: "dup-1", Type: ActEndTurn, PlayerID: 0}
	require.NoError(t, g.Dispatch(a))
	turnAfter := g.Turn

	err := g.Dispatch(a)
	require.Error(t, err)
	assert.ErrorContains(t, err, "duplicate action id")
	assert.Equal(t, turnAfter, g.Turn, "no double-advance on replay")
}

func TestDispatchRejectsInvalidPlayer(t *testing.T) {
	g := newTestGame(t)
	assert.Error(t, g.Dispatch(Action{ID: "x", Type: ActEndTurn, PlayerID: 2}))
	assert.Error(t, g.Dispatch(Action{ID: "y", Type: ActEndTurn, PlayerID: -1}))
}

// TestDispatchTotalOverActionTags drives every action tag through the
// dispatcher from a state where none of them is legal for the acting
// player, asserting each is rejected cleanly rather than panicking —
// the closest Go gets to an exhaustiveness check over the tag set.
func TestDispatchTotalOverActionTags(t *testing.T) {
	g := newTestGame(t)
	turnBefore := g.Turn
	phaseBefore := g.Phase

	for tag := ActPreGameSelect; tag <= ActResolveChoice; tag++ {
		err := step(g, int(tag), tag, 1, ActionData{InstanceID: -1, TargetID: -1, FieldSlot: -1})
		assert.Errorf(t, err, "tag %s should be rejected for the non-active player", tag)
	}
	assert.Equal(t, turnBefore, g.Turn)
	assert.Equal(t, phaseBefore, g.Phase)
	checkInvariants(t, g)
}

func TestDispatchRoutesCombatFlow(t *testing.T) {
	atk := testChar("attacker-6000", 4, 6000)
	g := newTestGame(t, atk)
	attacker := deployDirect(t, g, 0, "attacker-6000")
	leader := g.Player(1).Leader

	seq := 0
	next := func(typ ActionType, player int, data ActionData) error {
		seq++
		return step(g, seq, typ, player, data)
	}

	require.NoError(t, next(ActDeclareAttack, 0, ActionData{
		InstanceID: attacker.InstanceID,
		TargetID:   leader.InstanceID,
		TargetKind: CombatTargetLeader,
	}))
	require.NoError(t, next(ActPassPriority, 1, ActionData{}))
	require.NoError(t, next(ActPassCounter, 1, ActionData{}))

	assert.Len(t, g.Player(1).Life, 4)
	assert.Equal(t, PhaseMain, g.Phase)
	checkInvariants(t, g)
}

func TestGuardViolationLeavesStateUnchanged(t *testing.T) {
	g := newTestGame(t)
	handBefore := len(g.Player(0).Hand)
	donBefore := len(g.Player(0).DonArea)

	err := g.PlayCard(0, 999999, -1)
	require.Error(t, err)
	var gv *GuardViolation
	assert.ErrorAs(t, err, &gv)

	assert.Len(t, g.Player(0).Hand, handBefore)
	assert.Len(t, g.Player(0).DonArea, donBefore)
}

func TestPlayCardRejectsUnaffordable(t *testing.T) {
	pricey := testChar("pricey", 9, 9000)
	g := newTestGame(t, pricey)
	c := putInHand(t, g, 0, "pricey")

	err := g.PlayCard(0, c.InstanceID, -1)
	assert.ErrorContains(t, err, "DON!!")
	assert.Equal(t, ZoneHand, c.Zone)
}

func TestFieldLimitEnforced(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < MaxFieldSize; i++ {
		deployDirect(t, g, 0, "filler")
	}
	c := putInHand(t, g, 0, "filler")

	err := g.PlayCard(0, c.InstanceID, -1)
	require.Error(t, err)
	var rv *RuleViolation
	assert.ErrorAs(t, err, &rv)
	assert.ErrorContains(t, err, "field is full")
	checkInvariants(t, g)
}

func TestPendingDecisionBlocksFreeFormActions(t *testing.T) {
	rester := testChar("rester", 1, 2000)
	rester.Effects = []*EffectDefinition{{
		ID:       "rester-E1",
		Trigger:  TriggerOnPlay,
		Optional: true,
		Actions: []EffectAction{{
			Type:   ActionRest,
			Target: &TargetDescriptor{Kind: TargetOpponentCharacter, Min: 0, Max: 1, Optional: true},
		}},
	}}
	g := newTestGame(t, rester)
	deployDirect(t, g, 1, "filler")
	c := putInHand(t, g, 0, "rester")
	require.NoError(t, g.PlayCard(0, c.InstanceID, -1))
	require.NotNil(t, g.PendingDecision)

	assert.Error(t, g.EndTurn(0), "free-form actions are illegal while a decision is pending")
	assert.Error(t, g.DeclareAttack(0, c.InstanceID, g.Player(1).Leader.InstanceID, CombatTargetLeader))
	require.NoError(t, g.SkipPlayEffect(0, 0))
	require.NoError(t, g.EndTurn(0))
}

func TestInvariantBreachSurfacesOnCorruptCombat(t *testing.T) {
	g := newTestGame(t)
	g.CurrentCombat = &Combat{AttackerID: 424242, TargetID: 434343}

	err := g.resolveCombat()
	require.Error(t, err)
	var ib *InvariantBreach
	assert.ErrorAs(t, err, &ib)

	dump, derr := Dump(g)
	require.NoError(t, derr)
	assert.Contains(t, string(dump), "\"phase\"")
}
