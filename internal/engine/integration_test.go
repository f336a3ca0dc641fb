package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifeTriggerOffersActivation(t *testing.T) {
	atk := testChar("attacker-7000", 5, 7000)
	trig := testChar("trig", 2, 2000)
	trig.Effects = []*EffectDefinition{{
		ID:       "trig-E1",
		Trigger:  TriggerTrigger,
		Optional: true,
		Actions:  []EffectAction{{Type: ActionDraw, Value: ip(1)}},
	}}
	g := newTestGame(t, atk, trig)

	attacker := deployDirect(t, g, 0, "attacker-7000")
	p2 := g.Player(1)

	// plant a trigger card on top of the defender's life stack
	def, _ := g.catalog.Get("trig")
	lifeCard := g.instantiate(def, 1)
	lifeCard.Zone = ZoneLife
	lifeCard.FaceUp = false
	p2.Life = append(p2.Life, lifeCard)
	p2.Life = p2.Life[1:] // keep the stack at leader life

	require.NoError(t, g.DeclareAttack(0, attacker.InstanceID, p2.Leader.InstanceID, CombatTargetLeader))
	require.NoError(t, g.PassBlocker(1))
	require.NoError(t, g.PassCounter(1))

	assert.Equal(t, PhaseTriggerStep, g.Phase)
	d := g.PendingDecision
	require.NotNil(t, d)
	assert.Equal(t, 1, d.PlayerID)
	require.Len(t, d.Effects, 1)
	assert.Equal(t, TriggerTrigger, d.Effects[0].Trigger)
	assert.True(t, lifeCard.FaceUp, "the revealed life card is face-up")
	checkInvariants(t, g)

	handBefore := len(p2.Hand)
	require.NoError(t, g.ResolvePlayEffect(1, 0, nil))
	assert.Len(t, p2.Hand, handBefore+1)
	assert.Equal(t, PhaseMain, g.Phase)
	assert.Nil(t, g.CurrentCombat)
}

func TestLifeTriggerCanBeDeclined(t *testing.T) {
	atk := testChar("attacker-7000", 5, 7000)
	trig := testChar("trig", 2, 2000)
	trig.Effects = []*EffectDefinition{{
		ID:       "trig-E1",
		Trigger:  TriggerTrigger,
		Optional: true,
		Actions:  []EffectAction{{Type: ActionDraw, Value: ip(1)}},
	}}
	g := newTestGame(t, atk, trig)

	attacker := deployDirect(t, g, 0, "attacker-7000")
	p2 := g.Player(1)
	def, _ := g.catalog.Get("trig")
	lifeCard := g.instantiate(def, 1)
	lifeCard.Zone = ZoneLife
	p2.Life = append(p2.Life, lifeCard)
	p2.Life = p2.Life[1:]

	require.NoError(t, g.DeclareAttack(0, attacker.InstanceID, p2.Leader.InstanceID, CombatTargetLeader))
	require.NoError(t, g.PassBlocker(1))
	require.NoError(t, g.PassCounter(1))

	handBefore := len(p2.Hand)
	require.NoError(t, g.SkipPlayEffect(1, 0))
	assert.Len(t, p2.Hand, handBefore, "declined trigger does nothing further")
	assert.Equal(t, PhaseMain, g.Phase)
}

// TestFullDuelToLeaderVictory drives a complete duel through the
// dispatcher only: an early board, repeated leader attacks, and the
// life stack ground down to the winning blow.
func TestFullDuelToLeaderVictory(t *testing.T) {
	atk := testChar("attacker-9000", 5, 9000)
	g := newTestGame(t, atk)
	attacker := deployDirect(t, g, 0, "attacker-9000")
	leader1 := g.Player(1).Leader

	seq := 0
	next := func(typ ActionType, player int, data ActionData) {
		seq++
		require.NoError(t, step(g, seq, typ, player, data),
			"action %d (%s) turn %d phase %s", seq, typ, g.Turn, g.Phase)
	}

	for round := 0; round < 6; round++ {
		next(ActDeclareAttack, 0, ActionData{
			InstanceID: attacker.InstanceID,
			TargetID:   leader1.InstanceID,
			TargetKind: CombatTargetLeader,
		})
		next(ActPassPriority, 1, ActionData{})
		next(ActPassCounter, 1, ActionData{})
		checkInvariants(t, g)

		if g.Phase == PhaseGameOver {
			break
		}
		next(ActEndTurn, 0, ActionData{})
		next(ActEndTurn, 1, ActionData{})
	}

	assert.Equal(t, PhaseGameOver, g.Phase)
	require.NotNil(t, g.Winner)
	assert.Equal(t, 0, *g.Winner)
	assert.Empty(t, g.Player(1).Life)
	assert.NotEmpty(t, g.History)
}

// TestFullDuelWithBoardTrades exercises plays, blocks, counters, and
// KOs across several turns via the dispatcher.
func TestFullDuelWithBoardTrades(t *testing.T) {
	atk := testChar("bruiser", 1, 6000)
	blk := testChar("wall", 1, 5000, KeywordBlocker)
	g := newTestGame(t, atk, blk)

	seq := 0
	next := func(typ ActionType, player int, data ActionData) {
		seq++
		require.NoError(t, step(g, seq, typ, player, data),
			"action %d (%s) turn %d phase %s", seq, typ, g.Turn, g.Phase)
	}

	// turn 1: player 0 deploys
	c1 := putInHand(t, g, 0, "bruiser")
	next(ActPlayCard, 0, ActionData{InstanceID: c1.InstanceID, FieldSlot: -1})
	next(ActEndTurn, 0, ActionData{})

	// turn 2: player 1 deploys a blocker
	c2 := putInHand(t, g, 1, "wall")
	next(ActPlayCard, 1, ActionData{InstanceID: c2.InstanceID, FieldSlot: -1})
	next(ActEndTurn, 1, ActionData{})

	// turn 3: player 0 attacks the leader; player 1 blocks and loses
	// the blocker to the bigger attacker.
	next(ActDeclareAttack, 0, ActionData{
		InstanceID: c1.InstanceID,
		TargetID:   g.Player(1).Leader.InstanceID,
		TargetKind: CombatTargetLeader,
	})
	next(ActSelectBlocker, 1, ActionData{InstanceID: c2.InstanceID})
	counter := putInHand(t, g, 1, "filler")
	next(ActUseCounter, 1, ActionData{InstanceID: counter.InstanceID})
	next(ActPassCounter, 1, ActionData{})

	// 6000 >= 5000 + 1000: the blocker still falls
	assert.Equal(t, ZoneTrash, c2.Zone)
	assert.Len(t, g.Player(1).Life, 5)
	assert.Empty(t, g.Player(1).FieldCards())
	checkInvariants(t, g)
}

func TestHistoryRecordsTheDuel(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.EndTurn(0))

	var summaries []string
	for _, h := range g.History {
		summaries = append(summaries, fmt.Sprintf("%d/%s", h.Player, h.Summary))
	}
	assert.Contains(t, summaries, "0/turn begins")
	assert.Contains(t, summaries, "1/turn begins")
	assert.Contains(t, summaries, "1/draws a card")
}
