package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optcgx/engine/internal/engine"
)

func TestCompileOnPlayRestWithCostFilter(t *testing.T) {
	defs, err := Compile("C1", "[On Play] Rest up to 1 of your opponent's Characters with a cost of 3 or less.")
	require.NoError(t, err)
	require.Len(t, defs, 1)

	d := defs[0]
	assert.Equal(t, engine.TriggerOnPlay, d.Trigger)
	require.Len(t, d.Actions, 1)

	a := d.Actions[0]
	assert.Equal(t, engine.ActionRest, a.Type)
	require.NotNil(t, a.Target)
	assert.Equal(t, engine.TargetOpponentCharacter, a.Target.Kind)
	assert.Equal(t, 0, a.Target.Min)
	assert.Equal(t, 1, a.Target.Max)
	assert.True(t, a.Target.Optional)
	require.Len(t, a.Target.Filters, 1)
	assert.Equal(t, engine.FilterCost, a.Target.Filters[0].Property)
	assert.Equal(t, engine.OpOrLess, a.Target.Filters[0].Operator)
	assert.Equal(t, "3", a.Target.Filters[0].Value)
}

func TestCompileBaseCostAndBasePowerEmitDistinctProperties(t *testing.T) {
	defs, err := Compile("C2", "[Main] K.O. up to 1 of your opponent's Characters with a base cost of 4 or less.")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	a := defs[0].Actions[0]
	assert.Equal(t, engine.ActionKO, a.Type)
	assert.Equal(t, engine.FilterBaseCost, a.Target.Filters[0].Property)

	defs, err = Compile("C3", "[Main] K.O. up to 1 of your opponent's Characters with a base power of 5000 or less.")
	require.NoError(t, err)
	assert.Equal(t, engine.FilterBasePower, defs[0].Actions[0].Target.Filters[0].Property)

	defs, err = Compile("C4", "[Main] K.O. up to 1 of your opponent's Characters with a power of 5000 or less.")
	require.NoError(t, err)
	assert.Equal(t, engine.FilterPower, defs[0].Actions[0].Target.Filters[0].Property)
}

func TestCompileDonXWithSelfBuff(t *testing.T) {
	defs, err := Compile("L1", "[Your Turn] DON!!x2: This Leader gains +1000 power.")
	require.NoError(t, err)
	require.Len(t, defs, 1)

	d := defs[0]
	assert.Equal(t, engine.TriggerDonX, d.Trigger)
	require.Len(t, d.Conditions, 1)
	assert.Equal(t, 2, d.Conditions[0].MinDonAttached)

	a := d.Actions[0]
	assert.Equal(t, engine.ActionBuffPower, a.Type)
	assert.Equal(t, 1000, *a.Value)
	assert.Equal(t, engine.TargetSelf, a.Target.Kind)
	assert.Equal(t, engine.DurationStageContinuous, a.Duration.Kind)
}

func TestCompileCounterShorthand(t *testing.T) {
	defs, err := Compile("C5", "[Counter] +2000 power.")
	require.NoError(t, err)
	require.Len(t, defs, 1)

	d := defs[0]
	assert.Equal(t, engine.TriggerCounter, d.Trigger)
	a := d.Actions[0]
	assert.Equal(t, engine.ActionBuffPower, a.Type)
	assert.Equal(t, 2000, *a.Value)
	assert.Equal(t, engine.TargetSelf, a.Target.Kind)
	assert.Equal(t, engine.DurationThisBattle, a.Duration.Kind)
}

func TestCompileCounterEventTargetsLeader(t *testing.T) {
	defs, err := Compile("E1", "[Counter] Give up to 1 of your Leader or Characters +4000 power during this battle.")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	a := defs[0].Actions[0]
	assert.Equal(t, engine.ActionBuffPower, a.Type)
	assert.Equal(t, 4000, *a.Value)
	assert.Equal(t, engine.TargetYourLeaderOrCharacter, a.Target.Kind)
	assert.Equal(t, engine.DurationThisBattle, a.Duration.Kind)
}

func TestCompileRestDonCost(t *testing.T) {
	defs, err := Compile("C6", "[On Play] You may rest 1 of your DON!! cards: give up to 1 of your Characters +2000 power during this turn.")
	require.NoError(t, err)
	require.Len(t, defs, 1)

	d := defs[0]
	require.Len(t, d.Costs, 1)
	require.Len(t, d.Costs[0], 1)
	assert.Equal(t, engine.CostRestDon, d.Costs[0][0].Kind)
	assert.Equal(t, 1, d.Costs[0][0].Amount)
	assert.True(t, d.Costs[0][0].Optional)

	a := d.Actions[0]
	assert.Equal(t, engine.ActionBuffPower, a.Type)
	assert.Equal(t, engine.DurationThisTurn, a.Duration.Kind)
	assert.Equal(t, engine.TargetYourCharacter, a.Target.Kind)
}

func TestCompileOncePerTurnActivateMain(t *testing.T) {
	defs, err := Compile("C7", "[Activate: Main] [Once Per Turn] Draw 1 card.")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, engine.TriggerActivateMain, defs[0].Trigger)
	assert.True(t, defs[0].OncePerTurn)
	assert.Equal(t, engine.ActionDraw, defs[0].Actions[0].Type)
	assert.Equal(t, 1, *defs[0].Actions[0].Value)
}

func TestCompileSearchAndSelect(t *testing.T) {
	defs, err := Compile("C8", "[On Play] Look at 5 cards from the top of your deck. Reveal up to 1 {Straw Hat Crew} Character card other than [Nami] and add it to your hand. Then, trash the rest.")
	require.NoError(t, err)
	require.Len(t, defs, 1)

	a := defs[0].Actions[0]
	assert.Equal(t, engine.ActionSearchAndSelect, a.Type)
	assert.Equal(t, 5, a.LookCount)
	assert.Equal(t, 1, a.MaxSelections)
	assert.Equal(t, "Straw Hat Crew", a.TraitFilter)
	assert.Equal(t, []string{"Nami"}, a.ExcludeNames)
	assert.Equal(t, engine.ActionReturnToHand, a.SelectAction)
	assert.Equal(t, engine.ActionTrash, a.RemainderAction)
}

func TestCompileStartOfGameDirective(t *testing.T) {
	defs, err := Compile("L2", "At the start of the game, you may reveal up to 1 {Navy} type Character from your deck and play it.")
	require.NoError(t, err)
	require.Len(t, defs, 1)

	d := defs[0]
	assert.Equal(t, engine.TriggerImmediate, d.Trigger)
	assert.Equal(t, "start-of-game", d.Description)
	assert.True(t, d.Optional)
	a := d.Actions[0]
	assert.Equal(t, engine.ActionSearchAndSelect, a.Type)
	assert.Equal(t, 1, a.MaxSelections)
	assert.Equal(t, "Navy", a.TraitFilter)
}

func TestCompileTriggerLineIsOptional(t *testing.T) {
	defs, err := Compile("C9", "[Trigger] Add this card to your hand.")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, engine.TriggerTrigger, defs[0].Trigger)
	assert.True(t, defs[0].Optional)
	assert.Equal(t, engine.ActionNone, defs[0].Actions[0].Type)
}

func TestCompileKeywordOnlyTextYieldsNothing(t *testing.T) {
	for _, text := range []string{"[Blocker]", "[Rush]", "[Double Attack]", "No effect."} {
		defs, err := Compile("K1", text)
		require.NoError(t, err, text)
		assert.Empty(t, defs, text)
	}
}

func TestCompileUnparseableClauseFails(t *testing.T) {
	_, err := Compile("B1", "[On Play] Perform an unspeakable ritual.")
	require.Error(t, err)
	var pf *engine.ParserFailure
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, "B1", pf.CardID)
}

func TestCompileIsIdempotent(t *testing.T) {
	text := "[On Play] K.O. up to 1 of your opponent's Characters with a cost of 2 or less.\n[Your Turn] DON!!x1: This Character gains +1000 power."
	first, err := Compile("C10", text)
	require.NoError(t, err)
	second, err := Compile("C10", text)
	require.NoError(t, err)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Trigger, second[i].Trigger)
		assert.Equal(t, first[i].Actions, second[i].Actions)
	}
}

func TestCompileMultiSentenceClause(t *testing.T) {
	defs, err := Compile("C11", "[On K.O.] Draw 2 cards. Then, your opponent's Leader takes 1 damage.")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	require.Len(t, defs[0].Actions, 2)
	assert.Equal(t, engine.ActionDraw, defs[0].Actions[0].Type)
	assert.Equal(t, 2, *defs[0].Actions[0].Value)
	assert.Equal(t, engine.ActionLoseLife, defs[0].Actions[1].Type)
	assert.Equal(t, engine.TargetOpponentLeader, defs[0].Actions[1].Target.Kind)
}
