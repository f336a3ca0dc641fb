package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// testCatalog is a fixed in-memory CardCatalog for engine tests; the
// real registry lives in internal/catalog, which this package cannot
// import without a cycle.
type testCatalog struct {
	byID map[string]*CardDefinition
	all  []*CardDefinition
}

func newTestCatalog(defs ...*CardDefinition) *testCatalog {
	c := &testCatalog{byID: map[string]*CardDefinition{}}
	for _, d := range defs {
		c.byID[d.ID] = d
		c.all = append(c.all, d)
	}
	return c
}

func (c *testCatalog) Get(cardID string) (*CardDefinition, bool) {
	d, ok := c.byID[cardID]
	return d, ok
}

func (c *testCatalog) All() []*CardDefinition { return c.all }

func ip(v int) *int { return &v }

func testLeader(id string, power, life int) *CardDefinition {
	return &CardDefinition{
		ID:       id,
		Name:     id,
		Category: CategoryLeader,
		Colors:   []Color{ColorRed},
		Power:    ip(power),
		Life:     life,
	}
}

func testChar(id string, cost, power int, keywords ...Keyword) *CardDefinition {
	kw := map[Keyword]bool{}
	for _, k := range keywords {
		kw[k] = true
	}
	return &CardDefinition{
		ID:       id,
		Name:     id,
		Category: CategoryCharacter,
		Colors:   []Color{ColorRed},
		Cost:     cost,
		Power:    ip(power),
		Counter:  ip(1000),
		Traits:   []string{"Crew"},
		Keywords: kw,
	}
}

// baseDefs is the minimum catalog a test duel needs: two vanilla
// leaders and a vanilla deck filler.
func baseDefs() []*CardDefinition {
	return []*CardDefinition{
		testLeader("leader-a", 5000, 5),
		testLeader("leader-b", 5000, 5),
		testChar("filler", 1, 2000),
	}
}

func fillerDeck(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = "filler"
	}
	return ids
}

// newTestGame starts a duel over the given extra defs (on top of
// baseDefs) and resolves both mulligans, landing on player 0's first
// Main Phase.
func newTestGame(t *testing.T, extra ...*CardDefinition) *GameState {
	t.Helper()
	g := newTestGameNoMulligan(t, extra...)
	require.NoError(t, g.KeepHand(0))
	require.NoError(t, g.KeepHand(1))
	require.Equal(t, PhaseMain, g.Phase)
	return g
}

func newTestGameNoMulligan(t *testing.T, extra ...*CardDefinition) *GameState {
	t.Helper()
	cat := newTestCatalog(append(baseDefs(), extra...)...)
	g := NewGameState(cat, NewSeededRNG(42), nil)
	deck := DeckList{LeaderID: "leader-a", CardIDs: fillerDeck(20)}
	deck2 := DeckList{LeaderID: "leader-b", CardIDs: fillerDeck(20)}
	require.NoError(t, g.StartMatch("m-test", deck, deck2))
	return g
}

// deployDirect puts a fresh instance of the given card straight onto a
// player's field as if it had been played on an earlier turn, skipping
// cost payment. Test setup only.
func deployDirect(t *testing.T, g *GameState, player int, cardID string) *GameCard {
	t.Helper()
	def, ok := g.catalog.Get(cardID)
	require.True(t, ok, "unknown test card %s", cardID)
	c := g.instantiate(def, player)
	c.Zone = ZoneField
	slot := g.Players[player].FreeFieldSlot()
	require.GreaterOrEqual(t, slot, 0, "field full")
	g.Players[player].Field[slot] = c
	g.recomputeContinuous()
	return c
}

// putInHand puts a fresh instance of the given card into a player's
// hand, bypassing the draw path.
func putInHand(t *testing.T, g *GameState, player int, cardID string) *GameCard {
	t.Helper()
	def, ok := g.catalog.Get(cardID)
	require.True(t, ok, "unknown test card %s", cardID)
	c := g.instantiate(def, player)
	c.Zone = ZoneHand
	g.Players[player].Hand = append(g.Players[player].Hand, c)
	return c
}

// pushDeckTop puts a fresh instance of the given card on top of a
// player's deck.
func pushDeckTop(t *testing.T, g *GameState, player int, cardID string) *GameCard {
	t.Helper()
	def, ok := g.catalog.Get(cardID)
	require.True(t, ok, "unknown test card %s", cardID)
	c := g.instantiate(def, player)
	c.Zone = ZoneDeck
	g.Players[player].Deck = append([]*GameCard{c}, g.Players[player].Deck...)
	return c
}

// giveDon adds n active, unattached DON! to a player's cost area.
func giveDon(g *GameState, player int, n int) {
	p := g.Players[player]
	for i := 0; i < n; i++ {
		p.DonArea = append(p.DonArea, &GameCard{
			InstanceID: g.NextInstanceID(),
			CardID:     "DON",
			Owner:      player,
			Zone:       ZoneDonArea,
			State:      StateActive,
			FaceUp:     true,
		})
	}
}

// checkInvariants asserts the universal invariants that must hold
// after every action.
func checkInvariants(t *testing.T, g *GameState) {
	t.Helper()

	activeCount := 0
	for pi, p := range g.Players {
		if p.Active {
			activeCount++
		}
		if def, ok := g.catalog.Get(p.Leader.CardID); ok {
			max := def.Life
			if max == 0 {
				max = DefaultLifeSize
			}
			require.LessOrEqualf(t, len(p.Life), max, "player %d life above leader maximum", pi)
		}

		fieldCount := 0
		for _, c := range p.Field {
			if c != nil {
				fieldCount++
			}
		}
		require.LessOrEqual(t, fieldCount, MaxFieldSize)

		for _, d := range p.DonArea {
			attached := d.AttachedTo != nil
			require.Equal(t, attached, d.State == StateAttached,
				"DON! attachment and state disagree")
		}
		for _, c := range append(p.FieldCards(), p.Hand...) {
			require.Nil(t, c.AttachedTo, "only DON! cards may attach")
		}
	}
	if g.Phase != PhaseGameOver {
		require.Equal(t, 1, activeCount, "exactly one active player")
	}

	if g.PendingDecision != nil {
		require.True(t, g.Phase.isPendingDecisionPhase(),
			"pending decision set in non-decision phase %s", g.Phase)
	} else {
		require.False(t, g.Phase.isPendingDecisionPhase(),
			"decision phase %s with no pending decision", g.Phase)
	}
}

// step dispatches an action built from parts, for tests that exercise
// the dispatcher path rather than manager methods directly.
func step(g *GameState, seq int, typ ActionType, player int, data ActionData) error {
	return g.Dispatch(Action{
		ID:       fmt.Sprintf("a-%d", seq),
		Type:     typ,
		PlayerID: player,
		Data:     data,
	})
}
