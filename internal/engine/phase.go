package engine

// NewGameState constructs an empty match shell. Call StartMatch to
// populate decks/leaders and begin the Mulligan phase.
func NewGameState(catalog CardCatalog, rng RNG, logger EventSink) *GameState {
	return &GameState{
		Phase:   PhaseStartWaiting,
		catalog: catalog,
		rng:     rng,
		logger:  logger,
	}
}

// DeckList is the card-id sequence for one player's main deck, plus
// the leader id, handed to StartMatch.
type DeckList struct {
	LeaderID string
	CardIDs  []string
}

// StartMatch builds both players' decks and leaders from the catalog,
// shuffles each deck, and enters PreGameSetup or StartMulligan
// depending on whether either leader carries a start-of-game directive.
func (g *GameState) StartMatch(id string, first DeckList, second DeckList) error {
	g.ID = id
	g.FirstPlayer = 0
	g.ActivePlayer = 0

	for i, dl := range [2]DeckList{first, second} {
		leaderDef, ok := g.catalog.Get(dl.LeaderID)
		if !ok {
			return newGuardViolation("unknown leader card id %q", dl.LeaderID)
		}
		p := &PlayerState{
			ID:              itoaPlayer(i),
			Active:          i == 0,
			OncePerTurnUsed: map[string]bool{},
			SeenActionIDs:   map[string]bool{},
		}
		leader := g.instantiate(leaderDef, i)
		leader.Zone = ZoneLeader
		p.Leader = leader

		for _, cid := range dl.CardIDs {
			def, ok := g.catalog.Get(cid)
			if !ok {
				return newGuardViolation("unknown card id %q in deck", cid)
			}
			c := g.instantiate(def, i)
			c.Zone = ZoneDeck
			p.Deck = append(p.Deck, c)
		}
		p.DonDeckCount = 10
		g.Players[i] = p
	}

	for i := range g.Players {
		g.shuffleDeck(g.Players[i])
	}

	hasDirective := false
	for i, p := range g.Players {
		dir := leaderStartOfGameDirective(g.catalog, p.Leader.CardID)
		if dir != nil {
			g.pendingStartOfGame[i] = dir
			hasDirective = true
		}
	}

	if hasDirective {
		for i, dir := range g.pendingStartOfGame {
			if dir != nil {
				g.openPreGameSelect(i, dir)
				break
			}
		}
	} else {
		g.beginMulligan()
	}
	return nil
}

// leaderStartOfGameDirective looks for a Leader's pre-game search
// directive, parsed separately from its regular effect list: an Immediate-trigger effect tagged "start-of-game"
// whose sole action is a SearchAndSelect.
func leaderStartOfGameDirective(catalog CardCatalog, leaderID string) *StartOfGameDirective {
	def, ok := catalog.Get(leaderID)
	if !ok {
		return nil
	}
	for _, e := range def.Effects {
		if e.Trigger != TriggerImmediate || e.Description != "start-of-game" {
			continue
		}
		for _, a := range e.Actions {
			if a.Type == ActionSearchAndSelect {
				return &StartOfGameDirective{
					Trait:    a.TraitFilter,
					Category: CategoryCharacter,
					Count:    a.MaxSelections,
					Optional: e.Optional,
				}
			}
		}
	}
	return nil
}

func itoaPlayer(i int) string {
	if i == 0 {
		return "p1"
	}
	return "p2"
}

// instantiate creates a fresh GameCard from a catalog definition.
func (g *GameState) instantiate(def *CardDefinition, owner int) *GameCard {
	power := 0
	if def.Power != nil {
		power = *def.Power
	}
	return &GameCard{
		InstanceID:   g.NextInstanceID(),
		CardID:       def.ID,
		Owner:        owner,
		State:        StateActive,
		FaceUp:       true,
		BasePower:    power,
		TempKeywords: map[Keyword]bool{},
	}
}

func (g *GameState) shuffleDeck(p *PlayerState) {
	g.rng.Shuffle(len(p.Deck), func(i, j int) {
		p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
	})
}

// beginMulligan moves both players into StartMulligan, drawing each an
// opening hand of StartingHandSize cards before the Keep/Mulligan
// decision.
func (g *GameState) beginMulligan() {
	g.Phase = PhaseStartMulligan
	for i, p := range g.Players {
		for n := 0; n < StartingHandSize; n++ {
			g.drawCardUnchecked(p)
		}
		g.recordHistory(i, "draws opening hand")
	}
}

// drawCardUnchecked draws without deck-out checking, for setup paths
// where an empty deck would be a catalog-construction bug, not a
// legal mid-match state.
func (g *GameState) drawCardUnchecked(p *PlayerState) *GameCard {
	if len(p.Deck) == 0 {
		return nil
	}
	c := p.Deck[0]
	p.Deck = p.Deck[1:]
	c.Zone = ZoneHand
	p.Hand = append(p.Hand, c)
	return c
}

// KeepHand resolves the given player's Mulligan decision without
// reshuffling. A repeat KeepHand from a player who
// already confirmed is a no-op.
func (g *GameState) KeepHand(player int) error {
	if g.Phase != PhaseStartMulligan {
		return newGuardViolation("not in Mulligan phase")
	}
	if g.mulliganDone[player] {
		return nil
	}
	g.mulliganDone[player] = true
	g.recordHistory(player, "keeps hand")
	g.maybeBeginFirstTurn()
	return nil
}

// Mulligan shuffles the player's hand into the deck and draws a fresh
// opening hand, once per player.
func (g *GameState) Mulligan(player int) error {
	if g.Phase != PhaseStartMulligan {
		return newGuardViolation("not in Mulligan phase")
	}
	if g.mulliganDone[player] {
		return newGuardViolation("already resolved mulligan")
	}
	p := g.Players[player]
	p.Deck = append(p.Deck, p.Hand...)
	p.Hand = nil
	g.shuffleDeck(p)
	for n := 0; n < StartingHandSize; n++ {
		g.drawCardUnchecked(p)
	}
	g.mulliganDone[player] = true
	g.recordHistory(player, "mulligans")
	g.maybeBeginFirstTurn()
	return nil
}

func (g *GameState) maybeBeginFirstTurn() {
	if !g.mulliganDone[0] || !g.mulliganDone[1] {
		return
	}
	for i, p := range g.Players {
		def, _ := g.catalog.Get(p.Leader.CardID)
		life := def.Life
		if life == 0 {
			life = DefaultLifeSize
		}
		for k := 0; k < life; k++ {
			if len(p.Deck) == 0 {
				break
			}
			c := p.Deck[0]
			p.Deck = p.Deck[1:]
			c.Zone = ZoneLife
			c.FaceUp = false
			p.Life = append(p.Life, c)
		}
		g.recordHistory(i, "sets up life")
	}
	g.ActivePlayer = g.FirstPlayer
	g.Turn = 1
	g.beginTurn(true)
}

// beginTurn runs the automatic Draw/Don sequence and lands on Main
// Phase. firstTurn suppresses the draw (already drew the opening
// hand) and reduces the Don Phase count to 1.
func (g *GameState) beginTurn(firstTurn bool) {
	for i := range g.Players {
		g.Players[i].Active = i == g.ActivePlayer
	}
	p := g.ActivePlayerState()
	p.PersonalTurnCount++
	g.recordHistory(g.ActivePlayer, "turn begins")

	g.Phase = PhaseDraw
	if !firstTurn {
		if !g.drawForActivePlayer() {
			return // deck-out, match already ended
		}
	}

	g.Phase = PhaseDon
	count := DonPerTurn
	if firstTurn {
		count = FirstTurnDonCount
	}
	moved := 0
	for moved < count && p.DonDeckCount > 0 {
		p.DonDeckCount--
		don := &GameCard{
			InstanceID: g.NextInstanceID(),
			CardID:     "DON",
			Owner:      g.ActivePlayer,
			Zone:       ZoneDonArea,
			State:      StateActive,
			FaceUp:     true,
		}
		p.DonArea = append(p.DonArea, don)
		moved++
	}
	g.recordHistory(g.ActivePlayer, "don phase")

	g.recomputeContinuous()
	g.Phase = PhaseMain
}

// drawForActivePlayer draws one card for the active player; deck-out
// ends the match immediately. Returns
// false if the match ended.
func (g *GameState) drawForActivePlayer() bool {
	p := g.ActivePlayerState()
	if len(p.Deck) == 0 {
		g.endMatch(Opponent(g.ActivePlayer), "deck-out")
		return false
	}
	c := p.Deck[0]
	p.Deck = p.Deck[1:]
	c.Zone = ZoneHand
	p.Hand = append(p.Hand, c)
	g.recordHistory(g.ActivePlayer, "draws a card")
	g.fireTrigger(TriggerCardDrawn, g.ActivePlayer, c.InstanceID, PhasePlayEffectStep)
	return true
}

// EndTurn closes out the active player's turn (the End Phase and
// Refresh Phase sequence) and begins the next one.
func (g *GameState) EndTurn(player int) error {
	if g.Phase != PhaseMain {
		return newGuardViolation("can only end turn during Main Phase")
	}
	if player != g.ActivePlayer {
		return newGuardViolation("not your turn")
	}
	g.Phase = PhaseEnd
	g.clearThisTurnBuffs(g.ActivePlayer)
	g.fireTrigger(TriggerEndOfTurn, g.ActivePlayer, -1, PhasePlayEffectStep)
	g.recordHistory(g.ActivePlayer, "end phase")

	p := g.ActivePlayerState()
	if p.ExtraTurns > 0 {
		p.ExtraTurns--
		g.recordHistory(g.ActivePlayer, "takes an extra turn")
		g.refreshPlayer(g.ActivePlayer)
		g.Turn++
		g.beginTurn(false)
		return nil
	}

	next := Opponent(g.ActivePlayer)
	g.ActivePlayer = next
	g.refreshPlayer(next)
	g.Turn++
	g.beginTurn(false)
	return nil
}

// refreshPlayer runs the Refresh Phase for the given (about to become
// active) player: detach every DON!, set every card to Active, clear
// per-turn flags. Skipped implicitly on turn 1 since
// there is nothing yet to refresh.
func (g *GameState) refreshPlayer(player int) {
	g.Phase = PhaseRefresh
	p := g.Players[player]
	for _, d := range p.DonArea {
		d.State = StateActive
		d.AttachedTo = nil
	}
	if p.Leader != nil {
		p.Leader.State = StateActive
		p.Leader.HasAttacked = false
		p.Leader.ActivatedThisTurn = false
	}
	for _, c := range p.Field {
		if c == nil {
			continue
		}
		c.State = StateActive
		c.HasAttacked = false
		c.ActivatedThisTurn = false
	}
	p.OncePerTurnUsed = map[string]bool{}
	g.recordHistory(player, "refresh phase")
}

// clearThisTurnBuffs strips ThisTurn-scoped power buffs belonging to
// the ending player's cards.
func (g *GameState) clearThisTurnBuffs(player int) {
	p := g.Players[player]
	strip := func(c *GameCard) {
		if c == nil {
			return
		}
		filtered := c.Buffs[:0]
		for _, b := range c.Buffs {
			if b.Duration.Kind == DurationThisTurn && b.Duration.Turn == g.Turn {
				continue
			}
			filtered = append(filtered, b)
		}
		c.Buffs = filtered
	}
	strip(p.Leader)
	strip(p.Stage)
	for _, c := range p.Field {
		strip(c)
	}
}

// endMatch finalizes the match with the given winner and reason.
func (g *GameState) endMatch(winner int, reason string) {
	w := winner
	g.Winner = &w
	g.Phase = PhaseGameOver
	g.recordHistory(winner, "wins: "+reason)
}
