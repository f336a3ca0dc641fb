package engine

// continuation parks the remainder of an EffectAction list while a
// target/selection decision is outstanding, so pending.go can resume
// exactly where executeAction left off.
type continuation struct {
	pe        PendingEffect
	src       *GameCard
	remaining []EffectAction
	depth     int
}

func (g *GameState) stashContinuation(c continuation) string {
	if g.continuations == nil {
		g.continuations = map[string]continuation{}
	}
	token := NewPendingEffectID()
	g.continuations[token] = c
	return token
}

func (g *GameState) popContinuation(token string) (continuation, bool) {
	c, ok := g.continuations[token]
	if ok {
		delete(g.continuations, token)
	}
	return c, ok
}

// resolveTargets expands a TargetDescriptor into the matching live
// cards, applying the target kind's zone scoping then the filter list.
func (g *GameState) resolveTargets(owner int, t *TargetDescriptor) []*GameCard {
	if t == nil {
		return nil
	}
	self := g.Players[owner]
	opp := g.Players[Opponent(owner)]

	var pool []*GameCard
	switch t.Kind {
	case TargetSelf:
		// resolved by the caller using the source card directly.
	case TargetYourCharacter:
		pool = self.FieldCards()
	case TargetOpponentCharacter:
		pool = opp.FieldCards()
	case TargetYourLeader:
		if self.Leader != nil {
			pool = []*GameCard{self.Leader}
		}
	case TargetOpponentLeader:
		if opp.Leader != nil {
			pool = []*GameCard{opp.Leader}
		}
	case TargetYourLeaderOrCharacter:
		pool = self.FieldCards()
		if self.Leader != nil {
			pool = append(pool, self.Leader)
		}
	case TargetOpponentLeaderOrCharacter:
		pool = opp.FieldCards()
		if opp.Leader != nil {
			pool = append(pool, opp.Leader)
		}
	case TargetOpponentStage:
		if opp.Stage != nil {
			pool = []*GameCard{opp.Stage}
		}
	case TargetYourField:
		pool = self.FieldCards()
	case TargetOpponentHand:
		pool = opp.Hand
	}

	var out []*GameCard
	for _, c := range pool {
		if g.matchesFilters(c, t.Filters) {
			out = append(out, c)
		}
	}
	return out
}

// matchesFilters reports whether a live card passes every Filter in
// the list.
func (g *GameState) matchesFilters(c *GameCard, filters []Filter) bool {
	if len(filters) == 0 {
		return true
	}
	def, ok := g.catalog.Get(c.CardID)
	if !ok {
		return false
	}
	for _, f := range filters {
		if !g.matchesFilter(c, def, f) {
			return false
		}
	}
	return true
}

func (g *GameState) matchesFilter(c *GameCard, def *CardDefinition, f Filter) bool {
	switch f.Property {
	case FilterName:
		switch f.Operator {
		case OpEquals:
			return def.Name == f.Value
		case OpNotEquals:
			return def.Name != f.Value
		}
	case FilterTrait:
		return def.HasTrait(f.Value) == (f.Operator != OpNotEquals)
	case FilterColor:
		for _, col := range def.Colors {
			if col.String() == f.Value {
				return f.Operator != OpNotEquals
			}
		}
		return f.Operator == OpNotEquals
	case FilterType:
		return def.Category.String() == f.Value
	case FilterCost:
		return compareInt(effectiveCost(c, def), f.Value, f.Operator)
	case FilterBaseCost:
		return compareInt(def.Cost, f.Value, f.Operator)
	case FilterPower:
		return compareInt(g.effectivePower(c), f.Value, f.Operator)
	case FilterBasePower:
		return compareInt(c.BasePower, f.Value, f.Operator)
	}
	return true
}

func effectiveCost(c *GameCard, def *CardDefinition) int {
	if c.CostOverride != nil {
		return *c.CostOverride
	}
	return def.Cost
}

func compareInt(actual int, literal string, op FilterOperator) bool {
	n := parseIntLoose(literal)
	switch op {
	case OpEquals:
		return actual == n
	case OpNotEquals:
		return actual != n
	case OpOrLess:
		return actual <= n
	case OpOrMore:
		return actual >= n
	default:
		return false
	}
}

func parseIntLoose(s string) int {
	n := 0
	neg := false
	for i, r := range s {
		if i == 0 && r == '-' {
			neg = true
			continue
		}
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	if neg {
		n = -n
	}
	return n
}

// koCharacter moves a character to trash and fires the KO-family
// triggers. It does not fire PreKO: its caller, resolveCharacterKO
// (combat.go), fires PreKO first for both battle and effect KOs. The KO'd
// card's own OnKO effects enqueue off its definition since the card
// is already in trash by the time they fire.
func (g *GameState) koCharacter(c *GameCard) {
	owner := c.Owner
	g.sendToTrash(c)
	g.enqueueOwnEffects(c, TriggerOnKO, PhasePlayEffectStep)
	g.fireTrigger(TriggerAnyCharacterKOd, owner, c.InstanceID, PhasePlayEffectStep)
	g.fireTrigger(TriggerAfterKOCharacter, owner, c.InstanceID, PhasePlayEffectStep)
}

// sendToTrash moves a card from its current zone to its owner's trash,
// detaching any DON! first.
func (g *GameState) sendToTrash(c *GameCard) {
	p := g.Players[c.Owner]
	g.detachDonFrom(c)
	switch c.Zone {
	case ZoneField:
		p.RemoveFromField(c.InstanceID)
	case ZoneStage:
		if p.Stage == c {
			p.Stage = nil
		}
	case ZoneHand:
		p.Hand = removeCard(p.Hand, c.InstanceID)
	case ZoneLeader:
		// leaders are never trashed by effects in practice; guarded
		// against here so a malformed effect can't corrupt state.
		return
	}
	c.Zone = ZoneTrash
	c.FaceUp = true
	p.Trash = append(p.Trash, c)
	g.removeBuffsSourcedBy(c.InstanceID)
}

// returnToHand moves a card from field/stage/trash back to its
// owner's hand.
func (g *GameState) returnToHand(c *GameCard) {
	p := g.Players[c.Owner]
	g.detachDonFrom(c)
	switch c.Zone {
	case ZoneField:
		p.RemoveFromField(c.InstanceID)
	case ZoneStage:
		if p.Stage == c {
			p.Stage = nil
		}
	case ZoneTrash:
		p.Trash = removeCard(p.Trash, c.InstanceID)
	}
	c.Zone = ZoneHand
	c.FaceUp = true
	c.Buffs = nil
	p.Hand = append(p.Hand, c)
	g.removeBuffsSourcedBy(c.InstanceID)
}

// detachDonFrom resets and unattaches every DON! attached to c.
func (g *GameState) detachDonFrom(c *GameCard) {
	p := g.Players[c.Owner]
	for _, d := range p.DonArea {
		if d.AttachedTo == c {
			d.AttachedTo = nil
			d.State = StateActive
		}
	}
}

// removeBuffsSourcedBy clears buffs sourced by a card that just left
// the field, for UntilSourceLeaves/WhileOnField durations.
func (g *GameState) removeBuffsSourcedBy(sourceID int) {
	strip := func(c *GameCard) {
		if c == nil {
			return
		}
		filtered := c.Buffs[:0]
		for _, b := range c.Buffs {
			if b.Source == sourceID &&
				(b.Duration.Kind == DurationWhileOnField || b.Duration.Kind == DurationUntilSourceLeaves) {
				continue
			}
			filtered = append(filtered, b)
		}
		c.Buffs = filtered
	}
	for _, p := range g.Players {
		strip(p.Leader)
		strip(p.Stage)
		for _, c := range p.Field {
			strip(c)
		}
	}
}

func removeCard(cards []*GameCard, instanceID int) []*GameCard {
	out := cards[:0]
	for _, c := range cards {
		if c.InstanceID != instanceID {
			out = append(out, c)
		}
	}
	return out
}

// drawForActivePlayerIgnoringTurn draws one card for the given player
// regardless of whose turn it is (effect-driven draws, unlike the
// phase-machine's drawForActivePlayer). Deck-out still ends the match.
func (g *GameState) drawForActivePlayerIgnoringTurn(player int) {
	p := g.Players[player]
	if len(p.Deck) == 0 {
		g.endMatch(Opponent(player), "deck-out")
		return
	}
	c := p.Deck[0]
	p.Deck = p.Deck[1:]
	c.Zone = ZoneHand
	p.Hand = append(p.Hand, c)
	g.fireTrigger(TriggerCardDrawn, player, c.InstanceID, PhasePlayEffectStep)
}

// executeSearchAndSelect implements the "Look at X... reveal up to Y
// {trait} card(s)..." pattern: reveals the top
// LookCount deck cards and opens a DeckRevealStep over the selectable
// subset, stashing the remainder-handling and any child effects.
func (g *GameState) executeSearchAndSelect(pe PendingEffect, src *GameCard, a EffectAction, siblings []EffectAction, index, depth int) bool {
	p := g.Players[pe.PlayerID]
	n := a.LookCount
	if n > len(p.Deck) {
		n = len(p.Deck)
	}
	revealed := p.Deck[:n]
	p.Deck = p.Deck[n:]

	var selectable []int
	for _, c := range revealed {
		if a.TraitFilter == "" {
			selectable = append(selectable, c.InstanceID)
			continue
		}
		def, ok := g.catalog.Get(c.CardID)
		if ok && def.HasTrait(a.TraitFilter) && !excluded(def.Name, a.ExcludeNames) {
			selectable = append(selectable, c.InstanceID)
		}
	}
	ids := make([]int, len(revealed))
	for i, c := range revealed {
		ids[i] = c.InstanceID
		// parked face-up in limbo (neither deck nor hand/trash yet) until
		// the DeckRevealStep resolves; findCard treats deck-truncated
		// cards as transiently untracked, acceptable since the pending
		// decision is the only way to reach them.
	}
	g.pendingReveal = revealed

	g.Phase = PhaseDeckRevealStep
	token := g.stashContinuation(continuation{pe: pe, src: src, remaining: append([]EffectAction{}, siblings[index+1:]...), depth: depth})
	g.PendingDecision = &PendingDecision{
		Kind:            DecisionDeckRevealStep,
		PlayerID:        pe.PlayerID,
		RevealedIDs:     ids,
		Selectable:      selectable,
		MaxSel:          a.MaxSelections,
		SelectAction:    a.SelectAction,
		RemainderAction: a.RemainderAction,
		ChildEffects:    a.Children,
		PendingEffectID: token,
	}
	return true
}

func excluded(name string, excludeNames []string) bool {
	for _, n := range excludeNames {
		if n == name {
			return true
		}
	}
	return false
}
