package engine

// checkTriggers scans leaders, field, and stage of both players plus
// cards carrying granted effects, and returns a PendingEffect for
// every EffectDefinition whose trigger matches the firing kind and
// whose scoping guard passes.
//
// Resolution order: active player's cards first, then declaration
// order (leader, then field in slot order, then stage) within a
// player.
func (g *GameState) checkTriggers(kind TriggerKind, actingPlayer int, sourceInstanceID int) []PendingEffect {
	var out []PendingEffect
	order := [2]int{g.ActivePlayer, Opponent(g.ActivePlayer)}
	for _, pi := range order {
		p := g.Players[pi]
		for _, c := range g.declarationOrder(p) {
			for _, def := range g.effectsOn(c) {
				if !g.triggerMatches(def, kind, c, actingPlayer, sourceInstanceID, pi) {
					continue
				}
				out = append(out, PendingEffect{
					ID:               NewPendingEffectID(),
					SourceInstanceID: c.InstanceID,
					PlayerID:         pi,
					Trigger:          kind,
					Effect:           def,
					RequiresChoice:   effectRequiresChoice(def),
				})
			}
		}
	}
	return out
}

// declarationOrder returns a player's visible cards in a stable,
// client-facing order: leader, field (slot order), stage.
func (g *GameState) declarationOrder(p *PlayerState) []*GameCard {
	var out []*GameCard
	if p.Leader != nil {
		out = append(out, p.Leader)
	}
	for _, c := range p.Field {
		if c != nil {
			out = append(out, c)
		}
	}
	if p.Stage != nil {
		out = append(out, p.Stage)
	}
	return out
}

// effectsOn returns a card's printed effects plus, while the card is on
// the field, its granted effects; a granted effect's source is not
// checked.
func (g *GameState) effectsOn(c *GameCard) []*EffectDefinition {
	def, ok := g.catalog.Get(c.CardID)
	var out []*EffectDefinition
	if ok {
		out = append(out, def.Effects...)
	}
	if g.isOnField(c) {
		out = append(out, c.GrantedEffects...)
	}
	return out
}

// triggerMatches applies each trigger kind's scoping rule: OnAttack
// fires only on the attacker, OnKO only on the KO'd card, Trigger only
// on the card just revealed, opponent-facing triggers only on the
// other player's cards.
func (g *GameState) triggerMatches(def *EffectDefinition, kind TriggerKind, owner *GameCard, actingPlayer, sourceInstanceID, ownerPlayer int) bool {
	if def.Trigger != kind {
		return false
	}
	switch kind {
	case TriggerOnPlay, TriggerOnBlock, TriggerOnAttack, TriggerOnKO, TriggerPreKO,
		TriggerTrashSelf, TriggerTrigger, TriggerDonTap, TriggerAttachDon, TriggerCardDrawn:
		return owner.InstanceID == sourceInstanceID
	case TriggerOpponentDeploys, TriggerOpponentPlaysEvent, TriggerOpponentActivatesBlocker:
		return ownerPlayer != actingPlayer
	case TriggerDeployedFromHand:
		return ownerPlayer == actingPlayer && owner.InstanceID == sourceInstanceID
	case TriggerTrashAlly:
		return ownerPlayer == actingPlayer && owner.InstanceID != sourceInstanceID
	case TriggerAnyCharacterKOd, TriggerHitLeader, TriggerEndOfTurn, TriggerStartOfTurn,
		TriggerLifeAddedToHand, TriggerAfterBattle, TriggerAfterKOCharacter:
		return true
	default:
		return true
	}
}

// effectRequiresChoice decides whether resolving this effect needs a
// player decision: an optional effect, a cost with more than one
// alternative, a cost needing hand/field selection, an optional cost,
// an action whose Target is not TargetSelf, or a search-and-select
// action.
func effectRequiresChoice(def *EffectDefinition) bool {
	if def.Optional {
		return true
	}
	if len(def.Costs) > 1 {
		return true
	}
	if len(def.Costs) == 1 {
		for _, cs := range def.Costs[0] {
			switch cs.Kind {
			case CostRestCharacter, CostTrashFromHand, CostTrashCharacter:
				return true
			}
			if cs.Optional {
				return true
			}
		}
	}
	for _, a := range def.Actions {
		if a.Target != nil && a.Target.Kind != TargetSelf {
			return true
		}
		if a.Type == ActionSearchAndSelect {
			return true
		}
	}
	return false
}

// enqueueOwnEffects fires a card's own printed effects for a trigger
// kind directly off its definition. Needed when the card has already
// left the scanned zones mid-resolution (an event in trash, a KO'd
// character) so checkTriggers can no longer see it.
func (g *GameState) enqueueOwnEffects(c *GameCard, kind TriggerKind, stepPhase Phase) {
	def, ok := g.catalog.Get(c.CardID)
	if !ok {
		return
	}
	var pending []PendingEffect
	for _, e := range def.Effects {
		if e.Trigger != kind {
			continue
		}
		pending = append(pending, PendingEffect{
			ID:               NewPendingEffectID(),
			SourceInstanceID: c.InstanceID,
			PlayerID:         c.Owner,
			Trigger:          kind,
			Effect:           e,
			RequiresChoice:   effectRequiresChoice(e),
		})
	}
	if len(pending) > 0 {
		g.PendingEffects = append(g.PendingEffects, pending...)
		g.drainPendingEffects(decisionKindFor(stepPhase), stepPhase)
	}
}

// fireTrigger checks for matching effects, enqueues them, and drains
// the FIFO queue, pausing in stepPhase/decisionKind if any effect
// needs a choice.
func (g *GameState) fireTrigger(kind TriggerKind, actingPlayer int, sourceInstanceID int, stepPhase Phase) {
	pending := g.checkTriggers(kind, actingPlayer, sourceInstanceID)
	if len(pending) == 0 {
		return
	}
	g.PendingEffects = append(g.PendingEffects, pending...)
	g.drainPendingEffects(decisionKindFor(stepPhase), stepPhase)
}

func decisionKindFor(phase Phase) PendingDecisionKind {
	switch phase {
	case PhaseAttackEffectStep:
		return DecisionAttackEffectStep
	case PhaseEventEffectStep:
		return DecisionEventEffectStep
	case PhaseCounterEffectStep:
		return DecisionCounterEffectStep
	default:
		return DecisionPlayEffectStep
	}
}
