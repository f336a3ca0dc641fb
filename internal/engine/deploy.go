package engine

// deploy.go covers Main Phase card plays and activations: playing a
// Character/Event/Stage from hand, attaching DON! to boost a card, and
// triggering a printed ActivateMain ability.

// PlayCard plays a Character, Event, or Stage from hand. Leaders are never played — they start in play.
func (g *GameState) PlayCard(player int, cardInstanceID int, fieldSlot int) error {
	if g.Phase != PhaseMain {
		return newGuardViolation("cards are played during Main Phase")
	}
	if player != g.ActivePlayer {
		return newGuardViolation("not your turn")
	}
	p := g.Players[player]
	card := findInHand(p, cardInstanceID)
	if card == nil {
		return newGuardViolation("card not in hand")
	}
	def, ok := g.catalog.Get(card.CardID)
	if !ok {
		return newInvariantBreach("hand card %d has no catalog definition", cardInstanceID)
	}
	if len(p.ActiveUnattachedDon()) < def.Cost {
		return newGuardViolation("not enough active DON!! to pay the cost")
	}

	switch def.Category {
	case CategoryCharacter:
		if fieldSlot < 0 || fieldSlot >= MaxFieldSize || p.Field[fieldSlot] != nil {
			slot := p.FreeFieldSlot()
			if slot < 0 {
				return newRuleViolation("field is full")
			}
			fieldSlot = slot
		}
	case CategoryStage, CategoryEvent:
		// no field slot needed.
	default:
		return newGuardViolation("leaders cannot be played from hand")
	}

	g.payDonCost(p, def.Cost)
	p.Hand = removeCard(p.Hand, cardInstanceID)
	card.TurnPlayed = g.Turn
	card.State = StateActive

	switch def.Category {
	case CategoryCharacter:
		card.Zone = ZoneField
		p.Field[fieldSlot] = card
	case CategoryStage:
		g.replaceStage(p, card)
	case CategoryEvent:
		card.Zone = ZoneTrash
		p.Trash = append(p.Trash, card)
	}
	g.recordHistory(player, "plays "+def.Name)
	g.recomputeContinuous()

	if def.Category == CategoryEvent {
		// The event went straight to trash, outside checkTriggers' scan;
		// its Main effects enqueue directly off the definition.
		g.enqueueOwnEffects(card, TriggerMain, PhaseEventEffectStep)
		g.enqueueOwnEffects(card, TriggerOnPlay, PhaseEventEffectStep)
		g.fireTrigger(TriggerOpponentPlaysEvent, player, card.InstanceID, PhasePlayEffectStep)
		return nil
	}

	g.fireTrigger(TriggerOnPlay, player, card.InstanceID, PhasePlayEffectStep)
	g.fireTrigger(TriggerDeployedFromHand, player, card.InstanceID, PhasePlayEffectStep)
	g.fireTrigger(TriggerOpponentDeploys, player, card.InstanceID, PhasePlayEffectStep)
	return nil
}

// replaceStage sends any existing Stage to trash before placing the
// new one, stripping buffs it sourced.
func (g *GameState) replaceStage(p *PlayerState, newStage *GameCard) {
	if p.Stage != nil {
		old := p.Stage
		old.Zone = ZoneTrash
		old.FaceUp = true
		p.Trash = append(p.Trash, old)
		g.removeBuffsSourcedBy(old.InstanceID)
	}
	newStage.Zone = ZoneStage
	p.Stage = newStage
}

func (g *GameState) payDonCost(p *PlayerState, cost int) {
	active := p.ActiveUnattachedDon()
	for i := 0; i < cost && i < len(active); i++ {
		active[i].State = StateRested
	}
}

// AttachDon attaches one active, unattached DON! from the cost area to
// a leader or character the player owns, on the player's own turn.
func (g *GameState) AttachDon(player int, donInstanceID int, targetInstanceID int) error {
	if g.Phase != PhaseMain {
		return newGuardViolation("DON!! is attached during Main Phase")
	}
	if player != g.ActivePlayer {
		return newGuardViolation("not your turn")
	}
	p := g.Players[player]
	var don *GameCard
	for _, d := range p.DonArea {
		if d.InstanceID == donInstanceID {
			don = d
			break
		}
	}
	if don == nil || don.State != StateActive || don.AttachedTo != nil {
		return newGuardViolation("DON!! not available to attach")
	}
	target, targetOwner := g.findCard(targetInstanceID)
	if target == nil || targetOwner != player || !g.isOnField(target) {
		return newGuardViolation("attach target must be your own leader or character in play")
	}
	don.AttachedTo = target
	don.State = StateAttached
	g.recordHistory(player, "attaches DON!!")
	g.recomputeContinuous() // DON!!-x thresholds depend on attachments
	g.fireTrigger(TriggerAttachDon, player, target.InstanceID, PhasePlayEffectStep)
	return nil
}

// ActivateAbility fires a card's printed ActivateMain/Main ability: a
// player-initiated action, as opposed to a passive/reactive trigger.
// A card activates at most once per turn.
func (g *GameState) ActivateAbility(player int, cardInstanceID int, effectIndex int) error {
	if g.Phase != PhaseMain {
		return newGuardViolation("abilities are activated during Main Phase")
	}
	if player != g.ActivePlayer {
		return newGuardViolation("not your turn")
	}
	card, owner := g.findCard(cardInstanceID)
	if card == nil || owner != player || !g.isOnField(card) {
		return newGuardViolation("card not found or not yours in play")
	}
	if card.ActivatedThisTurn {
		return newGuardViolation("already activated this turn")
	}
	effects := g.effectsOn(card)
	if effectIndex < 0 || effectIndex >= len(effects) {
		return newGuardViolation("no such effect on this card")
	}
	def := effects[effectIndex]
	if def.Trigger != TriggerActivateMain && def.Trigger != TriggerMain {
		return newGuardViolation("this effect is not an activated ability")
	}
	card.ActivatedThisTurn = true
	pe := PendingEffect{
		ID:               NewPendingEffectID(),
		SourceInstanceID: card.InstanceID,
		PlayerID:         player,
		Trigger:          def.Trigger,
		Effect:           def,
		RequiresChoice:   effectRequiresChoice(def),
	}
	g.recordHistory(player, "activates an ability")
	g.PendingEffects = append(g.PendingEffects, pe)
	g.drainPendingEffects(DecisionPlayEffectStep, PhasePlayEffectStep)
	return nil
}
