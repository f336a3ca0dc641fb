package engine

// effectivePower computes basePower + Σ(active buffs) + 1000 ×
// |attached DON!|, the DON! bonus applying only on the owner's turn.
func (g *GameState) effectivePower(c *GameCard) int {
	total := c.BasePower
	for _, b := range c.Buffs {
		if g.buffActive(b) {
			total += b.Value
		}
	}
	if g.ActivePlayer == c.Owner {
		owner := g.Players[c.Owner]
		total += 1000 * owner.AttachedDonCount(c)
	}
	if total < 0 {
		total = 0
	}
	return total
}

// EffectivePower is the exported read used by view building and
// clients; identical to the combat arithmetic.
func (g *GameState) EffectivePower(c *GameCard) int {
	return g.effectivePower(c)
}

func (g *GameState) buffActive(b PowerBuff) bool {
	switch b.Duration.Kind {
	case DurationPermanent, DurationStageContinuous, DurationWhileOnField, DurationUntilSourceLeaves:
		return true
	case DurationThisTurn:
		return b.Duration.Turn == g.Turn
	case DurationThisBattle:
		return g.CurrentCombat != nil && b.Duration.BattleID == g.CurrentCombat.BattleID
	default:
		return false
	}
}

// hasKeyword checks both the printed keyword set (via the catalog)
// and temporary/granted keywords on the live instance.
func (g *GameState) hasKeyword(c *GameCard, k Keyword) bool {
	if c.TempKeywords[k] {
		return true
	}
	if def, ok := g.catalog.Get(c.CardID); ok {
		return def.HasKeyword(k)
	}
	return false
}

func (g *GameState) isUnblockable(c *GameCard) bool {
	return g.hasKeyword(c, KeywordUnblockable) || g.hasKeyword(c, KeywordCantBeBlocked) || c.HasImmunity("CantBeBlocked")
}

// DeclareAttack validates and begins an attack.
func (g *GameState) DeclareAttack(player int, attackerID int, targetID int, targetKind TargetKindCombat) error {
	if g.Phase != PhaseMain {
		return newGuardViolation("attacks are declared during Main Phase")
	}
	if player != g.ActivePlayer {
		return newGuardViolation("not your turn")
	}
	attacker, owner := g.findCard(attackerID)
	if attacker == nil || owner != player {
		return newGuardViolation("attacker not found or not owned by you")
	}
	if attacker.State != StateActive {
		return newGuardViolation("attacker is not Active")
	}
	p := g.Players[player]
	if attacker != p.Leader && attacker.TurnPlayed == g.Turn && p.PersonalTurnCount == 1 {
		return newGuardViolation("first turn — cannot attack")
	}
	if attacker != p.Leader && attacker.TurnPlayed == g.Turn && p.PersonalTurnCount > 1 {
		if !g.hasKeyword(attacker, KeywordRush) {
			return newGuardViolation("character played this turn needs Rush to attack")
		}
	}
	target, targetOwner := g.findCard(targetID)
	if target == nil || targetOwner == player {
		return newGuardViolation("invalid attack target")
	}
	if targetKind == CombatTargetCharacter && target.State != StateRested {
		return newGuardViolation("character targets must be Rested")
	}

	attacker.State = StateRested
	attacker.HasAttacked = true
	battleID := NewBattleID(g.Turn, attacker.InstanceID)
	g.CurrentCombat = &Combat{
		AttackerID:    attacker.InstanceID,
		TargetID:      target.InstanceID,
		TargetKind:    targetKind,
		DeclaredPower: g.effectivePower(attacker),
		BattleID:      battleID,
		DoubleAttack:  g.hasKeyword(attacker, KeywordDoubleAttack),
	}
	g.recordHistory(player, "declares an attack")

	g.fireTrigger(TriggerOnAttack, player, attacker.InstanceID, PhaseAttackEffectStep)
	if g.PendingDecision != nil {
		return nil // paused resolving an OnAttack effect's target choice
	}
	g.enterBlockerOrCounterStep()
	return nil
}

// enterBlockerOrCounterStep skips BlockerStep for Unblockable
// attackers, and for attacks already redirected to a Blocker.
func (g *GameState) enterBlockerOrCounterStep() {
	if g.CurrentCombat.Blocked {
		g.Phase = PhaseCounterStep
		return
	}
	attacker, _ := g.findCard(g.CurrentCombat.AttackerID)
	if g.isUnblockable(attacker) {
		g.Phase = PhaseCounterStep
		return
	}
	g.Phase = PhaseBlockerStep
}

// SelectBlocker redirects combat to a nominated Blocker. Only the defender may nominate.
func (g *GameState) SelectBlocker(player int, blockerID int) error {
	if g.Phase != PhaseBlockerStep {
		return newGuardViolation("not in Blocker Step")
	}
	combat := g.CurrentCombat
	attacker, attackerOwner := g.findCard(combat.AttackerID)
	_ = attacker
	if player == attackerOwner {
		return newGuardViolation("only the defender may nominate a Blocker")
	}
	blocker, blockerOwner := g.findCard(blockerID)
	if blocker == nil || blockerOwner != player {
		return newGuardViolation("blocker not found or not owned by you")
	}
	if blocker.State != StateActive || !g.hasKeyword(blocker, KeywordBlocker) {
		return newGuardViolation("blocker must be an Active card with Blocker")
	}
	blocker.State = StateRested
	combat.TargetID = blocker.InstanceID
	combat.TargetKind = CombatTargetCharacter
	combat.Blocked = true
	g.recordHistory(player, "nominates a Blocker")

	g.fireTrigger(TriggerOnBlock, player, blocker.InstanceID, PhaseAttackEffectStep)
	g.fireTrigger(TriggerOpponentActivatesBlocker, player, blocker.InstanceID, PhaseAttackEffectStep)
	if g.PendingDecision != nil {
		return nil
	}
	g.Phase = PhaseCounterStep
	return nil
}

// PassBlocker declines to nominate a Blocker.
func (g *GameState) PassBlocker(player int) error {
	if g.Phase != PhaseBlockerStep {
		return newGuardViolation("not in Blocker Step")
	}
	_, attackerOwner := g.findCard(g.CurrentCombat.AttackerID)
	if player == attackerOwner {
		return newGuardViolation("only the defender may pass the Blocker Step")
	}
	g.Phase = PhaseCounterStep
	return nil
}

// UseCounter plays a counter card from the defender's hand. Character counters are free and contribute their
// printed counter value; event counters cost printed cost in DON! and
// may require a target (entering CounterEffectStep).
func (g *GameState) UseCounter(player int, cardInstanceID int) error {
	if g.Phase != PhaseCounterStep {
		return newGuardViolation("not in Counter Step")
	}
	attacker, attackerOwner := g.findCard(g.CurrentCombat.AttackerID)
	_ = attacker
	if player == attackerOwner {
		return newGuardViolation("only the defender may play counters")
	}
	p := g.Players[player]
	var card *GameCard
	for _, c := range p.Hand {
		if c.InstanceID == cardInstanceID {
			card = c
			break
		}
	}
	if card == nil {
		return newGuardViolation("counter card not in hand")
	}
	def, ok := g.catalog.Get(card.CardID)
	if !ok {
		return newGuardViolation("unknown card")
	}

	isEventCounter := false
	for _, e := range def.Effects {
		if e.Trigger == TriggerCounter {
			isEventCounter = true
		}
	}

	if def.Category == CategoryCharacter {
		if def.Counter == nil {
			return newRuleViolation("card has no printed counter value")
		}
		p.Hand = removeCard(p.Hand, cardInstanceID)
		card.Zone = ZoneTrash
		p.Trash = append(p.Trash, card)
		g.CurrentCombat.CounterPower += *def.Counter
		g.recordHistory(player, "plays a character counter")
		return nil
	}

	if def.Category == CategoryEvent && isEventCounter {
		if len(p.ActiveUnattachedDon()) < def.Cost {
			return newGuardViolation("not enough active DON!! to pay counter cost")
		}
		don := p.ActiveUnattachedDon()[:def.Cost]
		for _, d := range don {
			d.State = StateRested
		}
		p.Hand = removeCard(p.Hand, cardInstanceID)
		card.Zone = ZoneTrash
		p.Trash = append(p.Trash, card)
		g.recordHistory(player, "plays an event counter")

		g.enqueueOwnEffects(card, TriggerCounter, PhaseCounterEffectStep)
		return nil
	}
	return newRuleViolation("card is not playable as a counter")
}

// PassCounter ends the defender's Counter Step and resolves combat.
func (g *GameState) PassCounter(player int) error {
	if g.Phase != PhaseCounterStep {
		return newGuardViolation("not in Counter Step")
	}
	return g.resolveCombat()
}

// resolveCombat computes the attack outcome.
func (g *GameState) resolveCombat() error {
	combat := g.CurrentCombat
	if combat == nil {
		return newGuardViolation("no combat to resolve")
	}
	attacker, attackerOwner := g.findCard(combat.AttackerID)
	target, _ := g.findCard(combat.TargetID)
	if attacker == nil || target == nil {
		g.clearCombat()
		return newInvariantBreach("combat participant vanished mid-resolution")
	}

	defenderPower := g.effectivePower(target) + combat.CounterPower + combat.EffectBuffPower
	attackSucceeds := combat.DeclaredPower >= defenderPower
	g.recordHistory(attackerOwner, "resolves combat")

	if attackSucceeds {
		if combat.TargetKind == CombatTargetCharacter {
			g.resolveCharacterKO(target)
		} else {
			g.resolveLeaderDamage(target, combat.DoubleAttack)
		}
	}
	if g.Phase == PhaseGameOver {
		g.clearCombat()
		return nil
	}

	g.fireTrigger(TriggerAfterBattle, attackerOwner, attacker.InstanceID, PhasePlayEffectStep)
	g.clearThisBattleBuffs(combat.BattleID)
	attacker.TempKeywords = map[Keyword]bool{}
	g.clearCombat()
	if g.PendingDecision == nil {
		g.Phase = PhaseMain
	}
	return nil
}

// resolveCharacterKO fires PreKO (which may cancel the KO), then
// moves the target to trash and fires the KO family.
func (g *GameState) resolveCharacterKO(target *GameCard) {
	owner := target.Owner
	g.fireTrigger(TriggerPreKO, owner, target.InstanceID, PhasePlayEffectStep)
	if g.preventKO[target.InstanceID] {
		delete(g.preventKO, target.InstanceID)
		return
	}
	g.koCharacter(target)
	g.enqueueOwnEffects(target, TriggerTrashSelf, PhasePlayEffectStep)
	g.fireTrigger(TriggerTrashAlly, owner, target.InstanceID, PhasePlayEffectStep)
}

// resolveLeaderDamage applies N hits of damage to a leader, respecting
// the Double Attack one-life rule.
func (g *GameState) resolveLeaderDamage(leader *GameCard, doubleAttack bool) {
	hits := 1
	if doubleAttack {
		hits = 2
	}
	player := leader.Owner
	p := g.Players[player]
	attacker, attackerOwner := g.findCard(g.CurrentCombat.AttackerID)
	banish := attacker != nil && g.hasKeyword(attacker, KeywordBanish)
	preDamageLife := len(p.Life)

	for i := 0; i < hits; i++ {
		if len(p.Life) == 0 {
			if doubleAttack && preDamageLife == 1 {
				// one-life Double-Attack rule: the second hit stops
				// short, the defender survives.
				break
			}
			g.endMatch(attackerOwner, "leader life reached zero")
			return
		}
		top := p.Life[len(p.Life)-1]
		p.Life = p.Life[:len(p.Life)-1]
		top.FaceUp = true
		if banish {
			top.Zone = ZoneTrash
			p.Trash = append(p.Trash, top)
		} else {
			top.Zone = ZoneHand
			p.Hand = append(p.Hand, top)
			g.fireTrigger(TriggerLifeAddedToHand, player, top.InstanceID, PhasePlayEffectStep)
		}
		g.fireTrigger(TriggerHitLeader, player, leader.InstanceID, PhasePlayEffectStep)

		if !banish {
			if def, ok := g.catalog.Get(top.CardID); ok {
				for _, e := range def.Effects {
					if e.Trigger == TriggerTrigger {
						g.Phase = PhaseTriggerStep
						g.PendingDecision = &PendingDecision{
							Kind:     DecisionPlayEffectStep,
							PlayerID: player,
							Effects: []PendingEffect{{
								ID: NewPendingEffectID(), SourceInstanceID: top.InstanceID,
								PlayerID: player, Trigger: TriggerTrigger, Effect: e, RequiresChoice: true,
							}},
						}
					}
				}
			}
		}
	}
}

func (g *GameState) clearThisBattleBuffs(battleID string) {
	strip := func(c *GameCard) {
		if c == nil {
			return
		}
		filtered := c.Buffs[:0]
		for _, b := range c.Buffs {
			if b.Duration.Kind == DurationThisBattle && b.Duration.BattleID == battleID {
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

func (g *GameState) clearCombat() {
	g.CurrentCombat = nil
}
