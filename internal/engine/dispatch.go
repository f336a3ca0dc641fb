package engine

// Dispatch is the single entry point a transport layer calls with a
// client-supplied Action. It rejects replays by action id before
// routing on ActionType to the relevant manager method, and is a pure
// state-mutating function rather than a per-connection handler.
func (g *GameState) Dispatch(a Action) error {
	if a.PlayerID < 0 || a.PlayerID > 1 {
		return newGuardViolation("invalid player id")
	}
	p := g.Players[a.PlayerID]
	if p != nil && a.ID != "" {
		if p.SeenActionIDs[a.ID] {
			return newGuardViolation("duplicate action id %q", a.ID)
		}
		p.SeenActionIDs[a.ID] = true
	}

	d := a.Data
	switch a.Type {
	case ActPreGameSelect:
		return g.ResolvePreGameSelect(a.PlayerID, d.Selected)
	case ActSkipPreGame:
		return g.SkipPreGame(a.PlayerID)
	case ActKeepHand:
		return g.KeepHand(a.PlayerID)
	case ActMulligan:
		return g.Mulligan(a.PlayerID)
	case ActPlayCard:
		return g.PlayCard(a.PlayerID, d.InstanceID, d.FieldSlot)
	case ActAttachDon:
		return g.AttachDon(a.PlayerID, d.InstanceID, d.TargetID)
	case ActDeclareAttack:
		return g.DeclareAttack(a.PlayerID, d.InstanceID, d.TargetID, d.TargetKind)
	case ActResolveAttackEffect:
		return g.ResolveAttackEffect(a.PlayerID, d.EffectIndex, d.SelectedIDs)
	case ActSkipAttackEffect:
		return g.SkipAttackEffect(a.PlayerID, d.EffectIndex)
	case ActResolvePlayEffect:
		return g.ResolvePlayEffect(a.PlayerID, d.EffectIndex, d.SelectedIDs)
	case ActSkipPlayEffect:
		return g.SkipPlayEffect(a.PlayerID, d.EffectIndex)
	case ActResolveActivateEffect:
		return g.ResolvePlayEffect(a.PlayerID, d.EffectIndex, d.SelectedIDs)
	case ActSkipActivateEffect:
		return g.SkipPlayEffect(a.PlayerID, d.EffectIndex)
	case ActUseCounter:
		return g.UseCounter(a.PlayerID, d.InstanceID)
	case ActPassCounter:
		return g.PassCounter(a.PlayerID)
	case ActSelectBlocker:
		return g.SelectBlocker(a.PlayerID, d.InstanceID)
	case ActPassPriority:
		return g.PassBlocker(a.PlayerID)
	case ActResolveCombat:
		return g.resolveCombat()
	case ActEndTurn:
		return g.EndTurn(a.PlayerID)
	case ActTriggerLife:
		return newGuardViolation("life triggers resolve automatically during combat")
	case ActActivateAbility:
		return g.ActivateAbility(a.PlayerID, d.InstanceID, d.EffectIndex)
	case ActResolveEventEffect:
		return g.ResolveEventEffect(a.PlayerID, d.EffectIndex, d.SelectedIDs)
	case ActSkipEventEffect:
		return g.SkipEventEffect(a.PlayerID, d.EffectIndex)
	case ActPayAdditionalCost:
		return g.PayAdditionalCost(a.PlayerID)
	case ActSkipAdditionalCost:
		return g.SkipAdditionalCost(a.PlayerID)
	case ActResolveCounterEffect:
		return g.ResolveCounterEffect(a.PlayerID, d.EffectIndex, d.SelectedIDs)
	case ActSkipCounterEffect:
		return g.SkipCounterEffect(a.PlayerID, d.EffectIndex)
	case ActResolveDeckReveal:
		return g.ResolveDeckReveal(a.PlayerID, d.SelectedIDs)
	case ActSkipDeckReveal:
		return g.SkipDeckReveal(a.PlayerID)
	case ActResolveHandSelect:
		return g.ResolveHandSelect(a.PlayerID, d.SelectedIDs)
	case ActSkipHandSelect:
		return g.SkipHandSelect(a.PlayerID)
	case ActResolveFieldSelect:
		return g.ResolveFieldSelect(a.PlayerID, d.SelectedIDs)
	case ActResolveChoice:
		return g.ResolveChoice(a.PlayerID, d.ChoiceIndex)
	default:
		return newGuardViolation("unrecognized action type")
	}
}
