package engine

// executeEffect runs an effect's actions against the engine's own
// choice of legal targets. Called by initiateEffect once costs are paid
// (an effect that needs no choice under effectRequiresChoice in
// trigger.go names no Target other than TargetSelf) and by the decision
// handlers that resume an effect after a paused cost payment. A small
// dispatch table keyed on EffectAction.Type
// interprets plain data instead of a stored closure, since card text
// is parsed into data rather than hand-written per card.
func (g *GameState) executeEffect(pe PendingEffect, src *GameCard) {
	for i, a := range pe.Effect.Actions {
		if a.Type == ActionSearchAndSelect {
			g.executeSearchAndSelect(pe, src, a, pe.Effect.Actions, i, 0)
			return
		}
		var targets []*GameCard
		if a.Target != nil {
			if a.Target.Kind == TargetSelf {
				if src != nil {
					targets = []*GameCard{src}
				}
			} else {
				targets = g.resolveTargets(pe.PlayerID, a.Target)
				if len(targets) > a.Target.Max && a.Target.Max > 0 {
					targets = targets[:a.Target.Max]
				}
			}
		}
		g.applyAction(pe, src, a, targets)
	}
}

// executeChosenEffect resolves one effect a player selected out of a
// PlayEffectStep/AttackEffectStep/EventEffectStep/CounterEffectStep
// batch, using selectedIDs for whichever action in the list names a
// Target.
func (g *GameState) executeChosenEffect(pe PendingEffect, src *GameCard, selectedIDs []int) error {
	selected := map[int]*GameCard{}
	for _, id := range selectedIDs {
		if c, _ := g.findCard(id); c != nil {
			selected[id] = c
		}
	}
	for i, a := range pe.Effect.Actions {
		if a.Type == ActionSearchAndSelect {
			g.executeSearchAndSelect(pe, src, a, pe.Effect.Actions, i, 0)
			return nil
		}
		var targets []*GameCard
		if a.Target != nil {
			if a.Target.Kind == TargetSelf {
				if src != nil {
					targets = []*GameCard{src}
				}
			} else {
				legal := g.resolveTargets(pe.PlayerID, a.Target)
				legalSet := map[int]bool{}
				for _, c := range legal {
					legalSet[c.InstanceID] = true
				}
				for _, c := range selected {
					if legalSet[c.InstanceID] {
						targets = append(targets, c)
					}
				}
				if len(targets) < a.Target.Min {
					return newGuardViolation("selection does not satisfy the effect's target requirement")
				}
			}
		}
		g.applyAction(pe, src, a, targets)
	}
	return nil
}

// applyAction runs one EffectAction against an already-resolved
// target list (empty/nil for untargeted actions).
func (g *GameState) applyAction(pe PendingEffect, src *GameCard, a EffectAction, targets []*GameCard) {
	owner := pe.PlayerID
	p := g.Players[owner]

	switch a.Type {
	case ActionDraw:
		n := valueOr(a.Value, 1)
		for k := 0; k < n; k++ {
			g.drawForActivePlayerIgnoringTurn(owner)
		}

	case ActionGainLife:
		n := valueOr(a.Value, 1)
		for k := 0; k < n && len(p.Trash) > 0; k++ {
			c := p.Trash[len(p.Trash)-1]
			p.Trash = p.Trash[:len(p.Trash)-1]
			c.Zone = ZoneLife
			c.FaceUp = false
			p.Life = append(p.Life, c)
		}

	case ActionLoseLife:
		who := owner
		if len(targets) > 0 {
			who = targets[0].Owner
		}
		g.payLifeCost(who, valueOr(a.Value, 1))

	case ActionBuffPower:
		dur := BuffDuration{Kind: DurationThisTurn, Turn: g.Turn}
		if a.Duration != nil {
			dur = *a.Duration
		}
		// definitions carry durations without a concrete turn/battle;
		// stamp them against the live match here.
		switch dur.Kind {
		case DurationThisTurn:
			if dur.Turn == 0 {
				dur.Turn = g.Turn
			}
		case DurationThisBattle:
			if dur.BattleID == "" && g.CurrentCombat != nil {
				dur.BattleID = g.CurrentCombat.BattleID
			}
		}
		sourceID := 0
		if src != nil {
			sourceID = src.InstanceID
		}
		for _, c := range targets {
			c.Buffs = append(c.Buffs, PowerBuff{Source: sourceID, Value: valueOr(a.Value, 0), Duration: dur})
		}
		g.recomputeContinuous()

	case ActionGiveKeyword:
		if a.Value == nil {
			break
		}
		for _, c := range targets {
			c.TempKeywords[Keyword(*a.Value)] = true
		}

	case ActionChangeCost:
		// Value is a signed delta ("-2 cost"); the resulting effective
		// cost is clamped at zero and stored as the override.
		delta := valueOr(a.Value, 0)
		for _, c := range targets {
			base := 0
			if def, ok := g.catalog.Get(c.CardID); ok {
				base = effectiveCost(c, def)
			}
			v := base + delta
			if v < 0 {
				v = 0
			}
			c.CostOverride = &v
		}

	case ActionRest:
		for _, c := range targets {
			c.State = StateRested
		}

	case ActionKO:
		for _, c := range targets {
			g.resolveCharacterKO(c)
		}

	case ActionTrash:
		for _, c := range targets {
			g.sendToTrash(c)
		}

	case ActionReturnToHand:
		for _, c := range targets {
			g.returnToHand(c)
		}

	case ActionAttachDon:
		if len(targets) == 0 {
			break
		}
		active := p.ActiveUnattachedDon()
		n := valueOr(a.Value, 1)
		if n > len(active) {
			n = len(active)
		}
		target := targets[0]
		for i := 0; i < n; i++ {
			active[i].AttachedTo = target
			active[i].State = StateAttached
		}
		g.fireTrigger(TriggerAttachDon, owner, target.InstanceID, PhasePlayEffectStep)

	case ActionSearchAndSelect:
		// intercepted earlier in executeEffect/executeChosenEffect, which
		// know the action's index within the sibling list; reaching here
		// means a continuation resumed a bare action list (pending.go's
		// resumeContinuation) where look-aheads have already been cut.

	case ActionPreventKO:
		if g.preventKO == nil {
			g.preventKO = map[int]bool{}
		}
		g.preventKO[pe.SourceInstanceID] = true

	case ActionNone:
		// parser fallback: no structured action, nothing to execute.
	}
}

func valueOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
