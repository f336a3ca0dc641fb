package engine

// recomputeContinuous re-evaluates every continuous effect in the
// match: strip StageContinuous/WhileOnField buffs, then re-apply from
// every live source. Run after every field mutation rather than on a
// fixed timing window, so a continuous effect's influence never lags
// the board state that produced it.
func (g *GameState) recomputeContinuous() {
	for _, p := range g.Players {
		strip := func(c *GameCard) {
			if c == nil {
				return
			}
			filtered := c.Buffs[:0]
			for _, b := range c.Buffs {
				if b.Duration.Kind == DurationStageContinuous || b.Duration.Kind == DurationWhileOnField {
					continue
				}
				filtered = append(filtered, b)
			}
			c.Buffs = filtered
			c.TempKeywords = map[Keyword]bool{}
		}
		strip(p.Leader)
		strip(p.Stage)
		for _, c := range p.Field {
			strip(c)
		}
	}

	for pi, p := range g.Players {
		for _, source := range g.declarationOrder(p) {
			for _, def := range g.effectsOn(source) {
				if !def.Trigger.isContinuousTrigger() {
					continue
				}
				if !g.continuousActive(def.Trigger, pi) {
					continue
				}
				g.applyContinuous(source, def)
			}
		}
	}
}

// continuousActive evaluates the standing-condition half of a
// continuous trigger kind: Passive is always on,
// YourTurn/OpponentTurn depend on whose turn it currently is.
func (g *GameState) continuousActive(kind TriggerKind, controller int) bool {
	switch kind {
	case TriggerPassive:
		return true
	case TriggerYourTurn:
		return controller == g.ActivePlayer
	case TriggerOpponentTurn:
		return controller != g.ActivePlayer
	case TriggerDonX:
		return true // DonX's threshold is checked per-source in applyContinuous
	default:
		return false
	}
}

// applyContinuous runs a continuous effect's buff/keyword actions
// against its legal targets. Multiple instances of the same effect
// stack additively since each application appends a
// fresh PowerBuff rather than overwriting.
func (g *GameState) applyContinuous(source *GameCard, def *EffectDefinition) {
	if def.Trigger == TriggerDonX {
		owner := g.Players[source.Owner]
		threshold := 0
		if len(def.Conditions) > 0 {
			threshold = def.Conditions[0].MinDonAttached
		}
		if owner.AttachedDonCount(source) < threshold {
			return
		}
	}
	for _, a := range def.Actions {
		targets := g.resolveTargets(source.Owner, a.Target)
		if a.Target != nil && a.Target.Kind == TargetSelf {
			targets = []*GameCard{source}
		}
		switch a.Type {
		case ActionBuffPower:
			dur := BuffDuration{Kind: DurationStageContinuous}
			if a.Duration != nil {
				dur = *a.Duration
			}
			for _, c := range targets {
				c.Buffs = append(c.Buffs, PowerBuff{Source: source.InstanceID, Value: valueOr(a.Value, 0), Duration: dur})
			}
		case ActionGiveKeyword:
			for _, c := range targets {
				if a.Value != nil {
					c.TempKeywords[Keyword(*a.Value)] = true
				}
			}
		}
	}
}
