package engine

// drainPendingEffects processes the FIFO pending-effect queue: effects
// with RequiresChoice = false are auto-resolved in order; the first
// contiguous run of choice-requiring effects is batched into a single
// PendingDecision and the queue pauses there, leaving anything after
// it queued for the next drain call once the decision resolves.
func (g *GameState) drainPendingEffects(decisionKind PendingDecisionKind, stepPhase Phase) {
	if g.PendingDecision != nil {
		return // an earlier pause owns the queue; it resumes the drain
	}
	for len(g.PendingEffects) > 0 {
		pe := g.PendingEffects[0]
		if !pe.RequiresChoice {
			g.PendingEffects = g.PendingEffects[1:]
			g.initiateEffect(pe)
			if g.PendingDecision != nil {
				return // the effect opened its own decision mid-resolution
			}
			continue
		}
		var batch []PendingEffect
		for len(g.PendingEffects) > 0 && g.PendingEffects[0].RequiresChoice {
			batch = append(batch, g.PendingEffects[0])
			g.PendingEffects = g.PendingEffects[1:]
		}
		g.Phase = stepPhase
		g.PendingDecision = &PendingDecision{
			Kind:     decisionKind,
			PlayerID: batch[0].PlayerID,
			Effects:  batch,
		}
		return
	}
}

// initiateEffect begins cost payment (if any), then executes the
// effect's actions; it does not itself drain the queue.
func (g *GameState) initiateEffect(pe PendingEffect) {
	src, _ := g.findCard(pe.SourceInstanceID)
	if pe.Effect.OncePerTurn {
		p := g.Players[pe.PlayerID]
		if p.OncePerTurnUsed[pe.Effect.ID] {
			return
		}
		p.OncePerTurnUsed[pe.Effect.ID] = true
	}
	if len(pe.Effect.Costs) > 1 {
		options := make([]string, len(pe.Effect.Costs))
		for i := range pe.Effect.Costs {
			options[i] = costSetLabel(pe.Effect.Costs[i])
		}
		options = append(options, "do not pay this cost (skip effect)")
		g.Phase = PhaseChoiceStep
		g.PendingDecision = &PendingDecision{
			Kind:            DecisionChoiceStep,
			PlayerID:        pe.PlayerID,
			Options:         options,
			IsCostPayment:   true,
			PendingEffectID: pe.ID,
		}
		g.stashEffect(pe)
		return
	}
	if len(pe.Effect.Costs) == 1 {
		switch g.payCosts(pe, src, pe.Effect.Costs[0]) {
		case costPaused:
			return // waiting on a hand/field selection; resumes via pending.go
		case costFailed:
			return // cost unpayable: gated sub-effects are dropped
		}
	}
	g.executeEffect(pe, src)
}

// stashEffect parks an effect mid cost-alternative or cost-payment
// selection, keyed by PendingEffect.ID, so the dispatcher can resume
// it once the player responds.
func (g *GameState) stashEffect(pe PendingEffect) {
	if g.stash == nil {
		g.stash = map[string]PendingEffect{}
	}
	g.stash[pe.ID] = pe
}

func (g *GameState) popStash(id string) (PendingEffect, bool) {
	pe, ok := g.stash[id]
	if ok {
		delete(g.stash, id)
	}
	return pe, ok
}

func costSetLabel(costs []CostSpec) string {
	if len(costs) == 0 {
		return "no cost"
	}
	label := ""
	for i, c := range costs {
		if i > 0 {
			label += " + "
		}
		label += c.Kind.String()
	}
	return label
}
