package engine

// This file holds the resolution handlers for every PendingDecision
// variant: each pairs a Resolve* with a Skip* where the
// decision allows declining, and consults g.stash/g.continuations via
// PendingDecision.PendingEffectID to resume whatever was paused.

// ResolvePreGameSelect answers a Leader's start-of-game search.
func (g *GameState) ResolvePreGameSelect(player int, selectedCardIDs []string) error {
	d := g.PendingDecision
	if d == nil || d.Kind != DecisionPreGameSelect {
		return newGuardViolation("no pre-game selection pending")
	}
	if d.PlayerID != player {
		return newGuardViolation("not your pre-game selection")
	}
	if len(selectedCardIDs) > d.Count {
		return newGuardViolation("too many cards selected for pre-game setup")
	}
	legal := map[string]bool{}
	for _, id := range d.Candidates {
		legal[id] = true
	}
	for _, id := range selectedCardIDs {
		if !legal[id] {
			return newGuardViolation("card %q is not a valid pre-game candidate", id)
		}
	}
	p := g.Players[player]
	want := map[string]bool{}
	for _, id := range selectedCardIDs {
		want[id] = true
	}
	var kept []*GameCard
	for _, c := range p.Deck {
		if want[c.CardID] {
			c.Zone = ZoneHand
			p.Hand = append(p.Hand, c)
			delete(want, c.CardID)
			continue
		}
		kept = append(kept, c)
	}
	p.Deck = kept
	g.shuffleDeck(p)
	g.finishPreGameSetup(player)
	return nil
}

// SkipPreGame declines an optional pre-game search.
func (g *GameState) SkipPreGame(player int) error {
	d := g.PendingDecision
	if d == nil || d.Kind != DecisionPreGameSelect {
		return newGuardViolation("no pre-game selection pending")
	}
	if d.PlayerID != player {
		return newGuardViolation("not your pre-game selection")
	}
	g.finishPreGameSetup(player)
	return nil
}

// finishPreGameSetup advances to the next player's directive, or to
// the Mulligan phase once both have resolved theirs.
func (g *GameState) finishPreGameSetup(resolved int) {
	g.pendingStartOfGame[resolved] = nil
	g.PendingDecision = nil
	for i, dir := range g.pendingStartOfGame {
		if dir != nil {
			g.openPreGameSelect(i, dir)
			return
		}
	}
	g.beginMulligan()
}

func (g *GameState) openPreGameSelect(player int, dir *StartOfGameDirective) {
	g.Phase = PhasePreGameSetup
	g.PendingDecision = &PendingDecision{
		Kind:       DecisionPreGameSelect,
		PlayerID:   player,
		Trait:      dir.Trait,
		Category:   dir.Category,
		Count:      dir.Count,
		Optional:   dir.Optional,
		Candidates: g.preGameCandidates(player, dir),
	}
}

// preGameCandidates lists the distinct deck card ids matching the
// directive's trait and category, computed before opening hands are
// drawn.
func (g *GameState) preGameCandidates(player int, dir *StartOfGameDirective) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range g.Players[player].Deck {
		if seen[c.CardID] {
			continue
		}
		def, ok := g.catalog.Get(c.CardID)
		if !ok || def.Category != dir.Category {
			continue
		}
		if dir.Trait != "" && !def.HasTrait(dir.Trait) {
			continue
		}
		seen[c.CardID] = true
		out = append(out, c.CardID)
	}
	return out
}

// --- PlayEffectStep / AttackEffectStep / EventEffectStep / CounterEffectStep ---

// ResolvePlayEffect resolves the effectIndex'th queued effect in a
// PlayEffectStep batch using the player's target selection, then
// resumes the queue.
func (g *GameState) ResolvePlayEffect(player, effectIndex int, selectedIDs []int) error {
	return g.resolveBatchedEffect(DecisionPlayEffectStep, player, effectIndex, selectedIDs, PhasePlayEffectStep)
}

func (g *GameState) SkipPlayEffect(player, effectIndex int) error {
	return g.skipBatchedEffect(DecisionPlayEffectStep, player, effectIndex, PhasePlayEffectStep)
}

func (g *GameState) ResolveAttackEffect(player, effectIndex int, selectedIDs []int) error {
	return g.resolveBatchedEffect(DecisionAttackEffectStep, player, effectIndex, selectedIDs, PhaseAttackEffectStep)
}

func (g *GameState) SkipAttackEffect(player, effectIndex int) error {
	return g.skipBatchedEffect(DecisionAttackEffectStep, player, effectIndex, PhaseAttackEffectStep)
}

func (g *GameState) ResolveEventEffect(player, effectIndex int, selectedIDs []int) error {
	return g.resolveBatchedEffect(DecisionEventEffectStep, player, effectIndex, selectedIDs, PhaseEventEffectStep)
}

func (g *GameState) SkipEventEffect(player, effectIndex int) error {
	return g.skipBatchedEffect(DecisionEventEffectStep, player, effectIndex, PhaseEventEffectStep)
}

func (g *GameState) ResolveCounterEffect(player, effectIndex int, selectedIDs []int) error {
	return g.resolveBatchedEffect(DecisionCounterEffectStep, player, effectIndex, selectedIDs, PhaseCounterEffectStep)
}

func (g *GameState) SkipCounterEffect(player, effectIndex int) error {
	return g.skipBatchedEffect(DecisionCounterEffectStep, player, effectIndex, PhaseCounterEffectStep)
}

// resolveBatchedEffect executes one effect out of the current batch
// (via cost payment, then action execution), removes it from the
// batch, and either re-presents the remaining batch or resumes
// draining the FIFO queue.
func (g *GameState) resolveBatchedEffect(kind PendingDecisionKind, player, effectIndex int, selectedIDs []int, stepPhase Phase) error {
	d := g.PendingDecision
	if d == nil || d.Kind != kind {
		return newGuardViolation("no matching effect step pending")
	}
	if effectIndex < 0 || effectIndex >= len(d.Effects) {
		return newGuardViolation("effect index out of range")
	}
	pe := d.Effects[effectIndex]
	siblings := append(append([]PendingEffect{}, d.Effects[:effectIndex]...), d.Effects[effectIndex+1:]...)
	src, _ := g.findCard(pe.SourceInstanceID)

	if len(pe.Effect.Costs) > 1 {
		// requeue the rest of the batch behind this one, then present
		// the cost-alternative choice; it resumes on its own once
		// ResolveChoice answers it.
		g.PendingEffects = append(siblings, g.PendingEffects...)
		g.PendingDecision = nil
		g.initiateEffect(pe)
		return nil
	}
	if pe.Effect.OncePerTurn {
		p := g.Players[pe.PlayerID]
		if p.OncePerTurnUsed[pe.Effect.ID] {
			g.finishBatchedEntry(siblings, stepPhase)
			return nil
		}
		p.OncePerTurnUsed[pe.Effect.ID] = true
	}
	if len(pe.Effect.Costs) == 1 {
		switch g.payCosts(pe, src, pe.Effect.Costs[0]) {
		case costPaused:
			g.PendingEffects = append(siblings, g.PendingEffects...)
			return nil
		case costFailed:
			g.finishBatchedEntry(siblings, stepPhase)
			return nil
		}
	}
	g.PendingDecision = nil
	if err := g.executeChosenEffect(pe, src, selectedIDs); err != nil {
		g.Phase = stepPhase
		g.PendingDecision = d
		return err
	}
	if g.PendingDecision != nil {
		// the chosen effect opened a nested decision (deck reveal,
		// hand/field select); park the unresolved siblings back on the
		// queue so the next drain re-presents them.
		g.PendingEffects = append(siblings, g.PendingEffects...)
		return nil
	}
	g.finishBatchedEntry(siblings, stepPhase)
	return nil
}

// finishBatchedEntry either re-presents the remaining batch or, if it
// is now empty, resumes draining the FIFO queue and returns to
// whatever step the batch interrupted.
func (g *GameState) finishBatchedEntry(siblings []PendingEffect, stepPhase Phase) {
	if len(siblings) == 0 {
		g.PendingDecision = nil
		g.drainPendingEffects(decisionKindFor(stepPhase), stepPhase)
		if g.PendingDecision != nil {
			return
		}
		g.resumeAfterStep(stepPhase)
		return
	}
	g.Phase = stepPhase
	g.PendingDecision = &PendingDecision{
		Kind:     decisionKindFor(stepPhase),
		PlayerID: siblings[0].PlayerID,
		Effects:  siblings,
	}
}

// resumeAfterStep returns control to the interrupted combat substep,
// or to Main Phase when no combat is in flight.
func (g *GameState) resumeAfterStep(stepPhase Phase) {
	if g.CurrentCombat != nil {
		switch stepPhase {
		case PhaseAttackEffectStep:
			g.enterBlockerOrCounterStep()
			return
		case PhaseCounterEffectStep:
			g.Phase = PhaseCounterStep
			return
		}
	}
	g.Phase = PhaseMain
}

func (g *GameState) skipBatchedEffect(kind PendingDecisionKind, player, effectIndex int, stepPhase Phase) error {
	d := g.PendingDecision
	if d == nil || d.Kind != kind {
		return newGuardViolation("no matching effect step pending")
	}
	if effectIndex < 0 || effectIndex >= len(d.Effects) {
		return newGuardViolation("effect index out of range")
	}
	if !d.Effects[effectIndex].Effect.Optional {
		return newGuardViolation("this effect is mandatory and cannot be skipped")
	}
	siblings := append(append([]PendingEffect{}, d.Effects[:effectIndex]...), d.Effects[effectIndex+1:]...)
	g.finishBatchedEntry(siblings, stepPhase)
	return nil
}

// --- AdditionalCostStep ---

// PayAdditionalCost pays the optional cost a paused effect is waiting
// on, then resumes it.
func (g *GameState) PayAdditionalCost(player int) error {
	d := g.PendingDecision
	if d == nil || d.Kind != DecisionAdditionalCostStep {
		return newGuardViolation("no additional cost pending")
	}
	pe, ok := g.popStash(d.PendingEffectID)
	if !ok {
		return newGuardViolation("no effect parked for this cost decision")
	}
	src, _ := g.findCard(pe.SourceInstanceID)
	if !g.payOneSimpleCost(player, src, *d.Cost) {
		g.PendingDecision = nil
		g.Phase = PhaseMain
		return nil
	}
	g.PendingDecision = nil
	g.Phase = PhaseMain
	g.executeEffect(pe, src)
	return nil
}

// SkipAdditionalCost declines the optional cost, dropping the effect.
func (g *GameState) SkipAdditionalCost(player int) error {
	d := g.PendingDecision
	if d == nil || d.Kind != DecisionAdditionalCostStep {
		return newGuardViolation("no additional cost pending")
	}
	g.popStash(d.PendingEffectID)
	g.PendingDecision = nil
	g.Phase = PhaseMain
	return nil
}

// --- HandSelectStep ---

// ResolveHandSelect answers a hand-select decision: either a cost
// payment resume (stashed PendingEffect) or a direct effect action
// (e.g. discard-to-hand-limit has no stashed effect, so none is found
// and the selection is applied as a bare hand action).
func (g *GameState) ResolveHandSelect(player int, selectedIDs []int) error {
	d := g.PendingDecision
	if d == nil || d.Kind != DecisionHandSelectStep {
		return newGuardViolation("no hand selection pending")
	}
	if len(selectedIDs) < d.HandMin || (d.HandMax > 0 && len(selectedIDs) > d.HandMax) {
		return newGuardViolation("selection count does not satisfy the hand selection bounds")
	}
	p := g.Players[player]
	for _, id := range selectedIDs {
		c := findInHand(p, id)
		if c == nil {
			return newGuardViolation("selected card is not in hand")
		}
		switch d.HandAction {
		case HandSelectTrash:
			p.Hand = removeCard(p.Hand, id)
			c.Zone = ZoneTrash
			c.FaceUp = true
			p.Trash = append(p.Trash, c)
		case HandSelectReturnToDeckTop:
			p.Hand = removeCard(p.Hand, id)
			c.Zone = ZoneDeck
			p.Deck = append([]*GameCard{c}, p.Deck...)
		case HandSelectReturnToDeckBottom:
			p.Hand = removeCard(p.Hand, id)
			c.Zone = ZoneDeck
			p.Deck = append(p.Deck, c)
		}
	}
	g.PendingDecision = nil
	g.Phase = PhaseMain
	if pe, ok := g.popStash(d.PendingEffectID); ok {
		src, _ := g.findCard(pe.SourceInstanceID)
		g.executeEffect(pe, src)
	}
	return nil
}

func (g *GameState) SkipHandSelect(player int) error {
	d := g.PendingDecision
	if d == nil || d.Kind != DecisionHandSelectStep {
		return newGuardViolation("no hand selection pending")
	}
	g.popStash(d.PendingEffectID)
	g.PendingDecision = nil
	g.Phase = PhaseMain
	return nil
}

func findInHand(p *PlayerState, instanceID int) *GameCard {
	for _, c := range p.Hand {
		if c.InstanceID == instanceID {
			return c
		}
	}
	return nil
}

// --- FieldSelectStep ---

// ResolveFieldSelect answers a field-select decision: resting or
// trashing the chosen characters, then resuming whatever paused
// (a cost payment via g.stash, or a target choice via g.continuations).
func (g *GameState) ResolveFieldSelect(player int, selectedIDs []int) error {
	d := g.PendingDecision
	if d == nil || d.Kind != DecisionFieldSelectStep {
		return newGuardViolation("no field selection pending")
	}
	if len(selectedIDs) < d.FieldMin || (d.FieldMax > 0 && len(selectedIDs) > d.FieldMax) {
		if !(d.FieldCanSkip && len(selectedIDs) == 0) {
			return newGuardViolation("selection count does not satisfy the field selection bounds")
		}
	}
	legal := map[int]bool{}
	for _, id := range d.FieldCandidates {
		legal[id] = true
	}
	var targets []*GameCard
	for _, id := range selectedIDs {
		if !legal[id] {
			return newGuardViolation("selected card is not a legal candidate")
		}
		c, _ := g.findCard(id)
		if c == nil {
			return newGuardViolation("selected card no longer exists")
		}
		targets = append(targets, c)
	}
	for _, c := range targets {
		switch d.FieldAction {
		case FieldSelectRest:
			c.State = StateRested
		case FieldSelectTrash:
			g.sendToTrash(c)
		}
	}
	g.PendingDecision = nil
	g.Phase = PhaseMain
	if pe, ok := g.popStash(d.PendingEffectID); ok {
		src, _ := g.findCard(pe.SourceInstanceID)
		g.executeEffect(pe, src)
		return nil
	}
	if cont, ok := g.popContinuation(d.PendingEffectID); ok {
		g.resumeContinuation(cont)
	}
	return nil
}

// --- DeckRevealStep ---

// ResolveDeckReveal applies SelectAction to the chosen subset of
// revealed cards and RemainderAction to the rest, runs any child
// effects, then resumes the parked continuation.
func (g *GameState) ResolveDeckReveal(player int, selectedIDs []int) error {
	d := g.PendingDecision
	if d == nil || d.Kind != DecisionDeckRevealStep {
		return newGuardViolation("no deck reveal pending")
	}
	if d.MaxSel > 0 && len(selectedIDs) > d.MaxSel {
		return newGuardViolation("too many cards selected from the reveal")
	}
	selectable := map[int]bool{}
	for _, id := range d.Selectable {
		selectable[id] = true
	}
	selectedSet := map[int]bool{}
	for _, id := range selectedIDs {
		if !selectable[id] {
			return newGuardViolation("selected card was not offered for selection")
		}
		selectedSet[id] = true
	}

	p := g.Players[player]
	var remainder []*GameCard
	var chosen []*GameCard
	for _, c := range g.pendingReveal {
		if selectedSet[c.InstanceID] {
			chosen = append(chosen, c)
		} else {
			remainder = append(remainder, c)
		}
	}
	g.pendingReveal = nil

	g.applyRevealAction(p, chosen, d.SelectAction)
	g.applyRevealAction(p, remainder, d.RemainderAction)

	for _, child := range d.ChildEffects {
		g.applyAction(PendingEffect{PlayerID: player}, nil, child, chosen)
	}

	g.PendingDecision = nil
	g.Phase = PhaseMain
	if cont, ok := g.popContinuation(d.PendingEffectID); ok {
		g.resumeContinuation(cont)
	}
	return nil
}

// SkipDeckReveal declines the whole reveal, routing every revealed
// card through RemainderAction.
func (g *GameState) SkipDeckReveal(player int) error {
	d := g.PendingDecision
	if d == nil || d.Kind != DecisionDeckRevealStep {
		return newGuardViolation("no deck reveal pending")
	}
	p := g.Players[player]
	g.applyRevealAction(p, g.pendingReveal, d.RemainderAction)
	g.pendingReveal = nil
	g.PendingDecision = nil
	g.Phase = PhaseMain
	if cont, ok := g.popContinuation(d.PendingEffectID); ok {
		g.resumeContinuation(cont)
	}
	return nil
}

// applyRevealAction routes a subset of revealed cards to hand, trash,
// or deck bottom per the action tag carried on the SearchAndSelect
// action.
func (g *GameState) applyRevealAction(p *PlayerState, cards []*GameCard, action EffectActionType) {
	for _, c := range cards {
		switch action {
		case ActionReturnToHand:
			c.Zone = ZoneHand
			c.FaceUp = true
			p.Hand = append(p.Hand, c)
		case ActionTrash:
			c.Zone = ZoneTrash
			c.FaceUp = true
			p.Trash = append(p.Trash, c)
		default:
			c.Zone = ZoneDeck
			p.Deck = append(p.Deck, c)
		}
	}
}

// resumeContinuation finishes running the remaining sibling actions of
// an effect that paused mid target-selection (exec.go/helpers.go).
func (g *GameState) resumeContinuation(cont continuation) {
	if cont.depth > 3 || len(cont.remaining) == 0 {
		return
	}
	for _, a := range cont.remaining {
		var targets []*GameCard
		if a.Target != nil {
			targets = g.resolveTargets(cont.pe.PlayerID, a.Target)
		}
		g.applyAction(cont.pe, cont.src, a, targets)
	}
}

// --- ChoiceStep ---

// ResolveChoice answers a ChoiceStep: either a cost-alternative pick
// (IsCostPayment) or a plain multi-branch choice.
func (g *GameState) ResolveChoice(player int, choiceIndex int) error {
	d := g.PendingDecision
	if d == nil || d.Kind != DecisionChoiceStep {
		return newGuardViolation("no choice pending")
	}
	if choiceIndex < 0 || choiceIndex >= len(d.Options) {
		return newGuardViolation("choice index out of range")
	}
	if !d.IsCostPayment {
		g.PendingDecision = nil
		g.Phase = PhaseMain
		return nil
	}
	pe, ok := g.popStash(d.PendingEffectID)
	if !ok {
		g.PendingDecision = nil
		g.Phase = PhaseMain
		return nil
	}
	g.PendingDecision = nil
	g.Phase = PhaseMain
	if choiceIndex == len(d.Options)-1 {
		// "do not pay this cost (skip effect)"
		return nil
	}
	src, _ := g.findCard(pe.SourceInstanceID)
	switch g.payCosts(pe, src, pe.Effect.Costs[choiceIndex]) {
	case costPaused, costFailed:
		return nil
	}
	g.executeEffect(pe, src)
	return nil
}
