package engine

// costResult is the outcome of attempting to pay one cost set.
type costResult int

const (
	costPaid costResult = iota
	costPaused
	costFailed
)

// payCosts pays each CostSpec in order. Simple resource costs (DON!
// rest/return, paying life, resting the source itself) are resolved
// immediately since the engine can pick fungible instances on the
// player's behalf; costs naming a specific card (RestCharacter,
// TrashCharacter, TrashFromHand) enter a FieldSelectStep/HandSelectStep
// decision and the remaining costs (if any) resume once it resolves.
func (g *GameState) payCosts(pe PendingEffect, src *GameCard, costs []CostSpec) costResult {
	result := g.tryPayCosts(pe.PlayerID, src, pe.ID, costs)
	if result == costPaused {
		g.stashEffect(pe)
	}
	return result
}

// tryPayCosts attempts every cost in the set; the first one needing a
// player decision short-circuits the rest (those resume after).
func (g *GameState) tryPayCosts(player int, src *GameCard, peID string, costs []CostSpec) costResult {
	p := g.Players[player]
	for _, c := range costs {
		if c.Optional {
			g.Phase = PhaseAdditionalCostStep
			spec := c
			g.PendingDecision = &PendingDecision{
				Kind:            DecisionAdditionalCostStep,
				PlayerID:        player,
				Cost:            &spec,
				PendingEffectID: peID,
			}
			return costPaused
		}
		switch c.Kind {
		case CostRestDon, CostReturnDon, CostRestSelf, CostLife:
			if !g.payOneSimpleCost(player, src, c) {
				return costFailed
			}
		case CostRestCharacter, CostTrashCharacter:
			candidates := fieldCandidateIDs(p)
			if len(candidates) == 0 {
				return costFailed
			}
			action := FieldSelectRest
			if c.Kind == CostTrashCharacter {
				action = FieldSelectTrash
			}
			g.Phase = PhaseFieldSelectStep
			g.PendingDecision = &PendingDecision{
				Kind:            DecisionFieldSelectStep,
				PlayerID:        player,
				FieldCandidates: candidates,
				FieldAction:     action,
				FieldMin:        c.Amount,
				FieldMax:        c.Amount,
				FieldCanSkip:    false,
				PendingEffectID: peID,
			}
			return costPaused
		case CostTrashFromHand:
			if len(p.Hand) < c.Amount {
				return costFailed
			}
			g.Phase = PhaseHandSelectStep
			g.PendingDecision = &PendingDecision{
				Kind:            DecisionHandSelectStep,
				PlayerID:        player,
				HandMin:         c.Amount,
				HandMax:         c.Amount,
				HandAction:      HandSelectTrash,
				PendingEffectID: peID,
			}
			return costPaused
		}
	}
	return costPaid
}

// payOneSimpleCost pays a single fungible cost (one the engine can
// satisfy on the player's behalf without a targeted decision). Used
// both inline by tryPayCosts and to resume a paused AdditionalCostStep.
func (g *GameState) payOneSimpleCost(player int, src *GameCard, c CostSpec) bool {
	p := g.Players[player]
	switch c.Kind {
	case CostRestDon:
		active := p.ActiveUnattachedDon()
		if len(active) < c.Amount {
			return false
		}
		for i := 0; i < c.Amount; i++ {
			active[i].State = StateRested
		}
	case CostReturnDon:
		active := p.ActiveUnattachedDon()
		if len(active) < c.Amount {
			return false
		}
		toReturn := active[:c.Amount]
		p.DonArea = removeDonInstances(p.DonArea, toReturn)
		p.DonDeckCount += c.Amount
	case CostRestSelf:
		if src == nil || src.State != StateActive {
			return false
		}
		src.State = StateRested
	case CostLife:
		g.payLifeCost(player, c.Amount)
	default:
		return false
	}
	return true
}

func removeDonInstances(area []*GameCard, toRemove []*GameCard) []*GameCard {
	remove := map[int]bool{}
	for _, d := range toRemove {
		remove[d.InstanceID] = true
	}
	out := area[:0]
	for _, d := range area {
		if remove[d.InstanceID] {
			continue
		}
		out = append(out, d)
	}
	return out
}

func fieldCandidateIDs(p *PlayerState) []int {
	var out []int
	for _, c := range p.Field {
		if c != nil {
			out = append(out, c.InstanceID)
		}
	}
	return out
}

// payLifeCost pays k life as a cost (not combat damage): pops k life
// cards to hand. Unlike resolveLeaderDamage, the one-life Double-Attack rule
// does not apply — that rule is scoped to combat.
func (g *GameState) payLifeCost(player int, amount int) {
	p := g.Players[player]
	for i := 0; i < amount; i++ {
		if len(p.Life) == 0 {
			g.endMatch(Opponent(player), "life cost exceeded remaining life")
			return
		}
		top := p.Life[len(p.Life)-1]
		p.Life = p.Life[:len(p.Life)-1]
		top.Zone = ZoneHand
		top.FaceUp = true
		p.Hand = append(p.Hand, top)
		g.fireTrigger(TriggerLifeAddedToHand, player, top.InstanceID, PhasePlayEffectStep)
	}
}
