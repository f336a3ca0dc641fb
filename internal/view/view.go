// Package view is the serialization boundary: it renders a per-player,
// deep-copied snapshot of a match with the opponent's private
// information redacted. The engine's own state never leaves this
// package un-copied, so a transport layer can hand views to clients
// without aliasing live engine memory.
package view

import (
	"fmt"

	"github.com/optcgx/engine/internal/engine"
)

// Hidden is the sentinel substituted for a card id the viewer is not
// allowed to see.
const Hidden = "hidden"

// CardView is one card as a client sees it.
type CardView struct {
	InstanceID string `json:"instance_id"`
	CardID     string `json:"card_id"`
	Zone       string `json:"zone"`
	State      string `json:"state"`
	Owner      int    `json:"owner"`
	FaceUp     bool   `json:"face_up"`
	Power      int    `json:"power,omitempty"`
	DonCount   int    `json:"don_count,omitempty"`
}

// PlayerView is one side of the board. For the opponent's side, hand
// and deck entries carry sentinels and face-down life cards are
// hidden; lengths are always preserved.
type PlayerView struct {
	ID           string     `json:"id"`
	Name         string     `json:"name,omitempty"`
	Leader       *CardView  `json:"leader,omitempty"`
	Life         int        `json:"life"`
	LifeCards    []CardView `json:"life_cards"`
	Hand         []CardView `json:"hand"`
	Field        []CardView `json:"field"`
	Stage        *CardView  `json:"stage,omitempty"`
	Trash        []CardView `json:"trash"`
	Deck         []CardView `json:"deck"`
	DonDeckCount int        `json:"don_deck_count"`
	DonArea      []CardView `json:"don_area"`
	Active       bool       `json:"active"`
}

// DecisionView describes the outstanding pending decision. Only the
// deciding player receives its details; the opponent sees just the
// kind and who must answer.
type DecisionView struct {
	Kind        string   `json:"kind"`
	PlayerID    int      `json:"player_id"`
	Options     []string `json:"options,omitempty"`
	Candidates  []string `json:"candidates,omitempty"`
	RevealedIDs []int    `json:"revealed_ids,omitempty"`
	Selectable  []int    `json:"selectable,omitempty"`
	MaxSel      int      `json:"max_sel,omitempty"`
	Min         int      `json:"min,omitempty"`
	Max         int      `json:"max,omitempty"`
}

// StateView is the match from one player's perspective.
type StateView struct {
	MatchID    string        `json:"match_id"`
	Turn       int           `json:"turn"`
	Phase      string        `json:"phase"`
	IsYourTurn bool          `json:"is_your_turn"`
	You        PlayerView    `json:"you"`
	Opponent   PlayerView    `json:"opponent"`
	Winner     *int          `json:"winner,omitempty"`
	Decision   *DecisionView `json:"decision,omitempty"`
}

// Build renders the match as seen by the given player index.
func Build(g *engine.GameState, viewer int) StateView {
	sv := StateView{
		MatchID:    g.ID,
		Turn:       g.Turn,
		Phase:      g.Phase.String(),
		IsYourTurn: g.ActivePlayer == viewer,
		You:        buildPlayer(g, viewer, false),
		Opponent:   buildPlayer(g, engine.Opponent(viewer), true),
	}
	if g.Winner != nil {
		w := *g.Winner
		sv.Winner = &w
	}
	if d := g.PendingDecision; d != nil {
		sv.Decision = buildDecision(d, viewer)
	}
	return sv
}

func buildPlayer(g *engine.GameState, idx int, redact bool) PlayerView {
	p := g.Player(idx)
	pv := PlayerView{
		ID:           p.ID,
		Name:         p.Name,
		Life:         len(p.Life),
		DonDeckCount: p.DonDeckCount,
		Active:       p.Active,
	}
	if p.Leader != nil {
		lv := publicCard(g, p.Leader)
		pv.Leader = &lv
	}
	if p.Stage != nil {
		sv := publicCard(g, p.Stage)
		pv.Stage = &sv
	}
	for _, c := range p.FieldCards() {
		pv.Field = append(pv.Field, publicCard(g, c))
	}
	for _, c := range p.Trash {
		pv.Trash = append(pv.Trash, publicCard(g, c))
	}
	for _, c := range p.DonArea {
		pv.DonArea = append(pv.DonArea, publicCard(g, c))
	}

	for i, c := range p.Hand {
		if redact {
			pv.Hand = append(pv.Hand, CardView{
				InstanceID: fmt.Sprintf("hidden-hand-%d", i),
				CardID:     Hidden,
				Zone:       engine.ZoneHand.String(),
				State:      engine.StateActive.String(),
				Owner:      idx,
			})
			continue
		}
		pv.Hand = append(pv.Hand, publicCard(g, c))
	}

	for i, c := range p.Deck {
		if redact {
			pv.Deck = append(pv.Deck, CardView{
				InstanceID: fmt.Sprintf("hidden-deck-%d", i),
				CardID:     Hidden,
				Zone:       engine.ZoneDeck.String(),
				State:      engine.StateActive.String(),
				Owner:      idx,
			})
			continue
		}
		pv.Deck = append(pv.Deck, publicCard(g, c))
	}

	for i, c := range p.Life {
		if redact && !c.FaceUp {
			pv.LifeCards = append(pv.LifeCards, CardView{
				InstanceID: fmt.Sprintf("hidden-life-%d", i),
				CardID:     Hidden,
				Zone:       engine.ZoneLife.String(),
				State:      engine.StateActive.String(),
				Owner:      idx,
			})
			continue
		}
		pv.LifeCards = append(pv.LifeCards, publicCard(g, c))
	}
	return pv
}

// publicCard copies a card the viewer may fully see, including its
// current effective power and attached-DON! count for board cards.
func publicCard(g *engine.GameState, c *engine.GameCard) CardView {
	cv := CardView{
		InstanceID: fmt.Sprintf("%d", c.InstanceID),
		CardID:     c.CardID,
		Zone:       c.Zone.String(),
		State:      c.State.String(),
		Owner:      c.Owner,
		FaceUp:     c.FaceUp,
	}
	switch c.Zone {
	case engine.ZoneLeader, engine.ZoneField:
		cv.Power = g.EffectivePower(c)
		cv.DonCount = g.Player(c.Owner).AttachedDonCount(c)
	}
	return cv
}

func buildDecision(d *engine.PendingDecision, viewer int) *DecisionView {
	dv := &DecisionView{
		Kind:     d.Kind.String(),
		PlayerID: d.PlayerID,
	}
	if d.PlayerID != viewer {
		return dv
	}
	dv.Options = append([]string(nil), d.Options...)
	dv.Candidates = append([]string(nil), d.Candidates...)
	switch d.Kind {
	case engine.DecisionDeckRevealStep:
		dv.RevealedIDs = append([]int(nil), d.RevealedIDs...)
		dv.Selectable = append([]int(nil), d.Selectable...)
		dv.MaxSel = d.MaxSel
	case engine.DecisionHandSelectStep:
		dv.Min, dv.Max = d.HandMin, d.HandMax
	case engine.DecisionFieldSelectStep:
		dv.Min, dv.Max = d.FieldMin, d.FieldMax
		for _, id := range d.FieldCandidates {
			dv.Selectable = append(dv.Selectable, id)
		}
	case engine.DecisionPreGameSelect:
		dv.Max = d.Count
	}
	return dv
}
