package engine

import "encoding/json"

// Dump renders a deterministic, unredacted JSON snapshot of the match
// state for postmortem after an InvariantBreach. Unlike
// internal/view's per-player views, this is intentionally
// unsanitized for debugging.
func Dump(g *GameState) ([]byte, error) {
	snapshot := struct {
		ID              string           `json:"id"`
		Phase           string           `json:"phase"`
		Turn            int              `json:"turn"`
		ActivePlayer    int              `json:"activePlayer"`
		FirstPlayer     int              `json:"firstPlayer"`
		Players         [2]*PlayerState  `json:"players"`
		CurrentCombat   *Combat          `json:"currentCombat,omitempty"`
		Winner          *int             `json:"winner,omitempty"`
		PendingDecision *PendingDecision `json:"pendingDecision,omitempty"`
		PendingEffects  []PendingEffect  `json:"pendingEffects"`
		History         []HistoryEntry  `json:"history"`
	}{
		ID:              g.ID,
		Phase:           g.Phase.String(),
		Turn:            g.Turn,
		ActivePlayer:    g.ActivePlayer,
		FirstPlayer:     g.FirstPlayer,
		Players:         g.Players,
		CurrentCombat:   g.CurrentCombat,
		Winner:          g.Winner,
		PendingDecision: g.PendingDecision,
		PendingEffects:  g.PendingEffects,
		History:         g.History,
	}
	return json.MarshalIndent(snapshot, "", "  ")
}
