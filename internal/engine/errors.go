package engine

import "fmt"

// GuardViolation covers wrong phase, wrong player, card not found, not
// enough resources, invalid target, or a blocking pending decision.
// Returned as the rejected call's error with state unchanged; never
// logged as an error.
type GuardViolation struct {
	Reason string
}

func (e *GuardViolation) Error() string {
	return e.Reason
}

func newGuardViolation(format string, args ...any) *GuardViolation {
	return &GuardViolation{Reason: fmt.Sprintf(format, args...)}
}

// RuleViolation is a more specific guard subclass: a full field, a card
// with no printed counter value, a card not playable as a counter. Handled identically to
// GuardViolation by the dispatcher.
type RuleViolation struct {
	Reason string
}

func (e *RuleViolation) Error() string {
	return e.Reason
}

func newRuleViolation(format string, args ...any) *RuleViolation {
	return &RuleViolation{Reason: fmt.Sprintf(format, args...)}
}

// ParserFailure marks card text the parser could not compile. It is
// non-fatal: the card loads with an empty effect list and this is
// recorded as a warning, not an aborted match.
type ParserFailure struct {
	CardID string
	Text   string
	Reason string
}

func (e *ParserFailure) Error() string {
	return fmt.Sprintf("parser failure on %s: %s", e.CardID, e.Reason)
}

// InvariantBreach is a bug: state reached a condition the engine's
// own invariants forbid. It is match-fatal; the
// caller should abort the match and persist Dump(state) for postmortem.
type InvariantBreach struct {
	Reason string
}

func (e *InvariantBreach) Error() string {
	return fmt.Sprintf("invariant breach: %s", e.Reason)
}

func newInvariantBreach(format string, args ...any) *InvariantBreach {
	return &InvariantBreach{Reason: fmt.Sprintf(format, args...)}
}
