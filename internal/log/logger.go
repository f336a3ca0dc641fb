package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging duel events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	if p < 0 {
		return "-"
	}
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	for len(phase) < 16 {
		phase += " "
	}
	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  -1,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draw Phase",
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, playerName(player)),
	}
}

func NewEndTurnEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "End Phase",
		Player:  player,
		Type:    EventEndTurn,
		Details: fmt.Sprintf("%s ends their turn", playerName(player)),
	}
}

func NewExtraTurnEvent(turn int, player int, remaining int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "End Phase",
		Player:  player,
		Type:    EventExtraTurn,
		Details: fmt.Sprintf("%s takes an extra turn (%d queued remaining)", playerName(player), remaining),
	}
}

func NewDrawEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", playerName(player), cardName),
	}
}

func NewMulliganEvent(turn int, player int, mulliganed bool) GameEvent {
	verb := "keeps their hand"
	if mulliganed {
		verb = "mulligans"
	}
	return GameEvent{
		Turn:    turn,
		Phase:   "Mulligan",
		Player:  player,
		Type:    EventMulligan,
		Details: fmt.Sprintf("%s %s", playerName(player), verb),
	}
}

func NewDonPhaseEvent(turn int, player int, moved int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Don Phase",
		Player:  player,
		Type:    EventDonPhase,
		Details: fmt.Sprintf("%s adds %d DON!! to cost area", playerName(player), moved),
	}
}

func NewPlayCharacterEvent(turn int, phase string, player int, cardName string, cost int, power int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayCharacter,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s (cost %d, power %d)", playerName(player), cardName, cost, power),
	}
}

func NewPlayEventEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayEvent,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays event %s", playerName(player), cardName),
	}
}

func NewPlayStageEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayStage,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays stage %s", playerName(player), cardName),
	}
}

func NewAttachDonEvent(turn int, phase string, player int, cardName string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAttachDon,
		Card:    cardName,
		Details: fmt.Sprintf("%s attaches %d DON!! to %s", playerName(player), count, cardName),
	}
}

func NewActivateEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventActivate,
		Card:    cardName,
		Details: fmt.Sprintf("%s activates %s", playerName(player), cardName),
	}
}

func NewAttackDeclareEvent(turn int, player int, attacker string, target string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Main Phase",
		Player:  player,
		Type:    EventAttackDeclare,
		Card:    attacker,
		Details: fmt.Sprintf("%s declares attack: %s → %s", playerName(player), attacker, target),
	}
}

func NewBlockerSelectEvent(turn int, player int, blockerName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Main Phase",
		Player:  player,
		Type:    EventBlockerSelect,
		Card:    blockerName,
		Details: fmt.Sprintf("%s blocks with %s", playerName(player), blockerName),
	}
}

func NewCounterPlayedEvent(turn int, player int, cardName string, power int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Main Phase",
		Player:  player,
		Type:    EventCounterPlayed,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays counter %s (+%d power)", playerName(player), cardName, power),
	}
}

func NewDamageCalcEvent(turn int, player int, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Main Phase",
		Player:  player,
		Type:    EventDamageCalc,
		Details: details,
	}
}

func NewKOEvent(turn int, player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Main Phase",
		Player:  player,
		Type:    EventKO,
		Card:    cardName,
		Details: fmt.Sprintf("%s is KO'd (%s)", cardName, reason),
	}
}

func NewHitLeaderEvent(turn int, player int, damage int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Main Phase",
		Player:  player,
		Type:    EventHitLeader,
		Details: fmt.Sprintf("%s's leader takes %d damage", playerName(player), damage),
	}
}

func NewLifeRevealedEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Main Phase",
		Player:  player,
		Type:    EventLifeRevealed,
		Card:    cardName,
		Details: fmt.Sprintf("%s's life card is revealed: %s", playerName(player), cardName),
	}
}

func NewLifeAddedToHandEvent(turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Main Phase",
		Player:  player,
		Type:    EventLifeAddedToHand,
		Card:    cardName,
		Details: fmt.Sprintf("%s adds %s from life to hand", playerName(player), cardName),
	}
}

func NewSendToTrashEvent(turn int, phase string, player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSendToTrash,
		Card:    cardName,
		Details: fmt.Sprintf("%s is sent to %s's trash (%s)", cardName, playerName(player), reason),
	}
}

func NewRestEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventRest,
		Card:    cardName,
		Details: fmt.Sprintf("%s is rested", cardName),
	}
}

func NewActiveRefreshEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Refresh Phase",
		Player:  player,
		Type:    EventActiveRefresh,
		Details: fmt.Sprintf("%s's field and DON!! are refreshed to Active", playerName(player)),
	}
}

func NewBuffAppliedEvent(turn int, phase string, player int, cardName string, value int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventBuffApplied,
		Card:    cardName,
		Details: fmt.Sprintf("%s gains %+d power", cardName, value),
	}
}

func NewBuffExpiredEvent(turn int, phase string, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  -1,
		Type:    EventBuffExpired,
		Card:    cardName,
		Details: fmt.Sprintf("a power buff on %s expires", cardName),
	}
}

func NewTriggerQueuedEvent(turn int, phase string, player int, cardName string, trigger string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTriggerQueued,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s effect is queued (%s)", cardName, trigger, playerName(player)),
	}
}

func NewPendingDecisionEvent(turn int, phase string, player int, kind string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPendingDecision,
		Details: fmt.Sprintf("awaiting %s decision from %s", kind, playerName(player)),
	}
}

func NewResolveDecisionEvent(turn int, phase string, player int, kind string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventResolveDecision,
		Details: fmt.Sprintf("%s resolves %s decision", playerName(player), kind),
	}
}

func NewStageReplacedEvent(turn int, phase string, player int, oldName string, newName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventStageReplaced,
		Card:    newName,
		Details: fmt.Sprintf("%s replaces stage %s with %s", playerName(player), oldName, newName),
	}
}

func NewDeckOutEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draw Phase",
		Player:  player,
		Type:    EventDeckOut,
		Details: fmt.Sprintf("%s has no cards left to draw and loses", playerName(player)),
	}
}

func NewWinEvent(turn int, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", playerName(winner), reason),
	}
}

func NewInvariantBreachEvent(turn int, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  -1,
		Type:    EventInvariantBreach,
		Details: details,
	}
}
