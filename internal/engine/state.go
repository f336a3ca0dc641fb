package engine

const (
	// MaxFieldSize is the number of non-leader, non-stage character
	// slots a player's field holds.
	MaxFieldSize = 5

	// DefaultLifeSize is the life count when a leader definition omits
	// a printed value.
	DefaultLifeSize = 5

	// DonPerTurn is the number of DON! moved to the cost area on a
	// normal Don Phase.
	DonPerTurn = 2

	// FirstTurnDonCount is the DON! moved on the very first player's
	// personal turn 1.
	FirstTurnDonCount = 1

	// StartingHandSize is the number of cards drawn for the opening hand.
	StartingHandSize = 5
)

// PlayerState is one player's side of the board.
type PlayerState struct {
	ID   string
	Name string

	Leader *GameCard
	Life   []*GameCard // top = last element
	Hand   []*GameCard
	Field  [MaxFieldSize]*GameCard
	Stage  *GameCard
	Trash  []*GameCard
	Deck   []*GameCard // top = index 0

	DonDeckCount int
	DonArea      []*GameCard

	Active            bool
	PersonalTurnCount int
	ExtraTurns        int

	OncePerTurnUsed map[string]bool // effect id -> used this turn
	SeenActionIDs   map[string]bool // idempotency guard against replayed actions
}

// FreeFieldSlot returns the index of the first empty field slot, or -1.
func (p *PlayerState) FreeFieldSlot() int {
	for i, c := range p.Field {
		if c == nil {
			return i
		}
	}
	return -1
}

// FieldCards returns all non-nil field cards in slot order.
func (p *PlayerState) FieldCards() []*GameCard {
	var out []*GameCard
	for _, c := range p.Field {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// RemoveFromField clears the slot holding the given instance, if any.
func (p *PlayerState) RemoveFromField(instanceID int) bool {
	for i, c := range p.Field {
		if c != nil && c.InstanceID == instanceID {
			p.Field[i] = nil
			return true
		}
	}
	return false
}

// ActiveUnattachedDon returns cost-area DON! cards that are ACTIVE and
// not attached to anything — the only DON! payable for costs.
func (p *PlayerState) ActiveUnattachedDon() []*GameCard {
	var out []*GameCard
	for _, d := range p.DonArea {
		if d.State == StateActive && d.AttachedTo == nil {
			out = append(out, d)
		}
	}
	return out
}

// AttachedDonCount returns how many DON! are attached to the given card.
func (p *PlayerState) AttachedDonCount(target *GameCard) int {
	n := 0
	for _, d := range p.DonArea {
		if d.AttachedTo == target {
			n++
		}
	}
	return n
}

// --- Combat ---

// Combat is the transient per-attack state.
type Combat struct {
	AttackerID      int
	TargetID        int
	TargetKind      TargetKindCombat
	DeclaredPower   int
	CounterPower    int
	EffectBuffPower int
	Blocked         bool
	BattleID        string
	DoubleAttack    bool
}

// --- Pending effects (FIFO queue) ---

// PendingEffect is one queued, not-yet-resolved trigger firing. The
// manager drains this queue FIFO, auto-resolving effects that don't
// require a choice and pausing on one that does.
type PendingEffect struct {
	ID               string
	SourceInstanceID int
	PlayerID         int
	Trigger          TriggerKind
	Effect           *EffectDefinition
	RequiresChoice   bool
	Priority         int
}

// --- Pending decisions ---

type PendingDecisionKind int

const (
	DecisionPreGameSelect PendingDecisionKind = iota
	DecisionPlayEffectStep
	DecisionAttackEffectStep
	DecisionEventEffectStep
	DecisionCounterEffectStep
	DecisionAdditionalCostStep
	DecisionHandSelectStep
	DecisionFieldSelectStep
	DecisionDeckRevealStep
	DecisionChoiceStep
)

func (k PendingDecisionKind) String() string {
	switch k {
	case DecisionPreGameSelect:
		return "PreGameSelect"
	case DecisionPlayEffectStep:
		return "PlayEffectStep"
	case DecisionAttackEffectStep:
		return "AttackEffectStep"
	case DecisionEventEffectStep:
		return "EventEffectStep"
	case DecisionCounterEffectStep:
		return "CounterEffectStep"
	case DecisionAdditionalCostStep:
		return "AdditionalCostStep"
	case DecisionHandSelectStep:
		return "HandSelectStep"
	case DecisionFieldSelectStep:
		return "FieldSelectStep"
	case DecisionDeckRevealStep:
		return "DeckRevealStep"
	case DecisionChoiceStep:
		return "ChoiceStep"
	default:
		return "Unknown"
	}
}

type HandSelectAction int

const (
	HandSelectTrash HandSelectAction = iota
	HandSelectReturnToDeckTop
	HandSelectReturnToDeckBottom
)

type FieldSelectAction int

const (
	FieldSelectTrash FieldSelectAction = iota
	FieldSelectRest
)

// PendingDecision is the tagged variant the manager holds while
// mid-resolution: a Kind tag plus only the fields relevant to that
// kind populated, since Go has no native sum type.
type PendingDecision struct {
	Kind PendingDecisionKind

	PlayerID int

	// PreGameSelect
	Trait      string
	Category   CardCategory
	Count      int
	Optional   bool
	Candidates []string

	// PlayEffectStep / AttackEffectStep / EventEffectStep / CounterEffectStep
	Effects []PendingEffect

	// AdditionalCostStep
	Cost *CostSpec

	// HandSelectStep
	HandMin    int
	HandMax    int
	HandAction HandSelectAction

	// FieldSelectStep
	FieldCandidates []int
	FieldAction     FieldSelectAction
	FieldMin        int
	FieldMax        int
	FieldCanSkip    bool

	// DeckRevealStep
	RevealedIDs     []int
	Selectable      []int
	MaxSel          int
	SelectAction    EffectActionType
	RemainderAction EffectActionType
	ChildEffects    []EffectAction

	// ChoiceStep
	Options []string

	// Cost-payment resume
	IsCostPayment   bool
	PendingEffectID string
}

// --- Game state ---

// HistoryEntry is one append-only audit-log line. Distinct from the
// external log.EventLogger: it is kept on GameState itself so an
// InvariantBreach dump is self-contained.
type HistoryEntry struct {
	Turn    int
	Phase   string
	Player  int
	Summary string
}

// GameState is the single authoritative, owned-by-one-writer root.
type GameState struct {
	ID           string
	Phase        Phase
	Turn         int
	ActivePlayer int
	FirstPlayer  int
	Players      [2]*PlayerState

	CurrentCombat   *Combat
	Winner          *int
	PendingDecision *PendingDecision
	PendingEffects  []PendingEffect

	History []HistoryEntry

	nextInstanceID int
	catalog        CardCatalog
	rng            RNG
	logger         EventSink

	// pendingStartOfGame holds each player's parsed StartOfGameDirective,
	// consumed during PreGameSetup.
	pendingStartOfGame [2]*StartOfGameDirective
	mulliganDone       [2]bool

	// stash parks PendingEffects mid cost-alternative/cost-payment
	// selection, keyed by PendingEffect.ID (queue.go, pending.go).
	stash map[string]PendingEffect

	// continuations parks in-progress action lists mid target
	// selection, keyed by a synthetic token (exec.go, pending.go).
	continuations map[string]continuation

	// pendingReveal holds cards currently off-deck mid DeckRevealStep
	// (helpers.go, pending.go).
	pendingReveal []*GameCard

	// preventKO marks instance ids whose upcoming KO a PreKO effect
	// has canceled, keyed by the would-be-KO'd
	// card's instance id.
	preventKO map[int]bool
}

// EventSink is the minimal surface GameState needs from internal/log's
// EventLogger to emit observability without importing the concrete
// sink type here (keeps internal/engine decoupled from internal/log).
type EventSink interface {
	LogEvent(turn int, phase string, player int, summary string)
}

// CardCatalog is the read-only external collaborator.
type CardCatalog interface {
	Get(cardID string) (*CardDefinition, bool)
	All() []*CardDefinition
}

// Opponent returns the index of the non-active, opposing player.
func Opponent(player int) int {
	return 1 - player
}

// Player returns the PlayerState for the given index.
func (g *GameState) Player(idx int) *PlayerState {
	return g.Players[idx]
}

// ActivePlayerState returns the currently active player's state.
func (g *GameState) ActivePlayerState() *PlayerState {
	return g.Players[g.ActivePlayer]
}

// OpponentPlayerState returns the non-active player's state.
func (g *GameState) OpponentPlayerState() *PlayerState {
	return g.Players[Opponent(g.ActivePlayer)]
}

// NextInstanceID allocates a new, stable instance id.
func (g *GameState) NextInstanceID() int {
	g.nextInstanceID++
	return g.nextInstanceID
}

// recordHistory appends an audit-log line.
func (g *GameState) recordHistory(player int, summary string) {
	g.History = append(g.History, HistoryEntry{
		Turn:    g.Turn,
		Phase:   g.Phase.String(),
		Player:  player,
		Summary: summary,
	})
	if g.logger != nil {
		g.logger.LogEvent(g.Turn, g.Phase.String(), player, summary)
	}
}

// findCard locates a card by instance id across both players'
// leader/field/stage/life/hand/trash/don zones (not the deck). Used by buff
// expiry and combat resolution lookups.
func (g *GameState) findCard(instanceID int) (*GameCard, int) {
	for pi, p := range g.Players {
		if p.Leader != nil && p.Leader.InstanceID == instanceID {
			return p.Leader, pi
		}
		if p.Stage != nil && p.Stage.InstanceID == instanceID {
			return p.Stage, pi
		}
		for _, c := range p.Field {
			if c != nil && c.InstanceID == instanceID {
				return c, pi
			}
		}
		for _, c := range p.Hand {
			if c.InstanceID == instanceID {
				return c, pi
			}
		}
		for _, c := range p.Trash {
			if c.InstanceID == instanceID {
				return c, pi
			}
		}
		for _, c := range p.Life {
			if c.InstanceID == instanceID {
				return c, pi
			}
		}
		for _, c := range p.DonArea {
			if c.InstanceID == instanceID {
				return c, pi
			}
		}
	}
	return nil, -1
}

// isOnField reports whether the given instance is currently leader,
// field, or stage — i.e. a legal combat participant.
func (g *GameState) isOnField(c *GameCard) bool {
	if c == nil {
		return false
	}
	p := g.Players[c.Owner]
	if p.Leader == c {
		return true
	}
	if p.Stage == c {
		return true
	}
	for _, f := range p.Field {
		if f == c {
			return true
		}
	}
	return false
}
