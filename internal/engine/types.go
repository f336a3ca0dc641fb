// Package engine is the authoritative server-side rules engine for a
// two-player One Piece TCG duel: phase machine, effect engine, combat,
// and pending-decision choreography.
package engine

// --- Card category / color ---

type CardCategory int

const (
	CategoryLeader CardCategory = iota
	CategoryCharacter
	CategoryEvent
	CategoryStage
)

func (c CardCategory) String() string {
	switch c {
	case CategoryLeader:
		return "Leader"
	case CategoryCharacter:
		return "Character"
	case CategoryEvent:
		return "Event"
	case CategoryStage:
		return "Stage"
	default:
		return "Unknown"
	}
}

type Color int

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorPurple
	ColorBlack
	ColorYellow
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "Red"
	case ColorGreen:
		return "Green"
	case ColorBlue:
		return "Blue"
	case ColorPurple:
		return "Purple"
	case ColorBlack:
		return "Black"
	case ColorYellow:
		return "Yellow"
	default:
		return "Unknown"
	}
}

// Keyword is a closed set of printed/granted card keywords.
type Keyword int

const (
	KeywordRush Keyword = iota
	KeywordBlocker
	KeywordDoubleAttack
	KeywordBanish
	KeywordUnblockable
	KeywordCantBeBlocked // granted immunity, functionally equal to Unblockable
)

func (k Keyword) String() string {
	switch k {
	case KeywordRush:
		return "Rush"
	case KeywordBlocker:
		return "Blocker"
	case KeywordDoubleAttack:
		return "Double Attack"
	case KeywordBanish:
		return "Banish"
	case KeywordUnblockable:
		return "Unblockable"
	case KeywordCantBeBlocked:
		return "Can't Be Blocked"
	default:
		return "Unknown"
	}
}

// --- Phase machine ---

type Phase int

const (
	PhaseStartWaiting Phase = iota
	PhasePreGameSetup
	PhaseStartMulligan
	PhaseDraw
	PhaseDon
	PhaseMain
	PhasePlayEffectStep
	PhaseAttackEffectStep
	PhaseEventEffectStep
	PhaseCounterEffectStep
	PhaseAdditionalCostStep
	PhaseHandSelectStep
	PhaseFieldSelectStep
	PhaseDeckRevealStep
	PhaseChoiceStep
	PhaseBlockerStep
	PhaseCounterStep
	PhaseTriggerStep
	PhaseEnd
	PhaseRefresh
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseStartWaiting:
		return "Start Waiting"
	case PhasePreGameSetup:
		return "Pre-Game Setup"
	case PhaseStartMulligan:
		return "Mulligan"
	case PhaseDraw:
		return "Draw Phase"
	case PhaseDon:
		return "Don Phase"
	case PhaseMain:
		return "Main Phase"
	case PhasePlayEffectStep:
		return "Play Effect Step"
	case PhaseAttackEffectStep:
		return "Attack Effect Step"
	case PhaseEventEffectStep:
		return "Event Effect Step"
	case PhaseCounterEffectStep:
		return "Counter Effect Step"
	case PhaseAdditionalCostStep:
		return "Additional Cost Step"
	case PhaseHandSelectStep:
		return "Hand Select Step"
	case PhaseFieldSelectStep:
		return "Field Select Step"
	case PhaseDeckRevealStep:
		return "Deck Reveal Step"
	case PhaseChoiceStep:
		return "Choice Step"
	case PhaseBlockerStep:
		return "Blocker Step"
	case PhaseCounterStep:
		return "Counter Step"
	case PhaseTriggerStep:
		return "Trigger Step"
	case PhaseEnd:
		return "End Phase"
	case PhaseRefresh:
		return "Refresh Phase"
	case PhaseGameOver:
		return "Game Over"
	default:
		return "Unknown"
	}
}

// isPendingDecisionPhase reports whether the phase is one where a
// PendingDecision must always be set.
func (p Phase) isPendingDecisionPhase() bool {
	switch p {
	case PhasePreGameSetup, PhasePlayEffectStep, PhaseAttackEffectStep,
		PhaseEventEffectStep, PhaseCounterEffectStep, PhaseAdditionalCostStep,
		PhaseHandSelectStep, PhaseFieldSelectStep, PhaseDeckRevealStep,
		PhaseChoiceStep, PhaseTriggerStep:
		return true
	default:
		return false
	}
}

// --- Zones and card state ---

type ZoneType int

const (
	ZoneDeck ZoneType = iota
	ZoneHand
	ZoneLeader
	ZoneField
	ZoneStage
	ZoneTrash
	ZoneLife
	ZoneDonDeck
	ZoneDonArea
)

func (z ZoneType) String() string {
	switch z {
	case ZoneDeck:
		return "Deck"
	case ZoneHand:
		return "Hand"
	case ZoneLeader:
		return "Leader"
	case ZoneField:
		return "Field"
	case ZoneStage:
		return "Stage"
	case ZoneTrash:
		return "Trash"
	case ZoneLife:
		return "Life"
	case ZoneDonDeck:
		return "DON!! Deck"
	case ZoneDonArea:
		return "DON!! Area"
	default:
		return "Unknown"
	}
}

type CardState int

const (
	StateActive CardState = iota
	StateRested
	StateAttached
)

func (s CardState) String() string {
	switch s {
	case StateActive:
		return "Active"
	case StateRested:
		return "Rested"
	case StateAttached:
		return "Attached"
	default:
		return "Unknown"
	}
}

// --- Buff durations ---

type DurationKind int

const (
	DurationPermanent DurationKind = iota
	DurationThisTurn
	DurationThisBattle
	DurationStageContinuous
	DurationWhileOnField
	DurationUntilSourceLeaves
)

func (d DurationKind) String() string {
	switch d {
	case DurationPermanent:
		return "Permanent"
	case DurationThisTurn:
		return "ThisTurn"
	case DurationThisBattle:
		return "ThisBattle"
	case DurationStageContinuous:
		return "StageContinuous"
	case DurationWhileOnField:
		return "WhileOnField"
	case DurationUntilSourceLeaves:
		return "UntilSourceLeaves"
	default:
		return "Unknown"
	}
}

// BuffDuration tags a PowerBuff's expiry rule with the data it needs to
// evaluate "is this still active".
type BuffDuration struct {
	Kind       DurationKind
	Turn       int    // set when Kind == DurationThisTurn
	BattleID   string // set when Kind == DurationThisBattle
}

// --- Trigger kinds (closed enumeration) ---

type TriggerKind int

const (
	TriggerOnPlay TriggerKind = iota
	TriggerOnAttack
	TriggerOnBlock
	TriggerOnKO
	TriggerPreKO
	TriggerAnyCharacterKOd
	TriggerAfterKOCharacter
	TriggerTrashSelf
	TriggerTrashAlly
	TriggerHitLeader
	TriggerLifeAddedToHand
	TriggerLifeReachesZero
	TriggerCardDrawn
	TriggerDonTap
	TriggerAttachDon
	TriggerOpponentDeploys
	TriggerDeployedFromHand
	TriggerOpponentPlaysEvent
	TriggerOpponentActivatesBlocker
	TriggerStartOfTurn
	TriggerEndOfTurn
	TriggerYourTurn
	TriggerOpponentTurn
	TriggerPassive
	TriggerDonX
	TriggerActivateMain
	TriggerMain
	TriggerCounter
	TriggerTrigger
	TriggerImmediate
	TriggerAfterBattle
)

func (t TriggerKind) String() string {
	switch t {
	case TriggerOnPlay:
		return "OnPlay"
	case TriggerOnAttack:
		return "OnAttack"
	case TriggerOnBlock:
		return "OnBlock"
	case TriggerOnKO:
		return "OnKO"
	case TriggerPreKO:
		return "PreKO"
	case TriggerAnyCharacterKOd:
		return "AnyCharacterKOd"
	case TriggerAfterKOCharacter:
		return "AfterKOCharacter"
	case TriggerTrashSelf:
		return "TrashSelf"
	case TriggerTrashAlly:
		return "TrashAlly"
	case TriggerHitLeader:
		return "HitLeader"
	case TriggerLifeAddedToHand:
		return "LifeAddedToHand"
	case TriggerLifeReachesZero:
		return "LifeReachesZero"
	case TriggerCardDrawn:
		return "CardDrawn"
	case TriggerDonTap:
		return "DonTap"
	case TriggerAttachDon:
		return "AttachDon"
	case TriggerOpponentDeploys:
		return "OpponentDeploys"
	case TriggerDeployedFromHand:
		return "DeployedFromHand"
	case TriggerOpponentPlaysEvent:
		return "OpponentPlaysEvent"
	case TriggerOpponentActivatesBlocker:
		return "OpponentActivatesBlocker"
	case TriggerStartOfTurn:
		return "StartOfTurn"
	case TriggerEndOfTurn:
		return "EndOfTurn"
	case TriggerYourTurn:
		return "YourTurn"
	case TriggerOpponentTurn:
		return "OpponentTurn"
	case TriggerPassive:
		return "Passive"
	case TriggerDonX:
		return "DonX"
	case TriggerActivateMain:
		return "ActivateMain"
	case TriggerMain:
		return "Main"
	case TriggerCounter:
		return "Counter"
	case TriggerTrigger:
		return "Trigger"
	case TriggerImmediate:
		return "Immediate"
	case TriggerAfterBattle:
		return "AfterBattle"
	default:
		return "Unknown"
	}
}

// isContinuousTrigger reports whether a trigger kind is evaluated
// as a standing condition rather than fired on a discrete event.
func (t TriggerKind) isContinuousTrigger() bool {
	switch t {
	case TriggerYourTurn, TriggerOpponentTurn, TriggerPassive, TriggerDonX:
		return true
	default:
		return false
	}
}

// --- Target descriptors and filters ---

type TargetKind int

const (
	TargetSelf TargetKind = iota
	TargetYourCharacter
	TargetOpponentCharacter
	TargetYourLeader
	TargetOpponentLeader
	TargetYourLeaderOrCharacter
	TargetOpponentLeaderOrCharacter
	TargetOpponentStage
	TargetOpponentHand
	TargetYourField
)

func (k TargetKind) String() string {
	switch k {
	case TargetSelf:
		return "Self"
	case TargetYourCharacter:
		return "YourCharacter"
	case TargetOpponentCharacter:
		return "OpponentCharacter"
	case TargetYourLeader:
		return "YourLeader"
	case TargetOpponentLeader:
		return "OpponentLeader"
	case TargetYourLeaderOrCharacter:
		return "YourLeaderOrCharacter"
	case TargetOpponentLeaderOrCharacter:
		return "OpponentLeaderOrCharacter"
	case TargetOpponentStage:
		return "OpponentStage"
	case TargetOpponentHand:
		return "OpponentHand"
	case TargetYourField:
		return "YourField"
	default:
		return "Unknown"
	}
}

// TargetKindCombat narrows a combat target to Leader or Character,
// distinct from the broader TargetKind used by effect targeting.
type TargetKindCombat int

const (
	CombatTargetLeader TargetKindCombat = iota
	CombatTargetCharacter
)

func (k TargetKindCombat) String() string {
	if k == CombatTargetLeader {
		return "Leader"
	}
	return "Character"
}

type FilterProperty int

const (
	FilterCost FilterProperty = iota
	FilterBaseCost
	FilterBasePower
	FilterPower
	FilterName
	FilterTrait
	FilterColor
	FilterType
)

func (p FilterProperty) String() string {
	switch p {
	case FilterCost:
		return "Cost"
	case FilterBaseCost:
		return "BaseCost"
	case FilterBasePower:
		return "BasePower"
	case FilterPower:
		return "Power"
	case FilterName:
		return "Name"
	case FilterTrait:
		return "Trait"
	case FilterColor:
		return "Color"
	case FilterType:
		return "Type"
	default:
		return "Unknown"
	}
}

type FilterOperator int

const (
	OpEquals FilterOperator = iota
	OpNotEquals
	OpOrLess
	OpOrMore
	OpContains
)

func (o FilterOperator) String() string {
	switch o {
	case OpEquals:
		return "Equals"
	case OpNotEquals:
		return "NotEquals"
	case OpOrLess:
		return "OrLess"
	case OpOrMore:
		return "OrMore"
	case OpContains:
		return "Contains"
	default:
		return "Unknown"
	}
}

// Filter is a single predicate used by TargetDescriptor, DeckRevealStep
// selection, and the parser's extracted filter clauses.
type Filter struct {
	Property FilterProperty
	Operator FilterOperator
	Value    string
}

// TargetDescriptor describes a legal target set for an EffectAction.
type TargetDescriptor struct {
	Kind     TargetKind
	Min      int
	Max      int
	Filters  []Filter
	Optional bool
}

// --- Effect action type enumeration ---

type EffectActionType int

const (
	ActionNone EffectActionType = iota
	ActionDraw
	ActionKO
	ActionBuffPower
	ActionAttachDon
	ActionSearchAndSelect
	ActionReturnToHand
	ActionTrash
	ActionRest
	ActionGainLife
	ActionLoseLife
	ActionGiveKeyword
	ActionChangeCost
	ActionPreventKO
)

func (a EffectActionType) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionDraw:
		return "Draw"
	case ActionKO:
		return "KO"
	case ActionBuffPower:
		return "BuffPower"
	case ActionAttachDon:
		return "AttachDon"
	case ActionSearchAndSelect:
		return "SearchAndSelect"
	case ActionReturnToHand:
		return "ReturnToHand"
	case ActionTrash:
		return "Trash"
	case ActionRest:
		return "Rest"
	case ActionGainLife:
		return "GainLife"
	case ActionLoseLife:
		return "LoseLife"
	case ActionGiveKeyword:
		return "GiveKeyword"
	case ActionChangeCost:
		return "ChangeCost"
	case ActionPreventKO:
		return "PreventKO"
	default:
		return "Unknown"
	}
}
