package engine

// ActionType is the closed tag set the ActionDispatcher maps to
// manager methods.
type ActionType int

const (
	ActPreGameSelect ActionType = iota
	ActSkipPreGame
	ActKeepHand
	ActMulligan
	ActPlayCard
	ActAttachDon
	ActDeclareAttack
	ActResolveAttackEffect
	ActSkipAttackEffect
	ActResolvePlayEffect
	ActSkipPlayEffect
	ActResolveActivateEffect
	ActSkipActivateEffect
	ActUseCounter
	ActPassCounter
	ActSelectBlocker
	ActPassPriority
	ActResolveCombat
	ActEndTurn
	ActTriggerLife
	ActActivateAbility
	ActResolveEventEffect
	ActSkipEventEffect
	ActPayAdditionalCost
	ActSkipAdditionalCost
	ActResolveCounterEffect
	ActSkipCounterEffect
	ActResolveDeckReveal
	ActSkipDeckReveal
	ActResolveHandSelect
	ActSkipHandSelect
	ActResolveFieldSelect
	ActResolveChoice
)

func (a ActionType) String() string {
	names := [...]string{
		"PreGameSelect", "SkipPreGame", "KeepHand", "Mulligan", "PlayCard",
		"AttachDon", "DeclareAttack", "ResolveAttackEffect", "SkipAttackEffect",
		"ResolvePlayEffect", "SkipPlayEffect", "ResolveActivateEffect",
		"SkipActivateEffect", "UseCounter", "PassCounter", "SelectBlocker",
		"PassPriority", "ResolveCombat", "EndTurn", "TriggerLife",
		"ActivateAbility", "ResolveEventEffect", "SkipEventEffect",
		"PayAdditionalCost", "SkipAdditionalCost", "ResolveCounterEffect",
		"SkipCounterEffect", "ResolveDeckReveal", "SkipDeckReveal",
		"ResolveHandSelect", "SkipHandSelect", "ResolveFieldSelect",
		"ResolveChoice",
	}
	if int(a) >= 0 && int(a) < len(names) {
		return names[a]
	}
	return "Unknown"
}

// ActionData is a variant keyed on ActionType; only the fields
// relevant to the tag are populated.
type ActionData struct {
	InstanceID  int   // card/blocker/attacker being acted on
	TargetID    int   // combat target, activate-effect target root
	TargetKind  TargetKindCombat
	FieldSlot   int // destination field slot for PlayCard
	Candidates  []string
	Selected    []string
	SelectedIDs []int
	ChoiceIndex int
	EffectIndex int // which effect on the card is being activated
}

// Action is the inbound, client-supplied record; `id` is used for
// idempotency.
type Action struct {
	ID        string
	Type      ActionType
	PlayerID  int
	Timestamp int64
	Data      ActionData
}
