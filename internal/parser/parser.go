// Package parser compiles printed card text into the structured effect
// representation the engine executes. It is a hand-written pattern
// extractor over a small, fixed vocabulary of trigger tags, cost
// clauses, filters, and verbs — not a general grammar. It is the
// fallback path for catalog rows that ship no pre-compiled effect list;
// re-parsing the same text always yields the same definitions.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/optcgx/engine/internal/engine"
)

// triggerTags maps a leading bracketed tag to its trigger kind. Order
// matters: longer tags first so "[Activate: Main]" never matches as
// "[Main]".
var triggerTags = []struct {
	tag  string
	kind engine.TriggerKind
}{
	{"[Activate: Main]", engine.TriggerActivateMain},
	{"[When Attacking]", engine.TriggerOnAttack},
	{"[On Attack]", engine.TriggerOnAttack},
	{"[On Block]", engine.TriggerOnBlock},
	{"[On K.O.]", engine.TriggerOnKO},
	{"[On Play]", engine.TriggerOnPlay},
	{"[End of Your Turn]", engine.TriggerEndOfTurn},
	{"[Opponent's Turn]", engine.TriggerOpponentTurn},
	{"[Your Turn]", engine.TriggerYourTurn},
	{"[Trigger]", engine.TriggerTrigger},
	{"[Counter]", engine.TriggerCounter},
	{"[Main]", engine.TriggerMain},
}

// keywordTags are bracketed tags that grant keywords rather than
// effects; a clause holding only these compiles to nothing, since
// keywords live on CardDefinition.Keywords.
var keywordTags = []string{
	"[Blocker]", "[Rush]", "[Double Attack]", "[Banish]", "[Unblockable]",
}

var (
	donXRe        = regexp.MustCompile(`^\[?DON!!\s*x\s*(\d+)\]?:?\s*`)
	oncePerTurnRe = regexp.MustCompile(`(?i)^\[?once per turn\]?:?\s*`)

	costFilterRe  = regexp.MustCompile(`(?i)with a (base )?cost of (\d+) or (less|more)`)
	powerFilterRe = regexp.MustCompile(`(?i)with a (base )?power of (\d+) or (less|more)`)
	traitRe       = regexp.MustCompile(`[{<]([^}>]+)[}>]`)
	otherThanRe   = regexp.MustCompile(`other than \[([^\]]+)\]`)
	namedRe       = regexp.MustCompile(`\[([^\]]+)\]`)

	upToRe  = regexp.MustCompile(`(?i)up to (\d+)`)
	exactRe = regexp.MustCompile(`(?i)(\d+) of your`)

	drawRe       = regexp.MustCompile(`(?i)draw (\d+) cards?`)
	barePowerRe  = regexp.MustCompile(`(?i)^\+(\d+) power`)
	plusPowerRe  = regexp.MustCompile(`(?i)(?:gains?|gets?|give[^.]*?) \+(\d+) power`)
	minusPowerRe = regexp.MustCompile(`(?i)(?:gains?|gets?|give[^.]*?) -(\d+) power`)
	minusCostRe  = regexp.MustCompile(`(?i)-(\d+) cost`)
	damageRe     = regexp.MustCompile(`(?i)takes? (\d+) damage`)

	lookRe   = regexp.MustCompile(`(?i)look at (?:the top )?(\d+) cards? (?:from the top )?of your deck`)
	revealRe = regexp.MustCompile(`(?i)reveal up to (\d+)`)

	startOfGameRe = regexp.MustCompile(`(?i)at the start of the game,? you may reveal up to (\d+)`)

	restDonCostRe   = regexp.MustCompile(`(?i)rest (\d+) (?:of your )?DON!!`)
	returnDonRe     = regexp.MustCompile(`(?i)return (\d+) DON!!`)
	trashHandCostRe = regexp.MustCompile(`(?i)trash (\d+) cards? from your hand`)
	restSelfRe      = regexp.MustCompile(`(?i)rest this (?:card|character|leader)`)
)

// Compile parses printed card text into an effect list. Text the
// extractor cannot make sense of (a trigger tag followed by no
// recognizable action) returns a *engine.ParserFailure; the caller
// loads the card with an empty effect list and the printed stats still
// function.
func Compile(cardID, text string) ([]*engine.EffectDefinition, error) {
	var defs []*engine.EffectDefinition
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		def, err := compileClause(cardID, len(defs), line)
		if err != nil {
			return nil, err
		}
		if def != nil {
			defs = append(defs, def)
		}
	}
	return defs, nil
}

// compileClause parses one line of card text. Returns (nil, nil) for
// keyword-only or effect-free lines.
func compileClause(cardID string, idx int, line string) (*engine.EffectDefinition, error) {
	if d := compileStartOfGame(cardID, idx, line); d != nil {
		return d, nil
	}

	rest := line
	trigger := engine.TriggerKind(-1)
	oncePerTurn := false
	var conditions []engine.Condition

	for {
		rest = strings.TrimSpace(rest)
		if oncePerTurnRe.MatchString(rest) {
			oncePerTurn = true
			rest = oncePerTurnRe.ReplaceAllString(rest, "")
			continue
		}
		if m := donXRe.FindStringSubmatch(rest); m != nil {
			k, _ := strconv.Atoi(m[1])
			trigger = engine.TriggerDonX
			conditions = append(conditions, engine.Condition{MinDonAttached: k})
			rest = rest[len(m[0]):]
			continue
		}
		matched := false
		for _, tt := range triggerTags {
			if strings.HasPrefix(rest, tt.tag) {
				// a DON!!-gated clause keeps DonX as its trigger: the
				// threshold is the stricter standing condition.
				if trigger != engine.TriggerDonX {
					trigger = tt.kind
				}
				rest = strings.TrimSpace(rest[len(tt.tag):])
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		stripped := false
		for _, kt := range keywordTags {
			if strings.HasPrefix(rest, kt) {
				rest = strings.TrimSpace(rest[len(kt):])
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}

	if trigger == engine.TriggerKind(-1) {
		// no trigger tag: keyword-only or flavor line, nothing to compile.
		return nil, nil
	}
	if rest == "" {
		return nil, nil
	}

	costs, body := extractCosts(rest)
	optional := strings.Contains(strings.ToLower(body), "you may")

	var actions []engine.EffectAction
	if a, ok := compileSearchAndSelect(body); ok {
		actions = append(actions, a)
	} else {
		for _, sentence := range splitSentences(body) {
			if a, ok := compileSentence(trigger, sentence); ok {
				actions = append(actions, a)
			}
		}
	}
	if len(actions) == 0 {
		return nil, &engine.ParserFailure{
			CardID: cardID,
			Text:   line,
			Reason: "no recognizable action in effect clause",
		}
	}

	def := &engine.EffectDefinition{
		ID:          fmt.Sprintf("%s-P%d", cardID, idx+1),
		Trigger:     trigger,
		OncePerTurn: oncePerTurn,
		Conditions:  conditions,
		Actions:     actions,
		Description: rest,
		Optional:    optional || trigger == engine.TriggerTrigger,
	}
	if len(costs) > 0 {
		def.Costs = [][]engine.CostSpec{costs}
	}
	return def, nil
}

// compileStartOfGame recognizes the Leader pre-game search directive
// and stores it in the shape the phase machine looks for: an
// Immediate-trigger effect tagged "start-of-game" whose sole action is
// a SearchAndSelect.
func compileStartOfGame(cardID string, idx int, line string) *engine.EffectDefinition {
	isStartTag := strings.HasPrefix(line, "[Start of Game]")
	m := startOfGameRe.FindStringSubmatch(line)
	if !isStartTag && m == nil {
		return nil
	}
	count := 1
	if m != nil {
		count, _ = strconv.Atoi(m[1])
	} else if rm := revealRe.FindStringSubmatch(line); rm != nil {
		count, _ = strconv.Atoi(rm[1])
	}
	look := 5
	if lm := lookRe.FindStringSubmatch(line); lm != nil {
		look, _ = strconv.Atoi(lm[1])
	}
	trait := ""
	if tm := traitRe.FindStringSubmatch(line); tm != nil {
		trait = tm[1]
	}
	return &engine.EffectDefinition{
		ID:          fmt.Sprintf("%s-P%d", cardID, idx+1),
		Trigger:     engine.TriggerImmediate,
		Description: "start-of-game",
		Optional:    strings.Contains(strings.ToLower(line), "you may"),
		Actions: []engine.EffectAction{{
			Type:          engine.ActionSearchAndSelect,
			LookCount:     look,
			MaxSelections: count,
			TraitFilter:   trait,
			SelectAction:  engine.ActionNone,
		}},
	}
}

// extractCosts splits a "cost: effect" clause. Only a prefix that
// actually names a payable resource is treated as a cost; any other
// colon stays part of the effect body.
func extractCosts(clause string) ([]engine.CostSpec, string) {
	i := strings.Index(clause, ":")
	if i < 0 {
		return nil, clause
	}
	prefix := clause[:i]
	body := strings.TrimSpace(clause[i+1:])
	optional := strings.Contains(strings.ToLower(prefix), "you may")

	var costs []engine.CostSpec
	if m := restDonCostRe.FindStringSubmatch(prefix); m != nil {
		n, _ := strconv.Atoi(m[1])
		costs = append(costs, engine.CostSpec{Kind: engine.CostRestDon, Amount: n, Optional: optional})
	}
	if m := returnDonRe.FindStringSubmatch(prefix); m != nil {
		n, _ := strconv.Atoi(m[1])
		costs = append(costs, engine.CostSpec{Kind: engine.CostReturnDon, Amount: n, Optional: optional})
	}
	if m := trashHandCostRe.FindStringSubmatch(prefix); m != nil {
		n, _ := strconv.Atoi(m[1])
		costs = append(costs, engine.CostSpec{Kind: engine.CostTrashFromHand, Amount: n, Optional: optional})
	}
	if restSelfRe.MatchString(prefix) {
		costs = append(costs, engine.CostSpec{Kind: engine.CostRestSelf, Optional: optional})
	}
	if len(costs) == 0 {
		return nil, clause
	}
	return costs, body
}

// compileSearchAndSelect recognizes the "Look at X cards from the top
// of your deck. Reveal up to Y ... and add it to your hand. Then, ..."
// pattern.
func compileSearchAndSelect(body string) (engine.EffectAction, bool) {
	lm := lookRe.FindStringSubmatch(body)
	if lm == nil {
		return engine.EffectAction{}, false
	}
	look, _ := strconv.Atoi(lm[1])
	a := engine.EffectAction{
		Type:            engine.ActionSearchAndSelect,
		LookCount:       look,
		MaxSelections:   1,
		SelectAction:    engine.ActionReturnToHand,
		RemainderAction: remainderAction(body),
	}
	if rm := revealRe.FindStringSubmatch(body); rm != nil {
		a.MaxSelections, _ = strconv.Atoi(rm[1])
	}
	if tm := traitRe.FindStringSubmatch(body); tm != nil {
		a.TraitFilter = tm[1]
	}
	for _, om := range otherThanRe.FindAllStringSubmatch(body, -1) {
		a.ExcludeNames = append(a.ExcludeNames, om[1])
	}
	if i := strings.Index(body, "Then, "); i >= 0 {
		then := body[i+len("Then, "):]
		// "Then, trash the rest" is the remainder handling, already
		// captured above — only a distinct follow-up becomes a child.
		if !strings.Contains(strings.ToLower(then), "the rest") {
			if child, ok := compileSentence(engine.TriggerImmediate, then); ok {
				a.Children = append(a.Children, child)
			}
		}
	}
	return a, true
}

// remainderAction decides what happens to the looked-at cards the
// player does not select.
func remainderAction(body string) engine.EffectActionType {
	lower := strings.ToLower(body)
	if strings.Contains(lower, "trash the rest") {
		return engine.ActionTrash
	}
	// "place the rest at the bottom of your deck" and silence both
	// default to returning the remainder to the deck.
	return engine.ActionNone
}

// compileSentence extracts one verb phrase into an EffectAction.
func compileSentence(trigger engine.TriggerKind, s string) (engine.EffectAction, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return engine.EffectAction{}, false
	}
	lower := strings.ToLower(s)

	if m := drawRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return engine.EffectAction{Type: engine.ActionDraw, Value: intp(n)}, true
	}
	if strings.Contains(lower, "add this card to your hand") {
		// the default life-trigger behavior; nothing extra to execute.
		return engine.EffectAction{Type: engine.ActionNone}, true
	}
	if m := barePowerRe.FindStringSubmatch(s); m != nil {
		// shorthand counter text ("+1000 power.") buffs the card itself.
		n, _ := strconv.Atoi(m[1])
		return engine.EffectAction{
			Type:     engine.ActionBuffPower,
			Value:    intp(n),
			Duration: buffDuration(trigger, lower),
			Target:   &engine.TargetDescriptor{Kind: engine.TargetSelf},
		}, true
	}
	if m := plusPowerRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return engine.EffectAction{
			Type:     engine.ActionBuffPower,
			Value:    intp(n),
			Duration: buffDuration(trigger, lower),
			Target:   parseTarget(s),
		}, true
	}
	if m := minusPowerRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return engine.EffectAction{
			Type:     engine.ActionBuffPower,
			Value:    intp(-n),
			Duration: buffDuration(trigger, lower),
			Target:   parseTarget(s),
		}, true
	}
	if m := minusCostRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return engine.EffectAction{Type: engine.ActionChangeCost, Value: intp(-n), Target: parseTarget(s)}, true
	}
	if m := damageRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return engine.EffectAction{Type: engine.ActionLoseLife, Value: intp(n), Target: parseTarget(s)}, true
	}
	if strings.Contains(lower, "k.o.") {
		return engine.EffectAction{Type: engine.ActionKO, Target: parseTarget(s)}, true
	}
	if strings.Contains(lower, "return") && strings.Contains(lower, "hand") {
		return engine.EffectAction{Type: engine.ActionReturnToHand, Target: parseTarget(s)}, true
	}
	if strings.Contains(lower, "rest") && !strings.Contains(lower, "the rest") {
		return engine.EffectAction{Type: engine.ActionRest, Target: parseTarget(s)}, true
	}
	if strings.Contains(lower, "trash") {
		return engine.EffectAction{Type: engine.ActionTrash, Target: parseTarget(s)}, true
	}
	return engine.EffectAction{}, false
}

// buffDuration picks a duration from the sentence's tense, falling
// back on the trigger kind: counters buff for the battle, continuous
// triggers for as long as they hold, everything else for the turn.
func buffDuration(trigger engine.TriggerKind, lower string) *engine.BuffDuration {
	switch {
	case strings.Contains(lower, "during this battle"):
		return &engine.BuffDuration{Kind: engine.DurationThisBattle}
	case strings.Contains(lower, "during this turn"):
		return &engine.BuffDuration{Kind: engine.DurationThisTurn}
	}
	switch trigger {
	case engine.TriggerCounter:
		return &engine.BuffDuration{Kind: engine.DurationThisBattle}
	case engine.TriggerYourTurn, engine.TriggerOpponentTurn, engine.TriggerPassive, engine.TriggerDonX:
		return &engine.BuffDuration{Kind: engine.DurationStageContinuous}
	default:
		return &engine.BuffDuration{Kind: engine.DurationThisTurn}
	}
}

// parseTarget extracts a target descriptor from a sentence, or nil for
// untargeted phrasing.
func parseTarget(s string) *engine.TargetDescriptor {
	lower := strings.ToLower(s)
	var kind engine.TargetKind
	switch {
	case strings.Contains(lower, "this leader"), strings.Contains(lower, "this character"), strings.Contains(lower, "this card"):
		kind = engine.TargetSelf
	case strings.Contains(lower, "opponent's leader or character"):
		kind = engine.TargetOpponentLeaderOrCharacter
	case strings.Contains(lower, "opponent's stage"):
		kind = engine.TargetOpponentStage
	case strings.Contains(lower, "opponent's leader"):
		kind = engine.TargetOpponentLeader
	case strings.Contains(lower, "opponent's character"):
		kind = engine.TargetOpponentCharacter
	case strings.Contains(lower, "your leader or character"):
		kind = engine.TargetYourLeaderOrCharacter
	case strings.Contains(lower, "your leader"):
		kind = engine.TargetYourLeader
	case strings.Contains(lower, "your character"):
		kind = engine.TargetYourCharacter
	default:
		return nil
	}

	t := &engine.TargetDescriptor{Kind: kind, Min: 1, Max: 1, Filters: parseFilters(s)}
	if m := upToRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		t.Min, t.Max, t.Optional = 0, n, true
	} else if m := exactRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		t.Min, t.Max = n, n
	}
	return t
}

// parseFilters extracts the cost/power/trait/name predicates of a
// sentence.
func parseFilters(s string) []engine.Filter {
	var out []engine.Filter
	if m := costFilterRe.FindStringSubmatch(s); m != nil {
		prop := engine.FilterCost
		if m[1] != "" {
			prop = engine.FilterBaseCost
		}
		out = append(out, engine.Filter{Property: prop, Operator: orLessMore(m[3]), Value: m[2]})
	}
	if m := powerFilterRe.FindStringSubmatch(s); m != nil {
		prop := engine.FilterPower
		if m[1] != "" {
			prop = engine.FilterBasePower
		}
		out = append(out, engine.Filter{Property: prop, Operator: orLessMore(m[3]), Value: m[2]})
	}
	if m := traitRe.FindStringSubmatch(s); m != nil {
		out = append(out, engine.Filter{Property: engine.FilterTrait, Operator: engine.OpEquals, Value: m[1]})
	}
	excluded := map[string]bool{}
	for _, m := range otherThanRe.FindAllStringSubmatch(s, -1) {
		excluded[m[1]] = true
		out = append(out, engine.Filter{Property: engine.FilterName, Operator: engine.OpNotEquals, Value: m[1]})
	}
	for _, m := range namedRe.FindAllStringSubmatch(s, -1) {
		if knownTag(m[0]) || excluded[m[1]] {
			continue
		}
		out = append(out, engine.Filter{Property: engine.FilterName, Operator: engine.OpEquals, Value: m[1]})
	}
	return out
}

func orLessMore(word string) engine.FilterOperator {
	if strings.EqualFold(word, "more") {
		return engine.OpOrMore
	}
	return engine.OpOrLess
}

func knownTag(tag string) bool {
	for _, tt := range triggerTags {
		if tag == tt.tag {
			return true
		}
	}
	for _, kt := range keywordTags {
		if tag == kt {
			return true
		}
	}
	if donXRe.MatchString(tag) || oncePerTurnRe.MatchString(tag) {
		return true
	}
	return tag == "[Start of Game]"
}

// splitSentences breaks a clause body on sentence boundaries. "K.O."
// is masked first so its periods don't read as boundaries.
func splitSentences(body string) []string {
	const koMask = "K\x00O\x00"
	masked := strings.ReplaceAll(body, "K.O.", koMask)
	parts := strings.Split(masked, ". ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimSuffix(p, "."))
		if p == "" {
			continue
		}
		out = append(out, strings.ReplaceAll(p, koMask, "K.O."))
	}
	return out
}

func intp(v int) *int { return &v }
