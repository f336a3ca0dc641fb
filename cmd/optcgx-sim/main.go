// optcgx-sim drives a local two-seat match over stdin: both players
// type commands into the same terminal and every command is translated
// into an engine Action, exactly the way a transport layer would. No
// sockets; this is the demonstration and debugging harness.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/optcgx/engine/internal/catalog"
	"github.com/optcgx/engine/internal/config"
	"github.com/optcgx/engine/internal/engine"
	gamelog "github.com/optcgx/engine/internal/log"
	"github.com/optcgx/engine/internal/view"
)

func main() {
	cfg, err := config.FromFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	reg := catalog.Default()
	for _, w := range reg.Warnings() {
		fmt.Fprintf(os.Stderr, "catalog warning: %v\n", w)
	}

	deck1, err := catalog.DeckByName(cfg.DecksFile, cfg.Deck1, reg)
	if err != nil {
		fatal(err)
	}
	deck2, err := catalog.DeckByName(cfg.DecksFile, cfg.Deck2, reg)
	if err != nil {
		fatal(err)
	}

	var sink engine.EventSink
	if cfg.Verbose {
		z, zerr := zap.NewProduction()
		if zerr != nil {
			fatal(zerr)
		}
		defer z.Sync()
		sink = gamelog.EngineSink{Logger: gamelog.NewStructuredLogger(z)}
	} else {
		sink = gamelog.EngineSink{Logger: gamelog.NewTextLogger(os.Stdout)}
	}

	var rng engine.RNG
	if cfg.Seed != 0 {
		rng = engine.NewSeededRNG(cfg.Seed)
	} else {
		rng = engine.NewCryptoRNG()
	}

	g := engine.NewGameState(reg, rng, sink)
	if err := g.StartMatch(engine.NewMatchID(), deck1, deck2); err != nil {
		fatal(err)
	}

	fmt.Println("optcgx-sim — commands: <p1|p2> <verb> [args]; 'help' lists verbs")
	repl(g)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func repl(g *engine.GameState) {
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[T%d %s] > ", g.Turn, g.Phase)
		if !sc.Scan() {
			return
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return
		case "help":
			printHelp()
			continue
		case "show":
			printBoard(g)
			continue
		}

		player, verb, args, err := parseCommand(fields)
		if err != nil {
			fmt.Println(err)
			continue
		}
		act, err := buildAction(player, verb, args)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if err := g.Dispatch(act); err != nil {
			fmt.Printf("rejected: %v\n", err)
		}
		if g.Phase == engine.PhaseGameOver {
			printBoard(g)
			fmt.Println("match over")
			return
		}
	}
}

func parseCommand(fields []string) (player int, verb string, args []int, err error) {
	switch fields[0] {
	case "p1":
		player = 0
	case "p2":
		player = 1
	default:
		return 0, "", nil, fmt.Errorf("commands start with p1 or p2 (or: show, help, quit)")
	}
	if len(fields) < 2 {
		return 0, "", nil, fmt.Errorf("missing verb; try 'help'")
	}
	verb = fields[1]
	for _, f := range fields[2:] {
		n, convErr := strconv.Atoi(f)
		if convErr != nil {
			return 0, "", nil, fmt.Errorf("argument %q is not a number", f)
		}
		args = append(args, n)
	}
	return player, verb, args, nil
}

// buildAction maps a REPL verb to the Action tag set.
func buildAction(player int, verb string, args []int) (engine.Action, error) {
	a := engine.Action{ID: uuid.NewString(), PlayerID: player}
	arg := func(i int) int {
		if i < len(args) {
			return args[i]
		}
		return -1
	}
	switch verb {
	case "keep":
		a.Type = engine.ActKeepHand
	case "mulligan":
		a.Type = engine.ActMulligan
	case "play":
		a.Type = engine.ActPlayCard
		a.Data.InstanceID = arg(0)
		a.Data.FieldSlot = arg(1)
	case "attach":
		a.Type = engine.ActAttachDon
		a.Data.InstanceID = arg(0)
		a.Data.TargetID = arg(1)
	case "attack":
		a.Type = engine.ActDeclareAttack
		a.Data.InstanceID = arg(0)
		a.Data.TargetID = arg(1)
		a.Data.TargetKind = engine.CombatTargetLeader
		if arg(2) == 1 {
			a.Data.TargetKind = engine.CombatTargetCharacter
		}
	case "blocker":
		a.Type = engine.ActSelectBlocker
		a.Data.InstanceID = arg(0)
	case "passblock":
		a.Type = engine.ActPassPriority
	case "counter":
		a.Type = engine.ActUseCounter
		a.Data.InstanceID = arg(0)
	case "passcounter":
		a.Type = engine.ActPassCounter
	case "ability":
		a.Type = engine.ActActivateAbility
		a.Data.InstanceID = arg(0)
		a.Data.EffectIndex = maxInt(arg(1), 0)
	case "resolve":
		a.Type = engine.ActResolvePlayEffect
		a.Data.EffectIndex = maxInt(arg(0), 0)
		a.Data.SelectedIDs = tail(args, 1)
	case "skip":
		a.Type = engine.ActSkipPlayEffect
		a.Data.EffectIndex = maxInt(arg(0), 0)
	case "resolveattack":
		a.Type = engine.ActResolveAttackEffect
		a.Data.EffectIndex = maxInt(arg(0), 0)
		a.Data.SelectedIDs = tail(args, 1)
	case "resolveevent":
		a.Type = engine.ActResolveEventEffect
		a.Data.EffectIndex = maxInt(arg(0), 0)
		a.Data.SelectedIDs = tail(args, 1)
	case "resolvecounter":
		a.Type = engine.ActResolveCounterEffect
		a.Data.EffectIndex = maxInt(arg(0), 0)
		a.Data.SelectedIDs = tail(args, 1)
	case "hand":
		a.Type = engine.ActResolveHandSelect
		a.Data.SelectedIDs = args
	case "field":
		a.Type = engine.ActResolveFieldSelect
		a.Data.SelectedIDs = args
	case "reveal":
		a.Type = engine.ActResolveDeckReveal
		a.Data.SelectedIDs = args
	case "skipreveal":
		a.Type = engine.ActSkipDeckReveal
	case "choose":
		a.Type = engine.ActResolveChoice
		a.Data.ChoiceIndex = maxInt(arg(0), 0)
	case "paycost":
		a.Type = engine.ActPayAdditionalCost
	case "skipcost":
		a.Type = engine.ActSkipAdditionalCost
	case "end":
		a.Type = engine.ActEndTurn
	default:
		return engine.Action{}, fmt.Errorf("unknown verb %q; try 'help'", verb)
	}
	return a, nil
}

func tail(args []int, from int) []int {
	if from >= len(args) {
		return nil
	}
	return args[from:]
}

func maxInt(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

func printHelp() {
	fmt.Println("verbs (prefix with p1 or p2):")
	fmt.Println("  keep | mulligan")
	fmt.Println("  play <hand-id> [slot]       attach <don-id> <target-id>")
	fmt.Println("  attack <id> <target-id> [1=character]")
	fmt.Println("  blocker <id> | passblock    counter <hand-id> | passcounter")
	fmt.Println("  ability <id> [effect]       resolve/skip <effect> [targets...]")
	fmt.Println("  hand/field/reveal <ids...>  choose <option>  paycost | skipcost")
	fmt.Println("  end | show | quit")
}

func printBoard(g *engine.GameState) {
	for i := 0; i < 2; i++ {
		sv := view.Build(g, i)
		you := sv.You
		fmt.Printf("p%d life=%d hand=%d deck=%d don=%d/%d\n",
			i+1, you.Life, len(you.Hand), len(you.Deck), len(you.DonArea), you.DonDeckCount)
		if you.Leader != nil {
			fmt.Printf("  leader %s [%s] power=%d id=%s\n", you.Leader.CardID, you.Leader.State, you.Leader.Power, you.Leader.InstanceID)
		}
		for _, c := range you.Field {
			fmt.Printf("  field  %s [%s] power=%d id=%s\n", c.CardID, c.State, c.Power, c.InstanceID)
		}
		if you.Stage != nil {
			fmt.Printf("  stage  %s id=%s\n", you.Stage.CardID, you.Stage.InstanceID)
		}
		for _, c := range you.Hand {
			fmt.Printf("  hand   %s id=%s\n", c.CardID, c.InstanceID)
		}
	}
	if sv := view.Build(g, 0); sv.Decision != nil {
		fmt.Printf("pending: %s for p%d\n", sv.Decision.Kind, sv.Decision.PlayerID+1)
	}
}
