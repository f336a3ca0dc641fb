package catalog

import "github.com/optcgx/engine/internal/engine"

func intp(v int) *int { return &v }

// AllCards returns the built-in card set this repository ships for
// demonstration and tests: two rival Leaders and the Characters,
// Events, and a Stage their decks run. Names and text are original,
// not reproductions of any printed card.

func AllCards() []*engine.CardDefinition {
	return []*engine.CardDefinition{
		leaderCrimsonAdmiral(),
		leaderTidecallerMomo(),

		charDeckhandRook(),
		charPowderkegGunner(),
		charIroncladSentinel(),
		charTidereaverScout(),
		charLanternbearerMonk(),
		charStormcallerPriestess(),
		charSalvageDiver(),
		charEmberwrightSmith(),

		eventSuddenSquall(),
		eventLastStand(),

		stageTheDriftingDock(),
	}
}

func leaderCrimsonAdmiral() *engine.CardDefinition {
	return &engine.CardDefinition{
		ID:       "LDR-001",
		Name:     "Crimson Admiral Gage",
		Category: engine.CategoryLeader,
		Colors:   []engine.Color{engine.ColorRed},
		Power:    intp(5000),
		Traits:   []string{"Navy", "Officer"},
		Life:     5,
		Text:     "[Start of Game] Look at the top 5 cards of your deck, reveal up to 1 <Navy> Character card, add it to your hand, then shuffle the rest back.",
		Effects: []*engine.EffectDefinition{
			{
				ID:          "LDR-001-E1",
				Trigger:     engine.TriggerImmediate,
				Description: "start-of-game",
				Actions: []engine.EffectAction{
					{
						Type:          engine.ActionSearchAndSelect,
						LookCount:     5,
						MaxSelections: 1,
						TraitFilter:   "Navy",
						SelectAction:  engine.ActionNone,
					},
				},
			},
			{
				ID:          "LDR-001-E2",
				Trigger:     engine.TriggerYourTurn,
				Description: "Your Characters with <Navy> get +1000 power on your turn.",
				Actions: []engine.EffectAction{
					{
						Type:     engine.ActionBuffPower,
						Value:    intp(1000),
						Duration: &engine.BuffDuration{Kind: engine.DurationStageContinuous},
						Target: &engine.TargetDescriptor{
							Kind:    engine.TargetYourCharacter,
							Min:     0,
							Max:     0,
							Filters: []engine.Filter{{Property: engine.FilterTrait, Operator: engine.OpEquals, Value: "Navy"}},
						},
					},
				},
			},
		},
	}
}

func leaderTidecallerMomo() *engine.CardDefinition {
	return &engine.CardDefinition{
		ID:       "LDR-002",
		Name:     "Tidecaller Momo",
		Category: engine.CategoryLeader,
		Colors:   []engine.Color{engine.ColorBlue},
		Power:    intp(4000),
		Traits:   []string{"Fishman", "Mystic"},
		Life:     5,
		Keywords: map[engine.Keyword]bool{},
		Text:     "[Your Turn] DON!!x1: This Leader gains +1000 power.",
		Effects: []*engine.EffectDefinition{
			{
				ID:          "LDR-002-E1",
				Trigger:     engine.TriggerDonX,
				Conditions:  []engine.Condition{{MinDonAttached: 1}},
				Description: "DON!!x1: +1000 power.",
				Actions: []engine.EffectAction{
					{
						Type:     engine.ActionBuffPower,
						Value:    intp(1000),
						Duration: &engine.BuffDuration{Kind: engine.DurationStageContinuous},
						Target:   &engine.TargetDescriptor{Kind: engine.TargetSelf},
					},
				},
			},
		},
	}
}

func charDeckhandRook() *engine.CardDefinition {
	p := 4000
	c := 1000
	return &engine.CardDefinition{
		ID:       "CHR-010",
		Name:     "Deckhand Rook",
		Category: engine.CategoryCharacter,
		Colors:   []engine.Color{engine.ColorRed},
		Cost:     2,
		Power:    &p,
		Counter:  &c,
		Traits:   []string{"Navy"},
		Text:     "No effect.",
	}
}

func charPowderkegGunner() *engine.CardDefinition {
	p := 5000
	return &engine.CardDefinition{
		ID:       "CHR-011",
		Name:     "Powderkeg Gunner",
		Category: engine.CategoryCharacter,
		Colors:   []engine.Color{engine.ColorRed},
		Cost:     4,
		Power:    &p,
		Traits:   []string{"Navy", "Gunner"},
		Keywords: map[engine.Keyword]bool{engine.KeywordRush: true},
		Text:     "[On Play] Rest up to 1 of your opponent's Characters with a cost of 3 or less.",
		Effects: []*engine.EffectDefinition{
			{
				ID:          "CHR-011-E1",
				Trigger:     engine.TriggerOnPlay,
				Optional:    true,
				Description: "Rest an opposing Character with cost 3 or less.",
				Actions: []engine.EffectAction{
					{
						Type: engine.ActionRest,
						Target: &engine.TargetDescriptor{
							Kind: engine.TargetOpponentCharacter,
							Min:  1,
							Max:  1,
							Filters: []engine.Filter{
								{Property: engine.FilterBaseCost, Operator: engine.OpOrLess, Value: "3"},
							},
							Optional: true,
						},
					},
				},
			},
		},
	}
}

func charIroncladSentinel() *engine.CardDefinition {
	p := 3000
	c := 2000
	return &engine.CardDefinition{
		ID:       "CHR-012",
		Name:     "Ironclad Sentinel",
		Category: engine.CategoryCharacter,
		Colors:   []engine.Color{engine.ColorRed},
		Cost:     3,
		Power:    &p,
		Counter:  &c,
		Traits:   []string{"Navy"},
		Keywords: map[engine.Keyword]bool{engine.KeywordBlocker: true},
		Text:     "[Blocker]",
	}
}

func charTidereaverScout() *engine.CardDefinition {
	p := 2000
	c := 1000
	return &engine.CardDefinition{
		ID:       "CHR-020",
		Name:     "Tidereaver Scout",
		Category: engine.CategoryCharacter,
		Colors:   []engine.Color{engine.ColorBlue},
		Cost:     1,
		Power:    &p,
		Counter:  &c,
		Traits:   []string{"Fishman"},
		Text:     "[On K.O.] Draw 1 card.",
		Effects: []*engine.EffectDefinition{
			{
				ID:          "CHR-020-E1",
				Trigger:     engine.TriggerOnKO,
				Description: "Draw 1 card.",
				Actions:     []engine.EffectAction{{Type: engine.ActionDraw, Value: intp(1)}},
			},
		},
	}
}

func charLanternbearerMonk() *engine.CardDefinition {
	p := 6000
	return &engine.CardDefinition{
		ID:       "CHR-021",
		Name:     "Lanternbearer Monk",
		Category: engine.CategoryCharacter,
		Colors:   []engine.Color{engine.ColorBlue},
		Cost:     6,
		Power:    &p,
		Traits:   []string{"Mystic"},
		Text:     "[On Play] You may rest 1 of your DON!! cards: give up to 1 of your Characters +2000 power during this turn.",
		Effects: []*engine.EffectDefinition{
			{
				ID:       "CHR-021-E1",
				Trigger:  engine.TriggerOnPlay,
				Optional: true,
				Costs: [][]engine.CostSpec{
					{{Kind: engine.CostRestDon, Amount: 1, Optional: true}},
				},
				Description: "Give a Character +2000 power this turn.",
				Actions: []engine.EffectAction{
					{
						Type:     engine.ActionBuffPower,
						Value:    intp(2000),
						Duration: &engine.BuffDuration{Kind: engine.DurationThisTurn},
						Target:   &engine.TargetDescriptor{Kind: engine.TargetYourCharacter, Min: 1, Max: 1, Optional: true},
					},
				},
			},
		},
	}
}

func charStormcallerPriestess() *engine.CardDefinition {
	p := 5000
	c := 1000
	return &engine.CardDefinition{
		ID:       "CHR-022",
		Name:     "Stormcaller Priestess",
		Category: engine.CategoryCharacter,
		Colors:   []engine.Color{engine.ColorBlue},
		Cost:     5,
		Power:    &p,
		Counter:  &c,
		Traits:   []string{"Mystic"},
		Keywords: map[engine.Keyword]bool{engine.KeywordDoubleAttack: true},
		Text:     "[Double Attack]",
	}
}

func charSalvageDiver() *engine.CardDefinition {
	p := 3000
	return &engine.CardDefinition{
		ID:       "CHR-030",
		Name:     "Salvage Diver",
		Category: engine.CategoryCharacter,
		Colors:   []engine.Color{engine.ColorGreen},
		Cost:     2,
		Power:    &p,
		Traits:   []string{"Fishman"},
		Text:     "[Trigger] Add this card to your hand.",
		Effects: []*engine.EffectDefinition{
			{
				ID:          "CHR-030-E1",
				Trigger:     engine.TriggerTrigger,
				Optional:    true,
				Description: "Add this card to hand instead of playing it from Life.",
				Actions:     []engine.EffectAction{{Type: engine.ActionNone}},
			},
		},
	}
}

func charEmberwrightSmith() *engine.CardDefinition {
	p := 4000
	return &engine.CardDefinition{
		ID:       "CHR-031",
		Name:     "Emberwright Smith",
		Category: engine.CategoryCharacter,
		Colors:   []engine.Color{engine.ColorRed},
		Cost:     3,
		Power:    &p,
		Traits:   []string{"Navy"},
		Text:     "[Counter] +1000 power.",
		Effects: []*engine.EffectDefinition{
			{
				ID:          "CHR-031-E1",
				Trigger:     engine.TriggerCounter,
				Description: "+1000 power during this battle.",
				Actions: []engine.EffectAction{
					{
						Type:     engine.ActionBuffPower,
						Value:    intp(1000),
						Duration: &engine.BuffDuration{Kind: engine.DurationThisBattle},
						Target:   &engine.TargetDescriptor{Kind: engine.TargetSelf},
					},
				},
			},
		},
	}
}

func eventSuddenSquall() *engine.CardDefinition {
	return &engine.CardDefinition{
		ID:       "EVT-001",
		Name:     "Sudden Squall",
		Category: engine.CategoryEvent,
		Colors:   []engine.Color{engine.ColorBlue},
		Cost:     1,
		Text:     "[Main] K.O. up to 1 of your opponent's Characters with a power of 4000 or less.",
		Effects: []*engine.EffectDefinition{
			{
				ID:          "EVT-001-E1",
				Trigger:     engine.TriggerMain,
				Description: "K.O. an opposing Character with power 4000 or less.",
				Actions: []engine.EffectAction{
					{
						Type: engine.ActionKO,
						Target: &engine.TargetDescriptor{
							Kind: engine.TargetOpponentCharacter,
							Min:  1,
							Max:  1,
							Filters: []engine.Filter{
								{Property: engine.FilterPower, Operator: engine.OpOrLess, Value: "4000"},
							},
						},
					},
				},
			},
		},
	}
}

func eventLastStand() *engine.CardDefinition {
	return &engine.CardDefinition{
		ID:       "EVT-002",
		Name:     "Last Stand",
		Category: engine.CategoryEvent,
		Colors:   []engine.Color{engine.ColorRed},
		Cost:     2,
		Text:     "[Main] Give up to 1 of your Characters +3000 power during this turn. This Event cannot be K.O.'d in response.",
		Effects: []*engine.EffectDefinition{
			{
				ID:          "EVT-002-E1",
				Trigger:     engine.TriggerMain,
				Description: "Give a Character +3000 power this turn.",
				Actions: []engine.EffectAction{
					{
						Type:     engine.ActionBuffPower,
						Value:    intp(3000),
						Duration: &engine.BuffDuration{Kind: engine.DurationThisTurn},
						Target:   &engine.TargetDescriptor{Kind: engine.TargetYourCharacter, Min: 1, Max: 1},
					},
				},
			},
		},
	}
}

func stageTheDriftingDock() *engine.CardDefinition {
	return &engine.CardDefinition{
		ID:       "STG-001",
		Name:     "The Drifting Dock",
		Category: engine.CategoryStage,
		Colors:   []engine.Color{engine.ColorRed},
		Cost:     2,
		Text:     "Your <Navy> Characters gain +1000 power while this Stage is in play.",
		Effects: []*engine.EffectDefinition{
			{
				ID:          "STG-001-E1",
				Trigger:     engine.TriggerPassive,
				Description: "Your Navy Characters get +1000 power while this Stage is in play.",
				Actions: []engine.EffectAction{
					{
						Type:     engine.ActionBuffPower,
						Value:    intp(1000),
						Duration: &engine.BuffDuration{Kind: engine.DurationStageContinuous},
						Target: &engine.TargetDescriptor{
							Kind:    engine.TargetYourCharacter,
							Filters: []engine.Filter{{Property: engine.FilterTrait, Operator: engine.OpEquals, Value: "Navy"}},
						},
					},
				},
			},
		},
	}
}
