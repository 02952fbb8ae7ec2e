package patterns

// Default pattern tables for the comfort-footwear catalog. These mirror the
// shipped configuration; a YAML file with the same shape can replace any set.

func defaultIdentity() []Pattern {
	return []Pattern{
		{Label: "healthcare_worker", Phrases: []string{
			"nurse", "doctor", "hospital", "clinic", "surgeon", "paramedic",
			"medical field", "health care", "healthcare",
		}},
		{Label: "teacher", Phrases: []string{
			"teacher", "classroom", "teaching", "my students", "school all day",
		}},
		{Label: "hospitality_worker", Phrases: []string{
			"chef", "kitchen", "restaurant", "waitress", "waiter", "bartender",
			"serving tables",
		}},
		{Label: "retail_worker", Phrases: []string{
			"retail", "cashier", "warehouse", "on the register", "stocking shelves",
		}},
		{Label: "senior", Phrases: []string{
			"retired", "senior citizen", "my age", "elderly", "grandmother",
			"grandfather", "grandma", "grandpa",
		}},
		{Label: "parent", Phrases: []string{
			"my kids", "my children", "toddler", "new mom", "new dad",
			"chasing kids", "mom of", "dad of",
		}},
	}
}

func defaultMotivation() []Pattern {
	return []Pattern{
		{Label: "comfort_seeker", Phrases: []string{
			"comfortable", "comfort", "comfy", "cushion", "like walking on clouds",
			"cozy",
		}},
		{Label: "pain_relief", Phrases: []string{
			"pain relief", "relieve", "relieved my", "no more pain", "pain free",
			"pain-free", "helped my pain",
		}},
		{Label: "long_hours", Phrases: []string{
			"on my feet", "long shifts", "12 hour", "all day long", "double shift",
			"10 hours", "12 hours",
		}},
		{Label: "style_conscious", Phrases: []string{
			"stylish", "cute", "look great", "compliments", "goes with everything",
			"fashionable",
		}},
		{Label: "durability_focused", Phrases: []string{
			"durable", "well made", "well-made", "held up", "lasted", "quality",
			"sturdy",
		}},
	}
}

func defaultPains() []Pattern {
	return []Pattern{
		{Label: "foot_pain", Phrases: []string{
			"foot pain", "feet hurt", "feet ache", "aching feet", "sore feet",
		}},
		{Label: "plantar_fasciitis", Phrases: []string{
			"plantar fasciitis", "plantar", "heel pain", "heel spur",
		}},
		{Label: "back_pain", Phrases: []string{
			"back pain", "my back", "lower back",
		}},
		{Label: "knee_pain", Phrases: []string{
			"knee pain", "my knees", "bad knees",
		}},
		{Label: "swelling", Phrases: []string{
			"swollen", "swelling", "wide feet", "bunions",
		}},
		{Label: "sizing_issues", Phrases: []string{
			"run small", "run large", "too narrow", "too wide", "size up",
			"size down",
		}},
	}
}

func defaultBenefits() []Pattern {
	return []Pattern{
		{Label: "all_day_comfort", Phrases: []string{
			"all day", "entire shift", "whole day", "hours without",
		}},
		{Label: "arch_support", Phrases: []string{
			"arch support", "supportive", "support my arch", "great support",
		}},
		{Label: "lightweight", Phrases: []string{
			"lightweight", "light weight", "so light", "feather",
		}},
		{Label: "easy_clean", Phrases: []string{
			"easy to clean", "wipe clean", "hose them off", "machine wash",
		}},
		{Label: "slip_resistance", Phrases: []string{
			"non slip", "non-slip", "slip resistant", "no slipping", "good grip",
		}},
		{Label: "breathable", Phrases: []string{
			"breathable", "feet stay cool", "don't sweat", "ventilation",
		}},
	}
}

func defaultTransformations() []Pattern {
	return []Pattern{
		{Label: "life_changing", Phrases: []string{
			"life changing", "life-changing", "changed my life", "game changer",
			"game-changer",
		}},
		{Label: "pain_gone", Phrases: []string{
			"pain is gone", "no longer hurt", "pain went away", "forgot about my",
		}},
		{Label: "repurchase_intent", Phrases: []string{
			"buying another", "second pair", "third pair", "will buy again",
			"ordering more", "another pair",
		}},
		{Label: "recommends_others", Phrases: []string{
			"recommend", "told all my", "told my friends", "everyone should",
			"bought one for",
		}},
	}
}

// Defaults returns the compiled-in pattern tables.
func Defaults() *Tables {
	t, err := NewTables(
		NewSet("identity_segments", defaultIdentity()),
		NewSet("motivation_segments", defaultMotivation()),
		NewSet("pain_points", defaultPains()),
		NewSet("benefits", defaultBenefits()),
		NewSet("transformations", defaultTransformations()),
	)
	if err != nil {
		// Default tables are validated by tests; a duplicate label here is a bug.
		panic(err)
	}
	return t
}
