package policy

import (
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Constructor builds a policy. Randomised policies draw from rng.
type Constructor func(rng *rand.Rand) HistoryPolicy

var registry = map[string]Constructor{
	"always_cooperate":         func(*rand.Rand) HistoryPolicy { return AlwaysCooperate{} },
	"always_defect":            func(*rand.Rand) HistoryPolicy { return AlwaysDefect{} },
	"tit_for_tat":              func(*rand.Rand) HistoryPolicy { return TitForTat{} },
	"reverse_tit_for_tat":      func(*rand.Rand) HistoryPolicy { return ReverseTitForTat{} },
	"switch_after_two":         func(*rand.Rand) HistoryPolicy { return SwitchAfterTwo{} },
	"switch_on_two_subsequent": func(*rand.Rand) HistoryPolicy { return SwitchOnTwoSubsequent{} },
	"forgive_after_two":        func(*rand.Rand) HistoryPolicy { return ForgiveAfterTwo{} },
	"forgive_after_one":        func(*rand.Rand) HistoryPolicy { return ForgiveAfterOne{} },
	"fibonacci_forgive":        func(*rand.Rand) HistoryPolicy { return FibonacciForgive{} },
	"betray_ratio":             func(*rand.Rand) HistoryPolicy { return BetrayRatio{} },
	"random":                   func(rng *rand.Rand) HistoryPolicy { return NewRandom(rng) },
	"random_defect":            func(rng *rand.Rand) HistoryPolicy { return NewRandomDefect(rng, 10) },
	"often_random_defect":      func(rng *rand.Rand) HistoryPolicy { return NewRandomDefect(rng, 3) },
}

// Lookup returns the constructor registered under name.
func Lookup(name string) (Constructor, error) {
	c, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("unknown policy %q", name)
	}
	return c, nil
}

// Names lists the registered policies in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
