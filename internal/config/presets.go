package config

import (
	"sort"

	"github.com/san-kum/reactorsim/internal/reactor"
)

// Presets are built-in parameter sets, all within the sample budget.
var Presets = map[string]reactor.Params{
	"textbook": {
		FlowRate: 2, InletConcentration: 10, InitialConcentration: 0,
		Volume: 5, FinalTime: 10, TimeStep: 0.5,
	},
	"flush": {
		FlowRate: 1, InletConcentration: 0, InitialConcentration: 50,
		Volume: 4, FinalTime: 20, TimeStep: 0.1,
	},
	"fine": {
		FlowRate: 0.5, InletConcentration: 25, InitialConcentration: 5,
		Volume: 2, FinalTime: 15, TimeStep: 0.05,
	},
	"coarse": {
		FlowRate: 3, InletConcentration: 10, InitialConcentration: 0,
		Volume: 1, FinalTime: 5, TimeStep: 0.5,
	},
	"stagnant": {
		FlowRate: 0, InletConcentration: 10, InitialConcentration: 3,
		Volume: 5, FinalTime: 10, TimeStep: 1,
	},
}

func GetPreset(name string) (reactor.Params, bool) {
	p, ok := Presets[name]
	return p, ok
}

// ListPresets returns the built-in preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
