package config

import "golang.org/x/exp/slices"

var Presets = map[string]*Config{
	"classic": {
		Values:   []int{0, 1, 2, 3, 4},
		Mutation: MutationConfig{Index: 0, Value: 6},
		Appends:  8,
	},
	"empty": {
		Appends: 0,
	},
	"single": {
		Values:   []int{42},
		Mutation: MutationConfig{Index: 0, Value: -42},
		Appends:  1,
	},
	"growth": {
		Values:   []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		Mutation: MutationConfig{Index: 15, Value: -1},
		Appends:  64,
	},
}

// GetPreset returns a copy of the named preset, or nil if there is none.
// Unset fields fall back to the defaults.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := p.Clone()
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
