package scene

import (
	"fmt"
	"sort"
)

// Environment is image-free ambient lighting approximating an HDR preset
// with a sky/ground hemisphere gradient.
type Environment struct {
	Name      string
	Sky       Color
	Ground    Color
	Intensity float32
}

var environments = map[string]Environment{
	"apartment": {Sky: MustHex("#d9c7a8"), Ground: MustHex("#5a4a3a"), Intensity: 0.5},
	"city":      {Sky: MustHex("#c9d6e3"), Ground: MustHex("#4a4640"), Intensity: 0.6},
	"dawn":      {Sky: MustHex("#f3b58f"), Ground: MustHex("#3d3345"), Intensity: 0.45},
	"forest":    {Sky: MustHex("#b7c9a0"), Ground: MustHex("#2f3a22"), Intensity: 0.45},
	"lobby":     {Sky: MustHex("#e8dcc8"), Ground: MustHex("#6b5d4b"), Intensity: 0.55},
	"night":     {Sky: MustHex("#2a3350"), Ground: MustHex("#0d0f16"), Intensity: 0.2},
	"park":      {Sky: MustHex("#cfe3f2"), Ground: MustHex("#4d5a35"), Intensity: 0.6},
	"studio":    {Sky: MustHex("#ffffff"), Ground: MustHex("#808080"), Intensity: 0.7},
	"sunset":    {Sky: MustHex("#f7a56b"), Ground: MustHex("#4a3028"), Intensity: 0.5},
	"warehouse": {Sky: MustHex("#bfbab0"), Ground: MustHex("#3a3834"), Intensity: 0.5},
}

// LookupEnvironment returns the named preset.
func LookupEnvironment(name string) (Environment, error) {
	env, ok := environments[name]
	if !ok {
		return Environment{}, fmt.Errorf("unknown environment preset %q", name)
	}
	env.Name = name
	return env, nil
}

// EnvironmentNames lists the known presets in sorted order.
func EnvironmentNames() []string {
	names := make([]string, 0, len(environments))
	for n := range environments {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
