// Package opts resolves the effective value of declarative options for a
// hole, layering sparse per-hole overrides over the game-level working spec.
package opts

import (
	"fmt"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
)

// ForHole resolves the named option for a hole. Resolution order: the
// hole's override map, then the game spec working copy. The write path keeps
// overrides minimal (an override equal to the game default is removed), but
// reads tolerate either representation.
func ForHole(name string, hole *scoringtypes.GameHole, game *scoringtypes.Game) (scoringtypes.Option, bool) {
	if hole != nil {
		if o, ok := hole.Options[name]; ok {
			return o, true
		}
	}
	return game.SpecOption(name)
}

// BoolForHole resolves a game option as a bool, false when absent or not a
// game option.
func BoolForHole(name string, hole *scoringtypes.GameHole, game *scoringtypes.Game) bool {
	o, ok := ForHole(name, hole, game)
	if !ok || o.Type != scoringtypes.OptionTypeGame {
		return false
	}
	return o.Game.BoolValue()
}

// NumForHole resolves a game option as a number, 0 when absent.
func NumForHole(name string, hole *scoringtypes.GameHole, game *scoringtypes.Game) float64 {
	o, ok := ForHole(name, hole, game)
	if !ok || o.Type != scoringtypes.OptionTypeGame {
		return 0
	}
	return o.Game.NumValue()
}

// TextForHole resolves a game option as text, "" when absent.
func TextForHole(name string, hole *scoringtypes.GameHole, game *scoringtypes.Game) string {
	o, ok := ForHole(name, hole, game)
	if !ok || o.Type != scoringtypes.OptionTypeGame {
		return ""
	}
	return o.Game.TextValue()
}

// DistinctValues unions the game-level value of a game option with every
// hole's effective value. More than one distinct value means the option
// varies by hole.
func DistinctValues(name string, game *scoringtypes.Game) []string {
	seen := map[string]bool{}
	var out []string
	add := func(v string) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	if o, ok := game.SpecOption(name); ok && o.Type == scoringtypes.OptionTypeGame {
		add(o.Game.TextValue())
	}
	for _, h := range game.Holes {
		if o, ok := ForHole(name, h, game); ok && o.Type == scoringtypes.OptionTypeGame {
			add(o.Game.TextValue())
		}
	}
	return out
}

// ResolveContext is what a dynamic value resolver sees.
type ResolveContext struct {
	Game   *scoringtypes.Game
	Hole   *scoringtypes.GameHole
	TeamID string
}

// Resolver computes a dynamic multiplier value.
type Resolver func(rc ResolveContext) float64

// Registry maps value_from names to resolvers. New named resolvers are data
// additions, not engine changes.
type Registry struct {
	resolvers map[string]Resolver
}

// NewRegistry returns a registry seeded with the built-in resolvers.
func NewRegistry() *Registry {
	r := &Registry{resolvers: map[string]Resolver{}}
	r.Register("frontNinePreDoubleTotal", frontNinePreDoubleTotal)
	return r
}

// Register installs a resolver under a name, replacing any existing one.
func (r *Registry) Register(name string, fn Resolver) {
	r.resolvers[name] = fn
}

// Resolve runs the named resolver. An unknown name is a configuration error.
func (r *Registry) Resolve(name string, rc ResolveContext) (float64, error) {
	fn, ok := r.resolvers[name]
	if !ok {
		return 0, fmt.Errorf("opts: unknown value resolver %q", name)
	}
	return fn(rc), nil
}

// MultiplierValue resolves a multiplier option's numeric value: dynamic via
// value_from when set, else the static value.
func (r *Registry) MultiplierValue(m *scoringtypes.MultiplierOption, rc ResolveContext) (float64, error) {
	if m.ValueFrom != "" {
		return r.Resolve(m.ValueFrom, rc)
	}
	return m.StaticValue(), nil
}

// frontNinePreDoubleTotal doubles once per pre_double activation recorded on
// holes 1 through 9, producing the hole-10 re-double value.
func frontNinePreDoubleTotal(rc ResolveContext) float64 {
	count := 0
	for n := 1; n <= 9; n++ {
		h := rc.Game.Hole(n)
		if h == nil {
			continue
		}
		for _, t := range h.Teams {
			for _, o := range t.Options {
				if o.OptionName == "pre_double" && o.FirstHole == n {
					count++
				}
			}
		}
	}
	total := 1.0
	for i := 0; i < count; i++ {
		total *= 2
	}
	return total
}
