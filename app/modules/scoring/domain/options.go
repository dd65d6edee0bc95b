package scoringtypes

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// OptionType discriminates the Option union.
type OptionType string

const (
	OptionTypeGame       OptionType = "game"
	OptionTypeJunk       OptionType = "junk"
	OptionTypeMultiplier OptionType = "multiplier"
	OptionTypeMeta       OptionType = "meta"
)

// ValueType describes how a GameOption value string should be interpreted.
type ValueType string

const (
	ValueTypeBool ValueType = "bool"
	ValueTypeNum  ValueType = "num"
	ValueTypeText ValueType = "text"
	ValueTypeMenu ValueType = "menu"
)

// Scope describes what a junk or multiplier option attaches to.
type Scope string

const (
	ScopePlayer     Scope = "player"
	ScopeTeam       Scope = "team"
	ScopeHole       Scope = "hole"
	ScopeRestOfNine Scope = "rest_of_nine"
	ScopeGame       Scope = "game"
	// ScopeNone marks options driven from the hole toolbar rather than
	// per-team controls (e.g. a manually entered custom multiplier).
	ScopeNone Scope = "none"
)

// BasedOn values for junk options.
const (
	BasedOnUser  = "user"
	BasedOnGross = "gross"
	BasedOnNet   = "net"
)

// LimitOnePerGroup caps a junk at one holder game-wide per hole.
// LimitOneTeamPerGroup is the team-scoped equivalent.
const (
	LimitOnePerGroup     = "one_per_group"
	LimitOneTeamPerGroup = "one_team_per_group"
)

// Multiplier sub types.
const (
	SubTypeAutomatic = "automatic"
	SubTypeBBQ       = "bbq"
	SubTypePress     = "press"
)

// Choice is a single entry of a menu-valued game option.
type Choice struct {
	Disp  string `json:"disp"`
	Value string `json:"value"`
}

// GameOption is a single game-level setting.
type GameOption struct {
	Name         string    `json:"name"`
	Disp         string    `json:"disp"`
	Version      int       `json:"version,omitempty"`
	ValueType    ValueType `json:"valueType"`
	Choices      []Choice  `json:"choices,omitempty"`
	DefaultValue string    `json:"defaultValue"`
	Value        *string   `json:"value,omitempty"`
	Seq          *int      `json:"seq,omitempty"`
	TeamOnly     bool      `json:"teamOnly,omitempty"`
}

// JunkOption is a bonus-point rule.
type JunkOption struct {
	Name        string  `json:"name"`
	Disp        string  `json:"disp"`
	Version     int     `json:"version,omitempty"`
	Value       float64 `json:"value"`
	SubType     string  `json:"sub_type,omitempty"`
	Scope       Scope   `json:"scope"`
	Icon        string  `json:"icon,omitempty"`
	ShowIn      string  `json:"show_in,omitempty"`
	BasedOn     string  `json:"based_on,omitempty"`
	Limit       string  `json:"limit,omitempty"`
	Calculation string  `json:"calculation,omitempty"`
	Logic       string  `json:"logic,omitempty"`
	Better      string  `json:"better,omitempty"`
	ScoreToPar  string  `json:"score_to_par,omitempty"`
	Seq         *int    `json:"seq,omitempty"`
}

// MultiplierOption is a point-multiplier rule.
type MultiplierOption struct {
	Name         string   `json:"name"`
	Disp         string   `json:"disp"`
	Version      int      `json:"version,omitempty"`
	Value        *float64 `json:"value,omitempty"`
	SubType      string   `json:"sub_type,omitempty"`
	Scope        Scope    `json:"scope"`
	Icon         string   `json:"icon,omitempty"`
	BasedOn      string   `json:"based_on,omitempty"`
	Availability string   `json:"availability,omitempty"`
	Override     bool     `json:"override,omitempty"`
	ValueFrom    string   `json:"value_from,omitempty"`
	InputValue   bool     `json:"input_value,omitempty"`
	Seq          *int     `json:"seq,omitempty"`
}

// MetaOption carries catalog metadata (spec type, minimum players).
type MetaOption struct {
	Name       string `json:"name"`
	Disp       string `json:"disp,omitempty"`
	Version    int    `json:"version,omitempty"`
	SpecType   string `json:"spec_type,omitempty"`
	MinPlayers int    `json:"min_players,omitempty"`
	Seq        *int   `json:"seq,omitempty"`
}

// Option is the declarative unit of rule configuration. Exactly one of the
// variant pointers is non-nil, selected by Type.
type Option struct {
	Type       OptionType
	Game       *GameOption
	Junk       *JunkOption
	Multiplier *MultiplierOption
	Meta       *MetaOption
}

// Name returns the option's name regardless of variant.
func (o Option) Name() string {
	switch o.Type {
	case OptionTypeGame:
		return o.Game.Name
	case OptionTypeJunk:
		return o.Junk.Name
	case OptionTypeMultiplier:
		return o.Multiplier.Name
	case OptionTypeMeta:
		return o.Meta.Name
	}
	return ""
}

// Disp returns the option's display label.
func (o Option) Disp() string {
	switch o.Type {
	case OptionTypeGame:
		return o.Game.Disp
	case OptionTypeJunk:
		return o.Junk.Disp
	case OptionTypeMultiplier:
		return o.Multiplier.Disp
	case OptionTypeMeta:
		return o.Meta.Disp
	}
	return ""
}

// Seq returns the option's sort order, or a large sentinel when unset so
// unsequenced options sort last.
func (o Option) Seq() int {
	var seq *int
	switch o.Type {
	case OptionTypeGame:
		seq = o.Game.Seq
	case OptionTypeJunk:
		seq = o.Junk.Seq
	case OptionTypeMultiplier:
		seq = o.Multiplier.Seq
	case OptionTypeMeta:
		seq = o.Meta.Seq
	}
	if seq == nil {
		return 999
	}
	return *seq
}

func (o Option) MarshalJSON() ([]byte, error) {
	var variant any
	switch o.Type {
	case OptionTypeGame:
		variant = o.Game
	case OptionTypeJunk:
		variant = o.Junk
	case OptionTypeMultiplier:
		variant = o.Multiplier
	case OptionTypeMeta:
		variant = o.Meta
	default:
		return nil, fmt.Errorf("option %q: unknown type %q", o.Name(), o.Type)
	}
	raw, err := json.Marshal(variant)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	m["type"], _ = json.Marshal(o.Type)
	return json.Marshal(m)
}

func (o *Option) UnmarshalJSON(data []byte) error {
	var tag struct {
		Type OptionType `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	*o = Option{Type: tag.Type}
	switch tag.Type {
	case OptionTypeGame:
		o.Game = &GameOption{}
		return json.Unmarshal(data, o.Game)
	case OptionTypeJunk:
		o.Junk = &JunkOption{}
		return json.Unmarshal(data, o.Junk)
	case OptionTypeMultiplier:
		o.Multiplier = &MultiplierOption{}
		return json.Unmarshal(data, o.Multiplier)
	case OptionTypeMeta:
		o.Meta = &MetaOption{}
		return json.Unmarshal(data, o.Meta)
	}
	return fmt.Errorf("option: unknown type %q", tag.Type)
}

// BoolValue interprets a game option value string per its valueType.
func (g *GameOption) BoolValue() bool {
	return g.effective() == "true"
}

// NumValue interprets a game option value string as a number. Returns 0 for
// values that do not parse.
func (g *GameOption) NumValue() float64 {
	n, err := strconv.ParseFloat(g.effective(), 64)
	if err != nil {
		return 0
	}
	return n
}

// TextValue returns the effective string value.
func (g *GameOption) TextValue() string {
	return g.effective()
}

func (g *GameOption) effective() string {
	if g.Value != nil {
		return *g.Value
	}
	return g.DefaultValue
}

// SortOptions orders options by seq, stably.
func SortOptions(opts []Option) {
	sort.SliceStable(opts, func(i, j int) bool {
		return opts[i].Seq() < opts[j].Seq()
	})
}

// JunkOptions filters to junk variants, ordered by seq.
func JunkOptions(opts []Option) []*JunkOption {
	sorted := make([]Option, len(opts))
	copy(sorted, opts)
	SortOptions(sorted)
	var out []*JunkOption
	for _, o := range sorted {
		if o.Type == OptionTypeJunk {
			out = append(out, o.Junk)
		}
	}
	return out
}

// MultiplierOptions filters to multiplier variants, ordered by seq.
func MultiplierOptions(opts []Option) []*MultiplierOption {
	sorted := make([]Option, len(opts))
	copy(sorted, opts)
	SortOptions(sorted)
	var out []*MultiplierOption
	for _, o := range sorted {
		if o.Type == OptionTypeMultiplier {
			out = append(out, o.Multiplier)
		}
	}
	return out
}

// StaticValue returns the multiplier's static value, defaulting to 2 when
// unset. Options with ValueFrom resolve dynamically instead.
func (m *MultiplierOption) StaticValue() float64 {
	if m.Value == nil {
		return 2
	}
	return *m.Value
}
