package logic

import (
	"fmt"
	"strconv"
	"strings"
)

// Env supplies the domain operators an expression may call. Implementations
// are built per evaluation site by the junk and multiplier engines; a method
// that cannot be answered in the current context returns its zero value.
type Env interface {
	// Var resolves a dotted data path ("team.rank", "possiblePoints").
	Var(path string) any

	Team(ref string) any
	CountJunk(team any, junkName string) float64
	RankWithTies(rank, tieCount int) bool
	TeamDownTheMost(hole, team any) bool
	TeamSecondToLast(hole, team any) bool
	OtherTeamMultipliedWith(hole, team any, multName string) bool
	PrevHole() any
	CurrHole() any
	PlayersOnTeam(ref string) float64
	IsWolfPlayer() bool
	ParOrBetter(holeNum, scoreType any) bool
	HolePar() float64
	ExistingPreMultiplierTotal(hole any, threshold float64) bool
}

// EvaluateString compiles and evaluates an expression, returning its
// truthiness. Errors are returned, never swallowed; the caller decides
// whether its site fails open or loud.
func EvaluateString(expression string, env Env) (bool, error) {
	n, err := Compile(expression)
	if err != nil {
		return false, err
	}
	v, err := Evaluate(n, env)
	if err != nil {
		return false, err
	}
	return Truthy(v), nil
}

// Evaluate walks the tree. An unknown operator fails the whole evaluation.
func Evaluate(n *Node, env Env) (any, error) {
	if n == nil {
		return nil, nil
	}
	if n.Literal() {
		return n.Lit, nil
	}
	if n.IsArray {
		out := make([]any, 0, len(n.Args))
		for _, a := range n.Args {
			v, err := Evaluate(a, env)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	return apply(n, env)
}

func apply(n *Node, env Env) (any, error) {
	switch n.Op {
	case "var":
		return applyVar(n, env)
	case "and":
		var last any = true
		for _, a := range n.Args {
			v, err := Evaluate(a, env)
			if err != nil {
				return nil, err
			}
			if !Truthy(v) {
				return v, nil
			}
			last = v
		}
		return last, nil
	case "or":
		var last any = false
		for _, a := range n.Args {
			v, err := Evaluate(a, env)
			if err != nil {
				return nil, err
			}
			if Truthy(v) {
				return v, nil
			}
			last = v
		}
		return last, nil
	case "not", "!":
		v, err := evalArg(n, 0, env)
		if err != nil {
			return nil, err
		}
		return !Truthy(v), nil
	case "!!":
		v, err := evalArg(n, 0, env)
		if err != nil {
			return nil, err
		}
		return Truthy(v), nil
	case "if", "?:":
		return applyIf(n, env)
	case "==", "===":
		return applyCompare(n, env, func(a, b float64) bool { return a == b }, func(a, b string) bool { return a == b })
	case "!=", "!==":
		eq, err := applyCompare(n, env, func(a, b float64) bool { return a == b }, func(a, b string) bool { return a == b })
		if err != nil {
			return nil, err
		}
		return !eq.(bool), nil
	case ">":
		return applyCompare(n, env, func(a, b float64) bool { return a > b }, func(a, b string) bool { return a > b })
	case ">=":
		return applyCompare(n, env, func(a, b float64) bool { return a >= b }, func(a, b string) bool { return a >= b })
	case "<":
		return applyOrdered(n, env, func(a, b float64) bool { return a < b })
	case "<=":
		return applyOrdered(n, env, func(a, b float64) bool { return a <= b })
	case "+", "-", "*", "/", "%":
		return applyArithmetic(n, env)
	case "min", "max":
		return applyMinMax(n, env)
	case "in":
		return applyIn(n, env)
	case "cat":
		var sb strings.Builder
		for i := range n.Args {
			v, err := evalArg(n, i, env)
			if err != nil {
				return nil, err
			}
			sb.WriteString(toString(v))
		}
		return sb.String(), nil
	case "substr":
		return applySubstr(n, env)
	case "merge":
		var out []any
		for i := range n.Args {
			v, err := evalArg(n, i, env)
			if err != nil {
				return nil, err
			}
			if list, ok := v.([]any); ok {
				out = append(out, list...)
			} else {
				out = append(out, v)
			}
		}
		return out, nil
	case "missing", "missing_some":
		return applyMissing(n, env)
	case "some", "all", "none", "filter", "map", "reduce":
		return applyCollection(n, env)
	case "log":
		return evalArg(n, 0, env)

	case "team":
		ref, err := stringArg(n, 0, env)
		if err != nil {
			return nil, err
		}
		return env.Team(ref), nil
	case "countJunk":
		team, err := evalArg(n, 0, env)
		if err != nil {
			return nil, err
		}
		name, err := stringArg(n, 1, env)
		if err != nil {
			return nil, err
		}
		return env.CountJunk(team, name), nil
	case "rankWithTies":
		rank, err := numberArg(n, 0, env)
		if err != nil {
			return nil, err
		}
		tieCount, err := numberArg(n, 1, env)
		if err != nil {
			return nil, err
		}
		return env.RankWithTies(int(rank), int(tieCount)), nil
	case "team_down_the_most":
		hole, team, err := holeTeamArgs(n, env)
		if err != nil {
			return nil, err
		}
		return env.TeamDownTheMost(hole, team), nil
	case "team_second_to_last":
		hole, team, err := holeTeamArgs(n, env)
		if err != nil {
			return nil, err
		}
		return env.TeamSecondToLast(hole, team), nil
	case "other_team_multiplied_with":
		hole, err := evalArg(n, 0, env)
		if err != nil {
			return nil, err
		}
		team, err := evalArg(n, 1, env)
		if err != nil {
			return nil, err
		}
		name, err := stringArg(n, 2, env)
		if err != nil {
			return nil, err
		}
		return env.OtherTeamMultipliedWith(hole, team, name), nil
	case "getPrevHole":
		return env.PrevHole(), nil
	case "getCurrHole":
		return env.CurrHole(), nil
	case "playersOnTeam":
		ref, err := stringArg(n, 0, env)
		if err != nil {
			return nil, err
		}
		return env.PlayersOnTeam(ref), nil
	case "isWolfPlayer":
		return env.IsWolfPlayer(), nil
	case "parOrBetter":
		holeNum, err := evalArg(n, 0, env)
		if err != nil {
			return nil, err
		}
		scoreType, err := evalArg(n, 1, env)
		if err != nil {
			return nil, err
		}
		return env.ParOrBetter(holeNum, scoreType), nil
	case "holePar":
		return env.HolePar(), nil
	case "existingPreMultiplierTotal":
		hole, err := evalArg(n, 0, env)
		if err != nil {
			return nil, err
		}
		threshold, err := numberArg(n, 1, env)
		if err != nil {
			return nil, err
		}
		return env.ExistingPreMultiplierTotal(hole, threshold), nil
	}
	return nil, fmt.Errorf("logic: unknown operator %q", n.Op)
}

func evalArg(n *Node, i int, env Env) (any, error) {
	if i >= len(n.Args) {
		return nil, nil
	}
	return Evaluate(n.Args[i], env)
}

func stringArg(n *Node, i int, env Env) (string, error) {
	v, err := evalArg(n, i, env)
	if err != nil {
		return "", err
	}
	return toString(v), nil
}

func numberArg(n *Node, i int, env Env) (float64, error) {
	v, err := evalArg(n, i, env)
	if err != nil {
		return 0, err
	}
	return toNumber(v), nil
}

func holeTeamArgs(n *Node, env Env) (any, any, error) {
	hole, err := evalArg(n, 0, env)
	if err != nil {
		return nil, nil, err
	}
	team, err := evalArg(n, 1, env)
	if err != nil {
		return nil, nil, err
	}
	return hole, team, nil
}

func applyVar(n *Node, env Env) (any, error) {
	path, err := stringArg(n, 0, env)
	if err != nil {
		return nil, err
	}
	v := env.Var(path)
	if v == nil && len(n.Args) > 1 {
		return evalArg(n, 1, env)
	}
	return v, nil
}

func applyIf(n *Node, env Env) (any, error) {
	// Pairs of condition/result, optional trailing else.
	i := 0
	for ; i+1 < len(n.Args); i += 2 {
		cond, err := Evaluate(n.Args[i], env)
		if err != nil {
			return nil, err
		}
		if Truthy(cond) {
			return Evaluate(n.Args[i+1], env)
		}
	}
	if i < len(n.Args) {
		return Evaluate(n.Args[i], env)
	}
	return nil, nil
}

func applyCompare(n *Node, env Env, numCmp func(a, b float64) bool, strCmp func(a, b string) bool) (any, error) {
	a, err := evalArg(n, 0, env)
	if err != nil {
		return nil, err
	}
	b, err := evalArg(n, 1, env)
	if err != nil {
		return nil, err
	}
	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	if aIsStr && bIsStr {
		return strCmp(as, bs), nil
	}
	return numCmp(toNumber(a), toNumber(b)), nil
}

// applyOrdered handles < and <=, including the three-argument between form.
func applyOrdered(n *Node, env Env, cmp func(a, b float64) bool) (any, error) {
	vals := make([]float64, 0, len(n.Args))
	for i := range n.Args {
		v, err := numberArg(n, i, env)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	for i := 0; i+1 < len(vals); i++ {
		if !cmp(vals[i], vals[i+1]) {
			return false, nil
		}
	}
	return true, nil
}

func applyArithmetic(n *Node, env Env) (any, error) {
	if len(n.Args) == 1 {
		v, err := numberArg(n, 0, env)
		if err != nil {
			return nil, err
		}
		if n.Op == "-" {
			return -v, nil
		}
		return v, nil
	}
	acc, err := numberArg(n, 0, env)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(n.Args); i++ {
		v, err := numberArg(n, i, env)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case "+":
			acc += v
		case "-":
			acc -= v
		case "*":
			acc *= v
		case "/":
			if v == 0 {
				return nil, fmt.Errorf("logic: division by zero")
			}
			acc /= v
		case "%":
			if v == 0 {
				return nil, fmt.Errorf("logic: modulo by zero")
			}
			acc = float64(int64(acc) % int64(v))
		}
	}
	return acc, nil
}

func applyMinMax(n *Node, env Env) (any, error) {
	if len(n.Args) == 0 {
		return nil, nil
	}
	best, err := numberArg(n, 0, env)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(n.Args); i++ {
		v, err := numberArg(n, i, env)
		if err != nil {
			return nil, err
		}
		if (n.Op == "min" && v < best) || (n.Op == "max" && v > best) {
			best = v
		}
	}
	return best, nil
}

func applyIn(n *Node, env Env) (any, error) {
	needle, err := evalArg(n, 0, env)
	if err != nil {
		return nil, err
	}
	haystack, err := evalArg(n, 1, env)
	if err != nil {
		return nil, err
	}
	switch h := haystack.(type) {
	case string:
		return strings.Contains(h, toString(needle)), nil
	case []any:
		for _, v := range h {
			if equalLoose(v, needle) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, nil
}

func applySubstr(n *Node, env Env) (any, error) {
	s, err := stringArg(n, 0, env)
	if err != nil {
		return nil, err
	}
	start, err := numberArg(n, 1, env)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	from := int(start)
	if from < 0 {
		from = len(runes) + from
	}
	if from < 0 {
		from = 0
	}
	if from > len(runes) {
		from = len(runes)
	}
	to := len(runes)
	if len(n.Args) > 2 {
		length, err := numberArg(n, 2, env)
		if err != nil {
			return nil, err
		}
		if length < 0 {
			to = len(runes) + int(length)
		} else {
			to = from + int(length)
		}
	}
	if to < from {
		to = from
	}
	if to > len(runes) {
		to = len(runes)
	}
	return string(runes[from:to]), nil
}

func applyMissing(n *Node, env Env) (any, error) {
	var keys []any
	if n.Op == "missing_some" {
		list, err := evalArg(n, 1, env)
		if err != nil {
			return nil, err
		}
		keys, _ = list.([]any)
	} else {
		for i := range n.Args {
			v, err := evalArg(n, i, env)
			if err != nil {
				return nil, err
			}
			if list, ok := v.([]any); ok {
				keys = append(keys, list...)
			} else {
				keys = append(keys, v)
			}
		}
	}
	var missing []any
	for _, k := range keys {
		if env.Var(toString(k)) == nil {
			missing = append(missing, k)
		}
	}
	if n.Op == "missing_some" {
		need, err := numberArg(n, 0, env)
		if err != nil {
			return nil, err
		}
		if float64(len(keys)-len(missing)) >= need {
			return []any{}, nil
		}
	}
	if missing == nil {
		return []any{}, nil
	}
	return missing, nil
}

// scopedEnv resolves var paths against a collection element, falling back to
// the outer environment when the element has no such key.
type scopedEnv struct {
	Env
	data any
}

func (s scopedEnv) Var(path string) any {
	if path == "" {
		return s.data
	}
	cur := s.data
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return s.Env.Var(path)
		}
		cur, ok = m[part]
		if !ok {
			return s.Env.Var(path)
		}
	}
	return cur
}

func applyCollection(n *Node, env Env) (any, error) {
	src, err := evalArg(n, 0, env)
	if err != nil {
		return nil, err
	}
	list, _ := src.([]any)

	if n.Op == "reduce" {
		acc, err := evalArg(n, 2, env)
		if err != nil {
			return nil, err
		}
		for _, el := range list {
			scoped := scopedEnv{Env: env, data: map[string]any{"current": el, "accumulator": acc}}
			acc, err = Evaluate(n.Args[1], scoped)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}

	var filtered []any
	var mapped []any
	for _, el := range list {
		v, err := Evaluate(n.Args[1], scopedEnv{Env: env, data: el})
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case "some":
			if Truthy(v) {
				return true, nil
			}
		case "all":
			if !Truthy(v) {
				return false, nil
			}
		case "none":
			if Truthy(v) {
				return false, nil
			}
		case "filter":
			if Truthy(v) {
				filtered = append(filtered, el)
			}
		case "map":
			mapped = append(mapped, v)
		}
	}
	switch n.Op {
	case "some":
		return false, nil
	case "all":
		return len(list) > 0, nil
	case "none":
		return true, nil
	case "filter":
		if filtered == nil {
			return []any{}, nil
		}
		return filtered, nil
	case "map":
		if mapped == nil {
			return []any{}, nil
		}
		return mapped, nil
	}
	return nil, fmt.Errorf("logic: unknown collection operator %q", n.Op)
}

// Truthy follows json-logic truthiness: false, nil, zero, empty string and
// empty array are falsy.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	}
	return true
}

func toNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		n, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func equalLoose(a, b any) bool {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as == bs
		}
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return toNumber(a) == toNumber(b)
}
