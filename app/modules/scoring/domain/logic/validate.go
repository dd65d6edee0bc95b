package logic

import (
	"fmt"
	"sort"
	"strings"
)

// knownOperators is the closed set of operators valid in persisted rule
// expressions. Expressions are stored as strings, so a typo here is a data
// bug the offline validator must catch before runtime.
var knownOperators = map[string]bool{
	"var": true, "and": true, "or": true, "not": true,
	"==": true, "===": true, "!=": true, "!==": true,
	">": true, ">=": true, "<": true, "<=": true,
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"if": true, "?:": true, "!": true, "!!": true,
	"log": true, "in": true, "cat": true, "substr": true,
	"merge": true, "missing": true, "missing_some": true,
	"some": true, "all": true, "none": true,
	"filter": true, "map": true, "reduce": true,
	"min": true, "max": true,

	"team":                       true,
	"countJunk":                  true,
	"rankWithTies":               true,
	"team_down_the_most":         true,
	"team_second_to_last":        true,
	"other_team_multiplied_with": true,
	"getPrevHole":                true,
	"getCurrHole":                true,
	"playersOnTeam":              true,
	"isWolfPlayer":               true,
	"parOrBetter":                true,
	"holePar":                    true,
	"existingPreMultiplierTotal": true,
}

// KnownOperators returns the valid operator names, sorted.
func KnownOperators() []string {
	out := make([]string, 0, len(knownOperators))
	for op := range knownOperators {
		out = append(out, op)
	}
	sort.Strings(out)
	return out
}

// Validate statically checks an expression string: it must parse, and every
// operator it applies must be in the known set.
func Validate(expression string) error {
	n, err := Parse(expression)
	if err != nil {
		return err
	}
	var unknown []string
	for _, op := range Operators(n) {
		if !knownOperators[op] {
			unknown = append(unknown, op)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown operator(s): %s", strings.Join(unknown, ", "))
	}
	return nil
}
