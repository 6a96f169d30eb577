// Package validation provides narrow input validators for orchestrator tool
// parameters and upstream-identifier shapes. Each validator rejects bad
// input with a message suitable for returning straight to the caller as an
// INPUT_INVALID orchestrator response.
package validation

import (
	"fmt"
	"strings"
)

// NonEmptyReasoning enforces the one rule every tool shares: reasoning is
// mandatory and must not be blank after trimming.
func NonEmptyReasoning(reasoning string) error {
	if strings.TrimSpace(reasoning) == "" {
		return fmt.Errorf("reasoning is required and must not be empty")
	}
	return nil
}

// IntRange validates that value falls within [min, max] inclusive, naming
// the parameter in the error so the orchestrator can surface it verbatim.
func IntRange(param string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %d and %d, got %d", param, min, max, value)
	}
	return nil
}

// OneOf validates that value is a member of allowed, case-sensitively.
func OneOf(param, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", param, strings.Join(allowed, ", "), value)
}

// StringSliceLen validates the length of a slice parameter such as
// compare_tech's technologies list.
func StringSliceLen(param string, values []string, min, max int) error {
	if len(values) < min || len(values) > max {
		return fmt.Errorf("%s must have between %d and %d entries, got %d", param, min, max, len(values))
	}
	return nil
}
