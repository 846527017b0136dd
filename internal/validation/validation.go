// Package validation provides declarative field validation for request
// payloads. A RuleSet maps field names to validator tags and messages; the
// whole set is evaluated before any store access so handlers can return
// every violation at once.
package validation

import (
	"sort"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Violation describes a single failed field check.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// Rule pairs a validator tag expression with the message reported when the
// field value does not satisfy it.
type Rule struct {
	Tag     string
	Message string
}

// RuleSet maps field names to their rules.
type RuleSet map[string]Rule

// Required is shorthand for a non-empty check with a standard message.
func Required(field string) Rule {
	return Rule{Tag: "required", Message: field + " is required"}
}

// Fields checks every rule against the submitted field map and returns the
// list of violations, sorted by field name for stable output. An empty
// result means the payload passed.
func Fields(fields map[string]string, rules RuleSet) []Violation {
	var violations []Violation
	for name, rule := range rules {
		if err := validate.Var(fields[name], rule.Tag); err != nil {
			violations = append(violations, Violation{Field: name, Message: rule.Message})
		}
	}
	sort.Slice(violations, func(i, j int) bool {
		return violations[i].Field < violations[j].Field
	})
	return violations
}

// Var validates a single value against a validator tag.
func Var(value string, tag string) bool {
	return validate.Var(value, tag) == nil
}
