package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_AllPass(t *testing.T) {
	violations := Fields(map[string]string{
		"status": "Developer",
		"skills": "Go,SQL",
	}, RuleSet{
		"status": Required("Status"),
		"skills": Required("Skills"),
	})
	assert.Empty(t, violations)
}

func TestFields_ReportsEveryViolation(t *testing.T) {
	violations := Fields(map[string]string{
		"status": "",
		"skills": "",
	}, RuleSet{
		"status": Required("Status"),
		"skills": Required("Skills"),
	})

	require.Len(t, violations, 2)
	// Sorted by field name for stable output.
	assert.Equal(t, "skills", violations[0].Field)
	assert.Equal(t, "Skills is required", violations[0].Message)
	assert.Equal(t, "status", violations[1].Field)
	assert.Equal(t, "Status is required", violations[1].Message)
}

func TestFields_MissingFieldFailsRequired(t *testing.T) {
	violations := Fields(map[string]string{}, RuleSet{
		"status": Required("Status"),
	})
	require.Len(t, violations, 1)
	assert.Equal(t, "status", violations[0].Field)
}

func TestFields_EmailTag(t *testing.T) {
	rules := RuleSet{
		"email": {Tag: "required,email", Message: "A valid email is required"},
	}

	assert.Empty(t, Fields(map[string]string{"email": "dev@example.com"}, rules))

	violations := Fields(map[string]string{"email": "not-an-email"}, rules)
	require.Len(t, violations, 1)
	assert.Equal(t, "A valid email is required", violations[0].Message)
}

func TestVar(t *testing.T) {
	assert.True(t, Var("abcdef", "min=6"))
	assert.False(t, Var("abc", "min=6"))
}
