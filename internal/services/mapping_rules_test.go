package services

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

func newTestEvaluator() MappingEvaluator {
	log := newTestLogger()
	cfg := newTestValidationConfig()
	return NewMappingValidationService(
		log,
		NewCompatibilityService(log),
		NewFormatValidator(log),
		NewSizeValidator(log, cfg),
	)
}

func TestEvaluateMapping(t *testing.T) {
	evaluator := newTestEvaluator()

	t.Run("string to varchar with UNIQUE stays valid with one warning", func(t *testing.T) {
		result := evaluator.EvaluateMapping(models.Mapping{
			SourceField: models.Field{Name: "email", Type: "string", Nullable: false},
			TargetField: models.Field{
				Name:        "email",
				Type:        "varchar(255)",
				Constraints: models.ConstraintList{models.ConstraintUnique},
			},
		})

		assert.True(t, result.IsValid)
		assert.Equal(t, models.CompatibilityCompatible, result.Compatibility)
		assert.Empty(t, result.Errors)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "UNIQUE")
	})

	t.Run("nullable number to tinyint NOT NULL fails hard", func(t *testing.T) {
		result := evaluator.EvaluateMapping(models.Mapping{
			SourceField: models.Field{Name: "age", Type: "number", Nullable: true},
			TargetField: models.Field{
				Name:        "age",
				Type:        "tinyint",
				Constraints: models.ConstraintList{models.ConstraintNotNull},
			},
		})

		assert.False(t, result.IsValid)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "NOT NULL")
		require.NotEmpty(t, result.Warnings)
		assert.Contains(t, result.Warnings[0], "overflow")
		assert.False(t, result.Details.ConstraintValidation)
	})

	t.Run("nullable string to int PRIMARY KEY fails independent of type warning", func(t *testing.T) {
		result := evaluator.EvaluateMapping(models.Mapping{
			SourceField: models.Field{Name: "id", Type: "string", Nullable: true},
			TargetField: models.Field{
				Name:        "id",
				Type:        "int",
				Constraints: models.ConstraintList{models.ConstraintPrimaryKey},
			},
		})

		assert.False(t, result.IsValid)
		assert.Equal(t, models.CompatibilityWarning, result.Compatibility)

		found := false
		for _, message := range result.Errors {
			if containsAnyMarker(message, []string{"PRIMARY KEY"}) {
				found = true
			}
		}
		assert.True(t, found, "expected a PRIMARY KEY error")
	})

	t.Run("missing field names are a required-field error not a panic", func(t *testing.T) {
		result := evaluator.EvaluateMapping(models.Mapping{})

		assert.False(t, result.IsValid)
		assert.False(t, result.Details.RequiredFieldValidation)

		found := false
		for _, message := range result.Errors {
			if containsAnyMarker(message, []string{"required field mapping incomplete"}) {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("email sample mismatch downgrades to a warning", func(t *testing.T) {
		result := evaluator.EvaluateMapping(models.Mapping{
			SourceField: models.Field{
				Name:     "email",
				Type:     "string",
				Nullable: false,
				Sample:   "not-an-address",
			},
			TargetField: models.Field{Name: "email", Type: "varchar(255)"},
		})

		assert.True(t, result.IsValid)
		assert.False(t, result.Details.FormatValidation)

		found := false
		for _, message := range result.Warnings {
			if containsAnyMarker(message, []string{"format"}) {
				found = true
			}
		}
		assert.True(t, found, "expected a format warning")
	})

	t.Run("email hint without sample only suggests", func(t *testing.T) {
		result := evaluator.EvaluateMapping(models.Mapping{
			SourceField: models.Field{Name: "email", Type: "string"},
			TargetField: models.Field{Name: "contact_email", Type: "varchar(255)"},
		})

		assert.True(t, result.IsValid)
		assert.True(t, result.Details.FormatValidation)
		assert.Empty(t, result.Warnings)

		found := false
		for _, suggestion := range result.Suggestions {
			if containsAnyMarker(suggestion, []string{"sample values"}) {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("oversized sample against declared varchar length warns", func(t *testing.T) {
		result := evaluator.EvaluateMapping(models.Mapping{
			SourceField: models.Field{
				Name:   "code",
				Type:   "string",
				Sample: "abcdefghij",
			},
			TargetField: models.Field{Name: "code", Type: "varchar(4)"},
		})

		assert.True(t, result.IsValid)
		assert.False(t, result.Details.SizeValidation)

		found := false
		for _, message := range result.Warnings {
			if containsAnyMarker(message, []string{"length"}) {
				found = true
			}
		}
		assert.True(t, found, "expected a length warning")
	})

	t.Run("decimal sample past declared precision warns", func(t *testing.T) {
		result := evaluator.EvaluateMapping(models.Mapping{
			SourceField: models.Field{
				Name:   "price",
				Type:   "number",
				Sample: 12345.678,
			},
			TargetField: models.Field{Name: "price", Type: "decimal(5,2)"},
		})

		assert.True(t, result.IsValid)

		found := false
		for _, message := range result.Warnings {
			if containsAnyMarker(message, []string{"precision"}) {
				found = true
			}
		}
		assert.True(t, found, "expected a precision warning")
	})

	t.Run("number source against date target warns on temporal fitness", func(t *testing.T) {
		result := evaluator.EvaluateMapping(models.Mapping{
			SourceField: models.Field{Name: "created", Type: "number"},
			TargetField: models.Field{Name: "created_at", Type: "datetime"},
		})

		found := false
		for _, message := range result.Warnings {
			if containsAnyMarker(message, []string{"temporal"}) {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("scalar source against json target warns on shape", func(t *testing.T) {
		result := evaluator.EvaluateMapping(models.Mapping{
			SourceField: models.Field{Name: "meta", Type: "string"},
			TargetField: models.Field{Name: "meta", Type: "jsonb"},
		})

		found := false
		for _, message := range result.Warnings {
			if containsAnyMarker(message, []string{"object-shaped"}) {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("clean mapping scores a perfect 100", func(t *testing.T) {
		result := evaluator.EvaluateMapping(models.Mapping{
			SourceField: models.Field{Name: "title", Type: "string", Nullable: false},
			TargetField: models.Field{Name: "title", Type: "varchar(255)"},
		})

		assert.True(t, result.IsValid)
		assert.Empty(t, result.Warnings)
		assert.Equal(t, 100, result.Score)
	})
}

func TestEvaluateMappingScoring(t *testing.T) {
	evaluator := newTestEvaluator()

	// One failed rule out of the fixed battery of ten.
	result := evaluator.EvaluateMapping(models.Mapping{
		SourceField: models.Field{Name: "email", Type: "string"},
		TargetField: models.Field{
			Name:        "email",
			Type:        "varchar(255)",
			Constraints: models.ConstraintList{models.ConstraintUnique},
		},
	})
	assert.Equal(t, 90, result.Score)

	// Scores never leave [0, 100].
	worst := evaluator.EvaluateMapping(models.Mapping{})
	assert.GreaterOrEqual(t, worst.Score, 0)
	assert.LessOrEqual(t, worst.Score, 100)
}

func TestProperty_ConstraintHardStop(t *testing.T) {
	evaluator := newTestEvaluator()
	properties := gopter.NewProperties(nil)

	properties.Property("nullable source into NOT NULL target is never valid", prop.ForAll(
		func(sourceType, targetType string) bool {
			result := evaluator.EvaluateMapping(models.Mapping{
				SourceField: models.Field{Name: "src", Type: sourceType, Nullable: true},
				TargetField: models.Field{
					Name:        "dst",
					Type:        targetType,
					Constraints: models.ConstraintList{models.ConstraintNotNull},
				},
			})
			return !result.IsValid
		},
		gen.OneConstOf("string", "number", "boolean", "date", "object"),
		gen.OneConstOf("varchar(255)", "int", "bit", "datetime", "jsonb"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_EvaluateMappingTotalAndIdempotent(t *testing.T) {
	evaluator := newTestEvaluator()
	properties := gopter.NewProperties(nil)

	properties.Property("any mapping-shaped value yields a renderable result twice over", prop.ForAll(
		func(sourceName, sourceType, targetName, targetType string, nullable bool) bool {
			mapping := models.Mapping{
				SourceField: models.Field{Name: sourceName, Type: sourceType, Nullable: nullable},
				TargetField: models.Field{Name: targetName, Type: targetType},
			}

			first := evaluator.EvaluateMapping(mapping)
			second := evaluator.EvaluateMapping(mapping)

			if first.Errors == nil || first.Warnings == nil || first.Suggestions == nil {
				return false
			}
			return assert.ObjectsAreEqual(first, second)
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
