package services

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/config"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

func newTestLogger() *logger.Logger {
	return logger.NewLogger(&config.Config{
		Logging: config.LoggingConfig{
			Level:  "error",
			Format: "json",
		},
	})
}

func newTestValidationConfig() *config.Config {
	return &config.Config{
		Logging: config.LoggingConfig{Level: "error", Format: "json"},
		Validation: config.ValidationConfig{
			DebounceMS:          500,
			VarcharWarnLength:   255,
			TextWarnLength:      1000,
			MaxVarcharLength:    65535,
			MaxDecimalPrecision: 65,
			MaxDecimalScale:     30,
		},
	}
}

func TestResolveCompatibility(t *testing.T) {
	resolver := NewCompatibilityService(newTestLogger())

	t.Run("string maps directly to varchar", func(t *testing.T) {
		result := resolver.Resolve("string", "varchar(255)")

		assert.Equal(t, models.CompatibilityCompatible, result.Level)
		assert.Contains(t, result.Message, "string")
		assert.Contains(t, result.Message, "varchar(255)")
		assert.NotEmpty(t, result.Suggestions)
	})

	t.Run("boolean maps directly to bit", func(t *testing.T) {
		result := resolver.Resolve("boolean", "bit")
		assert.Equal(t, models.CompatibilityCompatible, result.Level)
	})

	t.Run("number to tinyint warns about overflow", func(t *testing.T) {
		result := resolver.Resolve("number", "tinyint")

		assert.Equal(t, models.CompatibilityWarning, result.Level)
		assert.Contains(t, result.Message, "overflow")
	})

	t.Run("string to int warns about numeric parsing", func(t *testing.T) {
		result := resolver.Resolve("string", "int")

		assert.Equal(t, models.CompatibilityWarning, result.Level)
		assert.Contains(t, result.Message, "parse as numbers")
	})

	t.Run("string to date warns about format validation", func(t *testing.T) {
		result := resolver.Resolve("string", "datetime")

		assert.Equal(t, models.CompatibilityWarning, result.Level)
		assert.Contains(t, result.Message, "date-format")
	})

	t.Run("function to varchar is not serializable", func(t *testing.T) {
		result := resolver.Resolve("function", "varchar(255)")

		assert.Equal(t, models.CompatibilityError, result.Level)
		assert.Contains(t, result.Message, "not serializable")
	})

	t.Run("object maps to jsonb", func(t *testing.T) {
		result := resolver.Resolve("object", "jsonb")
		assert.Equal(t, models.CompatibilityCompatible, result.Level)
	})

	t.Run("unknown pairing degrades to error", func(t *testing.T) {
		result := resolver.Resolve("geometry", "varbinary")

		assert.Equal(t, models.CompatibilityError, result.Level)
		assert.Contains(t, result.Message, "incompatibility")
		assert.NotEmpty(t, result.Suggestions)
	})

	t.Run("matching is case and whitespace insensitive", func(t *testing.T) {
		result := resolver.Resolve("  String ", "VARCHAR(255)")
		assert.Equal(t, models.CompatibilityCompatible, result.Level)
	})
}

func TestResolveTableOrderDeterminism(t *testing.T) {
	resolver := NewCompatibilityService(newTestLogger())

	// varchar(1) is also a substring match for the broad varchar entry; the
	// narrow single-character entry is declared first and must win.
	result := resolver.Resolve("string", "varchar(1)")

	assert.Equal(t, models.CompatibilityWarning, result.Level)
	assert.Contains(t, result.Message, "truncation")

	// tinyint contains "int"; the tinyint entry must win over the broad
	// integer entry.
	result = resolver.Resolve("number", "tinyint")
	assert.Equal(t, models.CompatibilityWarning, result.Level)
}

func TestProperty_ResolveTotality(t *testing.T) {
	resolver := NewCompatibilityService(newTestLogger())
	properties := gopter.NewProperties(nil)

	properties.Property("any pair of strings yields exactly one known level", prop.ForAll(
		func(sourceType, targetType string) bool {
			result := resolver.Resolve(sourceType, targetType)

			switch result.Level {
			case models.CompatibilityCompatible, models.CompatibilityWarning, models.CompatibilityError:
			default:
				return false
			}
			return result.Message != "" && result.Suggestions != nil
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
