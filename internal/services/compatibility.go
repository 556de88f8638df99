package services

import (
	"fmt"
	"strings"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// typeRule is one entry of the compatibility table. A rule matches when any
// source alias is contained in the normalized source type AND any target
// alias is contained in the normalized target type. The table is consulted
// in declaration order and the first match wins, so narrow entries (e.g.
// varchar(1), tinyint) must precede the broad entries whose aliases they
// contain.
type typeRule struct {
	sourceAliases []string
	targetAliases []string
	level         models.CompatibilityLevel
	verdict       string
	suggestions   []string
}

// compatibilityTable is the fixed classification table. Order is part of
// the contract; do not sort or reorder entries.
var compatibilityTable = []typeRule{
	{
		sourceAliases: []string{"function", "undefined", "symbol"},
		targetAliases: []string{"varchar", "nvarchar", "char", "nchar", "text", "longtext", "clob"},
		level:         models.CompatibilityError,
		verdict:       "value is not serializable",
		suggestions:   []string{"drop non-serializable fields or convert them upstream before mapping"},
	},
	{
		sourceAliases: []string{"string", "text"},
		targetAliases: []string{"varchar(1)", "char(1)", "nchar(1)"},
		level:         models.CompatibilityWarning,
		verdict:       "single-character column risks truncation",
		suggestions:   []string{"widen the target column or shorten source values"},
	},
	{
		sourceAliases: []string{"string", "text"},
		targetAliases: []string{"date", "datetime", "timestamp", "time"},
		level:         models.CompatibilityWarning,
		verdict:       "string values need date-format validation before loading",
		suggestions: []string{
			"validate sample values against the expected date format",
			"agree on one canonical date format with the API producer",
		},
	},
	{
		sourceAliases: []string{"string", "text"},
		targetAliases: []string{"bigint", "smallint", "int", "integer", "decimal", "numeric", "float", "double", "real"},
		level:         models.CompatibilityWarning,
		verdict:       "string values must parse as numbers",
		suggestions:   []string{"verify sample values are numeric before running the configuration"},
	},
	{
		sourceAliases: []string{"string", "text"},
		targetAliases: []string{"varchar", "nvarchar", "char", "nchar", "text", "longtext", "clob"},
		level:         models.CompatibilityCompatible,
		verdict:       "text maps directly",
		suggestions:   []string{"set an explicit VARCHAR length sized for expected values"},
	},
	{
		sourceAliases: []string{"boolean", "bool"},
		targetAliases: []string{"bit", "boolean", "tinyint(1)"},
		level:         models.CompatibilityCompatible,
		verdict:       "boolean maps directly",
		suggestions:   []string{"confirm the driver's boolean literal convention (0/1 vs true/false)"},
	},
	{
		sourceAliases: []string{"number", "integer", "int", "float", "double"},
		targetAliases: []string{"tinyint"},
		level:         models.CompatibilityWarning,
		verdict:       "tinyint holds 0-255 unsigned or -128-127 signed; larger values overflow",
		suggestions:   []string{"use SMALLINT or INT when values can exceed the tinyint range"},
	},
	{
		sourceAliases: []string{"number", "integer", "int"},
		targetAliases: []string{"bigint", "smallint", "int", "integer"},
		level:         models.CompatibilityCompatible,
		verdict:       "numeric value maps directly",
		suggestions:   []string{"use BIGINT for identifiers that can exceed 32 bits"},
	},
	{
		sourceAliases: []string{"number", "integer", "int", "float", "double"},
		targetAliases: []string{"decimal", "numeric", "float", "double", "real"},
		level:         models.CompatibilityCompatible,
		verdict:       "numeric value maps directly",
		suggestions:   []string{"declare explicit DECIMAL precision and scale"},
	},
	{
		sourceAliases: []string{"date", "datetime", "timestamp", "time"},
		targetAliases: []string{"datetime2", "datetime", "timestamp", "date", "time"},
		level:         models.CompatibilityCompatible,
		verdict:       "temporal value maps directly",
		suggestions:   []string{"normalize timezones before loading"},
	},
	{
		sourceAliases: []string{"object", "json", "array"},
		targetAliases: []string{"jsonb", "json", "varchar(max)", "longtext", "clob", "text"},
		level:         models.CompatibilityCompatible,
		verdict:       "structured value serializes to the target",
		suggestions:   []string{"prefer JSONB over JSON on PostgreSQL targets"},
	},
	{
		sourceAliases: []string{"buffer", "binary", "blob", "bytes"},
		targetAliases: []string{"varbinary", "binary", "blob", "image"},
		level:         models.CompatibilityCompatible,
		verdict:       "binary value maps directly",
		suggestions:   []string{"verify maximum payload size against the target column"},
	},
}

// compatibilityService implements CompatibilityResolver
type compatibilityService struct {
	logger *logger.Logger
}

// NewCompatibilityService creates a new type compatibility resolver
func NewCompatibilityService(logger *logger.Logger) CompatibilityResolver {
	return &compatibilityService{logger: logger}
}

// Resolve classifies the pairing of a source JSON type and a target SQL
// type. It is total: any pair of strings yields one of the three levels,
// unknown pairings degrade to an error verdict.
func (s *compatibilityService) Resolve(sourceType, targetType string) models.TypeCompatibilityResult {
	source := strings.ToLower(strings.TrimSpace(sourceType))
	target := strings.ToLower(strings.TrimSpace(targetType))

	for _, rule := range compatibilityTable {
		if !containsAny(source, rule.sourceAliases) || !containsAny(target, rule.targetAliases) {
			continue
		}

		result := models.TypeCompatibilityResult{
			Level:       rule.level,
			Message:     fmt.Sprintf("%s -> %s: %s", sourceType, targetType, rule.verdict),
			Suggestions: append([]string{}, rule.suggestions...),
		}
		result.Suggestions = append(result.Suggestions, categoryAdvice(source, target)...)
		return result
	}

	s.logger.WithFields(map[string]interface{}{
		"source_type": sourceType,
		"target_type": targetType,
	}).Debug("No conversion path for type pairing")

	return models.TypeCompatibilityResult{
		Level:       models.CompatibilityError,
		Message:     fmt.Sprintf("type incompatibility: no known conversion from %q to %q", sourceType, targetType),
		Suggestions: []string{"map this field to a column of a compatible type or transform the value upstream"},
	}
}

// containsAny reports whether any alias is a substring of the input
func containsAny(input string, aliases []string) bool {
	for _, alias := range aliases {
		if strings.Contains(input, alias) {
			return true
		}
	}
	return false
}

// categoryAdvice returns generic advice for the broad category a pairing
// falls into, appended after the matched rule's own suggestions
func categoryAdvice(source, target string) []string {
	var advice []string
	if strings.Contains(target, "char") && strings.Contains(source, "string") {
		advice = append(advice, "review expected value lengths when sizing character columns")
	}
	if strings.Contains(target, "decimal") || strings.Contains(target, "numeric") {
		advice = append(advice, "monetary and measured values should carry explicit precision and scale")
	}
	if strings.Contains(target, "date") || strings.Contains(target, "time") ||
		strings.Contains(source, "date") {
		advice = append(advice, "enable date-format validation and review timezone handling")
	}
	if strings.Contains(target, "json") {
		advice = append(advice, "index JSON columns only on extracted expressions")
	}
	return advice
}
