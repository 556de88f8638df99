package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// totalRuleCount is the fixed scoring denominator. Every rule is evaluated
// for every mapping; inapplicable rules pass trivially, so the denominator
// never varies by mapping.
const totalRuleCount = 10

// Field-name keywords that trigger advisory format rules
var formatHintKeywords = []string{"email", "phone", "uuid"}

// mappingValidationService implements MappingEvaluator
type mappingValidationService struct {
	logger   *logger.Logger
	resolver CompatibilityResolver
	formats  *FormatValidator
	sizes    *SizeValidator
}

// NewMappingValidationService creates a new mapping rule engine
func NewMappingValidationService(
	logger *logger.Logger,
	resolver CompatibilityResolver,
	formats *FormatValidator,
	sizes *SizeValidator,
) MappingEvaluator {
	return &mappingValidationService{
		logger:   logger,
		resolver: resolver,
		formats:  formats,
		sizes:    sizes,
	}
}

// ruleOutcome accumulates the fold over the rule battery
type ruleOutcome struct {
	errors      []string
	warnings    []string
	suggestions []string
	failed      int
}

func (o *ruleOutcome) addError(message string) {
	o.errors = append(o.errors, message)
}

func (o *ruleOutcome) addWarning(message string) {
	o.warnings = append(o.warnings, message)
}

func (o *ruleOutcome) addSuggestions(suggestions ...string) {
	o.suggestions = append(o.suggestions, suggestions...)
}

// EvaluateMapping runs the fixed rule battery against one mapping. The
// engine is total: any Mapping-shaped value produces a ValidationResult,
// never a panic. Absent constraints behave as an empty set; absent
// nullability behaves as false.
func (s *mappingValidationService) EvaluateMapping(mapping models.Mapping) models.ValidationResult {
	source := mapping.SourceField
	target := mapping.TargetField
	outcome := &ruleOutcome{}

	// Rule 1: raw type compatibility. The result's Compatibility field
	// mirrors this verdict alone: it answers "are the types reconcilable",
	// while IsValid answers "is the mapping deployable as configured".
	compat := s.resolver.Resolve(source.Type, target.Type)
	switch compat.Level {
	case models.CompatibilityError:
		outcome.addError(compat.Message)
		outcome.failed++
	case models.CompatibilityWarning:
		outcome.addWarning(compat.Message)
		outcome.failed++
	}
	outcome.addSuggestions(compat.Suggestions...)

	// Rule 2: NOT NULL. A nullable source can never feed a NOT NULL column.
	notNullOK := true
	if target.Constraints.Has(models.ConstraintNotNull) && source.Nullable {
		outcome.addError(fmt.Sprintf(
			"source field %q is nullable but target column %q requires NOT NULL",
			source.Name, target.Name))
		outcome.failed++
		notNullOK = false
	}

	// Rule 3: PRIMARY KEY. Same hard stop, independent of rule 2.
	primaryKeyOK := true
	if target.Constraints.Has(models.ConstraintPrimaryKey) && source.Nullable {
		outcome.addError(fmt.Sprintf(
			"target column %q is a PRIMARY KEY and cannot accept nullable source field %q",
			target.Name, source.Name))
		outcome.failed++
		primaryKeyOK = false
	}

	// Rule 4: UNIQUE reminder. Uniqueness cannot be verified statically.
	if target.Constraints.Has(models.ConstraintUnique) {
		outcome.addWarning(fmt.Sprintf(
			"target column %q is UNIQUE; uniqueness of source values cannot be verified statically",
			target.Name))
		outcome.addSuggestions("deduplicate source data before running the configuration")
		outcome.failed++
	}

	// Rule 5: required-field completeness.
	requiredOK := true
	if strings.TrimSpace(source.Name) == "" || strings.TrimSpace(target.Name) == "" {
		outcome.addError("required field mapping incomplete: both source and target field names must be present")
		outcome.failed++
		requiredOK = false
	}

	// Rule 6: name-hint format checks. Advisory: a real sample value turns
	// the hint into a warning on mismatch; without a sample it only yields
	// a suggestion, never a pass/fail outcome.
	formatOK := s.applyFormatRule(source, target, outcome)

	// Rules 7 and 8: character and decimal size checks. Warnings only.
	varcharOK := s.applyCharacterSizeRule(source, target, outcome)
	decimalOK := s.applyDecimalRule(source, target, outcome)

	// Rule 9: date fitness of the source shape.
	dateOK := true
	targetType := target.NormalizedType()
	sourceType := source.NormalizedType()
	if strings.Contains(targetType, "date") || strings.Contains(targetType, "time") {
		if !strings.Contains(sourceType, "date") && !strings.Contains(sourceType, "time") &&
			!strings.Contains(sourceType, "string") {
			outcome.addWarning(fmt.Sprintf(
				"target column %q expects temporal data but source type %q is not date-like",
				target.Name, source.Type))
			outcome.failed++
			dateOK = false
		}
	}

	// Rule 10: JSON fitness of the source shape.
	jsonOK := true
	if strings.Contains(targetType, "json") {
		if !strings.Contains(sourceType, "object") && !strings.Contains(sourceType, "array") &&
			!strings.Contains(sourceType, "json") {
			outcome.addWarning(fmt.Sprintf(
				"target column %q expects JSON but source type %q is not object-shaped",
				target.Name, source.Type))
			outcome.failed++
			jsonOK = false
		}
	}

	_, _ = dateOK, jsonOK

	passed := totalRuleCount - outcome.failed
	score := int(math.Round(100 * float64(passed) / float64(totalRuleCount)))

	result := models.ValidationResult{
		IsValid:       len(outcome.errors) == 0,
		Errors:        emptyIfNil(outcome.errors),
		Warnings:      emptyIfNil(outcome.warnings),
		Suggestions:   emptyIfNil(outcome.suggestions),
		Compatibility: compat.Level,
		Score:         score,
		Details: models.RuleDetails{
			TypeCompatibility:       compat.Level != models.CompatibilityError,
			ConstraintValidation:    notNullOK && primaryKeyOK,
			FormatValidation:        formatOK,
			SizeValidation:          varcharOK && decimalOK,
			RequiredFieldValidation: requiredOK,
		},
	}

	s.logger.WithMapping(mapping.ID).WithFields(map[string]interface{}{
		"score":         result.Score,
		"compatibility": result.Compatibility,
		"errors":        len(result.Errors),
		"warnings":      len(result.Warnings),
	}).Debug("Mapping evaluated")

	return result
}

// applyFormatRule fires when a field name hints at a known format
func (s *mappingValidationService) applyFormatRule(source, target models.Field, outcome *ruleOutcome) bool {
	hint := detectFormatHint(source.Name, target.Name)
	if hint == "" {
		return true
	}

	sample, hasSample := source.Sample.(string)
	if !hasSample || sample == "" {
		outcome.addSuggestions(fmt.Sprintf(
			"field name suggests %s content; capture sample values to enable format validation", hint))
		return true
	}

	check := s.formats.ValidateFormat(hint, sample)
	outcome.addSuggestions(check.Suggestions...)
	if !check.IsValid {
		outcome.addWarning(fmt.Sprintf("%s format check: %s", hint, check.Message))
		outcome.failed++
		return false
	}
	return true
}

// applyCharacterSizeRule checks sample string lengths against varchar/text
// targets. Shortfalls downgrade to warnings, never errors.
func (s *mappingValidationService) applyCharacterSizeRule(source, target models.Field, outcome *ruleOutcome) bool {
	targetType := target.NormalizedType()
	if !strings.Contains(targetType, "varchar") && !strings.Contains(targetType, "text") {
		return true
	}
	if _, ok := source.Sample.(string); !ok {
		return true
	}

	check := s.sizes.ValidateSize(target.Type, source.Sample)
	outcome.addSuggestions(check.Suggestions...)
	if !check.IsValid || len(check.Suggestions) > 0 {
		outcome.addWarning(fmt.Sprintf("length check for column %q: %s", target.Name, check.Message))
		outcome.failed++
		return false
	}
	return true
}

// applyDecimalRule checks sample numeric precision against decimal targets
func (s *mappingValidationService) applyDecimalRule(source, target models.Field, outcome *ruleOutcome) bool {
	targetType := target.NormalizedType()
	if !strings.Contains(targetType, "decimal") && !strings.Contains(targetType, "numeric") {
		return true
	}
	if _, ok := numericValue(source.Sample); !ok {
		return true
	}

	check := s.sizes.ValidateSize(target.Type, source.Sample)
	outcome.addSuggestions(check.Suggestions...)
	if len(check.Suggestions) > 0 {
		outcome.addWarning(fmt.Sprintf("precision check for column %q: %s", target.Name, check.Message))
		outcome.failed++
		return false
	}
	return true
}

// detectFormatHint returns the first known format keyword contained in
// either field name
func detectFormatHint(sourceName, targetName string) string {
	src := strings.ToLower(sourceName)
	tgt := strings.ToLower(targetName)
	for _, keyword := range formatHintKeywords {
		if strings.Contains(src, keyword) || strings.Contains(tgt, keyword) {
			return keyword
		}
	}
	return ""
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
