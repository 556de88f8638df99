package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/config"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// Named format patterns. The set is fixed; unknown format names are a
// deliberate no-op because format hints are best-effort, not a closed type
// system.
var formatPatterns = map[string]*regexp.Regexp{
	"email": regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`),
	"phone": regexp.MustCompile(`^[+]?[1-9]\d{0,15}$`),
	"url":   regexp.MustCompile(`^https?://.+`),
	"uuid":  regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`),
	"ip":    regexp.MustCompile(`^(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)(\.(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)){3}$`),
}

var formatAdvice = map[string]string{
	"email": "normalize addresses to lowercase before loading",
	"phone": "strip separators and store numbers in E.164 form",
	"url":   "store absolute URLs including the scheme",
	"uuid":  "store UUIDs in canonical lowercase 8-4-4-4-12 form",
	"ip":    "consider a native inet column type where the target supports it",
}

// FormatValidator runs named-format checks against sample values
type FormatValidator struct {
	logger *logger.Logger
}

// NewFormatValidator creates a new format validator
func NewFormatValidator(logger *logger.Logger) *FormatValidator {
	return &FormatValidator{logger: logger}
}

// ValidateFormat checks a value against a named format. Unknown format
// names always validate.
func (v *FormatValidator) ValidateFormat(formatName, value string) models.FormatCheckResult {
	name := strings.ToLower(strings.TrimSpace(formatName))

	pattern, known := formatPatterns[name]
	if !known {
		return models.FormatCheckResult{
			IsValid:     true,
			Message:     fmt.Sprintf("no validator registered for format %q; value accepted", formatName),
			Suggestions: []string{},
		}
	}

	if pattern.MatchString(value) {
		return models.FormatCheckResult{
			IsValid:     true,
			Message:     fmt.Sprintf("value matches %s format", name),
			Suggestions: []string{},
		}
	}

	return models.FormatCheckResult{
		IsValid:     false,
		Message:     fmt.Sprintf("value %q does not match %s format", value, name),
		Suggestions: []string{formatAdvice[name]},
	}
}

// SizeValidator runs size and precision checks against sample values
type SizeValidator struct {
	logger *logger.Logger
	cfg    config.ValidationConfig
}

// NewSizeValidator creates a new size validator
func NewSizeValidator(logger *logger.Logger, cfg *config.Config) *SizeValidator {
	return &SizeValidator{logger: logger, cfg: cfg.Validation}
}

var declaredLengthPattern = regexp.MustCompile(`\((\d+)\s*(?:,\s*(\d+))?\)`)

// ValidateSize checks a sample value against the size limits implied by the
// target SQL type. Character overlength below the hard maximum and decimal
// precision shortfalls surface as suggestions; only integer range overflow
// and the absolute character maximum invalidate the value.
func (v *SizeValidator) ValidateSize(sqlType string, value interface{}) models.SizeCheckResult {
	t := strings.ToLower(strings.TrimSpace(sqlType))

	switch {
	case strings.Contains(t, "varchar") || strings.Contains(t, "text"):
		return v.validateCharacterSize(t, value)
	case strings.Contains(t, "decimal") || strings.Contains(t, "numeric"):
		return v.validateDecimalSize(t, value)
	case strings.Contains(t, "bigint"):
		return v.validateIntegerRange(t, value, math.MinInt64, math.MaxInt64)
	case strings.Contains(t, "int"):
		return v.validateIntegerRange(t, value, math.MinInt32, math.MaxInt32)
	default:
		return models.SizeCheckResult{
			IsValid:     true,
			Message:     fmt.Sprintf("no size policy for type %q", sqlType),
			Suggestions: []string{},
		}
	}
}

func (v *SizeValidator) validateCharacterSize(sqlType string, value interface{}) models.SizeCheckResult {
	text, ok := value.(string)
	if !ok {
		return models.SizeCheckResult{
			IsValid:     true,
			Message:     "no sample string available; character length not checked",
			Suggestions: []string{},
		}
	}

	length := utf8.RuneCountInString(text)

	if length > v.cfg.MaxVarcharLength {
		return models.SizeCheckResult{
			IsValid:     false,
			Message:     fmt.Sprintf("sample length %d exceeds the maximum character length %d", length, v.cfg.MaxVarcharLength),
			Suggestions: []string{"use a TEXT or CLOB column for oversized values"},
		}
	}

	var suggestions []string
	if declared, ok := declaredLength(sqlType); ok && length > declared {
		suggestions = append(suggestions,
			fmt.Sprintf("sample length %d exceeds the declared length %d; widen the column", length, declared))
	}

	warnAt := v.cfg.VarcharWarnLength
	if strings.Contains(sqlType, "text") {
		warnAt = v.cfg.TextWarnLength
	}
	if length > warnAt {
		suggestions = append(suggestions,
			fmt.Sprintf("sample length %d is past the advisory threshold %d; confirm the column is sized intentionally", length, warnAt))
	}

	if suggestions == nil {
		suggestions = []string{}
	}

	return models.SizeCheckResult{
		IsValid:     true,
		Message:     fmt.Sprintf("sample length %d fits type %q", length, sqlType),
		Suggestions: suggestions,
	}
}

func (v *SizeValidator) validateIntegerRange(sqlType string, value interface{}, min, max int64) models.SizeCheckResult {
	number, ok := numericValue(value)
	if !ok {
		return models.SizeCheckResult{
			IsValid:     true,
			Message:     "no numeric sample available; integer range not checked",
			Suggestions: []string{},
		}
	}

	if !integerInRange(number, min, max) {
		return models.SizeCheckResult{
			IsValid:     false,
			Message:     fmt.Sprintf("sample value %v is outside the %s range", value, sqlType),
			Suggestions: []string{"use a wider integer type or DECIMAL for this field"},
		}
	}

	return models.SizeCheckResult{
		IsValid:     true,
		Message:     fmt.Sprintf("sample value %v fits the %s range", value, sqlType),
		Suggestions: []string{},
	}
}

// integerInRange compares a float64 sample against int64 bounds. MaxInt64
// is not exactly representable as float64 (it rounds up to 2^63), so that
// bound is checked as an exclusive comparison against 2^63; every other
// bound in use converts exactly.
func integerInRange(number float64, min, max int64) bool {
	if number < float64(min) {
		return false
	}
	if max == math.MaxInt64 {
		return number < 9223372036854775808.0
	}
	return number <= float64(max)
}

func (v *SizeValidator) validateDecimalSize(sqlType string, value interface{}) models.SizeCheckResult {
	number, ok := numericValue(value)
	if !ok {
		return models.SizeCheckResult{
			IsValid:     true,
			Message:     "no numeric sample available; precision not checked",
			Suggestions: []string{},
		}
	}

	precision, scale := decimalDigits(number)

	var suggestions []string
	if precision > v.cfg.MaxDecimalPrecision {
		suggestions = append(suggestions,
			fmt.Sprintf("sample precision %d exceeds the supported maximum %d", precision, v.cfg.MaxDecimalPrecision))
	}
	if scale > v.cfg.MaxDecimalScale {
		suggestions = append(suggestions,
			fmt.Sprintf("sample scale %d exceeds the supported maximum %d", scale, v.cfg.MaxDecimalScale))
	}
	if declaredPrec, declaredScale, ok := declaredPrecision(sqlType); ok {
		if precision > declaredPrec || scale > declaredScale {
			suggestions = append(suggestions,
				fmt.Sprintf("sample needs precision %d and scale %d; the column declares (%d,%d)", precision, scale, declaredPrec, declaredScale))
		}
	}

	if suggestions == nil {
		suggestions = []string{}
	}

	// Informational only: precision shortfalls never invalidate a sample.
	return models.SizeCheckResult{
		IsValid:     true,
		Message:     fmt.Sprintf("sample value %v carries precision %d, scale %d", value, precision, scale),
		Suggestions: suggestions,
	}
}

// numericValue coerces the sample value shapes produced by JSON decoding
func numericValue(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// decimalDigits derives (precision, scale) from a sample number's shortest
// decimal rendering
func decimalDigits(number float64) (int, int) {
	text := strconv.FormatFloat(math.Abs(number), 'f', -1, 64)
	parts := strings.SplitN(text, ".", 2)

	intDigits := len(strings.TrimLeft(parts[0], "0"))
	scale := 0
	if len(parts) == 2 {
		scale = len(parts[1])
	}
	return intDigits + scale, scale
}

// declaredLength parses the N out of varchar(N) style type strings
func declaredLength(sqlType string) (int, bool) {
	match := declaredLengthPattern.FindStringSubmatch(sqlType)
	if match == nil {
		return 0, false
	}
	length, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return length, true
}

// declaredPrecision parses (P,S) out of decimal(P,S) style type strings
func declaredPrecision(sqlType string) (int, int, bool) {
	match := declaredLengthPattern.FindStringSubmatch(sqlType)
	if match == nil || match[2] == "" {
		return 0, 0, false
	}
	precision, err1 := strconv.Atoi(match[1])
	scale, err2 := strconv.Atoi(match[2])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return precision, scale, true
}
