package models

// CompatibilityLevel is the three-level verdict of the type compatibility
// resolver
type CompatibilityLevel string

const (
	CompatibilityCompatible CompatibilityLevel = "compatible"
	CompatibilityWarning    CompatibilityLevel = "warning"
	CompatibilityError      CompatibilityLevel = "error"
)

// TypeCompatibilityResult is the verdict for one (sourceType, targetType)
// pairing
type TypeCompatibilityResult struct {
	Level       CompatibilityLevel `json:"level"`
	Message     string             `json:"message"`
	Suggestions []string           `json:"suggestions"`
}

// RuleDetails records which rule families passed for one mapping
type RuleDetails struct {
	TypeCompatibility       bool `json:"typeCompatibility"`
	ConstraintValidation    bool `json:"constraintValidation"`
	FormatValidation        bool `json:"formatValidation"`
	SizeValidation          bool `json:"sizeValidation"`
	RequiredFieldValidation bool `json:"requiredFieldValidation"`
}

// ValidationResult is the full rule-engine outcome for one mapping.
// Compatibility mirrors the raw type resolver level; IsValid answers
// whether the mapping is deployable as configured. Derived, never persisted.
type ValidationResult struct {
	IsValid       bool               `json:"isValid"`
	Errors        []string           `json:"errors"`
	Warnings      []string           `json:"warnings"`
	Suggestions   []string           `json:"suggestions"`
	Compatibility CompatibilityLevel `json:"compatibility"`
	Score         int                `json:"score"`
	Details       RuleDetails        `json:"details"`
}

// SummaryStatus is the whole-configuration health state
type SummaryStatus string

const (
	SummaryValid   SummaryStatus = "valid"
	SummaryWarning SummaryStatus = "warning"
	SummaryError   SummaryStatus = "error"
)

// ValidationSummary is the roll-up over a mapping set. The counters always
// satisfy validMappings + warningMappings + errorMappings == totalMappings.
type ValidationSummary struct {
	Status          SummaryStatus `json:"status"`
	TotalMappings   int           `json:"totalMappings"`
	ValidMappings   int           `json:"validMappings"`
	WarningMappings int           `json:"warningMappings"`
	ErrorMappings   int           `json:"errorMappings"`
	OverallScore    int           `json:"overallScore"`
	Errors          []string      `json:"errors"`
	Warnings        []string      `json:"warnings"`
	Suggestions     []string      `json:"suggestions"`
	CriticalIssues  []string      `json:"criticalIssues"`
	FixableIssues   []string      `json:"fixableIssues"`
}

// FormatCheckResult is the outcome of a named-format check on a value
type FormatCheckResult struct {
	IsValid     bool     `json:"isValid"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// SizeCheckResult is the outcome of a size/precision check on a value
type SizeCheckResult struct {
	IsValid     bool     `json:"isValid"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}
