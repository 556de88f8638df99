package services

import (
	"math"
	"strings"
	"time"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/config"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// Substrings used to classify aggregated error strings. Best-effort string
// matching mirrors what the UI prioritization expects; the aggregator never
// re-interprets the errors beyond this.
var (
	criticalMarkers = []string{"PRIMARY KEY", "NOT NULL", "incompatibility"}
	fixableMarkers  = []string{"format", "length", "precision"}
)

// validationAggregator implements MappingAggregator
type validationAggregator struct {
	logger    *logger.Logger
	evaluator MappingEvaluator
	debounce  time.Duration
}

// NewValidationAggregator creates a new validation aggregator
func NewValidationAggregator(
	logger *logger.Logger,
	cfg *config.Config,
	evaluator MappingEvaluator,
) MappingAggregator {
	debounce := time.Duration(cfg.Validation.DebounceMS) * time.Millisecond
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &validationAggregator{
		logger:    logger,
		evaluator: evaluator,
		debounce:  debounce,
	}
}

// SummarizeMappings evaluates every mapping and folds the results into one
// configuration-level summary. An empty set is deliberately a warning, not
// a valid state: an empty configuration is incomplete, not healthy.
func (a *validationAggregator) SummarizeMappings(mappings []models.Mapping) models.ValidationSummary {
	if len(mappings) == 0 {
		return models.ValidationSummary{
			Status:          models.SummaryWarning,
			TotalMappings:   0,
			ValidMappings:   0,
			WarningMappings: 0,
			ErrorMappings:   0,
			OverallScore:    0,
			Errors:          []string{},
			Warnings:        []string{"no mappings to validate"},
			Suggestions:     []string{"add at least one field mapping before saving the configuration"},
			CriticalIssues:  []string{},
			FixableIssues:   []string{},
		}
	}

	summary := models.ValidationSummary{
		TotalMappings:  len(mappings),
		Errors:         []string{},
		Warnings:       []string{},
		Suggestions:    []string{},
		CriticalIssues: []string{},
		FixableIssues:  []string{},
	}

	scoreSum := 0
	for _, mapping := range mappings {
		result := a.evaluator.EvaluateMapping(mapping)
		scoreSum += result.Score

		switch {
		case len(result.Errors) > 0:
			summary.ErrorMappings++
		case len(result.Warnings) > 0:
			summary.WarningMappings++
		default:
			summary.ValidMappings++
		}

		// Concatenation preserves mapping iteration order; duplicates are
		// kept so counts stay meaningful per mapping.
		summary.Errors = append(summary.Errors, result.Errors...)
		summary.Warnings = append(summary.Warnings, result.Warnings...)
		summary.Suggestions = append(summary.Suggestions, result.Suggestions...)
	}

	for _, message := range summary.Errors {
		if containsAnyMarker(message, criticalMarkers) {
			summary.CriticalIssues = append(summary.CriticalIssues, message)
		}
		if containsAnyMarker(message, fixableMarkers) {
			summary.FixableIssues = append(summary.FixableIssues, message)
		}
	}

	summary.OverallScore = int(math.Round(float64(scoreSum) / float64(len(mappings))))

	switch {
	case summary.ErrorMappings > 0:
		summary.Status = models.SummaryError
	case summary.WarningMappings > 0:
		summary.Status = models.SummaryWarning
	default:
		summary.Status = models.SummaryValid
	}

	a.logger.WithFields(map[string]interface{}{
		"total":    summary.TotalMappings,
		"valid":    summary.ValidMappings,
		"warnings": summary.WarningMappings,
		"errors":   summary.ErrorMappings,
		"score":    summary.OverallScore,
		"status":   summary.Status,
	}).Debug("Mapping set summarized")

	return summary
}

// Observe starts a debounced watcher over a mapping set. The fetch callback
// supplies the current mappings; onChange receives the summary after the
// quiet period. Call Notify on every edit and Unsubscribe when done.
func (a *validationAggregator) Observe(
	fetch func() []models.Mapping,
	onChange func(models.ValidationSummary),
) *ValidationWatcher {
	return newValidationWatcher(a, a.debounce, fetch, onChange)
}

func containsAnyMarker(message string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}
