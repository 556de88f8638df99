package services

import (
	"sync"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

func newTestAggregator() MappingAggregator {
	return NewValidationAggregator(newTestLogger(), newTestValidationConfig(), newTestEvaluator())
}

func validMapping() models.Mapping {
	return models.Mapping{
		SourceField: models.Field{Name: "title", Type: "string", Nullable: false},
		TargetField: models.Field{Name: "title", Type: "varchar(255)"},
	}
}

func warningMapping() models.Mapping {
	return models.Mapping{
		SourceField: models.Field{Name: "email", Type: "string", Nullable: false},
		TargetField: models.Field{
			Name:        "email",
			Type:        "varchar(255)",
			Constraints: models.ConstraintList{models.ConstraintUnique},
		},
	}
}

func errorMapping() models.Mapping {
	return models.Mapping{
		SourceField: models.Field{Name: "age", Type: "number", Nullable: true},
		TargetField: models.Field{
			Name:        "age",
			Type:        "tinyint",
			Constraints: models.ConstraintList{models.ConstraintNotNull},
		},
	}
}

func TestSummarizeMappings(t *testing.T) {
	aggregator := newTestAggregator()

	t.Run("empty set is a warning not a crash", func(t *testing.T) {
		summary := aggregator.SummarizeMappings(nil)

		assert.Equal(t, models.SummaryWarning, summary.Status)
		assert.Equal(t, 0, summary.TotalMappings)
		assert.Equal(t, 0, summary.ValidMappings)
		assert.Equal(t, 0, summary.WarningMappings)
		assert.Equal(t, 0, summary.ErrorMappings)
		assert.Equal(t, 0, summary.OverallScore)
		require.Len(t, summary.Warnings, 1)
		assert.Contains(t, summary.Warnings[0], "no mappings")
		assert.NotNil(t, summary.Errors)
		assert.NotNil(t, summary.CriticalIssues)
	})

	t.Run("mixed set counts every mapping exactly once", func(t *testing.T) {
		summary := aggregator.SummarizeMappings([]models.Mapping{
			errorMapping(),
			warningMapping(),
			validMapping(),
		})

		assert.Equal(t, 3, summary.TotalMappings)
		assert.Equal(t, 1, summary.ValidMappings)
		assert.Equal(t, 1, summary.WarningMappings)
		assert.Equal(t, 1, summary.ErrorMappings)
		assert.Equal(t, models.SummaryError, summary.Status)
	})

	t.Run("all clean set is valid", func(t *testing.T) {
		summary := aggregator.SummarizeMappings([]models.Mapping{validMapping(), validMapping()})

		assert.Equal(t, models.SummaryValid, summary.Status)
		assert.Equal(t, 100, summary.OverallScore)
		assert.Empty(t, summary.Errors)
	})

	t.Run("warnings without errors downgrade to warning status", func(t *testing.T) {
		summary := aggregator.SummarizeMappings([]models.Mapping{validMapping(), warningMapping()})
		assert.Equal(t, models.SummaryWarning, summary.Status)
	})

	t.Run("constraint violations surface as critical issues", func(t *testing.T) {
		summary := aggregator.SummarizeMappings([]models.Mapping{errorMapping()})

		require.NotEmpty(t, summary.CriticalIssues)
		assert.Contains(t, summary.CriticalIssues[0], "NOT NULL")
	})

	t.Run("unknown conversions classify as critical", func(t *testing.T) {
		summary := aggregator.SummarizeMappings([]models.Mapping{{
			SourceField: models.Field{Name: "shape", Type: "geometry"},
			TargetField: models.Field{Name: "shape", Type: "varbinary"},
		}})

		require.NotEmpty(t, summary.CriticalIssues)
		assert.Contains(t, summary.CriticalIssues[0], "incompatibility")
	})

	t.Run("duplicate messages are preserved not deduplicated", func(t *testing.T) {
		summary := aggregator.SummarizeMappings([]models.Mapping{warningMapping(), warningMapping()})
		assert.Len(t, summary.Warnings, 2)
	})
}

func TestProperty_SummaryCounterInvariant(t *testing.T) {
	aggregator := newTestAggregator()
	properties := gopter.NewProperties(nil)

	mappingGen := gen.OneConstOf(0, 1, 2)

	properties.Property("valid + warning + error always equals total", prop.ForAll(
		func(kinds []int) bool {
			mappings := make([]models.Mapping, len(kinds))
			for i, kind := range kinds {
				switch kind {
				case 0:
					mappings[i] = validMapping()
				case 1:
					mappings[i] = warningMapping()
				default:
					mappings[i] = errorMapping()
				}
			}

			summary := aggregator.SummarizeMappings(mappings)
			sum := summary.ValidMappings + summary.WarningMappings + summary.ErrorMappings
			if sum != summary.TotalMappings || summary.TotalMappings != len(mappings) {
				return false
			}
			return summary.OverallScore >= 0 && summary.OverallScore <= 100
		},
		gen.SliceOf(mappingGen),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestValidationWatcher(t *testing.T) {
	t.Run("rapid notifies coalesce into one recomputation", func(t *testing.T) {
		aggregator := newTestAggregator()

		var mu sync.Mutex
		var delivered []models.ValidationSummary

		watcher := newValidationWatcher(aggregator, 50*time.Millisecond,
			func() []models.Mapping { return []models.Mapping{validMapping()} },
			func(summary models.ValidationSummary) {
				mu.Lock()
				delivered = append(delivered, summary)
				mu.Unlock()
			},
		)
		defer watcher.Unsubscribe()

		for i := 0; i < 10; i++ {
			watcher.Notify()
			time.Sleep(5 * time.Millisecond)
		}

		time.Sleep(200 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, delivered, 1)
		assert.Equal(t, models.SummaryValid, delivered[0].Status)
	})

	t.Run("unsubscribe drops pending recomputations", func(t *testing.T) {
		aggregator := newTestAggregator()

		var mu sync.Mutex
		count := 0

		watcher := newValidationWatcher(aggregator, 50*time.Millisecond,
			func() []models.Mapping { return nil },
			func(models.ValidationSummary) {
				mu.Lock()
				count++
				mu.Unlock()
			},
		)

		watcher.Notify()
		watcher.Unsubscribe()

		time.Sleep(150 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 0, count)
	})

	t.Run("flush delivers immediately", func(t *testing.T) {
		aggregator := newTestAggregator()

		var mu sync.Mutex
		var delivered []models.ValidationSummary

		watcher := newValidationWatcher(aggregator, time.Hour,
			func() []models.Mapping { return []models.Mapping{errorMapping()} },
			func(summary models.ValidationSummary) {
				mu.Lock()
				delivered = append(delivered, summary)
				mu.Unlock()
			},
		)
		defer watcher.Unsubscribe()

		watcher.Notify()
		watcher.Flush()

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, delivered, 1)
		assert.Equal(t, models.SummaryError, delivered[0].Status)
	})

	t.Run("observe wires the aggregator's configured debounce", func(t *testing.T) {
		aggregator := newTestAggregator()

		watcher := aggregator.Observe(
			func() []models.Mapping { return nil },
			func(models.ValidationSummary) {},
		)
		require.NotNil(t, watcher)
		watcher.Unsubscribe()
	})
}
