package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// maxExtractionDepth bounds the recursive walk so pathological payloads
// cannot blow the stack
const maxExtractionDepth = 16

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ]\d{2}:\d{2}(:\d{2})?(\.\d+)?(Z|[+-]\d{2}:?\d{2})?)?$`)

// fieldExtractionService implements FieldExtractionService
type fieldExtractionService struct {
	logger *logger.Logger
}

// NewFieldExtractionService creates a new field extraction service
func NewFieldExtractionService(logger *logger.Logger) FieldExtractionService {
	return &fieldExtractionService{logger: logger}
}

// ExtractFields walks a sample JSON payload and derives one Field per node,
// leaves and containers alike. Containers are emitted too so that whole
// objects can be mapped to JSON columns. Keys are visited in sorted order,
// so the same payload always yields fields in the same order.
func (s *fieldExtractionService) ExtractFields(ctx context.Context, payload map[string]interface{}) (models.FieldList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("sample payload is empty")
	}

	fields := models.FieldList{}
	s.walkObject(payload, "", 0, &fields)

	s.logger.WithFields(map[string]interface{}{
		"field_count": len(fields),
	}).Debug("Fields extracted from sample payload")

	return fields, nil
}

func (s *fieldExtractionService) walkObject(node map[string]interface{}, prefix string, depth int, fields *models.FieldList) {
	if depth > maxExtractionDepth {
		return
	}

	keys := make([]string, 0, len(node))
	for key := range node {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		s.walkValue(key, path, node[key], depth, fields)
	}
}

func (s *fieldExtractionService) walkValue(name, path string, value interface{}, depth int, fields *models.FieldList) {
	switch v := value.(type) {
	case map[string]interface{}:
		*fields = append(*fields, s.newField(name, path, "object", false, value))
		s.walkObject(v, path, depth+1, fields)
	case []interface{}:
		*fields = append(*fields, s.newField(name, path, "array", false, value))
		// The first element stands in for the array's item shape.
		if len(v) > 0 {
			s.walkValue(name, path+"[0]", v[0], depth+1, fields)
		}
	case nil:
		*fields = append(*fields, s.newField(name, path, "string", true, nil))
	default:
		*fields = append(*fields, s.newField(name, path, inferScalarType(value), false, value))
	}
}

func (s *fieldExtractionService) newField(name, path, fieldType string, nullable bool, sample interface{}) models.Field {
	return models.Field{
		ID:       uuid.New().String(),
		Name:     name,
		Type:     fieldType,
		Nullable: nullable,
		Origin:   models.OriginAPI,
		Path:     path,
		Sample:   sample,
	}
}

// inferScalarType maps a decoded JSON scalar onto the source type vocabulary
// the compatibility table understands
func inferScalarType(value interface{}) string {
	switch v := value.(type) {
	case bool:
		return "boolean"
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < math.MaxInt64 {
			return "integer"
		}
		return "number"
	case string:
		if looksLikeDate(v) {
			return "date"
		}
		return "string"
	default:
		return "string"
	}
}

// looksLikeDate reports whether a string sample parses as an ISO 8601 date
// or timestamp
func looksLikeDate(value string) bool {
	if !isoDatePattern.MatchString(value) {
		return false
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
