package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

func TestExtractFields(t *testing.T) {
	service := NewFieldExtractionService(newTestLogger())
	ctx := context.Background()

	t.Run("flat payload yields one field per key in sorted order", func(t *testing.T) {
		fields, err := service.ExtractFields(ctx, map[string]interface{}{
			"name":   "Ada",
			"age":    36.0,
			"active": true,
		})
		require.NoError(t, err)
		require.Len(t, fields, 3)

		assert.Equal(t, "active", fields[0].Name)
		assert.Equal(t, "boolean", fields[0].Type)
		assert.Equal(t, "age", fields[1].Name)
		assert.Equal(t, "integer", fields[1].Type)
		assert.Equal(t, "name", fields[2].Name)
		assert.Equal(t, "string", fields[2].Type)

		for _, field := range fields {
			assert.Equal(t, models.OriginAPI, field.Origin)
			assert.NotEmpty(t, field.ID)
		}
	})

	t.Run("nested objects flatten with dotted paths", func(t *testing.T) {
		fields, err := service.ExtractFields(ctx, map[string]interface{}{
			"user": map[string]interface{}{
				"email": "ada@example.com",
			},
		})
		require.NoError(t, err)
		require.Len(t, fields, 2)

		assert.Equal(t, "user", fields[0].Name)
		assert.Equal(t, "object", fields[0].Type)
		assert.Equal(t, "user", fields[0].Path)

		assert.Equal(t, "email", fields[1].Name)
		assert.Equal(t, "string", fields[1].Type)
		assert.Equal(t, "user.email", fields[1].Path)
		assert.Equal(t, "ada@example.com", fields[1].Sample)
	})

	t.Run("arrays describe their first element", func(t *testing.T) {
		fields, err := service.ExtractFields(ctx, map[string]interface{}{
			"tags": []interface{}{"alpha", "beta"},
		})
		require.NoError(t, err)
		require.Len(t, fields, 2)

		assert.Equal(t, "array", fields[0].Type)
		assert.Equal(t, "tags", fields[0].Path)
		assert.Equal(t, "string", fields[1].Type)
		assert.Equal(t, "tags[0]", fields[1].Path)
	})

	t.Run("null values become nullable string fields", func(t *testing.T) {
		fields, err := service.ExtractFields(ctx, map[string]interface{}{
			"middle_name": nil,
		})
		require.NoError(t, err)
		require.Len(t, fields, 1)

		assert.True(t, fields[0].Nullable)
		assert.Equal(t, "string", fields[0].Type)
	})

	t.Run("ISO date strings are typed as dates", func(t *testing.T) {
		fields, err := service.ExtractFields(ctx, map[string]interface{}{
			"created_at": "2024-03-15T10:30:00Z",
			"birthday":   "1990-06-01",
			"note":       "2024 was a good year",
		})
		require.NoError(t, err)
		require.Len(t, fields, 3)

		assert.Equal(t, "date", fields[0].Type)
		assert.Equal(t, "date", fields[1].Type)
		assert.Equal(t, "string", fields[2].Type)
	})

	t.Run("fractional numbers are typed as number", func(t *testing.T) {
		fields, err := service.ExtractFields(ctx, map[string]interface{}{
			"price": 19.99,
		})
		require.NoError(t, err)
		assert.Equal(t, "number", fields[0].Type)
	})

	t.Run("empty payload is rejected", func(t *testing.T) {
		_, err := service.ExtractFields(ctx, map[string]interface{}{})
		assert.Error(t, err)
	})

	t.Run("extraction is deterministic across runs", func(t *testing.T) {
		payload := map[string]interface{}{
			"b": 1.0,
			"a": "x",
			"c": map[string]interface{}{"z": true, "y": "deep"},
		}

		first, err := service.ExtractFields(ctx, payload)
		require.NoError(t, err)
		second, err := service.ExtractFields(ctx, payload)
		require.NoError(t, err)

		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].Name, second[i].Name)
			assert.Equal(t, first[i].Path, second[i].Path)
			assert.Equal(t, first[i].Type, second[i].Type)
		}
	})
}

func TestLooksLikeDate(t *testing.T) {
	assert.True(t, looksLikeDate("2024-03-15"))
	assert.True(t, looksLikeDate("2024-03-15T10:30:00Z"))
	assert.True(t, looksLikeDate("2024-03-15 10:30:00"))
	assert.False(t, looksLikeDate("15/03/2024"))
	assert.False(t, looksLikeDate("2024-13-45"))
	assert.False(t, looksLikeDate("hello"))
}
