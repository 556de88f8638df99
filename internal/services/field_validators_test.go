package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidator(t *testing.T) {
	validator := NewFormatValidator(newTestLogger())

	t.Run("email", func(t *testing.T) {
		assert.True(t, validator.ValidateFormat("email", "john@example.com").IsValid)
		assert.False(t, validator.ValidateFormat("email", "not-an-address").IsValid)
		assert.False(t, validator.ValidateFormat("email", "john @example.com").IsValid)
	})

	t.Run("phone", func(t *testing.T) {
		assert.True(t, validator.ValidateFormat("phone", "+4412345678").IsValid)
		assert.True(t, validator.ValidateFormat("phone", "15551234567").IsValid)
		assert.False(t, validator.ValidateFormat("phone", "01234").IsValid)
		assert.False(t, validator.ValidateFormat("phone", "555-1234").IsValid)
	})

	t.Run("uuid", func(t *testing.T) {
		assert.True(t, validator.ValidateFormat("uuid", "6f1c2a9e-0b6d-4c1f-9d7a-2f3b4c5d6e7f").IsValid)
		assert.True(t, validator.ValidateFormat("uuid", "6F1C2A9E-0B6D-4C1F-9D7A-2F3B4C5D6E7F").IsValid)
		assert.False(t, validator.ValidateFormat("uuid", "6f1c2a9e0b6d4c1f9d7a2f3b4c5d6e7f").IsValid)
	})

	t.Run("url", func(t *testing.T) {
		assert.True(t, validator.ValidateFormat("url", "https://example.com/path").IsValid)
		assert.False(t, validator.ValidateFormat("url", "example.com").IsValid)
	})

	t.Run("ip", func(t *testing.T) {
		assert.True(t, validator.ValidateFormat("ip", "192.168.1.1").IsValid)
		assert.False(t, validator.ValidateFormat("ip", "256.1.1.1").IsValid)
	})

	t.Run("unknown format names validate as a no-op", func(t *testing.T) {
		result := validator.ValidateFormat("postcode", "anything")
		assert.True(t, result.IsValid)
		assert.Contains(t, result.Message, "no validator registered")
	})

	t.Run("mismatches carry remediation advice", func(t *testing.T) {
		result := validator.ValidateFormat("email", "bad")
		require.Len(t, result.Suggestions, 1)
		assert.NotEmpty(t, result.Suggestions[0])
	})
}

func TestSizeValidator(t *testing.T) {
	validator := NewSizeValidator(newTestLogger(), newTestValidationConfig())

	t.Run("short string fits declared varchar", func(t *testing.T) {
		result := validator.ValidateSize("varchar(50)", "hello")
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Suggestions)
	})

	t.Run("string past declared length suggests widening", func(t *testing.T) {
		result := validator.ValidateSize("varchar(4)", "abcdefghij")
		assert.True(t, result.IsValid)
		require.NotEmpty(t, result.Suggestions)
		assert.Contains(t, result.Suggestions[0], "declared length")
	})

	t.Run("string past the hard maximum is invalid", func(t *testing.T) {
		result := validator.ValidateSize("varchar(100)", strings.Repeat("x", 70000))
		assert.False(t, result.IsValid)
	})

	t.Run("string past the advisory threshold suggests review", func(t *testing.T) {
		result := validator.ValidateSize("varchar", strings.Repeat("x", 300))
		assert.True(t, result.IsValid)
		assert.NotEmpty(t, result.Suggestions)
	})

	t.Run("int range", func(t *testing.T) {
		assert.True(t, validator.ValidateSize("int", 2147483647).IsValid)
		assert.False(t, validator.ValidateSize("int", 2147483648.0).IsValid)
		assert.True(t, validator.ValidateSize("bigint", 2147483648.0).IsValid)
	})

	t.Run("bigint wins over the int substring", func(t *testing.T) {
		// "bigint" contains "int"; the wider range must apply.
		result := validator.ValidateSize("bigint", 9.0e18)
		assert.True(t, result.IsValid)
	})

	t.Run("bigint boundary classifies exactly", func(t *testing.T) {
		// 2^63 is the first float64 past the bigint range; MaxInt64 itself
		// is not representable, so the nearest float64 below must fit and
		// 2^63 must not.
		assert.False(t, validator.ValidateSize("bigint", 9223372036854775808.0).IsValid)
		assert.True(t, validator.ValidateSize("bigint", 9223372036854774784.0).IsValid)
		assert.True(t, validator.ValidateSize("bigint", -9223372036854775808.0).IsValid)
		assert.False(t, validator.ValidateSize("bigint", -9223372036854777856.0).IsValid)
	})

	t.Run("numeric strings coerce before range checks", func(t *testing.T) {
		assert.True(t, validator.ValidateSize("int", "1024").IsValid)
		assert.True(t, validator.ValidateSize("int", "not a number").IsValid)
	})

	t.Run("decimal precision is informational only", func(t *testing.T) {
		result := validator.ValidateSize("decimal(5,2)", 12345.678)
		assert.True(t, result.IsValid)
		require.NotEmpty(t, result.Suggestions)
		assert.Contains(t, result.Suggestions[0], "precision")
	})

	t.Run("types without a size policy always pass", func(t *testing.T) {
		result := validator.ValidateSize("jsonb", map[string]interface{}{"a": 1})
		assert.True(t, result.IsValid)
	})
}

func TestDeclaredTypeParsing(t *testing.T) {
	length, ok := declaredLength("varchar(255)")
	assert.True(t, ok)
	assert.Equal(t, 255, length)

	_, ok = declaredLength("text")
	assert.False(t, ok)

	precision, scale, ok := declaredPrecision("decimal(10, 2)")
	assert.True(t, ok)
	assert.Equal(t, 10, precision)
	assert.Equal(t, 2, scale)

	_, _, ok = declaredPrecision("decimal(10)")
	assert.False(t, ok)
}

func TestDecimalDigits(t *testing.T) {
	precision, scale := decimalDigits(12345.678)
	assert.Equal(t, 8, precision)
	assert.Equal(t, 3, scale)

	precision, scale = decimalDigits(100)
	assert.Equal(t, 3, precision)
	assert.Equal(t, 0, scale)

	precision, scale = decimalDigits(-0.25)
	assert.Equal(t, 2, precision)
	assert.Equal(t, 2, scale)
}
