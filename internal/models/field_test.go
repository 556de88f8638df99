package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConstraint(t *testing.T) {
	cases := []struct {
		token string
		want  ConstraintKind
		ok    bool
	}{
		{"PRIMARY KEY", ConstraintPrimaryKey, true},
		{"primary key", ConstraintPrimaryKey, true},
		{"PRIMARY_KEY", ConstraintPrimaryKey, true},
		{"PK", ConstraintPrimaryKey, true},
		{"pk", ConstraintPrimaryKey, true},
		{"  unique  ", ConstraintUnique, true},
		{"NOT_NULL", ConstraintNotNull, true},
		{"not null", ConstraintNotNull, true},
		{"FOREIGN KEY", "", false},
		{"", "", false},
		{"nonsense", "", false},
	}

	for _, c := range cases {
		kind, ok := ParseConstraint(c.token)
		assert.Equal(t, c.ok, ok, "token %q", c.token)
		if c.ok {
			assert.Equal(t, c.want, kind, "token %q", c.token)
		}
	}
}

func TestNormalizeConstraints(t *testing.T) {
	t.Run("drops duplicates and unknown tokens", func(t *testing.T) {
		list := NormalizeConstraints([]string{
			"PRIMARY KEY",
			"pk",
			"NOT_NULL",
			"CHECK (age > 0)",
			"unique",
		})

		assert.Equal(t, ConstraintList{ConstraintPrimaryKey, ConstraintNotNull, ConstraintUnique}, list)
	})

	t.Run("empty input yields empty list", func(t *testing.T) {
		assert.Empty(t, NormalizeConstraints(nil))
		assert.Empty(t, NormalizeConstraints([]string{"bogus"}))
	})
}

func TestConstraintListHas(t *testing.T) {
	list := ConstraintList{ConstraintUnique, ConstraintNotNull}

	assert.True(t, list.Has(ConstraintUnique))
	assert.True(t, list.Has(ConstraintNotNull))
	assert.False(t, list.Has(ConstraintPrimaryKey))
	assert.False(t, ConstraintList(nil).Has(ConstraintUnique))
}

func TestFieldNormalizedType(t *testing.T) {
	assert.Equal(t, "varchar(255)", Field{Type: "  VARCHAR(255) "}.NormalizedType())
	assert.Equal(t, "string", Field{Type: "String"}.NormalizedType())
}

func TestConstraintListScan(t *testing.T) {
	t.Run("round trips through driver value", func(t *testing.T) {
		original := ConstraintList{ConstraintPrimaryKey, ConstraintNotNull}

		value, err := original.Value()
		assert.NoError(t, err)

		var scanned ConstraintList
		assert.NoError(t, scanned.Scan(value.([]byte)))
		assert.Equal(t, original, scanned)
	})

	t.Run("nil column scans to empty list", func(t *testing.T) {
		var scanned ConstraintList
		assert.NoError(t, scanned.Scan(nil))
		assert.Empty(t, scanned)
	})

	t.Run("unsupported column type errors", func(t *testing.T) {
		var scanned ConstraintList
		assert.Error(t, scanned.Scan(42))
	})
}
