package sqltemplate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   map[string]any
		want     string
	}{
		{
			name:     "string value is quoted",
			template: "SELECT * FROM T WHERE name = {name}",
			params:   map[string]any{"name": "maria"},
			want:     "SELECT * FROM T WHERE name = 'maria'",
		},
		{
			name:     "quote in value is doubled",
			template: "SELECT * FROM T WHERE name = {name}",
			params:   map[string]any{"name": "o'brien"},
			want:     "SELECT * FROM T WHERE name = 'o''brien'",
		},
		{
			name:     "injection attempt stays inside the literal",
			template: "SELECT * FROM T WHERE name = {name}",
			params:   map[string]any{"name": "'; DROP TABLE T; --"},
			want:     "SELECT * FROM T WHERE name = '''; DROP TABLE T; --'",
		},
		{
			name:     "integer is bare",
			template: "SELECT * FROM T WHERE id = {id}",
			params:   map[string]any{"id": 42},
			want:     "SELECT * FROM T WHERE id = 42",
		},
		{
			name:     "multiple placeholders",
			template: "SELECT * FROM T WHERE id = {id} AND active = {active}",
			params:   map[string]any{"id": int64(7), "active": true},
			want:     "SELECT * FROM T WHERE id = 7 AND active = 1",
		},
		{
			name:     "same placeholder twice",
			template: "SELECT {v} AS a, {v} AS b",
			params:   map[string]any{"v": 1},
			want:     "SELECT 1 AS a, 1 AS b",
		},
		{
			name:     "slice becomes IN list",
			template: "SELECT * FROM T WHERE id IN {ids}",
			params:   map[string]any{"ids": []int{1, 2, 3}},
			want:     "SELECT * FROM T WHERE id IN (1, 2, 3)",
		},
		{
			name:     "nil becomes NULL",
			template: "UPDATE T SET x = {x}",
			params:   map[string]any{"x": nil},
			want:     "UPDATE T SET x = NULL",
		},
		{
			name:     "no placeholders passes through",
			template: "SELECT 1",
			params:   nil,
			want:     "SELECT 1",
		},
		{
			name:     "extra params are ignored",
			template: "SELECT {a}",
			params:   map[string]any{"a": 1, "b": 2},
			want:     "SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interpolate(tt.template, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterpolate_Errors(t *testing.T) {
	_, err := Interpolate("SELECT {missing}", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")

	_, err = Interpolate("SELECT {v}", map[string]any{"v": struct{}{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported value type")

	_, err = Interpolate("SELECT * FROM T WHERE id IN {ids}", map[string]any{"ids": []int{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty list")
}

func TestQuoteLiteral(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "abc", "'abc'"},
		{"empty string", "", "''"},
		{"bool false", false, "0"},
		{"float", 3.5, "3.5"},
		{"json number int", json.Number("10"), "10"},
		{"json number float", json.Number("2.25"), "2.25"},
		{"uint", uint(9), "9"},
		{"string slice", []string{"a", "b"}, "('a', 'b')"},
		{
			"time is quoted UTC",
			time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
			"'2025-03-01 10:30:00'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QuoteLiteral(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := QuoteLiteral(json.Number("not-a-number"))
	require.Error(t, err)
}

func TestValidIdentifier(t *testing.T) {
	assert.True(t, ValidIdentifier("Contratos_VIEW"))
	assert.True(t, ValidIdentifier("dbo.Contratos"))
	assert.True(t, ValidIdentifier("_tmp$1"))

	assert.False(t, ValidIdentifier(""))
	assert.False(t, ValidIdentifier("1table"))
	assert.False(t, ValidIdentifier("users; DROP TABLE x"))
	assert.False(t, ValidIdentifier("a..b"))
	assert.False(t, ValidIdentifier("name with space"))
}
