package domain

import (
	"testing"

	"gotest.tools/assert"
)

func TestNormalizeDocumentedShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want Status
	}{
		{"nil", nil, NotAvailable},
		{"bool true", true, Available},
		{"bool false", false, NotAvailable},
		{"int zero", 0, Available},
		{"int one", 1, NotAvailable},
		{"int other", 42, NotAvailable},
		{"float zero", 0.0, Available},
		{"float truncates to zero", 0.7, Available},
		{"float one", 1.0, NotAvailable},
		{"string available", "Available", Available},
		{"string enabled", "Enabled", Available},
		{"string true", "true", Available},
		{"string zero", "0", Available},
		{"string active", "ACTIVE", Available},
		{"string padded", "  enabled  ", Available},
		{"string not available", "Not Available", NotAvailable},
		{"string disabled", "Disabled", NotAvailable},
		{"string false", "false", NotAvailable},
		{"string one", "1", NotAvailable},
		{"string inactive", "Inactive", NotAvailable},
		{"string unknown", "Discontinued", NotAvailable},
		{"object Value int", map[string]any{"Value": 1}, NotAvailable},
		{"object Value zero", map[string]any{"Value": 0}, Available},
		{"object isAvailable false", map[string]any{"isAvailable": false}, NotAvailable},
		{"object isAvailable true", map[string]any{"isAvailable": true}, Available},
		{"object Name string", map[string]any{"Name": "Enabled"}, Available},
		{"object nested", map[string]any{"Status": map[string]any{"value": "disabled"}}, NotAvailable},
		{"object web_status", map[string]any{"web_status": "0"}, Available},
		{"object unknown keys", map[string]any{"Banana": 1}, NotAvailable},
		{"unsupported shape", []any{1, 2}, NotAvailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.raw))
		})
	}
}

func TestNormalizeObjectKeyPrecedence(t *testing.T) {
	// Value outranks every other key, even when the others disagree.
	raw := map[string]any{
		"Value":       0,
		"isAvailable": false,
		"Status":      "Disabled",
	}
	assert.Equal(t, Available, Normalize(raw))
}

func TestStatusRoundTrip(t *testing.T) {
	for _, status := range []Status{Available, NotAvailable} {
		assert.Equal(t, status, Normalize(status.Enum()))
		assert.Equal(t, status, Normalize(status.Code()))
	}
}

func TestStatusProjections(t *testing.T) {
	assert.Equal(t, 0, Available.Code())
	assert.Equal(t, 1, NotAvailable.Code())
	assert.Equal(t, true, Available.IsAvailable())
	assert.Equal(t, false, NotAvailable.IsAvailable())
	assert.Equal(t, "Enabled", Available.Enum())
	assert.Equal(t, "Disabled", NotAvailable.Enum())
	assert.Equal(t, "Available", Available.Label())
	assert.Equal(t, "Not Available", NotAvailable.Label())
}

func TestWriteEnum(t *testing.T) {
	assert.Equal(t, "Enabled", WriteEnum(true))
	assert.Equal(t, "Enabled", WriteEnum(0))
	assert.Equal(t, "Enabled", WriteEnum("active"))
	assert.Equal(t, "Disabled", WriteEnum(false))
	assert.Equal(t, "Disabled", WriteEnum(nil))
	assert.Equal(t, "Disabled", WriteEnum(map[string]any{"Value": 1}))

	// Unknown strings are upstream enum members; the write path must not
	// destroy them.
	assert.Equal(t, "Discontinued", WriteEnum("Discontinued"))
	assert.Equal(t, "Disabled", WriteEnum(""))
}
