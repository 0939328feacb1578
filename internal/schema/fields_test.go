package schema

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"
)

const fixtureDoc = `{
	"5": {
		"fields": {
			"D_ThreadGender": {"display": "Thread Gender", "used": true, "type": "Select", "options": ["Male", "Female"]},
			"D_SizeA": {"display": "Size A", "used": true, "type": "Number"},
			"D_Grade": {"display": "Grade", "used": false},
			"D_Orientation": {"used": true}
		}
	},
	"9": {
		"fields": {}
	}
}`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "product_attributes.json")
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFieldsForFiltersAndOrders(t *testing.T) {
	r := Load(writeFixture(t, fixtureDoc))
	assert.Equal(t, 2, r.CategoryCount())

	fields := r.FieldsFor(5)
	assert.Equal(t, 3, len(fields))

	// Sorted by field name, unused entries dropped.
	assert.Equal(t, "D_Orientation", fields[0].Name)
	assert.Equal(t, "D_SizeA", fields[1].Name)
	assert.Equal(t, "D_ThreadGender", fields[2].Name)

	// Display falls back to the field name, type is lowercased with a
	// text default.
	assert.Equal(t, "D_Orientation", fields[0].Display)
	assert.Equal(t, "text", fields[0].Type)
	assert.Equal(t, "Size A", fields[1].Display)
	assert.Equal(t, "number", fields[1].Type)
	assert.Equal(t, "select", fields[2].Type)
	assert.DeepEqual(t, []string{"Male", "Female"}, fields[2].Options)
}

func TestFieldsForUnknownCategory(t *testing.T) {
	r := Load(writeFixture(t, fixtureDoc))
	assert.Equal(t, 0, len(r.FieldsFor(404)))
}

func TestFieldsForCategoryWithNoActiveFields(t *testing.T) {
	r := Load(writeFixture(t, fixtureDoc))
	assert.Equal(t, 0, len(r.FieldsFor(9)))
}

func TestLoadMissingFileDegrades(t *testing.T) {
	r := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Equal(t, 0, r.CategoryCount())
	assert.Equal(t, 0, len(r.FieldsFor(5)))
}

func TestLoadCorruptFileDegrades(t *testing.T) {
	r := Load(writeFixture(t, "{broken"))
	assert.Equal(t, 0, r.CategoryCount())
	assert.Equal(t, 0, len(r.FieldsFor(5)))
}
