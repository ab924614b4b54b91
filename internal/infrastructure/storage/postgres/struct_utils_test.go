package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gyh/internal/core/entity"
	"gyh/internal/core/id"
)

type mockCatalog struct {
	entity.BaseEntity
	Name   string  `db:"name" json:"name"`
	Factor float64 `db:"conversion_factor" json:"conversionFactor"`
	Skip   string  `db:"-" json:"skip"`
}

func TestExtractDBColumns_EmbeddedFields(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{
		"id", "version", "created_at", "updated_at", "name", "conversion_factor",
	}
	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
}

func TestStructToMap_EmbeddedFields(t *testing.T) {
	now := time.Now().UTC()
	cat := mockCatalog{
		BaseEntity: entity.BaseEntity{
			ID:        id.New(),
			Version:   5,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:   "Kion Primera",
		Factor: 22,
		Skip:   "ignored",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, "Kion Primera", m["name"])
	assert.Equal(t, 22.0, m["conversion_factor"])
	assert.NotContains(t, m, "-")
	assert.NotContains(t, m, "skip")
}

func TestStructToMap_PointerInput(t *testing.T) {
	cat := &mockCatalog{Name: "Curcuma"}
	m := StructToMap(cat)
	assert.Equal(t, "Curcuma", m["name"])
}
