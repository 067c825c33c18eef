package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstString(t *testing.T) {
	rec := map[string]any{
		"vin":       "  ",
		"vinNumber": "WP0AB2Y1XNSA54321",
		"carCode":   nil,
		"car_code":  "PO-7",
		"id":        17,
		"vinAlias":  []string{"x"},
	}

	assert.Equal(t, "WP0AB2Y1XNSA54321", firstString(rec, "vin", "vinNumber"))
	assert.Equal(t, "PO-7", firstString(rec, "carCode", "car_code"))
	assert.Equal(t, "17", firstString(rec, "id"))
	assert.Empty(t, firstString(rec, "vinAlias"))
	assert.Empty(t, firstString(rec, "missing"))
}
