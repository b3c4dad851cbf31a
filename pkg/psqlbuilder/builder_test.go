package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "price").
		From("court_price_rules").
		Where(squirrel.Eq{"court_id": "c-1"}).
		Where(squirrel.Eq{"rule_type": "date"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, price FROM court_price_rules WHERE court_id = $1 AND rule_type = $2", query)
	assert.Equal(t, []interface{}{"c-1", "date"}, args)
}

func TestInsert_WithReturning(t *testing.T) {
	query, _, err := Insert("bookings").
		Columns("user_id", "total_amount").
		Values(1, 80000).
		Suffix("RETURNING id").
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO bookings (user_id,total_amount) VALUES ($1,$2) RETURNING id", query)
}
