package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelations_SetNullOnlyOnNullableColumns(t *testing.T) {
	for _, r := range Relations {
		if r.OnDelete == SetNull {
			assert.Truef(t, r.Nullable, "%s.%s is SET NULL but not nullable", r.Table, r.Column)
		}
	}
}

func TestDependentsOf(t *testing.T) {
	deps := DependentsOf("customers")
	tables := make([]string, 0, len(deps))
	for _, d := range deps {
		tables = append(tables, d.Table)
	}
	assert.ElementsMatch(t, []string{"carts", "orders", "order_history", "checkout_details"}, tables)
	assert.Empty(t, DependentsOf("cart_items"))
}

func TestDeletePolicyString(t *testing.T) {
	assert.Equal(t, "CASCADE", Cascade.String())
	assert.Equal(t, "SET NULL", SetNull.String())
}
