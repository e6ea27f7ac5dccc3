package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProduct_DiscountStateValid(t *testing.T) {
	cases := []struct {
		name    string
		product Product
		valid   bool
	}{
		{"catalog product without discount", Product{HasDiscount: false, Discount: 0}, true},
		{"catalog product carrying discount", Product{HasDiscount: false, Discount: 10}, false},
		{"outlet product with discount", Product{HasDiscount: true, Discount: 30}, true},
		{"outlet product without discount", Product{HasDiscount: true, Discount: 0}, false},
		{"outlet product over 100", Product{HasDiscount: true, Discount: 101}, false},
		{"outlet product at 100", Product{HasDiscount: true, Discount: 100}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.valid, tc.product.DiscountStateValid())
		})
	}
}

func TestProduct_InOutlet(t *testing.T) {
	require.False(t, (&Product{}).InOutlet())
	require.True(t, (&Product{HasDiscount: true, Discount: 20}).InOutlet())
}

func TestIdentity(t *testing.T) {
	require.True(t, Identity{}.Anonymous())
	require.False(t, Identity{ID: 1, Role: RoleUser}.Anonymous())
	require.False(t, Identity{ID: 1, Role: RoleUser}.IsAdmin())
	require.True(t, Identity{ID: 1, Role: RoleAdmin}.IsAdmin())
}

func TestRole_Valid(t *testing.T) {
	require.True(t, RoleUser.Valid())
	require.True(t, RoleAdmin.Valid())
	require.False(t, Role("superuser").Valid())
}
