package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNewPurchasedItem(t *testing.T) {
	t.Run("normalizes product type case", func(t *testing.T) {
		item, err := NewPurchasedItem("service", 10, 2, nil)
		require.NoError(t, err)
		assert.Equal(t, ProductTypeService, item.ProductType)
	})

	t.Run("quantity below 1 defaults to 1", func(t *testing.T) {
		item, err := NewPurchasedItem("PRODUCT", 10, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, item.Quantity)
	})

	t.Run("rejects unknown product type", func(t *testing.T) {
		_, err := NewPurchasedItem("GADGET", 10, 1, nil)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("rejects non-positive product id", func(t *testing.T) {
		_, err := NewPurchasedItem("PRODUCT", 0, 1, nil)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewPurchasedItem("PRODUCT", 10, 1, dec("-0.01"))
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestTriggerMappingMatches_Gates(t *testing.T) {
	mapping, err := NewTriggerMapping(101, 55, ProductTypeProduct, 2, dec("50.00"))
	require.NoError(t, err)

	t.Run("quantity below minimum excluded regardless of amount", func(t *testing.T) {
		item, _ := NewPurchasedItem("PRODUCT", 101, 1, dec("999.00"))
		assert.False(t, mapping.Matches(item))
	})

	t.Run("amount below minimum excluded", func(t *testing.T) {
		item, _ := NewPurchasedItem("PRODUCT", 101, 2, dec("49.99"))
		assert.False(t, mapping.Matches(item))
	})

	t.Run("amount equal to minimum included", func(t *testing.T) {
		item, _ := NewPurchasedItem("PRODUCT", 101, 2, dec("50.00"))
		assert.True(t, mapping.Matches(item))
	})

	t.Run("missing amount fails a present min_amount", func(t *testing.T) {
		item, _ := NewPurchasedItem("PRODUCT", 101, 2, nil)
		assert.False(t, mapping.Matches(item))
	})
}

func TestTriggerMappingMatches_TypeMismatch(t *testing.T) {
	mapping, err := NewTriggerMapping(101, 55, ProductTypeService, 1, nil)
	require.NoError(t, err)

	item, _ := NewPurchasedItem("PRODUCT", 101, 5, dec("100.00"))
	assert.False(t, mapping.Matches(item), "SERVICE mapping must never match a PRODUCT item even with the same id")
}

func TestTriggerMappingDefaultsToProduct(t *testing.T) {
	mapping, err := NewTriggerMapping(101, 55, "", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, ProductTypeProduct, mapping.ProductType)
}

func TestResolveEligibilities_Dedup(t *testing.T) {
	m1, _ := NewTriggerMapping(101, 55, ProductTypeProduct, 1, nil)
	m2, _ := NewTriggerMapping(101, 55, ProductTypeProduct, 1, dec("0.00"))
	item, _ := NewPurchasedItem("PRODUCT", 101, 3, dec("120.00"))

	results := ResolveEligibilities(
		[]*PurchasedItem{item},
		map[int64][]*TriggerMapping{101: {m1, m2}},
	)
	require.Len(t, results, 1, "two mappings for the same (trigger, coupon) pair must yield one row")
	assert.Equal(t, int64(55), results[0].CouponID)
}

func TestResolveEligibilities_MultipleItems(t *testing.T) {
	m1, _ := NewTriggerMapping(101, 55, ProductTypeProduct, 2, dec("100.00"))
	m2, _ := NewTriggerMapping(202, 77, ProductTypeService, 1, nil)

	qualifying, _ := NewPurchasedItem("PRODUCT", 101, 3, dec("120.00"))
	service, _ := NewPurchasedItem("SERVICE", 202, 1, nil)
	unmapped, _ := NewPurchasedItem("PRODUCT", 303, 1, nil)

	results := ResolveEligibilities(
		[]*PurchasedItem{qualifying, service, unmapped},
		map[int64][]*TriggerMapping{101: {m1}, 202: {m2}},
	)
	require.Len(t, results, 2)

	coupons := []int64{results[0].CouponID, results[1].CouponID}
	assert.ElementsMatch(t, []int64{55, 77}, coupons)
}

func TestResolveEligibilities_QuantityGateScenario(t *testing.T) {
	mapping, _ := NewTriggerMapping(101, 55, ProductTypeProduct, 2, dec("100.00"))
	byTrigger := map[int64][]*TriggerMapping{101: {mapping}}

	t.Run("qualifying cart resolves one row", func(t *testing.T) {
		item, _ := NewPurchasedItem("PRODUCT", 101, 3, dec("120.00"))
		results := ResolveEligibilities([]*PurchasedItem{item}, byTrigger)
		require.Len(t, results, 1)
		assert.Equal(t, ProductTypeProduct, results[0].ProductType)
		assert.Equal(t, int64(101), results[0].ProductID)
		assert.Equal(t, int64(55), results[0].CouponID)
		assert.Equal(t, 2, results[0].MinQuantity)
		assert.True(t, results[0].MinAmount.Equal(decimal.RequireFromString("100.00")))
	})

	t.Run("quantity 1 resolves nothing", func(t *testing.T) {
		item, _ := NewPurchasedItem("PRODUCT", 101, 1, dec("120.00"))
		results := ResolveEligibilities([]*PurchasedItem{item}, byTrigger)
		assert.Empty(t, results)
	})
}
