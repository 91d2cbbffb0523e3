package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// fakeTriggerMappingRepo 用内存 map 模拟触发映射存储，并统计查询次数
type fakeTriggerMappingRepo struct {
	byTrigger map[int64][]*domain.TriggerMapping
	queries   map[int64]int
}

func newFakeTriggerMappingRepo() *fakeTriggerMappingRepo {
	return &fakeTriggerMappingRepo{
		byTrigger: make(map[int64][]*domain.TriggerMapping),
		queries:   make(map[int64]int),
	}
}

func (f *fakeTriggerMappingRepo) Add(ctx context.Context, m *domain.TriggerMapping) error {
	f.byTrigger[m.TriggerProductID] = append(f.byTrigger[m.TriggerProductID], m)
	return nil
}

func (f *fakeTriggerMappingRepo) BulkAdd(ctx context.Context, ms []*domain.TriggerMapping) (int, error) {
	for _, m := range ms {
		f.byTrigger[m.TriggerProductID] = append(f.byTrigger[m.TriggerProductID], m)
	}
	return len(ms), nil
}

func (f *fakeTriggerMappingRepo) FindByID(ctx context.Context, id int64) (*domain.TriggerMapping, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeTriggerMappingRepo) ListTriggersByCoupon(ctx context.Context, couponID int64) ([]*domain.TriggerMapping, error) {
	return nil, nil
}

func (f *fakeTriggerMappingRepo) ListCouponsByTrigger(ctx context.Context, triggerProductID int64) ([]*domain.TriggerMapping, error) {
	f.queries[triggerProductID]++
	return f.byTrigger[triggerProductID], nil
}

func (f *fakeTriggerMappingRepo) Remove(ctx context.Context, id int64) error { return nil }

func (f *fakeTriggerMappingRepo) RemoveAllForCoupon(ctx context.Context, couponID int64) (int, error) {
	return 0, nil
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newEligibilityService(repo domain.TriggerMappingRepository) *EligibilityService {
	return NewEligibilityService(repo, noop.NewTracerProvider().Tracer("test"))
}

func TestResolveRejectsEmptyCart(t *testing.T) {
	svc := newEligibilityService(newFakeTriggerMappingRepo())

	_, err := svc.Resolve(context.Background(), &ResolveEligibilityRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestResolveFailsWholeCallOnInvalidItem(t *testing.T) {
	repo := newFakeTriggerMappingRepo()
	m, err := domain.NewTriggerMapping(101, 55, domain.ProductTypeProduct, 1, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Add(context.Background(), m))

	svc := newEligibilityService(repo)
	_, err = svc.Resolve(context.Background(), &ResolveEligibilityRequest{
		Items: []ResolveItemRequest{
			{ProductType: "PRODUCT", ProductID: 101, Quantity: 1},
			{ProductType: "GADGET", ProductID: 102, Quantity: 1},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	// 校验失败发生在任何查询之前
	assert.Zero(t, repo.queries[101])
}

func TestResolveQuantityGate(t *testing.T) {
	repo := newFakeTriggerMappingRepo()
	m, err := domain.NewTriggerMapping(101, 55, domain.ProductTypeProduct, 2, amount("100.00"))
	require.NoError(t, err)
	require.NoError(t, repo.Add(context.Background(), m))
	svc := newEligibilityService(repo)

	t.Run("gates satisfied", func(t *testing.T) {
		out, err := svc.Resolve(context.Background(), &ResolveEligibilityRequest{
			Items: []ResolveItemRequest{
				{ProductType: "PRODUCT", ProductID: 101, Quantity: 3, Amount: amount("120.00")},
			},
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "PRODUCT", out[0].ProductType)
		assert.Equal(t, int64(101), out[0].ProductID)
		assert.Equal(t, int64(55), out[0].CouponID)
		assert.Equal(t, 2, out[0].MinQuantity)
	})

	t.Run("quantity below gate", func(t *testing.T) {
		out, err := svc.Resolve(context.Background(), &ResolveEligibilityRequest{
			Items: []ResolveItemRequest{
				{ProductType: "PRODUCT", ProductID: 101, Quantity: 1, Amount: amount("120.00")},
			},
		})
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestResolveQueriesEachTriggerOnce(t *testing.T) {
	repo := newFakeTriggerMappingRepo()
	m, err := domain.NewTriggerMapping(101, 55, domain.ProductTypeProduct, 1, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Add(context.Background(), m))
	svc := newEligibilityService(repo)

	out, err := svc.Resolve(context.Background(), &ResolveEligibilityRequest{
		Items: []ResolveItemRequest{
			{ProductType: "PRODUCT", ProductID: 101, Quantity: 1},
			{ProductType: "PRODUCT", ProductID: 101, Quantity: 2},
			{ProductType: "SERVICE", ProductID: 101, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 1, repo.queries[101])
}
