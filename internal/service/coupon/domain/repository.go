// internal/service/coupon/domain/repository.go
package domain

import (
	"context"
	"time"
)

// DiscountTypeRepository 折扣类型目录的持久化接口
type DiscountTypeRepository interface {
	Create(ctx context.Context, dt *DiscountType) error
	FindByID(ctx context.Context, id int64) (*DiscountType, error)
	FindAll(ctx context.Context) ([]*DiscountType, error)
	Update(ctx context.Context, dt *DiscountType) error
	Delete(ctx context.Context, id int64) error
}

// CouponTypeRepository 优惠券类型目录的持久化接口
type CouponTypeRepository interface {
	Create(ctx context.Context, ct *CouponType) error
	FindByID(ctx context.Context, id int64) (*CouponType, error)
	FindAll(ctx context.Context) ([]*CouponType, error)
	Update(ctx context.Context, ct *CouponType) error
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository 分类目录的持久化接口
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id int64) (*Category, error)
	FindAll(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id int64) error
}

// EventRepository 营销活动的持久化接口
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	FindByID(ctx context.Context, id int64) (*Event, error)
	FindByName(ctx context.Context, name string) (*Event, error)
	FindAll(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id int64) error
}

// CouponRepository 优惠券模板的持久化接口
type CouponRepository interface {
	Create(ctx context.Context, c *Coupon) error
	FindByID(ctx context.Context, id int64) (*Coupon, error)
	FindByName(ctx context.Context, name string) (*Coupon, error)
	FindByBusiness(ctx context.Context, businessID int64) ([]*Coupon, error)
	FindActiveInWindow(ctx context.Context, at time.Time) ([]*Coupon, error)
	Update(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, id int64) error
}

// CouponProductRepository 券-商品挂载关系的持久化接口
type CouponProductRepository interface {
	Add(ctx context.Context, cp *CouponProduct) error
	// BulkAdd 在一个事务内逐条插入，重复键跳过而不中断，返回成功条数
	BulkAdd(ctx context.Context, cps []*CouponProduct) (int, error)
	FindByID(ctx context.Context, id int64) (*CouponProduct, error)
	ListProductsByCoupon(ctx context.Context, couponID int64) ([]*CouponProduct, error)
	ListCouponsByProduct(ctx context.Context, productID int64) ([]*CouponProduct, error)
	Update(ctx context.Context, cp *CouponProduct) error
	Remove(ctx context.Context, id int64) error
	RemoveByCombo(ctx context.Context, couponID, productID int64) error
	RemoveAllForCoupon(ctx context.Context, couponID int64) (int, error)
}

// TriggerMappingRepository 触发映射的持久化接口，资格解析的读路径
type TriggerMappingRepository interface {
	Add(ctx context.Context, m *TriggerMapping) error
	// BulkAdd 最大努力批量插入：一个事务，重复键跳过，返回成功条数
	BulkAdd(ctx context.Context, ms []*TriggerMapping) (int, error)
	FindByID(ctx context.Context, id int64) (*TriggerMapping, error)
	ListTriggersByCoupon(ctx context.Context, couponID int64) ([]*TriggerMapping, error)
	ListCouponsByTrigger(ctx context.Context, triggerProductID int64) ([]*TriggerMapping, error)
	Remove(ctx context.Context, id int64) error
	RemoveAllForCoupon(ctx context.Context, couponID int64) (int, error)
}

// SegmentRepository 客群的持久化接口
type SegmentRepository interface {
	Create(ctx context.Context, s *Segment) error
	FindByID(ctx context.Context, id int64) (*Segment, error)
	FindAll(ctx context.Context) ([]*Segment, error)
	Update(ctx context.Context, s *Segment) error
	Delete(ctx context.Context, id int64) error
}

// SegmentPriceRepository 客群价格覆盖的持久化接口。
// ListByCoupon 按 priority 升序返回（1 = 最高优先级）。
type SegmentPriceRepository interface {
	Get(ctx context.Context, couponID, segmentID int64) (*SegmentPriceOverride, error)
	ListByCoupon(ctx context.Context, couponID int64) ([]*SegmentPriceOverride, error)
	ListBySegment(ctx context.Context, segmentID int64) ([]*SegmentPriceOverride, error)
	Create(ctx context.Context, o *SegmentPriceOverride) error
	Upsert(ctx context.Context, o *SegmentPriceOverride) error
	Update(ctx context.Context, o *SegmentPriceOverride) error
	Delete(ctx context.Context, couponID, segmentID int64) error
	DeleteAllForCoupon(ctx context.Context, couponID int64) (int, error)
	CountForCoupon(ctx context.Context, couponID int64) (int64, error)
}

// ClientCouponRepository 客户券实例的持久化接口
type ClientCouponRepository interface {
	Create(ctx context.Context, c *ClientCoupon) error
	FindByID(ctx context.Context, id int64) (*ClientCoupon, error)
	FindByCode(ctx context.Context, code string) (*ClientCoupon, error)
	ListByClient(ctx context.Context, clientID int64) ([]*ClientCoupon, error)
	ListActiveForClient(ctx context.Context, clientID int64, now time.Time) ([]*ClientCoupon, error)
	Update(ctx context.Context, c *ClientCoupon) error
	Delete(ctx context.Context, id int64) error
}

// AllianceRepository 商家联盟的持久化接口
type AllianceRepository interface {
	Create(ctx context.Context, a *Alliance) error
	FindByID(ctx context.Context, id int64) (*Alliance, error)
	// FindOpenPair 查找两个商家之间处于 PENDING 或 ACCEPTED 状态的联盟，
	// 用于防止重复请求
	FindOpenPair(ctx context.Context, requesterID, receiverID int64) (*Alliance, error)
	ListByBusiness(ctx context.Context, businessID int64) ([]*Alliance, error)
	ListByStatus(ctx context.Context, status AllianceStatus) ([]*Alliance, error)
	Update(ctx context.Context, a *Alliance) error
}
