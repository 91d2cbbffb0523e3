// internal/service/coupon/infrastructure/gorm_model.go
package infrastructure

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountTypeModel 对应数据库中的 discount_types 表
type DiscountTypeModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:64;uniqueIndex;not null"`
}

func (DiscountTypeModel) TableName() string {
	return "discount_types"
}

// CouponTypeModel 对应数据库中的 coupon_types 表
type CouponTypeModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:128;uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

func (CouponTypeModel) TableName() string {
	return "coupon_types"
}

// CategoryModel 对应数据库中的 categories 表
type CategoryModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:128;uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
}

func (CategoryModel) TableName() string {
	return "categories"
}

// EventModel 对应数据库中的 events 表
type EventModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:128;uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
}

func (EventModel) TableName() string {
	return "events"
}

// CouponModel 对应数据库中的 coupons 表
type CouponModel struct {
	ID                 int64 `gorm:"primaryKey;autoIncrement"`
	BusinessID         int64 `gorm:"index;not null"`
	CouponTypeID       *int64
	CategoryID         *int64
	EventID            *int64
	ShowInCouponHolder bool
	Name               string `gorm:"size:191;index;not null"`
	Description        string `gorm:"type:text"`
	DiscountTypeID     int64  `gorm:"not null"`
	Value              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MaxDiscount        decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	StartDate          time.Time `gorm:"index"`
	EndDate            time.Time `gorm:"index"`
	MaxUses            *int
	EventName          string `gorm:"size:128"`
	IsSharedAlliances  bool
	Status             string `gorm:"size:16;index;default:ACTIVE"`
	CreatedAt          time.Time
}

func (CouponModel) TableName() string {
	return "coupons"
}

// CouponProductModel 对应数据库中的 coupon_products 表
type CouponProductModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	CouponID    int64  `gorm:"uniqueIndex:uniq_coupon_product;not null"`
	ProductID   int64  `gorm:"uniqueIndex:uniq_coupon_product;index;not null"`
	Code        string `gorm:"size:64"`
	ProductType string `gorm:"size:16;default:PRODUCT"`
	Stock       *int
	Status      string `gorm:"size:16;default:ACTIVE"`
}

func (CouponProductModel) TableName() string {
	return "coupon_products"
}

// TriggerMappingModel 对应数据库中的 coupon_trigger_products 表。
// (trigger_product_id, coupon_id) 上的唯一索引是幂等插入的基础。
type TriggerMappingModel struct {
	ID               int64               `gorm:"primaryKey;autoIncrement"`
	TriggerProductID int64               `gorm:"uniqueIndex:uniq_trigger_coupon;index;not null"`
	CouponID         int64               `gorm:"uniqueIndex:uniq_trigger_coupon;index;not null"`
	ProductType      string              `gorm:"size:16;default:PRODUCT"`
	MinQuantity      int                 `gorm:"not null;default:1"`
	MinAmount        decimal.NullDecimal `gorm:"type:decimal(12,2)"`
}

func (TriggerMappingModel) TableName() string {
	return "coupon_trigger_products"
}

// SegmentModel 对应数据库中的 segments 表
type SegmentModel struct {
	ID                 int64  `gorm:"primaryKey;autoIncrement"`
	PublicName         string `gorm:"size:128;not null"`
	Gender             string `gorm:"size:4;default:ANY"`
	MinAge             *int
	MaxAge             *int
	IsStudent          *bool
	DistrictID         *int64
	SocioeconomicLevel *string `gorm:"size:16"`
}

func (SegmentModel) TableName() string {
	return "segments"
}

// SegmentPriceModel 对应数据库中的 coupon_segment_prices 表，
// 复合主键 (coupon_id, segment_id)
type SegmentPriceModel struct {
	CouponID       int64           `gorm:"primaryKey;autoIncrement:false"`
	SegmentID      int64           `gorm:"primaryKey;autoIncrement:false"`
	DiscountTypeID int64           `gorm:"not null"`
	Value          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Priority       int             `gorm:"not null;default:1"`
}

func (SegmentPriceModel) TableName() string {
	return "coupon_segment_prices"
}

// ClientCouponModel 对应数据库中的 coupon_clients 表
type ClientCouponModel struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	CouponID        int64  `gorm:"index;not null"`
	ClientID        int64  `gorm:"index;not null"`
	Code            string `gorm:"size:64;uniqueIndex;not null"`
	Status          string `gorm:"size:16;index;default:ACTIVE"`
	ValidFrom       *time.Time
	ValidTo         *time.Time
	UsedAt          *time.Time
	SourceTriggerID *int64
	SourceOrderID   *string `gorm:"size:64"`
	CreatedAt       time.Time
}

func (ClientCouponModel) TableName() string {
	return "coupon_clients"
}

// AllianceModel 对应数据库中的 alliances 表
type AllianceModel struct {
	ID                  int64  `gorm:"primaryKey;autoIncrement"`
	RequesterBusinessID int64  `gorm:"index;not null"`
	ReceiverBusinessID  int64  `gorm:"index;not null"`
	Status              string `gorm:"size:16;index;default:PENDING"`
	Reason              string `gorm:"type:text"`
	RequestedAt         time.Time
	RespondedAt         *time.Time
}

func (AllianceModel) TableName() string {
	return "alliances"
}
