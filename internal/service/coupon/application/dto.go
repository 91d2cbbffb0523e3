// internal/service/coupon/application/dto.go
package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// ResolveEligibilityRequest 是资格解析接口的请求体
type ResolveEligibilityRequest struct {
	Items []ResolveItemRequest `json:"items"`
}

// ResolveItemRequest 是购物车中的一个条目。
// Quantity 缺省（0）或小于 1 时按 1 处理，Amount 可缺省。
type ResolveItemRequest struct {
	ProductType string           `json:"product_type"`
	ProductID   int64            `json:"product_id"`
	Quantity    int              `json:"quantity"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

// ResolvedEligibilityResponse 是资格解析输出的一行
type ResolvedEligibilityResponse struct {
	ProductType string           `json:"product_type"`
	ProductID   int64            `json:"product_id"`
	CouponID    int64            `json:"coupon_id"`
	MinQuantity int              `json:"min_quantity"`
	MinAmount   *decimal.Decimal `json:"min_amount,omitempty"`
}

// TriggerMappingRequest 创建触发映射的请求体
type TriggerMappingRequest struct {
	TriggerProductID int64            `json:"trigger_product_id"`
	CouponID         int64            `json:"coupon_id"`
	ProductType      string           `json:"product_type"`
	MinQuantity      int              `json:"min_quantity"`
	MinAmount        *decimal.Decimal `json:"min_amount,omitempty"`
}

// TriggerMappingResponse 是触发映射的输出形式
type TriggerMappingResponse struct {
	ID               int64            `json:"id"`
	TriggerProductID int64            `json:"trigger_product_id"`
	CouponID         int64            `json:"coupon_id"`
	ProductType      string           `json:"product_type"`
	MinQuantity      int              `json:"min_quantity"`
	MinAmount        *decimal.Decimal `json:"min_amount,omitempty"`
}

func toTriggerMappingResponse(m *domain.TriggerMapping) *TriggerMappingResponse {
	return &TriggerMappingResponse{
		ID:               m.ID,
		TriggerProductID: m.TriggerProductID,
		CouponID:         m.CouponID,
		ProductType:      string(m.ProductType),
		MinQuantity:      m.MinQuantity,
		MinAmount:        m.MinAmount,
	}
}

// BulkAddResponse 是批量插入接口的结果
type BulkAddResponse struct {
	Requested int `json:"requested"`
	Inserted  int `json:"inserted"`
	Skipped   int `json:"skipped"`
}

// CouponRequest 创建/更新优惠券模板的请求体
type CouponRequest struct {
	BusinessID         int64            `json:"business_id"`
	CouponTypeID       *int64           `json:"coupon_type_id,omitempty"`
	CategoryID         *int64           `json:"category_id,omitempty"`
	EventID            *int64           `json:"event_id,omitempty"`
	ShowInCouponHolder bool             `json:"show_in_coupon_holder"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	DiscountTypeID     int64            `json:"discount_type_id"`
	Value              decimal.Decimal  `json:"value"`
	MaxDiscount        *decimal.Decimal `json:"max_discount,omitempty"`
	StartDate          time.Time        `json:"start_date"`
	EndDate            time.Time        `json:"end_date"`
	MaxUses            *int             `json:"max_uses,omitempty"`
	EventName          string           `json:"event_name"`
	IsSharedAlliances  bool             `json:"is_shared_alliances"`
	Status             string           `json:"status"`
}

// SegmentPriceRequest 创建/覆盖客群价格的请求体
type SegmentPriceRequest struct {
	CouponID       int64           `json:"coupon_id"`
	SegmentID      int64           `json:"segment_id"`
	DiscountTypeID int64           `json:"discount_type_id"`
	Value          decimal.Decimal `json:"value"`
	Priority       int             `json:"priority"`
}

// ClientCouponRequest 发放客户券的请求体
type ClientCouponRequest struct {
	CouponID        int64      `json:"coupon_id"`
	ClientID        int64      `json:"client_id"`
	Code            string     `json:"code"`
	ValidFrom       *time.Time `json:"valid_from,omitempty"`
	ValidTo         *time.Time `json:"valid_to,omitempty"`
	SourceTriggerID *int64     `json:"source_trigger_id,omitempty"`
	SourceOrderID   *string    `json:"source_order_id,omitempty"`
}

// AllianceRequest 发起联盟请求的请求体
type AllianceRequest struct {
	RequesterBusinessID int64  `json:"requester_business_id"`
	ReceiverBusinessID  int64  `json:"receiver_business_id"`
	Reason              string `json:"reason"`
}

// AllianceActionRequest 是联盟状态转换的请求体，携带操作方
type AllianceActionRequest struct {
	ActorBusinessID int64  `json:"actor_business_id"`
	Reason          string `json:"reason,omitempty"`
}
