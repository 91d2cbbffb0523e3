// internal/service/coupon/infrastructure/mapper.go
package infrastructure

import (
	"github.com/shopspring/decimal"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

func nullDecimalToPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func ptrToNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// ToDomainDiscountType 将数据库模型转换为领域模型
func ToDomainDiscountType(m *DiscountTypeModel) *domain.DiscountType {
	if m == nil {
		return nil
	}
	return &domain.DiscountType{ID: m.ID, Name: m.Name}
}

func FromDomainDiscountType(d *domain.DiscountType) *DiscountTypeModel {
	return &DiscountTypeModel{ID: d.ID, Name: d.Name}
}

func ToDomainCouponType(m *CouponTypeModel) *domain.CouponType {
	if m == nil {
		return nil
	}
	return &domain.CouponType{ID: m.ID, Name: m.Name, Description: m.Description}
}

func FromDomainCouponType(d *domain.CouponType) *CouponTypeModel {
	return &CouponTypeModel{ID: d.ID, Name: d.Name, Description: d.Description}
}

func ToDomainCategory(m *CategoryModel) *domain.Category {
	if m == nil {
		return nil
	}
	return &domain.Category{ID: m.ID, Name: m.Name, Description: m.Description, CreatedAt: m.CreatedAt}
}

func FromDomainCategory(d *domain.Category) *CategoryModel {
	return &CategoryModel{ID: d.ID, Name: d.Name, Description: d.Description, CreatedAt: d.CreatedAt}
}

func ToDomainEvent(m *EventModel) *domain.Event {
	if m == nil {
		return nil
	}
	return &domain.Event{ID: m.ID, Name: m.Name, Description: m.Description, CreatedAt: m.CreatedAt}
}

func FromDomainEvent(d *domain.Event) *EventModel {
	return &EventModel{ID: d.ID, Name: d.Name, Description: d.Description, CreatedAt: d.CreatedAt}
}

// ToDomainCoupon 将数据库模型转换为领域模型
func ToDomainCoupon(m *CouponModel) *domain.Coupon {
	if m == nil {
		return nil
	}
	return &domain.Coupon{
		ID:                 m.ID,
		BusinessID:         m.BusinessID,
		CouponTypeID:       m.CouponTypeID,
		CategoryID:         m.CategoryID,
		EventID:            m.EventID,
		ShowInCouponHolder: m.ShowInCouponHolder,
		Name:               m.Name,
		Description:        m.Description,
		DiscountTypeID:     m.DiscountTypeID,
		Value:              m.Value,
		MaxDiscount:        nullDecimalToPtr(m.MaxDiscount),
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		MaxUses:            m.MaxUses,
		EventName:          m.EventName,
		IsSharedAlliances:  m.IsSharedAlliances,
		Status:             domain.CouponStatus(m.Status),
		CreatedAt:          m.CreatedAt,
	}
}

func FromDomainCoupon(d *domain.Coupon) *CouponModel {
	return &CouponModel{
		ID:                 d.ID,
		BusinessID:         d.BusinessID,
		CouponTypeID:       d.CouponTypeID,
		CategoryID:         d.CategoryID,
		EventID:            d.EventID,
		ShowInCouponHolder: d.ShowInCouponHolder,
		Name:               d.Name,
		Description:        d.Description,
		DiscountTypeID:     d.DiscountTypeID,
		Value:              d.Value,
		MaxDiscount:        ptrToNullDecimal(d.MaxDiscount),
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
		MaxUses:            d.MaxUses,
		EventName:          d.EventName,
		IsSharedAlliances:  d.IsSharedAlliances,
		Status:             string(d.Status),
		CreatedAt:          d.CreatedAt,
	}
}

func ToDomainCouponProduct(m *CouponProductModel) *domain.CouponProduct {
	if m == nil {
		return nil
	}
	return &domain.CouponProduct{
		ID:          m.ID,
		CouponID:    m.CouponID,
		ProductID:   m.ProductID,
		Code:        m.Code,
		ProductType: domain.ParseProductTypeOrDefault(m.ProductType),
		Stock:       m.Stock,
		Status:      domain.CouponProductStatus(m.Status),
	}
}

func FromDomainCouponProduct(d *domain.CouponProduct) *CouponProductModel {
	return &CouponProductModel{
		ID:          d.ID,
		CouponID:    d.CouponID,
		ProductID:   d.ProductID,
		Code:        d.Code,
		ProductType: string(d.ProductType),
		Stock:       d.Stock,
		Status:      string(d.Status),
	}
}

// ToDomainTriggerMapping 将数据库模型转换为领域模型。
// 历史行可能缺失类型，读路径回退为 PRODUCT。
func ToDomainTriggerMapping(m *TriggerMappingModel) *domain.TriggerMapping {
	if m == nil {
		return nil
	}
	return &domain.TriggerMapping{
		ID:               m.ID,
		TriggerProductID: m.TriggerProductID,
		CouponID:         m.CouponID,
		ProductType:      domain.ParseProductTypeOrDefault(m.ProductType),
		MinQuantity:      m.MinQuantity,
		MinAmount:        nullDecimalToPtr(m.MinAmount),
	}
}

func FromDomainTriggerMapping(d *domain.TriggerMapping) *TriggerMappingModel {
	return &TriggerMappingModel{
		ID:               d.ID,
		TriggerProductID: d.TriggerProductID,
		CouponID:         d.CouponID,
		ProductType:      string(d.ProductType),
		MinQuantity:      d.MinQuantity,
		MinAmount:        ptrToNullDecimal(d.MinAmount),
	}
}

func ToDomainSegment(m *SegmentModel) *domain.Segment {
	if m == nil {
		return nil
	}
	gender, err := domain.ParseSegmentGender(m.Gender)
	if err != nil {
		gender = domain.GenderAny
	}
	return &domain.Segment{
		ID:                 m.ID,
		PublicName:         m.PublicName,
		Gender:             gender,
		MinAge:             m.MinAge,
		MaxAge:             m.MaxAge,
		IsStudent:          m.IsStudent,
		DistrictID:         m.DistrictID,
		SocioeconomicLevel: m.SocioeconomicLevel,
	}
}

func FromDomainSegment(d *domain.Segment) *SegmentModel {
	return &SegmentModel{
		ID:                 d.ID,
		PublicName:         d.PublicName,
		Gender:             string(d.Gender),
		MinAge:             d.MinAge,
		MaxAge:             d.MaxAge,
		IsStudent:          d.IsStudent,
		DistrictID:         d.DistrictID,
		SocioeconomicLevel: d.SocioeconomicLevel,
	}
}

func ToDomainSegmentPrice(m *SegmentPriceModel) *domain.SegmentPriceOverride {
	if m == nil {
		return nil
	}
	return &domain.SegmentPriceOverride{
		CouponID:       m.CouponID,
		SegmentID:      m.SegmentID,
		DiscountTypeID: m.DiscountTypeID,
		Value:          m.Value,
		Priority:       m.Priority,
	}
}

func FromDomainSegmentPrice(d *domain.SegmentPriceOverride) *SegmentPriceModel {
	return &SegmentPriceModel{
		CouponID:       d.CouponID,
		SegmentID:      d.SegmentID,
		DiscountTypeID: d.DiscountTypeID,
		Value:          d.Value,
		Priority:       d.Priority,
	}
}

func ToDomainClientCoupon(m *ClientCouponModel) *domain.ClientCoupon {
	if m == nil {
		return nil
	}
	return &domain.ClientCoupon{
		ID:              m.ID,
		CouponID:        m.CouponID,
		ClientID:        m.ClientID,
		Code:            m.Code,
		Status:          domain.ClientCouponStatus(m.Status),
		ValidFrom:       m.ValidFrom,
		ValidTo:         m.ValidTo,
		UsedAt:          m.UsedAt,
		SourceTriggerID: m.SourceTriggerID,
		SourceOrderID:   m.SourceOrderID,
		CreatedAt:       m.CreatedAt,
	}
}

func FromDomainClientCoupon(d *domain.ClientCoupon) *ClientCouponModel {
	return &ClientCouponModel{
		ID:              d.ID,
		CouponID:        d.CouponID,
		ClientID:        d.ClientID,
		Code:            d.Code,
		Status:          string(d.Status),
		ValidFrom:       d.ValidFrom,
		ValidTo:         d.ValidTo,
		UsedAt:          d.UsedAt,
		SourceTriggerID: d.SourceTriggerID,
		SourceOrderID:   d.SourceOrderID,
		CreatedAt:       d.CreatedAt,
	}
}

func ToDomainAlliance(m *AllianceModel) *domain.Alliance {
	if m == nil {
		return nil
	}
	return &domain.Alliance{
		ID:                  m.ID,
		RequesterBusinessID: m.RequesterBusinessID,
		ReceiverBusinessID:  m.ReceiverBusinessID,
		Status:              domain.AllianceStatus(m.Status),
		Reason:              m.Reason,
		RequestedAt:         m.RequestedAt,
		RespondedAt:         m.RespondedAt,
	}
}

func FromDomainAlliance(d *domain.Alliance) *AllianceModel {
	return &AllianceModel{
		ID:                  d.ID,
		RequesterBusinessID: d.RequesterBusinessID,
		ReceiverBusinessID:  d.ReceiverBusinessID,
		Status:              string(d.Status),
		Reason:              d.Reason,
		RequestedAt:         d.RequestedAt,
		RespondedAt:         d.RespondedAt,
	}
}
