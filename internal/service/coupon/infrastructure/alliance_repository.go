// internal/service/coupon/infrastructure/alliance_repository.go
package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Kabudence/coupon-microservice/internal/service/coupon/domain"
)

// GormAllianceRepository 是 AllianceRepository 的 GORM 实现
type GormAllianceRepository struct {
	db *gorm.DB
}

func NewGormAllianceRepository(db *gorm.DB) *GormAllianceRepository {
	return &GormAllianceRepository{db: db}
}

func (r *GormAllianceRepository) Create(ctx context.Context, a *domain.Alliance) error {
	model := FromDomainAlliance(a)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "alliance")
	}
	a.ID = model.ID
	a.RequestedAt = model.RequestedAt
	return nil
}

func (r *GormAllianceRepository) FindByID(ctx context.Context, id int64) (*domain.Alliance, error) {
	var model AllianceModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "alliance")
	}
	return ToDomainAlliance(&model), nil
}

// FindOpenPair 查找两商家之间仍然“存活”的联盟（PENDING 或 ACCEPTED），
// 两个方向都算同一个联盟对。
func (r *GormAllianceRepository) FindOpenPair(ctx context.Context, requesterID, receiverID int64) (*domain.Alliance, error) {
	var model AllianceModel
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{string(domain.AlliancePending), string(domain.AllianceAccepted)}).
		Where(r.db.Where("requester_business_id = ? AND receiver_business_id = ?", requesterID, receiverID).
			Or("requester_business_id = ? AND receiver_business_id = ?", receiverID, requesterID)).
		First(&model).Error
	if err != nil {
		return nil, translateGormError(err, "alliance")
	}
	return ToDomainAlliance(&model), nil
}

func (r *GormAllianceRepository) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Alliance, error) {
	var models []AllianceModel
	err := r.db.WithContext(ctx).
		Where("requester_business_id = ? OR receiver_business_id = ?", businessID, businessID).
		Order("id asc").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainAlliances(models), nil
}

func (r *GormAllianceRepository) ListByStatus(ctx context.Context, status domain.AllianceStatus) ([]*domain.Alliance, error) {
	var models []AllianceModel
	err := r.db.WithContext(ctx).Where("status = ?", string(status)).Order("id asc").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainAlliances(models), nil
}

func (r *GormAllianceRepository) Update(ctx context.Context, a *domain.Alliance) error {
	res := r.db.WithContext(ctx).Model(&AllianceModel{}).Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"status":       string(a.Status),
			"reason":       a.Reason,
			"responded_at": a.RespondedAt,
		})
	if res.Error != nil {
		return translateGormError(res.Error, "alliance")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "alliance")
	}
	return nil
}

func toDomainAlliances(models []AllianceModel) []*domain.Alliance {
	out := make([]*domain.Alliance, 0, len(models))
	for i := range models {
		out = append(out, ToDomainAlliance(&models[i]))
	}
	return out
}
