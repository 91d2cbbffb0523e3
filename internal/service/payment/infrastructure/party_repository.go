// internal/service/payment/infrastructure/party_repository.go
package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

// translateGormError 把 GORM 的错误映射到领域哨兵错误
func translateGormError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrap(domain.ErrNotFound, what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Wrap(domain.ErrDuplicate, what)
	default:
		return err
	}
}

type GormPartyRepository struct {
	db *gorm.DB
}

func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

func (r *GormPartyRepository) Create(ctx context.Context, party *domain.Party) error {
	model := FromDomainParty(party)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateGormError(err, "party")
	}
	party.ID = model.ID
	return nil
}

func (r *GormPartyRepository) FindByID(ctx context.Context, id int64) (*domain.Party, error) {
	var model PartyModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateGormError(err, "party")
	}
	return ToDomainParty(&model), nil
}

func (r *GormPartyRepository) FindBySubject(ctx context.Context, app domain.AppName, subject domain.SubjectType, subjectID int64) (*domain.Party, error) {
	var model PartyModel
	err := r.db.WithContext(ctx).
		Where("app_name = ? AND subject_type = ? AND subject_id = ?", app, subject, subjectID).
		First(&model).Error
	if err != nil {
		return nil, translateGormError(err, "party")
	}
	return ToDomainParty(&model), nil
}

func (r *GormPartyRepository) SearchByName(ctx context.Context, fragment string, limit int) ([]*domain.Party, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var models []PartyModel
	err := r.db.WithContext(ctx).
		Where("display_name LIKE ?", "%"+fragment+"%").
		Order("id asc").Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Party, 0, len(models))
	for i := range models {
		out = append(out, ToDomainParty(&models[i]))
	}
	return out, nil
}

func (r *GormPartyRepository) Update(ctx context.Context, party *domain.Party) error {
	model := FromDomainParty(party)
	result := r.db.WithContext(ctx).Model(&PartyModel{}).Where("id = ?", party.ID).
		Select("app_name", "subject_type", "subject_id", "display_name").
		Updates(model)
	if result.Error != nil {
		return translateGormError(result.Error, "party")
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "party")
	}
	return nil
}

func (r *GormPartyRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&PartyModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNotFound, "party")
	}
	return nil
}
