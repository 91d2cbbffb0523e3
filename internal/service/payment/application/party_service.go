// internal/service/payment/application/party_service.go
package application

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

// PartyService 管理跨应用主体标识
type PartyService struct {
	repo   domain.PartyRepository
	tracer trace.Tracer
}

func NewPartyService(repo domain.PartyRepository, tracer trace.Tracer) *PartyService {
	return &PartyService{repo: repo, tracer: tracer}
}

func (s *PartyService) Create(ctx context.Context, req *PartyRequest) (*domain.Party, error) {
	ctx, span := s.tracer.Start(ctx, "service.CreateParty")
	defer span.End()

	party, err := domain.NewParty(req.AppName, req.SubjectType, req.SubjectID, req.DisplayName)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

func (s *PartyService) Get(ctx context.Context, id int64) (*domain.Party, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PartyService) GetBySubject(ctx context.Context, appName, subjectType string, subjectID int64) (*domain.Party, error) {
	app, err := domain.ParseAppName(appName)
	if err != nil {
		return nil, err
	}
	subject, err := domain.ParseSubjectType(subjectType)
	if err != nil {
		return nil, err
	}
	if subjectID <= 0 {
		return nil, errors.Wrap(domain.ErrInvalidArgument, "subject_id must be positive")
	}
	return s.repo.FindBySubject(ctx, app, subject, subjectID)
}

// UpsertBySubject 按三元组取已有行，不存在时创建
func (s *PartyService) UpsertBySubject(ctx context.Context, req *PartyRequest) (*domain.Party, error) {
	ctx, span := s.tracer.Start(ctx, "service.UpsertParty")
	defer span.End()

	existing, err := s.GetBySubject(ctx, req.AppName, req.SubjectType, req.SubjectID)
	if err == nil {
		if name := strings.TrimSpace(req.DisplayName); name != "" && name != existing.DisplayName {
			existing.DisplayName = name
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.Create(ctx, req)
}

func (s *PartyService) SearchByName(ctx context.Context, fragment string, limit int) ([]*domain.Party, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, errors.Wrap(domain.ErrInvalidArgument, "name fragment is required")
	}
	return s.repo.SearchByName(ctx, fragment, limit)
}

func (s *PartyService) Update(ctx context.Context, id int64, req *PartyRequest) (*domain.Party, error) {
	party, err := domain.NewParty(req.AppName, req.SubjectType, req.SubjectID, req.DisplayName)
	if err != nil {
		return nil, err
	}
	party.ID = id
	if err := s.repo.Update(ctx, party); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *PartyService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
