// Package talleres exposes the workshop catalogue consumed by maintenance
// entry forms.
package talleres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
)

// TallerDTO is the read shape returned by the API.
type TallerDTO struct {
	ID           int64  `json:"id"`
	NombreTaller string `json:"nombre_taller"`
	Estado       string `json:"estado"`
}

// Repository encapsulates workshop persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a workshop repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a workshop by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Taller, error) {
	var record models.Taller
	err := r.db.WithContext(ctx).First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListActive returns active workshops ordered by name.
func (r *Repository) ListActive(ctx context.Context) ([]models.Taller, error) {
	var records []models.Taller
	err := r.db.WithContext(ctx).
		Where("estado = ?", enums.EstatusActivo).
		Order("nombre_taller ASC").
		Find(&records).Error
	return records, err
}

// ServiceParams groups dependencies for the workshop service.
type ServiceParams struct {
	Repo *Repository
}

// Service exposes the workshop catalogue.
type Service interface {
	ListActive(ctx context.Context) ([]TallerDTO, error)
	Get(ctx context.Context, id int64) (TallerDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds a workshop service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "taller repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// ListActive returns active workshops only; retired ones stay referenced by
// historical maintenance entries but are not offered for new work.
func (s *service) ListActive(ctx context.Context) ([]TallerDTO, error) {
	records, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing talleres")
	}
	dtos := make([]TallerDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, TallerDTO{
			ID:           record.ID,
			NombreTaller: record.NombreTaller,
			Estado:       string(record.Estado),
		})
	}
	return dtos, nil
}

// Get loads one workshop by id.
func (s *service) Get(ctx context.Context, id int64) (TallerDTO, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TallerDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "taller not found")
		}
		return TallerDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading taller")
	}
	return TallerDTO{
		ID:           record.ID,
		NombreTaller: record.NombreTaller,
		Estado:       string(record.Estado),
	}, nil
}
