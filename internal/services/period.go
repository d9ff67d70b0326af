package service

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/cache"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/errors"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	repository "github.com/aaravmahajanofficial/antiques-catalogue/internal/repositories"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils"
	"github.com/google/uuid"
)

type PeriodService interface {
	CreatePeriod(ctx context.Context, req *models.CreatePeriodRequest) (*models.Period, error)
	GetPeriodByID(ctx context.Context, id uuid.UUID) (*models.Period, error)
	UpdatePeriod(ctx context.Context, id uuid.UUID, req *models.UpdatePeriodRequest) (*models.Period, error)
	DeletePeriod(ctx context.Context, id uuid.UUID) error
	ListPeriods(ctx context.Context, featuredOnly bool) ([]*models.Period, error)
}

type periodService struct {
	repo        repository.PeriodRepository
	productRepo repository.ProductRepository
	cache       cache.Cache
	ttl         time.Duration
}

func NewPeriodService(repo repository.PeriodRepository, productRepo repository.ProductRepository, c cache.Cache, ttl time.Duration) PeriodService {
	return &periodService{repo: repo, productRepo: productRepo, cache: c, ttl: ttl}
}

func (s *periodService) CreatePeriod(ctx context.Context, req *models.CreatePeriodRequest) (*models.Period, error) {

	if err := validateYears(req.YearStart, req.YearEnd); err != nil {
		return nil, err
	}

	period := &models.Period{
		Name:        utils.SanitizeText(req.Name),
		Description: utils.SanitizeRichText(req.Description),
		YearStart:   req.YearStart,
		YearEnd:     req.YearEnd,
		Featured:    req.Featured,
	}

	if err := s.repo.CreatePeriod(ctx, period); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, errors.DuplicateEntryError("A period with this name already exists").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create period").WithError(err)
	}

	invalidate(ctx, s.cache, cache.PeriodKeyPrefix)

	return period, nil
}

func (s *periodService) GetPeriodByID(ctx context.Context, id uuid.UUID) (*models.Period, error) {

	key := cache.Key(cache.PeriodKeyPrefix, "id:"+id.String())

	return readThrough(ctx, s.cache, cache.PeriodKeyPrefix, key, s.ttl, func(ctx context.Context) (*models.Period, error) {
		period, err := s.repo.GetPeriodByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, errors.NotFoundError("Period not found").WithError(err)
			}

			return nil, errors.DatabaseError("Failed to fetch period").WithError(err)
		}

		return period, nil
	})
}

func (s *periodService) UpdatePeriod(ctx context.Context, id uuid.UUID, req *models.UpdatePeriodRequest) (*models.Period, error) {

	period, err := s.repo.GetPeriodByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.NotFoundError("Period not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch period").WithError(err)
	}

	if req.Name != nil {
		period.Name = utils.SanitizeText(*req.Name)
	}
	if req.Description != nil {
		period.Description = utils.SanitizeRichText(*req.Description)
	}
	if req.YearStart != nil {
		period.YearStart = req.YearStart
	}
	if req.YearEnd != nil {
		period.YearEnd = req.YearEnd
	}
	if req.ClearYearStart {
		period.YearStart = nil
	}
	if req.ClearYearEnd {
		period.YearEnd = nil
	}
	if req.Featured != nil {
		period.Featured = *req.Featured
	}

	if err := validateYears(period.YearStart, period.YearEnd); err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePeriod(ctx, period); err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.NotFoundError("Period not found").WithError(err)
		}
		if repository.IsUniqueViolation(err) {
			return nil, errors.DuplicateEntryError("A period with this name already exists").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update period").WithError(err)
	}

	invalidate(ctx, s.cache, cache.PeriodKeyPrefix, cache.ProductKeyPrefix)

	return period, nil
}

func (s *periodService) DeletePeriod(ctx context.Context, id uuid.UUID) error {

	count, err := s.productRepo.CountByPeriod(ctx, id)
	if err != nil {
		return errors.DatabaseError("Failed to check period references").WithError(err)
	}

	if count > 0 {
		return errors.ReferenceInUseError("period", count)
	}

	if err := s.repo.DeletePeriod(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return errors.NotFoundError("Period not found").WithError(err)
		}
		if repository.IsForeignKeyViolation(err) {
			return errors.BadRequestError("Period is still referenced by products").WithError(err)
		}

		return errors.DatabaseError("Failed to delete period").WithError(err)
	}

	invalidate(ctx, s.cache, cache.PeriodKeyPrefix, cache.ProductKeyPrefix)

	return nil
}

func (s *periodService) ListPeriods(ctx context.Context, featuredOnly bool) ([]*models.Period, error) {

	key := cache.Key(cache.PeriodKeyPrefix, "list:all")
	if featuredOnly {
		key = cache.Key(cache.PeriodKeyPrefix, "list:featured")
	}

	return readThrough(ctx, s.cache, cache.PeriodKeyPrefix, key, s.ttl, func(ctx context.Context) ([]*models.Period, error) {
		periods, err := s.repo.ListPeriods(ctx, featuredOnly)
		if err != nil {
			return nil, errors.DatabaseError("Failed to fetch periods").WithError(err)
		}

		if periods == nil {
			periods = []*models.Period{}
		}

		return periods, nil
	})
}

func validateYears(start, end *int) error {
	if start != nil && end != nil && *start > *end {
		return errors.ValidationError("year_start must not be after year_end")
	}

	return nil
}
