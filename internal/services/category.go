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

type CategoryService interface {
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context, featuredOnly bool) ([]*models.Category, error)
}

type categoryService struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
	cache       cache.Cache
	ttl         time.Duration
}

func NewCategoryService(repo repository.CategoryRepository, productRepo repository.ProductRepository, c cache.Cache, ttl time.Duration) CategoryService {
	return &categoryService{repo: repo, productRepo: productRepo, cache: c, ttl: ttl}
}

func (s *categoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	category := &models.Category{
		Name:        utils.SanitizeText(req.Name),
		Description: utils.SanitizeRichText(req.Description),
		Image:       req.Image,
		Featured:    req.Featured,
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, errors.DuplicateEntryError("A category with this name already exists").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create category").WithError(err)
	}

	invalidate(ctx, s.cache, cache.CategoryKeyPrefix)

	return category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {

	key := cache.Key(cache.CategoryKeyPrefix, "id:"+id.String())

	return readThrough(ctx, s.cache, cache.CategoryKeyPrefix, key, s.ttl, func(ctx context.Context) (*models.Category, error) {
		category, err := s.repo.GetCategoryByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, errors.NotFoundError("Category not found").WithError(err)
			}

			return nil, errors.DatabaseError("Failed to fetch category").WithError(err)
		}

		return category, nil
	})
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.NotFoundError("Category not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch category").WithError(err)
	}

	if req.Name != nil {
		category.Name = utils.SanitizeText(*req.Name)
	}
	if req.Description != nil {
		category.Description = utils.SanitizeRichText(*req.Description)
	}
	if req.Image != nil {
		category.Image = *req.Image
	}
	if req.Featured != nil {
		category.Featured = *req.Featured
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.NotFoundError("Category not found").WithError(err)
		}
		if repository.IsUniqueViolation(err) {
			return nil, errors.DuplicateEntryError("A category with this name already exists").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update category").WithError(err)
	}

	// products embed their category, so cached listings go stale too
	invalidate(ctx, s.cache, cache.CategoryKeyPrefix, cache.ProductKeyPrefix)

	return category, nil
}

// DeleteCategory refuses to remove a category while products still point at it.
func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return errors.DatabaseError("Failed to check category references").WithError(err)
	}

	if count > 0 {
		return errors.ReferenceInUseError("category", count)
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return errors.NotFoundError("Category not found").WithError(err)
		}
		if repository.IsForeignKeyViolation(err) {
			return errors.BadRequestError("Category is still referenced by products").WithError(err)
		}

		return errors.DatabaseError("Failed to delete category").WithError(err)
	}

	invalidate(ctx, s.cache, cache.CategoryKeyPrefix, cache.ProductKeyPrefix)

	return nil
}

func (s *categoryService) ListCategories(ctx context.Context, featuredOnly bool) ([]*models.Category, error) {

	key := cache.Key(cache.CategoryKeyPrefix, "list:all")
	if featuredOnly {
		key = cache.Key(cache.CategoryKeyPrefix, "list:featured")
	}

	return readThrough(ctx, s.cache, cache.CategoryKeyPrefix, key, s.ttl, func(ctx context.Context) ([]*models.Category, error) {
		categories, err := s.repo.ListCategories(ctx, featuredOnly)
		if err != nil {
			return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
		}

		if categories == nil {
			categories = []*models.Category{}
		}

		return categories, nil
	})
}
