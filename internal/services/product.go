package service

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/cache"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/catalogue"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/errors"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/metrics"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	repository "github.com/aaravmahajanofficial/antiques-catalogue/internal/repositories"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/aaravmahajanofficial/antiques-catalogue/internal/services"

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, filter catalogue.Filter) (*models.ProductPage, error)
	ListFeatured(ctx context.Context) ([]*models.Product, error)
}

type ProductServiceConfig struct {
	FeaturedLimit int
	CacheTTL      time.Duration
}

type productService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	periodRepo   repository.PeriodRepository
	cache        cache.Cache
	cfg          ProductServiceConfig
}

func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, periodRepo repository.PeriodRepository, c cache.Cache, cfg ProductServiceConfig) ProductService {
	if cfg.FeaturedLimit <= 0 {
		cfg.FeaturedLimit = 8
	}

	return &productService{
		repo:         repo,
		categoryRepo: categoryRepo,
		periodRepo:   periodRepo,
		cache:        c,
		cfg:          cfg,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	category, period, err := s.resolveReferences(ctx, req.CategoryID, req.PeriodID)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:          utils.SanitizeText(req.Name),
		Description:   utils.SanitizeRichText(req.Description),
		Price:         req.Price,
		Images:        cleanImages(req.Images),
		Measures:      measuresFrom(req.Measures),
		Condition:     req.Condition,
		CategoryID:    req.CategoryID,
		PeriodID:      req.PeriodID,
		Origin:        utils.SanitizeText(req.Origin),
		Provenance:    utils.SanitizeRichText(req.Provenance),
		History:       utils.SanitizeRichText(req.History),
		DeliveryNotes: utils.SanitizeText(req.DeliveryNotes),
		Featured:      req.Featured,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, errors.BadRequestError("Referenced category or period no longer exists").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	product.Category = category
	product.Period = period

	invalidate(ctx, s.cache, cache.ProductKeyPrefix)

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	key := cache.Key(cache.ProductKeyPrefix, "id:"+id.String())

	return readThrough(ctx, s.cache, cache.ProductKeyPrefix, key, s.cfg.CacheTTL, func(ctx context.Context) (*models.Product, error) {
		product, err := s.repo.GetProductByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, errors.NotFoundError("Product not found").WithError(err)
			}

			return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
		}

		return product, nil
	})
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	categoryID := product.CategoryID
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}

	periodID := product.PeriodID
	if req.PeriodID != nil {
		periodID = req.PeriodID
	}
	if req.ClearPeriod {
		periodID = nil
	}

	category, period, err := s.resolveReferences(ctx, categoryID, periodID)
	if err != nil {
		return nil, err
	}

	product.CategoryID = categoryID
	product.PeriodID = periodID

	if req.Name != nil {
		product.Name = utils.SanitizeText(*req.Name)
	}
	if req.Description != nil {
		product.Description = utils.SanitizeRichText(*req.Description)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Images != nil {
		product.Images = cleanImages(req.Images)
	}
	if req.Measures != nil {
		product.Measures = measuresFrom(req.Measures)
	}
	if req.Condition != nil {
		product.Condition = *req.Condition
	}
	if req.Origin != nil {
		product.Origin = utils.SanitizeText(*req.Origin)
	}
	if req.Provenance != nil {
		product.Provenance = utils.SanitizeRichText(*req.Provenance)
	}
	if req.History != nil {
		product.History = utils.SanitizeRichText(*req.History)
	}
	if req.DeliveryNotes != nil {
		product.DeliveryNotes = utils.SanitizeText(*req.DeliveryNotes)
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, errors.BadRequestError("Referenced category or period no longer exists").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	product.Category = category
	product.Period = period

	invalidate(ctx, s.cache, cache.ProductKeyPrefix)

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return errors.NotFoundError("Product not found").WithError(err)
		}

		return errors.DatabaseError("Failed to delete product").WithError(err)
	}

	invalidate(ctx, s.cache, cache.ProductKeyPrefix)

	return nil
}

// ListProducts runs the count and the page query concurrently over the same
// predicate and assembles the page with its metadata.
func (s *productService) ListProducts(ctx context.Context, filter catalogue.Filter) (*models.ProductPage, error) {

	ctx, span := otel.Tracer(tracerName).Start(ctx, "ProductService.ListProducts")
	defer span.End()

	span.SetAttributes(
		attribute.Int("catalogue.page", filter.Page),
		attribute.Int("catalogue.limit", filter.Limit),
		attribute.String("catalogue.sort", filter.Sort),
		attribute.Bool("catalogue.filtered", filter.HasConstraints()),
	)

	key := cache.Key(cache.ProductKeyPrefix, "list:"+filter.CacheKey())

	return readThrough(ctx, s.cache, cache.ProductKeyPrefix, key, s.cfg.CacheTTL, func(ctx context.Context) (*models.ProductPage, error) {
		start := time.Now()
		pred := catalogue.BuildPredicate(filter)

		var (
			total    int64
			products []*models.Product
		)

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			var err error
			total, err = s.repo.CountProducts(gctx, pred)
			return err
		})

		g.Go(func() error {
			var err error
			products, err = s.repo.ListProducts(gctx, pred, filter.Sort, filter.Limit, catalogue.Offset(filter.Page, filter.Limit))
			return err
		})

		if err := g.Wait(); err != nil {
			span.RecordError(err)
			return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
		}

		if products == nil {
			products = []*models.Product{}
		}

		metrics.ObserveCatalogueQuery(filter.HasConstraints(), time.Since(start))

		return &models.ProductPage{
			Products:   products,
			Pagination: catalogue.Calculate(filter.Page, filter.Limit, total),
		}, nil
	})
}

func (s *productService) ListFeatured(ctx context.Context) ([]*models.Product, error) {

	key := cache.Key(cache.ProductKeyPrefix, "featured")

	return readThrough(ctx, s.cache, cache.ProductKeyPrefix, key, s.cfg.CacheTTL, func(ctx context.Context) ([]*models.Product, error) {
		products, err := s.repo.ListFeatured(ctx, s.cfg.FeaturedLimit)
		if err != nil {
			return nil, errors.DatabaseError("Failed to fetch featured products").WithError(err)
		}

		if products == nil {
			products = []*models.Product{}
		}

		return products, nil
	})
}

// resolveReferences loads the category and the optional period a product points
// at. Unknown ids are reported as 404 instead of being replaced.
func (s *productService) resolveReferences(ctx context.Context, categoryID uuid.UUID, periodID *uuid.UUID) (*models.Category, *models.Period, error) {

	category, err := s.categoryRepo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, errors.NotFoundError("Category not found").WithError(err)
		}

		return nil, nil, errors.DatabaseError("Failed to fetch category").WithError(err)
	}

	if periodID == nil {
		return category, nil, nil
	}

	period, err := s.periodRepo.GetPeriodByID(ctx, *periodID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, errors.NotFoundError("Period not found").WithError(err)
		}

		return nil, nil, errors.DatabaseError("Failed to fetch period").WithError(err)
	}

	return category, period, nil
}

func measuresFrom(req *models.MeasuresRequest) models.Measures {
	if req == nil {
		return models.Measures{Unit: models.UnitCentimetres}
	}

	return models.Measures{
		Height: req.Height,
		Width:  req.Width,
		Depth:  req.Depth,
		Unit:   req.Unit,
	}
}

// cleanImages keeps the given order and drops blanks and duplicates.
func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	seen := make(map[string]struct{}, len(images))

	for _, img := range images {
		if img == "" {
			continue
		}
		if _, ok := seen[img]; ok {
			continue
		}

		seen[img] = struct{}{}
		out = append(out, img)
	}

	return out
}
