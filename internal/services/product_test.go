package service_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/cache"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/catalogue"
	appErrors "github.com/aaravmahajanofficial/antiques-catalogue/internal/errors"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/antiques-catalogue/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productFixture struct {
	productRepo  *mocks.ProductRepository
	categoryRepo *mocks.CategoryRepository
	periodRepo   *mocks.PeriodRepository
	cache        *cache.MemoryCache
	service      service.ProductService
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()

	f := &productFixture{
		productRepo:  mocks.NewProductRepository(t),
		categoryRepo: mocks.NewCategoryRepository(t),
		periodRepo:   mocks.NewPeriodRepository(t),
		cache:        cache.NewMemoryCache(time.Minute),
	}
	t.Cleanup(func() { _ = f.cache.Close() })

	f.service = service.NewProductService(f.productRepo, f.categoryRepo, f.periodRepo, f.cache, service.ProductServiceConfig{
		FeaturedLimit: 4,
		CacheTTL:      time.Minute,
	})

	return f
}

func notFound(what string) error {
	return fmt.Errorf("querying %s: %w", what, sql.ErrNoRows)
}

func requireAppError(t *testing.T, err error, code string) *appErrors.AppError {
	t.Helper()

	var appErr *appErrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)

	return appErr
}

func TestProductService_CreateProduct(t *testing.T) {
	categoryID := uuid.New()
	periodID := uuid.New()

	req := &models.CreateProductRequest{
		Name:        "Commode <b>Louis XV</b>",
		Description: "<p>Walnut veneer</p><script>alert(1)</script>",
		Price:       4200,
		Images:      []string{"https://img.example/1.jpg", "", "https://img.example/1.jpg", "https://img.example/2.jpg"},
		Measures:    &models.MeasuresRequest{Height: 85, Width: 120, Depth: 55, Unit: models.UnitCentimetres},
		Condition:   models.ConditionVeryGood,
		CategoryID:  categoryID,
		PeriodID:    &periodID,
	}

	t.Run("Success - Create Product", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		ctx := context.Background()

		require.NoError(t, f.cache.Set(ctx, cache.Key(cache.ProductKeyPrefix, "list:page=1"), "stale", 0))
		require.NoError(t, f.cache.Set(ctx, cache.Key(cache.CategoryKeyPrefix, "list:all"), "kept", 0))

		category := &models.Category{ID: categoryID, Name: "Commodes"}
		period := &models.Period{ID: periodID, Name: "Louis XV"}

		f.categoryRepo.On("GetCategoryByID", mock.Anything, categoryID).Return(category, nil).Once()
		f.periodRepo.On("GetPeriodByID", mock.Anything, periodID).Return(period, nil).Once()
		f.productRepo.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == "Commode Louis XV" && !strings.Contains(p.Description, "script")
		})).Return(func(_ context.Context, p *models.Product) error {
			p.ID = uuid.New()
			return nil
		}).Once()

		// Act
		product, err := f.service.CreateProduct(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, product.ID)
		assert.Equal(t, []string{"https://img.example/1.jpg", "https://img.example/2.jpg"}, product.Images)
		assert.Equal(t, models.Measures{Height: 85, Width: 120, Depth: 55, Unit: models.UnitCentimetres}, product.Measures)
		assert.Equal(t, category, product.Category)
		assert.Equal(t, period, product.Period)

		var s string
		found, _ := f.cache.Get(ctx, cache.Key(cache.ProductKeyPrefix, "list:page=1"), &s)
		assert.False(t, found, "product listings should be invalidated")
		found, _ = f.cache.Get(ctx, cache.Key(cache.CategoryKeyPrefix, "list:all"), &s)
		assert.True(t, found, "category listings are untouched by product writes")
	})

	t.Run("Failure - Unknown Category", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		f.categoryRepo.On("GetCategoryByID", mock.Anything, categoryID).Return(nil, notFound("category")).Once()

		// Act
		product, err := f.service.CreateProduct(context.Background(), req)

		// Assert
		assert.Nil(t, product)
		appErr := requireAppError(t, err, appErrors.ErrCodeNotFound)
		assert.Equal(t, "Category not found", appErr.Message)
		f.productRepo.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Period", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		f.categoryRepo.On("GetCategoryByID", mock.Anything, categoryID).Return(&models.Category{ID: categoryID}, nil).Once()
		f.periodRepo.On("GetPeriodByID", mock.Anything, periodID).Return(nil, notFound("period")).Once()

		// Act
		_, err := f.service.CreateProduct(context.Background(), req)

		// Assert
		appErr := requireAppError(t, err, appErrors.ErrCodeNotFound)
		assert.Equal(t, "Period not found", appErr.Message)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		f.categoryRepo.On("GetCategoryByID", mock.Anything, categoryID).Return(&models.Category{ID: categoryID}, nil).Once()
		f.periodRepo.On("GetPeriodByID", mock.Anything, periodID).Return(&models.Period{ID: periodID}, nil).Once()
		f.productRepo.On("CreateProduct", mock.Anything, mock.AnythingOfType("*models.Product")).Return(errors.New("connection reset")).Once()

		// Act
		_, err := f.service.CreateProduct(context.Background(), req)

		// Assert
		requireAppError(t, err, appErrors.ErrCodeDatabaseError)
		assert.Contains(t, err.Error(), "Failed to create product")
	})
}

func TestProductService_GetProductByID(t *testing.T) {
	id := uuid.New()

	t.Run("Success - Served From Cache On Second Read", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		expected := &models.Product{ID: id, Name: "Bergère", Images: []string{}}
		f.productRepo.On("GetProductByID", mock.Anything, id).Return(expected, nil).Once()

		// Act
		first, err1 := f.service.GetProductByID(context.Background(), id)
		second, err2 := f.service.GetProductByID(context.Background(), id)

		// Assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, expected.Name, first.Name)
		assert.Equal(t, expected.Name, second.Name)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		f.productRepo.On("GetProductByID", mock.Anything, id).Return(nil, notFound("product")).Once()

		// Act
		product, err := f.service.GetProductByID(context.Background(), id)

		// Assert
		assert.Nil(t, product)
		requireAppError(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		f.productRepo.On("GetProductByID", mock.Anything, id).Return(nil, errors.New("timeout")).Once()

		// Act
		_, err := f.service.GetProductByID(context.Background(), id)

		// Assert
		requireAppError(t, err, appErrors.ErrCodeDatabaseError)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	id := uuid.New()
	categoryID := uuid.New()
	periodID := uuid.New()

	t.Run("Success - Partial Update Clears Period", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		existing := &models.Product{ID: id, Name: "Old name", Price: 100, CategoryID: categoryID, PeriodID: &periodID}
		price := 250.0

		f.productRepo.On("GetProductByID", mock.Anything, id).Return(existing, nil).Once()
		f.categoryRepo.On("GetCategoryByID", mock.Anything, categoryID).Return(&models.Category{ID: categoryID}, nil).Once()
		f.productRepo.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Price == 250 && p.PeriodID == nil && p.Name == "Old name"
		})).Return(nil).Once()

		// Act
		product, err := f.service.UpdateProduct(context.Background(), id, &models.UpdateProductRequest{Price: &price, ClearPeriod: true})

		// Assert
		require.NoError(t, err)
		assert.Nil(t, product.Period)
		f.periodRepo.AssertNotCalled(t, "GetPeriodByID", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		f.productRepo.On("GetProductByID", mock.Anything, id).Return(nil, notFound("product")).Once()

		// Act
		_, err := f.service.UpdateProduct(context.Background(), id, &models.UpdateProductRequest{})

		// Assert
		requireAppError(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Failure - Unknown New Category", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		other := uuid.New()
		f.productRepo.On("GetProductByID", mock.Anything, id).Return(&models.Product{ID: id, CategoryID: categoryID}, nil).Once()
		f.categoryRepo.On("GetCategoryByID", mock.Anything, other).Return(nil, notFound("category")).Once()

		// Act
		_, err := f.service.UpdateProduct(context.Background(), id, &models.UpdateProductRequest{CategoryID: &other})

		// Assert
		requireAppError(t, err, appErrors.ErrCodeNotFound)
		f.productRepo.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything)
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newProductFixture(t)
		f.productRepo.On("DeleteProduct", mock.Anything, id).Return(nil).Once()

		assert.NoError(t, f.service.DeleteProduct(context.Background(), id))
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		f := newProductFixture(t)
		f.productRepo.On("DeleteProduct", mock.Anything, id).Return(sql.ErrNoRows).Once()

		requireAppError(t, f.service.DeleteProduct(context.Background(), id), appErrors.ErrCodeNotFound)
	})
}

func TestProductService_ListProducts(t *testing.T) {
	categoryID := uuid.New()

	t.Run("Success - Filtered Page With Metadata", func(t *testing.T) {
		// Arrange: five products exist, two of them in the requested category
		f := newProductFixture(t)
		filter := catalogue.Normalize(url.Values{
			"category": {categoryID.String()},
			"limit":    {"10"},
		}, catalogue.DefaultConfig())

		matching := []*models.Product{
			{ID: uuid.New(), Name: "Commode", CategoryID: categoryID},
			{ID: uuid.New(), Name: "Secrétaire", CategoryID: categoryID},
		}

		byCategory := mock.MatchedBy(func(p catalogue.Predicate) bool {
			return p.Clause == "p.category_id = $1" && len(p.Args) == 1 && p.Args[0] == categoryID
		})

		f.productRepo.On("CountProducts", mock.Anything, byCategory).Return(int64(2), nil).Once()
		f.productRepo.On("ListProducts", mock.Anything, byCategory, catalogue.DefaultSort, 10, 0).Return(matching, nil).Once()

		// Act
		page, err := f.service.ListProducts(context.Background(), filter)

		// Assert
		require.NoError(t, err)
		assert.Len(t, page.Products, 2)
		assert.Equal(t, models.Pagination{Total: 2, Page: 1, Limit: 10, TotalPages: 1}, page.Pagination)
	})

	t.Run("Success - No Matches Gives Empty Slice", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		filter := catalogue.Normalize(url.Values{"search": {"sèvres"}}, catalogue.DefaultConfig())

		f.productRepo.On("CountProducts", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
		f.productRepo.On("ListProducts", mock.Anything, mock.Anything, mock.Anything, 12, 0).Return(nil, nil).Once()

		// Act
		page, err := f.service.ListProducts(context.Background(), filter)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, page.Products)
		assert.Empty(t, page.Products)
		assert.Equal(t, 0, page.Pagination.TotalPages)
		assert.False(t, page.Pagination.HasNext)
		assert.False(t, page.Pagination.HasPrev)
	})

	t.Run("Success - Page Past The End", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		filter := catalogue.Normalize(url.Values{"page": {"99"}}, catalogue.DefaultConfig())

		f.productRepo.On("CountProducts", mock.Anything, mock.Anything).Return(int64(5), nil).Once()
		f.productRepo.On("ListProducts", mock.Anything, mock.Anything, mock.Anything, 12, 98*12).Return([]*models.Product{}, nil).Once()

		// Act
		page, err := f.service.ListProducts(context.Background(), filter)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, page.Products)
		assert.Equal(t, int64(5), page.Pagination.Total)
		assert.False(t, page.Pagination.HasNext)
		assert.True(t, page.Pagination.HasPrev)
	})

	t.Run("Success - Repeated Query Is Cached Until A Write", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		filter := catalogue.Normalize(url.Values{}, catalogue.DefaultConfig())
		id := uuid.New()

		f.productRepo.On("CountProducts", mock.Anything, mock.Anything).Return(int64(1), nil).Twice()
		f.productRepo.On("ListProducts", mock.Anything, mock.Anything, mock.Anything, 12, 0).Return([]*models.Product{{ID: id}}, nil).Twice()
		f.productRepo.On("DeleteProduct", mock.Anything, id).Return(nil).Once()

		// Act
		_, err := f.service.ListProducts(context.Background(), filter)
		require.NoError(t, err)
		_, err = f.service.ListProducts(context.Background(), filter)
		require.NoError(t, err)

		require.NoError(t, f.service.DeleteProduct(context.Background(), id))

		_, err = f.service.ListProducts(context.Background(), filter)
		require.NoError(t, err)

		// Assert: two repository round trips, one before and one after the delete
		f.productRepo.AssertNumberOfCalls(t, "CountProducts", 2)
	})

	t.Run("Success - Listing Racing A Delete Is Not Cached", func(t *testing.T) {
		// Arrange: the first count blocks until the delete has committed and
		// invalidated, so the page it assembles is already out of date
		f := newProductFixture(t)
		filter := catalogue.Normalize(url.Values{}, catalogue.DefaultConfig())
		id := uuid.New()
		entered := make(chan struct{})
		release := make(chan struct{})

		f.productRepo.On("CountProducts", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				close(entered)
				<-release
			}).Return(int64(1), nil).Once()
		f.productRepo.On("CountProducts", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
		f.productRepo.On("ListProducts", mock.Anything, mock.Anything, mock.Anything, 12, 0).Return([]*models.Product{{ID: id}}, nil).Once()
		f.productRepo.On("ListProducts", mock.Anything, mock.Anything, mock.Anything, 12, 0).Return([]*models.Product{}, nil).Once()
		f.productRepo.On("DeleteProduct", mock.Anything, id).Return(nil).Once()

		// Act
		done := make(chan *models.ProductPage)
		go func() {
			page, err := f.service.ListProducts(context.Background(), filter)
			assert.NoError(t, err)
			done <- page
		}()

		<-entered
		require.NoError(t, f.service.DeleteProduct(context.Background(), id))
		close(release)

		stale := <-done
		fresh, err := f.service.ListProducts(context.Background(), filter)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, stale)
		assert.Equal(t, int64(1), stale.Pagination.Total)
		assert.Equal(t, int64(0), fresh.Pagination.Total)
		assert.Empty(t, fresh.Products)
	})

	t.Run("Failure - Count Query Fails", func(t *testing.T) {
		// Arrange
		f := newProductFixture(t)
		filter := catalogue.Normalize(url.Values{}, catalogue.DefaultConfig())

		f.productRepo.On("CountProducts", mock.Anything, mock.Anything).Return(int64(0), errors.New("boom")).Once()
		f.productRepo.On("ListProducts", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*models.Product{}, nil).Maybe()

		// Act
		page, err := f.service.ListProducts(context.Background(), filter)

		// Assert
		assert.Nil(t, page)
		requireAppError(t, err, appErrors.ErrCodeDatabaseError)
	})
}

func TestProductService_ListFeatured(t *testing.T) {
	f := newProductFixture(t)
	f.productRepo.On("ListFeatured", mock.Anything, 4).Return(nil, nil).Once()

	products, err := f.service.ListFeatured(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}
