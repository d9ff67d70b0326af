package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/api/middleware"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/catalogue"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	service "github.com/aaravmahajanofficial/antiques-catalogue/internal/services"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
	filterConfig   catalogue.Config
}

func NewProductHandler(productService service.ProductService, filterConfig catalogue.Config) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New(), filterConfig: filterConfig}
}

// ListProducts godoc
//
//	@Summary		List products
//	@Description	Filtered, sorted and paginated catalogue listing. Malformed parameters fall back to defaults.
//	@Tags			Products
//	@Produce		json
//	@Param			category	query		string	false	"Category ID"	Format(uuid)
//	@Param			period		query		string	false	"Period ID"		Format(uuid)
//	@Param			minPrice	query		number	false	"Minimum price"
//	@Param			maxPrice	query		number	false	"Maximum price"
//	@Param			search		query		string	false	"Case-insensitive search on name and description"
//	@Param			page		query		int		false	"Page (1-based)"
//	@Param			limit		query		int		false	"Page size"
//	@Param			sort		query		string	false	"createdAt, -createdAt, price, -price, name, -name"
//	@Success		200			{object}	models.ProductPage
//	@Failure		500			{object}	response.ErrorResponse
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		filter := catalogue.Normalize(r.URL.Query(), h.filterConfig)

		page, err := h.productService.ListProducts(r.Context(), filter)
		if err != nil {
			logger.Error("Failed to list products", slog.String("filter", filter.CacheKey()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Products listed",
			slog.String("filter", filter.CacheKey()),
			slog.Int64("total", page.Pagination.Total),
			slog.Int("returned", len(page.Products)))
		response.Success(w, http.StatusOK, page)
	}
}

func (h *ProductHandler) ListFeatured() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		products, err := h.productService.ListFeatured(r.Context())
		if err != nil {
			logger.Error("Failed to list featured products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

// GetProduct godoc
//
//	@Summary	Get a product
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"	Format(uuid)
//	@Success	200	{object}	models.Product
//	@Failure	400	{object}	response.ErrorResponse
//	@Failure	404	{object}	response.ErrorResponse
//	@Router		/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.String("productId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// CreateProduct godoc
//
//	@Summary	Create a product
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		product	body		models.CreateProductRequest	true	"Product"
//	@Success	201		{object}	models.Product
//	@Failure	400		{object}	response.ErrorResponse
//	@Failure	401		{object}	response.ErrorResponse
//	@Failure	404		{object}	response.ErrorResponse	"Unknown category or period"
//	@Security	BearerAuth
//	@Router		/admin/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create product input")
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created", slog.String("productId", product.ID.String()))
		response.Success(w, http.StatusCreated, product)
	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update product input", slog.String("productId", id.String()))
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.String("productId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated", slog.String("productId", id.String()))
		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
			logger.Error("Failed to delete product", slog.String("productId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted", slog.String("productId", id.String()))
		w.WriteHeader(http.StatusNoContent)
	}
}
