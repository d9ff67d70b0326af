package client

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/google/uuid"
)

// Login exchanges credentials for a token and keeps it for later admin calls.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", &models.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	c.SetToken(resp.Token)
	return &resp, nil
}

func (c *Client) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.mutate(ctx, http.MethodPost, "/admin/products", req, &product, productWrites); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.mutate(ctx, http.MethodPut, "/admin/products/"+id.String(), req, &product, productWrites); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, "/admin/products/"+id.String(), nil, nil, productWrites)
}

func (c *Client) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := c.mutate(ctx, http.MethodPost, "/admin/categories", req, &category, categoryWrites); err != nil {
		return nil, err
	}

	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := c.mutate(ctx, http.MethodPut, "/admin/categories/"+id.String(), req, &category, categoryWrites); err != nil {
		return nil, err
	}

	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, "/admin/categories/"+id.String(), nil, nil, categoryWrites)
}

func (c *Client) CreatePeriod(ctx context.Context, req *models.CreatePeriodRequest) (*models.Period, error) {
	var period models.Period
	if err := c.mutate(ctx, http.MethodPost, "/admin/periods", req, &period, periodWrites); err != nil {
		return nil, err
	}

	return &period, nil
}

func (c *Client) UpdatePeriod(ctx context.Context, id uuid.UUID, req *models.UpdatePeriodRequest) (*models.Period, error) {
	var period models.Period
	if err := c.mutate(ctx, http.MethodPut, "/admin/periods/"+id.String(), req, &period, periodWrites); err != nil {
		return nil, err
	}

	return &period, nil
}

func (c *Client) DeletePeriod(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, "/admin/periods/"+id.String(), nil, nil, periodWrites)
}

func (c *Client) UpdateSettings(ctx context.Context, settings *models.SiteSettings) (*models.SiteSettings, error) {
	var updated models.SiteSettings
	if err := c.mutate(ctx, http.MethodPut, "/admin/settings", settings, &updated, settingsWrites); err != nil {
		return nil, err
	}

	return &updated, nil
}
