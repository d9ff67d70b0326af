package client

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/catalogue"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/google/uuid"
)

// ListProducts fetches one page of the catalogue. Equal filters share a cache
// entry because the key is built from the normalized query.
func (c *Client) ListProducts(ctx context.Context, filter catalogue.Filter) (*models.ProductPage, error) {
	query := filter.Values().Encode()

	var page models.ProductPage
	if err := c.cachedGet(ctx, familyProducts+filter.CacheKey(), "/products?"+query, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (c *Client) ListFeaturedProducts(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	if err := c.cachedGet(ctx, familyProducts+"featured", "/products/featured", &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := c.cachedGet(ctx, familyProducts+"id:"+id.String(), "/products/"+id.String(), &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) ListCategories(ctx context.Context, featuredOnly bool) ([]*models.Category, error) {
	key, path := familyCategories+"all", "/categories"
	if featuredOnly {
		key, path = familyCategories+"featured", "/categories/featured"
	}

	var categories []*models.Category
	if err := c.cachedGet(ctx, key, path, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := c.cachedGet(ctx, familyCategories+"id:"+id.String(), "/categories/"+id.String(), &category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (c *Client) ListPeriods(ctx context.Context, featuredOnly bool) ([]*models.Period, error) {
	key, path := familyPeriods+"all", "/periods"
	if featuredOnly {
		key, path = familyPeriods+"featured", "/periods/featured"
	}

	var periods []*models.Period
	if err := c.cachedGet(ctx, key, path, &periods); err != nil {
		return nil, err
	}

	return periods, nil
}

func (c *Client) GetPeriod(ctx context.Context, id uuid.UUID) (*models.Period, error) {
	var period models.Period
	if err := c.cachedGet(ctx, familyPeriods+"id:"+id.String(), "/periods/"+id.String(), &period); err != nil {
		return nil, err
	}

	return &period, nil
}

func (c *Client) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	if err := c.cachedGet(ctx, familySettings+"site", "/settings", &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// SubmitContact and SubmitEstimate are never retried on 429; the caller
// decides whether to try again after APIError.RetryAfter.
func (c *Client) SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.Message, error) {
	var message models.Message
	if err := c.do(ctx, http.MethodPost, "/messages/contact", req, &message); err != nil {
		return nil, err
	}

	return &message, nil
}

func (c *Client) SubmitEstimate(ctx context.Context, req *models.EstimateRequest) (*models.Message, error) {
	var message models.Message
	if err := c.do(ctx, http.MethodPost, "/messages/estimate", req, &message); err != nil {
		return nil, err
	}

	return &message, nil
}
