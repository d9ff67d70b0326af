package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/catalogue"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, pred catalogue.Predicate, sort string, limit, offset int) ([]*models.Product, error)
	CountProducts(ctx context.Context, pred catalogue.Predicate) (int64, error)
	ListFeatured(ctx context.Context, limit int) ([]*models.Product, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	CountByPeriod(ctx context.Context, periodID uuid.UUID) (int64, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.images,
	       p.height, p.width, p.depth, p.measure_unit, p.condition,
	       p.category_id, p.period_id, p.origin, p.provenance, p.history, p.delivery_notes,
	       p.featured, p.created_at, p.updated_at,
	       c.id, c.name, c.description, c.image, c.featured, c.created_at, c.updated_at,
	       pe.id, pe.name, pe.description, pe.year_start, pe.year_end, pe.featured, pe.created_at, pe.updated_at
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
	LEFT JOIN periods pe ON p.period_id = pe.id`

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (name, description, price, images, height, width, depth, measure_unit, condition,
		                      category_id, period_id, origin, provenance, history, delivery_notes, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at`

	return r.DB.QueryRowContext(dbCtx, query, productArgs(product)...).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := productSelect + ` WHERE p.id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, fmt.Errorf("querying product %s: %w", id, err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET name = $1, description = $2, price = $3, images = $4, height = $5, width = $6, depth = $7,
		       measure_unit = $8, condition = $9, category_id = $10, period_id = $11, origin = $12, provenance = $13,
		       history = $14, delivery_notes = $15, featured = $16, updated_at = NOW()
		WHERE id = $17
		RETURNING updated_at`

	args := append(productArgs(product), product.ID)

	return r.DB.QueryRowContext(dbCtx, query, args...).Scan(&product.UpdatedAt)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product %s: %w", id, err)
	}

	return affectedOrNotFound(res)
}

// ListProducts returns one page of products matching pred. The sort key goes
// through catalogue.OrderBy and never reaches the query text directly.
func (r *productRepository) ListProducts(ctx context.Context, pred catalogue.Predicate, sort string, limit, offset int) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	n := pred.NextArg()
	query := productSelect + pred.Where() +
		` ORDER BY ` + catalogue.OrderBy(sort) +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, n, n+1)

	args := append(append([]any{}, pred.Args...), limit, offset)

	return r.queryProducts(dbCtx, query, args...)
}

func (r *productRepository) CountProducts(ctx context.Context, pred catalogue.Predicate) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int64

	query := `SELECT COUNT(*) FROM products p` + pred.Where()

	if err := r.DB.QueryRowContext(dbCtx, query, pred.Args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}

	return total, nil
}

func (r *productRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := productSelect + ` WHERE p.featured = TRUE ORDER BY p.created_at DESC LIMIT $1`

	return r.queryProducts(dbCtx, query, limit)
}

func (r *productRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID)
}

func (r *productRepository) CountByPeriod(ctx context.Context, periodID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, `SELECT COUNT(*) FROM products WHERE period_id = $1`, periodID)
}

func (r *productRepository) countWhere(ctx context.Context, query string, id uuid.UUID) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int64
	if err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting product references: %w", err)
	}

	return count, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products := make([]*models.Product, 0)

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func productArgs(p *models.Product) []any {
	images := p.Images
	if images == nil {
		images = []string{}
	}

	return []any{
		p.Name, p.Description, p.Price, pq.Array(images),
		p.Measures.Height, p.Measures.Width, p.Measures.Depth, p.Measures.Unit, p.Condition,
		p.CategoryID, p.PeriodID, p.Origin, p.Provenance, p.History, p.DeliveryNotes, p.Featured,
	}
}

func scanProduct(s rowScanner) (*models.Product, error) {
	var (
		p        models.Product
		periodID uuid.NullUUID

		catID                      uuid.NullUUID
		catName, catDesc, catImage sql.NullString
		catFeatured                sql.NullBool
		catCreated, catUpdated     sql.NullTime
		perID                      uuid.NullUUID
		perName, perDesc           sql.NullString
		perStart, perEnd           sql.NullInt64
		perFeatured                sql.NullBool
		perCreated, perUpdated     sql.NullTime
	)

	err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, pq.Array(&p.Images),
		&p.Measures.Height, &p.Measures.Width, &p.Measures.Depth, &p.Measures.Unit, &p.Condition,
		&p.CategoryID, &periodID, &p.Origin, &p.Provenance, &p.History, &p.DeliveryNotes,
		&p.Featured, &p.CreatedAt, &p.UpdatedAt,
		&catID, &catName, &catDesc, &catImage, &catFeatured, &catCreated, &catUpdated,
		&perID, &perName, &perDesc, &perStart, &perEnd, &perFeatured, &perCreated, &perUpdated,
	)
	if err != nil {
		return nil, err
	}

	if p.Images == nil {
		p.Images = []string{}
	}

	if periodID.Valid {
		id := periodID.UUID
		p.PeriodID = &id
	}

	if catID.Valid {
		p.Category = &models.Category{
			ID:          catID.UUID,
			Name:        catName.String,
			Description: catDesc.String,
			Image:       catImage.String,
			Featured:    catFeatured.Bool,
			CreatedAt:   catCreated.Time,
			UpdatedAt:   catUpdated.Time,
		}
	}

	if perID.Valid {
		p.Period = &models.Period{
			ID:          perID.UUID,
			Name:        perName.String,
			Description: perDesc.String,
			YearStart:   nullIntPtr(perStart),
			YearEnd:     nullIntPtr(perEnd),
			Featured:    perFeatured.Bool,
			CreatedAt:   perCreated.Time,
			UpdatedAt:   perUpdated.Time,
		}
	}

	return &p, nil
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}

	i := int(v.Int64)
	return &i
}

func intArg(v *int) any {
	if v == nil {
		return nil
	}

	return int64(*v)
}
