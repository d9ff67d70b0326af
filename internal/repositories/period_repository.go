package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils"
	"github.com/google/uuid"
)

type PeriodRepository interface {
	CreatePeriod(ctx context.Context, period *models.Period) error
	GetPeriodByID(ctx context.Context, id uuid.UUID) (*models.Period, error)
	UpdatePeriod(ctx context.Context, period *models.Period) error
	DeletePeriod(ctx context.Context, id uuid.UUID) error
	ListPeriods(ctx context.Context, featuredOnly bool) ([]*models.Period, error)
}

type periodRepository struct {
	DB *sql.DB
}

func NewPeriodRepo(db *sql.DB) PeriodRepository {
	return &periodRepository{DB: db}
}

const periodColumns = `id, name, description, year_start, year_end, featured, created_at, updated_at`

func (r *periodRepository) CreatePeriod(ctx context.Context, period *models.Period) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO periods (name, description, year_start, year_end, featured)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	return r.DB.QueryRowContext(dbCtx, query, period.Name, period.Description, intArg(period.YearStart), intArg(period.YearEnd), period.Featured).
		Scan(&period.ID, &period.CreatedAt, &period.UpdatedAt)
}

func (r *periodRepository) GetPeriodByID(ctx context.Context, id uuid.UUID) (*models.Period, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + periodColumns + ` FROM periods WHERE id = $1`

	period, err := scanPeriod(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, fmt.Errorf("querying period %s: %w", id, err)
	}

	return period, nil
}

func (r *periodRepository) UpdatePeriod(ctx context.Context, period *models.Period) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE periods SET name = $1, description = $2, year_start = $3, year_end = $4, featured = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`

	return r.DB.QueryRowContext(dbCtx, query, period.Name, period.Description, intArg(period.YearStart), intArg(period.YearEnd), period.Featured, period.ID).
		Scan(&period.UpdatedAt)
}

func (r *periodRepository) DeletePeriod(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(dbCtx, `DELETE FROM periods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting period %s: %w", id, err)
	}

	return affectedOrNotFound(res)
}

// ListPeriods orders chronologically; periods without a start year come last.
func (r *periodRepository) ListPeriods(ctx context.Context, featuredOnly bool) ([]*models.Period, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + periodColumns + ` FROM periods`
	if featuredOnly {
		query += ` WHERE featured = TRUE`
	}
	query += ` ORDER BY year_start ASC NULLS LAST, name ASC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying periods: %w", err)
	}
	defer rows.Close()

	periods := make([]*models.Period, 0)

	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning period: %w", err)
		}

		periods = append(periods, period)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return periods, nil
}

func scanPeriod(s rowScanner) (*models.Period, error) {
	var (
		p          models.Period
		start, end sql.NullInt64
	)

	if err := s.Scan(&p.ID, &p.Name, &p.Description, &start, &end, &p.Featured, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}

	p.YearStart = nullIntPtr(start)
	p.YearEnd = nullIntPtr(end)

	return &p, nil
}
