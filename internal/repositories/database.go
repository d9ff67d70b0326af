package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/config"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type Repository struct {
	DB       *sql.DB
	Product  ProductRepository
	Category CategoryRepository
	Period   PeriodRepository
	Message  MessageRepository
	Settings SettingsRepository
	User     UserRepository
}

func New(ctx context.Context, cfg *config.Config) (*Repository, error) {

	// every query gets a span through the otelsql wrapper
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewWithDB(db), nil
}

// NewWithDB wires every repository onto an already opened pool.
func NewWithDB(db *sql.DB) *Repository {
	return &Repository{
		DB:       db,
		Product:  NewProductRepo(db),
		Category: NewCategoryRepo(db),
		Period:   NewPeriodRepo(db),
		Message:  NewMessageRepo(db),
		Settings: NewSettingsRepo(db),
		User:     NewUserRepo(db),
	}
}

func (p *Repository) Close() error {
	return p.DB.Close()
}

func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}

func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}
