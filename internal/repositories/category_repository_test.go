package repository_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	repository "github.com/aaravmahajanofficial/antiques-catalogue/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewCategoryRepo(db)
	ctx := t.Context()
	columns := []string{"id", "name", "description", "image", "featured", "created_at", "updated_at"}

	t.Run("CreateCategory_Success", func(t *testing.T) {
		// Arrange
		category := &models.Category{Name: "Clocks", Description: "Mantel and longcase", Featured: true}
		newID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO categories (name, description, image, featured) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`)).
			WithArgs(category.Name, category.Description, "", true).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(newID.String(), now, now))

		// Act
		err := repo.CreateCategory(ctx, category)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, newID, category.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreateCategory_Duplicate", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO categories`)).WillReturnError(pqError("23505"))

		err := repo.CreateCategory(ctx, &models.Category{Name: "Clocks"})

		assert.True(t, repository.IsUniqueViolation(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetCategoryByID_Success", func(t *testing.T) {
		id := uuid.New()
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM categories WHERE id = $1`)).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(id.String(), "Mirrors", "", "", false, now, now))

		category, err := repo.GetCategoryByID(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "Mirrors", category.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateCategory_NotFound", func(t *testing.T) {
		category := &models.Category{ID: uuid.New(), Name: "Gone"}

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE categories SET name = $1`)).
			WithArgs(category.Name, "", "", false, category.ID).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

		err := repo.UpdateCategory(ctx, category)

		assert.True(t, repository.IsNotFound(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListCategories_FeaturedOnly", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM categories WHERE featured = TRUE ORDER BY name ASC`)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(uuid.NewString(), "Clocks", "", "", true, now, now).
				AddRow(uuid.NewString(), "Mirrors", "", "", true, now, now))

		categories, err := repo.ListCategories(ctx, true)

		require.NoError(t, err)
		assert.Len(t, categories, 2)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteCategory_StillReferenced", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE id = $1`)).WithArgs(id).WillReturnError(pqError("23503"))

		err := repo.DeleteCategory(ctx, id)

		assert.True(t, repository.IsForeignKeyViolation(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPeriodRepository_FromCategoryFile(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewPeriodRepo(db)
	ctx := t.Context()
	columns := []string{"id", "name", "description", "year_start", "year_end", "featured", "created_at", "updated_at"}

	t.Run("CreatePeriod_OpenEnded", func(t *testing.T) {
		start := 1900
		period := &models.Period{Name: "Art Nouveau", YearStart: &start}
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO periods (name, description, year_start, year_end, featured)`)).
			WithArgs("Art Nouveau", "", int64(1900), nil, false).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(uuid.NewString(), now, now))

		require.NoError(t, repo.CreatePeriod(ctx, period))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListPeriods_Chronological", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM periods ORDER BY year_start ASC NULLS LAST, name ASC`)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(uuid.NewString(), "Régence", "", int64(1715), int64(1723), false, now, now).
				AddRow(uuid.NewString(), "Rustic", "", nil, nil, false, now, now))

		periods, err := repo.ListPeriods(ctx, false)

		require.NoError(t, err)
		require.Len(t, periods, 2)
		assert.Equal(t, 1723, *periods[0].YearEnd)
		assert.Nil(t, periods[1].YearStart)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeletePeriod_NotFound", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM periods WHERE id = $1`)).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.True(t, repository.IsNotFound(repo.DeletePeriod(ctx, id)))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
