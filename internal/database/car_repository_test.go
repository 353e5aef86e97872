package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelbook/booking-backend/internal/models"
)

func TestGetCarByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewCarRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM cars WHERE id`).
			WithArgs("car-1").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "brand", "model", "city", "price_per_day", "unavailable_dates",
				"created_at", "updated_at",
			}).AddRow(
				"car-1", "Toyo", "Swift", "Porto", 40.0, []byte(`{"2026-06-01","2026-06-02"}`),
				now, now,
			))

		car, err := repo.GetByID("car-1")
		require.NoError(t, err)
		assert.Equal(t, "Toyo", car.Brand)
		assert.Equal(t, []string{"2026-06-01", "2026-06-02"}, car.UnavailableDates)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Empty Date Set", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM cars WHERE id`).
			WithArgs("car-2").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "brand", "model", "city", "price_per_day", "unavailable_dates",
				"created_at", "updated_at",
			}).AddRow(
				"car-2", "Toyo", "Swift", "Porto", 40.0, []byte(`{}`),
				now, now,
			))

		car, err := repo.GetByID("car-2")
		require.NoError(t, err)
		assert.Empty(t, car.UnavailableDates)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Car Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM cars WHERE id`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		car, err := repo.GetByID("missing")
		assert.Error(t, err)
		assert.Nil(t, car)

		var notFoundErr *models.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})
}

func TestSetCarUnavailableDates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewCarRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE cars SET unavailable_dates`).
			WithArgs("car-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetUnavailableDates("car-1", []string{"2026-06-01", "2026-06-02"})
		require.NoError(t, err)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Car Not Found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE cars SET unavailable_dates`).
			WithArgs("missing", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetUnavailableDates("missing", []string{"2026-06-01"})
		assert.Error(t, err)

		var notFoundErr *models.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})
}
