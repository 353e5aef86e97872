package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/travelbook/booking-backend/internal/models"
)

// CarRepository handles database operations for the cars table
type CarRepository struct {
	db DB
}

// NewCarRepository creates a new CarRepository
func NewCarRepository(db DB) *CarRepository {
	return &CarRepository{db: db}
}

// GetByID retrieves a car by ID
func (r *CarRepository) GetByID(carID string) (*models.Car, error) {
	query := `
		SELECT id, brand, model, city, price_per_day, unavailable_dates,
			   created_at, updated_at
		FROM cars
		WHERE id = $1
	`

	car := &models.Car{}
	var dates pq.StringArray
	err := r.db.QueryRow(query, carID).Scan(
		&car.ID, &car.Brand, &car.Model, &car.City, &car.PricePerDay, &dates,
		&car.CreatedAt, &car.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("car")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get car: %w", err)
	}

	car.UnavailableDates = []string(dates)
	return car, nil
}

// SetUnavailableDates replaces the car's unavailable-date set
func (r *CarRepository) SetUnavailableDates(carID string, dates []string) error {
	query := `
		UPDATE cars
		SET unavailable_dates = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, carID, pq.Array(dates))
	if err != nil {
		return fmt.Errorf("failed to update car availability: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return models.NewNotFoundError("car")
	}

	return nil
}
