package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/travelbook/booking-backend/internal/models"
)

// TourRepository handles database operations for the tours table.
// Tours are read-only from the booking engine's point of view: the
// offered date set is never mutated by a booking.
type TourRepository struct {
	db DB
}

// NewTourRepository creates a new TourRepository
func NewTourRepository(db DB) *TourRepository {
	return &TourRepository{db: db}
}

// GetByID retrieves a tour by ID
func (r *TourRepository) GetByID(tourID string) (*models.Tour, error) {
	query := `
		SELECT id, name, city, price, duration_days, available_dates,
			   created_at, updated_at
		FROM tours
		WHERE id = $1
	`

	tour := &models.Tour{}
	var dates pq.StringArray
	err := r.db.QueryRow(query, tourID).Scan(
		&tour.ID, &tour.Name, &tour.City, &tour.Price, &tour.DurationDays, &dates,
		&tour.CreatedAt, &tour.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("tour")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tour: %w", err)
	}

	tour.AvailableDates = []string(dates)
	return tour, nil
}
