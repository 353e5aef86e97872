package database

import (
	"database/sql"
	"fmt"

	"github.com/travelbook/booking-backend/internal/models"
)

// FlightRepository handles database operations for the flights table
type FlightRepository struct {
	db DB
}

// NewFlightRepository creates a new FlightRepository
func NewFlightRepository(db DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// GetByID retrieves a flight by ID
func (r *FlightRepository) GetByID(flightID string) (*models.Flight, error) {
	query := `
		SELECT id, airline, flight_number, origin, destination,
			   departure_time, price, available_seats, created_at, updated_at
		FROM flights
		WHERE id = $1
	`

	flight := &models.Flight{}
	err := r.db.QueryRow(query, flightID).Scan(
		&flight.ID, &flight.Airline, &flight.FlightNumber, &flight.Origin, &flight.Destination,
		&flight.DepartureTime, &flight.Price, &flight.AvailableSeats, &flight.CreatedAt, &flight.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("flight")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}

	return flight, nil
}

// ReserveSeats decrements available seats as a single conditional update.
// The decrement only happens when enough seats remain; a concurrent
// read-modify-write pair cannot oversell.
func (r *FlightRepository) ReserveSeats(flightID string, seats int) error {
	query := `
		UPDATE flights
		SET available_seats = available_seats - $2, updated_at = NOW()
		WHERE id = $1
		  AND available_seats >= $2
	`

	result, err := r.db.Exec(query, flightID, seats)
	if err != nil {
		return fmt.Errorf("failed to reserve seats: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return models.NewConflictError("not enough seats available")
	}

	return nil
}

// ReleaseSeats returns previously reserved seats to the flight
func (r *FlightRepository) ReleaseSeats(flightID string, seats int) error {
	query := `
		UPDATE flights
		SET available_seats = available_seats + $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, flightID, seats)
	if err != nil {
		return fmt.Errorf("failed to release seats: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return models.NewNotFoundError("flight")
	}

	return nil
}
