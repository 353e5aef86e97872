package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/travelbook/booking-backend/internal/models"
)

// HotelRepository handles database operations for hotels, rooms and
// their per-room-number availability
type HotelRepository struct {
	db DB
}

// NewHotelRepository creates a new HotelRepository
func NewHotelRepository(db DB) *HotelRepository {
	return &HotelRepository{db: db}
}

// GetByID retrieves a hotel by ID
func (r *HotelRepository) GetByID(hotelID string) (*models.Hotel, error) {
	query := `
		SELECT id, name, city, address, rating, created_at, updated_at
		FROM hotels
		WHERE id = $1
	`

	hotel := &models.Hotel{}
	err := r.db.QueryRow(query, hotelID).Scan(
		&hotel.ID, &hotel.Name, &hotel.City, &hotel.Address, &hotel.Rating,
		&hotel.CreatedAt, &hotel.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("hotel")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}

	return hotel, nil
}

// GetRoom retrieves a room category with all its room numbers
func (r *HotelRepository) GetRoom(roomID string) (*models.Room, error) {
	query := `
		SELECT id, hotel_id, title, price, max_people
		FROM rooms
		WHERE id = $1
	`

	room := &models.Room{}
	err := r.db.QueryRow(query, roomID).Scan(
		&room.ID, &room.HotelID, &room.Title, &room.Price, &room.MaxPeople,
	)

	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("room")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	numbersQuery := `
		SELECT id, room_id, number, unavailable_dates
		FROM room_numbers
		WHERE room_id = $1
		ORDER BY number
	`

	rows, err := r.db.Query(numbersQuery, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room numbers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.RoomNumber
		var dates pq.StringArray
		if err := rows.Scan(&entry.ID, &entry.RoomID, &entry.Number, &dates); err != nil {
			return nil, err
		}
		entry.UnavailableDates = []string(dates)
		room.RoomNumbers = append(room.RoomNumbers, entry)
	}

	return room, rows.Err()
}

// GetRoomNumberDates retrieves the unavailable-date set for one room number
func (r *HotelRepository) GetRoomNumberDates(roomID, number string) ([]string, error) {
	query := `
		SELECT unavailable_dates
		FROM room_numbers
		WHERE room_id = $1 AND number = $2
	`

	var dates pq.StringArray
	err := r.db.QueryRow(query, roomID, number).Scan(&dates)

	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("room number")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room availability: %w", err)
	}

	return []string(dates), nil
}

// SetRoomNumberDates replaces the unavailable-date set for one room number
func (r *HotelRepository) SetRoomNumberDates(roomID, number string, dates []string) error {
	query := `
		UPDATE room_numbers
		SET unavailable_dates = $3
		WHERE room_id = $1 AND number = $2
	`

	result, err := r.db.Exec(query, roomID, number, pq.Array(dates))
	if err != nil {
		return fmt.Errorf("failed to update room availability: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return models.NewNotFoundError("room number")
	}

	return nil
}
