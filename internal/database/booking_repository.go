package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/travelbook/booking-backend/internal/models"
)

// scanner interface for QueryRow and Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create creates a new booking
func (r *BookingRepository) Create(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			id, user_id, booking_type, booked_item_id,
			room_id, room_number, start_date, end_date,
			total_price, passengers, status, payment_status, payment_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		RETURNING created_at, updated_at
	`

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		booking.ID, booking.UserID, booking.BookingType, booking.BookedItemID,
		booking.RoomID, booking.RoomNumber, booking.StartDate, booking.EndDate,
		booking.TotalPrice, booking.Passengers, booking.Status, booking.PaymentStatus, booking.PaymentID,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(bookingID string) (*models.Booking, error) {
	query := `
		SELECT id, user_id, booking_type, booked_item_id,
			   room_id, room_number, start_date, end_date,
			   total_price, passengers, status, payment_status, payment_id,
			   created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	return r.scanBooking(r.db.QueryRow(query, bookingID))
}

// GetByUserID retrieves all bookings for a user, newest first
func (r *BookingRepository) GetByUserID(userID string) ([]models.Booking, error) {
	query := `
		SELECT id, user_id, booking_type, booked_item_id,
			   room_id, room_number, start_date, end_date,
			   total_price, passengers, status, payment_status, payment_id,
			   created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetAll retrieves all bookings, newest first
func (r *BookingRepository) GetAll() ([]models.Booking, error) {
	query := `
		SELECT id, user_id, booking_type, booked_item_id,
			   room_id, room_number, start_date, end_date,
			   total_price, passengers, status, payment_status, payment_id,
			   created_at, updated_at
		FROM bookings
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateState persists a lifecycle transition (status, payment status and
// payment reference together)
func (r *BookingRepository) UpdateState(booking *models.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, payment_status = $3, payment_id = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		booking.ID, booking.Status, booking.PaymentStatus, booking.PaymentID,
	).Scan(&booking.UpdatedAt)

	if err == sql.ErrNoRows {
		return models.NewNotFoundError("booking")
	}
	if err != nil {
		return fmt.Errorf("failed to update booking state: %w", err)
	}

	return nil
}

// scanBooking scans a single booking
func (r *BookingRepository) scanBooking(row scanner) (*models.Booking, error) {
	booking := &models.Booking{}
	var roomID sql.NullString
	var roomNumber sql.NullString
	var endDate sql.NullString
	var paymentID sql.NullString

	err := row.Scan(
		&booking.ID, &booking.UserID, &booking.BookingType, &booking.BookedItemID,
		&roomID, &roomNumber, &booking.StartDate, &endDate,
		&booking.TotalPrice, &booking.Passengers, &booking.Status, &booking.PaymentStatus, &paymentID,
		&booking.CreatedAt, &booking.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("booking")
	}
	if err != nil {
		return nil, err
	}

	if roomID.Valid {
		booking.RoomID = &roomID.String
	}
	if roomNumber.Valid {
		booking.RoomNumber = &roomNumber.String
	}
	if endDate.Valid {
		booking.EndDate = &endDate.String
	}
	if paymentID.Valid {
		booking.PaymentID = &paymentID.String
	}

	return booking, nil
}

// scanBookings scans multiple bookings from rows
func (r *BookingRepository) scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	bookings := []models.Booking{}

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}
