package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelbook/booking-backend/internal/models"
)

func bookingColumns() []string {
	return []string{
		"id", "user_id", "booking_type", "booked_item_id",
		"room_id", "room_number", "start_date", "end_date",
		"total_price", "passengers", "status", "payment_status", "payment_id",
		"created_at", "updated_at",
	}
}

func TestCreateBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		booking := &models.Booking{
			ID:            "booking-1",
			UserID:        "user-1",
			BookingType:   models.BookingTypeFlight,
			BookedItemID:  "flight-1",
			StartDate:     "2026-04-10",
			TotalPrice:    150,
			Passengers:    2,
			Status:        models.BookingStatusPending,
			PaymentStatus: models.PaymentStatusPending,
		}

		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(
				"booking-1", "user-1", models.BookingTypeFlight, "flight-1",
				nil, nil, "2026-04-10", nil,
				150.0, 2, models.BookingStatusPending, models.PaymentStatusPending, nil,
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		err := repo.Create(booking)
		require.NoError(t, err)
		assert.Equal(t, now, booking.CreatedAt)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Generates ID When Missing", func(t *testing.T) {
		now := time.Now()
		booking := &models.Booking{
			UserID:        "user-1",
			BookingType:   models.BookingTypeTour,
			BookedItemID:  "tour-1",
			StartDate:     "2026-05-01",
			Passengers:    1,
			Status:        models.BookingStatusPending,
			PaymentStatus: models.PaymentStatusPending,
		}

		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(
				sqlmock.AnyArg(), "user-1", models.BookingTypeTour, "tour-1",
				nil, nil, "2026-05-01", nil,
				0.0, 1, models.BookingStatusPending, models.PaymentStatusPending, nil,
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		err := repo.Create(booking)
		require.NoError(t, err)
		assert.NotEmpty(t, booking.ID)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Database Error", func(t *testing.T) {
		booking := &models.Booking{
			ID:           "booking-1",
			UserID:       "user-1",
			BookingType:  models.BookingTypeFlight,
			BookedItemID: "flight-1",
			StartDate:    "2026-04-10",
			Passengers:   1,
		}

		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Create(booking)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create booking")

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})
}

func TestGetBookingByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success With Nullable Fields Set", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id`).
			WithArgs("booking-1").
			WillReturnRows(sqlmock.NewRows(bookingColumns()).AddRow(
				"booking-1", "user-1", "Hotel", "hotel-1",
				"room-1", "101", "2026-04-04", "2026-04-06",
				300.0, 1, "confirmed", "paid", "PAY_123_ABCD1234",
				now, now,
			))

		booking, err := repo.GetByID("booking-1")
		require.NoError(t, err)
		assert.Equal(t, models.BookingTypeHotel, booking.BookingType)
		require.NotNil(t, booking.RoomID)
		assert.Equal(t, "room-1", *booking.RoomID)
		require.NotNil(t, booking.EndDate)
		assert.Equal(t, "2026-04-06", *booking.EndDate)
		require.NotNil(t, booking.PaymentID)
		assert.Equal(t, "PAY_123_ABCD1234", *booking.PaymentID)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Success With Nullable Fields Empty", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id`).
			WithArgs("booking-2").
			WillReturnRows(sqlmock.NewRows(bookingColumns()).AddRow(
				"booking-2", "user-1", "Flight", "flight-1",
				nil, nil, "2026-04-10", nil,
				150.0, 2, "pending", "pending", nil,
				now, now,
			))

		booking, err := repo.GetByID("booking-2")
		require.NoError(t, err)
		assert.Nil(t, booking.RoomID)
		assert.Nil(t, booking.EndDate)
		assert.Nil(t, booking.PaymentID)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Booking Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		booking, err := repo.GetByID("missing")
		assert.Error(t, err)
		assert.Nil(t, booking)

		var notFoundErr *models.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})
}

func TestGetBookingsByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE user_id (.+) ORDER BY created_at DESC`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows(bookingColumns()).
				AddRow("booking-2", "user-1", "Tour", "tour-1", nil, nil, "2026-05-01", nil,
					45.0, 2, "pending", "pending", nil, now, now).
				AddRow("booking-1", "user-1", "Flight", "flight-1", nil, nil, "2026-04-10", nil,
					150.0, 1, "cancelled", "refunded", "PAY_123_ABCD1234", now, now))

		bookings, err := repo.GetByUserID("user-1")
		require.NoError(t, err)
		require.Len(t, bookings, 2)
		assert.Equal(t, "booking-2", bookings[0].ID)
		assert.Equal(t, models.PaymentStatusRefunded, bookings[1].PaymentStatus)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Empty Result", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE user_id`).
			WithArgs("user-2").
			WillReturnRows(sqlmock.NewRows(bookingColumns()))

		bookings, err := repo.GetByUserID("user-2")
		require.NoError(t, err)
		assert.Len(t, bookings, 0)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})
}

func TestUpdateBookingState(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		paymentID := "PAY_123_ABCD1234"
		booking := &models.Booking{
			ID:            "booking-1",
			Status:        models.BookingStatusConfirmed,
			PaymentStatus: models.PaymentStatusPaid,
			PaymentID:     &paymentID,
		}

		mock.ExpectQuery(`UPDATE bookings`).
			WithArgs("booking-1", models.BookingStatusConfirmed, models.PaymentStatusPaid, &paymentID).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

		err := repo.UpdateState(booking)
		require.NoError(t, err)
		assert.Equal(t, now, booking.UpdatedAt)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Booking Not Found", func(t *testing.T) {
		booking := &models.Booking{
			ID:            "missing",
			Status:        models.BookingStatusCancelled,
			PaymentStatus: models.PaymentStatusPending,
		}

		mock.ExpectQuery(`UPDATE bookings`).
			WithArgs("missing", models.BookingStatusCancelled, models.PaymentStatusPending, nil).
			WillReturnError(sql.ErrNoRows)

		err := repo.UpdateState(booking)
		assert.Error(t, err)

		var notFoundErr *models.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})
}
