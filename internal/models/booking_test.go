package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingType(t *testing.T) {
	t.Run("Case Insensitive Parsing", func(t *testing.T) {
		tests := []struct {
			input    string
			expected BookingType
		}{
			{"Flight", BookingTypeFlight},
			{"flight", BookingTypeFlight},
			{"FLIGHT", BookingTypeFlight},
			{"hotel", BookingTypeHotel},
			{"Tour", BookingTypeTour},
			{"cAr", BookingTypeCar},
		}

		for _, tt := range tests {
			t.Run(tt.input, func(t *testing.T) {
				got, err := ParseBookingType(tt.input)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			})
		}
	})

	t.Run("Unknown Type", func(t *testing.T) {
		_, err := ParseBookingType("cruise")
		assert.Error(t, err)

		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("Empty Type", func(t *testing.T) {
		_, err := ParseBookingType("")
		assert.Error(t, err)
	})
}

func TestBookingTypeRequirements(t *testing.T) {
	t.Run("End Date Required For Stays", func(t *testing.T) {
		assert.True(t, BookingTypeHotel.RequiresEndDate())
		assert.True(t, BookingTypeCar.RequiresEndDate())
		assert.False(t, BookingTypeFlight.RequiresEndDate())
		assert.False(t, BookingTypeTour.RequiresEndDate())
	})

	t.Run("Passengers Tracked For Seats", func(t *testing.T) {
		assert.True(t, BookingTypeFlight.RequiresPassengers())
		assert.True(t, BookingTypeTour.RequiresPassengers())
		assert.False(t, BookingTypeHotel.RequiresPassengers())
		assert.False(t, BookingTypeCar.RequiresPassengers())
	})
}

func TestBookingStateConfirmPayment(t *testing.T) {
	t.Run("From Initial State", func(t *testing.T) {
		next, action, err := NewBookingState().ConfirmPayment()
		require.NoError(t, err)
		assert.Equal(t, BookingStatusConfirmed, next.Status)
		assert.Equal(t, PaymentStatusPaid, next.PaymentStatus)
		assert.Equal(t, InventoryActionCommit, action)
	})

	t.Run("Already Paid", func(t *testing.T) {
		state := BookingState{Status: BookingStatusConfirmed, PaymentStatus: PaymentStatusPaid}
		_, action, err := state.ConfirmPayment()
		assert.Error(t, err)
		assert.Equal(t, InventoryActionNone, action)

		var conflictErr *ConflictError
		assert.ErrorAs(t, err, &conflictErr)
	})

	t.Run("Already Cancelled", func(t *testing.T) {
		state := BookingState{Status: BookingStatusCancelled, PaymentStatus: PaymentStatusPending}
		_, _, err := state.ConfirmPayment()
		assert.Error(t, err)

		var conflictErr *ConflictError
		assert.ErrorAs(t, err, &conflictErr)
	})

	t.Run("Completed Booking", func(t *testing.T) {
		state := BookingState{Status: BookingStatusCompleted, PaymentStatus: PaymentStatusPaid}
		_, _, err := state.ConfirmPayment()
		assert.Error(t, err)
	})
}

func TestBookingStateCancel(t *testing.T) {
	t.Run("Unpaid Pending Booking", func(t *testing.T) {
		next, action, err := NewBookingState().Cancel()
		require.NoError(t, err)
		assert.Equal(t, BookingStatusCancelled, next.Status)
		assert.Equal(t, PaymentStatusPending, next.PaymentStatus)
		assert.Equal(t, InventoryActionRelease, action)
	})

	t.Run("Paid Booking Is Refunded", func(t *testing.T) {
		state := BookingState{Status: BookingStatusConfirmed, PaymentStatus: PaymentStatusPaid}
		next, action, err := state.Cancel()
		require.NoError(t, err)
		assert.Equal(t, BookingStatusCancelled, next.Status)
		assert.Equal(t, PaymentStatusRefunded, next.PaymentStatus)
		assert.Equal(t, InventoryActionRelease, action)
	})

	t.Run("Double Cancel", func(t *testing.T) {
		state := BookingState{Status: BookingStatusCancelled, PaymentStatus: PaymentStatusRefunded}
		_, action, err := state.Cancel()
		assert.Error(t, err)
		assert.Equal(t, InventoryActionNone, action)

		var conflictErr *ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, "booking is already cancelled", conflictErr.Error())
	})

	t.Run("Cancel After Confirm Then Confirm Again Fails", func(t *testing.T) {
		confirmed, _, err := NewBookingState().ConfirmPayment()
		require.NoError(t, err)

		cancelled, _, err := confirmed.Cancel()
		require.NoError(t, err)

		_, _, err = cancelled.ConfirmPayment()
		assert.Error(t, err)
	})
}

func TestCreateBookingRequestValidate(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	intPtr := func(n int) *int { return &n }

	t.Run("Valid Flight Request", func(t *testing.T) {
		req := &CreateBookingRequest{
			BookingType:  "flight",
			BookedItemID: "flight-1",
			StartDate:    "2026-07-01",
			TotalPrice:   199.99,
			Passengers:   intPtr(2),
		}
		bookingType, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, BookingTypeFlight, bookingType)
	})

	t.Run("Valid Hotel Request", func(t *testing.T) {
		req := &CreateBookingRequest{
			BookingType:  "hotel",
			BookedItemID: "hotel-1",
			RoomID:       strPtr("room-1"),
			RoomNumber:   strPtr("101"),
			StartDate:    "2026-07-01",
			EndDate:      strPtr("2026-07-04"),
			TotalPrice:   420,
		}
		bookingType, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, BookingTypeHotel, bookingType)
	})

	t.Run("Hotel Missing Room Fields", func(t *testing.T) {
		req := &CreateBookingRequest{
			BookingType:  "hotel",
			BookedItemID: "hotel-1",
			StartDate:    "2026-07-01",
			EndDate:      strPtr("2026-07-04"),
		}
		_, err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Car Missing End Date", func(t *testing.T) {
		req := &CreateBookingRequest{
			BookingType:  "car",
			BookedItemID: "car-1",
			StartDate:    "2026-07-01",
		}
		_, err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Negative Price", func(t *testing.T) {
		req := &CreateBookingRequest{
			BookingType:  "tour",
			BookedItemID: "tour-1",
			StartDate:    "2026-07-01",
			TotalPrice:   -1,
		}
		_, err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Flight Missing Passengers", func(t *testing.T) {
		req := &CreateBookingRequest{
			BookingType:  "flight",
			BookedItemID: "flight-1",
			StartDate:    "2026-07-01",
			TotalPrice:   100,
		}
		_, err := req.Validate()
		assert.Error(t, err)

		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("Tour Missing Passengers", func(t *testing.T) {
		req := &CreateBookingRequest{
			BookingType:  "tour",
			BookedItemID: "tour-1",
			StartDate:    "2026-05-01",
			TotalPrice:   45,
		}
		_, err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Car Omitting Passengers Is Valid", func(t *testing.T) {
		req := &CreateBookingRequest{
			BookingType:  "car",
			BookedItemID: "car-1",
			StartDate:    "2026-07-01",
			EndDate:      strPtr("2026-07-03"),
		}
		_, err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Zero Passengers", func(t *testing.T) {
		req := &CreateBookingRequest{
			BookingType:  "flight",
			BookedItemID: "flight-1",
			StartDate:    "2026-07-01",
			Passengers:   intPtr(0),
		}
		_, err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Passenger Count Defaults To One", func(t *testing.T) {
		req := &CreateBookingRequest{}
		assert.Equal(t, 1, req.PassengerCount())

		req.Passengers = intPtr(3)
		assert.Equal(t, 3, req.PassengerCount())
	})
}

func TestUpdateBookingStatusRequestValidate(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("Both Fields Missing", func(t *testing.T) {
		req := &UpdateBookingStatusRequest{}
		assert.Error(t, req.Validate())
	})

	t.Run("Valid Status Only", func(t *testing.T) {
		req := &UpdateBookingStatusRequest{Status: strPtr("completed")}
		assert.NoError(t, req.Validate())
	})

	t.Run("Invalid Status", func(t *testing.T) {
		req := &UpdateBookingStatusRequest{Status: strPtr("archived")}
		assert.Error(t, req.Validate())
	})

	t.Run("Invalid Payment Status", func(t *testing.T) {
		req := &UpdateBookingStatusRequest{PaymentStatus: strPtr("chargeback")}
		assert.Error(t, req.Validate())
	})
}
