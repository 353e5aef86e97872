package models

import (
	"fmt"
	"strings"
	"time"
)

// BookingType identifies which inventory collection a booking points to
type BookingType string

const (
	BookingTypeFlight BookingType = "Flight"
	BookingTypeHotel  BookingType = "Hotel"
	BookingTypeTour   BookingType = "Tour"
	BookingTypeCar    BookingType = "Car"
)

// ParseBookingType normalizes raw input (any casing) into a canonical
// BookingType. Normalization happens here, once, at the ingress boundary.
func ParseBookingType(raw string) (BookingType, error) {
	if raw == "" {
		return "", NewValidationError("bookingType is required")
	}

	normalized := strings.ToUpper(raw[:1]) + strings.ToLower(raw[1:])

	switch BookingType(normalized) {
	case BookingTypeFlight, BookingTypeHotel, BookingTypeTour, BookingTypeCar:
		return BookingType(normalized), nil
	default:
		return "", NewValidationError(fmt.Sprintf("invalid booking type: %s", raw))
	}
}

// RequiresEndDate reports whether the type books a date range
func (t BookingType) RequiresEndDate() bool {
	return t == BookingTypeHotel || t == BookingTypeCar
}

// RequiresPassengers reports whether the type carries a passenger count
func (t BookingType) RequiresPassengers() bool {
	return t == BookingTypeFlight || t == BookingTypeTour
}

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// ParseBookingStatus validates a raw status value
func ParseBookingStatus(raw string) (BookingStatus, error) {
	switch BookingStatus(raw) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return BookingStatus(raw), nil
	default:
		return "", NewValidationError(fmt.Sprintf("invalid booking status: %s", raw))
	}
}

// PaymentStatus represents the payment status of a booking
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ParsePaymentStatus validates a raw payment status value
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch PaymentStatus(raw) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded:
		return PaymentStatus(raw), nil
	default:
		return "", NewValidationError(fmt.Sprintf("invalid payment status: %s", raw))
	}
}

// InventoryAction is the side effect a state transition requires.
// Transitions return it as an intent so inventory effects can be tested
// independently of persistence.
type InventoryAction string

const (
	InventoryActionNone    InventoryAction = "none"
	InventoryActionCommit  InventoryAction = "commit"
	InventoryActionRelease InventoryAction = "release"
)

// BookingState is the (status, paymentStatus) pair the lifecycle engine
// transitions over
type BookingState struct {
	Status        BookingStatus
	PaymentStatus PaymentStatus
}

// NewBookingState returns the initial state of a freshly created booking
func NewBookingState() BookingState {
	return BookingState{
		Status:        BookingStatusPending,
		PaymentStatus: PaymentStatusPending,
	}
}

// ConfirmPayment transitions the state on successful payment. Only valid
// from exactly (pending, pending); already-paid or already-cancelled
// bookings are rejected.
func (s BookingState) ConfirmPayment() (BookingState, InventoryAction, error) {
	if s.Status != BookingStatusPending || s.PaymentStatus != PaymentStatusPending {
		return s, InventoryActionNone, NewConflictError(
			fmt.Sprintf("payment cannot be confirmed for a %s booking with payment status %s", s.Status, s.PaymentStatus))
	}

	next := BookingState{
		Status:        BookingStatusConfirmed,
		PaymentStatus: PaymentStatusPaid,
	}
	return next, InventoryActionCommit, nil
}

// Cancel transitions the state on cancellation. A paid booking is marked
// refunded; the actual refund transfer is out of scope.
func (s BookingState) Cancel() (BookingState, InventoryAction, error) {
	if s.Status == BookingStatusCancelled {
		return s, InventoryActionNone, NewConflictError("booking is already cancelled")
	}

	next := BookingState{
		Status:        BookingStatusCancelled,
		PaymentStatus: s.PaymentStatus,
	}
	if s.PaymentStatus == PaymentStatusPaid {
		next.PaymentStatus = PaymentStatusRefunded
	}
	return next, InventoryActionRelease, nil
}

// Booking represents a travel reservation against one inventory unit
type Booking struct {
	ID            string        `json:"id" db:"id"`
	UserID        string        `json:"user_id" db:"user_id"`
	BookingType   BookingType   `json:"booking_type" db:"booking_type"`
	BookedItemID  string        `json:"booked_item_id" db:"booked_item_id"`
	RoomID        *string       `json:"room_id,omitempty" db:"room_id"`
	RoomNumber    *string       `json:"room_number,omitempty" db:"room_number"`
	StartDate     string        `json:"start_date" db:"start_date"`
	EndDate       *string       `json:"end_date,omitempty" db:"end_date"`
	TotalPrice    float64       `json:"total_price" db:"total_price"`
	Passengers    int           `json:"passengers" db:"passengers"`
	Status        BookingStatus `json:"status" db:"status"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentID     *string       `json:"payment_id,omitempty" db:"payment_id"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// State returns the booking's lifecycle state pair
func (b *Booking) State() BookingState {
	return BookingState{Status: b.Status, PaymentStatus: b.PaymentStatus}
}

// ApplyState writes a transitioned state back onto the booking
func (b *Booking) ApplyState(s BookingState) {
	b.Status = s.Status
	b.PaymentStatus = s.PaymentStatus
	b.UpdatedAt = time.Now()
}

// IsOwnedBy reports whether the booking belongs to the given user
func (b *Booking) IsOwnedBy(userID string) bool {
	return b.UserID == userID
}

// CreateBookingRequest represents the request to create a booking
type CreateBookingRequest struct {
	BookingType  string  `json:"bookingType" binding:"required"`
	BookedItemID string  `json:"bookedItemId" binding:"required"`
	RoomID       *string `json:"roomId,omitempty"`
	RoomNumber   *string `json:"roomNumber,omitempty"`
	StartDate    string  `json:"startDate" binding:"required"`
	EndDate      *string `json:"endDate,omitempty"`
	TotalPrice   float64 `json:"totalPrice"`
	Passengers   *int    `json:"passengers,omitempty"`
}

// Validate checks required-field presence for the resolved booking type
// and returns the normalized type
func (r *CreateBookingRequest) Validate() (BookingType, error) {
	bookingType, err := ParseBookingType(r.BookingType)
	if err != nil {
		return "", err
	}

	if r.BookedItemID == "" {
		return "", NewValidationError("bookedItemId is required")
	}
	if r.StartDate == "" {
		return "", NewValidationError("startDate is required")
	}
	if r.TotalPrice < 0 {
		return "", NewValidationError("totalPrice cannot be negative")
	}
	if r.Passengers != nil && *r.Passengers < 1 {
		return "", NewValidationError("passengers must be at least 1")
	}
	if bookingType.RequiresPassengers() && r.Passengers == nil {
		return "", NewValidationError(fmt.Sprintf("passengers is required for %s bookings", strings.ToLower(string(bookingType))))
	}

	if bookingType.RequiresEndDate() && (r.EndDate == nil || *r.EndDate == "") {
		return "", NewValidationError(fmt.Sprintf("endDate is required for %s bookings", strings.ToLower(string(bookingType))))
	}

	if bookingType == BookingTypeHotel {
		if r.RoomID == nil || *r.RoomID == "" {
			return "", NewValidationError("roomId is required for hotel bookings")
		}
		if r.RoomNumber == nil || *r.RoomNumber == "" {
			return "", NewValidationError("roomNumber is required for hotel bookings")
		}
	}

	return bookingType, nil
}

// PassengerCount resolves the effective passenger count, defaulting to 1
func (r *CreateBookingRequest) PassengerCount() int {
	if r.Passengers == nil {
		return 1
	}
	return *r.Passengers
}

// ConfirmPaymentRequest represents the stubbed card details submitted at
// payment confirmation. Values are checked for presence only, never
// charged or stored.
type ConfirmPaymentRequest struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVC        string `json:"cvc"`
}

// Validate checks that all payment details are present
func (r *ConfirmPaymentRequest) Validate() error {
	if r.CardNumber == "" || r.ExpiryDate == "" || r.CVC == "" {
		return NewValidationError("cardNumber, expiryDate and cvc are required")
	}
	return nil
}

// UpdateBookingStatusRequest represents an administrative status override
type UpdateBookingStatusRequest struct {
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`
}

// Validate checks that provided values are legal enum members
func (r *UpdateBookingStatusRequest) Validate() error {
	if r.Status == nil && r.PaymentStatus == nil {
		return NewValidationError("status or paymentStatus is required")
	}
	if r.Status != nil {
		if _, err := ParseBookingStatus(*r.Status); err != nil {
			return err
		}
	}
	if r.PaymentStatus != nil {
		if _, err := ParsePaymentStatus(*r.PaymentStatus); err != nil {
			return err
		}
	}
	return nil
}
