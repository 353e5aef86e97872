package services

import (
	"context"
	"fmt"
	"time"

	"github.com/travelbook/booking-backend/internal/cache"
	"github.com/travelbook/booking-backend/internal/models"
)

// FlightInventory is the flight repository surface the engine consumes
type FlightInventory interface {
	GetByID(flightID string) (*models.Flight, error)
	ReserveSeats(flightID string, seats int) error
	ReleaseSeats(flightID string, seats int) error
}

// HotelInventory is the hotel repository surface the engine consumes
type HotelInventory interface {
	GetByID(hotelID string) (*models.Hotel, error)
	GetRoom(roomID string) (*models.Room, error)
	GetRoomNumberDates(roomID, number string) ([]string, error)
	SetRoomNumberDates(roomID, number string, dates []string) error
}

// CarInventory is the car repository surface the engine consumes
type CarInventory interface {
	GetByID(carID string) (*models.Car, error)
	SetUnavailableDates(carID string, dates []string) error
}

// TourInventory is the tour repository surface the engine consumes
type TourInventory interface {
	GetByID(tourID string) (*models.Tour, error)
}

// InventoryStrategy is the per-type reservation policy. The policies are
// deliberately asymmetric: flights take their seat hold at creation time
// and have nothing left to commit at confirmation, while hotel rooms and
// cars validate at creation and block their date range only once payment
// is confirmed. Tours never mutate inventory at all.
type InventoryStrategy interface {
	// ReserveAtCreation validates availability for a booking about to be
	// persisted and applies any at-creation inventory mutation.
	ReserveAtCreation(ctx context.Context, booking *models.Booking) error

	// CommitAtConfirmation applies the deferred inventory mutation after
	// payment is confirmed.
	CommitAtConfirmation(ctx context.Context, booking *models.Booking) error

	// ReleaseOnCancellation reverses the booking's inventory effect using
	// the booking's stored dates and passenger count.
	ReleaseOnCancellation(ctx context.Context, booking *models.Booking) error

	// Expand loads the referenced inventory item for read responses
	Expand(booking *models.Booking) (*models.BookedItem, error)
}

// rangeHolder is the optional short-lived hold the deferred-commit types
// take on their date range between creation and payment confirmation.
// A nil holder preserves the original unguarded window.
type rangeHolder struct {
	holds *cache.RedisCache
	ttl   time.Duration
}

func (h rangeHolder) acquire(ctx context.Context, unitKey, start, end string) error {
	if h.holds == nil {
		return nil
	}

	dates, err := DatesInRange(start, end)
	if err != nil {
		return err
	}

	ok, err := h.holds.AcquireRangeHold(ctx, unitKey, dates, h.ttl)
	if err != nil {
		return fmt.Errorf("failed to acquire range hold: %w", err)
	}
	if !ok {
		return models.NewConflictError("the selected dates are currently being booked by another request")
	}
	return nil
}

func (h rangeHolder) release(ctx context.Context, unitKey, start, end string) {
	if h.holds == nil {
		return
	}

	dates, err := DatesInRange(start, end)
	if err != nil {
		return
	}
	h.holds.ReleaseRangeHold(ctx, unitKey, dates)
}

// flightStrategy reserves seats atomically at creation time
type flightStrategy struct {
	flights FlightInventory
}

func (s *flightStrategy) ReserveAtCreation(ctx context.Context, booking *models.Booking) error {
	flight, err := s.flights.GetByID(booking.BookedItemID)
	if err != nil {
		return err
	}

	if flight.AvailableSeats < booking.Passengers {
		return models.NewConflictError("not enough seats available")
	}

	// The read above is advisory; the conditional update is the guard
	return s.flights.ReserveSeats(booking.BookedItemID, booking.Passengers)
}

func (s *flightStrategy) CommitAtConfirmation(ctx context.Context, booking *models.Booking) error {
	// Seats were already taken at creation
	return nil
}

func (s *flightStrategy) ReleaseOnCancellation(ctx context.Context, booking *models.Booking) error {
	return s.flights.ReleaseSeats(booking.BookedItemID, booking.Passengers)
}

func (s *flightStrategy) Expand(booking *models.Booking) (*models.BookedItem, error) {
	flight, err := s.flights.GetByID(booking.BookedItemID)
	if err != nil {
		return nil, err
	}
	return &models.BookedItem{Flight: flight}, nil
}

// hotelStrategy validates the room-number range at creation and blocks it
// at payment confirmation
type hotelStrategy struct {
	hotels HotelInventory
	holder rangeHolder
}

func (s *hotelStrategy) ReserveAtCreation(ctx context.Context, booking *models.Booking) error {
	if _, err := s.hotels.GetByID(booking.BookedItemID); err != nil {
		return err
	}

	room, err := s.hotels.GetRoom(*booking.RoomID)
	if err != nil {
		return err
	}

	entry := room.FindRoomNumber(*booking.RoomNumber)
	if entry == nil {
		return models.NewConflictError("room is not available for the selected dates")
	}

	available, err := IsRangeAvailable(entry.UnavailableDates, booking.StartDate, *booking.EndDate)
	if err != nil {
		return err
	}
	if !available {
		return models.NewConflictError("room is not available for the selected dates")
	}

	return s.holder.acquire(ctx, s.unitKey(booking), booking.StartDate, *booking.EndDate)
}

func (s *hotelStrategy) CommitAtConfirmation(ctx context.Context, booking *models.Booking) error {
	dates, err := s.hotels.GetRoomNumberDates(*booking.RoomID, *booking.RoomNumber)
	if err != nil {
		return err
	}

	blocked, err := BlockDates(dates, booking.StartDate, *booking.EndDate)
	if err != nil {
		return err
	}

	if err := s.hotels.SetRoomNumberDates(*booking.RoomID, *booking.RoomNumber, blocked); err != nil {
		return err
	}

	s.holder.release(ctx, s.unitKey(booking), booking.StartDate, *booking.EndDate)
	return nil
}

func (s *hotelStrategy) ReleaseOnCancellation(ctx context.Context, booking *models.Booking) error {
	dates, err := s.hotels.GetRoomNumberDates(*booking.RoomID, *booking.RoomNumber)
	if err != nil {
		return err
	}

	unblocked, err := UnblockDates(dates, booking.StartDate, *booking.EndDate)
	if err != nil {
		return err
	}

	if err := s.hotels.SetRoomNumberDates(*booking.RoomID, *booking.RoomNumber, unblocked); err != nil {
		return err
	}

	s.holder.release(ctx, s.unitKey(booking), booking.StartDate, *booking.EndDate)
	return nil
}

func (s *hotelStrategy) Expand(booking *models.Booking) (*models.BookedItem, error) {
	hotel, err := s.hotels.GetByID(booking.BookedItemID)
	if err != nil {
		return nil, err
	}
	return &models.BookedItem{Hotel: hotel}, nil
}

func (s *hotelStrategy) unitKey(booking *models.Booking) string {
	return fmt.Sprintf("room:%s:%s", *booking.RoomID, *booking.RoomNumber)
}

// carStrategy validates the car's range at creation and blocks it at
// payment confirmation
type carStrategy struct {
	cars   CarInventory
	holder rangeHolder
}

func (s *carStrategy) ReserveAtCreation(ctx context.Context, booking *models.Booking) error {
	car, err := s.cars.GetByID(booking.BookedItemID)
	if err != nil {
		return err
	}

	available, err := IsRangeAvailable(car.UnavailableDates, booking.StartDate, *booking.EndDate)
	if err != nil {
		return err
	}
	if !available {
		return models.NewConflictError("car is not available for the selected dates")
	}

	return s.holder.acquire(ctx, s.unitKey(booking), booking.StartDate, *booking.EndDate)
}

func (s *carStrategy) CommitAtConfirmation(ctx context.Context, booking *models.Booking) error {
	car, err := s.cars.GetByID(booking.BookedItemID)
	if err != nil {
		return err
	}

	blocked, err := BlockDates(car.UnavailableDates, booking.StartDate, *booking.EndDate)
	if err != nil {
		return err
	}

	if err := s.cars.SetUnavailableDates(booking.BookedItemID, blocked); err != nil {
		return err
	}

	s.holder.release(ctx, s.unitKey(booking), booking.StartDate, *booking.EndDate)
	return nil
}

func (s *carStrategy) ReleaseOnCancellation(ctx context.Context, booking *models.Booking) error {
	car, err := s.cars.GetByID(booking.BookedItemID)
	if err != nil {
		return err
	}

	unblocked, err := UnblockDates(car.UnavailableDates, booking.StartDate, *booking.EndDate)
	if err != nil {
		return err
	}

	if err := s.cars.SetUnavailableDates(booking.BookedItemID, unblocked); err != nil {
		return err
	}

	s.holder.release(ctx, s.unitKey(booking), booking.StartDate, *booking.EndDate)
	return nil
}

func (s *carStrategy) Expand(booking *models.Booking) (*models.BookedItem, error) {
	car, err := s.cars.GetByID(booking.BookedItemID)
	if err != nil {
		return nil, err
	}
	return &models.BookedItem{Car: car}, nil
}

func (s *carStrategy) unitKey(booking *models.Booking) string {
	return "car:" + booking.BookedItemID
}

// tourStrategy checks date membership at creation and never mutates the
// offering. Per-date tour capacity is untracked.
type tourStrategy struct {
	tours TourInventory
}

func (s *tourStrategy) ReserveAtCreation(ctx context.Context, booking *models.Booking) error {
	tour, err := s.tours.GetByID(booking.BookedItemID)
	if err != nil {
		return err
	}

	if len(tour.AvailableDates) == 0 || !ContainsDay(tour.AvailableDates, booking.StartDate) {
		return models.NewConflictError("tour is not available on the selected date")
	}

	return nil
}

func (s *tourStrategy) CommitAtConfirmation(ctx context.Context, booking *models.Booking) error {
	return nil
}

func (s *tourStrategy) ReleaseOnCancellation(ctx context.Context, booking *models.Booking) error {
	return nil
}

func (s *tourStrategy) Expand(booking *models.Booking) (*models.BookedItem, error) {
	tour, err := s.tours.GetByID(booking.BookedItemID)
	if err != nil {
		return nil, err
	}
	return &models.BookedItem{Tour: tour}, nil
}
