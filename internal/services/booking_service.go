package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/travelbook/booking-backend/internal/cache"
	"github.com/travelbook/booking-backend/internal/events"
	"github.com/travelbook/booking-backend/internal/models"
)

// BookingStore is the booking repository surface the engine consumes
type BookingStore interface {
	Create(booking *models.Booking) error
	GetByID(bookingID string) (*models.Booking, error)
	GetByUserID(userID string) ([]models.Booking, error)
	GetAll() ([]models.Booking, error)
	UpdateState(booking *models.Booking) error
}

// EventPublisher publishes booking lifecycle events. May be nil.
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// BookingService orchestrates the booking lifecycle: creation with a
// type-specific availability check, payment confirmation with the
// deferred inventory commit, and cancellation with compensating release.
type BookingService struct {
	bookings   BookingStore
	strategies map[models.BookingType]InventoryStrategy
	producer   EventPublisher
	logger     *logrus.Logger
}

// NewBookingService creates a new BookingService. The redis cache and
// event producer are optional; passing nil disables range holds and
// event publishing respectively.
func NewBookingService(
	bookings BookingStore,
	flights FlightInventory,
	hotels HotelInventory,
	cars CarInventory,
	tours TourInventory,
	holds *cache.RedisCache,
	holdTTL time.Duration,
	producer EventPublisher,
	logger *logrus.Logger,
) *BookingService {
	holder := rangeHolder{holds: holds, ttl: holdTTL}

	return &BookingService{
		bookings: bookings,
		strategies: map[models.BookingType]InventoryStrategy{
			models.BookingTypeFlight: &flightStrategy{flights: flights},
			models.BookingTypeHotel:  &hotelStrategy{hotels: hotels, holder: holder},
			models.BookingTypeCar:    &carStrategy{cars: cars, holder: holder},
			models.BookingTypeTour:   &tourStrategy{tours: tours},
		},
		producer: producer,
		logger:   logger,
	}
}

// Create validates a booking request against inventory and persists the
// booking as (pending, pending). Flights take their seat hold here;
// hotel rooms, cars and tours leave inventory untouched until payment.
func (s *BookingService) Create(ctx context.Context, userID string, req *models.CreateBookingRequest) (*models.Booking, error) {
	bookingType, err := req.Validate()
	if err != nil {
		return nil, err
	}

	state := models.NewBookingState()
	booking := &models.Booking{
		ID:            uuid.New().String(),
		UserID:        userID,
		BookingType:   bookingType,
		BookedItemID:  req.BookedItemID,
		RoomID:        req.RoomID,
		RoomNumber:    req.RoomNumber,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TotalPrice:    req.TotalPrice,
		Passengers:    req.PassengerCount(),
		Status:        state.Status,
		PaymentStatus: state.PaymentStatus,
	}

	strategy := s.strategies[bookingType]
	if err := strategy.ReserveAtCreation(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.bookings.Create(booking); err != nil {
		// A flight's seats are already held; give them back before failing
		if bookingType == models.BookingTypeFlight {
			if releaseErr := strategy.ReleaseOnCancellation(ctx, booking); releaseErr != nil {
				s.logger.WithError(releaseErr).WithField("flight_id", booking.BookedItemID).
					Error("Failed to release seats after booking persist failure")
			}
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":   booking.ID,
		"user_id":      userID,
		"booking_type": bookingType,
	}).Info("Booking created")

	s.publish(ctx, events.EventBookingCreated, booking)
	return booking, nil
}

// GetByID returns a booking with its inventory item expanded. Only the
// owner or an admin may read it.
func (s *BookingService) GetByID(ctx context.Context, requesterID string, isAdmin bool, bookingID string) (*models.BookingDetails, error) {
	booking, err := s.authorizedBooking(requesterID, isAdmin, bookingID)
	if err != nil {
		return nil, err
	}

	return s.expand(booking), nil
}

// ListByUser returns all bookings belonging to a user, items expanded
func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]models.BookingDetails, error) {
	bookings, err := s.bookings.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	return s.expandAll(bookings), nil
}

// ListAll returns every booking in the system (admin only, enforced at
// the transport layer), items expanded
func (s *BookingService) ListAll(ctx context.Context) ([]models.BookingDetails, error) {
	bookings, err := s.bookings.GetAll()
	if err != nil {
		return nil, err
	}

	return s.expandAll(bookings), nil
}

// ConfirmPayment moves a booking from (pending, pending) to
// (confirmed, paid) and applies the deferred inventory mutation.
// Payment details are validated for presence only; no charge is made.
func (s *BookingService) ConfirmPayment(ctx context.Context, requesterID string, isAdmin bool, bookingID string, details *models.ConfirmPaymentRequest) (*models.Booking, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}

	booking, err := s.authorizedBooking(requesterID, isAdmin, bookingID)
	if err != nil {
		return nil, err
	}

	next, action, err := booking.State().ConfirmPayment()
	if err != nil {
		return nil, err
	}

	paymentID := newPaymentID()
	booking.PaymentID = &paymentID
	booking.ApplyState(next)

	if err := s.bookings.UpdateState(booking); err != nil {
		return nil, err
	}

	if action == models.InventoryActionCommit {
		s.commitInventory(ctx, booking)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"payment_id": paymentID,
	}).Info("Booking payment confirmed")

	s.publish(ctx, events.EventBookingConfirmed, booking)
	return booking, nil
}

// Cancel cancels a booking and reverses its inventory effect using the
// stored booking dates. A paid booking is marked refunded.
func (s *BookingService) Cancel(ctx context.Context, requesterID string, isAdmin bool, bookingID string) (*models.Booking, error) {
	booking, err := s.authorizedBooking(requesterID, isAdmin, bookingID)
	if err != nil {
		return nil, err
	}

	wasConfirmed := booking.Status == models.BookingStatusConfirmed ||
		booking.Status == models.BookingStatusCompleted
	wasFlight := booking.BookingType == models.BookingTypeFlight

	next, action, err := booking.State().Cancel()
	if err != nil {
		return nil, err
	}

	booking.ApplyState(next)

	if err := s.bookings.UpdateState(booking); err != nil {
		return nil, err
	}

	// Flights hold inventory from creation, so every cancellation
	// releases seats; the deferred types only blocked dates once the
	// booking was confirmed.
	if action == models.InventoryActionRelease && (wasFlight || wasConfirmed) {
		strategy := s.strategies[booking.BookingType]
		if err := strategy.ReleaseOnCancellation(ctx, booking); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"booking_id":   booking.ID,
				"booking_type": booking.BookingType,
			}).Error("Failed to release inventory on cancellation")
			return nil, err
		}
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":     booking.ID,
		"payment_status": booking.PaymentStatus,
	}).Info("Booking cancelled")

	s.publish(ctx, events.EventBookingCancelled, booking)
	return booking, nil
}

// UpdateStatus is a direct administrative override of status and payment
// status. It is not part of the normal lifecycle and has no inventory
// side effects.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateBookingStatusRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		booking.Status = models.BookingStatus(*req.Status)
	}
	if req.PaymentStatus != nil {
		booking.PaymentStatus = models.PaymentStatus(*req.PaymentStatus)
	}

	if err := s.bookings.UpdateState(booking); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":     booking.ID,
		"status":         booking.Status,
		"payment_status": booking.PaymentStatus,
	}).Info("Booking status overridden")

	return booking, nil
}

// authorizedBooking loads a booking and enforces owner-or-admin access
func (s *BookingService) authorizedBooking(requesterID string, isAdmin bool, bookingID string) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && !booking.IsOwnedBy(requesterID) {
		return nil, models.NewForbiddenError("you do not have access to this booking")
	}

	return booking, nil
}

// commitInventory applies the deferred date block after the booking state
// is already persisted. The commit is retried once; a booking left paid
// without its block is logged for reconciliation rather than rolled back.
func (s *BookingService) commitInventory(ctx context.Context, booking *models.Booking) {
	strategy := s.strategies[booking.BookingType]

	err := strategy.CommitAtConfirmation(ctx, booking)
	if err == nil {
		return
	}

	s.logger.WithError(err).WithField("booking_id", booking.ID).
		Warn("Inventory commit failed, retrying")

	if err := strategy.CommitAtConfirmation(ctx, booking); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"booking_id":   booking.ID,
			"booking_type": booking.BookingType,
		}).Error("Inventory commit failed after retry, booking needs reconciliation")
	}
}

func (s *BookingService) expand(booking *models.Booking) *models.BookingDetails {
	details := &models.BookingDetails{Booking: *booking}

	item, err := s.strategies[booking.BookingType].Expand(booking)
	if err != nil {
		// The booking itself is still returned when the referenced item
		// has since disappeared
		s.logger.WithError(err).WithField("booking_id", booking.ID).
			Warn("Failed to expand booked item")
		return details
	}

	details.BookedItem = item
	return details
}

func (s *BookingService) expandAll(bookings []models.Booking) []models.BookingDetails {
	details := make([]models.BookingDetails, 0, len(bookings))
	for i := range bookings {
		details = append(details, *s.expand(&bookings[i]))
	}
	return details
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *models.Booking) {
	if s.producer == nil {
		return
	}

	event := events.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		BookingType:   string(booking.BookingType),
		Status:        string(booking.Status),
		PaymentStatus: string(booking.PaymentStatus),
		OccurredAt:    time.Now(),
	}

	if err := s.producer.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"event_type": eventType,
		}).Warn("Failed to publish booking event")
	}
}

// newPaymentID generates an opaque payment reference for the stubbed
// payment flow
func newPaymentID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("PAY_%d_%s", time.Now().Unix(), suffix)
}
