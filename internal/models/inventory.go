package models

import "time"

// Flight represents a flight with a seat counter. Seats are held at
// booking time, before payment.
type Flight struct {
	ID             string    `json:"id" db:"id"`
	Airline        string    `json:"airline" db:"airline"`
	FlightNumber   string    `json:"flight_number" db:"flight_number"`
	Origin         string    `json:"origin" db:"origin"`
	Destination    string    `json:"destination" db:"destination"`
	DepartureTime  time.Time `json:"departure_time" db:"departure_time"`
	Price          float64   `json:"price" db:"price"`
	AvailableSeats int       `json:"available_seats" db:"available_seats"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Hotel represents a hotel; availability lives on its rooms
type Hotel struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	City      string    `json:"city" db:"city"`
	Address   string    `json:"address" db:"address"`
	Rating    float64   `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RoomNumber is one physical room of a room category, carrying its own
// unavailable-date set. Dates are YYYY-MM-DD strings.
type RoomNumber struct {
	ID               string   `json:"id" db:"id"`
	RoomID           string   `json:"room_id" db:"room_id"`
	Number           string   `json:"number" db:"number"`
	UnavailableDates []string `json:"unavailable_dates"`
}

// Room is a bookable room category within a hotel
type Room struct {
	ID          string       `json:"id" db:"id"`
	HotelID     string       `json:"hotel_id" db:"hotel_id"`
	Title       string       `json:"title" db:"title"`
	Price       float64      `json:"price" db:"price"`
	MaxPeople   int          `json:"max_people" db:"max_people"`
	RoomNumbers []RoomNumber `json:"room_numbers"`
}

// FindRoomNumber returns the entry matching the given room number
func (r *Room) FindRoomNumber(number string) *RoomNumber {
	for i := range r.RoomNumbers {
		if r.RoomNumbers[i].Number == number {
			return &r.RoomNumbers[i]
		}
	}
	return nil
}

// Car represents a rental car with a flat unavailable-date set
type Car struct {
	ID               string    `json:"id" db:"id"`
	Brand            string    `json:"brand" db:"brand"`
	Model            string    `json:"model" db:"model"`
	City             string    `json:"city" db:"city"`
	PricePerDay      float64   `json:"price_per_day" db:"price_per_day"`
	UnavailableDates []string  `json:"unavailable_dates"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Tour represents a tour offered on a fixed set of dates. Booking a tour
// consumes a date by reference only; the offering is never mutated.
type Tour struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	City           string    `json:"city" db:"city"`
	Price          float64   `json:"price" db:"price"`
	DurationDays   int       `json:"duration_days" db:"duration_days"`
	AvailableDates []string  `json:"available_dates"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// BookedItem is the expanded inventory item a booking points to.
// Exactly one field is set, selected by the booking's type.
type BookedItem struct {
	Flight *Flight `json:"flight,omitempty"`
	Hotel  *Hotel  `json:"hotel,omitempty"`
	Tour   *Tour   `json:"tour,omitempty"`
	Car    *Car    `json:"car,omitempty"`
}

// BookingDetails is a booking with its referenced inventory item expanded
type BookingDetails struct {
	Booking
	BookedItem *BookedItem `json:"booked_item,omitempty"`
}
