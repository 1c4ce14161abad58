package model

import "time"

// Reservation status values stored in reservations.status. A
// reservation is created as paid (payment is simulated) and moves to
// canceled when the owning user or an admin cancels it.
const (
    ReservationPaid     = "paid"
    ReservationCanceled = "canceled"
)

// Reservation records a user's confirmed booking of a listing for a
// date range. The check-out date must be strictly after the check-in
// date; the pricing package enforces this before a row is ever
// written.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – user who made the reservation.
//  ListingID  – listing being booked.
//  UserName   – display name captured at booking time.
//  CheckIn    – first night of the stay (date only).
//  CheckOut   – departure date (date only, exclusive).
//  Guests     – number of guests staying.
//  TotalPrice – server-computed total including service fee and taxes.
//  Status     – paid or canceled.
//  CreatedAt  – creation timestamp.
type Reservation struct {
    ID         uint64    // reservations.id
    UserID     uint64    // reservations.user_id
    ListingID  uint64    // reservations.listing_id
    UserName   string    // reservations.user_name
    CheckIn    time.Time // reservations.check_in
    CheckOut   time.Time // reservations.check_out
    Guests     int       // reservations.guests
    TotalPrice int64     // reservations.total_price
    Status     string    // reservations.status
    CreatedAt  time.Time // reservations.created_at
}
