// Package pricing computes the cost of a stay. It is a pure package
// with no I/O so the reservation handler and its tests can share the
// exact same arithmetic. All amounts are whole currency units.
package pricing

import (
    "errors"
    "math"
    "time"
)

// ServiceFeeRate and TaxRate are applied to the subtotal and rounded
// to the nearest whole unit, matching what the payment screen shows.
const (
    ServiceFeeRate = 0.10
    TaxRate        = 0.05
)

// ErrInvalidStay is returned when the check-out date is not strictly
// after the check-in date or the nightly rate is negative. A booking
// in this state must never reach the database.
var ErrInvalidStay = errors.New("invalid stay parameters")

// Quote is the full price breakdown for a stay.
type Quote struct {
    Nights     int   `json:"nights"`
    Subtotal   int64 `json:"subtotal"`
    ServiceFee int64 `json:"service_fee"`
    Taxes      int64 `json:"taxes"`
    Total      int64 `json:"total"`
}

// Nights returns the number of billable nights between checkIn and
// checkOut: the day difference rounded up, with a minimum of one
// night. It returns 0 when checkOut is not after checkIn.
func Nights(checkIn, checkOut time.Time) int {
    d := checkOut.Sub(checkIn)
    if d <= 0 {
        return 0
    }
    n := int(math.Ceil(d.Hours() / 24))
    if n < 1 {
        n = 1
    }
    return n
}

// Compute derives the full quote for a stay. The nightly rate must be
// non-negative and checkOut must be strictly after checkIn; otherwise
// ErrInvalidStay is returned and no quote is produced.
func Compute(nightly int64, checkIn, checkOut time.Time) (Quote, error) {
    if nightly < 0 {
        return Quote{}, ErrInvalidStay
    }
    n := Nights(checkIn, checkOut)
    if n == 0 {
        return Quote{}, ErrInvalidStay
    }
    subtotal := nightly * int64(n)
    fee := roundPct(subtotal, ServiceFeeRate)
    tax := roundPct(subtotal, TaxRate)
    return Quote{
        Nights:     n,
        Subtotal:   subtotal,
        ServiceFee: fee,
        Taxes:      tax,
        Total:      subtotal + fee + tax,
    }, nil
}

// roundPct rounds amount*rate to the nearest whole unit.
func roundPct(amount int64, rate float64) int64 {
    return int64(math.Round(float64(amount) * rate))
}
