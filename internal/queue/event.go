// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationPaidEvent is published when a reservation is successfully paid.
// It contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type ReservationPaidEvent struct {
    ReservationID   uint64 `json:"reservation_id"`
    UserID          uint64 `json:"user_id"`
    UserName        string `json:"user_name"`
    ListingID       uint64 `json:"listing_id"`
    ListingTitle    string `json:"listing_title"`
    ListingLocation string `json:"listing_location"`
    CheckIn         string `json:"check_in"`
    CheckOut        string `json:"check_out"`
    Guests          int    `json:"guests"`
    Nights          int    `json:"nights"`
    TotalPrice      int64  `json:"total_price"`
    PaidAt          string `json:"paid_at"`
}
