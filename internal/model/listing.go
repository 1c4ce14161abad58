package model

import "time"

// Listing type values stored in listings.type. Domestic and abroad
// are the only two catalogues the site exposes.
const (
    ListingDomestic = "domestic"
    ListingAbroad   = "abroad"
)

// Listing describes a bookable rental unit as stored in the
// `listings` table. A listing always belongs to the seller who
// created it; admins may edit or remove any listing.
//
// Fields:
//  ID            – primary key identifier.
//  Title         – short display title.
//  Location      – human readable location string.
//  PricePerNight – nightly rate in the site currency (whole units).
//  Description   – long-form description shown on the detail page.
//  Thumbnail     – relative path of the cover image.
//  Type          – catalogue the listing belongs to (domestic | abroad).
//  OwnerID       – seller who owns the listing.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Listing struct {
    ID            uint64    // listings.id
    Title         string    // listings.title
    Location      string    // listings.location
    PricePerNight int64     // listings.price_per_night
    Description   string    // listings.description
    Thumbnail     string    // listings.thumbnail
    Type          string    // listings.type
    OwnerID       uint64    // listings.owner_id (references users.id)
    CreatedAt     time.Time // listings.created_at
    UpdatedAt     time.Time // listings.updated_at
}

// ValidListingType reports whether t is one of the two known
// catalogue values.
func ValidListingType(t string) bool {
    return t == ListingDomestic || t == ListingAbroad
}
