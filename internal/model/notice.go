package model

import "time"

// Notice is an admin-authored announcement. Only visible notices are
// served to non-admin readers.
type Notice struct {
    ID        uint64    // notices.id
    Title     string    // notices.title
    Content   string    // notices.content
    Visible   bool      // notices.visible
    CreatedAt time.Time // notices.created_at
    UpdatedAt time.Time // notices.updated_at
}
