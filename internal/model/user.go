package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags so
// that the password hash can never leak into a response body.
//
// Fields:
//  ID           – primary key identifier of the user.
//  LoginID      – unique login identifier chosen at signup.
//  PasswordHash – bcrypt hashed password.
//  Name         – display name shown on reservations and in the header.
//  Email        – contact email address.
//  Role         – access tier (user, seller or admin).
//  ProfileImage – relative path of the uploaded avatar, empty when unset.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    LoginID      string    // users.login_id
    PasswordHash string    // users.password_hash
    Name         string    // users.name
    Email        string    // users.email
    Role         Role      // users.role
    ProfileImage string    // users.profile_image (empty when none uploaded)
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}
