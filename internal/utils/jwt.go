package utils // package utils provides helper functions for token creation and hashing

import (
    "crypto/rand"  // secure random number generation for upload names
    "encoding/hex" // hex encoding for random byte strings
    "time"         // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Access tokens are the only credential the
// site issues: there is no refresh flow, so an expired token simply
// forces the user to log in again.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user's numeric ID, login ID, display name and role,
// and a TTL in minutes.  The JWT carries the identity the authorization
// gate needs so protected handlers never have to hit the users table just
// to know who is calling: subject (sub), login_id, name, role, expiration
// (exp) and issued at (iat).
func NewAccessToken(secret string, userID uint64, loginID, name, role string, ttlMin int) (AccessToken, error) {
    // Calculate the expiration time by adding the TTL to the current UTC time.
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":      userID,
        "login_id": loginID,
        "name":     name,
        "role":     role,
        "exp":      exp.Unix(),
        "iat":      time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    // Sign the token with the provided secret and obtain the string form.  If
    // signing fails, return the error and a zero AccessToken.
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// RandomHex returns a hex‑encoded string generated from n bytes of
// cryptographically secure random data.  It is used to produce unique
// filenames for profile image uploads.
func RandomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
