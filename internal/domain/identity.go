package domain

import "time"

// Identity is a registered user.
//
// ID is assigned once at registration and never changes.
// Username is unique and compared case-sensitively.
type Identity struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public returns the view of the identity that can be sent to clients.
func (i *Identity) Public() PublicIdentity {
	return PublicIdentity{ID: i.ID, Username: i.Username}
}

// PublicIdentity is the client-facing projection of an Identity.
type PublicIdentity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Claim is the identity carried inside a validated session token.
type Claim struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
