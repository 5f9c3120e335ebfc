package shortener

import "time"

// Code is the short, URL-safe identifier a link resolves under.
type Code string

// LinkID is the opaque identifier the store assigns to a link.
type LinkID string

// OwnerID identifies the principal that created a link.
type OwnerID string

// ShortLink maps a code to a destination URL on behalf of an owner.
// Every field is fixed once the link has been persisted.
type ShortLink struct {
	ID             LinkID
	Code           Code
	DestinationURL string
	OwnerID        OwnerID
	CreatedAt      time.Time
}

// Clone returns a copy that shares no state with the receiver.
func (l *ShortLink) Clone() *ShortLink {
	c := *l

	return &c
}
