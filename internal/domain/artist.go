package domain

import "time"

// User is an account in the marketplace. Authentication itself is delegated
// to the hosted auth provider; this record carries the profile fields the
// server owns.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Artist is a tattoo artist profile.
type Artist struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	StudioName string         `json:"studioName"`
	Bio        string         `json:"bio"`
	Address    string         `json:"address"`
	Latitude   *float64       `json:"latitude,omitempty"`
	Longitude  *float64       `json:"longitude,omitempty"`
	AvatarURL  string         `json:"avatarUrl,omitempty"`
	Styles     []ArtistStyle  `json:"styles"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// ArtistStyle links an artist to a style with an expertise level (1-5).
type ArtistStyle struct {
	Style          StyleKey `json:"style"`
	ExpertiseLevel int      `json:"expertiseLevel"`
}

// Review is a client review of an artist.
type Review struct {
	ID        string    `json:"id"`
	ArtistID  string    `json:"artistId"`
	AuthorID  string    `json:"authorId"`
	Rating    int       `json:"rating"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}
