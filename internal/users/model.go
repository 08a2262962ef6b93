package users

import "time"

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User is an account that owns resume documents.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"name"`
	PasswordHash string    `json:"-"`
	PictureURL   string    `json:"pictureUrl,omitempty"`
	Provider     string    `json:"provider"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
