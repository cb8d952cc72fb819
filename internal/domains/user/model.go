package user

import (
	"time"

	"github.com/google/uuid"
)

// DefaultImageURL is assigned to accounts that never uploaded a picture.
const DefaultImageURL = "/static/images/default-pic.png"

// User is the account entity, mapped 1:1 to the users table.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	HashedPassword string    `db:"hashed_password" json:"-"` // never expose in JSON
	Bio            *string   `db:"bio" json:"bio,omitempty"`
	Location       *string   `db:"location" json:"location,omitempty"`
	ImageURL       string    `db:"image_url" json:"image_url"`
	CreationDate   time.Time `db:"creation_date" json:"creation_date"`
}

// ToDTO strips credentials from the entity.
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Bio:          u.Bio,
		Location:     u.Location,
		ImageURL:     u.ImageURL,
		CreationDate: u.CreationDate,
	}
}
