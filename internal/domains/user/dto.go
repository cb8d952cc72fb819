package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// UserDTO is the public account representation.
type UserDTO struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Bio          *string   `json:"bio"`
	Location     *string   `json:"location"`
	ImageURL     string    `json:"image_url"`
	CreationDate time.Time `json:"creation_date"`
}

// SignUpRequest creates a new account.
type SignUpRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 30).Error("username must be 3-30 characters"),
			is.Alphanumeric.Error("username must be alphanumeric"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
	)
}

// SignInRequest authenticates by email and password.
type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// AuthResponse carries the bearer token and the authenticated account.
// Returned by both sign-up and sign-in.
type AuthResponse struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

// EditProfileRequest updates profile fields after re-verifying the
// account password. Absent fields are left untouched.
type EditProfileRequest struct {
	Password string  `json:"password" binding:"required"`
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Location *string `json:"location,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

func (r EditProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password,
			validation.Required.Error("current password is required"),
		),
		validation.Field(&r.Username,
			validation.When(r.Username != nil,
				validation.Length(3, 30).Error("username must be 3-30 characters"),
				is.Alphanumeric.Error("username must be alphanumeric"),
			),
		),
		validation.Field(&r.Email,
			validation.When(r.Email != nil, is.Email.Error("invalid email format")),
		),
		validation.Field(&r.Bio,
			validation.When(r.Bio != nil, validation.Length(0, 500).Error("bio must be at most 500 characters")),
		),
		validation.Field(&r.Location,
			validation.When(r.Location != nil, validation.Length(0, 100).Error("location must be at most 100 characters")),
		),
		validation.Field(&r.ImageURL,
			validation.When(r.ImageURL != nil, validation.Length(0, 500)),
		),
	)
}

// ProfilePatch is the set of profile fields a repository update may
// change; nil fields keep their stored value.
type ProfilePatch struct {
	Username *string
	Email    *string
	Bio      *string
	Location *string
	ImageURL *string
}
