package serializers

import (
	"time"

	"movie-catalog/internal/models"
)

// RegisterInput is the registration payload. Password is write-only.
type RegisterInput struct {
	Username    string `json:"username" validate:"required,max=150"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	FirstName   string `json:"first_name" validate:"required,max=150"`
	LastName    string `json:"last_name" validate:"required,max=150"`
	Age         *int   `json:"age" validate:"required,gte=0,lte=150"`
	PhoneNumber string `json:"phone_number" validate:"required,max=32"`
}

// RegisteredUser echoes the stored registration fields without the password.
type RegisteredUser struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Age         int    `json:"age"`
	PhoneNumber string `json:"phone_number"`
}

func NewRegisteredUser(u *models.UserProfile) RegisteredUser {
	return RegisteredUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Age:         u.Age,
		PhoneNumber: u.PhoneNumber,
	}
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput carries a refresh token for logout and token refresh.
type RefreshInput struct {
	Refresh string `json:"refresh" validate:"required"`
}

type UserSummary struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginOutput struct {
	User    UserSummary `json:"user"`
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
}

type AccessOutput struct {
	Access string `json:"access"`
}

// UserProfileOutput is the full public profile. There is no password field.
type UserProfileOutput struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Age         int       `json:"age"`
	PhoneNumber string    `json:"phone_number"`
	Avatar      string    `json:"avatar"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewUserProfileOutput(u *models.UserProfile) UserProfileOutput {
	return UserProfileOutput{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Age:         u.Age,
		PhoneNumber: u.PhoneNumber,
		Avatar:      u.Avatar,
		CreatedAt:   u.CreatedAt,
	}
}

func NewUserProfileList(users []models.UserProfile) []UserProfileOutput {
	out := make([]UserProfileOutput, len(users))
	for i := range users {
		out[i] = NewUserProfileOutput(&users[i])
	}
	return out
}

// UserSimple is the author shape embedded in reviews.
type UserSimple struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

func NewUserSimple(u *models.UserProfile) UserSimple {
	return UserSimple{FirstName: u.FirstName, LastName: u.LastName, Avatar: u.Avatar}
}

// ProfileUpdateInput holds the editable profile fields. PATCH requests start
// from the current values.
type ProfileUpdateInput struct {
	FirstName   string `json:"first_name" validate:"required,max=150"`
	LastName    string `json:"last_name" validate:"required,max=150"`
	Age         int    `json:"age" validate:"gte=0,lte=150"`
	PhoneNumber string `json:"phone_number" validate:"required,max=32"`
	Avatar      string `json:"avatar" validate:"omitempty,url"`
}

func NewProfileUpdateInput(u *models.UserProfile) ProfileUpdateInput {
	return ProfileUpdateInput{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Age:         u.Age,
		PhoneNumber: u.PhoneNumber,
		Avatar:      u.Avatar,
	}
}

func (in ProfileUpdateInput) Apply(u *models.UserProfile) {
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Age = in.Age
	u.PhoneNumber = in.PhoneNumber
	u.Avatar = in.Avatar
}
