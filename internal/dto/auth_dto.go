package dto

import "github.com/noah-isme/teachback-api/internal/models"

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=64"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"required,max=128"`
	LastName        string `json:"last_name" validate:"required,max=128"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	TotalXP   int    `json:"total_xp"`
	Level     int    `json:"level"`
	Streak    int    `json:"streak"`
}

// AuthResponse carries a signed token and the authenticated user.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse converts a User model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:        model.ID,
		Username:  model.Username,
		Email:     model.Email,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		TotalXP:   model.TotalXP,
		Level:     model.Level,
		Streak:    model.Streak,
	}
}
