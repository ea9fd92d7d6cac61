package auth

import (
	"time"

	"github.com/tunislock/tunislock-api/internal/user"
)

type RegisterRequest struct {
	Name              string `json:"name" binding:"required"`
	Username          string `json:"username" binding:"required,min=3,max=30"`
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=8,max=72"`
	Country           string `json:"country,omitempty"`
	City              string `json:"city,omitempty"`
	Bio               string `json:"bio,omitempty"`
	PreferredPosition string `json:"preferred_position,omitempty" binding:"omitempty,oneof=goalkeeper defender midfielder forward"`
}

type LoginRequest struct {
	LoginIdentifier string `json:"login_identifier" binding:"required" example:"amine@example.com"` // Can be email or username
	Password        string `json:"password" binding:"required" example:"password123"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken          string `json:"refresh_token"`           // Optional: specific token to invalidate
	InvalidateAllSessions bool   `json:"invalidate_all_sessions"` // If true, invalidate all user's sessions
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=NewPassword"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Country           string    `json:"country"`
	City              string    `json:"city"`
	Avatar            string    `json:"avatar"`
	Bio               string    `json:"bio"`
	PreferredPosition string    `json:"preferred_position"`
	Roles             []string  `json:"roles"`
	LastActive        time.Time `json:"last_active"`
	CreatedAt         time.Time `json:"created_at"`
}

func FilterUserRecord(u *user.User) UserResponse {
	var roles []string
	for _, role := range u.Roles {
		roles = append(roles, role.Name)
	}

	return UserResponse{
		ID:                u.ID,
		Name:              u.Name,
		Username:          u.Username,
		Email:             u.Email,
		Country:           u.Country,
		City:              u.City,
		Avatar:            u.Avatar,
		Bio:               u.Bio,
		PreferredPosition: u.PreferredPosition,
		Roles:             roles,
		LastActive:        u.LastActive,
		CreatedAt:         u.CreatedAt,
	}
}
