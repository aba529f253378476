package request

import (
	"maspatas/internal/usecase/commands"
)

type LoginRequest struct {
	// Either the username or the email address.
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) ToInput() commands.LoginInput {
	return commands.LoginInput{
		Login:    r.Login,
		Password: r.Password,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role,omitempty"`
}

func (r RegisterRequest) ToInput() commands.RegisterInput {
	return commands.RegisterInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
	}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}
