package response

import (
	"time"

	"maspatas/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LoginResponse struct {
	UserID       uuid.UUID `json:"userId"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
}

type RegisterResponse struct {
	UserID uuid.UUID `json:"userId"`
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     *string    `json:"email,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func FromUserView(v *queries.UserView) *UserResponse {
	var resp UserResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromUserViews(views []*queries.UserView) []*UserResponse {
	out := make([]*UserResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromUserView(v))
	}
	return out
}
