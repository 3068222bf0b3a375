package models

import "time"

// User is a registered account. Email and username are unique.
type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	Username      string    `json:"username" gorm:"uniqueIndex;not null"`
	Password      string    `json:"-" gorm:"not null"` // bcrypt hash
	Name          string    `json:"name"`
	Bio           string    `json:"bio"`
	FavoriteGenre string    `json:"favorite_genre"`
	AvatarURL     string    `json:"avatar_url"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Bio           *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	FavoriteGenre *string `json:"favorite_genre,omitempty" validate:"omitempty,max=50"`
}

// Empty reports whether the patch carries no fields.
func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Bio == nil && p.FavoriteGenre == nil
}

// Columns returns the column/value pairs present in the patch.
func (p ProfilePatch) Columns() map[string]interface{} {
	columns := make(map[string]interface{})
	if p.Name != nil {
		columns["name"] = *p.Name
	}
	if p.Bio != nil {
		columns["bio"] = *p.Bio
	}
	if p.FavoriteGenre != nil {
		columns["favorite_genre"] = *p.FavoriteGenre
	}
	return columns
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MeResponse is the short identity view returned by /me.
type MeResponse struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToMe() MeResponse {
	return MeResponse{
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
