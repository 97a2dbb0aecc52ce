package models

import (
	"strings"
	"time"
)

// Profile is a staff account allowed into the dashboard.
type Profile struct {
	ID            int       `json:"id" goqu:"skipinsert"`
	Email         string    `json:"email"`
	Password_Hash string    `json:"-"`
	Full_Name     string    `json:"fullName"`
	Created_At    time.Time `json:"createdAt" goqu:"skipinsert"`
}

type SignUp struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Full_Name string `json:"fullName" binding:"required"`
}

type SignIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// NormalizeEmail trims and lowercases the address before it is validated.
func (f *SignUp) NormalizeEmail() {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
}

func (f *SignIn) NormalizeEmail() {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
}
