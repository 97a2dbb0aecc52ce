package models

import "time"

type PasswordResetCode struct {
	ID         int       `json:"id" goqu:"skipinsert"`
	Profile_ID int       `json:"profileId"`
	Code       string    `json:"-"`
	Expires_At time.Time `json:"expiresAt"`
	Used       bool      `json:"used"`
	Attempts   int       `json:"attempts"`
	Created_At time.Time `json:"createdAt" goqu:"skipinsert"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyResetCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}
