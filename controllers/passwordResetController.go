package controllers

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/GraceHarbor/initializers"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/services"
	"github.com/GraceHarbor/store"
)

const (
	resetCodeTTL         = 15 * time.Minute
	resetTokenTTL        = 5 * time.Minute
	maxResetCodeAttempts = 3
	resetAudience        = "password-reset"
)

func findProfileByEmail(ctx context.Context, s store.RecordStore, email string) (*models.Profile, error) {
	var profiles []models.Profile
	err := s.Select(ctx, store.Query{
		Table: "profiles",
		Where: []exp.Expression{goqu.C("email").Eq(strings.ToLower(strings.TrimSpace(email)))},
		Limit: 1,
	}, &profiles)
	if err != nil || len(profiles) == 0 {
		return nil, err
	}
	return &profiles[0], nil
}

// ForgotPassword emails a 6-digit reset code. The answer is the same whether
// or not the address belongs to a staff account.
func ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid email address is required", "details": err.Error()})
		return
	}

	ok := gin.H{"message": "If this email belongs to a staff account, a verification code has been sent."}
	ctx := c.Request.Context()
	s := recordStore()

	profile, err := findProfileByEmail(ctx, s, req.Email)
	if err != nil || profile == nil {
		if err != nil {
			log.Error().Err(err).Msg("password reset lookup failed")
		}
		c.JSON(http.StatusOK, ok)
		return
	}

	code, err := generate6DigitCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate verification code"})
		return
	}

	_, err = s.Insert(ctx, "password_reset_codes", models.PasswordResetCode{
		Profile_ID: profile.ID,
		Code:       code,
		Expires_At: time.Now().UTC().Add(resetCodeTTL),
	})
	if err != nil {
		respondError(c, "Failed to process password reset request", err)
		return
	}

	if err := services.GetEmailService().SendPasswordResetCode(profile.Email, profile.Full_Name, code, resetCodeTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification email", "details": err.Error()})
		return
	}

	log.Info().Int("profile_id", profile.ID).Msg("password reset code sent")
	c.JSON(http.StatusOK, ok)
}

// VerifyResetCode checks the newest open code for the account and trades it
// for a short-lived reset token. Each wrong guess uses up an attempt.
func VerifyResetCode(c *gin.Context) {
	var req models.VerifyResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and 6-digit code are required", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	s := recordStore()

	profile, err := findProfileByEmail(ctx, s, req.Email)
	if err != nil || profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or verification code"})
		return
	}

	var codes []models.PasswordResetCode
	err = s.Select(ctx, store.Query{
		Table: "password_reset_codes",
		Where: []exp.Expression{
			goqu.C("profile_id").Eq(profile.ID),
			goqu.C("used").IsFalse(),
			goqu.C("expires_at").Gt(time.Now().UTC()),
		},
		Order: []exp.OrderedExpression{store.Newest()},
		Limit: 1,
	}, &codes)
	if err != nil || len(codes) == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired verification code"})
		return
	}
	open := codes[0]

	if open.Attempts >= maxResetCodeAttempts {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Maximum verification attempts exceeded. Please request a new code."})
		return
	}

	if subtle.ConstantTimeCompare([]byte(open.Code), []byte(req.Code)) != 1 {
		if err := s.Update(ctx, "password_reset_codes", open.ID, goqu.Record{"attempts": open.Attempts + 1}); err != nil {
			log.Error().Err(err).Int("code_id", open.ID).Msg("failed to count reset attempt")
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired verification code"})
		return
	}

	if err := s.Update(ctx, "password_reset_codes", open.ID, goqu.Record{"used": true}); err != nil {
		respondError(c, "Failed to verify code", err)
		return
	}

	token, err := createResetToken(profile.ID, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code is valid", "token": token})
}

// ResetPassword sets a new password using the token from VerifyResetCode.
func ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token and new password are required", "details": err.Error()})
		return
	}

	claims, err := parseResetToken(req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	profileID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	ctx := c.Request.Context()
	sessions := services.GetSessionService()
	first, err := sessions.Consume(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
	if err != nil {
		respondError(c, "Failed to reset password", err)
		return
	}
	if !first {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Reset token has already been used"})
		return
	}

	now := time.Now().UTC()
	if err := recordStore().Update(ctx, "profiles", profileID, goqu.Record{"password_hash": string(hash)}); err != nil {
		respondError(c, "Failed to reset password", err)
		return
	}

	if err := sessions.RevokeProfileSessions(ctx, profileID, now, initializers.Cfg.SessionTTL); err != nil {
		log.Error().Err(err).Int("profile_id", profileID).Msg("failed to end sessions after password reset")
	}

	log.Info().Int("profile_id", profileID).Msg("password reset")
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully. You can now sign in with your new password."})
}

func generate6DigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func createResetToken(profileID int, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(profileID),
		Audience:  jwt.ClaimStrings{resetAudience},
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(resetTokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(initializers.Cfg.Secret))
}

func parseResetToken(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(initializers.Cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || !claims.VerifyAudience(resetAudience, true) || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("not a password reset token")
	}
	return claims, nil
}
