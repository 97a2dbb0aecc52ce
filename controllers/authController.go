package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/GraceHarbor/initializers"
	"github.com/GraceHarbor/middlewares"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/services"
	"github.com/GraceHarbor/store"
)

func issueSessionToken(profile models.Profile, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(initializers.Cfg.SessionTTL)
	claims := middlewares.SessionClaims{
		Email: profile.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(profile.ID),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(initializers.Cfg.Secret))
	return token, expiresAt, err
}

type emailForm interface {
	NormalizeEmail()
}

// bindEmailForm decodes the body and normalizes the email before validating,
// so padded or mixed-case addresses pass the email rule.
func bindEmailForm(c *gin.Context, form emailForm) error {
	if c.Request.Body == nil {
		return errors.New("missing request body")
	}
	if err := json.NewDecoder(c.Request.Body).Decode(form); err != nil {
		return err
	}
	form.NormalizeEmail()
	return binding.Validator.ValidateStruct(form)
}

func SignUp(c *gin.Context) {
	var form models.SignUp
	if err := bindEmailForm(c, &form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sign up details", "details": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	profile := models.Profile{
		Email:         form.Email,
		Password_Hash: string(hash),
		Full_Name:     form.Full_Name,
	}
	id, err := recordStore().Insert(c.Request.Context(), "profiles", profile)
	if store.IsUniqueViolation(err) {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}
	if err != nil {
		respondError(c, "Failed to create account", err)
		return
	}
	profile.ID = id

	token, expiresAt, err := issueSessionToken(profile, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Account created.",
		"token":     token,
		"expiresAt": expiresAt,
		"user":      profile,
	})
}

func SignIn(c *gin.Context) {
	var form models.SignIn
	if err := bindEmailForm(c, &form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sign in details", "details": err.Error()})
		return
	}

	found, err := findProfileByEmail(c.Request.Context(), recordStore(), form.Email)
	if err != nil {
		respondError(c, "Failed to sign in", err)
		return
	}
	if found == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	profile := *found

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password_Hash), []byte(form.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, expiresAt, err := issueSessionToken(profile, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Signed in.",
		"token":     token,
		"expiresAt": expiresAt,
		"user":      profile,
	})
}

// SignOut revokes the presented token for the rest of its lifetime and
// forgets the caller's queue filters.
func SignOut(c *gin.Context) {
	profile := currentProfile(c)
	tokenID := c.GetString("tokenID")
	expiresAt := c.GetTime("tokenExp")

	sessions := services.GetSessionService()
	if sessions == nil {
		log.Warn().Int("profile_id", profile.ID).Msg("session revocation disabled, token stays valid until expiry")
	}
	if err := sessions.Revoke(c.Request.Context(), tokenID, time.Until(expiresAt)); err != nil {
		respondError(c, "Failed to sign out", err)
		return
	}

	dropBoard(profile.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out."})
}

func GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user":      currentProfile(c),
		"expiresAt": c.GetTime("tokenExp"),
	})
}
