package middlewares

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/GraceHarbor/initializers"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/services"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"
)

// SessionClaims are the claims carried by a staff session token.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ParseSessionToken verifies the signature and expiry of a session token.
func ParseSessionToken(tokenString, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.ID == "" || claims.Subject == "" || len(claims.Audience) > 0 {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}

func CheckAuth(c *gin.Context) {

	authHeader := c.GetHeader("Authorization")

	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		return
	}

	authToken := strings.Split(authHeader, " ")
	if len(authToken) != 2 || authToken[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
		return
	}

	claims, err := ParseSessionToken(authToken[1], initializers.Cfg.Secret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	revoked, err := services.GetSessionService().IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		log.Error().Err(err).Str("jti", claims.ID).Msg("session revocation lookup failed")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to check session", "details": err.Error()})
		return
	}
	if revoked {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session has been signed out"})
		return
	}

	profileID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	cutoff, err := services.GetSessionService().SessionsRevokedAt(c.Request.Context(), profileID)
	if err != nil {
		log.Error().Err(err).Int("profile_id", profileID).Msg("session cutoff lookup failed")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to check session", "details": err.Error()})
		return
	}
	if !cutoff.IsZero() && (claims.IssuedAt == nil || claims.IssuedAt.Time.Before(cutoff)) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session ended by a password reset"})
		return
	}

	var profile models.Profile
	found, err := initializers.DB.From("profiles").
		Where(goqu.C("id").Eq(profileID)).
		ScanStructContext(c.Request.Context(), &profile)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile", "details": err.Error()})
		return
	}
	if !found {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown session user"})
		return
	}

	c.Set("currentUser", profile)
	c.Set("tokenID", claims.ID)
	if claims.ExpiresAt != nil {
		c.Set("tokenExp", claims.ExpiresAt.Time)
	} else {
		c.Set("tokenExp", time.Time{})
	}

	c.Next()

}
