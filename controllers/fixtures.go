package controllers

import (
	"time"

	"github.com/GraceHarbor/models"
	"golang.org/x/crypto/bcrypt"
)

// Test fixture data for use in tests

// MockProfile creates a staff profile for testing
func MockProfile() models.Profile {
	return models.Profile{
		ID:         1,
		Email:      "staff@graceharbor.church",
		Full_Name:  "Ruth Staff",
		Created_At: time.Now(),
	}
}

// MockSecondProfile is a second staff member, used for verification tests.
func MockSecondProfile() models.Profile {
	return models.Profile{
		ID:         2,
		Email:      "deacon@graceharbor.church",
		Full_Name:  "Boaz Deacon",
		Created_At: time.Now(),
	}
}

// MockProfileWithPassword creates a profile whose password is "password123"
func MockProfileWithPassword() models.Profile {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	profile := MockProfile()
	profile.Password_Hash = string(hashedPassword)
	return profile
}

func profileColumns() []string {
	return []string{"created_at", "email", "full_name", "id", "password_hash"}
}

func prayerColumns() []string {
	return []string{
		"approved_at", "approved_by", "author_email", "author_name", "content", "created_at",
		"id", "is_public", "prayer_count", "show_on_wall", "status", "title",
	}
}
