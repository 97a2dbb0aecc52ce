package models

import (
	"time"

	"github.com/GraceHarbor/lifecycle"
)

type EventForm struct {
	Title             string     `json:"title" binding:"required"`
	Description       string     `json:"description"`
	Short_Description string     `json:"shortDescription"`
	Start_Date        time.Time  `json:"startDate" binding:"required"`
	End_Date          *time.Time `json:"endDate"`
	Location          string     `json:"location"`
	Venue_Name        string     `json:"venueName"`
	Address           string     `json:"address"`
	City              string     `json:"city"`
	State             string     `json:"state"`
	Zip_Code          string     `json:"zipCode"`
	Is_Featured       bool       `json:"isFeatured"`
	Is_Recurring      bool       `json:"isRecurring"`
	Category          string     `json:"category"`
}

type Event struct {
	ID int `json:"id" goqu:"skipinsert"`
	EventForm
	Status       lifecycle.Status `json:"status"`
	Published_At *time.Time       `json:"publishedAt"`
	Created_By   *int             `json:"createdBy"`
	Created_At   time.Time        `json:"createdAt" goqu:"skipinsert"`
}

// EventTiers splits published events for the public events page.
type EventTiers struct {
	Featured []Event `json:"featured"`
	Regular  []Event `json:"regular"`
}
