package models

import (
	"time"

	"github.com/GraceHarbor/lifecycle"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type ConnectionCardCreate struct {
	First_Name        string         `json:"firstName" binding:"required"`
	Last_Name         string         `json:"lastName" binding:"required"`
	Email             string         `json:"email" binding:"required,email"`
	Phone             string         `json:"phone"`
	Address           string         `json:"address"`
	City              string         `json:"city"`
	State             string         `json:"state"`
	Zip_Code          string         `json:"zipCode"`
	Is_First_Time     bool           `json:"isFirstTime"`
	How_Did_You_Hear  string         `json:"howDidYouHear"`
	Prayer_Request    string         `json:"prayerRequest"`
	Interested_In     pq.StringArray `json:"interestedIn"`
	Visit_Type        string         `json:"visitType"`
	Preferred_Contact string         `json:"preferredContact" binding:"omitempty,oneof=email phone text"`
}

type ConnectionCard struct {
	ID int `json:"id" goqu:"skipinsert"`
	ConnectionCardCreate
	Status       lifecycle.Status `json:"status"`
	Contacted_At *time.Time       `json:"contactedAt"`
	Created_At   time.Time        `json:"createdAt" goqu:"skipinsert"`
}

type ContactCreate struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type ContactSubmission struct {
	ID int `json:"id" goqu:"skipinsert"`
	ContactCreate
	Status       lifecycle.Status `json:"status"`
	Response     *string          `json:"response"`
	Responded_At *time.Time       `json:"respondedAt"`
	Assigned_To  *int             `json:"assignedTo"`
	Created_At   time.Time        `json:"createdAt" goqu:"skipinsert"`
}

type DonationCreate struct {
	Title           string          `json:"title" binding:"required"`
	Description     string          `json:"description" binding:"required"`
	Category        string          `json:"category"`
	Goal_Amount     decimal.Decimal `json:"goalAmount" binding:"required"`
	Requester_Name  string          `json:"requesterName" binding:"required"`
	Requester_Email string          `json:"requesterEmail" binding:"required,email"`
	Requester_Phone string          `json:"requesterPhone"`
	Start_Date      *time.Time      `json:"startDate"`
	End_Date        *time.Time      `json:"endDate"`
}

type Donation struct {
	ID int `json:"id" goqu:"skipinsert"`
	DonationCreate
	Current_Amount decimal.Decimal  `json:"currentAmount"`
	Status         lifecycle.Status `json:"status"`
	Approved_By    *int             `json:"approvedBy"`
	Approved_At    *time.Time       `json:"approvedAt"`
	Created_At     time.Time        `json:"createdAt" goqu:"skipinsert"`
}

type MeetingCreate struct {
	Title              string         `json:"title" binding:"required"`
	Description        string         `json:"description"`
	Meeting_Date       time.Time      `json:"meetingDate" binding:"required"`
	Duration_Minutes   int            `json:"durationMinutes" binding:"omitempty,min=15"`
	Expected_Attendees int            `json:"expectedAttendees" binding:"omitempty,min=1"`
	Room_Preference    string         `json:"roomPreference"`
	Equipment_Needed   pq.StringArray `json:"equipmentNeeded"`
	Organizer_Name     string         `json:"organizerName" binding:"required"`
	Organizer_Email    string         `json:"organizerEmail" binding:"required,email"`
	Organizer_Phone    string         `json:"organizerPhone"`
	Notes              string         `json:"notes"`
}

type Meeting struct {
	ID int `json:"id" goqu:"skipinsert"`
	MeetingCreate
	Status      lifecycle.Status `json:"status"`
	Approved_By *int             `json:"approvedBy"`
	Approved_At *time.Time       `json:"approvedAt"`
	Created_At  time.Time        `json:"createdAt" goqu:"skipinsert"`
}

type NewsletterSubscribe struct {
	Email  string `json:"email" binding:"required,email"`
	Source string `json:"source"`
}

type NewsletterSubscription struct {
	ID int `json:"id" goqu:"skipinsert"`
	NewsletterSubscribe
	Status          lifecycle.Status `json:"status"`
	Unsubscribed_At *time.Time       `json:"unsubscribedAt"`
	Created_At      time.Time        `json:"createdAt" goqu:"skipinsert"`
}
