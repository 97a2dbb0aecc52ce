package models

import (
	"time"

	"github.com/GraceHarbor/lifecycle"
)

type AnnouncementForm struct {
	Title          string     `json:"title" binding:"required"`
	Content        string     `json:"content" binding:"required"`
	Show_In_Banner bool       `json:"showInBanner"`
	Start_Date     *time.Time `json:"startDate"`
	End_Date       *time.Time `json:"endDate"`
	Priority       int        `json:"priority"`
	Link           *string    `json:"link"`
	Link_Text      *string    `json:"linkText"`
}

type Announcement struct {
	ID int `json:"id" goqu:"skipinsert"`
	AnnouncementForm
	Status       lifecycle.Status `json:"status"`
	Created_By   *int             `json:"createdBy"`
	Created_At   time.Time        `json:"createdAt" goqu:"skipinsert"`
	Published_At *time.Time       `json:"publishedAt"`
}
