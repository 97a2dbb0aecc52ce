package models

import (
	"time"

	"github.com/GraceHarbor/lifecycle"
	"github.com/lib/pq"
)

type ScheduleForm struct {
	Title        string           `json:"title" binding:"required"`
	Description  string           `json:"description"`
	Meta_Tags    pq.StringArray   `json:"metaTags"`
	Day_Of_Week  string           `json:"dayOfWeek" binding:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	Start_Time   string           `json:"startTime" binding:"required"`
	End_Time     string           `json:"endTime"`
	Location     string           `json:"location"`
	Type         string           `json:"type"`
	Is_Recurring bool             `json:"isRecurring"`
	Status       lifecycle.Status `json:"status" binding:"omitempty,oneof=active inactive"`
}

type ChurchSchedule struct {
	ID int `json:"id" goqu:"skipinsert"`
	ScheduleForm
	Created_At time.Time `json:"createdAt" goqu:"skipinsert"`
}

type ResourceForm struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	Category    string           `json:"category" binding:"required"`
	File_URL    string           `json:"fileUrl" binding:"required,url"`
	Icon        string           `json:"icon"`
	Type        string           `json:"type"`
	Status      lifecycle.Status `json:"status" binding:"omitempty,oneof=active inactive"`
}

type Resource struct {
	ID int `json:"id" goqu:"skipinsert"`
	ResourceForm
	Created_At time.Time `json:"createdAt" goqu:"skipinsert"`
}
