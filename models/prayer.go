package models

import (
	"time"

	"github.com/GraceHarbor/lifecycle"
)

type PrayerCreate struct {
	Title        string `json:"title" binding:"required"`
	Content      string `json:"content" binding:"required"`
	Author_Name  string `json:"authorName" binding:"required"`
	Author_Email string `json:"authorEmail" binding:"omitempty,email"`
	Is_Public    bool   `json:"isPublic"`
	Show_On_Wall bool   `json:"showOnWall"`
}

type Prayer struct {
	ID int `json:"id" goqu:"skipinsert"`
	PrayerCreate
	Status       lifecycle.Status `json:"status"`
	Prayer_Count int              `json:"prayerCount" goqu:"skipinsert"`
	Approved_By  *int             `json:"approvedBy"`
	Approved_At  *time.Time       `json:"approvedAt"`
	Created_At   time.Time        `json:"createdAt" goqu:"skipinsert"`
}

type PrayerInteraction struct {
	ID         int       `json:"id" goqu:"skipinsert"`
	Prayer_ID  int       `json:"prayerId"`
	User_ID    int       `json:"userId"`
	Created_At time.Time `json:"createdAt" goqu:"skipinsert"`
}

type PrayerWallStats struct {
	Prayed_Today    int64 `json:"prayedToday"`
	Total_Prayers   int64 `json:"totalPrayers"`
	Prayer_Warriors int64 `json:"prayerWarriors"`
	Answered        int64 `json:"answered"`
}
