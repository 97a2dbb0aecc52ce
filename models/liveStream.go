package models

import (
	"time"

	"github.com/GraceHarbor/lifecycle"
)

type LiveStreamForm struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	Platform     string     `json:"platform" binding:"required,oneof=facebook youtube both"`
	Facebook_URL *string    `json:"facebookUrl" binding:"omitempty,url"`
	Youtube_URL  *string    `json:"youtubeUrl" binding:"omitempty,url"`
	Start_Time   *time.Time `json:"startTime" binding:"required"`
	End_Time     *time.Time `json:"endTime"`
}

type LiveStream struct {
	ID int `json:"id" goqu:"skipinsert"`
	LiveStreamForm
	Status     lifecycle.Status `json:"status"`
	Created_At time.Time        `json:"createdAt" goqu:"skipinsert"`
}

// LiveStreamStatus is what the public site shows: the stream on air now, or
// the next scheduled one with a countdown.
type LiveStreamStatus struct {
	Is_Live   bool        `json:"isLive"`
	Current   *LiveStream `json:"current"`
	Next      *LiveStream `json:"next"`
	Countdown string      `json:"countdown"`
	Checked   time.Time   `json:"checkedAt"`
}
