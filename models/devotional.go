package models

import (
	"time"

	"github.com/GraceHarbor/lifecycle"
)

type DevotionalForm struct {
	Title           string           `json:"title" binding:"required"`
	Content         string           `json:"content" binding:"required"`
	Verse_Reference string           `json:"verseReference"`
	Verse_Text      string           `json:"verseText"`
	Start_Date      *time.Time       `json:"startDate"`
	End_Date        *time.Time       `json:"endDate"`
	Status          lifecycle.Status `json:"status" binding:"omitempty,oneof=active inactive"`
}

type Devotional struct {
	ID int `json:"id" goqu:"skipinsert"`
	DevotionalForm
	Created_By *int      `json:"createdBy"`
	Created_At time.Time `json:"createdAt" goqu:"skipinsert"`
}

type ScriptureForm struct {
	Verse_Text      string           `json:"verseText" binding:"required"`
	Verse_Reference string           `json:"verseReference" binding:"required"`
	Start_Date      *time.Time       `json:"startDate"`
	End_Date        *time.Time       `json:"endDate"`
	Status          lifecycle.Status `json:"status" binding:"omitempty,oneof=active inactive"`
}

type Scripture struct {
	ID int `json:"id" goqu:"skipinsert"`
	ScriptureForm
	Created_By *int      `json:"createdBy"`
	Created_At time.Time `json:"createdAt" goqu:"skipinsert"`
}
