package models

import (
	"time"

	"github.com/GraceHarbor/lifecycle"
	"github.com/shopspring/decimal"
)

type FundraisingForm struct {
	Title             string          `json:"title" binding:"required"`
	Description       string          `json:"description"`
	Short_Description string          `json:"shortDescription"`
	Ministry          string          `json:"ministry"`
	Campaign_Type     string          `json:"campaignType"`
	Goal_Amount       decimal.Decimal `json:"goalAmount" binding:"required"`
	Start_Date        *time.Time      `json:"startDate"`
	End_Date          *time.Time      `json:"endDate"`
	Featured          bool            `json:"featured"`
	Image_URL         string          `json:"imageUrl"`
	Contact_Name      string          `json:"contactName"`
	Contact_Email     string          `json:"contactEmail" binding:"omitempty,email"`
	Contact_Phone     string          `json:"contactPhone"`
}

type FundraisingCampaign struct {
	ID int `json:"id" goqu:"skipinsert"`
	FundraisingForm
	Current_Amount decimal.Decimal  `json:"currentAmount" goqu:"skipinsert"`
	Status         lifecycle.Status `json:"status"`
	Published_At   *time.Time       `json:"publishedAt"`
	Created_By     *int             `json:"createdBy"`
	Created_At     time.Time        `json:"createdAt" goqu:"skipinsert"`
	Progress       decimal.Decimal  `json:"progressPercent" db:"-"`
}
