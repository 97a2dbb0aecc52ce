package models

import (
	"time"

	"github.com/GraceHarbor/lifecycle"
	"github.com/shopspring/decimal"
)

type TitheOfferingCreate struct {
	Service_Date   time.Time       `json:"serviceDate" binding:"required"`
	Service_Type   string          `json:"serviceType" binding:"required,oneof=sunday_morning sunday_evening wednesday special"`
	Category_ID    *int            `json:"categoryId"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Payment_Method string          `json:"paymentMethod" binding:"required,oneof=cash check card online"`
	Notes          string          `json:"notes"`
}

type TitheOffering struct {
	ID int `json:"id" goqu:"skipinsert"`
	TitheOfferingCreate
	Status        lifecycle.Status               `json:"status"`
	Created_By    int                            `json:"createdBy"`
	Created_At    time.Time                      `json:"createdAt" goqu:"skipinsert"`
	Category_Name *string                        `json:"categoryName" db:"-"`
	Verifications []TitheOfferingVerification    `json:"verifications" db:"-"`
	Progress      lifecycle.VerificationProgress `json:"progress" db:"-"`
	Display       string                         `json:"progressDisplay" db:"-"`
}

type TitheOfferingVerification struct {
	ID                int       `json:"id" goqu:"skipinsert"`
	Tithe_Offering_ID int       `json:"titheOfferingId"`
	Verified_By       int       `json:"verifiedBy"`
	Verified_At       time.Time `json:"verifiedAt" goqu:"skipinsert"`
}

// TitheOfferingCategory is a fund a collection can be recorded against.
type TitheOfferingCategory struct {
	ID          int     `json:"id" goqu:"skipinsert"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Is_Active   bool    `json:"isActive"`
}
