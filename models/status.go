package models

import "github.com/shopspring/decimal"

// StatusChange is the body of a dashboard status transition.
type StatusChange struct {
	Status   string  `json:"status" binding:"required"`
	Response *string `json:"response"`
}

// Overview backs the dashboard landing page.
type Overview struct {
	Recent_Prayers          []Prayer         `json:"recentPrayers"`
	Upcoming_Schedule       []ChurchSchedule `json:"upcomingSchedule"`
	Approved_Prayers        int64            `json:"approvedPrayers"`
	Active_Schedules        int64            `json:"activeSchedules"`
	Active_Subscribers      int64            `json:"activeSubscribers"`
	New_Subscribers         int64            `json:"newSubscribers"`
	New_Connection_Cards    int64            `json:"newConnectionCards"`
	Approved_Meetings       int64            `json:"approvedMeetings"`
	Monthly_Donations       decimal.Decimal  `json:"monthlyDonations"`
	Pending_Tithe_Offerings int64            `json:"pendingTitheOfferings"`
}
