package domain

import "time"

// LeadSource tells where a lead came from
type LeadSource string

const (
	LeadSourceBookingFlow LeadSource = "booking_flow"
	LeadSourceContactForm LeadSource = "contact_form"
)

// Lead is a prospective client contact kept for the shop owner
type Lead struct {
	ID        int64
	ShopID    int64
	Name      string
	Email     string
	Phone     *string
	Message   *string
	ServiceID *int64
	Source    LeadSource
	CreatedAt time.Time
}

// LeadsFilter paging for the owner list
type LeadsFilter struct {
	ShopID int64
	Source *LeadSource
	Limit  uint64
	Offset uint64
}
