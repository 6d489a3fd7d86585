package domain

import (
	"regexp"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{1,62})[a-z0-9]$`)

// Shop represents a detailing shop (tenant)
type Shop struct {
	ID          int64
	OwnerID     int64
	Slug        string
	Name        string
	Timezone    string
	Phone       *string
	Email       *string
	AddressLine *string
	IsPublished bool

	Settings BookingSettings

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingSettings configures how the public booking flow generates slots
type BookingSettings struct {
	SlotStepMinutes           int
	MinBookingNoticeMinutes   int
	AdvanceBookingDays        int // 0 = unlimited
	MaxConcurrentReservations int
	AutoConfirm               bool
}

// DefaultBookingSettings returns the settings applied to a new shop
func DefaultBookingSettings() BookingSettings {
	return BookingSettings{
		SlotStepMinutes:           DefaultSlotStepMinutes,
		MinBookingNoticeMinutes:   DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:        DefaultAdvanceBookingDays,
		MaxConcurrentReservations: DefaultMaxConcurrentReservations,
	}
}

// Location resolves the shop timezone, UTC when unknown
func (s *Shop) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsOwnedBy returns true if userID owns the shop
func (s *Shop) IsOwnedBy(userID int64) bool {
	return s.OwnerID == userID
}

// IsValidSlug checks the public shop identifier
func IsValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// IsValidSlotStep checks that the step splits an hour evenly or is a whole number of hours
func IsValidSlotStep(step int) bool {
	if step < MinSlotStepMinutes || step > MaxSlotStepMinutes {
		return false
	}
	return 60%step == 0 || step%60 == 0
}
