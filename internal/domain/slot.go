package domain

import "github.com/m04kA/SMC-DetailingBooking/pkg/types"

// Slot represents a start time available for booking
type Slot struct {
	StartTime      types.TimeString
	EndTime        types.TimeString
	AvailableSpots int
	TotalSpots     int
}

// IsFull returns true if the slot has no available spots
func (s *Slot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// IsFullyAvailable returns true if all spots are available
func (s *Slot) IsFullyAvailable() bool {
	return s.AvailableSpots == s.TotalSpots
}
