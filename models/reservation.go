package models

import (
	"time"
)

// Reservation occupies every calendar date from StartDate to EndDate inclusive.
// StartDate and EndDate are stored at UTC midnight.
type Reservation struct {
	ID             uint      `json:"reservationId" gorm:"primaryKey"`
	PropertyID     uint      `json:"propertyId" gorm:"index;not null"`
	Property       *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	CustomerID     string    `json:"customerId" gorm:"index"`
	Customer       *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID;references:CustomerID"`
	StartDate      time.Time `json:"startDate" gorm:"type:date;not null"`
	EndDate        time.Time `json:"endDate" gorm:"type:date;not null"`
	NumberOfGuests int       `json:"numberOfGuests"`
	TotalDays      int       `json:"totalDays"`
	TotalPrice     float64   `json:"totalPrice"`
	CreatedAt      time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
