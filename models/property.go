package models

import (
	"fmt"
	"time"
)

type Property struct {
	ID                uint              `json:"propertyId" gorm:"primaryKey"`
	CustomerID        string            `json:"customerId" gorm:"index"` // Owner (host)
	Title             string            `json:"title" gorm:"size:100;not null"`
	Price             float64           `json:"price"` // Nightly price
	Address           string            `json:"address"`
	Description       string            `json:"description"`
	Guest             int               `json:"guest"` // Guest capacity
	Bed               int               `json:"bed"`
	BedRooms          int               `json:"bedRooms"`
	BathRooms         int               `json:"bathRooms"`
	PTypeID           uint              `json:"pTypeId"`
	PType             *PType            `json:"pType,omitempty" gorm:"foreignKey:PTypeID"`
	Images            []PropertyImage   `json:"images" gorm:"foreignKey:PropertyID"`
	PropertyAmenities []PropertyAmenity `json:"propertyAmenities" gorm:"foreignKey:PropertyID"`
	CreatedAt         time.Time         `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time         `json:"updatedAt" gorm:"autoUpdateTime"`
}

// GuestCapacity is the maximum number of guests a single reservation may bring.
func (p *Property) GuestCapacity() int {
	return p.Guest
}

func (p *Property) Validate() error {
	if p.Price < 0 {
		return fmt.Errorf("invalid price: %v, must not be negative", p.Price)
	}
	if p.Guest < 1 {
		return fmt.Errorf("invalid guest capacity: %d, must be at least 1", p.Guest)
	}
	return nil
}

type PropertyImage struct {
	ID         uint   `json:"propertyImageId" gorm:"primaryKey"`
	PropertyID uint   `json:"propertyId" gorm:"index"`
	ImageURL   string `json:"imageUrl"`
}

type PType struct {
	ID        uint   `json:"pTypeId" gorm:"primaryKey"`
	PTypeIcon string `json:"pTypeIcon"`
	PTypeName string `json:"pTypeName" gorm:"size:50"`
}

type Amenity struct {
	ID          uint   `json:"amenityId" gorm:"primaryKey"`
	AmenityName string `json:"amenityName"`
	AmenityIcon string `json:"amenityIcon"`
}

type PropertyAmenity struct {
	ID         uint     `json:"propertyAmenityId" gorm:"primaryKey"`
	PropertyID uint     `json:"propertyId" gorm:"index"`
	AmenityID  uint     `json:"amenityId"`
	Amenity    *Amenity `json:"amenity,omitempty" gorm:"foreignKey:AmenityID"`
}
