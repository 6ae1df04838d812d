package repositories

import (
	"fmt"

	"airmetr/models"

	"gorm.io/gorm"
)

// Seed fills empty tables with demo customers, property types, amenities and
// properties. Tables that already hold rows are left alone.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedIfEmpty(tx, &models.Customer{}, seedCustomers()); err != nil {
			return err
		}
		if err := seedIfEmpty(tx, &models.PType{}, seedPTypes()); err != nil {
			return err
		}
		if err := seedIfEmpty(tx, &models.Amenity{}, seedAmenities()); err != nil {
			return err
		}
		return seedIfEmpty(tx, &models.Property{}, seedProperties())
	})
}

func seedIfEmpty[T any](tx *gorm.DB, model interface{}, rows []T) error {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count %T: %w", model, err)
	}
	if count > 0 || len(rows) == 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to seed %T: %w", model, err)
	}
	return nil
}

func seedCustomers() []models.Customer {
	return []models.Customer{
		{CustomerID: "1", Name: "Talhat Hamdy", Age: "28", Address: "OsloVeien", PhoneNumber: "92983929"},
		{CustomerID: "2", Name: "Per Hansen", Age: "47", Address: "SkiVeien", PhoneNumber: "93483929"},
		{CustomerID: "3", Name: "Abo-Mohammed", Age: "22", Address: "KremleVeien", PhoneNumber: "96583929"},
		{CustomerID: "4", Name: "Abo al-zeen", Age: "24", Address: "KremleVeien", PhoneNumber: "96583929"},
	}
}

func seedPTypes() []models.PType {
	return []models.PType{
		{PTypeName: "House", PTypeIcon: "fas fa-house-user"},
		{PTypeName: "Cabins", PTypeIcon: "fas fa-dungeon"},
		{PTypeName: "Domes", PTypeIcon: "fas fa-campground"},
		{PTypeName: "Treehouses", PTypeIcon: "fas fa-house"},
		{PTypeName: "Amazing Pools", PTypeIcon: "fas fa-swimming-pool"},
		{PTypeName: "Houseboats", PTypeIcon: "fas fa-ship"},
	}
}

func seedAmenities() []models.Amenity {
	return []models.Amenity{
		{AmenityName: "WiFi", AmenityIcon: "fa-solid fa-wifi"},
		{AmenityName: "Kitchen", AmenityIcon: "fa-solid fa-utensils"},
		{AmenityName: "Dedicated workspace", AmenityIcon: "fa-solid fa-briefcase"},
		{AmenityName: "Free street parking", AmenityIcon: "fa-solid fa-parking"},
		{AmenityName: "Pool", AmenityIcon: "fa-solid fa-swimming-pool"},
		{AmenityName: "TV with standard cable", AmenityIcon: "fa-solid fa-tv"},
		{AmenityName: "Fireplace", AmenityIcon: "fa-solid fa-fire"},
		{AmenityName: "Air conditioning", AmenityIcon: "fa-solid fa-wind"},
		{AmenityName: "Washing machine", AmenityIcon: "fa-solid fa-shirt"},
	}
}

// seedProperties references p_types by id, so it must run after seedPTypes on
// an empty database.
func seedProperties() []models.Property {
	return []models.Property{
		{Title: "Home", Price: 2000, Address: "Bro Sweden", Description: "Cozy house featuring a comfortable bedroom, well-equipped kitchen, and a refreshing pool.", Guest: 2, Bed: 1, BedRooms: 1, BathRooms: 1, PTypeID: 5, CustomerID: "1"},
		{Title: "Home", Price: 2500, Address: "Oslo Norway", Description: "Charming home with a pool outside, a fully-equipped kitchen and two cozy bedrooms with double beds.", Guest: 4, Bed: 2, BedRooms: 2, BathRooms: 1, PTypeID: 5, CustomerID: "1"},
		{Title: "Home", Price: 3500, Address: "Dal Norway", Description: "Charming home with a well-equipped kitchen, a comfortable bedroom featuring a double bed, and a modern bathroom.", Guest: 2, Bed: 1, BedRooms: 1, BathRooms: 1, PTypeID: 1, CustomerID: "2"},
		{Title: "Home", Price: 3500, Address: "Skagen Denmark", Description: "Charming home with a well-equipped kitchen, a comfortable bedroom featuring a double bed, and a modern bathroom.", Guest: 2, Bed: 1, BedRooms: 1, BathRooms: 1, PTypeID: 1, CustomerID: "2"},
		{Title: "Home", Price: 1400, Address: "Paris France", Description: "Charming home with a well-equipped kitchen, a comfortable bedroom featuring a double bed, and a modern bathroom.", Guest: 2, Bed: 1, BedRooms: 1, BathRooms: 1, PTypeID: 1, CustomerID: "2"},
		{Title: "Home", Price: 3000, Address: "Pandrup Denmark", Description: "Charming home featuring a refreshing pool, fully equipped kitchen and two comfortable bedrooms.", Guest: 4, Bed: 2, BedRooms: 2, BathRooms: 1, PTypeID: 5, CustomerID: "1"},
	}
}
