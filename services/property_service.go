package services

import (
	"context"
	"mime/multipart"

	"airmetr/constants"
	"airmetr/errors"
	"airmetr/models"
	"airmetr/repositories"
	"airmetr/services/logger"
	"airmetr/services/notification"

	"gorm.io/gorm"
)

// PropertyFilter narrows ListProperties. Zero values mean no filter.
type PropertyFilter struct {
	TypeID uint
	Query  string
}

type PropertySearchResult struct {
	Properties []models.Property `json:"properties"`
	Suggestion string            `json:"suggestion,omitempty"`
}

type CreateData struct {
	PTypes    []models.PType   `json:"pTypes"`
	Amenities []models.Amenity `json:"amenities"`
}

type PropertyInput struct {
	Title       string
	Price       float64
	Address     string
	Description string
	Guest       int
	Bed         int
	BedRooms    int
	BathRooms   int
	PTypeID     uint
	AmenityIDs  []uint
}

type PropertyServiceInterface interface {
	ListProperties(ctx context.Context, filter PropertyFilter) (*PropertySearchResult, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Property, error)
	GetProperty(ctx context.Context, id uint) (*models.Property, error)
	GetCreateData(ctx context.Context) (*CreateData, error)
	CreateProperty(ctx context.Context, customerID string, in PropertyInput) (*models.Property, error)
	UpdateProperty(ctx context.Context, id uint, customerID string, in PropertyInput) (*models.Property, error)
	DeleteProperty(ctx context.Context, id uint, customerID string) error
	AddImages(ctx context.Context, propertyID uint, customerID string, files []*multipart.FileHeader) ([]models.PropertyImage, error)
	DeleteImage(ctx context.Context, imageID uint, customerID string) error
}

type PropertyService struct {
	db        *gorm.DB
	locker    Locker
	cache     AvailabilityCache
	storage   ImageStorage
	publisher notification.Publisher
	logger    logger.Logger
}

type PropertyServiceOptions struct {
	DB        *gorm.DB
	Locker    Locker
	Cache     AvailabilityCache
	Storage   ImageStorage
	Publisher notification.Publisher
	Logger    logger.Logger
}

func NewPropertyService(opts PropertyServiceOptions) *PropertyService {
	s := &PropertyService{
		db:        opts.DB,
		locker:    opts.Locker,
		cache:     opts.Cache,
		storage:   opts.Storage,
		publisher: opts.Publisher,
		logger:    opts.Logger,
	}
	if s.locker == nil {
		s.locker = NewLocalLocker()
	}
	if s.cache == nil {
		s.cache = NopAvailabilityCache{}
	}
	if s.publisher == nil {
		s.publisher = notification.NopPublisher{}
	}
	if s.logger == nil {
		s.logger = logger.NewNopLogger()
	}
	return s
}

func validatePropertyInput(in PropertyInput) error {
	if in.Title == "" {
		return errors.Validation(errors.ErrCodeRequiredField, "Title is required")
	}
	if in.Price < 0 {
		return errors.Validation(errors.ErrCodeInvalidAmount, "Price must not be negative")
	}
	if in.Guest < 1 {
		return errors.Validation(errors.ErrCodeValidation, "Guest capacity must be at least 1")
	}
	return nil
}

func (s *PropertyService) ListProperties(ctx context.Context, filter PropertyFilter) (*PropertySearchResult, error) {
	var properties []models.Property
	query := s.db.WithContext(ctx).Preload("Images").Preload("PType").Order("id")
	if filter.TypeID != 0 {
		query = query.Where("p_type_id = ?", filter.TypeID)
	}
	if err := query.Find(&properties).Error; err != nil {
		return nil, errors.Database("Failed to load properties", err)
	}

	if filter.Query == "" {
		return &PropertySearchResult{Properties: properties}, nil
	}

	ranked := rankProperties(filter.Query, properties)
	result := &PropertySearchResult{Properties: ranked}
	if len(ranked) == 0 {
		result.Suggestion = suggestQuery(filter.Query, properties)
	}
	return result, nil
}

func (s *PropertyService) ListByCustomer(ctx context.Context, customerID string) ([]models.Property, error) {
	properties := make([]models.Property, 0)
	if err := s.db.WithContext(ctx).
		Preload("Images").
		Preload("PType").
		Where("customer_id = ?", customerID).
		Order("id").
		Find(&properties).Error; err != nil {
		return nil, errors.Database("Failed to load properties", err)
	}
	return properties, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	if err := s.db.WithContext(ctx).
		Preload("Images").
		Preload("PType").
		Preload("PropertyAmenities.Amenity").
		First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound(errors.ErrCodePropertyNotFound, "Property not found for the PropertyId")
		}
		return nil, errors.Database("Failed to load property", err)
	}
	return &property, nil
}

func (s *PropertyService) GetCreateData(ctx context.Context) (*CreateData, error) {
	data := &CreateData{PTypes: []models.PType{}, Amenities: []models.Amenity{}}
	if err := s.db.WithContext(ctx).Order("id").Find(&data.PTypes).Error; err != nil {
		return nil, errors.Database("Failed to load property types", err)
	}
	if err := s.db.WithContext(ctx).Order("id").Find(&data.Amenities).Error; err != nil {
		return nil, errors.Database("Failed to load amenities", err)
	}
	return data, nil
}

func (s *PropertyService) CreateProperty(ctx context.Context, customerID string, in PropertyInput) (*models.Property, error) {
	if err := validatePropertyInput(in); err != nil {
		return nil, err
	}

	property := models.Property{CustomerID: customerID}
	applyPropertyInput(&property, in)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkPType(tx, in.PTypeID); err != nil {
			return err
		}
		if err := tx.Omit("PType", "Images", "PropertyAmenities").Create(&property).Error; err != nil {
			return errors.Database("Failed to create property", err)
		}
		return replaceAmenities(tx, property.ID, in.AmenityIDs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("property %d created by customer %s", property.ID, customerID)
	return s.GetProperty(ctx, property.ID)
}

func (s *PropertyService) UpdateProperty(ctx context.Context, id uint, customerID string, in PropertyInput) (*models.Property, error) {
	if err := validatePropertyInput(in); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		property, err := loadOwnedProperty(tx, id, customerID)
		if err != nil {
			return err
		}
		if err := checkPType(tx, in.PTypeID); err != nil {
			return err
		}
		applyPropertyInput(property, in)
		if err := tx.Omit("PType", "Images", "PropertyAmenities").Save(property).Error; err != nil {
			return errors.Database("Failed to update property", err)
		}
		return replaceAmenities(tx, property.ID, in.AmenityIDs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("property %d updated", id)
	return s.GetProperty(ctx, id)
}

// DeleteProperty removes the property with its images, amenities and
// reservations. It holds the booking lock so no reservation can slip in.
func (s *PropertyService) DeleteProperty(ctx context.Context, id uint, customerID string) error {
	unlock, err := s.locker.Lock(ctx, bookingLockKey(id))
	if err != nil {
		return err
	}
	defer unlock()

	var images []models.PropertyImage
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the same lock CreateReservation holds on every instance
		if err := repositories.LockPropertyTx(tx, id); err != nil {
			return err
		}
		if _, err := loadOwnedProperty(tx, id, customerID); err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Find(&images).Error; err != nil {
			return errors.Database("Failed to load property images", err)
		}
		for _, model := range []interface{}{&models.Reservation{}, &models.PropertyImage{}, &models.PropertyAmenity{}} {
			if err := tx.Where("property_id = ?", id).Delete(model).Error; err != nil {
				return errors.Database("Failed to delete property", err)
			}
		}
		if err := tx.Delete(&models.Property{}, id).Error; err != nil {
			return errors.Database("Failed to delete property", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.removeStoredImages(ctx, images)
	s.cache.Invalidate(ctx, id)
	event := notification.NewEventBuilder(constants.EventPropertyDeleted, id).Build()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish %s for property %d: %v", event.Type, id, err)
	}
	s.logger.Info("property %d deleted with %d images", id, len(images))
	return nil
}

func (s *PropertyService) AddImages(ctx context.Context, propertyID uint, customerID string, files []*multipart.FileHeader) ([]models.PropertyImage, error) {
	if s.storage == nil {
		return nil, errors.NewAppError(errors.ErrCodeUploadFailed, "Image storage is not configured", nil)
	}
	if len(files) == 0 {
		return nil, errors.Validation(errors.ErrCodeRequiredField, "No files uploaded")
	}
	if _, err := loadOwnedProperty(s.db.WithContext(ctx), propertyID, customerID); err != nil {
		return nil, err
	}

	images := make([]models.PropertyImage, 0, len(files))
	for _, file := range files {
		url, err := s.storage.Save(ctx, file)
		if err != nil {
			s.removeStoredImages(ctx, images)
			return nil, errors.NewAppError(errors.ErrCodeUploadFailed, "Upload failed", err)
		}
		images = append(images, models.PropertyImage{PropertyID: propertyID, ImageURL: url})
	}

	if err := s.db.WithContext(ctx).Create(&images).Error; err != nil {
		s.removeStoredImages(ctx, images)
		return nil, errors.Database("Failed to save images", err)
	}
	return images, nil
}

func (s *PropertyService) DeleteImage(ctx context.Context, imageID uint, customerID string) error {
	var image models.PropertyImage
	if err := s.db.WithContext(ctx).First(&image, imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound(errors.ErrCodeImageNotFound, "Image not found")
		}
		return errors.Database("Failed to load image", err)
	}
	if _, err := loadOwnedProperty(s.db.WithContext(ctx), image.PropertyID, customerID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&image).Error; err != nil {
		return errors.Database("Failed to delete image", err)
	}
	s.removeStoredImages(ctx, []models.PropertyImage{image})
	return nil
}

func (s *PropertyService) removeStoredImages(ctx context.Context, images []models.PropertyImage) {
	if s.storage == nil {
		return
	}
	for _, img := range images {
		if err := s.storage.Remove(ctx, img.ImageURL); err != nil {
			s.logger.Warn("failed to remove image %s: %v", img.ImageURL, err)
		}
	}
}

func applyPropertyInput(p *models.Property, in PropertyInput) {
	p.Title = in.Title
	p.Price = in.Price
	p.Address = in.Address
	p.Description = in.Description
	p.Guest = in.Guest
	p.Bed = in.Bed
	p.BedRooms = in.BedRooms
	p.BathRooms = in.BathRooms
	p.PTypeID = in.PTypeID
}

func loadOwnedProperty(tx *gorm.DB, id uint, customerID string) (*models.Property, error) {
	var property models.Property
	if err := tx.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound(errors.ErrCodePropertyNotFound, "Property not found for the PropertyId")
		}
		return nil, errors.Database("Failed to load property", err)
	}
	if property.CustomerID != customerID {
		return nil, errors.Forbidden("You can only change your own properties")
	}
	return &property, nil
}

func checkPType(tx *gorm.DB, pTypeID uint) error {
	var count int64
	if err := tx.Model(&models.PType{}).Where("id = ?", pTypeID).Count(&count).Error; err != nil {
		return errors.Database("Failed to load property type", err)
	}
	if count == 0 {
		return errors.Validation(errors.ErrCodeInvalidFormat, "Unknown property type")
	}
	return nil
}

func replaceAmenities(tx *gorm.DB, propertyID uint, amenityIDs []uint) error {
	if err := tx.Where("property_id = ?", propertyID).Delete(&models.PropertyAmenity{}).Error; err != nil {
		return errors.Database("Failed to update amenities", err)
	}
	if len(amenityIDs) == 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.Amenity{}).Where("id IN ?", amenityIDs).Count(&count).Error; err != nil {
		return errors.Database("Failed to load amenities", err)
	}
	unique := make(map[uint]bool, len(amenityIDs))
	rows := make([]models.PropertyAmenity, 0, len(amenityIDs))
	for _, id := range amenityIDs {
		if !unique[id] {
			unique[id] = true
			rows = append(rows, models.PropertyAmenity{PropertyID: propertyID, AmenityID: id})
		}
	}
	if int(count) != len(rows) {
		return errors.Validation(errors.ErrCodeInvalidFormat, "Unknown amenity")
	}
	if err := tx.Omit("Amenity").Create(&rows).Error; err != nil {
		return errors.Database("Failed to update amenities", err)
	}
	return nil
}
