package repositories

import (
	"context"
	"time"

	"airmetr/errors"
	"airmetr/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SQLSTATEs
const (
	exclusionViolation  = "23P01"
	foreignKeyViolation = "23503"
)

// ReservationStore is the persistence side of the booking engine.
type ReservationStore interface {
	GetPropertyByID(ctx context.Context, id uint) (*models.Property, error)
	GetCustomerByID(ctx context.Context, customerID string) (*models.Customer, error)
	GetReservationByID(ctx context.Context, id uint) (*models.Reservation, error)
	GetReservationsByProperty(ctx context.Context, propertyID uint) ([]models.Reservation, error)
	ListReservationsByCustomer(ctx context.Context, customerID string) ([]models.Reservation, error)
	ListPropertyIDs(ctx context.Context) ([]uint, error)

	// InsertReservation assigns r.ID.
	InsertReservation(ctx context.Context, r *models.Reservation) error
	UpdateReservation(ctx context.Context, r *models.Reservation) error
	DeleteReservation(ctx context.Context, id uint) error

	// WithinPropertyTx runs fn in a transaction that holds the property's
	// booking lock until commit or rollback.
	WithinPropertyTx(ctx context.Context, propertyID uint, fn func(tx ReservationStore) error) error
}

type GormReservationStore struct {
	db *gorm.DB
}

func NewGormReservationStore(db *gorm.DB) *GormReservationStore {
	return &GormReservationStore{db: db}
}

func (s *GormReservationStore) GetPropertyByID(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	if err := s.db.WithContext(ctx).First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound(errors.ErrCodePropertyNotFound, "Property not found for the PropertyId")
		}
		return nil, errors.Database("Failed to load property", err)
	}
	return &property, nil
}

func (s *GormReservationStore) GetCustomerByID(ctx context.Context, customerID string) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound(errors.ErrCodeCustomerNotFound, "Customer not found")
		}
		return nil, errors.Database("Failed to load customer", err)
	}
	return &customer, nil
}

func (s *GormReservationStore) GetReservationByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.WithContext(ctx).Preload("Customer").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound(errors.ErrCodeReservationNotFound, "Reservation not found")
		}
		return nil, errors.Database("Failed to load reservation", err)
	}
	return &reservation, nil
}

func (s *GormReservationStore) GetReservationsByProperty(ctx context.Context, propertyID uint) ([]models.Reservation, error) {
	reservations := make([]models.Reservation, 0)
	if err := s.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("start_date ASC").
		Find(&reservations).Error; err != nil {
		return nil, errors.Database("Failed to load reservations", err)
	}
	return reservations, nil
}

func (s *GormReservationStore) ListReservationsByCustomer(ctx context.Context, customerID string) ([]models.Reservation, error) {
	reservations := make([]models.Reservation, 0)
	if err := s.db.WithContext(ctx).
		Preload("Property.Images").
		Where("customer_id = ?", customerID).
		Order("start_date DESC").
		Find(&reservations).Error; err != nil {
		return nil, errors.Database("Failed to load reservations", err)
	}
	return reservations, nil
}

func (s *GormReservationStore) ListPropertyIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := s.db.WithContext(ctx).Model(&models.Property{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, errors.Database("Failed to list properties", err)
	}
	return ids, nil
}

func (s *GormReservationStore) InsertReservation(ctx context.Context, r *models.Reservation) error {
	if err := s.db.WithContext(ctx).Omit("Property", "Customer").Create(r).Error; err != nil {
		return classifyWriteError("Failed to create reservation", err)
	}
	return nil
}

func (s *GormReservationStore) UpdateReservation(ctx context.Context, r *models.Reservation) error {
	result := s.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", r.ID).
		Updates(map[string]interface{}{
			"start_date":       r.StartDate,
			"end_date":         r.EndDate,
			"number_of_guests": r.NumberOfGuests,
			"total_days":       r.TotalDays,
			"total_price":      r.TotalPrice,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return classifyWriteError("Failed to update reservation", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound(errors.ErrCodeReservationNotFound, "Reservation not found")
	}
	return nil
}

func (s *GormReservationStore) DeleteReservation(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Reservation{}, id)
	if result.Error != nil {
		return errors.Database("Failed to delete reservation", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound(errors.ErrCodeReservationNotFound, "Reservation not found")
	}
	return nil
}

func (s *GormReservationStore) WithinPropertyTx(ctx context.Context, propertyID uint, fn func(tx ReservationStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := LockPropertyTx(tx, propertyID); err != nil {
			return err
		}
		return fn(&GormReservationStore{db: tx})
	})
}

// LockPropertyTx takes the property's booking lock for the rest of tx. On
// PostgreSQL this is a transaction-scoped advisory lock shared by every
// instance; other dialects rely on their single writer.
func LockPropertyTx(tx *gorm.DB, propertyID uint) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(propertyID)).Error; err != nil {
		return errors.Database("Failed to lock property", err)
	}
	return nil
}

// classifyWriteError turns a rejected write by the reservations_no_overlap
// constraint into a date conflict, and a missing property or customer row
// into not found. Both the pgx and lib/pq drivers are recognised.
func classifyWriteError(message string, err error) error {
	switch sqlState(err) {
	case exclusionViolation:
		return errors.DateConflict("")
	case foreignKeyViolation:
		return errors.NotFound(errors.ErrCodeNotFound, "The property or customer no longer exists")
	}
	return errors.Database(message, err)
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
