package services

import (
	"context"
	"fmt"
	"time"

	"airmetr/builders"
	"airmetr/commands"
	"airmetr/constants"
	"airmetr/errors"
	"airmetr/models"
	"airmetr/repositories"
	"airmetr/services/logger"
	"airmetr/services/notification"
)

// ReservationInput is a booking request after the transport layer has parsed
// its dates.
type ReservationInput struct {
	PropertyID     uint
	CustomerID     string
	StartDate      time.Time
	EndDate        time.Time
	NumberOfGuests int
}

// ReservationChange replaces the dates and party size of a reservation.
type ReservationChange struct {
	StartDate      time.Time
	EndDate        time.Time
	NumberOfGuests int
}

type ReservationServiceInterface interface {
	CreateReservation(ctx context.Context, in ReservationInput) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, reservationID uint, change ReservationChange) (*models.Reservation, error)
	DeleteReservation(ctx context.Context, reservationID uint) error
	GetUnavailableDates(ctx context.Context, propertyID uint) ([]string, error)
	GetReservation(ctx context.Context, reservationID uint) (*models.Reservation, error)
	ListByProperty(ctx context.Context, propertyID uint) ([]models.Reservation, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Reservation, error)
}

type ReservationService struct {
	store       repositories.ReservationStore
	locker      Locker
	cache       AvailabilityCache
	publisher   notification.Publisher
	logger      logger.Logger
	maxStayDays int
}

type ReservationServiceOptions struct {
	Store     repositories.ReservationStore
	Locker    Locker
	Cache     AvailabilityCache
	Publisher notification.Publisher
	Logger    logger.Logger
	// MaxStayDays caps TotalDays; zero means constants.DefaultMaxStayDays.
	MaxStayDays int
}

func NewReservationService(opts ReservationServiceOptions) *ReservationService {
	s := &ReservationService{
		store:       opts.Store,
		locker:      opts.Locker,
		cache:       opts.Cache,
		publisher:   opts.Publisher,
		logger:      opts.Logger,
		maxStayDays: opts.MaxStayDays,
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
	if s.maxStayDays <= 0 {
		s.maxStayDays = constants.DefaultMaxStayDays
	}
	return s
}

func bookingLockKey(propertyID uint) string {
	return fmt.Sprintf("%s%d", constants.BookingLockKeyPrefix, propertyID)
}

func validateGuests(numberOfGuests int) error {
	if numberOfGuests < 1 {
		return errors.Validation(errors.ErrCodeValidation, "The number of guests must be at least 1")
	}
	return nil
}

func validateRange(start, end time.Time, maxStayDays int) error {
	days := DaysBetween(start, end)
	if days <= 0 {
		return errors.InvalidRange("The end date must be after the start date")
	}
	if days > maxStayDays {
		return errors.InvalidRange(fmt.Sprintf("A stay can last at most %d nights", maxStayDays))
	}
	return nil
}

// withPropertyLock runs fn while holding both the property's booking lock and
// its store transaction.
func (s *ReservationService) withPropertyLock(ctx context.Context, propertyID uint, fn func(tx repositories.ReservationStore) error) error {
	unlock, err := s.locker.Lock(ctx, bookingLockKey(propertyID))
	if err != nil {
		return err
	}
	defer unlock()
	return s.store.WithinPropertyTx(ctx, propertyID, fn)
}

func checkAvailability(ctx context.Context, tx repositories.ReservationStore, propertyID uint, start, end time.Time, excludeID uint) error {
	existing, err := tx.GetReservationsByProperty(ctx, propertyID)
	if err != nil {
		return err
	}
	if conflict := firstConflict(start, end, existing, excludeID); conflict != nil {
		return errors.DateConflict(fmt.Sprintf(
			"The chosen date is unavailable for this property, it is booked from %s to %s",
			FormatDate(conflict.StartDate), FormatDate(conflict.EndDate)))
	}
	return nil
}

func (s *ReservationService) CreateReservation(ctx context.Context, in ReservationInput) (*models.Reservation, error) {
	if err := validateRange(in.StartDate, in.EndDate, s.maxStayDays); err != nil {
		return nil, err
	}
	if err := validateGuests(in.NumberOfGuests); err != nil {
		return nil, err
	}

	var created *models.Reservation
	err := s.withPropertyLock(ctx, in.PropertyID, func(tx repositories.ReservationStore) error {
		property, err := tx.GetPropertyByID(ctx, in.PropertyID)
		if err != nil {
			return err
		}
		if _, err := tx.GetCustomerByID(ctx, in.CustomerID); err != nil {
			return err
		}
		if in.NumberOfGuests > property.GuestCapacity() {
			return errors.CapacityExceeded(in.NumberOfGuests, property.GuestCapacity())
		}
		if err := checkAvailability(ctx, tx, property.ID, in.StartDate, in.EndDate, 0); err != nil {
			return err
		}

		stay, err := ComputeStay(in.StartDate, in.EndDate, property.Price)
		if err != nil {
			return err
		}
		reservation := builders.NewReservationBuilder().
			WithProperty(property.ID).
			WithCustomer(in.CustomerID).
			WithDates(in.StartDate, in.EndDate).
			WithGuests(in.NumberOfGuests).
			WithTotals(stay.TotalDays, stay.TotalPrice).
			Build()
		if err := commands.NewCreateReservationCommand(reservation).Execute(ctx, tx); err != nil {
			return err
		}
		created = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation %d created for property %d (%s to %s)",
		created.ID, created.PropertyID, FormatDate(created.StartDate), FormatDate(created.EndDate))
	s.afterCommit(ctx, constants.EventReservationCreated, created)
	return created, nil
}

func (s *ReservationService) UpdateReservation(ctx context.Context, reservationID uint, change ReservationChange) (*models.Reservation, error) {
	current, err := s.store.GetReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := validateRange(change.StartDate, change.EndDate, s.maxStayDays); err != nil {
		return nil, err
	}
	if err := validateGuests(change.NumberOfGuests); err != nil {
		return nil, err
	}

	var updated *models.Reservation
	err = s.withPropertyLock(ctx, current.PropertyID, func(tx repositories.ReservationStore) error {
		reservation, err := tx.GetReservationByID(ctx, reservationID)
		if err != nil {
			return err
		}
		property, err := tx.GetPropertyByID(ctx, reservation.PropertyID)
		if err != nil {
			return err
		}
		if change.NumberOfGuests > property.GuestCapacity() {
			return errors.CapacityExceeded(change.NumberOfGuests, property.GuestCapacity())
		}
		if err := checkAvailability(ctx, tx, property.ID, change.StartDate, change.EndDate, reservation.ID); err != nil {
			return err
		}

		stay, err := ComputeStay(change.StartDate, change.EndDate, property.Price)
		if err != nil {
			return err
		}
		reservation.StartDate = CivilDate(change.StartDate)
		reservation.EndDate = CivilDate(change.EndDate)
		reservation.NumberOfGuests = change.NumberOfGuests
		reservation.TotalDays = stay.TotalDays
		reservation.TotalPrice = stay.TotalPrice
		if err := commands.NewUpdateReservationCommand(reservation).Execute(ctx, tx); err != nil {
			return err
		}
		updated = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation %d updated (%s to %s, %d guests)",
		updated.ID, FormatDate(updated.StartDate), FormatDate(updated.EndDate), updated.NumberOfGuests)
	s.afterCommit(ctx, constants.EventReservationUpdated, updated)
	return updated, nil
}

func (s *ReservationService) DeleteReservation(ctx context.Context, reservationID uint) error {
	current, err := s.store.GetReservationByID(ctx, reservationID)
	if err != nil {
		return err
	}

	err = s.withPropertyLock(ctx, current.PropertyID, func(tx repositories.ReservationStore) error {
		return commands.NewDeleteReservationCommand(reservationID).Execute(ctx, tx)
	})
	if err != nil {
		return err
	}

	s.logger.Info("reservation %d deleted from property %d", current.ID, current.PropertyID)
	s.afterCommit(ctx, constants.EventReservationDeleted, current)
	return nil
}

// afterCommit refreshes derived state. Nothing here can fail the write.
func (s *ReservationService) afterCommit(ctx context.Context, eventType string, r *models.Reservation) {
	s.cache.Invalidate(ctx, r.PropertyID)

	event := notification.NewEventBuilder(eventType, r.PropertyID).
		WithReservation(r.ID, FormatDate(r.StartDate), FormatDate(r.EndDate)).
		Build()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish %s for reservation %d: %v", eventType, r.ID, err)
	}
}

// GetUnavailableDates lists every booked date of the property, ascending.
func (s *ReservationService) GetUnavailableDates(ctx context.Context, propertyID uint) ([]string, error) {
	if dates, ok := s.cache.Get(ctx, propertyID); ok {
		return dates, nil
	}
	// taken before the store read so a write committing in between wins
	version, cacheable := s.cache.Version(ctx, propertyID)

	if _, err := s.store.GetPropertyByID(ctx, propertyID); err != nil {
		return nil, err
	}
	existing, err := s.store.GetReservationsByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	dates := UnavailableDateList(existing)
	if cacheable {
		s.cache.Set(ctx, propertyID, version, dates)
	}
	return dates, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, reservationID uint) (*models.Reservation, error) {
	return s.store.GetReservationByID(ctx, reservationID)
}

func (s *ReservationService) ListByProperty(ctx context.Context, propertyID uint) ([]models.Reservation, error) {
	if _, err := s.store.GetPropertyByID(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.store.GetReservationsByProperty(ctx, propertyID)
}

func (s *ReservationService) ListByCustomer(ctx context.Context, customerID string) ([]models.Reservation, error) {
	if _, err := s.store.GetCustomerByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.store.ListReservationsByCustomer(ctx, customerID)
}
