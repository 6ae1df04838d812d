package builders

import (
	"time"

	"airmetr/models"
)

// ReservationBuilder giúp tạo reservation theo từng bước
type ReservationBuilder struct {
	reservation *models.Reservation
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		reservation: &models.Reservation{},
	}
}

func (b *ReservationBuilder) WithProperty(propertyID uint) *ReservationBuilder {
	b.reservation.PropertyID = propertyID
	return b
}

func (b *ReservationBuilder) WithCustomer(customerID string) *ReservationBuilder {
	b.reservation.CustomerID = customerID
	return b
}

// WithDates stores both dates at UTC midnight.
func (b *ReservationBuilder) WithDates(start, end time.Time) *ReservationBuilder {
	b.reservation.StartDate = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	b.reservation.EndDate = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return b
}

func (b *ReservationBuilder) WithGuests(numberOfGuests int) *ReservationBuilder {
	b.reservation.NumberOfGuests = numberOfGuests
	return b
}

func (b *ReservationBuilder) WithTotals(totalDays int, totalPrice float64) *ReservationBuilder {
	b.reservation.TotalDays = totalDays
	b.reservation.TotalPrice = totalPrice
	return b
}

func (b *ReservationBuilder) Build() *models.Reservation {
	return b.reservation
}
