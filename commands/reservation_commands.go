package commands

import (
	"context"

	"airmetr/models"
	"airmetr/repositories"
)

// ReservationCommand is a single write against the reservation store, run
// inside the property's booking transaction.
type ReservationCommand interface {
	Execute(ctx context.Context, store repositories.ReservationStore) error
}

type CreateReservationCommand struct {
	reservation *models.Reservation
}

func NewCreateReservationCommand(reservation *models.Reservation) *CreateReservationCommand {
	return &CreateReservationCommand{reservation: reservation}
}

func (c *CreateReservationCommand) Execute(ctx context.Context, store repositories.ReservationStore) error {
	return store.InsertReservation(ctx, c.reservation)
}

type UpdateReservationCommand struct {
	reservation *models.Reservation
}

func NewUpdateReservationCommand(reservation *models.Reservation) *UpdateReservationCommand {
	return &UpdateReservationCommand{reservation: reservation}
}

func (c *UpdateReservationCommand) Execute(ctx context.Context, store repositories.ReservationStore) error {
	return store.UpdateReservation(ctx, c.reservation)
}

type DeleteReservationCommand struct {
	reservationID uint
}

func NewDeleteReservationCommand(reservationID uint) *DeleteReservationCommand {
	return &DeleteReservationCommand{reservationID: reservationID}
}

func (c *DeleteReservationCommand) Execute(ctx context.Context, store repositories.ReservationStore) error {
	return store.DeleteReservation(ctx, c.reservationID)
}
