package controllers

import (
	"airmetr/dto"
	"airmetr/middleware"
	"airmetr/response"
	"airmetr/services"
	"airmetr/validator"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Service     services.ReservationServiceInterface
	MaxStayDays int
}

func NewReservationController(service services.ReservationServiceInterface, maxStayDays int) ReservationController {
	return ReservationController{Service: service, MaxStayDays: maxStayDays}
}

func (r ReservationController) parseReservationRequest(c *gin.Context) (services.ReservationChange, error) {
	var req dto.ReservationRequest
	if err := bindJSON(c, &req); err != nil {
		return services.ReservationChange{}, err
	}
	if err := validator.ValidateStruct(req); err != nil {
		return services.ReservationChange{}, err
	}
	start, end, err := validator.ParseDateRange(req.StartDate, req.EndDate, r.MaxStayDays)
	if err != nil {
		return services.ReservationChange{}, err
	}
	return services.ReservationChange{StartDate: start, EndDate: end, NumberOfGuests: req.NumberOfGuests}, nil
}

// CreateReservation godoc
// @Summary      Book a property
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "Property id"
// @Param        body  body  dto.ReservationRequest  true  "Stay"
// @Success      201  {object}  response.Response{data=dto.ReservationResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /properties/{id}/reservations [post]
func (r ReservationController) CreateReservation(c *gin.Context) {
	propertyID, err := paramID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	change, err := r.parseReservationRequest(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	reservation, err := r.Service.CreateReservation(c.Request.Context(), services.ReservationInput{
		PropertyID:     propertyID,
		CustomerID:     middleware.CustomerID(c),
		StartDate:      change.StartDate,
		EndDate:        change.EndDate,
		NumberOfGuests: change.NumberOfGuests,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, dto.ToReservationResponse(reservation))
}

// UpdateReservation godoc
// @Summary      Change the dates or party size of a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "Reservation id"
// @Param        body  body  dto.ReservationRequest  true  "New stay"
// @Success      200  {object}  response.Response{data=dto.ReservationResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /reservations/{id} [put]
func (r ReservationController) UpdateReservation(c *gin.Context) {
	reservationID, err := paramID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	change, err := r.parseReservationRequest(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	reservation, err := r.Service.UpdateReservation(c.Request.Context(), reservationID, change)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, dto.ToReservationResponse(reservation))
}

// DeleteReservation godoc
// @Summary      Cancel a reservation
// @Tags         reservations
// @Produce      json
// @Param        id  path  int  true  "Reservation id"
// @Success      200  {object}  response.Response{data=dto.IDResponse}
// @Failure      404  {object}  response.Response
// @Router       /reservations/{id} [delete]
func (r ReservationController) DeleteReservation(c *gin.Context) {
	reservationID, err := paramID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := r.Service.DeleteReservation(c.Request.Context(), reservationID); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, dto.IDResponse{ID: reservationID})
}

// GetReservation godoc
// @Summary      Get a reservation with its customer
// @Tags         reservations
// @Produce      json
// @Param        id  path  int  true  "Reservation id"
// @Success      200  {object}  response.Response{data=dto.ReservationResponse}
// @Failure      404  {object}  response.Response
// @Router       /reservations/{id} [get]
func (r ReservationController) GetReservation(c *gin.Context) {
	reservationID, err := paramID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	reservation, err := r.Service.GetReservation(c.Request.Context(), reservationID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, dto.ToReservationResponse(reservation))
}

// GetUnavailableDates godoc
// @Summary      Dates that can no longer be booked
// @Description  Every date covered by a reservation, start and end included, ascending.
// @Tags         reservations
// @Produce      json
// @Param        id  path  int  true  "Property id"
// @Success      200  {object}  response.Response{data=dto.UnavailableDatesResponse}
// @Failure      404  {object}  response.Response
// @Router       /properties/{id}/unavailable-dates [get]
func (r ReservationController) GetUnavailableDates(c *gin.Context) {
	propertyID, err := paramID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	dates, err := r.Service.GetUnavailableDates(c.Request.Context(), propertyID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, dto.UnavailableDatesResponse{PropertyID: propertyID, Dates: dates})
}

// ListPropertyReservations godoc
// @Summary      Reservations of a property
// @Tags         reservations
// @Produce      json
// @Param        id  path  int  true  "Property id"
// @Success      200  {object}  response.Response{data=[]dto.ReservationResponse}
// @Failure      404  {object}  response.Response
// @Router       /properties/{id}/reservations [get]
func (r ReservationController) ListPropertyReservations(c *gin.Context) {
	propertyID, err := paramID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	reservations, err := r.Service.ListByProperty(c.Request.Context(), propertyID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, dto.ToReservationResponses(reservations))
}

// ListMyReservations godoc
// @Summary      Reservations of the current customer
// @Tags         reservations
// @Produce      json
// @Success      200  {object}  response.Response{data=[]dto.ReservationResponse}
// @Router       /reservations/mine [get]
func (r ReservationController) ListMyReservations(c *gin.Context) {
	reservations, err := r.Service.ListByCustomer(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, dto.ToReservationResponses(reservations))
}
