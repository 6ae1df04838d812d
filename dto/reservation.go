package dto

import (
	"time"

	"airmetr/models"
	"airmetr/services"
)

// ReservationRequest is the body of both create and update.
type ReservationRequest struct {
	StartDate      string `json:"startDate" validate:"required,isodate" example:"2024-06-01"`
	EndDate        string `json:"endDate" validate:"required,isodate" example:"2024-06-04"`
	NumberOfGuests int    `json:"numberOfGuests" validate:"min=1" example:"2"`
}

type ReservationResponse struct {
	ReservationID  uint                     `json:"reservationId"`
	PropertyID     uint                     `json:"propertyId"`
	CustomerID     string                   `json:"customerId"`
	StartDate      string                   `json:"startDate"`
	EndDate        string                   `json:"endDate"`
	NumberOfGuests int                      `json:"numberOfGuests"`
	TotalDays      int                      `json:"totalDays"`
	TotalPrice     float64                  `json:"totalPrice"`
	Customer       *models.Customer         `json:"customer,omitempty"`
	Property       *PropertySummaryResponse `json:"property,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

type UnavailableDatesResponse struct {
	PropertyID uint     `json:"propertyId"`
	Dates      []string `json:"dates"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ReservationID:  r.ID,
		PropertyID:     r.PropertyID,
		CustomerID:     r.CustomerID,
		StartDate:      services.FormatDate(r.StartDate),
		EndDate:        services.FormatDate(r.EndDate),
		NumberOfGuests: r.NumberOfGuests,
		TotalDays:      r.TotalDays,
		TotalPrice:     r.TotalPrice,
		Customer:       r.Customer,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.Property != nil {
		summary := ToPropertySummary(r.Property)
		resp.Property = &summary
	}
	return resp
}

func ToReservationResponses(rs []models.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(rs))
	for i := range rs {
		out = append(out, ToReservationResponse(&rs[i]))
	}
	return out
}
