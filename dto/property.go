package dto

import "airmetr/models"

type PropertyRequest struct {
	Title       string  `json:"title" validate:"required,max=100" example:"Home"`
	Price       float64 `json:"price" validate:"gte=0" example:"2000"`
	Address     string  `json:"address" validate:"max=255" example:"Oslo Norway"`
	Description string  `json:"description"`
	Guest       int     `json:"guest" validate:"min=1" example:"4"`
	Bed         int     `json:"bed" validate:"gte=0"`
	BedRooms    int     `json:"bedRooms" validate:"gte=0"`
	BathRooms   int     `json:"bathRooms" validate:"gte=0"`
	PTypeID     uint    `json:"pTypeId" validate:"required" example:"1"`
	AmenityIDs  []uint  `json:"amenityIds" validate:"dive,min=1"`
}

// PropertyListQuery are the query parameters of GET /properties.
type PropertyListQuery struct {
	TypeID uint   `form:"typeId"`
	Q      string `form:"q"`
}

type PropertySummaryResponse struct {
	PropertyID uint    `json:"propertyId"`
	Title      string  `json:"title"`
	Address    string  `json:"address"`
	Price      float64 `json:"price"`
	Guest      int     `json:"guest"`
	ImageURL   string  `json:"imageUrl,omitempty"`
}

func ToPropertySummary(p *models.Property) PropertySummaryResponse {
	s := PropertySummaryResponse{
		PropertyID: p.ID,
		Title:      p.Title,
		Address:    p.Address,
		Price:      p.Price,
		Guest:      p.Guest,
	}
	if len(p.Images) > 0 {
		s.ImageURL = p.Images[0].ImageURL
	}
	return s
}
