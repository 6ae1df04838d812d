package controllers

import (
	"airmetr/dto"
	"airmetr/errors"
	"airmetr/middleware"
	"airmetr/response"
	"airmetr/services"
	"airmetr/validator"

	"github.com/gin-gonic/gin"
)

type PropertyController struct {
	Service services.PropertyServiceInterface
}

func NewPropertyController(service services.PropertyServiceInterface) PropertyController {
	return PropertyController{Service: service}
}

func parsePropertyRequest(c *gin.Context) (services.PropertyInput, error) {
	var req dto.PropertyRequest
	if err := bindJSON(c, &req); err != nil {
		return services.PropertyInput{}, err
	}
	if err := validator.ValidateStruct(req); err != nil {
		return services.PropertyInput{}, err
	}
	return services.PropertyInput{
		Title:       req.Title,
		Price:       req.Price,
		Address:     req.Address,
		Description: req.Description,
		Guest:       req.Guest,
		Bed:         req.Bed,
		BedRooms:    req.BedRooms,
		BathRooms:   req.BathRooms,
		PTypeID:     req.PTypeID,
		AmenityIDs:  req.AmenityIDs,
	}, nil
}

// GetProperties godoc
// @Summary      List properties
// @Description  Optional type filter and fuzzy free-text search over title, address, description and type.
// @Tags         properties
// @Produce      json
// @Param        typeId  query  int     false  "Property type id"
// @Param        q       query  string  false  "Search text"
// @Success      200  {object}  response.Response{data=services.PropertySearchResult}
// @Router       /properties [get]
func (p PropertyController) GetProperties(c *gin.Context) {
	var query dto.PropertyListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(errors.Validation(errors.ErrCodeInvalidFormat, "Invalid query parameters"))
		return
	}
	result, err := p.Service.ListProperties(c.Request.Context(), services.PropertyFilter{TypeID: query.TypeID, Query: query.Q})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, result)
}

// GetMyProperties godoc
// @Summary      Properties owned by the current customer
// @Tags         properties
// @Produce      json
// @Success      200  {object}  response.Response{data=[]models.Property}
// @Router       /properties/mine [get]
func (p PropertyController) GetMyProperties(c *gin.Context) {
	properties, err := p.Service.ListByCustomer(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, properties)
}

// GetPropertyByID godoc
// @Summary      Get a property with images, amenities and type
// @Tags         properties
// @Produce      json
// @Param        id  path  int  true  "Property id"
// @Success      200  {object}  response.Response{data=models.Property}
// @Failure      404  {object}  response.Response
// @Router       /properties/{id} [get]
func (p PropertyController) GetPropertyByID(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	property, err := p.Service.GetProperty(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, property)
}

// GetCreateData godoc
// @Summary      Property types and amenities for the property form
// @Tags         properties
// @Produce      json
// @Success      200  {object}  response.Response{data=services.CreateData}
// @Router       /properties/create-data [get]
func (p PropertyController) GetCreateData(c *gin.Context) {
	data, err := p.Service.GetCreateData(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, data)
}

// CreateProperty godoc
// @Summary      List a new property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PropertyRequest  true  "Property"
// @Success      201  {object}  response.Response{data=models.Property}
// @Failure      400  {object}  response.Response
// @Router       /properties [post]
func (p PropertyController) CreateProperty(c *gin.Context) {
	input, err := parsePropertyRequest(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	property, err := p.Service.CreateProperty(c.Request.Context(), middleware.CustomerID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, property)
}

// UpdateProperty godoc
// @Summary      Update a property and replace its amenities
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "Property id"
// @Param        body  body  dto.PropertyRequest  true  "Property"
// @Success      200  {object}  response.Response{data=models.Property}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /properties/{id} [put]
func (p PropertyController) UpdateProperty(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	input, err := parsePropertyRequest(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	property, err := p.Service.UpdateProperty(c.Request.Context(), id, middleware.CustomerID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, property)
}

// DeleteProperty godoc
// @Summary      Delete a property with its images and reservations
// @Tags         properties
// @Produce      json
// @Param        id  path  int  true  "Property id"
// @Success      200  {object}  response.Response{data=dto.IDResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /properties/{id} [delete]
func (p PropertyController) DeleteProperty(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := p.Service.DeleteProperty(c.Request.Context(), id, middleware.CustomerID(c)); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, dto.IDResponse{ID: id})
}

// UploadImages godoc
// @Summary      Add photos to a property
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      int   true  "Property id"
// @Param        files  formData  file  true  "Images"
// @Success      201  {object}  response.Response{data=[]models.PropertyImage}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /properties/{id}/images [post]
func (p PropertyController) UploadImages(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		_ = c.Error(errors.Validation(errors.ErrCodeInvalidFormat, "Invalid multipart form"))
		return
	}
	images, err := p.Service.AddImages(c.Request.Context(), id, middleware.CustomerID(c), form.File["files"])
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, images)
}

// DeleteImage godoc
// @Summary      Remove a property photo
// @Tags         images
// @Produce      json
// @Param        id  path  int  true  "Image id"
// @Success      200  {object}  response.Response{data=dto.IDResponse}
// @Failure      404  {object}  response.Response
// @Router       /images/{id} [delete]
func (p PropertyController) DeleteImage(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := p.Service.DeleteImage(c.Request.Context(), id, middleware.CustomerID(c)); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, dto.IDResponse{ID: id})
}
