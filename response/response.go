package response

import (
	"net/http"

	"airmetr/errors"
	"airmetr/services/logger"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Error      string      `json:"error,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Created",
		Data: data,
	})
}

func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// Error writes a failure envelope with the given HTTP status.
func Error(c *gin.Context, status int, code errors.ErrorCode, message string) {
	c.JSON(status, Response{
		Code:  0,
		Mess:  message,
		Error: string(code),
	})
}

func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, errors.ErrCodeInternal, "Internal server error")
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, errors.ErrCodeForbidden, "Forbidden")
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, errors.ErrCodeNotFound, "Not found")
}

func ValidationError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, errors.ErrCodeValidation, message)
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, errors.ErrCodeInvalidFormat, message)
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrDateConflict):
		return http.StatusConflict
	case errors.Is(err, errors.ErrCapacityExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrInvalidRange), errors.Is(err, errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errors.ErrForbidden):
		return http.StatusForbidden
	}
	if appErr := errors.GetAppError(err); appErr != nil {
		switch appErr.Code {
		case errors.ErrCodeInvalidToken:
			return http.StatusUnauthorized
		case errors.ErrCodeLockTimeout:
			return http.StatusServiceUnavailable
		case errors.ErrCodeUploadFailed:
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}

// FromError writes the envelope for err. Unexpected errors are logged and
// answered with a generic message.
func FromError(c *gin.Context, log logger.Logger, err error) {
	status := StatusFor(err)
	appErr := errors.GetAppError(err)
	if status == http.StatusInternalServerError || appErr == nil {
		log.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		ServerError(c)
		return
	}
	if status >= http.StatusInternalServerError {
		log.Warn("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	Error(c, status, appErr.Code, appErr.Message)
}
