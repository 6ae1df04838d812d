package controllers

import (
	"strconv"

	"airmetr/errors"

	"github.com/gin-gonic/gin"
)

// paramID reads a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Validation(errors.ErrCodeInvalidFormat, "Invalid "+name)
	}
	return uint(id), nil
}

// bindJSON decodes the body; validation is left to the validator package.
func bindJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return errors.Validation(errors.ErrCodeInvalidFormat, "Invalid request body")
	}
	return nil
}
