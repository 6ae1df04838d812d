package validator

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"airmetr/constants"
	"airmetr/errors"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		// report json names, not Go field names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("isodate", isISODate)
	})
	return validate
}

// isISODate accepts a calendar date in YYYY-MM-DD form.
func isISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(constants.DateLayout, fl.Field().String())
	return err == nil
}

// ValidateStruct checks the validate tags of v and turns the first failure
// into a validation AppError.
func ValidateStruct(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Validation(errors.ErrCodeValidation, err.Error())
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return errors.Validation(errors.ErrCodeRequiredField, fmt.Sprintf("%s is required", fe.Field()))
	case "isodate":
		return errors.Validation(errors.ErrCodeInvalidFormat, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field()))
	case "min", "gte":
		return errors.Validation(errors.ErrCodeValidation, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
	case "max", "lte":
		return errors.Validation(errors.ErrCodeValidation, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
	default:
		return errors.Validation(errors.ErrCodeValidation, fmt.Sprintf("%s is invalid", fe.Field()))
	}
}

// ParseDateRange parses two YYYY-MM-DD strings and checks that end is after
// start by at most maxStayDays nights. maxStayDays <= 0 means
// constants.DefaultMaxStayDays.
func ParseDateRange(start, end string, maxStayDays int) (time.Time, time.Time, error) {
	startDate, err := time.Parse(constants.DateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Validation(errors.ErrCodeInvalidFormat, "startDate must be a date in YYYY-MM-DD format")
	}
	endDate, err := time.Parse(constants.DateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Validation(errors.ErrCodeInvalidFormat, "endDate must be a date in YYYY-MM-DD format")
	}
	if !endDate.After(startDate) {
		return time.Time{}, time.Time{}, errors.InvalidRange("The end date must be after the start date")
	}
	if maxStayDays <= 0 {
		maxStayDays = constants.DefaultMaxStayDays
	}
	if nights := (endDate.Unix() - startDate.Unix()) / (24 * 60 * 60); nights > int64(maxStayDays) {
		return time.Time{}, time.Time{}, errors.InvalidRange(fmt.Sprintf("A stay can last at most %d nights", maxStayDays))
	}
	return startDate, endDate, nil
}
