package validator

import (
	"testing"

	"airmetr/errors"
)

type bookingForm struct {
	StartDate      string `json:"startDate" validate:"required,isodate"`
	EndDate        string `json:"endDate" validate:"required,isodate"`
	NumberOfGuests int    `json:"numberOfGuests" validate:"min=1"`
}

func TestValidateStruct(t *testing.T) {
	ok := bookingForm{StartDate: "2024-06-01", EndDate: "2024-06-04", NumberOfGuests: 2}
	if err := ValidateStruct(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		form bookingForm
		code errors.ErrorCode
	}{
		{bookingForm{EndDate: "2024-06-04", NumberOfGuests: 1}, errors.ErrCodeRequiredField},
		{bookingForm{StartDate: "01/06/2024", EndDate: "2024-06-04", NumberOfGuests: 1}, errors.ErrCodeInvalidFormat},
		{bookingForm{StartDate: "2024-02-30", EndDate: "2024-06-04", NumberOfGuests: 1}, errors.ErrCodeInvalidFormat},
		{bookingForm{StartDate: "2024-06-01", EndDate: "2024-06-04", NumberOfGuests: 0}, errors.ErrCodeValidation},
	}
	for _, tc := range cases {
		err := ValidateStruct(tc.form)
		appErr := errors.GetAppError(err)
		if appErr == nil || appErr.Code != tc.code {
			t.Fatalf("%+v: expected %s, got %v", tc.form, tc.code, err)
		}
		if !errors.Is(err, errors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	}
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	err := ValidateStruct(bookingForm{EndDate: "2024-06-04", NumberOfGuests: 1})
	if appErr := errors.GetAppError(err); appErr == nil || appErr.Message != "startDate is required" {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestParseDateRange(t *testing.T) {
	start, end, err := ParseDateRange("2024-06-01", "2024-06-04", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end.Sub(start).Hours() != 72 {
		t.Fatalf("unexpected range %v - %v", start, end)
	}
	if _, _, err := ParseDateRange("2024-06-04", "2024-06-04", 0); !errors.Is(err, errors.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, _, err := ParseDateRange("bad", "2024-06-04", 0); !errors.Is(err, errors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParseDateRangeMaxStay(t *testing.T) {
	if _, _, err := ParseDateRange("2024-06-01", "2024-06-11", 10); err != nil {
		t.Fatalf("10 nights should fit a 10 night cap: %v", err)
	}
	if _, _, err := ParseDateRange("2024-06-01", "2024-06-12", 10); !errors.Is(err, errors.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	// centuries apart must not wrap around into a valid stay
	if _, _, err := ParseDateRange("1700-01-01", "2100-01-01", 0); !errors.Is(err, errors.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
