package domain

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

const ServiceCity = "Visakhapatnam"

// remember to keep the list sorted, it is searched with slices.BinarySearch
var serviceablePincodes = []string{
	"530001", "530002", "530003", "530004", "530005", "530006", "530007", "530008", "530009",
	"530010", "530011", "530012", "530013", "530014", "530015", "530016", "530017", "530018",
	"530020", "530022", "530024", "530026", "530027", "530028", "530029", "530031", "530032",
	"530035", "530040", "530041", "530043", "530044", "530045", "530046", "530047", "530048",
	"530051", "530052", "531001", "531002", "531011", "531035", "531055", "531061", "531084",
	"531085", "531087", "531093", "531151", "531162", "531163", "531173", "531219",
}

var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

func IsServiceablePincode(pincode string) bool {
	_, found := slices.BinarySearch(serviceablePincodes, pincode)
	return found
}

func ServiceablePincodes() []string {
	return slices.Clone(serviceablePincodes)
}

// ShippingInfo is what a customer submits at checkout.
type ShippingInfo struct {
	FullName    string `json:"fullName" validate:"required,min=3"`
	PhoneNumber string `json:"phoneNumber" validate:"required,mobile"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address" validate:"required,min=5"`
	City        string `json:"city"`
	Pincode     string `json:"pincode"`
	Landmark    string `json:"landmark"`
	Notes       string `json:"notes"`
}

var shippingValidate = newShippingValidator()

func newShippingValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})

	if err := v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// Validate checks the delivery area first: an address outside it is rejected
// no matter what else is wrong with the submission.
func (s ShippingInfo) Validate() error {
	s = s.Normalized()

	if s.City != ServiceCity {
		return ValidationErrors{{Field: "city", Reason: "We only deliver in " + ServiceCity, Err: ErrOutOfServiceArea}}
	}
	if !IsServiceablePincode(s.Pincode) {
		return ValidationErrors{{Field: "pincode", Reason: ErrOutOfServiceArea.Error(), Err: ErrOutOfServiceArea}}
	}

	err := shippingValidate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate.Struct: %w", err)
	}

	result := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		result = append(result, &ValidationError{Field: fe.Field(), Reason: reasonFor(fe)})
	}

	return result
}

// FormatAddress renders "{address}, {landmark, }{city} - {pincode}".
func (s ShippingInfo) FormatAddress() string {
	s = s.Normalized()

	var b strings.Builder
	b.WriteString(s.Address)
	b.WriteString(", ")
	if s.Landmark != "" {
		b.WriteString(s.Landmark)
		b.WriteString(", ")
	}
	b.WriteString(s.City)
	b.WriteString(" - ")
	b.WriteString(s.Pincode)

	return b.String()
}

// Normalized trims every field and fills in the only supported city when it is blank.
func (s ShippingInfo) Normalized() ShippingInfo {
	s.FullName = strings.TrimSpace(s.FullName)
	s.PhoneNumber = strings.TrimSpace(s.PhoneNumber)
	s.Email = strings.TrimSpace(s.Email)
	s.Address = strings.TrimSpace(s.Address)
	s.City = strings.TrimSpace(s.City)
	s.Pincode = strings.TrimSpace(s.Pincode)
	s.Landmark = strings.TrimSpace(s.Landmark)
	s.Notes = strings.TrimSpace(s.Notes)

	if s.City == "" || strings.EqualFold(s.City, ServiceCity) {
		s.City = ServiceCity
	}

	return s
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Field() {
	case "fullName":
		if fe.Tag() == "min" {
			return "Name must be at least 3 characters"
		}
		return "Full name is required"
	case "phoneNumber":
		if fe.Tag() == "required" {
			return "Phone number is required"
		}
		return "Please enter a valid Indian phone number"
	case "email":
		return "Invalid email address"
	case "address":
		if fe.Tag() == "min" {
			return "Address must be at least 5 characters"
		}
		return "Address is required"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
