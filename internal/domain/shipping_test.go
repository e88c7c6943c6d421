package domain_test

import (
	"errors"
	"testing"

	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShipping() domain.ShippingInfo {
	return domain.ShippingInfo{
		FullName:    "Ravi Kumar",
		PhoneNumber: "9876543210",
		Email:       "ravi@example.com",
		Address:     "12-3 Beach Road",
		City:        domain.ServiceCity,
		Pincode:     "530003",
	}
}

func TestShippingInfoValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(s *domain.ShippingInfo)
		wantFields  []string
		wantOutside bool
	}{
		{
			name:   "valid: ok",
			mutate: func(*domain.ShippingInfo) {},
		},
		{
			name:   "blank email and city: ok",
			mutate: func(s *domain.ShippingInfo) { s.Email = ""; s.City = "" },
		},
		{
			name:   "lower case city: ok",
			mutate: func(s *domain.ShippingInfo) { s.City = "visakhapatnam" },
		},
		{
			name:   "upper case city with spaces: ok",
			mutate: func(s *domain.ShippingInfo) { s.City = "  VISAKHAPATNAM " },
		},
		{
			name:       "short phone",
			mutate:     func(s *domain.ShippingInfo) { s.PhoneNumber = "98765" },
			wantFields: []string{"phoneNumber"},
		},
		{
			name:       "phone starting with 5",
			mutate:     func(s *domain.ShippingInfo) { s.PhoneNumber = "5876543210" },
			wantFields: []string{"phoneNumber"},
		},
		{
			name:       "short name and address",
			mutate:     func(s *domain.ShippingInfo) { s.FullName = "Al"; s.Address = "x" },
			wantFields: []string{"fullName", "address"},
		},
		{
			name:       "invalid email",
			mutate:     func(s *domain.ShippingInfo) { s.Email = "not-an-email" },
			wantFields: []string{"email"},
		},
		{
			name:        "pincode outside area",
			mutate:      func(s *domain.ShippingInfo) { s.Pincode = "500001" },
			wantFields:  []string{"pincode"},
			wantOutside: true,
		},
		{
			name: "pincode outside area wins over other errors",
			mutate: func(s *domain.ShippingInfo) {
				s.Pincode = "110001"
				s.PhoneNumber = "1"
				s.FullName = ""
			},
			wantFields:  []string{"pincode"},
			wantOutside: true,
		},
		{
			name:        "other city",
			mutate:      func(s *domain.ShippingInfo) { s.City = "Hyderabad" },
			wantFields:  []string{"city"},
			wantOutside: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := validShipping()
			tt.mutate(&info)

			err := info.Validate()
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}

			var verrs domain.ValidationErrors
			require.True(t, errors.As(err, &verrs), "got %v", err)

			fields := make([]string, 0, len(verrs))
			for _, v := range verrs {
				fields = append(fields, v.Field)
				assert.NotEmpty(t, v.Reason)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
			assert.Equal(t, tt.wantOutside, errors.Is(err, domain.ErrOutOfServiceArea))

			var first *domain.ValidationError
			require.True(t, errors.As(err, &first))
			assert.Contains(t, tt.wantFields, first.Field)
		})
	}
}

func TestShippingInfoFormatAddress(t *testing.T) {
	tests := []struct {
		name     string
		landmark string
		want     string
	}{
		{name: "with landmark", landmark: "Near RK Beach", want: "12-3 Beach Road, Near RK Beach, Visakhapatnam - 530003"},
		{name: "without landmark", landmark: "", want: "12-3 Beach Road, Visakhapatnam - 530003"},
		{name: "blank landmark", landmark: "   ", want: "12-3 Beach Road, Visakhapatnam - 530003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := validShipping()
			info.Landmark = tt.landmark
			assert.Equal(t, tt.want, info.FormatAddress())
		})
	}
}

func TestServiceablePincodes(t *testing.T) {
	pincodes := domain.ServiceablePincodes()
	assert.Len(t, pincodes, 53)
	assert.IsIncreasing(t, pincodes)

	for _, p := range pincodes {
		assert.True(t, domain.IsServiceablePincode(p), p)
	}
	assert.False(t, domain.IsServiceablePincode("530019"))
}

func TestShippingInfoNormalizedCity(t *testing.T) {
	for _, city := range []string{"", "visakhapatnam", " VisakhaPatnam "} {
		info := validShipping()
		info.City = city
		assert.Equal(t, domain.ServiceCity, info.Normalized().City, "city %q", city)
	}

	info := validShipping()
	info.City = " Hyderabad "
	assert.Equal(t, "Hyderabad", info.Normalized().City)
}
