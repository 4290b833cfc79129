package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Authenticated(t *testing.T) {
	assert.False(t, Session{}.Authenticated())
	assert.False(t, Session{Role: "admin"}.Authenticated())
	assert.True(t, Session{Token: "t"}.Authenticated())
}

func TestErrorResponse_Text(t *testing.T) {
	assert.Equal(t, "boom", ErrorResponse{Error: "boom", Message: "m"}.Text())
	assert.Equal(t, "m", ErrorResponse{Message: "m"}.Text())
	assert.Empty(t, ErrorResponse{}.Text())
}

func TestVehicle_MissingFields(t *testing.T) {
	v := Vehicle{OwnerName: "Ann", LicensePlate: " ", VehicleType: VehicleTypeCar}
	assert.Equal(t, []string{"LicensePlate", "Contact", "Address"}, v.MissingFields())

	full := Vehicle{OwnerName: "Ann", LicensePlate: "KA01", VehicleType: "Bus", Contact: "1", Address: "x"}
	assert.Empty(t, full.MissingFields())
}

func TestViolation_DecodeBackendRecord(t *testing.T) {
	raw := `{"ViolationID":7,"VehicleID":2,"DateTime":"2025-03-01 10:20:30","ViolationType":"Speeding",
	"FineAmount":500.0,"Status":"Unpaid","Location":"MG Road","evidence_image":null}`

	var v Violation
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	assert.EqualValues(t, 7, v.ViolationID)
	assert.False(t, v.Paid())
	assert.False(t, v.HasEvidence())
	assert.Equal(t, 2025, v.Time().Year())
	assert.True(t, Violation{}.Time().IsZero())
}

func TestParsePaymentMethod(t *testing.T) {
	tests := map[string]PaymentMethod{
		"Credit Card": PaymentCreditCard,
		"card":        PaymentCreditCard,
		"UPI":         PaymentUPI,
		"net banking": PaymentNetBanking,
		"NetBanking":  PaymentNetBanking,
	}
	for in, want := range tests {
		got, err := ParsePaymentMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
		assert.True(t, got.Valid())
	}

	_, err := ParsePaymentMethod("cash")
	require.Error(t, err)
	assert.False(t, PaymentMethod("cash").Valid())
}

func TestPayFineRequest_OmitsCardBundle(t *testing.T) {
	b, err := json.Marshal(PayFineRequest{PaymentMethod: PaymentUPI})
	require.NoError(t, err)
	assert.JSONEq(t, `{"PaymentMethod":"UPI"}`, string(b))

	b, err = json.Marshal(PayFineRequest{
		PaymentMethod:  PaymentCreditCard,
		PaymentDetails: &CardDetails{CardNumber: "4111", CardHolder: "A", ExpiryDate: "12/30", CVV: "123"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"PaymentMethod":"Credit Card","PaymentDetails":{"card_number":"4111","card_holder":"A","expiry_date":"12/30","cvv":"123"}}`, string(b))
}

func TestCardDetails_Complete(t *testing.T) {
	assert.False(t, CardDetails{CardNumber: "1", CardHolder: "A", ExpiryDate: "1"}.Complete())
	assert.True(t, CardDetails{CardNumber: "1", CardHolder: "A", ExpiryDate: "1", CVV: "1"}.Complete())
}
