package models

import (
	"fmt"
	"strings"
)

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentUPI        PaymentMethod = "UPI"
	PaymentNetBanking PaymentMethod = "Net Banking"
)

var PaymentMethods = []PaymentMethod{PaymentCreditCard, PaymentUPI, PaymentNetBanking}

// ParsePaymentMethod accepts the display name or a short alias (card, upi, netbanking).
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	norm := strings.ToLower(strings.Join(strings.Fields(s), ""))
	switch norm {
	case "creditcard", "card", "cc":
		return PaymentCreditCard, nil
	case "upi":
		return PaymentUPI, nil
	case "netbanking", "bank", "nb":
		return PaymentNetBanking, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentUPI, PaymentNetBanking:
		return true
	}
	return false
}

type CardDetails struct {
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

// Complete reports whether every card field is filled in.
func (c CardDetails) Complete() bool {
	return !isBlank(c.CardNumber) && !isBlank(c.CardHolder) && !isBlank(c.ExpiryDate) && !isBlank(c.CVV)
}

type PayFineRequest struct {
	PaymentMethod  PaymentMethod `json:"PaymentMethod"`
	PaymentDetails *CardDetails  `json:"PaymentDetails,omitempty"`
}
