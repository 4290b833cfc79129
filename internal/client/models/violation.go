package models

import (
	"strings"
	"time"
)

const (
	ViolationSpeeding     = "Speeding"
	ViolationRedLight     = "Red Light Violation"
	ViolationIllegalPark  = "Illegal Parking"
	ViolationNoLicense    = "Driving Without License"
	ViolationDrunkDriving = "Drunk Driving"
	ViolationNoHelmet     = "No Helmet"
)

const (
	StatusPaid   = "Paid"
	StatusUnpaid = "Unpaid"
)

// MinFineAmount is the smallest fine the entry form accepts.
const MinFineAmount float64 = 100

const DateTimeLayout = "2006-01-02 15:04:05"

var ViolationTypes = []string{
	ViolationSpeeding,
	ViolationRedLight,
	ViolationIllegalPark,
	ViolationNoLicense,
	ViolationDrunkDriving,
	ViolationNoHelmet,
}

type Violation struct {
	ViolationID   int64   `json:"ViolationID"`
	VehicleID     int64   `json:"VehicleID,omitempty"`
	LicensePlate  string  `json:"LicensePlate,omitempty"`
	ViolationType string  `json:"ViolationType,omitempty"`
	FineAmount    float64 `json:"FineAmount"`
	Location      string  `json:"Location,omitempty"`
	DateTime      string  `json:"DateTime,omitempty"`
	Status        string  `json:"Status"`
	EvidenceImage string  `json:"evidence_image,omitempty"`
}

func (v Violation) Paid() bool {
	return strings.EqualFold(v.Status, StatusPaid)
}

func (v Violation) HasEvidence() bool {
	return v.EvidenceImage != ""
}

// Time parses DateTime; the zero time is returned when it is absent or malformed.
func (v Violation) Time() time.Time {
	t, err := time.Parse(DateTimeLayout, v.DateTime)
	if err != nil {
		return time.Time{}
	}
	return t
}

// NewViolation is the body of an add-violation request.
type NewViolation struct {
	LicensePlate  string  `json:"LicensePlate"`
	ViolationType string  `json:"ViolationType"`
	FineAmount    float64 `json:"FineAmount"`
	Location      string  `json:"Location"`
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
