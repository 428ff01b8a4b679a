package model

import "regexp"

var (
	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	phonePattern   = regexp.MustCompile(`^[0-9]{10}$`)
)

// Address is a structured delivery address. It is captured per checkout
// attempt and embedded into the order as a copy, never referenced live.
type Address struct {
	FullName string `json:"fullName" db:"full_name"`
	Phone    string `json:"phone" db:"phone"`
	Line1    string `json:"line1" db:"line1"`
	Line2    string `json:"line2,omitempty" db:"line2"`
	City     string `json:"city" db:"city"`
	State    string `json:"state" db:"state"`
	Pincode  string `json:"pincode" db:"pincode"`
}

// Validate checks required fields and the pincode/phone formats.
func (a *Address) Validate() error {
	if a.FullName == "" || a.Line1 == "" || a.City == "" || a.State == "" {
		return ErrInvalidAddress
	}
	if !phonePattern.MatchString(a.Phone) {
		return ErrInvalidPhone
	}
	if !ValidPincode(a.Pincode) {
		return ErrInvalidPincode
	}
	return nil
}

// ValidPincode reports whether s looks like a deliverable 6-digit postal
// code. This is also the degraded-mode serviceability check used when the
// logistics API is unreachable.
func ValidPincode(s string) bool {
	return pincodePattern.MatchString(s)
}
