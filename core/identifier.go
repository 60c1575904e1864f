package core

import "strings"

// Identifier is whatever we know about the connecting party. At least one
// field must be populated for an authentication attempt.
type Identifier struct {
	MacAddress  string `json:"mac_address,omitempty"`
	IPAddress   string `json:"ip_address,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

func (i Identifier) Empty() bool {
	return i.MacAddress == "" && i.IPAddress == "" && i.PhoneNumber == ""
}

// Key returns the value sessions are deduplicated on. MAC wins when present;
// phone-only logins (SMS from an unknown device) fall back to the phone.
func (i Identifier) Key() string {
	if i.MacAddress != "" {
		return strings.ToLower(i.MacAddress)
	}
	if i.IPAddress != "" {
		return strings.ToLower(i.IPAddress)
	}
	return strings.ToLower(i.PhoneNumber)
}
