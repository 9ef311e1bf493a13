package somfyprotect

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SecurityLevel is the alarm posture of a site.
type SecurityLevel string

// Security levels accepted and reported by the API.
const (
	SecurityLevelDisarmed SecurityLevel = "disarmed"
	SecurityLevelArmed    SecurityLevel = "armed"
	SecurityLevelPartial  SecurityLevel = "partial"
)

// ParseSecurityLevel parses a security level case-insensitively,
// so "ARMED" and "armed" are equivalent.
func ParseSecurityLevel(s string) (SecurityLevel, error) {
	level := SecurityLevel(strings.ToLower(strings.TrimSpace(s)))
	if !level.Valid() {
		return "", &ValidationError{Field: "security level", Message: fmt.Sprintf("unknown level %q", s)}
	}
	return level, nil
}

// Valid reports whether l is one of the known security levels.
func (l SecurityLevel) Valid() bool {
	switch l {
	case SecurityLevelDisarmed, SecurityLevelArmed, SecurityLevelPartial:
		return true
	}
	return false
}

// UnmarshalJSON normalizes the level to lower case.
func (l *SecurityLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = SecurityLevel(strings.ToLower(s))
	return nil
}

// Site is a monitored location with an overall security level.
type Site struct {
	SiteID        string          `json:"site_id"`
	Label         string          `json:"label"`
	Brand         string          `json:"brand,omitempty"`
	Role          string          `json:"role,omitempty"`
	SecurityLevel SecurityLevel   `json:"security_level"`
	Devices       []DeviceSummary `json:"devices,omitempty"`
}

// IsArmed reports whether the site is fully or partially armed.
func (s *Site) IsArmed() bool {
	return s.SecurityLevel == SecurityLevelArmed || s.SecurityLevel == SecurityLevelPartial
}

// DeviceSummary is the short device form nested in a Site.
type DeviceSummary struct {
	DeviceID         string           `json:"device_id"`
	Label            string           `json:"label"`
	DeviceDefinition DeviceDefinition `json:"device_definition"`
}

// Status is the free-form device status reported by the API.
type Status map[string]any

// Settings is the free-form device settings object. The API tags it with
// an "object" discriminator that must not be sent back.
type Settings map[string]any

// Device is a physical unit attached to a site.
type Device struct {
	DeviceID         string           `json:"device_id"`
	SiteID           string           `json:"site_id"`
	BoxID            string           `json:"box_id,omitempty"`
	Label            string           `json:"label"`
	Version          string           `json:"version,omitempty"`
	Status           Status           `json:"status,omitempty"`
	Settings         Settings         `json:"settings,omitempty"`
	DeviceDefinition DeviceDefinition `json:"device_definition"`
}

// Category classifies the device from its definition label.
func (d *Device) Category() Category {
	return CategoryOf(d.DeviceDefinition.Label)
}

// DeviceDefinition is the vendor metadata describing a device model.
type DeviceDefinition struct {
	DeviceDefinitionID string `json:"device_definition_id"`
	Label              string `json:"label"`
	Type               string `json:"type,omitempty"`
	DeviceType         string `json:"device_type,omitempty"`
}

// Acknowledgement is the API response to a write. The API usually answers
// with the ID of the task that applies the change.
type Acknowledgement map[string]any

// TaskID returns the task_id field, or "" if absent.
func (a Acknowledgement) TaskID() string {
	id, _ := a["task_id"].(string)
	return id
}

// listResponse is the envelope of every list endpoint.
type listResponse[T any] struct {
	Items *[]T `json:"items"`
}
