package model

import "strings"

// ParseStatus maps the backend's "estado" field to the canonical status.
// The backend is inconsistent and sends either a numeric code or a
// Spanish label depending on the endpoint; both forms are accepted here
// and nowhere else.
func ParseStatus(raw string) (ContractStatus, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return StatusUnknown, false
	}
	switch strings.ToLower(trimmed) {
	case "0", "activo", "active":
		return StatusActive, true
	case "1", "por vencer", "porvencer", "expiring":
		return StatusExpiringSoon, true
	case "2", "vencido", "expired":
		return StatusExpired, true
	default:
		return StatusUnknown, false
	}
}

// StatusCode is the numeric wire form the backend expects on writes.
func StatusCode(s ContractStatus) string {
	switch s {
	case StatusActive:
		return "0"
	case StatusExpiringSoon:
		return "1"
	case StatusExpired:
		return "2"
	default:
		return ""
	}
}
