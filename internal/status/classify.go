// Package status derives a contract's lifecycle state from its
// expiration date. The stored backend status is trusted only when the
// expiration date is absent, since a stored status drifts as time
// passes while the date does not.
package status

import (
	"math"
	"time"

	"github.com/nurpe/contratos-dashboard/internal/model"
)

// DefaultWarningWindowDays flags contracts expiring within a month.
const DefaultWarningWindowDays = 30

// DaysRemaining counts whole days until expiration, rounding up. An
// expiration later today yields 1, one within the past day yields 0,
// and one past yesterday yields a negative value.
func DaysRemaining(expiration, now time.Time) int {
	return int(math.Ceil(expiration.Sub(now).Hours() / 24))
}

// Classify maps an expiration date to a lifecycle status. Expiring
// today counts as ExpiringSoon, not Expired: the contract is still
// valid through the end of the day.
func Classify(expiration, now time.Time, warningWindowDays int) model.ContractStatus {
	days := DaysRemaining(expiration, now)
	switch {
	case days < 0:
		return model.StatusExpired
	case days <= warningWindowDays:
		return model.StatusExpiringSoon
	default:
		return model.StatusActive
	}
}

// ForContract classifies a contract, falling back to its stored status
// when no expiration date is set.
func ForContract(c model.Contract, now time.Time, warningWindowDays int) model.ContractStatus {
	if c.ExpiresAt.IsZero() {
		return c.Status
	}
	return Classify(c.ExpiresAt, now, warningWindowDays)
}
