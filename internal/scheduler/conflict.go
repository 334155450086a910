package scheduler

import "github.com/carehub/carehub/internal/domain/appointment"

// Overlaps reports half-open interval intersection. Touching endpoints
// (one appointment ending exactly when another starts) do not overlap.
func Overlaps(a, b appointment.Appointment) bool {
	return a.StartTime.Before(b.EndTime) && a.EndTime.After(b.StartTime)
}

// HasConflict reports whether candidate collides with any existing
// appointment. An existing appointment only competes when it is not the
// candidate itself (ignoreID), is not canceled, and shares the
// candidate's provider or a non-empty room.
//
// The result is advisory. Callers surface it and let the operator
// confirm anyway; nothing in the API layer enforces it.
func HasConflict(candidate appointment.Appointment, existing []appointment.Appointment, ignoreID string) bool {
	for _, a := range existing {
		if a.ID == ignoreID {
			continue
		}
		if a.Status == appointment.StatusCanceled {
			continue
		}
		providerClash := a.ProviderID == candidate.ProviderID
		roomClash := a.Room != "" && candidate.Room != "" && a.Room == candidate.Room
		if !providerClash && !roomClash {
			continue
		}
		if Overlaps(a, candidate) {
			return true
		}
	}
	return false
}
