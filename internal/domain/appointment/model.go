package appointment

import "time"

// Status is the appointment lifecycle state. The API accepts any
// transition between states; only the scheduler treats canceled
// appointments specially (they never conflict).
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

var validStatuses = map[Status]bool{
	StatusScheduled: true,
	StatusCompleted: true,
	StatusCanceled:  true,
}

func (s Status) Valid() bool { return validStatuses[s] }

// Appointment is a booked time interval for a patient with a provider,
// optionally in a room. An empty Room means unassigned. StartTime is
// always strictly before EndTime; CreatedAt is set once at creation.
type Appointment struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patientId"`
	ProviderID string    `json:"providerId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     Status    `json:"status"`
	Room       string    `json:"room,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Duration is the booked interval length.
func (a Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}
