package note

import "time"

// Note is a free-text clinical note attached to a patient.
type Note struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
