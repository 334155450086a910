package vitals

import "time"

// VitalReading is one blood-pressure and heart-rate measurement.
type VitalReading struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patientId"`
	RecordedAt time.Time `json:"recordedAt"`
	Systolic   int       `json:"systolic"`
	Diastolic  int       `json:"diastolic"`
	HeartRate  int       `json:"heartRate"`
}
