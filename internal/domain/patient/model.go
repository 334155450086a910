package patient

import "time"

// Status is the patient's workflow state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeceased Status = "deceased"
)

var validStatuses = map[Status]bool{
	StatusActive:   true,
	StatusInactive: true,
	StatusDeceased: true,
}

func (s Status) Valid() bool { return validStatuses[s] }

// statusRank orders statuses by workflow progression for sorting.
var statusRank = map[Status]int{
	StatusInactive: 1,
	StatusActive:   2,
	StatusDeceased: 3,
}

// RiskLevel is the clinical risk classification.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

var validRiskLevels = map[RiskLevel]bool{
	RiskLow:      true,
	RiskMedium:   true,
	RiskHigh:     true,
	RiskCritical: true,
}

func (r RiskLevel) Valid() bool { return validRiskLevels[r] }

// riskRank orders risk levels by severity for sorting.
var riskRank = map[RiskLevel]int{
	RiskLow:      1,
	RiskMedium:   2,
	RiskHigh:     3,
	RiskCritical: 4,
}

// Patient is a patient record. Dob stays a plain YYYY-MM-DD string on the
// wire and in memory; only the query engine parses it, and then only for
// sorting.
type Patient struct {
	ID                string    `json:"id"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Dob               string    `json:"dob"`
	MRN               string    `json:"mrn"`
	Status            Status    `json:"status"`
	RiskLevel         RiskLevel `json:"riskLevel"`
	PrimaryProviderID string    `json:"primaryProviderId"`
	CreatedAt         time.Time `json:"createdAt"`
}
