package appointment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ValidationError marks input the caller can fix; the handler maps it to
// a 400 with the message as the error payload.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// PatientDirectory and ProviderDirectory are the referential-integrity
// lookups the service needs. They are satisfied by the patient and
// provider repositories, wired in main.
type PatientDirectory interface {
	Exists(ctx context.Context, id string) bool
}

type ProviderDirectory interface {
	Exists(ctx context.Context, id string) bool
}

type Service struct {
	repo      Repository
	patients  PatientDirectory
	providers ProviderDirectory
}

func NewService(repo Repository, patients PatientDirectory, providers ProviderDirectory) *Service {
	return &Service{repo: repo, patients: patients, providers: providers}
}

// CreateRequest carries raw POST fields. Dates stay strings so the
// service can distinguish missing from unparsable input.
type CreateRequest struct {
	ProviderID string `json:"providerId"`
	PatientID  string `json:"patientId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Status     string `json:"status"`
	Room       string `json:"room"`
}

// UpdateRequest carries a partial PUT body; nil means field not provided.
type UpdateRequest struct {
	ProviderID *string `json:"providerId"`
	PatientID  *string `json:"patientId"`
	StartTime  *string `json:"startTime"`
	EndTime    *string `json:"endTime"`
	Status     *string `json:"status"`
	Room       *string `json:"room"`
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ListWindow returns appointments whose start lies in [start, end],
// optionally narrowed to a provider and/or room, ascending by start time.
func (s *Service) ListWindow(ctx context.Context, start, end time.Time, providerID, room string) ([]Appointment, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Appointment, 0, len(all))
	for _, a := range all {
		if a.StartTime.Before(start) || a.StartTime.After(end) {
			continue
		}
		if providerID != "" && a.ProviderID != providerID {
			continue
		}
		if room != "" && a.Room != room {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

// ListByPatient returns a patient's appointments ascending by start time.
func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]Appointment, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Appointment, 0)
	for _, a := range all {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Appointment, error) {
	if strings.TrimSpace(req.ProviderID) == "" {
		return nil, invalidf("providerId is required")
	}
	if strings.TrimSpace(req.PatientID) == "" {
		return nil, invalidf("patientId is required")
	}
	if !s.providers.Exists(ctx, req.ProviderID) {
		return nil, invalidf("Unknown providerId")
	}
	if !s.patients.Exists(ctx, req.PatientID) {
		return nil, invalidf("Unknown patientId")
	}

	start, okStart := parseDate(req.StartTime)
	end, okEnd := parseDate(req.EndTime)
	if !okStart || !okEnd {
		return nil, invalidf("startTime and endTime are required (ISO date strings).")
	}
	if !start.Before(end) {
		return nil, invalidf("startTime must be before endTime.")
	}

	// Absent or out-of-enum status quietly defaults to scheduled.
	status := Status(req.Status)
	if !status.Valid() {
		status = StatusScheduled
	}

	return s.repo.Create(ctx, Appointment{
		ProviderID: req.ProviderID,
		PatientID:  req.PatientID,
		StartTime:  start,
		EndTime:    end,
		Status:     status,
		Room:       strings.TrimSpace(req.Room),
	})
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Appointment, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var upd Update

	if req.ProviderID != nil {
		pid := strings.TrimSpace(*req.ProviderID)
		if pid == "" {
			return nil, invalidf("Invalid providerId")
		}
		if !s.providers.Exists(ctx, pid) {
			return nil, invalidf("Unknown providerId")
		}
		upd.ProviderID = &pid
	}

	if req.PatientID != nil {
		pid := strings.TrimSpace(*req.PatientID)
		if pid == "" {
			return nil, invalidf("Invalid patientId")
		}
		if !s.patients.Exists(ctx, pid) {
			return nil, invalidf("Unknown patientId")
		}
		upd.PatientID = &pid
	}

	if req.StartTime != nil {
		start, ok := parseDate(*req.StartTime)
		if !ok {
			return nil, invalidf("Invalid startTime")
		}
		upd.StartTime = &start
	}

	if req.EndTime != nil {
		end, ok := parseDate(*req.EndTime)
		if !ok {
			return nil, invalidf("Invalid endTime")
		}
		upd.EndTime = &end
	}

	if req.Status != nil {
		status := Status(*req.Status)
		if !status.Valid() {
			return nil, invalidf("Invalid status")
		}
		upd.Status = &status
	}

	if req.Room != nil {
		room := strings.TrimSpace(*req.Room)
		upd.Room = &room
	}

	// Re-check the interval invariant with the would-be-effective values.
	effectiveStart := existing.StartTime
	if upd.StartTime != nil {
		effectiveStart = *upd.StartTime
	}
	effectiveEnd := existing.EndTime
	if upd.EndTime != nil {
		effectiveEnd = *upd.EndTime
	}
	if !effectiveStart.Before(effectiveEnd) {
		return nil, invalidf("startTime must be before endTime.")
	}

	return s.repo.Update(ctx, id, upd)
}

// Delete removes the appointment if present. The returned bool reports
// whether a removal actually happened; the API responds success either
// way (idempotent delete).
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Remove(ctx, id)
}

// UpcomingPatientIDs returns the set of patient ids that have a
// non-canceled appointment starting strictly after now. The patient
// query engine uses it for the hasUpcoming filter.
func (s *Service) UpcomingPatientIDs(ctx context.Context, now time.Time) (map[string]bool, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	upcoming := make(map[string]bool)
	for _, a := range all {
		if a.Status == StatusCanceled {
			continue
		}
		if a.StartTime.After(now) {
			upcoming[a.PatientID] = true
		}
	}
	return upcoming, nil
}
