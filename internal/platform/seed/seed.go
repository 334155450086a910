// Package seed generates the deterministic synthetic dataset that backs
// the in-process stores. The same seed always yields the same dataset,
// which keeps demos and end-to-end tests reproducible.
package seed

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/carehub/carehub/internal/domain/appointment"
	"github.com/carehub/carehub/internal/domain/note"
	"github.com/carehub/carehub/internal/domain/notification"
	"github.com/carehub/carehub/internal/domain/patient"
	"github.com/carehub/carehub/internal/domain/provider"
	"github.com/carehub/carehub/internal/domain/vitals"
)

// Config controls dataset generation. Zero counts fall back to the
// defaults the dashboard was designed around.
type Config struct {
	Seed             uint64
	Now              time.Time
	PatientCount     int
	AppointmentCount int
}

// Dataset is everything the stores get seeded with.
type Dataset struct {
	Providers     []provider.Provider
	Patients      []patient.Patient
	Appointments  []appointment.Appointment
	Notes         []note.Note
	Vitals        []vitals.VitalReading
	Notifications []notification.Notification
}

const (
	defaultPatients     = 50
	defaultAppointments = 120
	scheduleDays        = 14
	vitalsPerPatient    = 8
)

var noteAuthors = []string{
	"Dr. Chen",
	"Nurse Patel",
	"Dr. Ramirez",
	"Dr. Brooks",
	"Nurse Alvarez",
}

var noteTexts = []string{
	"Reviewed labs; stable with current regimen.",
	"Discussed lifestyle adjustments and follow-up plan.",
	"Patient reports improved symptoms since last visit.",
	"Medication adherence confirmed; no adverse effects.",
	"Care plan updated; monitor vitals weekly.",
}

var roomPool = []string{"Room 101", "Room 202", "Room 305", "Telehealth", "Lab A"}

// Providers returns the fixed provider roster. Work days are 1=Monday
// through 7=Sunday.
func Providers() []provider.Provider {
	return []provider.Provider{
		{ID: "prov-001", Name: "Dr. Maya Chen", Specialty: "Internal Medicine",
			WorkDays: []int{1, 2, 3, 4, 5}, StartHour: 8, EndHour: 16},
		{ID: "prov-002", Name: "Dr. Lucas Ramirez", Specialty: "Pediatrics",
			WorkDays: []int{2, 3, 4, 5, 6}, StartHour: 10, EndHour: 18},
		{ID: "prov-003", Name: "Dr. Aisha Patel", Specialty: "Cardiology",
			WorkDays: []int{1, 3, 5}, StartHour: 12, EndHour: 20},
		{ID: "prov-004", Name: "Dr. Owen Brooks", Specialty: "Orthopedics",
			WorkDays: []int{2, 4}, StartHour: 7, EndHour: 15},
		{ID: "prov-005", Name: "Dr. Sofia Alvarez", Specialty: "Family Medicine",
			WorkDays: []int{6, 7}, StartHour: 9, EndHour: 17},
	}
}

// Generate builds the full dataset from the config's seed.
func Generate(cfg Config) *Dataset {
	if cfg.PatientCount <= 0 {
		cfg.PatientCount = defaultPatients
	}
	if cfg.AppointmentCount <= 0 {
		cfg.AppointmentCount = defaultAppointments
	}
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}

	g := &generator{faker: gofakeit.New(cfg.Seed), now: cfg.Now}

	ds := &Dataset{Providers: Providers()}
	ds.Patients = g.patients(cfg.PatientCount, ds.Providers)
	ds.Appointments = g.appointments(cfg.AppointmentCount, ds.Providers, ds.Patients)
	ds.Notes = g.notes(ds.Patients)
	ds.Vitals = g.vitals(ds.Patients)
	ds.Notifications = g.notifications(ds.Patients)
	return ds
}

type generator struct {
	faker *gofakeit.Faker
	now   time.Time
}

func (g *generator) shuffleStrings(items []string) {
	for i := len(items) - 1; i > 0; i-- {
		j := g.faker.Number(0, i)
		items[i], items[j] = items[j], items[i]
	}
}

func (g *generator) dateBetween(start, end time.Time) time.Time {
	span := end.Sub(start)
	return start.Add(time.Duration(g.faker.Number(0, int(span.Seconds()))) * time.Second)
}

// patients draws statuses and risk levels from fixed pools so the
// distribution stays stable regardless of the patient count: 80%
// active / 14% inactive / 6% deceased, 44/36/16/4 across risk levels.
func (g *generator) patients(count int, providers []provider.Provider) []patient.Patient {
	statusPool := make([]string, 0, count)
	riskPool := make([]string, 0, count)
	for i := 0; i < count; i++ {
		switch {
		case i < count*40/50:
			statusPool = append(statusPool, string(patient.StatusActive))
		case i < count*47/50:
			statusPool = append(statusPool, string(patient.StatusInactive))
		default:
			statusPool = append(statusPool, string(patient.StatusDeceased))
		}
		switch {
		case i < count*22/50:
			riskPool = append(riskPool, string(patient.RiskLow))
		case i < count*40/50:
			riskPool = append(riskPool, string(patient.RiskMedium))
		case i < count*48/50:
			riskPool = append(riskPool, string(patient.RiskHigh))
		default:
			riskPool = append(riskPool, string(patient.RiskCritical))
		}
	}
	g.shuffleStrings(statusPool)
	g.shuffleStrings(riskPool)

	dobStart := g.now.AddDate(-85, 0, 0)
	dobEnd := g.now.AddDate(-18, 0, 0)
	createdStart := g.now.AddDate(-2, 0, 0)

	out := make([]patient.Patient, count)
	for i := range out {
		out[i] = patient.Patient{
			ID:                fmt.Sprintf("pat-%03d", i+1),
			FirstName:         g.faker.FirstName(),
			LastName:          g.faker.LastName(),
			Dob:               g.dateBetween(dobStart, dobEnd).Format("2006-01-02"),
			MRN:               fmt.Sprintf("MRN-%d", 100001+i),
			Status:            patient.Status(statusPool[i]),
			RiskLevel:         patient.RiskLevel(riskPool[i]),
			PrimaryProviderID: providers[g.faker.Number(0, len(providers)-1)].ID,
			CreatedAt:         g.dateBetween(createdStart, g.now),
		}
	}
	return out
}

type slot struct {
	providerID string
	start      time.Time
}

// appointments fills provider work-schedule slots over a two-week
// window. Past slots are mostly completed, future slots mostly
// scheduled, and deceased patients get none.
func (g *generator) appointments(count int, providers []provider.Provider, patients []patient.Patient) []appointment.Appointment {
	var pool []slot
	for _, p := range providers {
		for d := 0; d < scheduleDays; d++ {
			day := g.now.AddDate(0, 0, d)
			weekday := int(day.Weekday())
			if weekday == 0 {
				weekday = 7
			}
			if !contains(p.WorkDays, weekday) {
				continue
			}
			for hour := p.StartHour; hour < p.EndHour; hour++ {
				pool = append(pool, slot{
					providerID: p.ID,
					start:      time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location()),
				})
			}
		}
	}
	// Shuffle so bookings spread across providers and days.
	for i := len(pool) - 1; i > 0; i-- {
		j := g.faker.Number(0, i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	eligible := make([]patient.Patient, 0, len(patients))
	for _, p := range patients {
		if p.Status != patient.StatusDeceased {
			eligible = append(eligible, p)
		}
	}

	var out []appointment.Appointment
	for i := 0; i < count && i < len(pool); i++ {
		s := pool[i]
		p := eligible[g.faker.Number(0, len(eligible)-1)]
		end := s.start.Add(30 * time.Minute)

		var status appointment.Status
		if end.Before(g.now) {
			status = appointment.StatusCompleted
			if g.faker.Number(1, 10) == 1 {
				status = appointment.StatusCanceled
			}
		} else {
			status = appointment.StatusScheduled
			if g.faker.Number(1, 10) == 1 {
				status = appointment.StatusCanceled
			}
		}

		// Roughly three in five bookings get a room; the rest surface in
		// the scheduler's Unassigned lane.
		room := ""
		if g.faker.Number(1, 5) <= 3 {
			room = roomPool[g.faker.Number(0, len(roomPool)-1)]
		}

		out = append(out, appointment.Appointment{
			ID:         fmt.Sprintf("appt-%04d", i+1),
			PatientID:  p.ID,
			ProviderID: s.providerID,
			StartTime:  s.start,
			EndTime:    end,
			Status:     status,
			Room:       room,
			CreatedAt:  s.start.AddDate(0, 0, -g.faker.Number(1, 14)),
		})
	}
	return out
}

func (g *generator) notes(patients []patient.Patient) []note.Note {
	var out []note.Note
	for _, p := range patients {
		count := g.faker.Number(1, 4)
		for i := 0; i < count; i++ {
			out = append(out, note.Note{
				ID:        fmt.Sprintf("note-%04d", len(out)+1),
				PatientID: p.ID,
				Author:    noteAuthors[g.faker.Number(0, len(noteAuthors)-1)],
				Text:      noteTexts[g.faker.Number(0, len(noteTexts)-1)],
				CreatedAt: g.now.AddDate(0, 0, -g.faker.Number(1, 90)),
			})
		}
	}
	return out
}

// vitals emits a fixed-length series per patient at three-day
// intervals, oldest reading first.
func (g *generator) vitals(patients []patient.Patient) []vitals.VitalReading {
	var out []vitals.VitalReading
	for _, p := range patients {
		for i := 0; i < vitalsPerPatient; i++ {
			daysAgo := (vitalsPerPatient - i) * 3
			out = append(out, vitals.VitalReading{
				ID:         fmt.Sprintf("vital-%s-%02d", p.ID, i+1),
				PatientID:  p.ID,
				RecordedAt: g.now.AddDate(0, 0, -daysAgo),
				Systolic:   g.faker.Number(110, 150),
				Diastolic:  g.faker.Number(70, 95),
				HeartRate:  g.faker.Number(60, 95),
			})
		}
	}
	return out
}

func (g *generator) notifications(patients []patient.Patient) []notification.Notification {
	if len(patients) == 0 {
		return nil
	}
	templates := []struct {
		typ   notification.Type
		title string
		body  string
	}{
		{notification.TypeAppointment, "Upcoming appointment", "An appointment starts within the hour."},
		{notification.TypePatientAlert, "Critical vitals recorded", "A patient's latest reading needs review."},
		{notification.TypeMessage, "New message from the care team", "You have an unread message."},
		{notification.TypeAppointment, "Appointment canceled", "A patient canceled an upcoming visit."},
		{notification.TypePatientAlert, "Risk level raised", "A patient was reclassified as high risk."},
		{notification.TypeMessage, "Lab results available", "New lab results are ready for review."},
	}

	out := make([]notification.Notification, len(templates))
	for i, tpl := range templates {
		p := patients[g.faker.Number(0, len(patients)-1)]
		out[i] = notification.Notification{
			ID:        fmt.Sprintf("ntf-%03d", i+1),
			Type:      tpl.typ,
			Title:     tpl.title,
			Body:      tpl.body,
			Href:      "/patients/" + p.ID,
			CreatedAt: g.now.Add(-time.Duration(g.faker.Number(1, 72)) * time.Hour),
		}
	}
	return out
}

func contains(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
