package scheduler

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/carehub/carehub/internal/domain/appointment"
	"github.com/carehub/carehub/internal/domain/patient"
	"github.com/carehub/carehub/internal/domain/provider"
)

// Mode is the engine's interaction state. Exactly one mode is active at
// a time; every transition goes through an Engine method.
type Mode int

const (
	ModeIdle Mode = iota
	ModeCreating
	ModeConfirmingMove
	ModeViewingDetail
	ModeConfirmingDelete
)

type ViewMode string

const (
	ViewWeek ViewMode = "week"
	ViewDay  ViewMode = "day"
)

type GroupBy string

const (
	GroupByProvider GroupBy = "provider"
	GroupByRoom     GroupBy = "room"
)

// UnassignedColumn is the synthetic room column for appointments with no
// room.
const UnassignedColumn = "Unassigned"

// DefaultRoomPool is the canonical set of bookable rooms.
var DefaultRoomPool = []string{"Room 101", "Room 202", "Room 305", "Telehealth", "Lab A"}

// ErrConflict reports that a staged change collides with the current
// schedule. The staged change stays pending; confirming again overrides.
var ErrConflict = errors.New("scheduling conflict detected")

// ErrNothingPending reports a confirm with no staged change.
var ErrNothingPending = errors.New("nothing pending")

// AppointmentAPI is the engine's persistence port. The appointment
// service satisfies it directly; a remote client would map HTTP status
// codes onto the same errors (404 to appointment.ErrNotFound).
type AppointmentAPI interface {
	Create(ctx context.Context, req appointment.CreateRequest) (*appointment.Appointment, error)
	Update(ctx context.Context, id string, req appointment.UpdateRequest) (*appointment.Appointment, error)
	Delete(ctx context.Context, id string) error
}

// Column is one vertical lane of the calendar grid.
type Column struct {
	ID    string
	Label string
}

// Draft is the staging area for a new appointment. Nothing persists
// until CommitCreate.
type Draft struct {
	PatientID  string
	ProviderID string
	Room       string
	Start      time.Time
}

// PendingMove is a staged schedule change awaiting explicit
// confirmation. ApptID is empty for the create flow.
type PendingMove struct {
	ApptID        string
	PatientID     string
	NewStart      time.Time
	NewEnd        time.Time
	NewProviderID string
	NewRoom       string
	Conflict      bool
}

// Engine drives the interactive calendar: view navigation, the create
// and drag-to-reschedule flows, and conflict confirmation. It holds a
// local snapshot of the schedule and mutates it optimistically around
// calls to the persistence port, rolling back when persistence fails.
//
// The engine is single-threaded by design; it models one operator's
// session, not a shared resource.
type Engine struct {
	grid      Grid
	api       AppointmentAPI
	providers []provider.Provider
	patients  []patient.Patient
	rooms     []string

	appointments []appointment.Appointment

	viewMode     ViewMode
	groupBy      GroupBy
	selectedDate time.Time

	mode       Mode
	selectedID string
	deleteID   string
	draft      *Draft
	pending    *PendingMove
}

func NewEngine(grid Grid, api AppointmentAPI, providers []provider.Provider, patients []patient.Patient, appointments []appointment.Appointment) *Engine {
	return &Engine{
		grid:         grid,
		api:          api,
		providers:    providers,
		patients:     patients,
		rooms:        DefaultRoomPool,
		appointments: appointments,
		viewMode:     ViewWeek,
		groupBy:      GroupByProvider,
		selectedDate: time.Now(),
	}
}

func (e *Engine) Mode() Mode                               { return e.mode }
func (e *Engine) ViewMode() ViewMode                       { return e.viewMode }
func (e *Engine) GroupBy() GroupBy                         { return e.groupBy }
func (e *Engine) SelectedDate() time.Time                  { return e.selectedDate }
func (e *Engine) SelectedID() string                       { return e.selectedID }
func (e *Engine) Draft() *Draft                            { return e.draft }
func (e *Engine) Pending() *PendingMove                    { return e.pending }
func (e *Engine) Appointments() []appointment.Appointment  { return e.appointments }

// Refresh replaces the local schedule snapshot, typically after a
// server round trip.
func (e *Engine) Refresh(appointments []appointment.Appointment) {
	e.appointments = appointments
}

func (e *Engine) SetViewMode(v ViewMode) {
	if v == ViewDay {
		e.viewMode = ViewDay
	} else {
		e.viewMode = ViewWeek
	}
}

func (e *Engine) SetGroupBy(g GroupBy) {
	if g == GroupByRoom {
		e.groupBy = GroupByRoom
	} else {
		e.groupBy = GroupByProvider
	}
}

func (e *Engine) SetDate(d time.Time) { e.selectedDate = d }

// Navigate shifts the anchor date by offset steps: days in day view,
// weeks in week view.
func (e *Engine) Navigate(offset int) {
	if e.viewMode == ViewWeek {
		e.selectedDate = AddDays(e.selectedDate, offset*7)
	} else {
		e.selectedDate = AddDays(e.selectedDate, offset)
	}
}

// Query encodes the current view as URL query parameters so links
// reproduce the exact view.
func (e *Engine) Query() url.Values {
	v := url.Values{}
	v.Set("view", string(e.viewMode))
	v.Set("date", e.selectedDate.Format("2006-01-02"))
	v.Set("groupBy", string(e.groupBy))
	return v
}

// ApplyQuery restores view state from URL query parameters. Unknown or
// malformed values keep the current state's defaults.
func (e *Engine) ApplyQuery(v url.Values) {
	e.SetViewMode(ViewMode(v.Get("view")))
	e.SetGroupBy(GroupBy(v.Get("groupBy")))
	if raw := v.Get("date"); raw != "" {
		if d, err := time.ParseInLocation("2006-01-02", raw, e.selectedDate.Location()); err == nil {
			e.selectedDate = d
		}
	}
}

// Days returns the calendar days currently in view: the selected day,
// or the Monday-first week containing it.
func (e *Engine) Days() []time.Time {
	if e.viewMode == ViewDay {
		return []time.Time{e.selectedDate}
	}
	weekStart := StartOfWeek(e.selectedDate)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = AddDays(weekStart, i)
	}
	return days
}

// Columns derives the grid lanes for the active grouping axis. Provider
// columns follow the provider list order. Room columns are the fixed
// pool, then any room referenced by an appointment but not in the pool,
// then the synthetic Unassigned lane, deduplicated.
func (e *Engine) Columns() []Column {
	if e.groupBy == GroupByProvider {
		cols := make([]Column, len(e.providers))
		for i, p := range e.providers {
			cols[i] = Column{ID: p.ID, Label: p.Name}
		}
		return cols
	}

	seen := make(map[string]bool, len(e.rooms)+1)
	var cols []Column
	add := func(room string) {
		if room == "" || seen[room] {
			return
		}
		seen[room] = true
		cols = append(cols, Column{ID: room, Label: room})
	}
	for _, r := range e.rooms {
		add(r)
	}
	for _, a := range e.appointments {
		add(a.Room)
	}
	add(UnassignedColumn)
	return cols
}

// VisibleAppointments filters the snapshot to appointments whose start
// falls on one of the days in view. The match is by calendar day, not
// instant.
func (e *Engine) VisibleAppointments() []appointment.Appointment {
	days := e.Days()
	var out []appointment.Appointment
	for _, a := range e.appointments {
		for _, d := range days {
			if SameDay(a.StartTime, d) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// OpenCreate opens a draft for the clicked cell. Defaults: the first
// known patient, the clicked column's provider or room depending on the
// grouping axis, and the cell's mapped timestamp.
func (e *Engine) OpenCreate(day time.Time, slotInDay int, columnID string) {
	hours, minutes := e.grid.TimeFromSlot(slotInDay)
	start := CombineDateTime(day, hours, minutes)

	patientID := "pat-001"
	if len(e.patients) > 0 {
		patientID = e.patients[0].ID
	}

	providerID := columnID
	if e.groupBy != GroupByProvider {
		providerID = "prov-001"
		if len(e.providers) > 0 {
			providerID = e.providers[0].ID
		}
	}

	room := e.rooms[0]
	if e.groupBy == GroupByRoom {
		room = columnID
		if room == UnassignedColumn {
			room = ""
		}
	}

	e.draft = &Draft{
		PatientID:  patientID,
		ProviderID: providerID,
		Room:       room,
		Start:      start,
	}
	e.pending = nil
	e.selectedID = ""
	e.mode = ModeCreating
}

func (e *Engine) draftCandidate() appointment.Appointment {
	return appointment.Appointment{
		ID:         "draft-" + uuid.NewString(),
		PatientID:  e.draft.PatientID,
		ProviderID: e.draft.ProviderID,
		StartTime:  e.draft.Start,
		EndTime:    e.draft.Start.Add(time.Duration(e.grid.SlotMinutes) * time.Minute),
		Status:     appointment.StatusScheduled,
		Room:       e.draft.Room,
	}
}

// CommitCreate finishes the create flow. A conflicting draft routes
// into the same confirmation flow as a move instead of inserting; a
// clean draft persists immediately with an optimistic local insert.
func (e *Engine) CommitCreate(ctx context.Context) error {
	if e.mode != ModeCreating || e.draft == nil {
		return ErrNothingPending
	}
	candidate := e.draftCandidate()

	if HasConflict(candidate, e.appointments, "") {
		e.pending = &PendingMove{
			PatientID:     candidate.PatientID,
			NewStart:      candidate.StartTime,
			NewEnd:        candidate.EndTime,
			NewProviderID: candidate.ProviderID,
			NewRoom:       candidate.Room,
			Conflict:      true,
		}
		e.mode = ModeConfirmingMove
		return nil
	}

	return e.persistCreate(ctx, candidate)
}

// persistCreate inserts optimistically, then replaces the placeholder
// with the stored entity or removes it when persistence fails.
func (e *Engine) persistCreate(ctx context.Context, candidate appointment.Appointment) error {
	e.appointments = append([]appointment.Appointment{candidate}, e.appointments...)

	stored, err := e.api.Create(ctx, appointment.CreateRequest{
		PatientID:  candidate.PatientID,
		ProviderID: candidate.ProviderID,
		StartTime:  candidate.StartTime.Format(time.RFC3339),
		EndTime:    candidate.EndTime.Format(time.RFC3339),
		Room:       candidate.Room,
	})
	if err != nil {
		e.removeLocal(candidate.ID)
		return err
	}

	for i := range e.appointments {
		if e.appointments[i].ID == candidate.ID {
			e.appointments[i] = *stored
			break
		}
	}
	e.draft = nil
	e.pending = nil
	e.mode = ModeIdle
	return nil
}

// Drop stages a drag-to-reschedule. The appointment keeps its duration;
// provider or room is recomputed from the target column depending on
// the grouping axis. The move always requires confirmation, conflict or
// not, so the operator sees what they are about to commit.
func (e *Engine) Drop(apptID string, day time.Time, slotInDay int, columnID string) error {
	appt := e.findLocal(apptID)
	if appt == nil {
		return appointment.ErrNotFound
	}

	hours, minutes := e.grid.TimeFromSlot(slotInDay)
	newStart := CombineDateTime(day, hours, minutes)
	newEnd := newStart.Add(appt.Duration())

	newProviderID := appt.ProviderID
	newRoom := appt.Room
	if e.groupBy == GroupByProvider {
		newProviderID = columnID
	} else {
		newRoom = columnID
		if newRoom == UnassignedColumn {
			newRoom = ""
		}
	}

	candidate := *appt
	candidate.StartTime = newStart
	candidate.EndTime = newEnd
	candidate.ProviderID = newProviderID
	candidate.Room = newRoom

	e.pending = &PendingMove{
		ApptID:        apptID,
		PatientID:     appt.PatientID,
		NewStart:      newStart,
		NewEnd:        newEnd,
		NewProviderID: newProviderID,
		NewRoom:       newRoom,
		Conflict:      HasConflict(candidate, e.appointments, apptID),
	}
	e.mode = ModeConfirmingMove
	return nil
}

// ConfirmMove commits the staged change. The conflict check reruns
// against the current snapshot first: a conflict that appeared since
// staging re-prompts (ErrConflict) rather than silently committing;
// confirming again overrides. Persistence failure leaves all state
// unchanged.
func (e *Engine) ConfirmMove(ctx context.Context) error {
	if e.mode != ModeConfirmingMove || e.pending == nil {
		return ErrNothingPending
	}
	p := e.pending

	candidate := appointment.Appointment{
		ID:         p.ApptID,
		PatientID:  p.PatientID,
		ProviderID: p.NewProviderID,
		StartTime:  p.NewStart,
		EndTime:    p.NewEnd,
		Status:     appointment.StatusScheduled,
		Room:       p.NewRoom,
	}
	if !p.Conflict && HasConflict(candidate, e.appointments, p.ApptID) {
		p.Conflict = true
		return ErrConflict
	}

	if p.ApptID == "" {
		candidate.ID = "draft-" + uuid.NewString()
		return e.persistCreate(ctx, candidate)
	}

	start := p.NewStart.Format(time.RFC3339)
	end := p.NewEnd.Format(time.RFC3339)
	stored, err := e.api.Update(ctx, p.ApptID, appointment.UpdateRequest{
		StartTime:  &start,
		EndTime:    &end,
		ProviderID: &p.NewProviderID,
		Room:       &p.NewRoom,
	})
	if err != nil {
		return err
	}

	for i := range e.appointments {
		if e.appointments[i].ID == p.ApptID {
			e.appointments[i] = *stored
			break
		}
	}
	e.pending = nil
	e.draft = nil
	e.mode = ModeIdle
	return nil
}

// CancelMove discards the staged change with no network traffic.
func (e *Engine) CancelMove() {
	e.pending = nil
	if e.draft != nil {
		e.mode = ModeCreating
		return
	}
	e.mode = ModeIdle
}

// SelectAppointment opens the detail panel, discarding any open draft.
func (e *Engine) SelectAppointment(id string) error {
	if e.findLocal(id) == nil {
		return appointment.ErrNotFound
	}
	e.selectedID = id
	e.draft = nil
	e.pending = nil
	e.mode = ModeViewingDetail
	return nil
}

// ClosePanel discards any draft, staged move, or selection without
// sending anything.
func (e *Engine) ClosePanel() {
	e.selectedID = ""
	e.deleteID = ""
	e.draft = nil
	e.pending = nil
	e.mode = ModeIdle
}

// RequestDelete asks for the confirmation step before a delete goes
// out.
func (e *Engine) RequestDelete(id string) error {
	if e.findLocal(id) == nil {
		return appointment.ErrNotFound
	}
	e.deleteID = id
	e.mode = ModeConfirmingDelete
	return nil
}

// ConfirmDelete issues the delete. A not-found answer means the
// appointment is already gone and counts as success; any other failure
// leaves state unchanged.
func (e *Engine) ConfirmDelete(ctx context.Context) error {
	if e.mode != ModeConfirmingDelete || e.deleteID == "" {
		return ErrNothingPending
	}
	err := e.api.Delete(ctx, e.deleteID)
	if err != nil && !errors.Is(err, appointment.ErrNotFound) {
		return err
	}
	e.removeLocal(e.deleteID)
	e.ClosePanel()
	return nil
}

func (e *Engine) findLocal(id string) *appointment.Appointment {
	for i := range e.appointments {
		if e.appointments[i].ID == id {
			return &e.appointments[i]
		}
	}
	return nil
}

func (e *Engine) removeLocal(id string) {
	for i := range e.appointments {
		if e.appointments[i].ID == id {
			e.appointments = append(e.appointments[:i], e.appointments[i+1:]...)
			return
		}
	}
}
