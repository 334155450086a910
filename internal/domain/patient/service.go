package patient

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/carehub/carehub/pkg/pagination"
)

// ValidationError is a client error; the handler maps it to a 400 with
// the message as the error payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ProviderDirectory answers provider existence checks for
// primaryProviderId updates.
type ProviderDirectory interface {
	Exists(ctx context.Context, id string) bool
}

// UpcomingSource reports which patients have a future appointment. The
// appointment service satisfies it; the indirection keeps this package
// from importing that one.
type UpcomingSource interface {
	UpcomingPatientIDs(ctx context.Context, now time.Time) (map[string]bool, error)
}

// UpdateRequest is the PUT /patients/:id body. Absent fields stay nil
// and leave the record untouched.
type UpdateRequest struct {
	FirstName         *string `json:"firstName"`
	LastName          *string `json:"lastName"`
	Dob               *string `json:"dob"`
	Status            *string `json:"status"`
	RiskLevel         *string `json:"riskLevel"`
	PrimaryProviderID *string `json:"primaryProviderId"`
}

var dobPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type Service struct {
	repo      Repository
	providers ProviderDirectory
	upcoming  UpcomingSource
	now       func() time.Time
}

func NewService(repo Repository, providers ProviderDirectory, upcoming UpcomingSource) *Service {
	return &Service{
		repo:      repo,
		providers: providers,
		upcoming:  upcoming,
		now:       time.Now,
	}
}

// List runs the query engine over the current collection snapshot and
// paginates the result.
func (s *Service) List(ctx context.Context, q Query, p pagination.Params) (*pagination.Response, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	upcoming := map[string]bool{}
	if q.HasUpcoming != nil {
		upcoming, err = s.upcoming.UpcomingPatientIDs(ctx, s.now())
		if err != nil {
			return nil, err
		}
	}

	matched := q.Run(all, upcoming)
	start, end := p.Slice(len(matched))
	return pagination.NewResponse(matched[start:end], p, len(matched)), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// Update validates and applies a partial patient update. Field checks
// run in declaration order and the first failure wins, so error payloads
// stay single-message.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Patient, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	var upd Update

	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if name == "" {
			return nil, invalidf("Invalid firstName")
		}
		upd.FirstName = &name
	}

	if req.LastName != nil {
		name := strings.TrimSpace(*req.LastName)
		if name == "" {
			return nil, invalidf("Invalid lastName")
		}
		upd.LastName = &name
	}

	if req.Dob != nil {
		if !dobPattern.MatchString(*req.Dob) {
			return nil, invalidf("Invalid dob")
		}
		upd.Dob = req.Dob
	}

	if req.Status != nil {
		status := Status(*req.Status)
		if !status.Valid() {
			return nil, invalidf("Invalid status")
		}
		upd.Status = &status
	}

	if req.RiskLevel != nil {
		risk := RiskLevel(*req.RiskLevel)
		if !risk.Valid() {
			return nil, invalidf("Invalid riskLevel")
		}
		upd.RiskLevel = &risk
	}

	if req.PrimaryProviderID != nil {
		pid := strings.TrimSpace(*req.PrimaryProviderID)
		if pid == "" {
			return nil, invalidf("Invalid primaryProviderId")
		}
		if !s.providers.Exists(ctx, pid) {
			return nil, invalidf("Unknown primaryProviderId")
		}
		upd.PrimaryProviderID = &pid
	}

	return s.repo.Apply(ctx, id, upd)
}
