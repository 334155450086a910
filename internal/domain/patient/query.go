package patient

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Query describes one patient-list request. Filters are AND-combined;
// invalid enum values are dropped rather than erroring, so a bad filter
// widens the result instead of failing the request.
type Query struct {
	Search      string
	Status      string
	RiskLevel   string
	ProviderID  string
	HasUpcoming *bool
	SortBy      string
	SortOrder   string
}

const defaultSortBy = "lastName"

// stringAccessors maps the allow-listed sortBy keys that use the generic
// comparator (numeric when both sides parse as numbers, case-folded
// string otherwise) to typed field accessors. Keys with semantic
// comparators live in comparatorFor instead.
var stringAccessors = map[string]func(Patient) string{
	"id":                func(p Patient) string { return p.ID },
	"mrn":               func(p Patient) string { return p.MRN },
	"primaryProviderId": func(p Patient) string { return p.PrimaryProviderID },
	"firstName":         func(p Patient) string { return p.FirstName },
}

func foldCompare(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// dobMillis parses a YYYY-MM-DD date for sorting. Unparsable values sort
// as the epoch.
func dobMillis(dob string) int64 {
	t, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// comparatorFor resolves a sortBy key to its comparator. Keys outside the
// allow-list return nil and the caller falls back to the default sort.
func comparatorFor(sortBy string) func(a, b Patient) int {
	switch sortBy {
	case "lastName":
		return func(a, b Patient) int {
			if cmp := foldCompare(a.LastName, b.LastName); cmp != 0 {
				return cmp
			}
			return foldCompare(a.FirstName, b.FirstName)
		}
	case "dob":
		return func(a, b Patient) int {
			return compareInt64(dobMillis(a.Dob), dobMillis(b.Dob))
		}
	case "createdAt":
		return func(a, b Patient) int {
			return compareInt64(a.CreatedAt.UnixMilli(), b.CreatedAt.UnixMilli())
		}
	case "riskLevel":
		return func(a, b Patient) int {
			return riskRank[a.RiskLevel] - riskRank[b.RiskLevel]
		}
	case "status":
		return func(a, b Patient) int {
			return statusRank[a.Status] - statusRank[b.Status]
		}
	}
	accessor, ok := stringAccessors[sortBy]
	if !ok {
		return nil
	}
	return func(a, b Patient) int {
		av, bv := accessor(a), accessor(b)
		an, aerr := strconv.ParseFloat(av, 64)
		bn, berr := strconv.ParseFloat(bv, 64)
		if aerr == nil && berr == nil {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
		return foldCompare(av, bv)
	}
}

func (q Query) matchesSearch(p Patient) bool {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	if search == "" {
		return true
	}
	fullName := strings.ToLower(p.FirstName + " " + p.LastName)
	return strings.Contains(fullName, search) ||
		strings.Contains(strings.ToLower(p.MRN), search) ||
		strings.Contains(strings.ToLower(p.Dob), search)
}

func (q Query) matches(p Patient, upcoming map[string]bool) bool {
	if !q.matchesSearch(p) {
		return false
	}
	if s := Status(q.Status); s.Valid() && p.Status != s {
		return false
	}
	if pid := strings.TrimSpace(q.ProviderID); pid != "" && p.PrimaryProviderID != pid {
		return false
	}
	if q.HasUpcoming != nil && upcoming[p.ID] != *q.HasUpcoming {
		return false
	}
	if r := RiskLevel(q.RiskLevel); r.Valid() && p.RiskLevel != r {
		return false
	}
	return true
}

// Run filters and sorts a snapshot of the patient collection. upcoming is
// the set of patient ids with a future appointment, precomputed by the
// caller. Pagination happens after this, on the returned slice.
func (q Query) Run(patients []Patient, upcoming map[string]bool) []Patient {
	filtered := make([]Patient, 0, len(patients))
	for _, p := range patients {
		if q.matches(p, upcoming) {
			filtered = append(filtered, p)
		}
	}

	cmp := comparatorFor(strings.TrimSpace(q.SortBy))
	if cmp == nil {
		cmp = comparatorFor(defaultSortBy)
	}
	desc := q.SortOrder == "desc"
	sort.SliceStable(filtered, func(i, j int) bool {
		c := cmp(filtered[i], filtered[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return filtered
}
