package engine

import (
	"strings"
	"time"

	"github.com/eXemoumen/datascrapfront/internal/dashboard/model"
)

// DateLayout is the calendar-date encoding used by announcement dates
// and the date-range filter bounds.
const DateLayout = "2006-01-02"

// Filter applies the criteria to a record snapshot and returns the
// matching records in their original relative order. It is a pure
// function: neither input is mutated, and a nil or empty snapshot
// yields an empty (non-nil) result.
func Filter(records []model.Announcement, c model.FilterCriteria) []model.Announcement {
	out := make([]model.Announcement, 0, len(records))
	for _, r := range records {
		if Matches(r, c) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record satisfies every active
// sub-predicate of the criteria. Sub-predicates are combined with AND;
// a field left at its default ("" or "all") matches everything.
func Matches(r model.Announcement, c model.FilterCriteria) bool {
	return matchSearch(r, c.Search) &&
		matchExact(r.AnnouncementType, c.Type) &&
		matchExact(r.Location, c.Location) &&
		matchSubstring(r.Products, c.Product) &&
		matchStatus(r.Checked, c.Status) &&
		matchDateFrom(r.AnnouncementDate, c.DateFrom) &&
		matchDateTo(r.AnnouncementDate, c.DateTo) &&
		matchCompany(r.CompanyName, c.Company)
}

func matchSearch(r model.Announcement, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	for _, field := range []string{r.Title, r.Description, r.Location, r.Products, r.CompanyName} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func matchExact(value, selected string) bool {
	if selected == "" || selected == "all" {
		return true
	}
	return value == selected
}

// matchSubstring covers the product filter: a case-insensitive match
// against the raw comma-separated products string, deliberately not a
// per-token comparison.
func matchSubstring(value, selected string) bool {
	if selected == "" || selected == "all" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(selected))
}

func matchStatus(checked int, status string) bool {
	switch status {
	case model.StatusChecked:
		return checked == 1
	case model.StatusUnchecked:
		return checked == 0
	default:
		return true
	}
}

// Date bounds are inclusive. A date that fails to parse — on either
// side — fails the bound check, so records with broken dates drop out
// of the view while a date filter is active.
func matchDateFrom(date, from string) bool {
	if from == "" {
		return true
	}
	d, err1 := time.Parse(DateLayout, date)
	f, err2 := time.Parse(DateLayout, from)
	if err1 != nil || err2 != nil {
		return false
	}
	return !d.Before(f)
}

func matchDateTo(date, to string) bool {
	if to == "" {
		return true
	}
	d, err1 := time.Parse(DateLayout, date)
	t, err2 := time.Parse(DateLayout, to)
	if err1 != nil || err2 != nil {
		return false
	}
	return !d.After(t)
}

func matchCompany(company, selected string) bool {
	if selected == "" {
		return true
	}
	return strings.Contains(strings.ToLower(company), strings.ToLower(selected))
}
