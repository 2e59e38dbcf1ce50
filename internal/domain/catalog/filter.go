package catalog

import (
	"sort"
	"strings"
)

const allValues = "all"

func matchesValue(want, got string) bool {
	return want == "" || strings.EqualFold(want, allValues) || want == got
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

type CareerFilter struct {
	Query    string
	Category string
}

// Match searches name, description and subjects case-insensitively.
func (f CareerFilter) Match(c Career) bool {
	if !matchesValue(f.Category, c.Category) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	if containsFold(c.Name, q) || containsFold(c.Description, q) {
		return true
	}
	for _, s := range c.Subjects {
		if containsFold(s, q) {
			return true
		}
	}
	return false
}

func FilterCareers(careers []Career, f CareerFilter) []Career {
	out := make([]Career, 0, len(careers))
	for _, c := range careers {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

type ScholarshipFilter struct {
	Query    string
	Category string
	State    string
}

func (f ScholarshipFilter) Match(s Scholarship) bool {
	if !matchesValue(f.Category, s.Category) || !matchesValue(f.State, s.State) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return containsFold(s.Name, q) || containsFold(s.Eligibility, q) || containsFold(s.Description, q)
}

func FilterScholarships(scholarships []Scholarship, f ScholarshipFilter) []Scholarship {
	out := make([]Scholarship, 0, len(scholarships))
	for _, s := range scholarships {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// FilterUpdates keeps the given category and orders the result newest first.
func FilterUpdates(updates []Update, category string) []Update {
	out := make([]Update, 0, len(updates))
	for _, u := range updates {
		if matchesValue(category, u.Category) {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// FeaturedUpdates returns up to limit high priority updates, newest first.
func FeaturedUpdates(updates []Update, limit int) []Update {
	out := make([]Update, 0, limit)
	for _, u := range FilterUpdates(updates, allValues) {
		if len(out) == limit {
			break
		}
		if u.Priority == PriorityHigh {
			out = append(out, u)
		}
	}
	return out
}
