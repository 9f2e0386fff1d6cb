// Package categories holds the closed, application-defined set of expense
// labels. The set is enforced at input time only; stored records may carry any
// category string.
package categories

import "strings"

// Default returns the built-in category labels.
func Default() []string {
	return []string{
		"Food",
		"Rent",
		"Transport",
		"Shopping",
		"Bills",
		"Health",
		"Entertainment",
		"Education",
		"Others",
	}
}

// Service provides lookup over the configured category set.
type Service struct {
	names []string
	set   map[string]struct{}
}

// NewService creates a Service from a list of labels. Blank and duplicate
// labels are dropped; order is preserved.
func NewService(names []string) *Service {
	s := &Service{set: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := s.set[n]; ok {
			continue
		}
		s.set[n] = struct{}{}
		s.names = append(s.names, n)
	}
	return s
}

// All returns every label in configured order.
func (s *Service) All() []string {
	return append([]string(nil), s.names...)
}

// Exists reports whether name is in the set. Matching is exact and
// case-sensitive, the same way the ledger groups categories.
func (s *Service) Exists(name string) bool {
	_, ok := s.set[name]
	return ok
}

// Suggest returns the configured label that matches name case-insensitively,
// if any. It lets callers point out "food" vs "Food" without normalizing.
func (s *Service) Suggest(name string) (string, bool) {
	for _, n := range s.names {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return n, true
		}
	}
	return "", false
}
