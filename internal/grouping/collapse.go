package grouping

import (
	"encoding/json"
	"slices"
)

// CollapseSet is an immutable set of group keys. Every change produces a new
// set, so a view built from one snapshot never sees a later toggle.
// The zero value is an empty set.
type CollapseSet struct {
	keys map[string]struct{}
}

func NewCollapseSet(keys ...string) CollapseSet {
	if len(keys) == 0 {
		return CollapseSet{}
	}
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return CollapseSet{keys: m}
}

func (s CollapseSet) Has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

func (s CollapseSet) Len() int {
	return len(s.keys)
}

// Keys returns the members in sorted order.
func (s CollapseSet) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Toggle returns a copy of s with key's membership flipped.
func (s CollapseSet) Toggle(key string) CollapseSet {
	m := make(map[string]struct{}, len(s.keys)+1)
	for k := range s.keys {
		m[k] = struct{}{}
	}
	if _, ok := m[key]; ok {
		delete(m, key)
	} else {
		m[key] = struct{}{}
	}
	return CollapseSet{keys: m}
}

func (s CollapseSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Keys())
}

func (s *CollapseSet) UnmarshalJSON(data []byte) error {
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*s = NewCollapseSet(keys...)
	return nil
}

// ToggleDateCollapse flips a date key. Keys for groups that no longer exist
// are kept; they simply never match.
func ToggleDateCollapse(collapsed CollapseSet, dateKey string) CollapseSet {
	return collapsed.Toggle(dateKey)
}

// ToggleCompanyCollapse flips a company key built with CompanyKey.
func ToggleCompanyCollapse(collapsed CollapseSet, companyKey string) CollapseSet {
	return collapsed.Toggle(companyKey)
}
