package domain

import (
	"slices"
	"strings"
)

// Allowlist is the read-only set of app ids permitted to authenticate.
type Allowlist struct {
	appIDs map[string]struct{}
}

// NewAllowlist builds an Allowlist from app ids, ignoring blank entries.
func NewAllowlist(appIDs []string) *Allowlist {
	a := &Allowlist{appIDs: make(map[string]struct{}, len(appIDs))}
	for _, id := range appIDs {
		if id = strings.TrimSpace(id); id != "" {
			a.appIDs[id] = struct{}{}
		}
	}
	return a
}

// Contains reports whether appID is allowed. Matching is exact and case-sensitive.
func (a *Allowlist) Contains(appID string) bool {
	if a == nil {
		return false
	}
	_, ok := a.appIDs[appID]
	return ok
}

// AppIDs returns the allowed app ids in sorted order.
func (a *Allowlist) AppIDs() []string {
	if a == nil {
		return nil
	}
	ids := make([]string, 0, len(a.appIDs))
	for id := range a.appIDs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
