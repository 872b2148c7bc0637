package perm

import (
	"strings"

	"github.com/skyops/instructorhub/internal/identity"
)

// Allowlist is the static table of privileged identity markers. A marker
// matches an instructor's employee id or email. The table is immutable
// after construction and safe for concurrent use.
//
// Two tiers exist: privileged markers bypass all stored app permissions;
// super markers additionally unlock handicap-level edits and the control
// panel. Super implies privileged.
type Allowlist struct {
	privileged map[string]struct{}
	super      map[string]struct{}
}

// NewAllowlist builds an Allowlist from marker lists. Markers are matched
// case-insensitively; empty entries are dropped.
func NewAllowlist(privileged, super []string) *Allowlist {
	a := &Allowlist{
		privileged: make(map[string]struct{}, len(privileged)+len(super)),
		super:      make(map[string]struct{}, len(super)),
	}
	for _, m := range privileged {
		if m = normalizeMarker(m); m != "" {
			a.privileged[m] = struct{}{}
		}
	}
	for _, m := range super {
		if m = normalizeMarker(m); m != "" {
			a.privileged[m] = struct{}{}
			a.super[m] = struct{}{}
		}
	}
	return a
}

// IsPrivileged reports whether the instructor is on the privileged tier.
func (a *Allowlist) IsPrivileged(ins *identity.Instructor) bool {
	return a != nil && ins != nil && matches(a.privileged, ins)
}

// IsSuper reports whether the instructor is on the super tier.
func (a *Allowlist) IsSuper(ins *identity.Instructor) bool {
	return a != nil && ins != nil && matches(a.super, ins)
}

func matches(set map[string]struct{}, ins *identity.Instructor) bool {
	if _, ok := set[normalizeMarker(ins.EmployeeID)]; ok && ins.EmployeeID != "" {
		return true
	}
	if _, ok := set[normalizeMarker(ins.Email)]; ok && ins.Email != "" {
		return true
	}
	return false
}

func normalizeMarker(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
