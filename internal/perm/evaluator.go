package perm

import (
	"github.com/skyops/instructorhub/internal/identity"
)

// Reason is a stable machine-readable code explaining a decision.
type Reason string

const (
	ReasonGranted      Reason = "granted"
	ReasonPrivileged   Reason = "privileged"
	ReasonNoIdentity   Reason = "no_identity"
	ReasonNoAppAccess  Reason = "no_app_access"
	ReasonNoPageAccess Reason = "no_page_access"
)

// Decision is the outcome of a capability evaluation.
type Decision struct {
	Granted bool
	Reason  Reason
}

var (
	denyNoIdentity   = Decision{Granted: false, Reason: ReasonNoIdentity}
	denyNoAppAccess  = Decision{Granted: false, Reason: ReasonNoAppAccess}
	denyNoPageAccess = Decision{Granted: false, Reason: ReasonNoPageAccess}
	grantPrivileged  = Decision{Granted: true, Reason: ReasonPrivileged}
	granted          = Decision{Granted: true, Reason: ReasonGranted}
)

// Evaluator computes access decisions over identity snapshots. It holds
// only the immutable allow-list, so a single instance serves any number
// of concurrent requests.
type Evaluator struct {
	allow *Allowlist
}

// NewEvaluator creates an Evaluator consulting the given allow-list. A nil
// allow-list means no identity is privileged.
func NewEvaluator(allow *Allowlist) *Evaluator {
	return &Evaluator{allow: allow}
}

// HasAppAccess decides whether the instructor may use the application at
// all. Privileged identities are granted unconditionally; otherwise the
// stored entry's access flag decides, with absent entries denying.
func (e *Evaluator) HasAppAccess(ins *identity.Instructor, app identity.App) Decision {
	if ins == nil {
		return denyNoIdentity
	}
	if e.allow.IsPrivileged(ins) {
		return grantPrivileged
	}
	if !ins.Apps.Get(app).Access {
		return denyNoAppAccess
	}
	return granted
}

// CanEdit reports whether the instructor may mutate data within the
// application. Access is a precondition: view_only is irrelevant when the
// app itself is inaccessible.
func (e *Evaluator) CanEdit(ins *identity.Instructor, app identity.App) bool {
	if !e.HasAppAccess(ins, app).Granted {
		return false
	}
	if e.allow.IsPrivileged(ins) {
		return true
	}
	return !ins.Apps.Get(app).ViewOnly
}

// HasPageAccess decides whether the instructor may use a specific page
// within an application. App access is a precondition; privileged
// identities are granted every page.
func (e *Evaluator) HasPageAccess(ins *identity.Instructor, app identity.App, page identity.Page) Decision {
	d := e.HasAppAccess(ins, app)
	if !d.Granted {
		return d
	}
	if d.Reason == ReasonPrivileged {
		return d
	}
	// Unknown page names never match a stored grant, so they deny here.
	if !ins.Apps.Get(app).HasPage(page) {
		return denyNoPageAccess
	}
	return granted
}

// AccessiblePages returns the pages the instructor may use within the
// application, in the closed set's declared order. Empty without app
// access; the full closed set for privileged identities; otherwise the
// stored grants intersected with the closed set.
func (e *Evaluator) AccessiblePages(ins *identity.Instructor, app identity.App) []identity.Page {
	d := e.HasAppAccess(ins, app)
	if !d.Granted {
		return nil
	}
	known := identity.KnownPages(app)
	if d.Reason == ReasonPrivileged {
		return known
	}
	entry := ins.Apps.Get(app)
	var out []identity.Page
	for _, p := range known {
		if entry.HasPage(p) {
			out = append(out, p)
		}
	}
	return out
}

// MeetsLevel reports whether the instructor's authentication level meets
// the threshold. This gate is independent of app permissions; callers
// needing both must check both. An absent identity is level zero.
func (e *Evaluator) MeetsLevel(ins *identity.Instructor, threshold int) bool {
	if ins == nil {
		return threshold <= 0
	}
	return ins.AuthLevel >= threshold
}

// IsPrivileged reports whether the instructor is on the privileged
// allow-list tier.
func (e *Evaluator) IsPrivileged(ins *identity.Instructor) bool {
	return e.allow.IsPrivileged(ins)
}

// IsSuper reports whether the instructor is on the super allow-list tier.
func (e *Evaluator) IsSuper(ins *identity.Instructor) bool {
	return e.allow.IsSuper(ins)
}
