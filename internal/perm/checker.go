package perm

import (
	"github.com/skyops/instructorhub/internal/identity"
)

// Checker binds the evaluator to one identity snapshot and exposes each
// capability as a named boolean query. A nil snapshot answers false to
// everything. Checkers are cheap value-like objects; create one per
// request from the session's current identity.
type Checker struct {
	ins  *identity.Instructor
	eval *Evaluator
}

// For creates a Checker for the given identity snapshot.
func (e *Evaluator) For(ins *identity.Instructor) *Checker {
	return &Checker{ins: ins, eval: e}
}

// Identity returns the bound snapshot; nil while the session is unresolved.
func (c *Checker) Identity() *identity.Instructor { return c.ins }

func (c *Checker) CanViewRoster() bool {
	return c.eval.HasAppAccess(c.ins, identity.AppRoster).Granted
}

// CanEditRoster covers editing other instructors' schedules as well; the
// roster module does not distinguish own from others' shifts.
func (c *Checker) CanEditRoster() bool {
	return c.eval.CanEdit(c.ins, identity.AppRoster)
}

func (c *Checker) CanViewTasks() bool {
	return c.eval.HasAppAccess(c.ins, identity.AppTasks).Granted
}

func (c *Checker) CanCreateTasks() bool {
	return c.eval.CanEdit(c.ins, identity.AppTasks)
}

func (c *Checker) CanViewOralTest() bool {
	return c.eval.HasAppAccess(c.ins, identity.AppOralTest).Granted
}

func (c *Checker) CanEditOralTest() bool {
	return c.eval.CanEdit(c.ins, identity.AppOralTest)
}

// CanEditOralTestPage reports edit rights on one oral-test sub-page:
// the page must be granted and the app must not be view-only.
func (c *Checker) CanEditOralTestPage(page identity.Page) bool {
	return c.eval.HasPageAccess(c.ins, identity.AppOralTest, page).Granted &&
		c.eval.CanEdit(c.ins, identity.AppOralTest)
}

func (c *Checker) CanViewSafetyReports() bool {
	return c.eval.HasAppAccess(c.ins, identity.AppSMS).Granted
}

func (c *Checker) CanFileSafetyReports() bool {
	return c.eval.CanEdit(c.ins, identity.AppSMS)
}

func (c *Checker) CanViewAds() bool {
	return c.eval.HasAppAccess(c.ins, identity.AppAds).Granted
}

func (c *Checker) CanViewMdafaat() bool {
	return c.eval.HasAppAccess(c.ins, identity.AppMdafaat).Granted
}

// IsPrivileged reports membership in the privileged allow-list tier.
func (c *Checker) IsPrivileged() bool {
	return c.eval.IsPrivileged(c.ins)
}

// IsSuper reports membership in the super allow-list tier.
func (c *Checker) IsSuper() bool {
	return c.eval.IsSuper(c.ins)
}

// CanEditHandicapLevels is restricted to the super tier regardless of
// stored app permissions.
func (c *Checker) CanEditHandicapLevels() bool {
	return c.eval.IsSuper(c.ins)
}

// CanAccessControlPanel is restricted to the super tier regardless of
// stored app permissions.
func (c *Checker) CanAccessControlPanel() bool {
	return c.eval.IsSuper(c.ins)
}

// AccessibleOralTestPages lists the oral-test pages the identity may use.
func (c *Checker) AccessibleOralTestPages() []identity.Page {
	return c.eval.AccessiblePages(c.ins, identity.AppOralTest)
}

// MeetsLevel reports whether the identity's authentication level meets
// the threshold.
func (c *Checker) MeetsLevel(threshold int) bool {
	return c.eval.MeetsLevel(c.ins, threshold)
}
