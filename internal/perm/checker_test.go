package perm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/instructorhub/internal/identity"
	"github.com/skyops/instructorhub/internal/perm"
)

func TestChecker_NilIdentityDeniesEverything(t *testing.T) {
	t.Parallel()

	c := newEvaluator().For(nil)

	assert.False(t, c.CanViewRoster())
	assert.False(t, c.CanEditRoster())
	assert.False(t, c.CanViewTasks())
	assert.False(t, c.CanCreateTasks())
	assert.False(t, c.CanViewOralTest())
	assert.False(t, c.CanEditOralTest())
	assert.False(t, c.CanViewSafetyReports())
	assert.False(t, c.CanFileSafetyReports())
	assert.False(t, c.IsPrivileged())
	assert.False(t, c.IsSuper())
	assert.False(t, c.CanEditHandicapLevels())
	assert.False(t, c.CanAccessControlPanel())
	assert.Empty(t, c.AccessibleOralTestPages())
	assert.Nil(t, c.Identity())
}

func TestChecker_ViewOnlySMS(t *testing.T) {
	t.Parallel()

	ins := instructorWith(identity.Grants{
		identity.AppSMS: {Access: true, ViewOnly: true},
	})
	c := newEvaluator().For(ins)

	assert.True(t, c.CanViewSafetyReports())
	assert.False(t, c.CanFileSafetyReports())
}

func TestChecker_OralTestPageEditing(t *testing.T) {
	t.Parallel()

	eval := newEvaluator()

	editor := eval.For(instructorWith(identity.Grants{
		identity.AppOralTest: {Access: true, ViewOnly: false, Pages: []identity.Page{identity.PageQuestions}},
	}))
	assert.True(t, editor.CanEditOralTestPage(identity.PageQuestions))
	assert.False(t, editor.CanEditOralTestPage(identity.PageUsers))

	// A granted page is still not editable when the app is view-only.
	viewer := eval.For(instructorWith(identity.Grants{
		identity.AppOralTest: {Access: true, ViewOnly: true, Pages: []identity.Page{identity.PageQuestions}},
	}))
	assert.False(t, viewer.CanEditOralTestPage(identity.PageQuestions))
}

func TestChecker_SuperOnlyCapabilities(t *testing.T) {
	t.Parallel()

	eval := newEvaluator()

	// Privileged but not super: every app capability, no control panel.
	admin := eval.For(&identity.Instructor{EmployeeID: "admin"})
	assert.True(t, admin.CanEditRoster())
	assert.True(t, admin.CanCreateTasks())
	assert.False(t, admin.CanEditHandicapLevels())
	assert.False(t, admin.CanAccessControlPanel())

	super := eval.For(&identity.Instructor{EmployeeID: "superadmin"})
	assert.True(t, super.CanEditHandicapLevels())
	assert.True(t, super.CanAccessControlPanel())

	// Stored control_panel grants alone do not open super capabilities.
	stored := eval.For(instructorWith(identity.Grants{
		identity.AppControlPanel: {Access: true, ViewOnly: false},
	}))
	assert.False(t, stored.CanEditHandicapLevels())
	assert.False(t, stored.CanAccessControlPanel())
}

func TestChecker_Context(t *testing.T) {
	t.Parallel()

	c := newEvaluator().For(&identity.Instructor{EmployeeID: "admin"})

	ctx := perm.WithChecker(context.Background(), c)
	got, ok := perm.CheckerFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, c, got)

	_, ok = perm.CheckerFromContext(context.Background())
	assert.False(t, ok)
}
