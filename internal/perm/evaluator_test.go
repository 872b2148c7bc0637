package perm_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/instructorhub/internal/identity"
	"github.com/skyops/instructorhub/internal/perm"
)

func newEvaluator() *perm.Evaluator {
	return perm.NewEvaluator(perm.NewAllowlist(
		[]string{"admin", "chief@skyops.example"},
		[]string{"superadmin"},
	))
}

func instructorWith(apps identity.Grants) *identity.Instructor {
	return &identity.Instructor{
		ID:         uuid.New(),
		EmployeeID: "i-1042",
		Email:      "i1042@skyops.example",
		Apps:       apps,
	}
}

func TestEvaluator_HasAppAccess(t *testing.T) {
	t.Parallel()

	eval := newEvaluator()

	tests := []struct {
		name        string
		ins         *identity.Instructor
		app         identity.App
		wantGranted bool
		wantReason  perm.Reason
	}{
		{
			name:        "nil identity denied",
			ins:         nil,
			app:         identity.AppTasks,
			wantGranted: false,
			wantReason:  perm.ReasonNoIdentity,
		},
		{
			name:        "allow-listed employee id granted with empty grants",
			ins:         &identity.Instructor{EmployeeID: "admin"},
			app:         identity.AppTasks,
			wantGranted: true,
			wantReason:  perm.ReasonPrivileged,
		},
		{
			name:        "allow-listed email granted",
			ins:         &identity.Instructor{Email: "chief@skyops.example"},
			app:         identity.AppRoster,
			wantGranted: true,
			wantReason:  perm.ReasonPrivileged,
		},
		{
			name:        "stored access true granted",
			ins:         instructorWith(identity.Grants{identity.AppSMS: {Access: true, ViewOnly: true}}),
			app:         identity.AppSMS,
			wantGranted: true,
			wantReason:  perm.ReasonGranted,
		},
		{
			name: "access false denies regardless of finer grants",
			ins: instructorWith(identity.Grants{
				identity.AppOralTest: {Access: false, ViewOnly: false, Pages: []identity.Page{identity.PageQuestions}},
			}),
			app:         identity.AppOralTest,
			wantGranted: false,
			wantReason:  perm.ReasonNoAppAccess,
		},
		{
			name:        "absent entry denied",
			ins:         instructorWith(identity.Grants{identity.AppSMS: {Access: true}}),
			app:         identity.AppRoster,
			wantGranted: false,
			wantReason:  perm.ReasonNoAppAccess,
		},
		{
			name:        "nil grants map denied",
			ins:         instructorWith(nil),
			app:         identity.AppTasks,
			wantGranted: false,
			wantReason:  perm.ReasonNoAppAccess,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := eval.HasAppAccess(tt.ins, tt.app)
			assert.Equal(t, tt.wantGranted, d.Granted)
			assert.Equal(t, tt.wantReason, d.Reason)
		})
	}
}

func TestEvaluator_CanEdit(t *testing.T) {
	t.Parallel()

	eval := newEvaluator()

	tests := []struct {
		name string
		ins  *identity.Instructor
		app  identity.App
		want bool
	}{
		{
			name: "view only denies edit but keeps access",
			ins:  instructorWith(identity.Grants{identity.AppSMS: {Access: true, ViewOnly: true}}),
			app:  identity.AppSMS,
			want: false,
		},
		{
			name: "full access allows edit",
			ins:  instructorWith(identity.Grants{identity.AppTasks: {Access: true, ViewOnly: false}}),
			app:  identity.AppTasks,
			want: true,
		},
		{
			name: "no app access denies edit even without view_only",
			ins:  instructorWith(identity.Grants{identity.AppTasks: {Access: false, ViewOnly: false}}),
			app:  identity.AppTasks,
			want: false,
		},
		{
			name: "privileged identity edits everything",
			ins:  &identity.Instructor{EmployeeID: "admin"},
			app:  identity.AppMdafaat,
			want: true,
		},
		{
			name: "nil identity denied",
			ins:  nil,
			app:  identity.AppTasks,
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, eval.CanEdit(tt.ins, tt.app))
		})
	}
}

func TestEvaluator_HasPageAccess(t *testing.T) {
	t.Parallel()

	eval := newEvaluator()
	ins := instructorWith(identity.Grants{
		identity.AppOralTest: {Access: true, ViewOnly: false, Pages: []identity.Page{identity.PageQuestions}},
	})

	t.Run("granted page", func(t *testing.T) {
		t.Parallel()
		d := eval.HasPageAccess(ins, identity.AppOralTest, identity.PageQuestions)
		assert.True(t, d.Granted)
	})

	t.Run("ungranted page denied", func(t *testing.T) {
		t.Parallel()
		d := eval.HasPageAccess(ins, identity.AppOralTest, identity.PageUsers)
		assert.False(t, d.Granted)
		assert.Equal(t, perm.ReasonNoPageAccess, d.Reason)
	})

	t.Run("pages irrelevant without app access", func(t *testing.T) {
		t.Parallel()
		denied := instructorWith(identity.Grants{
			identity.AppOralTest: {Access: false, Pages: []identity.Page{identity.PageQuestions}},
		})
		d := eval.HasPageAccess(denied, identity.AppOralTest, identity.PageQuestions)
		assert.False(t, d.Granted)
		assert.Equal(t, perm.ReasonNoAppAccess, d.Reason)
	})

	t.Run("privileged identity granted every page", func(t *testing.T) {
		t.Parallel()
		admin := &identity.Instructor{EmployeeID: "admin"}
		d := eval.HasPageAccess(admin, identity.AppOralTest, identity.PageResults)
		assert.True(t, d.Granted)
	})

	t.Run("nil identity denied with no identity reason", func(t *testing.T) {
		t.Parallel()
		d := eval.HasPageAccess(nil, identity.AppOralTest, identity.PageQuestions)
		assert.False(t, d.Granted)
		assert.Equal(t, perm.ReasonNoIdentity, d.Reason)
	})
}

func TestEvaluator_AccessiblePages(t *testing.T) {
	t.Parallel()

	eval := newEvaluator()

	t.Run("empty without app access", func(t *testing.T) {
		t.Parallel()
		ins := instructorWith(nil)
		assert.Empty(t, eval.AccessiblePages(ins, identity.AppOralTest))
	})

	t.Run("full closed set for privileged identity", func(t *testing.T) {
		t.Parallel()
		admin := &identity.Instructor{Email: "chief@skyops.example"}
		assert.Equal(t, identity.KnownPages(identity.AppOralTest),
			eval.AccessiblePages(admin, identity.AppOralTest))
	})

	t.Run("stored pages intersected with closed set in declared order", func(t *testing.T) {
		t.Parallel()
		ins := instructorWith(identity.Grants{
			identity.AppOralTest: {
				Access: true,
				Pages:  []identity.Page{identity.PageResults, "bogus_page", identity.PageQuestions},
			},
		})
		got := eval.AccessiblePages(ins, identity.AppOralTest)
		assert.Equal(t, []identity.Page{identity.PageQuestions, identity.PageResults}, got)
	})

	t.Run("result is always a subset of the closed set", func(t *testing.T) {
		t.Parallel()
		ins := instructorWith(identity.Grants{
			identity.AppSMS: {Access: true, Pages: []identity.Page{"made_up", identity.PageHazards}},
		})
		known := identity.KnownPages(identity.AppSMS)
		for _, p := range eval.AccessiblePages(ins, identity.AppSMS) {
			assert.Contains(t, known, p)
		}
	})
}

func TestEvaluator_MeetsLevel(t *testing.T) {
	t.Parallel()

	eval := newEvaluator()

	assert.True(t, eval.MeetsLevel(&identity.Instructor{AuthLevel: 3}, 3))
	assert.True(t, eval.MeetsLevel(&identity.Instructor{AuthLevel: 5}, 3))
	assert.False(t, eval.MeetsLevel(&identity.Instructor{AuthLevel: 2}, 3))
	// Absent identity is treated as level zero.
	assert.False(t, eval.MeetsLevel(nil, 1))
	assert.True(t, eval.MeetsLevel(nil, 0))
}

func TestEvaluator_Idempotence(t *testing.T) {
	t.Parallel()

	eval := newEvaluator()
	ins := instructorWith(identity.Grants{
		identity.AppOralTest: {Access: true, ViewOnly: true, Pages: []identity.Page{identity.PageQuestions}},
	})

	first := eval.HasPageAccess(ins, identity.AppOralTest, identity.PageQuestions)
	second := eval.HasPageAccess(ins, identity.AppOralTest, identity.PageQuestions)
	require.Equal(t, first, second)

	assert.Equal(t,
		eval.AccessiblePages(ins, identity.AppOralTest),
		eval.AccessiblePages(ins, identity.AppOralTest))
}

func TestEvaluator_ConcurrentUse(t *testing.T) {
	t.Parallel()

	eval := newEvaluator()
	identities := []*identity.Instructor{
		nil,
		{EmployeeID: "admin"},
		instructorWith(identity.Grants{identity.AppTasks: {Access: true}}),
	}

	done := make(chan struct{})
	for n := 0; n < 8; n++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for n2 := 0; n2 < 200; n2++ {
				for _, ins := range identities {
					eval.HasAppAccess(ins, identity.AppTasks)
					eval.CanEdit(ins, identity.AppTasks)
					eval.AccessiblePages(ins, identity.AppOralTest)
				}
			}
		}()
	}
	for n := 0; n < 8; n++ {
		<-done
	}
}

func TestAllowlist_Tiers(t *testing.T) {
	t.Parallel()

	eval := newEvaluator()

	admin := &identity.Instructor{EmployeeID: "admin"}
	super := &identity.Instructor{EmployeeID: "superadmin"}
	regular := instructorWith(nil)

	assert.True(t, eval.IsPrivileged(admin))
	assert.False(t, eval.IsSuper(admin))

	// Super implies privileged.
	assert.True(t, eval.IsPrivileged(super))
	assert.True(t, eval.IsSuper(super))

	assert.False(t, eval.IsPrivileged(regular))
	assert.False(t, eval.IsSuper(regular))
	assert.False(t, eval.IsPrivileged(nil))
}
