package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skyops/instructorhub/internal/guard"
	"github.com/skyops/instructorhub/internal/identity"
	"github.com/skyops/instructorhub/internal/perm"
)

func newRouteGuard() *guard.RouteGuard {
	eval := perm.NewEvaluator(perm.NewAllowlist([]string{"admin"}, []string{"superadmin"}))
	return guard.NewRouteGuard(eval, "/login")
}

func TestRouteGuard_ForApp(t *testing.T) {
	t.Parallel()

	g := newRouteGuard()
	granted := &identity.Instructor{
		Apps: identity.Grants{identity.AppRoster: {Access: true, ViewOnly: true}},
	}

	tests := []struct {
		name         string
		state        guard.SessionState
		wantDecision guard.RouteDecision
		wantRedirect string
	}{
		{
			name:         "loading session is pending, not redirected",
			state:        guard.SessionState{Loading: true},
			wantDecision: guard.RoutePending,
		},
		{
			name:         "resolved and granted allows",
			state:        guard.SessionState{Identity: granted},
			wantDecision: guard.RouteAllow,
		},
		{
			name:         "resolved nil identity redirects to fallback",
			state:        guard.SessionState{},
			wantDecision: guard.RouteRedirect,
			wantRedirect: "/login",
		},
		{
			name: "resolved without grant redirects",
			state: guard.SessionState{
				Identity: &identity.Instructor{EmployeeID: "i-3001"},
			},
			wantDecision: guard.RouteRedirect,
			wantRedirect: "/login",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := g.ForApp(tt.state, identity.AppRoster)
			assert.Equal(t, tt.wantDecision, res.Decision)
			assert.Equal(t, tt.wantRedirect, res.RedirectTo)
		})
	}
}

func TestRouteGuard_ForLevel(t *testing.T) {
	t.Parallel()

	g := newRouteGuard()

	res := g.ForLevel(guard.SessionState{Loading: true}, 2)
	assert.Equal(t, guard.RoutePending, res.Decision)

	res = g.ForLevel(guard.SessionState{Identity: &identity.Instructor{AuthLevel: 2}}, 2)
	assert.Equal(t, guard.RouteAllow, res.Decision)

	res = g.ForLevel(guard.SessionState{Identity: &identity.Instructor{AuthLevel: 1}}, 2)
	assert.Equal(t, guard.RouteRedirect, res.Decision)
}

func TestRouteGuard_ForSuper(t *testing.T) {
	t.Parallel()

	g := newRouteGuard()

	res := g.ForSuper(guard.SessionState{Identity: &identity.Instructor{EmployeeID: "superadmin"}})
	assert.Equal(t, guard.RouteAllow, res.Decision)

	res = g.ForSuper(guard.SessionState{Identity: &identity.Instructor{EmployeeID: "admin"}})
	assert.Equal(t, guard.RouteRedirect, res.Decision)
	assert.Equal(t, "/login", res.RedirectTo)
}

func TestRouteGuard_ForPage(t *testing.T) {
	t.Parallel()

	g := newRouteGuard()
	ins := &identity.Instructor{
		Apps: identity.Grants{
			identity.AppOralTest: {Access: true, Pages: []identity.Page{identity.PageQuestions}},
		},
	}

	res := g.ForPage(guard.SessionState{Identity: ins}, identity.AppOralTest, identity.PageQuestions)
	assert.Equal(t, guard.RouteAllow, res.Decision)

	res = g.ForPage(guard.SessionState{Identity: ins}, identity.AppOralTest, identity.PageUsers)
	assert.Equal(t, guard.RouteRedirect, res.Decision)
}
