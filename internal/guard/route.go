package guard

import (
	"github.com/skyops/instructorhub/internal/identity"
	"github.com/skyops/instructorhub/internal/perm"
)

// RouteDecision is the tri-state outcome of a UI navigation check.
// Pending is distinct from Redirect so the UI never flashes a redirect
// while the session is still resolving.
type RouteDecision int

const (
	// RoutePending means the identity is still loading; render a neutral
	// pending state, never the protected content.
	RoutePending RouteDecision = iota
	// RouteAllow means the identity may see the protected content.
	RouteAllow
	// RouteRedirect means access is denied; navigate to RedirectTo.
	RouteRedirect
)

// RouteResult is the outcome of a route guard evaluation.
type RouteResult struct {
	Decision   RouteDecision
	RedirectTo string
}

// SessionState is the UI session's view of the current identity: either
// still loading, or resolved to an identity (possibly nil after logout).
type SessionState struct {
	Loading  bool
	Identity *identity.Instructor
}

// RouteGuard produces navigation decisions for protected routes. Denials
// redirect silently to the fallback route.
type RouteGuard struct {
	eval     *perm.Evaluator
	fallback string
}

// NewRouteGuard creates a RouteGuard redirecting denied navigations to
// the fallback route.
func NewRouteGuard(eval *perm.Evaluator, fallback string) *RouteGuard {
	return &RouteGuard{eval: eval, fallback: fallback}
}

func (g *RouteGuard) decide(granted bool) RouteResult {
	if granted {
		return RouteResult{Decision: RouteAllow}
	}
	return RouteResult{Decision: RouteRedirect, RedirectTo: g.fallback}
}

// ForApp decides navigation to a route requiring application access.
func (g *RouteGuard) ForApp(s SessionState, app identity.App) RouteResult {
	if s.Loading {
		return RouteResult{Decision: RoutePending}
	}
	return g.decide(g.eval.HasAppAccess(s.Identity, app).Granted)
}

// ForPage decides navigation to a route requiring a page-level grant.
func (g *RouteGuard) ForPage(s SessionState, app identity.App, page identity.Page) RouteResult {
	if s.Loading {
		return RouteResult{Decision: RoutePending}
	}
	return g.decide(g.eval.HasPageAccess(s.Identity, app, page).Granted)
}

// ForLevel decides navigation to a route gated by authentication level.
func (g *RouteGuard) ForLevel(s SessionState, threshold int) RouteResult {
	if s.Loading {
		return RouteResult{Decision: RoutePending}
	}
	return g.decide(g.eval.MeetsLevel(s.Identity, threshold))
}

// ForSuper decides navigation to routes reserved for the super tier.
func (g *RouteGuard) ForSuper(s SessionState) RouteResult {
	if s.Loading {
		return RouteResult{Decision: RoutePending}
	}
	return g.decide(g.eval.IsSuper(s.Identity))
}
