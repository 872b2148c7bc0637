// Package guard enforces permission decisions at the application's two
// boundaries: API middleware that authorizes inbound requests, and route
// guards that tell the UI layer whether to render, wait, or redirect.
//
// Per request the flow is fixed: extract and verify the bearer token,
// resolve the identity record, evaluate the requested capability, then
// either inject the grant into the request context or reply with a
// structured deny. Denied requests terminate immediately; there are no
// retries.
package guard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/skyops/instructorhub/internal/httpx"
	"github.com/skyops/instructorhub/internal/identity"
	"github.com/skyops/instructorhub/internal/perm"
	"github.com/skyops/instructorhub/pkg/jwt"
)

// errUserNotFound is the deny response when a token resolves to no record.
var errUserNotFound = httpx.NewHTTPError(http.StatusNotFound, "user_not_found", "User not found")

// TokenVerifier verifies a raw token and unmarshals its claims.
type TokenVerifier interface {
	Parse(token string, claims any) error
}

// Grant is the permission result injected into the request context for
// downstream handlers once a request is authorized.
type Grant struct {
	UserID  uuid.UUID
	CanView bool
	CanEdit bool
	Pages   []identity.Page
}

// Guard authorizes API requests.
type Guard struct {
	tokens TokenVerifier
	users  identity.Lookup
	eval   *perm.Evaluator
	log    *slog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithLogger sets the guard's logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.log = l
		}
	}
}

// New creates a Guard from its collaborators: the token verifier, the
// identity lookup, and the permission evaluator.
func New(tokens TokenVerifier, users identity.Lookup, eval *perm.Evaluator, opts ...Option) *Guard {
	g := &Guard{
		tokens: tokens,
		users:  users,
		eval:   eval,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// resolve authenticates the request and returns the identity record.
// Failure modes map onto the error taxonomy: missing or malformed token
// is 401, a token for a nonexistent record is 404, and an identity
// lookup failure denies with 500 rather than ever granting.
func (g *Guard) resolve(r *http.Request) (*identity.Instructor, error) {
	token, err := jwt.FromBearerHeader(r)
	if err != nil {
		return nil, httpx.ErrUnauthorized
	}

	var claims jwt.AccessClaims
	if err := g.tokens.Parse(token, &claims); err != nil {
		return nil, httpx.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, httpx.ErrUnauthorized
	}

	ins, err := g.users.ByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return nil, errUserNotFound
		}
		g.log.ErrorContext(r.Context(), "identity lookup failed",
			"error", err, "instructor_id", userID)
		return nil, httpx.ErrInternal
	}

	return ins, nil
}

// withGrant stores the computed grant and a bound checker in the request
// context and passes control on.
func (g *Guard) withGrant(next http.Handler, w http.ResponseWriter, r *http.Request, ins *identity.Instructor, app identity.App) {
	grant := Grant{
		UserID:  ins.ID,
		CanView: true,
		CanEdit: g.eval.CanEdit(ins, app),
		Pages:   g.eval.AccessiblePages(ins, app),
	}
	ctx := WithGrant(r.Context(), grant)
	ctx = perm.WithChecker(ctx, g.eval.For(ins))
	next.ServeHTTP(w, r.WithContext(ctx))
}

// RequireApp authorizes requests against an application's access grant.
func (g *Guard) RequireApp(app identity.App) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ins, err := g.resolve(r)
			if err != nil {
				httpx.Error(w, err)
				return
			}
			if !g.eval.HasAppAccess(ins, app).Granted {
				httpx.Error(w, httpx.ErrForbidden)
				return
			}
			g.withGrant(next, w, r, ins, app)
		})
	}
}

// RequireEdit authorizes mutating requests: app access plus edit rights.
// View-only identities are denied before the handler runs.
func (g *Guard) RequireEdit(app identity.App) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ins, err := g.resolve(r)
			if err != nil {
				httpx.Error(w, err)
				return
			}
			if !g.eval.HasAppAccess(ins, app).Granted || !g.eval.CanEdit(ins, app) {
				httpx.Error(w, httpx.ErrForbidden)
				return
			}
			g.withGrant(next, w, r, ins, app)
		})
	}
}

// RequirePage authorizes requests against a page-level grant within an
// application.
func (g *Guard) RequirePage(app identity.App, page identity.Page) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ins, err := g.resolve(r)
			if err != nil {
				httpx.Error(w, err)
				return
			}
			if !g.eval.HasPageAccess(ins, app, page).Granted {
				httpx.Error(w, httpx.ErrForbidden)
				return
			}
			g.withGrant(next, w, r, ins, app)
		})
	}
}

// RequireEditPage authorizes mutating requests on a page-scoped resource:
// the page grant plus edit rights on the application.
func (g *Guard) RequireEditPage(app identity.App, page identity.Page) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ins, err := g.resolve(r)
			if err != nil {
				httpx.Error(w, err)
				return
			}
			if !g.eval.HasPageAccess(ins, app, page).Granted || !g.eval.CanEdit(ins, app) {
				httpx.Error(w, httpx.ErrForbidden)
				return
			}
			g.withGrant(next, w, r, ins, app)
		})
	}
}

// RequireLevel gates routes by authentication-level threshold. This check
// is independent of app permissions; stack it with RequireApp when a
// route needs both.
func (g *Guard) RequireLevel(threshold int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ins, err := g.resolve(r)
			if err != nil {
				httpx.Error(w, err)
				return
			}
			if !g.eval.MeetsLevel(ins, threshold) {
				httpx.Error(w, httpx.ErrForbidden)
				return
			}
			ctx := perm.WithChecker(r.Context(), g.eval.For(ins))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSuper gates routes reserved for the super allow-list tier,
// regardless of stored app permissions.
func (g *Guard) RequireSuper() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ins, err := g.resolve(r)
			if err != nil {
				httpx.Error(w, err)
				return
			}
			if !g.eval.IsSuper(ins) {
				httpx.Error(w, httpx.ErrForbidden)
				return
			}
			ctx := WithGrant(r.Context(), Grant{UserID: ins.ID, CanView: true, CanEdit: true})
			ctx = perm.WithChecker(ctx, g.eval.For(ins))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// grantCtxKey is the context key for the request's grant.
type grantCtxKey struct{}

// WithGrant stores a grant in the context.
func WithGrant(ctx context.Context, grant Grant) context.Context {
	return context.WithValue(ctx, grantCtxKey{}, grant)
}

// GrantFromContext retrieves the grant placed by the guard middleware.
func GrantFromContext(ctx context.Context) (Grant, bool) {
	grant, ok := ctx.Value(grantCtxKey{}).(Grant)
	return grant, ok
}
