package perm

import "context"

// checkerCtxKey is the context key for the request's permission checker.
type checkerCtxKey struct{}

// WithChecker stores a checker in the context.
func WithChecker(ctx context.Context, c *Checker) context.Context {
	return context.WithValue(ctx, checkerCtxKey{}, c)
}

// CheckerFromContext retrieves the request's checker.
func CheckerFromContext(ctx context.Context) (*Checker, bool) {
	c, ok := ctx.Value(checkerCtxKey{}).(*Checker)
	return c, ok
}
