package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/farellandr/liveticket/internal/models"
)

var (
	ErrNoPrincipal       = errors.New("auth: caller not authenticated")
	ErrPrincipalMismatch = errors.New("auth: caller did not authorize as this identity")
)

type principalKey struct{}

func WithPrincipal(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, principalKey{}, id)
}

func PrincipalFrom(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(principalKey{}).(models.Identity)
	return id, ok && id != ""
}

// ContextVerifier accepts an identity only when it equals the principal
// authenticated for the request carried by ctx.
type ContextVerifier struct{}

func (ContextVerifier) RequireAuth(ctx context.Context, identity models.Identity) error {
	principal, ok := PrincipalFrom(ctx)
	if !ok {
		return ErrNoPrincipal
	}
	if principal != identity {
		return fmt.Errorf("%w: authenticated as %s", ErrPrincipalMismatch, principal)
	}
	return nil
}
