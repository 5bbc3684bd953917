package token

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	inErrors "github.com/arvandy/storefront/internal/errors"
)

type claimsKey struct{}

func AttachClaims(c context.Context, claims *Claims) context.Context {
	return context.WithValue(c, claimsKey{}, claims)
}

func ClaimsFromContext(c context.Context) (*Claims, error) {
	claims, ok := c.Value(claimsKey{}).(*Claims)
	if !ok {
		return nil, inErrors.ErrTokenInvalid
	}
	return claims, nil
}

func UserIdFromContext(c context.Context) (uuid.UUID, error) {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf(
			"failed parsing subject=%s with error=%w",
			claims.Subject,
			inErrors.ErrTokenInvalid,
		)
	}
	return userID, nil
}
