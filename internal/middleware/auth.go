package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arvandy/storefront/internal/constants"
	inErrors "github.com/arvandy/storefront/internal/errors"
	inHttp "github.com/arvandy/storefront/internal/http"
	"github.com/arvandy/storefront/internal/log"
	"github.com/arvandy/storefront/internal/token"
)

// Auth verifies the Bearer access token and attaches its claims to the
// request context.
func Auth(issuer token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).With().Str(log.KeyTag, "middleware Auth").Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get("Authorization")
			if authorization == "" || !strings.HasPrefix(strings.ToLower(authorization), "bearer ") {
				logger.Error().
					Err(inErrors.ErrEmptyAuth).
					Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteErrorResponse(c, w, inErrors.ErrEmptyAuth)
				return
			}

			raw := authorization[len("bearer "):]
			claims, err := issuer.Verify(c, raw, constants.TokenTypeAccess)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteErrorResponse(c, w, inErrors.ErrTokenInvalid)
				return
			}

			c = token.AttachClaims(c, claims)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}

// Staff gates catalog mutations; it must run after Auth.
func Staff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context()).With().Str(log.KeyTag, "middleware Staff").Logger()
		c := logger.WithContext(r.Context())

		claims, err := token.ClaimsFromContext(c)
		if err != nil {
			logger.Error().Err(err).Msg(err.Error())
			inHttp.WriteErrorResponse(c, w, err)
			return
		}
		if !claims.Staff {
			logger.Error().
				Err(inErrors.ErrNotStaff).
				Msg(inErrors.ErrNotStaff.Error())
			inHttp.WriteErrorResponse(c, w, inErrors.ErrNotStaff)
			return
		}

		next.ServeHTTP(w, r)
	})
}
