package token

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arvandy/storefront/internal/config"
	"github.com/arvandy/storefront/internal/constants"
	inErrors "github.com/arvandy/storefront/internal/errors"
	"github.com/arvandy/storefront/internal/log"
	"github.com/arvandy/storefront/internal/otel"
)

type Claims struct {
	TokenType string `json:"typ"`
	Staff     bool   `json:"staff"`
	jwt.RegisteredClaims
}

type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Issuer mints and verifies the access/refresh token pair. Access tokens are
// short-lived; refresh tokens rotate on use.
type Issuer struct {
	config config.Token
}

func NewIssuer(cfg config.Token) Issuer {
	return Issuer{config: cfg}
}

func (i Issuer) Issue(userID uuid.UUID, staff bool) (Pair, error) {
	access, err := i.sign(userID, staff, constants.TokenTypeAccess, i.config.AccessTTL)
	if err != nil {
		return Pair{}, fmt.Errorf("failed signing access token with error=%w", err)
	}
	refresh, err := i.sign(userID, staff, constants.TokenTypeRefresh, i.config.RefreshTTL)
	if err != nil {
		return Pair{}, fmt.Errorf("failed signing refresh token with error=%w", err)
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

func (i Issuer) sign(
	userID uuid.UUID,
	staff bool,
	tokenType string,
	ttl time.Duration,
) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		TokenType: tokenType,
		Staff:     staff,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{constants.AudienceUser},
			Issuer:    constants.AppName,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString([]byte(i.config.SecretKey))
}

// Verify parses and validates a token of the given type (access or refresh)
// and returns its claims.
func (i Issuer) Verify(c context.Context, raw string, tokenType string) (*Claims, error) {
	c, span := otel.Tracer.Start(c, "Issuer Verify")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Issuer Verify").
		Logger()

	claims := &Claims{}
	jwtToken, err := jwt.ParseWithClaims(raw,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(i.config.SecretKey), nil
		},
		jwt.WithAudience(constants.AudienceUser),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(constants.AppName),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing claims with error=%w", inErrors.ErrTokenInvalid)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if !jwtToken.Valid || claims.TokenType != tokenType {
		err = fmt.Errorf("failed validating token with error=%w", inErrors.ErrTokenInvalid)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	return claims, nil
}

// Refresh validates a refresh token and issues a fresh pair, rotating the
// refresh token.
func (i Issuer) Refresh(c context.Context, raw string) (Pair, error) {
	claims, err := i.Verify(c, raw, constants.TokenTypeRefresh)
	if err != nil {
		return Pair{}, err
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Pair{}, fmt.Errorf("failed parsing subject=%s with error=%w", claims.Subject, inErrors.ErrTokenInvalid)
	}
	return i.Issue(userID, claims.Staff)
}
