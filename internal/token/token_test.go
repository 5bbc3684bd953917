package token

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/arvandy/storefront/internal/config"
	"github.com/arvandy/storefront/internal/constants"
	inErrors "github.com/arvandy/storefront/internal/errors"
)

func newTestIssuer(accessTTL, refreshTTL time.Duration) Issuer {
	return NewIssuer(config.Token{
		SecretKey:  "test-secret-key",
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	})
}

func TestIssueAndVerify(t *testing.T) {
	issuer := newTestIssuer(time.Minute, time.Hour)
	userID := uuid.New()

	pair, err := issuer.Issue(userID, true)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := issuer.Verify(context.Background(), pair.Access, constants.TokenTypeAccess)
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, constants.TokenTypeAccess, claims.TokenType)
	assert.True(t, claims.Staff)

	claims, err = issuer.Verify(context.Background(), pair.Refresh, constants.TokenTypeRefresh)
	assert.NoError(t, err)
	assert.Equal(t, constants.TokenTypeRefresh, claims.TokenType)
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	issuer := newTestIssuer(time.Minute, time.Hour)

	pair, err := issuer.Issue(uuid.New(), false)
	assert.NoError(t, err)

	_, err = issuer.Verify(context.Background(), pair.Refresh, constants.TokenTypeAccess)
	assert.ErrorIs(t, err, inErrors.ErrTokenInvalid)

	_, err = issuer.Verify(context.Background(), pair.Access, constants.TokenTypeRefresh)
	assert.ErrorIs(t, err, inErrors.ErrTokenInvalid)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := newTestIssuer(-time.Minute, time.Hour)

	pair, err := issuer.Issue(uuid.New(), false)
	assert.NoError(t, err)

	_, err = issuer.Verify(context.Background(), pair.Access, constants.TokenTypeAccess)
	assert.ErrorIs(t, err, inErrors.ErrTokenInvalid)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	issuer := newTestIssuer(time.Minute, time.Hour)
	forged := NewIssuer(config.Token{
		SecretKey:  "another-secret-key",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})

	pair, err := forged.Issue(uuid.New(), false)
	assert.NoError(t, err)

	_, err = issuer.Verify(context.Background(), pair.Access, constants.TokenTypeAccess)
	assert.ErrorIs(t, err, inErrors.ErrTokenInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := newTestIssuer(time.Minute, time.Hour)

	_, err := issuer.Verify(context.Background(), "not-a-token", constants.TokenTypeAccess)
	assert.ErrorIs(t, err, inErrors.ErrTokenInvalid)
}

func TestRefreshRotatesPair(t *testing.T) {
	issuer := newTestIssuer(time.Minute, time.Hour)
	userID := uuid.New()

	pair, err := issuer.Issue(userID, true)
	assert.NoError(t, err)

	rotated, err := issuer.Refresh(context.Background(), pair.Refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, rotated.Access)
	assert.NotEmpty(t, rotated.Refresh)

	claims, err := issuer.Verify(context.Background(), rotated.Access, constants.TokenTypeAccess)
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.True(t, claims.Staff)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	issuer := newTestIssuer(time.Minute, time.Hour)

	pair, err := issuer.Issue(uuid.New(), false)
	assert.NoError(t, err)

	_, err = issuer.Refresh(context.Background(), pair.Access)
	assert.ErrorIs(t, err, inErrors.ErrTokenInvalid)
}
