package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arvandy/storefront/internal/config"
	inErrors "github.com/arvandy/storefront/internal/errors"
	"github.com/arvandy/storefront/internal/repository"
	"github.com/arvandy/storefront/internal/testutil"
	"github.com/arvandy/storefront/internal/token"
	"github.com/arvandy/storefront/user/pkg/request"
)

func newUserFixture(t *testing.T, c context.Context) (*repository.Queries, UserService) {
	t.Helper()
	pool := testutil.NewTestPool(t, c)
	queries := repository.New(pool)
	issuer := token.NewIssuer(config.Token{
		SecretKey:  "test-secret-key",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
	return queries, NewUserService(pool, queries, issuer)
}

func registerRequest(username, email string) request.Register {
	return request.Register{
		Username:        username,
		Email:           email,
		Password:        "sup3rsecret",
		PasswordConfirm: "sup3rsecret",
		FirstName:       "Ada",
		LastName:        "Lovelace",
	}
}

func TestRegisterCreatesUserAndCart(t *testing.T) {
	c := context.Background()
	queries, users := newUserFixture(t, c)

	user, pair, err := users.Register(c, registerRequest("ada", "ada@example.com"))
	assert.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	cart, err := queries.FindCartByUserId(c, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, cart.UserID)

	stored, err := queries.FindUserById(c, user.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, "sup3rsecret", stored.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	c := context.Background()
	_, users := newUserFixture(t, c)

	_, _, err := users.Register(c, registerRequest("ada", "ada@example.com"))
	assert.NoError(t, err)

	_, _, err = users.Register(c, registerRequest("grace", "ada@example.com"))
	assert.ErrorIs(t, err, inErrors.ErrEmailTaken)
	assert.ErrorIs(t, err, inErrors.ErrValidation)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	c := context.Background()
	_, users := newUserFixture(t, c)

	_, _, err := users.Register(c, registerRequest("ada", "ada@example.com"))
	assert.NoError(t, err)

	_, _, err = users.Register(c, registerRequest("ada", "grace@example.com"))
	assert.ErrorIs(t, err, inErrors.ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	c := context.Background()
	_, users := newUserFixture(t, c)

	_, _, err := users.Register(c, registerRequest("ada", "ada@example.com"))
	assert.NoError(t, err)

	pair, err := users.Login(c, request.Login{Username: "ada", Password: "sup3rsecret"})
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.Access)

	_, err = users.Login(c, request.Login{Username: "ada", Password: "wrong-password"})
	assert.ErrorIs(t, err, inErrors.ErrInvalidCredentials)
	assert.ErrorIs(t, err, inErrors.ErrUnauthorized)

	// The email works as a login identifier too.
	pair, err = users.Login(c, request.Login{Username: "ada@example.com", Password: "sup3rsecret"})
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.Access)

	_, err = users.Login(c, request.Login{Username: "nobody", Password: "sup3rsecret"})
	assert.ErrorIs(t, err, inErrors.ErrInvalidCredentials)
}

func TestRefreshRotation(t *testing.T) {
	c := context.Background()
	_, users := newUserFixture(t, c)

	_, pair, err := users.Register(c, registerRequest("ada", "ada@example.com"))
	assert.NoError(t, err)

	rotated, err := users.Refresh(c, request.RefreshToken{Refresh: pair.Refresh})
	assert.NoError(t, err)
	assert.NotEmpty(t, rotated.Access)
	assert.NotEmpty(t, rotated.Refresh)

	_, err = users.Refresh(c, request.RefreshToken{Refresh: pair.Access})
	assert.ErrorIs(t, err, inErrors.ErrTokenInvalid)
}

func TestUpdateProfilePartial(t *testing.T) {
	c := context.Background()
	_, users := newUserFixture(t, c)

	user, _, err := users.Register(c, registerRequest("ada", "ada@example.com"))
	assert.NoError(t, err)

	firstName := "Augusta"
	updated, err := users.UpdateProfile(c, user.ID, request.UpdateProfile{FirstName: &firstName})
	assert.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName)
	assert.Equal(t, "ada@example.com", updated.Email)
	assert.Equal(t, "ada", updated.Username)
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	c := context.Background()
	_, users := newUserFixture(t, c)

	_, _, err := users.Register(c, registerRequest("ada", "ada@example.com"))
	assert.NoError(t, err)
	other, _, err := users.Register(c, registerRequest("grace", "grace@example.com"))
	assert.NoError(t, err)

	email := "ada@example.com"
	_, err = users.UpdateProfile(c, other.ID, request.UpdateProfile{Email: &email})
	assert.ErrorIs(t, err, inErrors.ErrEmailTaken)
}

func TestChangePassword(t *testing.T) {
	c := context.Background()
	_, users := newUserFixture(t, c)

	user, _, err := users.Register(c, registerRequest("ada", "ada@example.com"))
	assert.NoError(t, err)

	err = users.ChangePassword(c, user.ID, request.ChangePassword{
		OldPassword:        "wrong-password",
		NewPassword:        "an0thersecret",
		NewPasswordConfirm: "an0thersecret",
	})
	assert.ErrorIs(t, err, inErrors.ErrPasswordMismatch)

	err = users.ChangePassword(c, user.ID, request.ChangePassword{
		OldPassword:        "sup3rsecret",
		NewPassword:        "an0thersecret",
		NewPasswordConfirm: "an0thersecret",
	})
	assert.NoError(t, err)

	_, err = users.Login(c, request.Login{Username: "ada", Password: "an0thersecret"})
	assert.NoError(t, err)
	_, err = users.Login(c, request.Login{Username: "ada", Password: "sup3rsecret"})
	assert.ErrorIs(t, err, inErrors.ErrInvalidCredentials)
}
