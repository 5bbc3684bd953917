package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	inErrors "github.com/arvandy/storefront/internal/errors"
	"github.com/arvandy/storefront/internal/log"
	"github.com/arvandy/storefront/internal/otel"
	"github.com/arvandy/storefront/internal/repository"
	"github.com/arvandy/storefront/internal/token"
	"github.com/arvandy/storefront/user/pkg/request"
	"github.com/arvandy/storefront/user/pkg/response"
)

type UserService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	issuer  token.Issuer
}

func NewUserService(pool *pgxpool.Pool, queries *repository.Queries, issuer token.Issuer) UserService {
	return UserService{pool: pool, queries: queries, issuer: issuer}
}

// Register creates the user together with an empty cart and returns the
// created profile with a fresh token pair.
func (s UserService) Register(
	c context.Context,
	param request.Register,
) (response.User, token.Pair, error) {
	c, span := otel.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str("username", param.Username).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	logger.Info().Msg("hashing password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, token.Pair{}, err
	}
	logger.Info().Msg("hashed password")

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, token.Pair{}, err
	}
	defer func() {
		if err := tx.Rollback(c); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Error().Err(err).Msg("failed rolling back transaction")
		}
	}()
	qtx := s.queries.WithTx(tx)
	logger.Info().Msg("initialized transaction")

	logger = logger.With().Str(log.KeyProcess, "inserting user").Logger()
	logger.Info().Msg("inserting user")
	user, err := qtx.InsertUser(c, repository.InsertUserParams{
		ID:        uuid.New(),
		Username:  param.Username,
		Email:     param.Email,
		Password:  string(hashed),
		FirstName: param.FirstName,
		LastName:  param.LastName,
	})
	if err != nil {
		switch {
		case repository.IsUniqueViolation(err, "users_email_key"):
			err = inErrors.ErrEmailTaken
		case repository.IsUniqueViolation(err, "users_username_key"):
			err = inErrors.ErrUsernameTaken
		default:
			err = fmt.Errorf("failed inserting user with error=%w", err)
		}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, token.Pair{}, err
	}
	logger = logger.With().Str(log.KeyUserID, user.ID.String()).Logger()
	logger.Info().Msg("inserted user")

	logger = logger.With().Str(log.KeyProcess, "creating cart").Logger()
	logger.Info().Msg("creating cart")
	cart, err := qtx.FindOrCreateCart(c, uuid.New(), user.ID)
	if err != nil {
		err = fmt.Errorf("failed creating cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, token.Pair{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msg("created cart")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, token.Pair{}, err
	}
	logger.Info().Msg("committed transaction")

	logger = logger.With().Str(log.KeyProcess, "issuing tokens").Logger()
	logger.Info().Msg("issuing tokens")
	pair, err := s.issuer.Issue(user.ID, user.IsStaff)
	if err != nil {
		err = fmt.Errorf("failed issuing tokens with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, token.Pair{}, err
	}
	logger.Info().Msg("issued tokens")

	return user.Response(), pair, nil
}

// Login verifies the credentials and returns a fresh token pair. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s UserService) Login(c context.Context, param request.Login) (token.Pair, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str("username", param.Username).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	logger.Info().Msg("finding user")
	user, err := s.queries.FindUserByUsername(c, param.Username)
	if err != nil {
		if repository.IsNoRows(err) {
			err = inErrors.ErrInvalidCredentials
		} else {
			err = fmt.Errorf("failed finding user with error=%w", err)
		}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return token.Pair{}, err
	}
	logger = logger.With().Str(log.KeyUserID, user.ID.String()).Logger()
	logger.Info().Msg("found user")

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	logger.Info().Msg("verifying password")
	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password)); err != nil {
		err = inErrors.ErrInvalidCredentials
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return token.Pair{}, err
	}
	logger.Info().Msg("verified password")

	logger = logger.With().Str(log.KeyProcess, "issuing tokens").Logger()
	logger.Info().Msg("issuing tokens")
	pair, err := s.issuer.Issue(user.ID, user.IsStaff)
	if err != nil {
		err = fmt.Errorf("failed issuing tokens with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return token.Pair{}, err
	}
	logger.Info().Msg("issued tokens")

	return pair, nil
}

// Refresh rotates a refresh token into a fresh pair.
func (s UserService) Refresh(c context.Context, param request.RefreshToken) (token.Pair, error) {
	c, span := otel.Tracer.Start(c, "UserService Refresh")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Refresh").
		Str(log.KeyProcess, "rotating refresh token").
		Logger()

	logger.Info().Msg("rotating refresh token")
	pair, err := s.issuer.Refresh(c, param.Refresh)
	if err != nil {
		err = fmt.Errorf("failed rotating refresh token with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return token.Pair{}, err
	}
	logger.Info().Msg("rotated refresh token")

	return pair, nil
}

// GetProfile returns the caller's profile.
func (s UserService) GetProfile(c context.Context, userID uuid.UUID) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService GetProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService GetProfile").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProcess, "finding user").
		Logger()

	logger.Info().Msg("finding user")
	user, err := s.queries.FindUserById(c, userID)
	if err != nil {
		if repository.IsNoRows(err) {
			err = inErrors.ErrUserNotFound
		} else {
			err = fmt.Errorf("failed finding userId=%s with error=%w", userID.String(), err)
		}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("found user")

	return user.Response(), nil
}

// UpdateProfile applies a partial update to the caller's profile. The
// username is immutable and never touched.
func (s UserService) UpdateProfile(
	c context.Context,
	userID uuid.UUID,
	param request.UpdateProfile,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService UpdateProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService UpdateProfile").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProcess, "updating profile").
		Logger()

	logger.Info().Msg("updating profile")
	user, err := s.queries.UpdateUserProfile(c, repository.UpdateUserProfileParams{
		ID:        userID,
		Email:     textFromPtr(param.Email),
		FirstName: textFromPtr(param.FirstName),
		LastName:  textFromPtr(param.LastName),
	})
	if err != nil {
		switch {
		case repository.IsNoRows(err):
			err = inErrors.ErrUserNotFound
		case repository.IsUniqueViolation(err, "users_email_key"):
			err = inErrors.ErrEmailTaken
		default:
			err = fmt.Errorf("failed updating userId=%s with error=%w", userID.String(), err)
		}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("updated profile")

	return user.Response(), nil
}

// ChangePassword verifies the old password then stores the new hash.
func (s UserService) ChangePassword(
	c context.Context,
	userID uuid.UUID,
	param request.ChangePassword,
) error {
	c, span := otel.Tracer.Start(c, "UserService ChangePassword")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService ChangePassword").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	logger.Info().Msg("finding user")
	user, err := s.queries.FindUserById(c, userID)
	if err != nil {
		if repository.IsNoRows(err) {
			err = inErrors.ErrUserNotFound
		} else {
			err = fmt.Errorf("failed finding userId=%s with error=%w", userID.String(), err)
		}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("found user")

	logger = logger.With().Str(log.KeyProcess, "verifying old password").Logger()
	logger.Info().Msg("verifying old password")
	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.OldPassword)); err != nil {
		err = inErrors.ErrPasswordMismatch
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("verified old password")

	logger = logger.With().Str(log.KeyProcess, "updating password").Logger()
	logger.Info().Msg("updating password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if err = s.queries.UpdateUserPassword(c, userID, string(hashed)); err != nil {
		err = fmt.Errorf("failed updating password with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("updated password")

	return nil
}

func textFromPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
