//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"maspatas/internal/domain/user"
	"maspatas/internal/infra"
	"maspatas/internal/infra/db"
	"maspatas/internal/pkg/jwt"
	"maspatas/internal/pkg/password"
	"maspatas/internal/usecase/commands"
	"maspatas/internal/usecase/queries"
	"maspatas/internal/usecase/shared"
	queriesmock "maspatas/tests/mock/queries"
	sharedmock "maspatas/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authCommandsEnv struct {
	uow       *sharedmock.MockUnitOfWork
	tx        *sharedmock.MockTx
	users     *sharedmock.MockUserRepository
	readStore *queriesmock.MockUserReadStore
	jwt       *jwt.Service
	uc        commands.AuthCommands
}

func newAuthCommandsEnv(t *testing.T) *authCommandsEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	env := &authCommandsEnv{
		uow:       sharedmock.NewMockUnitOfWork(ctrl),
		tx:        sharedmock.NewMockTx(ctrl),
		users:     sharedmock.NewMockUserRepository(ctrl),
		readStore: queriesmock.NewMockUserReadStore(ctrl),
		jwt:       jwt.NewService("test-secret", time.Hour, 24*time.Hour),
	}

	env.tx.EXPECT().DB().Return(nil).AnyTimes()
	env.tx.EXPECT().Users().Return(env.users).AnyTimes()

	env.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, env.tx)
		},
	).AnyTimes()

	env.uc = commands.NewAuthCommands(env.uow, env.readStore, env.jwt)
	return env
}

func hashedPassword(t *testing.T, plaintext string) string {
	t.Helper()
	hash, err := password.HashPassword(plaintext)
	require.NoError(t, err)
	return hash
}

func activeUser(id uuid.UUID, role string) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{ID: id, Username: "maria", Role: role, IsActive: true}
}

// tokenIdentity is the part of the claims the tests care about.
type tokenIdentity struct {
	UserID    uuid.UUID
	Role      string
	TokenType jwt.TokenType
}

func identityOf(t *testing.T, svc *jwt.Service, token string) tokenIdentity {
	t.Helper()
	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	return tokenIdentity{UserID: claims.UserID, Role: claims.Role, TokenType: claims.TokenType}
}

func TestAuthCommands_Login(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("returns a token pair and touches last login", func(t *testing.T) {
		env := newAuthCommandsEnv(t)
		hash := hashedPassword(t, "password123")

		env.readStore.EXPECT().FindByLogin(ctx, "maria").Return(activeUser(userID, "seller"), hash, nil)
		env.users.EXPECT().UpdateLastLogin(gomock.Any(), nil, userID).Return(nil)

		result, err := env.uc.Login(ctx, commands.LoginInput{Login: "maria", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, userID, result.UserID)

		want := tokenIdentity{UserID: userID, Role: "seller", TokenType: jwt.TokenTypeAccess}
		if diff := cmp.Diff(want, identityOf(t, env.jwt, result.TokenPair.AccessToken)); diff != "" {
			t.Errorf("access token claims mismatch (-want +got):\n%s", diff)
		}

		want.TokenType = jwt.TokenTypeRefresh
		if diff := cmp.Diff(want, identityOf(t, env.jwt, result.TokenPair.RefreshToken)); diff != "" {
			t.Errorf("refresh token claims mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		env := newAuthCommandsEnv(t)
		hash := hashedPassword(t, "password123")

		env.readStore.EXPECT().FindByLogin(ctx, "maria").Return(activeUser(userID, "seller"), hash, nil)

		_, err := env.uc.Login(ctx, commands.LoginInput{Login: "maria", Password: "nope"})
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("lookup failures read as bad credentials", func(t *testing.T) {
		env := newAuthCommandsEnv(t)

		env.readStore.EXPECT().FindByLogin(ctx, "ghost").
			Return(nil, "", infra.WrapRepoErr("user not found", errors.New("no rows"), infra.KindNotFound))

		_, err := env.uc.Login(ctx, commands.LoginInput{Login: "ghost", Password: "password123"})
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		env := newAuthCommandsEnv(t)
		hash := hashedPassword(t, "password123")

		view := activeUser(userID, "seller")
		view.IsActive = false
		env.readStore.EXPECT().FindByLogin(ctx, "maria").Return(view, hash, nil)

		_, err := env.uc.Login(ctx, commands.LoginInput{Login: "maria", Password: "password123"})
		assert.ErrorIs(t, err, commands.ErrUserInactive)
	})

	t.Run("a failed last-login update does not fail the login", func(t *testing.T) {
		env := newAuthCommandsEnv(t)
		hash := hashedPassword(t, "password123")

		env.readStore.EXPECT().FindByLogin(ctx, "maria").Return(activeUser(userID, "seller"), hash, nil)
		env.users.EXPECT().UpdateLastLogin(gomock.Any(), nil, userID).Return(errors.New("db down"))

		result, err := env.uc.Login(ctx, commands.LoginInput{Login: "maria", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.TokenPair.AccessToken)
	})
}

func TestAuthCommands_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a seller by default", func(t *testing.T) {
		env := newAuthCommandsEnv(t)

		var created *user.User
		env.users.EXPECT().Create(gomock.Any(), nil, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.DBTX, u *user.User) (uuid.UUID, error) {
				created = u
				return u.ID(), nil
			},
		)

		id, err := env.uc.Register(ctx, commands.RegisterInput{Username: "carlos", Password: "password123"})
		require.NoError(t, err)

		require.NotNil(t, created)
		assert.Equal(t, created.ID(), id)
		assert.Equal(t, user.RoleSeller, created.Role())
		assert.Equal(t, "carlos", created.Username().Value())
	})

	t.Run("duplicate username", func(t *testing.T) {
		env := newAuthCommandsEnv(t)

		env.users.EXPECT().Create(gomock.Any(), nil, gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("duplicate", errors.New("23505"), infra.KindDuplicateKey))

		_, err := env.uc.Register(ctx, commands.RegisterInput{Username: "carlos", Password: "password123"})
		assert.ErrorIs(t, err, commands.ErrUserAlreadyExists)
	})

	t.Run("weak password", func(t *testing.T) {
		env := newAuthCommandsEnv(t)

		_, err := env.uc.Register(ctx, commands.RegisterInput{Username: "carlos", Password: "short"})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("invalid role", func(t *testing.T) {
		env := newAuthCommandsEnv(t)

		_, err := env.uc.Register(ctx, commands.RegisterInput{
			Username: "carlos", Password: "password123", Role: "superuser",
		})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("invalid email", func(t *testing.T) {
		env := newAuthCommandsEnv(t)

		_, err := env.uc.Register(ctx, commands.RegisterInput{
			Username: "carlos", Email: "not-an-email", Password: "password123",
		})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})
}

func TestAuthCommands_RefreshToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	refreshTokenFor := func(t *testing.T, env *authCommandsEnv) string {
		t.Helper()
		token, err := env.jwt.GenerateRefreshToken(userID, user.RoleSeller)
		require.NoError(t, err)
		return token
	}

	t.Run("rotates both tokens", func(t *testing.T) {
		env := newAuthCommandsEnv(t)
		token := refreshTokenFor(t, env)

		env.readStore.EXPECT().FindByID(ctx, userID).Return(activeUser(userID, "seller"), nil)

		pair, err := env.uc.RefreshToken(ctx, token)
		require.NoError(t, err)

		got := identityOf(t, env.jwt, pair.AccessToken)
		want := tokenIdentity{UserID: userID, Role: "seller", TokenType: jwt.TokenTypeAccess}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("rotated access token mismatch (-want +got):\n%s", diff)
		}
		assert.NotEqual(t, token, pair.RefreshToken)
	})

	t.Run("an access token cannot be used as a refresh token", func(t *testing.T) {
		env := newAuthCommandsEnv(t)

		accessToken, err := env.jwt.GenerateAccessToken(userID, "seller")
		require.NoError(t, err)

		_, err = env.uc.RefreshToken(ctx, accessToken)
		assert.ErrorIs(t, err, commands.ErrTokenValidation)
	})

	t.Run("deleted user", func(t *testing.T) {
		env := newAuthCommandsEnv(t)
		token := refreshTokenFor(t, env)

		env.readStore.EXPECT().FindByID(ctx, userID).
			Return(nil, infra.WrapRepoErr("user not found", errors.New("no rows"), infra.KindNotFound))

		_, err := env.uc.RefreshToken(ctx, token)
		assert.ErrorIs(t, err, commands.ErrUserNotFound)
	})

	t.Run("inactive user", func(t *testing.T) {
		env := newAuthCommandsEnv(t)
		token := refreshTokenFor(t, env)

		view := activeUser(userID, "seller")
		view.IsActive = false
		env.readStore.EXPECT().FindByID(ctx, userID).Return(view, nil)

		_, err := env.uc.RefreshToken(ctx, token)
		assert.ErrorIs(t, err, commands.ErrUserInactive)
	})

	t.Run("garbage token", func(t *testing.T) {
		env := newAuthCommandsEnv(t)

		_, err := env.uc.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, commands.ErrTokenValidation)
	})
}
