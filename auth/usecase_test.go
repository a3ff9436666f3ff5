package auth_test

import (
	"context"
	"testing"

	"cinelog/auth"
	"cinelog/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) AddUser(ctx context.Context, u user.User) (user.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id int64) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

type MockAttemptsRepository struct {
	mock.Mock
}

func (m *MockAttemptsRepository) Get(ctx context.Context, email string) (auth.LoginAttempt, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(auth.LoginAttempt), args.Error(1)
}

func (m *MockAttemptsRepository) Save(ctx context.Context, email string, attempt auth.LoginAttempt) error {
	args := m.Called(ctx, email, attempt)
	return args.Error(0)
}

func (m *MockAttemptsRepository) Reset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Compare(hashed, plain string) error {
	args := m.Called(hashed, plain)
	return args.Error(0)
}

type MockTokenProvider struct {
	mock.Mock
}

func (m *MockTokenProvider) GenerateAccessToken(u user.User) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

func (m *MockTokenProvider) GenerateRefreshToken(u user.User) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

func (m *MockTokenProvider) ParseRefreshToken(refreshToken string) (user.User, error) {
	args := m.Called(refreshToken)
	return args.Get(0).(user.User), args.Error(1)
}

func newUsecase() (*auth.Usecase, *MockUserService, *MockAttemptsRepository, *MockHasher, *MockTokenProvider) {
	users := new(MockUserService)
	attempts := new(MockAttemptsRepository)
	hasher := new(MockHasher)
	tokens := new(MockTokenProvider)
	return auth.NewUsecase(users, attempts, hasher, tokens), users, attempts, hasher, tokens
}

func TestRegister(t *testing.T) {
	t.Run("should delegate creation and issue tokens", func(t *testing.T) {
		uc, users, _, _, tokens := newUsecase()

		users.On("AddUser", mock.Anything, user.User{
			Name:     "john",
			Email:    "john@mail.com",
			Password: "Secret123!",
		}).Return(user.User{ID: 1, Email: "john@mail.com"}, nil).Once()
		tokens.On("GenerateAccessToken", mock.Anything).Return("access", nil).Once()
		tokens.On("GenerateRefreshToken", mock.Anything).Return("refresh", nil).Once()

		pair, err := uc.Register(context.Background(), "john", "john@mail.com", "Secret123!")

		require.NoError(t, err)
		assert.Equal(t, auth.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, pair)
		users.AssertExpectations(t)
	})

	t.Run("should surface creation errors without issuing tokens", func(t *testing.T) {
		uc, users, _, _, tokens := newUsecase()

		users.On("AddUser", mock.Anything, mock.Anything).Return(user.User{}, user.ErrInvalidName).Once()

		_, err := uc.Register(context.Background(), "", "john@mail.com", "Secret123!")

		assert.Equal(t, user.ErrInvalidName, err)
		tokens.AssertNotCalled(t, "GenerateAccessToken", mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	t.Run("should issue tokens on valid credentials", func(t *testing.T) {
		uc, users, attempts, hasher, tokens := newUsecase()

		u := user.User{ID: 1, Email: "john@mail.com", PasswordHash: "hashed"}
		attempts.On("Get", mock.Anything, u.Email).Return(auth.LoginAttempt{}, nil).Once()
		users.On("GetUserByEmail", mock.Anything, u.Email).Return(u, nil).Once()
		hasher.On("Compare", "hashed", "Secret123!").Return(nil).Once()
		attempts.On("Reset", mock.Anything, u.Email).Return(nil).Once()
		tokens.On("GenerateAccessToken", u).Return("access", nil).Once()
		tokens.On("GenerateRefreshToken", u).Return("refresh", nil).Once()

		pair, err := uc.Login(context.Background(), u.Email, "Secret123!")

		require.NoError(t, err)
		assert.Equal(t, "access", pair.AccessToken)
		attempts.AssertExpectations(t)
	})

	t.Run("should record failure on wrong password", func(t *testing.T) {
		uc, users, attempts, hasher, _ := newUsecase()

		u := user.User{ID: 1, Email: "john@mail.com", PasswordHash: "hashed"}
		attempts.On("Get", mock.Anything, u.Email).Return(auth.LoginAttempt{FailedCount: 1}, nil).Once()
		users.On("GetUserByEmail", mock.Anything, u.Email).Return(u, nil).Once()
		hasher.On("Compare", "hashed", "wrong").Return(assert.AnError).Once()
		attempts.On("Save", mock.Anything, u.Email, auth.LoginAttempt{FailedCount: 2}).Return(nil).Once()

		_, err := uc.Login(context.Background(), u.Email, "wrong")

		assert.Equal(t, auth.ErrInvalidCredentials, err)
		attempts.AssertExpectations(t)
	})

	t.Run("fifth failure jails the account", func(t *testing.T) {
		uc, users, attempts, hasher, _ := newUsecase()

		u := user.User{ID: 1, Email: "john@mail.com", PasswordHash: "hashed"}
		attempts.On("Get", mock.Anything, u.Email).Return(auth.LoginAttempt{FailedCount: 4}, nil).Once()
		users.On("GetUserByEmail", mock.Anything, u.Email).Return(u, nil).Once()
		hasher.On("Compare", "hashed", "wrong").Return(assert.AnError).Once()
		attempts.On("Save", mock.Anything, u.Email, mock.MatchedBy(func(a auth.LoginAttempt) bool {
			return a.FailedCount == 0 && !a.JailedUntil.IsZero()
		})).Return(nil).Once()

		_, err := uc.Login(context.Background(), u.Email, "wrong")

		assert.Equal(t, auth.ErrInvalidCredentials, err)
		attempts.AssertExpectations(t)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("should rotate the pair for a live account", func(t *testing.T) {
		uc, users, _, _, tokens := newUsecase()

		u := user.User{ID: 1, Email: "john@mail.com"}
		tokens.On("ParseRefreshToken", "old-refresh").Return(u, nil).Once()
		users.On("GetUserByID", mock.Anything, int64(1)).Return(u, nil).Once()
		tokens.On("GenerateAccessToken", u).Return("access", nil).Once()
		tokens.On("GenerateRefreshToken", u).Return("new-refresh", nil).Once()

		pair, err := uc.Refresh(context.Background(), "old-refresh")

		require.NoError(t, err)
		assert.Equal(t, "new-refresh", pair.RefreshToken)
		users.AssertExpectations(t)
	})

	t.Run("should reject an unparsable token", func(t *testing.T) {
		uc, users, _, _, tokens := newUsecase()

		tokens.On("ParseRefreshToken", "garbage").Return(user.User{}, assert.AnError).Once()

		_, err := uc.Refresh(context.Background(), "garbage")

		assert.Equal(t, auth.ErrInvalidRefreshToken, err)
		users.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})

	t.Run("should reject a token for a deleted account", func(t *testing.T) {
		uc, users, _, _, tokens := newUsecase()

		tokens.On("ParseRefreshToken", "old-refresh").Return(user.User{ID: 9}, nil).Once()
		users.On("GetUserByID", mock.Anything, int64(9)).Return(user.User{}, user.ErrUserNotFound).Once()

		_, err := uc.Refresh(context.Background(), "old-refresh")

		assert.Equal(t, auth.ErrInvalidRefreshToken, err)
		tokens.AssertNotCalled(t, "GenerateAccessToken", mock.Anything)
	})
}
