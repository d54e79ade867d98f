package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/shopkart/shopkart-api/common/errors"
	"github.com/shopkart/shopkart-api/models"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateRoles(ctx context.Context, username string, roles []string) error {
	args := m.Called(ctx, username, roles)
	return args.Error(0)
}

func (m *mockUserRepo) FindCustomers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if users := args.Get(0); users != nil {
		return users.([]models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func hashedPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func activeUser(t *testing.T, username, password string) *models.User {
	return &models.User{
		Username: username,
		Password: hashedPassword(t, password),
		Roles:    []string{models.RoleCustomer},
		Active:   true,
	}
}

func TestRegister(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("FindByUsername", mock.Anything, "asha").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "asha" &&
			u.Active &&
			len(u.Roles) == 1 && u.Roles[0] == models.RoleCustomer &&
			u.Password != "hunter2" // stored hashed, never plaintext
	})).Return(nil)

	svc := NewAuthService(repo, newTestTokenService())

	result, err := svc.Register(context.Background(), "asha", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, 7*24*time.Hour, result.RefreshTTL)
	assert.Equal(t, []string{models.RoleCustomer}, result.Roles)
	repo.AssertExpectations(t)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("FindByUsername", mock.Anything, "asha").Return(activeUser(t, "asha", "hunter2"), nil)

	svc := NewAuthService(repo, newTestTokenService())

	_, err := svc.Register(context.Background(), "asha", "hunter2")
	require.Error(t, err)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ReasonConflict, appErr.Reason)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterMissingFields(t *testing.T) {
	svc := NewAuthService(new(mockUserRepo), newTestTokenService())

	_, err := svc.Register(context.Background(), "", "hunter2")
	assert.Error(t, err)
	_, err = svc.Register(context.Background(), "asha", "")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("FindByUsername", mock.Anything, "asha").Return(activeUser(t, "asha", "hunter2"), nil)

	svc := NewAuthService(repo, newTestTokenService())

	result, err := svc.Login(context.Background(), "asha", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, 24*time.Hour, result.RefreshTTL)

	claims, err := newTestTokenService().ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "asha", claims.Username)
}

func TestLoginFailuresLookIdentical(t *testing.T) {
	// Unknown user, wrong password, and disabled account must be
	// indistinguishable to the caller.
	disabled := activeUser(t, "rohan", "hunter2")
	disabled.Active = false

	cases := []struct {
		name     string
		username string
		password string
		user     *models.User
	}{
		{"unknown user", "ghost", "hunter2", nil},
		{"wrong password", "asha", "wrong", activeUser(t, "asha", "hunter2")},
		{"disabled account", "rohan", "hunter2", disabled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockUserRepo)
			repo.On("FindByUsername", mock.Anything, tc.username).Return(tc.user, nil)

			svc := NewAuthService(repo, newTestTokenService())

			_, err := svc.Login(context.Background(), tc.username, tc.password)
			require.Error(t, err)
			var appErr *apperrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, http.StatusUnauthorized, appErr.Code)
			assert.Equal(t, "Not authorised", appErr.Message)
		})
	}
}

func TestRefresh(t *testing.T) {
	tokens := newTestTokenService()
	user := activeUser(t, "asha", "hunter2")

	repo := new(mockUserRepo)
	repo.On("FindByUsername", mock.Anything, "asha").Return(user, nil)

	svc := NewAuthService(repo, tokens)

	refresh, err := tokens.GenerateRefreshToken("asha", time.Hour)
	require.NoError(t, err)

	accessToken, roles, err := svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, user.Roles, roles)

	claims, err := tokens.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "asha", claims.Username)
}

func TestRefreshInvalidToken(t *testing.T) {
	svc := NewAuthService(new(mockUserRepo), newTestTokenService())

	_, _, err := svc.Refresh(context.Background(), "bogus")
	require.Error(t, err)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.Code)
}

func TestRefreshDeletedUser(t *testing.T) {
	tokens := newTestTokenService()

	repo := new(mockUserRepo)
	repo.On("FindByUsername", mock.Anything, "asha").Return(nil, nil)

	svc := NewAuthService(repo, tokens)

	refresh, err := tokens.GenerateRefreshToken("asha", time.Hour)
	require.NoError(t, err)

	_, _, err = svc.Refresh(context.Background(), refresh)
	require.Error(t, err)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
}
