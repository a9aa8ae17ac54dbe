package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/climatecoach/carbon-engine/internal/core/domain"
	"github.com/climatecoach/carbon-engine/internal/core/services"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Should create user with hashed password and default profile", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "new@user.com" && u.PasswordHash != "" && u.PasswordHash != "strongPassword1"
		})).Return(nil)

		user, err := svc.Register(ctx, services.RegisterInput{
			Email:    "New@User.com",
			Password: "strongPassword1",
		})

		require.NoError(t, err)
		assert.Equal(t, "new@user.com", user.Email)
		assert.Equal(t, domain.DefaultProfile(), user.Profile)
		repo.AssertExpectations(t)
	})

	t.Run("Fail: Should reject short passwords before touching the repo", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo)

		_, err := svc.Register(ctx, services.RegisterInput{Email: "a@b.com", Password: "short"})

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should propagate duplicate email", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo)

		repo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		_, err := svc.Register(ctx, services.RegisterInput{Email: "a@b.com", Password: "strongPassword1"})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	newUserWithPassword := func(password string) *domain.User {
		user, _ := domain.NewUser("user-1", "login@test.com")
		_ = user.SetPassword(password)
		return user
	}

	t.Run("Success: Should return user for correct credentials", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo)

		stored := newUserWithPassword("correctHorse1")
		repo.On("GetByEmail", ctx, "login@test.com").Return(stored, nil)

		user, err := svc.Login(ctx, services.LoginInput{Email: "login@test.com", Password: "correctHorse1"})
		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
	})

	t.Run("Security: Wrong password and unknown email return the same error", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo)

		stored := newUserWithPassword("correctHorse1")
		repo.On("GetByEmail", ctx, "login@test.com").Return(stored, nil)
		repo.On("GetByEmail", ctx, "ghost@test.com").Return(nil, domain.ErrUserNotFound)

		_, errWrongPass := svc.Login(ctx, services.LoginInput{Email: "login@test.com", Password: "wrong"})
		_, errNoUser := svc.Login(ctx, services.LoginInput{Email: "ghost@test.com", Password: "whatever"})

		assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, errNoUser, domain.ErrInvalidCredentials)
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	uid := "user-1"

	t.Run("Success: Should validate and persist preferences", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo)

		stored, _ := domain.NewUser(uid, "prefs@test.com")
		repo.On("GetByID", ctx, uid).Return(stored, nil)
		repo.On("UpdateProfile", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Profile.DietPreference == domain.DietVegan
		})).Return(nil)

		updated, err := svc.UpdateProfile(ctx, uid, domain.UserProfile{
			DietPreference:      domain.DietVegan,
			TransportPreference: domain.TransportPrefBike,
			HouseholdSize:       2,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.DietVegan, updated.Profile.DietPreference)
		repo.AssertExpectations(t)
	})

	t.Run("Fail: Invalid preferences never reach the repo", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo)

		stored, _ := domain.NewUser(uid, "prefs@test.com")
		repo.On("GetByID", ctx, uid).Return(stored, nil)

		_, err := svc.UpdateProfile(ctx, uid, domain.UserProfile{
			DietPreference:      "fruitarian",
			TransportPreference: domain.TransportPrefCar,
			HouseholdSize:       1,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidDietPreference)
		repo.AssertNotCalled(t, "UpdateProfile")
	})

	t.Run("Fail: Unknown user", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewAuthService(repo)

		repo.On("GetByID", ctx, uid).Return(nil, domain.ErrUserNotFound)

		_, err := svc.UpdateProfile(ctx, uid, domain.DefaultProfile())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
