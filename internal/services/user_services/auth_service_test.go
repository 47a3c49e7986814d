// File: internal/services/user_services/auth_service_test.go
package user_services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/policylens/policylens/internal/apperr"
	"github.com/policylens/policylens/internal/domain"
	userrepo "github.com/policylens/policylens/internal/repository/user"
	"github.com/policylens/policylens/internal/services"
)

func newAuthServiceForTest(t *testing.T) (*AuthService, *UserService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	repo := userrepo.NewUserRepository(db)
	authService, err := NewAuthService(repo, "test-secret", &services.NoOpLogger{})
	require.NoError(t, err)
	userService, err := NewUserService(repo, &services.NoOpLogger{})
	require.NoError(t, err)
	return authService, userService
}

func TestRegisterAndLogin(t *testing.T) {
	authService, _ := newAuthServiceForTest(t)

	account, token, err := authService.Register(context.Background(), "Priya", "priya@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotZero(t, account.ID)
	require.NotEmpty(t, token)

	loggedIn, token, err := authService.Login(context.Background(), "Priya@Example.com", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, account.ID, loggedIn.ID)
	require.NotEmpty(t, token)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	authService, _ := newAuthServiceForTest(t)

	_, _, err := authService.Register(context.Background(), "Priya", "priya@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, _, err = authService.Register(context.Background(), "Other", "priya@example.com", "different-pass")
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestRegisterValidation(t *testing.T) {
	authService, _ := newAuthServiceForTest(t)

	_, _, err := authService.Register(context.Background(), "P", "priya@example.com", "s3cret-pass")
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, _, err = authService.Register(context.Background(), "Priya", "not-an-email", "s3cret-pass")
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, _, err = authService.Register(context.Background(), "Priya", "priya@example.com", "short")
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestLoginWrongPassword(t *testing.T) {
	authService, _ := newAuthServiceForTest(t)

	_, _, err := authService.Register(context.Background(), "Priya", "priya@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, _, err = authService.Login(context.Background(), "priya@example.com", "wrong-pass")
	require.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	// Unknown email is indistinguishable from a wrong password.
	_, _, err = authService.Login(context.Background(), "nobody@example.com", "s3cret-pass")
	require.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestChangePassword(t *testing.T) {
	authService, userService := newAuthServiceForTest(t)

	account, _, err := authService.Register(context.Background(), "Priya", "priya@example.com", "s3cret-pass")
	require.NoError(t, err)

	err = userService.ChangePassword(context.Background(), account.ID, "wrong", "new-password1")
	require.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	require.NoError(t, userService.ChangePassword(context.Background(), account.ID, "s3cret-pass", "new-password1"))

	_, _, err = authService.Login(context.Background(), "priya@example.com", "new-password1")
	require.NoError(t, err)
	_, _, err = authService.Login(context.Background(), "priya@example.com", "s3cret-pass")
	require.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}
