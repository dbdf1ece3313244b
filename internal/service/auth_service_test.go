package service

import (
	"errors"
	"testing"

	"github.com/Akhileshkolipakula/soda-business-manager/internal/model"

	"gorm.io/gorm"
)

func TestBootstrapCreatesDefaultAdminOnce(t *testing.T) {
	env := newTestEnv(t)

	if err := env.auth.Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if got := env.count(t, &model.User{}); got != 1 {
		t.Fatalf("users after bootstrap: want 1, got %d", got)
	}

	// A second run must not create another account
	if err := env.auth.Bootstrap(); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if got := env.count(t, &model.User{}); got != 1 {
		t.Fatalf("users after second bootstrap: want 1, got %d", got)
	}

	resp, err := env.auth.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("login as default admin: %v", err)
	}
	if resp.User.Role != model.RoleAdmin {
		t.Fatalf("bootstrap role: want admin, got %s", resp.User.Role)
	}
	if resp.Token == "" {
		t.Fatalf("login returned empty token")
	}
}

func TestBootstrapSkippedWhenUsersExist(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.auth.Register("owner", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := env.auth.Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	if got := env.count(t, &model.User{}); got != 1 {
		t.Fatalf("bootstrap created admin despite existing user: %d users", got)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.auth.Register("  ", "secret"); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank username: want ErrValidation, got %v", err)
	}
	if _, err := env.auth.Register("ravi", "abc"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("short password: want ErrPasswordTooShort, got %v", err)
	}

	user, err := env.auth.Register("ravi", "abcd")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.RoleStaff {
		t.Fatalf("registered role: want staff, got %s", user.Role)
	}
	if user.Password == "abcd" {
		t.Fatalf("password stored in plain text")
	}

	if _, err := env.auth.Register("ravi", "abcd"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("duplicate username: want ErrDuplicateUsername, got %v", err)
	}
}

// A register racing past the username pre-check hits the unique index and
// must still come back as the typed duplicate error.
func TestRegisterDuplicateInsertMapsToTypedError(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.auth.Register("ravi", "abcd"); err != nil {
		t.Fatalf("register: %v", err)
	}

	dup := &model.User{Username: "ravi", Role: model.RoleStaff}
	if err := dup.SetPassword("abcd"); err != nil {
		t.Fatalf("hash password: %v", err)
	}
	err := env.db.Create(dup).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("want gorm.ErrDuplicatedKey from the store, got %v", err)
	}
	if got := mapDuplicate(err, ErrDuplicateUsername); !errors.Is(got, ErrDuplicateUsername) {
		t.Fatalf("want ErrDuplicateUsername, got %v", got)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.auth.Register("ravi", "abcd"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := env.auth.Login("ravi", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", err)
	}
	if _, err := env.auth.Login("nobody", "abcd"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: want ErrInvalidCredentials, got %v", err)
	}
}

func TestTokenRoundTripAndLogout(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.auth.Register("ravi", "abcd"); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := env.auth.Login("ravi", "abcd")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	me, err := env.auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("validate fresh token: %v", err)
	}
	if me.Username != "ravi" {
		t.Fatalf("validated user: %+v", me)
	}

	if err := env.auth.Logout(resp.User.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := env.auth.ValidateToken(resp.Token); err == nil {
		t.Fatalf("token still valid after logout")
	}
}

// Each login rotates the token version, so the previous session dies.
func TestLoginInvalidatesPreviousSession(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.auth.Register("ravi", "abcd"); err != nil {
		t.Fatalf("register: %v", err)
	}

	first, err := env.auth.Login("ravi", "abcd")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := env.auth.Login("ravi", "abcd")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	if _, err := env.auth.ValidateToken(first.Token); err == nil {
		t.Fatalf("first session survived a second login")
	}
	if _, err := env.auth.ValidateToken(second.Token); err != nil {
		t.Fatalf("second session should be valid: %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.auth.ValidateToken("not-a-token"); err == nil {
		t.Fatalf("garbage token accepted")
	}
}
