package service

import (
	"errors"
	"testing"

	"github.com/shelora/shelora/internal/repository"
)

func setupUserServiceTest(t *testing.T) (*UserService, *serviceTestEnv) {
	t.Helper()
	env := newServiceTestEnv(t, "user_profile")
	return NewUserService(repository.NewUserRepository(env.db)), env
}

func TestEnsureProfileCreatesOnFirstSight(t *testing.T) {
	svc, _ := setupUserServiceTest(t)

	user, err := svc.EnsureProfile(42, " Buyer@Example.COM ")
	if err != nil {
		t.Fatalf("ensure profile: %v", err)
	}
	if user.ID != 42 || user.Email != "buyer@example.com" {
		t.Fatalf("unexpected profile: %+v", user)
	}
	if user.Status != "active" {
		t.Fatalf("expected active status, got %q", user.Status)
	}

	// 再次调用返回已有档案，不重建
	again, err := svc.EnsureProfile(42, "other@example.com")
	if err != nil {
		t.Fatalf("ensure profile twice: %v", err)
	}
	if again.Email != "buyer@example.com" {
		t.Fatalf("expected existing profile preserved, got %q", again.Email)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := setupUserServiceTest(t)

	if _, err := svc.UpdateProfile(7, ProfileInput{Name: "X"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if _, err := svc.EnsureProfile(7, "buyer@example.com"); err != nil {
		t.Fatalf("ensure profile: %v", err)
	}
	updated, err := svc.UpdateProfile(7, ProfileInput{
		Name:    " Nimal Perera ",
		Phone:   "+94771234567",
		Address: "12 Galle Road",
		City:    "Colombo",
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Nimal Perera" || updated.City != "Colombo" {
		t.Fatalf("unexpected updated profile: %+v", updated)
	}
}
