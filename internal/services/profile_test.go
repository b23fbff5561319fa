package services

import (
	"testing"
	"time"
)

func TestProfileUpsertAndCompleteness(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustRegister(t, "learner@example.com")

	// Fresh users get an empty profile, not an error.
	profile, err := env.profile.Get(t.Context(), user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if profile.IsComplete() {
		t.Fatal("empty profile reported complete")
	}

	name := "Linh Nguyen"
	profile, err = env.profile.Upsert(t.Context(), user.ID, UpdateProfileInput{FullName: &name})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if profile.FullName != name {
		t.Fatalf("full name = %q", profile.FullName)
	}
	if profile.IsComplete() {
		t.Fatal("partial profile reported complete")
	}

	birth := time.Date(2000, 5, 1, 0, 0, 0, 0, time.UTC)
	address := "12 Tran Phu, Hanoi"
	profile, err = env.profile.Upsert(t.Context(), user.ID, UpdateProfileInput{
		BirthDate: &birth,
		Address:   &address,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if !profile.IsComplete() {
		t.Fatal("full profile reported incomplete")
	}
	// Earlier fields survive partial updates.
	if profile.FullName != name {
		t.Fatalf("full name lost: %q", profile.FullName)
	}

	stored, err := env.profile.Get(t.Context(), user.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !stored.IsComplete() {
		t.Fatal("stored profile incomplete")
	}
}
