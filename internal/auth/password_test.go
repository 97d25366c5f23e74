// ABOUTME: Unit tests for bcrypt password hashing
// ABOUTME: Tests hashing, verification, mismatches and malformed hashes

package auth

import (
	"errors"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "hunter2" {
		t.Fatal("HashPassword() returned the plaintext")
	}
	if !IsHashed(hash) {
		t.Errorf("IsHashed(%q) = false, want true", hash)
	}

	if err := CheckPassword(hash, "hunter2"); err != nil {
		t.Errorf("CheckPassword() error = %v, want nil", err)
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	b, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	if !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("HashPassword(\"\") error = %v, want ErrEmptyPassword", err)
	}
}

func TestCheckPassword_Failures(t *testing.T) {
	hash, err := HashPassword("correct")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		plain    string
		mismatch bool
	}{
		{"wrong password", hash, "incorrect", true},
		{"empty candidate", hash, "", true},
		{"not a hash", "plaintext", "plaintext", false},
		{"empty hash", "", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPassword(tt.hash, tt.plain)
			if err == nil {
				t.Fatal("CheckPassword() expected error, got nil")
			}
			if got := errors.Is(err, ErrPasswordMismatch); got != tt.mismatch {
				t.Errorf("errors.Is(err, ErrPasswordMismatch) = %v, want %v (err = %v)", got, tt.mismatch, err)
			}
		})
	}
}

func TestIsHashed(t *testing.T) {
	if IsHashed("") {
		t.Error("IsHashed(\"\") = true, want false")
	}
	if IsHashed("not-a-hash") {
		t.Error("IsHashed(\"not-a-hash\") = true, want false")
	}
}
