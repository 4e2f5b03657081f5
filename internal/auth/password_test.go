package auth

import (
	"strings"
	"testing"
)

// Cost 4 is bcrypt's minimum — fast enough for tests, same code path as
// production.
func newTestPasswordService() *PasswordService {
	return NewPasswordServiceForTest(4)
}

func TestHashAndVerify(t *testing.T) {
	p := newTestPasswordService()

	hash, err := p.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "" {
		t.Fatal("Hash() returned an empty hash")
	}
	if hash == "correct horse battery staple" {
		t.Fatal("Hash() returned the plaintext")
	}

	if err := p.Verify(hash, "correct horse battery staple"); err != nil {
		t.Errorf("Verify() with the right password: error = %v", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	p := newTestPasswordService()

	hash, err := p.Hash("right-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if err := p.Verify(hash, "wrong-password"); err == nil {
		t.Fatal("Verify() should fail for the wrong password")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	p := newTestPasswordService()

	h1, err := p.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := p.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// bcrypt salts every hash, so two hashes of the same input differ
	if h1 == h2 {
		t.Error("two hashes of the same password should not be equal")
	}

	// but both verify
	if err := p.Verify(h1, "same-password"); err != nil {
		t.Errorf("Verify(h1) error = %v", err)
	}
	if err := p.Verify(h2, "same-password"); err != nil {
		t.Errorf("Verify(h2) error = %v", err)
	}
}

func TestHash_TooLong(t *testing.T) {
	p := newTestPasswordService()

	// bcrypt truncates beyond 72 bytes; we reject instead
	_, err := p.Hash(strings.Repeat("x", 73))
	if err == nil {
		t.Fatal("Hash() should reject passwords longer than 72 bytes")
	}
}

func TestVerify_NotAHash(t *testing.T) {
	p := newTestPasswordService()

	if err := p.Verify("not-a-bcrypt-hash", "anything"); err == nil {
		t.Fatal("Verify() should fail for a malformed hash")
	}
}
