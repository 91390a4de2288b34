// Package passhash wraps bcrypt for one-way salted password storage.
//
// Hash is randomized per call (bcrypt embeds a fresh salt), so the same
// plaintext never produces the same hash twice. Verify is fail-closed:
// any malformed or incompatible hash string yields false, never an error.
package passhash

import "golang.org/x/crypto/bcrypt"

// Hash returns the bcrypt hash of plaintext at the default cost.
func Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash. Malformed hashes and
// mismatches both return false; this function never returns an error.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
