// Package recipient implements the salted one-way tokens under which award
// recipients are stored. An email is never persisted in cleartext: each
// assertion keeps a token of the form
//
//	sha256$<hex salt>$<hex digest>
//
// where the digest is sha256 over the salt and the email. Carrying the salt
// inside the token lets later existence checks recompute the digest for a
// candidate email without ever reversing it.
package recipient

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// Algo tags the hash algorithm inside the token. The prefix is part of the
// stored format and must stay stable.
const Algo = "sha256"

const saltBytes = 16

// Token is a parsed recipient token.
type Token struct {
	Salt   string
	Digest string
}

// NewToken hashes an email under a fresh random salt and returns the
// storable token string.
func NewToken(email string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	hexSalt := hex.EncodeToString(salt)
	return Algo + "$" + hexSalt + "$" + digest(hexSalt, email), nil
}

// Parse splits a stored token into its parts. It rejects tokens that do not
// carry the expected algorithm tag or shape.
func Parse(token string) (Token, error) {
	parts := strings.Split(token, "$")
	if len(parts) != 3 || parts[0] != Algo || parts[1] == "" || parts[2] == "" {
		return Token{}, fmt.Errorf("malformed recipient token %q", token)
	}
	return Token{Salt: parts[1], Digest: parts[2]}, nil
}

// Matches reports whether the token was derived from the given email, by
// recomputing the digest under the token's stored salt. The comparison is
// constant time.
func (t Token) Matches(email string) bool {
	want := digest(t.Salt, email)
	return subtle.ConstantTimeCompare([]byte(t.Digest), []byte(want)) == 1
}

func digest(hexSalt, email string) string {
	sum := sha256.Sum256([]byte(hexSalt + email))
	return hex.EncodeToString(sum[:])
}
