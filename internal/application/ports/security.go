package ports

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenClaims is the payload embedded in a bearer token.
type TokenClaims struct {
	UserID int64
	Email  string
}

// TokenIssuer signs and validates bearer tokens (HS256). Validate returns
// errors.ErrTokenExpired for a well-signed token past its expiry and
// errors.ErrInvalidToken for anything malformed or tampered with.
type TokenIssuer interface {
	Issue(userID int64, email string) (string, error)
	Validate(token string) (*TokenClaims, error)
}
