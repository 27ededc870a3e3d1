package auth

import "golang.org/x/crypto/bcrypt"

// CheckPassword compares a bcrypt hash with a plaintext candidate.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashPassword is used by provisioning tooling to produce the
// ADMIN_PASSWORD_HASH value.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}
