package utils

import "golang.org/x/crypto/bcrypt"

// HashAdminKey returns a bcrypt hash of the admin API key.  The hash,
// not the key, is what goes into ADMIN_KEY_HASH.
func HashAdminKey(key string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyAdminKey safely compares a bcrypt hash against a presented key.
func VerifyAdminKey(hash, key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
