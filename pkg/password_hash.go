package pkg

import "golang.org/x/crypto/bcrypt"

const passwordHashCost = 14

// HashPassword is used to produce the LIFTLOG_PASSWORD_HASH value.
func HashPassword(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return BytesToString(hashBytes), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
