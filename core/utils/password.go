package utils

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	"sampark-api/core/constants"
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func ComparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateCredential produces the short login credential emailed to an
// attendee on approval. The alphabet omits I/1/O/0.
func GenerateCredential() string {
	out := make([]byte, constants.CredentialLength)
	max := big.NewInt(int64(len(constants.CredentialAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing is unrecoverable for credential issuance
			return ""
		}
		out[i] = constants.CredentialAlphabet[n.Int64()]
	}
	return string(out)
}
