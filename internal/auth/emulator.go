package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultProjectID = "local-project-id"

// GenerateEmulatorToken creates an unsigned JWT accepted by the Firebase Auth Emulator.
func GenerateEmulatorToken(projectID, uid string) (string, error) {
	if projectID == "" {
		projectID = DefaultProjectID
	}
	if uid == "" {
		return "", fmt.Errorf("uid is required")
	}

	claims := jwt.MapClaims{
		"iss":       "https://securetoken.google.com/" + projectID,
		"aud":       projectID,
		"auth_time": 1,
		"user_id":   uid,
		"sub":       uid,
		"iat":       1,
		"exp":       9999999999, // never expires
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		return "", fmt.Errorf("sign emulator token: %w", err)
	}
	return token, nil
}
