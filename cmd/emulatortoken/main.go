// Command emulatortoken prints a bearer token for the Firebase Auth Emulator.
package main

import (
	"fmt"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"smorg/backend/internal/auth"
)

func main() {
	uid := os.Getenv("FIRESTORE_ADMIN_UID")
	if len(os.Args) > 1 {
		uid = os.Args[1]
	}

	token, err := auth.GenerateEmulatorToken(os.Getenv("GOOGLE_CLOUD_PROJECT"), uid)
	if err != nil {
		log.Fatalf("emulatortoken: %v (set FIRESTORE_ADMIN_UID or pass a uid)", err)
	}
	fmt.Printf("Bearer %s\n", token)
}
