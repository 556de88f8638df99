package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/security"
)

// Mints a management API token and prints the bcrypt hash to put in
// configuration. The plaintext token is shown once and never stored.
func main() {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	hash, err := security.HashAdminToken(token)
	if err != nil {
		log.Fatalf("Failed to hash token: %v", err)
	}

	fmt.Println("Admin token (give this to the operator, it is not recoverable):")
	fmt.Printf("%s\n\n", token)
	fmt.Println("Configuration value for security.admin_token_hash:")
	fmt.Printf("%s\n\n", hash)
	fmt.Println("Use the token in the Authorization header:")
	fmt.Printf("curl -H \"Authorization: Bearer %s\" http://localhost:8080/api/v1/profiles\n", token)
}
