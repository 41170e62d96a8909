package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

// Generates a random secret suitable for auth.token_secret in config.yaml.
func main() {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate secret: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(base64.StdEncoding.EncodeToString(buf))
}
