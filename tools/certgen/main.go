// Package main generates a self-signed development certificate and key,
// writing them to certs/server.crt and certs/server.key. Point
// TLS_CERT_FILE/TLS_KEY_FILE at them to serve HTTPS, and pass
// certs/server.crt to the client with --ca.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/atinyakov/todokeeper/internal/certgen"
)

func main() {
	dir := "certs"
	hosts := []string{"localhost", "127.0.0.1", "::1"}

	certPath, keyPath, err := writeServerKeyPair(dir, hosts, 365*24*time.Hour)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("✅ Certificate written to %s, key to %s\n", certPath, keyPath)
}

// writeServerKeyPair generates a certificate for hosts and writes it and its
// key into dir, creating dir if needed. The key file is readable only by
// the owner.
func writeServerKeyPair(dir string, hosts []string, validFor time.Duration) (string, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create %s: %w", dir, err)
	}

	certPEM, keyPEM, err := certgen.GenerateServerCertificate(hosts, validFor)
	if err != nil {
		return "", "", err
	}

	certPath := filepath.Join(dir, "server.crt")
	keyPath := filepath.Join(dir, "server.key")
	if err := os.WriteFile(certPath, certPEM, 0o644); err != nil {
		return "", "", fmt.Errorf("write cert: %w", err)
	}
	if err := os.WriteFile(keyPath, keyPEM, 0o600); err != nil {
		return "", "", fmt.Errorf("write key: %w", err)
	}
	return certPath, keyPath, nil
}
