package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Argon2id parameters (OWASP second recommended configuration).
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	// pepper is loaded from the pepper file on first use and appended to
	// every password before hashing. Guarded by pepperOnce so concurrent
	// first-time hashes cannot each generate a different pepper.
	pepper     string
	pepperOnce sync.Once
	pepperFile string
)

// SetPepperPath configures where the pepper file lives. Must be called
// before the first hash or verify.
func SetPepperPath(file string) {
	pepperFile = file
	pepperOnce = sync.Once{}
	pepper = ""
}

func GetPepper() string {
	pepperOnce.Do(func() {
		var err error
		pepper, err = loadOrGeneratePepper()
		if err != nil {
			slog.Error("failed to load or generate pepper", slog.Any("err", err))
			os.Exit(1)
		}
	})

	return pepper
}

// loadOrGeneratePepper loads the pepper from its file, generating and
// persisting a fresh one when the file does not exist yet.
func loadOrGeneratePepper() (string, error) {
	pepperFile = filepath.Clean(pepperFile)
	if err := os.MkdirAll(filepath.Dir(pepperFile), 0750); err != nil {
		return "", err
	}

	if _, err := os.Stat(pepperFile); os.IsNotExist(err) {
		raw := make([]byte, keyLength)
		if _, err := rand.Read(raw); err != nil {
			return "", err
		}
		p := base64.RawURLEncoding.EncodeToString(raw)

		if err := os.WriteFile(pepperFile, []byte(p), 0600); err != nil {
			return "", err
		}
		return p, nil
	}

	raw, err := os.ReadFile(pepperFile)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}
