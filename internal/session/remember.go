package session

import (
	"fmt"

	"github.com/99designs/keyring"
)

const (
	serviceName       = "plantrack"
	rememberedNameKey = "auth_username"
)

// openKeyring returns a configured keyring instance. The file backend is
// always allowed so headless machines keep working.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/plantrack/session",
		FilePasswordFunc:         keyring.FixedStringPrompt("plantrack-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// rememberedName returns the username saved by the last successful login,
// or "" when nothing is remembered.
func rememberedName() (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(rememberedNameKey)
	if err == keyring.ErrKeyNotFound {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading remembered username: %w", err)
	}
	return string(item.Data), nil
}

// rememberName saves the username for the next startup's auto-login.
func rememberName(name string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  rememberedNameKey,
		Data: []byte(name),
	})
	if err != nil {
		return fmt.Errorf("saving remembered username: %w", err)
	}
	return nil
}

// forgetName clears the remembered username.
func forgetName() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(rememberedNameKey)
	if err != nil && err != keyring.ErrKeyNotFound {
		return fmt.Errorf("clearing remembered username: %w", err)
	}
	return nil
}
