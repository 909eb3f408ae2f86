package crypto

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

// Keyring provides secure key storage abstraction
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "worklog"
	KeyName     = "db-encryption-key"

	// EnvKey overrides the system keyring when set
	EnvKey = "WORKLOG_DB_KEY"
)

var ErrKeyNotFound = errors.New("encryption key not found")

// NewKeyring returns the environment keyring when WORKLOG_DB_KEY is set,
// otherwise the OS keyring (Keychain, Secret Service or Credential Manager).
func NewKeyring() Keyring {
	if os.Getenv(EnvKey) != "" {
		return &envKeyring{}
	}
	return &systemKeyring{}
}

type systemKeyring struct{}

// GetKey retrieves the encryption key from the OS keyring
func (k *systemKeyring) GetKey() (string, error) {
	key, err := keyring.Get(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w in keyring", ErrKeyNotFound)
		}
		return "", fmt.Errorf("failed to retrieve key from keyring: %w", err)
	}

	if key == "" {
		return "", errors.New("encryption key is empty")
	}

	return key, nil
}

// SetKey stores the encryption key in the OS keyring
func (k *systemKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("failed to store key in keyring (set %s instead): %w", EnvKey, err)
	}

	return nil
}

func (k *systemKeyring) DeleteKey() error {
	if err := keyring.Delete(ServiceName, KeyName); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w in keyring", ErrKeyNotFound)
		}
		return fmt.Errorf("failed to delete key from keyring: %w", err)
	}

	return nil
}

// IsAvailable writes and removes a probe entry
func (k *systemKeyring) IsAvailable() bool {
	testKey := "__worklog_availability_test__"
	if err := keyring.Set(ServiceName, testKey, "test"); err != nil {
		return false
	}

	_ = keyring.Delete(ServiceName, testKey)
	return true
}

type envKeyring struct{}

func (k *envKeyring) GetKey() (string, error) {
	key := os.Getenv(EnvKey)
	if key == "" {
		return "", fmt.Errorf("%w: %s not set", ErrKeyNotFound, EnvKey)
	}

	return key, nil
}

func (k *envKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	return fmt.Errorf("key is managed by the %s environment variable", EnvKey)
}

func (k *envKeyring) DeleteKey() error {
	return fmt.Errorf("key is managed by the %s environment variable: unset it manually", EnvKey)
}

func (k *envKeyring) IsAvailable() bool {
	return os.Getenv(EnvKey) != ""
}
