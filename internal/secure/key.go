package secure

import (
	"errors"
	"fmt"

	"github.com/julianstephens/progresio/internal/keyring"
	"github.com/julianstephens/progresio/internal/logger"
)

// LoadKey resolves the field-encryption key. An explicit encoded key (from
// the environment) wins over the OS keyring. When create is set and neither
// source has a key, a new one is generated and stored in the keyring.
func LoadKey(explicit string, create bool) ([]byte, error) {
	if explicit != "" {
		return DecodeKey(explicit)
	}

	encoded, err := keyring.GetEncryptionKey()
	if err == nil {
		return DecodeKey(encoded)
	}
	if !errors.Is(err, keyring.ErrNotFound) || !create {
		return nil, err
	}

	key, err := NewKey()
	if err != nil {
		return nil, err
	}
	if err := keyring.SetEncryptionKey(EncodeKey(key)); err != nil {
		return nil, fmt.Errorf("saving new encryption key: %w", err)
	}
	logger.Info("Generated new field-encryption key")
	return key, nil
}
