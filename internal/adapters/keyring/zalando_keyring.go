package keyring

import (
	"errors"

	"vdash/internal/ports"

	"github.com/zalando/go-keyring"
)

const service = "io.vdash.cli"

type ZalandoKeyring struct{}

func ProvideZalandoKeyring() ports.Keyring {
	return ZalandoKeyring{}
}

func (z ZalandoKeyring) GetKey(keyName string) (string, error) {
	return keyring.Get(service, keyName)
}

func (z ZalandoKeyring) SetKey(keyName string, keyValue string) error {
	return keyring.Set(service, keyName, keyValue)
}

func (z ZalandoKeyring) HasKey(keyName string) (bool, error) {
	_, err := keyring.Get(service, keyName)
	if errors.Is(err, keyring.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// DeleteKey removes the key; a missing key is not an error.
func (z ZalandoKeyring) DeleteKey(keyName string) error {
	err := keyring.Delete(service, keyName)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
