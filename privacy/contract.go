// SPDX-License-Identifier: ice License 1.0

package privacy

import (
	"crypto/cipher"

	"github.com/pkg/errors"
)

// Public API.

var (
	ErrInvalidSecret = errors.New("invalid secret")
)

type (
	// EncryptDecrypter is deterministic: the same plaintext always yields the same ciphertext.
	EncryptDecrypter interface {
		Encrypt(string) string
		Decrypt(string) (string, error)
	}
)

// Private API.

var (
	errHexDecodingFailed = errors.New("failed to hex decode value")
	errDecryptionFailed  = errors.New("failed to decrypt value")
)

type (
	encryptDecrypter struct {
		AES256GCMSIVCipher cipher.AEAD
		Nonce              []byte
	}
	config struct {
		Privacy struct {
			Secret string `yaml:"secret" mapstructure:"secret"`
		} `yaml:"playfab/privacy" mapstructure:"playfab/privacy"` //nolint:tagliatelle // Nope.
	}
)
