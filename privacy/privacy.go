// SPDX-License-Identifier: ice License 1.0

package privacy

import (
	"encoding/hex"

	"github.com/ericlagergren/siv"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	appCfg "github.com/ice-blockchain/playfab/config"
	"github.com/ice-blockchain/playfab/log"
)

// New returns nil when no secret is configured, values are then stored as they are.
func New(applicationYAMLKey string) EncryptDecrypter {
	var cfg config
	appCfg.MustLoadFromKey(applicationYAMLKey, &cfg)
	cfg.Privacy.Secret = appCfg.Env(applicationYAMLKey, "PLAYFAB_PRIVACY_SECRET", cfg.Privacy.Secret)
	if cfg.Privacy.Secret == "" {
		return nil
	}
	ed, err := NewEncryptDecrypter(cfg.Privacy.Secret)
	log.Panic(errors.Wrapf(err, "[%v] failed to build privacy encrypter", applicationYAMLKey)) //nolint:revive // That's intended.

	return ed
}

// NewEncryptDecrypter expects a hex encoded nonce followed by a 32 bytes AES key.
func NewEncryptDecrypter(secret string) (EncryptDecrypter, error) {
	decodedKey, err := hex.DecodeString(secret)
	if err != nil {
		return nil, multierror.Append(ErrInvalidSecret, errors.Wrap(err, "failed to decode key value"))
	}
	if len(decodedKey) != 32+siv.NonceSize {
		return nil, errors.Wrapf(ErrInvalidSecret, "we need 32+%v bytes key, got %v", siv.NonceSize, len(decodedKey))
	}
	aes256gcmsiv, err := siv.NewGCM(decodedKey[siv.NonceSize:])
	if err != nil {
		return nil, errors.Wrap(err, "failed to build aes gcm siv mode")
	}

	return &encryptDecrypter{
		AES256GCMSIVCipher: aes256gcmsiv,
		Nonce:              decodedKey[:siv.NonceSize],
	}, nil
}

func (e *encryptDecrypter) Encrypt(plaintext string) string {
	bytes := []byte(plaintext)

	return hex.EncodeToString(e.AES256GCMSIVCipher.Seal(bytes[:0], e.Nonce, bytes, nil))
}

func (e *encryptDecrypter) Decrypt(val string) (string, error) {
	decodedCiphertext, err := hex.DecodeString(val)
	if err != nil {
		return "", multierror.Append(errHexDecodingFailed, errors.Wrap(err, "failed to decode value"))
	}

	plaintext, err := e.AES256GCMSIVCipher.Open(decodedCiphertext[:0], e.Nonce, decodedCiphertext, nil)
	if err != nil {
		return "", multierror.Append(errDecryptionFailed, errors.Wrap(err, "failed to Open ciphertext"))
	}

	return string(plaintext), nil
}
