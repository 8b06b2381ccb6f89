package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"github.com/veertradingvadi-ship-it/laboros-sub001/config"
)

// 手机号 AES-GCM 对称加密，密文布局 nonce || ciphertext

var errInvalidCipherText = errors.New("invalid ciphertext payload")

func EncryptPhone(plain string) ([]byte, error) {
	key := []byte(config.Cfg.EncryptionKey)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	ciphertext := gcm.Seal(nil, nonce, []byte(plain), nil)

	return append(nonce, ciphertext...), nil
}

func DecryptPhone(raw []byte) (string, error) {
	key := []byte(config.Cfg.EncryptionKey)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(raw) < nonceSize {
		return "", errInvalidCipherText
	}

	nonce := raw[:nonceSize]
	ciphertext := raw[nonceSize:]

	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(plain), nil
}
