package store

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLength        = 32
	keyIterations    = 100_000
	payloadSeparator = ":"
)

var keySalt = []byte("stock-insight-reference-table")

var (
	ErrMissingSecret  = errors.New("store: SECRET_KEY não configurada")
	ErrInvalidPayload = errors.New("store: payload criptografado inválido")
)

// Cipher criptografa payloads com AES-256-CBC no formato "<ivHex>:<cipherHex>"
type Cipher struct {
	key []byte
}

func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Cipher{
		key: pbkdf2.Key([]byte(secret), keySalt, keyIterations, keyLength, sha256.New),
	}, nil
}

func (c *Cipher) Encrypt(plain []byte) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("store: falha ao gerar IV: %w", err)
	}

	padded := pkcs7Pad(plain, aes.BlockSize)
	encrypted := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(encrypted, padded)

	return hex.EncodeToString(iv) + payloadSeparator + hex.EncodeToString(encrypted), nil
}

func (c *Cipher) Decrypt(payload string) ([]byte, error) {
	ivHex, dataHex, found := strings.Cut(strings.TrimSpace(payload), payloadSeparator)
	if !found {
		return nil, ErrInvalidPayload
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != aes.BlockSize {
		return nil, ErrInvalidPayload
	}

	data, err := hex.DecodeString(dataHex)
	if err != nil || len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, ErrInvalidPayload
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}

	plain := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, data)

	return pkcs7Unpad(plain, aes.BlockSize)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(append([]byte{}, data...), bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidPayload
	}

	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, ErrInvalidPayload
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, ErrInvalidPayload
		}
	}

	return data[:len(data)-padding], nil
}
