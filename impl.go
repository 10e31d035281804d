// Copryright (C) 2019 Yawning Angel
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

// Package giftcofb implements the GIFT-COFB AEAD algorithm.
package giftcofb

import (
	"crypto/cipher"
	"errors"

	"gitlab.com/yawning/giftcofb.git/internal/api"
	"gitlab.com/yawning/giftcofb.git/internal/cofb"
)

const (
	// KeySize is the GIFT-COFB key size in bytes.
	KeySize = 16

	// NonceSize is the GIFT-COFB nonce size in bytes.
	NonceSize = 16

	// TagSize is the GIFT-COFB authentication tag size in bytes.
	TagSize = 16
)

var (
	// ErrNoImplementations is the error returned when there are no working
	// implementations.
	ErrNoImplementations = errors.New("giftcofb: no working implementations")

	// ErrInvalidKeySize is the error returned when the key size is invalid.
	ErrInvalidKeySize = errors.New("giftcofb: invalid key size")

	// ErrInvalidNonceSize is the error returned/paniced when the nonce size
	// is invalid.
	ErrInvalidNonceSize = errors.New("giftcofb: invalid nonce size")

	// ErrOpen is the error returned when the message authentication fails
	// durring an Open call.
	ErrOpen = errors.New("giftcofb: message authentication failure")

	chosenFactory      api.Factory
	supportedFactories []api.Factory
)

type aeadInstance struct {
	inner api.Instance
}

func (aead *aeadInstance) NonceSize() int {
	return NonceSize
}

func (aead *aeadInstance) Overhead() int {
	return TagSize
}

func (aead *aeadInstance) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != NonceSize {
		panic(ErrInvalidNonceSize)
	}

	return aead.inner.Seal(dst, nonce, plaintext, additionalData)
}

func (aead *aeadInstance) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonceSize
	}
	if len(ciphertext) < TagSize {
		return nil, ErrOpen
	}

	var ok bool
	dst, ok = aead.inner.Open(dst, nonce, ciphertext, additionalData)
	if !ok {
		// Callers never get to see unauthenticated plaintext.
		for i := range dst {
			dst[i] = 0
		}
		return nil, ErrOpen
	}

	return dst, nil
}

func (aead *aeadInstance) Reset() {
	aead.inner.Reset()
}

// New creates a new GIFT-COFB instance with the provided key.
func New(key []byte) (cipher.AEAD, error) {
	if chosenFactory == nil {
		return nil, ErrNoImplementations
	}
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}

	return &aeadInstance{
		inner: chosenFactory.New(key),
	}, nil
}

func init() {
	// The portable implementation is always present.  Accelerated backends
	// would be prepended here.
	supportedFactories = append(supportedFactories, cofb.Factory)
	chosenFactory = supportedFactories[0]
}
