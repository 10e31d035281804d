// Copryright (C) 2019 Yawning Angel
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

// Package cofb implements the COFB feedback mode over GIFT-128, following
// the designers' reference implementation.
package cofb

import (
	"crypto/subtle"

	"gitlab.com/yawning/slice.git"

	"gitlab.com/yawning/giftcofb.git/internal/api"
	"gitlab.com/yawning/giftcofb.git/internal/gift128"
)

const halfSize = api.BlockSize / 2

// Factory constructs portable software implementations.
var Factory api.Factory = &genericFactory{}

type genericFactory struct{}

func (f *genericFactory) Name() string {
	return "generic"
}

func (f *genericFactory) New(key []byte) api.Instance {
	var inst genericInstance
	copy(inst.key[:], key)

	return &inst
}

type genericInstance struct {
	key [gift128.KeySize]byte
}

func (inst *genericInstance) Reset() {
	for i := range inst.key {
		inst.key[i] = 0
	}
}

func (inst *genericInstance) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	ret, out := slice.ForAppend(dst, len(plaintext)+api.BlockSize)

	var st state
	st.init(inst.key[:], nonce)
	st.absorb(additionalData, len(plaintext) == 0)
	st.encrypt(out[:len(plaintext)], plaintext)
	st.tag(out[len(plaintext):])
	st.reset()

	return ret
}

func (inst *genericInstance) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, bool) {
	ptLen := len(ciphertext) - api.BlockSize
	ret, out := slice.ForAppend(dst, ptLen)

	var st state
	st.init(inst.key[:], nonce)
	st.absorb(additionalData, ptLen == 0)
	st.decrypt(out, ciphertext[:ptLen])

	var tagCmp [api.BlockSize]byte
	st.tag(tagCmp[:])
	st.reset()

	return ret, subtle.ConstantTimeCompare(ciphertext[ptLen:], tagCmp[:]) == 1
}

// state is the rolling mode state of one AEAD operation: the chaining block
// Y, the 64 bit mask delta, and the expanded round keys shared by every
// cipher call of the operation.  It is never shared across operations.
type state struct {
	y     [api.BlockSize]byte
	delta [halfSize]byte
	rk    *gift128.RoundKeys
}

// init derives the round keys, computes Y0 by encrypting the nonce, and
// seeds the mask with the top half of Y0.
func (st *state) init(key, nonce []byte) {
	st.rk = gift128.Expand(key)
	st.rk.Encrypt(st.y[:], nonce)
	copy(st.delta[:], st.y[:halfSize])
}

// absorb processes the associated data.  The final-block mask multipliers
// depend on whether the message that follows is empty, so the caller must
// say so up front.  Empty associated data still costs one cipher call on
// the padded empty block.
func (st *state) absorb(ad []byte, emptyMessage bool) {
	for len(ad) > api.BlockSize {
		st.double()
		st.feedback(ad[:api.BlockSize])
		ad = ad[api.BlockSize:]
	}

	st.triple()
	if len(ad) < api.BlockSize { // partial final block, or empty AD
		st.triple()
	}
	if emptyMessage {
		st.triple()
		st.triple()
	}
	st.feedback(ad)
}

// encrypt processes the message blocks in the encryption direction.
// Ciphertext is Y XOR plaintext; the feedback into the next cipher call is
// driven by the plaintext.
func (st *state) encrypt(dst, src []byte) {
	for len(src) > api.BlockSize {
		st.double()
		for i := 0; i < api.BlockSize; i++ {
			dst[i] = src[i] ^ st.y[i]
		}
		st.feedback(src[:api.BlockSize])
		src, dst = src[api.BlockSize:], dst[api.BlockSize:]
	}
	if len(src) == 0 {
		return
	}

	st.triple()
	if len(src) < api.BlockSize {
		st.triple()
	}
	for i := range src {
		dst[i] = src[i] ^ st.y[i]
	}
	st.feedback(src)
}

// decrypt is the mirror image: plaintext is Y XOR ciphertext, and the
// recovered plaintext drives the feedback, so both directions trace the
// same (Y, delta) trajectory.
func (st *state) decrypt(dst, src []byte) {
	for len(src) > api.BlockSize {
		st.double()
		for i := 0; i < api.BlockSize; i++ {
			dst[i] = src[i] ^ st.y[i]
		}
		st.feedback(dst[:api.BlockSize])
		src, dst = src[api.BlockSize:], dst[api.BlockSize:]
	}
	if len(src) == 0 {
		return
	}

	st.triple()
	if len(src) < api.BlockSize {
		st.triple()
	}
	for i := range src {
		dst[i] = src[i] ^ st.y[i]
	}
	st.feedback(dst[:len(src)])
}

// tag emits the authentication tag, the final chaining value.
func (st *state) tag(dst []byte) {
	copy(dst, st.y[:])
}

// reset attempts to clear the per-operation state.
func (st *state) reset() {
	for i := range st.y {
		st.y[i] = 0
	}
	for i := range st.delta {
		st.delta[i] = 0
	}
	st.rk.Reset()
	st.rk = nil
}

// feedback advances the chain one block: Y = E(G(Y) XOR pad(m) XOR
// (delta || 0^64)).
func (st *state) feedback(m []byte) {
	var x [api.BlockSize]byte
	pad(&x, m)

	st.applyG()
	for i := range x {
		x[i] ^= st.y[i]
	}
	for i, b := range st.delta {
		x[i] ^= b
	}

	st.rk.Encrypt(st.y[:], x[:])
}

// applyG replaces Y with G(Y): the halves (Y1, Y2) map to (Y2, Y1 <<< 1).
func (st *state) applyG() {
	var t [api.BlockSize]byte
	copy(t[:halfSize], st.y[halfSize:])
	for i := 0; i < halfSize-1; i++ {
		t[halfSize+i] = st.y[i]<<1 | st.y[i+1]>>7
	}
	t[api.BlockSize-1] = st.y[halfSize-1]<<1 | st.y[0]>>7
	st.y = t
}

// double multiplies the mask by x in GF(2^64) with the polynomial
// x^64 + x^4 + x^3 + x + 1, without branching on the carried-out bit.
func (st *state) double() {
	carry := byte(0)
	for i := halfSize - 1; i >= 0; i-- {
		b := st.delta[i]
		st.delta[i] = b<<1 | carry
		carry = b >> 7
	}

	mask := byte(0 - carry)
	st.delta[halfSize-1] ^= 0x1b & mask
}

// triple multiplies the mask by x+1.
func (st *state) triple() {
	old := st.delta
	st.double()
	for i := range st.delta {
		st.delta[i] ^= old[i]
	}
}

// pad builds one cipher input block from a final chunk: a full block passes
// through unchanged, anything shorter gets the 0x80 marker then zeros.  The
// padding never appears in externally visible plaintext or ciphertext.
func pad(dst *[api.BlockSize]byte, src []byte) {
	copy(dst[:], src)
	if len(src) < api.BlockSize {
		dst[len(src)] = 0x80
	}
}
