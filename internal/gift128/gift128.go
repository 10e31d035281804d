// Copryright (C) 2019 Yawning Angel
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

// Package gift128 implements the GIFT-128 block cipher in the bit-sliced
// word representation used by the GIFT-COFB specification.  Only the
// forward (encrypting) direction exists, as that is all the mode requires.
package gift128

import (
	"encoding/binary"
	"math/bits"
)

const (
	// BlockSize is the block size in bytes.
	BlockSize = 16

	// KeySize is the key size in bytes.
	KeySize = 16

	rounds = 40
)

// roundConstants is the published 6-bit LFSR output, one entry per round.
var roundConstants = [rounds]uint32{
	0x01, 0x03, 0x07, 0x0f, 0x1f, 0x3e, 0x3d, 0x3b, 0x37, 0x2f,
	0x1e, 0x3c, 0x39, 0x33, 0x27, 0x0e, 0x1d, 0x3a, 0x35, 0x2b,
	0x16, 0x2c, 0x18, 0x30, 0x21, 0x02, 0x05, 0x0b, 0x17, 0x2e,
	0x1c, 0x38, 0x31, 0x23, 0x06, 0x0d, 0x1b, 0x36, 0x2d, 0x1a,
}

// RoundKeys is the expanded key, one two-word subkey per round.  It is
// immutable after Expand and owned by a single sequence of Encrypt calls.
type RoundKeys [rounds][2]uint32

// Expand derives the per-round subkeys from a 16 byte key.
//
// The key state is eight big-endian 16-bit words.  Each round the subkey
// is (W2||W3, W6||W7); the state then rotates W6 right by 2, W7 right by
// 12, and shifts the word vector down by two positions.
func Expand(key []byte) *RoundKeys {
	_ = key[KeySize-1]

	var w [8]uint16
	for i := range w {
		w[i] = binary.BigEndian.Uint16(key[2*i:])
	}

	var rk RoundKeys
	for round := 0; round < rounds; round++ {
		rk[round][0] = uint32(w[2])<<16 | uint32(w[3])
		rk[round][1] = uint32(w[6])<<16 | uint32(w[7])

		t6 := bits.RotateLeft16(w[6], -2)
		t7 := bits.RotateLeft16(w[7], -12)
		w = [8]uint16{t6, t7, w[0], w[1], w[2], w[3], w[4], w[5]}
	}

	return &rk
}

// Reset attempts to clear the expanded key material.
func (rk *RoundKeys) Reset() {
	for i := range rk {
		rk[i][0] = 0
		rk[i][1] = 0
	}
}

// Encrypt computes dst = E_rk(src) for one 16 byte block.  dst and src may
// overlap.
func (rk *RoundKeys) Encrypt(dst, src []byte) {
	s0 := binary.BigEndian.Uint32(src[0:4])
	s1 := binary.BigEndian.Uint32(src[4:8])
	s2 := binary.BigEndian.Uint32(src[8:12])
	s3 := binary.BigEndian.Uint32(src[12:16])

	for round := 0; round < rounds; round++ {
		// SubCells
		s1 ^= s0 & s2
		s0 ^= s1 & s3
		s2 ^= s0 | s1
		s3 ^= s2
		s1 ^= s3
		s3 = ^s3
		s2 ^= s0 & s1
		s0, s3 = s3, s0

		// PermBits
		s0 = rowPerm(s0, 0, 3, 2, 1)
		s1 = rowPerm(s1, 1, 0, 3, 2)
		s2 = rowPerm(s2, 2, 1, 0, 3)
		s3 = rowPerm(s3, 3, 2, 1, 0)

		// AddRoundKey, round constant
		s2 ^= rk[round][0]
		s1 ^= rk[round][1]
		s3 ^= 0x80000000 ^ roundConstants[round]
	}

	binary.BigEndian.PutUint32(dst[0:4], s0)
	binary.BigEndian.PutUint32(dst[4:8], s1)
	binary.BigEndian.PutUint32(dst[8:12], s2)
	binary.BigEndian.PutUint32(dst[12:16], s3)
}

// rowPerm redistributes the bits of one state word: the b-th bit of nibble
// row i moves to position b + 8*bi.  This is the word-sliced form of the
// published GIFT-128 bit permutation.
func rowPerm(s uint32, b0, b1, b2, b3 uint) uint32 {
	var t uint32
	for b := uint(0); b < 8; b++ {
		t |= ((s >> (4 * b)) & 1) << (b + 8*b0)
		t |= ((s >> (4*b + 1)) & 1) << (b + 8*b1)
		t |= ((s >> (4*b + 2)) & 1) << (b + 8*b2)
		t |= ((s >> (4*b + 3)) & 1) << (b + 8*b3)
	}
	return t
}
