// Copryright (C) 2019 Yawning Angel
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package gift128

import (
	"crypto/rand"
	"encoding/hex"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectors(t *testing.T) {
	require := require.New(t)

	// GIFT-COFB specification appendix test vector.
	key, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	pt, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	expected, _ := hex.DecodeString("a94af7f9ba181df9b2b00eb7dbfa93df")

	var ct [BlockSize]byte
	rk := Expand(key)
	rk.Encrypt(ct[:], pt)
	require.EqualValues(expected, ct[:], "Encrypt() - spec vector")

	// All zero key and plaintext.
	zeros := make([]byte, BlockSize)
	expected, _ = hex.DecodeString("5e8e3a2e1697a77dcc0b89dcd97a64ee")
	rk = Expand(zeros)
	rk.Encrypt(ct[:], zeros)
	require.EqualValues(expected, ct[:], "Encrypt() - zero vector")
}

func TestEncryptInPlace(t *testing.T) {
	require := require.New(t)

	key := make([]byte, KeySize)
	blk := make([]byte, BlockSize)
	_, _ = rand.Read(key)
	_, _ = rand.Read(blk)

	rk := Expand(key)

	var out [BlockSize]byte
	rk.Encrypt(out[:], blk)

	rk.Encrypt(blk, blk)
	require.EqualValues(out[:], blk, "Encrypt() - in-place matches out-of-place")
}

func TestInjectivity(t *testing.T) {
	require := require.New(t)

	key := make([]byte, KeySize)
	_, _ = rand.Read(key)
	rk := Expand(key)

	// Every single-bit plaintext maps to a distinct ciphertext.
	seen := make(map[[BlockSize]byte]bool)
	var pt, ct [BlockSize]byte
	for i := 0; i < BlockSize*8; i++ {
		for j := range pt {
			pt[j] = 0
		}
		pt[i/8] = 1 << uint(i%8)
		rk.Encrypt(ct[:], pt[:])
		require.False(seen[ct], "Encrypt() - collision at bit %d", i)
		seen[ct] = true
	}
}

func TestRowPerm(t *testing.T) {
	require := require.New(t)

	// The bit permutation must be a bijection on bit positions: each of the
	// 32 single-bit inputs maps to a distinct single-bit output, and the
	// population count is always preserved.
	for _, row := range [][4]uint{
		{0, 3, 2, 1},
		{1, 0, 3, 2},
		{2, 1, 0, 3},
		{3, 2, 1, 0},
	} {
		seen := make(map[uint32]bool)
		for i := uint(0); i < 32; i++ {
			out := rowPerm(1<<i, row[0], row[1], row[2], row[3])
			require.Equal(1, bits.OnesCount32(out), "rowPerm() - bit %d fanout", i)
			require.False(seen[out], "rowPerm() - bit %d collision", i)
			seen[out] = true
		}
	}

	var buf [4]byte
	for i := 0; i < 100; i++ {
		_, _ = rand.Read(buf[:])
		s := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
		out := rowPerm(s, 0, 3, 2, 1)
		require.Equal(bits.OnesCount32(s), bits.OnesCount32(out), "rowPerm() - popcount")
	}
}

func TestExpand(t *testing.T) {
	require := require.New(t)

	key := make([]byte, KeySize)
	_, _ = rand.Read(key)

	// Expansion is deterministic and leaves the caller's key untouched.
	keyCopy := append([]byte{}, key...)
	a, b := Expand(key), Expand(key)
	require.EqualValues(a, b, "Expand() - deterministic")
	require.EqualValues(keyCopy, key, "Expand() - key unmodified")

	a.Reset()
	var zero RoundKeys
	require.EqualValues(&zero, a, "Reset() - round keys cleared")
}
