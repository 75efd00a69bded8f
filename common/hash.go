package common

import (
	"crypto"
	_ "crypto/sha512"
	"encoding/binary"
	"math/big"
)

const hashInputDelimiter = byte('$')

// SHA512_256 hashes in as a tuple: the part count comes first, and each
// part is followed by a delimiter byte and its 8-byte length, so that no
// ambiguous byte stream maps to two distinct input tuples. SHA-512/256 is preferred over
// SHA-256 here: it resists length-extension and runs faster on 64-bit
// hardware.
func SHA512_256(in ...[]byte) []byte {
	if len(in) == 0 {
		return nil
	}
	state := crypto.SHA512_256.New()
	countBz := make([]byte, 8)
	binary.LittleEndian.PutUint64(countBz, uint64(len(in)))
	_, _ = state.Write(countBz)
	for _, bz := range in {
		_, _ = state.Write(bz)
		_, _ = state.Write([]byte{hashInputDelimiter})
		lenBz := make([]byte, 8)
		binary.LittleEndian.PutUint64(lenBz, uint64(len(bz)))
		_, _ = state.Write(lenBz)
	}
	return state.Sum(nil)
}

// SHA512_256i hashes a tuple of big integers, used for every Fiat-Shamir
// challenge derivation in the CPI proofs.
func SHA512_256i(in ...*big.Int) *big.Int {
	parts := make([][]byte, len(in))
	for i, n := range in {
		parts[i] = n.Bytes()
	}
	return new(big.Int).SetBytes(SHA512_256(parts...))
}
