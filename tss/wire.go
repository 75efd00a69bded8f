package tss

import (
	"crypto/elliptic"
	"math/big"

	"github.com/pkg/errors"
)

// This file implements the byte-exact wire encodings demanded by §6.3:
// fixed-width big integers, uncompressed 0x04-prefixed curve points,
// and 32-byte big-endian scalars. A general-purpose message framework
// (protobuf and similar) naturally varint-encodes integers, which is
// incompatible with the fixed-width, cross-implementation-compatible
// form this protocol family is required to produce on the wire; hand
// rolling a small binary codec over encoding/binary is the direct way
// to get exactly the byte layout other GG18/GG20 implementations
// expect. See DESIGN.md for the full justification.

const (
	ScalarWidth   = 32
	PointWidth    = 65
	pointPrefix   = 0x04
)

// EncodeScalar renders x as a fixed 32-byte big-endian integer, padding
// on the left with zeroes. x must fit in 32 bytes.
func EncodeScalar(x *big.Int) ([]byte, error) {
	return EncodeBigIntFixed(x, ScalarWidth)
}

func DecodeScalar(bz []byte) (*big.Int, error) {
	if len(bz) != ScalarWidth {
		return nil, errors.Errorf("tss: scalar must be %d bytes, got %d", ScalarWidth, len(bz))
	}
	return new(big.Int).SetBytes(bz), nil
}

// EncodeBigIntFixed renders n as exactly width big-endian bytes. It
// errors rather than silently truncating when n overflows width, since
// a silent truncation would desynchronize every peer's reconstruction
// of the value.
func EncodeBigIntFixed(n *big.Int, width int) ([]byte, error) {
	if n == nil {
		return nil, errors.New("tss: nil big.Int")
	}
	if n.Sign() < 0 {
		return nil, errors.New("tss: cannot fixed-width encode a negative integer")
	}
	raw := n.Bytes()
	if len(raw) > width {
		return nil, errors.Errorf("tss: value needs %d bytes, exceeds fixed width %d", len(raw), width)
	}
	out := make([]byte, width)
	copy(out[width-len(raw):], raw)
	return out, nil
}

func DecodeBigIntFixed(bz []byte) *big.Int {
	return new(big.Int).SetBytes(bz)
}

// EncodePoint renders an elliptic curve point in uncompressed SEC1 form:
// a single 0x04 prefix byte followed by the 32-byte big-endian X and Y
// coordinates, for cross-implementation wire compatibility.
func EncodePoint(x, y *big.Int) ([]byte, error) {
	xb, err := EncodeBigIntFixed(x, ScalarWidth)
	if err != nil {
		return nil, errors.Wrap(err, "tss: encode point X")
	}
	yb, err := EncodeBigIntFixed(y, ScalarWidth)
	if err != nil {
		return nil, errors.Wrap(err, "tss: encode point Y")
	}
	out := make([]byte, 0, PointWidth)
	out = append(out, pointPrefix)
	out = append(out, xb...)
	out = append(out, yb...)
	return out, nil
}

// DecodePoint parses the uncompressed SEC1 form produced by EncodePoint
// and verifies the result lies on curve.
func DecodePoint(curve elliptic.Curve, bz []byte) (x, y *big.Int, err error) {
	if len(bz) != PointWidth {
		return nil, nil, errors.Errorf("tss: point must be %d bytes, got %d", PointWidth, len(bz))
	}
	if bz[0] != pointPrefix {
		return nil, nil, errors.Errorf("tss: point prefix must be 0x04, got 0x%02x", bz[0])
	}
	x = new(big.Int).SetBytes(bz[1:33])
	y = new(big.Int).SetBytes(bz[33:65])
	if !curve.IsOnCurve(x, y) {
		return nil, nil, errors.New("tss: decoded point is not on curve")
	}
	return x, y, nil
}
