// Package crypto holds the Crypto Primitive Interface's value types:
// curve points, and (in its subpackages) Paillier keys, VSS shares,
// commitments and the various proof systems the protocol state
// machines consume as black boxes.
package crypto

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync/atomic"

	"github.com/go-tss/tss-core/common"
	"github.com/go-tss/tss-core/tss"
)

// ECPoint represents a point on an elliptic curve in affine form. Its
// coordinates never change after construction; SetCurve replaces the
// curve in place.
type ECPoint struct {
	curve  elliptic.Curve
	coords [2]*big.Int
	// on-curve validity is cached with atomic ops to avoid a data race
	// when ValidateBasic is called concurrently from several MtA goroutines.
	onCurveKnown uint32
}

// NewECPoint builds an ECPoint and checks that X, Y lie on curve.
func NewECPoint(curve elliptic.Curve, X, Y *big.Int) (*ECPoint, error) {
	if !isOnCurve(curve, X, Y) {
		return nil, fmt.Errorf("NewECPoint: the given point is not on the elliptic curve")
	}
	return &ECPoint{curve, [2]*big.Int{X, Y}, 1}, nil
}

// NewECPointNoCurveCheck skips the on-curve check. Only call this when
// the point is already known to be valid (e.g. freshly produced by a
// curve operation).
func NewECPointNoCurveCheck(curve elliptic.Curve, X, Y *big.Int) *ECPoint {
	return &ECPoint{curve, [2]*big.Int{X, Y}, 0}
}

// NewECPointFromBytes decodes the §6.3 uncompressed wire form (0x04 ||
// X || Y, 65 bytes) produced by tss.EncodePoint.
func NewECPointFromBytes(curve elliptic.Curve, bz []byte) (*ECPoint, error) {
	x, y, err := tss.DecodePoint(curve, bz)
	if err != nil {
		return nil, err
	}
	return NewECPointNoCurveCheck(curve, x, y), nil
}

func (p *ECPoint) X() *big.Int {
	return new(big.Int).Set(p.coords[0])
}

func (p *ECPoint) Y() *big.Int {
	return new(big.Int).Set(p.coords[1])
}

func (p *ECPoint) Add(b *ECPoint) (*ECPoint, error) {
	x, y := p.curve.Add(p.X(), p.Y(), b.X(), b.Y())
	return NewECPoint(p.curve, x, y)
}

func (p *ECPoint) Sub(b *ECPoint) (*ECPoint, error) {
	return p.Add(b.Neg())
}

func (p *ECPoint) Neg() *ECPoint {
	order := p.curve.Params().P
	negY := new(big.Int).Neg(p.Y())
	negY.Mod(negY, order)
	return NewECPointNoCurveCheck(p.curve, p.X(), negY)
}

func (p *ECPoint) ScalarMultBytes(k []byte) *ECPoint {
	x, y := p.curve.ScalarMult(p.X(), p.Y(), k)
	newP, _ := NewECPoint(p.curve, x, y) // must be on curve
	return newP
}

func (p *ECPoint) ScalarMult(k *big.Int) *ECPoint {
	return p.ScalarMultBytes(k.Bytes())
}

func (p *ECPoint) IsOnCurve() bool {
	return isOnCurve(p.curve, p.coords[0], p.coords[1])
}

func (p *ECPoint) Equals(b *ECPoint) bool {
	if p == nil || b == nil {
		return false
	}
	return p.X().Cmp(b.X()) == 0 && p.Y().Cmp(b.Y()) == 0
}

func (p *ECPoint) SetCurve(curve elliptic.Curve) *ECPoint {
	p.curve = curve
	return p
}

func (p *ECPoint) ValidateBasic() bool {
	onCurveKnown := atomic.LoadUint32(&p.onCurveKnown) == 1
	res := p != nil && p.coords[0] != nil && p.coords[1] != nil && (onCurveKnown || p.IsOnCurve())
	if res && !onCurveKnown {
		atomic.StoreUint32(&p.onCurveKnown, 1)
	}
	return res
}

// Bytes renders the §6.3 wire form: 0x04 prefix, 32-byte X, 32-byte Y.
func (p *ECPoint) Bytes() ([]byte, error) {
	return tss.EncodePoint(p.coords[0], p.coords[1])
}

func (p *ECPoint) ToECDSAPubKey() *ecdsa.PublicKey {
	return &ecdsa.PublicKey{
		Curve: p.curve,
		X:     p.X(),
		Y:     p.Y(),
	}
}

// ----- //

func isOnCurve(c elliptic.Curve, x, y *big.Int) bool {
	if x == nil || y == nil || c == nil {
		return false
	}
	return c.IsOnCurve(x, y)
}

func ScalarBaseMult(curve elliptic.Curve, k *big.Int) *ECPoint {
	x, y := curve.ScalarBaseMult(k.Bytes())
	p, _ := NewECPoint(curve, x, y)
	return p
}

// DecompressPoint recovers Y from X and a sign bit for secp256k1 — used
// by ECBasePoint2 to turn a hash into a curve point.
func DecompressPoint(curve elliptic.Curve, x *big.Int, sign byte) (*ECPoint, error) {
	if curve == nil || x == nil {
		return nil, errors.New("DecompressPoint: nil curve or x")
	}
	params := curve.Params()
	modP := common.ModInt(params.P)

	// secp256k1: y^2 = x^3 + 7
	x3 := new(big.Int).Mul(x, x)
	x3.Mul(x3, x)
	y2 := modP.Add(x3, big.NewInt(7))

	// p ≡ 3 (mod 4) for secp256k1, so y = y2^((p+1)/4) mod p is a square
	// root candidate whenever one exists.
	exponent := new(big.Int).Rsh(new(big.Int).Add(params.P, big.NewInt(1)), 2)
	y := modP.Exp(y2, exponent)
	if modP.Exp(y, big.NewInt(2)).Cmp(y2) != 0 {
		return nil, errors.New("DecompressPoint: invalid point, no square root")
	}
	if y.Bit(0) != uint(sign)&1 {
		y = modP.Sub(big.NewInt(0), y)
	}
	return &ECPoint{curve: curve, coords: [2]*big.Int{x, y}}, nil
}

// ----- //

func FlattenECPoints(in []*ECPoint) ([]*big.Int, error) {
	if in == nil {
		return nil, errors.New("FlattenECPoints: nil input")
	}
	flat := make([]*big.Int, 0, len(in)*2)
	for _, point := range in {
		if point == nil || point.coords[0] == nil || point.coords[1] == nil {
			return nil, errors.New("FlattenECPoints: nil point/coordinate")
		}
		flat = append(flat, point.coords[0], point.coords[1])
	}
	return flat, nil
}

func UnFlattenECPoints(curve elliptic.Curve, in []*big.Int, noCurveCheck ...bool) ([]*ECPoint, error) {
	if in == nil || len(in)%2 != 0 {
		return nil, errors.New("UnFlattenECPoints: len must be divisible by 2")
	}
	var err error
	unFlat := make([]*ECPoint, len(in)/2)
	for i, j := 0, 0; i < len(in); i, j = i+2, j+1 {
		if len(noCurveCheck) == 0 || !noCurveCheck[0] {
			unFlat[j], err = NewECPoint(curve, in[i], in[i+1])
			if err != nil {
				return nil, err
			}
		} else {
			unFlat[j] = NewECPointNoCurveCheck(curve, in[i], in[i+1])
		}
	}
	return unFlat, nil
}

// ----- //
// Gob helpers, used when the protocol packages' wire.go gob-encode round
// payloads that carry points.

func (p *ECPoint) GobEncode() ([]byte, error) {
	buf := &bytes.Buffer{}
	x, err := p.coords[0].GobEncode()
	if err != nil {
		return nil, err
	}
	y, err := p.coords[1].GobEncode()
	if err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(x))); err != nil {
		return nil, err
	}
	buf.Write(x)
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(y))); err != nil {
		return nil, err
	}
	buf.Write(y)
	return buf.Bytes(), nil
}

func (p *ECPoint) GobDecode(buf []byte) error {
	reader := bytes.NewReader(buf)
	var length uint32
	if err := binary.Read(reader, binary.LittleEndian, &length); err != nil {
		return err
	}
	x := make([]byte, length)
	if n, err := reader.Read(x); n != int(length) || err != nil {
		return fmt.Errorf("gob decode failed: %v", err)
	}
	if err := binary.Read(reader, binary.LittleEndian, &length); err != nil {
		return err
	}
	y := make([]byte, length)
	if n, err := reader.Read(y); n != int(length) || err != nil {
		return fmt.Errorf("gob decode failed: %v", err)
	}
	X, Y := new(big.Int), new(big.Int)
	if err := X.GobDecode(x); err != nil {
		return err
	}
	if err := Y.GobDecode(y); err != nil {
		return err
	}
	p.curve = tss.S256()
	p.coords = [2]*big.Int{X, Y}
	if !p.IsOnCurve() {
		return errors.New("ECPoint.GobDecode: decoded point is not on the elliptic curve")
	}
	return nil
}

func (p *ECPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Coords [2]*big.Int
	}{Coords: p.coords})
}

func (p *ECPoint) UnmarshalJSON(payload []byte) error {
	aux := &struct {
		Coords [2]*big.Int
	}{}
	if err := json.Unmarshal(payload, &aux); err != nil {
		return err
	}
	p.curve = tss.S256()
	p.coords = [2]*big.Int{aux.Coords[0], aux.Coords[1]}
	if !p.IsOnCurve() {
		return errors.New("ECPoint.UnmarshalJSON: decoded point is not on the elliptic curve")
	}
	return nil
}
