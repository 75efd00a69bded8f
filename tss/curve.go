package tss

import (
	"crypto/elliptic"
	"errors"
	"reflect"

	"github.com/btcsuite/btcd/btcec/v2"
)

// CurveName identifies one of the elliptic curves the core knows how to
// bind a protocol session to. The spec's scope is secp256k1 ECDSA only;
// the registry is still a lookup table (not a single global) because
// every component that consumes a curve (VSS, Paillier range proofs,
// DLog proofs) takes it as an explicit parameter rather than reading a
// package-level variable, so tests can run several curves side by side.
type CurveName string

const (
	Secp256k1 CurveName = "secp256k1"
)

var registry = map[CurveName]elliptic.Curve{
	Secp256k1: btcec.S256(),
}

// RegisterCurve makes an additional curve available by name to
// GetCurveByName and GetCurveName, for exercising the core against a
// non-default curve; production sessions use S256 via Secp256k1.
func RegisterCurve(name CurveName, curve elliptic.Curve) {
	registry[name] = curve
}

func GetCurveByName(name CurveName) (elliptic.Curve, bool) {
	c, ok := registry[name]
	return c, ok
}

func GetCurveName(curve elliptic.Curve) (CurveName, bool) {
	for name, c := range registry {
		if reflect.TypeOf(curve) == reflect.TypeOf(c) {
			return name, true
		}
	}
	return "", false
}

// S256 returns the secp256k1 curve used by every ECDSA protocol in this
// module.
func S256() elliptic.Curve {
	return btcec.S256()
}

// EC is the default curve accessor used throughout the CPI and PSM
// packages wherever a curve isn't threaded explicitly through
// Parameters — every protocol in this module is secp256k1-only, so it
// is always S256.
func EC() elliptic.Curve {
	return S256()
}

func mustCurve(curve elliptic.Curve) elliptic.Curve {
	if curve == nil {
		panic(errors.New("tss: nil curve"))
	}
	return curve
}
