package common

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

const (
	mustGetRandomIntMaxBits = 5000
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// MustGetRandomInt panics if entropy cannot be gathered from rnd, or when
// bits is out of the sane range the core ever requests.
func MustGetRandomInt(rnd io.Reader, bits int) *big.Int {
	if bits <= 0 || mustGetRandomIntMaxBits < bits {
		panic(fmt.Errorf("MustGetRandomInt: bits should be positive, non-zero and less than %d", mustGetRandomIntMaxBits))
	}
	max := new(big.Int).Sub(new(big.Int).Exp(two, big.NewInt(int64(bits)), nil), one)
	n, err := rand.Int(rnd, max)
	if err != nil {
		panic(errors.Wrap(err, "rand.Int failure in MustGetRandomInt"))
	}
	return n
}

// GetRandomPositiveInt returns a uniformly random value in [0, lessThan).
func GetRandomPositiveInt(rnd io.Reader, lessThan *big.Int) *big.Int {
	if lessThan == nil || lessThan.Sign() <= 0 {
		return nil
	}
	for {
		try := MustGetRandomInt(rnd, lessThan.BitLen())
		if try.Cmp(lessThan) < 0 && try.Sign() >= 0 {
			return try
		}
	}
}

// GetRandomPositiveRelativelyPrimeInt returns a value in [0, n) coprime to n.
func GetRandomPositiveRelativelyPrimeInt(rnd io.Reader, n *big.Int) *big.Int {
	if n == nil || n.Sign() <= 0 {
		return nil
	}
	for {
		try := MustGetRandomInt(rnd, n.BitLen())
		if try.Sign() > 0 && try.Cmp(n) < 0 && isRelativelyPrime(try, n) {
			return try
		}
	}
}

func isRelativelyPrime(a, b *big.Int) bool {
	gcd := new(big.Int).GCD(nil, nil, a, b)
	return gcd.Cmp(one) == 0
}

// IsNumberInMultiplicativeGroup reports whether v is a valid member of
// (Z/nZ)*, i.e. 0 < v < n and gcd(v, n) == 1.
func IsNumberInMultiplicativeGroup(n, v *big.Int) bool {
	if v.Cmp(zero) <= 0 || v.Cmp(n) >= 0 {
		return false
	}
	return isRelativelyPrime(v, n)
}

// GetRandomGeneratorOfTheQuadraticResidue returns a random generator of the
// quadratic residue group RQn with high probability. Only valid when n is
// the product of two safe primes.
// https://github.com/didiercrunch/paillier/blob/d03e8850a8e4c53d04e8016a2ce8762af3278b71/utils.go#L39
func GetRandomGeneratorOfTheQuadraticResidue(rnd io.Reader, n *big.Int) *big.Int {
	r := GetRandomPositiveRelativelyPrimeInt(rnd, n)
	return new(big.Int).Mod(new(big.Int).Mul(r, r), n)
}

// GetRandomPrimeInt returns a random prime of the requested bit length.
func GetRandomPrimeInt(rnd io.Reader, bits int) *big.Int {
	if bits <= 0 {
		return nil
	}
	p, err := rand.Prime(rnd, bits)
	if err != nil {
		panic(errors.Wrap(err, "rand.Prime failure in GetRandomPrimeInt"))
	}
	return p
}

// modInt is a *big.Int that performs all of its arithmetic with modular
// reduction. The constructor is exported as ModInt (matching the call
// pattern common.ModInt(n).Mul(a, b) used throughout the CPI); the type
// itself stays unexported since callers only ever hold it transiently.
type modInt big.Int

func ModInt(mod *big.Int) *modInt {
	return (*modInt)(mod)
}

func (mi *modInt) i() *big.Int { return (*big.Int)(mi) }

func (mi *modInt) Add(x, y *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Add(x, y), mi.i())
}

func (mi *modInt) Sub(x, y *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Sub(x, y), mi.i())
}

func (mi *modInt) Div(x, y *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Div(x, y), mi.i())
}

func (mi *modInt) Mul(x, y *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Mul(x, y), mi.i())
}

func (mi *modInt) Exp(x, y *big.Int) *big.Int {
	return new(big.Int).Exp(x, y, mi.i())
}

func (mi *modInt) ModInverse(g *big.Int) *big.Int {
	return new(big.Int).ModInverse(g, mi.i())
}

// IsInInterval reports whether 0 <= b < bound.
func IsInInterval(b, bound *big.Int) bool {
	return b.Cmp(bound) < 0 && b.Sign() >= 0
}

// RejectionSample folds a hash digest down into [0, q) by re-hashing with a
// counter until the sample falls in range, per GG18/GG20 Fiat-Shamir
// challenge derivation.
func RejectionSample(q, eHash *big.Int) *big.Int {
	qBytesLen := len(q.Bytes())
	if qBytesLen > 32 {
		panic("RejectionSample: invalid q size")
	}
	auxiliary := new(big.Int).Set(eHash)
	e := new(big.Int).Set(q)
	for e.Cmp(q) >= 0 {
		auxiliary.Add(auxiliary, one)
		digest := SHA512_256(auxiliary.Bytes())
		e = new(big.Int).SetBytes(digest[:qBytesLen])
	}
	return e
}
