package tss

import (
	"fmt"
	"math/big"
	"sort"
)

// PartyID names one participant in a session: a stable moniker for logs
// and errors, an opaque transport key for routing, and the big.Int share
// index (x-coordinate) the CPI uses for Lagrange interpolation.
type PartyID struct {
	Moniker string
	Key     []byte
	Index   int
}

func NewPartyID(key []byte, moniker string) *PartyID {
	return &PartyID{Moniker: moniker, Key: key}
}

func (pid *PartyID) String() string {
	if pid == nil {
		return "nil"
	}
	return fmt.Sprintf("%s{%d,%x}", pid.Moniker, pid.Index, pid.Key)
}

// KeyInt returns the share index as a big.Int, the form every VSS and
// Lagrange-coefficient computation needs. GG18/GG20 index participants
// starting at 1 so that 0 can never be mistaken for a legitimate share
// point, hence the +1 offset.
func (pid *PartyID) KeyInt() *big.Int {
	return big.NewInt(int64(pid.Index) + 1)
}

func (pid *PartyID) Equals(other *PartyID) bool {
	if pid == nil || other == nil {
		return false
	}
	if len(pid.Key) != len(other.Key) {
		return false
	}
	for i := range pid.Key {
		if pid.Key[i] != other.Key[i] {
			return false
		}
	}
	return true
}

// SortedPartyIDs is the canonical, deterministic ordering every
// participant must agree on before a session starts: sorted by Key,
// with Index assigned by rank. Two honest parties independently sorting
// the same participant set always produce identical Index assignments.
type SortedPartyIDs []*PartyID

func (spids SortedPartyIDs) Len() int      { return len(spids) }
func (spids SortedPartyIDs) Swap(i, j int) { spids[i], spids[j] = spids[j], spids[i] }
func (spids SortedPartyIDs) Less(i, j int) bool {
	a := new(big.Int).SetBytes(spids[i].Key)
	b := new(big.Int).SetBytes(spids[j].Key)
	return a.Cmp(b) < 0
}

func (spids SortedPartyIDs) Keys() []*big.Int {
	keys := make([]*big.Int, len(spids))
	for i, pid := range spids {
		keys[i] = pid.KeyInt()
	}
	return keys
}

func (spids SortedPartyIDs) FindByKey(key []byte) (int, *PartyID) {
	for i, pid := range spids {
		if string(pid.Key) == string(key) {
			return i, pid
		}
	}
	return -1, nil
}

// SortPartyIDs sorts the supplied ids and stamps each with its canonical
// Index. The caller passes the same unsorted slice on every participant;
// the result is identical everywhere by construction.
func SortPartyIDs(ids []*PartyID) SortedPartyIDs {
	sorted := make(SortedPartyIDs, len(ids))
	copy(sorted, ids)
	sort.Sort(sorted)
	for i, pid := range sorted {
		pid.Index = i
	}
	return sorted
}
