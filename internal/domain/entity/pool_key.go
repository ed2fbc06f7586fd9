package entity

import (
	"errors"
	"fmt"
	"strings"
)

// PoolKeySeparator divides the chain symbol from the pool address in a PoolKey.
const PoolKeySeparator = "_"

// ErrMalformedPoolKey is returned when a pool key has no separator.
var ErrMalformedPoolKey = errors.New("malformed pool key")

// PoolKey addresses a pool by chain and pool address, encoded as
// "<chainSymbol>_<poolAddress>". Decoding splits at the first separator, so
// pool addresses may contain the separator but chain symbols may not.
type PoolKey string

// PoolKeyObject is the structured form of a PoolKey.
type PoolKeyObject struct {
	ChainSymbol ChainSymbol `json:"chainSymbol"`
	PoolAddress string      `json:"poolAddress"`
}

// NewPoolKey encodes a chain symbol and a pool address into a PoolKey.
// Inputs are not validated.
func NewPoolKey(chainSymbol ChainSymbol, poolAddress string) PoolKey {
	return PoolKey(string(chainSymbol) + PoolKeySeparator + poolAddress)
}

// Key encodes the object into its PoolKey.
func (o PoolKeyObject) Key() PoolKey {
	return NewPoolKey(o.ChainSymbol, o.PoolAddress)
}

// String returns the string representation of the PoolKey.
func (k PoolKey) String() string {
	return string(k)
}

// Object decodes the key back into its chain symbol and pool address.
// A key without a separator yields ErrMalformedPoolKey.
func (k PoolKey) Object() (PoolKeyObject, error) {
	chainSymbol, poolAddress, found := strings.Cut(string(k), PoolKeySeparator)
	if !found {
		return PoolKeyObject{}, fmt.Errorf("%w: %q has no %q separator", ErrMalformedPoolKey, string(k), PoolKeySeparator)
	}
	return PoolKeyObject{ChainSymbol: ChainSymbol(chainSymbol), PoolAddress: poolAddress}, nil
}

// ParsePoolKey decodes a raw pool key string.
func ParsePoolKey(raw string) (PoolKeyObject, error) {
	return PoolKey(raw).Object()
}
