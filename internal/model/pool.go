package model

import "fmt"

// PoolIdentity describes one configured pool and the token under analysis.
type PoolIdentity struct {
	Label             string
	PoolAddress       string
	AltTokenAddress   string
	QuoteTokenAddress string
}

// TokenRole records which pool slot holds the alt token. Token0 and Token1
// are the lowercased on-chain slot addresses the role was derived from.
type TokenRole struct {
	AltIsToken0 bool
	Token0      string
	Token1      string
}

// QuoteSlotAddress returns the address of the slot opposite the alt token.
func (r TokenRole) QuoteSlotAddress() string {
	if r.AltIsToken0 {
		return r.Token1
	}
	return r.Token0
}

// RoleMismatchError reports an alt token that matches neither pool slot.
type RoleMismatchError struct {
	Pool     string
	AltToken string
	Token0   string
	Token1   string
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("alt token %s is neither token0 %s nor token1 %s of pool %s",
		e.AltToken, e.Token0, e.Token1, e.Pool)
}
