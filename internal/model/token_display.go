package model

// TokenDisplay captures ERC20 display metadata used in diagnostics.
type TokenDisplay struct {
	Address  string
	Symbol   string
	Decimals uint8
}
