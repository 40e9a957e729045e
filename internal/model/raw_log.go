package model

// RawLogRecord is the normalized representation of a fetched chain log.
// Topics and Data carry 0x-prefixed hex exactly as returned by the node.
type RawLogRecord struct {
	BlockNumber uint64   `json:"block_number"`
	TxHash      string   `json:"tx_hash"`
	LogIndex    uint64   `json:"log_index"`
	Address     string   `json:"address"`
	Topics      []string `json:"topics"`
	Data        string   `json:"data"`
	Removed     bool     `json:"removed"`
}
