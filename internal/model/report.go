package model

// DecodeErrorRecord captures a log line that failed to decode.
type DecodeErrorRecord struct {
	Pair        string `json:"pair"`
	BlockNumber uint64 `json:"block_number"`
	TxHash      string `json:"tx_hash"`
	LogIndex    uint64 `json:"log_index"`
	Address     string `json:"address"`
	Topic0      string `json:"topic0"`
	HourIndex   int    `json:"hour_index"`
	Error       string `json:"error"`
}
