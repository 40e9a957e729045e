package screener

import "fmt"

// HourChunk is one inclusive block range covering a single hour bucket.
// HourIndex 0 is the hour ending at the latest block.
type HourChunk struct {
	HourIndex int
	From      uint64
	To        uint64
}

// HourChunks plans the lookback window as per-hour block ranges walking
// backwards from the latest block. The window is clamped at block zero, so
// chains shorter than the requested span yield fewer chunks.
func HourChunks(latest, blocksPerHour uint64, hours int) ([]HourChunk, error) {
	if blocksPerHour == 0 {
		return nil, fmt.Errorf("blocks per hour must be greater than zero")
	}
	if hours <= 0 {
		return nil, fmt.Errorf("hour count must be greater than zero")
	}

	chunks := make([]HourChunk, 0, hours)
	for i := 0; i < hours; i++ {
		span := uint64(i) * blocksPerHour
		if span > latest {
			break
		}

		to := latest - span
		var from uint64
		if to >= blocksPerHour {
			from = to - blocksPerHour + 1
		}

		chunks = append(chunks, HourChunk{HourIndex: i, From: from, To: to})
		if from == 0 {
			break
		}
	}

	return chunks, nil
}
