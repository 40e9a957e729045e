package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"swapScope/internal/model"
)

// JSONLDump appends raw fetch and decode diagnostics as JSON lines, one
// file per pool.
type JSONLDump struct {
	dir string
	mu  sync.Mutex
}

func NewJSONLDump(dir string) *JSONLDump {
	return &JSONLDump{dir: dir}
}

// AppendRawLogs appends the raw logs of one fetched chunk.
func (d *JSONLDump) AppendRawLogs(pair string, records []model.RawLogRecord) error {
	lines := make([]interface{}, len(records))
	for i, record := range records {
		lines[i] = record
	}
	return d.appendLines(pairFileName(pair)+"_raw.jsonl", lines)
}

// AppendDecodeErrors appends the decode error report of one run.
func (d *JSONLDump) AppendDecodeErrors(pair string, records []model.DecodeErrorRecord) error {
	lines := make([]interface{}, len(records))
	for i, record := range records {
		lines[i] = record
	}
	return d.appendLines(pairFileName(pair)+"_decode_errors.jsonl", lines)
}

func (d *JSONLDump) appendLines(name string, lines []interface{}) error {
	if len(lines) == 0 {
		return nil
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	file, err := os.OpenFile(filepath.Join(d.dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, value := range lines {
		line, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
