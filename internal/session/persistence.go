// ABOUTME: JSONL transcript persistence with append-only writes
// ABOUTME: Reads line-by-line with bufio.Scanner; crash-safe via O_APPEND

package session

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mauromedda/supportbot-go/internal/eventbus"
	"github.com/mauromedda/supportbot-go/internal/log"
)

// RecordType identifies the type of JSONL record.
type RecordType string

const (
	RecordSessionStart RecordType = "session_start"
	RecordExchange     RecordType = "exchange"
	RecordSessionEnd   RecordType = "session_end"
)

// Record is the envelope for all JSONL entries.
type Record struct {
	Version int             `json:"v"`
	Type    RecordType      `json:"type"`
	TS      string          `json:"ts"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// StartData holds session_start metadata.
type StartData struct {
	ID      string `json:"id"`
	Catalog string `json:"catalog"`
	Source  string `json:"source,omitempty"`
}

// EndData holds session_end metadata.
type EndData struct {
	ID        string `json:"id"`
	Exchanges int    `json:"exchanges"`
}

// Writer appends records to a transcript.
type Writer struct {
	mu  sync.Mutex
	out io.WriteCloser
	now func() time.Time
}

// NewWriter opens (or creates) a transcript file for appending.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating transcript dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	return &Writer{out: f, now: time.Now}, nil
}

// WriteRecord appends a record to the transcript.
func (w *Writer) WriteRecord(recType RecordType, data any) error {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling record data: %w", err)
	}

	rec := Record{
		Version: 1,
		Type:    recType,
		TS:      w.now().UTC().Format(time.RFC3339),
		Data:    dataBytes,
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.out.Write(line); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

// Record subscribes the writer to bus so every exchange is appended.
// Write failures are logged, never propagated to the chat.
func (w *Writer) Record(bus *eventbus.Bus[Exchange]) func() {
	return bus.Subscribe("transcript", func(ex Exchange) {
		if err := w.WriteRecord(RecordExchange, ex); err != nil {
			log.Warn("transcript: %v", err)
		}
	})
}

// Close closes the transcript file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Close()
}

// ReadRecords reads all records from a transcript file. Malformed lines are
// skipped.
func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript %s: %w", path, err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("scanning transcript %s: %w", path, err)
	}
	return records, nil
}

// ReadExchanges returns the exchanges recorded in a transcript file.
func ReadExchanges(path string) ([]Exchange, error) {
	records, err := ReadRecords(path)
	var out []Exchange
	for _, rec := range records {
		if rec.Type != RecordExchange {
			continue
		}
		var ex Exchange
		if uerr := json.Unmarshal(rec.Data, &ex); uerr != nil {
			err = errors.Join(err, fmt.Errorf("decoding exchange: %w", uerr))
			continue
		}
		out = append(out, ex)
	}
	return out, err
}
