// ABOUTME: --export: renders a JSONL transcript written by --transcript as HTML
// ABOUTME: Session start records supply the title; exchanges become chat bubbles

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mauromedda/supportbot-go/internal/export"
	"github.com/mauromedda/supportbot-go/internal/log"
	"github.com/mauromedda/supportbot-go/internal/session"
)

func exportTranscript(w io.Writer, path string) error {
	recs, err := session.ReadRecords(path)
	if err != nil {
		return err
	}

	var t export.Transcript
	for _, rec := range recs {
		switch rec.Type {
		case session.RecordSessionStart:
			var start session.StartData
			if err := json.Unmarshal(rec.Data, &start); err != nil {
				log.Warn("export: bad session_start record: %v", err)
				continue
			}
			if t.Title == "" {
				t.Title = fmt.Sprintf("%s transcript", start.Catalog)
			}
		case session.RecordExchange:
			var ex session.Exchange
			if err := json.Unmarshal(rec.Data, &ex); err != nil {
				log.Warn("export: bad exchange record: %v", err)
				continue
			}
			t.Exchanges = append(t.Exchanges, ex)
		}
	}
	return export.ExportHTML(t, w)
}
