// Package wire owns the JSON encoding pushed to clients by the transport
// adapters. The event core only exposes discriminator strings and field
// values; the flat payload shape lives here.
package wire

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/snapbooth/snapbooth/internal/server/events"
)

// Encode renders ev as the flat JSON object sent over SSE and WebSocket,
// e.g. {"eventType":"photo-captured","photoId":"...","code":"123456",
// "imageUrl":"...","timestamp":"..."}.
func Encode(ev events.Event) ([]byte, error) {
	timestamp := ev.Timestamp.UTC().Format(time.RFC3339Nano)

	switch payload := ev.Payload.(type) {
	case events.CountdownStarted:
		return json.Marshal(struct {
			EventType  string `json:"eventType"`
			DurationMS int64  `json:"durationMs"`
			Source     string `json:"source"`
			Timestamp  string `json:"timestamp"`
		}{string(ev.Type), payload.DurationMS, payload.Source, timestamp})

	case events.PhotoCaptured:
		return json.Marshal(struct {
			EventType string `json:"eventType"`
			PhotoID   string `json:"photoId"`
			Code      string `json:"code"`
			ImageURL  string `json:"imageUrl"`
			Timestamp string `json:"timestamp"`
		}{string(ev.Type), payload.PhotoID.String(), payload.Code, payload.ImageURL, timestamp})

	case events.CaptureFailed:
		return json.Marshal(struct {
			EventType string `json:"eventType"`
			Message   string `json:"message"`
			Timestamp string `json:"timestamp"`
		}{string(ev.Type), payload.Message, timestamp})

	default:
		return nil, fmt.Errorf("unknown event payload %T", ev.Payload)
	}
}
