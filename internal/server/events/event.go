// Package events implements the in-process broadcaster that fans photo
// capture lifecycle events out to every connected client.
//
// The broadcaster owns a registry of subscriber queues. Producers call
// Publish, which snapshots the registry under its lock and then performs
// non-blocking writes into each queue outside the lock, so a slow or dead
// consumer can never stall a publisher or another consumer. Transports
// (SSE, WebSocket) consume events through a Subscription.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Type discriminates event variants on the wire.
type Type string

// Capture lifecycle event types.
const (
	TypeCountdownStarted Type = "countdown-started"
	TypePhotoCaptured    Type = "photo-captured"
	TypeCaptureFailed    Type = "capture-failed"
)

// Event is a single capture lifecycle notification. Events are immutable
// values: the timestamp is stamped once at construction and the payload is
// one of the closed set of variants below.
type Event struct {
	Type      Type
	Timestamp time.Time
	Payload   Payload
}

// Payload is implemented by the closed set of event payloads.
type Payload interface {
	eventPayload()
}

// CountdownStarted signals that the capture countdown began.
type CountdownStarted struct {
	DurationMS int64
	Source     string
}

// PhotoCaptured signals that a photo was captured and stored.
type PhotoCaptured struct {
	PhotoID  uuid.UUID
	Code     string
	ImageURL string
}

// CaptureFailed signals that a capture attempt failed.
type CaptureFailed struct {
	Message string
}

func (CountdownStarted) eventPayload() {}
func (PhotoCaptured) eventPayload()    {}
func (CaptureFailed) eventPayload()    {}

// NewCountdownStarted builds a countdown-started event.
func NewCountdownStarted(duration time.Duration, source string) Event {
	return Event{
		Type:      TypeCountdownStarted,
		Timestamp: time.Now().UTC(),
		Payload:   CountdownStarted{DurationMS: duration.Milliseconds(), Source: source},
	}
}

// NewPhotoCaptured builds a photo-captured event.
func NewPhotoCaptured(photoID uuid.UUID, code, imageURL string) Event {
	return Event{
		Type:      TypePhotoCaptured,
		Timestamp: time.Now().UTC(),
		Payload:   PhotoCaptured{PhotoID: photoID, Code: code, ImageURL: imageURL},
	}
}

// NewCaptureFailed builds a capture-failed event.
func NewCaptureFailed(message string) Event {
	return Event{
		Type:      TypeCaptureFailed,
		Timestamp: time.Now().UTC(),
		Payload:   CaptureFailed{Message: message},
	}
}
