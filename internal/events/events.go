// Package events publishes an audit record for every successful clinic
// mutation. Publishing is best effort: callers log failures and carry on.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

const (
	UserRegistered    = "user.registered"
	AppointmentBooked = "appointment.booked"
	DiagnosisSaved    = "diagnosis.saved"
	DoctorAdded       = "doctor.added"
	DoctorRemoved     = "doctor.removed"
	SessionStarted    = "session.started"
	SessionEnded      = "session.ended"
)

type Event struct {
	Type    string            `json:"type"`
	Subject string            `json:"subject"`
	Actor   string            `json:"actor,omitempty"`
	At      time.Time         `json:"at"`
	Data    map[string]string `json:"data,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Log writes events to the standard logger.
type Log struct{}

func (Log) Publish(_ context.Context, e Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	log.Printf("event: %s", b)
	return nil
}

func (Log) Close() error { return nil }

type Config struct {
	Driver string

	KafkaBrokers []string
	KafkaTopic   string

	SQSQueue string
}

// Open builds the publisher named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Publisher, error) {
	switch cfg.Driver {
	case "", "log":
		return Log{}, nil
	case "none":
		return Nop{}, nil
	case "kafka":
		p, err := NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "sqs":
		p, err := NewSQS(ctx, cfg.SQSQueue)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("events: unknown driver %q", cfg.Driver)
	}
}
