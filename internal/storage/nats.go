package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects the NATS sink publishes to.
const (
	SubjectRunCreated = "urbansim.run.created"
	SubjectRunStatus  = "urbansim.run.status"
	SubjectSnapshot   = "urbansim.snapshot"
)

// NATSSink publishes run records and snapshots as JSON messages so a
// downstream consumer can persist or index them. It implements RunStore
// and SnapshotSink.
type NATSSink struct {
	nc *nats.Conn
}

// DialNATS connects to the given NATS URL and returns a sink.
func DialNATS(url string) (*NATSSink, error) {
	nc, err := nats.Connect(url, nats.Name("urbansim"))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &NATSSink{nc: nc}, nil
}

// NewNATSSink wraps an existing connection.
func NewNATSSink(nc *nats.Conn) *NATSSink {
	return &NATSSink{nc: nc}
}

// Close drains the underlying connection.
func (s *NATSSink) Close() {
	if s.nc != nil {
		_ = s.nc.Drain()
	}
}

// CreateRun publishes the new run record.
func (s *NATSSink) CreateRun(ctx context.Context, run RunRecord) error {
	return s.publish(SubjectRunCreated, run)
}

type runStatusMessage struct {
	RunID       string    `json:"run_id"`
	Status      string    `json:"status"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// UpdateRunStatus publishes a status transition for the run.
func (s *NATSSink) UpdateRunStatus(ctx context.Context, runID, status string, completedAt time.Time) error {
	return s.publish(SubjectRunStatus, runStatusMessage{
		RunID:       runID,
		Status:      status,
		CompletedAt: completedAt,
	})
}

type snapshotMessage struct {
	RunID     string           `json:"run_id"`
	Timestep  int              `json:"timestep"`
	Records   []SnapshotRecord `json:"records"`
	WrittenAt time.Time        `json:"written_at"`
}

// WriteSnapshot publishes the full cell state for one timestep.
func (s *NATSSink) WriteSnapshot(ctx context.Context, runID string, timestep int, records []SnapshotRecord) error {
	return s.publish(fmt.Sprintf("%s.%d", SubjectSnapshot, timestep), snapshotMessage{
		RunID:     runID,
		Timestep:  timestep,
		Records:   records,
		WrittenAt: time.Now(),
	})
}

func (s *NATSSink) publish(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s message: %w", subject, err)
	}
	if err := s.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}
