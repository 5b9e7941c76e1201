package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ASARUDHEEN-MP/Employee-managment/internal/bootstrap"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// lifecycleEnvelope is the least common denominator of the directory events;
// fields absent from a given event type are simply empty.
type lifecycleEnvelope struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	EmployeeID string    `json:"employee_id"`
	FieldID    string    `json:"field_id"`
	FieldName  string    `json:"field_name"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ConsumeDirectoryLifecycle records every directory lifecycle event as an audit
// entry. Messages are committed only after the entry has been written.
func ConsumeDirectoryLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.directory_lifecycle")
	log.Info("directory lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("directory lifecycle consumer stopped")
				return
			}
			log.Error("fetch directory lifecycle message failed", zap.Error(err))
			continue
		}

		var event lifecycleEnvelope
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode directory lifecycle event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			// Pesan rusak tidak akan pernah bisa diproses, commit dan lanjut
			if err := reader.CommitMessages(ctx, msg); err != nil {
				log.Error("commit poisoned message failed", zap.Error(err))
			}
			continue
		}

		auditLogger.Log(ctx, bootstrap.AuditLog{
			Action:  event.EventType,
			Message: "directory lifecycle event",
			Meta: map[string]any{
				"request_id":  event.RequestID,
				"employee_id": event.EmployeeID,
				"field_id":    event.FieldID,
				"field_name":  event.FieldName,
				"user_id":     event.UserID,
				"occurred_at": event.OccurredAt,
			},
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit directory lifecycle message failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}
