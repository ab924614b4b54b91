package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	appctx "gyh/internal/core/context"
	"gyh/internal/core/id"
	"gyh/internal/domain/audit"
	"gyh/pkg/logger"
)

// CompressionAlgo specifies the compression algorithm used for a payload.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AuditRow is a stored audit record.
type AuditRow struct {
	ID                id.ID           `db:"id" json:"id"`
	EntityType        string          `db:"entity_type" json:"entityType"`
	EntityID          id.ID           `db:"entity_id" json:"entityId"`
	Action            string          `db:"action" json:"action"`
	UserID            id.ID           `db:"user_id" json:"userId"`
	Payload           json.RawMessage `db:"payload" json:"payload,omitempty"`
	PayloadCompressed []byte          `db:"payload_compressed" json:"-"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo" json:"-"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
}

// AuditRecorder implements audit.Recorder on the sys_audit table.
// Large payloads are zstd-compressed. Recording is best-effort: failures
// are logged and never reach the business flow.
type AuditRecorder struct {
	tm                *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewAuditRecorder creates a new audit recorder.
func NewAuditRecorder(tm *TxManager) (*AuditRecorder, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditRecorder{
		tm:                tm,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024, // 10KB
	}, nil
}

// Record persists an audit entry. Never returns an error into the caller.
func (s *AuditRecorder) Record(ctx context.Context, e audit.Entry) {
	row := AuditRow{
		ID:         id.New(),
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Action:     string(e.Action),
		UserID:     e.UserID,
		CreatedAt:  time.Now().UTC(),
	}

	if id.IsNil(row.UserID) {
		row.UserID = appctx.GetUserID(ctx)
	}

	row.CompressionAlgo = CompressionNone
	if e.Payload != nil {
		payload, err := json.Marshal(e.Payload)
		if err != nil {
			logger.Warn(ctx, "audit payload marshal failed",
				"entity_type", e.EntityType, "error", err)
			payload = nil
		}
		if len(payload) > s.compressThreshold {
			row.PayloadCompressed = s.encoder.EncodeAll(payload, nil)
			row.CompressionAlgo = CompressionZstd
		} else {
			row.Payload = payload
		}
	}

	const sql = `
		INSERT INTO sys_audit (
			id, entity_type, entity_id, action, user_id,
			payload, payload_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.tm.GetQuerier(ctx).Exec(ctx, sql,
		row.ID, row.EntityType, row.EntityID, row.Action, row.UserID,
		row.Payload, row.PayloadCompressed, row.CompressionAlgo, row.CreatedAt,
	)
	if err != nil {
		logger.Warn(ctx, "audit record failed",
			"entity_type", e.EntityType,
			"entity_id", e.EntityID.String(),
			"action", e.Action,
			"error", err,
		)
	}
}

// History retrieves the audit trail of an entity, newest first.
// Compressed payloads come back decompressed.
func (s *AuditRecorder) History(ctx context.Context, entityType string, entityID id.ID, limit int) ([]AuditRow, error) {
	const sql = `
		SELECT id, entity_type, entity_id, action, user_id,
		       payload, payload_compressed, compression_algo, created_at
		FROM sys_audit
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := s.tm.GetQuerier(ctx).Query(ctx, sql, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []AuditRow
	for rows.Next() {
		var e AuditRow
		err := rows.Scan(
			&e.ID, &e.EntityType, &e.EntityID, &e.Action, &e.UserID,
			&e.Payload, &e.PayloadCompressed, &e.CompressionAlgo, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		if e.CompressionAlgo == CompressionZstd && len(e.PayloadCompressed) > 0 {
			decompressed, err := s.decoder.DecodeAll(e.PayloadCompressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress payload: %w", err)
			}
			e.Payload = decompressed
			e.PayloadCompressed = nil
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
