package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/stockroom/pkg/events"
	invdomain "github.com/ghuser/stockroom/services/inventory/domain"
	invevents "github.com/ghuser/stockroom/services/inventory/domain/events"
)

// psql builds queries with PostgreSQL $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// publishChange emits a change-feed event for a collection write within the
// write's own transaction (outbox pattern): the event becomes visible exactly
// when the row change does.
func publishChange(bus *events.EventBus, tx *sql.Tx, topic string, orgID, docID uuid.UUID, action string) error {
	if bus == nil {
		return nil
	}

	evt := invevents.CollectionChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		OrgID:      orgID,
		DocumentID: docID,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(invevents.MetadataOrgID, orgID.String())
	msg.Metadata.Set("event_id", evt.EventID.String())
	msg.Metadata.Set("event_version", "1")

	p, err := bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// classifyError maps low-level store errors onto the domain taxonomy so no
// raw driver error crosses into handlers. Unrecognized errors are wrapped
// with op context and pass through for errors.Is matching upstream.
func classifyError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42501", "28000", "28P01": // insufficient_privilege, invalid_authorization
			return fmt.Errorf("%s: %w", op, invdomain.ErrPermissionDenied)
		case "57P01", "57P02", "57P03", "53300": // shutdown, crash, cannot_connect, too_many_connections
			return fmt.Errorf("%s: %w", op, invdomain.ErrStoreUnavailable)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w", op, invdomain.ErrStoreUnavailable)
	}

	return fmt.Errorf("%s: %w", op, err)
}
