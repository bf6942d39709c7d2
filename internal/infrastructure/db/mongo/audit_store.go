package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/memberhub/member-console/internal/core/ports"
)

const auditCollection = "member_events"

// MongoAuditStore persists member audit events.
type MongoAuditStore struct {
	collection *mongo.Collection
}

func NewAuditStore(db *mongo.Database) *MongoAuditStore {
	return &MongoAuditStore{collection: db.Collection(auditCollection)}
}

type auditDoc struct {
	MemberID   string `bson:"member_id"`
	Action     string `bson:"action"`
	OccurredAt int64  `bson:"occurred_at"`
}

func (s *MongoAuditStore) Store(ctx context.Context, event ports.AuditEvent) error {
	doc := auditDoc{
		MemberID:   event.MemberID,
		Action:     event.Action,
		OccurredAt: event.OccurredAt.Unix(),
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
