package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

const outboxCollection = "notifications"

// OutboxRepository - документы уведомлений, которые читают клиентские приложения
type OutboxRepository struct {
	col *mongo.Collection
}

func NewOutboxRepository(db *mongo.Database) *OutboxRepository {
	return &OutboxRepository{col: db.Collection(outboxCollection)}
}

// InsertNotification добавляет документ с read=false
func (r *OutboxRepository) InsertNotification(ctx context.Context, n models.OutboxNotification) error {
	doc := bson.M{
		"_id":             n.ID,
		"subject_id":      n.SubjectID,
		"subject_display": n.SubjectDisplay,
		"subject_line":    n.SubjectLine,
		"body":            n.Body,
		"recipient_role":  string(n.RecipientRole),
		"occurred_at":     n.OccurredAt.UTC(),
		"read":            n.Read,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert notification for %s: %w", n.SubjectID, err)
	}
	return nil
}

// EnsureIndexes создает индексы коллекции уведомлений
func (r *OutboxRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "subject_id", Value: 1}, {Key: "read", Value: 1}}},
		{Keys: bson.D{{Key: "occurred_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
