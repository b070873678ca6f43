package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shenikar/geo_monitoring_pipeline/internal/models"
)

const snapshotCollection = "subject_locations"

// SnapshotRepository хранит последнее положение субъекта в MongoDB.
// Документ субъекта может содержать и другие поля, их запись не трогает.
type SnapshotRepository struct {
	col *mongo.Collection
}

func NewSnapshotRepository(db *mongo.Database) *SnapshotRepository {
	return &SnapshotRepository{col: db.Collection(snapshotCollection)}
}

// UpsertSnapshot обновляет через $set только координаты, состояние и время.
// Запись со старым occurred_at (опоздавшая, но принятая окном) документ не меняет.
func (r *SnapshotRepository) UpsertSnapshot(ctx context.Context, s models.LiveSnapshot) error {
	filter := bson.M{"_id": s.SubjectID}
	update := snapshotUpdate(s, time.Now().UTC())

	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert live snapshot for %s: %w", s.SubjectID, err)
	}
	return nil
}

// GetSnapshot возвращает последнее положение; nil, если документа нет
func (r *SnapshotRepository) GetSnapshot(ctx context.Context, subjectID string) (*models.LiveSnapshot, error) {
	var doc struct {
		SubjectID  string    `bson:"_id"`
		Latitude   float64   `bson:"latitude"`
		Longitude  float64   `bson:"longitude"`
		RiskState  string    `bson:"risk_state"`
		OccurredAt time.Time `bson:"occurred_at"`
	}
	err := r.col.FindOne(ctx, bson.M{"_id": subjectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get live snapshot for %s: %w", subjectID, err)
	}
	return &models.LiveSnapshot{
		SubjectID:  doc.SubjectID,
		Latitude:   doc.Latitude,
		Longitude:  doc.Longitude,
		RiskState:  models.RiskState(doc.RiskState),
		OccurredAt: doc.OccurredAt.UTC(),
	}, nil
}

// snapshotUpdate - update-pipeline: каждое поле берется из записи, только если
// сохраненный occurred_at не новее ее времени. Отсутствующий occurred_at
// (новый документ) считается самым старым.
func snapshotUpdate(s models.LiveSnapshot, now time.Time) mongo.Pipeline {
	occurredAt := s.OccurredAt.UTC()
	newer := bson.D{{Key: "$lte", Value: bson.A{
		bson.D{{Key: "$ifNull", Value: bson.A{"$occurred_at", time.Time{}}}},
		occurredAt,
	}}}
	pick := func(field string, value any) bson.D {
		return bson.D{{Key: "$cond", Value: bson.A{newer, value, "$" + field}}}
	}

	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "latitude", Value: pick("latitude", s.Latitude)},
			{Key: "longitude", Value: pick("longitude", s.Longitude)},
			{Key: "risk_state", Value: pick("risk_state", string(s.RiskState))},
			{Key: "updated_at", Value: pick("updated_at", now)},
			{Key: "occurred_at", Value: pick("occurred_at", occurredAt)},
		}}},
	}
}
