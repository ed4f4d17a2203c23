// internal/app/store/history/historystore.go
package historystore

import (
	"context"
	"errors"
	"time"

	"github.com/edcenterhq/edcenter/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store is the append-only ledger of group moves. Records are never
// updated or deleted. Reads that need group and user names resolved go
// through the historyview query package instead.
type Store struct {
	c *mongo.Collection
}

// ErrVacuousRecord rejects a history record with neither a source nor a
// target group; such a record would describe a move that never happened.
var ErrVacuousRecord = errors.New("history record needs a from-group or a to-group")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("group_history")}
}

// Append writes one move record and returns it with ID and timestamp set.
func (s *Store) Append(ctx context.Context, h models.GroupHistory) (models.GroupHistory, error) {
	if h.FromGroupID == nil && h.ToGroupID == nil {
		return models.GroupHistory{}, ErrVacuousRecord
	}

	h.ID = primitive.NewObjectID()
	if h.MovedAt.IsZero() {
		h.MovedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, h); err != nil {
		return models.GroupHistory{}, err
	}
	return h, nil
}
