package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mindhaven/clinic-api/internal/core/domain"
)

const notesCollection = "session_notes"

// NoteRepository persists append-only session notes. There are deliberately
// no update or delete operations.
type NoteRepository struct {
	coll *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{coll: db.Collection(notesCollection)}
}

type mongoNote struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	BookingID    string             `bson:"booking_id"`
	SpecialistID string             `bson:"specialist_id"`
	Text         string             `bson:"text"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (r *NoteRepository) Insert(ctx context.Context, n *domain.SessionNote) (*domain.SessionNote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoNote{
		BookingID:    n.BookingID,
		SpecialistID: n.SpecialistID,
		Text:         n.Text,
		CreatedAt:    n.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert session note: %w", err)
	}

	created := *n
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *NoteRepository) ListByBooking(ctx context.Context, bookingID string) ([]*domain.SessionNote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"booking_id": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list session notes: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.SessionNote
	for cur.Next(ctx) {
		var mn mongoNote
		if err := cur.Decode(&mn); err != nil {
			return nil, fmt.Errorf("decode session note: %w", err)
		}
		out = append(out, &domain.SessionNote{
			ID:           mn.ID.Hex(),
			BookingID:    mn.BookingID,
			SpecialistID: mn.SpecialistID,
			Text:         mn.Text,
			CreatedAt:    mn.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate session notes: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the booking lookup index on session notes.
func (r *NoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "booking_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
