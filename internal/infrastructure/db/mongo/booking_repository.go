package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mindhaven/clinic-api/internal/core/domain"
)

const bookingsCollection = "bookings"

type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: db.Collection(bookingsCollection)}
}

type mongoBooking struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	SpecialistID string               `bson:"specialist_id"`
	Service      string               `bson:"service"`
	Date         string               `bson:"date"`
	TimeSlot     string               `bson:"time_slot"`
	ClientName   string               `bson:"client_name"`
	ClientEmail  string               `bson:"client_email"`
	ClientPhone  string               `bson:"client_phone"`
	Notes        string               `bson:"notes,omitempty"`
	Status       domain.BookingStatus `bson:"status"`
	CreatedAt    time.Time            `bson:"created_at"`
}

func (mb *mongoBooking) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:           mb.ID.Hex(),
		SpecialistID: mb.SpecialistID,
		Service:      mb.Service,
		Date:         mb.Date,
		TimeSlot:     mb.TimeSlot,
		ClientName:   mb.ClientName,
		ClientEmail:  mb.ClientEmail,
		ClientPhone:  mb.ClientPhone,
		Notes:        mb.Notes,
		Status:       mb.Status,
		CreatedAt:    mb.CreatedAt,
	}
}

func (r *BookingRepository) Insert(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBooking{
		SpecialistID: b.SpecialistID,
		Service:      b.Service,
		Date:         b.Date,
		TimeSlot:     b.TimeSlot,
		ClientName:   b.ClientName,
		ClientEmail:  b.ClientEmail,
		ClientPhone:  b.ClientPhone,
		Notes:        b.Notes,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	created := *b
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBooking
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BookingRepository) ListBySpecialist(ctx context.Context, specialistID string) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"specialist_id": specialistID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return decodeBookings(ctx, cur)
}

func (r *BookingRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list recent bookings: %w", err)
	}
	return decodeBookings(ctx, cur)
}

// UpdateStatus performs a compare-and-swap: the filter matches on both the id
// and the expected current status, so a concurrent transition that got there
// first makes this one miss. The caller distinguishes a miss from a missing
// record via the follow-up existence check.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": from}
	update := bson.M{"$set": bson.M{"status": to}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mb mongoBooking
	err = r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mb)
	if err == nil {
		return mb.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	// CAS missed: either the booking is gone or its status moved underneath us.
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	return nil, domain.ErrTransitionConflict
}

// EnsureIndexes creates the query indexes on the bookings collection.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "specialist_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeBookings(ctx context.Context, cur *mongo.Cursor) ([]*domain.Booking, error) {
	defer cur.Close(ctx)

	var out []*domain.Booking
	for cur.Next(ctx) {
		var mb mongoBooking
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode booking: %w", err)
		}
		out = append(out, mb.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return out, nil
}
