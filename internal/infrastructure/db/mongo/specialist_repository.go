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

const specialistsCollection = "specialists"

type SpecialistRepository struct {
	coll *mongo.Collection
}

func NewSpecialistRepository(db *mongo.Database) *SpecialistRepository {
	return &SpecialistRepository{coll: db.Collection(specialistsCollection)}
}

type mongoSpecialist struct {
	ID        primitive.ObjectID      `bson:"_id,omitempty"`
	Name      string                  `bson:"name"`
	Specialty string                  `bson:"specialty"`
	Bio       string                  `bson:"bio"`
	Fee       int64                   `bson:"fee"`
	Photo     string                  `bson:"photo,omitempty"`
	Status    domain.SpecialistStatus `bson:"status"`
	CreatedAt time.Time               `bson:"created_at"`
	UpdatedAt time.Time               `bson:"updated_at"`
}

func (ms *mongoSpecialist) toDomain() *domain.Specialist {
	return &domain.Specialist{
		ID:        ms.ID.Hex(),
		Name:      ms.Name,
		Specialty: ms.Specialty,
		Bio:       ms.Bio,
		Fee:       ms.Fee,
		Photo:     ms.Photo,
		Status:    ms.Status,
		CreatedAt: ms.CreatedAt,
		UpdatedAt: ms.UpdatedAt,
	}
}

func specialistDoc(s *domain.Specialist) mongoSpecialist {
	return mongoSpecialist{
		Name:      s.Name,
		Specialty: s.Specialty,
		Bio:       s.Bio,
		Fee:       s.Fee,
		Photo:     s.Photo,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (r *SpecialistRepository) Insert(ctx context.Context, s *domain.Specialist) (*domain.Specialist, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, specialistDoc(s))
	if err != nil {
		return nil, fmt.Errorf("insert specialist: %w", err)
	}

	created := *s
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *SpecialistRepository) FindByID(ctx context.Context, id string) (*domain.Specialist, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSpecialistNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSpecialist
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSpecialistNotFound
		}
		return nil, fmt.Errorf("find specialist: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SpecialistRepository) List(ctx context.Context) ([]*domain.Specialist, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list specialists: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Specialist
	for cur.Next(ctx) {
		var ms mongoSpecialist
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode specialist: %w", err)
		}
		out = append(out, ms.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate specialists: %w", err)
	}
	return out, nil
}

func (r *SpecialistRepository) Update(ctx context.Context, s *domain.Specialist) (*domain.Specialist, error) {
	oid, err := primitive.ObjectIDFromHex(s.ID)
	if err != nil {
		return nil, domain.ErrSpecialistNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := specialistDoc(s)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update specialist: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrSpecialistNotFound
	}
	return s, nil
}

func (r *SpecialistRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSpecialistNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete specialist: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSpecialistNotFound
	}
	return nil
}
