package codes

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("code not found")

// Repository defines persistence operations for codes
type Repository interface {
	Insert(ctx context.Context, code *Code) (*Code, error)
	FindAll(ctx context.Context) ([]*Code, error)
	FindByID(ctx context.Context, id string) (*Code, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*Code, error)
	Update(ctx context.Context, id string, patch Patch) (*Code, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a repository for the given collection and
// ensures the owner index used by per-owner queries.
func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "ownerId", Value: 1}}}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Insert(ctx context.Context, code *Code) (*Code, error) {
	now := time.Now().UTC()
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	code.CreatedAt = now
	code.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, code); err != nil {
		return nil, err
	}
	return code, nil
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]*Code, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRepository) FindByOwner(ctx context.Context, ownerID string) ([]*Code, error) {
	return r.find(ctx, bson.M{"ownerId": ownerID})
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]*Code, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*Code{}
	for cur.Next(ctx) {
		var code Code
		if err := cur.Decode(&code); err != nil {
			return nil, err
		}
		out = append(out, &code)
	}
	return out, cur.Err()
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*Code, error) {
	var code Code
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&code); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &code, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, patch Patch) (*Code, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Language != nil {
		set["language"] = *patch.Language
	}
	if patch.Body != nil {
		set["body"] = *patch.Body
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Code
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
