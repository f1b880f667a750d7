package orginfo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository provides persistence for the basic-info record and its history.
// Updates never mutate in place: each write inserts a new record, and reads
// pick the most recent one by lastUpdated.
type Repository interface {
	// Latest returns the most recent record, or nil when none exists.
	Latest(ctx context.Context) (*Info, error)
	// Insert appends a new record and returns it with its assigned id.
	Insert(ctx context.Context, info *Info) (*Info, error)
	// History returns one page of summaries newest-first together with the
	// total record count. page and limit are assumed normalized.
	History(ctx context.Context, page, limit int) ([]Summary, int64, error)
}

// MongoRepository implements Repository using a Mongo collection
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	// history reads sort on lastUpdated
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "lastUpdated", Value: -1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Latest(ctx context.Context) (*Info, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "lastUpdated", Value: -1}})
	var info Info
	if err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&info); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

func (r *MongoRepository) Insert(ctx context.Context, info *Info) (*Info, error) {
	if info.ID == "" {
		info.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (r *MongoRepository) History(ctx context.Context, page, limit int) ([]Summary, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "lastUpdated", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"fullName": 1, "shortName": 1, "lastUpdated": 1, "updatedBy": 1})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	out := []Summary{}
	for cur.Next(ctx) {
		var s Summary
		if err := cur.Decode(&s); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, cur.Err()
}
