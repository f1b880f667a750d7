package repository

import (
	"context"
	"time"

	"github.com/avtostart/avtostart-backend/internal/documents"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements a MongoDB-backed repository for registry documents.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	// index supports category-filtered listings sorted by upload date
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "category", Value: 1}, {Key: "uploadDate", Value: -1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoRepo{col: col}
}

func filterToBson(f Filter) bson.M {
	q := bson.M{}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	return q
}

func (m *MongoRepo) Find(ctx context.Context, f Filter) ([]*documents.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploadDate", Value: -1}})
	cur, err := m.col.Find(ctx, filterToBson(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*documents.Document{}
	for cur.Next(ctx) {
		var d documents.Document
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}

func (m *MongoRepo) GetByID(ctx context.Context, id string) (*documents.Document, error) {
	var d documents.Document
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) Insert(ctx context.Context, d *documents.Document) (*documents.Document, error) {
	if d.ID == "" {
		d.ID = primitive.NewObjectID().Hex()
	}
	if _, err := m.col.InsertOne(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (m *MongoRepo) UpdateByID(ctx context.Context, id string, upd *documents.Update) (*documents.Document, error) {
	set := bson.M{"lastUpdate": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.ExpiryDate != nil {
		set["expiryDate"] = *upd.ExpiryDate
	}
	if upd.FileURL != nil {
		set["fileUrl"] = *upd.FileURL
	}
	if upd.FileName != nil {
		set["fileName"] = *upd.FileName
	}
	if upd.FileSize != nil {
		set["fileSize"] = *upd.FileSize
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d documents.Document
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) DeleteByID(ctx context.Context, id string) (*documents.Document, error) {
	var d documents.Document
	if err := m.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) Count(ctx context.Context, f Filter) (int64, error) {
	return m.col.CountDocuments(ctx, filterToBson(f))
}

func (m *MongoRepo) CountByCategory(ctx context.Context) ([]documents.CategoryCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	cur, err := m.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []documents.CategoryCount{}
	for cur.Next(ctx) {
		var cc documents.CategoryCount
		if err := cur.Decode(&cc); err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	return out, cur.Err()
}
