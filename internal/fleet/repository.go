package fleet

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a vehicle id does not resolve.
var ErrNotFound = errors.New("vehicle not found")

// Repository provides vehicle persistence.
type Repository interface {
	List(ctx context.Context) ([]*Vehicle, error)
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	Insert(ctx context.Context, v *Vehicle) (*Vehicle, error)
	UpdateByID(ctx context.Context, id string, upd *Update) (*Vehicle, error)
	DeleteByID(ctx context.Context, id string) (*Vehicle, error)
}

// MongoRepository implements Repository using a Mongo collection
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) List(ctx context.Context) ([]*Vehicle, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*Vehicle{}
	for cur.Next(ctx) {
		var v Vehicle
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	var v Vehicle
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *MongoRepository) Insert(ctx context.Context, v *Vehicle) (*Vehicle, error) {
	if v.ID == "" {
		v.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *MongoRepository) UpdateByID(ctx context.Context, id string, upd *Update) (*Vehicle, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Brand != nil {
		set["brand"] = *upd.Brand
	}
	if upd.Model != nil {
		set["model"] = *upd.Model
	}
	if upd.Year != nil {
		set["year"] = *upd.Year
	}
	if upd.PlateNumber != nil {
		set["plateNumber"] = *upd.PlateNumber
	}
	if upd.Transmission != nil {
		set["transmission"] = *upd.Transmission
	}
	if upd.LicenseCategory != nil {
		set["licenseCategory"] = *upd.LicenseCategory
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.ImageURL != nil {
		set["imageUrl"] = *upd.ImageURL
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var v Vehicle
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&v); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *MongoRepository) DeleteByID(ctx context.Context, id string) (*Vehicle, error) {
	var v Vehicle
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}
