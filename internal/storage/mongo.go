package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection is the collection Open uses for journal values.
const MongoCollection = "journal_kv"

type mongoRecord struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoBackend stores one document per key, with the key as _id.
type MongoBackend struct {
	col *mongo.Collection
	// client is set when the backend owns the connection (see Open).
	client *mongo.Client
}

// NewMongoBackend uses col; the caller keeps ownership of the client.
func NewMongoBackend(col *mongo.Collection) *MongoBackend {
	return &MongoBackend{col: col}
}

func (m *MongoBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var rec mongoRecord
	if err := m.col.FindOne(ctx, bson.M{"_id": key}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec.Value, nil
}

func (m *MongoBackend) Put(ctx context.Context, key string, value []byte) error {
	set := bson.M{"$set": bson.M{"value": value, "updatedAt": time.Now().UTC()}}
	_, err := m.col.UpdateOne(ctx, bson.M{"_id": key}, set, options.Update().SetUpsert(true))
	return err
}

func (m *MongoBackend) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}

func (m *MongoBackend) Close() error {
	if m.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
