package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fdg312/fittrack/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// MongoStorage — Mongo реализация UserStorage: коллекция users,
// _id = идентификатор пользователя.
type MongoStorage struct {
	client *mongo.Client
	users  *mongo.Collection
}

// New подключается к MongoDB и создаёт пользователя по умолчанию
func New(ctx context.Context, uri, database string) (*MongoStorage, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	ms := &MongoStorage{
		client: client,
		users:  client.Database(database).Collection("users"),
	}

	if err := ms.ensureDefaultUser(ctx); err != nil {
		return nil, err
	}

	return ms, nil
}

func (m *MongoStorage) GetUser(ctx context.Context, id string) (*storage.User, error) {
	var user storage.User
	err := m.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (m *MongoStorage) SaveUser(ctx context.Context, user *storage.User) error {
	user.UpdatedAt = time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = user.UpdatedAt
	}

	_, err := m.users.ReplaceOne(ctx,
		bson.M{"_id": user.ID},
		user,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (m *MongoStorage) Close() error {
	return m.client.Disconnect(context.Background())
}

func (m *MongoStorage) ensureDefaultUser(ctx context.Context) error {
	now := time.Now()
	user := storage.User{
		ID:        "default",
		Gender:    storage.GenderOther,
		Goal:      storage.GoalMaintain,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := m.users.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$setOnInsert": user},
		options.Update().SetUpsert(true),
	)
	return err
}
