package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/serroba/shortlinks/internal/auth"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// MongoUserStore is a MongoDB implementation of auth.UserRepository.
type MongoUserStore struct {
	users *mongo.Collection
}

// NewMongoUserStore creates a new MongoDB-backed user store. Call EnsureIndexes before use.
func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{users: db.Collection("users")}
}

// EnsureIndexes creates the unique email index.
func (m *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := m.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	return nil
}

func (m *MongoUserStore) Create(ctx context.Context, user *auth.User) error {
	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}

	if _, err := m.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.ErrEmailTaken
		}

		return fmt.Errorf("insert user: %w", err)
	}

	user.ID = doc.ID.Hex()

	return nil
}

func (m *MongoUserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return m.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (m *MongoUserStore) GetByID(ctx context.Context, id string) (*auth.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, auth.ErrUserNotFound
	}

	return m.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (m *MongoUserStore) findOne(ctx context.Context, filter bson.D) (*auth.User, error) {
	var doc userDocument

	if err := m.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}

		return nil, fmt.Errorf("get user: %w", err)
	}

	return &auth.User{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt.UTC(),
	}, nil
}

// Compile-time check.
var _ auth.UserRepository = (*MongoUserStore)(nil)
