package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/serroba/shortlinks/internal/shortener"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type linkDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	Code           string             `bson:"code"`
	DestinationURL string             `bson:"destinationUrl"`
	OwnerID        string             `bson:"ownerId"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

func (d *linkDocument) toShortLink() *shortener.ShortLink {
	return &shortener.ShortLink{
		ID:             shortener.LinkID(d.ID.Hex()),
		Code:           shortener.Code(d.Code),
		DestinationURL: d.DestinationURL,
		OwnerID:        shortener.OwnerID(d.OwnerID),
		CreatedAt:      d.CreatedAt.UTC(),
	}
}

// MongoStore is a MongoDB implementation of shortener.Repository.
// A unique index on code makes duplicate inserts fail with a duplicate key error.
type MongoStore struct {
	links *mongo.Collection
}

// NewMongoStore creates a new MongoDB-backed link store. Call EnsureIndexes before use.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{links: db.Collection("short_links")}
}

// EnsureIndexes creates the unique code index and the owner listing index.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := m.links.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("code_unique"),
		},
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("owner_created"),
		},
	})
	if err != nil {
		return fmt.Errorf("create short link indexes: %w", err)
	}

	return nil
}

func (m *MongoStore) Insert(ctx context.Context, link *shortener.ShortLink) error {
	doc := linkDocument{
		ID:             primitive.NewObjectID(),
		Code:           string(link.Code),
		DestinationURL: link.DestinationURL,
		OwnerID:        string(link.OwnerID),
		CreatedAt:      link.CreatedAt,
	}

	if _, err := m.links.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return shortener.ErrCodeCollision
		}

		return fmt.Errorf("insert short link: %w", err)
	}

	link.ID = shortener.LinkID(doc.ID.Hex())

	return nil
}

func (m *MongoStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	var doc linkDocument

	err := m.links.FindOne(ctx, bson.D{{Key: "code", Value: string(code)}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shortener.ErrNotFound
		}

		return nil, fmt.Errorf("get short link: %w", err)
	}

	return doc.toShortLink(), nil
}

func (m *MongoStore) ListByOwner(ctx context.Context, owner shortener.OwnerID) ([]*shortener.ShortLink, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := m.links.Find(ctx, bson.D{{Key: "ownerId", Value: string(owner)}}, opts)
	if err != nil {
		return nil, fmt.Errorf("list short links: %w", err)
	}

	var docs []linkDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list short links: %w", err)
	}

	links := make([]*shortener.ShortLink, 0, len(docs))
	for i := range docs {
		links = append(links, docs[i].toShortLink())
	}

	return links, nil
}

func (m *MongoStore) DeleteOwned(ctx context.Context, id shortener.LinkID, owner shortener.OwnerID) error {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return shortener.ErrNotFound
	}

	res, err := m.links.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}, {Key: "ownerId", Value: string(owner)}})
	if err != nil {
		return fmt.Errorf("delete short link: %w", err)
	}

	if res.DeletedCount == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

// Compile-time check.
var _ shortener.Repository = (*MongoStore)(nil)
