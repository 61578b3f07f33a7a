package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/notekit/notekit/backend/go-services/internal/note"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo stores one document per note; _id is the note id.
type MongoRepo struct {
	col  *mongo.Collection
	opts options
}

// NewMongoRepo ensures the owner/updatedAt index used by List.
func NewMongoRepo(ctx context.Context, col *mongo.Collection, opts ...Option) (*MongoRepo, error) {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "updatedAt", Value: 1}}}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, fmt.Errorf("create notes index: %w", err)
	}
	return &MongoRepo{col: col, opts: buildOptions(opts)}, nil
}

func ownerFilter(ownerID, id string) bson.M {
	return bson.M{"_id": id, "userId": ownerID}
}

func (m *MongoRepo) Create(ctx context.Context, n *note.Note) (*note.Note, error) {
	created := n.Clone()
	created.ID = m.opts.newID()
	created.CreatedAt = m.opts.timestamp()
	created.UpdatedAt = created.CreatedAt
	if _, err := m.col.InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return created, nil
}

func (m *MongoRepo) Get(ctx context.Context, ownerID, id string) (*note.Note, error) {
	var n note.Note
	if err := m.col.FindOne(ctx, ownerFilter(ownerID, id)).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return normalizeMongo(&n), nil
}

func (m *MongoRepo) List(ctx context.Context, ownerID string) ([]*note.Note, error) {
	findOpts := mongoopts.Find().SetSort(bson.D{{Key: "updatedAt", Value: 1}, {Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := m.col.Find(ctx, bson.M{"userId": ownerID}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*note.Note, 0)
	for cur.Next(ctx) {
		var n note.Note
		if err := cur.Decode(&n); err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		out = append(out, normalizeMongo(&n))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return out, nil
}

func (m *MongoRepo) Update(ctx context.Context, ownerID, id string, p note.Patch) (*note.Note, error) {
	set := bson.M{"updatedAt": m.opts.timestamp()}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Content != nil {
		set["content"] = *p.Content
	}
	if p.Tags != nil {
		set["tags"] = note.CloneTags(*p.Tags)
	}

	var n note.Note
	after := mongoopts.FindOneAndUpdate().SetReturnDocument(mongoopts.After)
	err := m.col.FindOneAndUpdate(ctx, ownerFilter(ownerID, id), bson.M{"$set": set}, after).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return normalizeMongo(&n), nil
}

func (m *MongoRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := m.col.DeleteOne(ctx, ownerFilter(ownerID, id))
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}

// normalizeMongo restores invariants lost in BSON round trips (nil tags, local times).
func normalizeMongo(n *note.Note) *note.Note {
	if n.Tags == nil {
		n.Tags = []string{}
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return n
}
