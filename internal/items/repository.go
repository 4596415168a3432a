package items

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	ierrors "github.com/achievelist/achievelist/internal/errors"
	"github.com/achievelist/achievelist/internal/store"
)

// Domain identifier for items errors.
const domainItems = "items"

// Repository performs ownership-scoped CRUD against the items collection.
type Repository interface {
	// ListByOwner returns the owner's items, newest first by CreatedAt.
	// The full set is returned; there is no pagination.
	ListByOwner(ctx context.Context, owner string) ([]Item, error)

	// Insert stores a new item, letting the store assign its identifier.
	// The item's ID field is populated on success and the hex form returned.
	Insert(ctx context.Context, item *Item) (string, error)

	// UpdateByOwner applies the patch to the document whose identifier AND
	// owner both match. A non-match (wrong id, wrong owner, or non-existent)
	// is a zero-affected outcome, not an error.
	UpdateByOwner(ctx context.Context, id, owner string, patch Patch) (*UpdateResult, error)

	// DeleteByOwner removes the document whose identifier AND owner both
	// match, with the same zero-affected semantics as UpdateByOwner.
	DeleteByOwner(ctx context.Context, id, owner string) (*DeleteResult, error)
}

// MongoRepository implements Repository on the document store, obtaining a
// handle through the injected connection provider on every call.
type MongoRepository struct {
	provider   store.Provider
	collection string
}

// NewMongoRepository creates a repository over the named collection.
func NewMongoRepository(provider store.Provider, collection string) *MongoRepository {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if collection == "" {
		panic("collection cannot be empty")
	}

	return &MongoRepository{
		provider:   provider,
		collection: collection,
	}
}

// coll resolves the live collection handle through the connection cache.
func (r *MongoRepository) coll(ctx context.Context) (*mongo.Collection, error) {
	conn, err := r.provider.Get(ctx)
	if err != nil {
		return nil, err
	}
	return conn.DB.Collection(r.collection), nil
}

// ListByOwner returns the owner's items, newest first.
func (r *MongoRepository) ListByOwner(ctx context.Context, owner string) ([]Item, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, ierrors.New(domainItems, "ListByOwner", ierrors.ErrInternal, err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	items := make([]Item, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, ierrors.New(domainItems, "ListByOwner", ierrors.ErrInternal, err)
	}

	return items, nil
}

// Insert stores a new item and populates its identifier.
func (r *MongoRepository) Insert(ctx context.Context, item *Item) (string, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return "", err
	}

	result, err := coll.InsertOne(ctx, item)
	if err != nil {
		return "", ierrors.New(domainItems, "Insert", ierrors.ErrInternal, err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", ierrors.New(domainItems, "Insert", ierrors.ErrInternal, nil).
			WithContext("inserted_id", result.InsertedID)
	}

	item.ID = oid
	return oid.Hex(), nil
}

// UpdateByOwner applies the patch to the matching owned document.
func (r *MongoRepository) UpdateByOwner(ctx context.Context, id, owner string, patch Patch) (*UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// No document can carry a malformed identifier; report zero-affected
		// rather than leaking a distinction between bad ids and non-owned ids.
		return &UpdateResult{}, nil
	}

	coll, err := r.coll(ctx)
	if err != nil {
		return nil, err
	}

	result, err := coll.UpdateOne(ctx,
		bson.M{"_id": oid, "owner": owner},
		bson.M{"$set": patch.setDoc()},
	)
	if err != nil {
		return nil, ierrors.New(domainItems, "UpdateByOwner", ierrors.ErrInternal, err).
			WithContext("id", id)
	}

	return &UpdateResult{
		Matched:  result.MatchedCount,
		Modified: result.ModifiedCount,
	}, nil
}

// DeleteByOwner removes the matching owned document.
func (r *MongoRepository) DeleteByOwner(ctx context.Context, id, owner string) (*DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &DeleteResult{}, nil
	}

	coll, err := r.coll(ctx)
	if err != nil {
		return nil, err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": oid, "owner": owner})
	if err != nil {
		return nil, ierrors.New(domainItems, "DeleteByOwner", ierrors.ErrInternal, err).
			WithContext("id", id)
	}

	return &DeleteResult{Deleted: result.DeletedCount}, nil
}

// setDoc renders the patch as a $set document containing only the fields the
// patch carries.
func (p Patch) setDoc() bson.M {
	set := bson.M{"updatedAt": p.UpdatedAt}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Completed != nil {
		set["completed"] = *p.Completed
	}
	return set
}
