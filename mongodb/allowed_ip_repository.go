package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"go.workpoint.io/attend/domain"
)

// AllowedIPRepository implements domain.AllowedIPRepository on MongoDB.
type AllowedIPRepository struct {
	coll *mongo.Collection
}

// NewAllowedIPRepository creates the repository and ensures a unique address
// index.
func NewAllowedIPRepository(ctx context.Context, db *mongo.Database) (domain.AllowedIPRepository, error) {
	repo := &AllowedIPRepository{coll: db.Collection(AllowedIPsCollection)}

	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "address", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Warn().Err(err).Msg("issue creating indexes for allowed_ips collection")
	}
	return repo, nil
}

// Add inserts an address. Re-adding an existing address is not an error.
func (r *AllowedIPRepository) Add(ctx context.Context, ip *domain.AllowedIP) error {
	_, err := r.coll.InsertOne(ctx, ip)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to insert allow-list entry: %w", err)
	}
	return nil
}

// Remove deletes an address. Removing an absent address is not an error.
func (r *AllowedIPRepository) Remove(ctx context.Context, address string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"address": address}); err != nil {
		return fmt.Errorf("failed to delete allow-list entry: %w", err)
	}
	return nil
}

// List returns every entry.
func (r *AllowedIPRepository) List(ctx context.Context) ([]*domain.AllowedIP, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query allow-list: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.AllowedIP
	for cur.Next(ctx) {
		var ip domain.AllowedIP
		if err := cur.Decode(&ip); err != nil {
			return nil, fmt.Errorf("failed to decode allow-list entry: %w", err)
		}
		out = append(out, &ip)
	}
	return out, cur.Err()
}

// Exists checks one address.
func (r *AllowedIPRepository) Exists(ctx context.Context, address string) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"address": address}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query allow-list: %w", err)
	}
	return true, nil
}
