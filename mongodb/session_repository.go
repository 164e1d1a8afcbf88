package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"go.workpoint.io/attend/domain"
)

// SessionRepository implements domain.SessionRepository on MongoDB.
type SessionRepository struct {
	coll *mongo.Collection
}

// NewSessionRepository creates the repository and ensures its indexes: a
// unique index on the token value, a lookup index on user_id, and a TTL
// index on expires_at so Mongo eventually removes expired documents. The
// TTL index is housekeeping only; FindLive filters on the expiry instant
// itself and never returns an expired document, swept or not.
func NewSessionRepository(ctx context.Context, db *mongo.Database) (domain.SessionRepository, error) {
	repo := &SessionRepository{coll: db.Collection(SessionsCollection)}

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "refresh_token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		log.Warn().Err(err).Msg("issue creating indexes for sessions collection")
	}

	return repo, nil
}

// Save inserts a new refresh session.
func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	_, err := r.coll.InsertOne(ctx, session)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Token values are random; a collision here means the same
			// token was saved twice, not a birthday accident.
			return domain.ErrDuplicate
		}
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// FindLive matches token value AND owner, and only documents whose expiry
// instant is still ahead.
func (r *SessionRepository) FindLive(ctx context.Context, refreshToken, userID string) (*domain.Session, error) {
	var session domain.Session
	err := r.coll.FindOne(ctx, bson.M{
		"refresh_token": refreshToken,
		"user_id":       userID,
		"expires_at":    bson.M{"$gt": time.Now().UTC()},
	}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return &session, nil
}

// Rotate deletes the consumed session and inserts its replacement. The two
// steps are not a transaction: a crash in between leaves the user with no
// valid refresh token (fail closed), never with two for the same slot. The
// delete is idempotent; concurrent refreshes of the same record can both
// reach the insert, which is the documented duplicate-live-token race.
func (r *SessionRepository) Rotate(ctx context.Context, oldID string, replacement *domain.Session) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oldID})
	if err != nil {
		return fmt.Errorf("failed to delete consumed session: %w", err)
	}
	if res.DeletedCount == 0 {
		log.Debug().Str("session_id", oldID).Msg("consumed session already gone, continuing rotation")
	}
	return r.Save(ctx, replacement)
}

// RevokeAll deletes every session of the user across devices.
func (r *SessionRepository) RevokeAll(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

// DeleteExpired removes documents past their expiry instant.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now().UTC()}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return res.DeletedCount, nil
}
