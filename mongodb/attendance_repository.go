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

// AttendanceRepository implements domain.AttendanceRepository on MongoDB.
type AttendanceRepository struct {
	coll *mongo.Collection
}

// NewAttendanceRepository creates the repository and ensures the compound
// unique index on (user_id, day) that backs the one-record-per-day rule.
func NewAttendanceRepository(ctx context.Context, db *mongo.Database) (domain.AttendanceRepository, error) {
	repo := &AttendanceRepository{coll: db.Collection(AttendanceCollection)}

	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "day", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Warn().Err(err).Msg("issue creating indexes for attendance collection")
	}
	return repo, nil
}

// Create inserts a punch-in record. The unique index rejects a second
// punch-in on the same day even when two requests race past the service
// level check.
func (r *AttendanceRepository) Create(ctx context.Context, att *domain.Attendance) error {
	_, err := r.coll.InsertOne(ctx, att)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("failed to insert attendance: %w", err)
	}
	return nil
}

// GetByUserAndDay fetches one day's record.
func (r *AttendanceRepository) GetByUserAndDay(ctx context.Context, userID, day string) (*domain.Attendance, error) {
	var att domain.Attendance
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "day": day}).Decode(&att)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAttendanceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	return &att, nil
}

// ClosePunch sets the punch-out instant on an open record.
func (r *AttendanceRepository) ClosePunch(ctx context.Context, id string, punchOutAt time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "punch_out_at": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"punch_out_at": punchOutAt}},
	)
	if err != nil {
		return fmt.Errorf("failed to close attendance: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAttendanceNotFound
	}
	return nil
}

// ListByUserAndMonth returns a user's records for a "2006-01" month, oldest
// first. The day field is a lexicographically ordered date string, so a
// prefix range does the month filter.
func (r *AttendanceRepository) ListByUserAndMonth(ctx context.Context, userID, month string) ([]*domain.Attendance, error) {
	filter := bson.M{
		"user_id": userID,
		"day":     bson.M{"$gte": month + "-01", "$lte": month + "-31"},
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "day", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Attendance
	for cur.Next(ctx) {
		var att domain.Attendance
		if err := cur.Decode(&att); err != nil {
			return nil, fmt.Errorf("failed to decode attendance: %w", err)
		}
		out = append(out, &att)
	}
	return out, cur.Err()
}
