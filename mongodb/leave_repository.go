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

// LeaveRepository implements domain.LeaveRepository on MongoDB.
type LeaveRepository struct {
	coll *mongo.Collection
}

// NewLeaveRepository creates the repository and ensures lookup indexes.
func NewLeaveRepository(ctx context.Context, db *mongo.Database) (domain.LeaveRepository, error) {
	repo := &LeaveRepository{coll: db.Collection(LeavesCollection)}

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "from", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		log.Warn().Err(err).Msg("issue creating indexes for leave_requests collection")
	}
	return repo, nil
}

// Create inserts a new request.
func (r *LeaveRepository) Create(ctx context.Context, req *domain.LeaveRequest) error {
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to insert leave request: %w", err)
	}
	return nil
}

// GetByID fetches one request.
func (r *LeaveRepository) GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	var req domain.LeaveRequest
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrLeaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query leave request: %w", err)
	}
	return &req, nil
}

// ListByUser returns a user's requests, newest first.
func (r *LeaveRepository) ListByUser(ctx context.Context, userID string) ([]*domain.LeaveRequest, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

// ListByStatus returns every request in a decision state.
func (r *LeaveRepository) ListByStatus(ctx context.Context, status domain.LeaveStatus) ([]*domain.LeaveRequest, error) {
	return r.list(ctx, bson.M{"status": status})
}

func (r *LeaveRepository) list(ctx context.Context, filter bson.M) ([]*domain.LeaveRequest, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.LeaveRequest
	for cur.Next(ctx) {
		var req domain.LeaveRequest
		if err := cur.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode leave request: %w", err)
		}
		out = append(out, &req)
	}
	return out, cur.Err()
}

// UpdateStatus records a decision on a still-pending request.
func (r *LeaveRepository) UpdateStatus(ctx context.Context, id string, status domain.LeaveStatus,
	decidedBy string, decidedAt time.Time,
) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": domain.LeaveStatusPending},
		bson.M{"$set": bson.M{"status": status, "decided_by": decidedBy, "decided_at": decidedAt}},
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLeaveNotFound
	}
	return nil
}

// ApprovedAnnualInYear returns the approved annual requests starting in the
// given calendar year, the input to balance arithmetic.
func (r *LeaveRepository) ApprovedAnnualInYear(ctx context.Context, userID string, year int) ([]*domain.LeaveRequest, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	return r.list(ctx, bson.M{
		"user_id": userID,
		"type":    domain.LeaveTypeAnnual,
		"status":  domain.LeaveStatusApproved,
		"from":    bson.M{"$gte": start, "$lt": end},
	})
}
