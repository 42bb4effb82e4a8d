package mongo

import (
	"context"
	"errors"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	log "github.com/sirupsen/logrus"
)

const sharedWorkoutCollectionName = "shared_workouts"

// mongoSharedWorkoutRepository implements repository.SharedWorkoutRepository
// using MongoDB.
type mongoSharedWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoSharedWorkoutRepository creates a new instance of
// mongoSharedWorkoutRepository.
func NewMongoSharedWorkoutRepository(db *mongo.Database) repository.SharedWorkoutRepository {
	return &mongoSharedWorkoutRepository{
		collection: db.Collection(sharedWorkoutCollectionName),
	}
}

// GetByID retrieves a shared workout by ID.
func (r *mongoSharedWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.SharedWorkout, error) {
	var shared domain.SharedWorkout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&shared)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &shared, nil
}

// GetByRecipientID retrieves every outstanding share addressed to a user.
func (r *mongoSharedWorkoutRepository) GetByRecipientID(ctx context.Context, recipientID string) ([]domain.SharedWorkout, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"recipientId": recipientID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shares []domain.SharedWorkout
	if err = cursor.All(ctx, &shares); err != nil {
		return nil, err
	}
	return shares, nil
}

// GetBySenderID retrieves every outstanding share a user sent. Used by the
// account deletion cascade.
func (r *mongoSharedWorkoutRepository) GetBySenderID(ctx context.Context, senderID string) ([]domain.SharedWorkout, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"senderId": senderID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shares []domain.SharedWorkout
	if err = cursor.All(ctx, &shares); err != nil {
		return nil, err
	}
	return shares, nil
}

// Put inserts or replaces the shared workout document. In practice shares
// are only ever created and deleted, never updated in place.
func (r *mongoSharedWorkoutRepository) Put(ctx context.Context, sharedWorkout *domain.SharedWorkout) error {
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": sharedWorkout.ID},
		sharedWorkout,
		options.Replace().SetUpsert(true),
	)
	return err
}

// Delete removes the shared workout document.
func (r *mongoSharedWorkoutRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureSharedWorkoutIndexes creates the indexes for the shared_workouts
// collection.
func EnsureSharedWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "recipientId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "senderId", Value: 1}},
			Options: options.Index(),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.WithError(err).Warnf("failed to create indexes for %s", collection.Name())
	}
}
