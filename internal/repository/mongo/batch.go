package mongo

import (
	"context"

	"liftlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoBatchWriter implements repository.BatchWriter with a multi-document
// transaction spanning the users, workouts and shared_workouts collections.
// The commit is atomic within the call only; nothing sequenced outside it
// (push dispatch, cascading cleanups) participates.
type mongoBatchWriter struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoBatchWriter creates a new instance of mongoBatchWriter.
func NewMongoBatchWriter(client *mongo.Client, db *mongo.Database) repository.BatchWriter {
	return &mongoBatchWriter{client: client, db: db}
}

// ExecuteBatchWrite applies every put and delete of the batch inside one
// transaction.
func (w *mongoBatchWriter) ExecuteBatchWrite(ctx context.Context, batch repository.BatchWrite) error {
	if batch.IsEmpty() {
		return nil
	}

	session, err := w.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	users := w.db.Collection(userCollectionName)
	workouts := w.db.Collection(workoutCollectionName)
	shares := w.db.Collection(sharedWorkoutCollectionName)
	upsert := options.Replace().SetUpsert(true)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, user := range batch.UsersToPut {
			if _, err := users.ReplaceOne(sc, bson.M{"_id": user.ID}, user, upsert); err != nil {
				return nil, err
			}
		}
		for _, workout := range batch.WorkoutsToPut {
			if _, err := workouts.ReplaceOne(sc, bson.M{"_id": workout.ID}, workout, upsert); err != nil {
				return nil, err
			}
		}
		for _, shared := range batch.SharedWorkoutsToPut {
			if _, err := shares.ReplaceOne(sc, bson.M{"_id": shared.ID}, shared, upsert); err != nil {
				return nil, err
			}
		}
		for _, id := range batch.UsersToDelete {
			if _, err := users.DeleteOne(sc, bson.M{"_id": id}); err != nil {
				return nil, err
			}
		}
		for _, id := range batch.WorkoutsToDelete {
			if _, err := workouts.DeleteOne(sc, bson.M{"_id": id}); err != nil {
				return nil, err
			}
		}
		for _, id := range batch.SharedWorkoutsToDelete {
			if _, err := shares.DeleteOne(sc, bson.M{"_id": id}); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}
