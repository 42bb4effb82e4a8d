package repository

import (
	"context"

	"liftlog/workout-app/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("conflict")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors from service errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user documents.
// IDs and timestamps are assigned by the service layer; repositories persist
// documents as given.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// WorkoutRepository defines the interface for interacting with workout
// documents.
type WorkoutRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	Put(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id string) error
}

// SharedWorkoutRepository defines the interface for interacting with
// outstanding share documents.
type SharedWorkoutRepository interface {
	GetByID(ctx context.Context, id string) (*domain.SharedWorkout, error)
	GetByRecipientID(ctx context.Context, recipientID string) ([]domain.SharedWorkout, error)
	GetBySenderID(ctx context.Context, senderID string) ([]domain.SharedWorkout, error)
	Put(ctx context.Context, sharedWorkout *domain.SharedWorkout) error
	Delete(ctx context.Context, id string) error
}

// BatchWrite groups heterogeneous puts and deletes across the three logical
// collections into one call.
type BatchWrite struct {
	UsersToPut             []*domain.User
	WorkoutsToPut          []*domain.Workout
	SharedWorkoutsToPut    []*domain.SharedWorkout
	UsersToDelete          []string
	WorkoutsToDelete       []string
	SharedWorkoutsToDelete []string
}

// IsEmpty reports whether the batch contains no operations.
func (b *BatchWrite) IsEmpty() bool {
	return len(b.UsersToPut) == 0 && len(b.WorkoutsToPut) == 0 && len(b.SharedWorkoutsToPut) == 0 &&
		len(b.UsersToDelete) == 0 && len(b.WorkoutsToDelete) == 0 && len(b.SharedWorkoutsToDelete) == 0
}

// BatchWriter commits a BatchWrite atomically within the call. There is no
// atomicity across separate calls; cascading multi-user cleanups remain
// best-effort sequences of independent writes.
type BatchWriter interface {
	ExecuteBatchWrite(ctx context.Context, batch BatchWrite) error
}
