package service_test

import (
	"context"
	"fmt"
	"testing"

	"liftlog/workout-app/internal/apperr"
	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shareEnv struct {
	users      *fakeUserRepo
	workouts   *fakeWorkoutRepo
	shares     *fakeSharedWorkoutRepo
	batch      *fakeBatchWriter
	dispatcher *fakeDispatcher
	svc        service.ShareService
}

func newShareEnv(users []*domain.User, workouts []*domain.Workout, shares []*domain.SharedWorkout) *shareEnv {
	env := &shareEnv{
		users:      newFakeUserRepo(users...),
		workouts:   newFakeWorkoutRepo(workouts...),
		shares:     newFakeSharedWorkoutRepo(shares...),
		dispatcher: &fakeDispatcher{},
	}
	env.batch = newFakeBatchWriter(env.users, env.workouts, env.shares)
	env.svc = service.NewShareService(
		env.users, env.workouts, env.shares, env.batch,
		env.dispatcher, fixedClock{now: testNow}, &seqIDGenerator{},
	)
	return env
}

func squatSender() *domain.User {
	return &domain.User{
		ID:       "alice",
		Username: "alice",
		Exercises: []domain.OwnedExercise{
			{ID: "sq", Name: "Squat", DefaultWeight: 80, Focuses: []string{"Legs"}, VideoURL: "https://v/squat"},
		},
		Workouts: []domain.WorkoutInfo{{WorkoutID: "w1", WorkoutName: "Leg Day"}},
	}
}

func squatWorkout() *domain.Workout {
	return &domain.Workout{
		ID:        "w1",
		Name:      "Leg Day",
		CreatorID: "alice",
		Routine: domain.Routine{Weeks: []domain.RoutineWeek{
			{Days: []domain.RoutineDay{
				{Tag: "Heavy", Exercises: []domain.RoutineExercise{
					{ExerciseID: "sq", Weight: 100, Sets: 5, Reps: 5},
					{ExerciseID: "sq", Weight: 80, Sets: 3, Reps: 8},
				}},
			}},
		}},
	}
}

func TestShareWorkout(t *testing.T) {
	ctx := context.Background()
	bob := &domain.User{ID: "bob", Username: "bob"}
	env := newShareEnv([]*domain.User{squatSender(), bob}, []*domain.Workout{squatWorkout()}, nil)

	shared, err := env.svc.ShareWorkout(ctx, "alice", "bob", "w1")
	require.NoError(t, err)

	assert.Equal(t, "id-1", shared.ID)
	assert.Equal(t, "Leg Day", shared.WorkoutName)
	assert.Equal(t, "alice", shared.SenderID)
	assert.Equal(t, "bob", shared.RecipientID)

	// Squat appears twice in the routine but once in the distinct list.
	require.Len(t, shared.DistinctExercises, 1)
	assert.Equal(t, "Squat", shared.DistinctExercises[0].ExerciseName)
	assert.Equal(t, []string{"Legs"}, shared.DistinctExercises[0].Focuses)

	// Preview entry, sent counter and share document land together.
	require.Len(t, env.batch.batches, 1)
	stored, err := env.shares.GetByID(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "bob", stored.RecipientID)

	recipient, err := env.users.GetByID(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, recipient.ReceivedWorkouts, 1)
	preview := recipient.ReceivedWorkouts[0]
	assert.Equal(t, "id-1", preview.SharedWorkoutID)
	assert.Equal(t, "alice", preview.SenderUsername)
	assert.Equal(t, "Legs", preview.MostFrequentFocus)
	assert.Equal(t, 1, preview.TotalDays)
	assert.Equal(t, testNow, preview.SharedUTC)
	assert.False(t, preview.Seen)

	sender, err := env.users.GetByID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, sender.WorkoutsSent)

	assert.Equal(t, 1, env.dispatcher.workoutShared)
}

func TestShareWorkoutRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("self share", func(t *testing.T) {
		env := newShareEnv([]*domain.User{squatSender()}, []*domain.Workout{squatWorkout()}, nil)
		_, err := env.svc.ShareWorkout(ctx, "alice", "alice", "w1")
		assert.Equal(t, apperr.KindMisc, apperr.KindOf(err))
	})

	t.Run("unknown recipient", func(t *testing.T) {
		env := newShareEnv([]*domain.User{squatSender()}, []*domain.Workout{squatWorkout()}, nil)
		_, err := env.svc.ShareWorkout(ctx, "alice", "ghost", "w1")
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("private recipient reads as not found", func(t *testing.T) {
		bob := &domain.User{ID: "bob", Username: "bob"}
		bob.Settings.Private = true
		env := newShareEnv([]*domain.User{squatSender(), bob}, []*domain.Workout{squatWorkout()}, nil)
		_, err := env.svc.ShareWorkout(ctx, "alice", "bob", "w1")
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("private recipient who is a friend works", func(t *testing.T) {
		bob := &domain.User{ID: "bob", Username: "bob"}
		bob.Settings.Private = true
		bob.Friends = []domain.FriendInfo{{UserID: "alice", Username: "alice", Confirmed: true}}
		env := newShareEnv([]*domain.User{squatSender(), bob}, []*domain.Workout{squatWorkout()}, nil)
		_, err := env.svc.ShareWorkout(ctx, "alice", "bob", "w1")
		assert.NoError(t, err)
	})

	t.Run("not the workout owner", func(t *testing.T) {
		bob := &domain.User{ID: "bob", Username: "bob"}
		env := newShareEnv([]*domain.User{squatSender(), bob}, []*domain.Workout{squatWorkout()}, nil)
		_, err := env.svc.ShareWorkout(ctx, "bob", "alice", "w1")
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("recipient inbox full", func(t *testing.T) {
		bob := &domain.User{ID: "bob", Username: "bob"}
		for i := 0; i < domain.MaxReceivedWorkouts; i++ {
			bob.ReceivedWorkouts = append(bob.ReceivedWorkouts, domain.SharedWorkoutInfo{SharedWorkoutID: "old"})
		}
		env := newShareEnv([]*domain.User{squatSender(), bob}, []*domain.Workout{squatWorkout()}, nil)
		_, err := env.svc.ShareWorkout(ctx, "alice", "bob", "w1")
		assert.Equal(t, apperr.KindMaxLimit, apperr.KindOf(err))
	})

	t.Run("sender over sent limit", func(t *testing.T) {
		alice := squatSender()
		alice.WorkoutsSent = alice.MaxWorkoutsSent()
		bob := &domain.User{ID: "bob", Username: "bob"}
		env := newShareEnv([]*domain.User{alice, bob}, []*domain.Workout{squatWorkout()}, nil)
		_, err := env.svc.ShareWorkout(ctx, "alice", "bob", "w1")
		assert.Equal(t, apperr.KindMaxLimit, apperr.KindOf(err))
	})
}

func TestShareWorkoutPushFailureDoesNotRollBack(t *testing.T) {
	ctx := context.Background()
	bob := &domain.User{ID: "bob", Username: "bob"}
	env := newShareEnv([]*domain.User{squatSender(), bob}, []*domain.Workout{squatWorkout()}, nil)
	env.dispatcher.err = assert.AnError

	shared, err := env.svc.ShareWorkout(ctx, "alice", "bob", "w1")
	require.NoError(t, err)

	_, err = env.shares.GetByID(ctx, shared.ID)
	assert.NoError(t, err)
}

func sharedForBob(env *shareEnv, t *testing.T) *domain.SharedWorkout {
	t.Helper()
	shared, err := env.svc.ShareWorkout(context.Background(), "alice", "bob", "w1")
	require.NoError(t, err)
	return shared
}

func TestAcceptReceivedWorkoutCreatesMissingExercises(t *testing.T) {
	ctx := context.Background()
	bob := &domain.User{ID: "bob", Username: "bob"}
	env := newShareEnv([]*domain.User{squatSender(), bob}, []*domain.Workout{squatWorkout()}, nil)
	shared := sharedForBob(env, t)

	workout, err := env.svc.AcceptReceivedWorkout(ctx, "bob", shared.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Leg Day", workout.Name)
	assert.Equal(t, "bob", workout.CreatorID)

	recipient, err := env.users.GetByID(ctx, "bob")
	require.NoError(t, err)

	// Bob had no Squat; exactly one was created, with frozen metadata and a
	// fresh ID distinct from Alice's.
	require.Len(t, recipient.Exercises, 1)
	created := recipient.Exercises[0]
	assert.Equal(t, "Squat", created.Name)
	assert.NotEqual(t, "sq", created.ID)
	assert.Equal(t, []string{"Legs"}, created.Focuses)
	assert.Equal(t, "https://v/squat", created.VideoURL)

	// Every occurrence resolves to that one catalog entry.
	for _, occ := range workout.Routine.Weeks[0].Days[0].Exercises {
		assert.Equal(t, created.ID, occ.ExerciseID)
	}

	// Back-reference and summary were established for the new workout.
	require.Len(t, created.Workouts, 1)
	assert.Equal(t, workout.ID, created.Workouts[0].WorkoutID)
	require.Len(t, recipient.Workouts, 1)
	assert.Equal(t, workout.ID, recipient.Workouts[0].WorkoutID)

	// The pending share is gone on both sides.
	assert.Empty(t, recipient.ReceivedWorkouts)
	_, err = env.shares.GetByID(ctx, shared.ID)
	assert.Error(t, err)
}

func TestAcceptReceivedWorkoutReusesExistingExercise(t *testing.T) {
	ctx := context.Background()
	bob := &domain.User{
		ID:       "bob",
		Username: "bob",
		Exercises: []domain.OwnedExercise{
			{ID: "xyz", Name: "Squat", DefaultWeight: 60, Focuses: []string{"Quads"}},
		},
	}
	env := newShareEnv([]*domain.User{squatSender(), bob}, []*domain.Workout{squatWorkout()}, nil)
	shared := sharedForBob(env, t)

	workout, err := env.svc.AcceptReceivedWorkout(ctx, "bob", shared.ID, "")
	require.NoError(t, err)

	recipient, err := env.users.GetByID(ctx, "bob")
	require.NoError(t, err)

	// Name match resolves to Bob's own entry; nothing new is created and his
	// metadata is untouched.
	require.Len(t, recipient.Exercises, 1)
	assert.Equal(t, []string{"Quads"}, recipient.Exercises[0].Focuses)
	for _, occ := range workout.Routine.Weeks[0].Days[0].Exercises {
		assert.Equal(t, "xyz", occ.ExerciseID)
	}
}

func TestAcceptReceivedWorkoutRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong recipient", func(t *testing.T) {
		bob := &domain.User{ID: "bob", Username: "bob"}
		carol := &domain.User{ID: "carol", Username: "carol"}
		env := newShareEnv([]*domain.User{squatSender(), bob, carol}, []*domain.Workout{squatWorkout()}, nil)
		shared := sharedForBob(env, t)
		_, err := env.svc.AcceptReceivedWorkout(ctx, "carol", shared.ID, "")
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("duplicate workout name", func(t *testing.T) {
		bob := &domain.User{
			ID:       "bob",
			Username: "bob",
			Workouts: []domain.WorkoutInfo{{WorkoutID: "wb", WorkoutName: "Leg Day"}},
		}
		env := newShareEnv([]*domain.User{squatSender(), bob}, []*domain.Workout{squatWorkout()}, nil)
		shared := sharedForBob(env, t)
		_, err := env.svc.AcceptReceivedWorkout(ctx, "bob", shared.ID, "")
		assert.Equal(t, apperr.KindAlreadyExists, apperr.KindOf(err))

		// A rename on accept sidesteps the collision.
		workout, err := env.svc.AcceptReceivedWorkout(ctx, "bob", shared.ID, "Leg Day v2")
		require.NoError(t, err)
		assert.Equal(t, "Leg Day v2", workout.Name)
	})

	t.Run("workout limit", func(t *testing.T) {
		bob := &domain.User{ID: "bob", Username: "bob"}
		for i := 0; i < bob.MaxWorkouts(); i++ {
			bob.Workouts = append(bob.Workouts, domain.WorkoutInfo{WorkoutID: "x", WorkoutName: "x"})
		}
		env := newShareEnv([]*domain.User{squatSender(), bob}, []*domain.Workout{squatWorkout()}, nil)
		shared := sharedForBob(env, t)
		_, err := env.svc.AcceptReceivedWorkout(ctx, "bob", shared.ID, "")
		assert.Equal(t, apperr.KindMaxLimit, apperr.KindOf(err))
	})

	t.Run("exercise limit", func(t *testing.T) {
		// Bob's catalog is full and lacks a Squat entry, so accepting would
		// need to create one past the limit.
		bob := &domain.User{ID: "bob", Username: "bob"}
		for i := 0; i < bob.MaxExercises(); i++ {
			bob.Exercises = append(bob.Exercises, domain.OwnedExercise{ID: fmt.Sprintf("e-%d", i), Name: fmt.Sprintf("Exercise %d", i)})
		}
		env := newShareEnv([]*domain.User{squatSender(), bob}, []*domain.Workout{squatWorkout()}, nil)
		shared := sharedForBob(env, t)
		_, err := env.svc.AcceptReceivedWorkout(ctx, "bob", shared.ID, "")
		assert.Equal(t, apperr.KindMaxLimit, apperr.KindOf(err))
	})

	t.Run("unknown share", func(t *testing.T) {
		bob := &domain.User{ID: "bob", Username: "bob"}
		env := newShareEnv([]*domain.User{bob}, nil, nil)
		_, err := env.svc.AcceptReceivedWorkout(ctx, "bob", "nope", "")
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestDeclineReceivedWorkout(t *testing.T) {
	ctx := context.Background()
	bob := &domain.User{ID: "bob", Username: "bob"}
	env := newShareEnv([]*domain.User{squatSender(), bob}, []*domain.Workout{squatWorkout()}, nil)
	shared := sharedForBob(env, t)

	require.NoError(t, env.svc.DeclineReceivedWorkout(ctx, "bob", shared.ID))

	recipient, err := env.users.GetByID(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, recipient.ReceivedWorkouts)
	// No catalog or workout side effects.
	assert.Empty(t, recipient.Exercises)
	assert.Empty(t, recipient.Workouts)
	_, err = env.shares.GetByID(ctx, shared.ID)
	assert.Error(t, err)

	// The sender's sent counter is not refunded.
	sender, err := env.users.GetByID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, sender.WorkoutsSent)
}

func TestGetReceivedWorkout(t *testing.T) {
	ctx := context.Background()
	bob := &domain.User{ID: "bob", Username: "bob"}
	carol := &domain.User{ID: "carol", Username: "carol"}
	env := newShareEnv([]*domain.User{squatSender(), bob, carol}, []*domain.Workout{squatWorkout()}, nil)
	shared := sharedForBob(env, t)

	got, err := env.svc.GetReceivedWorkout(ctx, "bob", shared.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.ID, got.ID)

	_, err = env.svc.GetReceivedWorkout(ctx, "carol", shared.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	bobShares, err := env.svc.GetReceivedWorkouts(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobShares, 1)
	assert.Equal(t, shared.ID, bobShares[0].ID)

	carolShares, err := env.svc.GetReceivedWorkouts(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, carolShares)
}

func TestSetReceivedWorkoutSeen(t *testing.T) {
	ctx := context.Background()
	bob := &domain.User{ID: "bob", Username: "bob"}
	env := newShareEnv([]*domain.User{squatSender(), bob}, []*domain.Workout{squatWorkout()}, nil)
	shared := sharedForBob(env, t)

	require.NoError(t, env.svc.SetReceivedWorkoutSeen(ctx, "bob", shared.ID))
	recipient, err := env.users.GetByID(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, recipient.ReceivedWorkouts[0].Seen)

	err = env.svc.SetReceivedWorkoutSeen(ctx, "bob", "nope")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSetAllReceivedWorkoutsSeen(t *testing.T) {
	ctx := context.Background()
	bob := &domain.User{ID: "bob", Username: "bob"}
	alice := squatSender()
	alice.Workouts = append(alice.Workouts, domain.WorkoutInfo{WorkoutID: "w2", WorkoutName: "Push Day"})
	second := squatWorkout()
	second.ID = "w2"
	second.Name = "Push Day"
	env := newShareEnv([]*domain.User{alice, bob}, []*domain.Workout{squatWorkout(), second}, nil)

	sharedForBob(env, t)
	_, err := env.svc.ShareWorkout(ctx, "alice", "bob", "w2")
	require.NoError(t, err)

	require.NoError(t, env.svc.SetAllReceivedWorkoutsSeen(ctx, "bob"))
	recipient, err := env.users.GetByID(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, recipient.ReceivedWorkouts, 2)
	for _, preview := range recipient.ReceivedWorkouts {
		assert.True(t, preview.Seen)
	}
}
