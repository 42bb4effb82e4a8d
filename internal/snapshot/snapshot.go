// Package snapshot converts between the private, ID-referencing Routine and
// the portable, name-referencing SharedRoutine used to hand a workout to
// another user.
package snapshot

import (
	"liftlog/workout-app/internal/apperr"
	"liftlog/workout-app/internal/domain"
)

// BuildSharedWorkout walks the workout's routine week by week, resolving
// every exercise ID against the sender's catalog to produce a name-based
// snapshot, structure preserved 1:1. DistinctExercises captures each
// referenced exercise once, with its focus tags and video URL frozen at
// share time.
//
// A routine occurrence whose ID has no catalog entry is a data-integrity
// violation (the back-reference invariant should make it impossible) and is
// reported as a misc error rather than a user-facing validation failure.
func BuildSharedWorkout(workout *domain.Workout, sender *domain.User, recipientID, sharedWorkoutID string) (*domain.SharedWorkout, error) {
	shared := &domain.SharedWorkout{
		ID:             sharedWorkoutID,
		WorkoutName:    workout.Name,
		SenderID:       sender.ID,
		SenderUsername: sender.Username,
		RecipientID:    recipientID,
	}

	routine := &workout.Routine
	shared.Routine.Weeks = make([]domain.SharedWeek, len(routine.Weeks))
	for w := range routine.Weeks {
		week := &routine.Weeks[w]
		sharedWeek := domain.SharedWeek{Days: make([]domain.SharedDay, len(week.Days))}
		for d := range week.Days {
			day := &week.Days[d]
			sharedDay := domain.SharedDay{
				Tag:       day.Tag,
				Exercises: make([]domain.SharedExercise, 0, len(day.Exercises)),
			}
			for _, occ := range day.Exercises {
				exercise := sender.ExerciseByID(occ.ExerciseID)
				if exercise == nil {
					return nil, apperr.Misc("workout %s references exercise %s missing from owner catalog", workout.ID, occ.ExerciseID)
				}
				sharedDay.Exercises = append(sharedDay.Exercises, domain.SharedExercise{
					ExerciseName: exercise.Name,
					Weight:       occ.Weight,
					Sets:         occ.Sets,
					Reps:         occ.Reps,
					Details:      occ.Details,
				})
			}
			sharedWeek.Days[d] = sharedDay
		}
		shared.Routine.Weeks[w] = sharedWeek
	}

	// Metadata is sent once per exercise, not per occurrence.
	for _, id := range routine.DistinctExerciseIDs() {
		exercise := sender.ExerciseByID(id)
		if exercise == nil {
			return nil, apperr.Misc("workout %s references exercise %s missing from owner catalog", workout.ID, id)
		}
		shared.DistinctExercises = append(shared.DistinctExercises, domain.SharedWorkoutDistinctExercise{
			ExerciseName: exercise.Name,
			VideoURL:     exercise.VideoURL,
			Focuses:      append([]string(nil), exercise.Focuses...),
		})
	}

	return shared, nil
}

// BuildRoutine is the accept-direction inverse: it rebuilds an ID-based
// routine by mapping every exercise name through nameToID. The caller must
// have reconciled the recipient's catalog first so every name resolves.
// Only per-occurrence weight/sets/reps/details are carried over; catalog
// defaults are left to the creation pass of the statistics engine.
func BuildRoutine(shared *domain.SharedRoutine, nameToID map[string]string) (domain.Routine, error) {
	routine := domain.Routine{Weeks: make([]domain.RoutineWeek, len(shared.Weeks))}
	for w := range shared.Weeks {
		week := &shared.Weeks[w]
		routineWeek := domain.RoutineWeek{Days: make([]domain.RoutineDay, len(week.Days))}
		for d := range week.Days {
			day := &week.Days[d]
			routineDay := domain.RoutineDay{
				Tag:       day.Tag,
				Exercises: make([]domain.RoutineExercise, 0, len(day.Exercises)),
			}
			for _, occ := range day.Exercises {
				id, ok := nameToID[occ.ExerciseName]
				if !ok {
					return domain.Routine{}, apperr.Misc("shared routine references exercise %q with no catalog mapping", occ.ExerciseName)
				}
				routineDay.Exercises = append(routineDay.Exercises, domain.RoutineExercise{
					ExerciseID: id,
					Weight:     occ.Weight,
					Sets:       occ.Sets,
					Reps:       occ.Reps,
					Details:    occ.Details,
				})
			}
			routineWeek.Days[d] = routineDay
		}
		routine.Weeks[w] = routineWeek
	}
	return routine, nil
}
