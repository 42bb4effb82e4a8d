// Package stats holds the pure statistics engine: most-frequent-focus
// aggregation, the incremental completion average, the default-weight
// ratchet, and all maintenance of the OwnedExercise.Workouts back-reference
// index. Services never touch that index directly; routing every mutation
// through here is what keeps it equal to the set of routines that actually
// reference each exercise.
package stats

import (
	"strings"

	"liftlog/workout-app/internal/domain"
)

// FindMostFrequentFocus counts one vote per focus tag for every exercise
// occurrence in the routine (an exercise with three focuses contributes
// three votes per occurrence). Ties are returned joined with "," in order of
// first appearance. A routine with zero occurrences yields the empty string.
func FindMostFrequentFocus(user *domain.User, routine *domain.Routine) string {
	counts := make(map[string]int)
	var order []string

	for w := range routine.Weeks {
		for d := range routine.Weeks[w].Days {
			for _, occ := range routine.Weeks[w].Days[d].Exercises {
				exercise := user.ExerciseByID(occ.ExerciseID)
				if exercise == nil {
					continue
				}
				for _, focus := range exercise.Focuses {
					if _, ok := counts[focus]; !ok {
						order = append(order, focus)
					}
					counts[focus]++
				}
			}
		}
	}
	if len(order) == 0 {
		return ""
	}

	max := 0
	for _, focus := range order {
		if counts[focus] > max {
			max = counts[focus]
		}
	}
	var top []string
	for _, focus := range order {
		if counts[focus] == max {
			top = append(top, focus)
		}
	}
	return strings.Join(top, ",")
}

// RatchetDefaultWeights raises catalog default weights to the highest
// occurrence weight seen in the routine. Defaults only ever increase here.
// With completedOnly set, only completed occurrences are considered (the
// restart path); otherwise every occurrence counts (the creation path).
func RatchetDefaultWeights(user *domain.User, routine *domain.Routine, completedOnly bool) {
	for w := range routine.Weeks {
		for d := range routine.Weeks[w].Days {
			for _, occ := range routine.Weeks[w].Days[d].Exercises {
				if completedOnly && !occ.Completed {
					continue
				}
				exercise := user.ExerciseByID(occ.ExerciseID)
				if exercise != nil && occ.Weight > exercise.DefaultWeight {
					exercise.DefaultWeight = occ.Weight
				}
			}
		}
	}
}

// UpdateOwnedExercisesOnCreation runs the creation pass for a new workout:
// optionally ratchets default weights, then appends a back-reference to
// every catalog exercise the routine touches. Runs on create, copy and
// accept.
func UpdateOwnedExercisesOnCreation(user *domain.User, workout *domain.Workout, updateWeight bool) {
	if updateWeight {
		RatchetDefaultWeights(user, &workout.Routine, false)
	}
	for _, id := range workout.Routine.DistinctExerciseIDs() {
		exercise := user.ExerciseByID(id)
		if exercise == nil {
			continue
		}
		if !exercise.ReferencesWorkout(workout.ID) {
			exercise.Workouts = append(exercise.Workouts, domain.WorkoutRef{
				WorkoutID:   workout.ID,
				WorkoutName: workout.Name,
			})
		}
	}
}

// RemoveWorkoutReferences strips the given workout's back-reference from
// every catalog exercise. Runs on workout delete and before re-appending on
// a routine edit.
func RemoveWorkoutReferences(user *domain.User, workoutID string) {
	for i := range user.Exercises {
		user.Exercises[i].RemoveWorkoutRef(workoutID)
	}
}

// SyncWorkoutName updates the denormalized workout name on every
// back-reference after a rename.
func SyncWorkoutName(user *domain.User, workoutID, newName string) {
	for i := range user.Exercises {
		for j := range user.Exercises[i].Workouts {
			if user.Exercises[i].Workouts[j].WorkoutID == workoutID {
				user.Exercises[i].Workouts[j].WorkoutName = newName
			}
		}
	}
}

// RestartWorkout folds every occurrence of the finished cycle into the
// running completion average, optionally ratchets defaults for completed
// occurrences, and resets all Completed flags. The mean uses the
// incremental formula newMean = (value + oldMean*count) / (count+1), with
// count incremented once per occurrence in traversal order; the final value
// is order-independent.
func RestartWorkout(routine *domain.Routine, info *domain.WorkoutInfo, user *domain.User) {
	// Ratchet first: the reset loop below clears the Completed flags the
	// completed-only pass reads.
	if user.Settings.UpdateDefaultWeightOnRestart {
		RatchetDefaultWeights(user, routine, true)
	}
	for w := range routine.Weeks {
		for d := range routine.Weeks[w].Days {
			day := &routine.Weeks[w].Days[d]
			for i := range day.Exercises {
				occ := &day.Exercises[i]
				value := 0.0
				if occ.Completed {
					value = 1.0
				}
				count := float64(info.TotalExercisesSum)
				info.AverageExercisesCompleted = (value + info.AverageExercisesCompleted*count) / (count + 1)
				info.TotalExercisesSum++
				occ.Completed = false
			}
		}
	}
}
