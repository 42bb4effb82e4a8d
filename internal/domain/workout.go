package domain

import (
	"time"
)

// RoutineExercise is one occurrence of a catalog exercise inside a routine.
// ExerciseID is a soft foreign key into the owner's catalog, enforced at use
// time rather than by a constraint.
type RoutineExercise struct {
	ExerciseID string  `bson:"exerciseId" json:"exerciseId"`
	Weight     float64 `bson:"weight" json:"weight"`
	Sets       int     `bson:"sets" json:"sets"`
	Reps       int     `bson:"reps" json:"reps"`
	Details    string  `bson:"details,omitempty" json:"details,omitempty"`
	Completed  bool    `bson:"completed" json:"completed"`
}

// RoutineDay groups the exercises of one training day. Tag is a free-text
// label, independent across days.
type RoutineDay struct {
	Tag       string            `bson:"tag,omitempty" json:"tag,omitempty"`
	Exercises []RoutineExercise `bson:"exercises" json:"exercises"`
}

// RoutineWeek is an ordered list of days.
type RoutineWeek struct {
	Days []RoutineDay `bson:"days" json:"days"`
}

// Routine is the week/day/exercise structure of a Workout. It is mutable and
// versioned implicitly by replacement.
type Routine struct {
	Weeks []RoutineWeek `bson:"weeks" json:"weeks"`
}

// TotalDays returns the number of days across all weeks.
func (r *Routine) TotalDays() int {
	total := 0
	for i := range r.Weeks {
		total += len(r.Weeks[i].Days)
	}
	return total
}

// TotalExercises returns the number of exercise occurrences across the
// whole routine.
func (r *Routine) TotalExercises() int {
	total := 0
	for w := range r.Weeks {
		for d := range r.Weeks[w].Days {
			total += len(r.Weeks[w].Days[d].Exercises)
		}
	}
	return total
}

// DistinctExerciseIDs returns the deduplicated exercise IDs referenced
// anywhere in the routine, in first-appearance order.
func (r *Routine) DistinctExerciseIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for w := range r.Weeks {
		for d := range r.Weeks[w].Days {
			for _, ex := range r.Weeks[w].Days[d].Exercises {
				if !seen[ex.ExerciseID] {
					seen[ex.ExerciseID] = true
					ids = append(ids, ex.ExerciseID)
				}
			}
		}
	}
	return ids
}

// ReferencesExercise reports whether any occurrence uses the given exercise.
func (r *Routine) ReferencesExercise(exerciseID string) bool {
	for w := range r.Weeks {
		for d := range r.Weeks[w].Days {
			for i := range r.Weeks[w].Days[d].Exercises {
				if r.Weeks[w].Days[d].Exercises[i].ExerciseID == exerciseID {
					return true
				}
			}
		}
	}
	return false
}

// RemoveExercise strips every occurrence of the given exercise from the
// routine, keeping the week/day structure in place.
func (r *Routine) RemoveExercise(exerciseID string) {
	for w := range r.Weeks {
		for d := range r.Weeks[w].Days {
			day := &r.Weeks[w].Days[d]
			kept := day.Exercises[:0]
			for _, ex := range day.Exercises {
				if ex.ExerciseID != exerciseID {
					kept = append(kept, ex)
				}
			}
			day.Exercises = kept
		}
	}
}

// Workout is a full workout document, owned by exactly one user. Ownership
// is checked, never transferred.
type Workout struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"` // Unique per owning user
	CreatorID   string    `bson:"creatorId" json:"creatorId"`
	CreationUTC time.Time `bson:"creationUtc" json:"creationUtc"`
	Routine     Routine   `bson:"routine" json:"routine"`
}
