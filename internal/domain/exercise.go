package domain

// WorkoutRef is a back-reference from a catalog exercise to a workout whose
// routine uses it. The set of refs on an exercise must always equal the set
// of owned workouts whose routine mentions the exercise's ID; all mutation
// goes through the stats package.
type WorkoutRef struct {
	WorkoutID   string `bson:"workoutId" json:"workoutId"`
	WorkoutName string `bson:"workoutName" json:"workoutName"`
}

// OwnedExercise is one entry of a user's private exercise catalog, embedded
// in the User document. Name is unique within the user, case-sensitive.
type OwnedExercise struct {
	ID             string       `bson:"id" json:"id"`
	Name           string       `bson:"name" json:"name"`
	DefaultWeight  float64      `bson:"defaultWeight" json:"defaultWeight"`
	DefaultSets    int          `bson:"defaultSets" json:"defaultSets"`
	DefaultReps    int          `bson:"defaultReps" json:"defaultReps"`
	DefaultDetails string       `bson:"defaultDetails,omitempty" json:"defaultDetails,omitempty"`
	Focuses        []string     `bson:"focuses" json:"focuses"`
	VideoURL       string       `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	Workouts       []WorkoutRef `bson:"workouts" json:"workouts"`
}

// ReferencesWorkout reports whether the exercise already carries a
// back-reference to the given workout.
func (e *OwnedExercise) ReferencesWorkout(workoutID string) bool {
	for i := range e.Workouts {
		if e.Workouts[i].WorkoutID == workoutID {
			return true
		}
	}
	return false
}

// RemoveWorkoutRef drops the back-reference to the given workout, if present.
func (e *OwnedExercise) RemoveWorkoutRef(workoutID string) {
	for i := range e.Workouts {
		if e.Workouts[i].WorkoutID == workoutID {
			e.Workouts = append(e.Workouts[:i], e.Workouts[i+1:]...)
			return
		}
	}
}
