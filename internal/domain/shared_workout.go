package domain

// SharedExercise is one occurrence inside a shared routine. Exercises are
// referenced by name so the snapshot stays portable across user catalogs.
type SharedExercise struct {
	ExerciseName string  `bson:"exerciseName" json:"exerciseName"`
	Weight       float64 `bson:"weight" json:"weight"`
	Sets         int     `bson:"sets" json:"sets"`
	Reps         int     `bson:"reps" json:"reps"`
	Details      string  `bson:"details,omitempty" json:"details,omitempty"`
}

// SharedDay mirrors RoutineDay with name-based exercises.
type SharedDay struct {
	Tag       string           `bson:"tag,omitempty" json:"tag,omitempty"`
	Exercises []SharedExercise `bson:"exercises" json:"exercises"`
}

// SharedWeek mirrors RoutineWeek.
type SharedWeek struct {
	Days []SharedDay `bson:"days" json:"days"`
}

// SharedRoutine is the portable, catalog-independent snapshot of a Routine.
type SharedRoutine struct {
	Weeks []SharedWeek `bson:"weeks" json:"weeks"`
}

// TotalDays returns the number of days across all weeks.
func (r *SharedRoutine) TotalDays() int {
	total := 0
	for i := range r.Weeks {
		total += len(r.Weeks[i].Days)
	}
	return total
}

// SharedWorkoutDistinctExercise is the frozen metadata of one exercise
// referenced by the shared routine, captured once at share time and
// independent of later edits to the sender's catalog.
type SharedWorkoutDistinctExercise struct {
	ExerciseName string   `bson:"exerciseName" json:"exerciseName"`
	VideoURL     string   `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	Focuses      []string `bson:"focuses" json:"focuses"`
}

// SharedWorkout is a single-use, two-phase handoff document: created
// atomically with the sender's sent-count increment and the recipient's
// preview append, deleted on accept or decline, never updated in place.
type SharedWorkout struct {
	ID                string                          `bson:"_id" json:"id"`
	WorkoutName       string                          `bson:"workoutName" json:"workoutName"`
	SenderID          string                          `bson:"senderId" json:"senderId"`
	SenderUsername    string                          `bson:"senderUsername" json:"senderUsername"`
	RecipientID       string                          `bson:"recipientId" json:"recipientId"`
	Routine           SharedRoutine                   `bson:"routine" json:"routine"`
	DistinctExercises []SharedWorkoutDistinctExercise `bson:"distinctExercises" json:"distinctExercises"`
}
