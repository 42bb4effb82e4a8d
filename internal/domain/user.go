package domain

import (
	"time"
)

// UserSettings holds per-user preferences that influence the engines.
type UserSettings struct {
	Private                      bool `bson:"private" json:"private"`                                           // Hidden from non-friends
	UpdateDefaultWeightOnSave    bool `bson:"updateDefaultWeightOnSave" json:"updateDefaultWeightOnSave"`       // Ratchet defaults when a workout is created or accepted
	UpdateDefaultWeightOnRestart bool `bson:"updateDefaultWeightOnRestart" json:"updateDefaultWeightOnRestart"` // Ratchet defaults on restart, completed occurrences only
	MetricUnits                  bool `bson:"metricUnits" json:"metricUnits"`
}

// FriendInfo is the denormalized friend entry embedded in a User.
type FriendInfo struct {
	UserID    string `bson:"userId" json:"userId"`
	Username  string `bson:"username" json:"username"`
	Confirmed bool   `bson:"confirmed" json:"confirmed"` // False while the request we sent is still pending on their side
}

// FriendRequest is an incoming request embedded in the recipient's document.
type FriendRequest struct {
	UserID     string    `bson:"userId" json:"userId"`
	Username   string    `bson:"username" json:"username"`
	Seen       bool      `bson:"seen" json:"seen"`
	RequestUTC time.Time `bson:"requestUtc" json:"requestUtc"`
}

// WorkoutInfo is the denormalized summary of one owned Workout, embedded in
// the owning User. WorkoutName mirrors Workout.Name and is kept in sync on
// rename. CurrentWeek/CurrentDay are a progress cursor, bounds-checked
// against the routine.
type WorkoutInfo struct {
	WorkoutID                 string    `bson:"workoutId" json:"workoutId"`
	WorkoutName               string    `bson:"workoutName" json:"workoutName"`
	CurrentWeek               int       `bson:"currentWeek" json:"currentWeek"`
	CurrentDay                int       `bson:"currentDay" json:"currentDay"`
	TimesRestarted            int       `bson:"timesRestarted" json:"timesRestarted"`
	TotalExercisesSum         int       `bson:"totalExercisesSum" json:"totalExercisesSum"`
	AverageExercisesCompleted float64   `bson:"averageExercisesCompleted" json:"averageExercisesCompleted"` // Running mean, 0.0-1.0
	LastSetAsCurrentUTC       time.Time `bson:"lastSetAsCurrentUtc" json:"lastSetAsCurrentUtc"`
}

// SharedWorkoutInfo is the lightweight preview of a pending share, embedded
// in the recipient's ReceivedWorkouts. Created alongside the SharedWorkout
// document and removed when the share is accepted or declined.
type SharedWorkoutInfo struct {
	SharedWorkoutID   string    `bson:"sharedWorkoutId" json:"sharedWorkoutId"`
	WorkoutName       string    `bson:"workoutName" json:"workoutName"`
	SharedUTC         time.Time `bson:"sharedUtc" json:"sharedUtc"`
	Seen              bool      `bson:"seen" json:"seen"`
	SenderID          string    `bson:"senderId" json:"senderId"`
	SenderUsername    string    `bson:"senderUsername" json:"senderUsername"`
	TotalDays         int       `bson:"totalDays" json:"totalDays"`
	MostFrequentFocus string    `bson:"mostFrequentFocus" json:"mostFrequentFocus"`
}

// User is the root document of the users collection. The exercise catalog,
// workout summaries, friends and received-share previews are all embedded;
// full Workout and SharedWorkout documents live in their own collections.
type User struct {
	ID               string              `bson:"_id" json:"id"`
	Username         string              `bson:"username" json:"username"` // Unique
	Email            string              `bson:"email" json:"email"`       // Unique
	PasswordHash     string              `bson:"passwordHash" json:"-"`
	Premium          bool                `bson:"premium" json:"premium"`
	Settings         UserSettings        `bson:"settings" json:"settings"`
	Exercises        []OwnedExercise     `bson:"exercises" json:"exercises"`
	Workouts         []WorkoutInfo       `bson:"workouts" json:"workouts"`
	CurrentWorkoutID string              `bson:"currentWorkoutId,omitempty" json:"currentWorkoutId,omitempty"`
	Friends          []FriendInfo        `bson:"friends" json:"friends"`
	FriendRequests   []FriendRequest     `bson:"friendRequests" json:"friendRequests"`
	ReceivedWorkouts []SharedWorkoutInfo `bson:"receivedWorkouts" json:"receivedWorkouts"`
	WorkoutsSent     int                 `bson:"workoutsSent" json:"workoutsSent"`
	PushEndpointARN  string              `bson:"pushEndpointArn,omitempty" json:"-"` // SNS endpoint of the user's device, if registered
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// ExerciseByID returns the catalog entry with the given ID, or nil.
func (u *User) ExerciseByID(id string) *OwnedExercise {
	for i := range u.Exercises {
		if u.Exercises[i].ID == id {
			return &u.Exercises[i]
		}
	}
	return nil
}

// ExerciseByName returns the catalog entry with the given name (exact,
// case-sensitive match), or nil.
func (u *User) ExerciseByName(name string) *OwnedExercise {
	for i := range u.Exercises {
		if u.Exercises[i].Name == name {
			return &u.Exercises[i]
		}
	}
	return nil
}

// WorkoutInfoByID returns the embedded summary for the given workout, or nil.
func (u *User) WorkoutInfoByID(workoutID string) *WorkoutInfo {
	for i := range u.Workouts {
		if u.Workouts[i].WorkoutID == workoutID {
			return &u.Workouts[i]
		}
	}
	return nil
}

// WorkoutInfoByName returns the embedded summary with the given name, or nil.
// Workout names are unique per user.
func (u *User) WorkoutInfoByName(name string) *WorkoutInfo {
	for i := range u.Workouts {
		if u.Workouts[i].WorkoutName == name {
			return &u.Workouts[i]
		}
	}
	return nil
}

// RemoveWorkoutInfo drops the embedded summary for the given workout.
func (u *User) RemoveWorkoutInfo(workoutID string) bool {
	for i := range u.Workouts {
		if u.Workouts[i].WorkoutID == workoutID {
			u.Workouts = append(u.Workouts[:i], u.Workouts[i+1:]...)
			return true
		}
	}
	return false
}

// ReceivedWorkoutByID returns the preview entry for the given shared
// workout, or nil.
func (u *User) ReceivedWorkoutByID(sharedWorkoutID string) *SharedWorkoutInfo {
	for i := range u.ReceivedWorkouts {
		if u.ReceivedWorkouts[i].SharedWorkoutID == sharedWorkoutID {
			return &u.ReceivedWorkouts[i]
		}
	}
	return nil
}

// RemoveReceivedWorkout drops the preview entry for the given shared
// workout. Returns false if no such entry existed.
func (u *User) RemoveReceivedWorkout(sharedWorkoutID string) bool {
	for i := range u.ReceivedWorkouts {
		if u.ReceivedWorkouts[i].SharedWorkoutID == sharedWorkoutID {
			u.ReceivedWorkouts = append(u.ReceivedWorkouts[:i], u.ReceivedWorkouts[i+1:]...)
			return true
		}
	}
	return false
}

// IsFriendsWith reports whether the given user is a confirmed friend.
func (u *User) IsFriendsWith(userID string) bool {
	for i := range u.Friends {
		if u.Friends[i].UserID == userID && u.Friends[i].Confirmed {
			return true
		}
	}
	return false
}

// FriendByID returns the friend entry for the given user, confirmed or not.
func (u *User) FriendByID(userID string) *FriendInfo {
	for i := range u.Friends {
		if u.Friends[i].UserID == userID {
			return &u.Friends[i]
		}
	}
	return nil
}

// FriendRequestFrom returns the pending request from the given user, or nil.
func (u *User) FriendRequestFrom(userID string) *FriendRequest {
	for i := range u.FriendRequests {
		if u.FriendRequests[i].UserID == userID {
			return &u.FriendRequests[i]
		}
	}
	return nil
}

// RemoveFriend drops the friend entry for the given user.
func (u *User) RemoveFriend(userID string) bool {
	for i := range u.Friends {
		if u.Friends[i].UserID == userID {
			u.Friends = append(u.Friends[:i], u.Friends[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveFriendRequest drops the pending request from the given user.
func (u *User) RemoveFriendRequest(userID string) bool {
	for i := range u.FriendRequests {
		if u.FriendRequests[i].UserID == userID {
			u.FriendRequests = append(u.FriendRequests[:i], u.FriendRequests[i+1:]...)
			return true
		}
	}
	return false
}
