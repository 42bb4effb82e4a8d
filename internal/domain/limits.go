package domain

// Tiered and structural limits. Violations surface as MaxLimit or
// InvalidRoutine errors in the service layer.
const (
	MaxFreeWorkouts    = 10
	MaxPremiumWorkouts = 50

	MaxFreeExercises    = 100
	MaxPremiumExercises = 250

	MaxFriends        = 200
	MaxFriendRequests = 100

	MaxReceivedWorkouts    = 100
	MaxFreeWorkoutsSent    = 200
	MaxPremiumWorkoutsSent = 1000

	MaxRoutineWeeks = 10
	MaxDaysPerWeek  = 7
	MaxDayTagLength = 50
)

// MaxWorkouts returns the workout-count limit for the user's tier.
func (u *User) MaxWorkouts() int {
	if u.Premium {
		return MaxPremiumWorkouts
	}
	return MaxFreeWorkouts
}

// MaxExercises returns the catalog-size limit for the user's tier.
func (u *User) MaxExercises() int {
	if u.Premium {
		return MaxPremiumExercises
	}
	return MaxFreeExercises
}

// MaxWorkoutsSent returns the lifetime share limit for the user's tier.
func (u *User) MaxWorkoutsSent() int {
	if u.Premium {
		return MaxPremiumWorkoutsSent
	}
	return MaxFreeWorkoutsSent
}
