package service

import (
	"liftlog/workout-app/internal/apperr"
	"liftlog/workout-app/internal/domain"
)

// validateRoutine checks the structural limits of a routine and that every
// referenced exercise exists in the owner's catalog. Runs before any
// mutation so a failure never leaves partial state.
func validateRoutine(user *domain.User, routine *domain.Routine) error {
	if len(routine.Weeks) == 0 {
		return apperr.InvalidRoutine("routine must have at least one week")
	}
	if len(routine.Weeks) > domain.MaxRoutineWeeks {
		return apperr.InvalidRoutine("routine exceeds %d weeks", domain.MaxRoutineWeeks)
	}
	for w := range routine.Weeks {
		week := &routine.Weeks[w]
		if len(week.Days) == 0 {
			return apperr.InvalidRoutine("week %d has no days", w+1)
		}
		if len(week.Days) > domain.MaxDaysPerWeek {
			return apperr.InvalidRoutine("week %d exceeds %d days", w+1, domain.MaxDaysPerWeek)
		}
		for d := range week.Days {
			day := &week.Days[d]
			if len(day.Tag) > domain.MaxDayTagLength {
				return apperr.InvalidRoutine("day tag exceeds %d characters", domain.MaxDayTagLength)
			}
			for _, occ := range day.Exercises {
				if user.ExerciseByID(occ.ExerciseID) == nil {
					return apperr.InvalidRoutine("routine references unknown exercise %s", occ.ExerciseID)
				}
			}
		}
	}
	return nil
}

// clampProgressCursor pulls the progress cursor back inside the routine
// after an edit shrinks it.
func clampProgressCursor(info *domain.WorkoutInfo, routine *domain.Routine) {
	if info.CurrentWeek >= len(routine.Weeks) {
		info.CurrentWeek = 0
		info.CurrentDay = 0
		return
	}
	if info.CurrentDay >= len(routine.Weeks[info.CurrentWeek].Days) {
		info.CurrentDay = 0
	}
}
