package stats

import (
	"math"
	"sort"
	"time"

	"github.com/tkondo/kioku-api/internal/domain"
)

// Summary is the aggregate report over a study session history. Durations
// are in minutes, converted from the stored seconds; percentages and
// durations are rounded half-up to one decimal place.
type Summary struct {
	TotalSessions           int     `json:"total_sessions"`
	TotalCards              int     `json:"total_cards"`
	TotalCorrect            int     `json:"total_correct"`
	TotalMaybe              int     `json:"total_maybe"`
	TotalIncorrect          int     `json:"total_incorrect"`
	TotalStudyTimeMinutes   float64 `json:"total_study_time_minutes"`
	AverageStudyTimeMinutes float64 `json:"average_study_time_minutes"`
	AverageAccuracy         float64 `json:"average_accuracy"`
	TotalStudyDays          int     `json:"total_study_days"`
	CurrentStreak           int     `json:"current_streak"`
	LongestStreak           int     `json:"longest_streak"`
}

// dateKey identifies a calendar date (year/month/day, local time),
// independent of the time of day a session was recorded.
type dateKey struct {
	year  int
	month time.Month
	day   int
}

func toDateKey(t time.Time) dateKey {
	return dateKey{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Summarize computes the aggregate report for the given session history.
// The result is deterministic regardless of input order. The now argument
// anchors the current-streak walk; callers normally pass time.Now().
// An empty history yields an all-zero summary.
func Summarize(sessions []domain.StudySession, now time.Time) Summary {
	var summary Summary
	if len(sessions) == 0 {
		return summary
	}

	summary.TotalSessions = len(sessions)

	var totalSeconds int
	studyDates := make(map[dateKey]struct{})
	for _, s := range sessions {
		summary.TotalCards += s.CardCount
		summary.TotalCorrect += s.CorrectCount
		summary.TotalMaybe += s.MaybeCount
		summary.TotalIncorrect += s.IncorrectCount
		totalSeconds += s.DurationSeconds
		studyDates[toDateKey(s.Date)] = struct{}{}
	}

	summary.TotalStudyTimeMinutes = roundOneDecimal(float64(totalSeconds) / 60.0)
	summary.AverageStudyTimeMinutes = roundOneDecimal(
		float64(totalSeconds) / 60.0 / float64(len(sessions)),
	)

	if summary.TotalCards > 0 {
		weighted := float64(summary.TotalCorrect) + 0.5*float64(summary.TotalMaybe)
		summary.AverageAccuracy = roundOneDecimal(100.0 * weighted / float64(summary.TotalCards))
	}

	summary.TotalStudyDays = len(studyDates)
	summary.CurrentStreak = currentStreak(studyDates, now)
	summary.LongestStreak = longestStreak(studyDates)

	return summary
}

// currentStreak walks backward one calendar day at a time starting from
// today and counts consecutive days with at least one session. If today has
// no session yet, a streak ending yesterday still counts: the walk starts
// from yesterday instead, so studying later today extends it rather than
// resetting it.
func currentStreak(studyDates map[dateKey]struct{}, now time.Time) int {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if _, ok := studyDates[toDateKey(day)]; !ok {
		day = day.AddDate(0, 0, -1)
		if _, ok := studyDates[toDateKey(day)]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := studyDates[toDateKey(day)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}

// longestStreak finds the longest run of consecutive study dates anywhere in
// the history. Any non-empty history has a longest streak of at least 1.
func longestStreak(studyDates map[dateKey]struct{}) int {
	if len(studyDates) == 0 {
		return 0
	}

	dates := make([]time.Time, 0, len(studyDates))
	for key := range studyDates {
		dates = append(dates, time.Date(key.year, key.month, key.day, 0, 0, 0, 0, time.UTC))
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	longest := 1
	run := 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].Sub(dates[i]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return longest
}

// roundOneDecimal rounds half-up to one decimal place.
func roundOneDecimal(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
