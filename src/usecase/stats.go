package usecase

import (
	"context"
	"sort"
	"time"
	"unicode/utf8"

	"diary-app/src/domain"
)

// Period labels for the peak-writing-hour bands.
const (
	PeriodNight     = "night"     // 0-5時
	PeriodMorning   = "morning"   // 6-11時
	PeriodAfternoon = "afternoon" // 12-17時
	PeriodEvening   = "evening"   // 18-23時
	PeriodNoData    = "no data"
)

// StatsSummary holds the headline counters shown on the home and profile
// pages.
type StatsSummary struct {
	TotalCount    int `json:"totalCount"`
	MonthlyCount  int `json:"monthlyCount"`
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

// HourPeak is one hour-of-day bucket with its entry count.
type HourPeak struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// PeakHours is the peak-writing-hour analysis result.
type PeakHours struct {
	Period   string     `json:"period"`
	Hour     *int       `json:"hour"`
	Count    int        `json:"count"`
	AllPeaks []HourPeak `json:"allPeaks"`
}

// StatsUsecase derives aggregate metrics from the diary collection.
// 自身の状態は持たず、コレクションの純関数として動く。
type StatsUsecase interface {
	Summary(ctx context.Context) (*StatsSummary, error)
	WeeklyWordCount(ctx context.Context) (int, error)
	PeakWritingHours(ctx context.Context) (*PeakHours, error)
	CountsByMonth(ctx context.Context, year int, month time.Month) (map[int]domain.DayCount, error)
}

type statsUsecase struct {
	diaryRepo domain.DiaryRepository
	now       func() time.Time
}

// NewStatsUsecase creates a new stats usecase
func NewStatsUsecase(diaryRepo domain.DiaryRepository) StatsUsecase {
	return NewStatsUsecaseWithClock(diaryRepo, time.Now)
}

// NewStatsUsecaseWithClock creates a stats usecase with an injected clock.
func NewStatsUsecaseWithClock(diaryRepo domain.DiaryRepository, now func() time.Time) StatsUsecase {
	return &statsUsecase{
		diaryRepo: diaryRepo,
		now:       now,
	}
}

// dayKey buckets a timestamp into its local calendar day.
func dayKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// Summary computes total and monthly counts plus the two streaks.
func (u *statsUsecase) Summary(ctx context.Context) (*StatsSummary, error) {
	diaries, err := u.diaryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := u.now()
	currentYear, currentMonth, _ := now.Local().Date()

	monthlyCount := 0
	daySet := map[string]bool{}
	for _, diary := range diaries {
		created := diary.CreatedAt.Local()
		if created.Year() == currentYear && created.Month() == currentMonth {
			monthlyCount++
		}
		daySet[dayKey(created)] = true
	}

	currentStreak := u.currentStreak(daySet, now)
	longestStreak := longestStreak(daySet)
	if currentStreak > longestStreak {
		longestStreak = currentStreak
	}

	return &StatsSummary{
		TotalCount:    len(diaries),
		MonthlyCount:  monthlyCount,
		CurrentStreak: currentStreak,
		LongestStreak: longestStreak,
	}, nil
}

// currentStreak walks backward from today while each day has an entry.
// 今日も昨日も書いていなければ連続記録は0。
func (u *statsUsecase) currentStreak(daySet map[string]bool, now time.Time) int {
	yesterday := now.AddDate(0, 0, -1)
	if !daySet[dayKey(now)] && !daySet[dayKey(yesterday)] {
		return 0
	}

	streak := 0
	day := now
	for daySet[dayKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// longestStreak finds the longest run of consecutive days in the
// distinct-day set.
func longestStreak(daySet map[string]bool) int {
	if len(daySet) == 0 {
		return 0
	}

	days := make([]string, 0, len(daySet))
	for day := range daySet {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	longest := 0
	run := 0
	for i, day := range days {
		if i == 0 {
			run = 1
			continue
		}
		current, _ := time.ParseInLocation("2006-01-02", day, time.Local)
		previous, _ := time.ParseInLocation("2006-01-02", days[i-1], time.Local)
		if current.AddDate(0, 0, 1).Equal(previous) {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}
	return longest
}

// WeeklyWordCount sums the character count of entries written since the
// most recent Monday 00:00:00 local time.
// 「字数」は歴史的に文字数（rune数）であり、単語数ではない。
func (u *statsUsecase) WeeklyWordCount(ctx context.Context) (int, error) {
	diaries, err := u.diaryRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	now := u.now().Local()
	offset := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		offset = 6
	}
	monday := now.AddDate(0, 0, -offset)
	startOfWeek := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.Local)

	total := 0
	for _, diary := range diaries {
		if !diary.CreatedAt.Before(startOfWeek) {
			total += utf8.RuneCountInString(diary.Content)
		}
	}
	return total, nil
}

// PeakWritingHours buckets entries by hour of day and reports the peak
// hour, its band and the top three peaks.
func (u *statsUsecase) PeakWritingHours(ctx context.Context) (*PeakHours, error) {
	diaries, err := u.diaryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var hourCounts [24]int
	for _, diary := range diaries {
		hourCounts[diary.CreatedAt.Local().Hour()]++
	}

	peaks := []HourPeak{}
	for hour := 0; hour < 24; hour++ {
		if hourCounts[hour] > 0 {
			peaks = append(peaks, HourPeak{Hour: hour, Count: hourCounts[hour]})
		}
	}

	if len(peaks) == 0 {
		return &PeakHours{Period: PeriodNoData, AllPeaks: []HourPeak{}}, nil
	}

	// 件数の降順、同数なら早い時間帯が先（安定ソート）
	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Count > peaks[j].Count
	})
	if len(peaks) > 3 {
		peaks = peaks[:3]
	}

	top := peaks[0]
	hour := top.Hour
	return &PeakHours{
		Period:   periodOf(hour),
		Hour:     &hour,
		Count:    top.Count,
		AllPeaks: peaks,
	}, nil
}

// periodOf maps an hour of day into its band.
func periodOf(hour int) string {
	switch {
	case hour <= 5:
		return PeriodNight
	case hour <= 11:
		return PeriodMorning
	case hour <= 17:
		return PeriodAfternoon
	default:
		return PeriodEvening
	}
}

// CountsByMonth returns the per-day aggregate for calendar rendering.
// 各日の mood はコレクション順で最初に現れたエントリのものを採用する
// （集計ではなく first-seen。互換性のため既存挙動を維持）。
func (u *statsUsecase) CountsByMonth(ctx context.Context, year int, month time.Month) (map[int]domain.DayCount, error) {
	diaries, err := u.diaryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[int]domain.DayCount{}
	for _, diary := range diaries {
		created := diary.CreatedAt.Local()
		if created.Year() != year || created.Month() != month {
			continue
		}
		day := created.Day()
		entry, exists := counts[day]
		if !exists {
			entry = domain.DayCount{Mood: diary.Mood}
		}
		entry.Count++
		counts[day] = entry
	}
	return counts, nil
}
