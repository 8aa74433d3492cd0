package application

import (
	"sort"
	"time"

	"github.com/genba-survey/validation-api/internal/analytics/domain"
	"github.com/montanaflynn/stats"
)

// summaryService implements SummaryService.
type summaryService struct{}

// NewSummaryService creates a new SummaryService.
func NewSummaryService() SummaryService {
	return &summaryService{}
}

// Summaries は提出者ごとにレコードをグループ化し、全期間と時間窓適用後の
// 両方の集計値を計算する。提出者が空または "Unknown" のレコードは捨てる。
func (s *summaryService) Summaries(records []domain.Record, window domain.Window, now time.Time) []domain.Summary {
	type accumulator struct {
		total          int
		alerts         int
		filteredTotal  int
		filteredAlerts int
		daily          map[string]int
	}

	groups := make(map[string]*accumulator)
	order := make([]string, 0)
	for _, record := range records {
		if !record.Attributable() {
			continue
		}
		acc, ok := groups[record.Submitter]
		if !ok {
			acc = &accumulator{daily: make(map[string]int)}
			groups[record.Submitter] = acc
			order = append(order, record.Submitter)
		}

		acc.total++
		acc.daily[domain.NormalizeDate(record.Date)]++
		alert := record.HasAlert()
		if alert {
			acc.alerts++
		}
		if window.Contains(record.Date, now) {
			acc.filteredTotal++
			if alert {
				acc.filteredAlerts++
			}
		}
	}

	sort.Strings(order)
	summaries := make([]domain.Summary, 0, len(order))
	for _, submitter := range order {
		acc := groups[submitter]
		summaries = append(summaries, domain.Summary{
			Submitter:             submitter,
			TotalSubmissions:      acc.total,
			SubmissionsWithAlerts: acc.alerts,
			ErrorRate:             domain.ErrorRate(acc.alerts, acc.total),
			DailyTrend:            sortedDailyTrend(acc.daily),
			FilteredTotal:         acc.filteredTotal,
			FilteredAlerts:        acc.filteredAlerts,
			FilteredErrorRate:     domain.ErrorRate(acc.filteredAlerts, acc.filteredTotal),
		})
	}
	return summaries
}

// Overview は調査員全体のエラー率分布を要約する。入力が空なら全てゼロ。
func (s *summaryService) Overview(summaries []domain.Summary) domain.Overview {
	overview := domain.Overview{Enumerators: len(summaries)}
	if len(summaries) == 0 {
		return overview
	}

	rates := make([]float64, 0, len(summaries))
	for _, summary := range summaries {
		rates = append(rates, summary.ErrorRate)
	}
	if mean, err := stats.Mean(rates); err == nil {
		overview.MeanErrorRate = mean
	}
	if median, err := stats.Median(rates); err == nil {
		overview.MedianErrorRate = median
	}
	return overview
}

// sortedDailyTrend は日別件数を日付昇順の一覧へ変換する。
func sortedDailyTrend(daily map[string]int) []domain.DailyCount {
	dates := make([]string, 0, len(daily))
	for date := range daily {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	trend := make([]domain.DailyCount, 0, len(dates))
	for _, date := range dates {
		trend = append(trend, domain.DailyCount{Date: date, Count: daily[date]})
	}
	return trend
}
