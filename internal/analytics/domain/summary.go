package domain

// DailyCount は特定日の提出件数。
type DailyCount struct {
	Date  string
	Count int
}

// Summary は提出者（調査員）ごとの品質集計。
// Total 系は全期間、Filtered 系は時間窓適用後の値を保持する。
type Summary struct {
	Submitter             string
	TotalSubmissions      int
	SubmissionsWithAlerts int
	ErrorRate             float64
	DailyTrend            []DailyCount
	FilteredTotal         int
	FilteredAlerts        int
	FilteredErrorRate     float64
}

// QualityScore は警告なし提出の割合 (100 - エラー率)。
func (s Summary) QualityScore() float64 {
	return 100 - s.ErrorRate
}

// ErrorRate は alerts/total*100 を返す。total が 0 のときは 0（ゼロ除算を避ける）。
func ErrorRate(alerts, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(alerts) / float64(total) * 100
}

// Overview はダッシュボード全体のサマリ。
type Overview struct {
	Enumerators     int
	MeanErrorRate   float64
	MedianErrorRate float64
}
