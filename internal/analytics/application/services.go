package application

import (
	"time"

	"github.com/genba-survey/validation-api/internal/analytics/domain"
)

// SummaryService は調査員品質の集計ユースケースを提供するリーダーモデル。
// 入力はアクセス制御適用済みのフラットな回答一覧で、ストアへの依存を持たない。
type SummaryService interface {
	Summaries(records []domain.Record, window domain.Window, now time.Time) []domain.Summary
	Overview(summaries []domain.Summary) domain.Overview
}
