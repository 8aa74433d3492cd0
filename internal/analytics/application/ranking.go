package application

import (
	"math"

	"github.com/genba-survey/validation-api/internal/analytics/domain"
)

// DefaultMinSubmissions は最優秀調査員の既定の提出数閾値。
const DefaultMinSubmissions = 10

// RankStrategy は最優秀調査員を選ぶ戦略。
// 参照元には閾値方式と対数重み方式の2系統が存在しており、既定は閾値方式。
// もう一方も同一インターフェースの代替戦略として保持する。
type RankStrategy interface {
	Name() string
	Best(summaries []domain.Summary) (domain.Summary, bool)
}

// ThresholdStrategy は既定の選定戦略。
//
// 提出数が MinSubmissions 以上の候補のうちエラー率が最小の提出者を選び、
// 同率の場合は提出数が多い方を優先する。候補がいなければ閾値を半分にして
// 一度だけ再試行し、それでも候補がいなければ品質を考慮せず提出数最多の
// 提出者を返す。
type ThresholdStrategy struct {
	MinSubmissions int
}

func (s ThresholdStrategy) Name() string {
	return "threshold"
}

func (s ThresholdStrategy) Best(summaries []domain.Summary) (domain.Summary, bool) {
	if len(summaries) == 0 {
		return domain.Summary{}, false
	}

	threshold := s.MinSubmissions
	if threshold <= 0 {
		threshold = DefaultMinSubmissions
	}

	if best, ok := bestAboveThreshold(summaries, threshold); ok {
		return best, true
	}
	if best, ok := bestAboveThreshold(summaries, threshold/2); ok {
		return best, true
	}
	return mostSubmissions(summaries), true
}

func bestAboveThreshold(summaries []domain.Summary, threshold int) (domain.Summary, bool) {
	var best domain.Summary
	found := false
	for _, candidate := range summaries {
		if candidate.TotalSubmissions < threshold {
			continue
		}
		if !found {
			best = candidate
			found = true
			continue
		}
		if candidate.ErrorRate < best.ErrorRate {
			best = candidate
			continue
		}
		if candidate.ErrorRate == best.ErrorRate && candidate.TotalSubmissions > best.TotalSubmissions {
			best = candidate
		}
	}
	return best, found
}

func mostSubmissions(summaries []domain.Summary) domain.Summary {
	best := summaries[0]
	for _, candidate := range summaries[1:] {
		if candidate.TotalSubmissions > best.TotalSubmissions {
			best = candidate
		}
	}
	return best
}

// LogWeightedStrategy は (100 - エラー率) × log10(提出数 + 1) を最大化する代替戦略。
// 提出数の少ない高品質提出者が上位を独占しないよう、量を対数で重み付けする。
type LogWeightedStrategy struct{}

func (s LogWeightedStrategy) Name() string {
	return "log"
}

func (s LogWeightedStrategy) Best(summaries []domain.Summary) (domain.Summary, bool) {
	if len(summaries) == 0 {
		return domain.Summary{}, false
	}

	best := summaries[0]
	bestScore := logWeightedScore(best)
	for _, candidate := range summaries[1:] {
		if score := logWeightedScore(candidate); score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best, true
}

func logWeightedScore(summary domain.Summary) float64 {
	return summary.QualityScore() * math.Log10(float64(summary.TotalSubmissions)+1)
}

// StrategyFor はクエリ指定から戦略を解決する。未知の値は既定戦略に丸める。
func StrategyFor(name string) RankStrategy {
	if name == "log" {
		return LogWeightedStrategy{}
	}
	return ThresholdStrategy{MinSubmissions: DefaultMinSubmissions}
}
