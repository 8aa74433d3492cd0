package application

import (
	"testing"

	"github.com/genba-survey/validation-api/internal/analytics/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdStrategyBest(t *testing.T) {
	strategy := ThresholdStrategy{MinSubmissions: 10}

	t.Run("閾値以上で最小エラー率の提出者", func(t *testing.T) {
		best, ok := strategy.Best([]domain.Summary{
			{Submitter: "A", TotalSubmissions: 20, ErrorRate: 10},
			{Submitter: "B", TotalSubmissions: 15, ErrorRate: 5},
			{Submitter: "C", TotalSubmissions: 100, ErrorRate: 8},
		})
		require.True(t, ok)
		assert.Equal(t, "B", best.Submitter)
	})

	t.Run("同率なら提出数が多い方", func(t *testing.T) {
		best, ok := strategy.Best([]domain.Summary{
			{Submitter: "A", TotalSubmissions: 20, ErrorRate: 5},
			{Submitter: "B", TotalSubmissions: 50, ErrorRate: 5},
		})
		require.True(t, ok)
		assert.Equal(t, "B", best.Submitter)
	})

	t.Run("閾値未満のみなら半分の閾値で再試行", func(t *testing.T) {
		best, ok := strategy.Best([]domain.Summary{
			{Submitter: "A", TotalSubmissions: 7, ErrorRate: 5},
			{Submitter: "B", TotalSubmissions: 3, ErrorRate: 0},
		})
		require.True(t, ok)
		// 閾値 10 では候補なし、5 で A のみ候補。
		assert.Equal(t, "A", best.Submitter)
	})

	t.Run("半分の閾値でも候補なしなら提出数最多", func(t *testing.T) {
		best, ok := strategy.Best([]domain.Summary{
			{Submitter: "A", TotalSubmissions: 2, ErrorRate: 50},
			{Submitter: "B", TotalSubmissions: 4, ErrorRate: 100},
		})
		require.True(t, ok)
		assert.Equal(t, "B", best.Submitter)
	})

	t.Run("空入力", func(t *testing.T) {
		_, ok := strategy.Best(nil)
		assert.False(t, ok)
	})
}

func TestLogWeightedStrategyBest(t *testing.T) {
	strategy := LogWeightedStrategy{}

	t.Run("品質と量の対数重みで選ぶ", func(t *testing.T) {
		// A: 100 * log10(10) = 100、B: 95 * log10(101) ≈ 190.6
		best, ok := strategy.Best([]domain.Summary{
			{Submitter: "A", TotalSubmissions: 9, ErrorRate: 0},
			{Submitter: "B", TotalSubmissions: 100, ErrorRate: 5},
		})
		require.True(t, ok)
		assert.Equal(t, "B", best.Submitter)
	})

	t.Run("空入力", func(t *testing.T) {
		_, ok := strategy.Best(nil)
		assert.False(t, ok)
	})
}

func TestStrategyFor(t *testing.T) {
	assert.Equal(t, "log", StrategyFor("log").Name())
	assert.Equal(t, "threshold", StrategyFor("").Name())
	assert.Equal(t, "threshold", StrategyFor("unknown").Name())
}
