package domain

import (
	"fmt"
	"strings"
	"time"
)

// WindowName は相対期間の名前。
type WindowName string

const (
	WindowAll    WindowName = "all"
	Window7Days  WindowName = "7days"
	Window30Days WindowName = "30days"
	Window90Days WindowName = "90days"
)

const dateLayout = "2006-01-02"

// Window は品質集計の時間窓。相対期間（名前付き）または明示的な日付範囲のどちらか。
type Window struct {
	Name WindowName
	From string
	To   string
}

// NewWindow は窓指定を検証して構築する。from/to が与えられた場合は明示範囲が
// 優先され、両端とも正規化済み日付 (YYYY-MM-DD) で、範囲は両端を含む。
func NewWindow(name, from, to string) (Window, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from != "" || to != "" {
		for _, value := range []string{from, to} {
			if value == "" {
				continue
			}
			if _, err := time.Parse(dateLayout, value); err != nil {
				return Window{}, fmt.Errorf("invalid date bound: %q", value)
			}
		}
		if from != "" && to != "" && from > to {
			return Window{}, fmt.Errorf("date range is inverted: %s > %s", from, to)
		}
		return Window{From: from, To: to}, nil
	}

	trimmed := WindowName(strings.TrimSpace(name))
	switch trimmed {
	case "", WindowAll:
		return Window{Name: WindowAll}, nil
	case Window7Days, Window30Days, Window90Days:
		return Window{Name: trimmed}, nil
	}
	return Window{}, fmt.Errorf("invalid window: %q", name)
}

// days は相対期間の日数。0 は無制限を意味する。
func (w Window) days() int {
	switch w.Name {
	case Window7Days:
		return 7
	case Window30Days:
		return 30
	case Window90Days:
		return 90
	}
	return 0
}

// Contains は record の日付が窓に含まれるか判定する。
//
// 相対期間は「現在」と提出日の両方を現地の深夜0時へ切り詰め、日数差が
// N 未満のときのみ含める。ちょうど N 日前の提出は含まれない（strict）。
func (w Window) Contains(rawDate string, now time.Time) bool {
	normalized := NormalizeDate(rawDate)

	if w.From != "" || w.To != "" {
		if normalized == "" {
			return false
		}
		if w.From != "" && normalized < w.From {
			return false
		}
		if w.To != "" && normalized > w.To {
			return false
		}
		return true
	}

	limit := w.days()
	if limit == 0 {
		return true
	}

	recordDate, err := time.ParseInLocation(dateLayout, normalized, now.Location())
	if err != nil {
		return false
	}
	nowMidnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	daysDifference := int(nowMidnight.Sub(recordDate).Hours() / 24)
	return daysDifference < limit
}
