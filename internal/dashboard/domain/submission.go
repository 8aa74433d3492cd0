package domain

import (
	"strings"
	"time"
)

// Submission は調査パーティションに保存された回答1件を表す。
// ID はパーティション内でのみ一意であり、グローバルな一意性は保証されない。
type Submission struct {
	ID               string
	Date             string
	Submitter        string
	ValidationStatus ValidationStatus
	ValidatedAt      *time.Time
	ValidatedBy      string
	AlertFlag        string
}

// SubmissionRecord はマージ時に所属調査のメタデータを付与した回答レコード。
type SubmissionRecord struct {
	Submission
	SurveyAssetID string
	SurveyName    string
	CountryID     string
}

// noAlertPlaceholder は警告なしを表す取り込み側の慣用値。
const noAlertPlaceholder = "NA"

// HasAlert は alertFlag が実際の警告コードを含むか判定する。
// 空文字とリテラル "NA" はいずれも警告なし扱い。
func (s Submission) HasAlert() bool {
	flag := strings.TrimSpace(s.AlertFlag)
	return flag != "" && flag != noAlertPlaceholder
}

// DateOnly は日時文字列から区切り文字より前の日付部分を取り出す。
// 取り込み元には "2025-01-02T15:04:05" 形式と "2025-01-02 15:04:05" 形式が混在する。
func DateOnly(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if idx := strings.IndexAny(trimmed, "T "); idx >= 0 {
		return trimmed[:idx]
	}
	return trimmed
}

var submissionTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseSubmissionTime は観測されている日時形式を順に試し、解釈結果と成否を返す。
// どの形式にも一致しないレコードはソート時に末尾へ回される。
func ParseSubmissionTime(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range submissionTimeLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
