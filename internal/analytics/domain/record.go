package domain

import "strings"

// UnknownSubmitter は提出者不明を表す取り込み側のプレースホルダー。
const UnknownSubmitter = "Unknown"

// Record は品質集計に必要な最小限の回答属性。
type Record struct {
	Submitter string
	Date      string
	AlertFlag string
}

// HasAlert は alertFlag が実際の警告を含むか判定する。空文字と "NA" は警告なし。
func (r Record) HasAlert() bool {
	flag := strings.TrimSpace(r.AlertFlag)
	return flag != "" && flag != "NA"
}

// Attributable は提出者が集計対象として有効か判定する。
// 提出者欄が空またはプレースホルダーのレコードは集計から除外される。
func (r Record) Attributable() bool {
	submitter := strings.TrimSpace(r.Submitter)
	return submitter != "" && submitter != UnknownSubmitter
}

// NormalizeDate は日時文字列から区切り文字より前の日付部分を取り出す。
// "2025-01-02T15:04:05" と "2025-01-02 15:04:05" の両形式に対応する。
func NormalizeDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if idx := strings.IndexAny(trimmed, "T "); idx >= 0 {
		return trimmed[:idx]
	}
	return trimmed
}
