package domain

import (
	"fmt"
	"strings"
)

// ValidationStatus は回答の検証ステータスを表す値オブジェクト。
type ValidationStatus string

const (
	StatusApproved    ValidationStatus = "approved"
	StatusNotApproved ValidationStatus = "not_approved"
	StatusOnHold      ValidationStatus = "on_hold"
)

// NewValidationStatus は外部入力のステータス文字列を検証する。
func NewValidationStatus(value string) (ValidationStatus, error) {
	trimmed := strings.TrimSpace(value)
	switch ValidationStatus(trimmed) {
	case StatusApproved, StatusNotApproved, StatusOnHold:
		return ValidationStatus(trimmed), nil
	}
	return "", fmt.Errorf("invalid validation status: %q", value)
}

// NormalizeValidationStatus は保存値が欠落・未知の場合に on_hold へ丸める。
// 取り込みパイプライン側でステータス未設定のまま書かれたレコードを救済するための既定値。
func NormalizeValidationStatus(value string) ValidationStatus {
	status, err := NewValidationStatus(value)
	if err != nil {
		return StatusOnHold
	}
	return status
}

func (s ValidationStatus) String() string {
	return string(s)
}
