package domain

import (
	"fmt"
	"strings"
)

// Role は認証済みアクターの権限区分。
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// NewRole はトークン由来のロール文字列を検証する。空文字は一般ユーザー扱い。
func NewRole(value string) (Role, error) {
	trimmed := strings.TrimSpace(value)
	switch Role(trimmed) {
	case RoleAdmin, RoleUser:
		return Role(trimmed), nil
	}
	if trimmed == "" {
		return RoleUser, nil
	}
	return "", fmt.Errorf("invalid role: %q", value)
}

// Principal はリクエストを行う認証済みアクターと、そのアクセス制限を表す。
// 認証コラボレーターが解決した値をそのまま信頼する。
type Principal struct {
	ID                  string
	Name                string
	Role                Role
	SurveyAllowList     []string
	EnumeratorAllowList []string
}

// IsAdmin は principal が管理者ロールか判定する。
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
