package common

import "context"

type contextKey string

const principalContextKey contextKey = "principal"

// Principal represents the JWT-derived actor with its access scoping.
// 認証コラボレーターが発行したクレームをそのまま保持し、コアはこれを信頼する。
type Principal struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Role        string   `json:"role"`
	Surveys     []string `json:"surveys,omitempty"`
	Enumerators []string `json:"enumerators,omitempty"`
}

// ContextWithPrincipal stores the authenticated principal into context.
func ContextWithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated principal from context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(Principal)
	return principal, ok
}
