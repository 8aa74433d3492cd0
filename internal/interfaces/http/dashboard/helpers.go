package dashboard

import (
	"fmt"

	"github.com/genba-survey/validation-api/internal/dashboard/domain"
	"github.com/genba-survey/validation-api/internal/interfaces/http/common"
)

// toDomainPrincipal は認証済み principal をドメイン表現へ変換する。
// ロールは認証ミドルウェアで検証済みのため、ここでは空文字の既定値化のみ行う。
func toDomainPrincipal(principal common.Principal) domain.Principal {
	role, err := domain.NewRole(principal.Role)
	if err != nil {
		role = domain.RoleUser
	}
	return domain.Principal{
		ID:                  principal.ID,
		Name:                principal.Name,
		Role:                role,
		SurveyAllowList:     principal.Surveys,
		EnumeratorAllowList: principal.Enumerators,
	}
}

// cacheKey は (principal, page, limit) の純関数としてキャッシュキーを組み立てる。
// principal ID を含めるため、実効データが一致するユーザー同士でもエントリは共有されない。
func cacheKey(scope, principalID string, page, limit int) string {
	return fmt.Sprintf("%s:%s:page=%d:limit=%d", scope, principalID, page, limit)
}
