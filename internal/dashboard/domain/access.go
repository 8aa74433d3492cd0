package domain

import "strings"

// EnumeratorFilter は提出者名による絞り込み条件。空は無制限を意味する。
type EnumeratorFilter []string

// Restricted は絞り込みが有効かどうかを返す。
func (f EnumeratorFilter) Restricted() bool {
	return len(f) > 0
}

// Allows は指定された提出者が絞り込み条件を満たすか判定する。
func (f EnumeratorFilter) Allows(submitter string) bool {
	if !f.Restricted() {
		return true
	}
	for _, name := range f {
		if name == submitter {
			return true
		}
	}
	return false
}

// ResolveAccess は principal のロールと許可リストから参照可能な調査集合を決定する。
//
//   - admin かつ調査許可リストが空: カタログ中の有効な調査すべて。
//   - それ以外: 許可リストに含まれる有効な調査のみ。一般ユーザーの空リストは
//     「参照可能な調査なし」を意味し、エラーではなく空集合として扱う。
//
// 提出者許可リストが非空ならそのまま絞り込み条件として返す。
func ResolveAccess(principal Principal, catalog []Survey) ([]Survey, EnumeratorFilter) {
	allowAll := principal.IsAdmin() && len(principal.SurveyAllowList) == 0

	allowed := make(map[string]struct{}, len(principal.SurveyAllowList))
	for _, id := range principal.SurveyAllowList {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}

	accessible := make([]Survey, 0, len(catalog))
	for _, survey := range catalog {
		if !survey.Active {
			continue
		}
		if !allowAll {
			if _, ok := allowed[survey.AssetID]; !ok {
				continue
			}
		}
		accessible = append(accessible, survey)
	}

	filter := make(EnumeratorFilter, 0, len(principal.EnumeratorAllowList))
	for _, name := range principal.EnumeratorAllowList {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			filter = append(filter, trimmed)
		}
	}
	if len(filter) == 0 {
		filter = nil
	}

	return accessible, filter
}
