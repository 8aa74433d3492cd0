package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	dashboardapp "github.com/genba-survey/validation-api/internal/dashboard/application"
	"github.com/genba-survey/validation-api/internal/interfaces/http/common"
)

// listRequestTimeout は全パーティションの合流を待つ上限。個々のパーティション
// 読み取りはアプリケーション層でさらに短いタイムアウトに縛られる。
const listRequestTimeout = 15 * time.Second

func (h *Handler) submissionListHandler() http.HandlerFunc {
	return h.listHandler("submissions", common.DefaultSubmissionPageSize)
}

// statsHandler は統計画面向けの一覧。既定の limit が大きいだけで、封筒の形式と
// キャッシュの名前空間は回答一覧と共通（statsも回答由来のため、書き込みによる
// グローバル無効化の対象に含める）。
func (h *Handler) statsHandler() http.HandlerFunc {
	return h.listHandler("stats", common.DefaultStatsPageSize)
}

func (h *Handler) listHandler(scope string, defaultLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := common.PrincipalFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報がありません"})
			return
		}

		query := r.URL.Query()
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		limit, _ := common.ParsePositiveInt(query.Get("limit"), defaultLimit)

		ctx, cancel := context.WithTimeout(r.Context(), listRequestTimeout)
		defer cancel()

		key := cacheKey(scope, principal.ID, page, limit)
		payload, cached, err := h.cache.GetOrCompute(dashboardapp.SubmissionNamespace, key, func() ([]byte, error) {
			result, err := h.submissions.List(ctx, toDomainPrincipal(principal), page, limit)
			if err != nil {
				return nil, err
			}
			return json.Marshal(listDomainToResponse(result))
		})
		if err != nil {
			h.logger.Printf("%s list fetch failed principal=%s err=%v", scope, principal.ID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "回答一覧の取得に失敗しました"})
			return
		}

		common.WriteCachedJSON(h.logger, w, payload, cached, h.cacheTTL)
	}
}
