package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	dashboardapp "github.com/genba-survey/validation-api/internal/dashboard/application"
	"github.com/genba-survey/validation-api/internal/interfaces/http/common"
)

func (h *Handler) statusUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := common.PrincipalFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報がありません"})
			return
		}

		var req statusUpdateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxStatusRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエストの形式が不正です"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		cmd := dashboardapp.StatusUpdateCommand{
			SubmissionID:  req.SubmissionID,
			NewStatus:     req.NewStatus,
			SurveyAssetID: req.SurveyAssetID,
		}
		status, err := h.validation.UpdateStatus(ctx, toDomainPrincipal(principal), cmd)
		if err != nil {
			if message, ok := statusUpdateClientError(err); ok {
				common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": message})
				return
			}
			h.logger.Printf("status update failed submission=%s survey=%s err=%v", req.SubmissionID, req.SurveyAssetID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "検証ステータスの更新に失敗しました"})
			return
		}

		go h.notifyStatusChange(principal, req, status)

		message := fmt.Sprintf("回答 %s の検証ステータスを %s に更新しました", req.SubmissionID, status)
		common.WriteJSON(h.logger, w, http.StatusOK, statusUpdateResponse{Message: message})
	}
}

// statusUpdateClientError は変更前検証のエラーをクライアント向けメッセージへ写像する。
func statusUpdateClientError(err error) (string, bool) {
	switch {
	case errors.Is(err, dashboardapp.ErrSubmissionIDRequired):
		return "回答IDが指定されていません", true
	case errors.Is(err, dashboardapp.ErrSurveyAssetIDRequired):
		return "調査IDが指定されていません", true
	case errors.Is(err, dashboardapp.ErrInvalidSurveyAssetID):
		return "調査IDの形式が不正です", true
	case errors.Is(err, dashboardapp.ErrInvalidStatus):
		return "検証ステータスの値が不正です", true
	}
	return "", false
}
