package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/genba-survey/validation-api/internal/dashboard/domain"
	"github.com/genba-survey/validation-api/internal/interfaces/http/common"
	"go.mongodb.org/mongo-driver/bson"
)

// notifyStatusChange はステータス更新を運用チャンネルへ通知する。
// 通知は書き込みの成否と無関係な fire-and-forget であり、失敗しても
// レスポンスには影響しない。失敗は failed_notifications に記録する。
func (h *Handler) notifyStatusChange(principal common.Principal, req statusUpdateRequest, status domain.ValidationStatus) {
	dest := strings.TrimSpace(h.messengerDestination)
	if dest == "" || h.httpClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	message := buildStatusChangeMessage(principal, req, status)
	if err := h.sendMessengerMessage(ctx, dest, req.SurveyAssetID, message); err != nil {
		if h.logger != nil {
			h.logger.Printf("ステータス更新通知の送信に失敗: %v", err)
		}
		h.persistNotificationFailure(ctx, principal, req, message, err)
	}
}

func buildStatusChangeMessage(principal common.Principal, req statusUpdateRequest, status domain.ValidationStatus) string {
	reviewer := strings.TrimSpace(principal.Name)
	if reviewer == "" {
		reviewer = principal.ID
	}

	var builder strings.Builder
	builder.WriteString("検証ステータスが更新されました。\n")
	builder.WriteString(fmt.Sprintf("- 調査: %s\n", req.SurveyAssetID))
	builder.WriteString(fmt.Sprintf("- 回答: %s\n", req.SubmissionID))
	builder.WriteString(fmt.Sprintf("- ステータス: %s\n", status))
	builder.WriteString(fmt.Sprintf("- 担当: %s\n", reviewer))
	return builder.String()
}

func (h *Handler) sendMessengerMessage(ctx context.Context, destination, identifier, bodyText string) error {
	trimmedIdentifier := strings.TrimSpace(identifier)
	if trimmedIdentifier == "" {
		return errors.New("identifier is required")
	}

	payload := map[string]any{
		"userId":      trimmedIdentifier,
		"text":        bodyText,
		"destination": destination,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信用ペイロードの作成に失敗: %w", err)
	}

	endpoint := strings.TrimRight(h.messengerEndpoint, "/") + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストに失敗: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("メッセンジャー送信でエラーが発生: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}

func (h *Handler) persistNotificationFailure(ctx context.Context, principal common.Principal, req statusUpdateRequest, message string, cause error) {
	if h.failedNotifications == nil {
		return
	}

	doc := bson.M{
		"target": "status_notification",
		"payload": bson.M{
			"surveyAssetId": req.SurveyAssetID,
			"submissionId":  req.SubmissionID,
			"newStatus":     req.NewStatus,
			"principalId":   principal.ID,
			"message":       message,
		},
		"error":     cause.Error(),
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	}
	if _, err := h.failedNotifications.InsertOne(ctx, doc); err != nil && h.logger != nil {
		h.logger.Printf("failed_notifications への保存に失敗: %v", err)
	}
}
