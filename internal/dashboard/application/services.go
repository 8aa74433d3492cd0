package application

import (
	"context"
	"time"

	"github.com/genba-survey/validation-api/internal/dashboard/domain"
)

// SubmissionNamespace は回答一覧系キャッシュエントリの名前空間。
// ステータス更新はこの名前空間全体を破棄する（グローバル無効化の契約）。
const SubmissionNamespace = "submissions"

// SubmissionRepository は調査パーティションへの読み書きポート。
// SubmissionRepository abstracts one partition worth of submission storage.
type SubmissionRepository interface {
	FetchPartition(ctx context.Context, key domain.PartitionKey, filter domain.EnumeratorFilter) ([]domain.Submission, error)
	UpdateStatus(ctx context.Context, key domain.PartitionKey, update StatusUpdate) error
}

// SurveyCatalogRepository は有効な調査カタログの読み取りポート。
type SurveyCatalogRepository interface {
	ListActive(ctx context.Context) ([]domain.Survey, error)
}

// ResponseCache は集計結果の TTL キャッシュポート。
// テストごとに独立したインスタンスを注入できるよう、プロセス全体の
// シングルトンではなく依存として渡す。
type ResponseCache interface {
	GetOrCompute(namespace, key string, compute func() ([]byte, error)) ([]byte, bool, error)
	PurgeNamespace(namespace string)
}

// StatusUpdate はパーティションへ書き込む検証結果。
type StatusUpdate struct {
	SubmissionID string
	Status       domain.ValidationStatus
	ValidatedAt  time.Time
	ValidatedBy  string
}

// PagedResult はマージ・整列済み回答のページング結果。
type PagedResult struct {
	Count             int
	Page              int
	Limit             int
	TotalPages        int
	Results           []domain.SubmissionRecord
	AccessibleSurveys []domain.Survey
}

// HasNext は次ページが存在するか判定する。
func (r PagedResult) HasNext() bool {
	return (r.Page-1)*r.Limit+r.Limit < r.Count
}

// HasPrevious は前ページが存在するか判定する。
func (r PagedResult) HasPrevious() bool {
	return r.Page > 1
}

// SubmissionQueryService は回答参照ユースケースを提供するリーダーモデル。
type SubmissionQueryService interface {
	List(ctx context.Context, principal domain.Principal, page, limit int) (PagedResult, error)
	Flat(ctx context.Context, principal domain.Principal, limit int) ([]domain.SubmissionRecord, error)
}

// ValidationService は検証ステータス更新ユースケースを提供する。
type ValidationService interface {
	UpdateStatus(ctx context.Context, principal domain.Principal, cmd StatusUpdateCommand) (domain.ValidationStatus, error)
}

// StatusUpdateCommand は検証ステータス更新の外部入力。
type StatusUpdateCommand struct {
	SubmissionID  string
	NewStatus     string
	SurveyAssetID string
}
