package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/genba-survey/validation-api/internal/dashboard/domain"
)

var (
	// ErrSubmissionIDRequired は回答IDが欠落している入力に対して返される。
	ErrSubmissionIDRequired = errors.New("submission id is required")
	// ErrSurveyAssetIDRequired は調査IDが欠落している入力に対して返される。
	// 調査IDはパーティションの宛先を決めるため必須であり、欠落はクライアントエラー。
	ErrSurveyAssetIDRequired = errors.New("survey asset id is required")
	// ErrInvalidSurveyAssetID はパーティションキーを構築できない調査IDに対して返される。
	ErrInvalidSurveyAssetID = errors.New("invalid survey asset id")
	// ErrInvalidStatus は未知の検証ステータスに対して返される。
	ErrInvalidStatus = errors.New("invalid validation status")
)

// validationService implements ValidationService.
// 書き込みは「変更＋キャッシュ無効化」が揃って初めて成功となる。
// 変更前に入力を検証し、不正な payload では一切の変更を行わない。
type validationService struct {
	submissions     SubmissionRepository
	cache           ResponseCache
	logger          *log.Logger
	partitionPrefix string
	now             func() time.Time
}

// NewValidationService creates a new ValidationService.
func NewValidationService(submissions SubmissionRepository, cache ResponseCache, logger *log.Logger, partitionPrefix string, now func() time.Time) ValidationService {
	if now == nil {
		now = time.Now
	}
	return &validationService{
		submissions:     submissions,
		cache:           cache,
		logger:          logger,
		partitionPrefix: partitionPrefix,
		now:             now,
	}
}

func (s *validationService) UpdateStatus(ctx context.Context, principal domain.Principal, cmd StatusUpdateCommand) (domain.ValidationStatus, error) {
	submissionID := strings.TrimSpace(cmd.SubmissionID)
	if submissionID == "" {
		return "", ErrSubmissionIDRequired
	}
	if strings.TrimSpace(cmd.SurveyAssetID) == "" {
		return "", ErrSurveyAssetIDRequired
	}

	status, err := domain.NewValidationStatus(cmd.NewStatus)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	key, err := domain.NewPartitionKey(s.partitionPrefix, cmd.SurveyAssetID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSurveyAssetID, err)
	}

	validatedBy := strings.TrimSpace(principal.Name)
	if validatedBy == "" {
		validatedBy = principal.ID
	}

	update := StatusUpdate{
		SubmissionID: submissionID,
		Status:       status,
		ValidatedAt:  s.now().UTC(),
		ValidatedBy:  validatedBy,
	}
	if err := s.submissions.UpdateStatus(ctx, key, update); err != nil {
		return "", err
	}

	// 書き込み成功後は principal や調査を問わず回答一覧系のエントリを全て破棄する。
	// ヒット率より「書き込み後に古い結果を読ませない」ことを優先する契約。
	s.cache.PurgeNamespace(SubmissionNamespace)
	s.logger.Printf("検証ステータスを更新しました: partition=%s submission=%s status=%s by=%s", key, submissionID, status, validatedBy)

	return status, nil
}
