package application

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/genba-survey/validation-api/internal/dashboard/domain"
	"golang.org/x/sync/errgroup"
)

// defaultFetchTimeout はパーティション1件あたりの読み取り上限時間。
const defaultFetchTimeout = 5 * time.Second

// aggregationService implements SubmissionQueryService.
// 参照可能な全パーティションへ並行に読みを発行し、単一のバリアで合流してから
// マージ・整列・ページングを行う。個別パーティションの失敗は空の結果として
// 吸収し、呼び出し元へは伝播させない。
type aggregationService struct {
	submissions     SubmissionRepository
	catalog         SurveyCatalogRepository
	logger          *log.Logger
	partitionPrefix string
	fetchTimeout    time.Duration
}

// NewSubmissionQueryService creates a new SubmissionQueryService.
func NewSubmissionQueryService(submissions SubmissionRepository, catalog SurveyCatalogRepository, logger *log.Logger, partitionPrefix string, fetchTimeout time.Duration) SubmissionQueryService {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &aggregationService{
		submissions:     submissions,
		catalog:         catalog,
		logger:          logger,
		partitionPrefix: partitionPrefix,
		fetchTimeout:    fetchTimeout,
	}
}

func (s *aggregationService) List(ctx context.Context, principal domain.Principal, page, limit int) (PagedResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	merged, accessible, err := s.collect(ctx, principal)
	if err != nil {
		return PagedResult{}, err
	}

	count := len(merged)
	totalPages := 0
	if count > 0 {
		totalPages = (count + limit - 1) / limit
	}

	skip := (page - 1) * limit
	results := []domain.SubmissionRecord{}
	if skip < count {
		end := skip + limit
		if end > count {
			end = count
		}
		results = merged[skip:end]
	}

	return PagedResult{
		Count:             count,
		Page:              page,
		Limit:             limit,
		TotalPages:        totalPages,
		Results:           results,
		AccessibleSurveys: accessible,
	}, nil
}

func (s *aggregationService) Flat(ctx context.Context, principal domain.Principal, limit int) ([]domain.SubmissionRecord, error) {
	merged, _, err := s.collect(ctx, principal)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// collect はアクセス解決からマージ整列までの共通経路。
// カタログ読み取りの失敗はリクエスト全体の失敗として返すが、個別パーティション
// の失敗はログに残して空スライスで継続する。
func (s *aggregationService) collect(ctx context.Context, principal domain.Principal) ([]domain.SubmissionRecord, []domain.Survey, error) {
	catalog, err := s.catalog.ListActive(ctx)
	if err != nil {
		return nil, nil, err
	}

	accessible, enumeratorFilter := domain.ResolveAccess(principal, catalog)
	if len(accessible) == 0 {
		return []domain.SubmissionRecord{}, []domain.Survey{}, nil
	}

	// 各ゴルーチンは自分のスロットにのみ書き込み、マージは合流後に単一スレッドで行う。
	slots := make([][]domain.SubmissionRecord, len(accessible))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, survey := range accessible {
		i, survey := i, survey
		group.Go(func() error {
			key, err := domain.NewPartitionKey(s.partitionPrefix, survey.AssetID)
			if err != nil {
				s.logger.Printf("調査 %s のパーティションキー構築に失敗、スキップします: %v", survey.AssetID, err)
				return nil
			}

			fetchCtx, cancel := context.WithTimeout(groupCtx, s.fetchTimeout)
			defer cancel()

			submissions, err := s.submissions.FetchPartition(fetchCtx, key, enumeratorFilter)
			if err != nil {
				s.logger.Printf("パーティション %s の読み取りに失敗、空として継続します: %v", key, err)
				return nil
			}

			records := make([]domain.SubmissionRecord, 0, len(submissions))
			for _, submission := range submissions {
				records = append(records, domain.SubmissionRecord{
					Submission:    submission,
					SurveyAssetID: survey.AssetID,
					SurveyName:    survey.Name,
					CountryID:     survey.CountryID,
				})
			}
			slots[i] = records
			return nil
		})
	}
	// ワーカーはエラーを返さないため Wait は常に nil を返す。
	_ = group.Wait()

	total := 0
	for _, slot := range slots {
		total += len(slot)
	}
	merged := make([]domain.SubmissionRecord, 0, total)
	for _, slot := range slots {
		merged = append(merged, slot...)
	}
	sortRecords(merged)

	return merged, accessible, nil
}

// sortRecords は提出日時の降順に整列する。日時が解釈できないレコードは末尾、
// 同時刻は ID 昇順で順序を決定的にする。
func sortRecords(records []domain.SubmissionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		left, leftOK := domain.ParseSubmissionTime(records[i].Date)
		right, rightOK := domain.ParseSubmissionTime(records[j].Date)
		if leftOK != rightOK {
			return leftOK
		}
		if !leftOK {
			return records[i].ID < records[j].ID
		}
		if !left.Equal(right) {
			return left.After(right)
		}
		return records[i].ID < records[j].ID
	})
}
