package analytics

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	analyticsapp "github.com/genba-survey/validation-api/internal/analytics/application"
	analyticsdomain "github.com/genba-survey/validation-api/internal/analytics/domain"
	dashboardapp "github.com/genba-survey/validation-api/internal/dashboard/application"
	dashboarddomain "github.com/genba-survey/validation-api/internal/dashboard/domain"
	"github.com/genba-survey/validation-api/internal/interfaces/http/common"
)

// Handler wires analytics HTTP endpoints to application services.
// 回答の取得は dashboard コンテキストの集計サービスに委譲し、アクセス制御を
// 適用済みのフラットな一覧だけを品質集計へ渡す。
type Handler struct {
	logger    *log.Logger
	records   dashboardapp.SubmissionQueryService
	summaries analyticsapp.SummaryService
	location  *time.Location
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger    *log.Logger
	Records   dashboardapp.SubmissionQueryService
	Summaries analyticsapp.SummaryService
	Location  *time.Location
}

// NewHandler constructs an analytics HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:    cfg.Logger,
		records:   cfg.Records,
		summaries: cfg.Summaries,
		location:  cfg.Location,
	}
}

// Register mounts analytics routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/analytics/enumerators", h.enumeratorSummaryHandler())
}

func (h *Handler) enumeratorSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := common.PrincipalFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報がありません"})
			return
		}

		query := r.URL.Query()
		window, err := analyticsdomain.NewWindow(query.Get("window"), query.Get("from"), query.Get("to"))
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "期間の指定が不正です"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		records, err := h.records.Flat(ctx, toDomainPrincipal(principal), common.DefaultStatsPageSize)
		if err != nil {
			h.logger.Printf("analytics records fetch failed principal=%s err=%v", principal.ID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "回答一覧の取得に失敗しました"})
			return
		}

		now := time.Now()
		if h.location != nil {
			now = now.In(h.location)
		}
		summaries := h.summaries.Summaries(toAnalyticsRecords(records), window, now)
		strategy := analyticsapp.StrategyFor(strings.TrimSpace(query.Get("strategy")))
		best, hasBest := strategy.Best(summaries)
		overview := h.summaries.Overview(summaries)

		response := summaryListResponse{
			Window:    windowLabel(window),
			Strategy:  strategy.Name(),
			Summaries: summariesToResponse(summaries),
			Overview:  overviewToResponse(overview),
		}
		if hasBest {
			response.BestPerformer = summaryToResponsePtr(best)
		}
		common.WriteJSON(h.logger, w, http.StatusOK, response)
	}
}

func toDomainPrincipal(principal common.Principal) dashboarddomain.Principal {
	role, err := dashboarddomain.NewRole(principal.Role)
	if err != nil {
		role = dashboarddomain.RoleUser
	}
	return dashboarddomain.Principal{
		ID:                  principal.ID,
		Name:                principal.Name,
		Role:                role,
		SurveyAllowList:     principal.Surveys,
		EnumeratorAllowList: principal.Enumerators,
	}
}

func toAnalyticsRecords(records []dashboarddomain.SubmissionRecord) []analyticsdomain.Record {
	result := make([]analyticsdomain.Record, 0, len(records))
	for _, record := range records {
		result = append(result, analyticsdomain.Record{
			Submitter: record.Submitter,
			Date:      record.Date,
			AlertFlag: record.AlertFlag,
		})
	}
	return result
}

func windowLabel(window analyticsdomain.Window) string {
	if window.From != "" || window.To != "" {
		return strings.TrimSpace(window.From + ".." + window.To)
	}
	return string(window.Name)
}
