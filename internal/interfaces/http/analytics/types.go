package analytics

import analyticsdomain "github.com/genba-survey/validation-api/internal/analytics/domain"

type dailyCountResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type summaryResponse struct {
	Submitter             string               `json:"submitter"`
	TotalSubmissions      int                  `json:"totalSubmissions"`
	SubmissionsWithAlerts int                  `json:"submissionsWithAlerts"`
	ErrorRate             float64              `json:"errorRate"`
	DailyTrend            []dailyCountResponse `json:"dailyTrend"`
	FilteredTotal         int                  `json:"filteredTotal"`
	FilteredAlerts        int                  `json:"filteredAlertsCount"`
	FilteredErrorRate     float64              `json:"filteredErrorRate"`
}

type overviewResponse struct {
	Enumerators     int     `json:"enumerators"`
	MeanErrorRate   float64 `json:"meanErrorRate"`
	MedianErrorRate float64 `json:"medianErrorRate"`
}

type summaryListResponse struct {
	Window        string            `json:"window"`
	Strategy      string            `json:"strategy"`
	Summaries     []summaryResponse `json:"summaries"`
	BestPerformer *summaryResponse  `json:"bestPerformer"`
	Overview      overviewResponse  `json:"overview"`
}

func summaryToResponse(summary analyticsdomain.Summary) summaryResponse {
	trend := make([]dailyCountResponse, 0, len(summary.DailyTrend))
	for _, day := range summary.DailyTrend {
		trend = append(trend, dailyCountResponse{Date: day.Date, Count: day.Count})
	}
	return summaryResponse{
		Submitter:             summary.Submitter,
		TotalSubmissions:      summary.TotalSubmissions,
		SubmissionsWithAlerts: summary.SubmissionsWithAlerts,
		ErrorRate:             summary.ErrorRate,
		DailyTrend:            trend,
		FilteredTotal:         summary.FilteredTotal,
		FilteredAlerts:        summary.FilteredAlerts,
		FilteredErrorRate:     summary.FilteredErrorRate,
	}
}

func summaryToResponsePtr(summary analyticsdomain.Summary) *summaryResponse {
	response := summaryToResponse(summary)
	return &response
}

func summariesToResponse(summaries []analyticsdomain.Summary) []summaryResponse {
	result := make([]summaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		result = append(result, summaryToResponse(summary))
	}
	return result
}

func overviewToResponse(overview analyticsdomain.Overview) overviewResponse {
	return overviewResponse{
		Enumerators:     overview.Enumerators,
		MeanErrorRate:   overview.MeanErrorRate,
		MedianErrorRate: overview.MedianErrorRate,
	}
}
