package dashboard

import (
	"time"

	dashboardapp "github.com/genba-survey/validation-api/internal/dashboard/application"
	"github.com/genba-survey/validation-api/internal/dashboard/domain"
	"github.com/genba-survey/validation-api/internal/interfaces/http/common"
)

type submissionResponse struct {
	ID               string     `json:"id"`
	Date             string     `json:"date,omitempty"`
	Submitter        string     `json:"submitter,omitempty"`
	ValidationStatus string     `json:"validationStatus"`
	ValidatedAt      *time.Time `json:"validatedAt,omitempty"`
	ValidatedBy      string     `json:"validatedBy,omitempty"`
	AlertFlag        string     `json:"alertFlag,omitempty"`
	SurveyAssetID    string     `json:"surveyAssetId"`
	SurveyName       string     `json:"surveyName"`
	CountryID        string     `json:"countryId,omitempty"`
}

type accessibleSurveyResponse struct {
	AssetID   string `json:"asset_id"`
	Name      string `json:"name"`
	CountryID string `json:"country_id"`
}

type listMetadataResponse struct {
	AccessibleSurveys []accessibleSurveyResponse `json:"accessible_surveys"`
}

type submissionListResponse struct {
	Count      int                  `json:"count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"totalPages"`
	Next       *int                 `json:"next"`
	Previous   *int                 `json:"previous"`
	Results    []submissionResponse `json:"results"`
	Metadata   listMetadataResponse `json:"metadata"`
}

type statusUpdateRequest struct {
	SubmissionID  string `json:"submissionId"`
	NewStatus     string `json:"newStatus"`
	SurveyAssetID string `json:"surveyAssetId"`
}

type statusUpdateResponse struct {
	Message string `json:"message"`
}

func submissionDomainToResponse(record domain.SubmissionRecord) submissionResponse {
	return submissionResponse{
		ID:               record.ID,
		Date:             record.Date,
		Submitter:        record.Submitter,
		ValidationStatus: record.ValidationStatus.String(),
		ValidatedAt:      record.ValidatedAt,
		ValidatedBy:      record.ValidatedBy,
		AlertFlag:        record.AlertFlag,
		SurveyAssetID:    record.SurveyAssetID,
		SurveyName:       record.SurveyName,
		CountryID:        record.CountryID,
	}
}

func listDomainToResponse(result dashboardapp.PagedResult) submissionListResponse {
	results := make([]submissionResponse, 0, len(result.Results))
	for _, record := range result.Results {
		results = append(results, submissionDomainToResponse(record))
	}

	surveys := make([]accessibleSurveyResponse, 0, len(result.AccessibleSurveys))
	for _, survey := range result.AccessibleSurveys {
		surveys = append(surveys, accessibleSurveyResponse{
			AssetID:   survey.AssetID,
			Name:      survey.Name,
			CountryID: survey.CountryID,
		})
	}

	response := submissionListResponse{
		Count:      result.Count,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
		Results:    results,
		Metadata:   listMetadataResponse{AccessibleSurveys: surveys},
	}
	if result.HasNext() {
		response.Next = common.IntPtr(result.Page + 1)
	}
	if result.HasPrevious() {
		response.Previous = common.IntPtr(result.Page - 1)
	}
	return response
}
