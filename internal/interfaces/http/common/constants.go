package common

const (
	// DefaultSubmissionPageSize is the default page size for the submission table.
	DefaultSubmissionPageSize = 1000
	// DefaultStatsPageSize is the default page size for the stats endpoint.
	DefaultStatsPageSize = 10000
	// MaxStatusRequestBody limits JSON request bodies for the status-update endpoint.
	MaxStatusRequestBody = 1 << 20
)
