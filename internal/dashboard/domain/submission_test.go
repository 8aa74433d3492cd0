package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionHasAlert(t *testing.T) {
	assert.False(t, Submission{AlertFlag: ""}.HasAlert())
	assert.False(t, Submission{AlertFlag: "NA"}.HasAlert())
	assert.False(t, Submission{AlertFlag: "  NA  "}.HasAlert())
	assert.True(t, Submission{AlertFlag: "1"}.HasAlert())
	assert.True(t, Submission{AlertFlag: "2,4,5"}.HasAlert())
}

func TestDateOnly(t *testing.T) {
	assert.Equal(t, "2025-06-01", DateOnly("2025-06-01T15:04:05"))
	assert.Equal(t, "2025-06-01", DateOnly("2025-06-01 15:04:05"))
	assert.Equal(t, "2025-06-01", DateOnly("  2025-06-01  "))
	assert.Equal(t, "", DateOnly(""))
}

func TestParseSubmissionTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
		ok   bool
	}{
		{
			name: "ISO 8601 オフセット付き",
			raw:  "2025-06-01T15:04:05+09:00",
			want: time.Date(2025, 6, 1, 15, 4, 5, 0, time.FixedZone("", 9*3600)),
			ok:   true,
		},
		{
			name: "ISO 8601 オフセットなし",
			raw:  "2025-06-01T15:04:05",
			want: time.Date(2025, 6, 1, 15, 4, 5, 0, time.UTC),
			ok:   true,
		},
		{
			name: "空白区切り",
			raw:  "2025-06-01 15:04:05",
			want: time.Date(2025, 6, 1, 15, 4, 5, 0, time.UTC),
			ok:   true,
		},
		{
			name: "日付のみ",
			raw:  "2025-06-01",
			want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{name: "空文字", raw: "", ok: false},
		{name: "解釈不能", raw: "not-a-date", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSubmissionTime(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeValidationStatus(t *testing.T) {
	assert.Equal(t, StatusApproved, NormalizeValidationStatus("approved"))
	assert.Equal(t, StatusNotApproved, NormalizeValidationStatus("not_approved"))
	assert.Equal(t, StatusOnHold, NormalizeValidationStatus(""))
	assert.Equal(t, StatusOnHold, NormalizeValidationStatus("garbage"))
}
