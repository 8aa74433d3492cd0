package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPartitionKey(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		assetID string
		want    string
		wantErr bool
	}{
		{name: "英数字とハイフン", prefix: "submissions_for_", assetID: "aXk29-fLp_3", want: "submissions_for_aXk29-fLp_3"},
		{name: "前後の空白は無視", prefix: "submissions_for_", assetID: "  abc123  ", want: "submissions_for_abc123"},
		{name: "空のassetId", prefix: "submissions_for_", assetID: "", wantErr: true},
		{name: "空白のみ", prefix: "submissions_for_", assetID: "   ", wantErr: true},
		{name: "ドル記号の注入", prefix: "submissions_for_", assetID: "abc$where", wantErr: true},
		{name: "ドット区切りの注入", prefix: "submissions_for_", assetID: "abc.def", wantErr: true},
		{name: "空白を含む", prefix: "submissions_for_", assetID: "abc def", wantErr: true},
		{name: "system名前空間", prefix: "system.", assetID: "indexes", wantErr: true},
		{name: "長すぎるキー", prefix: "submissions_for_", assetID: strings.Repeat("a", 200), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NewPartitionKey(tt.prefix, tt.assetID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, key.String())
		})
	}
}
