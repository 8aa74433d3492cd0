package common

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWriteCachedJSONHeaders(t *testing.T) {
	t.Run("miss", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		WriteCachedJSON(nil, recorder, []byte(`{"count":0}`), false, 300*time.Second)

		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
		assert.Equal(t, "private, max-age=300", recorder.Header().Get("Cache-Control"))
		assert.Equal(t, "MISS", recorder.Header().Get("X-Cache"))
		assert.Equal(t, `{"count":0}`, recorder.Body.String())
	})

	t.Run("hit", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		WriteCachedJSON(nil, recorder, []byte(`{"count":0}`), true, 60*time.Second)

		assert.Equal(t, "private, max-age=60", recorder.Header().Get("Cache-Control"))
		assert.Equal(t, "HIT", recorder.Header().Get("X-Cache"))
	})
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		value    string
		fallback int
		want     int
		ok       bool
	}{
		{value: "10", fallback: 1, want: 10, ok: true},
		{value: " 3 ", fallback: 1, want: 3, ok: true},
		{value: "", fallback: 1000, want: 1000, ok: false},
		{value: "0", fallback: 5, want: 5, ok: false},
		{value: "-2", fallback: 5, want: 5, ok: false},
		{value: "abc", fallback: 5, want: 5, ok: false},
	}
	for _, tt := range tests {
		got, ok := ParsePositiveInt(tt.value, tt.fallback)
		assert.Equal(t, tt.want, got, "value %q", tt.value)
		assert.Equal(t, tt.ok, ok, "value %q", tt.value)
	}
}
