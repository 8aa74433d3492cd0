package common

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("JSON エンコードに失敗: %v", err)
	}
}

// WriteCachedJSON writes a pre-serialized payload with cache status headers.
// キャッシュヒット時は格納済みバイト列をそのまま返すため、同一 TTL 窓内の
// 同一リクエストはバイト単位で一致する。
func WriteCachedJSON(logger *log.Logger, w http.ResponseWriter, payload []byte, cached bool, ttl time.Duration) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("private, max-age=%d", int(ttl.Seconds())))
	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil && logger != nil {
		logger.Printf("レスポンス書き込みに失敗: %v", err)
	}
}
