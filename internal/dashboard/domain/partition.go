package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// PartitionKey は調査ごとの回答パーティションを指す検証済みのコレクション名。
// 外部供給の assetId をそのままコレクション名へ連結すると不正な名前空間を
// 作れてしまうため、構築時に一度だけ検証する。
type PartitionKey string

// maxPartitionKeyRunes は Mongo のコレクション名長制限に収まる上限。
const maxPartitionKeyRunes = 120

var assetIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// NewPartitionKey は固定プレフィックスと assetId からパーティションキーを構築する。
// ストアの命名規則に反する assetId は拒否する。
func NewPartitionKey(prefix, assetID string) (PartitionKey, error) {
	trimmed := strings.TrimSpace(assetID)
	if trimmed == "" {
		return "", errors.New("asset id is required")
	}
	if !assetIDPattern.MatchString(trimmed) {
		return "", fmt.Errorf("asset id contains unsafe characters: %q", assetID)
	}

	key := prefix + trimmed
	if strings.HasPrefix(key, "system.") || strings.ContainsAny(key, "$\x00") {
		return "", fmt.Errorf("partition key is not allowed: %q", key)
	}
	if len(key) > maxPartitionKeyRunes {
		return "", fmt.Errorf("partition key exceeds %d characters: %q", maxPartitionKeyRunes, key)
	}
	return PartitionKey(key), nil
}

func (k PartitionKey) String() string {
	return string(k)
}
