package cache

import (
	"sync"
	"time"
)

// Cache は名前空間ごとに区切られた TTL 付きのインメモリレスポンスキャッシュ。
//
// 読み取りと populate の check-then-act は意図的に非アトミック。compute は
// ストアの現在状態の純関数なので、同一キーの同時ミスが二重計算になっても
// 後勝ちで問題ない。無効化は名前空間単位の一括破棄のみを提供し、プレフィックス
// 走査のようなアドホックな削除は行わない。
type Cache struct {
	mu         sync.Mutex
	ttl        time.Duration
	namespaces map[string]map[string]entry
	now        func() time.Time
}

type entry struct {
	payload    []byte
	insertedAt time.Time
}

// DefaultTTL はキャッシュエントリの既定の生存時間。
const DefaultTTL = 300 * time.Second

// New は指定 TTL のキャッシュを構築する。
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:        ttl,
		namespaces: make(map[string]map[string]entry),
		now:        time.Now,
	}
}

// TTL はこのキャッシュのエントリ生存時間を返す。
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get は有効なエントリを返す。TTL を超過したエントリはその場で破棄してミス扱い。
func (c *Cache) Get(namespace, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.namespaces[namespace]
	if !ok {
		return nil, false
	}
	item, ok := bucket[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(item.insertedAt) >= c.ttl {
		delete(bucket, key)
		return nil, false
	}
	return item.payload, true
}

// Set はエントリを現在時刻付きで格納する。既存エントリは上書きする。
func (c *Cache) Set(namespace, key string, payload []byte) {
	copied := make([]byte, len(payload))
	copy(copied, payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.namespaces[namespace]
	if !ok {
		bucket = make(map[string]entry)
		c.namespaces[namespace] = bucket
	}
	bucket[key] = entry{payload: copied, insertedAt: c.now()}
}

// GetOrCompute はヒット時に格納済み payload を返し、ミス時は compute を実行して
// 結果を格納する。戻り値の bool はキャッシュから配信されたかどうかを示す。
func (c *Cache) GetOrCompute(namespace, key string, compute func() ([]byte, error)) ([]byte, bool, error) {
	if payload, ok := c.Get(namespace, key); ok {
		return payload, true, nil
	}

	payload, err := compute()
	if err != nil {
		return nil, false, err
	}
	c.Set(namespace, key, payload)
	return payload, false, nil
}

// PurgeNamespace は名前空間配下の全エントリを破棄する。
// どの principal・どの調査の書き込みであっても一覧系エントリを全て捨てる、
// 粒度の粗い無効化を単一の明示的な操作として公開する。
func (c *Cache) PurgeNamespace(namespace string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.namespaces, namespace)
}
