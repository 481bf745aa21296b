package storage

import "context"

// Store は名前付きブロブの永続化を提供する key-value 抽象。
// localStorage と同じ契約: 失敗しても panic せず、呼び出し側には
// 「永続化されなかった」事実だけが返る。スキーマには関知しない。
type Store interface {
	// Get returns the raw value for key. A missing key is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set durably writes value under key. Each key is written atomically;
	// there is no transaction spanning multiple keys.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// Close releases the underlying storage.
	Close() error
}
