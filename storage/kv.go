//go:generate go run go.uber.org/mock/mockgen -source=kv.go -destination=../mocks/mock_kv.go -package=mocks
package storage

// KV is the durable key-value layer the entity store writes through.
// Values are opaque to this layer; the store keeps them UTF-8 JSON.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
