// internal/app/system/limits/limits.go
package limits

// Request body size limits. These keep small JSON endpoints from reading
// oversized bodies into memory.
const (
	// MaxHeartbeatBody is the largest heartbeat request body read.
	MaxHeartbeatBody = 1 << 10 // 1 KB
)
