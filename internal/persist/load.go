package persist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// LoadJSON decodes the record under key into v. Missing, unreadable and
// malformed records all report false, and callers fall back to defaults.
// Only the latter two are logged. The raw bytes are returned for Writer.Prime.
func LoadJSON(ctx context.Context, store Store, key string, v any, logger *slog.Logger) ([]byte, bool) {
	data, err := store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("failed to load state", "key", key, "error", err)
		}
		return nil, false
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn("ignoring malformed state", "key", key, "error", err)
		return nil, false
	}
	return data, true
}
