package registry

import (
	"github.com/goccy/go-json"

	apperrors "github.com/julianstephens/rokovi/internal/errors"
	"github.com/julianstephens/rokovi/internal/logger"
	"github.com/julianstephens/rokovi/internal/storage"
)

func encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func decode[T any](kind string, rec storage.Record) (T, error) {
	var v T
	if err := json.Unmarshal(rec.Data, &v); err != nil {
		return v, apperrors.Malformed(kind, rec.ID, err)
	}
	return v, nil
}

// decodeAll skips records that fail to decode so one corrupt row does not
// hide the rest of the collection.
func decodeAll[T any](kind string, records []storage.Record) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		v, err := decode[T](kind, rec)
		if err != nil {
			logger.Warn("Skipping malformed record", "kind", kind, "id", rec.ID, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}
