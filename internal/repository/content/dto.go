package content

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mythopedia-cloud/mythopedia/internal/domain"
)

// decodeRecord parses a JSON.GET payload into a domain ContentRecord.
// JSONPath queries ($) wrap the document in a one-element array.
func decodeRecord(blob []byte) (domain.ContentRecord, error) {
	trimmed := bytes.TrimSpace(blob)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var wrapped []domain.ContentRecord
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return domain.ContentRecord{}, fmt.Errorf("unmarshal content: %w", err)
		}
		if len(wrapped) == 0 {
			return domain.ContentRecord{}, domain.ErrRecordNotFound
		}
		return wrapped[0], nil
	}

	var rec domain.ContentRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return domain.ContentRecord{}, fmt.Errorf("unmarshal content: %w", err)
	}
	return rec, nil
}

func encodeRecord(rec domain.ContentRecord) ([]byte, error) {
	blob, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal content %s: %w", rec.ID, err)
	}
	return blob, nil
}
