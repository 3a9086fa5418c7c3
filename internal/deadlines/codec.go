package deadlines

import (
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/julianstephens/rokovi/internal/constants"
	apperrors "github.com/julianstephens/rokovi/internal/errors"
	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/storage"
)

// deadlineRecord is the persisted shape of a dynamic deadline. Dates are
// ISO-8601 strings; status is intentionally absent.
type deadlineRecord struct {
	ID             int    `json:"id"`
	Area           string `json:"area"`
	ObligationType string `json:"obligationType"`
	DueDate        string `json:"dueDate"`
	Note           string `json:"note"`
	CompanyID      string `json:"companyId"`
	CompanyName    string `json:"companyName"`
	InjuryID       *int   `json:"injuryId,omitempty"`
	IsCompleted    bool   `json:"isCompleted"`
	CompletedAt    string `json:"completedAt,omitempty"`
}

func encodeDeadline(d models.Deadline) (storage.Record, error) {
	wire := deadlineRecord{
		ID:             d.ID,
		Area:           d.Area,
		ObligationType: d.ObligationType,
		DueDate:        d.DueDate.Format(time.RFC3339),
		Note:           d.Note,
		CompanyID:      d.CompanyID,
		CompanyName:    d.CompanyName,
		InjuryID:       d.InjuryID,
		IsCompleted:    d.IsCompleted,
	}
	if d.CompletedAt != nil {
		wire.CompletedAt = d.CompletedAt.Format(time.RFC3339)
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return storage.Record{}, err
	}
	return storage.Record{
		ID:        strconv.Itoa(d.ID),
		CompanyID: d.CompanyID,
		Data:      data,
	}, nil
}

func decodeDeadline(rec storage.Record) (models.Deadline, error) {
	var wire deadlineRecord
	if err := json.Unmarshal(rec.Data, &wire); err != nil {
		return models.Deadline{}, apperrors.Malformed(constants.KindDynamicDeadlines, rec.ID, err)
	}

	due, err := time.Parse(time.RFC3339, wire.DueDate)
	if err != nil {
		return models.Deadline{}, apperrors.Malformed(constants.KindDynamicDeadlines, rec.ID, err)
	}

	d := models.Deadline{
		ID:             wire.ID,
		Area:           wire.Area,
		ObligationType: wire.ObligationType,
		DueDate:        due,
		Note:           wire.Note,
		CompanyID:      wire.CompanyID,
		CompanyName:    wire.CompanyName,
		InjuryID:       wire.InjuryID,
		IsCompleted:    wire.IsCompleted,
	}
	if wire.CompletedAt != "" {
		at, err := time.Parse(time.RFC3339, wire.CompletedAt)
		if err != nil {
			return models.Deadline{}, apperrors.Malformed(constants.KindDynamicDeadlines, rec.ID, err)
		}
		d.CompletedAt = &at
	}
	return d, nil
}
