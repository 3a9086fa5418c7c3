package deadlines

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/rokovi/internal/constants"
	"github.com/julianstephens/rokovi/internal/logger"
	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/storage"
)

// maxIDAttempts bounds the search for a free deadline id.
const maxIDAttempts = 100

func injuryNote(employeeName string) string {
	return fmt.Sprintf("Notify the labour inspectorate of the injury to %s within 24 hours", employeeName)
}

func completionMarker(at time.Time) string {
	return fmt.Sprintf(" [%s %s]", constants.CompletedLabel, at.Format(constants.DateTimeFormat))
}

// CreateInjuryDeadline records a pending notification deadline due exactly
// 24 hours after the injury. The deadline is returned even when persisting
// it failed; in advisory mode that failure is only logged. When no id can be
// allocated nothing is written and the zero Deadline is returned.
func (e *Engine) CreateInjuryDeadline(injuryID int, injuryDate time.Time, employeeName string, company models.Company) (models.Deadline, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.createInjuryDeadline(injuryID, injuryDate, employeeName, company)
}

func (e *Engine) createInjuryDeadline(injuryID int, injuryDate time.Time, employeeName string, company models.Company) (models.Deadline, error) {
	id, err := e.allocateID()
	if err != nil {
		if ferr := e.persistFailure("allocate id", err, "key", constants.CounterNextDeadlineID, "deadline_id", id); ferr != nil || id == 0 {
			return models.Deadline{}, ferr
		}
	}

	injury := injuryID
	d := models.Deadline{
		ID:             id,
		Area:           constants.AreaOccupationalSafety,
		ObligationType: constants.ObligationInjuryNotification,
		DueDate:        injuryDate.Add(constants.InjuryNotificationWindow),
		Note:           injuryNote(employeeName),
		CompanyID:      company.ID,
		CompanyName:    company.Name,
		InjuryID:       &injury,
	}

	rec, err := encodeDeadline(d)
	if err == nil {
		err = e.store.PutRecord(constants.KindDynamicDeadlines, rec)
	}
	if err != nil {
		return d, e.persistFailure("create deadline", err, "injury_id", injuryID, "deadline_id", id)
	}

	logger.Info("Created injury notification deadline", "injury_id", injuryID, "deadline_id", id, "due", d.DueDate.Format(constants.DateTimeFormat))
	return d, nil
}

// allocateID returns the next id that no stored deadline holds. A non-zero
// id with an error means the counter could not be saved.
func (e *Engine) allocateID() (int, error) {
	var saveErr error
	for range maxIDAttempts {
		id, err := e.ids.Next()
		if id == 0 {
			return 0, err
		}
		if err != nil {
			saveErr = err
		}

		_, err = e.store.GetRecord(constants.KindDynamicDeadlines, strconv.Itoa(id))
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return id, saveErr
		case err != nil:
			return 0, err
		}
		logger.Warn("Deadline id already in use, skipping", "deadline_id", id)
	}
	return 0, fmt.Errorf("no free deadline id after %d attempts", maxIDAttempts)
}

// CompleteInjuryDeadline marks the pending deadline of injuryID as completed.
// Having no pending deadline for the injury is not an error.
func (e *Engine) CompleteInjuryDeadline(injuryID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	dynamic, err := e.DynamicDeadlines()
	if err != nil {
		return err
	}

	for _, d := range dynamic {
		if !d.ForInjury(injuryID) || d.IsCompleted {
			continue
		}

		now := e.Today()
		d.IsCompleted = true
		d.CompletedAt = &now
		d.Note += completionMarker(now)

		rec, err := encodeDeadline(d)
		if err == nil {
			err = e.store.PutRecord(constants.KindDynamicDeadlines, rec)
		}
		if err != nil {
			return e.persistFailure("complete deadline", err, "injury_id", injuryID, "deadline_id", d.ID)
		}

		logger.Info("Completed injury notification deadline", "injury_id", injuryID, "deadline_id", d.ID)
		return nil
	}

	logger.Debug("No pending deadline to complete", "injury_id", injuryID)
	return nil
}

// OnInjurySaved reacts to an injury being stored. previous is the version
// before the save, nil for a new injury. A pending deadline is created when
// the injury still awaits notification and has none yet; it is completed
// when the notification date goes from unset to set.
func (e *Engine) OnInjurySaved(previous *models.Injury, saved models.Injury) error {
	if previous != nil && previous.InspectionNotificationDate == nil && saved.InspectionNotificationDate != nil {
		return e.CompleteInjuryDeadline(saved.ID)
	}

	if !saved.AwaitingNotification() {
		return nil
	}

	company, err := e.companies.Get(saved.CompanyID)
	if err != nil {
		logger.Warn("No company context for injury, skipping deadline", "injury_id", saved.ID, "company_id", saved.CompanyID, "error", err)
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	exists, err := e.hasDeadlineFor(saved.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = e.createInjuryDeadline(saved.ID, saved.InjuryDate, saved.EmployeeName, company)
	return err
}

func (e *Engine) hasDeadlineFor(injuryID int) (bool, error) {
	dynamic, err := e.DynamicDeadlines()
	if err != nil {
		return false, err
	}
	for _, d := range dynamic {
		if d.ForInjury(injuryID) {
			return true, nil
		}
	}
	return false, nil
}

// InjuryDeadline returns the deadline spawned by injuryID, if any.
func (e *Engine) InjuryDeadline(injuryID int) (models.Deadline, error) {
	dynamic, err := e.DynamicDeadlines()
	if err != nil {
		return models.Deadline{}, err
	}
	for _, d := range dynamic {
		if d.ForInjury(injuryID) {
			return d, nil
		}
	}
	return models.Deadline{}, fmt.Errorf("injury %d: %w", injuryID, ErrDeadlineNotFound)
}
