package registry

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/julianstephens/rokovi/internal/constants"
	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/storage"
)

type Injuries struct {
	mu    sync.Mutex
	store storage.Provider
}

// Save creates the injury when ID is zero and replaces it otherwise.
// previous is the stored version before this save, nil on create, so callers
// can react to field transitions.
func (i *Injuries) Save(injury models.Injury) (previous *models.Injury, saved models.Injury, err error) {
	if err := injury.Validate(); err != nil {
		return nil, models.Injury{}, err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if injury.ID == 0 {
		id, err := i.nextID()
		if err != nil {
			return nil, models.Injury{}, err
		}
		injury.ID = id
	} else {
		existing, err := i.Get(injury.ID)
		switch {
		case err == nil:
			previous = &existing
		case !errors.Is(err, ErrNotFound):
			return nil, models.Injury{}, err
		}
	}

	data, err := encode(injury)
	if err != nil {
		return nil, models.Injury{}, err
	}
	if err := i.store.PutRecord(constants.KindInjuries, storage.Record{
		ID:        strconv.Itoa(injury.ID),
		CompanyID: injury.CompanyID,
		Data:      data,
	}); err != nil {
		return nil, models.Injury{}, err
	}
	return previous, injury, nil
}

func (i *Injuries) nextID() (int, error) {
	next, err := i.store.GetCounter(constants.CounterNextInjuryID)
	if errors.Is(err, storage.ErrNotFound) {
		next, err = constants.InjuryIDStart, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read injury counter: %w", err)
	}
	if err := i.store.SetCounter(constants.CounterNextInjuryID, next+1); err != nil {
		return 0, fmt.Errorf("failed to advance injury counter: %w", err)
	}
	return next, nil
}

func (i *Injuries) Get(id int) (models.Injury, error) {
	rec, err := i.store.GetRecord(constants.KindInjuries, strconv.Itoa(id))
	if err != nil {
		return models.Injury{}, notFound(err)
	}
	return decode[models.Injury](constants.KindInjuries, rec)
}

func (i *Injuries) List() ([]models.Injury, error) {
	records, err := i.store.ListRecords(constants.KindInjuries)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Injury](constants.KindInjuries, records), nil
}

func (i *Injuries) ListByCompany(companyID string) ([]models.Injury, error) {
	records, err := i.store.ListRecordsByCompany(constants.KindInjuries, companyID)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Injury](constants.KindInjuries, records), nil
}

func (i *Injuries) Delete(id int) error {
	return notFound(i.store.DeleteRecord(constants.KindInjuries, strconv.Itoa(id)))
}
