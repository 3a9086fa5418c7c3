package registry

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/rokovi/internal/constants"
	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/storage"
)

type Employees struct {
	store storage.Provider
}

// Add stores a new employee, assigning an id and creation time when unset.
func (e *Employees) Add(emp models.Employee) (models.Employee, error) {
	if err := emp.Validate(); err != nil {
		return models.Employee{}, err
	}
	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}
	if emp.CreatedAt.IsZero() {
		emp.CreatedAt = time.Now()
	}

	data, err := encode(emp)
	if err != nil {
		return models.Employee{}, err
	}
	if err := e.store.PutRecord(constants.KindEmployees, storage.Record{
		ID:        emp.ID,
		CompanyID: emp.CompanyID,
		Data:      data,
	}); err != nil {
		return models.Employee{}, err
	}
	return emp, nil
}

func (e *Employees) Get(id string) (models.Employee, error) {
	rec, err := e.store.GetRecord(constants.KindEmployees, id)
	if err != nil {
		return models.Employee{}, notFound(err)
	}
	return decode[models.Employee](constants.KindEmployees, rec)
}

func (e *Employees) ListByCompany(companyID string) ([]models.Employee, error) {
	records, err := e.store.ListRecordsByCompany(constants.KindEmployees, companyID)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Employee](constants.KindEmployees, records), nil
}

func (e *Employees) Delete(id string) error {
	return notFound(e.store.DeleteRecord(constants.KindEmployees, id))
}
