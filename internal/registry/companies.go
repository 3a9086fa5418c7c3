package registry

import (
	"fmt"
	"strings"

	"github.com/julianstephens/rokovi/internal/constants"
	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/storage"
)

type Companies struct {
	store storage.Provider
}

func (c *Companies) Add(company models.Company) error {
	company.ID = strings.TrimSpace(company.ID)
	if err := company.Validate(); err != nil {
		return err
	}
	if _, err := c.store.GetRecord(constants.KindCompanies, company.ID); err == nil {
		return fmt.Errorf("company %s: %w", company.ID, ErrExists)
	}

	data, err := encode(company)
	if err != nil {
		return err
	}
	return c.store.PutRecord(constants.KindCompanies, storage.Record{
		ID:        company.ID,
		CompanyID: company.ID,
		Data:      data,
	})
}

func (c *Companies) Get(id string) (models.Company, error) {
	rec, err := c.store.GetRecord(constants.KindCompanies, id)
	if err != nil {
		return models.Company{}, notFound(err)
	}
	return decode[models.Company](constants.KindCompanies, rec)
}

// List returns companies in the order they were added.
func (c *Companies) List() ([]models.Company, error) {
	records, err := c.store.ListRecords(constants.KindCompanies)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Company](constants.KindCompanies, records), nil
}

func (c *Companies) Delete(id string) error {
	return notFound(c.store.DeleteRecord(constants.KindCompanies, id))
}
