// Package registry provides typed repositories for companies, employees and
// injuries on top of a storage.Provider.
package registry

import (
	"errors"

	"github.com/julianstephens/rokovi/internal/storage"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

type Registry struct {
	Companies *Companies
	Employees *Employees
	Injuries  *Injuries
}

func New(store storage.Provider) *Registry {
	return &Registry{
		Companies: &Companies{store: store},
		Employees: &Employees{store: store},
		Injuries:  &Injuries{store: store},
	}
}

// notFound maps the storage sentinel to the registry one.
func notFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
