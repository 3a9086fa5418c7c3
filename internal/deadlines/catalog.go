package deadlines

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadCatalog reads a seed catalog from a YAML file:
//
//	generic:
//	  - area: Fire Protection
//	    obligation_type: Fire extinguisher inspection
//	    due_in_days: 10
//	companies:
//	  "3":
//	    - area: Training
//	      obligation_type: First aid training
//	      due_in_days: 20
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read seed catalog: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse seed catalog %s: %w", path, err)
	}
	if err := catalog.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("invalid seed catalog %s: %w", path, err)
	}
	return catalog, nil
}
