package yaml

import (
	"fmt"
	"os"

	"github.com/Victor-armando18/storefront-engine/internal/catalog"

	"gopkg.in/yaml.v3"
)

// LoadCategoryTable reads a category rule table from disk. An empty path selects the
// table embedded in the binary.
func LoadCategoryTable(path string) (*catalog.Table, error) {
	if path == "" {
		return catalog.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category rules %s: %w", path, err)
	}

	var def catalog.TableDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to unmarshal category rules %s: %w", path, err)
	}
	return catalog.NewTable(def)
}
