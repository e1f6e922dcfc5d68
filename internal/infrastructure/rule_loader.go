package infrastructure

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Victor-armando18/storefront-engine/internal/domain"
	"github.com/Victor-armando18/storefront-engine/internal/interfaces"
)

//go:embed rules/*.json
var embeddedRules embed.FS

// FileRuleLoader reads <version>_checkout_guards.json from BaseDir, or from the packs
// embedded in the binary when BaseDir is empty.
type FileRuleLoader struct {
	BaseDir string
}

func NewFileRuleLoader(baseDir string) interfaces.GuardRulePackLoader {
	return &FileRuleLoader{BaseDir: baseDir}
}

func (l *FileRuleLoader) Load(ctx context.Context, version string) (*domain.RulePackDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	version = NormalizeVersion(version)
	filename := fmt.Sprintf("%s_checkout_guards.json", version)

	var (
		data []byte
		src  string
		err  error
	)
	if l.BaseDir == "" {
		src = path.Join("rules", filename)
		data, err = embeddedRules.ReadFile(src)
	} else {
		src = filepath.Join(l.BaseDir, filename)
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", src, err)
	}

	var def domain.RulePackDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rule definition %s: %w", src, err)
	}
	if def.Version == "" {
		def.Version = version
	}
	return &def, nil
}

// NormalizeVersion turns "1" and "V1" into "v1".
func NormalizeVersion(version string) string {
	version = strings.ToLower(strings.TrimSpace(version))
	if version == "" {
		return "v1"
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return version
}
