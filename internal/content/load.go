package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for content files that are neither
// TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported content file format")

// file is the on-disk layout shared by both formats.
type file struct {
	Records []Record `toml:"records" yaml:"records"`
}

// LoadFile reads records from a .toml, .yaml or .yml file. Records without
// an ID get a fresh ULID so the id key policy always has a unique value.
func LoadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content file: %w", err)
	}

	var f file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return fillIDs(f.Records), nil
}

func fillIDs(records []Record) []Record {
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = ulid.Make().String()
		}
	}
	return records
}
