package workitem

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zhubert/loom/internal/errors"
	"github.com/zhubert/loom/internal/logger"
)

// fixture is the on-disk layout of a work item file.
type fixture struct {
	Items []Item `yaml:"items"`
}

// Parse decodes a YAML fixture into items.
func Parse(data []byte) ([]Item, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.E(errors.Op("workitem.Parse"), errors.KindInvalid, err)
	}
	return f.Items, nil
}

// LoadFile reads a YAML fixture and builds a MemorySource from it.
func LoadFile(path string) (*MemorySource, error) {
	items, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return NewMemorySource(items)
}

// Reload re-reads path into s. On error s is unchanged.
func (s *MemorySource) Reload(path string) error {
	items, err := readFile(path)
	if err != nil {
		return err
	}
	if err := s.Replace(items); err != nil {
		return err
	}
	logger.WithComponent("workitem").Debug("reloaded work items", "path", path, "count", len(items))
	return nil
}

func readFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.E(errors.Op("workitem.LoadFile"), errors.KindIO, fmt.Sprintf("reading %s", path), err)
	}
	return Parse(data)
}

// Save writes items to path as a YAML fixture.
func Save(path string, items []Item) error {
	data, err := yaml.Marshal(fixture{Items: items})
	if err != nil {
		return errors.E(errors.Op("workitem.Save"), errors.KindInvalid, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.E(errors.Op("workitem.Save"), errors.KindIO, fmt.Sprintf("writing %s", path), err)
	}
	return nil
}
