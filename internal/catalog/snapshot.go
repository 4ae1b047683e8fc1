package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Snapshot schema versioning for forward-compatibility.
const snapshotVersion = 1

type snapshot struct {
	Version     int          `json:"version"`
	NextID      uint64       `json:"next_id"`
	Definitions []Definition `json:"definitions"`
	Created     int64        `json:"created_unix"`
}

func (c *Catalog) loadSnapshot(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var s snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s.Version > snapshotVersion {
		return fmt.Errorf("snapshot version %d is newer than supported version %d", s.Version, snapshotVersion)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID = DefID(s.NextID)
	if c.nextID == 0 {
		c.nextID = 1
	}
	c.byID = make(map[DefID]*Definition)
	c.byKey = make(map[string]DefID)
	c.byTag = make(map[string]map[DefID]struct{})

	for i := range s.Definitions {
		d := s.Definitions[i]
		tags := d.Tags
		d.Tags = nil
		c.byID[d.ID] = &d
		c.byKey[d.Key()] = d.ID
		c.setTagsLocked(&d, tags)
		if d.ID >= c.nextID {
			c.nextID = d.ID + 1
		}
	}
	return nil
}

func (c *Catalog) saveSnapshot(path string) error {
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	c.mu.RLock()
	s := snapshot{
		Version: snapshotVersion,
		NextID:  uint64(c.nextID),
		Created: now().Unix(),
	}
	s.Definitions = make([]Definition, 0, len(c.byID))
	for _, d := range c.byID {
		s.Definitions = append(s.Definitions, copyDef(d))
	}
	c.mu.RUnlock()

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
