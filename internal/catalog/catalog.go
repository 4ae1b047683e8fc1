package catalog

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Catalog is a threadsafe in-memory store of business object definitions.
// A secondary tag index keeps tag queries and counts cheap.
type Catalog struct {
	mu     sync.RWMutex
	nextID DefID
	byID   map[DefID]*Definition
	byKey  map[string]DefID
	byTag  map[string]map[DefID]struct{}
	logger *slog.Logger

	// Where to snapshot. If empty, snapshotting is disabled.
	SnapshotPath string
}

// New loads the snapshot if present and returns a ready catalog.
func New(snapshotPath string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Catalog{
		nextID:       1,
		byID:         make(map[DefID]*Definition),
		byKey:        make(map[string]DefID),
		byTag:        make(map[string]map[DefID]struct{}),
		logger:       logger,
		SnapshotPath: snapshotPath,
	}
	if snapshotPath != "" {
		if err := c.loadSnapshot(snapshotPath); err != nil {
			return nil, fmt.Errorf("load catalog snapshot: %w", err)
		}
	}
	return c, nil
}

// Upsert registers def or refreshes the entry with the same namespace and name.
// Returns the ID plus a flag indicating whether it already existed.
func (c *Catalog) Upsert(def Definition) (DefID, bool, error) {
	ns, err := NormalizeName(def.Namespace)
	if err != nil {
		return 0, false, fmt.Errorf("namespace: %w", err)
	}
	name, err := NormalizeName(def.Name)
	if err != nil {
		return 0, false, fmt.Errorf("object name: %w", err)
	}
	tags := NormalizeTags(def.Tags)

	c.mu.Lock()
	if id, ok := c.byKey[key(ns, name)]; ok {
		d := c.byID[id]
		d.DisplayName = strings.TrimSpace(def.DisplayName)
		d.Description = strings.TrimSpace(def.Description)
		c.setTagsLocked(d, tags)
		d.UpdatedAt = now()
		c.mu.Unlock()

		c.maybeSave()
		return id, true, nil
	}

	id := c.nextID
	c.nextID++
	ts := now()
	d := &Definition{
		ID:          id,
		Namespace:   ns,
		Name:        name,
		DisplayName: strings.TrimSpace(def.DisplayName),
		Description: strings.TrimSpace(def.Description),
		AddedAt:     ts,
		UpdatedAt:   ts,
	}
	c.byID[id] = d
	c.byKey[d.Key()] = id
	c.setTagsLocked(d, tags)
	c.mu.Unlock()

	c.maybeSave()
	return id, false, nil
}

// SetTags replaces the tag set of an entry atomically.
func (c *Catalog) SetTags(id DefID, tags []string) error {
	c.mu.Lock()
	d := c.byID[id]
	if d == nil {
		c.mu.Unlock()
		return errNotFound(id)
	}
	c.setTagsLocked(d, NormalizeTags(tags))
	d.UpdatedAt = now()
	c.mu.Unlock()

	c.maybeSave()
	return nil
}

func (c *Catalog) setTagsLocked(d *Definition, tags []string) {
	for _, t := range d.Tags {
		delete(c.byTag[t], d.ID)
		if len(c.byTag[t]) == 0 {
			delete(c.byTag, t)
		}
	}
	set := toSet(tags)
	for t := range set {
		if _, ok := c.byTag[t]; !ok {
			c.byTag[t] = make(map[DefID]struct{})
		}
		c.byTag[t][d.ID] = struct{}{}
	}
	d.Tags = setToSlice(set)
}

// Remove deletes an entry by ID.
func (c *Catalog) Remove(id DefID) bool {
	c.mu.Lock()
	d := c.byID[id]
	if d == nil {
		c.mu.Unlock()
		return false
	}
	c.setTagsLocked(d, nil)
	delete(c.byID, id)
	delete(c.byKey, d.Key())
	c.mu.Unlock()

	c.maybeSave()
	return true
}

// Reset clears the catalog and resets the ID counter.
func (c *Catalog) Reset() {
	c.mu.Lock()
	c.nextID = 1
	c.byID = make(map[DefID]*Definition)
	c.byKey = make(map[string]DefID)
	c.byTag = make(map[string]map[DefID]struct{})
	c.mu.Unlock()

	c.maybeSave()
}

// Get returns a copy of a Definition by ID.
func (c *Catalog) Get(id DefID) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d := c.byID[id]
	if d == nil {
		return Definition{}, false
	}
	return copyDef(d), true
}

// Lookup finds an entry by namespace and name, case-insensitively.
func (c *Catalog) Lookup(namespace, name string) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.byKey[key(strings.TrimSpace(namespace), strings.TrimSpace(name))]
	if !ok {
		return Definition{}, false
	}
	return copyDef(c.byID[id]), true
}

// Len reports the number of tracked definitions.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// TagCounts returns how many definitions carry each tag.
func (c *Catalog) TagCounts() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]int, len(c.byTag))
	for t, ids := range c.byTag {
		out[t] = len(ids)
	}
	return out
}

// List returns matching definitions, sorted by ID asc.
func (c *Catalog) List(f ListFilter) []Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]DefID, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}

	if tags := NormalizeTags(f.TagsAny); len(tags) > 0 {
		tagSet := make(map[DefID]struct{})
		for _, t := range tags {
			for id := range c.byTag[t] {
				tagSet[id] = struct{}{}
			}
		}
		ids = filterIDs(ids, func(id DefID) bool {
			_, ok := tagSet[id]
			return ok
		})
	}
	if tags := NormalizeTags(f.TagsAll); len(tags) > 0 {
		ids = filterIDs(ids, func(id DefID) bool {
			have := toSet(c.byID[id].Tags)
			for _, t := range tags {
				if _, ok := have[t]; !ok {
					return false
				}
			}
			return true
		})
	}

	if len(f.Namespaces) > 0 {
		nsSet := make(map[string]struct{}, len(f.Namespaces))
		for _, ns := range f.Namespaces {
			nsSet[strings.ToUpper(strings.TrimSpace(ns))] = struct{}{}
		}
		ids = filterIDs(ids, func(id DefID) bool {
			_, ok := nsSet[strings.ToUpper(c.byID[id].Namespace)]
			return ok
		})
	}

	if s := strings.ToLower(strings.TrimSpace(f.TextSearch)); s != "" {
		ids = filterIDs(ids, func(id DefID) bool {
			d := c.byID[id]
			return strings.Contains(strings.ToLower(d.Name), s) ||
				strings.Contains(strings.ToLower(d.DisplayName), s)
		})
	}

	out := make([]Definition, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyDef(c.byID[id]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// maybeSave performs a best-effort snapshot write if a path is configured.
func (c *Catalog) maybeSave() {
	if c.SnapshotPath == "" {
		return
	}
	if err := c.saveSnapshot(c.SnapshotPath); err != nil {
		c.logger.Error("catalog snapshot failed", "path", c.SnapshotPath, "err", err)
	}
}

func copyDef(d *Definition) Definition {
	cp := *d
	cp.Tags = append([]string(nil), d.Tags...)
	return cp
}

func errNotFound(id DefID) error {
	return fmt.Errorf("definition %d not found", id)
}
