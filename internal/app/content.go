package app

import (
	"context"
	"errors"

	"herdcl/internal/catalog"
	"herdcl/internal/config"
	"herdcl/internal/content"
)

// SummaryResult is returned by the summary action.
type SummaryResult struct {
	Namespace string         `json:"namespace"`
	Objects   int            `json:"objects"`
	Added     int            `json:"added"`
	Updated   int            `json:"updated"`
	Tags      map[string]int `json:"tags"`
}

// TagsResult is returned by the tags action.
type TagsResult struct {
	Namespace string   `json:"namespace"`
	Tagged    int      `json:"tagged"`
	Untagged  int      `json:"untagged"`
	Missing   []string `json:"missing,omitempty"`
	Note      string   `json:"note,omitempty"`
}

// ListResult is returned by the list action.
type ListResult struct {
	FilterTags  []string             `json:"filter_tags,omitempty"`
	Count       int                  `json:"count"`
	Definitions []catalog.Definition `json:"definitions"`
	Note        string               `json:"note,omitempty"`
}

const notPersistedNote = "catalog_path is not set; the catalog only lives for this run"

func persistenceNote(cfg config.Config) string {
	if cfg.CatalogPath == "" {
		return notPersistedNote
	}
	return ""
}

func (a *App) summary(ctx context.Context, cfg config.Config) (SummaryResult, error) {
	var result SummaryResult
	manifest, err := content.Load(cfg.ContentPath)
	if err != nil {
		return result, err
	}
	cat := a.Catalog()
	if cat == nil {
		return result, errNotLoaded
	}

	result.Namespace = manifest.Namespace
	for _, def := range manifest.Definitions() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		_, existed, err := cat.Upsert(def)
		if err != nil {
			return result, err
		}
		if existed {
			result.Updated++
		} else {
			result.Added++
		}
		result.Objects++
	}
	result.Tags = cat.TagCounts()
	a.logger.Debug("content summarized", "namespace", result.Namespace, "added", result.Added, "updated", result.Updated)
	return result, nil
}

// retag applies the manifest tags to definitions already in the catalog.
// Objects the catalog does not know about are reported as missing.
func (a *App) retag(ctx context.Context, cfg config.Config) (TagsResult, error) {
	var result TagsResult
	manifest, err := content.Load(cfg.ContentPath)
	if err != nil {
		return result, err
	}
	cat := a.Catalog()
	if cat == nil {
		return result, errNotLoaded
	}

	result.Namespace = manifest.Namespace
	result.Note = persistenceNote(cfg)
	for _, obj := range manifest.Objects {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		def, ok := cat.Lookup(manifest.Namespace, obj.Name)
		if !ok {
			result.Missing = append(result.Missing, obj.Name)
			continue
		}
		if err := cat.SetTags(def.ID, obj.Tags); err != nil {
			return result, err
		}
		if len(obj.Tags) == 0 {
			result.Untagged++
		} else {
			result.Tagged++
		}
	}
	if result.Tagged == 0 && result.Untagged == 0 && len(result.Missing) > 0 {
		if result.Note != "" {
			return result, errors.New("none of the manifest objects are in the catalog; run the summary action first (" + result.Note + ")")
		}
		return result, errors.New("none of the manifest objects are in the catalog; run the summary action first")
	}
	return result, nil
}

func (a *App) list(ctx context.Context, cfg config.Config) (ListResult, error) {
	if err := ctx.Err(); err != nil {
		return ListResult{}, err
	}
	cat := a.Catalog()
	if cat == nil {
		return ListResult{}, errNotLoaded
	}
	defs := cat.List(catalog.ListFilter{TagsAny: cfg.FilterTags})
	return ListResult{
		FilterTags:  append([]string(nil), cfg.FilterTags...),
		Count:       len(defs),
		Definitions: defs,
		Note:        persistenceNote(cfg),
	}, nil
}
