package catalog

import "time"

// DefID is an internal stable identifier for catalog entries.
type DefID uint64

// Definition is a business object definition as tracked by the loader.
// It is immutable outside catalog methods.
type Definition struct {
	ID          DefID     `json:"id"`
	Namespace   string    `json:"namespace"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name,omitempty"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	AddedAt     time.Time `json:"added_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Key returns the namespace-qualified name used for lookups.
func (d Definition) Key() string {
	return key(d.Namespace, d.Name)
}

// ListFilter allows narrowing the catalog query.
type ListFilter struct {
	TagsAny    []string // include if has ANY of these tags
	TagsAll    []string // include if has ALL of these tags
	Namespaces []string
	TextSearch string // substring search over name and display name
}
