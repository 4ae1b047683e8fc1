package app

import "context"

// Kind tags the operations the controller can resolve into an Action.
type Kind string

const (
	KindSummary Kind = "summary"
	KindTags    Kind = "tags"
	KindList    Kind = "list"
	KindHealth  Kind = "health"
)

// Action is a single unit of work bound to the current run. Execute is
// called once; its result must be JSON-serializable.
type Action interface {
	Kind() Kind
	Execute(ctx context.Context) (any, error)
}

// Descriptor describes an action kind for pickers and help output.
type Descriptor struct {
	Kind        Kind
	Description string
}

var descriptors = []Descriptor{
	{KindSummary, "Load the content manifest into the catalog and summarize tags"},
	{KindTags, "Replace catalog tags with the ones listed in the content manifest"},
	{KindList, "List catalog definitions matching the configured filter tags"},
	{KindHealth, "Check the content service over gRPC health"},
}

// Actions lists every supported action kind in display order.
func (a *App) Actions() []Descriptor {
	return append([]Descriptor(nil), descriptors...)
}

type boundAction struct {
	kind Kind
	run  func(ctx context.Context) (any, error)
}

func (b boundAction) Kind() Kind { return b.kind }

func (b boundAction) Execute(ctx context.Context) (any, error) {
	return b.run(ctx)
}
