package astifilter

// NoFilter is the owner of a pad reference that is not bound to any filter
// of the graph, meaning the caller has to feed it itself
const NoFilter = -1

// Graph represents a parsed filter graph description
type Graph struct {
	// Filters are indexed by their order of appearance in the description
	Filters []Filter

	// Inputs are the pad references the graph requires but never supplies
	Inputs []InOut

	// Links are the edges created between filter pads
	Links []Link

	// Outputs are the pad references the graph produces but never consumes
	Outputs []InOut

	// ScaleSwsOpts is the raw text of the optional leading "sws_flags="
	// directive, "flags=" prefix included
	ScaleSwsOpts string
}

// Filter represents one filter instance of the graph
type Filter struct {
	// Args is the raw argument text, possibly extended with the graph's
	// inherited sws flags
	Args string

	// Index is the 0-based creation order of the filter and its canonical
	// node id in Links, Inputs and Outputs
	Index int

	// InstanceName defaults to Parsed_<name>_<index> unless the
	// description provides an explicit "name@instance"
	InstanceName string

	// Name is the keyword identifying the filter kind (e.g. "scale")
	Name string

	// NbInputs and NbOutputs are reported by the registry once the filter
	// is instantiated, they can't be derived from the name alone
	NbInputs  int
	NbOutputs int
}

// Link represents a directed edge between 2 filter pads
type Link struct {
	FromFilter int
	FromPad    int
	ToFilter   int
	ToPad      int
}

// InOut represents a reference to one filter pad
type InOut struct {
	// Filter is the index of the owning filter, or NoFilter when the pad
	// is not bound to any filter of the graph
	Filter int

	// Name is the link label, empty for anonymous pads
	Name string

	// Pad is the pad index local to the owning filter
	Pad int
}
