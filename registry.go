package astifilter

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Registry knows which filter names exist and how many pads a given
// name + args combination exposes
type Registry interface {
	Find(name string) (RegistryFilter, bool)
}

// RegistryFilter represents one filter kind known to a registry
type RegistryFilter interface {
	// Instantiate attempts a construction with the provided args and
	// reports the pad counts of the resulting instance. Pad counts may
	// depend on the args, not only on the filter kind.
	Instantiate(instanceName, args string) (nbInputs, nbOutputs int, err error)
}

// FilterDescription describes a filter kind of a static registry
type FilterDescription struct {
	Name      string
	NbInputs  int
	NbOutputs int

	// PadCounts optionally overrides the static pad counts based on the
	// instantiation args
	PadCounts func(args string) (nbInputs, nbOutputs int, err error)
}

// StaticRegistry is an in-memory registry of filter descriptions
type StaticRegistry struct {
	fs map[string]FilterDescription
	m  *sync.Mutex
}

// NewStaticRegistry creates a new static registry loaded with common
// libav filter names
func NewStaticRegistry() (r *StaticRegistry) {
	r = &StaticRegistry{
		fs: make(map[string]FilterDescription),
		m:  &sync.Mutex{},
	}
	for _, f := range builtinFilters {
		r.Add(f)
	}
	return
}

// Add adds a filter description, replacing any previous description with
// the same name
func (r *StaticRegistry) Add(f FilterDescription) {
	r.m.Lock()
	defer r.m.Unlock()
	r.fs[f.Name] = f
}

// Find implements the Registry interface
func (r *StaticRegistry) Find(name string) (RegistryFilter, bool) {
	r.m.Lock()
	defer r.m.Unlock()
	f, ok := r.fs[name]
	if !ok {
		return nil, false
	}
	return f, true
}

// Instantiate implements the RegistryFilter interface
func (f FilterDescription) Instantiate(instanceName, args string) (nbInputs, nbOutputs int, err error) {
	// Static pad counts
	nbInputs = f.NbInputs
	nbOutputs = f.NbOutputs

	// Pad counts depend on args
	if f.PadCounts != nil {
		if nbInputs, nbOutputs, err = f.PadCounts(args); err != nil {
			err = fmt.Errorf("astifilter: getting pad counts of %s failed: %w", instanceName, err)
			return
		}
	}
	return
}

// intOption looks up an integer option in a ":"-separated args string.
// Both the "key=value" form and the positional form at index pos are
// accepted. pos < 0 disables positional lookup.
func intOption(args string, key string, pos int, def int) (int, error) {
	if args == "" {
		return def, nil
	}
	for i, t := range strings.Split(args, ":") {
		if v := strings.TrimPrefix(t, key+"="); v != t {
			return strconv.Atoi(v)
		}
		if i == pos && !strings.Contains(t, "=") {
			return strconv.Atoi(t)
		}
	}
	return def, nil
}

func dynamicOutputs(key string, def int) func(string) (int, int, error) {
	return func(args string) (nbInputs, nbOutputs int, err error) {
		nbInputs = 1
		nbOutputs, err = intOption(args, key, 0, def)
		return
	}
}

func dynamicInputs(key string, def int) func(string) (int, int, error) {
	return func(args string) (nbInputs, nbOutputs int, err error) {
		nbOutputs = 1
		nbInputs, err = intOption(args, key, 0, def)
		return
	}
}

func concatPadCounts(args string) (nbInputs, nbOutputs int, err error) {
	var n, v, a int
	if n, err = intOption(args, "n", -1, 2); err != nil {
		return
	}
	if v, err = intOption(args, "v", -1, 1); err != nil {
		return
	}
	if a, err = intOption(args, "a", -1, 0); err != nil {
		return
	}
	return n * (v + a), v + a, nil
}

// builtinFilters is a curated subset of libav filter names. Pad counts of
// filters missing here can be provided through StaticRegistry.Add.
var builtinFilters = []FilterDescription{
	// Sources and sinks
	{Name: "buffer", NbInputs: 0, NbOutputs: 1},
	{Name: "abuffer", NbInputs: 0, NbOutputs: 1},
	{Name: "buffersink", NbInputs: 1, NbOutputs: 0},
	{Name: "abuffersink", NbInputs: 1, NbOutputs: 0},
	{Name: "color", NbInputs: 0, NbOutputs: 1},
	{Name: "nullsrc", NbInputs: 0, NbOutputs: 1},
	{Name: "anullsrc", NbInputs: 0, NbOutputs: 1},
	{Name: "testsrc", NbInputs: 0, NbOutputs: 1},
	{Name: "testsrc2", NbInputs: 0, NbOutputs: 1},
	{Name: "nullsink", NbInputs: 1, NbOutputs: 0},
	{Name: "anullsink", NbInputs: 1, NbOutputs: 0},

	// Video
	{Name: "boxblur", NbInputs: 1, NbOutputs: 1},
	{Name: "crop", NbInputs: 1, NbOutputs: 1},
	{Name: "drawbox", NbInputs: 1, NbOutputs: 1},
	{Name: "drawtext", NbInputs: 1, NbOutputs: 1},
	{Name: "edgedetect", NbInputs: 1, NbOutputs: 1},
	{Name: "eq", NbInputs: 1, NbOutputs: 1},
	{Name: "fade", NbInputs: 1, NbOutputs: 1},
	{Name: "format", NbInputs: 1, NbOutputs: 1},
	{Name: "fps", NbInputs: 1, NbOutputs: 1},
	{Name: "hflip", NbInputs: 1, NbOutputs: 1},
	{Name: "negate", NbInputs: 1, NbOutputs: 1},
	{Name: "null", NbInputs: 1, NbOutputs: 1},
	{Name: "overlay", NbInputs: 2, NbOutputs: 1},
	{Name: "pad", NbInputs: 1, NbOutputs: 1},
	{Name: "rotate", NbInputs: 1, NbOutputs: 1},
	{Name: "scale", NbInputs: 1, NbOutputs: 1},
	{Name: "setdar", NbInputs: 1, NbOutputs: 1},
	{Name: "setpts", NbInputs: 1, NbOutputs: 1},
	{Name: "setsar", NbInputs: 1, NbOutputs: 1},
	{Name: "subtitles", NbInputs: 1, NbOutputs: 1},
	{Name: "transpose", NbInputs: 1, NbOutputs: 1},
	{Name: "trim", NbInputs: 1, NbOutputs: 1},
	{Name: "unsharp", NbInputs: 1, NbOutputs: 1},
	{Name: "vflip", NbInputs: 1, NbOutputs: 1},
	{Name: "yadif", NbInputs: 1, NbOutputs: 1},

	// Audio
	{Name: "aformat", NbInputs: 1, NbOutputs: 1},
	{Name: "anull", NbInputs: 1, NbOutputs: 1},
	{Name: "aresample", NbInputs: 1, NbOutputs: 1},
	{Name: "asetpts", NbInputs: 1, NbOutputs: 1},
	{Name: "atrim", NbInputs: 1, NbOutputs: 1},
	{Name: "volume", NbInputs: 1, NbOutputs: 1},

	// Pad counts depending on args
	{Name: "split", PadCounts: dynamicOutputs("outputs", 2)},
	{Name: "asplit", PadCounts: dynamicOutputs("outputs", 2)},
	{Name: "select", PadCounts: dynamicOutputs("outputs", 1)},
	{Name: "aselect", PadCounts: dynamicOutputs("outputs", 1)},
	{Name: "amerge", PadCounts: dynamicInputs("inputs", 2)},
	{Name: "amix", PadCounts: dynamicInputs("inputs", 2)},
	{Name: "hstack", PadCounts: dynamicInputs("inputs", 2)},
	{Name: "vstack", PadCounts: dynamicInputs("inputs", 2)},
	{Name: "interleave", PadCounts: dynamicInputs("nb_inputs", 2)},
	{Name: "concat", PadCounts: concatPadCounts},
}
