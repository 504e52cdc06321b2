package astifilter

import (
	"fmt"
	"strings"
)

// createFilter builds the filter instance at the provided index, consulting
// the registry for the pad counts
func (gp *graphParser) createFilter(name, args string, index int) (f Filter, err error) {
	// Create filter
	f = Filter{
		Args:         args,
		Index:        index,
		InstanceName: fmt.Sprintf("Parsed_%s_%d", name, index),
		Name:         name,
	}

	// An explicit instance name is provided with "name@instance". A
	// trailing "@" is not split and fails the registry lookup instead.
	if i := strings.IndexByte(name, '@'); i >= 0 && i+1 < len(name) {
		f.InstanceName = name
		f.Name = name[:i]
	}

	// Find filter kind
	rf, ok := gp.r.Find(f.Name)
	if !ok {
		err = UnknownFilterError{Name: f.Name}
		return
	}

	// Bare scale filters inherit the graph sws flags
	if f.Name == "scale" && (f.Args == "" || !strings.Contains(f.Args, "flags")) && gp.g.ScaleSwsOpts != "" {
		if f.Args == "" {
			f.Args = gp.g.ScaleSwsOpts
		} else {
			f.Args += ":" + gp.g.ScaleSwsOpts
		}
	}

	// Instantiate the filter to get its pad counts, they can depend on the
	// args and not only on the filter kind
	if f.NbInputs, f.NbOutputs, err = rf.Instantiate(f.InstanceName, f.Args); err != nil {
		err = FilterInitError{
			Args: f.Args,
			Err:  err,
			Name: f.Name,
		}
		return
	}

	gp.l.Debugf("astifilter: created filter %s (%d:%d)", f.InstanceName, f.NbInputs, f.NbOutputs)
	return
}
