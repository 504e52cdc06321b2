package astifilter

// takeInOut removes and returns the first pad reference carrying the
// provided label. Labels are matched byte-exact and are assumed unique
// within a pool at any time, insertion order is preserved.
func takeInOut(is *[]InOut, name string) *InOut {
	for i, v := range *is {
		if v.Name == name {
			*is = append((*is)[:i], (*is)[i+1:]...)
			return &v
		}
	}
	return nil
}

// takeOpenOutput claims the open output carrying the provided label, if an
// earlier chain produced one
func (gp *graphParser) takeOpenOutput(name string) *InOut {
	return takeInOut(&gp.openOutputs, name)
}

// takeOpenInput claims the open input carrying the provided label, if an
// earlier chain required one
func (gp *graphParser) takeOpenInput(name string) *InOut {
	return takeInOut(&gp.openInputs, name)
}
