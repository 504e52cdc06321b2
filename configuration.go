package astifilter

// Configuration represents a parse service configuration
type Configuration struct {
	Registry ConfigurationRegistry `toml:"registry"`
	Server   ConfigurationServer   `toml:"server"`
}

// ConfigurationRegistry represents a registry configuration
type ConfigurationRegistry struct {
	Filters []ConfigurationFilter `toml:"filters"`
}

// ConfigurationFilter represents a custom filter description
type ConfigurationFilter struct {
	Name      string `toml:"name"`
	NbInputs  int    `toml:"nb_inputs"`
	NbOutputs int    `toml:"nb_outputs"`
}

// ConfigurationServer represents a server configuration
type ConfigurationServer struct {
	Addr string `toml:"addr"`
}

// StaticRegistry builds a static registry extended with the configured
// filter descriptions
func (c ConfigurationRegistry) StaticRegistry() (r *StaticRegistry) {
	r = NewStaticRegistry()
	for _, f := range c.Filters {
		r.Add(FilterDescription{
			Name:      f.Name,
			NbInputs:  f.NbInputs,
			NbOutputs: f.NbOutputs,
		})
	}
	return
}
