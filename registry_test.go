package astifilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instantiate(t *testing.T, r Registry, name, args string) (int, int) {
	f, ok := r.Find(name)
	require.True(t, ok, name)
	nbInputs, nbOutputs, err := f.Instantiate("test", args)
	require.NoError(t, err, name)
	return nbInputs, nbOutputs
}

func TestStaticRegistryFind(t *testing.T) {
	r := NewStaticRegistry()
	_, ok := r.Find("scale")
	assert.True(t, ok)
	_, ok = r.Find("Scale")
	assert.False(t, ok)
	_, ok = r.Find("movie")
	assert.False(t, ok)
}

func TestStaticRegistryPadCounts(t *testing.T) {
	r := NewStaticRegistry()

	for _, v := range []struct {
		args      string
		name      string
		nbInputs  int
		nbOutputs int
	}{
		{name: "scale", args: "640:480", nbInputs: 1, nbOutputs: 1},
		{name: "overlay", args: "5:5", nbInputs: 2, nbOutputs: 1},
		{name: "nullsrc", nbInputs: 0, nbOutputs: 1},
		{name: "nullsink", nbInputs: 1, nbOutputs: 0},
		{name: "split", nbInputs: 1, nbOutputs: 2},
		{name: "split", args: "3", nbInputs: 1, nbOutputs: 3},
		{name: "split", args: "outputs=4", nbInputs: 1, nbOutputs: 4},
		{name: "asplit", args: "outputs=3", nbInputs: 1, nbOutputs: 3},
		{name: "hstack", args: "inputs=3", nbInputs: 3, nbOutputs: 1},
		{name: "vstack", nbInputs: 2, nbOutputs: 1},
		{name: "amerge", args: "inputs=4", nbInputs: 4, nbOutputs: 1},
		{name: "concat", nbInputs: 2, nbOutputs: 1},
		{name: "concat", args: "n=3:v=1:a=1", nbInputs: 6, nbOutputs: 2},
	} {
		nbInputs, nbOutputs := instantiate(t, r, v.name, v.args)
		assert.Equal(t, v.nbInputs, nbInputs, "%s=%s", v.name, v.args)
		assert.Equal(t, v.nbOutputs, nbOutputs, "%s=%s", v.name, v.args)
	}
}

func TestStaticRegistryInvalidArgs(t *testing.T) {
	r := NewStaticRegistry()
	f, ok := r.Find("split")
	require.True(t, ok)
	_, _, err := f.Instantiate("test", "outputs=x")
	assert.Error(t, err)
}

func TestStaticRegistryAdd(t *testing.T) {
	r := NewStaticRegistry()
	r.Add(FilterDescription{Name: "customsink", NbInputs: 3, NbOutputs: 0})
	nbInputs, nbOutputs := instantiate(t, r, "customsink", "")
	assert.Equal(t, 3, nbInputs)
	assert.Equal(t, 0, nbOutputs)

	// Parse with the extended registry
	p := NewParser(ParserOptions{Registry: r})
	g, err := p.Parse("[a][b][c]customsink")
	require.NoError(t, err)
	assert.Len(t, g.Inputs, 3)
	assert.Empty(t, g.Outputs)
}

func TestConfigurationRegistry(t *testing.T) {
	c := ConfigurationRegistry{
		Filters: []ConfigurationFilter{
			{Name: "myfilter", NbInputs: 1, NbOutputs: 2},
		},
	}
	r := c.StaticRegistry()
	nbInputs, nbOutputs := instantiate(t, r, "myfilter", "")
	assert.Equal(t, 1, nbInputs)
	assert.Equal(t, 2, nbOutputs)

	// Builtins are kept
	_, ok := r.Find("scale")
	assert.True(t, ok)
}
