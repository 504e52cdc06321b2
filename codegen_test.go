package astifilter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateC(t *testing.T) {
	g, err := Parse("sws_flags=+accurate_rnd;[0:v]scale=640:480[a];[a][1:v]overlay=0:0[out]")
	require.NoError(t, err)

	c := GenerateC(g)

	// Graph sws flags
	assert.Contains(t, c, `av_strlcpy(graph->scale_sws_opts, "flags=+accurate_rnd", 20);`)

	// Filters
	assert.Contains(t, c, `AVFilterContext* filter_scale_0 = avfilter_graph_alloc_filter(ctx, avfilter_get_by_name("scale"), "Parsed_scale_0");`)
	assert.Contains(t, c, `avfilter_init_str(filter_scale_0, "640:480:flags=+accurate_rnd");`)
	assert.Contains(t, c, `avfilter_get_by_name("overlay")`)

	// Links
	assert.Contains(t, c, `avfilter_link(filter_scale_0, 0, filter_overlay_1, 0)`)

	// Open inputs and outputs
	assert.Contains(t, c, "AVFilterInOut *input_0;")
	assert.Contains(t, c, "AVFilterInOut *input_1;")
	assert.Contains(t, c, "input_0->filt_ctx = filter_scale_0;")
	assert.Contains(t, c, "input_1->pad_idx = 1;")
	assert.Contains(t, c, "*inputs = input_0;")
	assert.Contains(t, c, "input_0->next = input_1;")
	assert.Contains(t, c, "AVFilterInOut *output_0;")
	assert.Contains(t, c, "*outputs = output_0;")
}

func TestGenerateCEmptyPools(t *testing.T) {
	// Fully linked graph, no open pads besides the terminal output
	g, err := Parse("nullsrc[a];[a]nullsink")
	require.NoError(t, err)

	c := GenerateC(g)
	assert.NotContains(t, c, "*inputs =")
	assert.NotContains(t, c, "*outputs =")
	assert.Equal(t, 1, strings.Count(c, "avfilter_link"))
}
