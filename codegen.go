package astifilter

import (
	"fmt"
	"strings"
)

// GenerateC renders C source reconstructing the graph with libav calls:
// one avfilter_graph_alloc_filter block per filter, one avfilter_link block
// per link and one chained AVFilterInOut per open input/output.
func GenerateC(g *Graph) string {
	var b strings.Builder

	// Graph sws flags
	if g.ScaleSwsOpts != "" {
		size := len(g.ScaleSwsOpts) + 1
		fmt.Fprintf(&b, `
av_freep(&graph->scale_sws_opts);
if (!(graph->scale_sws_opts = av_mallocz(%d)))
    return AVERROR(ENOMEM);
av_strlcpy(graph->scale_sws_opts, "%s", %d);
`, size, g.ScaleSwsOpts, size)
	}

	// Code names
	filterNames := make([]string, len(g.Filters))
	for i, f := range g.Filters {
		filterNames[i] = fmt.Sprintf("filter_%s_%d", f.Name, i)
	}

	// Filters
	for i, f := range g.Filters {
		fmt.Fprintf(&b, `
AVFilterContext* %s = avfilter_graph_alloc_filter(ctx, avfilter_get_by_name("%s"), "%s");
if (!%s) {
    av_log(log_ctx, AV_LOG_ERROR,
        "Error creating filter '%s'\n");
    return AVERROR(ENOMEM);
}
avfilter_init_str(%s, "%s");
`, filterNames[i], f.Name, f.InstanceName, filterNames[i], f.Name, filterNames[i], f.Args)
	}

	// Links
	for _, l := range g.Links {
		from, to := filterNames[l.FromFilter], filterNames[l.ToFilter]
		fmt.Fprintf(&b, `
if ((ret = avfilter_link(%s, %d, %s, %d))) {
    av_log(log_ctx, AV_LOG_ERROR,
            "Cannot create the link %s:%d -> %s:%d\n");
    return ret;
}
`, from, l.FromPad, to, l.ToPad, from, l.FromPad, to, l.ToPad)
	}

	// Open inputs and outputs
	inout := func(prefix string, is []InOut) (names []string) {
		for i, in := range is {
			name := fmt.Sprintf("%s_%d", prefix, i)
			fmt.Fprintf(&b, `
AVFilterInOut *%s;
if (!(%s = av_mallocz(sizeof(AVFilterInOut)))) {
    av_free(name);
    return AVERROR(ENOMEM);
}
%s->pad_idx = %d;
%s->filt_ctx = %s;
`, name, name, name, in.Pad, name, filterNames[in.Filter])
			names = append(names, name)
		}
		return
	}
	inputNames := inout("input", g.Inputs)
	outputNames := inout("output", g.Outputs)

	// Chain inputs and outputs
	if len(inputNames) > 0 {
		fmt.Fprintf(&b, "\n*inputs = %s;\n", inputNames[0])
	}
	if len(outputNames) > 0 {
		fmt.Fprintf(&b, "\n*outputs = %s;\n", outputNames[0])
	}
	for i := 1; i < len(inputNames); i++ {
		fmt.Fprintf(&b, "\n%s->next = %s;\n", inputNames[i-1], inputNames[i])
	}
	for i := 1; i < len(outputNames); i++ {
		fmt.Fprintf(&b, "\n%s->next = %s;\n", outputNames[i-1], outputNames[i])
	}
	return b.String()
}
