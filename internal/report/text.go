package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// errWriter keeps the first write error and turns later writes into no-ops.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// WriteText prints r as one aligned table per group.
func WriteText(w io.Writer, r *Report) error {
	ew := &errWriter{w: w}
	ew.printf("run %s\ninput %s\n", r.RunID, r.Input)
	for _, p := range r.Panels {
		ew.printf("\n%s (fixed %s, swept %s, %s, threshold %s)\n",
			p.Title, p.Fixed, p.Swept, p.Mode, p.Threshold)
		if len(p.Groups) == 0 {
			ew.printf("no qualifying groups\n")
			continue
		}
		for _, g := range p.Groups {
			ew.printf("\n%s %s, reference %s\n", p.Fixed, g.Key, g.Reference)
			if ew.err != nil {
				return ew.err
			}
			if err := writeGroup(w, string(p.Swept), g); err != nil {
				return err
			}
		}
	}
	return ew.err
}

func writeGroup(w io.Writer, swept string, g GroupReport) error {
	series := append(append([]SeriesReport{}, g.Raw...), g.Diffs...)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	ew := &errWriter{w: tw}
	header := []string{swept}
	for _, s := range series {
		header = append(header, string(s.Column))
	}
	ew.printf("%s\n", strings.Join(header, "\t"))
	for i, x := range g.Swept {
		cells := []string{x.String()}
		for _, s := range series {
			cells = append(cells, s.Values[i].String())
		}
		ew.printf("%s\n", strings.Join(cells, "\t"))
	}
	if ew.err != nil {
		return ew.err
	}
	return tw.Flush()
}
