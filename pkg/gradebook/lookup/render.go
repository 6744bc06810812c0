package lookup

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Render writes a view as plain text: the header fields, then one line per grade.
func Render(w io.Writer, v View) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range v.Header {
		fmt.Fprintf(tw, "%s:\t%s\n", f.Label, f.Value)
	}
	if len(v.Grades) == 0 {
		fmt.Fprintln(tw, "\nKhông có cột điểm để hiển thị.")
		return tw.Flush()
	}
	fmt.Fprintln(tw)
	for _, f := range v.Grades {
		fmt.Fprintf(tw, "%s\t%s\n", f.Label, f.Value)
	}
	return tw.Flush()
}
