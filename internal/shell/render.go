package shell

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/screens"
)

// Render writes v as plain text: title, form fields, table, summary lines
// and message, each only when present.
func Render(w io.Writer, v *screens.View) {
	if v == nil {
		return
	}

	if v.Title != "" {
		fmt.Fprintf(w, "\n%s\n%s\n", v.Title, strings.Repeat("=", len(v.Title)))
	}

	if len(v.Form) > 0 {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, key := range v.Form.Keys() {
			fmt.Fprintf(tw, "%s\t%s\n", key, v.Form[key])
		}
		_ = tw.Flush()
	}

	if v.Table != nil {
		renderTable(w, v.Table)
	}

	for _, line := range v.Summary {
		fmt.Fprintln(w, line)
	}

	if v.Message != "" {
		fmt.Fprintln(w, v.Message)
	}
}

func renderTable(w io.Writer, t *screens.Table) {
	if len(t.Rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))

	rule := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		rule[i] = strings.Repeat("-", len(c))
	}
	fmt.Fprintln(tw, strings.Join(rule, "\t"))

	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}
