package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/deckforge/deckforge/deck"
)

// Models lists the supported deck models.
type Models struct{}

func (m *Models) Run() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPID\tPRODUCT\tKEYS\tLAYOUT\tKEY IMAGE\tFORMAT\tPROTOCOL")
	for _, d := range deck.Models() {
		fmt.Fprintf(w, "%s\t%04x\t%s\t%d\t%dx%d\t%dx%d\t%s\t%s\n",
			d.Name, d.PID, d.Product,
			d.Layout.TotalKeys(), d.Layout.Cols, d.Layout.Rows,
			d.Display.ImageWidth, d.Display.ImageHeight,
			d.Display.Format, d.Protocol)
	}
	return w.Flush()
}
