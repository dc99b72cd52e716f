package inspect

import (
	"context"
	"fmt"
	"io"

	"github.com/nathanhack/squareparity/cmd/internal/tools"
	"github.com/nathanhack/squareparity/linearblock/squareparity"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Threads    uint
	ShowMatrix bool
)

// Report writes the geometry of enc: where data and parity live, which lines
// each parity covers and the girth of its Tanner graph.
func Report(ctx context.Context, w io.Writer, enc *squareparity.Encoder, threads int, showMatrix bool) {
	layout := enc.Layout()
	fmt.Fprintf(w, "Block: %vx%v (%v bits)\n", layout.Side, layout.Side, layout.Length)
	fmt.Fprintf(w, "Data: %v bits at %v\n", enc.DataSlots(), layout.DataPositions())
	fmt.Fprintln(w, "Parity:")
	fmt.Fprintln(w, "  0: overall")
	for _, g := range layout.Groups {
		fmt.Fprintf(w, "  %v: %v %v\n", g.Position, g.Axis, g.Lines)
	}

	pc := enc.ParityCheck()
	fmt.Fprintf(w, "Fingerprint: %v\n", tools.Fingerprint(enc))
	fmt.Fprintf(w, "Girth: %v\n", pc.Girth(ctx, threads))
	if showMatrix {
		fmt.Fprintln(w, "H:")
		fmt.Fprintln(w, pc.H.String())
	}
}

var InspectRun = func(cmd *cobra.Command, args []string) {
	enc, err := tools.LoadEncoder(args[0])
	if err != nil {
		fmt.Println(err)
		return
	}
	logrus.Debugf("Loaded encoder %v", enc)

	ctx, cancel := tools.SignalContext()
	defer cancel()

	Report(ctx, cmd.OutOrStdout(), enc, tools.Threads(Threads), ShowMatrix)
}
