package cmd

import (
	"github.com/nathanhack/squareparity/cmd/internal/create/square"
	"github.com/nathanhack/squareparity/cmd/internal/inspect"

	"github.com/spf13/cobra"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:     "create SQUAREPARITY_JSON",
	Aliases: []string{"c"},
	Short:   "Creates a new square parity encoder",
	Long: `Creates a new square parity encoder and saves it so it can be used later by the tools.
The block is side x side bits; use --side or give the data and parity capacities directly.`,
	Args: cobra.ExactArgs(1),
	Run:  square.SquareRun,
}

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:     "inspect SQUAREPARITY_JSON",
	Aliases: []string{"i"},
	Short:   "Describes the layout of an encoder",
	Long:    `Prints the data and parity positions of an encoder, the lines each parity covers and the girth of its Tanner graph.`,
	Args:    cobra.ExactArgs(1),
	Run:     inspect.InspectRun,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().UintVarP(&square.Side, "side", "s", 0, "the side of the square block, a power of two >=2 (overrides --data and --parity)")
	createCmd.Flags().UintVarP(&square.DataBits, "data", "d", 12, "the data capacity including the overall parity bit")
	createCmd.Flags().UintVarP(&square.ParityBits, "parity", "p", 4, "the parity capacity, 2*log2(side)")

	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().UintVar(&inspect.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	inspectCmd.Flags().BoolVarP(&inspect.ShowMatrix, "matrix", "m", false, "also print the parity check matrix")
}
