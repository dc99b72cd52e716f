package cmd

import (
	"github.com/nathanhack/squareparity/cmd/internal/codec"

	"github.com/spf13/cobra"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:          "encode BITS...",
	Aliases:      []string{"e"},
	Short:        "Encodes data bits into a block",
	Long:         `Encodes data bits (e.g. 11001011011 or 1,1,0,0) into a square parity block.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         codec.EncodeRun,
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:          "validate BLOCK...",
	Aliases:      []string{"v"},
	Short:        "Checks a block for corruption",
	Long:         `Recomputes every parity of a block and exits non-zero when the block is corrupted.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         codec.ValidateRun,
}

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:          "extract BLOCK...",
	Aliases:      []string{"x"},
	Short:        "Extracts the data bits of a valid block",
	Long:         `Checks a block and prints the data bits it carries.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         codec.ExtractRun,
}

func init() {
	for _, c := range []*cobra.Command{encodeCmd, extractCmd} {
		rootCmd.AddCommand(c)
		c.Flags().UintVarP(&codec.DataBits, "data", "d", 12, "the data capacity including the overall parity bit")
		c.Flags().UintVarP(&codec.ParityBits, "parity", "p", 4, "the parity capacity")
		c.Flags().StringVarP(&codec.EncoderFile, "encoder", "e", "", "a SQUAREPARITY_JSON file to use instead of --data and --parity")
	}
	encodeCmd.Flags().BoolVarP(&codec.Grid, "grid", "g", false, "print the block as a square")

	rootCmd.AddCommand(validateCmd)
}
