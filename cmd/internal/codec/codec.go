package codec

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nathanhack/squareparity/cmd/internal/tools"
	"github.com/nathanhack/squareparity/linearblock/squareparity"
	"github.com/spf13/cobra"
)

var (
	DataBits    uint
	ParityBits  uint
	EncoderFile string
	Grid        bool
)

// ParseBits reads a bit string such as "1011" or "1,0,1,1". Whitespace and
// commas are ignored.
func ParseBits(s string) ([]int, error) {
	bits := make([]int, 0, len(s))
	for i, r := range s {
		switch {
		case r == '0':
			bits = append(bits, 0)
		case r == '1':
			bits = append(bits, 1)
		case r == ',' || unicode.IsSpace(r):
		default:
			return nil, fmt.Errorf("%w: found %q at offset %v", squareparity.ErrInvalidBit, r, i)
		}
	}
	return bits, nil
}

// FormatBits writes bits as a plain 0/1 string
func FormatBits(bits []int) string {
	buf := strings.Builder{}
	for _, b := range bits {
		buf.WriteString(fmt.Sprint(b))
	}
	return buf.String()
}

func encoder() (*squareparity.Encoder, error) {
	if EncoderFile != "" {
		return tools.LoadEncoder(EncoderFile)
	}
	return squareparity.New(int(DataBits), int(ParityBits))
}

var EncodeRun = func(cmd *cobra.Command, args []string) error {
	enc, err := encoder()
	if err != nil {
		return err
	}

	data, err := ParseBits(strings.Join(args, ""))
	if err != nil {
		return err
	}

	message, err := enc.Encode(data)
	if err != nil {
		return err
	}

	if Grid {
		fmt.Fprintln(cmd.OutOrStdout(), message)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), FormatBits(message.Data()))
	return nil
}

var ValidateRun = func(cmd *cobra.Command, args []string) error {
	block, err := ParseBits(strings.Join(args, ""))
	if err != nil {
		return err
	}

	err = squareparity.Verify(block)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "valid")
	return nil
}

var ExtractRun = func(cmd *cobra.Command, args []string) error {
	enc, err := encoder()
	if err != nil {
		return err
	}

	block, err := ParseBits(strings.Join(args, ""))
	if err != nil {
		return err
	}

	data, err := enc.Extract(block)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), FormatBits(data))
	return nil
}
