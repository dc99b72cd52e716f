package square

import (
	"fmt"
	"math/bits"

	"github.com/nathanhack/squareparity/cmd/internal/tools"
	"github.com/nathanhack/squareparity/linearblock/squareparity"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Side       uint
	DataBits   uint
	ParityBits uint
)

// Capacities returns the data and parity capacity of a side x side block
func Capacities(side uint) (dataBits, parityBits int, err error) {
	if side < 2 || side&(side-1) != 0 {
		return 0, 0, fmt.Errorf("%w: side %v must be a power of two >= 2", squareparity.ErrInvalidGeometry, side)
	}
	parityBits = 2 * bits.TrailingZeros(side)
	dataBits = int(side*side) - parityBits
	return
}

var SquareRun = func(cmd *cobra.Command, args []string) {
	dataBits, parityBits := int(DataBits), int(ParityBits)
	if Side > 0 {
		var err error
		dataBits, parityBits, err = Capacities(Side)
		if err != nil {
			fmt.Println(err)
			return
		}
	}

	enc, err := squareparity.New(dataBits, parityBits)
	if err != nil {
		fmt.Println("Unable to create square parity encoder: ", err)
		return
	}
	logrus.Debugf("Created encoder %v", enc)

	err = tools.SaveEncoder(args[0], enc)
	if err != nil {
		fmt.Println(err)
	}
}
