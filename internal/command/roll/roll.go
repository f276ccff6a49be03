package roll

import (
	"context"
	crand "crypto/rand"
	"math/big"
	"math/rand/v2"
	"strconv"

	"github.com/keshon/voicebot/internal/command"
	"github.com/keshon/voicebot/pkg/cmd"
)

type RollCommand struct {
	// IntN returns a uniform integer in [0, n). Defaults to rand.IntN.
	IntN func(n int) int
}

func (c *RollCommand) Name() string        { return "roll" }
func (c *RollCommand) Description() string { return "Generate random number between 1 and <arg>" }
func (c *RollCommand) Group() string       { return "roll" }
func (c *RollCommand) Category() string    { return "🎲 Gameplay" }
func (c *RollCommand) Usage() string       { return "<max_val>" }

func (c *RollCommand) Run(ctx context.Context, mc *command.MessageContext) error {
	if len(mc.Args) == 0 {
		return cmd.MissingArg(c.Name(), "max_val")
	}

	bound, ok := new(big.Int).SetString(mc.Args[0], 10)
	if !ok {
		return cmd.ArgErrorf(c.Name(), `Converting to "int" failed for parameter "max_val".`)
	}
	if !bound.IsInt64() || bound.Int64() != int64(int(bound.Int64())) {
		v, err := RollBig(bound)
		if err != nil {
			return err
		}
		return mc.Reply(v.String())
	}
	maxVal := int(bound.Int64())

	intN := c.IntN
	if intN == nil {
		intN = rand.IntN
	}

	v, err := Roll(maxVal, intN)
	if err != nil {
		return err
	}
	return mc.Reply(strconv.Itoa(v))
}

// Roll returns a uniform integer in [1, maxVal]. maxVal below 1 yields an
// *cmd.ArgError.
func Roll(maxVal int, intN func(n int) int) (int, error) {
	if maxVal < 1 {
		return 0, cmd.ArgErrorf("roll", "argument <max_val> must be at least 1")
	}
	return intN(maxVal) + 1, nil
}

// RollBig is Roll for bounds that do not fit in an int.
func RollBig(maxVal *big.Int) (*big.Int, error) {
	if maxVal.Sign() < 1 {
		return nil, cmd.ArgErrorf("roll", "argument <max_val> must be at least 1")
	}
	v, err := crand.Int(crand.Reader, maxVal)
	if err != nil {
		return nil, err
	}
	return v.Add(v, big.NewInt(1)), nil
}
