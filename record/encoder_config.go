package record

import (
	"fmt"

	"github.com/arloliu/bts/endian"
	"github.com/arloliu/bts/errs"
	"github.com/arloliu/bts/format"
	"github.com/arloliu/bts/internal/options"
	"github.com/arloliu/bts/scaling"
)

// EncoderConfig holds the settings shared by Encode and Write.
type EncoderConfig struct {
	scaling scaling.Params
	engine  endian.EndianEngine
}

func newEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		scaling: scaling.Disabled(),
		engine:  endian.NativeEngine(),
	}
}

// Scaling returns the configured scaling parameters.
func (c *EncoderConfig) Scaling() scaling.Params {
	return c.scaling
}

// Engine returns the configured byte order.
func (c *EncoderConfig) Engine() endian.EndianEngine {
	return c.engine
}

// EncoderOption configures Encode and Write.
type EncoderOption = options.Option[*EncoderConfig]

// WithScaling enables dequantization with the given offset and factor.
// Both must share a dtype other than DTypeNone; that dtype becomes the
// scaling dtype of the header.
func WithScaling(offset, factor format.Scalar) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if offset.DType() == format.DTypeNone || offset.DType() != factor.DType() {
			return fmt.Errorf("%w: offset is %s, factor is %s",
				errs.ErrInvalidScaling, offset.DType(), factor.DType())
		}
		c.scaling = scaling.Params{DType: offset.DType(), Offset: offset, Factor: factor}

		return nil
	})
}

// WithScalingParams sets the scaling parameters directly.
//
// scaling.Disabled() turns scaling off again.
func WithScalingParams(p scaling.Params) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if err := p.Validate(); err != nil {
			return err
		}
		c.scaling = p

		return nil
	})
}

// WithByteOrder sets the byte order the record is written in.
//
// The default is the native order. Readers never byte-swap, so a record
// written in the other order is only decodable on a host of that order.
func WithByteOrder(engine endian.EndianEngine) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		if engine != nil {
			c.engine = engine
		}
	})
}
