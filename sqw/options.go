package sqw

import (
	"github.com/pace-neutrons/sqw-go/endian"
	"github.com/pace-neutrons/sqw-go/internal/options"
	"github.com/pace-neutrons/sqw-go/section"
)

// BlockName re-exports section.BlockName as the addressing type the
// reader façade's public surface uses.
type BlockName = section.BlockName

// readerConfig holds the options ReaderOption values apply.
type readerConfig struct {
	path      string
	byteorder endian.EndianEngine // nil: auto-detect
}

// ReaderOption configures Open/OpenFile, applied via internal/options.
type ReaderOption = options.Option[*readerConfig]

// WithByteorder skips auto-detection and opens the source in the given
// byte order.
func WithByteorder(engine endian.EndianEngine) ReaderOption {
	return options.NoError[*readerConfig](func(c *readerConfig) {
		c.byteorder = engine
	})
}

// builderConfig holds the options BuilderOption values apply.
type builderConfig struct {
	byteorder endian.EndianEngine
}

// BuilderOption configures Build/BuildFile.
type BuilderOption = options.Option[*builderConfig]

// WithBuilderByteorder sets the byte order every write uses. Defaults to little-endian,
// matching the reference implementation's default.
func WithBuilderByteorder(engine endian.EndianEngine) BuilderOption {
	return options.NoError[*builderConfig](func(c *builderConfig) {
		c.byteorder = engine
	})
}
