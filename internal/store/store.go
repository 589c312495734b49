// Package store persists calibration words across power loss.
// The contract mirrors the EEPROM the controller board carries: read or
// write one 32-bit word at a fixed byte offset. The real implementation is
// a small file; the fake keeps words in memory.
package store

// Word offsets for the two persisted thresholds. Bottom is the absolute
// reference (always zero) and is not stored.
const (
	OffsetMiddle int64 = 0
	OffsetTop    int64 = 4
)

// WordStore reads and writes 32-bit words at fixed byte offsets.
type WordStore interface {
	// ReadWord returns the word at the given offset. Offsets that were
	// never written read as zero.
	ReadWord(offset int64) (uint32, error)

	// WriteWord durably stores the word at the given offset.
	WriteWord(offset int64, v uint32) error

	// Close releases the underlying resource.
	Close() error
}
