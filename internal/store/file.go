package store

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// FileStore is a WordStore backed by a small binary file. Words are stored
// little-endian at their byte offsets. Writes are synced so a power cut
// right after calibration cannot lose the new threshold.
type FileStore struct {
	f *os.File
}

// OpenFile opens (or creates) the store file at path.
func OpenFile(path string) (*FileStore, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return &FileStore{f: f}, nil
}

// ReadWord returns the word at offset. Reading past the end of a short or
// empty file returns zero, the never-calibrated state.
func (s *FileStore) ReadWord(offset int64) (uint32, error) {
	var buf [4]byte
	n, err := s.f.ReadAt(buf[:], offset)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		if n == 0 {
			return 0, nil
		}
		// Partial word: treat the missing tail as zeros.
		for i := n; i < 4; i++ {
			buf[i] = 0
		}
	} else if err != nil {
		return 0, fmt.Errorf("read word at %d: %w", offset, err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteWord stores the word at offset and syncs the file.
func (s *FileStore) WriteWord(offset int64, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	if _, err := s.f.WriteAt(buf[:], offset); err != nil {
		return fmt.Errorf("write word at %d: %w", offset, err)
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("sync store: %w", err)
	}
	return nil
}

// Close closes the backing file.
func (s *FileStore) Close() error {
	return s.f.Close()
}
