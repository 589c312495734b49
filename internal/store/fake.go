package store

// FakeStore is a WordStore test double keeping words in memory.
type FakeStore struct {
	// Words maps offsets to stored values.
	Words map[int64]uint32

	// ReadError, if set, is returned by ReadWord.
	ReadError error

	// WriteError, if set, is returned by WriteWord.
	WriteError error

	// Writes records every successful WriteWord call in order.
	Writes []Write

	// Closed tracks if Close was called.
	Closed bool
}

// Write records a single WriteWord call.
type Write struct {
	Offset int64
	Value  uint32
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{Words: make(map[int64]uint32)}
}

// ReadWord returns the stored word, or zero if never written.
func (f *FakeStore) ReadWord(offset int64) (uint32, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	return f.Words[offset], nil
}

// WriteWord stores the word and records the call.
func (f *FakeStore) WriteWord(offset int64, v uint32) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Words[offset] = v
	f.Writes = append(f.Writes, Write{Offset: offset, Value: v})
	return nil
}

// Close marks the store as closed.
func (f *FakeStore) Close() error {
	f.Closed = true
	return nil
}
