package store

// Thresholds adapts a WordStore to the controller's ThresholdStore
// interface: middle and top stop points at their fixed word offsets.
// Counts are signed in the controller but stored as raw 32-bit words.
type Thresholds struct {
	ws WordStore
}

// NewThresholds wraps the given word store.
func NewThresholds(ws WordStore) *Thresholds {
	return &Thresholds{ws: ws}
}

// LoadThresholds reads both persisted thresholds.
func (t *Thresholds) LoadThresholds() (middle, top int32, err error) {
	m, err := t.ws.ReadWord(OffsetMiddle)
	if err != nil {
		return 0, 0, err
	}
	tp, err := t.ws.ReadWord(OffsetTop)
	if err != nil {
		return 0, 0, err
	}
	return int32(m), int32(tp), nil
}

// SaveMiddle persists the middle threshold.
func (t *Thresholds) SaveMiddle(v int32) error {
	return t.ws.WriteWord(OffsetMiddle, uint32(v))
}

// SaveTop persists the top threshold.
func (t *Thresholds) SaveTop(v int32) error {
	return t.ws.WriteWord(OffsetTop, uint32(v))
}
