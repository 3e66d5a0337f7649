package hdc

import "errors"

var (
	// ErrSliceTooLong is returned by FromSlice when more values are supplied
	// than the dimension can hold.
	ErrSliceTooLong = errors.New("hdc: slice longer than dimension")

	// ErrCorruptRecord is returned when a binary record decodes to a value
	// outside the representation's domain.
	ErrCorruptRecord = errors.New("hdc: corrupt record")
)
