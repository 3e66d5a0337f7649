package hdc

import (
	"encoding/binary"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// WriteCollection writes a native-endian uint64 count followed by one
// fixed-layout record per vector.
func WriteCollection[T HyperVector[T]](w io.Writer, vs []T) (int64, error) {
	var hdr [8]byte
	binary.NativeEndian.PutUint64(hdr[:], uint64(len(vs)))
	total, err := writeRecord(w, hdr[:])
	if err != nil {
		return total, err
	}
	for i, v := range vs {
		n, err := v.WriteTo(w)
		total += n
		if err != nil {
			return total, fmt.Errorf("hdc: write vector %d: %w", i, err)
		}
	}
	return total, nil
}

// ReadCollection reads a collection written by WriteCollection, decoding each
// record with space.
func ReadCollection[T HyperVector[T]](r io.Reader, space Space[T]) ([]T, error) {
	hdr, err := readRecord(r, 8)
	if err != nil {
		return nil, fmt.Errorf("hdc: read collection count: %w", err)
	}
	count := binary.NativeEndian.Uint64(hdr)

	// Cap the preallocation; a corrupt count should fail on read, not on make.
	out := make([]T, 0, min(count, 1<<16))
	for i := uint64(0); i < count; i++ {
		v, err := space.Read(r)
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, fmt.Errorf("hdc: read vector %d of %d: %w", i, count, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// WriteCSV writes one line per vector with comma-separated components.
// Binary vectors are rendered as 0/1 bits, all others as decimal text
// (Complex as interleaved re,im).
func WriteCSV[T HyperVector[T]](w io.Writer, vs []T) error {
	cw := csv.NewWriter(w)
	for _, v := range vs {
		values := v.Unpack()
		record := make([]string, len(values))
		_, isBinary := any(v).(Binary)
		for i, x := range values {
			if isBinary {
				record[i] = strconv.Itoa(int(x))
			} else {
				record[i] = strconv.FormatFloat(x, 'g', -1, 64)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("hdc: write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("hdc: write csv: %w", err)
	}
	return nil
}

func writeRecord(w io.Writer, buf []byte) (int64, error) {
	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("hdc: write record: %w", err)
	}
	return int64(n), nil
}

// readRecord reads exactly size bytes. A clean end of stream before the first
// byte is reported as io.EOF, a partial record as io.ErrUnexpectedEOF.
func readRecord(r io.Reader, size int) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("hdc: read record: %w", err)
	}
	return buf, nil
}

func sliceTooLong(got, limit int) error {
	return fmt.Errorf("%w: got %d values, limit %d", ErrSliceTooLong, got, limit)
}

func corruptRecord(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptRecord, fmt.Sprintf(format, args...))
}
