package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/Amansingh-afk/hypervector/hdc"
)

func runExport(args []string) error {
	fs, c := newFlagSet("export")
	n := fs.Int("n", 10, "Number of random vectors to write.")
	format := fs.String("format", "bin", "Output format: bin (native-endian records) or csv.")
	out := fs.String("o", "-", "Output file ('-' for stdout).")
	fs.Parse(args)
	if err := c.setup(); err != nil {
		return err
	}
	if *n < 0 {
		return fmt.Errorf("-n must not be negative, got %d", *n)
	}
	if *format != "bin" && *format != "csv" {
		return fmt.Errorf("unknown -format %q", *format)
	}

	var w io.WriteCloser = nopCloser{os.Stdout}
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", *out, err)
		}
		w = f
	}

	written, err := writeOutput(w, func(bw io.Writer) (int64, error) {
		switch c.kind {
		case "binary":
			return export[hdc.Binary](bw, c.binarySpace(), c.source(), *n, *format)
		case "bipolar":
			return export[hdc.Bipolar](bw, c.bipolarSpace(), c.source(), *n, *format)
		case "real":
			return export[hdc.Real](bw, c.realSpace(), c.source(), *n, *format)
		default:
			return export[hdc.Complex](bw, c.complexSpace(), c.source(), *n, *format)
		}
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}

	log.WithFields(log.Fields{
		"vectors": humanize.Comma(int64(*n)),
		"size":    humanize.Bytes(uint64(written)),
		"format":  *format,
		"output":  *out,
	}).Info("export complete")
	return nil
}

func export[T hdc.HyperVector[T]](w io.Writer, space hdc.Space[T], src hdc.RandomSource, n int, format string) (int64, error) {
	vs := make([]T, n)
	for i := range vs {
		vs[i] = space.Random(src)
	}
	if format == "csv" {
		cw := &countingWriter{w: w}
		err := hdc.WriteCSV(cw, vs)
		return cw.n, err
	}
	return hdc.WriteCollection(w, vs)
}

// writeOutput runs fn against a buffered w, then flushes and closes w.
// The first error wins, so a failed close is never reported as success.
func writeOutput(w io.WriteCloser, fn func(io.Writer) (int64, error)) (int64, error) {
	bw := bufio.NewWriter(w)
	n, err := fn(bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return n, err
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func runInspect(args []string) error {
	fs, c := newFlagSet("inspect")
	in := fs.String("i", "-", "Collection file written by 'hdv export -format bin' ('-' for stdin).")
	fs.Parse(args)
	if err := c.setup(); err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if *in != "-" {
		f, err := os.Open(*in)
		if err != nil {
			return fmt.Errorf("opening %s: %w", *in, err)
		}
		defer f.Close()
		if st, err := f.Stat(); err == nil {
			log.WithField("size", humanize.Bytes(uint64(st.Size()))).Debug("reading collection")
		}
		r = f
	}
	br := bufio.NewReader(r)

	switch c.kind {
	case "binary":
		return inspect[hdc.Binary](os.Stdout, br, c.binarySpace())
	case "bipolar":
		return inspect[hdc.Bipolar](os.Stdout, br, c.bipolarSpace())
	case "real":
		return inspect[hdc.Real](os.Stdout, br, c.realSpace())
	default:
		return inspect[hdc.Complex](os.Stdout, br, c.complexSpace())
	}
}

// inspect prints the size of a collection and, for each vector, its nearest
// neighbour among the others.
func inspect[T hdc.HyperVector[T]](w io.Writer, r io.Reader, space hdc.Space[T]) error {
	vs, err := hdc.ReadCollection(r, space)
	if errors.Is(err, hdc.ErrCorruptRecord) {
		return fmt.Errorf("not a valid collection for this -kind: %w", err)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s vectors of %d components\n", humanize.Comma(int64(len(vs))), space.Dims())

	for i, v := range vs {
		others := make([]T, 0, len(vs)-1)
		idx := make([]int, 0, len(vs)-1)
		for j, o := range vs {
			if j != i {
				others = append(others, o)
				idx = append(idx, j)
			}
		}
		best, d := hdc.Nearest(v, others)
		if best < 0 {
			fmt.Fprintf(w, "%d\t-\n", i)
			continue
		}
		fmt.Fprintf(w, "%d\t%d\t%.4f\n", i, idx[best], d)
	}
	return nil
}
