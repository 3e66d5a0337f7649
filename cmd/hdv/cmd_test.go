package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amansingh-afk/hypervector/demo"
	"github.com/Amansingh-afk/hypervector/hdc"
	"github.com/Amansingh-afk/hypervector/memory"
)

func TestExportInspect_RoundTrip(t *testing.T) {
	c := &common{kind: "bipolar", dims: 256, seed: 7}
	require.NoError(t, c.setup())

	var buf bytes.Buffer
	n, err := export[hdc.Bipolar](&buf, c.bipolarSpace(), c.source(), 3, "bin")
	require.NoError(t, err)
	assert.EqualValues(t, 8+3*256, n)

	var out bytes.Buffer
	require.NoError(t, inspect[hdc.Bipolar](&out, &buf, c.bipolarSpace()))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "3 vectors of 256 components", lines[0])
}

func TestExport_CSVCountsBytes(t *testing.T) {
	c := &common{kind: "binary", dims: 64, seed: 1}
	var buf bytes.Buffer
	n, err := export[hdc.Binary](&buf, c.binarySpace(), c.source(), 2, "csv")
	require.NoError(t, err)
	assert.EqualValues(t, buf.Len(), n)
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestInspect_WrongKind(t *testing.T) {
	c := &common{kind: "real", dims: 8, seed: 1}
	var buf bytes.Buffer
	_, err := export[hdc.Real](&buf, c.realSpace(), c.source(), 1, "bin")
	require.NoError(t, err)

	// Real records decoded as bipolar bytes fall outside ±1.
	err = inspect[hdc.Bipolar](&bytes.Buffer{}, &buf, hdc.NewBipolarSpace(64))
	assert.ErrorIs(t, err, hdc.ErrCorruptRecord)
}

func TestCommon_Setup_Validates(t *testing.T) {
	assert.Error(t, (&common{kind: "quaternion", dims: 8}).setup())
	assert.Error(t, (&common{kind: "real", dims: 0}).setup())
	assert.NoError(t, (&common{kind: "complex", dims: 8}).setup())
}

func TestCommon_BinaryRoundsUpToWords(t *testing.T) {
	c := &common{kind: "binary", dims: 65}
	assert.Equal(t, 2, c.binarySpace().Dims())
}

type failingCloser struct {
	bytes.Buffer
	err error
}

func (f *failingCloser) Close() error { return f.err }

func TestWriteOutput_ReportsCloseError(t *testing.T) {
	boom := errors.New("write-back failed")
	w := &failingCloser{err: boom}
	n, err := writeOutput(w, func(bw io.Writer) (int64, error) {
		return export[hdc.Bipolar](bw, hdc.NewBipolarSpace(16), hdc.NewSource(1), 2, "bin")
	})
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 8+2*16, n)
	assert.Equal(t, 8+2*16, w.Len(), "buffered output is flushed before close")
}

func TestWriteOutput_FirstErrorWins(t *testing.T) {
	first := errors.New("encode failed")
	w := &failingCloser{err: errors.New("close failed")}
	_, err := writeOutput(w, func(io.Writer) (int64, error) { return 0, first })
	assert.ErrorIs(t, err, first)
}

// ── langid evaluation ────────────────────────────────────────────────────────

const (
	englishTrain = `the quick brown fox jumps over the lazy dog
we are going to the market this morning to buy some bread and cheese
the children were playing in the garden while their mother was reading`
	spanishTrain = `el rápido zorro marrón salta sobre el perro perezoso
vamos al mercado esta mañana para comprar pan y queso
los niños jugaban en el jardín mientras su madre leía un libro`
)

func TestFileLabel(t *testing.T) {
	assert.Equal(t, "en", fileLabel("/data/en_001.txt"))
	assert.Equal(t, "pt", fileLabel("pt.txt"))
	assert.Equal(t, "_x", fileLabel("_x.txt"))
}

func TestEvaluate_ReportsAccuracy(t *testing.T) {
	clf := demo.NewClassifier[hdc.Real](hdc.NewRealSpace(2048), hdc.DefaultConfig(), memory.DefaultOptions())
	_, err := clf.Train("en", strings.NewReader(englishTrain))
	require.NoError(t, err)
	_, err = clf.Train("es", strings.NewReader(spanishTrain))
	require.NoError(t, err)

	dir := t.TempDir()
	files := map[string]string{
		"en_1.txt": "the weather is nice and the children are playing in the garden",
		"en_2.txt": "she was reading a book while the dog was sleeping",
		"es_1.txt": "el tiempo es bueno y los niños están jugando en el jardín",
	}
	for name, text := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
	}

	var out bytes.Buffer
	require.NoError(t, evaluate(&out, clf, dir))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"en", "2/2", "1.0000"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"es", "1/1", "1.0000"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"total", "3/3", "1.0000"}, strings.Fields(lines[2]))
}

func TestEvaluate_EmptyDir(t *testing.T) {
	clf := demo.NewClassifier[hdc.Real](hdc.NewRealSpace(64), hdc.DefaultConfig(), memory.DefaultOptions())
	assert.Error(t, evaluate(&bytes.Buffer{}, clf, t.TempDir()))
}
