package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/Amansingh-afk/hypervector/demo"
	"github.com/Amansingh-afk/hypervector/hdc"
	"github.com/Amansingh-afk/hypervector/memory"
)

func runLangID(args []string) error {
	fs, c := newFlagSet("langid")
	train := fs.String("train", "", "Directory of <label>.txt training files.")
	test := fs.String("test", "-", "File of lines to classify ('-' for stdin).")
	eval := fs.String("eval", "", "Directory of <label>_*.txt held-out files; report accuracy instead of reading -test.")
	ngram := fs.Int("ngram", 3, "Character n-gram size.")
	fs.Parse(args)
	if err := c.setup(); err != nil {
		return err
	}
	if *train == "" {
		return fmt.Errorf("-train is required")
	}

	cfg := hdc.DefaultConfig()
	cfg.NGramSize = *ngram
	cfg.Seed = c.seed

	switch c.kind {
	case "binary":
		return langID[hdc.Binary](c.binarySpace(), cfg, *train, *test, *eval)
	case "bipolar":
		return langID[hdc.Bipolar](c.bipolarSpace(), cfg, *train, *test, *eval)
	case "real":
		return langID[hdc.Real](c.realSpace(), cfg, *train, *test, *eval)
	default:
		return langID[hdc.Complex](c.complexSpace(), cfg, *train, *test, *eval)
	}
}

func langID[T hdc.HyperVector[T]](space hdc.Space[T], cfg hdc.Config, trainDir, testPath, evalDir string) error {
	files, err := filepath.Glob(filepath.Join(trainDir, "*.txt"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .txt files in %s", trainDir)
	}

	opts := memory.DefaultOptions()
	opts.Capacity = len(files)
	opts.Logger = log.StandardLogger()
	clf := demo.NewClassifier(space, cfg, opts)

	for _, path := range files {
		label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		n, err := trainFile(clf, label, path)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"label": label, "ngrams": humanize.Comma(int64(n))}).Info("trained prototype")
	}

	if evalDir != "" {
		return evaluate(os.Stdout, clf, evalDir)
	}

	var r io.Reader = os.Stdin
	if testPath != "-" {
		f, err := os.Open(testPath)
		if err != nil {
			return fmt.Errorf("opening %s: %w", testPath, err)
		}
		defer f.Close()
		r = f
	}

	var lines int
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		label, dist, ok := clf.Classify(text)
		if !ok {
			label = "?"
		}
		fmt.Printf("%s\t%.4f\t%s\n", label, dist, text)
		lines++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	log.WithField("lines", humanize.Comma(int64(lines))).Debug("classification complete")
	return nil
}

func trainFile[T hdc.HyperVector[T]](clf *demo.Classifier[T], label, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return clf.Train(label, f)
}

// evaluate classifies every held-out file in dir as one document and prints
// per-label and overall accuracy. A file's true label is its name up to the
// first underscore, so en_1.txt and en_2.txt are both "en".
func evaluate[T hdc.HyperVector[T]](w io.Writer, clf *demo.Classifier[T], dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .txt files in %s", dir)
	}

	type tally struct{ correct, total int }
	scores := make(map[string]*tally)
	var labels []string
	for _, path := range files {
		want := fileLabel(path)
		got, err := classifyFile(clf, path)
		if err != nil {
			return err
		}
		s, ok := scores[want]
		if !ok {
			s = &tally{}
			scores[want] = s
			labels = append(labels, want)
		}
		s.total++
		if got == want {
			s.correct++
		}
		log.WithFields(log.Fields{"file": filepath.Base(path), "want": want, "got": got}).Debug("classified")
	}

	sort.Strings(labels)
	var correct, total int
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, l := range labels {
		s := scores[l]
		fmt.Fprintf(tw, "%s\t%d/%d\t%.4f\n", l, s.correct, s.total, float64(s.correct)/float64(s.total))
		correct += s.correct
		total += s.total
	}
	fmt.Fprintf(tw, "total\t%d/%d\t%.4f\n", correct, total, float64(correct)/float64(total))
	return tw.Flush()
}

func fileLabel(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if i := strings.IndexByte(name, '_'); i > 0 {
		return name[:i]
	}
	return name
}

func classifyFile[T hdc.HyperVector[T]](clf *demo.Classifier[T], path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	label, _, ok, err := clf.ClassifyReader(f)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !ok {
		return "?", nil
	}
	return label, nil
}
