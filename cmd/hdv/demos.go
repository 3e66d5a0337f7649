package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"

	"github.com/Amansingh-afk/hypervector/demo"
	"github.com/Amansingh-afk/hypervector/hdc"
)

func runDollar(args []string) error {
	fs, c := newFlagSet("dollar")
	fs.Parse(args)
	if err := c.setup(); err != nil {
		return err
	}

	var res demo.DollarResult
	switch c.kind {
	case "binary":
		res = demo.MexicanDollar[hdc.Binary](c.binarySpace(), c.source())
	case "bipolar":
		res = demo.MexicanDollar[hdc.Bipolar](c.bipolarSpace(), c.source())
	case "real":
		res = demo.MexicanDollar[hdc.Real](c.realSpace(), c.source())
	case "complex":
		res = demo.MexicanDollar[hdc.Complex](c.complexSpace(), c.source())
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	for _, m := range res.Ranking {
		fmt.Fprintf(tw, "%s\t%.4f\n", m.Label, m.Distance)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Printf("The dollar of Mexico is: %s\n", res.Answer)
	return nil
}

func runPlate(args []string) error {
	fs, c := newFlagSet("plate")
	out := fs.String("out", "", "If set, write <out>_objects.csv and <out>_sentences.csv.")
	fs.Parse(args)
	if err := c.setup(); err != nil {
		return err
	}

	var res demo.PlateResult
	switch c.kind {
	case "binary":
		res = demo.Plate[hdc.Binary](c.binarySpace(), c.source())
	case "bipolar":
		res = demo.Plate[hdc.Bipolar](c.bipolarSpace(), c.source())
	case "real":
		res = demo.Plate[hdc.Real](c.realSpace(), c.source())
	case "complex":
		res = demo.Plate[hdc.Complex](c.complexSpace(), c.source())
	}

	if err := printConfusion(os.Stdout, res.Objects); err != nil {
		return err
	}
	for i, s := range demo.PlateSentences {
		fmt.Printf("s%d: %s\n", i+1, s)
	}
	fmt.Println()
	if err := printConfusion(os.Stdout, res.Sentences); err != nil {
		return err
	}

	if *out == "" {
		return nil
	}
	for suffix, conf := range map[string]demo.Confusion{"objects": res.Objects, "sentences": res.Sentences} {
		path := fmt.Sprintf("%s_%s.csv", *out, suffix)
		if err := writeConfusionFile(path, conf); err != nil {
			return err
		}
		log.WithField("path", path).Info("wrote confusion matrix")
	}
	return nil
}

func printConfusion(w io.Writer, c demo.Confusion) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, l := range c.Labels {
		fmt.Fprintf(tw, "%s\t", l)
	}
	fmt.Fprintln(tw)
	for i, row := range c.Distances {
		fmt.Fprintf(tw, "%s\t", c.Labels[i])
		for _, d := range row {
			fmt.Fprintf(tw, "%.2f\t", d)
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}

func writeConfusionFile(path string, c demo.Confusion) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := demo.WriteConfusionCSV(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
