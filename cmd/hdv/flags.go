package main

import (
	"flag"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/Amansingh-afk/hypervector/hdc"
)

// common holds the flags shared by every subcommand.
type common struct {
	kind  string
	dims  int
	seed  uint64
	debug bool
}

func newFlagSet(name string) (*flag.FlagSet, *common) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	c := &common{}
	fs.StringVar(&c.kind, "kind", "bipolar", "Representation: binary, bipolar, real or complex.")
	fs.IntVar(&c.dims, "dims", 1024, "Number of components; binary rounds up to whole 64-bit words.")
	fs.Uint64Var(&c.seed, "seed", 42, "Random seed.")
	fs.BoolVar(&c.debug, "debug", false, "Enable debug logs.")
	return fs, c
}

// setup validates the shared flags and configures logging.
func (c *common) setup() error {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if c.debug {
		log.SetLevel(log.DebugLevel)
	}
	if c.dims <= 0 {
		return fmt.Errorf("-dims must be positive, got %d", c.dims)
	}
	switch c.kind {
	case "binary", "bipolar", "real", "complex":
	default:
		return fmt.Errorf("unknown -kind %q", c.kind)
	}
	log.WithFields(log.Fields{"kind": c.kind, "dims": c.dims, "seed": c.seed}).Debug("configuration")
	return nil
}

func (c *common) source() hdc.RandomSource { return hdc.NewSource(c.seed) }

// tieBreaker derives a second seeded stream so runs are reproducible end to end.
func (c *common) tieBreaker() hdc.Option { return hdc.WithTieBreaker(hdc.NewSource(c.seed + 1)) }

func (c *common) binarySpace() *hdc.BinarySpace {
	return hdc.NewBinarySpace((c.dims+63)/64, c.tieBreaker())
}

func (c *common) bipolarSpace() *hdc.BipolarSpace {
	return hdc.NewBipolarSpace(c.dims, c.tieBreaker())
}

func (c *common) realSpace() *hdc.RealSpace { return hdc.NewRealSpace(c.dims) }

func (c *common) complexSpace() *hdc.ComplexSpace { return hdc.NewComplexSpace(c.dims) }
