// Creates a barebones PSF from a PDB structure. Force-field atom types and
// charges come from Gromacs itp files, matched atom by atom against the PDB.

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strings"

	mol "github.com/leelasd/mmdevel"
	"github.com/leelasd/mmdevel/cfg"
	"github.com/leelasd/mmdevel/molplot"
	"github.com/leelasd/mmdevel/rtf"
	"github.com/leelasd/mmdevel/top"
)

// itpList collects the repeatable -g flag, keeping the order given.
type itpList []string

func (l *itpList) String() string { return strings.Join(*l, " ") }

func (l *itpList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] file.pdb")
	fmt.Fprintln(os.Stderr, "Creates barebones PSF file from PDB and optionally GROMACS ITP files")
	flag.PrintDefaults()
}

func main() {
	var c cfg.Cfg
	var itps itpList
	var job string

	log.SetFlags(0)
	const keephelp = "Atom name to keep"
	flag.StringVar(&c.KeepAtom, "k", "", keephelp)
	flag.StringVar(&c.KeepAtom, "keep-atom", "", keephelp)
	const itphelp = "GROMACS ITP file, if you want correct force field atom types (can specify this argument multiple times as necessary)"
	flag.Var(&itps, "g", itphelp)
	flag.Var(&itps, "gromacs-itp", itphelp)
	const rtfhelp = "CHARMM top_whatever.rtf file, which is not well tested"
	flag.StringVar(&c.CharmmTop, "c", "", rtfhelp)
	flag.StringVar(&c.CharmmTop, "charmm-top", "", rtfhelp)
	const outhelp = "Output PSF file (default: standard output)"
	flag.StringVar(&c.Out, "o", "", outhelp)
	flag.StringVar(&c.Out, "output", "", outhelp)
	flag.BoolVar(&c.Renumber, "renumber", false, "Renumber atom IDs sequentially after filtering")
	flag.StringVar(&c.PlotCharges, "plot-charges", "", "Write a histogram of the assigned charges to this file (.png gets appended)")
	const jobhelp = "Read all options from this YAML job file instead of the command line"
	flag.StringVar(&job, "j", "", jobhelp)
	flag.StringVar(&job, "job", "", jobhelp)
	flag.Usage = usage
	flag.Parse()

	if job != "" {
		if flag.NArg() > 0 {
			fmt.Fprintln(os.Stderr, "a job file replaces the command line; drop the extra arguments")
			os.Exit(2)
		}
		jc, err := cfg.New(job)
		if err != nil {
			log.Println(err)
			os.Exit(1)
		}
		os.Exit(run(jc))
	}

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	c.PDB = flag.Arg(0)
	c.GromacsITP = itps
	if err := c.Check(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	os.Exit(run(&c))
}

// run drives one whole conversion. The order matters: atom types are matched
// against the full PDB atom list before any filtering, since that is the
// order the topology was written in.
func run(c *cfg.Cfg) int {
	M, err := mol.PDBFileRead(c.PDB)
	if err != nil {
		log.Println(err)
		return 1
	}
	var ff *top.FF
	if len(c.GromacsITP) > 0 {
		ff = top.NewFF(M)
		if err := ff.Resolve(c.GromacsITP...); err != nil {
			if errors.Is(err, top.ErrNoAtoms) {
				log.Println("BUG: Should have loaded atoms first")
				return 1
			}
			log.Println(err)
			return 1
		}
	}
	if c.CharmmTop != "" {
		//the CHARMM charge table is keyed by residue and atom name, not by
		//force-field type, so it is reported but never written to the PSF.
		if _, err := rtf.Read(c.CharmmTop); err != nil {
			log.Println(err)
			return 1
		}
	}
	M.StripSolvent()
	if c.KeepAtom != "" {
		M.KeepOnlyName(c.KeepAtom)
	}
	if c.Renumber {
		M.Renumber()
	}
	var q mol.Charger
	if ff != nil {
		q = ff.Charges
	}
	if c.PlotCharges != "" {
		if err := molplot.ChargeHistogram(M, q, 20, "Assigned charges", c.PlotCharges); err != nil {
			log.Println(err)
			return 1
		}
	}
	out := os.Stdout
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			log.Println(err)
			return 1
		}
		defer f.Close()
		out = f
	}
	if err := mol.PSFWrite(out, M, q); err != nil {
		log.Println(err)
		return 1
	}
	return 0
}
