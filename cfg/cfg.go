// Package cfg reads conversion jobs from YAML files. A job file carries the
// same parameters as the pdb2psf command-line flags, so repetitive
// conversions can be kept under version control instead of in shell history.
package cfg

import (
	"bufio"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Cfg is a structure containing the parameters of a conversion job. It can be
// instanced through the New function or by hand. If it is instanced by hand,
// please use the Check method to check if the Cfg meets the requirements.
type Cfg struct {
	// PDB is the structure file to convert. It may be gzip- or
	// zstd-compressed.
	PDB string `yaml:"pdb"`

	// GromacsITP are the Gromacs itp/top files with the [ atoms ] and
	// [ atomtypes ] sections. They are read in order, against the atoms of
	// the PDB in order.
	GromacsITP []string `yaml:"gromacsITP"`

	// CharmmTop is a CHARMM residue topology (rtf) file. Its charge table is
	// only reported, not written to the PSF.
	CharmmTop string `yaml:"charmmTop"`

	// KeepAtom discards every atom whose name is not this one (e.g. "CA").
	// Solvent is stripped regardless.
	KeepAtom string `yaml:"keepAtom"`

	// Renumber reassigns sequential atom IDs after filtering.
	Renumber bool `yaml:"renumber"`

	// PlotCharges is the basename for a per-atom charge histogram. Empty
	// means no plot.
	PlotCharges string `yaml:"plotCharges"`

	// Out is the PSF file to write. Empty means standard output.
	Out string `yaml:"out"`
}

// New opens and decodes the specified job file. The file must be a YAML file.
// This function automatically calls the Check method to check the integrity
// of Cfg.
func New(path string) (*Cfg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c Cfg
	r := bufio.NewReader(f)
	dec := yaml.NewDecoder(r)
	err = dec.Decode(&c)
	if err != nil {
		return nil, err
	}

	err = c.Check()
	if err != nil {
		return nil, fmt.Errorf("Check: %w", err)
	}

	return &c, nil
}

// Check checks if Cfg is correct. It returns an error if a field doesn't meet
// the requirements.
func (c *Cfg) Check() error {
	if c.PDB == "" {
		return fmt.Errorf("a pdb file is required")
	}

	if c.PlotCharges != "" && len(c.GromacsITP) == 0 {
		return fmt.Errorf("plotCharges needs a charge table, so at least one gromacsITP file")
	}

	return nil
}
