package top

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	mol "github.com/leelasd/mmdevel"
	"github.com/leelasd/mmdevel/zwrap"
)

var fi func(string) []string = strings.Fields
var sf func(string, ...any) string = fmt.Sprintf

// ErrNoAtoms signals that type resolution was attempted with no atoms
// loaded. Callers are expected to treat it as a usage bug on their side.
var ErrNoAtoms = errors.New("no atoms loaded")

func parseints(s ...string) ([]int, error) {
	r := make([]int, 0, len(s))
	for _, v := range s {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}
	return r, nil
}

type StringReader interface {
	ReadString(byte) (string, error)
}

// cond tracks #ifdef conditional blocks. Conditional content is always
// skipped, whatever the define. While skipping, only #endif is honored:
// nested conditionals and section headers inside the block are ignored
// along with everything else.
type cond struct {
	skip bool
}

// read reports whether the line is to be processed. Directives
// themselves never are.
func (c *cond) read(line string) bool {
	if c.skip {
		if strings.HasPrefix(line, "#endif") {
			c.skip = false
		}
		return false
	}
	if strings.HasPrefix(line, "#if") {
		c.skip = true
		return false
	}
	if strings.HasPrefix(line, "#endif") {
		return false
	}
	return true
}

// itpState is the per-file parser state. Each file gets a fresh one so
// no section state leaks across files; only the FF atom cursor
// persists for the whole resolution.
type itpState struct {
	section string
	cond
}

// AtomType holds one entry of a Gromacs [ atomtypes ] section.
type AtomType struct {
	Name    string
	AtNum   int
	Mass    float64
	Charge  float64
	Ptype   string
	Sigma   float64
	Epsilon float64
}

// Charges is the flat force-field-type to partial-charge table
// collected from [ atomtypes ] sections. It is the table PSF emission
// draws from.
type Charges map[string]float64

// Charge returns the table's charge for at's force-field type. A type
// absent from the table, including the empty type of an atom that was
// never resolved, is an error.
func (C Charges) Charge(at *mol.Atom) (float64, error) {
	q, ok := C[at.FFType]
	if !ok {
		return 0, Error{sf("No charge for atom %d: force-field type %q is not in the table", at.ID, at.FFType), "", []string{"Charge"}, true}
	}
	return q, nil
}

// FF gathers what resolving itp files against a molecule produces: the
// molecule with its atoms typed, the atom types read, and the charge
// table. The cursor marks the next molecule atom to be typed and runs
// over the whole resolution, across files.
type FF struct {
	Mol     *mol.Molecule
	ATypes  []*AtomType
	Charges Charges
	cursor  int
}

// NewFF returns an FF ready to resolve atom types for M.
func NewFF(M *mol.Molecule) *FF {
	return &FF{Mol: M, ATypes: make([]*AtomType, 0), Charges: make(Charges)}
}

// Resolve walks the given itp files, in order, against the molecule:
// every [ atoms ] entry, across all files, is matched positionally to
// the next molecule atom, and [ atomtypes ] entries accumulate into
// the charge table. Files are decompressed on the fly when their names
// call for it.
// Call it before any filtering: the positional match only makes sense
// against the full structure the topology was written for.
func (F *FF) Resolve(paths ...string) error {
	if F.Mol == nil || F.Mol.Len() == 0 {
		return ErrNoAtoms
	}
	for _, path := range paths {
		file, err := zwrap.Open(path)
		if err != nil {
			return Error{err.Error(), path, []string{"Resolve"}, true}
		}
		err = F.Fill(bufio.NewReader(file))
		file.Close()
		if err != nil {
			if err2, ok := err.(Error); ok {
				err2.filename = path
				return errDecorate(err2, "Resolve")
			}
			return err
		}
	}
	return nil
}

// Fill processes one itp stream against the molecule with a fresh
// parser state. Most callers want Resolve instead.
func (F *FF) Fill(r StringReader) error {
	if F.Mol == nil || F.Mol.Len() == 0 {
		return ErrNoAtoms
	}
	st := new(itpState)
	var err error
	var s string
	for s, err = r.ReadString('\n'); err == nil; s, err = r.ReadString('\n') {
		if err2 := F.readLine(s, st); err2 != nil {
			return err2
		}
	}
	if !errors.Is(err, io.EOF) {
		return Error{err.Error(), "", []string{"Fill"}, true}
	}
	//a file not ending in a newline still gets its last line read
	if s != "" {
		return F.readLine(s, st)
	}
	return nil
}

// readLine dispatches one itp line on the current parser state. Section
// headers are matched against their canonical spelling with inner
// spaces, the one Gromacs itself writes.
func (F *FF) readLine(s string, st *itpState) error {
	s = strings.TrimSpace(s)
	if !st.read(s) {
		return nil
	}
	switch {
	case strings.HasPrefix(s, "[ atoms ]"):
		st.section = "atoms"
	case strings.HasPrefix(s, "[ atomtypes ]"):
		st.section = "atomtypes"
	case strings.HasPrefix(s, "[ "):
		st.section = ""
	case strings.HasPrefix(s, ";") || s == "":
		//comments and blank lines
	default:
		switch st.section {
		case "atoms":
			return F.assignType(s)
		case "atomtypes":
			return F.addAtomType(s)
		}
	}
	return nil
}

// assignType consumes one [ atoms ] entry and types the molecule atom
// at the cursor with it. The entry's residue id must agree with the
// atom's: the whole scheme rests on plain positional order, so a
// disagreement means the files don't describe the same structure, and
// going on would assign physically wrong types with no other symptom.
func (F *FF) assignType(s string) error {
	toks := fi(s)
	if len(toks) < 5 {
		return Error{sf("Atom entry needs at least 5 fields, got %d: %s", len(toks), s), "", []string{"assignType"}, true}
	}
	ids, err := parseints(toks[0], toks[2])
	if err != nil {
		return Error{sf("Malformed atom entry %q: %s", s, err.Error()), "", []string{"assignType"}, true}
	}
	resid := ids[1]
	if F.cursor >= F.Mol.Len() {
		return Error{sf("Topology lists more atoms than the %d in the structure", F.Mol.Len()), "", []string{"assignType"}, true}
	}
	at := F.Mol.Atom(F.cursor)
	if at.MolID != resid {
		return Error{sf("WHOA! ITP mismatch: resid %d in PDB vs %d in ITP", at.MolID, resid), "", []string{"assignType"}, true}
	}
	at.FFType = toks[1]
	F.cursor++
	return nil
}

// addAtomType consumes one [ atomtypes ] entry. Two layouts are
// accepted: the 7-field one (name, atomic number, mass, charge,
// particle type, sigma, epsilon), also taken when extra trailing
// fields are present, and the reduced 6-field one without the atomic
// number. Only the charge is load-bearing downstream; the other
// numeric columns vary too much across force fields to be worth
// failing on, so they are read leniently. A later entry for the same
// name overwrites the recorded charge.
func (F *FF) addAtomType(s string) error {
	toks := fi(s)
	at := new(AtomType)
	var charge string
	switch {
	case len(toks) >= 7:
		at.Name = toks[0]
		at.AtNum, _ = strconv.Atoi(toks[1])
		at.Mass, _ = strconv.ParseFloat(toks[2], 64)
		charge = toks[3]
		at.Ptype = toks[4]
		at.Sigma, _ = strconv.ParseFloat(toks[5], 64)
		at.Epsilon, _ = strconv.ParseFloat(toks[6], 64)
	case len(toks) == 6:
		at.Name = toks[0]
		at.Mass, _ = strconv.ParseFloat(toks[1], 64)
		charge = toks[2]
		at.Ptype = toks[3]
		at.Sigma, _ = strconv.ParseFloat(toks[4], 64)
		at.Epsilon, _ = strconv.ParseFloat(toks[5], 64)
	default:
		return Error{sf("Atom type entry needs at least 6 fields, got %d: %s", len(toks), s), "", []string{"addAtomType"}, true}
	}
	var err error
	at.Charge, err = strconv.ParseFloat(charge, 64)
	if err != nil {
		return Error{sf("Malformed charge in atom type entry %q: %s", s, err.Error()), "", []string{"addAtomType"}, true}
	}
	F.ATypes = append(F.ATypes, at)
	F.Charges[at.Name] = at.Charge
	return nil
}

//Errors

// errDecorate is a helper function that asserts that the error
// implements mol.Error and decorates the error with the caller's name
// before returning it.
func errDecorate(err error, caller string) error {
	err2, ok := err.(mol.Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

// Error is the general structure for Gromacs topology errors. It
// fulfills mol.Error and mol.FileError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("itp file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// FileName returns the file to which the failing topology was associated
func (err Error) FileName() string { return err.filename }

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }
