/*
Rtf reads CHARMM-style residue topology files (top_whatever.rtf). It
collects, per residue, the atom-type to partial-charge assignments of
the ATOM cards and the connectivity of the BOND cards. Angles,
dihedrals and impropers are not derived from the bonds yet, and the
residue-scoped table built here is not joined into PSF output: that
join has never existed, so mol.Charger is deliberately left
unimplemented by Topology.
*/
package rtf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/leelasd/mmdevel/zwrap"
)

var fi func(string) []string = strings.Fields
var sf func(string, ...any) string = fmt.Sprintf

// Topology holds the per-residue tables of a CHARMM topology file:
// atom-type to charge, and bond membership keyed by "name1-name2" in
// both orders.
type Topology struct {
	Charges map[string]map[string]float64
	Bonds   map[string]map[string]bool
}

// rtfState is the parser state: the residue whose cards are being read.
type rtfState struct {
	residue string
}

// Returns the card without CHARMM comments (everything from a '!' on),
// trailing and leading spaces, tabs and newlines.
func cleanCard(s string) string {
	f := strings.Split(s, "!")[0]
	return strings.Trim(f, "\n\t ")
}

// Read parses the CHARMM residue topology file at path, decompressing
// on the fly when the name calls for it. Residue names are reported to
// the diagnostic log as they are seen, and the collected charge table
// is dumped there at the end.
func Read(path string) (*Topology, error) {
	file, err := zwrap.Open(path)
	if err != nil {
		return nil, Error{err.Error(), path, []string{"Read"}, true}
	}
	defer file.Close()
	T, err := read(bufio.NewReader(file))
	if err != nil {
		if err2, ok := err.(Error); ok {
			err2.filename = path
			return nil, err2
		}
		return nil, err
	}
	//TODO: derive a bond table the PSF writer can use
	log.Printf("WARNING: No bond/angle/dihedral/improper information, yet!")
	log.Println(T.Charges)
	return T, nil
}

func read(r *bufio.Reader) (*Topology, error) {
	T := &Topology{
		Charges: make(map[string]map[string]float64),
		Bonds:   make(map[string]map[string]bool),
	}
	st := new(rtfState)
	var err error
	var s string
	for s, err = r.ReadString('\n'); err == nil; s, err = r.ReadString('\n') {
		if strings.HasSuffix(strings.TrimSpace(s), "-") {
			//a continuation folds the next physical line into this
			//one, but neither ends up carrying anything we read
			if _, err = r.ReadString('\n'); err != nil {
				break
			}
			continue
		}
		if cerr := T.readCard(s, st); cerr != nil {
			return nil, cerr
		}
	}
	if !errors.Is(err, io.EOF) {
		return nil, Error{err.Error(), "", []string{"read"}, true}
	}
	//a file not ending in a newline still gets its last card read
	if s != "" && !strings.HasSuffix(strings.TrimSpace(s), "-") {
		if cerr := T.readCard(s, st); cerr != nil {
			return nil, cerr
		}
	}
	return T, nil
}

// readCard dispatches one card on the parser state. Only RESI, ATOM
// and BOND cards are read; every other card type is ignored.
func (T *Topology) readCard(s string, st *rtfState) error {
	l := cleanCard(s)
	if l == "" {
		return nil
	}
	switch {
	case strings.HasPrefix(l, "RESI"):
		f := fi(l)
		if len(f) < 2 {
			return Error{sf("RESI card without a residue name: %s", l), "", []string{"readCard"}, true}
		}
		st.residue = f[1]
		//NTER and CTER specific atom charges
		T.Charges[st.residue] = map[string]float64{"NH3": -0.30}
		T.Bonds[st.residue] = make(map[string]bool)
		log.Println(st.residue)
	case strings.HasPrefix(l, "ATOM"):
		if st.residue == "" {
			return Error{"ATOM card before any RESI card", "", []string{"readCard"}, true}
		}
		f := fi(l)
		if len(f) != 4 {
			return Error{sf("ATOM card needs 4 fields, got %d: %s", len(f), l), "", []string{"readCard"}, true}
		}
		q, err := strconv.ParseFloat(f[3], 64)
		if err != nil {
			return Error{sf("Malformed charge in ATOM card %q: %s", l, err.Error()), "", []string{"readCard"}, true}
		}
		T.Charges[st.residue][f[2]] = q
	case strings.HasPrefix(l, "BOND"):
		if st.residue == "" {
			return Error{"BOND card before any RESI card", "", []string{"readCard"}, true}
		}
		f := fi(l)[1:]
		if len(f)%2 != 0 {
			return Error{sf("BOND card with an odd number of atoms: %s", l), "", []string{"readCard"}, true}
		}
		for i := 0; i < len(f); i += 2 {
			//order of atoms doesn't matter in a bond
			T.Bonds[st.residue][f[i]+"-"+f[i+1]] = true
			T.Bonds[st.residue][f[i+1]+"-"+f[i]] = true
		}
	}
	return nil
}

//Errors

// Error is the general structure for CHARMM topology errors. It
// fulfills mol.Error and mol.FileError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("rtf file %s error: %s", err.filename, err.message)
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
