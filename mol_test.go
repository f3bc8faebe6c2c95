package mol

import (
	"strings"
	"testing"

	v3 "github.com/leelasd/mmdevel/v3"
)

const filterPDB = `ATOM      1  N   ALA     1      11.104   6.134  -6.344  1.00  0.00
ATOM      2  CA  ALA     1      12.560   6.351  -6.301  1.00  0.00
ATOM      3  OH2 HOH W   2      -0.127   1.539  10.386  1.00  0.00
ATOM      4  OH2 T3P W   3      -2.421   3.321   9.011  1.00  0.00
`

func filterMol(Te *testing.T) *Molecule {
	M, err := PDBRead(strings.NewReader(filterPDB))
	if err != nil {
		Te.Fatal(err)
	}
	return M
}

func TestStripSolvent(Te *testing.T) {
	M := filterMol(Te)
	M.StripSolvent()
	if M.Len() != 2 {
		Te.Fatalf("%d atoms left after the strip, want 2", M.Len())
	}
	for i := 0; i < M.Len(); i++ {
		if isInString(solventResidues, M.Atom(i).MolName) {
			Te.Errorf("solvent atom survived the strip: %+v", M.Atom(i))
		}
	}
	//order and IDs of the survivors are untouched
	if M.Atom(0).ID != 1 || M.Atom(1).ID != 2 {
		Te.Errorf("survivor IDs changed: %d %d", M.Atom(0).ID, M.Atom(1).ID)
	}
	if M.Coords.NVecs() != 2 {
		Te.Errorf("coordinates not gathered with the atoms: %d rows", M.Coords.NVecs())
	}
	if x := M.Coords.At(1, 0); x != 12.560 {
		Te.Errorf("survivor coordinates scrambled: x = %f", x)
	}
	//a second pass must change nothing
	M.StripSolvent()
	if M.Len() != 2 {
		Te.Errorf("second strip changed the count to %d", M.Len())
	}
}

func TestStripSolventAll(Te *testing.T) {
	M, err := PDBRead(strings.NewReader(`ATOM      1  OH2 WAT W   1      -0.127   1.539  10.386  1.00  0.00
`))
	if err != nil {
		Te.Fatal(err)
	}
	M.StripSolvent()
	if M.Len() != 0 {
		Te.Fatalf("%d atoms left, want none", M.Len())
	}
	M.StripSolvent() //still no-op on an empty molecule
}

func TestKeepOnlyName(Te *testing.T) {
	M := filterMol(Te)
	wantCA := 0
	for i := 0; i < M.Len(); i++ {
		if M.Atom(i).Name == "CA" {
			wantCA++
		}
	}
	M.KeepOnlyName("CA")
	if M.Len() != wantCA {
		Te.Fatalf("%d atoms kept, want %d", M.Len(), wantCA)
	}
	for i := 0; i < M.Len(); i++ {
		if M.Atom(i).Name != "CA" {
			Te.Errorf("kept an atom named %q", M.Atom(i).Name)
		}
	}
	//IDs stay sparse until Renumber is asked for
	if M.Atom(0).ID != 2 {
		Te.Errorf("survivor ID changed to %d", M.Atom(0).ID)
	}
	M.Renumber()
	if M.Atom(0).ID != 1 {
		Te.Errorf("renumbering gave ID %d, want 1", M.Atom(0).ID)
	}
}

func TestAtomCopy(Te *testing.T) {
	M := filterMol(Te)
	at := M.Atom(0).Copy()
	at.Name = "XX"
	at.FFType = "QQ"
	if M.Atom(0).Name == "XX" || M.Atom(0).FFType == "QQ" {
		Te.Error("copy aliases the original atom")
	}
}

func TestNewMolecule(Te *testing.T) {
	atoms := []*Atom{{ID: 1, Name: "CA", MolName: "ALA", MolID: 1, Chain: "A"}}
	if _, err := NewMolecule(atoms, v3.Zeros(1)); err != nil {
		Te.Error(err)
	}
	if _, err := NewMolecule(atoms, v3.Zeros(3)); err == nil {
		Te.Error("mismatched coordinates should be rejected")
	}
	if _, err := NewMolecule(nil, v3.Zeros(1)); err == nil {
		Te.Error("nil atoms should be rejected")
	}
	if _, err := NewMolecule(atoms, nil); err == nil {
		Te.Error("nil coordinates should be rejected")
	}
}
