package top

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	mol "github.com/leelasd/mmdevel"
)

const testPDB = `ATOM      1  N   ALA     1      11.104   6.134  -6.344  1.00  0.00
ATOM      2  CA  ALA     1      12.560   6.351  -6.301  1.00  0.00
TER
ATOM      4  OH2 WAT W   2      -0.127   1.539  10.386  1.00  0.00
END
`

func testMol(Te *testing.T) *mol.Molecule {
	M, err := mol.PDBRead(strings.NewReader(testPDB))
	if err != nil {
		Te.Fatal(err)
	}
	if M.Len() != 3 {
		Te.Fatalf("test structure should have 3 atoms, got %d", M.Len())
	}
	return M
}

func TestResolve(Te *testing.T) {
	M := testMol(Te)
	F := NewFF(M)
	err := F.Resolve("tops/mini.itp")
	if err != nil {
		Te.Fatal(err)
	}
	types := []string{"NH1", "CT1", ""} //the water is past the topology's 2 entries
	for i, want := range types {
		if got := M.Atom(i).FFType; got != want {
			Te.Errorf("atom %d: force-field type %q, want %q", i, got, want)
		}
	}
	if F.cursor != 2 {
		Te.Errorf("cursor should sit at 2 after resolution, got %d", F.cursor)
	}
	//both atomtypes layouts, including a trailing-comment line
	charges := map[string]float64{"NH1": -0.27, "CT1": 0.07, "OT": -0.834, "HT": 0.417}
	for name, want := range charges {
		got, ok := F.Charges[name]
		if !ok {
			Te.Errorf("no charge recorded for type %s", name)
			continue
		}
		if got != want {
			Te.Errorf("type %s: charge %f, want %f", name, got, want)
		}
	}
	if len(F.ATypes) != 4 {
		Te.Errorf("read %d atom types, want 4", len(F.ATypes))
	}
	fmt.Println("charge table:", F.Charges)
}

func TestResolveAllAtoms(Te *testing.T) {
	M := testMol(Te)
	F := NewFF(M)
	err := F.Resolve("tops/full.itp")
	if err != nil {
		Te.Fatal(err)
	}
	if F.cursor != M.Len() {
		Te.Errorf("cursor should end at %d, got %d", M.Len(), F.cursor)
	}
	if ff := M.Atom(2).FFType; ff != "OT" {
		Te.Errorf("water atom typed %q, want OT", ff)
	}
}

func TestMismatchAborts(Te *testing.T) {
	M := testMol(Te)
	F := NewFF(M)
	err := F.Resolve("tops/mismatch.itp")
	if err == nil {
		Te.Fatal("misaligned topology must abort the resolution")
	}
	if !strings.Contains(err.Error(), "resid 1 in PDB vs 9 in ITP") {
		Te.Errorf("mismatch diagnostic should name both residue ids, got: %v", err)
	}
	//the first entry was aligned, everything from the bad one on is untouched
	if ff := M.Atom(0).FFType; ff != "NH1" {
		Te.Errorf("atom 0 typed %q, want NH1", ff)
	}
	for i := 1; i < M.Len(); i++ {
		if ff := M.Atom(i).FFType; ff != "" {
			Te.Errorf("atom %d should be left untyped, got %q", i, ff)
		}
	}
}

func TestResolveNeedsAtoms(Te *testing.T) {
	F := NewFF(&mol.Molecule{})
	err := F.Resolve("tops/mini.itp")
	if !errors.Is(err, ErrNoAtoms) {
		Te.Errorf("resolving with no atoms loaded should give ErrNoAtoms, got: %v", err)
	}
	err = NewFF(nil).Fill(bufio.NewReader(strings.NewReader("[ atoms ]\n")))
	if !errors.Is(err, ErrNoAtoms) {
		Te.Errorf("filling with no molecule should give ErrNoAtoms, got: %v", err)
	}
}

const wantPSF = `PSF CMAP

       2 !NTITLE
 REMARKS Generated by pdb_to_psf.py, by Tom Joseph <thomas.joseph@mssm.edu>
 REMARKS Don't try MD with this, unless you're sure you know better than me

       2 !NATOM
       1 X       1 ALA  N    NH1     -0.270000     1.0000 0
       2 X       1 ALA  CA   CT1      0.070000     1.0000 0

       0 !NBOND

       0 !NTHETA

       0 !NPHI

       0 !NIMPHI

       0 !NCRTERM

`

// The whole conversion: read the structure, type it from the topology,
// drop the water, write the PSF.
func TestPSFPipeline(Te *testing.T) {
	M := testMol(Te)
	F := NewFF(M)
	if err := F.Resolve("tops/mini.itp"); err != nil {
		Te.Fatal(err)
	}
	M.StripSolvent()
	if M.Len() != 2 {
		Te.Fatalf("2 atoms should survive the solvent strip, got %d", M.Len())
	}
	var buf bytes.Buffer
	if err := mol.PSFWrite(&buf, M, F.Charges); err != nil {
		Te.Fatal(err)
	}
	if got := buf.String(); got != wantPSF {
		Te.Errorf("PSF output differs from the reference.\ngot:\n%q\nwant:\n%q", got, wantPSF)
	}
}
