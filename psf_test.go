package mol

import (
	"bytes"
	"strings"
	"testing"

	v3 "github.com/leelasd/mmdevel/v3"
)

type testCharges map[string]float64

func (c testCharges) Charge(at *Atom) (float64, error) {
	q, ok := c[at.FFType]
	if !ok {
		return 0, CError{"no charge for type " + at.FFType, nil}
	}
	return q, nil
}

const wantOneAtomPSF = `PSF CMAP

       2 !NTITLE
 REMARKS Generated by pdb_to_psf.py, by Tom Joseph <thomas.joseph@mssm.edu>
 REMARKS Don't try MD with this, unless you're sure you know better than me

       1 !NATOM
       1 X       1 ALA  CA   CA      -0.270000     1.0000 0

       0 !NBOND

       0 !NTHETA

       0 !NPHI

       0 !NIMPHI

       0 !NCRTERM

`

func TestPSFWrite(Te *testing.T) {
	M := &Molecule{
		Atoms:  []*Atom{{ID: 1, Name: "CA", MolName: "ALA", MolID: 1, Chain: "X", FFType: "CA"}},
		Coords: v3.Zeros(1),
	}
	var buf bytes.Buffer
	err := PSFWrite(&buf, M, testCharges{"CA": -0.27})
	if err != nil {
		Te.Fatal(err)
	}
	if got := buf.String(); got != wantOneAtomPSF {
		Te.Errorf("PSF output differs from the reference.\ngot:\n%q\nwant:\n%q", got, wantOneAtomPSF)
	}
}

func TestPSFWriteNoCharger(Te *testing.T) {
	M := &Molecule{
		Atoms:  []*Atom{{ID: 1, Name: "CA", MolName: "ALA", MolID: 1, Chain: "X", FFType: "CA"}},
		Coords: v3.Zeros(1),
	}
	var buf bytes.Buffer
	if err := PSFWrite(&buf, M, nil); err == nil {
		Te.Error("writing without a charge table should fail")
	}
	if buf.Len() != 0 {
		Te.Error("nothing should be written without a charge table")
	}
}

func TestPSFWriteMissingCharge(Te *testing.T) {
	M := &Molecule{
		Atoms: []*Atom{
			{ID: 1, Name: "CA", MolName: "ALA", MolID: 1, Chain: "X", FFType: "CA"},
			{ID: 2, Name: "CB", MolName: "ALA", MolID: 1, Chain: "X", FFType: "CT3"},
		},
		Coords: v3.Zeros(2),
	}
	var buf bytes.Buffer
	err := PSFWrite(&buf, M, testCharges{"CA": -0.27})
	if err == nil {
		Te.Fatal("an atom with no resolvable charge should abort the write")
	}
	if !strings.Contains(err.Error(), "CT3") {
		Te.Errorf("the error should name the missing type, got: %v", err)
	}
}
