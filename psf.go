package mol

import (
	"fmt"
	"io"
)

// The two REMARKS lines carried by every PSF this package emits.
// Downstream tools have consumed these exact bytes for years, so they
// stay as they are.
const (
	psfRemarks1 = " REMARKS Generated by pdb_to_psf.py, by Tom Joseph <thomas.joseph@mssm.edu>"
	psfRemarks2 = " REMARKS Don't try MD with this, unless you're sure you know better than me"
)

// PSFWrite renders M as a barebones PSF topology into out, in the
// X-PLOR/CMAP dialect. Each atom's partial charge is obtained from q;
// a missing charge makes the whole write fail, as a PSF record without
// a resolvable charge is unusable. The bond, angle, dihedral, improper
// and cross-term sections are emitted with zero counts.
func PSFWrite(out io.Writer, M *Molecule, q Charger) (err error) {
	if q == nil {
		return CError{"Can't write a PSF without a charge table. Resolve atom types first", []string{"PSFWrite"}}
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s", r)
		}
	}()
	_, err = fmt.Fprintf(out, "PSF CMAP\n\n")
	qerr(err)
	_, err = fmt.Fprintf(out, "%8d !NTITLE\n", 2)
	qerr(err)
	_, err = fmt.Fprintf(out, "%s\n%s\n\n", psfRemarks1, psfRemarks2)
	qerr(err)
	_, err = fmt.Fprintf(out, "%8d !NATOM\n", M.Len())
	qerr(err)
	for _, at := range M.Atoms {
		charge, cerr := q.Charge(at)
		if cerr != nil {
			return errDecorate(cerr, "PSFWrite")
		}
		_, err = fmt.Fprintf(out, "%8d %-4s %4d %-4s %-4s %-4s %12.6f %10.4f 0\n",
			at.ID, at.Chain, at.MolID, at.MolName, at.Name, at.FFType, charge, 1.0)
		qerr(err)
	}
	_, err = fmt.Fprintf(out, "\n%8d !NBOND\n\n", 0)
	qerr(err)
	_, err = fmt.Fprintf(out, "%8d !NTHETA\n\n", 0)
	qerr(err)
	_, err = fmt.Fprintf(out, "%8d !NPHI\n\n", 0)
	qerr(err)
	_, err = fmt.Fprintf(out, "%8d !NIMPHI\n\n", 0)
	qerr(err)
	_, err = fmt.Fprintf(out, "%8d !NCRTERM\n\n", 0)
	qerr(err)
	return nil
}
