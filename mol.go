/*
 * mol.go, part of mmdevel.
 *
 * Copyright 2016 The mmdevel authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package mol

import (
	"fmt"
	"log"

	v3 "github.com/leelasd/mmdevel/v3"
)

/**Note: some functions here panic instead of returning errors. This is
 * because they are "fundamental" functions: if something goes wrong there,
 * the program is way-most-likely wrong and should crash, as nothing
 * sensible can be emitted from a broken structure.**/

// Atom contains the data read from one PDB ATOM record, except for the
// coordinates, which live in the Molecule's coordinate matrix.
type Atom struct {
	ID        int
	Name      string
	MolName   string //residue name, e.g. ALA or WAT
	MolID     int    //residue id; 0 when the PDB had it mangled
	Chain     string
	Occupancy float64
	Bfactor   float64
	//FFType is empty until a resolver assigns the force-field atom
	//type. It is the key used to look up the partial charge at
	//PSF-writing time.
	FFType string
}

//Atom methods

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	at := new(Atom)
	*at = *A
	return at
}

// Residue names treated as solvent. Waters come under several names
// depending on which package produced the PDB.
var solventResidues = []string{"WAT", "T3P", "HOH", "PW", "W"}

// Molecule contains the atoms of a structure plus their cartesian
// coordinates, which are kept apart from the atom data in an Nx3 matrix
// whose ith row belongs to the ith atom.
type Molecule struct {
	Atoms  []*Atom
	Coords *v3.Matrix
}

// NewMolecule builds a Molecule from the given atoms and coordinates.
// It returns an error if either is nil or if they don't match in size.
func NewMolecule(atoms []*Atom, coords *v3.Matrix) (*Molecule, error) {
	if atoms == nil {
		return nil, CError{"Supplied a nil atom slice", []string{"NewMolecule"}}
	}
	if coords == nil {
		return nil, CError{"Supplied a nil coordinate matrix", []string{"NewMolecule"}}
	}
	M := &Molecule{Atoms: atoms, Coords: coords}
	if err := M.Corrupted(); err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	return M, nil
}

//The molecule methods:

// Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

// Atom returns the atom with the given index. It panics if the index is
// out of range, so Molecule satisfies the Atomer interface.
func (M *Molecule) Atom(i int) *Atom {
	if i >= M.Len() {
		panic("mol: Requested atom out of bounds")
	}
	return M.Atoms[i]
}

// Corrupted checks whether the molecule is corrupted, i.e. the
// coordinates don't match the number of atoms.
func (M *Molecule) Corrupted() error {
	if M.Coords == nil {
		return CError{"Molecule has no coordinates", []string{"Corrupted"}}
	}
	if M.Len() != M.Coords.NVecs() {
		return CError{fmt.Sprintf("Inconsistent coordinates/atoms: Atoms %d, coords: %d", M.Len(), M.Coords.NVecs()), []string{"Corrupted"}}
	}
	return nil
}

// keep replaces the atom slice with the atoms satisfying pred, in their
// original order, and gathers the corresponding coordinate rows.
func (M *Molecule) keep(pred func(*Atom) bool) {
	kept := make([]*Atom, 0, len(M.Atoms))
	rows := make([]int, 0, len(M.Atoms))
	for i, at := range M.Atoms {
		if pred(at) {
			kept = append(kept, at)
			rows = append(rows, i)
		}
	}
	if len(kept) == len(M.Atoms) {
		return //nothing was dropped
	}
	M.Atoms = kept
	if len(rows) == 0 {
		//gonum matrices can't be empty
		M.Coords = nil
		return
	}
	c := v3.Zeros(len(rows))
	c.SomeVecs(M.Coords, rows)
	M.Coords = c
}

// StripSolvent removes every atom belonging to a solvent residue
// (WAT, T3P, HOH, PW or W), preserving the order of the survivors.
// Atom IDs are not renumbered.
func (M *Molecule) StripSolvent() {
	log.Printf("Stripping solvent residues.")
	M.keep(func(at *Atom) bool { return !isInString(solventResidues, at.MolName) })
}

// KeepOnlyName removes every atom whose name is not name (e.g. CA, CB,
// N, ...), preserving order. Atom IDs are not renumbered.
func (M *Molecule) KeepOnlyName(name string) {
	log.Printf("Keeping only %s atoms.", name)
	M.keep(func(at *Atom) bool { return at.Name == name })
}

// Renumber sets the ID of each atom to its current position in the
// molecule, starting from 1. Filtering leaves the original, possibly
// sparse IDs untouched; this is the opt-in pass that compacts them.
func (M *Molecule) Renumber() {
	for i, at := range M.Atoms {
		at.ID = i + 1
	}
}
