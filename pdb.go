/*
 * pdb.go, part of mmdevel.
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
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	v3 "github.com/leelasd/mmdevel/v3"
	"github.com/leelasd/mmdevel/zwrap"
)

// Parses one ATOM record of a PDB file. Returns an Atom with everything
// but the coordinates, which are returned separately as 3 float64.
// Column ranges are those of the PDB fixed-column layout; anything past
// column 66 (element, formal charge) is ignored.
func readPDBLine(line string) (*Atom, []float64, error) {
	if len(line) < 66 {
		return nil, nil, CError{fmt.Sprintf("Truncated ATOM record (%d columns)", len(line)), []string{"readPDBLine"}}
	}
	err := make([]error, 6) //accumulate errors to check at the end of the readed line.
	coords := make([]float64, 3)
	atom := new(Atom)
	atom.ID, err[0] = strconv.Atoi(strings.TrimSpace(line[6:11]))
	atom.Name = strings.TrimSpace(line[12:16])
	atom.MolName = strings.TrimSpace(line[17:20])
	atom.Chain = line[21:22]
	//PSF has no notion of an unset chain, so a blank one becomes "X".
	if atom.Chain == " " {
		atom.Chain = "X"
	}
	//Solvent blocks in some PDB dialects overflow this field with
	//non-numeric junk. Tolerated: those atoms get residue 0.
	molid, rerr := strconv.Atoi(strings.TrimSpace(line[22:26]))
	if rerr != nil {
		molid = 0
	}
	atom.MolID = molid
	coords[0], err[1] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], err[2] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], err[3] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	atom.Occupancy, err[4] = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	atom.Bfactor, err[5] = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	for i := range err {
		if err[i] != nil {
			return nil, nil, CError{err[i].Error(), []string{"readPDBLine"}}
		}
	}
	return atom, coords, nil
}

func pdbBufIORead(pdb io.Reader) (*Molecule, error) {
	molecule := make([]*Atom, 0)
	coords := make([]float64, 0)
	sc := bufio.NewScanner(pdb)
	contlines := 0 //count the lines read to better report errors
	for sc.Scan() {
		line := sc.Text()
		contlines++
		//Only ATOM records. No HETATM, no ANISOU, no multi-model.
		if !strings.HasPrefix(line, "ATOM  ") {
			continue
		}
		atom, c, err := readPDBLine(line)
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("pdbBufIORead: line %d", contlines))
		}
		molecule = append(molecule, atom)
		coords = append(coords, c...)
	}
	if err := sc.Err(); err != nil {
		return nil, CError{err.Error(), []string{"pdbBufIORead"}}
	}
	if len(molecule) == 0 {
		//gonum matrices can't be empty, so a PDB without ATOM
		//records gives a coordinate-less molecule.
		return &Molecule{Atoms: molecule}, nil
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "pdbBufIORead")
	}
	return NewMolecule(molecule, mcoords)
}

// PDBRead reads a PDB-format structure from pdb. Only ATOM records are
// read; the rest of the file is ignored.
func PDBRead(pdb io.Reader) (*Molecule, error) {
	mol, err := pdbBufIORead(pdb)
	return mol, errDecorate(err, "PDBRead")
}

// PDBFileRead reads the PDB file pdbname, transparently decompressing
// it when the name ends in .gz, .zst or .zstd. It reports the number
// of atoms read to the diagnostic log.
func PDBFileRead(pdbname string) (*Molecule, error) {
	pdbfile, err := zwrap.Open(pdbname)
	if err != nil {
		return nil, CError{err.Error(), []string{"PDBFileRead"}}
	}
	defer pdbfile.Close()
	mol, err := pdbBufIORead(pdbfile)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead "+pdbname)
	}
	log.Printf("Read %d atoms from %s.", mol.Len(), pdbname)
	return mol, nil
}
