/*
 * interfaces.go, part of mmdevel.
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

// Atomer is the basic interface for a set of atoms.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the collection. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

// Charger resolves the partial charge for an atom at PSF-writing time.
// The flat force-field-type to charge table built from GROMACS
// atomtypes sections implements it; the residue-scoped CHARMM table
// deliberately does not, as that lookup shape has never been joined to
// PSF output.
type Charger interface {
	Charge(at *Atom) (float64, error)
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
	//The decorate slice should contain a list of functions in the calling stack, plus, for each function, any relevant information, or nothing.
}

// FileError is the interface for errors produced while reading a
// structure or topology file.
type FileError interface {
	Error
	Critical() bool
	FileName() string
}
