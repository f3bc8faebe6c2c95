/*
 * doc.go, part of mmdevel
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

/*
Top reads Gromacs itp/top force-field topologies against a molecule.
It assigns a force-field atom type to each atom from the [ atoms ]
sections, by position, and collects a type-to-charge table from the
[ atomtypes ] sections. Only those two sections are read; the rest of
the Gromacs grammar is skipped.
*/
package top
