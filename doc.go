/*
 * doc.go, part of mmdevel.
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

/*Package mol provides the atom and molecule structures used to turn PDB
coordinate files into barebones PSF topologies, plus the readers and
writers for both formats.


	**Capabilities**

    Reads PDB files (ATOM records only), plain or gzip/zstd compressed.

    Strips solvent residues and filters atoms by name, keeping atoms and
	coordinates consistent.

    Writes minimal PSF files with per-atom force-field types and partial
	charges, in the exact column layout downstream MD tooling expects.

    Holds coordinates in a gonum-backed Nx3 matrix (package v3), apart
	from the atom metadata.

The force-field enrichment itself lives in the subpackages: top assigns
atom types and charges from GROMACS itp/top files, rtf reads CHARMM
residue topology files. The pdb2psf command under cmd/ ties the whole
pipeline together.
*/
package mol
