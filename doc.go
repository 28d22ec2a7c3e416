/*
 * doc.go, part of goRSM.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

/*Package rsm reads X-ray diffraction Reciprocal Space Maps from the ASCII
raw files exported by the diffractometer and transforms them into q-space
or goniometer coordinates, ready to be plotted.


	**goRSM capabilities**

    Reads RAS raw-data files, plain or gzip-compressed.

    Reconstructs the shared two-theta grid and the per-scan angular
	offsets of an omega/2theta mesh.

    Transforms (omega, 2theta) goniometer angles into (qx, qz)
	reciprocal-space coordinates, for Cu-Kalpha1 radiation or any
	other wavelength.

    Applies instrumental offset corrections and rectangular
	region-of-interest crops, in angle space or in q space.

    The rsmplot subpackage turns the transformed points into a scatter
	figure with logarithmic intensity coloring.

All angles in the public API are in degrees. Q-space coordinates are in
inverse Angstroms.
*/
package rsm
