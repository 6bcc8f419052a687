// Package polar models a single OPERA ODIM-H5 polar volume scan.
//
// # Geometry conventions
//
// A volume is a stack of elevations (tilts). Each elevation has its own ray
// count, azimuthal spacing, and range-gate layout — this is a ragged
// geometry: naz and nr vary per elevation, so per-elevation cubes are
// allocated at the volume's [nazMax]x[nrMax] and padded with NaN beyond the
// elevation's own [naz][nr] bounds.
//
// Units: elevation and azimuth angles are radians. Ranges, range starts,
// range scales, and heights are meters. Nyquist velocities and radial
// velocities are m/s. Azimuths increase monotonically modulo 2π with
// uniform per-elevation spacing 2π/naz[e].
//
// Missing or invalid measurements are represented as math.NaN(), never as a
// sentinel float value — sentinel conversion (e.g. ODIM's 1e5/1e6 legacy
// encodings) happens only at the ingest/write boundary, not inside this
// package.
package polar
