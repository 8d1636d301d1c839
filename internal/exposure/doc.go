// Package exposure turns hand-entered sidecar values into exact EXIF tag
// encodings.
//
// Each parser is a total function: it returns a value or an error and never
// panics, so a single malformed cell cannot abort the rest of a frame. The
// Builder composes the parsers into a TagSet partitioned into the Exif and GPS
// groups, collecting a Warning for every field it had to omit.
package exposure
