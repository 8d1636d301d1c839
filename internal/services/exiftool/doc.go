// Package exiftool drives a persistent exiftool process that writes EXIF tag
// sets into image files in place.
//
// A single "exiftool -stay_open True -@ -" process is started lazily on the
// first write and reused for every file of a batch; each write sends one
// argument per line followed by -execute and waits for the {ready} marker.
// Close must be called to let the process exit cleanly.
package exiftool
