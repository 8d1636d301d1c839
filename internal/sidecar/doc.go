// Package sidecar loads the per-frame CSV that accompanies a scanned roll.
//
// Every required column must be present in the header, but any cell may be
// empty. Empty cells load as nil fields; numeric cells that fail to parse also
// load as nil and are reported as warnings so one typo never rejects the file.
package sidecar
