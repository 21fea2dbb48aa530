/*
Package iffbpl converts between ILBM image files and the raw planar
artifacts consumed by planar display hardware: interleaved and
non-interleaved bitplanes, chunky pixels and packed color register
palettes.
*/
package iffbpl

import "log"

// Converter drives the two conversion pipelines. Progress reports and
// the per-scanline and palette warnings go through the supplied
// logger; fatal conditions are returned as errors.
type Converter struct {
	logger *log.Logger
}

// New returns a Converter reporting through logger.
func New(logger *log.Logger) *Converter {
	return &Converter{
		logger: logger,
	}
}
