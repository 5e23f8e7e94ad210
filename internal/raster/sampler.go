package raster

// Sampler is an indexed-colour texture addressed with wraparound: any u and v
// are valid and reduced modulo the texture size. Implementations return a
// colour index in [0, geometry.Colors).
type Sampler interface {
	Sample(u, v uint8) uint8
}
