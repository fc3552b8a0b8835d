package engine

// FindSpawn picks the spawn position for a joining session: the first
// cell in row-major order (left to right, top to bottom) not occupied by
// a static element or by any position in taken. The scan is
// deterministic so spawn placement is reproducible in tests.
//
// Under full occupancy there is no free cell; the origin is returned as
// a bounds-valid fallback rather than failing the join.
func FindSpawn(snap *SpaceSnapshot, taken map[Position]bool) Position {
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			p := Position{X: x, Y: y}
			if snap.HasStaticElement(p) || taken[p] {
				continue
			}
			return p
		}
	}
	return Position{X: 0, Y: 0}
}
