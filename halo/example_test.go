package halo_test

import (
	"fmt"
	"log"

	"github.com/katalvlaran/halomod/halo"
)

// Build a pipeline, read off the galaxy correlation, then retarget the
// sample by its number density.
func Example() {
	m, err := halo.New(
		halo.WithHOD("zheng05", map[string]float64{"m_min": 12.0}),
		halo.WithExclusion("sphere"),
		halo.WithRGrid([]float64{0.5, 2, 10}),
	)
	if err != nil {
		log.Fatal(err)
	}

	xi, err := m.CorrGal()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("computed xi at %d separations\n", len(xi))

	// Pin the mean galaxy density instead of the mass threshold; the
	// occupation threshold is solved for and only stale quantities recompute.
	ng, err := m.MeanGalDen()
	if err != nil {
		log.Fatal(err)
	}
	if err := m.Update(halo.WithNG(ng / 2)); err != nil {
		log.Fatal(err)
	}
	if _, err := m.CorrGal(); err != nil {
		log.Fatal(err)
	}
}
