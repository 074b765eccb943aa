package profile

// SeedGroup tags a seed with the layout group that produced it.
type SeedGroup int

const (
	SeedTop SeedGroup = iota
	SeedSide
	SeedUnderfloor
	SeedFarField
	SeedFrontWing
)

func (g SeedGroup) String() string {
	switch g {
	case SeedTop:
		return "top"
	case SeedSide:
		return "side"
	case SeedUnderfloor:
		return "underfloor"
	case SeedFarField:
		return "farfield"
	case SeedFrontWing:
		return "frontwing"
	}
	return "unknown"
}

// Seed is one streamline start point in body-normalized coordinates plus
// the world-space height the resulting line is drawn at.
type Seed struct {
	Group  SeedGroup
	Xi     float64
	Eta    float64
	Height float64
}

// Upstream eta where top and side seeds are released.
const seedUpstreamEta = -8.0

// BuildSeeds expands the profile's seed layout into a flat list. Tracing and
// particle-chain construction both consume the same list, indexed by
// position.
func BuildSeeds(p *Profile) []Seed {
	l := p.Seeds
	seeds := make([]Seed, 0, 2*l.TopLanes+l.SideCount+l.UnderfloorCount+l.FarFieldCount+8)

	// Lateral lanes across the body width, two heights per lane.
	for i := 0; i < l.TopLanes; i++ {
		xi := laneOffset(i, l.TopLanes, 1.6)
		for _, h := range l.TopHeights {
			seeds = append(seeds, Seed{Group: SeedTop, Xi: xi, Eta: seedUpstreamEta, Height: h})
		}
	}

	// Centerline seeds at increasing heights show the side-view deflection.
	for i := 0; i < l.SideCount; i++ {
		frac := float64(i) / float64(max(l.SideCount-1, 1))
		h := 0.1 + frac*(2.2*p.Extents.HalfHeight)
		seeds = append(seeds, Seed{Group: SeedSide, Xi: 0.02, Eta: seedUpstreamEta, Height: h})
	}

	// Ground-effect zone under the floor.
	for i := 0; i < l.UnderfloorCount; i++ {
		xi := laneOffset(i, l.UnderfloorCount, 0.7)
		seeds = append(seeds, Seed{Group: SeedUnderfloor, Xi: xi, Eta: seedUpstreamEta, Height: l.UnderfloorHeight})
	}

	// Far-field lines stay nearly straight and frame the disturbed region.
	for i := 0; i < l.FarFieldCount; i++ {
		side := 1.0
		if i%2 == 1 {
			side = -1.0
		}
		xi := side * (2.6 + 0.8*float64(i/2))
		seeds = append(seeds, Seed{Group: SeedFarField, Xi: xi, Eta: seedUpstreamEta, Height: 0.6})
	}

	if fw := l.FrontWing; fw != nil {
		for i := 0; i < fw.Count; i++ {
			xi := laneOffset(i, fw.Count, 1.1)
			seeds = append(seeds, Seed{Group: SeedFrontWing, Xi: xi, Eta: fw.Eta, Height: fw.Height})
		}
	}

	return seeds
}

// laneOffset spreads n lanes symmetrically across [-halfSpan, halfSpan],
// avoiding xi=0 exactly so no seed sits on the stagnation streamline.
func laneOffset(i, n int, halfSpan float64) float64 {
	if n == 1 {
		return 0.04
	}
	frac := float64(i)/float64(n-1)*2 - 1
	xi := frac * halfSpan
	if xi == 0 {
		xi = 0.04
	}
	return xi
}
