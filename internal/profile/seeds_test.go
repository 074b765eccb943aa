package profile

import "testing"

func countGroup(seeds []Seed, g SeedGroup) int {
	n := 0
	for _, s := range seeds {
		if s.Group == g {
			n++
		}
	}
	return n
}

func TestBuildSeedsGroupCounts(t *testing.T) {
	p := ForVehicle(VehicleFormula)
	seeds := BuildSeeds(p)

	if got, want := countGroup(seeds, SeedTop), 2*p.Seeds.TopLanes; got != want {
		t.Errorf("top seeds = %d, want %d", got, want)
	}
	if got := countGroup(seeds, SeedSide); got != p.Seeds.SideCount {
		t.Errorf("side seeds = %d, want %d", got, p.Seeds.SideCount)
	}
	if got := countGroup(seeds, SeedUnderfloor); got != p.Seeds.UnderfloorCount {
		t.Errorf("underfloor seeds = %d, want %d", got, p.Seeds.UnderfloorCount)
	}
	if got := countGroup(seeds, SeedFarField); got != p.Seeds.FarFieldCount {
		t.Errorf("far-field seeds = %d, want %d", got, p.Seeds.FarFieldCount)
	}
	if got := countGroup(seeds, SeedFrontWing); got != p.Seeds.FrontWing.Count {
		t.Errorf("front-wing seeds = %d, want %d", got, p.Seeds.FrontWing.Count)
	}
}

func TestBuildSeedsNoFrontWingGroupWithoutWing(t *testing.T) {
	p := ForVehicle(VehicleSUV)
	if p.Seeds.FrontWing != nil {
		t.Fatalf("suv unexpectedly grew a front wing")
	}
	if got := countGroup(BuildSeeds(p), SeedFrontWing); got != 0 {
		t.Errorf("front-wing seeds without a wing: %d", got)
	}
}

func TestBuildSeedsAvoidStagnationStreamline(t *testing.T) {
	for _, v := range Vehicles() {
		for _, s := range BuildSeeds(ForVehicle(v)) {
			if s.Xi == 0 {
				t.Errorf("%s: seed %+v sits exactly on the centerline", v, s)
			}
		}
	}
}

func TestBuildSeedsUpstreamRelease(t *testing.T) {
	p := ForVehicle(VehicleGT)
	for _, s := range BuildSeeds(p) {
		if s.Group == SeedFrontWing {
			continue
		}
		// The body occupies roughly eta in [-1, 1]; bulk seeds release
		// well upstream so the traced lines enter the frame undisturbed.
		if s.Eta > -1 {
			t.Errorf("seed %+v released inside or behind the body", s)
		}
	}
}

func TestSeedGroupString(t *testing.T) {
	cases := map[SeedGroup]string{
		SeedTop:        "top",
		SeedSide:       "side",
		SeedUnderfloor: "underfloor",
		SeedFarField:   "farfield",
		SeedFrontWing:  "frontwing",
		SeedGroup(99):  "unknown",
	}
	for g, want := range cases {
		if got := g.String(); got != want {
			t.Errorf("SeedGroup(%d).String() = %q, want %q", g, got, want)
		}
	}
}
