package sim

import (
	"errors"

	"aeroviz-sim/internal/flow"
	"aeroviz-sim/internal/scene"
)

// mockPrimitive records the last state pushed by the engines.
type mockPrimitive struct {
	id       string
	opacity  float64
	visible  bool
	disposed bool
}

func (m *mockPrimitive) SetOpacity(o float64) { m.opacity = o }
func (m *mockPrimitive) SetVisible(v bool)    { m.visible = v }
func (m *mockPrimitive) Dispose()             { m.disposed = true }

type mockLine struct {
	pts  []scene.Point3
	cols []flow.Color
}

type mockLineSet struct {
	mockPrimitive
	lines map[int]mockLine
}

func (m *mockLineSet) SetLine(idx int, pts []scene.Point3, colors []flow.Color) {
	m.lines[idx] = mockLine{pts: pts, cols: colors}
}

type mockPoint struct {
	p    scene.Point3
	c    flow.Color
	size float64
}

type mockPointCloud struct {
	mockPrimitive
	capacity int
	points   map[int]mockPoint
}

func (m *mockPointCloud) SetPoint(idx int, p scene.Point3, c flow.Color, size float64) {
	m.points[idx] = mockPoint{p: p, c: c, size: size}
}

type mockVertex struct {
	p scene.Point3
	c flow.Color
}

type mockPatch struct {
	mockPrimitive
	rows, cols int
	vertices   map[[2]int]mockVertex
}

func (m *mockPatch) SetVertex(row, col int, p scene.Point3, c flow.Color) {
	m.vertices[[2]int{row, col}] = mockVertex{p: p, c: c}
}

// mockBackend collects every primitive it hands out, keyed by id prefix, so
// tests can inspect engine output. failAll makes every constructor error.
type mockBackend struct {
	failAll     bool
	lineSets    []*mockLineSet
	pointClouds []*mockPointCloud
	patches     []*mockPatch
}

var errBackendFull = errors.New("backend out of resources")

func (b *mockBackend) NewLineSet(id string, lines, maxPointsPerLine int) (scene.LineSet, error) {
	if b.failAll {
		return nil, errBackendFull
	}
	ls := &mockLineSet{mockPrimitive: mockPrimitive{id: id, visible: true}, lines: make(map[int]mockLine)}
	b.lineSets = append(b.lineSets, ls)
	return ls, nil
}

func (b *mockBackend) NewPointCloud(id string, capacity int) (scene.PointCloud, error) {
	if b.failAll {
		return nil, errBackendFull
	}
	pc := &mockPointCloud{mockPrimitive: mockPrimitive{id: id, visible: true}, capacity: capacity, points: make(map[int]mockPoint)}
	b.pointClouds = append(b.pointClouds, pc)
	return pc, nil
}

func (b *mockBackend) NewPatch(id string, rows, cols int) (scene.Patch, error) {
	if b.failAll {
		return nil, errBackendFull
	}
	p := &mockPatch{mockPrimitive: mockPrimitive{id: id, visible: true}, rows: rows, cols: cols, vertices: make(map[[2]int]mockVertex)}
	b.patches = append(b.patches, p)
	return p, nil
}
