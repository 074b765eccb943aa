// Terminal realization of the scene backend: primitives rasterize onto a
// character grid
package tui

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"aeroviz-sim/internal/flow"
	"aeroviz-sim/internal/scene"
)

// View window in world meters. Flow runs left to right across the screen.
const (
	viewZMin = -9.0
	viewZMax = 14.0
	viewXMin = -5.5
	viewXMax = 5.5
)

// Renderer implements scene.Backend. Primitives register themselves and
// Frame rasterizes whatever is currently visible.
type Renderer struct {
	mu    sync.Mutex
	prims map[string]gridPrim
	order []string
}

// NewRenderer creates an empty renderer.
func NewRenderer() *Renderer {
	return &Renderer{prims: make(map[string]gridPrim)}
}

// gridPrim is anything the renderer can rasterize.
type gridPrim interface {
	scene.Primitive
	raster(g *grid)
}

func (r *Renderer) register(id string, p gridPrim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.prims[id]; exists {
		return fmt.Errorf("duplicate primitive id %q", id)
	}
	r.prims[id] = p
	r.order = append(r.order, id)
	return nil
}

func (r *Renderer) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.prims, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// NewLineSet creates a polyline batch primitive.
func (r *Renderer) NewLineSet(id string, lines, maxPointsPerLine int) (scene.LineSet, error) {
	if lines < 0 || maxPointsPerLine <= 0 {
		return nil, fmt.Errorf("line set %q: invalid capacity %d x %d", id, lines, maxPointsPerLine)
	}
	ls := &lineSet{
		base:  base{r: r, id: id, visible: true},
		lines: make([][]scene.Point3, lines),
		cols:  make([][]flow.Color, lines),
	}
	if err := r.register(id, ls); err != nil {
		return nil, err
	}
	return ls, nil
}

// NewPointCloud creates a point primitive with fixed capacity.
func (r *Renderer) NewPointCloud(id string, capacity int) (scene.PointCloud, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("point cloud %q: negative capacity", id)
	}
	pc := &pointCloud{
		base: base{r: r, id: id, visible: true},
		pts:  make([]scene.Point3, capacity),
		cols: make([]flow.Color, capacity),
		size: make([]float64, capacity),
		set:  make([]bool, capacity),
	}
	if err := r.register(id, pc); err != nil {
		return nil, err
	}
	return pc, nil
}

// NewPatch creates a rectangular vertex-grid primitive.
func (r *Renderer) NewPatch(id string, rows, cols int) (scene.Patch, error) {
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("patch %q: grid %dx%d too small", id, rows, cols)
	}
	p := &patch{
		base: base{r: r, id: id, visible: true},
		rows: rows,
		cols: cols,
		pts:  make([]scene.Point3, rows*cols),
		cls:  make([]flow.Color, rows*cols),
	}
	if err := r.register(id, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Frame rasterizes all visible primitives into a colored string of the given
// cell size.
func (r *Renderer) Frame(width, height int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width < 4 || height < 2 {
		return ""
	}
	g := newGrid(width, height)
	// Patches first so particles and lines draw over them.
	ids := append([]string(nil), r.order...)
	sort.SliceStable(ids, func(i, j int) bool {
		_, pi := r.prims[ids[i]].(*patch)
		_, pj := r.prims[ids[j]].(*patch)
		return pi && !pj
	})
	for _, id := range ids {
		p := r.prims[id]
		p.raster(g)
	}
	return g.String()
}

type base struct {
	r       *Renderer
	id      string
	mu      sync.Mutex
	opacity float64
	visible bool
}

func (b *base) SetOpacity(o float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opacity = o
}

func (b *base) SetVisible(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible = v
}

func (b *base) Dispose() {
	b.r.remove(b.id)
}

// drawable reports whether the primitive is worth rasterizing and returns
// the opacity.
func (b *base) drawable() (float64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.visible || b.opacity < 0.05 {
		return 0, false
	}
	return b.opacity, true
}

type lineSet struct {
	base
	lines [][]scene.Point3
	cols  [][]flow.Color
}

func (l *lineSet) SetLine(idx int, pts []scene.Point3, colors []flow.Color) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if idx < 0 || idx >= len(l.lines) {
		return
	}
	l.lines[idx] = pts
	l.cols[idx] = colors
}

func (l *lineSet) raster(g *grid) {
	op, ok := l.drawable()
	if !ok {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for li, pts := range l.lines {
		if len(l.cols[li]) != len(pts) {
			continue
		}
		for pi, pt := range pts {
			g.plot(pt, '·', l.cols[li][pi], op)
		}
	}
}

type pointCloud struct {
	base
	pts  []scene.Point3
	cols []flow.Color
	size []float64
	set  []bool
}

func (p *pointCloud) SetPoint(idx int, pt scene.Point3, c flow.Color, size float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if idx < 0 || idx >= len(p.pts) {
		return
	}
	p.pts[idx] = pt
	p.cols[idx] = c
	p.size[idx] = size
	p.set[idx] = true
}

func (p *pointCloud) raster(g *grid) {
	op, ok := p.drawable()
	if !ok {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, pt := range p.pts {
		if !p.set[i] {
			continue
		}
		ch := '•'
		if p.size[i] < 0.06 {
			ch = '∙'
		}
		g.plot(pt, ch, p.cols[i], op)
	}
}

type patch struct {
	base
	rows, cols int
	pts        []scene.Point3
	cls        []flow.Color
}

func (p *patch) SetVertex(row, col int, pt scene.Point3, c flow.Color) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if row < 0 || row >= p.rows || col < 0 || col >= p.cols {
		return
	}
	p.pts[row*p.cols+col] = pt
	p.cls[row*p.cols+col] = c
}

func (p *patch) raster(g *grid) {
	op, ok := p.drawable()
	if !ok {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, pt := range p.pts {
		g.plot(pt, '▒', p.cls[i], op)
	}
}

// grid accumulates colored runes; later plots win.
type grid struct {
	w, h  int
	runes []rune
	color []flow.Color
	used  []bool
}

func newGrid(w, h int) *grid {
	return &grid{
		w: w, h: h,
		runes: make([]rune, w*h),
		color: make([]flow.Color, w*h),
		used:  make([]bool, w*h),
	}
}

// plot projects a world point into the top-view window and stamps a rune.
// Color channels are dimmed by the primitive opacity.
func (g *grid) plot(pt scene.Point3, ch rune, c flow.Color, opacity float64) {
	col := int((pt.Z - viewZMin) / (viewZMax - viewZMin) * float64(g.w-1))
	row := int((pt.X - viewXMin) / (viewXMax - viewXMin) * float64(g.h-1))
	if col < 0 || col >= g.w || row < 0 || row >= g.h {
		return
	}
	k := row*g.w + col
	g.runes[k] = ch
	g.color[k] = c.Scale(0.3 + 0.7*opacity)
	g.used[k] = true
}

func (g *grid) String() string {
	var sb strings.Builder
	for row := 0; row < g.h; row++ {
		for col := 0; col < g.w; col++ {
			k := row*g.w + col
			if !g.used[k] {
				sb.WriteByte(' ')
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(g.color[k])))
			sb.WriteString(style.Render(string(g.runes[k])))
		}
		if row != g.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hexColor(c flow.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", int(c.R*255), int(c.G*255), int(c.B*255))
}
