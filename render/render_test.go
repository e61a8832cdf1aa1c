package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/engine"
	"github.com/lixenwraith/mathfall/particle"
)

// recordScreen captures SetContent calls; unused Screen methods panic through the nil embed
type recordScreen struct {
	tcell.Screen
	runes map[[2]int]rune
	shows int
}

func newRecordScreen() *recordScreen {
	return &recordScreen{runes: make(map[[2]int]rune)}
}

func (s *recordScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	s.runes[[2]int{x, y}] = primary
}

func (s *recordScreen) Show() { s.shows++ }

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{30, "0:30"},
		{65, "1:05"},
		{600, "10:00"},
		{-3, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		num, den int
		want     float64
	}{
		{0, 10, 0},
		{5, 10, 0.5},
		{10, 10, 1},
		{15, 10, 1},
		{3, 0, 0},
		{-1, 10, 0},
	}
	for _, tt := range tests {
		if got := Fraction(tt.num, tt.den); got != tt.want {
			t.Errorf("Fraction(%d, %d) = %v, want %v", tt.num, tt.den, got, tt.want)
		}
	}
}

func TestGaugeColorRange(t *testing.T) {
	if GaugeColor(0) != RgbGaugeEmpty {
		t.Errorf("empty gauge should use the empty color")
	}
	low := GaugeColor(0.1)
	if low.R <= low.G {
		t.Errorf("low fill should be red dominant, got %+v", low)
	}
	full := GaugeColor(1)
	if full.G <= full.R {
		t.Errorf("full gauge should be green dominant, got %+v", full)
	}
	if GaugeColor(5) != full {
		t.Errorf("overfull gauge should clamp to full")
	}
}

func TestBackgroundColor(t *testing.T) {
	if BackgroundColor("plains") == DefaultBgRGB {
		t.Error("plains should have its own tint")
	}
	if BackgroundColor("plains") == BackgroundColor("ruins") {
		t.Error("plains and ruins should differ")
	}
	if BackgroundColor("unknown") != DefaultBgRGB {
		t.Error("unknown background should fall back to default")
	}
}

func TestAddBgKeepsForeground(t *testing.T) {
	buf := NewRenderBuffer(2, 1)
	fg := RGB{10, 20, 30}
	buf.SetFgOnly(0, 0, '7', fg, tcell.AttrNone, constant.MaskUI)

	buf.Set(0, 0, 0, RGB{200, 200, 200}, RGB{200, 50, 0}, BlendAddBg, 1, constant.MaskField)
	cell := buf.Get(0, 0)
	want := AddScaled(DefaultBgRGB, RGB{200, 50, 0}, 1)
	if cell.Bg != want {
		t.Errorf("bg = %+v, want %+v", cell.Bg, want)
	}
	if cell.Fg != fg || cell.Rune != '7' {
		t.Errorf("foreground changed: %+v", cell)
	}
	if cell.Mask != constant.MaskUI|constant.MaskField {
		t.Errorf("mask = %#x", cell.Mask)
	}

	buf.Set(1, 0, 0, RGB{}, RGB{200, 50, 0}, BlendAddBg, 0, constant.MaskField)
	if got := buf.Get(1, 0).Bg; got != DefaultBgRGB {
		t.Errorf("zero weight add changed bg: %+v", got)
	}
}

func TestCellCanvasClearKeepsGlyphs(t *testing.T) {
	buf := NewRenderBuffer(4, 2)
	buf.SetFgOnly(1, 1, '+', RGB{255, 255, 255}, tcell.AttrNone, constant.MaskUI)
	tint := RGB{30, 10, 40}
	buf.SetBackground(tint)

	NewCellCanvas(buf, 0, 0, 4, 2, 8, 16).Clear()

	cell := buf.Get(1, 1)
	if cell.Rune != '+' || cell.Fg != (RGB{255, 255, 255}) {
		t.Errorf("clear overwrote the glyph: %+v", cell)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			c := buf.Get(x, y)
			if c.Bg != tint {
				t.Errorf("cell %d,%d bg = %+v, want %+v", x, y, c.Bg, tint)
			}
			if c.Mask&constant.MaskField == 0 {
				t.Errorf("cell %d,%d missing field mask", x, y)
			}
		}
	}
}

func newTestCanvas(cols, rows int) (*RenderBuffer, *CellCanvas) {
	buf := NewRenderBuffer(cols, rows)
	c := NewCellCanvas(buf, 0, 0, cols, rows, 8, 16)
	c.Clear()
	return buf, c
}

func TestCellCanvasFillCircleAccumulates(t *testing.T) {
	buf, c := newTestCanvas(10, 5)
	red := particle.RGBA{R: 100, A: 1}

	c.FillCircle(4, 8, 4, red)
	if got := buf.Get(0, 0).Bg.R; got != DefaultBgRGB.R+100 {
		t.Fatalf("first fill R = %d, want %d", got, DefaultBgRGB.R+100)
	}

	c.FillCircle(4, 8, 4, red)
	c.FillCircle(4, 8, 4, red)
	if got := buf.Get(0, 0).Bg.R; got != 255 {
		t.Errorf("additive fill should saturate, got R = %d", got)
	}
	if got := buf.Get(1, 0).Bg; got != DefaultBgRGB {
		t.Errorf("neighbor outside the disc changed: %+v", got)
	}
	if buf.Get(0, 0).Mask&constant.MaskField == 0 {
		t.Error("filled cell should carry the field mask")
	}
}

func TestCellCanvasSubCellDiscLightsOwnCell(t *testing.T) {
	buf, c := newTestCanvas(10, 5)

	// radius 1 misses every cell center
	c.FillCircle(10, 2, 1, particle.RGBA{R: 255, G: 255, B: 255, A: 1})

	got := buf.Get(1, 0).Bg
	if got.R <= DefaultBgRGB.R || got.R > DefaultBgRGB.R+20 {
		t.Errorf("sub-cell disc should add a faint glow, got %+v", got)
	}
	if buf.Get(0, 0).Bg != DefaultBgRGB {
		t.Error("sub-cell disc leaked into a neighbor")
	}
}

func TestCellCanvasRadialFalloff(t *testing.T) {
	buf, c := newTestCanvas(20, 5)
	inner := particle.RGBA{R: 200, A: 1}
	outer := particle.RGBA{R: 200, A: 0}

	c.FillRadial(84, 40, 40, inner, outer)

	center := buf.Get(10, 2).Bg.R
	edge := buf.Get(13, 2).Bg.R
	if center <= edge {
		t.Errorf("radial gradient should fade outward: center %d, edge %d", center, edge)
	}
	if buf.Get(19, 2).Bg != DefaultBgRGB {
		t.Error("cells beyond the radius should be untouched")
	}
}

func TestCellCanvasClipsOutsideRegion(t *testing.T) {
	buf, c := newTestCanvas(4, 2)
	c.FillCircle(-200, -200, 30, particle.RGBA{R: 255, A: 1})
	c.FillRadial(1000, 1000, 30, particle.RGBA{R: 255, A: 1}, particle.RGBA{})
	c.Text(-500, 8, "12 + 3", particle.RGBA{R: 255, A: 1})

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if cell := buf.Get(x, y); cell.Bg != DefaultBgRGB || cell.Rune != 0 {
				t.Fatalf("cell %d,%d changed: %+v", x, y, cell)
			}
		}
	}
}

func TestCellCanvasTextCentered(t *testing.T) {
	buf, c := newTestCanvas(11, 3)
	white := particle.RGBA{R: 255, G: 255, B: 255, A: 1}

	c.Text(44, 20, "abc", white)

	for i, want := range "abc" {
		cell := buf.Get(4+i, 1)
		if cell.Rune != want {
			t.Errorf("cell %d rune = %q, want %q", 4+i, cell.Rune, want)
		}
		if cell.Fg != (RGB{255, 255, 255}) {
			t.Errorf("cell %d fg = %+v, want white", 4+i, cell.Fg)
		}
	}
}

func TestCellCanvasRegionOffset(t *testing.T) {
	buf := NewRenderBuffer(10, 6)
	c := NewCellCanvas(buf, 2, 1, 4, 4, 8, 16)
	c.FillCircle(4, 8, 4, particle.RGBA{G: 100, A: 1})

	if got := buf.Get(2, 1).Bg.G; got != DefaultBgRGB.G+100 {
		t.Errorf("origin cell G = %d, want %d", got, DefaultBgRGB.G+100)
	}
	if w, h := c.FieldSize(); w != 32 || h != 64 {
		t.Errorf("FieldSize = %v x %v, want 32 x 64", w, h)
	}
}

func TestStandingBuildings(t *testing.T) {
	tests := []struct {
		health, want int
	}{
		{100, constant.TownBuildings},
		{0, 0},
		{-10, 0},
		{50, 9},
		{10, 2},
		{1, 1},
	}
	for _, tt := range tests {
		if got := StandingBuildings(tt.health); got != tt.want {
			t.Errorf("StandingBuildings(%d) = %d, want %d", tt.health, got, tt.want)
		}
	}
}

func TestCollapseOrderIsPermutation(t *testing.T) {
	for standing := 0; standing <= constant.TownBuildings; standing++ {
		up := 0
		for i := 0; i < constant.TownBuildings; i++ {
			if !collapsed(i, standing) {
				up++
			}
		}
		if up != standing {
			t.Errorf("standing %d: %d buildings up", standing, up)
		}
	}
}

func TestDrawTownRubble(t *testing.T) {
	full := NewRenderBuffer(36, 6)
	DrawTown(full, 0, 0, 36, 6, 100)
	ruined := NewRenderBuffer(36, 6)
	DrawTown(ruined, 0, 0, 36, 6, 0)

	count := func(b *RenderBuffer, r rune) int {
		n := 0
		for y := 0; y < 6; y++ {
			for x := 0; x < 36; x++ {
				if b.Get(x, y).Rune == r {
					n++
				}
			}
		}
		return n
	}

	if count(full, '▃') != 0 {
		t.Error("full health town should have no rubble")
	}
	if count(ruined, '█') != 0 {
		t.Error("destroyed town should have no standing walls")
	}
	if count(ruined, '▃') == 0 {
		t.Error("destroyed town should show rubble")
	}
}

// staticScene is a fixed snapshot with one label drawn at the field center
type staticScene struct {
	snap  engine.Snapshot
	label string
}

func (s staticScene) Snapshot() engine.Snapshot { return s.snap }

func (s staticScene) Draw(c particle.Canvas) {
	if s.label != "" {
		c.Text(40, 40, s.label, particle.RGBA{R: 255, G: 255, B: 255, A: 1})
	}
}

func rowString(b *RenderBuffer, y int) string {
	w, _ := b.Size()
	out := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		r := b.Get(x, y).Rune
		if r == 0 {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}

func containsRow(b *RenderBuffer, s string) bool {
	_, h := b.Size()
	for y := 0; y < h; y++ {
		if indexOf(rowString(b, y), s) >= 0 {
			return true
		}
	}
	return false
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(80, 40, 16)
	if l.FieldTop != 1 || l.FieldRows != 38 || l.InputRow != 39 {
		t.Errorf("layout = %+v", l)
	}
	if l.TownRows != 6 {
		t.Errorf("town rows = %d, want 6", l.TownRows)
	}

	tiny := ComputeLayout(10, 3, 16)
	if tiny.TownRows != 1 || tiny.FieldRows != 1 {
		t.Errorf("tiny layout = %+v", tiny)
	}
}

func TestRendererPlayingFrame(t *testing.T) {
	r := NewRenderer(8, 16)
	w, h := r.Resize(80, 30)
	if w != 640 || h != 28*16 {
		t.Fatalf("field size = %v x %v", w, h)
	}

	scene := staticScene{
		snap: engine.Snapshot{
			Status:     engine.StatusPlaying,
			Mode:       engine.PenaltyDefense,
			Level:      2,
			TimeLeft:   65,
			Duration:   90,
			Score:      120,
			TownHealth: 80,
			Quota:      5,
			Answered:   3,
			Background: "plains",
		},
		label: "7 × 8",
	}
	r.Render(scene, "56")

	hud := rowString(r.Buffer(), 0)
	for _, want := range []string{"Score 120", "Level 2", "1:05", "Q 3/5", "Town", " 80"} {
		if indexOf(hud, want) < 0 {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}
	if !containsRow(r.Buffer(), "> 56_") {
		t.Error("input line should echo the typed answer")
	}
	if !containsRow(r.Buffer(), "7 × 8") {
		t.Error("equation label should be drawn in the field")
	}
	if r.Buffer().Background() != BackgroundColor("plains") {
		t.Error("field should use the level background")
	}

	screen := newRecordScreen()
	r.Flush(screen)
	if screen.shows != 1 {
		t.Errorf("Show called %d times", screen.shows)
	}
	if len(screen.runes) != 80*30 {
		t.Errorf("flushed %d cells, want %d", len(screen.runes), 80*30)
	}
	if screen.runes[[2]int{1, 29}] != '>' {
		t.Errorf("input prompt not flushed, got %q", screen.runes[[2]int{1, 29}])
	}
}

func TestRendererScoreModeOmitsTown(t *testing.T) {
	r := NewRenderer(8, 16)
	r.Resize(80, 20)
	r.Render(staticScene{snap: engine.Snapshot{Status: engine.StatusPlaying, Mode: engine.PenaltyScore, Level: 1, TimeLeft: 30, Duration: 30}}, "")

	if indexOf(rowString(r.Buffer(), 0), "Town") >= 0 {
		t.Error("score mode HUD should not show town health")
	}
	if containsRow(r.Buffer(), "Q ") {
		t.Error("quota should be hidden when the level has none")
	}
}

func TestRendererOverlays(t *testing.T) {
	r := NewRenderer(8, 16)
	r.Resize(80, 24)

	r.Render(staticScene{snap: engine.Snapshot{Status: engine.StatusWaiting, Level: 1}}, "ignored")
	if !containsRow(r.Buffer(), "M A T H F A L L") {
		t.Error("waiting screen should show the title overlay")
	}
	if containsRow(r.Buffer(), "ignored") {
		t.Error("input should not be echoed while waiting")
	}

	r.Render(staticScene{snap: engine.Snapshot{Status: engine.StatusEnded, Mode: engine.PenaltyDefense, Level: 3, Score: 90, TownHealth: 40, Background: "ruins"}}, "")
	for _, want := range []string{"G A M E   O V E R", "Final score  90", "Town health  40", "play again"} {
		if !containsRow(r.Buffer(), want) {
			t.Errorf("ended overlay missing %q", want)
		}
	}

	// field cells are desaturated beneath the overlay
	if cell := r.Buffer().Get(0, 2); cell.Bg == BackgroundColor("ruins") {
		t.Errorf("ended field should be grayed, got %+v", cell.Bg)
	}
}

func TestSkyline(t *testing.T) {
	for _, b := range Skyline(100) {
		if !b.Standing || b.Height <= 0 {
			t.Fatalf("full health skyline has a fallen building: %+v", b)
		}
	}
	up := 0
	for _, b := range Skyline(50) {
		if b.Standing {
			up++
		}
	}
	if up != StandingBuildings(50) {
		t.Errorf("skyline at 50 has %d standing, want %d", up, StandingBuildings(50))
	}
}

func TestOverlayLines(t *testing.T) {
	if OverlayLines(engine.Snapshot{Status: engine.StatusPlaying}) != nil {
		t.Error("no overlay while playing")
	}
	score := OverlayLines(engine.Snapshot{Status: engine.StatusEnded, Mode: engine.PenaltyScore, Score: 5})
	for _, l := range score {
		if indexOf(l, "Town") >= 0 {
			t.Error("score mode game over should not report town health")
		}
	}
}
