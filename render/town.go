package render

import "github.com/lixenwraith/mathfall/constant"

// buildingHeights is the skyline profile in tenths of the strip height
var buildingHeights = [constant.TownBuildings]int{6, 9, 5, 7, 10, 4, 8, 6, 9, 5, 7, 10, 6, 8, 4, 9, 7, 5}

// StandingBuildings returns how many buildings survive at health
func StandingBuildings(health int) int {
	if health <= 0 {
		return 0
	}
	if health >= constant.TownHealthMax {
		return constant.TownBuildings
	}
	return (health*constant.TownBuildings + constant.TownHealthMax - 1) / constant.TownHealthMax
}

// collapsed reports whether building i is rubble when only standing survive
// Buildings fall in a scattered order rather than left to right
func collapsed(i, standing int) bool {
	rank := (i * 7) % constant.TownBuildings
	return rank >= standing
}

// Building is one skyline slot; Height is in tenths of the strip
type Building struct {
	Height   int
	Standing bool
}

// Skyline returns every building slot at health
func Skyline(health int) [constant.TownBuildings]Building {
	var out [constant.TownBuildings]Building
	standing := StandingBuildings(health)
	for i := range out {
		out[i] = Building{Height: buildingHeights[i], Standing: !collapsed(i, standing)}
	}
	return out
}

// DrawTown draws the defended town across a cols x rows strip at (x0, y0)
func DrawTown(buf *RenderBuffer, x0, y0, cols, rows, health int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			buf.SetWithBg(x0+x, y0+y, ' ', RgbTownBackground, RgbTownBackground, constant.MaskTown)
		}
	}

	ground := y0 + rows - 1
	for x := 0; x < cols; x++ {
		buf.SetWithBg(x0+x, ground, '▀', RgbGround, RgbTownBackground, constant.MaskTown)
	}
	if rows < 2 {
		return
	}

	span := rows - 1
	for i, b := range Skyline(health) {
		left := x0 + i*cols/constant.TownBuildings
		right := x0 + (i+1)*cols/constant.TownBuildings - 1
		if right <= left {
			right = left + 1
		}

		if !b.Standing {
			for x := left; x < right; x++ {
				buf.SetWithBg(x, ground-1, '▃', RgbRubble, RgbTownBackground, constant.MaskTown)
			}
			continue
		}

		h := max(1, b.Height*span/10)
		for y := 0; y < h; y++ {
			for x := left; x < right; x++ {
				r, fg := '█', RgbBuilding
				if y%2 == 1 && (x-left)%2 == 1 {
					r, fg = '▪', RgbBuildingLit
				}
				buf.SetWithBg(x, ground-1-y, r, fg, RgbBuilding, constant.MaskTown)
			}
		}
	}
}
