package builder

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/lawnchairsociety/towergen/internal/dice"
	"github.com/lawnchairsociety/towergen/internal/grid"
	"github.com/lawnchairsociety/towergen/internal/logger"
	"github.com/lawnchairsociety/towergen/internal/spawner"
)

// glyphSpawns maps template glyphs to the entity they place on a floor tile
var glyphSpawns = map[byte]string{
	'g': spawner.Goblin,
	'o': spawner.Orc,
	'^': spawner.BearTrap,
	'%': spawner.Rations,
	'!': spawner.HealthPotion,
}

// stampGlyph applies one template character to cell idx
func stampGlyph(ctx *BuildContext, idx int, ch byte) {
	g := ctx.Grid
	switch ch {
	case ' ':
		g.Tiles[idx] = grid.TileFloor
	case '#':
		g.Tiles[idx] = grid.TileWall
	case '@':
		g.Tiles[idx] = grid.TileFloor
		ctx.SetStart(g.PositionOf(idx))
	case '>':
		g.Tiles[idx] = grid.TileDownStairs
	default:
		name, ok := glyphSpawns[ch]
		if !ok {
			logger.Warning("Unknown prefab glyph", "glyph", string(ch))
			return
		}
		g.Tiles[idx] = grid.TileFloor
		ctx.SpawnList = append(ctx.SpawnList, spawner.Entry{Index: idx, Name: name})
	}
}

// templateSize returns the width and height of a template
func templateSize(template []string) (int, int) {
	w := 0
	for _, row := range template {
		w = max(w, len(row))
	}
	return w, len(template)
}

// PrefabConstant lays down a fixed hand-drawn level, centred on the map
type PrefabConstant struct {
	Level PrefabLevel
}

func NewPrefabConstant(level PrefabLevel) *PrefabConstant {
	return &PrefabConstant{Level: level}
}

func (p *PrefabConstant) Name() string {
	return "prefab_constant(" + p.Level.Name + ")"
}

func (p *PrefabConstant) BuildInitial(_ dice.Roller, ctx *BuildContext) error {
	g := ctx.Grid
	tw, th := templateSize(p.Level.Template)
	ox := max(0, (g.Width-tw)/2)
	oy := max(0, (g.Height-th)/2)

	for ty, row := range p.Level.Template {
		for tx := 0; tx < len(row); tx++ {
			x, y := ox+tx, oy+ty
			if g.InBounds(x, y) {
				stampGlyph(ctx, g.Index(x, y), row[tx])
			}
		}
	}
	ctx.TakeSnapshot()
	return nil
}

// PrefabSectional stamps a large structure at a fixed anchor of an existing map.
// The start and exit cells are left untouched.
type PrefabSectional struct {
	Section PrefabSection
}

func NewPrefabSectional(section PrefabSection) *PrefabSectional {
	return &PrefabSectional{Section: section}
}

func (p *PrefabSectional) Name() string {
	return "prefab_sectional(" + p.Section.Name + ")"
}

func (p *PrefabSectional) BuildMeta(_ dice.Roller, ctx *BuildContext) error {
	g := ctx.Grid
	s := p.Section
	sw, sh := templateSize(s.Template)

	var cx, cy int
	switch s.Horizontal {
	case PlaceLeft:
		cx = 0
	case PlaceCenter:
		cx = g.Width/2 - sw/2
	case PlaceRight:
		cx = (g.Width - 1) - sw
	}
	switch s.Vertical {
	case PlaceTop:
		cy = 0
	case PlaceMiddle:
		cy = g.Height/2 - sh/2
	case PlaceBottom:
		cy = (g.Height - 1) - sh
	}

	protected := mapset.New[int]()
	if ctx.StartingPosition != nil {
		protected.Put(g.Index(ctx.StartingPosition.X, ctx.StartingPosition.Y))
	}

	stamped := mapset.New[int]()
	for ty, row := range s.Template {
		for tx := 0; tx < len(row); tx++ {
			x, y := cx+tx, cy+ty
			if !interior(g, x, y) {
				continue
			}
			idx := g.Index(x, y)
			if protected.Has(idx) || g.Tiles[idx] == grid.TileDownStairs {
				continue
			}
			stamped.Put(idx)
		}
	}

	ctx.dropSpawns(stamped.Has)
	for ty, row := range s.Template {
		for tx := 0; tx < len(row); tx++ {
			x, y := cx+tx, cy+ty
			if g.InBounds(x, y) && stamped.Has(g.Index(x, y)) {
				stampGlyph(ctx, g.Index(x, y), row[tx])
			}
		}
	}
	ctx.TakeSnapshot()
	return nil
}

// RoomVaults stamps up to three depth-appropriate vaults onto open floor
type RoomVaults struct {
	Vaults []PrefabVault
}

func NewRoomVaults() *RoomVaults {
	return &RoomVaults{Vaults: Vaults}
}

func (*RoomVaults) Name() string {
	return "room_vaults"
}

func (r *RoomVaults) BuildMeta(rng dice.Roller, ctx *BuildContext) error {
	g := ctx.Grid
	depth := ctx.Depth()

	if rng.Roll(1, 6)+depth < 4 {
		return nil
	}

	var candidates []PrefabVault
	for _, v := range r.Vaults {
		if depth >= v.FirstDepth && depth <= v.LastDepth {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	used := mapset.New[int]()
	if ctx.StartingPosition != nil {
		used.Put(g.Index(ctx.StartingPosition.X, ctx.StartingPosition.Y))
	}

	count := min(rng.Roll(1, 3), len(candidates))
	for i := 0; i < count; i++ {
		pick := 0
		if len(candidates) > 1 {
			pick = rng.Roll(1, len(candidates)) - 1
		}
		vault := candidates[pick]

		positions := vaultPositions(g, vault, used)
		if len(positions) == 0 {
			continue
		}
		pos := positions[0]
		if len(positions) > 1 {
			pos = positions[rng.Roll(1, len(positions))-1]
		}

		stampVault(ctx, vault, pos, used)
		candidates = append(candidates[:pick], candidates[pick+1:]...)
		logger.Debug("Stamped vault", "vault", vault.Name, "at", pos.String())
	}
	return nil
}

// vaultPositions lists every top-left corner where the vault fits entirely on
// unused floor, clear of the map edge.
func vaultPositions(g *grid.Grid, vault PrefabVault, used mapset.Set[int]) []grid.Position {
	vw, vh := templateSize(vault.Template)
	var positions []grid.Position

	for y := 2; y+vh < g.Height-2; y++ {
		for x := 2; x+vw < g.Width-2; x++ {
			if vaultFits(g, x, y, vw, vh, used) {
				positions = append(positions, grid.Position{X: x, Y: y})
			}
		}
	}
	return positions
}

func vaultFits(g *grid.Grid, x, y, w, h int, used mapset.Set[int]) bool {
	for ty := 0; ty < h; ty++ {
		for tx := 0; tx < w; tx++ {
			idx := g.Index(x+tx, y+ty)
			if g.Tiles[idx] != grid.TileFloor || used.Has(idx) {
				return false
			}
		}
	}
	return true
}

func stampVault(ctx *BuildContext, vault PrefabVault, pos grid.Position, used mapset.Set[int]) {
	g := ctx.Grid
	vw, vh := templateSize(vault.Template)

	ctx.dropSpawns(func(idx int) bool {
		x, y := g.XY(idx)
		return x >= pos.X && x < pos.X+vw && y >= pos.Y && y < pos.Y+vh
	})

	for ty, row := range vault.Template {
		for tx := 0; tx < len(row); tx++ {
			idx := g.Index(pos.X+tx, pos.Y+ty)
			stampGlyph(ctx, idx, row[tx])
			used.Put(idx)
		}
	}
	ctx.TakeSnapshot()
}
