package engine

// TileKind is the closed set of terrain kinds the baseline rule module
// understands. Custom rule modules may introduce additional movement
// costs per kind via rules.Movement.TerrainCost, but blocks_movement /
// blocks_vision remain authoritative on the Tile itself.
type TileKind string

const (
	TileOpen      TileKind = "open"
	TileBlocked   TileKind = "blocked"
	TileDifficult TileKind = "difficult"
	TileWater     TileKind = "water"
	TilePit       TileKind = "pit"
)

type Tile struct {
	X              int      `json:"x" yaml:"x"`
	Y              int      `json:"y" yaml:"y"`
	Kind           TileKind `json:"kind" yaml:"kind"`
	BlocksMovement bool     `json:"blocks_movement" yaml:"blocks_movement"`
	BlocksVision   bool     `json:"blocks_vision" yaml:"blocks_vision"`
}

type GridSize struct {
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

type Grid struct {
	Kind     string   `json:"kind" yaml:"kind" validate:"eq=square"`
	Size     GridSize `json:"size" yaml:"size"`
	CellSize int      `json:"cell_size" yaml:"cell_size"`
}

type GameMap struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Grid            Grid   `json:"grid" yaml:"grid"`
	Terrain         []Tile `json:"terrain" yaml:"terrain"`
	FogOfWarEnabled bool   `json:"fog_of_war_enabled" yaml:"fog_of_war_enabled"`

	// terrainIndex is a derived lookup built by index(); it is never
	// serialized and never trusted as a source of truth over Terrain.
	terrainIndex map[Position]*Tile `json:"-" yaml:"-"`
}

// index lazily builds (or rebuilds) the coordinate -> tile lookup. It
// must be called after any mutation of Terrain and before TileAt is
// relied on for a fresh map instance (clone.go rebuilds it for every
// clone so callers never observe a stale index).
func (m *GameMap) index() {
	m.terrainIndex = make(map[Position]*Tile, len(m.Terrain))
	for i := range m.Terrain {
		t := &m.Terrain[i]
		m.terrainIndex[Position{X: t.X, Y: t.Y}] = t
	}
}

// TileAt returns the tile at p, or an implicit open tile if the map has
// no terrain entry for that cell (most cells on a hand-authored map are
// left as the implicit default rather than listed explicitly).
func (m *GameMap) TileAt(p Position) Tile {
	if m.terrainIndex == nil {
		m.index()
	}
	t, ok := m.terrainIndex[p]
	if ok && (t.X != p.X || t.Y != p.Y) {
		// The indexed tile was rewritten in place since index() ran.
		m.index()
		t, ok = m.terrainIndex[p]
	}
	if ok {
		return *t
	}
	return Tile{X: p.X, Y: p.Y, Kind: TileOpen}
}

// InBounds reports whether p falls within [0, W) x [0, H).
func (m *GameMap) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Grid.Size.W && p.Y < m.Grid.Size.H
}
