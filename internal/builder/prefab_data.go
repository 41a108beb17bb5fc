package builder

// PrefabLevel is a hand-drawn level stamped by PrefabConstant
type PrefabLevel struct {
	Name     string
	Template []string
}

// HorizontalPlacement anchors a section horizontally
type HorizontalPlacement int

const (
	PlaceLeft HorizontalPlacement = iota
	PlaceCenter
	PlaceRight
)

// VerticalPlacement anchors a section vertically
type VerticalPlacement int

const (
	PlaceTop VerticalPlacement = iota
	PlaceMiddle
	PlaceBottom
)

// PrefabSection is a large fixed structure stamped into an existing map
type PrefabSection struct {
	Name       string
	Template   []string
	Horizontal HorizontalPlacement
	Vertical   VerticalPlacement
}

// PrefabVault is a small fixed room stamped onto open floor between depths
// FirstDepth and LastDepth inclusive.
type PrefabVault struct {
	Name       string
	Template   []string
	FirstDepth int
	LastDepth  int
}

// OvergrownKeep is the level used when the shape composer falls back to a prefab
var OvergrownKeep = PrefabLevel{
	Name: "overgrown_keep",
	Template: []string{
		"################################",
		"#      #        g       #      #",
		"#  !   #   ####   ####  #   %  #",
		"#      #   #          #  #     #",
		"###  ###   #   ####   #  ##  ###",
		"#          #   #  #   #        #",
		"#   o                      ^   #",
		"#          #   #  #   #        #",
		"###  ###   #   ####   #  ##  ###",
		"#      #   #          #  #     #",
		"#  %   #   ####   ####  #   !  #",
		"#      #        g       #      #",
		"################################",
	},
}

// SunkenFort opens to the west so it joins whatever lies beside it
var SunkenFort = PrefabSection{
	Name: "sunken_fort",
	Template: []string{
		"     ######### ",
		"     #   o   # ",
		"     # ##### # ",
		"       #   # # ",
		"     # # ! # # ",
		"     # #   #   ",
		"     # ## ## # ",
		"     #   ^   # ",
		"  #### ### ### ",
		"       g       ",
		"  #### ### ### ",
		"     # %   ^ # ",
		"     ######### ",
	},
	Horizontal: PlaceRight,
	Vertical:   PlaceTop,
}

// Vaults lists every vault the RoomVaults stage may choose from
var Vaults = []PrefabVault{
	{
		Name: "trap_ring",
		Template: []string{
			"     ",
			" ^^^ ",
			" ^!^ ",
			" ^^^ ",
			"     ",
		},
		FirstDepth: 0,
		LastDepth:  100,
	},
	{
		Name: "broken_pillars",
		Template: []string{
			"      ",
			" #g#  ",
			" %#!# ",
			"  ^#  ",
			"      ",
		},
		FirstDepth: 0,
		LastDepth:  100,
	},
	{
		Name: "orc_shrine",
		Template: []string{
			"      ",
			" #  # ",
			"   o  ",
			" #  # ",
			" ^##^ ",
			"      ",
		},
		FirstDepth: 3,
		LastDepth:  100,
	},
}
