package game

// Preset is a named board configuration.
type Preset struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Mines  int    `json:"mines"`
}

var (
	Classic      = Preset{Name: "classic", Width: 10, Height: 10, Mines: 8}
	Beginner     = Preset{Name: "beginner", Width: 9, Height: 9, Mines: 10}
	Intermediate = Preset{Name: "intermediate", Width: 16, Height: 16, Mines: 40}
	Expert       = Preset{Name: "expert", Width: 30, Height: 16, Mines: 99}
)

// Presets lists the built-in configurations.
func Presets() []Preset {
	return []Preset{Classic, Beginner, Intermediate, Expert}
}

// PresetByName looks up a built-in preset.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// NewBoardFromPreset builds a board from a preset.
func NewBoardFromPreset(p Preset, opts ...Option) (*Board, error) {
	return NewBoard(p.Width, p.Height, p.Mines, opts...)
}
