package debugdraw

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/udisondev/floorspawn/internal/model"
	"github.com/udisondev/floorspawn/internal/tilemap"
)

// Snapshot is everything the terminal view needs from one search.
type Snapshot struct {
	Floor      *tilemap.Tilemap
	Blocked    func(c tilemap.Cell) bool // nil: nothing blocked
	Candidates []model.Vec3
	Player     *model.Vec3
}

// Renderer draws a snapshot as a styled character grid, top row = highest y.
// Each cell is 2 characters wide for a square-ish appearance.
type Renderer struct {
	wall      lipgloss.Style
	floor     lipgloss.Style
	candidate lipgloss.Style
	player    lipgloss.Style
	empty     lipgloss.Style
	legend    lipgloss.Style
}

// NewRenderer creates a renderer writing for w. Colour support is
// detected from w; non-terminal writers get plain text.
func NewRenderer(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		wall: r.NewStyle().
			Background(lipgloss.Color("#3a3a3a")).
			Foreground(lipgloss.Color("#555555")),
		floor: r.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#444466")),
		candidate: r.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#00ff88")),
		player: r.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#ffff44")).
			Bold(true),
		empty: r.NewStyle(),
		legend: r.NewStyle().
			Foreground(lipgloss.Color("#888888")),
	}
}

// Render converts the snapshot into a terminal string.
func (r *Renderer) Render(s Snapshot) string {
	if s.Floor == nil {
		return "no floor tilemap"
	}
	bounds := s.Floor.CellBounds()
	if bounds.Empty() {
		return "empty floor tilemap"
	}

	candidateSet := make(map[tilemap.Cell]bool, len(s.Candidates))
	for _, pos := range s.Candidates {
		candidateSet[s.Floor.WorldToCell(pos)] = true
	}

	playerCell, hasPlayer := tilemap.Cell{}, false
	if s.Player != nil {
		playerCell, hasPlayer = s.Floor.WorldToCell(*s.Player), true
	}

	maxC := bounds.Max()
	rows := make([]string, 0, bounds.Size.Y)
	for y := maxC.Y - 1; y >= bounds.Min.Y; y-- {
		var b strings.Builder
		for x := bounds.Min.X; x < maxC.X; x++ {
			c := tilemap.Cell{X: x, Y: y}
			b.WriteString(r.renderCell(s, c, hasPlayer && c == playerCell, candidateSet[c]))
		}
		rows = append(rows, b.String())
	}

	rows = append(rows, r.legend.Render("@@ player  .. candidate  ## blocked  ,, floor"))
	return strings.Join(rows, "\n")
}

// renderCell priority: Player > Blocked > Candidate > Floor > Empty.
func (r *Renderer) renderCell(s Snapshot, c tilemap.Cell, isPlayer, isCandidate bool) string {
	switch {
	case isPlayer:
		return r.player.Render("@@")
	case s.Blocked != nil && s.Blocked(c):
		return r.wall.Render("##")
	case isCandidate:
		return r.candidate.Render("..")
	case s.Floor.HasTile(c):
		return r.floor.Render(",,")
	default:
		return r.empty.Render("  ")
	}
}
