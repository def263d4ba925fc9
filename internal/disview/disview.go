// Package disview implements an interactive, read-only stepper over a
// compiled FuncDef's instruction stream. It is built on the same
// Bubble Tea/Lipgloss stack (and the same model/Init/Update/View shape)
// used for an interactive line editor elsewhere in the retrieved pack,
// repurposed here for single-keystroke navigation over an already-finished
// instruction list instead of free-form text input.
//
// Nothing in this package can alter the FuncDef it displays: there is no
// evaluator underneath it, only a cursor into Code, a stack of outer
// frames so a CLOSURE instruction can be stepped into, and a running
// total of Opcode.StackEffect values for everything executed so far in
// the current frame.
package disview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dstlang/dst/lang/compiler"
	"github.com/dstlang/dst/lang/token"
	"github.com/dstlang/dst/lang/value"
)

const titleMinWidth = 24

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	pcStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#767676"))

	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#04B575")).
			Bold(true)

	posStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAF00"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676"))

	effectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B"))
)

// frame is one level of the stepper's call-into-closure stack: the
// FuncDef being viewed at that level, the cursor into its Code, and the
// running stack-effect total accumulated by stepping through it so far.
type frame struct {
	fd     *compiler.FuncDef
	pc     int
	effect int
}

// model is the Bubble Tea model for one stepper session.
type model struct {
	frames []frame
	width  int
}

// New constructs the initial model for stepping through fd.
func New(fd *compiler.FuncDef) tea.Model {
	return model{frames: []frame{{fd: fd}}, width: 80}
}

// Run starts the stepper as a full-screen Bubble Tea program.
func Run(fd *compiler.FuncDef) error {
	_, err := tea.NewProgram(New(fd), tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) top() frame { return m.frames[len(m.frames)-1] }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "down", "j", "n":
			m.step(1)
			return m, nil

		case "up", "k", "p":
			m.step(-1)
			return m, nil

		case "g", "home":
			top := &m.frames[len(m.frames)-1]
			top.pc, top.effect = 0, 0
			return m, nil

		case "G", "end":
			top := &m.frames[len(m.frames)-1]
			for top.pc < len(top.fd.Code)-1 {
				top.effect += top.fd.Code[top.pc].Op.StackEffect()
				top.pc++
			}
			return m, nil

		case "enter", "l":
			m.descend()
			return m, nil

		case "backspace", "h":
			if len(m.frames) > 1 {
				m.frames = m.frames[:len(m.frames)-1]
			}
			return m, nil
		}
	}
	return m, nil
}

// step moves the current frame's cursor by delta instructions, updating
// the running stack-effect total to match.
func (m *model) step(delta int) {
	top := &m.frames[len(m.frames)-1]
	if len(top.fd.Code) == 0 {
		return
	}
	for delta > 0 && top.pc < len(top.fd.Code)-1 {
		top.effect += top.fd.Code[top.pc].Op.StackEffect()
		top.pc++
		delta--
	}
	for delta < 0 && top.pc > 0 {
		top.pc--
		top.effect -= top.fd.Code[top.pc].Op.StackEffect()
		delta++
	}
}

// descend steps into the nested FuncDef referenced by the current
// instruction, if it is a CLOSURE whose B operand indexes fd.Defs.
func (m *model) descend() {
	top := m.top()
	if top.pc >= len(top.fd.Code) {
		return
	}
	ins := top.fd.Code[top.pc]
	if ins.Op != compiler.CLOSURE {
		return
	}
	if int(ins.B) < 0 || int(ins.B) >= len(top.fd.Defs) {
		return
	}
	m.frames = append(m.frames, frame{fd: top.fd.Defs[ins.B]})
}

func (m model) View() string {
	var sb strings.Builder

	top := m.top()
	name := top.fd.Name
	if name == "" {
		name = "<anonymous>"
	}
	// A compiled symbol's display name may contain east-asian wide runes;
	// pad by column width, not byte or rune count, so the title bar's
	// trailing fields line up across frames with differently-shaped names.
	if pad := titleMinWidth - value.DisplayWidth(name); pad > 0 {
		name += strings.Repeat(" ", pad)
	}
	sb.WriteString(titleStyle.Render(fmt.Sprintf(" %s  arity=%d variadic=%v frame=%d ", name, top.fd.Arity, top.fd.Variadic, top.fd.FrameSize)))
	sb.WriteString("\n\n")

	if len(m.frames) > 1 {
		sb.WriteString(helpStyle.Render(fmt.Sprintf("depth %d (backspace to return to caller)\n\n", len(m.frames)-1)))
	}

	for pc, ins := range top.fd.Code {
		line := fmt.Sprintf("%04d  %-12s A=%d B=%d C=%d", pc, ins.Op, ins.A, ins.B, ins.C)
		if pc == top.pc {
			sb.WriteString(currentStyle.Render("> " + line))
		} else {
			sb.WriteString(pcStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(effectStyle.Render(fmt.Sprintf("stack effect through pc=%04d: %+d", top.pc, top.effect)))
	sb.WriteString("\n")

	if top.pc < len(top.fd.SourceMap) {
		pos := token.At(top.fd.Source, top.fd.SourceMap[top.pc])
		sb.WriteString(posStyle.Render("source: " + pos.String()))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("j/k step  g/G jump to start/end  enter step into closure  backspace return  q quit"))

	return sb.String()
}
