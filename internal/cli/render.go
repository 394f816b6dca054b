package cli

import (
	"Demonstra/internal/domain/dre"
	"Demonstra/internal/domain/dreconfig"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
)

var (
	headerStyle      = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle        = lipgloss.NewStyle().Padding(0, 1)
	favorableStyle   = cellStyle.Foreground(lipgloss.Color("#2E7D32")).Align(lipgloss.Right)
	unfavorableStyle = cellStyle.Foreground(lipgloss.Color("#C62828")).Align(lipgloss.Right)
	titleStyle       = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	rootStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	inactiveStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
)

// renderReport desenha a DRE em tabela: conta, sinal, 12 meses e acumulado.
func renderReport(title string, report *dre.Report) string {
	headers := append([]string{"Conta", "Sinal"}, report.Columns...)

	rows := make([][]string, 0, len(report.Lines))
	tones := make([][]dre.Tone, 0, len(report.Lines))
	for _, line := range report.Lines {
		row := make([]string, 0, len(headers))
		rowTones := make([]dre.Tone, 0, len(line.Values)+1)
		row = append(row, line.Name, string(line.Symbol))
		for _, cell := range append(append([]dre.Cell{}, line.Values...), line.Total) {
			row = append(row, dre.FormatBRL(cell.Value))
			rowTones = append(rowTones, cell.Tone)
		}
		rows = append(rows, row)
		tones = append(tones, rowTones)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col < 2 || row < 0 || row >= len(tones) {
				return cellStyle
			}
			if tones[row][col-2] == dre.ToneUnfavorable {
				return unfavorableStyle
			}
			return favorableStyle
		})

	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), t.String())
}

// renderAccountTree desenha a árvore de contas da empresa totalmente expandida.
func renderAccountTree(title string, t *dreconfig.Tree) string {
	root := tree.Root(rootStyle.Render(title)).Enumerator(tree.RoundedEnumerator)
	for _, a := range t.Roots() {
		root.Child(accountNode(t, a))
	}
	return root.String()
}

func accountNode(t *dreconfig.Tree, a *dreconfig.Account) any {
	label := accountLabel(a)
	children := t.Children(a.Id)
	if len(children) == 0 {
		return label
	}
	node := tree.Root(label)
	for _, child := range children {
		node.Child(accountNode(t, child))
	}
	return node
}

func accountLabel(a *dreconfig.Account) string {
	label := a.Name + " (" + string(a.Type)
	if a.Sign != "" {
		label += ", " + string(a.Sign)
	}
	label += ")"
	if !a.IsActive {
		return inactiveStyle.Render(label)
	}
	return label
}
