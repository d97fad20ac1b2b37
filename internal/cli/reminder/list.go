package reminder

import (
	"encoding/json"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/fitlife/internal/cli"
	"github.com/julianstephens/fitlife/internal/models"
)

type ListCmd struct {
	Tab    string `help:"Tab to show (today|scheduled|all)." default:"all" enum:"today,scheduled,all"`
	Search string `short:"s" help:"Case-insensitive title filter."`
	Output string `short:"o" help:"Output format (table|json|yaml)." default:"table" enum:"table,json,yaml"`
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func (c *ListCmd) Run(ctx *cli.Context) error {
	tab, err := models.ParseTab(c.Tab)
	if err != nil {
		return err
	}
	items := ctx.Manager.Visible(tab, c.Search)

	switch c.Output {
	case "json":
		enc := json.NewEncoder(ctx.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case "yaml":
		enc := yaml.NewEncoder(ctx.Writer())
		defer enc.Close()
		return enc.Encode(items)
	}

	if len(items) == 0 {
		ctx.Println("No reminders found")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Title", "Date", "Time", "Repeat", "ID").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	store := ctx.Manager.Store()
	for _, r := range items {
		repeat := ""
		if !r.Repeat.IsNone() {
			repeat = r.Repeat.Label()
		}
		t.Row(strconv.Itoa(store.IndexOf(r.ID)+1), r.Title, r.DisplayDate(), r.Time, repeat, r.ID)
	}
	ctx.Println(t.Render())
	ctx.Printf("%d reminder(s)\n", len(items))
	return nil
}
