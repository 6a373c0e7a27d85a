package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/press/internal/ui/output"
	"go.trai.ch/press/internal/ui/style"
)

func (c *CLI) newTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List tasks and task groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos, err := c.app.Tasks(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			st := style.New(output.Renderer(w))

			width := 0
			for _, info := range infos {
				width = max(width, len(info.Name))
			}

			for _, info := range infos {
				line := st.Task.Render(info.Name) + strings.Repeat(" ", width-len(info.Name)+2) +
					st.Kind.Render(info.Kind.String()) + info.Description
				if len(info.Refs) > 0 {
					line += st.Muted.Render(" [" + strings.Join(info.Refs, ", ") + "]")
				}
				_, _ = fmt.Fprintln(w, line)
			}
			return nil
		},
	}
}
