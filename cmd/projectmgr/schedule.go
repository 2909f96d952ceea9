package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/nishant152030/Project-manager-2/internal/scheduler"
	"github.com/nishant152030/Project-manager-2/pkg/models"
)

var scheduleJSON bool

var scheduleCmd = &cobra.Command{
	Use:   "schedule <file>",
	Short: "Compute a recommended order for a task file",
	Long: `Read a YAML or JSON task file and print the order the tasks should be
done in. Every task comes after its dependencies; among tasks that are ready,
the earlier due date wins, then the smaller estimate, then file order.

Example file:

  tasks:
    - title: Design
      estimatedHours: 4
      dueDate: 2024-01-05T00:00:00Z
    - title: Build
      estimatedHours: 8
      dueDate: 2024-01-10T00:00:00Z
      dependencies: [Design]

Use "-" to read YAML from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().BoolVar(&scheduleJSON, "json", false, "print the result as JSON")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	req, err := readScheduleFile(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid task file: %s", models.ValidationMessage(err))
	}
	req.Normalize()

	result, err := scheduler.ComputeSchedule(req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scheduleJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	renderSchedule(out, req, result)
	return nil
}

// readScheduleFile decodes a task file. Files ending in .json are read as
// JSON; anything else, including stdin, as YAML.
func readScheduleFile(path string, stdin io.Reader) (models.ScheduleRequest, error) {
	var req models.ScheduleRequest

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return req, fmt.Errorf("read task file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &req)
	} else {
		err = yaml.Unmarshal(data, &req)
	}
	if err != nil {
		return req, fmt.Errorf("parse task file %s: %w", path, err)
	}
	return req, nil
}

var (
	scheduleTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15"))

	scheduleIndexStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("63")).
				Width(4).
				Align(lipgloss.Right)

	scheduleNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	scheduleMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
)

// renderSchedule prints the order with each task's due date and estimate.
func renderSchedule(w io.Writer, req models.ScheduleRequest, result models.ScheduleResult) {
	specs := make(map[string]models.TaskSpec, len(req.Tasks))
	width := 0
	for _, t := range req.Tasks {
		specs[t.Title] = t
		if len(t.Title) > width {
			width = len(t.Title)
		}
	}

	fmt.Fprintln(w, scheduleTitleStyle.Render(fmt.Sprintf("Recommended order (%d tasks)", len(result.RecommendedOrder))))
	for i, title := range result.RecommendedOrder {
		spec := specs[title]
		meta := fmt.Sprintf("due %s  %sh", spec.DueDate.Format("2006-01-02"), strconv.FormatFloat(spec.EstimatedHours, 'f', -1, 64))
		if len(spec.Dependencies) > 0 {
			meta += "  after " + strings.Join(spec.Dependencies, ", ")
		}
		fmt.Fprintf(w, "%s %s  %s\n",
			scheduleIndexStyle.Render(strconv.Itoa(i+1)+"."),
			scheduleNameStyle.Render(fmt.Sprintf("%-*s", width, title)),
			scheduleMetaStyle.Render(meta),
		)
	}
}
