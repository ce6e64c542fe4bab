package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/vlist/internal/config"
	"github.com/charmbracelet/vlist/internal/source"
	"github.com/charmbracelet/vlist/internal/tui/exp/list"
	"github.com/charmbracelet/vlist/internal/virtual"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Plan is the outcome of one render cycle of the list at a scroll offset.
type Plan struct {
	Items          int           `json:"items" yaml:"items"`
	Width          int           `json:"width" yaml:"width"`
	ViewportHeight int           `json:"viewport_height" yaml:"viewport_height"`
	ItemHeight     int           `json:"item_height" yaml:"item_height"`
	ItemEstimate   int           `json:"item_estimate" yaml:"item_estimate"`
	Virtualized    bool          `json:"virtualized" yaml:"virtualized"`
	Phase          string        `json:"phase" yaml:"phase"`
	MaxScrollTop   int           `json:"max_scroll_top" yaml:"max_scroll_top"`
	WindowStart    int           `json:"window_start" yaml:"window_start"`
	WindowEnd      int           `json:"window_end" yaml:"window_end"`
	State          virtual.State `json:"state" yaml:"state"`
	Cache          PlanCache     `json:"height_cache" yaml:"height_cache"`
	View           string        `json:"view,omitempty" yaml:"view,omitempty"`
}

// PlanCache describes the height cache after the cycle. A capacity of zero
// means it is unbounded.
type PlanCache struct {
	Entries   int    `json:"entries" yaml:"entries"`
	Capacity  int    `json:"capacity" yaml:"capacity"`
	Hits      uint64 `json:"hits" yaml:"hits"`
	Misses    uint64 `json:"misses" yaml:"misses"`
	Evictions uint64 `json:"evictions" yaml:"evictions"`
}

type planOptions struct {
	width, height, top int
	view               bool
}

var planCmd = &cobra.Command{
	Use:   "plan [file]",
	Short: "Show which records would be rendered at a scroll offset",
	Long: heredoc.Doc(`
		Run one estimate, render, measure and correct cycle without a terminal
		and print the resulting viewport state: the located record, the
		rendered window and the corrected offset of the window.
	`),
	Example: heredoc.Doc(`
		# Inspect the middle of ten thousand generated records
		vlist plan --top 10000

		# Same, as JSON, including the rendered viewport
		vlist plan --top 10000 --view --format json

		# A file of paragraphs in a short viewport
		vlist plan --height 8 --item-height 3 notes.txt
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupConfig(cmd, args)
		if err != nil {
			return err
		}
		records, err := loadRecords(cfg)
		if err != nil {
			return err
		}

		var opts planOptions
		opts.width, _ = cmd.Flags().GetInt("width")
		opts.height, _ = cmd.Flags().GetInt("height")
		opts.top, _ = cmd.Flags().GetInt("top")
		opts.view, _ = cmd.Flags().GetBool("view")
		format, _ := cmd.Flags().GetString("format")

		plan := buildPlan(cfg, records, opts)
		return formatPlan(cmd.OutOrStdout(), plan, format)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	addSourceFlags(planCmd)
	planCmd.Flags().Int("width", 80, "Viewport width")
	planCmd.Flags().Int("height", 24, "Viewport height, 0 renders every record")
	planCmd.Flags().Int("top", 0, "Scroll offset in lines")
	planCmd.Flags().Bool("view", false, "Include the rendered viewport")
	planCmd.Flags().StringP("format", "f", "text", "Output format (text, json, yaml)")
}

// buildPlan drives a list through its render cycles the way the program
// loop would, without a terminal.
func buildPlan(cfg *config.Config, records []source.Record, opts planOptions) Plan {
	render := source.Render(cfg.Source.TextField)
	if cfg.Source.Highlight {
		render = source.Highlighted(render)
	}
	l := list.New(
		records,
		render,
		list.WithSize(opts.width, opts.height),
		list.WithItemHeight(cfg.List.ItemHeight),
		list.WithHeightCacheSize(cfg.List.HeightCacheSize),
		list.WithKeyFunc[source.Record](source.KeyFunc(cfg.Source.KeyField)),
	)
	drain(l, l.Init())
	drain(l, l.ScrollTo(opts.top))

	start, end := l.Window()
	heights := l.Heights()
	stats := heights.Stats()
	plan := Plan{
		Items:          l.Len(),
		Width:          opts.width,
		ViewportHeight: opts.height,
		ItemHeight:     cfg.List.ItemHeight,
		ItemEstimate:   l.ItemHeight(),
		Virtualized:    l.Virtualized(),
		Phase:          l.Phase().String(),
		MaxScrollTop:   l.MaxScrollTop(),
		WindowStart:    start,
		WindowEnd:      end,
		State:          l.State(),
		Cache: PlanCache{
			Entries:   heights.Len(),
			Capacity:  heights.Capacity(),
			Hits:      stats.Hits,
			Misses:    stats.Misses,
			Evictions: stats.Evictions,
		},
	}
	if opts.view {
		plan.View = ansi.Strip(l.View())
	}
	return plan
}

func drain(m tea.Model, cmd tea.Cmd) {
	for cmd != nil {
		m, cmd = m.Update(cmd())
	}
}

func formatPlan(w io.Writer, plan Plan, format string) error {
	switch format {
	case "json":
		return formatPlanJSON(w, plan)
	case "yaml":
		return formatPlanYAML(w, plan)
	case "text":
		return formatPlanText(w, plan)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func formatPlanJSON(w io.Writer, plan Plan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func formatPlanYAML(w io.Writer, plan Plan) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan to YAML: %w", err)
	}
	_, err = fmt.Fprint(w, string(data))
	return err
}

func formatPlanText(w io.Writer, plan Plan) error {
	var sb strings.Builder
	row := func(label, format string, args ...any) {
		fmt.Fprintf(&sb, "%-15s%s\n", label+":", fmt.Sprintf(format, args...))
	}

	s := plan.State
	row("items", "%d", plan.Items)
	row("viewport", "%dx%d", plan.Width, plan.ViewportHeight)
	row("item height", "%d", plan.ItemHeight)
	row("virtualized", "%t", plan.Virtualized)
	row("phase", "%s", plan.Phase)
	if plan.Virtualized {
		row("item estimate", "%d", plan.ItemEstimate)
		row("scroll top", "%d of %d", s.ScrollTop, plan.MaxScrollTop)
		row("percentage", "%.4f", s.Percentage)
		row("located", "%d (+%.4f)", s.LocatedIndex, s.LocatedFraction)
	}
	row("window", "%d-%d (%d items)", plan.WindowStart, plan.WindowEnd, max(0, plan.WindowEnd-plan.WindowStart+1))
	if plan.Virtualized {
		c := plan.Cache
		capacity := "unbounded"
		if c.Capacity > 0 {
			capacity = fmt.Sprintf("max %d", c.Capacity)
		}
		row("height cache", "%d entries (%s), %d hits, %d misses, %d evicted",
			c.Entries, capacity, c.Hits, c.Misses, c.Evictions)
		row("corrected top", "%d", s.CorrectedOffset)
	}
	if plan.View != "" {
		sb.WriteString("\n")
		sb.WriteString(plan.View)
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
