package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/crimson-sun/aulos/internal/engine/mapper"
	"github.com/crimson-sun/aulos/internal/model"
	"github.com/crimson-sun/aulos/internal/parser"
	"github.com/crimson-sun/aulos/internal/source"
	"github.com/crimson-sun/aulos/internal/tailer"
)

var listenFollow bool

var listenCmd = &cobra.Command{
	Use:   "listen LOGFILE",
	Short: "Watch log traffic as colorized events",
	Long: `Listen prints each parsed request with category-based coloring:
successes in green, redirects in yellow, client errors in orange, server
errors in bold red. With --follow, keeps watching for appended lines.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg, false)
		return runListen(cmd.Context(), args[0])
	},
}

func init() {
	listenCmd.Flags().BoolVarP(&listenFollow, "follow", "f", false, "follow the file for appended lines (like tail -f)")
	rootCmd.AddCommand(listenCmd)
}

var (
	styleSuccess  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // green
	styleRedirect = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // yellow
	styleClient   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")) // orange
	styleServer   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleNeutral  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray
	styleTime     = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Faint(true)
)

func runListen(ctx context.Context, logfile string) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ch, err := source.NewFile(logfile).Events(ctx)
	if err != nil {
		return err
	}
	for ev := range ch {
		printEvent(ev)
	}

	if !listenFollow {
		return nil
	}

	t := tailer.New(logfile)
	p := parser.New()
	go func() {
		for line := range t.Lines() {
			if ev, ok := p.Parse(line); ok {
				printEvent(ev)
			}
		}
	}()
	if err := t.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func printEvent(ev model.LogEvent) {
	style := categoryStyle(mapper.CategoryOf(ev.Status))
	ts := styleTime.Render(ev.Timestamp.Format("15:04:05"))
	line := fmt.Sprintf("%s %s %s %s",
		ts,
		style.Render(fmt.Sprintf("%3d", ev.Status)),
		ev.Method,
		ev.Path,
	)
	fmt.Fprintln(os.Stdout, line)
}

func categoryStyle(c model.Category) lipgloss.Style {
	switch c {
	case model.Success:
		return styleSuccess
	case model.Redirect:
		return styleRedirect
	case model.ClientError:
		return styleClient
	case model.ServerError:
		return styleServer
	default:
		return styleNeutral
	}
}
