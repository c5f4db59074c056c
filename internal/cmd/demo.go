package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Generate demo traffic and sonify it",
	Long: `Demo writes a sample access log telling a short incident story —
happy traffic, a few redirects, a 404 wave, a 500 spike, recovery — and
renders it to demo_music.mid.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig()
		cfg.Tempo = 140
		setupLogging(cfg, false)

		const logfile = "demo_access.log"
		if err := writeDemoLog(logfile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "demo log written to %s\n", logfile)

		sonifyOutputs = []string{"demo_music.mid"}
		return runSonify(cmd.Context(), cfg, logfile)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

// writeDemoLog emits Apache common format lines covering every status
// category the mapper distinguishes.
func writeDemoLog(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	write := func(sec int, method, reqPath string, status, bytes int) {
		fmt.Fprintf(f, "127.0.0.1 - - [01/Feb/2026:10:%02d:%02d +0000] \"%s %s HTTP/1.1\" %d %d\n",
			sec/60, sec%60, method, reqPath, status, bytes)
	}

	sec := 0
	next := func() int { sec++; return sec }

	// Happy period.
	for i := 0; i < 20; i++ {
		write(next(), "GET", "/api/users", 200, 1234)
	}
	// Some redirects.
	for i := 0; i < 5; i++ {
		write(next(), "GET", "/old-path", 301, 0)
	}
	// Client errors appear.
	for i := 0; i < 10; i++ {
		write(next(), "GET", "/api/missing", 404, 512)
	}
	// Server error spike.
	for i := 0; i < 8; i++ {
		write(next(), "POST", "/api/process", 500, 256)
	}
	// Recovery.
	for i := 0; i < 15; i++ {
		write(next(), "GET", "/api/health", 200, 89)
	}
	return nil
}
