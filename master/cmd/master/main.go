package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/automoto/kickoff/master"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		port  int
		ttl   time.Duration
		sweep time.Duration
	)

	cmd := &cobra.Command{
		Use:   "kickoff-master",
		Short: "Server browser for kickoff match servers",
		Long: `Keeps a list of running match servers. Servers register and send a
heartbeat with their player count and score; clients list them.

Examples:
  kickoff-master --port 8080 --ttl 90s`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := master.NewRegistry(ttl)
			reg.Start(sweep)
			defer reg.Stop()

			addr := fmt.Sprintf(":%d", port)
			log.Printf("[master] starting on %s (TTL=%s)", addr, ttl)
			return http.ListenAndServe(addr, master.NewMux(reg))
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "HTTP listen port")
	cmd.Flags().DurationVar(&ttl, "ttl", 90*time.Second, "Server TTL before expiry")
	cmd.Flags().DurationVar(&sweep, "sweep", 30*time.Second, "Interval between expiry sweeps")
	return cmd
}
