// kickoff-probe is a headless client: it joins a match server, plays a
// scripted input pattern and logs what the server broadcasts.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/automoto/kickoff/network"
	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/automoto/kickoff/shared/protocol"
	"github.com/spf13/cobra"
)

type probeOptions struct {
	address  string
	join     network.JoinOptions
	pattern  string
	rate     int
	duration time.Duration
	report   time.Duration
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts probeOptions

	cmd := &cobra.Command{
		Use:   "kickoff-probe",
		Short: "Headless client that joins a match and plays scripted input",
		Long: `Connects to a kickoff-server, takes a seat and streams input at a fixed
rate. Control switches, kicks, goals and resets are logged as they arrive,
with a periodic summary of the score and input round trip.

Examples:
  kickoff-probe --address localhost:7373 --team blue --pattern attack
  kickoff-probe --pattern sweep --duration 2m`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.rate <= 0 {
				return fmt.Errorf("rate must be positive")
			}
			if opts.join.PreferredTeam != "" {
				if _, ok := netconfig.ParseTeam(opts.join.PreferredTeam); !ok {
					return fmt.Errorf("unknown team %q", opts.join.PreferredTeam)
				}
			}
			return probe(opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.address, "address", "localhost:7373", "Server host:port")
	f.StringVar(&opts.join.PlayerName, "name", "probe", "Player name")
	f.StringVar(&opts.join.PreferredTeam, "team", "", "Preferred team: blue or purple (empty = any)")
	f.StringVar(&opts.join.Version, "version", "", "Client version sent with the join")
	f.StringVar(&opts.join.ReconnectToken, "token", "", "Reconnect token from an earlier session")
	f.StringVar(&opts.pattern, "pattern", "attack", "Input pattern: "+strings.Join(network.Patterns, ", "))
	f.IntVar(&opts.rate, "rate", 30, "Inputs sent per second")
	f.DurationVar(&opts.duration, "duration", 0, "Stop after this long (0 = until interrupted)")
	f.DurationVar(&opts.report, "report", 5*time.Second, "Summary interval")
	return cmd
}

func probe(opts probeOptions) error {
	if err := protocol.RegisterComponents(); err != nil {
		return fmt.Errorf("register components: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	client := network.NewClient()
	client.Connect(opts.address, opts.join)
	defer client.Disconnect()

	var (
		history  network.InputHistory
		script   network.Script
		joinedAt time.Time
		team     netconfig.Team
		rtt      time.Duration
		score    [2]int
	)

	ticker := time.NewTicker(time.Second / time.Duration(opts.rate))
	defer ticker.Stop()
	report := time.NewTicker(opts.report)
	defer report.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[probe] stopping: score %d-%d, last rtt %s", score[0], score[1], rtt)
			return nil

		case <-report.C:
			log.Printf("[probe] %s: team=%s score %d-%d rtt=%s pending=%d",
				client.State(), team, score[0], score[1], rtt, history.Pending())

		case now := <-ticker.C:
			switch client.State() {
			case network.StateError:
				return client.LastError()
			case network.StateJoinedGame:
			default:
				continue
			}

			if joinedAt.IsZero() {
				joined := client.Joined()
				team = joined.Team
				joinedAt = now
				var err error
				if script, err = network.NewScript(opts.pattern, team); err != nil {
					return err
				}
				log.Printf("[probe] seated on %s in match %s (token %s)", team, joined.MatchID, joined.ReconnectToken)
			}

			in := history.Next()
			in.Actions = script.Actions(now.Sub(joinedAt).Seconds())
			in.Timestamp = now.UnixMilli()
			if err := client.SendMessage(in); err != nil {
				log.Printf("[probe] send input: %v", err)
				continue
			}
			history.Store(in, now)

			if snap := client.LatestSnapshot(); snap != nil {
				view := network.DecodeSnapshot(*snap)
				if p, ok := view.Controlled(team); ok {
					if d, ok := history.Ack(p.LastSequence, now); ok {
						rtt = d
					}
				}
				if view.Match != nil {
					score = [2]int{view.Match.BlueScore, view.Match.PurpleScore}
				}
			}

			logEvents(client.DrainEvents())
		}
	}
}

func logEvents(ev network.Events) {
	for _, e := range ev.Control {
		log.Printf("[probe] %s now controls player %d (was %d)", e.Team, e.PlayerID, e.PreviousID)
	}
	for _, e := range ev.Kicks {
		log.Printf("[probe] %s player %d %s, power %.1f", e.Team, e.PlayerID, e.Kind, e.Power)
	}
	for _, e := range ev.Tackles {
		log.Printf("[probe] player %d tackled player %d", e.TacklerID, e.HolderID)
	}
	for _, e := range ev.Goals {
		log.Printf("[probe] GOAL %s in episode %d after %d steps (reward %.3f)", e.Scorer, e.Episode, e.Steps, e.Reward)
	}
	for _, e := range ev.Scores {
		log.Printf("[probe] score %d-%d", e.Blue, e.Purple)
	}
	for _, e := range ev.Resets {
		log.Printf("[probe] episode %d kick-off (%s)", e.Episode, e.Reason)
	}
}
