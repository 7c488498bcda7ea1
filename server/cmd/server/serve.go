package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/kickoff/assets"
	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/server/core"
	"github.com/automoto/kickoff/server/metrics"
	"github.com/automoto/kickoff/server/profile"
	"github.com/automoto/kickoff/server/store"
	"github.com/automoto/kickoff/shared/protocol"
	"github.com/spf13/cobra"
)

const presetsPath = "formations/presets.toml"

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "kickoff-server",
		Short: "Authoritative five-a-side match server",
		Long: `Runs one match: humans join over websockets and drive the player their
team's arbiter picks, everyone else is autonomous.

Settings come from flags, KICKOFF_* environment variables, kickoff.yaml and
built-in defaults, in that order.

Examples:
  kickoff-server --port 7373 --difficulty hard
  kickoff-server --pitch training --formation diamond --master http://localhost:8080`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			return serve(settings)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./kickoff.yaml)")

	f := cmd.Flags()
	f.String("name", "Kickoff Server", "Server display name")
	f.Uint("port", 7373, "Websocket port")
	f.Int("tickrate", 60, "Simulation ticks per second")
	f.String("version", "", "Required client version (empty = accept any)")
	f.String("region", "", "Region advertised to the master")
	f.String("address", "", "Public address advertised to the master")
	f.Int64("seed", config.Bot.Seed, "Random seed for kick-off jitter")
	f.String("difficulty", "normal", "Autonomous player difficulty: easy, normal or hard")
	f.String("pitch", "", "Pitch name from assets/pitches")
	f.String("formation", config.Formation.Preset, "Formation preset name")
	f.String("master", "", "Master server URL (empty = do not register)")
	f.String("db", "kickoff.db", "SQLite file for episode results")
	f.String("metrics", ":9100", "Admin HTTP address for /metrics, /status and /episodes")

	cmd.AddCommand(newEpisodesCommand(&configPath))
	cmd.AddCommand(newPitchesCommand())
	return cmd
}

func serve(s *config.Settings) error {
	config.ApplyTuning(s.Tuning)

	if err := protocol.RegisterComponents(); err != nil {
		return fmt.Errorf("register components: %w", err)
	}

	pitches, err := core.LoadPitchSet(assets.Pitches(), "pitches", assets.Formations(), presetsPath)
	if err != nil {
		return err
	}

	bots := config.Bot
	bots.Difficulty = config.ParseBotDifficulty(s.Server.Difficulty)
	opts, pitchName, err := pitches.MatchOptions(s.Server.Pitch, s.Server.Formation, bots.Current(), s.Server.Seed)
	if err != nil {
		return err
	}

	db, err := store.NewConnection(s.Database)
	if err != nil {
		return err
	}
	defer store.Close(db)
	sinks := []core.EpisodeSink{store.NewGormEpisodeRepository(db)}

	if sb, err := profile.Open(s.Server.ProfileApp); err != nil {
		log.Printf("[server] Warning: scoreboard disabled: %v", err)
	} else {
		if err := sb.StartMatch(); err != nil {
			log.Printf("[server] Warning: could not save scoreboard: %v", err)
		}
		sinks = append(sinks, sb)
	}

	serverOpts := []core.Option{core.WithEpisodeSinks(sinks...)}
	admin := map[string]http.Handler{}
	if s.Metrics.Enabled {
		collector, err := metrics.NewMatchCollector()
		if err != nil {
			return fmt.Errorf("create metrics: %w", err)
		}
		serverOpts = append(serverOpts, core.WithMetrics(collector))
		admin["/metrics"] = collector.Handler()
	}

	server, err := core.NewServer(core.Config{
		Name:           s.Server.Name,
		Version:        s.Server.Version,
		TickRate:       s.Server.TickRate,
		MaxPlayers:     config.Network.MaxPlayers,
		PitchName:      pitchName,
		ReconnectGrace: config.Network.ReconnectSecs,
		InputRate:      config.Network.InputRate,
		InputBurst:     config.Network.InputBurst,
		RecentResults:  config.Network.RecentResults,
		Match:          opts,
	}, serverOpts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go server.Results().Run(ctx)

	if s.Metrics.Address != "" {
		adminSrv := &http.Server{
			Addr:              s.Metrics.Address,
			Handler:           server.AdminHandler(admin),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := adminSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[server] Admin HTTP error: %v", err)
			}
		}()
		defer adminSrv.Close()
	}

	var reg *core.Registration
	if s.Master.URL != "" {
		address := s.Server.Address
		if address == "" {
			address = fmt.Sprintf("localhost:%d", s.Server.Port)
		}
		reg = core.NewRegistration(core.RegistrationConfig{
			MasterURL: s.Master.URL,
			Name:      s.Server.Name,
			Address:   address,
			Version:   s.Server.Version,
			Region:    s.Server.Region,
			Pitch:     pitchName,
			Interval:  s.Master.HeartbeatInterval,
		}, server)
		reg.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] Starting %q on port %d (pitch: %s, tick rate: %d/s, version: %q, match: %s)",
			s.Server.Name, s.Server.Port, pitchName, s.Server.TickRate, s.Server.Version, server.MatchID())
		errCh <- server.Start(s.Server.Port)
	}()

	select {
	case err = <-errCh:
	case <-ctx.Done():
		log.Println("[server] Shutting down...")
	}

	server.Stop()
	if reg != nil {
		reg.Stop()
	}
	stop()
	server.Results().Wait()
	return err
}
