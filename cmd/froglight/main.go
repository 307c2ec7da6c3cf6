package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/dynamitemc/froglight/client"
	"github.com/dynamitemc/froglight/config"
	"github.com/dynamitemc/froglight/conn"
	"github.com/dynamitemc/froglight/level"
	"github.com/dynamitemc/froglight/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "froglight",
		Usage: "a Minecraft 1.21.4 client",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: config.DefaultPath, Usage: "configuration file, created when missing"},
			&cli.BoolFlag{Name: "debug", Usage: "log every packet"},
		},
		Commands: []*cli.Command{
			{
				Name:      "status",
				Usage:     "print the server list entry of a server",
				ArgsUsage: "[address]",
				Action:    status,
			},
			{
				Name:      "join",
				Usage:     "join a server and stay until disconnected",
				ArgsUsage: "[address]",
				Action:    join,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.New(false).Fatal("%s", err)
	}
}

func setup(ctx *cli.Context) (*client.Client, string, *logger.Logger, error) {
	cfg, err := config.LoadConfig(ctx.String("config"))
	if err != nil {
		return nil, "", nil, err
	}
	if ctx.Bool("debug") {
		cfg.Debug = true
	}
	log := logger.New(cfg.Debug)
	address := cfg.Server
	if ctx.NArg() > 0 {
		address = ctx.Args().First()
	}

	opts := []client.Option{client.WithLogger(log)}
	if cfg.Blocks != "" {
		blocks, err := loadBlocks(cfg.Blocks)
		if err != nil {
			return nil, "", nil, err
		}
		log.Debug("Loaded %d block states from %s", blocks.Len(), cfg.Blocks)
		opts = append(opts, client.WithBlocks(blocks))
	}
	if cfg.Metrics.Enable {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		opts = append(opts, client.WithMetrics(conn.NewMetrics(reg)))
		go serveMetrics(log, cfg.Metrics.Listen, reg)
	}
	if cfg.Account.Online {
		if cfg.Account.AccessToken == "" {
			log.Warn("Online account without an access token, set FROGLIGHT_ACCESS_TOKEN")
		}
		opts = append(opts, client.WithJoiner(&client.MojangJoiner{AccessToken: cfg.Account.AccessToken}))
	} else {
		log.Warn("Offline account, only servers in offline mode will accept %s", cfg.Account.Username)
	}
	return client.New(cfg, opts...), address, log, nil
}

func loadBlocks(path string) (*level.BlockRegistry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return level.LoadBlockReport(file)
}

func serveMetrics(log *logger.Logger, listen string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	log.Info("[HTTP] Serving metrics on %s", listen)
	if err := http.ListenAndServe(listen, mux); err != nil {
		log.Error("[HTTP] Failed to serve metrics: %s", err)
	}
}

func status(ctx *cli.Context) error {
	c, address, log, err := setup(ctx)
	if err != nil {
		return err
	}
	sctx, stop := signal.NotifyContext(ctx.Context, os.Interrupt)
	defer stop()

	st, err := c.Status(sctx, address)
	if err != nil {
		return err
	}
	log.Print("%s (%s)", address, st.Address)
	log.Print("Version: %s (protocol %d)", st.Version.Name, st.Version.Protocol)
	log.Print("Players: %d/%d", st.Players.Online, st.Players.Max)
	for _, p := range st.Players.Sample {
		log.Print("  %s (%s)", p.Name, p.ID)
	}
	for _, line := range strings.Split(st.Description.ClearString(), "\n") {
		log.Print("  %s", line)
	}
	log.Print("Latency: %dms", st.Latency.Milliseconds())
	return nil
}

func join(ctx *cli.Context) error {
	c, address, log, err := setup(ctx)
	if err != nil {
		return err
	}
	sctx, stop := signal.NotifyContext(ctx.Context, os.Interrupt)
	defer stop()

	c.Events.AddListener(client.EventJoin, func(args ...interface{}) {
		log.Info("Spawned in %s", args[0])
	})
	c.Events.AddListener(client.EventTeleport, func(args ...interface{}) {
		log.Debug("Teleported to %s", formatPosition(args[0].(client.Position)))
	})
	go console(sctx, c, log, os.Stdin)

	err = c.Join(sctx, address)
	var disconnect *client.DisconnectError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, conn.ErrClosed):
		log.Info("Disconnected")
		return nil
	case errors.As(err, &disconnect):
		log.Warn("Disconnected by server: %s", disconnect.Reason)
		return nil
	}
	return err
}
