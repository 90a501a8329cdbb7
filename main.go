package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"alpaca-gateway/backend"
	"alpaca-gateway/backend/hikvision"
	"alpaca-gateway/config"
	"alpaca-gateway/device"
	"alpaca-gateway/registry"
	"alpaca-gateway/server"
	"alpaca-gateway/simulator"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $CONFIG_FILE)")
	hashPassword := flag.Bool("hash-password", false, "read a password from stdin, print its auth.password_hash and exit")
	versioninfo.AddFlag(nil)
	flag.Parse()

	if *hashPassword {
		if err := printPasswordHash(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "hash-password: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(zapCfg.Build())
	defer logger.Sync()

	logger.Info("starting alpaca gateway", zap.String("version", versioninfo.Short()), zap.Any("config", cfg.Redacted()))

	if err := run(cfg, logger); err != nil {
		logger.Fatal("gateway stopped", zap.Error(err))
	}
	logger.Info("gateway exiting")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ids, err := registry.OpenIDStore(cfg.UniqueIDFile)
	if err != nil {
		return err
	}
	devices := registry.New(ids, logger.Named("registry"))
	if err := loadDevices(cfg, devices, logger); err != nil {
		return err
	}
	if devices.Count() == 0 {
		logger.Warn("no devices configured; only the management API will answer")
	}

	var auth server.Authorizer
	if cfg.Auth.Enabled {
		basic, err := server.NewBasicAuth(cfg.Auth.Username, cfg.Auth.PasswordHash)
		if err != nil {
			return fmt.Errorf("auth.password_hash: %w", err)
		}
		auth = basic
	}
	srv := server.New(devices, server.Options{
		Strict:     cfg.Server.Strict,
		Authorizer: auth,
		Description: server.Description{
			ServerName:          cfg.Server.Name,
			Manufacturer:        cfg.Server.Manufacturer,
			ManufacturerVersion: versioninfo.Short(),
			Location:            cfg.Server.Location,
		},
		HTTPLog: cfg.HttpLog,
		Logger:  logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Discovery {
		go func() {
			d := server.NewDiscovery(int(cfg.Port), logger)
			if err := d.Serve(ctx, int(cfg.Server.DiscoveryPort)); err != nil {
				logger.Error("discovery stopped", zap.Error(err))
			}
		}()
	}

	err = srv.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Port))

	for _, inst := range devices.List() {
		if derr := inst.Device.Disconnect(); derr != nil {
			logger.Warn("disconnect failed", zap.Stringer("type", inst.Type), zap.Uint32("number", inst.Number), zap.Error(derr))
		}
	}
	return err
}

// printPasswordHash hashes the first line of in.
func printPasswordHash(in io.Reader, out io.Writer) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return errors.New("empty password")
	}
	hash, err := server.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}

// loadDevices installs the configured simulators and the Hikvision switch.
func loadDevices(cfg *config.Config, devices *registry.Registry, logger *zap.Logger) error {
	for _, dc := range cfg.Devices {
		d, err := simulator.New(dc.Kind, simulatorOptions(dc, logger))
		if err != nil {
			return err
		}
		if _, err := devices.Load(dc.Kind, dc.Number, d); err != nil {
			return err
		}
	}

	if len(cfg.Hikvision.Cameras) > 0 {
		hik := hikvision.New(cfg.Hikvision.Cameras, logger)
		router := backend.NewRouter(cfg.Hikvision.Name, []backend.SwitchBackend{hik}, logger)
		if _, err := devices.Load(device.Switch, cfg.Hikvision.Number, router); err != nil {
			return err
		}
	}
	return nil
}

func simulatorOptions(dc config.DeviceConfig, logger *zap.Logger) simulator.Options {
	opts := simulator.Options{
		Name:         dc.Name,
		Description:  dc.Description,
		Filters:      dc.Filters,
		FocusOffsets: dc.FocusOffsets,
		MaxStep:      dc.MaxStep,
		Width:        dc.Width,
		Height:       dc.Height,
		Unsafe:       dc.Unsafe,
		Latitude:     dc.Latitude,
		Longitude:    dc.Longitude,
		Elevation:    dc.Elevation,
		Speed:        dc.Speed,
		Logger:       logger,
	}
	for _, c := range dc.Channels {
		opts.Channels = append(opts.Channels, simulator.Channel{
			Name:         c.Name,
			Description:  c.Description,
			Min:          c.Min,
			Max:          c.Max,
			Step:         c.Step,
			Value:        c.Value,
			ReadOnly:     c.ReadOnly,
			AsyncSeconds: c.AsyncSeconds,
		})
	}
	return opts
}
