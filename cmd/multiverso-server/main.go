// Command multiverso-server runs a single parameter-server shard as a
// standalone process: it loads a config (CLI flags overriding an optional
// TOML file), wires up the in-memory reference collaborators this module
// ships (table store, membership, communicator, mailbox), and drives the
// main loop until SIGINT/SIGTERM.
//
// "multiverso-server [-config path] [-sync] [-server-id n] [-num-workers n]"
// A missing -config is not an error: the flags (and their defaults) stand
// in for it, the same positional-fallback contract the teacher's own
// server command used for its required arguments.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"

	"github.com/dongruiqing/multiverso/communicator"
	"github.com/dongruiqing/multiverso/config"
	"github.com/dongruiqing/multiverso/control"
	"github.com/dongruiqing/multiverso/mailbox"
	"github.com/dongruiqing/multiverso/membership"
	"github.com/dongruiqing/multiverso/server"
	"github.com/dongruiqing/multiverso/table"
)

var (
	configPath = flag.String("config", "", "path to a TOML config file; flags below override its values")
	sync       = flag.Bool("sync", false, "run the vector-clock-coordinated synchronous server instead of the async pass-through")
	numWorkers = flag.Int("num-workers", 1, "number of training workers this shard coordinates")
	serverID   = flag.Int("server-id", 0, "this shard's id, for logging")
	numTables  = flag.Int("num-tables", 1, "number of in-memory demo tables to register")
)

func main() {
	logger := log.New("component", "multiverso-server")

	cfg, err := loadConfig()
	if err != nil {
		logger.Crit("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Crit("server exited with error", "err", err)
		os.Exit(1)
	}
}

// loadConfig overlays explicitly-set flags on top of an optional TOML
// file, falling back to config.Default when -config is empty — so the
// command runs out of the box with no file at all, the same "flags stand
// in for the positional arguments" contract the teacher's own server
// command used. Only flags the caller actually passed on the command
// line override the file; a flag left at its default never clobbers a
// value the file set.
func loadConfig() (config.Config, error) {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sync":
			cfg.Sync = *sync
		case "num-workers":
			cfg.NumWorkers = *numWorkers
		case "server-id":
			cfg.ServerID = *serverID
		}
	})
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 1
	}

	return cfg, cfg.Validate()
}

// run wires every collaborator this module ships an in-memory reference
// implementation of and drives the main loop until ctx is cancelled. It
// recovers a top-level panic out of server.Run — the Go equivalent of the
// original's CHECK-then-exit(1), without burying an os.Exit inside a
// reusable library function.
func run(ctx context.Context, cfg config.Config, logger log.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered panic: %v", r)
		}
	}()

	store := table.NewStore()
	switch {
	case len(cfg.Tables) > 0:
		for _, name := range cfg.Tables {
			id := store.Register(table.NewMemTable())
			logger.Info("registered table", "name", name, "id", id)
		}
	default:
		for i := 0; i < *numTables; i++ {
			store.Register(table.NewMemTable())
		}
	}

	comm := communicator.NewRecorder()
	m := membership.NewStatic(cfg.NumWorkers, cfg.ServerID)
	mb := mailbox.NewQueue()
	ctl := control.NewContextSignal(ctx)

	h := server.New(cfg, store, comm, m)

	logger.Info("server ready",
		"sync", cfg.Sync,
		"server_id", cfg.ServerID,
		"num_workers", cfg.NumWorkers,
		"num_tables", store.Len(),
	)
	server.Run(ctl, mb, h, logger)
	return nil
}
