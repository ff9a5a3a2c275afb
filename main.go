package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"GestureBoard/internal/config"
	"GestureBoard/internal/engine"
	"GestureBoard/internal/export"
	"GestureBoard/internal/logging"
	"GestureBoard/internal/net"
	"GestureBoard/internal/session"
	"GestureBoard/internal/ui"
)

const (
	CustomURLScheme = "gestureboard://"
	browseTimeout   = 3 * time.Second
	saveTimeout     = 10 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	headless := flag.Bool("headless", false, "client: replay stdin, save and exit without a window")
	replayStdin := flag.Bool("replay", false, "client: stream landmark samples from stdin into the viewer session")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()
	if len(args) > 0 && strings.HasPrefix(args[0], CustomURLScheme) {
		err = runClient(ctx, cfg, args[0], clientOptions{headless: *headless, replay: *replayStdin}, log)
	} else {
		err = runHost(ctx, cfg, log)
	}
	if err != nil {
		log.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func runHost(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	log.Info("Starting as HOST")
	port, err := cfg.Port()
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(cfg.SaveFormat, export.PNG)
	if err != nil {
		return err
	}

	reg := session.NewRegistry(cfg.MaxSessions, log)
	peers := net.NewPeerManager(log)
	eng := engine.New(reg, peers, engine.Options{
		JPEGQuality: cfg.JPEGQuality,
		SaveDir:     cfg.SaveDir,
		SaveFormat:  format,
	}, log)
	srv := net.NewServer(eng, peers, net.ServerOptions{
		WSPath:         cfg.WSPath,
		AllowedOrigins: cfg.AllowedOrigins,
		ReadLimit:      cfg.ReadLimitBytes,
	}, log)
	httpSrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.MDNS.Enabled {
		adv, err := net.Advertise(cfg.MDNS.Instance, cfg.MDNS.Service, port)
		if err != nil {
			log.Warn("mDNS advertisement disabled", "error", err)
		} else {
			defer adv.Shutdown()
			log.Info("advertising on the local network", "service", cfg.MDNS.Service)
		}
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("host server listening", "addr", cfg.Listen, "path", cfg.WSPath)
		errc <- httpSrv.ListenAndServe()
	}()
	log.Info("share this link", "link", fmt.Sprintf("%s%s:%d", CustomURLScheme, net.OutgoingIP(), port))

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	// Hijacked WebSocket connections are not tracked by http.Server, so
	// they are closed separately.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	srv.Shutdown()
	for _, id := range reg.IDs() {
		eng.Close(id)
	}
	return nil
}

type clientOptions struct {
	headless bool
	replay   bool
}

// runClient connects to a host and opens the viewer window. Landmark
// samples, one JSON array of [x, y] pairs per line, can be streamed from
// stdin; headless mode replays them, asks the host to save and exits.
func runClient(ctx context.Context, cfg *config.Config, link string, opts clientOptions, log *slog.Logger) error {
	log.Info("Starting as CLIENT")
	address := strings.TrimSuffix(strings.TrimPrefix(link, CustomURLScheme), "/")
	if address == "" {
		log.Info("browsing for a host", "service", cfg.MDNS.Service)
		found, err := net.Browse(cfg.MDNS.Service, browseTimeout)
		if err != nil {
			return err
		}
		address = found
	}

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	c, err := net.Dial(dialCtx, address, cfg.WSPath)
	cancel()
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer c.Close()
	log.Info("Client connected successfully", "addr", c.LocalAddr(), "host", address)

	if opts.headless {
		return runHeadless(ctx, c, log)
	}

	v := ui.NewViewer(c, log)
	if opts.replay {
		go func() {
			sent, err := replay(ctx, c, os.Stdin, log)
			if err != nil {
				log.Warn("replay stopped", "samples", sent, "error", err)
				return
			}
			log.Info("replay finished", "samples", sent)
		}()
	}
	ui.RunApp("GestureBoard - "+address, v)
	return nil
}

func runHeadless(ctx context.Context, c *net.Client, log *slog.Logger) error {
	status := make(chan net.NetworkMessage, 1)
	go func() {
		defer close(status)
		frames := 0
		for {
			msg, err := c.Receive()
			if err != nil {
				log.Debug("receiver stopped", "frames", frames, "error", err)
				return
			}
			switch msg.Type {
			case net.TypeCanvasFrame:
				frames++
				log.Debug("canvas frame", "seq", msg.Seq, "bytes", len(msg.Image))
			case net.TypeSaveStatus, net.TypeError:
				log.Info("host reply", "frames", frames)
				status <- msg
				return
			}
		}
	}()

	sent, err := replay(ctx, c, os.Stdin, log)
	if err != nil {
		return err
	}
	log.Info("replay finished", "samples", sent)

	if err := c.RequestSave(""); err != nil {
		return fmt.Errorf("save request: %w", err)
	}
	select {
	case msg, ok := <-status:
		if !ok {
			return errors.New("disconnected from host before save completed")
		}
		fmt.Println(msg.Message)
		if !msg.OK {
			return errors.New(msg.Message)
		}
	case <-time.After(saveTimeout):
		return errors.New("timed out waiting for save status")
	case <-ctx.Done():
	}
	return nil
}

func replay(ctx context.Context, c *net.Client, in io.Reader, log *slog.Logger) (int, error) {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64<<10), 1<<20)
	sent := 0
	for sc.Scan() {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		sample, err := net.ParseSampleLine([]byte(line))
		if err != nil {
			log.Warn("skipping input line", "error", err)
			continue
		}
		if err := c.SendSample(sample); err != nil {
			return sent, fmt.Errorf("send sample: %w", err)
		}
		sent++
	}
	return sent, sc.Err()
}
