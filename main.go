package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/the-gallery/internal/collection"
	"github.com/debemdeboas/the-gallery/internal/config"
	"github.com/debemdeboas/the-gallery/internal/db"
	"github.com/debemdeboas/the-gallery/internal/handler"
	"github.com/debemdeboas/the-gallery/internal/logger"
	"github.com/debemdeboas/the-gallery/internal/render"
	"github.com/debemdeboas/the-gallery/internal/repository"
	"github.com/debemdeboas/the-gallery/internal/slideshow"
	"github.com/debemdeboas/the-gallery/internal/sse"
	"github.com/debemdeboas/the-gallery/internal/upload"
)

//go:embed static/* templates/*
var content embed.FS

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	envErr := godotenv.Load()

	bootLogger := logger.New(config.AppConfig.Logging.Level, config.AppConfig.Logging.Format)
	config.SetLogger(bootLogger.With().Str("component", "config").Logger())
	if err := config.LoadConfig(*configPath); err != nil {
		bootLogger.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load config")
	}

	log := logger.New(config.AppConfig.Logging.Level, config.AppConfig.Logging.Format)
	setLoggers(log)
	if envErr != nil {
		log.Debug().Err(envErr).Msg("No .env file loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, config.AppConfig, content)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start")
	}
	defer a.close()

	stopSlideshow := a.slideshow.Start(ctx)
	defer stopSlideshow()

	srv := a.server(net.JoinHostPort(config.AppConfig.Server.Host, config.AppConfig.Server.Port))

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("storage", config.AppConfig.Storage.Type).Msg("Listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}
}

func setLoggers(log zerolog.Logger) {
	component := func(name string) zerolog.Logger {
		return log.With().Str("component", name).Logger()
	}

	config.SetLogger(component("config"))
	db.SetLogger(component("db"))
	repository.SetLogger(component("repository"))
	collection.SetLogger(component("collection"))
	slideshow.SetLogger(component("slideshow"))
	upload.SetLogger(component("upload"))
	render.SetLogger(component("render"))
	handler.SetLogger(component("handler"))
}

type app struct {
	repo      repository.Repository
	slideshow *slideshow.Slideshow
	handler   *handler.Handler
	clients   *sse.SSEClients
}

// newApp opens the store and the three collections and wires them to the
// HTTP handler. Collection changes are pushed to SSE subscribers.
func newApp(ctx context.Context, cfg *config.Config, content fs.FS) (*app, error) {
	repo, err := repository.New(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	clients := sse.NewSSEClients()

	images, err := collection.Open(ctx, repo, collection.Images(cfg.Collections.ImagesKey))
	if err != nil {
		repo.Close()
		return nil, err
	}
	projects, err := collection.Open(ctx, repo, collection.Projects(cfg.Collections.ProjectsKey))
	if err != nil {
		repo.Close()
		return nil, err
	}
	posts, err := collection.Open(ctx, repo, collection.Posts(cfg.Collections.PostsKey))
	if err != nil {
		repo.Close()
		return nil, err
	}

	show := slideshow.New(cfg.Slideshow.Slides, time.Duration(cfg.Slideshow.IntervalMs)*time.Millisecond)
	show.OnChange(func(i int) {
		clients.Broadcast(sse.TopicSlideshow, fmt.Sprint(i))
	})

	h, err := handler.New(handler.Options{
		Content:        content,
		Images:         images,
		Projects:       projects,
		Posts:          posts,
		Uploads:        upload.NewStore(int64(cfg.Uploads.MaxBytes), int64(cfg.Uploads.MaxTotalBytes)),
		Slideshow:      show,
		Clients:        clients,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})
	if err != nil {
		repo.Close()
		return nil, err
	}

	images.SetChangeNotifier(h.Notifier(sse.TopicImages))
	projects.SetChangeNotifier(h.Notifier(sse.TopicProjects))
	posts.SetChangeNotifier(h.Notifier(sse.TopicPosts))

	return &app{repo: repo, slideshow: show, handler: h, clients: clients}, nil
}

// server serves the app on addr. Shutdown ends open event streams so it
// does not wait on them.
func (a *app) server(addr string) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(a.clients.CloseAll)
	return srv
}

func (a *app) close() {
	if err := a.repo.Close(); err != nil {
		zerolog.Ctx(context.Background()).Error().Err(err).Msg("Failed to close storage")
	}
}
