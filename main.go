package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/showdeck/showdeck/auth"
	"github.com/showdeck/showdeck/config"
	"github.com/showdeck/showdeck/db"
	"github.com/showdeck/showdeck/events"
	"github.com/showdeck/showdeck/favorites"
	"github.com/showdeck/showdeck/jobs"
	"github.com/showdeck/showdeck/migrations"
	"github.com/showdeck/showdeck/people"
	"github.com/showdeck/showdeck/routes"
	"github.com/showdeck/showdeck/series"
	"github.com/showdeck/showdeck/tvmaze"
	"github.com/showdeck/showdeck/utils"
)

func main() {

	if err := godotenv.Load(); err != nil {
		fmt.Println(err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.GetLogLevel(),
	})))

	if utils.GetEnv("RESET_DB", "0") == "1" {
		if err := os.Remove(cfg.Showdeck.DbPath); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	store, err := db.NewSqliteStore(cfg.Showdeck.DbPath)
	if err != nil {
		panic(err)
	}

	if err := store.ApplyMigrations(migrations.GetMigrations()); err != nil {
		panic(err)
	}

	events.Init()

	catalog := tvmaze.NewClient()
	if cfg.TVMaze.BaseURL != "" {
		catalog.BaseURL = cfg.TVMaze.BaseURL
	}

	browser := series.NewBrowser(catalog)
	favService := favorites.NewService(store)
	favView := favorites.NewRefresher(favService)
	gate := auth.NewGate(auth.NewCredentials(store), auth.UnavailableSensor{}, cfg.Pushover)
	peopleSearch := people.NewSearch(catalog)

	gate.Start(context.Background())
	favView.Load()
	go browser.LoadMore(context.Background())

	jobScheduler := jobs.SetupInBackground(favView)

	if cfg.Showdeck.BackgroundJobsEnabled {
		jobScheduler.StartAsync()
		fmt.Println("Background jobs have started up in the background.")
	} else {
		fmt.Println("Background jobs are disabled.")
	}

	router := routes.Register(http.NewServeMux(), routes.Controllers{
		Catalog:       catalog,
		Browser:       browser,
		Favorites:     favService,
		FavoritesView: favView,
		Gate:          gate,
		PeopleSearch:  peopleSearch,
	})

	fmt.Println("Showdeck is running at http://localhost:" + cfg.Showdeck.Port)

	if err := http.ListenAndServe(":"+cfg.Showdeck.Port, router); err != nil {
		fmt.Println(err)
		jobScheduler.Stop()
		os.Exit(1)
	}
}
