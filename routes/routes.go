package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/cors"

	"github.com/showdeck/showdeck/auth"
	"github.com/showdeck/showdeck/episodes"
	"github.com/showdeck/showdeck/events"
	"github.com/showdeck/showdeck/favorites"
	"github.com/showdeck/showdeck/people"
	"github.com/showdeck/showdeck/series"
	"github.com/showdeck/showdeck/shared"
	"github.com/showdeck/showdeck/tvmaze"
)

// Controllers bundles everything the routes expose. The handlers never
// talk to the network or the store directly; they poke the state machines
// and echo their snapshots.
type Controllers struct {
	Catalog       *tvmaze.Client
	Browser       *series.Browser
	Favorites     *favorites.Service
	FavoritesView *favorites.Refresher
	Gate          *auth.Gate
	PeopleSearch  *people.Search
}

func renderJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func renderJSONMessage(w http.ResponseWriter, message string) {
	renderJSON(w, map[string]string{"message": message})
}

func renderAPIError(w http.ResponseWriter, apiErr *shared.APIError) {
	status := apiErr.Status
	if status == 0 {
		status = http.StatusBadGateway
	}
	w.WriteHeader(status)
	renderJSON(w, apiErr)
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func Register(mux *http.ServeMux, c Controllers) http.Handler {

	events.Server.CreateStream("catalog")
	events.Server.CreateStream("favorites")
	events.Server.CreateStream("auth")

	searchDebounce := shared.NewDebouncer(shared.SeriesSearchDebounce)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "Welcome to Showdeck, the headless half of your TV catalog.\nYou can find the source code on <a href=\"https://github.com/showdeck/showdeck\">Github</a>\n")
	})

	mux.HandleFunc("GET /api", func(w http.ResponseWriter, r *http.Request) {
		renderJSONMessage(w, "This is the base of Showdeck's API")
	})

	mux.HandleFunc("GET /api/v1/series", func(w http.ResponseWriter, r *http.Request) {
		renderJSON(w, c.Browser.Snapshot())
	})

	mux.HandleFunc("POST /api/v1/series/search", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Term string `json:"term"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid body", http.StatusBadRequest)
			return
		}
		c.Browser.SetSearchTerm(body.Term)
		term := body.Term
		searchDebounce.Trigger(func() {
			c.Browser.ApplySearch(context.Background(), term)
		})
		renderJSON(w, c.Browser.Snapshot())
	})

	mux.HandleFunc("POST /api/v1/series/more", func(w http.ResponseWriter, r *http.Request) {
		c.Browser.LoadMore(r.Context())
		renderJSON(w, c.Browser.Snapshot())
	})

	mux.HandleFunc("POST /api/v1/series/refresh", func(w http.ResponseWriter, r *http.Request) {
		c.Browser.Refresh(r.Context())
		renderJSON(w, c.Browser.Snapshot())
	})

	mux.HandleFunc("GET /api/v1/series/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			http.Error(w, "Invalid series id", http.StatusBadRequest)
			return
		}
		detail, err := c.Catalog.SeriesByID(r.Context(), id)
		if err != nil {
			renderAPIError(w, shared.ToAPIError(err, "Failed to fetch series details"))
			return
		}
		renderJSON(w, detail)
	})

	mux.HandleFunc("GET /api/v1/series/{id}/episodes", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			http.Error(w, "Invalid series id", http.StatusBadRequest)
			return
		}
		loader := episodes.NewLoader(c.Catalog, id)
		loader.Load(r.Context())
		if apiErr := loader.Err(); apiErr != nil {
			renderAPIError(w, apiErr)
			return
		}
		renderJSON(w, loader.Seasons())
	})

	mux.HandleFunc("GET /api/v1/people", func(w http.ResponseWriter, r *http.Request) {
		renderJSON(w, map[string]any{
			"query":        c.PeopleSearch.Query(),
			"people":       c.PeopleSearch.People(),
			"loading":      c.PeopleSearch.Loading(),
			"has_searched": c.PeopleSearch.HasSearched(),
			"error":        c.PeopleSearch.Err(),
		})
	})

	mux.HandleFunc("POST /api/v1/people/query", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid body", http.StatusBadRequest)
			return
		}
		c.PeopleSearch.SetQuery(context.Background(), body.Query)
		renderJSONMessage(w, "Search scheduled")
	})

	mux.HandleFunc("POST /api/v1/people/retry", func(w http.ResponseWriter, r *http.Request) {
		c.PeopleSearch.Retry(r.Context())
		renderJSONMessage(w, "Search retried")
	})

	mux.HandleFunc("POST /api/v1/people/reset", func(w http.ResponseWriter, r *http.Request) {
		c.PeopleSearch.Reset()
		renderJSONMessage(w, "Search reset")
	})

	mux.HandleFunc("GET /api/v1/people/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			http.Error(w, "Invalid person id", http.StatusBadRequest)
			return
		}
		details := people.NewDetails(c.Catalog, id)
		details.Load(r.Context())
		if apiErr := details.Err(); apiErr != nil {
			renderAPIError(w, apiErr)
			return
		}
		renderJSON(w, map[string]any{
			"person":  details.Person(),
			"credits": details.Credits(),
		})
	})

	mux.HandleFunc("GET /api/v1/favorites", func(w http.ResponseWriter, r *http.Request) {
		renderJSON(w, map[string]any{
			"favorites": c.FavoritesView.Items(),
			"loading":   c.FavoritesView.Loading(),
		})
	})

	mux.HandleFunc("POST /api/v1/favorites/toggle", func(w http.ResponseWriter, r *http.Request) {
		var body tvmaze.Series
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == 0 {
			http.Error(w, "Invalid body", http.StatusBadRequest)
			return
		}
		favorite, err := c.Favorites.Toggle(body)
		if err != nil {
			http.Error(w, "Failed to persist favorites", http.StatusInternalServerError)
			return
		}
		c.FavoritesView.OnForeground()
		renderJSON(w, map[string]bool{"favorite": favorite})
	})

	mux.HandleFunc("POST /api/v1/favorites/refresh", func(w http.ResponseWriter, r *http.Request) {
		c.FavoritesView.Load()
		renderJSON(w, map[string]any{
			"favorites": c.FavoritesView.Items(),
		})
	})

	mux.HandleFunc("GET /api/v1/auth", func(w http.ResponseWriter, r *http.Request) {
		renderJSON(w, c.Gate.Snapshot())
	})

	mux.HandleFunc("POST /api/v1/auth/pin/input", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid body", http.StatusBadRequest)
			return
		}
		c.Gate.SetPinInput(body.Text)
		renderJSON(w, c.Gate.Snapshot())
	})

	mux.HandleFunc("POST /api/v1/auth/pin", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Pin string `json:"pin"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid body", http.StatusBadRequest)
			return
		}
		c.Gate.SubmitPin(r.Context(), body.Pin)
		renderJSON(w, c.Gate.Snapshot())
	})

	mux.HandleFunc("POST /api/v1/auth/biometric", func(w http.ResponseWriter, r *http.Request) {
		c.Gate.AuthenticateWithBiometrics(r.Context())
		renderJSON(w, c.Gate.Snapshot())
	})

	mux.HandleFunc("POST /api/v1/auth/biometric/skip", func(w http.ResponseWriter, r *http.Request) {
		c.Gate.SkipBiometric()
		renderJSON(w, c.Gate.Snapshot())
	})

	mux.HandleFunc("POST /api/v1/auth/biometric/toggle", func(w http.ResponseWriter, r *http.Request) {
		c.Gate.ToggleBiometric()
		renderJSON(w, c.Gate.Snapshot())
	})

	// The shell app pings this on every background to foreground
	// transition so local state can catch up quietly.
	mux.HandleFunc("POST /api/v1/app/foreground", func(w http.ResponseWriter, r *http.Request) {
		c.FavoritesView.OnForeground()
		c.Browser.RefreshOnFocus(context.Background())
		renderJSONMessage(w, "Welcome back")
	})

	mux.HandleFunc("/events", events.Server.ServeHTTP)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:8081", "http://localhost:19006"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Origin, Content-Type, Accept"},
	})

	return corsHandler.Handler(mux)
}
