package function

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "smorg/backend/docs"

	"smorg/backend/internal/config"
	"smorg/backend/internal/domain"
	"smorg/backend/internal/filter"
	"smorg/backend/internal/location"
	"smorg/backend/internal/repository"
	"smorg/backend/internal/service"
	"smorg/backend/internal/share"
	"smorg/backend/internal/state"
	"smorg/backend/internal/transport"
)

// App holds what the local runner needs beyond the HTTP entry point.
var App struct {
	Config *config.Config
	Events service.EventService
}

// @title Smorg Events API
// @version 1.0
// @description Event discovery: nearby future events filtered by distance, price, interests, energy and vibes.

// @host 127.0.0.1:5000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func init() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 1. Initialize Firestore when any store lives there
	var fsClient *firestore.Client
	if cfg.EventStore == config.StoreFirestore || cfg.StateStore == config.StoreFirestore {
		fsClient, err = firestore.NewClientWithDatabase(ctx, cfg.ProjectID, cfg.FirestoreDatabase)
		if err != nil {
			log.Fatalf("Failed to create firestore client: %v", err)
		}
	}

	// 2. Initialize Firebase Auth
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID})
	if err != nil {
		log.Fatalf("error initializing firebase app: %v", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("error getting auth client: %v", err)
	}

	// 3. Stores
	eventRepo, err := newEventRepository(ctx, cfg, fsClient)
	if err != nil {
		log.Fatalf("Failed to create event store: %v", err)
	}
	kv, err := newStateKV(ctx, cfg, fsClient)
	if err != nil {
		log.Fatalf("Failed to create state store: %v", err)
	}
	dismissed := state.NewDismissedSet(kv)
	views := state.NewViewPreference(kv)

	// 4. Domain layers
	geocoder := location.NewNominatim(cfg.GeocoderBaseURL)
	resolver := location.NewResolver(
		state.NewLocationStore(kv),
		geocoder,
		geocoder,
		location.NewIPAPI(cfg.IPLookupBaseURL),
		location.Options{
			Timeout: cfg.GeolocationTimeout,
			Default: cfg.DefaultLocation,
			OnChange: func(session string, loc domain.UserLocation) {
				log.Printf("[location] %s -> %s (%s)", session, loc.Label(), loc.Status)
			},
		},
	)

	eventSvc := service.NewEventService(eventRepo)
	discoverySvc := service.NewDiscoveryService(eventRepo, filter.NewEngine(time.Now), cfg.EnergyLevels, resolver, dismissed, views)

	router := transport.NewRouter(transport.Dependencies{
		Events:     eventSvc,
		Discovery:  discoverySvc,
		Locations:  resolver,
		Dismissed:  dismissed,
		Views:      views,
		Share:      share.NewBuilder(cfg.ShareBaseURL, nil),
		PublicRead: cfg.PublicRead,
	})

	App.Config = cfg
	App.Events = eventSvc

	// Middleware Chain:
	// CORS -> Security Headers -> Session -> Auth -> Compression -> Router
	handler := transport.WithCompression(router)
	handler = transport.WithAuthentication(handler, authClient)
	handler = transport.WithSession(handler)
	handler = transport.WithSecurityHeaders(handler, cfg.IsProduction())
	handler = transport.WithCORS(handler, cfg.CORSOrigins)

	// 5. Register Function
	functions.HTTP("EventFunction", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/swagger/") {
			httpSwagger.Handler(httpSwagger.DeepLinking(false))(w, r)
			return
		}
		handler.ServeHTTP(w, r)
	})
}

func newEventRepository(ctx context.Context, cfg *config.Config, fsClient *firestore.Client) (repository.EventRepository, error) {
	switch cfg.EventStore {
	case config.StorePostgres:
		pool, err := repository.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresEventRepository(pool), nil
	case config.StoreFirestore:
		return repository.NewEventRepository(fsClient), nil
	}
	return nil, fmt.Errorf("unknown event store %q", cfg.EventStore)
}

func newStateKV(ctx context.Context, cfg *config.Config, fsClient *firestore.Client) (state.KV, error) {
	switch cfg.StateStore {
	case config.StoreRedis:
		rdb, err := state.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return state.NewRedisKV(rdb, 0), nil
	case config.StoreSQLite:
		kv, err := state.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case config.StoreMemory:
		log.Println("[state] using in-memory state; it is lost on restart")
		return state.NewMemoryKV(), nil
	case config.StoreFirestore:
		return state.NewFirestoreKV(fsClient), nil
	}
	return nil, fmt.Errorf("unknown state store %q", cfg.StateStore)
}
