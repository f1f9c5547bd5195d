package location

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"smorg/backend/internal/domain"
)

const (
	MsgDetecting  = "Detecting your location..."
	MsgIPFallback = "Using an approximate location from your network. Set your city for better results."
	MsgDefault    = "We couldn't detect your location. Enter your city to see nearby events."

	DefaultTimeout = 5 * time.Second
)

// DefaultLocation is used when nothing better is known.
var DefaultLocation = domain.UserLocation{
	City:      "Seattle",
	State:     "WA",
	Latitude:  47.6062,
	Longitude: -122.3321,
	Status:    domain.StatusDefault,
}

// DetectRequest carries the per-call inputs of a detection: where the
// device position comes from and the client's network address.
type DetectRequest struct {
	Session  string
	Device   Geolocator
	ClientIP string
}

type Options struct {
	// Timeout bounds the device position request.
	Timeout time.Duration
	Default domain.UserLocation
	// OnChange observes every state transition, including "detecting".
	OnChange func(session string, loc domain.UserLocation)
}

// Resolver produces the best available UserLocation for a session.
// None of its operations fail because a collaborator failed; each failure
// degrades to the next source and ends at the default location.
type Resolver struct {
	store    Store
	reverse  ReverseGeocoder
	forward  Geocoder
	ip       IPLocator
	timeout  time.Duration
	fallback domain.UserLocation
	onChange func(string, domain.UserLocation)

	// gen holds the generation of the newest in-flight detection or update
	// per session. Generations are unique across sessions, and an entry is
	// removed once its owner finishes.
	mu   sync.Mutex
	next uint64
	gen  map[string]uint64
}

func NewResolver(store Store, reverse ReverseGeocoder, forward Geocoder, ip IPLocator, opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Default.City == "" {
		opts.Default = DefaultLocation
	}
	opts.Default.Status = domain.StatusDefault
	return &Resolver{
		store:    store,
		reverse:  reverse,
		forward:  forward,
		ip:       ip,
		timeout:  opts.Timeout,
		fallback: opts.Default,
		onChange: opts.OnChange,
		gen:      make(map[string]uint64),
	}
}

// Current returns the persisted location, or the default when none is stored.
func (r *Resolver) Current(ctx context.Context, session string) domain.UserLocation {
	if loc := r.load(ctx, session); loc != nil {
		return *loc
	}
	return r.fallback
}

// Detect runs the resolution chain. A persisted location always wins and
// no detection is attempted. When detections overlap for one session only
// the most recently started one is persisted.
func (r *Resolver) Detect(ctx context.Context, req DetectRequest) domain.UserLocation {
	if loc := r.load(ctx, req.Session); loc != nil {
		return *loc
	}

	gen := r.begin(req.Session)

	detecting := r.fallback
	detecting.Status = domain.StatusDetecting
	detecting.Message = MsgDetecting
	r.notify(req.Session, detecting)

	resolved := r.resolve(ctx, req)

	if !r.isLatest(req.Session, gen) {
		return resolved
	}
	r.persist(ctx, req.Session, resolved)
	r.notify(req.Session, resolved)
	r.release(req.Session, gen)
	return resolved
}

// Update stores a fully specified location verbatim with status "detected".
func (r *Resolver) Update(ctx context.Context, session string, loc domain.UserLocation) (domain.UserLocation, error) {
	if loc.City == "" || loc.State == "" {
		return domain.UserLocation{}, domain.ErrValidation("city and state are required")
	}
	if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
		return domain.UserLocation{}, domain.ErrValidation("coordinates out of range")
	}
	loc.Status = domain.StatusDetected
	loc.Message = ""

	gen := r.begin(session)
	r.persist(ctx, session, loc)
	r.notify(session, loc)
	r.release(session, gen)
	return loc, nil
}

// Search resolves a typed address. When geocoding finds nothing, input of
// the form "City, State" is accepted and keeps the current coordinates.
// Anything else is rejected and leaves the stored location untouched.
func (r *Resolver) Search(ctx context.Context, session, query string) (domain.UserLocation, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.UserLocation{}, domain.ErrValidation("location query is required")
	}

	if r.forward != nil {
		place, err := r.forward.Geocode(ctx, query)
		if err == nil {
			return r.Update(ctx, session, placeLocation(place))
		}
		log.Printf("[location] geocode %q failed: %v", query, err)
	}

	parts := strings.Split(query, ",")
	if len(parts) < 2 {
		return domain.UserLocation{}, domain.ErrValidation(fmt.Sprintf("could not find %q; try \"City, State\"", query))
	}
	city, state := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if city == "" || state == "" {
		return domain.UserLocation{}, domain.ErrValidation(fmt.Sprintf("could not find %q; try \"City, State\"", query))
	}

	current := r.Current(ctx, session)
	current.City = city
	current.State = state
	return r.Update(ctx, session, current)
}

// Reset clears the stored location and detects again.
func (r *Resolver) Reset(ctx context.Context, req DetectRequest) domain.UserLocation {
	if r.store != nil {
		if err := r.store.Clear(ctx, req.Session); err != nil {
			log.Printf("[location] clear %s failed: %v", req.Session, err)
		}
	}
	return r.Detect(ctx, req)
}

type attempt func(ctx context.Context, req DetectRequest) (domain.UserLocation, bool)

// resolve tries each source in order; the first success wins.
func (r *Resolver) resolve(ctx context.Context, req DetectRequest) domain.UserLocation {
	for _, try := range []attempt{r.fromDevice, r.fromIP} {
		if loc, ok := try(ctx, req); ok {
			return loc
		}
	}
	loc := r.fallback
	loc.Message = MsgDefault
	return loc
}

func (r *Resolver) fromDevice(ctx context.Context, req DetectRequest) (domain.UserLocation, bool) {
	if req.Device == nil {
		return domain.UserLocation{}, false
	}
	pos, err := r.position(ctx, req.Device)
	if err != nil {
		log.Printf("[location] device position for %s: %v", req.Session, err)
		return domain.UserLocation{}, false
	}

	loc := domain.UserLocation{
		City:      r.fallback.City,
		State:     r.fallback.State,
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		Status:    domain.StatusDetected,
	}
	if r.reverse == nil {
		return loc, true
	}
	place, err := r.reverse.ReverseGeocode(ctx, pos.Latitude, pos.Longitude)
	if err != nil {
		log.Printf("[location] reverse geocode failed, keeping coordinates: %v", err)
		return loc, true
	}
	loc.City, loc.State = place.City, place.State
	return loc, true
}

// position bounds the device request by the configured timeout even when
// the provider ignores its context.
func (r *Resolver) position(ctx context.Context, g Geolocator) (Position, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		pos Position
		err error
	}
	ch := make(chan result, 1)
	go func() {
		pos, err := g.CurrentPosition(ctx)
		ch <- result{pos, err}
	}()

	select {
	case res := <-ch:
		return res.pos, res.err
	case <-ctx.Done():
		return Position{}, fmt.Errorf("device position: %w", ctx.Err())
	}
}

func (r *Resolver) fromIP(ctx context.Context, req DetectRequest) (domain.UserLocation, bool) {
	if r.ip == nil {
		return domain.UserLocation{}, false
	}
	place, err := r.ip.LookupByIP(ctx, req.ClientIP)
	if err != nil {
		log.Printf("[location] ip lookup for %s: %v", req.Session, err)
		return domain.UserLocation{}, false
	}
	loc := placeLocation(place)
	loc.Status = domain.StatusIPFallback
	loc.Message = MsgIPFallback
	return loc, true
}

func (r *Resolver) load(ctx context.Context, session string) *domain.UserLocation {
	if r.store == nil {
		return nil
	}
	loc, err := r.store.Load(ctx, session)
	if err != nil {
		log.Printf("[location] load %s failed: %v", session, err)
		return nil
	}
	return loc
}

func (r *Resolver) persist(ctx context.Context, session string, loc domain.UserLocation) {
	if r.store == nil {
		return
	}
	if err := r.store.Save(ctx, session, loc); err != nil {
		log.Printf("[location] save %s failed: %v", session, err)
	}
}

func (r *Resolver) notify(session string, loc domain.UserLocation) {
	if r.onChange != nil {
		r.onChange(session, loc)
	}
}

func (r *Resolver) begin(session string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.gen[session] = r.next
	return r.next
}

func (r *Resolver) isLatest(session string, gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen[session] == gen
}

func (r *Resolver) release(session string, gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen[session] == gen {
		delete(r.gen, session)
	}
}

func placeLocation(p Place) domain.UserLocation {
	return domain.UserLocation{
		City:      p.City,
		State:     p.State,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Status:    domain.StatusDetected,
	}
}
