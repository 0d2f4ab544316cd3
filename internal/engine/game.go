package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Game is the root orchestrator. It owns the player slice of the state
// document and composes the five sub-engines; cross-engine events
// (a completion that advances a chain and feeds the research ratio)
// flow through here. All mutations are serialized on one mutex so the
// periodic deadline sweep cannot interleave with an in-flight call.
type Game struct {
	mu sync.Mutex

	st    *State
	store Store
	files FileStore

	notify Notifier
	audio  AudioPort
	clock  Clock
	rng    RNG

	meditation *Meditation
	research   *Research
	chains     *Chains
	analytics  *Analytics
	filters    *Filters

	observers []Observer
}

// Options carries the injectable ports. Zero-value fields get sensible
// defaults; Store and Files are required.
type Options struct {
	Store  Store
	Files  FileStore
	Notify Notifier
	Audio  AudioPort
	Clock  Clock
	RNG    RNG
}

type pcgRNG struct{ *rand.Rand }

// NewRNG returns a seeded randomness source.
func NewRNG(seed uint64) RNG {
	return pcgRNG{rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// New assembles a Game around an existing state document.
func New(st *State, opts Options) (*Game, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("engine: Store is required")
	}
	if opts.Files == nil {
		return nil, fmt.Errorf("engine: Files is required")
	}
	if opts.Notify == nil {
		opts.Notify = NopNotifier{}
	}
	if opts.Audio == nil {
		opts.Audio = NopAudio{}
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.RNG == nil {
		opts.RNG = NewRNG(rand.Uint64())
	}
	if st == nil {
		st = NewState(opts.Clock.Now())
	}
	st.normalize()

	g := &Game{
		st:     st,
		store:  opts.Store,
		files:  opts.Files,
		notify: opts.Notify,
		audio:  opts.Audio,
		clock:  opts.Clock,
		rng:    opts.RNG,
	}
	g.meditation = newMeditation(&st.Meditation, g.clock)
	g.research = newResearch(&st.Research, g.clock)
	g.chains = newChains(&st.Chains, g.clock)
	g.analytics = newAnalytics(&st.Analytics, g.clock)
	g.filters = newFilters(&st.Filters)
	return g, nil
}

// Load reads the persisted document (or starts fresh) and assembles a
// Game around it.
func Load(ctx context.Context, opts Options) (*Game, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("engine: Store is required")
	}
	st, found, err := opts.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if !found {
		st = nil
	}
	return New(st, opts)
}

// Subscribe registers an observer notified after every successful
// mutation.
func (g *Game) Subscribe(o Observer) {
	g.observers = append(g.observers, o)
}

func (g *Game) publish() {
	for _, o := range g.observers {
		o.StateChanged(g.st)
	}
}

// persist saves the whole document. A failed save leaves state
// changed but not durable; callers retry the save, not the mutation.
func (g *Game) persist(ctx context.Context) error {
	if err := g.store.Save(ctx, g.st); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Save re-runs persistence after a failed save.
func (g *Game) Save(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.persist(ctx)
}

// State returns the live document for read-only presentation use.
func (g *Game) State() *State { return g.st }

// Sub-engine accessors for queries; mutations cross the Game methods.
func (g *Game) Meditation() *Meditation     { return g.meditation }
func (g *Game) ResearchEngine() *Research   { return g.research }
func (g *Game) ChainsEngine() *Chains       { return g.chains }
func (g *Game) AnalyticsEngine() *Analytics { return g.analytics }
func (g *Game) FiltersEngine() *Filters     { return g.filters }

// applyMissions advances today's missions with one event and pays any
// that completed.
func (g *Game) applyMissions(ev Event) {
	for _, done := range applyEvent(&g.st.Missions, ev) {
		g.st.Player.XP += done.Def.RewardXP
		g.st.Player.Gold += done.Def.RewardGold
		g.notify.Notify(fmt.Sprintf("Daily objective complete: %s (+%d xp, +%d gold)", done.Def.Name, done.Def.RewardXP, done.Def.RewardGold))
	}
}

// Modifier returns the modifier active today.
func (g *Game) Modifier() Modifier {
	return ModifierByName(g.st.Player.ModifierName)
}
