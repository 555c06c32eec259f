package experiment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/gridlearn/gridlearn/agent"
	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/environment/gridworld"
	"github.com/gridlearn/gridlearn/experiment/checkpointer"
	"github.com/gridlearn/gridlearn/experiment/trackers"
	"github.com/gridlearn/gridlearn/export"
	"github.com/gridlearn/gridlearn/replay"
	ts "github.com/gridlearn/gridlearn/timestep"
	"github.com/gridlearn/gridlearn/valuetable"
	"gonum.org/v1/gonum/stat"
	"k8s.io/klog/v2"
)

// Session is a training session of one agent on one gridworld. It owns
// the board, the value table and the agent, and runs the episode loop
// synchronously. A Session is not safe for concurrent use.
type Session struct {
	id    string
	cfg   Config
	grid  *gridworld.GridWorld
	env   *gridworld.Env
	table *valuetable.ValueTable
	agent agent.Explorer

	epsilon   float64
	episode   int // completed episodes
	outcomes  []Outcome
	successes []Success
	elapsed   time.Duration
	started   bool

	lengths *trackers.EpisodeLength
	returns *trackers.Return

	trackers      []trackers.Tracker
	checkpointers []checkpointer.Checkpointer
	checkpointDir string
	observers     []Observer
	tableSinks    []export.TableSink
	traceSinks    []export.TraceSink
}

var _ Experiment = (*Session)(nil)

// Option configures a Session
type Option func(*Session)

// WithRunID sets the run id labelling exports instead of a random
// UUID
func WithRunID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithObserver registers a progress Observer
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

// WithTableSink registers a sink for value table exports
func WithTableSink(sink export.TableSink) Option {
	return func(s *Session) { s.tableSinks = append(s.tableSinks, sink) }
}

// WithTraceSink registers a sink for episode traces. Traces are only
// produced when Config.TraceEvery is positive.
func WithTraceSink(sink export.TraceSink) Option {
	return func(s *Session) { s.traceSinks = append(s.traceSinks, sink) }
}

// WithTracker registers a Tracker
func WithTracker(t trackers.Tracker) Option {
	return func(s *Session) { s.trackers = append(s.trackers, t) }
}

// WithCheckpointDir saves the value table into dir every
// Config.CheckpointEvery episodes
func WithCheckpointDir(dir string) Option {
	return func(s *Session) { s.checkpointDir = dir }
}

// WithCheckpointer registers a Checkpointer
func WithCheckpointer(c checkpointer.Checkpointer) Option {
	return func(s *Session) { s.checkpointers = append(s.checkpointers, c) }
}

// NewSession validates cfg against bounds and creates a Session
// training on grid. Invalid configurations return an error wrapping
// ErrConfiguration and no Session.
func NewSession(cfg Config, bounds Bounds, grid *gridworld.GridWorld,
	opts ...Option) (*Session, error) {
	if grid == nil {
		return nil, configError("newSession: no grid")
	}
	if err := cfg.Validate(bounds); err != nil {
		return nil, fmt.Errorf("newSession: %w", err)
	}

	s := &Session{
		id:      uuid.NewString(),
		cfg:     cfg,
		grid:    grid,
		epsilon: cfg.InitialExplorationRate,
		lengths: trackers.NewEpisodeLength(""),
		returns: trackers.NewReturn(""),
	}
	for _, opt := range opts {
		opt(s)
	}

	strategy, err := gridworld.ParseResetStrategy(cfg.ResetStrategy)
	if err != nil {
		return nil, fmt.Errorf("newSession: %w", err)
	}
	wallHit, err := agent.ParseWallHitMode(cfg.WallHit)
	if err != nil {
		return nil, configError("newSession: %v", err)
	}
	rewards := cfg.Rewards
	if wallHit == agent.SuppressWallHits {
		rewards.Wall = math.Inf(-1)
	}

	var enders []environment.Ender
	if cfg.AvoidLoops {
		enders = append(enders, environment.NewLoopDetector(cfg.loopWindow()))
	}
	s.env, _, err = gridworld.NewEnv(grid, rewards, strategy,
		cfg.DiscountFactor, cfg.seed(resetStream), enders...)
	if err != nil {
		return nil, fmt.Errorf("newSession: %w", err)
	}

	initCfg, err := cfg.tableInit()
	if err != nil {
		return nil, fmt.Errorf("newSession: %w", err)
	}
	s.table, err = valuetable.New(grid, initCfg)
	if err != nil {
		return nil, fmt.Errorf("newSession: %w", err)
	}

	agentCfg, err := cfg.agentConfig()
	if err != nil {
		return nil, fmt.Errorf("newSession: %w", err)
	}
	s.agent, err = agentCfg.CreateAgent(s.table, cfg.seed(policyStream))
	if err != nil {
		return nil, fmt.Errorf("newSession: could not create agent: %w", err)
	}

	if s.checkpointDir != "" && cfg.CheckpointEvery > 0 {
		c, err := checkpointer.NewNEpisode(cfg.CheckpointEvery, s.table,
			checkpointer.RunEnumerator(s.checkpointDir, s.id, ".gob"))
		if err != nil {
			return nil, fmt.Errorf("newSession: %w", err)
		}
		s.checkpointers = append(s.checkpointers, c)
	}
	return s, nil
}

// ID returns the run id of the session
func (s *Session) ID() string {
	return s.id
}

// Config returns the validated configuration of the session
func (s *Session) Config() Config {
	return s.cfg
}

// Grid returns the board the session trains on
func (s *Session) Grid() *gridworld.GridWorld {
	return s.grid
}

// Table returns the value table learned by the session
func (s *Session) Table() *valuetable.ValueTable {
	return s.table
}

// Epsilon returns the current exploration rate
func (s *Session) Epsilon() float64 {
	return s.epsilon
}

// MaxSteps returns the episode step cap
func (s *Session) MaxSteps() int {
	return s.env.MaxSteps()
}

// Register registers a Tracker with the running session
func (s *Session) Register(t trackers.Tracker) {
	s.trackers = append(s.trackers, t)
}

// Save saves the data of every registered Tracker
func (s *Session) Save() error {
	for _, t := range s.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

// Run runs the remaining episodes of the session. The context is only
// checked between episodes; on cancellation Run returns the report of
// the episodes run so far along with the context's error, and a later
// call resumes training. Once all episodes have run, the final value
// table is exported and the greedy policy is replayed.
func (s *Session) Run(ctx context.Context) (Report, error) {
	if !s.started {
		s.started = true
		start, goal := s.grid.Start(), s.grid.Goal()
		klog.InfoS("Starting training", "run", s.id,
			"algorithm", s.cfg.Algorithm, "episodes", s.cfg.Episodes,
			"start", start, "goal", goal)
		if s.cfg.ExportInitialTable {
			s.exportTable(export.Initial)
		}
	}

	began := time.Now()
	for s.episode < s.cfg.Episodes {
		if err := ctx.Err(); err != nil {
			s.elapsed += time.Since(began)
			klog.InfoS("Training interrupted", "run", s.id,
				"episode", s.episode)
			return s.Report(), fmt.Errorf("run: %w", err)
		}
		if _, err := s.RunEpisode(); err != nil {
			s.elapsed += time.Since(began)
			return s.Report(), fmt.Errorf("run: %w", err)
		}
	}
	s.elapsed += time.Since(began)

	s.exportTable(export.Final)

	report := s.Report()
	klog.InfoS("Training completed", "run", s.id,
		"successes", len(report.Successes),
		"meanEpisodeLength", report.MeanEpisodeLength,
		"elapsed", report.Elapsed)

	result, err := replay.Run(s.grid, s.table)
	if err != nil {
		return report, fmt.Errorf("run: %w", err)
	}
	klog.InfoS("Replayed greedy policy", "run", s.id,
		"reachedGoal", result.ReachedGoal, "steps", result.Steps)
	report.Replay = &result
	return report, nil
}

// RunEpisode runs a single episode and returns its outcome
func (s *Session) RunEpisode() (Outcome, error) {
	episode := s.episode + 1
	maxSteps := s.env.MaxSteps()
	for _, o := range s.observers {
		o.OnEpisodeProgress(episode, s.cfg.Episodes)
	}

	step, err := s.env.Reset()
	if err != nil {
		return Running, fmt.Errorf("runEpisode: %w", err)
	}
	if err := s.agent.ObserveFirst(step); err != nil {
		return Running, fmt.Errorf("runEpisode: %w", err)
	}
	s.track(step)

	traced := s.traced(episode)
	if traced {
		s.snapshot(episode, step.Number)
	}

	for !step.Last() {
		// Select action, step in environment
		action := s.agent.SelectAction(step)
		next, _, err := s.env.Step(action)
		if err != nil {
			return Running, fmt.Errorf("runEpisode: %w", err)
		}

		// Observe the timestep and step the agent
		if err := s.agent.Observe(action, next); err != nil {
			return Running, fmt.Errorf("runEpisode: %w", err)
		}
		if err := s.agent.Step(); err != nil {
			return Running, fmt.Errorf("runEpisode: %w", err)
		}
		step = next

		s.track(step)
		for _, o := range s.observers {
			o.OnStepProgress(step.Number, maxSteps)
		}
		if traced {
			s.snapshot(episode, step.Number)
		}
	}
	s.agent.EndEpisode()

	outcome := outcomeOf(step)
	s.outcomes = append(s.outcomes, outcome)
	if outcome == Succeeded {
		s.successes = append(s.successes, Success{episode, step.Number})
		for _, o := range s.observers {
			o.OnSuccessCountChanged(len(s.successes))
		}
	}
	klog.V(2).InfoS("Episode finished", "run", s.id, "episode", episode,
		"outcome", outcome, "steps", step.Number, "epsilon", s.epsilon)

	s.epsilon = s.cfg.ExplorationDecay.Next(s.epsilon, s.cfg.ExplorationFloor)
	s.agent.SetEpsilon(s.epsilon)
	s.episode++
	return outcome, nil
}

// Reset stops counting progress and starts training over: the value
// table is re-initialized, success bookkeeping is cleared, gifts are
// put back on the board and the exploration rate is restored. Reset
// must only be called between episodes, for example after Run returned
// because its context was cancelled.
func (s *Session) Reset() error {
	if err := s.table.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.grid.Restore()

	s.epsilon = s.cfg.InitialExplorationRate
	s.agent.SetEpsilon(s.epsilon)
	s.agent.EndEpisode()
	s.episode = 0
	s.outcomes = nil
	s.successes = nil
	s.elapsed = 0
	s.started = false
	s.lengths.Reset()
	s.returns.Reset()

	for _, o := range s.observers {
		o.OnEpisodeProgress(0, s.cfg.Episodes)
		o.OnStepProgress(0, s.env.MaxSteps())
		o.OnSuccessCountChanged(0)
	}
	klog.InfoS("Training reset", "run", s.id)
	return nil
}

// Report returns a summary of the episodes run so far
func (s *Session) Report() Report {
	outcomes := make([]Outcome, len(s.outcomes))
	copy(outcomes, s.outcomes)
	successes := make([]Success, len(s.successes))
	copy(successes, s.successes)

	r := Report{
		RunID:     s.id,
		Algorithm: s.cfg.Algorithm,
		Episodes:  s.episode,
		Outcomes:  outcomes,
		Successes: successes,
		Epsilon:   s.epsilon,
		Elapsed:   s.elapsed,
	}
	if lengths := s.lengths.Data(); len(lengths) > 0 {
		r.MeanEpisodeLength = stat.Mean(lengths, nil)
	}
	if returns := s.returns.Data(); len(returns) > 0 {
		r.MeanReturn = stat.Mean(returns, nil)
	}
	return r
}

// Replay runs the greedy policy of the current value table from the
// start cell
func (s *Session) Replay() (replay.Result, error) {
	return replay.Run(s.grid, s.table)
}

// traced returns whether episode is sampled for trace export
func (s *Session) traced(episode int) bool {
	every := s.cfg.TraceEvery
	if every <= 0 || len(s.traceSinks) == 0 {
		return false
	}
	return episode%every == 0 || episode == s.cfg.Episodes
}

// track tracks the current timestep by caching its data in each
// tracker and checkpointing
func (s *Session) track(t ts.TimeStep) {
	s.lengths.Track(t)
	s.returns.Track(t)
	for _, tracker := range s.trackers {
		tracker.Track(t)
	}
	for _, c := range s.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			klog.ErrorS(err, "Could not checkpoint value table", "run", s.id)
		}
	}
}

func (s *Session) snapshot(episode, step int) {
	snap := export.Snapshot{
		RunID:   s.id,
		Episode: episode,
		Step:    step,
		Grid:    s.grid,
	}
	for _, sink := range s.traceSinks {
		if err := sink.ExportSnapshot(snap); err != nil {
			klog.ErrorS(err, "Could not export episode trace", "run", s.id,
				"episode", episode, "step", step)
		}
	}
}

func (s *Session) exportTable(stage export.Stage) {
	table := export.Table{
		RunID:  s.id,
		Stage:  stage,
		Values: s.table,
		Grid:   s.grid,
		Time:   time.Now(),
	}
	for _, sink := range s.tableSinks {
		if err := sink.ExportTable(table); err != nil {
			klog.ErrorS(err, "Could not export value table", "run", s.id,
				"stage", stage)
		}
	}
}
