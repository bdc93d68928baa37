package kernel

import (
	"context"
	"math/rand/v2"

	"github.com/Sirikiddo/RandClusterModel/internal/geometry"
	"github.com/Sirikiddo/RandClusterModel/internal/graph"
	"github.com/Sirikiddo/RandClusterModel/internal/interference"
	"github.com/Sirikiddo/RandClusterModel/internal/mac"
)

// Config bundles the fixed inputs a Simulation is built from: a
// deployment, its communication graph and conflict oracle, the chosen
// MAC protocol, and the run parameters. A Simulation owns everything
// derived from a Config and is constructed fresh per run.
type Config struct {
	Points      []geometry.Point
	Comm        *graph.Communication
	Interferers *interference.Table
	Protocol    mac.Protocol

	// WithMessage lists the nodes that hold the message before the
	// first tick. Targets lists the nodes whose possession of the
	// message ends the run early, unless LoadTest is set.
	WithMessage []int
	Targets     []int

	// LoadTest disables the early-termination-on-delivery check, so
	// the run continues to MaxTime regardless of target possession —
	// used to gather steady-state channel statistics rather than
	// propagation delay. Mirrors Settings.loadTest.
	LoadTest bool

	MaxTime float64
	Rand    *rand.Rand
}

// Result is the outcome of a completed Run.
type Result struct {
	// FinalTime is the simulation clock value at which the run ended.
	FinalTime float64

	// Delivered is true if the run ended because a target node had
	// received the message (always false when LoadTest is set).
	Delivered bool

	// WithMessage lists every node holding the message when the run
	// ended.
	WithMessage []int

	History *History
	Logger  *Logger
}

// Simulation is a single, disposable event-driven run over a fixed
// deployment: it owns the event queue, the send history, and all
// per-node runtime state, mirroring SimHandler's per-run state
// ownership (constructed fresh via NaiveWavePropagationSim.
// updateSimParameters, never reused across runs).
type Simulation struct {
	cfg Config

	queue           *EventQueue
	history         *History
	logger          *Logger
	lastProcessTime []float64
	withMessage     map[int]bool
	targets         map[int]bool
}

// NewSimulation constructs a Simulation ready to Run, with its own
// event queue and history seeded from cfg.
func NewSimulation(cfg Config) *Simulation {
	s := &Simulation{
		cfg:             cfg,
		queue:           NewEventQueue(),
		history:         NewHistory(len(cfg.Points)),
		logger:          NewLogger(cfg.Comm),
		lastProcessTime: make([]float64, len(cfg.Points)),
		withMessage:     make(map[int]bool, len(cfg.WithMessage)),
		targets:         make(map[int]bool, len(cfg.Targets)),
	}
	for _, n := range cfg.WithMessage {
		s.withMessage[n] = true
	}
	for _, n := range cfg.Targets {
		s.targets[n] = true
	}
	return s
}

// Run executes the event loop to completion: either any target node
// has received the message, the simulation clock exceeds MaxTime, or
// ctx is cancelled. Mirrors SimHandler.doSim + algStep.
func (s *Simulation) Run(ctx context.Context) Result {
	for _, b := range s.cfg.Protocol.InitialSchedule(0) {
		s.queue.Push(b.Time, b.Nodes)
	}

	finalTime := 0.0
	delivered := false

	for !s.queue.Empty() {
		select {
		case <-ctx.Done():
			return s.result(finalTime, false)
		default:
		}

		t, batch := s.queue.Pop()
		finalTime = t

		s.updateNodesWithMessages(batch, t)

		listenProtocol, isListen := s.cfg.Protocol.(mac.ListenProtocol)
		if isListen {
			begin, end, listening := listenProtocol.WitnessInterval(batch, s.withMessage, t)
			heard := s.didNodesHearSomething(listening, begin, end)
			listenProtocol.ApplyHearing(listening, heard)
		}

		sent, next := s.cfg.Protocol.Step(batch, s.withMessage, t)
		s.logger.AddAttempt(batch, 1)
		for _, n := range batch {
			s.lastProcessTime[n] = t
		}
		if len(sent) > 0 {
			s.history.Record(t, sent)
		}

		if !s.cfg.LoadTest && s.anyTargetHasMessage() {
			delivered = true
			break
		}

		for _, b := range next {
			s.queue.Push(b.Time, b.Nodes)
		}

		if t > s.cfg.MaxTime {
			break
		}
	}

	return s.result(finalTime, delivered)
}

func (s *Simulation) result(finalTime float64, delivered bool) Result {
	withMessage := make([]int, 0, len(s.withMessage))
	for n := range s.withMessage {
		withMessage = append(withMessage, n)
	}
	return Result{
		FinalTime:   finalTime,
		Delivered:   delivered,
		WithMessage: withMessage,
		History:     s.history,
		Logger:      s.logger,
	}
}

func (s *Simulation) anyTargetHasMessage() bool {
	for n := range s.targets {
		if s.withMessage[n] {
			return true
		}
	}
	return false
}

// updateNodesWithMessages checks every node in batch that does not yet
// hold the message for a newly-arrived delivery, and adds it to the
// possession set if one is found. Under LoadTest every node already
// holds the message, so this loop alone would never touch the
// conflict oracle again; haveIncomingMessages is also run (for its
// logging side effect, discarding the result) over nodes that already
// have the message so collision statistics keep accumulating for the
// rest of the run. Mirrors SimHandler.updateNodesWithMessages.
func (s *Simulation) updateNodesWithMessages(batch []int, t float64) {
	if s.cfg.LoadTest {
		for _, node := range batch {
			s.haveIncomingMessages(node, t)
		}
	}
	for _, node := range batch {
		if s.withMessage[node] {
			continue
		}
		if s.haveIncomingMessages(node, t) {
			s.withMessage[node] = true
		}
	}
}

// haveIncomingMessages reports whether node received a message from
// any communication-graph neighbor, checking every past send of that
// neighbor's against the conflict oracle to see if it actually arrived
// uncollided, and probabilistically against the edge's reception
// probability. Mirrors SimHandler.haveIncomingMessages.
func (s *Simulation) haveIncomingMessages(node int, t float64) bool {
	radius := s.cfg.Interferers.Radius
	tPrev := s.lastProcessTime[node]

	gotMessage := false
	for _, neighbor := range s.cfg.Comm.Neighbors(node) {
		offset := geometry.Dist(s.cfg.Points[node], s.cfg.Points[neighbor]) / radius
		tBegin := tPrev - offset
		tEnd := t - offset

		sends := s.history.Range(neighbor, tBegin, tEnd)
		if len(sends) == 0 {
			continue
		}

		edge := graph.NewEdge(neighbor, node)
		indexes := s.cfg.Interferers.ConflictIndexes(edge, node)

		interfererHistory := make(map[int][]float64, len(indexes))
		for _, idx := range indexes {
			interfererHistory[idx] = s.history.Range(idx, tBegin-1, tEnd)
		}

		schedulable := s.cfg.Interferers.FilterSchedulableSends(neighbor, node, sends, interfererHistory)

		collisions := len(sends) - len(schedulable)
		s.logger.AddObservation(DirectedEdge{From: neighbor, To: node}, len(sends), collisions)

		if s.tryToDeliver(neighbor, node, schedulable) {
			gotMessage = true
		}
	}
	return gotMessage
}

// tryToDeliver draws one uniform random number per uncollided send
// time and succeeds on the first that falls within the edge's
// reception probability. Mirrors SimHandler.tryToSendMessage.
func (s *Simulation) tryToDeliver(from, to int, candidateTimes []float64) bool {
	p, ok := s.cfg.Comm.Probability(graph.NewEdge(from, to))
	if !ok {
		return false
	}
	for range candidateTimes {
		if s.cfg.Rand.Float64() <= p {
			return true
		}
	}
	return false
}

// didNodesHearSomething filters nodes down to those that detected any
// transmission from a communication-graph neighbor within [begin,
// end]. Mirrors SimHandler.didNodesHearSomething.
func (s *Simulation) didNodesHearSomething(nodes []int, begin, end float64) []int {
	var heard []int
	for _, node := range nodes {
		if s.didNodeHearSomething(node, begin, end) {
			heard = append(heard, node)
		}
	}
	return heard
}

func (s *Simulation) didNodeHearSomething(node int, begin, end float64) bool {
	radius := s.cfg.Interferers.Radius
	for _, neighbor := range s.cfg.Comm.Neighbors(node) {
		offset := geometry.Dist(s.cfg.Points[node], s.cfg.Points[neighbor]) / radius
		if len(s.history.Range(neighbor, begin-offset, end-offset)) > 0 {
			return true
		}
	}
	return false
}
