// Package runner wires internal/config into a runnable
// internal/kernel.Simulation: it is the one place that turns a
// Config into a deployment, its graphs, a MAC protocol, and a
// completed Result. cmd/cascadesim and cmd/cascadectl both call it so
// the two binaries build the exact same simulation from the exact
// same configuration.
package runner

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/Sirikiddo/RandClusterModel/internal/config"
	"github.com/Sirikiddo/RandClusterModel/internal/geometry"
	"github.com/Sirikiddo/RandClusterModel/internal/graph"
	"github.com/Sirikiddo/RandClusterModel/internal/interference"
	"github.com/Sirikiddo/RandClusterModel/internal/kernel"
	"github.com/Sirikiddo/RandClusterModel/internal/mac"
	"github.com/Sirikiddo/RandClusterModel/internal/pointgen"
)

// Run is a fully-wired deployment plus the outcome of executing it
// once. Every field is read-only once Execute returns: a fresh Run is
// built per call, never mutated afterward.
type Run struct {
	Config       *config.Config
	Points       []geometry.Point
	Comm         *graph.Communication
	Interference *graph.Interference
	Table        *interference.Table
	WithMessage  []int
	Targets      []int
	Result       kernel.Result
}

// Execute builds a deployment from cfg and runs it to completion (or
// until ctx is cancelled). It mirrors NaiveWavePropagationSim's
// construction sequence: generate points, build the communication and
// interference graphs, find the interference radius, build the
// conflict oracle, pick a MAC protocol, seed message holders and
// targets, then run the event loop.
func Execute(ctx context.Context, cfg *config.Config) (*Run, error) {
	probFn, err := geometry.ProbabilityFuncType(cfg.Channel.ProbabilityFuncType).Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolve probability function: %w", err)
	}

	points := pointgen.Generate(
		cfg.Deployment.Seed,
		cfg.Deployment.Size[0],
		cfg.Deployment.Size[1],
		cfg.Deployment.Rho,
		pointgen.Type(cfg.Deployment.PointGenType),
	)
	for i := range points {
		points[i].X += cfg.Deployment.Center[0]
		points[i].Y += cfg.Deployment.Center[1]
	}

	comm := graph.BuildCommunication(points, cfg.Channel.FVal, cfg.Channel.Reliability, probFn)

	radius := interference.FindInterferenceRadius(cfg.Channel.FVal, probFn)
	interferenceGraph := graph.BuildInterference(points, radius)
	table := interference.BuildTable(points, comm, radius, interference.MessageDuration())

	rng := rand.New(rand.NewPCG(cfg.Deployment.Seed, cfg.Deployment.Seed))

	protocol, err := newProtocol(cfg.Run.Protocol, interferenceGraph, len(points), rng)
	if err != nil {
		return nil, err
	}

	withMessage, targets := kernel.SeedMessageHolders(points, cfg.Deployment.Size[0], cfg.Deployment.Center[0], cfg.Deployment.Margin)
	if cfg.Run.LoadTest {
		withMessage = allNodes(len(points))
	}

	sim := kernel.NewSimulation(kernel.Config{
		Points:      points,
		Comm:        comm,
		Interferers: table,
		Protocol:    protocol,
		WithMessage: withMessage,
		Targets:     targets,
		LoadTest:    cfg.Run.LoadTest,
		MaxTime:     cfg.Run.MaxTime,
		Rand:        rng,
	})

	return &Run{
		Config:       cfg,
		Points:       points,
		Comm:         comm,
		Interference: interferenceGraph,
		Table:        table,
		WithMessage:  withMessage,
		Targets:      targets,
		Result:       sim.Run(ctx),
	}, nil
}

// allNodes returns every node index [0, n) — used to seed WithMessage
// under Config.Run.LoadTest, where every node starts holding the
// message so the run gathers steady-state channel statistics instead
// of propagation delay. Mirrors SimHandler.__init__'s
// "nodesWithMessage = [all nodes]" branch.
func allNodes(n int) []int {
	nodes := make([]int, n)
	for i := range nodes {
		nodes[i] = i
	}
	return nodes
}

// newProtocol builds the MAC protocol named by code, one of
// config.RunConfig.Protocol's 0 (TDMA) or 1 (listen-before-transmit)
// values. Execute does not call config.Validate, so any other code is
// reported here as config.ErrUnknownProtocol.
func newProtocol(code int, interferenceGraph *graph.Interference, n int, rng *rand.Rand) (mac.Protocol, error) {
	switch code {
	case 0:
		return mac.NewTDMA(interferenceGraph), nil
	case 1:
		return mac.NewListen(n, rng), nil
	default:
		return nil, fmt.Errorf("%w: %d", config.ErrUnknownProtocol, code)
	}
}
