package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetrics summarizes one ActionProbs call.
type SearchMetrics struct {
	StartTime        time.Time
	Duration         time.Duration
	Simulations      int64
	Cpuct            float64
	Configured       int
	TerminalHits     int64
	UniformFallbacks int64
	TableSize        int
}

type Collector interface {
	Start(sims int, cpuct float64)
	AddSimulation()
	AddTerminal()
	AddFallback()
	Complete(tableSize int)
	Last() SearchMetrics
}

type collector struct {
	configured   int
	cpuct        float64
	startTime    time.Time
	simulations  atomic.Int64
	terminalHits atomic.Int64
	fallbacks    atomic.Int64
	last         SearchMetrics
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(sims int, cpuct float64) {
	c.startTime = time.Now()
	c.configured = sims
	c.cpuct = cpuct
	c.simulations.Store(0)
	c.terminalHits.Store(0)
	c.fallbacks.Store(0)
}

func (c *collector) AddSimulation() {
	c.simulations.Add(1)
}

func (c *collector) AddTerminal() {
	c.terminalHits.Add(1)
}

func (c *collector) AddFallback() {
	c.fallbacks.Add(1)
}

func (c *collector) Complete(tableSize int) {
	c.last = SearchMetrics{
		StartTime:        c.startTime,
		Duration:         time.Since(c.startTime),
		Simulations:      c.simulations.Load(),
		Cpuct:            c.cpuct,
		Configured:       c.configured,
		TerminalHits:     c.terminalHits.Load(),
		UniformFallbacks: c.fallbacks.Load(),
		TableSize:        tableSize,
	}
}

func (c *collector) Last() SearchMetrics {
	return c.last
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (dummyCollector) Start(sims int, cpuct float64) {}
func (dummyCollector) AddSimulation()                {}
func (dummyCollector) AddTerminal()                  {}
func (dummyCollector) AddFallback()                  {}
func (dummyCollector) Complete(tableSize int)        {}
func (dummyCollector) Last() SearchMetrics           { return SearchMetrics{} }
