package searcher

import (
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"quoridor/game"
)

// eps keeps the exploration term nonzero at a freshly expanded node.
const eps = 1e-8

// Evaluator supplies a prior policy over the full action space and a value
// estimate in [-1, 1] for a canonical board. The policy need not be masked;
// masking and renormalization are the engine's job.
type Evaluator interface {
	Evaluate(b *game.Board) (policy []float64, value float64, err error)
}

type Option func(*MCTS)

func WithSimulations(sims int) Option {
	return func(m *MCTS) {
		if sims > 0 {
			m.sims = sims
		}
	}
}

func WithCpuct(cpuct float64) Option {
	return func(m *MCTS) {
		if cpuct > 0 {
			m.cpuct = cpuct
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewCollector()
	}
}

// MCTS runs Monte-Carlo tree search over canonical boards with priors from
// an injected evaluator. Statistics are owned by the instance and grow
// without bound over its lifetime; one instance must never be shared across
// concurrently running games.
type MCTS struct {
	game      *game.Game
	evaluator Evaluator
	sims      int
	cpuct     float64
	rng       *rand.Rand
	metrics   Collector
	nodes     map[string]*node
}

// node holds the search statistics for one canonical state: N(s) in visits,
// Q(s,a)/N(s,a) per edge, the evaluator priors and the cached legality mask
// and terminal status.
type node struct {
	ended    bool
	score    float64
	expanded bool
	priors   []float64
	valids   []bool
	visits   int
	edgeQ    []float64
	edgeN    []int
}

func NewMCTS(g *game.Game, evaluator Evaluator, options ...Option) *MCTS {
	if evaluator == nil {
		panic("searcher requires an evaluator")
	}
	m := &MCTS{ // Default values
		game:      g,
		evaluator: evaluator,
		sims:      25,
		cpuct:     1.0,
		rng:       rand.New(rand.NewSource(1)),
		metrics:   NewDummyCollector(),
		nodes:     make(map[string]*node),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// ActionProbs runs the configured number of simulations from the given
// canonical board and returns a distribution over actions derived from the
// root visit counts. temp 0 selects a count-maximal action (ties broken
// uniformly at random) as a one-hot distribution; temp > 0 returns
// counts^(1/temp) normalized.
func (m *MCTS) ActionProbs(b *game.Board, temp float64) ([]float64, error) {
	m.metrics.Start(m.sims, m.cpuct)
	for i := 0; i < m.sims; i++ {
		if _, err := m.search(b); err != nil {
			return nil, err
		}
		m.metrics.AddSimulation()
	}
	m.metrics.Complete(len(m.nodes))

	counts := make([]float64, m.game.ActionSize())
	total := 0.0
	if nd, ok := m.nodes[b.Key()]; ok && nd.expanded {
		for a, n := range nd.edgeN {
			counts[a] = float64(n)
			total += counts[a]
		}
	}

	if total == 0 {
		// Every simulation ended at the root: spread mass over legal actions.
		log.Warn().Str("board", b.Key()).Msg("no root visits recorded, returning uniform probabilities")
		return uniformOverValids(m.game.ValidActions(b)), nil
	}

	if temp == 0 {
		best := math.Inf(-1)
		for _, c := range counts {
			if c > best {
				best = c
			}
		}
		var maximal []int
		for a, c := range counts {
			if c == best {
				maximal = append(maximal, a)
			}
		}
		probs := make([]float64, len(counts))
		probs[maximal[m.rng.Intn(len(maximal))]] = 1
		return probs, nil
	}

	sum := 0.0
	probs := make([]float64, len(counts))
	for a, c := range counts {
		probs[a] = math.Pow(c, 1/temp)
		sum += probs[a]
	}
	for a := range probs {
		probs[a] /= sum
	}
	return probs, nil
}

// Metrics returns the metrics of the most recent ActionProbs call. Zero
// value unless the engine was built WithMetrics.
func (m *MCTS) Metrics() SearchMetrics {
	return m.metrics.Last()
}

// search runs one selection→expansion→backpropagation pass and returns the
// value of the board negated into the parent's perspective.
func (m *MCTS) search(b *game.Board) (float64, error) {
	s := b.Key()

	nd, ok := m.nodes[s]
	if !ok {
		nd = &node{}
		nd.score, nd.ended = m.game.WinStatus(b, 1)
		m.nodes[s] = nd
	}
	if nd.ended {
		m.metrics.AddTerminal()
		return -nd.score, nil
	}

	if !nd.expanded {
		return m.expand(nd, b)
	}

	// Selection: maximize the upper confidence bound over legal actions,
	// first maximum wins so ties resolve to the lowest action id.
	best := -1
	bestScore := math.Inf(-1)
	sqrtN := math.Sqrt(float64(nd.visits))
	for a, ok := range nd.valids {
		if !ok {
			continue
		}
		var u float64
		if nd.edgeN[a] > 0 {
			u = nd.edgeQ[a] + m.cpuct*nd.priors[a]*sqrtN/float64(1+nd.edgeN[a])
		} else {
			u = m.cpuct * nd.priors[a] * math.Sqrt(float64(nd.visits)+eps)
		}
		if u > bestScore {
			bestScore = u
			best = a
		}
	}
	if best < 0 {
		log.Panic().Str("board", s).Msg("no legal action at a non-terminal node")
	}

	next, nextPlayer := m.game.NextState(b, 1, best)
	v, err := m.search(next.CanonicalForm(nextPlayer))
	if err != nil {
		return 0, err
	}

	if nd.edgeN[best] > 0 {
		nd.edgeQ[best] = (float64(nd.edgeN[best])*nd.edgeQ[best] + v) / float64(nd.edgeN[best]+1)
	} else {
		nd.edgeQ[best] = v
	}
	nd.edgeN[best]++
	nd.visits++
	return -v, nil
}

// expand evaluates a leaf, caches its masked and renormalized priors and
// returns the negated value estimate.
func (m *MCTS) expand(nd *node, b *game.Board) (float64, error) {
	policy, value, err := m.evaluator.Evaluate(b)
	if err != nil {
		return 0, err
	}
	if len(policy) != m.game.ActionSize() {
		log.Panic().
			Int("got", len(policy)).
			Int("want", m.game.ActionSize()).
			Msg("evaluator returned a malformed policy vector")
	}

	valids := m.game.ValidActions(b)
	priors := make([]float64, len(policy))
	sum := 0.0
	for a, ok := range valids {
		if ok {
			priors[a] = policy[a]
			sum += priors[a]
		}
	}

	if sum > 0 {
		for a := range priors {
			priors[a] /= sum
		}
	} else {
		// The evaluator put zero mass on every legal action. Recoverable:
		// fall back to the uniform distribution over legal actions.
		log.Warn().Str("board", b.Key()).Msg("all legal actions were masked, falling back to uniform priors")
		log.Debug().Msg("\n" + game.Render(b))
		m.metrics.AddFallback()
		priors = uniformOverValids(valids)
	}

	nd.priors = priors
	nd.valids = valids
	nd.edgeQ = make([]float64, len(policy))
	nd.edgeN = make([]int, len(policy))
	nd.visits = 0
	nd.expanded = true
	return -value, nil
}

func uniformOverValids(valids []bool) []float64 {
	count := 0
	for _, ok := range valids {
		if ok {
			count++
		}
	}
	if count == 0 {
		log.Panic().Msg("no legal action to spread probability mass over")
	}

	probs := make([]float64, len(valids))
	for a, ok := range valids {
		if ok {
			probs[a] = 1 / float64(count)
		}
	}
	return probs
}
