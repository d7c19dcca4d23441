package agent

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"quoridor/game"
)

// boardPayload is the wire form of a board. Wall sets travel as anchor lists
// so the payload stays plain JSON.
type boardPayload struct {
	N          int      `json:"n"`
	MyPos      [2]int   `json:"my_pos"`
	EnemyPos   [2]int   `json:"enemy_pos"`
	MyWalls    int      `json:"my_walls"`
	EnemyWalls int      `json:"enemy_walls"`
	HWalls     [][2]int `json:"h_walls"`
	VWalls     [][2]int `json:"v_walls"`
	Turns      int      `json:"turns"`
}

type evaluation struct {
	Policy []float64 `json:"policy"`
	Value  float64   `json:"value"`
}

func encodeBoard(b *game.Board) boardPayload {
	p := boardPayload{
		N:          b.N,
		MyPos:      [2]int{b.MyPos.Row, b.MyPos.Col},
		EnemyPos:   [2]int{b.EnemyPos.Row, b.EnemyPos.Col},
		MyWalls:    b.MyWalls,
		EnemyWalls: b.EnemyWalls,
		Turns:      b.Turns,
	}
	for w := range b.HWalls {
		p.HWalls = append(p.HWalls, [2]int{w.Row, w.Col})
	}
	for w := range b.VWalls {
		p.VWalls = append(p.VWalls, [2]int{w.Row, w.Col})
	}
	return p
}

func decodeBoard(p boardPayload) *game.Board {
	b := game.NewBoard(p.N)
	b.MyPos = game.Pos{Row: p.MyPos[0], Col: p.MyPos[1]}
	b.EnemyPos = game.Pos{Row: p.EnemyPos[0], Col: p.EnemyPos[1]}
	b.MyWalls = p.MyWalls
	b.EnemyWalls = p.EnemyWalls
	b.Turns = p.Turns
	for _, w := range p.HWalls {
		b.HWalls[game.Pos{Row: w[0], Col: w[1]}] = true
	}
	for _, w := range p.VWalls {
		b.VWalls[game.Pos{Row: w[0], Col: w[1]}] = true
	}
	return b
}

// RemoteEvaluator queries an evaluator served over HTTP (see Handler). It
// lets one inference process back many game processes.
type RemoteEvaluator struct {
	serverURL string
	client    *http.Client
}

func NewRemoteEvaluator(serverURL string) *RemoteEvaluator {
	return &RemoteEvaluator{
		serverURL: serverURL,
		client:    http.DefaultClient,
	}
}

func (e *RemoteEvaluator) Evaluate(b *game.Board) ([]float64, float64, error) {
	data, err := json.Marshal(encodeBoard(b))
	if err != nil {
		return nil, 0, errors.Wrap(err, "marshal board")
	}

	resp, err := e.client.Post(e.serverURL+"/evaluate", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return nil, 0, errors.Wrap(err, "post board")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, errors.Errorf("evaluator server returned %s", resp.Status)
	}

	var eval evaluation
	if err := json.NewDecoder(resp.Body).Decode(&eval); err != nil {
		return nil, 0, errors.Wrap(err, "decode evaluation")
	}
	return eval.Policy, eval.Value, nil
}
