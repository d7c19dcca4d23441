package agent

import (
	"math"
	"os"
	"sync"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"quoridor/game"
)

// ONNXRUNTIME_SHARED_LIBRARY_PATH overrides the onnxruntime shared library
// location when it is not on the default search path.
const envSharedLibrary = "ONNXRUNTIME_SHARED_LIBRARY_PATH"

// onnxruntime keeps one global environment per process.
var (
	ortInitOnce sync.Once
	ortInitErr  error
)

// OnnxEvaluator runs a policy/value network exported to ONNX. The model takes
// one input named "board" of shape [1, n, n, 6] (the Board.ToArray encoding)
// and produces "policy" logits over the action space and a scalar "value" in
// [-1, 1].
type OnnxEvaluator struct {
	game    *game.Game
	session *ort.DynamicAdvancedSession
}

func NewOnnxEvaluator(g *game.Game, modelPath string) (*OnnxEvaluator, error) {
	if p := os.Getenv(envSharedLibrary); p != "" {
		ort.SetSharedLibraryPath(p)
	}
	ortInitOnce.Do(func() {
		if !ort.IsInitialized() {
			ortInitErr = ort.InitializeEnvironment()
		}
	})
	if ortInitErr != nil {
		return nil, errors.Wrap(ortInitErr, "initialize onnxruntime environment")
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{"board"}, []string{"policy", "value"}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "create session for %s", modelPath)
	}

	return &OnnxEvaluator{game: g, session: session}, nil
}

func (e *OnnxEvaluator) Evaluate(b *game.Board) ([]float64, float64, error) {
	n := int64(e.game.N)
	input, err := ort.NewTensor(ort.NewShape(1, n, n, 6), b.ToArray())
	if err != nil {
		return nil, 0, errors.Wrap(err, "create input tensor")
	}
	defer input.Destroy()

	outputs := []ort.Value{nil, nil}
	if err := e.session.Run([]ort.Value{input}, outputs); err != nil {
		return nil, 0, errors.Wrap(err, "run inference")
	}
	for _, out := range outputs {
		defer out.Destroy()
	}

	logits, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, 0, errors.New("policy output is not a float32 tensor")
	}
	values, ok := outputs[1].(*ort.Tensor[float32])
	if !ok {
		return nil, 0, errors.New("value output is not a float32 tensor")
	}
	if len(logits.GetData()) != e.game.ActionSize() || len(values.GetData()) < 1 {
		return nil, 0, errors.Errorf("unexpected output shapes: policy %d, value %d",
			len(logits.GetData()), len(values.GetData()))
	}

	policy := softmax(logits.GetData())
	return policy, float64(values.GetData()[0]), nil
}

// Close releases the underlying session.
func (e *OnnxEvaluator) Close() error {
	return e.session.Destroy()
}

// softmax turns policy logits into probabilities, shifted by the max logit
// for numerical stability.
func softmax(logits []float32) []float64 {
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		if l > maxLogit {
			maxLogit = l
		}
	}

	out := make([]float64, len(logits))
	sum := 0.0
	for i, l := range logits {
		out[i] = math.Exp(float64(l - maxLogit))
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
