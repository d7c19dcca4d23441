package agent

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"quoridor/searcher"
)

// Handler serves the given evaluator at POST /evaluate, the counterpart of
// RemoteEvaluator.
func Handler(evaluator searcher.Evaluator) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/evaluate", func(w http.ResponseWriter, r *http.Request) {
		var payload boardPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}

		policy, value, err := evaluator.Evaluate(decodeBoard(payload))
		if err != nil {
			log.Error().Err(err).Msg("evaluation failed")
			http.Error(w, "evaluation failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(evaluation{Policy: policy, Value: value}); err != nil {
			log.Error().Err(err).Msg("failed to encode evaluation")
		}
	})
	return mux
}

// ListenAndServe runs an evaluator server on the given port.
func ListenAndServe(port string, evaluator searcher.Evaluator) error {
	log.Info().Str("port", port).Msg("starting evaluator server")
	return http.ListenAndServe(":"+port, Handler(evaluator))
}
