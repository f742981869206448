package chain

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Valid 32-byte base58 digests.
const (
	digestA = "8RBsoeyoRwajj86MZfZE6gMDJQVYGYcdSfx1zxqxNHbr"
	digestB = "67WKXSxm4oc149PvQjdXLacKFZpK5DyYdqBwpiVydJbb"
	digestC = "FnqbqF7YJekTNEMkZJMcujSouSfd4CzTacotg2LmSqeV"
)

type nodeRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type nodeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// nodeHandler answers one JSON-RPC call. Returning a non-nil *nodeError
// produces an error response.
type nodeHandler func(t *testing.T, method string, params []json.RawMessage) (any, *nodeError)

// fakeNode starts an httptest server speaking the fullnode's JSON-RPC dialect.
func fakeNode(t *testing.T, handle nodeHandler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req nodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		result, rpcErr := handle(t, req.Method, req.Params)

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv
}

// staticNode answers every method from a fixed table.
func staticNode(t *testing.T, results map[string]any) *httptest.Server {
	t.Helper()
	return fakeNode(t, func(t *testing.T, method string, _ []json.RawMessage) (any, *nodeError) {
		res, ok := results[method]
		if !ok {
			return nil, &nodeError{Code: -32601, Message: "Method not found"}
		}
		return res, nil
	})
}

func rawJSON(t *testing.T, s string) json.RawMessage {
	t.Helper()
	require.True(t, json.Valid([]byte(s)), "invalid fixture JSON: %s", s)
	return json.RawMessage(s)
}

func decodeParam[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}
