// Package fixtures serves canned fullnode and faucet responses to tests.
package fixtures

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixturesDir returns the absolute path to the fixtures directory.
func fixturesDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}

// LoadRPCResult loads the recorded result of a JSON-RPC method from
// rpc/<method>.json.
func LoadRPCResult(t testing.TB, method string) json.RawMessage {
	t.Helper()
	path := filepath.Join(fixturesDir(), "rpc", method+".json")
	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to load fixture RPC result: %s", method)
	require.True(t, json.Valid(data), "fixture %s is not valid JSON", method)
	return json.RawMessage(data)
}

// Load loads any fixture file by name.
func Load(t testing.TB, filename string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixturesDir(), filename))
	require.NoError(t, err, "failed to load fixture: %s", filename)
	return data
}

// FullnodeServer answers JSON-RPC calls with the recorded result of each
// method listed in methods. Unknown methods get a method-not-found error.
func FullnodeServer(t testing.TB, methods ...string) *httptest.Server {
	t.Helper()
	results := make(map[string]json.RawMessage, len(methods))
	for _, m := range methods {
		results[m] = LoadRPCResult(t, m)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if result, ok := results[req.Method]; ok {
			resp["result"] = result
		} else {
			resp["error"] = map[string]any{"code": -32601, "message": "Method not found: " + req.Method}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv
}

// FaucetServer answers every request with faucet_ok.json.
func FaucetServer(t testing.TB) *httptest.Server {
	t.Helper()
	body := Load(t, "faucet_ok.json")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write(body) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv
}
