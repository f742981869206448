package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrFaucetRateLimited is returned when the faucet answers 429.
var ErrFaucetRateLimited = errors.New("faucet rate limit exceeded, try again later")

// FaucetCoin is a gas coin transferred by the faucet.
type FaucetCoin struct {
	ID               string `json:"id"`
	Amount           uint64 `json:"amount"`
	TransferTxDigest string `json:"transferTxDigest"`
}

// FaucetClient requests test funds from a network faucet.
type FaucetClient struct {
	url    string
	client *http.Client
}

// NewFaucetClient creates a client for the faucet gas endpoint at url.
func NewFaucetClient(url string) *FaucetClient {
	return &FaucetClient{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// URL returns the faucet endpoint.
func (f *FaucetClient) URL() string {
	return f.url
}

type faucetRequest struct {
	FixedAmountRequest struct {
		Recipient string `json:"recipient"`
	} `json:"FixedAmountRequest"`
}

type faucetResponse struct {
	TransferredGasObjects []FaucetCoin `json:"transferredGasObjects"`
	Error                 *string      `json:"error"`
}

// RequestFunds asks the faucet to send gas coins to recipient.
func (f *FaucetClient) RequestFunds(ctx context.Context, recipient string) ([]FaucetCoin, error) {
	var reqBody faucetRequest
	reqBody.FixedAmountRequest.Recipient = recipient
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("faucet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.WithFields(log.Fields{"faucet": f.url, "recipient": recipient}).Info("requesting test funds")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("faucet request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading faucet response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrFaucetRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("faucet returned %d: %s", resp.StatusCode, bytes.TrimSpace(respBody))
	}

	var fr faucetResponse
	if err := json.Unmarshal(respBody, &fr); err != nil {
		return nil, fmt.Errorf("parsing faucet response: %w", err)
	}
	if fr.Error != nil && *fr.Error != "" {
		return nil, fmt.Errorf("faucet error: %s", *fr.Error)
	}
	return fr.TransferredGasObjects, nil
}
