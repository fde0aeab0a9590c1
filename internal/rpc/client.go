package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	solana "github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"cnft/internal/domain"
	"cnft/internal/log"
)

// Commitment levels accepted by the cluster.
const (
	CommitmentProcessed = string(solanarpc.CommitmentProcessed)
	CommitmentConfirmed = string(solanarpc.CommitmentConfirmed)
	CommitmentFinalized = string(solanarpc.CommitmentFinalized)
)

// Error is a JSON-RPC error object returned by the node.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Options tunes a Client. Zero values fall back to defaults.
type Options struct {
	HTTP           *http.Client
	Commitment     string
	RateLimit      rate.Limit
	RateBurst      int
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
}

// Client adapts a solana-go RPC client to domain.ChainClient.
type Client struct {
	rpc        *solanarpc.Client
	commitment solanarpc.CommitmentType
	confirm    time.Duration
	poll       time.Duration
	logger     zerolog.Logger
}

// New returns a Client for endpoint.
func New(endpoint string, opts Options) *Client {
	if opts.HTTP == nil {
		opts.HTTP = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.Commitment == "" {
		opts.Commitment = CommitmentConfirmed
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = rate.Limit(10)
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 1
	}
	if opts.ConfirmTimeout <= 0 {
		opts.ConfirmTimeout = 90 * time.Second
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	logger := log.WithComponent("rpc")
	transport := &limitedClient{
		next:    jsonrpc.NewClientWithOpts(endpoint, &jsonrpc.RPCClientOpts{HTTPClient: opts.HTTP}),
		limiter: rate.NewLimiter(opts.RateLimit, opts.RateBurst),
		logger:  logger,
	}
	return &Client{
		rpc:        solanarpc.NewWithCustomRPCClient(transport),
		commitment: solanarpc.CommitmentType(opts.Commitment),
		confirm:    opts.ConfirmTimeout,
		poll:       opts.PollInterval,
		logger:     logger,
	}
}

// limitedClient rate limits and logs every call made through the wrapped
// JSON-RPC client.
type limitedClient struct {
	next    jsonrpc.RPCClient
	limiter *rate.Limiter
	logger  zerolog.Logger
}

func (l *limitedClient) CallForInto(ctx context.Context, out any, method string, params []any) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}
	start := time.Now()
	err := l.next.CallForInto(ctx, out, method, params)
	l.trace(method, start, err)
	return nodeError(method, err)
}

func (l *limitedClient) CallWithCallback(
	ctx context.Context,
	method string,
	params []any,
	callback func(*http.Request, *http.Response) error,
) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}
	start := time.Now()
	err := l.next.CallWithCallback(ctx, method, params, callback)
	l.trace(method, start, err)
	return nodeError(method, err)
}

func (l *limitedClient) CallBatch(ctx context.Context, requests jsonrpc.RPCRequests) (jsonrpc.RPCResponses, error) {
	if err := l.limiter.WaitN(ctx, len(requests)); err != nil {
		return nil, err
	}
	start := time.Now()
	out, err := l.next.CallBatch(ctx, requests)
	l.trace("batch", start, err)
	return out, err
}

func (l *limitedClient) Close() error {
	return l.next.Close()
}

func (l *limitedClient) trace(method string, start time.Time, err error) {
	ev := l.logger.Debug().
		Str("method", method).
		Dur("duration", time.Since(start))
	var httpErr *jsonrpc.HTTPError
	if errors.As(err, &httpErr) {
		ev = ev.Int("status", httpErr.Code)
	}
	ev.Err(err).Msg("rpc call")
}

// nodeError replaces the library's error dump with an *Error carrying the
// node's code and message.
func nodeError(method string, err error) error {
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		return fmt.Errorf("rpc %s: %w", method, &Error{Code: rpcErr.Code, Message: rpcErr.Message, Data: rpcErr.Data})
	}
	return err
}

// LatestBlockhash returns a recent blockhash at the client's commitment.
func (c *Client) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, err
	}
	if out == nil || out.Value == nil {
		return solana.Hash{}, errors.New("rpc getLatestBlockhash: empty result")
	}
	return out.Value.Blockhash, nil
}

// MinimumBalanceForRentExemption returns the lamports an account of size
// bytes needs to be rent exempt.
func (c *Client) MinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error) {
	return c.rpc.GetMinimumBalanceForRentExemption(ctx, size, c.commitment)
}

// Balance returns the lamport balance of account.
func (c *Client) Balance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	out, err := c.rpc.GetBalance(ctx, account, c.commitment)
	if err != nil {
		return 0, err
	}
	if out == nil {
		return 0, errors.New("rpc getBalance: empty result")
	}
	return out.Value, nil
}

// RequestAirdrop asks a test cluster faucet for lamports. The returned
// signature is not waited on.
func (c *Client) RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64) (string, error) {
	sig, err := c.rpc.RequestAirdrop(ctx, account, lamports, c.commitment)
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}

// SendTransaction submits a signed transaction and returns its signature.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (string, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, solanarpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}

// SignatureStatuses returns one entry per signature; nil entries are unknown
// to the cluster.
func (c *Client) SignatureStatuses(ctx context.Context, sigs ...string) ([]*domain.SignatureStatus, error) {
	parsed := make([]solana.Signature, len(sigs))
	for i, s := range sigs {
		sig, err := solana.SignatureFromBase58(s)
		if err != nil {
			return nil, fmt.Errorf("signature %q: %w", s, err)
		}
		parsed[i] = sig
	}

	statuses := make([]*domain.SignatureStatus, len(sigs))
	out, err := c.rpc.GetSignatureStatuses(ctx, true, parsed...)
	if errors.Is(err, solanarpc.ErrNotFound) {
		return statuses, nil
	}
	if err != nil {
		return nil, err
	}
	for i, s := range out.Value {
		if s == nil || i >= len(statuses) {
			continue
		}
		statuses[i] = &domain.SignatureStatus{
			Slot:               s.Slot,
			Confirmations:      s.Confirmations,
			ConfirmationStatus: string(s.ConfirmationStatus),
			Err:                s.Err,
		}
	}
	return statuses, nil
}

// SendAndConfirm submits tx and polls until it reaches the client's
// commitment, fails on chain, or the confirm timeout elapses.
func (c *Client) SendAndConfirm(ctx context.Context, tx *solana.Transaction) (string, error) {
	sig, err := c.SendTransaction(ctx, tx)
	if err != nil {
		return "", err
	}
	return sig, c.WaitForConfirmation(ctx, sig)
}

// WaitForConfirmation polls the status of sig.
func (c *Client) WaitForConfirmation(ctx context.Context, sig string) error {
	ctx, cancel := context.WithTimeout(ctx, c.confirm)
	defer cancel()

	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()
	for {
		statuses, err := c.SignatureStatuses(ctx, sig)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("confirm %s: %w", sig, ctx.Err())
			}
			return err
		}
		if len(statuses) == 1 && statuses[0] != nil {
			st := statuses[0]
			if st.Err != nil {
				return fmt.Errorf("transaction %s failed: %v", sig, st.Err)
			}
			if reached(st.ConfirmationStatus, string(c.commitment)) {
				c.logger.Debug().Str("signature", sig).Str("status", st.ConfirmationStatus).Msg("confirmed")
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("confirm %s: %w", sig, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Close releases idle connections held by the transport.
func (c *Client) Close() error {
	return c.rpc.Close()
}

// reached reports whether status is at least as final as want.
func reached(status, want string) bool {
	rank := map[string]int{
		CommitmentProcessed: 1,
		CommitmentConfirmed: 2,
		CommitmentFinalized: 3,
	}
	return rank[status] > 0 && rank[status] >= rank[want]
}

var _ domain.ChainClient = (*Client)(nil)
