// Package contractinfo inspects deployed token contracts over JSON-RPC.
//
// The analyzer pulls the runtime bytecode and answers structural questions
// about it: is this a proxy, can the owner mint, are transfers gated. It
// never executes contract code, so the signals are heuristic but cheap.
package contractinfo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/mossrow/tokenguard/internal/metrics"
	"github.com/mossrow/tokenguard/internal/risk"
)

// EIP-1967 implementation slot: keccak256("eip1967.proxy.implementation") - 1
var implementationSlot = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")

// Function selectors scanned for in runtime bytecode. A selector appearing
// in the code does not prove the function is reachable, but for dispatch
// tables emitted by solc it almost always is.
var (
	selectorMint      = []byte{0x40, 0xc1, 0x0f, 0x19} // mint(address,uint256)
	selectorBlacklist = []byte{0xf9, 0xf9, 0x2b, 0xe4} // blacklist(address)
	selectorPause     = []byte{0x84, 0x56, 0xcb, 0x59} // pause()
	selectorSetFee    = []byte{0x69, 0xfe, 0x0e, 0x2d} // setFee(uint256)
)

// Analyzer implements contract inspection against one RPC client per chain.
type Analyzer struct {
	endpoints map[int64]string
	logger    *slog.Logger

	mu      sync.Mutex
	clients map[int64]*ethclient.Client
}

// New creates an analyzer from a chain-to-RPC-URL map. Connections are
// dialed lazily on first use per chain.
func New(endpoints map[int64]string, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		endpoints: endpoints,
		logger:    logger,
		clients:   make(map[int64]*ethclient.Client),
	}
}

// Close releases all dialed RPC connections.
func (a *Analyzer) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, c := range a.clients {
		c.Close()
		delete(a.clients, id)
	}
}

func (a *Analyzer) clientFor(chainID int64) (*ethclient.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.clients[chainID]; ok {
		return c, nil
	}

	url, ok := a.endpoints[chainID]
	if !ok {
		return nil, fmt.Errorf("no RPC endpoint configured for chain %d", chainID)
	}

	c, err := ethclient.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC for chain %d: %w", chainID, err)
	}
	a.clients[chainID] = c
	return c, nil
}

// Analyze fetches the contract bytecode and derives a structural report.
func (a *Analyzer) Analyze(ctx context.Context, address string, chainID risk.ChainID) (*risk.ContractReport, error) {
	client, err := a.clientFor(int64(chainID))
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("rpc", "error").Inc()
		return nil, err
	}

	addr := common.HexToAddress(address)

	code, err := client.CodeAt(ctx, addr, nil)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("rpc", "error").Inc()
		return nil, fmt.Errorf("failed to fetch code for %s: %w", address, err)
	}
	metrics.ProviderRequestsTotal.WithLabelValues("rpc", "success").Inc()

	if len(code) == 0 {
		// EOA or self-destructed. Nothing to analyze, and a "token" with no
		// code is itself a red flag the caller surfaces via DeployerRisk.
		return &risk.ContractReport{DeployerRisk: "high"}, nil
	}

	report := scanBytecode(code)

	proxy, err := a.isProxy(ctx, client, addr)
	if err != nil {
		a.logger.Debug("proxy check failed", "address", address, "chainId", chainID, "error", err)
	} else if proxy {
		report.Proxy = true
	}

	return report, nil
}

// scanBytecode derives flags from the presence of known function selectors.
func scanBytecode(code []byte) *risk.ContractReport {
	report := &risk.ContractReport{}

	if containsSelector(code, selectorMint) {
		report.MintFunction = true
	}
	if containsSelector(code, selectorBlacklist) || containsSelector(code, selectorPause) || containsSelector(code, selectorSetFee) {
		report.TransferRestrictions = true
	}

	return report
}

func containsSelector(code, selector []byte) bool {
	return strings.Contains(string(code), string(selector))
}

// isProxy reads the EIP-1967 implementation slot. A nonzero value means
// the contract delegates to another implementation.
func (a *Analyzer) isProxy(ctx context.Context, client *ethclient.Client, addr common.Address) (bool, error) {
	value, err := client.StorageAt(ctx, addr, implementationSlot, nil)
	if err != nil {
		return false, err
	}
	for _, b := range value {
		if b != 0 {
			return true, nil
		}
	}
	return false, nil
}
