package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// ErrBridgeRefused indicates the external wallet bridge declined the
// connection. Surfaced to the caller as a substituted error message; session
// state is unaffected.
var ErrBridgeRefused = errors.New("bridge refused connection")

// Link is the outcome of connecting an external wallet provider.
type Link struct {
	Provider string
	Address  string
	// ETHBalance is the balance reported by the bridge for the linked
	// address. It replaces any prior ETH position wholesale.
	ETHBalance float64
}

// Bridge connects a profile to an external wallet provider and reports the
// linked address and its balance. A real implementation would speak to an
// EVM provider; the terminal ships a simulated one.
type Bridge interface {
	Connect(ctx context.Context, provider, customAddress string) (Link, error)
}

// Browser-extension providers the simulated bridge recognizes as EVM-backed.
var evmProviders = map[string]bool{
	"metamask": true,
	"coinbase": true,
	"phantom":  true,
}

// SimulatedBridge synthesizes wallet links without any network access.
type SimulatedBridge struct {
	// Rand drives address generation; nil falls back to the global source.
	Rand *rand.Rand
}

// Connect links the provider. EVM providers receive a generated address and a
// fixed reported balance; a custom address links with a zero balance until a
// real bridge reports one.
func (b SimulatedBridge) Connect(_ context.Context, provider, customAddress string) (Link, error) {
	if provider == "" {
		return Link{}, ErrBridgeRefused
	}

	name := strings.ToUpper(provider)
	if customAddress != "" {
		return Link{Provider: name, Address: customAddress, ETHBalance: 0}, nil
	}

	address := "0x" + b.hex(40)
	balance := 4.2
	if !evmProviders[strings.ToLower(provider)] {
		balance = 0
	}
	return Link{Provider: name, Address: address, ETHBalance: balance}, nil
}

func (b SimulatedBridge) hex(n int) string {
	const digits = "0123456789abcdef"
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if b.Rand != nil {
			sb.WriteByte(digits[b.Rand.Intn(len(digits))])
		} else {
			sb.WriteByte(digits[rand.Intn(len(digits))])
		}
	}
	return sb.String()
}

// PseudoAddress derives a deterministic-looking wallet address for a
// provider, used when the auth flow enters through the web3 adapter.
func PseudoAddress(provider string) string {
	return fmt.Sprintf("0x%040x", rand.Int63())[:42]
}
