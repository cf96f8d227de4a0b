package assistant

import (
	"context"
	"fmt"
	"strings"
)

// Degraded-mode responses. The assistant never fails a caller: engine errors
// substitute fixed copy so the terminal surfaces stay usable.
const (
	auditFailure   = "AUDIT_FAILURE: Engine returned empty response. Contact Pluto Support."
	supportFailure = "Protocol Error: Secure tunnel disconnected. Verify API project status."
	supportTimeout = "System Timeout: Support node latency too high."
)

const auditorInstruction = "You are the Pluto Protocol Security Intelligence engine. " +
	"You audit smart contract code for institutional custody review. " +
	"Respond with a terse professional security report."

const supportInstruction = "You are the Pluto Protocol Handshake Assistant, the concierge of a " +
	"sovereign crypto-finance terminal. Answer peer questions about the terminal " +
	"briefly and in character. Never reveal internal infrastructure details."

// Auditor reviews contract code with the heavyweight engine.
type Auditor struct {
	client Client
}

// NewAuditor builds the audit persona.
func NewAuditor(client Client) *Auditor {
	return &Auditor{client: client}
}

// Audit reviews the given contract source and returns a report. Engine
// failures degrade to a fixed failure notice.
func (a *Auditor) Audit(ctx context.Context, code string) string {
	prompt := fmt.Sprintf(
		"Audit the following smart contract code. Focus on reentrancy, integer overflow, "+
			"MEV exposure, governance capture and access control. Finish with a line "+
			"formatted exactly as RISK RATING: <LOW|MEDIUM|HIGH|CRITICAL>.\n\n%s",
		code,
	)
	report, err := a.client.Generate(ctx, prompt, Options{
		SystemInstruction: auditorInstruction,
		ThinkingBudget:    4096,
	})
	if err != nil || strings.TrimSpace(report) == "" {
		return auditFailure
	}
	return report
}

// Support answers peer questions with the lightweight engine.
type Support struct {
	client Client
}

// NewSupport builds the support persona.
func NewSupport(client Client) *Support {
	return &Support{client: client}
}

// Reply answers one support message. Transport failures and empty engine
// output each degrade to their own fixed notice.
func (s *Support) Reply(ctx context.Context, message string) string {
	reply, err := s.client.Generate(ctx, message, Options{
		SystemInstruction: supportInstruction,
		Temperature:       0.5,
	})
	if err != nil {
		if err == ErrEmptyResponse {
			return supportTimeout
		}
		return supportFailure
	}
	if strings.TrimSpace(reply) == "" {
		return supportTimeout
	}
	return reply
}
