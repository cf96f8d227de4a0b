package assistant

import (
	"context"
	"errors"
	"testing"
)

type fakeClient struct {
	reply string
	err   error
	opts  Options
}

func (f *fakeClient) Generate(_ context.Context, _ string, opts Options) (string, error) {
	f.opts = opts
	return f.reply, f.err
}

func TestAuditReturnsEngineReport(t *testing.T) {
	client := &fakeClient{reply: "No critical findings.\nRISK RATING: LOW"}
	auditor := NewAuditor(client)

	report := auditor.Audit(context.Background(), "contract Vault {}")
	if report != client.reply {
		t.Fatalf("unexpected report: %q", report)
	}
	if client.opts.SystemInstruction == "" {
		t.Fatal("auditor sent no system instruction")
	}
}

func TestAuditDegradesOnFailure(t *testing.T) {
	auditor := NewAuditor(&fakeClient{err: errors.New("boom")})
	if got := auditor.Audit(context.Background(), "contract Vault {}"); got != auditFailure {
		t.Fatalf("unexpected fallback: %q", got)
	}

	auditor = NewAuditor(&fakeClient{reply: "   "})
	if got := auditor.Audit(context.Background(), "contract Vault {}"); got != auditFailure {
		t.Fatalf("blank report should degrade: %q", got)
	}
}

func TestSupportReply(t *testing.T) {
	client := &fakeClient{reply: "Welcome to the terminal."}
	support := NewSupport(client)

	if got := support.Reply(context.Background(), "how do I deposit?"); got != client.reply {
		t.Fatalf("unexpected reply: %q", got)
	}
	if client.opts.Temperature != 0.5 {
		t.Fatalf("unexpected temperature: %v", client.opts.Temperature)
	}
}

func TestSupportDistinguishesFailureModes(t *testing.T) {
	support := NewSupport(&fakeClient{err: errors.New("connection refused")})
	if got := support.Reply(context.Background(), "hi"); got != supportFailure {
		t.Fatalf("transport failure fallback wrong: %q", got)
	}

	support = NewSupport(&fakeClient{err: ErrEmptyResponse})
	if got := support.Reply(context.Background(), "hi"); got != supportTimeout {
		t.Fatalf("empty response fallback wrong: %q", got)
	}

	support = NewSupport(&fakeClient{reply: "  "})
	if got := support.Reply(context.Background(), "hi"); got != supportTimeout {
		t.Fatalf("blank reply fallback wrong: %q", got)
	}
}
