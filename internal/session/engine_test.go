package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/joseph-ayodele/order-intake/constants"
	"github.com/joseph-ayodele/order-intake/internal/entity"
	"github.com/joseph-ayodele/order-intake/internal/ledger"
	"github.com/joseph-ayodele/order-intake/internal/llm"
)

// memTranscripts is an in-memory TranscriptRepository for engine tests.
type memTranscripts struct {
	turns map[string][]entity.Turn
}

func newMemTranscripts() *memTranscripts {
	return &memTranscripts{turns: make(map[string][]entity.Turn)}
}

func (m *memTranscripts) Append(_ context.Context, customerID string, direction entity.Direction, text string) (entity.Turn, error) {
	t := entity.Turn{Direction: direction, Text: text, Timestamp: time.Now()}
	m.turns[customerID] = append(m.turns[customerID], t)
	return t, nil
}

func (m *memTranscripts) ReadAll(_ context.Context, customerID string) ([]entity.Turn, error) {
	out := make([]entity.Turn, len(m.turns[customerID]))
	copy(out, m.turns[customerID])
	return out, nil
}

func (m *memTranscripts) Clear(_ context.Context, customerID string) error {
	delete(m.turns, customerID)
	return nil
}

func (m *memTranscripts) Close() error { return nil }

type fakeExtractor struct {
	rec   *entity.OrderRecord
	err   error
	calls int
}

func (f *fakeExtractor) Extract(context.Context, []entity.Turn, time.Time) (*entity.OrderRecord, error) {
	f.calls++
	return f.rec, f.err
}

type fakeReplier struct {
	reply string
	err   error
	calls int
}

func (f *fakeReplier) Complete(context.Context, []llm.Message) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fakeLedger struct {
	err   error
	dates []string
	rows  []ledger.Row
}

func (f *fakeLedger) Commit(_ context.Context, deliveryDate string, row ledger.Row) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.dates = append(f.dates, deliveryDate)
	f.rows = append(f.rows, row)
	return "sheet-1", nil
}

func completeOrder() *entity.OrderRecord {
	return &entity.OrderRecord{
		Items:           []entity.OrderItem{{Product: "salmon", Quantity: "10 lbs"}},
		DeliveryDate:    "Thursday, July 25, 2024",
		DeliveryAddress: "123 Main St, Seattle, WA",
	}
}

func partialOrder() *entity.OrderRecord {
	return &entity.OrderRecord{
		Items: []entity.OrderItem{{Product: "salmon", Quantity: "10 lbs"}},
	}
}

const customer = "+15551234567"

func newTestEngine(ex *fakeExtractor, rep *fakeReplier, led *fakeLedger) (*Engine, *memTranscripts) {
	transcripts := newMemTranscripts()
	e := NewEngine(transcripts, ex, rep, led, "WA", nil)
	e.now = func() time.Time { return time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC) }
	return e, transcripts
}

func TestPartialOrderStaysChatting(t *testing.T) {
	ex := &fakeExtractor{rec: partialOrder()}
	rep := &fakeReplier{reply: "What's the delivery address?"}
	e, transcripts := newTestEngine(ex, rep, &fakeLedger{})

	reply, err := e.HandleInbound(context.Background(), customer, "I need salmon")
	if err != nil {
		t.Fatalf("handle inbound: %v", err)
	}
	if reply != "What's the delivery address?" {
		t.Errorf("expected conversational reply, got %q", reply)
	}
	if e.State(customer) != constants.StateChatting {
		t.Errorf("state = %v, want chatting", e.State(customer))
	}

	turns := transcripts.turns[customer]
	if len(turns) != 2 {
		t.Fatalf("expected inbound + outbound turn, got %d", len(turns))
	}
	if !turns[0].Inbound() || turns[1].Inbound() {
		t.Error("turn directions wrong")
	}
}

func TestCompleteOrderTriggersConfirming(t *testing.T) {
	ex := &fakeExtractor{rec: completeOrder()}
	rep := &fakeReplier{reply: "should not be used"}
	e, _ := newTestEngine(ex, rep, &fakeLedger{})

	reply, err := e.HandleInbound(context.Background(), customer, "10 lbs salmon, July 25, 123 Main St, Seattle")
	if err != nil {
		t.Fatalf("handle inbound: %v", err)
	}
	if !strings.Contains(reply, "reply CONFIRM") {
		t.Errorf("expected confirmation summary, got %q", reply)
	}
	if !strings.Contains(reply, "10 lbs salmon") {
		t.Errorf("summary should itemize the order: %q", reply)
	}
	if e.State(customer) != constants.StateConfirming {
		t.Errorf("state = %v, want confirming", e.State(customer))
	}
	if rep.calls != 0 {
		t.Error("free-text reply path must not run when the summary goes out")
	}
}

func TestConfirmCommitsAndResets(t *testing.T) {
	ex := &fakeExtractor{rec: completeOrder()}
	led := &fakeLedger{}
	e, transcripts := newTestEngine(ex, &fakeReplier{reply: "hi"}, led)
	ctx := context.Background()

	if _, err := e.HandleInbound(ctx, customer, "10 lbs salmon, July 25, 123 Main St, Seattle"); err != nil {
		t.Fatalf("first message: %v", err)
	}
	extractCallsBefore := ex.calls

	reply, err := e.HandleInbound(ctx, customer, "CONFIRM")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !strings.Contains(reply, "confirmed") {
		t.Errorf("expected commit success message, got %q", reply)
	}

	// The order is always re-derived before committing.
	if ex.calls != extractCallsBefore+1 {
		t.Errorf("expected a fresh extraction on confirm, calls went %d -> %d", extractCallsBefore, ex.calls)
	}
	if len(led.rows) != 1 {
		t.Fatalf("expected 1 ledger commit, got %d", len(led.rows))
	}
	if led.dates[0] != "Thursday, July 25, 2024" {
		t.Errorf("committed under wrong delivery date: %q", led.dates[0])
	}
	if led.rows[0].CustomerPhone != customer {
		t.Errorf("row phone: %q", led.rows[0].CustomerPhone)
	}

	// Session auto-resets: transcript cleared, next message starts fresh.
	if e.State(customer) != constants.StateChatting {
		t.Errorf("state after commit = %v, want chatting", e.State(customer))
	}
	if len(transcripts.turns[customer]) != 0 {
		t.Errorf("transcript should be cleared after commit, has %d turns", len(transcripts.turns[customer]))
	}
}

func TestConfirmTokenVariants(t *testing.T) {
	ex := &fakeExtractor{rec: completeOrder()}
	led := &fakeLedger{}
	e, _ := newTestEngine(ex, &fakeReplier{reply: "still chatting"}, led)
	ctx := context.Background()

	e.HandleInbound(ctx, customer, "full order")
	if _, err := e.HandleInbound(ctx, customer, "  confirm  "); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(led.rows) != 1 {
		t.Error("trimmed lowercase confirm should commit")
	}
}

func TestNonConfirmationKeepsConfirming(t *testing.T) {
	ex := &fakeExtractor{rec: completeOrder()}
	led := &fakeLedger{}
	rep := &fakeReplier{reply: "Sure, anything else?"}
	e, _ := newTestEngine(ex, rep, led)
	ctx := context.Background()

	e.HandleInbound(ctx, customer, "full order")
	reply, err := e.HandleInbound(ctx, customer, "CONFIRMED")
	if err != nil {
		t.Fatalf("handle inbound: %v", err)
	}
	if len(led.rows) != 0 {
		t.Error("CONFIRMED must not commit")
	}
	// A complete re-extraction refreshes the summary; state stays confirming.
	if e.State(customer) != constants.StateConfirming {
		t.Errorf("state = %v, want confirming", e.State(customer))
	}
	if !strings.Contains(reply, "reply CONFIRM") {
		t.Errorf("expected refreshed summary while amending, got %q", reply)
	}
}

func TestCommitFailureIsDegradedSuccess(t *testing.T) {
	ex := &fakeExtractor{rec: completeOrder()}
	led := &fakeLedger{err: errors.New("sheet service down")}
	e, transcripts := newTestEngine(ex, &fakeReplier{reply: "hi"}, led)
	ctx := context.Background()

	e.HandleInbound(ctx, customer, "full order")
	reply, err := e.HandleInbound(ctx, customer, "CONFIRM")
	if err != nil {
		t.Fatalf("confirm with failing ledger: %v", err)
	}
	if !strings.Contains(reply, "process it manually") {
		t.Errorf("expected degraded-success message, got %q", reply)
	}
	// Still resets; the failure is reported, not retried.
	if e.State(customer) != constants.StateChatting {
		t.Errorf("state = %v, want chatting", e.State(customer))
	}
	if len(transcripts.turns[customer]) != 0 {
		t.Error("session should still reset after a failed commit")
	}
}

func TestConfirmRecheckFailureRevertsToChatting(t *testing.T) {
	ex := &fakeExtractor{rec: completeOrder()}
	led := &fakeLedger{}
	e, _ := newTestEngine(ex, &fakeReplier{reply: "hi"}, led)
	ctx := context.Background()

	e.HandleInbound(ctx, customer, "full order")

	// The transcript grew and the re-extraction no longer holds together.
	ex.rec = partialOrder()
	reply, err := e.HandleInbound(ctx, customer, "CONFIRM")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(led.rows) != 0 {
		t.Fatal("a partial order must never be committed")
	}
	if e.State(customer) != constants.StateChatting {
		t.Errorf("state = %v, want chatting after failed recheck", e.State(customer))
	}
	if !strings.Contains(reply, "double-check") {
		t.Errorf("expected clarifying message, got %q", reply)
	}
}

func TestExtractionFailureFallsBackToReply(t *testing.T) {
	ex := &fakeExtractor{err: errors.New("no json")}
	rep := &fakeReplier{reply: "Hey! What can I get for you?"}
	e, _ := newTestEngine(ex, rep, &fakeLedger{})

	reply, err := e.HandleInbound(context.Background(), customer, "hi there")
	if err != nil {
		t.Fatalf("handle inbound: %v", err)
	}
	if reply != "Hey! What can I get for you?" {
		t.Errorf("extraction failure must not block the reply path, got %q", reply)
	}
	if e.State(customer) != constants.StateChatting {
		t.Errorf("state = %v, want chatting", e.State(customer))
	}
}

func TestReplyFailurePropagates(t *testing.T) {
	ex := &fakeExtractor{rec: partialOrder()}
	rep := &fakeReplier{err: errors.New("upstream 500")}
	e, _ := newTestEngine(ex, rep, &fakeLedger{})

	if _, err := e.HandleInbound(context.Background(), customer, "hi"); err == nil {
		t.Fatal("expected reply failure to propagate")
	}
}

func TestResetCommand(t *testing.T) {
	ex := &fakeExtractor{rec: completeOrder()}
	e, transcripts := newTestEngine(ex, &fakeReplier{reply: "hi"}, &fakeLedger{})
	ctx := context.Background()

	e.HandleInbound(ctx, customer, "full order")
	if e.State(customer) != constants.StateConfirming {
		t.Fatal("setup: expected confirming")
	}

	reply, err := e.HandleInbound(ctx, customer, "reset")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !strings.Contains(reply, "starting fresh") {
		t.Errorf("unexpected reset reply: %q", reply)
	}
	if e.State(customer) != constants.StateChatting {
		t.Errorf("state = %v, want chatting", e.State(customer))
	}
	if len(transcripts.turns[customer]) != 0 {
		t.Error("reset must clear the transcript")
	}
}

func TestConcurrentInboundSameCustomer(t *testing.T) {
	ex := &fakeExtractor{rec: partialOrder()}
	rep := &fakeReplier{reply: "ok"}
	e, transcripts := newTestEngine(ex, rep, &fakeLedger{})

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.HandleInbound(context.Background(), customer, "more fish"); err != nil {
				t.Errorf("handle inbound: %v", err)
			}
		}()
	}
	wg.Wait()

	// One inbound + one outbound per message, nothing lost or interleaved.
	if got := len(transcripts.turns[customer]); got != 2*n {
		t.Errorf("expected %d turns, got %d", 2*n, got)
	}
	if e.State(customer) != constants.StateChatting {
		t.Errorf("state = %v, want chatting", e.State(customer))
	}
}

func TestConcurrentConfirmCommitsOnce(t *testing.T) {
	ex := &fakeExtractor{rec: completeOrder()}
	led := &fakeLedger{}
	e, _ := newTestEngine(ex, &fakeReplier{reply: "hi"}, led)
	ctx := context.Background()

	if _, err := e.HandleInbound(ctx, customer, "full order"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	// A double-tapped CONFIRM must not write the order twice: the first one
	// commits and resets, the second lands in a fresh chatting session.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.HandleInbound(ctx, customer, "CONFIRM"); err != nil {
				t.Errorf("confirm: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(led.rows) != 1 {
		t.Errorf("expected exactly 1 ledger commit, got %d", len(led.rows))
	}
}

func TestCustomersAreIndependent(t *testing.T) {
	ex := &fakeExtractor{rec: completeOrder()}
	e, _ := newTestEngine(ex, &fakeReplier{reply: "hi"}, &fakeLedger{})
	ctx := context.Background()

	e.HandleInbound(ctx, "alice", "full order")
	if e.State("alice") != constants.StateConfirming {
		t.Fatal("setup: alice should be confirming")
	}
	if e.State("bob") != constants.StateChatting {
		t.Error("bob's fresh session must start chatting")
	}
}
