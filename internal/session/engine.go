// Package session orchestrates the per-customer conversation state machine:
// chatting until an extracted order is complete, confirming until an
// explicit CONFIRM, then committing to the ledger and resetting.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/joseph-ayodele/order-intake/constants"
	"github.com/joseph-ayodele/order-intake/internal/common"
	"github.com/joseph-ayodele/order-intake/internal/entity"
	"github.com/joseph-ayodele/order-intake/internal/ledger"
	"github.com/joseph-ayodele/order-intake/internal/llm"
	"github.com/joseph-ayodele/order-intake/internal/order"
	"github.com/joseph-ayodele/order-intake/internal/repository"
)

// Customer-visible replies for the non-conversational branches.
const (
	replyReset = "No problem - starting fresh! What can I get for you?"

	replyCommitted = "Perfect! Your order has been confirmed and added to our system. " +
		"You'll receive a confirmation call within 24 hours. Thank you for your business!"

	replyCommitDegraded = "Your order has been confirmed! However, there was a technical issue " +
		"saving it to our system. Don't worry - we have your order details and will process it manually."

	replyRecheckFailed = "Sorry - before I lock that in, I need to double-check a few details " +
		"and something doesn't add up. Can you go over the items, delivery date, and address one more time?"
)

// OrderExtractor derives a structured order from a transcript.
type OrderExtractor interface {
	Extract(ctx context.Context, turns []entity.Turn, reference time.Time) (*entity.OrderRecord, error)
}

// OrderLedger commits a confirmed order under its delivery date.
type OrderLedger interface {
	Commit(ctx context.Context, deliveryDate string, row ledger.Row) (string, error)
}

// Engine drives one state machine per customer. Messages for the same
// customer are serialized by a per-customer lock (the webhook serves
// requests concurrently); distinct customers only share the transcript
// store and the ledger.
type Engine struct {
	transcripts repository.TranscriptRepository
	extractor   OrderExtractor
	replier     llm.Completer
	ledger      OrderLedger
	region      string
	logger      *slog.Logger
	now         func() time.Time

	mu       sync.Mutex // guards sessions and locks
	sessions map[string]*entity.Session
	locks    map[string]*sync.Mutex
}

func NewEngine(
	transcripts repository.TranscriptRepository,
	extractor OrderExtractor,
	replier llm.Completer,
	orderLedger OrderLedger,
	region string,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if region == "" {
		region = constants.DefaultRegionCode
	}
	return &Engine{
		transcripts: transcripts,
		extractor:   extractor,
		replier:     replier,
		ledger:      orderLedger,
		region:      region,
		logger:      logger,
		now:         time.Now,
		sessions:    make(map[string]*entity.Session),
		locks:       make(map[string]*sync.Mutex),
	}
}

// State reports the session state for a customer, creating the session if
// this is the first contact.
func (e *Engine) State(customerID string) constants.SessionState {
	l := e.customerLock(customerID)
	l.Lock()
	defer l.Unlock()
	return e.session(customerID).State
}

// customerLock returns the lock serializing one customer's messages. The
// session struct itself is only touched while this lock is held.
func (e *Engine) customerLock(customerID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[customerID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[customerID] = l
	}
	return l
}

func (e *Engine) session(customerID string) *entity.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	sess, ok := e.sessions[customerID]
	if !ok {
		sess = entity.NewSession(customerID)
		e.sessions[customerID] = sess
	}
	return sess
}

// Reset clears a customer's transcript and starts a fresh chatting session.
func (e *Engine) Reset(ctx context.Context, customerID string) error {
	l := e.customerLock(customerID)
	l.Lock()
	defer l.Unlock()
	return e.reset(ctx, customerID)
}

// reset is Reset without the customer lock; callers must hold it.
func (e *Engine) reset(ctx context.Context, customerID string) error {
	if err := e.transcripts.Clear(ctx, customerID); err != nil {
		return common.WrapError(err, "reset session")
	}
	e.mu.Lock()
	e.sessions[customerID] = entity.NewSession(customerID)
	e.mu.Unlock()
	e.logger.Info("session.reset", "customer", customerID)
	return nil
}

// HandleInbound processes one customer message and returns the assistant's
// immediate reply.
func (e *Engine) HandleInbound(ctx context.Context, customerID, text string) (string, error) {
	l := e.customerLock(customerID)
	l.Lock()
	defer l.Unlock()

	if order.IsReset(text) {
		if err := e.reset(ctx, customerID); err != nil {
			return "", err
		}
		return replyReset, nil
	}

	if _, err := e.transcripts.Append(ctx, customerID, entity.DirectionInbound, text); err != nil {
		return "", common.WrapError(err, "record inbound turn")
	}
	turns, err := e.transcripts.ReadAll(ctx, customerID)
	if err != nil {
		return "", common.WrapError(err, "read transcript")
	}

	sess := e.session(customerID)
	e.logger.Info("session.inbound",
		"customer", customerID,
		"state", string(sess.State),
		"turns", len(turns),
	)

	if sess.State == constants.StateConfirming && order.IsConfirmation(text) {
		return e.confirm(ctx, sess, turns)
	}
	return e.chat(ctx, sess, turns)
}

// chat is the ordinary turn path, shared by the chatting state and by
// confirming-state messages that are not a confirmation (the customer may
// still be amending details; the state never downgrades on its own).
func (e *Engine) chat(ctx context.Context, sess *entity.Session, turns []entity.Turn) (string, error) {
	rec, err := e.extractor.Extract(ctx, turns, e.now())
	if err != nil {
		// Expected mid-conversation; fall through to the reply path.
		e.logger.Warn("session.extract_failed", "customer", sess.CustomerID, "error", err)
		rec = nil
	}

	if rec != nil && order.IsComplete(rec, e.region) {
		sess.State = constants.StateConfirming
		sess.PendingOrder = rec
		summary := order.ConfirmationSummary(rec)
		if err := e.recordOutbound(ctx, sess.CustomerID, summary); err != nil {
			return "", err
		}
		e.logger.Info("session.confirming", "customer", sess.CustomerID, "items", len(rec.Items))
		return summary, nil
	}
	sess.PendingOrder = rec

	reply, err := e.replier.Complete(ctx, llm.BuildReplyMessages(turns))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrReplyFailed, err)
	}
	if err := e.recordOutbound(ctx, sess.CustomerID, reply); err != nil {
		return "", err
	}
	return reply, nil
}

// confirm re-derives the order from the full transcript before committing:
// the conversation may have grown since the summary went out, and a stale
// cached record must never be what gets confirmed.
func (e *Engine) confirm(ctx context.Context, sess *entity.Session, turns []entity.Turn) (string, error) {
	rec, err := e.extractor.Extract(ctx, turns, e.now())
	if err != nil || !order.IsComplete(rec, e.region) {
		// Anomaly: the order looked complete when the summary was sent but
		// doesn't any more. Never commit a partial order; go back to
		// chatting and ask the customer to restate.
		e.logger.Warn("session.confirm_recheck_failed",
			"customer", sess.CustomerID,
			"error", err,
		)
		sess.State = constants.StateChatting
		sess.PendingOrder = nil
		if err := e.recordOutbound(ctx, sess.CustomerID, replyRecheckFailed); err != nil {
			return "", err
		}
		return replyRecheckFailed, nil
	}

	reply := replyCommitted
	location, err := e.ledger.Commit(ctx, rec.DeliveryDate, ledger.Row{
		OrderTime:     e.now(),
		CustomerPhone: sess.CustomerID,
		Order:         rec,
	})
	if err != nil {
		// The confirmation stands; the customer is told a human will follow
		// up. No rollback, no automatic retry.
		e.logger.Error("session.commit_failed",
			"customer", sess.CustomerID,
			"error", fmt.Errorf("%w: %v", common.ErrLedgerCommitFailed, err),
		)
		reply = replyCommitDegraded
	} else {
		e.logger.Info("session.committed",
			"customer", sess.CustomerID,
			"location", location,
			"delivery_date", rec.DeliveryDate,
		)
	}

	sess.State = constants.StateConfirmed
	if err := e.recordOutbound(ctx, sess.CustomerID, reply); err != nil {
		return "", err
	}

	// Confirmed is terminal: the next inbound message starts a new order.
	if err := e.reset(ctx, sess.CustomerID); err != nil {
		e.logger.Error("session.post_commit_reset_failed", "customer", sess.CustomerID, "error", err)
	}
	return reply, nil
}

func (e *Engine) recordOutbound(ctx context.Context, customerID, text string) error {
	if _, err := e.transcripts.Append(ctx, customerID, entity.DirectionOutbound, text); err != nil {
		return common.WrapError(err, "record outbound turn")
	}
	return nil
}
