package advisor

import (
	"context"
	_ "embed"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathwise-dev/pathwise/pkg/adapter"
	"github.com/pathwise-dev/pathwise/pkg/intent"
	"github.com/pathwise-dev/pathwise/pkg/memory"
	"github.com/pathwise-dev/pathwise/pkg/model"
	"github.com/pathwise-dev/pathwise/pkg/rules"
	"github.com/pathwise-dev/pathwise/pkg/utils/logging"
)

//go:embed prompt/persona.md
var personaPromptRaw string

// DefaultGenerateTimeout bounds one generative provider call.
const DefaultGenerateTimeout = 30 * time.Second

// Orchestrator receives each incoming message, classifies it, routes to the
// rule engine and/or the generative responder, merges the results, updates
// the conversation memory and returns a formatted reply with fallback status.
type Orchestrator struct {
	classifier *intent.Classifier
	rules      *rules.Engine
	memory     *memory.Store
	responder  adapter.Responder

	persona         string
	fallbackReplies []string
	genTimeout      time.Duration

	// one handler in flight per session, so turns are processed and
	// recorded in strict arrival order
	sessionLocks sync.Map // model.SessionID -> *sync.Mutex
}

// NewInput contains the collaborators of the orchestrator. Responder may be
// nil; every request then takes a deterministic route.
type NewInput struct {
	Classifier *intent.Classifier
	Rules      *rules.Engine
	Memory     *memory.Store
	Responder  adapter.Responder
}

type Option func(*Orchestrator)

// WithPersona overrides the embedded career counselor persona prompt.
func WithPersona(persona string) Option {
	return func(x *Orchestrator) {
		x.persona = persona
	}
}

// WithFallbackReplies overrides the rotating generic fallback replies.
func WithFallbackReplies(replies []string) Option {
	return func(x *Orchestrator) {
		if len(replies) > 0 {
			x.fallbackReplies = replies
		}
	}
}

// WithGenerateTimeout bounds each generative call.
func WithGenerateTimeout(d time.Duration) Option {
	return func(x *Orchestrator) {
		x.genTimeout = d
	}
}

func New(input NewInput, opts ...Option) *Orchestrator {
	x := &Orchestrator{
		classifier:      input.Classifier,
		rules:           input.Rules,
		memory:          input.Memory,
		responder:       input.Responder,
		persona:         personaPromptRaw,
		fallbackReplies: defaultFallbackReplies,
		genTimeout:      DefaultGenerateTimeout,
	}
	for _, opt := range opts {
		opt(x)
	}

	// Sessions expire from memory on idle TTL; release their processing
	// locks with them so a long-lived process does not accumulate one mutex
	// per session id forever
	x.memory.OnEvict(func(id model.SessionID) {
		x.sessionLocks.Delete(id)
	})

	return x
}

// GenerativeConfigured reports whether the generative path is available.
func (x *Orchestrator) GenerativeConfigured() bool {
	return x.responder != nil
}

// Memory exposes read-only access to the conversation log for export and
// logging collaborators.
func (x *Orchestrator) Memory(sessionID model.SessionID) []model.Turn {
	return x.memory.Get(sessionID)
}

// ClearSession drops the session's conversation log and its processing lock.
func (x *Orchestrator) ClearSession(sessionID model.SessionID) {
	x.memory.Clear(sessionID)
	x.sessionLocks.Delete(sessionID)
}

func (x *Orchestrator) sessionLock(id model.SessionID) *sync.Mutex {
	v, _ := x.sessionLocks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// Handle processes one user message for a session. Requests for the same
// session are serialized in arrival order; independent sessions run
// concurrently. The generative call is bounded by the configured timeout and
// holds no memory lock while in flight. If the caller's context is canceled,
// nothing is recorded: the user turn and reply turn are appended together or
// not at all.
func (x *Orchestrator) Handle(ctx context.Context, sessionID model.SessionID, message string) (*model.OrchestrationResult, error) {
	logger := logging.From(ctx)

	if strings.TrimSpace(message) == "" {
		return &model.OrchestrationResult{
			ReplyText: "Please tell me a bit about your career question so I can help.",
			Intent:    model.IntentUnknown,
		}, nil
	}

	lock := x.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	it := x.classifier.Classify(message)
	recs := x.rules.Recommend(it, message)

	r, usedFallback := decideRoute(it, x.responder != nil, len(recs) > 0)
	logger.Debug("routed message",
		"session_id", sessionID,
		"intent", it,
		"route", r.String(),
		"recommendations", len(recs))

	var reply string
	if r == routeHybrid || r == routeGenerativeOnly {
		text, err := x.generate(ctx, sessionID, message)
		switch {
		case err == nil:
			reply = text
			if r == routeHybrid && len(recs) > 0 {
				reply += "\n" + formatRecommendations(recs)
			}
		case ctx.Err() != nil:
			// Caller abandoned the request: record nothing
			return nil, goerr.Wrap(ctx.Err(), "request canceled", goerr.V("session_id", sessionID))
		default:
			logger.Warn("generative path failed, downgrading",
				"session_id", sessionID,
				"route", r.String(),
				"error", err)
			usedFallback = true
			if len(recs) > 0 {
				r = routeRuleOnly
			} else {
				r = routeStaticFallback
			}
		}
	}

	switch r {
	case routeRuleOnly:
		reply = ruleOnlyReply(recs)
	case routeStaticFallback:
		reply = x.staticReply(it, message)
	}

	if ctx.Err() != nil {
		return nil, goerr.Wrap(ctx.Err(), "request canceled", goerr.V("session_id", sessionID))
	}

	x.memory.AppendPair(sessionID,
		model.NewTurn(model.RoleUser, message),
		model.NewTurn(model.RoleAssistant, reply))

	return &model.OrchestrationResult{
		ReplyText:       reply,
		UsedFallback:    usedFallback,
		Intent:          it,
		Recommendations: recs,
	}, nil
}

// generate calls the responder with the session history, bounded by the
// configured timeout. The history snapshot is taken before the call, so no
// memory lock is held while the request is in flight.
func (x *Orchestrator) generate(ctx context.Context, sessionID model.SessionID, message string) (string, error) {
	history := x.memory.Get(sessionID)

	genCtx, cancel := context.WithTimeout(ctx, x.genTimeout)
	defer cancel()

	text, err := x.responder.Generate(genCtx, x.persona, history, message)
	if err != nil {
		return "", goerr.Wrap(err, "responder failed", goerr.V("session_id", sessionID))
	}
	return text, nil
}
