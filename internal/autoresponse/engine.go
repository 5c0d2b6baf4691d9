// Package autoresponse decides whether a guest question can be answered
// automatically and produces the reply text.
package autoresponse

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/omriShneor/project_concierge/internal/catalogue"
	"github.com/omriShneor/project_concierge/internal/classifier"
)

const defaultTimeout = 30 * time.Second

var (
	ErrNoCompleter     = errors.New("no completer configured")
	ErrEmptyCompletion = errors.New("no response generated")
)

// Completer turns a system prompt and a user prompt into text.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config holds the engine's read-only settings.
type Config struct {
	// Timeout bounds a single completion call. Zero means 30s.
	Timeout time.Duration
	// RequireVerifiedAccess withholds access answers (codes, passwords) from
	// senders not verified for the property asked about.
	RequireVerifiedAccess bool
}

// Engine holds only read-only settings, so one value can serve any number of
// concurrent calls.
type Engine struct {
	completer       Completer
	timeout         time.Duration
	requireVerified bool
}

// NewEngine builds an Engine. A nil completer makes every generated answer
// fall back to DefaultEscalation.
func NewEngine(completer Completer, cfg Config) *Engine {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Engine{
		completer:       completer,
		timeout:         timeout,
		requireVerified: cfg.RequireVerifiedAccess,
	}
}

// Analyze exposes the classifier pass the engine runs.
func (e *Engine) Analyze(question string) classifier.Analysis {
	return classifier.Analyze(question)
}

// Decide runs one decision pass. Kind says what reply to send, Verdict says
// whether the question is one the assistant may answer at all.
func (e *Engine) Decide(req Request) Decision {
	a := classifier.Analyze(req.Question)
	d := Decision{
		Analysis:   a,
		Escalation: EscalationMessage(a),
		Verdict:    e.verdict(req, a),
	}

	// A declared name is terminal unless the captured text is itself a
	// property reference, as in "I'm staying in Maadi".
	if name := ExtractName(req.Question); name != "" && ExtractPropertyRef(name) == "" {
		d.Kind = KindAskForProperty
		d.GuestName = name
		return d
	}

	if ref := ExtractPropertyRef(req.Question); ref != "" {
		e.resolve(&d, req, ref)
		return d
	}

	if ref := strings.TrimSpace(req.PropertyRef); ref != "" {
		if a.RequiresHumanIntervention {
			d.Kind = KindEscalate
			return d
		}
		e.resolve(&d, req, ref)
		return d
	}

	switch {
	case a.Topical():
		d.Kind = KindAskForDetails
	case a.RequiresHumanIntervention:
		d.Kind = KindEscalate
	default:
		d.Kind = KindGreet
	}
	return d
}

func (e *Engine) resolve(d *Decision, req Request, ref string) {
	d.Reference = ref
	p := FindProperty(ref, req.Properties)
	if p == nil {
		d.Kind = KindNotFound
		return
	}

	d.Property = p
	d.ResponseType = SelectResponseType(d.Analysis)
	d.Kind = KindAnswer
	if e.entitled(req, p) {
		return
	}
	d.Withheld = true
	if d.Analysis.IsAccessRelated {
		d.Kind = KindVerify
	}
}

// entitled reports whether the sender may see p's access credentials: a
// verified guest, and only for their own property.
func (e *Engine) entitled(req Request, p *catalogue.Property) bool {
	if !e.requireVerified {
		return true
	}
	if !req.Verified {
		return false
	}
	if req.GuestPropertyID != nil {
		return *req.GuestPropertyID == p.ID
	}
	own := FindProperty(strings.TrimSpace(req.PropertyRef), req.Properties)
	return own != nil && own.ID == p.ID
}

// verdict applies the answerability rules in order; the first match wins.
func (e *Engine) verdict(req Request, a classifier.Analysis) AutoResponseResult {
	var r AutoResponseResult

	switch {
	case a.RequiresHumanIntervention:
		r = AutoResponseResult{Confidence: ConfidenceHigh, Reason: ReasonHumanRequired}
	case a.IsPropertyRelated && len(req.Properties) > 0:
		if HasRelevantInfo(req.Question, req.Properties) {
			r = AutoResponseResult{CanAnswer: true, Confidence: ConfidenceHigh, Reason: ReasonPropertyAvailable}
		} else {
			r = AutoResponseResult{Confidence: ConfidenceMedium, Reason: ReasonPropertyUnavailable}
		}
	case a.IsGeneralInfo && classifier.IsCapable(req.Question):
		r = AutoResponseResult{CanAnswer: true, Confidence: ConfidenceMedium, Reason: ReasonGeneralCapable}
	default:
		r = AutoResponseResult{Confidence: ConfidenceLow, Reason: ReasonUnrecognized}
	}

	if !r.CanAnswer {
		r.EscalationMessage = EscalationMessage(a)
		return r
	}
	if a.IsAccessRelated && e.requireVerified && !req.Verified {
		r.RequiresVerification = true
		r.VerificationPrompt = VerificationPrompt
	}
	return r
}

// CanAnswer reports whether a question may be answered without a human.
func (e *Engine) CanAnswer(question string, props []catalogue.Property) AutoResponseResult {
	return e.Decide(Request{Question: question, Properties: props}).Verdict
}

// Respond produces the reply for a question with no caller context.
func (e *Engine) Respond(ctx context.Context, question string, props []catalogue.Property) Reply {
	_, reply := e.RespondTo(ctx, Request{Question: question, Properties: props})
	return reply
}

// RespondTo decides and renders the reply. Only KindAnswer reaches the
// completer; every other kind is a fixed text.
func (e *Engine) RespondTo(ctx context.Context, req Request) (Decision, Reply) {
	d := e.Decide(req)

	switch d.Kind {
	case KindAnswer:
		pc := NewPropertyContext(*d.Property)
		if d.Withheld {
			pc = pc.WithoutCredentials()
		}
		return d, e.generate(ctx, req.Question, pc, d.ResponseType)
	case KindAskForProperty:
		return d, Reply{Success: true, Message: AskForPropertyMessage(d.GuestName)}
	case KindNotFound:
		return d, Reply{Success: true, Message: NotFoundMessage}
	case KindAskForDetails:
		return d, Reply{Success: true, Message: AskDetailsMessage}
	case KindEscalate:
		return d, Reply{Success: true, Message: d.Escalation}
	case KindVerify:
		return d, Reply{Success: true, Message: VerificationPrompt}
	default:
		return d, Reply{Success: true, Message: GreetMessage}
	}
}

// QuickResponse drafts a short note about one detail of a property, for
// agents composing replies by hand.
func (e *Engine) QuickResponse(ctx context.Context, p catalogue.Property, detailType, detailValue string) Reply {
	question := fmt.Sprintf("Tell me about the %s: %s", detailType, detailValue)
	return e.generate(ctx, question, NewPropertyContext(p), ResponseGeneral)
}

func (e *Engine) generate(ctx context.Context, question string, pc PropertyContext, rt ResponseType) (reply Reply) {
	if e.completer == nil {
		return failure(ErrNoCompleter)
	}

	// completer panics become failures like any other error
	defer func() {
		if r := recover(); r != nil {
			reply = failure(fmt.Errorf("completer panicked: %v", r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text, err := e.completer.Complete(ctx, SystemPrompt(rt), UserPrompt(pc, question, rt))
	if err != nil {
		return failure(err)
	}
	if strings.TrimSpace(text) == "" {
		return failure(ErrEmptyCompletion)
	}
	return Reply{Success: true, Message: text}
}

func failure(err error) Reply {
	return Reply{Success: false, Message: DefaultEscalation, Error: err.Error()}
}
