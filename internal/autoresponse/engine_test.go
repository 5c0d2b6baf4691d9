package autoresponse

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/omriShneor/project_concierge/internal/catalogue"
	"github.com/omriShneor/project_concierge/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEngine(c Completer) *Engine {
	return NewEngine(c, Config{Timeout: time.Second, RequireVerifiedAccess: true})
}

func nileView() []catalogue.Property {
	return []catalogue.Property{{ID: 4, Name: "Nile View", District: "Maadi", WifiPassword: "abc123"}}
}

func TestEngine_CanAnswer(t *testing.T) {
	engine := newTestEngine(nil)
	props := nileView()

	t.Run("escalation keywords are refused with high confidence", func(t *testing.T) {
		for _, q := range []string{
			"I want a refund",
			"I need to cancel my stay",
			"The shower is broken",
			"Let me talk to a human",
		} {
			result := engine.CanAnswer(q, props)
			assert.False(t, result.CanAnswer, q)
			assert.Equal(t, ConfidenceHigh, result.Confidence, q)
			assert.Equal(t, ReasonHumanRequired, result.Reason, q)
			assert.NotEmpty(t, result.EscalationMessage, q)
		}
	})

	t.Run("catalogue value in question is answerable", func(t *testing.T) {
		result := engine.CanAnswer("Which bed is in the Nile View apartment?", props)

		assert.True(t, result.CanAnswer)
		assert.Equal(t, ConfidenceHigh, result.Confidence)
		assert.Equal(t, ReasonPropertyAvailable, result.Reason)
		assert.Empty(t, result.EscalationMessage)
	})

	t.Run("property question without matching data", func(t *testing.T) {
		result := engine.CanAnswer("Does the apartment have a balcony?", props)

		assert.False(t, result.CanAnswer)
		assert.Equal(t, ConfidenceMedium, result.Confidence)
		assert.Equal(t, ReasonPropertyUnavailable, result.Reason)
		assert.Equal(t, DefaultEscalation, result.EscalationMessage)
	})

	t.Run("property question with empty catalogue falls through", func(t *testing.T) {
		result := engine.CanAnswer("Where is the apartment?", nil)

		assert.False(t, result.CanAnswer)
		assert.Equal(t, ConfidenceLow, result.Confidence)
		assert.Equal(t, ReasonUnrecognized, result.Reason)
	})

	t.Run("general capable question", func(t *testing.T) {
		result := engine.CanAnswer("What time is check-in?", props)

		assert.True(t, result.CanAnswer)
		assert.Equal(t, ConfidenceMedium, result.Confidence)
		assert.Equal(t, ReasonGeneralCapable, result.Reason)
		assert.True(t, result.RequiresVerification)
		assert.Equal(t, VerificationPrompt, result.VerificationPrompt)
	})

	t.Run("verification flag is off when the gate is off", func(t *testing.T) {
		open := NewEngine(nil, Config{})
		result := open.CanAnswer("What time is check-in?", props)

		assert.True(t, result.CanAnswer)
		assert.False(t, result.RequiresVerification)
		assert.Empty(t, result.VerificationPrompt)
	})

	t.Run("unrecognized question", func(t *testing.T) {
		result := engine.CanAnswer("hello there", props)

		assert.False(t, result.CanAnswer)
		assert.Equal(t, ConfidenceLow, result.Confidence)
		assert.Equal(t, DefaultEscalation, result.EscalationMessage)
	})

	t.Run("complaint text wins over billing text", func(t *testing.T) {
		result := engine.CanAnswer("This is terrible, I want my money back", props)
		assert.Equal(t, ComplaintEscalation, result.EscalationMessage)
	})
}

func TestEngine_Decide(t *testing.T) {
	engine := newTestEngine(nil)

	t.Run("district resolves to the listing", func(t *testing.T) {
		d := engine.Decide(Request{Question: "I'm staying in Maadi", Properties: nileView()})

		assert.Equal(t, KindAnswer, d.Kind)
		assert.Equal(t, "maadi", d.Reference)
		require.NotNil(t, d.Property)
		assert.Equal(t, int64(4), d.Property.ID)
		assert.Equal(t, ResponseGeneral, d.ResponseType)
	})

	t.Run("greedy name capture is kept", func(t *testing.T) {
		d := engine.Decide(Request{Question: "i'm busy"})

		assert.Equal(t, KindAskForProperty, d.Kind)
		assert.Equal(t, "busy", d.GuestName)
	})

	t.Run("numbered access question needs verification", func(t *testing.T) {
		d := engine.Decide(Request{Question: "What is the lockbox code for property 4?", Properties: nileView()})

		assert.Equal(t, KindVerify, d.Kind)
		assert.Equal(t, ResponseAccess, d.ResponseType)
	})

	t.Run("unknown property number", func(t *testing.T) {
		d := engine.Decide(Request{Question: "property number 9", Properties: nileView()})
		assert.Equal(t, KindNotFound, d.Kind)
		assert.Nil(t, d.Property)
	})

	t.Run("question reference beats caller reference", func(t *testing.T) {
		props := append(nileView(), catalogue.Property{ID: 7, District: "Zamalek"})
		d := engine.Decide(Request{Question: "I moved to Zamalek", Properties: props, PropertyRef: "property_4"})

		require.NotNil(t, d.Property)
		assert.Equal(t, int64(7), d.Property.ID)
	})

	t.Run("caller reference does not bypass escalation", func(t *testing.T) {
		d := engine.Decide(Request{Question: "The shower is broken", Properties: nileView(), PropertyRef: "property_4"})

		assert.Equal(t, KindEscalate, d.Kind)
		assert.Equal(t, TechnicalEscalation, d.Escalation)
	})

	t.Run("same input same decision", func(t *testing.T) {
		req := Request{Question: "Where is property 4?", Properties: nileView()}
		assert.Equal(t, engine.Decide(req), engine.Decide(req))
	})
}

func TestEngine_Respond_FixedReplies(t *testing.T) {
	completer := new(mocks.MockCompleter)
	engine := newTestEngine(completer)
	ctx := context.Background()

	tests := []struct {
		name     string
		question string
		props    []catalogue.Property
		want     string
	}{
		{"name given", "My name is Jane Doe", nileView(), AskForPropertyMessage("Jane Doe")},
		{"district not in catalogue", "I'm staying in Maadi", []catalogue.Property{{ID: 7, District: "Zamalek"}}, NotFoundMessage},
		{"topical without reference", "Where is the apartment?", nileView(), AskDetailsMessage},
		{"escalation", "I want a refund", nileView(), PaymentEscalation},
		{"fallback greeting", "hello there", nileView(), GreetMessage},
		{"access withheld from unverified sender", "What is the lockbox code for property 4?", nileView(), VerificationPrompt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := engine.Respond(ctx, tt.question, tt.props)

			assert.True(t, reply.Success)
			assert.Equal(t, tt.want, reply.Message)
			assert.Empty(t, reply.Error)
		})
	}

	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_RespondTo_WifiScenario(t *testing.T) {
	completer := new(mocks.MockCompleter)
	completer.On("Complete",
		mock.Anything,
		SystemPrompt(ResponseAccess),
		mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "wifiPassword: abc123")
		}),
	).Return("The WiFi password is abc123 🔐", nil).Once()

	engine := newTestEngine(completer)
	d, reply := engine.RespondTo(context.Background(), Request{
		Question:    "What's the WiFi password for the apartment?",
		Properties:  nileView(),
		PropertyRef: "property_4",
		Verified:    true,
	})

	assert.Equal(t, KindAnswer, d.Kind)
	assert.Equal(t, ResponseAccess, d.ResponseType)
	assert.True(t, reply.Success)
	assert.Equal(t, "The WiFi password is abc123 🔐", reply.Message)
	completer.AssertExpectations(t)
}

func TestEngine_RespondTo_GateDisabled(t *testing.T) {
	completer := new(mocks.MockCompleter)
	completer.On("Complete", mock.Anything, SystemPrompt(ResponseAccess), mock.Anything).Return("code is 1234", nil)

	engine := NewEngine(completer, Config{})
	d, reply := engine.RespondTo(context.Background(), Request{
		Question:   "What is the lockbox code for property 4?",
		Properties: nileView(),
	})

	assert.Equal(t, KindAnswer, d.Kind)
	assert.Equal(t, "code is 1234", reply.Message)
}

func TestEngine_Respond_Failures(t *testing.T) {
	ctx := context.Background()
	question := "I'm staying in Maadi"

	t.Run("collaborator error", func(t *testing.T) {
		completer := new(mocks.MockCompleter)
		completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("upstream down"))

		reply := newTestEngine(completer).Respond(ctx, question, nileView())

		assert.False(t, reply.Success)
		assert.Equal(t, "upstream down", reply.Error)
		assert.Equal(t, DefaultEscalation, reply.Message)
	})

	t.Run("empty completion", func(t *testing.T) {
		completer := new(mocks.MockCompleter)
		completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("   ", nil)

		reply := newTestEngine(completer).Respond(ctx, question, nileView())

		assert.False(t, reply.Success)
		assert.Equal(t, ErrEmptyCompletion.Error(), reply.Error)
	})

	t.Run("collaborator panic", func(t *testing.T) {
		completer := new(mocks.MockCompleter)
		completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { panic("boom") }).
			Return("", nil)

		var reply Reply
		assert.NotPanics(t, func() {
			reply = newTestEngine(completer).Respond(ctx, question, nileView())
		})
		assert.False(t, reply.Success)
		assert.Contains(t, reply.Error, "boom")
		assert.Equal(t, DefaultEscalation, reply.Message)
	})

	t.Run("no collaborator", func(t *testing.T) {
		reply := newTestEngine(nil).Respond(ctx, question, nileView())

		assert.False(t, reply.Success)
		assert.Equal(t, ErrNoCompleter.Error(), reply.Error)
	})

	t.Run("slow collaborator times out", func(t *testing.T) {
		engine := NewEngine(blockingCompleter{}, Config{Timeout: 20 * time.Millisecond})

		start := time.Now()
		reply := engine.Respond(ctx, question, nileView())

		assert.False(t, reply.Success)
		assert.Equal(t, context.DeadlineExceeded.Error(), reply.Error)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("caller cancellation propagates", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		reply := newTestEngine(blockingCompleter{}).Respond(cctx, question, nileView())

		assert.False(t, reply.Success)
		assert.Equal(t, context.Canceled.Error(), reply.Error)
	})
}

func TestEngine_Respond_Concurrent(t *testing.T) {
	completer := new(mocks.MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("ok", nil)
	engine := newTestEngine(completer)
	props := nileView()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reply := engine.Respond(context.Background(), "I'm staying in Maadi", props)
			assert.Equal(t, "ok", reply.Message)
		}()
	}
	wg.Wait()
}

func TestEngine_QuickResponse(t *testing.T) {
	completer := new(mocks.MockCompleter)
	completer.On("Complete",
		mock.Anything,
		SystemPrompt(ResponseGeneral),
		mock.MatchedBy(func(prompt string) bool {
			return strings.HasPrefix(prompt, `Guest Query: "Tell me about the wifi: abc123"`)
		}),
	).Return("Connect to NileNet with abc123", nil)

	reply := newTestEngine(completer).QuickResponse(context.Background(), nileView()[0], "wifi", "abc123")

	assert.True(t, reply.Success)
	assert.Equal(t, "Connect to NileNet with abc123", reply.Message)
}

type blockingCompleter struct{}

func (blockingCompleter) Complete(ctx context.Context, _, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func twoListings() []catalogue.Property {
	return []catalogue.Property{
		{ID: 4, Name: "Nile View", District: "Maadi", WifiPassword: "abc123", LockboxCode: "4444"},
		{ID: 7, Name: "Garden Loft", District: "Zamalek", WifiPassword: "loft-pass", LockboxCode: "7777"},
	}
}

func TestEngine_AccessGate(t *testing.T) {
	int64Ptr := func(v int64) *int64 { return &v }

	tests := []struct {
		name     string
		req      Request
		wantKind Kind
		wantID   int64
	}{
		{
			name:     "location-typed access question from unverified sender",
			req:      Request{Question: "Where do I find the lockbox code for property 4?"},
			wantKind: KindVerify,
			wantID:   4,
		},
		{
			name:     "verified guest asking about another property",
			req:      Request{Question: "What is the lockbox code for property 7?", PropertyRef: "property_4", Verified: true},
			wantKind: KindVerify,
			wantID:   7,
		},
		{
			name:     "booked property outranks the conversation reference",
			req:      Request{Question: "What is the lockbox code for property 7?", PropertyRef: "property_7", Verified: true, GuestPropertyID: int64Ptr(4)},
			wantKind: KindVerify,
			wantID:   7,
		},
		{
			name:     "verified guest without any property",
			req:      Request{Question: "What is the lockbox code for property 4?", Verified: true},
			wantKind: KindVerify,
			wantID:   4,
		},
		{
			name:     "verified guest asking about their own property",
			req:      Request{Question: "What is the lockbox code for property 4?", Verified: true, GuestPropertyID: int64Ptr(4)},
			wantKind: KindAnswer,
			wantID:   4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := new(mocks.MockCompleter)
			completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("The code is 4444", nil).Maybe()

			tt.req.Properties = twoListings()
			d, reply := newTestEngine(completer).RespondTo(context.Background(), tt.req)

			assert.Equal(t, tt.wantKind, d.Kind)
			require.NotNil(t, d.Property)
			assert.Equal(t, tt.wantID, d.Property.ID)
			if tt.wantKind == KindVerify {
				assert.Equal(t, VerificationPrompt, reply.Message)
				completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.False(t, d.Withheld)
				completer.AssertNumberOfCalls(t, "Complete", 1)
			}
		})
	}
}

func TestEngine_RespondTo_WithholdsCredentialsFromUnverifiedSender(t *testing.T) {
	completer := new(mocks.MockCompleter)
	completer.On("Complete", mock.Anything, SystemPrompt(ResponseLocation), mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "lockboxCode: "+WithheldValue) &&
			strings.Contains(prompt, "wifiPassword: "+WithheldValue) &&
			!strings.Contains(prompt, "4444") &&
			!strings.Contains(prompt, "abc123")
	})).Return("Nile View is in Maadi.", nil).Once()

	d, reply := newTestEngine(completer).RespondTo(context.Background(), Request{
		Question:   "Where is property 4?",
		Properties: twoListings(),
	})

	assert.Equal(t, KindAnswer, d.Kind)
	assert.True(t, d.Withheld)
	assert.Equal(t, "Nile View is in Maadi.", reply.Message)
	completer.AssertExpectations(t)
}

func TestEngine_Decide_NameBeforeReference(t *testing.T) {
	engine := newTestEngine(nil)

	d := engine.Decide(Request{Question: "My name is Jane Doe, property 4", Properties: nileView()})
	assert.Equal(t, KindAskForProperty, d.Kind)
	assert.Equal(t, "Jane Doe", d.GuestName)
	assert.Nil(t, d.Property)

	// the captured "name" is a district, so the reference wins
	d = engine.Decide(Request{Question: "I'm staying in Maadi", Properties: nileView()})
	assert.Equal(t, KindAnswer, d.Kind)
	assert.Empty(t, d.GuestName)
}

func TestPropertyContext_WithoutCredentials(t *testing.T) {
	pc := NewPropertyContext(catalogue.Property{
		ID: 4, Name: "Nile View", WifiName: "NileNet", WifiPassword: "abc123", LockboxCode: "4444",
		ElectricityMeter: "E-1", WaterMeter: "W-2", GasMeter: "G-3", Host: "Omar",
	}).WithoutCredentials()

	for _, v := range []string{pc.WifiName, pc.WifiPassword, pc.LockboxCode, pc.ElectricityMeter, pc.WaterMeter, pc.GasMeter} {
		assert.Equal(t, WithheldValue, v)
	}
	assert.Equal(t, "Nile View", pc.PropertyName)
	assert.Equal(t, "Omar", pc.Host)
}
