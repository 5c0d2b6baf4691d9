// Package guest verifies that a sender is a booked guest.
package guest

import (
	"context"
	"fmt"

	"github.com/omriShneor/project_concierge/internal/autoresponse"
	"github.com/omriShneor/project_concierge/internal/catalogue"
	"github.com/omriShneor/project_concierge/internal/database"
	"github.com/omriShneor/project_concierge/internal/inbox"
)

// Method names the credential that identified a guest.
type Method string

const (
	MethodPhone Method = "phone"
	MethodName  Method = "name"
	MethodGIN   Method = "gin"
	MethodEmail Method = "email"
	MethodNone  Method = "none"
)

// Directory is the guest and property lookup surface Verify needs.
// *database.DB satisfies it.
type Directory interface {
	GetGuestByPhone(ctx context.Context, digits string) (*database.Guest, error)
	FindGuestsByName(ctx context.Context, name string) ([]database.Guest, error)
	GetGuestByGIN(ctx context.Context, gin string) (*database.Guest, error)
	GetGuestByEmail(ctx context.Context, email string) (*database.Guest, error)
	GetProperty(ctx context.Context, id int64) (*catalogue.Property, error)
}

// Credentials are whatever the guest supplied. Any subset may be empty.
type Credentials struct {
	Phone string `json:"phoneNumber,omitempty"`
	Name  string `json:"name,omitempty"`
	GIN   string `json:"ginCode,omitempty"`
	Email string `json:"email,omitempty"`
}

// Empty reports whether no credential was supplied.
func (c Credentials) Empty() bool {
	return c.Phone == "" && c.Name == "" && c.GIN == "" && c.Email == ""
}

type Result struct {
	Success  bool                `json:"success"`
	Guest    *database.Guest     `json:"guest,omitempty"`
	Property *catalogue.Property `json:"property,omitempty"`
	Message  string              `json:"message"`
	Method   Method              `json:"verificationMethod"`
	Verified bool                `json:"isVerified"`
}

type Service struct {
	dir Directory
}

func NewService(dir Directory) *Service {
	return &Service{dir: dir}
}

// Verify tries phone, name, GIN and e-mail in that order and stops at the
// first credential that identifies exactly one guest.
func (s *Service) Verify(ctx context.Context, c Credentials) (Result, error) {
	g, method, err := s.find(ctx, c)
	if err != nil {
		return Result{Method: MethodNone, Message: autoresponse.DefaultEscalation}, fmt.Errorf("failed to verify guest: %w", err)
	}
	if g == nil {
		return Result{Method: MethodNone, Message: autoresponse.VerificationPrompt}, nil
	}

	res := Result{Success: true, Guest: g, Method: method, Verified: true}
	if g.PropertyID != nil {
		p, err := s.dir.GetProperty(ctx, *g.PropertyID)
		if err != nil {
			return Result{Method: MethodNone, Message: autoresponse.DefaultEscalation}, fmt.Errorf("failed to load guest property: %w", err)
		}
		res.Property = p
	}
	res.Message = WelcomeMessage(g, res.Property)
	return res, nil
}

func (s *Service) find(ctx context.Context, c Credentials) (*database.Guest, Method, error) {
	if digits := inbox.NormalizeNumber(c.Phone); digits != "" {
		g, err := s.dir.GetGuestByPhone(ctx, digits)
		if err != nil || g != nil {
			return g, MethodPhone, err
		}
	}

	if c.Name != "" {
		guests, err := s.dir.FindGuestsByName(ctx, c.Name)
		if err != nil {
			return nil, MethodName, err
		}
		// an ambiguous name is not proof of identity
		if len(guests) == 1 {
			return &guests[0], MethodName, nil
		}
	}

	if c.GIN != "" {
		g, err := s.dir.GetGuestByGIN(ctx, c.GIN)
		if err != nil || g != nil {
			return g, MethodGIN, err
		}
	}

	if c.Email != "" {
		g, err := s.dir.GetGuestByEmail(ctx, c.Email)
		if err != nil || g != nil {
			return g, MethodEmail, err
		}
	}

	return nil, MethodNone, nil
}

// LookupBySender finds the guest behind a transport phone number and returns
// the property reference of their booking, if any. A nil guest means the
// sender is unknown.
func (s *Service) LookupBySender(ctx context.Context, phone string) (*database.Guest, string, error) {
	digits := inbox.NormalizeNumber(phone)
	if digits == "" {
		return nil, "", nil
	}
	g, err := s.dir.GetGuestByPhone(ctx, digits)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up sender: %w", err)
	}
	if g == nil || g.PropertyID == nil {
		return g, "", nil
	}
	return g, catalogue.Property{ID: *g.PropertyID}.Ref(), nil
}

// WelcomeMessage greets a verified guest.
func WelcomeMessage(g *database.Guest, p *catalogue.Property) string {
	name := g.Name
	if name == "" {
		name = "Guest"
	}
	if g.PropertyID == nil {
		return fmt.Sprintf("Welcome back, %s! I've verified your identity.", name)
	}
	if p == nil {
		return fmt.Sprintf("Welcome back, %s! I've verified your identity, but I couldn't find your property information. Please contact support.", name)
	}
	return fmt.Sprintf("Welcome back, %s! I've verified your identity and found your property information.", name)
}
