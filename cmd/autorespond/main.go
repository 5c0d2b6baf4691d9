// Command autorespond runs one guest question through the decision engine
// against the local property catalogue and prints the outcome as JSON.
//
// Usage:
//
//	go run ./cmd/autorespond -q "What's the wifi password?" -ref property_4 -verified
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/omriShneor/project_concierge/internal/autoresponse"
	"github.com/omriShneor/project_concierge/internal/config"
	"github.com/omriShneor/project_concierge/internal/database"
	"github.com/omriShneor/project_concierge/internal/llm"
)

type output struct {
	Question     string                          `json:"question"`
	Kind         autoresponse.Kind               `json:"kind"`
	ResponseType autoresponse.ResponseType       `json:"responseType,omitempty"`
	Property     string                          `json:"property,omitempty"`
	Verdict      autoresponse.AutoResponseResult `json:"verdict"`
	Reply        autoresponse.Reply              `json:"reply"`
}

func main() {
	question := flag.String("q", "", "Guest question (required)")
	ref := flag.String("ref", "", "Property reference from the conversation, e.g. property_4")
	verified := flag.Bool("verified", false, "Treat the sender as a verified guest")
	dbPath := flag.String("db", "", "Database path (defaults to the configured db_path)")
	flag.Parse()

	if *question == "" {
		fmt.Fprintln(os.Stderr, "Error: -q is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *dbPath == "" {
		*dbPath = cfg.DBPath
	}

	db, err := database.New(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var completer autoresponse.Completer
	if cfg.AnthropicAPIKey != "" {
		completer = llm.NewClient(llm.Config{
			APIKey:      cfg.AnthropicAPIKey,
			Model:       cfg.ClaudeModel,
			MaxTokens:   cfg.ClaudeMaxTokens,
			Temperature: cfg.ClaudeTemperature,
		})
	}
	engine := autoresponse.NewEngine(completer, autoresponse.Config{
		Timeout:               cfg.CompletionTimeout,
		RequireVerifiedAccess: cfg.RequireVerifiedAccess,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.CompletionTimeout+10*time.Second)
	defer cancel()

	props, err := db.ListAll(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing properties: %v\n", err)
		os.Exit(1)
	}

	decision, reply := engine.RespondTo(ctx, autoresponse.Request{
		Question:    *question,
		Properties:  props,
		PropertyRef: *ref,
		Verified:    *verified,
	})

	out := output{
		Question:     *question,
		Kind:         decision.Kind,
		ResponseType: decision.ResponseType,
		Verdict:      decision.Verdict,
		Reply:        reply,
	}
	if decision.Property != nil {
		out.Property = decision.Property.Ref()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		os.Exit(1)
	}
}
