package ports

import "context"

// InterpretInput holds everything the LLM needs to generate an interpretation.
type InterpretInput struct {
	Spread   string
	Question string
	Cards    []CardInput
	// Daily marks the free single-card variant, which gets a shorter reading.
	Daily bool
}

// CardInput is a simplified card representation for the LLM prompt.
type CardInput struct {
	Position string
	Name     string
	Reversed bool
	Meaning  string
}

// Interpreter generates a tarot interpretation via an LLM.
//
// Interpret never fails: any transport or provider error is absorbed inside
// the implementation and surfaces as a fixed fallback string instead of a
// genuine interpretation. Callers can only tell the two apart by content.
// This is a known weak contract carried over from the product's rules; the
// reading flow always terminates in a result either way.
type Interpreter interface {
	Interpret(ctx context.Context, in InterpretInput) string
}
