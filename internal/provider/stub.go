package provider

import (
	"context"
)

// StubProvider is a simple provider for testing.
type StubProvider struct {
	Responses []Response
	Requests  [][]Message
	Err       error
}

func NewStubProvider(contents ...string) *StubProvider {
	s := &StubProvider{}
	for _, c := range contents {
		s.Responses = append(s.Responses, Response{
			Content: c,
			Usage:   Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
		})
	}
	return s
}

func (s *StubProvider) Generate(ctx context.Context, messages []Message, opts Options) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}

	s.Requests = append(s.Requests, messages)

	if len(s.Responses) == 0 {
		return &Response{Content: "Dear Hiring Manager,"}, nil
	}
	resp := s.Responses[0]
	s.Responses = s.Responses[1:]
	return &resp, nil
}

func (s *StubProvider) Name() string {
	return "stub"
}
