package services

import (
	"context"
)

// ChatService is the pluggable chat backend. The current implementation is a
// stub: it echoes the prompt and ignores topK and the metadata filter, which
// only become meaningful once a retrieval backend is wired in.
type ChatService struct{}

func NewChatService() *ChatService {
	return &ChatService{}
}

// ProcessChat returns the reply for a single prompt. The call is stateless:
// history is accumulated client-side only.
func (s *ChatService) ProcessChat(ctx context.Context, userPrompt, systemPrompt string, topK int, metaDataFilter map[string][]string) (string, error) {
	return "Response to " + userPrompt, nil
}

// CompletionText is the canned markdown document streamed by the
// completions endpoint.
func (s *ChatService) CompletionText() string {
	return completionDocument
}

const completionDocument = `# 28HPC+ Design Support Manual

## Overview

The 28HPC+ platform extends the 28nm high-performance compute process with
an improved transistor profile and a reduced leakage corner. This manual
summarizes the design kit contents, the supported IP catalog and the
sign-off flow for tape-out submissions.

## Design Kit Contents

- Device models for the nominal, fast and slow corners
- Standard cell libraries in 9-track and 12-track variants
- IO libraries for 1.8V and 3.3V interfaces
- Physical verification decks for DRC, LVS and antenna checks

## Sign-off Flow

1. Run static timing analysis across all shipped corners.
2. Verify power intent against the UPF golden reference.
3. Submit the final GDS through the tape-out portal with the revision
   number recorded in the DSM catalog entry.

Refer to the catalog listing for the revision that matches your platform
before starting a new design. Contact the platform support desk for
customized marks and early-access library drops.`
