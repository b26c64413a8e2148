package main

// Exit codes.
const (
	ExitSuccess   = 0   // All papers processed successfully
	ExitError     = 1   // Runtime failure or at least one paper failed
	ExitInterrupt = 130 // Interrupted by the user (SIGINT)
)
