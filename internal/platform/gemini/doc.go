// Package gemini provides an implementation of the generation.Client interface
// that uses Google's Gemini API for generating styled product images and
// structured listing copy from a source photo.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the orchestrator to Google's external Gemini AI service.
// It translates between the application's domain models and the Gemini API
// without exposing the details of the external service to the core application.
//
// Key components:
//
// 1. Client:
//   - Implements generation.ImageGenerator and generation.CopyWriter
//   - Sends the source photo as inline data next to a fixed instruction
//   - Requests copy as typed JSON via a response schema
//
// 2. Response Processing:
//   - Classifies empty, blocked and malformed responses
//   - Extracts the first inline image payload
//   - Validates copy responses through generation.DecodeListingCopy
//
// The client never retries; retry is a user decision made through the
// orchestrator. Every failure wraps generation.ErrGenerationFailed.
package gemini
