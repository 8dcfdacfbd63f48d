// Package openai implements generation.CopyWriter on an OpenAI-compatible
// chat completions API. The source photo travels as a base64 data URL vision
// part and the answer is constrained by a strict JSON schema.
package openai
