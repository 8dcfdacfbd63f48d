// Package generation provides the boundary between the listing session and
// external generative-AI services. It defines the ports used to request a
// styled product image and structured listing copy for a source photo, the
// fixed instruction text sent for each request, the single GenerationFailure
// error taxonomy, and the schema validation applied to structured copy
// responses. Concrete providers live under internal/platform.
package generation
