// Package domain contains the core entities and value objects of a listing
// session: the uploaded source photo, the five styled image tasks, the
// listing copy task and the immutable snapshots handed to presentation code.
// It is independent of any provider or delivery mechanism.
package domain
