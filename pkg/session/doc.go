/*
Package session guards running intake sessions.

A Manager pairs an in-process, reference-counted mutex per session with an
optional distributed lock, so two drivers never advance the same conversation.
It also exposes the checkpoint store for listing and cleaning up the sessions
that are currently in flight.
*/
package session
