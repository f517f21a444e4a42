// Package wire defines the message shapes shared by the realtime event
// channel, the HTTP query responses, and the client-side reconciliation
// poll. Both ends of the channel import this package so the envelope and
// payload forms cannot drift apart.
package wire
