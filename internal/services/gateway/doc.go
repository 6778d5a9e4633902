// Package gateway provides the broker-gateway bridge session client used
// during contract qualification.
//
// The bridge exposes the broker workstation's API over local HTTP. The session
// is stateful: Connect verifies a live broker connection before any
// qualification call, and a connection failure is fatal to the run rather than
// absorbed. QualifyContracts submits one batch window of contract descriptors
// and returns confirmed candidates in arbitrary order; binding candidates back
// to requests is the resolver's responsibility.
package gateway
