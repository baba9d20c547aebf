// Package processor runs the before/after edit cycle for one watched
// range.
//
// BeforeChange captures the range into a memory.Memory. AfterChange
// compares the range against that capture and passes the comparison to
// every registered handler in registration order. A failing or panicking
// handler is logged and does not prevent later handlers from running;
// all handler errors are returned joined.
//
// The processor listens for configuration changes under the memory
// section and drops its capture when they occur, so a new threshold
// never compares against a snapshot taken under the old one.
package processor
