// File: internal/livequery/doc.go

// Package livequery delivers live result sets over the relational store.
//
// Each source polls its query on a fixed interval and invokes the subscriber's
// callback with the FULL current result set whenever the set changes. The
// first delivery happens immediately on subscribe. Cancelling the returned
// function (or the context) stops the poll loop.
package livequery
