// Package jobs defines the job queue contract between the reconciler and
// the per-path workers, plus an in-process broker with a fixed worker
// pool over an unbounded queue.
//
// The pipeline only depends on the Queue interface (fire-and-forget
// enqueue, at-least-once delivery); the Broker is the default transport
// for single-process deployments. Jobs whose consumers live in other
// services (metadata extraction, video conversion) are enqueued and
// dropped by the in-process broker unless a handler is registered.
package jobs
