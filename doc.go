// Package chatoyant is a provider-agnostic client SDK for LLM HTTP APIs.
//
// Design goals:
//   - Stable domain model: callers build requests using canonical types (ChatRequest, Message, ToolDefinition)
//     and every provider maps them to its own wire format.
//   - Explicit streaming: providers emit StreamEvent values (text/reasoning/tool-call deltas, usage, done) and
//     callers can reconstruct final responses using Accumulator or DrainStream, or consume plain text deltas
//     with Client.StreamText.
//   - Uniform errors: every provider failure surfaces as an *APIError with a stable Kind classification and
//     retry hints, regardless of vendor.
//   - Controlled escape hatches: provider-specific fields can be passed via ChatRequest.Extra, and
//     request-scoped headers via ChatRequest.Transport.
//
// Provider implementations live under providers/ and are responsible for mapping between the canonical
// model and each vendor's wire format. The schema subpackage adds a declarative field-descriptor system
// for structured data extraction, and modelinfo carries static model metadata (context windows, pricing).
package chatoyant
