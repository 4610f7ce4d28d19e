// Package pagesmith provides a chat-driven website generator. A natural
// language description is sent to a generation service, the HTML document
// is recovered from whatever shape the service replied with, and the
// result can be previewed, hosted behind a public URL, or published to a
// source repository.
//
// This package contains domain types, interfaces and the pure extraction
// pipeline following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, gemini/, goquery/).
package pagesmith
