// Package spiderkit provides the shared building blocks of a web-crawling
// pipeline: request and response value types, duplicate detection via a
// Bloom filter over canonical request fingerprints, link extraction, and
// crawl statistics.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., bloom/, goquery/,
// metrics/).
package spiderkit
