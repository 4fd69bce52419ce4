// Package archeion provides a personal web archive. Captured pages are
// reduced to one canonical metadata record per link by extracting every
// structured-data syntax the page carries (JSON-LD, microdata, OpenGraph,
// Twitter cards, plain meta tags, GitHub topics) and merging them in a fixed
// precedence order.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, jsongold/, sqlite/).
package archeion
