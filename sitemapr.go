// Package sitemapr provides a CLI tool for discovering and retrieving XML
// sitemaps from websites. It probes well-known sitemap paths, parses
// robots.txt for Sitemap: directives, expands sitemap indexes recursively,
// decompresses gzipped sitemaps, falls back to the alternate URL scheme,
// and as a last resort scrapes the homepage for sitemap hints.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, bloom/).
package sitemapr
