// Package obrdocs harvests the Owlbear Rodeo documentation site and mirrors
// it as clean GitHub-flavored Markdown. It discovers pages per documentation
// category (sitemap first, index page as fallback), fetches them with a
// cache-aware, anti-blocking HTTP layer, sanitizes the HTML down to the
// content subtree, converts it to Markdown with normalized internal links,
// and records a run manifest of expected, produced and missing pages.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, htmltomarkdown/).
package obrdocs
