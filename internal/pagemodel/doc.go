// Package pagemodel holds the crawled page records that feed the documentation
// pipeline and the URL-derived identifiers shared by every stage: page IDs,
// hierarchy levels and top-level navigation paths.
package pagemodel
