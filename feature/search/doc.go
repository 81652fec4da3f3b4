// Package search is the full-text facade over indexed cards.
//
// Engine is the read contract (search with filters, sort, pagination and facets; name
// suggestions; health). SQLIndex implements it on the configured gorm database and is
// fed by the card service after every fresh provider fetch.
package search
