// Package utils provides common utility functions for the card-catalog application.
// It includes the loose type conversions the provider normalizers rely on, since
// upstream catalogs disagree on whether ids and prices are numbers or strings.
package utils
