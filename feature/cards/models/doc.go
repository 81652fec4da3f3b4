// Package models defines the canonical card record and the supported games.
package models
