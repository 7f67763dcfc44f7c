package models

import "strings"

// Card is a single keyword record of an image header
type Card struct {
	Key     string
	Value   interface{}
	Comment string
}

// Header is an ordered list of cards. Keys are case-insensitive and
// stored upper-case.
type Header []Card

// Get returns the card for key, if present
func (h Header) Get(key string) (Card, bool) {
	key = strings.ToUpper(key)
	for _, c := range h {
		if c.Key == key {
			return c, true
		}
	}
	return Card{}, false
}

// Set replaces the value and comment of key, or appends a new card.
// An empty comment keeps the existing one.
func (h Header) Set(key string, value interface{}, comment string) Header {
	key = strings.ToUpper(key)
	for i, c := range h {
		if c.Key == key {
			h[i].Value = value
			if comment != "" {
				h[i].Comment = comment
			}
			return h
		}
	}
	return append(h, Card{Key: key, Value: value, Comment: comment})
}

// Remove drops every card named key
func (h Header) Remove(key string) Header {
	key = strings.ToUpper(key)
	out := h[:0]
	for _, c := range h {
		if c.Key != key {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns a copy that does not share backing storage with h
func (h Header) Clone() Header {
	if h == nil {
		return nil
	}
	out := make(Header, len(h))
	copy(out, h)
	return out
}
