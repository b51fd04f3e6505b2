// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metrics

type Noop struct{}

func NewNoop() (metrics *Noop) {
	return new(Noop)
}

func (n *Noop) FetchHit(string)              {}
func (n *Noop) FetchMiss(string)             {}
func (n *Noop) CacheHit()                    {}
func (n *Noop) NodeVisited()                 {}
func (n *Noop) EntryEmitted(bool)            {}
func (n *Noop) WriteToTextfile(string) error { return nil }
