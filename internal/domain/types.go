package domain

import "sort"

// PortSet holds datapath port tokens for membership tests. Tokens stay
// strings; the tools' digit runs are never parsed to integers.
type PortSet map[string]struct{}

func NewPortSet(tokens ...string) PortSet {
	s := make(PortSet, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

func (s PortSet) Add(token string) { s[token] = struct{}{} }

func (s PortSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Sorted returns the tokens in lexical order, for reporting only.
func (s PortSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Report summarizes one reconciliation run.
type Report struct {
	Bridge     string   `json:"bridge"`
	Used       []string `json:"used_ports"`
	Referenced []string `json:"referenced_ports"`
	Deleted    []string `json:"deleted_ports"`
}
