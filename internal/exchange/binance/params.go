package binance

import "strings"

// Params is an insertion-ordered set of query parameters. The order in which
// keys are first set is the order they are signed and sent in.
type Params struct {
	keys   []string
	values map[string]string
}

func NewParams() *Params {
	return &Params{values: make(map[string]string)}
}

// Set replaces the value of an existing key in place or appends a new key.
func (p *Params) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p *Params) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.values[key]
	return v, ok
}

func (p *Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Encode joins key=value pairs with '&' in insertion order. Values are not
// escaped: the exchange verifies the signature against these exact bytes.
func (p *Params) Encode() string {
	if p.Len() == 0 {
		return ""
	}
	b := strings.Builder{}
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(p.values[k])
	}
	return b.String()
}
