package asm

import (
	"regexp"
	"sync"
)

// regexCache lazily compiles and memoizes the small set of regular
// expressions the lexer uses for line and operand classification. It is
// the only process-wide state in this package; the assembler is otherwise
// re-entrant and holds no shared mutable data across Compile calls.
type regexCache struct {
	mu  sync.Mutex
	set map[string]*regexp.Regexp
}

var sharedRegexCache = &regexCache{set: make(map[string]*regexp.Regexp)}

func (c *regexCache) get(pattern string) *regexp.Regexp {
	c.mu.Lock()
	defer c.mu.Unlock()

	if re, ok := c.set[pattern]; ok {
		return re
	}
	re := regexp.MustCompile(pattern)
	c.set[pattern] = re
	return re
}

var (
	reDirectiveKeyword = `(?i)^(org|dc|dcb|ds)(\.[a-zA-Z])?(\s|$)`
	reEqu              = `(?i)^[A-Za-z_][A-Za-z0-9_]*\s+equ\s+.+$`
	reLabel            = `^([A-Za-z_][A-Za-z0-9_]*):(.*)$`
	rePostIndirect     = `^\(([^()]+)\)\+$`
	rePreIndirect      = `^-\(([^()]+)\)$`
	reIndirect         = `^\(([^()]+)\)$`
	reIndirectIndex    = `^(.*)\(([^,()]+),([^,()]+)\)$`
	reIndirectDisp     = `^(.*)\(([^,()]+)\)$`
	reRegisterSize     = `(?i)^(d|a)([0-7])\.(b|w|l)$`
	reRegisterPlain    = `(?i)^(d[0-7]|a[0-7]|sp)$`
	reRegisterRange    = `(?i)^([da][0-7](-[da][0-7])?)(/([da][0-7](-[da][0-7])?))*$`
	reImmediateLiteral = `^(0b[01]+|0o[0-7]+|\$[0-9A-Fa-f]+|[0-9]+)$`
)
