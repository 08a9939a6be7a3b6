package asm

import (
	"strings"

	"github.com/m68kasm/m68kasm/arch/cpu/m68k"
)

// Lex splits source text into classified SourceLines: instruction, label,
// directive, comment, empty or unknown. It does not evaluate expressions
// or resolve labels; it only tokenizes shape.
func Lex(source string) []SourceLine {
	rawLines := strings.Split(source, "\n")
	lines := make([]SourceLine, 0, len(rawLines))

	for i, raw := range rawLines {
		lineNum := i + 1
		lines = append(lines, lexLine(raw, lineNum)...)
	}
	return lines
}

func lexLine(raw string, lineNum int) []SourceLine {
	content := stripComment(raw)
	content = strings.TrimSpace(content)

	if content == "" {
		lexed := Lexed(EmptyLexed{})
		if strings.TrimSpace(raw) != "" {
			lexed = CommentLexed{}
		}
		return []SourceLine{{RawText: raw, LineNumber: lineNum, Lexed: lexed}}
	}

	if m := sharedRegexCache.get(reLabel).FindStringSubmatch(content); m != nil {
		out := []SourceLine{{RawText: raw, LineNumber: lineNum, Lexed: LabelLexed{Name: m[1]}}}
		trailing := strings.TrimSpace(m[2])
		if trailing != "" {
			out = append(out, classifyContent(trailing, raw, lineNum))
		}
		return out
	}

	return []SourceLine{classifyContent(content, raw, lineNum)}
}

// classifyContent classifies already comment-stripped, trimmed, non-label
// line content as a directive, instruction, or unknown line.
func classifyContent(content, raw string, lineNum int) SourceLine {
	lexed := classifyLexed(content)
	return SourceLine{RawText: raw, LineNumber: lineNum, Lexed: lexed}
}

func classifyLexed(content string) Lexed {
	if sharedRegexCache.get(reEqu).MatchString(content) {
		return lexEqu(content)
	}
	if sharedRegexCache.get(reDirectiveKeyword).MatchString(content) {
		return lexDirective(content)
	}

	name, size, rest := splitMnemonic(content)
	if isMnemonic(name) {
		operands, err := lexOperands(rest)
		if err != nil {
			return UnknownLexed{Text: content}
		}
		return InstructionLexed{Name: name, Size: size, Operands: operands}
	}

	return UnknownLexed{Text: content}
}

// stripComment removes a trailing comment: anything from ';' or '*' that
// is either in column 1 or preceded by whitespace, outside of a quoted
// character literal.
func stripComment(raw string) string {
	trimmed := strings.TrimLeft(raw, " \t")
	if trimmed == "" {
		return ""
	}
	if trimmed[0] == ';' || trimmed[0] == '*' {
		return ""
	}

	inQuote := false
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
		case inQuote:
			// ignore ; and * inside a quoted character literal
		case (c == ';' || c == '*') && i > 0 && (trimmed[i-1] == ' ' || trimmed[i-1] == '\t'):
			return trimmed[:i]
		}
	}
	return trimmed
}

// splitMnemonic splits the first whitespace-delimited token of an
// instruction line into its lowercase name, optional size suffix, and the
// remaining operand text.
func splitMnemonic(content string) (name string, size m68k.Size, rest string) {
	idx := strings.IndexAny(content, " \t")
	first := content
	if idx >= 0 {
		first = content[:idx]
		rest = content[idx+1:]
	}

	dot := strings.IndexByte(first, '.')
	if dot < 0 {
		return strings.ToLower(first), m68k.Unspecified, strings.TrimSpace(rest)
	}
	name = strings.ToLower(first[:dot])
	size = m68k.ParseSize(strings.ToLower(first[dot+1:]))
	return name, size, strings.TrimSpace(rest)
}

// splitFirstToken splits content at its first run of whitespace.
func splitFirstToken(content string) (first, rest string) {
	idx := strings.IndexAny(content, " \t")
	if idx < 0 {
		return content, ""
	}
	return content[:idx], strings.TrimSpace(content[idx+1:])
}

// lexEqu lexes a "name equ expr" line into a DirectiveLexed carrying the
// target name and expression as its two raw args.
func lexEqu(content string) Lexed {
	name, rest := splitFirstToken(content)
	// rest begins with the "equ" keyword (case-insensitive); strip it.
	lower := strings.ToLower(rest)
	if strings.HasPrefix(lower, "equ") {
		rest = strings.TrimSpace(rest[len("equ"):])
	}
	return DirectiveLexed{Name: "equ", RawArgs: []string{name, rest}}
}

// lexDirective lexes an org/dc/dcb/ds line.
func lexDirective(content string) Lexed {
	first, rest := splitFirstToken(content)

	name := strings.ToLower(first)
	size := m68k.Unspecified
	if dot := strings.IndexByte(first, '.'); dot >= 0 {
		name = strings.ToLower(first[:dot])
		size = m68k.ParseSize(strings.ToLower(first[dot+1:]))
	}

	args := splitTopLevel(strings.TrimSpace(rest))
	if len(args) == 1 && args[0] == "" {
		args = nil
	}
	return DirectiveLexed{Name: name, Size: size, RawArgs: args}
}
