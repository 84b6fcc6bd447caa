// Package template implements WGSL's normative Template List Discovery
// algorithm: a character-level pre-pass that decides which `<`/`>` byte
// pairs in the raw source are template-argument brackets rather than
// comparison operators, and rewrites an already-lexed token stream to
// mark them.
//
// The scan runs over raw bytes rather than tokens because the decision
// for a given `<` can depend on characters the lexer would otherwise
// have already folded into a different token (`<<`, `<=`); running on
// characters keeps this implementation identical to the WGSL
// specification's own character-level description.
package template

import (
	"github.com/unfinishedprogram/wgsl-analyzer/internal/lexer"
)

// pair records one matched template-bracket bracket: the byte offset of
// its opening '<' and of its closing '>'.
type pair struct {
	start int
	end   int
}

type candidate struct {
	pos   int
	depth int
}

// Discover scans source and returns the byte offsets of every '<' that
// opens a template-argument list and every '>' that closes one.
func Discover(source string) (starts map[int]bool, ends map[int]bool) {
	starts = make(map[int]bool)
	ends = make(map[int]bool)

	var pending []candidate
	depth := 0
	n := len(source)
	i := 0

	popWhileDepthAtLeast(&pending, depth) // no-op at start, kept for symmetry

	for i < n {
		ch := source[i]

		// Skipped regions: comments never participate in the scan.
		if ch == '/' && i+1 < n && source[i+1] == '/' {
			i += 2
			for i < n && source[i] != '\n' {
				i++
			}
			continue
		}
		if ch == '/' && i+1 < n && source[i+1] == '*' {
			i += 2
			for i+1 < n && !(source[i] == '*' && source[i+1] == '/') {
				i++
			}
			if i+1 < n {
				i += 2
			} else {
				i = n
			}
			continue
		}

		switch ch {
		case '<':
			pending = append(pending, candidate{pos: i, depth: depth})
			i++
			if i < n && (source[i] == '<' || source[i] == '=') {
				pending = pending[:len(pending)-1]
				i++
			}

		case '>':
			if len(pending) > 0 && pending[len(pending)-1].depth == depth {
				top := pending[len(pending)-1]
				pending = pending[:len(pending)-1]
				starts[top.pos] = true
				ends[i] = true
				i++
			} else {
				i++
				if i < n && source[i] == '=' {
					i++
				}
			}

		case '(', '[':
			depth++
			i++

		case ')', ']':
			popWhileDepthAtLeast(&pending, depth)
			if depth > 0 {
				depth--
			}
			i++

		case '!':
			i++
			if i < n && source[i] == '=' {
				i++
			}

		case '=':
			if i+1 < n && source[i+1] == '=' {
				i += 2
			} else {
				depth = 0
				pending = nil
				i++
			}

		case ';', '{', ':':
			depth = 0
			pending = nil
			i++

		case '&':
			if i+1 < n && source[i+1] == '&' {
				popWhileDepthAtLeast(&pending, depth)
				i += 2
			} else {
				i++
			}

		case '|':
			if i+1 < n && source[i+1] == '|' {
				popWhileDepthAtLeast(&pending, depth)
				i += 2
			} else {
				i++
			}

		default:
			i++
		}
	}

	return starts, ends
}

func popWhileDepthAtLeast(pending *[]candidate, depth int) {
	p := *pending
	for len(p) > 0 && p[len(p)-1].depth >= depth {
		p = p[:len(p)-1]
	}
	*pending = p
}

// Rewrite marks every token in tokens whose start offset is a recorded
// template-start with lexer.TokTemplateArgsStart (symmetrically for
// ends), splitting any TokLtLt/TokGtGt token whose two bytes straddle a
// template boundary into two single-byte tokens.
func Rewrite(tokens []lexer.Token, starts, ends map[int]bool) []lexer.Token {
	out := make([]lexer.Token, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, rewriteOne(tok, starts, ends)...)
	}
	return out
}

func rewriteOne(tok lexer.Token, starts, ends map[int]bool) []lexer.Token {
	switch tok.Kind {
	case lexer.TokLt:
		if starts[tok.Start] {
			tok.Kind = lexer.TokTemplateArgsStart
		}
		return []lexer.Token{tok}

	case lexer.TokGt:
		if ends[tok.Start] {
			tok.Kind = lexer.TokTemplateArgsEnd
		}
		return []lexer.Token{tok}

	case lexer.TokLtLt:
		b0, b1 := tok.Start, tok.Start+1
		if starts[b0] || starts[b1] {
			return []lexer.Token{
				byteToken(b0, starts, ends, lexer.TokLt),
				byteToken(b1, starts, ends, lexer.TokLt),
			}
		}
		return []lexer.Token{tok}

	case lexer.TokGtGt:
		b0, b1 := tok.Start, tok.Start+1
		if ends[b0] || ends[b1] {
			return []lexer.Token{
				byteToken(b0, starts, ends, lexer.TokGt),
				byteToken(b1, starts, ends, lexer.TokGt),
			}
		}
		return []lexer.Token{tok}

	default:
		return []lexer.Token{tok}
	}
}

// byteToken builds the single-byte token at pos, tagging it as a
// template bracket if the discovery pass recorded it as one.
func byteToken(pos int, starts, ends map[int]bool, plainKind lexer.TokenKind) lexer.Token {
	kind := plainKind
	if plainKind == lexer.TokLt && starts[pos] {
		kind = lexer.TokTemplateArgsStart
	}
	if plainKind == lexer.TokGt && ends[pos] {
		kind = lexer.TokTemplateArgsEnd
	}
	return lexer.Token{Kind: kind, Start: pos, End: pos + 1}
}
