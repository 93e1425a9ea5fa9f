package rexp

import (
	"fmt"
	"strings"
)

const metaChars = `.\*+?^$()[]|`

// cursor is the parser's mutable position over the pattern source,
// tracked in runes (not bytes) since the grammar is defined over
// characters (the compiler later re-expands each rune to its UTF-8
// bytes for the NFA, per spec 4.9's Char(c) construction).
type cursor struct {
	src []rune
	pos int
}

func (c *cursor) eof() bool { return c.pos >= len(c.src) }

func (c *cursor) peek() (rune, bool) {
	if c.eof() {
		return 0, false
	}
	return c.src[c.pos], true
}

func (c *cursor) advance() rune {
	r := c.src[c.pos]
	c.pos++
	return r
}

func (c *cursor) eat(r rune) bool {
	if ch, ok := c.peek(); ok && ch == r {
		c.pos++
		return true
	}
	return false
}

func (c *cursor) errorf(msg string, args ...any) *ParseError {
	return &ParseError{Pos: c.pos, Msg: fmt.Sprintf(msg, args...)}
}

// Parse parses src per spec §6's regex surface syntax (literal bytes,
// `.`, `\`-escapes of the metacharacters, `[...]`/`[^...]` classes with
// `x-y` ranges and leading-`]`-is-literal, `(...)` groups, postfix
// `? * + {n} {n,m}`, infix `|`) and returns the resulting AST.
func Parse(src string) (*Node, error) {
	c := &cursor{src: []rune(src)}
	n, err := parseOr(c)
	if err != nil {
		return nil, err
	}
	if !c.eof() {
		return nil, c.errorf("unexpected trailing input %q", string(c.src[c.pos:]))
	}
	return n, nil
}

// parseOr parses alternation, the lowest-precedence production:
// sep_by(seq, '|'). A singleton list is returned unwrapped, matching
// spec 4.9's "singleton Or/Seq returns its child directly".
func parseOr(c *cursor) (*Node, error) {
	var children []*Node
	first, err := parseSeq(c)
	if err != nil {
		return nil, err
	}
	children = append(children, first)
	for c.eat('|') {
		next, err := parseSeq(c)
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return &Node{Kind: KindOr, Children: children}, nil
}

// parseSeq parses concatenation (juxtaposition): many(repeat). An empty
// sequence (end of input / next token is '|' or ')') yields the
// zero-child Seq node, which Compile translates to the single-state
// accepting-empty-string FSA (spec 4.9's "empty Seq" edge case).
func parseSeq(c *cursor) (*Node, error) {
	var children []*Node
	for {
		if c.eof() {
			break
		}
		ch, _ := c.peek()
		if ch == '|' || ch == ')' {
			break
		}
		n, err := parseRepeat(c)
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return &Node{Kind: KindSeq, Children: children}, nil
}

// parseRepeat parses one atom followed by an optional postfix quantifier
// (? * + {n} {n,m}).
func parseRepeat(c *cursor) (*Node, error) {
	atom, err := parseAtom(c)
	if err != nil {
		return nil, err
	}
	ch, ok := c.peek()
	if !ok {
		return atom, nil
	}
	switch ch {
	case '?':
		c.advance()
		return &Node{Kind: KindOption, Child: atom}, nil
	case '*':
		c.advance()
		return &Node{Kind: KindMany0, Child: atom}, nil
	case '+':
		c.advance()
		return &Node{Kind: KindMany1, Child: atom}, nil
	case '{':
		save := c.pos
		min, max, ok, err := parseRepeatBraces(c)
		if err != nil {
			return nil, err
		}
		if !ok {
			c.pos = save
			return atom, nil
		}
		return &Node{Kind: KindRepeat, Child: atom, RepeatMin: min, RepeatMax: max}, nil
	default:
		return atom, nil
	}
}

// parseRepeatBraces parses "{n}" or "{n,m}" starting at '{'. ok is false
// (with the cursor left wherever it stopped) if the braces don't form a
// valid repeat spec, so the caller can back out and treat '{' literally.
func parseRepeatBraces(c *cursor) (min, max int, ok bool, err error) {
	if !c.eat('{') {
		return 0, 0, false, nil
	}
	n1, digitsOK := parseDigits(c)
	if !digitsOK {
		return 0, 0, false, nil
	}
	if c.eat('}') {
		return n1, n1, true, nil
	}
	if !c.eat(',') {
		return 0, 0, false, nil
	}
	n2, digitsOK := parseDigits(c)
	if !digitsOK {
		return 0, 0, false, nil
	}
	if !c.eat('}') {
		return 0, 0, false, nil
	}
	return n1, n2, true, nil
}

func parseDigits(c *cursor) (int, bool) {
	start := c.pos
	for {
		ch, ok := c.peek()
		if !ok || ch < '0' || ch > '9' {
			break
		}
		c.advance()
	}
	if c.pos == start {
		return 0, false
	}
	n := 0
	for _, r := range c.src[start:c.pos] {
		n = n*10 + int(r-'0')
	}
	return n, true
}

// parseAtom parses one repeatable unit: a group, a character class (or
// its negation), '.', or a (possibly escaped) literal character.
func parseAtom(c *cursor) (*Node, error) {
	ch, ok := c.peek()
	if !ok {
		return nil, c.errorf("unexpected end of pattern")
	}
	switch ch {
	case '(':
		c.advance()
		inner, err := parseOr(c)
		if err != nil {
			return nil, err
		}
		if !c.eat(')') {
			return nil, c.errorf("expected ')'")
		}
		return &Node{Kind: KindGroup, Child: inner}, nil
	case '[':
		return parseCharClass(c)
	case '.':
		c.advance()
		return &Node{Kind: KindDot}, nil
	case '\\':
		c.advance()
		esc, ok := c.peek()
		if !ok {
			return nil, c.errorf("dangling escape")
		}
		if !strings.ContainsRune(metaChars, esc) {
			return nil, c.errorf("invalid escape %q", string(esc))
		}
		c.advance()
		return &Node{Kind: KindChar, Char: esc}, nil
	default:
		if strings.ContainsRune(metaChars, ch) {
			return nil, c.errorf("unescaped metacharacter %q", string(ch))
		}
		c.advance()
		return &Node{Kind: KindChar, Char: ch}, nil
	}
}

// parseCharClass parses "[...]" or "[^...]". A leading ']' right after
// the opening bracket (or after '^') is treated as a literal member, not
// the closing bracket, matching spec §6 and the original's
// charset_expr: the literal ']' is appended to the END of the member
// list once the rest of the class has been parsed up to the true
// closing bracket.
func parseCharClass(c *cursor) (*Node, error) {
	c.advance() // '['
	inverted := c.eat('^')

	leadingBracket := false
	if ch, ok := c.peek(); ok && ch == ']' {
		leadingBracket = true
		c.advance()
	}

	items, err := parseCharClassTail(c)
	if err != nil {
		return nil, err
	}
	if !c.eat(']') {
		return nil, c.errorf("expected ']'")
	}
	if leadingBracket {
		items = append(items, CharSetItem{Beg: ']', End: ']'})
	}
	if len(items) == 0 {
		return nil, c.errorf("empty character class")
	}
	if inverted {
		return &Node{Kind: KindCharSetInv, Items: items}, nil
	}
	return &Node{Kind: KindCharSet, Items: items}, nil
}

// parseCharClassTail parses many1(try(range).or(char)) over
// none_of("]"): each member is either a single character or an x-y
// range, until the next unescaped ']'.
func parseCharClassTail(c *cursor) ([]CharSetItem, error) {
	var items []CharSetItem
	for {
		ch, ok := c.peek()
		if !ok || ch == ']' {
			break
		}
		c.advance()
		if next, ok := c.peek(); ok && next == '-' {
			save := c.pos
			c.advance()
			if end, ok := c.peek(); ok && end != ']' {
				c.advance()
				items = append(items, CharSetItem{Beg: ch, End: end})
				continue
			}
			c.pos = save
		}
		items = append(items, CharSetItem{Beg: ch, End: ch})
	}
	if len(items) == 0 {
		return nil, c.errorf("empty character class")
	}
	return items, nil
}
