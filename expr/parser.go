package expr

import (
	"fmt"

	"github.com/titpetric/scssgo/token"
)

// Parser tracks only a cursor position into a pre-scanned token stream, per
// spec.md §4.D ("the parser only tracks a cursor position").
type Parser struct {
	toks []token.Token
	pos  int
}

// NewParser scans src and returns a Parser ready to parse it.
func NewParser(src string) *Parser {
	return &Parser{toks: token.Scan(src)}
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

// ParseExprList parses the `goal` production: a full expr_lst followed by
// EOF, returning a comma-separated List node when there are several items
// and the single item's own node otherwise.
func (p *Parser) ParseExprList() (Node, error) {
	n, err := p.exprLst()
	if err != nil {
		return nil, err
	}
	if !p.at(token.EOF) {
		return nil, fmt.Errorf("unexpected trailing token %q at %d", p.cur().Text, p.cur().Pos)
	}
	return n, nil
}

func (p *Parser) exprLst() (Node, error) {
	first, err := p.maybeNamedSlist()
	if err != nil {
		return nil, err
	}
	if !p.at(token.Comma) {
		return first, nil
	}
	items := []Node{first}
	for p.at(token.Comma) {
		p.advance()
		n, err := p.maybeNamedSlist()
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return List{Items: items, Separator: ","}, nil
}

// maybeNamedSlist recognizes a leading `$name:` before an expr_slst and
// wraps the value in a Call named "@named" that keeps the name (named
// top-level list members per spec.md §4.D); without such a prefix it is
// exprSlst.
func (p *Parser) maybeNamedSlist() (Node, error) {
	if p.at(token.Variable) && p.peekIsNamedArg() {
		name := p.advance().Text
		p.advance() // consume ':'
		val, err := p.exprSlst()
		if err != nil {
			return nil, err
		}
		return Call{Name: "@named", Args: []Arg{{Name: name[1:], Value: val}}}, nil
	}
	return p.exprSlst()
}

func (p *Parser) peekIsNamedArg() bool {
	return p.pos+1 < len(p.toks) && p.toks[p.pos+1].Kind == token.Colon
}

func (p *Parser) exprSlst() (Node, error) {
	first, err := p.expr()
	if err != nil {
		return nil, err
	}
	items := []Node{first}
	for p.startsExpr() {
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if len(items) == 1 {
		return first, nil
	}
	return List{Items: items, Separator: " "}, nil
}

func (p *Parser) startsExpr() bool {
	switch p.cur().Kind {
	case token.Number, token.SQString, token.DQString, token.True, token.False,
		token.Color, token.Variable, token.Func, token.Ident, token.LParen,
		token.Not, token.Bang, token.UnaryMinus, token.Plus, token.Minus:
		return true
	}
	return false
}

func (p *Parser) expr() (Node, error) {
	left, err := p.andTest()
	if err != nil {
		return nil, err
	}
	for p.at(token.Or) {
		p.advance()
		right, err := p.andTest()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: "or", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) andTest() (Node, error) {
	left, err := p.notTest()
	if err != nil {
		return nil, err
	}
	for p.at(token.And) {
		p.advance()
		right, err := p.notTest()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: "and", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) notTest() (Node, error) {
	if p.at(token.Not) || p.at(token.Bang) {
		p.advance()
		operand, err := p.notTest()
		if err != nil {
			return nil, err
		}
		return Unary{Op: "not", Operand: operand}, nil
	}
	return p.comparison()
}

func (p *Parser) comparison() (Node, error) {
	left, err := p.aExpr()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.cur().Kind {
		case token.Lt:
			op = "<"
		case token.Gt:
			op = ">"
		case token.Le:
			op = "<="
		case token.Ge:
			op = ">="
		case token.Eq:
			op = "=="
		case token.Ne:
			op = "!="
		default:
			return left, nil
		}
		p.advance()
		right, err := p.aExpr()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) aExpr() (Node, error) {
	left, err := p.mExpr()
	if err != nil {
		return nil, err
	}
	for p.at(token.Plus) || p.at(token.Minus) {
		op := "+"
		if p.at(token.Minus) {
			op = "-"
		}
		p.advance()
		right, err := p.mExpr()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) mExpr() (Node, error) {
	left, err := p.uExpr()
	if err != nil {
		return nil, err
	}
	for p.at(token.Star) || p.at(token.Slash) {
		op := "*"
		if p.at(token.Slash) {
			op = "/"
		}
		p.advance()
		right, err := p.uExpr()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) uExpr() (Node, error) {
	if p.at(token.UnaryMinus) || p.at(token.Plus) {
		op := p.advance().Text
		operand, err := p.uExpr()
		if err != nil {
			return nil, err
		}
		return Unary{Op: op, Operand: operand}, nil
	}
	a, err := p.atom()
	if err != nil {
		return nil, err
	}
	if p.at(token.Unit) {
		unit := p.advance().Text
		if lit, ok := a.(Literal); ok && lit.Kind == LitNumber {
			lit.Unit = unit
			return lit, nil
		}
	}
	return a, nil
}

func (p *Parser) atom() (Node, error) {
	t := p.cur()
	switch t.Kind {
	case token.LParen:
		p.advance()
		inner, err := p.exprLst()
		if err != nil {
			return nil, err
		}
		if !p.at(token.RParen) {
			return nil, fmt.Errorf("expected ')' at %d", p.cur().Pos)
		}
		p.advance()
		return inner, nil
	case token.Func:
		name := p.advance().Text
		if !p.at(token.LParen) {
			return nil, fmt.Errorf("expected '(' after function name %q", name)
		}
		p.advance()
		var args []Arg
		if !p.at(token.RParen) {
			for {
				arg, err := p.callArg()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.at(token.Comma) {
					p.advance()
					continue
				}
				break
			}
		}
		if !p.at(token.RParen) {
			return nil, fmt.Errorf("expected ')' closing call to %q", name)
		}
		p.advance()
		return Call{Name: name, Args: args}, nil
	case token.Number:
		p.advance()
		return Literal{Text: t.Text, Kind: LitNumber}, nil
	case token.SQString:
		p.advance()
		return Literal{Text: t.Text, Kind: LitString}, nil
	case token.DQString:
		p.advance()
		return Literal{Text: t.Text, Kind: LitQuotedString}, nil
	case token.True:
		p.advance()
		return Literal{Text: "true", Kind: LitBool}, nil
	case token.False:
		p.advance()
		return Literal{Text: "false", Kind: LitBool}, nil
	case token.Color:
		p.advance()
		return Literal{Text: t.Text, Kind: LitColor}, nil
	case token.Variable:
		p.advance()
		return Var{Name: t.Text[1:]}, nil
	case token.Ident:
		p.advance()
		return Literal{Text: t.Text, Kind: LitString}, nil
	}
	return nil, fmt.Errorf("unexpected token %q at %d", t.Text, t.Pos)
}

func (p *Parser) callArg() (Arg, error) {
	if p.at(token.Variable) && p.peekIsNamedArg() {
		name := p.advance().Text[1:]
		p.advance()
		val, err := p.exprSlst()
		if err != nil {
			return Arg{}, err
		}
		return Arg{Name: name, Value: val}, nil
	}
	val, err := p.exprSlst()
	if err != nil {
		return Arg{}, err
	}
	return Arg{Value: val}, nil
}
