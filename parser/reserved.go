package parser

import (
	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/lexer"
	"github.com/protolex/proto3parse/reporter"
)

const maxFieldNumber int32 = 536870911

// parseReservedStatement parses one `reserved ...;` statement, shared by
// message and enum bodies. A single statement is either all number
// ranges or all quoted names; the first token after "reserved"
// determines which, and switching partway through is a syntax error
// rather than a semantic one, since the two forms aren't part of the
// same grammar production.
func (p *parser) parseReservedStatement() ([]*ast.Reserved, *reporter.ParserError) {
	if _, err := p.expectIdentText("reserved"); err != nil {
		return nil, err
	}

	var out []*ast.Reserved
	if p.cur.Kind == lexer.String {
		for {
			tok, err := p.expectString()
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.Reserved{Kind: ast.ReservedName, Name: tok.Text, Pos: tok.Pos})
			if p.isPunct(',') {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	} else {
		for {
			r, err := p.parseReservedRange()
			if err != nil {
				return nil, err
			}
			out = append(out, r)
			if p.isPunct(',') {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}

	if err := p.expectSemi(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) parseReservedRange() (*ast.Reserved, *reporter.ParserError) {
	lo, err := p.expectInteger()
	if err != nil {
		return nil, err
	}
	start := lo.Pos
	hi := lo.Int

	if p.isIdent("to") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.isIdent("max") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			hi = int64(maxFieldNumber)
		} else {
			hiTok, err := p.expectInteger()
			if err != nil {
				return nil, err
			}
			hi = hiTok.Int
		}
	}

	if hi < lo.Int {
		return nil, reporter.Errorf(start, reporter.InvalidFieldNumber, "reserved range %d to %d is empty", lo.Int, hi)
	}

	return &ast.Reserved{Kind: ast.ReservedNumberRange, Lo: int32(lo.Int), Hi: int32(hi), Pos: start}, nil
}
