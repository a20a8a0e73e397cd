package parser

import (
	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/reporter"
)

// parseService parses a `service Name { ... }` declaration.
func (p *parser) parseService() (*ast.Service, *reporter.ParserError) {
	start := p.cur.Pos
	if _, err := p.expectIdentText("service"); err != nil {
		return nil, err
	}
	name, _, err := p.expectUpperName("service")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct('{'); err != nil {
		return nil, err
	}

	var rpcs []*ast.Rpc
	var options []*ast.Option
	for !p.isPunct('}') {
		switch {
		case p.isEOF():
			return nil, p.unexpected("'}'")
		case p.isPunct(';'):
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.isIdent("option"):
			opt, err := p.parseOptionStatement()
			if err != nil {
				return nil, err
			}
			options = append(options, opt)
		case p.isIdent("rpc"):
			rpc, err := p.parseRpc()
			if err != nil {
				return nil, err
			}
			rpcs = append(rpcs, rpc)
		default:
			return nil, p.unexpected("rpc or option declaration")
		}
	}
	if _, err := p.expectPunct('}'); err != nil {
		return nil, err
	}

	return &ast.Service{Name: name, Rpcs: rpcs, Options: options, Pos: start}, nil
}

func (p *parser) parseRpc() (*ast.Rpc, *reporter.ParserError) {
	start := p.cur.Pos
	if _, err := p.expectIdentText("rpc"); err != nil {
		return nil, err
	}
	name, _, err := p.expectUpperName("rpc")
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunct('('); err != nil {
		return nil, err
	}
	clientStreaming, err := p.parseStreamKeyword()
	if err != nil {
		return nil, err
	}
	if p.isPunct(')') {
		return nil, reporter.Error(p.cur.Pos, reporter.MissingType, "rpc request type is required")
	}
	inputType, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(')'); err != nil {
		return nil, err
	}

	if _, err := p.expectIdentText("returns"); err != nil {
		return nil, err
	}

	if _, err := p.expectPunct('('); err != nil {
		return nil, err
	}
	serverStreaming, err := p.parseStreamKeyword()
	if err != nil {
		return nil, err
	}
	if p.isPunct(')') {
		return nil, reporter.Error(p.cur.Pos, reporter.MissingType, "rpc response type is required")
	}
	outputType, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(')'); err != nil {
		return nil, err
	}

	var options []*ast.Option
	switch {
	case p.isPunct(';'):
		if err := p.advance(); err != nil {
			return nil, err
		}
	case p.isPunct('{'):
		if err := p.advance(); err != nil {
			return nil, err
		}
		for !p.isPunct('}') {
			if p.isEOF() {
				return nil, p.unexpected("'}'")
			}
			if !p.isIdent("option") {
				return nil, p.unexpected("option declaration")
			}
			opt, err := p.parseOptionStatement()
			if err != nil {
				return nil, err
			}
			options = append(options, opt)
		}
		if _, err := p.expectPunct('}'); err != nil {
			return nil, err
		}
	default:
		return nil, p.unexpected("';' or '{'")
	}

	return &ast.Rpc{
		Name:            name,
		InputType:       inputType,
		OutputType:      outputType,
		ClientStreaming: clientStreaming,
		ServerStreaming: serverStreaming,
		Options:         options,
		Pos:             start,
	}, nil
}

// parseStreamKeyword consumes an optional leading "stream" keyword,
// reporting InvalidStream if it is repeated.
func (p *parser) parseStreamKeyword() (bool, *reporter.ParserError) {
	if !p.isIdent("stream") {
		return false, nil
	}
	if err := p.advance(); err != nil {
		return false, err
	}
	if p.isIdent("stream") {
		return false, reporter.Error(p.cur.Pos, reporter.InvalidStream, "duplicate 'stream' keyword")
	}
	return true, nil
}
