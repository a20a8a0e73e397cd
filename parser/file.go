package parser

import (
	"github.com/protolex/proto3parse/ast"
	"github.com/protolex/proto3parse/reporter"
)

// parseFile parses an entire proto3 source file from the current
// position (the very first token) through EOF.
func (p *parser) parseFile() (*ast.FileNode, *reporter.ParserError) {
	file := &ast.FileNode{Syntax: "proto3"}

	seenStatement := false
	sawPackage := false
	typeNames := map[string]ast.Position{}

	for !p.isEOF() {
		if p.isPunct(';') {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}

		if p.isIdent("syntax") {
			if seenStatement {
				return nil, reporter.Error(p.cur.Pos, reporter.SyntaxNotFirst, "syntax declaration must be the first statement in the file")
			}
			if err := p.parseSyntax(file); err != nil {
				return nil, err
			}
			seenStatement = true
			continue
		}
		seenStatement = true

		switch {
		case p.isIdent("package"):
			name, err := p.parsePackage()
			if err != nil {
				return nil, err
			}
			if sawPackage {
				return nil, reporter.Error(p.cur.Pos, reporter.DuplicatePackage, "a file may declare at most one package")
			}
			file.Package = name
			sawPackage = true

		case p.isIdent("import"):
			imp, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			file.Imports = append(file.Imports, imp)

		case p.isIdent("option"):
			opt, err := p.parseOptionStatement()
			if err != nil {
				return nil, err
			}
			for _, prev := range file.Options {
				if prev.Name.String() == opt.Name.String() {
					return nil, reporter.Errorf(opt.Pos, reporter.DuplicateOption, "duplicate file option %q", opt.Name.String())
				}
			}
			file.Options = append(file.Options, opt)

		case p.isIdent("message"):
			msg, err := p.parseMessage(1)
			if err != nil {
				return nil, err
			}
			if err := addTypeName(typeNames, msg.Name, msg.Pos); err != nil {
				return nil, err
			}
			file.Messages = append(file.Messages, msg)

		case p.isIdent("enum"):
			enum, err := p.parseEnum()
			if err != nil {
				return nil, err
			}
			if err := addTypeName(typeNames, enum.Name, enum.Pos); err != nil {
				return nil, err
			}
			file.Enums = append(file.Enums, enum)

		case p.isIdent("service"):
			svc, err := p.parseService()
			if err != nil {
				return nil, err
			}
			if err := addTypeName(typeNames, svc.Name, svc.Pos); err != nil {
				return nil, err
			}
			file.Services = append(file.Services, svc)

		default:
			return nil, p.unexpected("package, import, option, message, enum, or service declaration")
		}
	}

	return file, nil
}

func (p *parser) parseSyntax(file *ast.FileNode) *reporter.ParserError {
	if _, err := p.expectIdentText("syntax"); err != nil {
		return err
	}
	if _, err := p.expectPunct('='); err != nil {
		return err
	}
	tok, err := p.expectString()
	if err != nil {
		return err
	}
	if tok.Text != "proto3" {
		return reporter.Errorf(tok.Pos, reporter.InvalidSyntaxValue, "unsupported syntax %q: only \"proto3\" is supported", tok.Text)
	}
	file.Syntax = tok.Text
	return p.expectSemi()
}

func (p *parser) parsePackage() (string, *reporter.ParserError) {
	if _, err := p.expectIdentText("package"); err != nil {
		return "", err
	}
	first, _, err := p.expectLowerName("package")
	if err != nil {
		return "", err
	}
	name := first
	for p.isPunct('.') {
		if err := p.advance(); err != nil {
			return "", err
		}
		seg, _, err := p.expectLowerName("package")
		if err != nil {
			return "", err
		}
		name += "." + seg
	}
	if err := p.expectSemi(); err != nil {
		return "", err
	}
	return name, nil
}

func (p *parser) parseImport() (*ast.Import, *reporter.ParserError) {
	start := p.cur.Pos
	if _, err := p.expectIdentText("import"); err != nil {
		return nil, err
	}
	modifier := ast.ImportNone
	switch {
	case p.isIdent("public"):
		modifier = ast.ImportPublic
		if err := p.advance(); err != nil {
			return nil, err
		}
	case p.isIdent("weak"):
		modifier = ast.ImportWeak
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	pathTok, err := p.expectString()
	if err != nil {
		return nil, err
	}
	if err := p.expectSemi(); err != nil {
		return nil, err
	}
	return &ast.Import{Path: pathTok.Text, Modifier: modifier, Pos: start}, nil
}
