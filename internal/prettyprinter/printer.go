// Package prettyprinter prints core terms back to the surface syntax
// of internal/parser, shortening references to the current module's
// own symbols the way spec §4.2 asks ("a pretty-printer uses the
// signature's path to shorten names for symbols in the current
// module"). Grounded on the teacher's code_printer.go: a buffer-backed
// printer struct building output incrementally rather than via
// fmt.Sprintf concatenation.
package prettyprinter

import (
	"bytes"
	"fmt"

	"github.com/lambdapi-go/kernel/internal/config"
	"github.com/lambdapi-go/kernel/internal/term"
)

// Printer prints terms for one module's perspective: symbols declared
// in CurrentModule print as a bare name, everything else prints
// module-qualified.
type Printer struct {
	CurrentModule string

	buf      bytes.Buffer
	varNames map[*term.Var]string
	varSeq   int
}

func New(currentModule string) *Printer {
	return &Printer{CurrentModule: currentModule, varNames: make(map[*term.Var]string)}
}

// Print renders t and returns the accumulated source text; it is safe
// to call repeatedly on a fresh Printer for independent terms, but one
// Printer should not be reused across unrelated terms since it reuses
// its fresh-name generator to keep names stable within one call tree.
func (p *Printer) Print(t term.Term) string {
	p.buf.Reset()
	p.write(t, false)
	return p.buf.String()
}

// write renders t, parenthesising it when paren is true and the shape
// at hand is not already atomic.
func (p *Printer) write(t term.Term, paren bool) {
	t = term.Unfold(t)
	switch x := t.(type) {
	case term.TType:
		p.buf.WriteString("Type")
	case term.TKind:
		p.buf.WriteString("Kind")
	case *term.Var:
		p.buf.WriteString(p.nameOf(x))
	case *term.Symb:
		p.buf.WriteString(p.symbolName(x.Entry))
	case *term.Meta:
		fmt.Fprintf(&p.buf, "?%s", x.Cell.Name)
		if len(x.Env) > 0 {
			p.buf.WriteByte('[')
			for i, e := range x.Env {
				if i > 0 {
					p.buf.WriteString(", ")
				}
				p.write(e, false)
			}
			p.buf.WriteByte(']')
		}
	case *term.Product:
		p.openParen(paren)
		v, body := x.Cod.Open()
		fmt.Fprintf(&p.buf, "Pi (%s:", p.nameOf(v))
		p.write(x.Dom, false)
		p.buf.WriteString("). ")
		p.write(body, false)
		p.closeParen(paren)
	case *term.Abs:
		p.openParen(paren)
		v, body := x.Body.Open()
		fmt.Fprintf(&p.buf, "fun (%s:", p.nameOf(v))
		p.write(x.Dom, false)
		p.buf.WriteString("). ")
		p.write(body, false)
		p.closeParen(paren)
	case *term.App:
		p.openParen(paren)
		p.write(x.Fun, false)
		p.buf.WriteByte(' ')
		p.write(x.Arg, true)
		p.closeParen(paren)
	case *term.PatVar:
		if x.Cell.Resolved() {
			p.write(x.Cell.Value(), paren)
		} else {
			fmt.Fprintf(&p.buf, "$%s", x.Cell.Name)
		}
	default:
		fmt.Fprintf(&p.buf, "<?%T>", t)
	}
}

func (p *Printer) openParen(paren bool) {
	if paren {
		p.buf.WriteByte('(')
	}
}

func (p *Printer) closeParen(paren bool) {
	if paren {
		p.buf.WriteByte(')')
	}
}

// symbolName shortens symbols declared in CurrentModule to a bare
// name; everything else is printed module-qualified.
func (p *Printer) symbolName(e *term.Entry) string {
	if e.Module == p.CurrentModule {
		return e.Name
	}
	return e.Module + "." + e.Name
}

// nameOf assigns each *term.Var a short, stable display name on first
// sight; in test mode (config.IsTestMode) these are purely sequential
// (x0, x1, ...) rather than decorated with the binder's hint, so
// golden-file tests are unaffected by hint text.
func (p *Printer) nameOf(v *term.Var) string {
	if name, ok := p.varNames[v]; ok {
		return name
	}
	name := v.DisplayName(func() string {
		if config.IsTestMode || v.Hint == "" || v.Hint == "_" {
			n := fmt.Sprintf("x%d", p.varSeq)
			p.varSeq++
			return n
		}
		return v.Hint
	})
	p.varNames[v] = name
	return name
}
