// Command passthrough prints the events the scanner reports for an HTML file as markup,
// without building a tree. Unclosed elements stay unclosed.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dpotapov/go-domx/dom"
	"github.com/dpotapov/go-domx/scan"
)

type printer struct {
	w *bufio.Writer
}

var (
	_ scan.Handler        = printer{}
	_ scan.CommentHandler = printer{}
	_ scan.DoctypeHandler = printer{}
)

func (p printer) StartTag(tag scan.Tag, attrs []scan.Attribute) error {
	_ = p.w.WriteByte('<')
	_, _ = p.w.WriteString(tag.Name)
	for _, a := range attrs {
		_ = p.w.WriteByte(' ')
		_, _ = p.w.WriteString(a.Key)
		if a.Val != "" {
			_ = p.w.WriteByte('=')
			_, _ = p.w.WriteString(dom.QuoteAttr(a.Val))
		}
	}
	return p.w.WriteByte('>')
}

func (p printer) EndTag(name string) error {
	if scan.NewTag(name).Void {
		return nil
	}
	_, err := p.w.WriteString("</" + name + ">")
	return err
}

func (p printer) Text(data []byte) error {
	_, err := p.w.Write(data)
	return err
}

func (p printer) Comment(data []byte) error {
	_, err := fmt.Fprintf(p.w, "<!--%s-->", data)
	return err
}

func (p printer) Doctype(data []byte) error {
	_, err := fmt.Fprintf(p.w, "<!DOCTYPE %s>", data)
	return err
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) != 2 {
		fmt.Println("Usage: passthrough <htmlfile>")
		return
	}

	input, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.Error("Read input", "error", err)
		os.Exit(1)
	}

	if err := passthrough(os.Stdout, input); err != nil {
		logger.Error("Pass input through", "error", err)
		os.Exit(1)
	}
}

func passthrough(w io.Writer, input []byte) error {
	p := printer{w: bufio.NewWriter(w)}
	if err := scan.Parse(input, p); err != nil {
		return err
	}
	return p.w.Flush()
}
