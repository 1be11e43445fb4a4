package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"wiz/internal/lsp"
)

const lsName = "wiz"

var handler protocol.Handler

type stringList []string

func (l *stringList) String() string { return "" }

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	var importDirs stringList
	flag.Var(&importDirs, "I", "add an import search directory (repeatable)")
	verbosity := flag.Int("v", 1, "log verbosity")
	flag.Parse()

	commonlog.Configure(*verbosity, nil)
	log := commonlog.GetLogger("wiz.lsp")

	wizHandler := lsp.NewWizHandler(importDirs...)

	handler = protocol.Handler{
		Initialize:                     wizHandler.Initialize,
		Initialized:                    wizHandler.Initialized,
		Shutdown:                       wizHandler.Shutdown,
		SetTrace:                       wizHandler.SetTrace,
		TextDocumentDidOpen:            wizHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           wizHandler.TextDocumentDidClose,
		TextDocumentDidChange:          wizHandler.TextDocumentDidChange,
		TextDocumentCompletion:         wizHandler.TextDocumentCompletion,
		TextDocumentDocumentSymbol:     wizHandler.TextDocumentDocumentSymbol,
		TextDocumentSemanticTokensFull: wizHandler.TextDocumentSemanticTokensFull,
	}

	// debug=false keeps glsp's own message tracing out of the log
	s := server.NewServer(&handler, lsName, false)

	log.Info("starting Wiz language server")
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
