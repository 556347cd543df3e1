// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"sooth/internal/lsp"
)

const lsName = "sooth" // Name identifier for the language server

var (
	version = "0.0.1"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)

	proverHandler := lsp.NewProverHandler()

	handler = protocol.Handler{
		Initialize:            proverHandler.Initialize,
		Initialized:           proverHandler.Initialized,
		Shutdown:              proverHandler.Shutdown,
		SetTrace:              proverHandler.SetTrace,
		TextDocumentDidOpen:   proverHandler.TextDocumentDidOpen,
		TextDocumentDidClose:  proverHandler.TextDocumentDidClose,
		TextDocumentDidChange: proverHandler.TextDocumentDidChange,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Printf("Starting sooth LSP server (%s)...\n", version)

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting sooth LSP server:", err)
		os.Exit(1)
	}
}
