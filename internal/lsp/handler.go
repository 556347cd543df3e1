// Package lsp adapts the teacher's glsp-based KansoHandler to the prover
// core: ProverHandler wires the same Initialize/TextDocumentDidOpen/
// TextDocumentDidChange shape, but since parsing source text into facts is
// a non-goal (spec.md §1), a document's FactSet is supplied by the caller
// (SetFactSet) rather than produced by parsing the text the editor sends.
// On open and on change, ProverHandler builds a Prover from the
// registered FactSet, runs a VerificationSearch, and republishes the
// resulting diagnostics — the same publish-on-change loop KansoHandler used
// for parse errors, now driven by proof search outcomes instead.
package lsp

import (
	"fmt"
	"log"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"sooth/internal/factset"
)

// ProverHandler implements the LSP server handlers for verifying FactSet
// documents.
type ProverHandler struct {
	mu       sync.RWMutex
	content  map[string]string
	factSets map[string]*factset.FactSet
}

// NewProverHandler creates and returns a new ProverHandler instance.
func NewProverHandler() *ProverHandler {
	return &ProverHandler{
		content:  make(map[string]string),
		factSets: make(map[string]*factset.FactSet),
	}
}

// SetFactSet registers the FactSet a URI's diagnostics should be computed
// from. Since this package never parses the document text itself, a caller
// (an editor extension's build step, or a test) must call this before
// TextDocumentDidOpen/DidChange will produce anything but an empty
// diagnostics list.
func (h *ProverHandler) SetFactSet(uri protocol.DocumentUri, fs *factset.FactSet) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.factSets[uri] = fs
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *ProverHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true), // notify on open/close events
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *ProverHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("sooth LSP Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *ProverHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("sooth LSP Shutdown")
	return nil
}

// SetTrace handles the LSP setTrace notification; sooth has no internal
// trace logging to toggle, so this is a no-op kept only so the protocol
// handler's SetTrace field has something to wire to.
func (h *ProverHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *ProverHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)

	h.mu.Lock()
	h.content[params.TextDocument.URI] = params.TextDocument.Text
	h.mu.Unlock()

	diagnostics, err := h.verify(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to verify %s: %w", params.TextDocument.URI, err)
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentDidClose handles file close notifications from the editor
func (h *ProverHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, params.TextDocument.URI)
	delete(h.factSets, params.TextDocument.URI)

	return nil
}

// TextDocumentDidChange handles file change notifications from the editor
func (h *ProverHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)

	diagnostics, err := h.verify(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to verify %s: %w", params.TextDocument.URI, err)
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// verify runs a VerificationSearch against the FactSet registered for uri
// and converts the Outcome into LSP diagnostics. A URI with no registered
// FactSet yet (the common case right after DidOpen, before a build step has
// called SetFactSet) produces no diagnostics rather than an error.
func (h *ProverHandler) verify(uri protocol.DocumentUri) ([]protocol.Diagnostic, error) {
	h.mu.RLock()
	fs := h.factSets[uri]
	h.mu.RUnlock()

	if fs == nil {
		return nil, nil
	}
	if fs.Goal == nil {
		return nil, nil
	}

	p, err := fs.BuildProver()
	if err != nil {
		return nil, fmt.Errorf("building prover for %s: %w", fs.Module, err)
	}

	outcome := p.VerificationSearch()
	return ConvertOutcome(fs, outcome), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
